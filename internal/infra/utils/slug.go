package utils

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(_[a-z0-9]+)*$`)

// Slugify converts a human readable name into a lowercase snake_case slug.
// Diacritics are folded to their base letter, camelCase boundaries become
// underscores and any other run of non-alphanumeric characters collapses
// into a single underscore.
//
// Examples:
//   - "Product Name" -> "product_name"
//   - "Preço Médio" -> "preco_medio"
//   - "unitPrice2" -> "unit_price2"
func Slugify(name string) string {
	folding := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(folding, strings.TrimSpace(name))
	if err != nil {
		folded = name
	}

	var result strings.Builder
	result.Grow(len(folded))

	separate := false
	chars := []rune(folded)
	for i, r := range chars {
		if r > unicode.MaxASCII || !(unicode.IsLetter(r) || unicode.IsDigit(r)) {
			separate = true
			continue
		}

		if unicode.IsUpper(r) && i > 0 && (unicode.IsLower(chars[i-1]) || unicode.IsDigit(chars[i-1])) {
			separate = true
		}

		if separate && result.Len() > 0 {
			result.WriteByte('_')
		}
		separate = false
		result.WriteRune(unicode.ToLower(r))
	}

	return result.String()
}

// IsSlug reports whether value is already in the canonical slug form.
func IsSlug(value string) bool {
	return slugPattern.MatchString(value)
}
