package schema

import (
	"strconv"
	"strings"

	"github.com/lowcodejsorg/lowcodejs-sub005/internal/tables/domain"
)

// isEmpty treats nil, blank strings and empty collections as absent.
func isEmpty(value any) bool {
	switch v := value.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(v) == ""
	case []any:
		return len(v) == 0
	case []string:
		return len(v) == 0
	case map[string]any:
		return len(v) == 0
	default:
		return false
	}
}

func asString(value any) (string, bool) {
	switch v := value.(type) {
	case string:
		return v, true
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), true
	case int:
		return strconv.Itoa(v), true
	case int64:
		return strconv.FormatInt(v, 10), true
	default:
		return "", false
	}
}

func asStringList(value any) ([]string, bool) {
	switch v := value.(type) {
	case []string:
		return v, true
	case []any:
		result := make([]string, 0, len(v))
		for _, item := range v {
			s, ok := item.(string)
			if !ok {
				return nil, false
			}
			result = append(result, s)
		}
		return result, true
	default:
		return nil, false
	}
}

// references normalizes single or multiple id style values. A scalar is
// required when multiple is false and a list otherwise. Lists are trimmed and
// deduplicated in order.
func references(value any, multiple bool) ([]string, *domain.Error) {
	if !multiple {
		s, ok := value.(string)
		if !ok {
			return nil, domain.NewError(domain.CodeInvalidFieldFormat, "expected a single value")
		}
		return []string{strings.TrimSpace(s)}, nil
	}

	list, ok := asStringList(value)
	if !ok {
		return nil, domain.NewError(domain.CodeInvalidFieldFormat, "expected a list of values")
	}

	seen := make(map[string]bool, len(list))
	result := make([]string, 0, len(list))
	for _, item := range list {
		item = strings.TrimSpace(item)
		if item == "" {
			return nil, domain.NewError(domain.CodeInvalidFieldFormat, "list contains an empty value")
		}
		if seen[item] {
			continue
		}
		seen[item] = true
		result = append(result, item)
	}
	return result, nil
}

func shape(values []string, multiple bool) any {
	if multiple {
		return values
	}
	return values[0]
}
