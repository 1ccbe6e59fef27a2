package schema

import (
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/lowcodejsorg/lowcodejs-sub005/internal/tables/domain"
	"github.com/shopspring/decimal"
)

type StorageKind string

const (
	StorageText          StorageKind = "text"
	StorageTextList      StorageKind = "text_list"
	StorageTimestamp     StorageKind = "timestamp"
	StorageObject        StorageKind = "object"
	StorageReactionSum   StorageKind = "reaction_summary"
	StorageEvaluationSum StorageKind = "evaluation_summary"
)

// TypeDescriptor is the behavior of one field type. Validate receives a
// non-empty value and returns its normalized form. Serialize turns a
// normalized or stored value into its wire form.
type TypeDescriptor interface {
	Type() domain.FieldType
	StorageKind(config domain.FieldConfiguration) StorageKind
	Default(config domain.FieldConfiguration) any
	Validate(value any, config domain.FieldConfiguration) (any, *domain.Error)
	Serialize(value any, config domain.FieldConfiguration) any
}

// Describe returns the descriptor of a field type. The set is closed.
func Describe(t domain.FieldType) (TypeDescriptor, error) {
	switch t {
	case domain.FieldTypeTextShort:
		return textShort{}, nil
	case domain.FieldTypeTextLong:
		return textLong{}, nil
	case domain.FieldTypeDropdown:
		return dropdown{}, nil
	case domain.FieldTypeDate:
		return date{}, nil
	case domain.FieldTypeFile:
		return reference{fieldType: domain.FieldTypeFile}, nil
	case domain.FieldTypeRelationship:
		return reference{fieldType: domain.FieldTypeRelationship}, nil
	case domain.FieldTypeFieldGroup:
		return fieldGroup{}, nil
	case domain.FieldTypeCategory:
		return category{}, nil
	case domain.FieldTypeReaction:
		return readonly{fieldType: domain.FieldTypeReaction, kind: StorageReactionSum}, nil
	case domain.FieldTypeEvaluation:
		return readonly{fieldType: domain.FieldTypeEvaluation, kind: StorageEvaluationSum}, nil
	default:
		return nil, domain.NewError(domain.CodeInvalidFieldType, "unknown field type %q", t)
	}
}

func defaultOf(config domain.FieldConfiguration) any {
	return config.DefaultValue
}

func multipleKind(config domain.FieldConfiguration) StorageKind {
	if config.Multiple {
		return StorageTextList
	}
	return StorageText
}

var formatValidator = validator.New()

type textShort struct{}

func (textShort) Type() domain.FieldType                            { return domain.FieldTypeTextShort }
func (textShort) StorageKind(domain.FieldConfiguration) StorageKind { return StorageText }
func (textShort) Default(config domain.FieldConfiguration) any      { return defaultOf(config) }

func (textShort) Validate(value any, config domain.FieldConfiguration) (any, *domain.Error) {
	raw, ok := asString(value)
	if !ok {
		return nil, domain.NewError(domain.CodeInvalidFieldFormat, "expected text")
	}
	text := strings.TrimSpace(raw)

	switch config.Format {
	case domain.TextFormatAlphanumeric:
		if err := formatValidator.Var(strings.ReplaceAll(text, " ", ""), "alphanumunicode"); err != nil {
			return nil, domain.NewError(domain.CodeInvalidFieldFormat, "expected letters and digits only")
		}
	case domain.TextFormatInteger:
		n, err := strconv.ParseInt(text, 10, 64)
		if err != nil {
			return nil, domain.NewError(domain.CodeInvalidFieldFormat, "expected an integer")
		}
		text = strconv.FormatInt(n, 10)
	case domain.TextFormatDecimal:
		if !strings.Contains(text, ".") {
			text = strings.Replace(text, ",", ".", 1)
		}
		d, err := decimal.NewFromString(text)
		if err != nil {
			return nil, domain.NewError(domain.CodeInvalidFieldFormat, "expected a decimal number")
		}
		text = d.String()
	case domain.TextFormatURL:
		if err := formatValidator.Var(text, "url"); err != nil {
			return nil, domain.NewError(domain.CodeInvalidFieldFormat, "expected a URL")
		}
	case domain.TextFormatEmail:
		if err := formatValidator.Var(text, "email"); err != nil {
			return nil, domain.NewError(domain.CodeInvalidFieldFormat, "expected an email address")
		}
	}

	return text, nil
}

func (textShort) Serialize(value any, _ domain.FieldConfiguration) any { return value }

type textLong struct{}

func (textLong) Type() domain.FieldType                            { return domain.FieldTypeTextLong }
func (textLong) StorageKind(domain.FieldConfiguration) StorageKind { return StorageText }
func (textLong) Default(config domain.FieldConfiguration) any      { return defaultOf(config) }

func (textLong) Validate(value any, _ domain.FieldConfiguration) (any, *domain.Error) {
	text, ok := value.(string)
	if !ok {
		return nil, domain.NewError(domain.CodeInvalidFieldFormat, "expected text")
	}
	return text, nil
}

func (textLong) Serialize(value any, _ domain.FieldConfiguration) any { return value }

type dropdown struct{}

func (dropdown) Type() domain.FieldType { return domain.FieldTypeDropdown }
func (dropdown) StorageKind(config domain.FieldConfiguration) StorageKind {
	return multipleKind(config)
}
func (dropdown) Default(config domain.FieldConfiguration) any { return defaultOf(config) }

func (dropdown) Validate(value any, config domain.FieldConfiguration) (any, *domain.Error) {
	selected, err := references(value, config.Multiple)
	if err != nil {
		return nil, err
	}

	allowed := make(map[string]bool, len(config.DropdownOptions))
	for _, option := range config.DropdownOptions {
		allowed[option] = true
	}
	for _, option := range selected {
		if !allowed[option] {
			return nil, domain.NewError(domain.CodeInvalidFieldFormat, "%q is not one of the options", option)
		}
	}

	return shape(selected, config.Multiple), nil
}

func (dropdown) Serialize(value any, _ domain.FieldConfiguration) any { return value }

// layouts accepted for DATE values, most specific first. The configured
// format is a display hint and never constrains parsing.
var layouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

type date struct{}

func (date) Type() domain.FieldType                            { return domain.FieldTypeDate }
func (date) StorageKind(domain.FieldConfiguration) StorageKind { return StorageTimestamp }
func (date) Default(config domain.FieldConfiguration) any      { return defaultOf(config) }

func (date) Validate(value any, _ domain.FieldConfiguration) (any, *domain.Error) {
	switch v := value.(type) {
	case time.Time:
		return v.UTC(), nil
	case float64:
		return time.UnixMilli(int64(v)).UTC(), nil
	case string:
		text := strings.TrimSpace(v)
		for _, layout := range layouts {
			if t, err := time.Parse(layout, text); err == nil {
				return t.UTC(), nil
			}
		}
	}
	return nil, domain.NewError(domain.CodeInvalidFieldFormat, "expected a date")
}

// TimestampLayout keeps every fractional digit so stored dates sort as text.
const TimestampLayout = "2006-01-02T15:04:05.000000000Z07:00"

func (date) Serialize(value any, _ domain.FieldConfiguration) any {
	if t, ok := value.(time.Time); ok {
		return t.UTC().Format(TimestampLayout)
	}
	return value
}

// reference covers FILE and RELATIONSHIP. Both hold opaque ids whose
// existence is checked lazily on read.
type reference struct {
	fieldType domain.FieldType
}

func (r reference) Type() domain.FieldType { return r.fieldType }
func (reference) StorageKind(config domain.FieldConfiguration) StorageKind {
	return multipleKind(config)
}
func (reference) Default(config domain.FieldConfiguration) any { return defaultOf(config) }

func (reference) Validate(value any, config domain.FieldConfiguration) (any, *domain.Error) {
	ids, err := references(value, config.Multiple)
	if err != nil {
		return nil, err
	}
	return shape(ids, config.Multiple), nil
}

func (reference) Serialize(value any, _ domain.FieldConfiguration) any { return value }

// fieldGroup only checks the outer shape. The nested payload is validated by
// the compiled rule against the group's own descriptor.
type fieldGroup struct{}

func (fieldGroup) Type() domain.FieldType                            { return domain.FieldTypeFieldGroup }
func (fieldGroup) StorageKind(domain.FieldConfiguration) StorageKind { return StorageObject }
func (fieldGroup) Default(config domain.FieldConfiguration) any      { return defaultOf(config) }

func (fieldGroup) Validate(value any, _ domain.FieldConfiguration) (any, *domain.Error) {
	object, ok := value.(map[string]any)
	if !ok {
		return nil, domain.NewError(domain.CodeInvalidFieldFormat, "expected an object")
	}
	return object, nil
}

func (fieldGroup) Serialize(value any, _ domain.FieldConfiguration) any { return value }

type category struct{}

func (category) Type() domain.FieldType { return domain.FieldTypeCategory }
func (category) StorageKind(config domain.FieldConfiguration) StorageKind {
	return multipleKind(config)
}
func (category) Default(config domain.FieldConfiguration) any { return defaultOf(config) }

func (category) Validate(value any, config domain.FieldConfiguration) (any, *domain.Error) {
	ids, err := references(value, config.Multiple)
	if err != nil {
		return nil, err
	}
	for _, id := range ids {
		if !config.CategoryTree.IsActiveLeaf(domain.ID(id)) {
			return nil, domain.NewError(domain.CodeInvalidFieldFormat, "%q is not a selectable category", id)
		}
	}
	return shape(ids, config.Multiple), nil
}

func (category) Serialize(value any, _ domain.FieldConfiguration) any { return value }

type readonly struct {
	fieldType domain.FieldType
	kind      StorageKind
}

func (r readonly) Type() domain.FieldType                            { return r.fieldType }
func (r readonly) StorageKind(domain.FieldConfiguration) StorageKind { return r.kind }
func (readonly) Default(domain.FieldConfiguration) any               { return nil }

func (r readonly) Validate(any, domain.FieldConfiguration) (any, *domain.Error) {
	return nil, domain.NewError(domain.CodeReadonlyFieldType, "%s fields cannot be written through a row payload", r.fieldType)
}

func (readonly) Serialize(value any, _ domain.FieldConfiguration) any { return value }
