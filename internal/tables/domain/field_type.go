package domain

type FieldType string

const (
	FieldTypeTextShort    FieldType = "TEXT_SHORT"
	FieldTypeTextLong     FieldType = "TEXT_LONG"
	FieldTypeDropdown     FieldType = "DROPDOWN"
	FieldTypeDate         FieldType = "DATE"
	FieldTypeFile         FieldType = "FILE"
	FieldTypeRelationship FieldType = "RELATIONSHIP"
	FieldTypeFieldGroup   FieldType = "FIELD_GROUP"
	FieldTypeCategory     FieldType = "CATEGORY"
	FieldTypeReaction     FieldType = "REACTION"
	FieldTypeEvaluation   FieldType = "EVALUATION"
)

var fieldTypes = []FieldType{
	FieldTypeTextShort,
	FieldTypeTextLong,
	FieldTypeDropdown,
	FieldTypeDate,
	FieldTypeFile,
	FieldTypeRelationship,
	FieldTypeFieldGroup,
	FieldTypeCategory,
	FieldTypeReaction,
	FieldTypeEvaluation,
}

func FieldTypes() []FieldType {
	return append([]FieldType(nil), fieldTypes...)
}

func (t FieldType) IsValid() bool {
	for _, known := range fieldTypes {
		if t == known {
			return true
		}
	}
	return false
}

// IsReadOnly reports types that are only mutated through their dedicated
// operations and never through a row payload.
func (t FieldType) IsReadOnly() bool {
	return t == FieldTypeReaction || t == FieldTypeEvaluation
}

// SupportsMultiple reports types whose values switch between a scalar and a
// list depending on the multiple flag.
func (t FieldType) SupportsMultiple() bool {
	switch t {
	case FieldTypeDropdown, FieldTypeFile, FieldTypeRelationship, FieldTypeCategory:
		return true
	default:
		return false
	}
}

type TextFormat string

const (
	TextFormatAlphanumeric TextFormat = "alphanumeric"
	TextFormatInteger      TextFormat = "integer"
	TextFormatDecimal      TextFormat = "decimal"
	TextFormatURL          TextFormat = "url"
	TextFormatEmail        TextFormat = "email"
)

func (f TextFormat) IsValid() bool {
	switch f {
	case "", TextFormatAlphanumeric, TextFormatInteger, TextFormatDecimal, TextFormatURL, TextFormatEmail:
		return true
	default:
		return false
	}
}

type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)
