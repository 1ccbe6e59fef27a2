package schema

import (
	"encoding/json"
	"strconv"

	"github.com/cespare/xxhash/v2"
	"github.com/lowcodejsorg/lowcodejs-sub005/internal/tables/domain"
)

// Groups holds the field lists of the nested tables referenced by FIELD_GROUP
// fields, keyed by the nested table slug.
type Groups map[domain.Slug][]domain.Field

// FieldRule is the compiled validation plan of a single field.
type FieldRule struct {
	ID            domain.ID                 `json:"id"`
	Slug          domain.Slug               `json:"slug"`
	Name          domain.Name               `json:"name"`
	Type          domain.FieldType          `json:"type"`
	StorageKind   StorageKind               `json:"storageKind"`
	Position      int                       `json:"position"`
	Configuration domain.FieldConfiguration `json:"configuration"`
	Group         *Descriptor               `json:"group,omitempty"`

	descriptor TypeDescriptor
}

// Descriptor is the compiled schema of a table: the rules of its active
// fields in table order plus a version that only changes when the compiled
// rules change.
type Descriptor struct {
	Order   []domain.Slug             `json:"order"`
	BySlug  map[domain.Slug]FieldRule `json:"fields"`
	Version string                    `json:"version"`
}

// Compile builds the descriptor of fields. Trashed fields are left out so
// writes to their slug are ignored. The result is a pure function of the
// ordered input.
func Compile(fields []domain.Field, groups Groups) (Descriptor, error) {
	return compile(fields, groups, make(map[domain.Slug]bool))
}

func compile(fields []domain.Field, groups Groups, visiting map[domain.Slug]bool) (Descriptor, error) {
	result := Descriptor{
		Order:  make([]domain.Slug, 0, len(fields)),
		BySlug: make(map[domain.Slug]FieldRule, len(fields)),
	}

	for _, field := range fields {
		if field.Trashed {
			continue
		}
		if _, taken := result.BySlug[field.Slug]; taken {
			return Descriptor{}, domain.NewError(domain.CodeDuplicateFieldSlug, "slug %q is used by more than one field", field.Slug)
		}

		descriptor, err := Describe(field.Type)
		if err != nil {
			return Descriptor{}, err
		}
		if err := checkConfiguration(field, descriptor); err != nil {
			return Descriptor{}, err
		}

		rule := FieldRule{
			ID:            field.ID,
			Slug:          field.Slug,
			Name:          field.Name,
			Type:          field.Type,
			StorageKind:   descriptor.StorageKind(field.Configuration),
			Position:      len(result.Order),
			Configuration: field.Configuration,
			descriptor:    descriptor,
		}

		if field.Type == domain.FieldTypeFieldGroup {
			nested, err := compileGroup(field, groups, visiting)
			if err != nil {
				return Descriptor{}, err
			}
			rule.Group = &nested
		}

		result.Order = append(result.Order, field.Slug)
		result.BySlug[field.Slug] = rule
	}

	version, err := versionOf(result)
	if err != nil {
		return Descriptor{}, domain.NewError(domain.CodeInternal, "hashing schema: %v", err)
	}
	result.Version = version

	return result, nil
}

func compileGroup(field domain.Field, groups Groups, visiting map[domain.Slug]bool) (Descriptor, error) {
	slug := field.Configuration.Group.TableSlug
	if visiting[slug] {
		return Descriptor{}, domain.NewError(domain.CodeInvalidConfiguration, "field group %q contains itself", slug)
	}
	nestedFields, found := groups[slug]
	if !found {
		return Descriptor{}, domain.NewError(domain.CodeInvalidConfiguration, "field group %q of field %q is not loaded", slug, field.Slug)
	}

	visiting[slug] = true
	defer delete(visiting, slug)

	return compile(nestedFields, groups, visiting)
}

func checkConfiguration(field domain.Field, descriptor TypeDescriptor) error {
	config := field.Configuration

	switch field.Type {
	case domain.FieldTypeTextShort:
		if !config.Format.IsValid() {
			return domain.NewError(domain.CodeInvalidFieldFormat, "field %q has unknown format %q", field.Slug, config.Format)
		}
	case domain.FieldTypeDropdown:
		if len(config.DropdownOptions) == 0 {
			return domain.NewError(domain.CodeInvalidConfiguration, "dropdown %q has no options", field.Slug)
		}
		seen := make(map[string]bool, len(config.DropdownOptions))
		for _, option := range config.DropdownOptions {
			if option == "" || seen[option] {
				return domain.NewError(domain.CodeInvalidConfiguration, "dropdown %q has an empty or repeated option", field.Slug)
			}
			seen[option] = true
		}
	case domain.FieldTypeRelationship:
		relationship := config.Relationship
		if relationship == nil || relationship.TargetTableSlug == "" {
			return domain.NewError(domain.CodeInvalidConfiguration, "relationship %q has no target table", field.Slug)
		}
		if relationship.Order != "" && relationship.Order != domain.SortAsc && relationship.Order != domain.SortDesc {
			return domain.NewError(domain.CodeInvalidConfiguration, "relationship %q has unknown order %q", field.Slug, relationship.Order)
		}
	case domain.FieldTypeFieldGroup:
		if config.Group == nil || config.Group.TableSlug == "" {
			return domain.NewError(domain.CodeInvalidConfiguration, "field group %q has no nested table", field.Slug)
		}
		return nil
	case domain.FieldTypeEvaluation:
		if config.Evaluation != nil && config.Evaluation.Max <= config.Evaluation.Min {
			return domain.NewError(domain.CodeInvalidConfiguration, "evaluation %q has an empty range", field.Slug)
		}
	}

	if config.DefaultValue != nil && !field.Type.IsReadOnly() && !isEmpty(config.DefaultValue) {
		if _, err := descriptor.Validate(config.DefaultValue, config); err != nil {
			return domain.NewError(domain.CodeInvalidConfiguration, "default value of %q is invalid: %s", field.Slug, err.Message)
		}
	}

	return nil
}

type versionedRule struct {
	ID            domain.ID                 `json:"id"`
	Slug          domain.Slug               `json:"slug"`
	Type          domain.FieldType          `json:"type"`
	Configuration domain.FieldConfiguration `json:"configuration"`
	Group         string                    `json:"group,omitempty"`
}

func versionOf(d Descriptor) (string, error) {
	rules := make([]versionedRule, 0, len(d.Order))
	for _, slug := range d.Order {
		rule := d.BySlug[slug]
		entry := versionedRule{
			ID:            rule.ID,
			Slug:          rule.Slug,
			Type:          rule.Type,
			Configuration: rule.Configuration,
		}
		if rule.Group != nil {
			entry.Group = rule.Group.Version
		}
		rules = append(rules, entry)
	}

	digest := xxhash.New()
	if err := json.NewEncoder(digest).Encode(rules); err != nil {
		return "", err
	}
	return strconv.FormatUint(digest.Sum64(), 16), nil
}

func (d Descriptor) Rule(slug domain.Slug) (FieldRule, bool) {
	rule, found := d.BySlug[slug]
	return rule, found
}

// Rules returns the compiled rules in table order.
func (d Descriptor) Rules() []FieldRule {
	result := make([]FieldRule, 0, len(d.Order))
	for _, slug := range d.Order {
		result = append(result, d.BySlug[slug])
	}
	return result
}

func (d Descriptor) RulesOfType(t domain.FieldType) []FieldRule {
	result := make([]FieldRule, 0)
	for _, rule := range d.Rules() {
		if rule.Type == t {
			result = append(result, rule)
		}
	}
	return result
}

// Filterable returns the rules searched by the row listing.
func (d Descriptor) Filterable() []FieldRule {
	result := make([]FieldRule, 0)
	for _, rule := range d.Rules() {
		if rule.Configuration.Filtering && !rule.Type.IsReadOnly() && rule.Type != domain.FieldTypeFieldGroup {
			result = append(result, rule)
		}
	}
	return result
}
