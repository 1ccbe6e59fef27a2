package domain

import (
	"time"

	"github.com/lowcodejsorg/lowcodejs-sub005/internal/infra/utils"
)

const (
	DefaultEvaluationMin = 1.0
	DefaultEvaluationMax = 5.0
)

type RelationshipConfig struct {
	TargetTableSlug  Slug
	DisplayFieldSlug Slug
	Order            SortOrder
}

type GroupConfig struct {
	TableSlug Slug
}

type EvaluationConfig struct {
	Min float64
	Max float64
}

type FieldConfiguration struct {
	Required        bool
	Multiple        bool
	DefaultValue    any
	Format          TextFormat
	DropdownOptions []string
	Relationship    *RelationshipConfig
	CategoryTree    CategoryTree
	Evaluation      *EvaluationConfig
	Listing         bool
	Filtering       bool
	Group           *GroupConfig
}

// EvaluationRange returns the accepted rating bounds, 1..5 unless configured.
func (c FieldConfiguration) EvaluationRange() (float64, float64) {
	if c.Evaluation == nil || c.Evaluation.Max <= c.Evaluation.Min {
		return DefaultEvaluationMin, DefaultEvaluationMax
	}
	return c.Evaluation.Min, c.Evaluation.Max
}

type Field struct {
	ID            ID
	TableID       ID
	Name          Name
	Slug          Slug
	Type          FieldType
	Configuration FieldConfiguration
	Lifecycle
	CreatedAt time.Time
	UpdatedAt time.Time
}

func NewFieldBuilder() *fieldBuilder {
	return &fieldBuilder{}
}

type fieldBuilder struct {
	actions []fieldHandler
}

type fieldHandler func(v *Field) error

func (b *fieldBuilder) WithID(value ID) *fieldBuilder {
	b.actions = append(b.actions, func(d *Field) error {
		d.ID = value
		return nil
	})
	return b
}

func (b *fieldBuilder) WithTableID(value ID) *fieldBuilder {
	b.actions = append(b.actions, func(d *Field) error {
		d.TableID = value
		return nil
	})
	return b
}

// WithName also derives the slug unless one is set explicitly afterwards.
func (b *fieldBuilder) WithName(value string) *fieldBuilder {
	b.actions = append(b.actions, func(d *Field) error {
		d.Name = Name(value)
		d.Slug = Slug(utils.Slugify(value))
		return nil
	})
	return b
}

func (b *fieldBuilder) WithSlug(value string) *fieldBuilder {
	b.actions = append(b.actions, func(d *Field) error {
		d.Slug = Slug(value)
		return nil
	})
	return b
}

func (b *fieldBuilder) WithType(value FieldType) *fieldBuilder {
	b.actions = append(b.actions, func(d *Field) error {
		d.Type = value
		return nil
	})
	return b
}

func (b *fieldBuilder) WithConfiguration(value FieldConfiguration) *fieldBuilder {
	b.actions = append(b.actions, func(d *Field) error {
		d.Configuration = value
		return nil
	})
	return b
}

func (b *fieldBuilder) Required() *fieldBuilder {
	b.actions = append(b.actions, func(d *Field) error {
		d.Configuration.Required = true
		return nil
	})
	return b
}

func (b *fieldBuilder) Trashed(at time.Time) *fieldBuilder {
	b.actions = append(b.actions, func(d *Field) error {
		d.Lifecycle.Trash(at)
		return nil
	})
	return b
}

func (b *fieldBuilder) Build() (Field, error) {
	now := time.Now().UTC()
	result := Field{
		ID:        ID(utils.GenerateUUID()),
		CreatedAt: now,
		UpdatedAt: now,
	}

	for _, a := range b.actions {
		if err := a(&result); err != nil {
			return Field{}, err
		}
	}

	if result.Name == "" {
		return Field{}, ErrFieldNameRequired
	}
	if !utils.IsSlug(result.Slug.String()) {
		return Field{}, NewError(CodeInvalidSlug, "field slug %q is not a valid slug", result.Slug)
	}
	if !result.Type.IsValid() {
		return Field{}, NewError(CodeInvalidFieldType, "unknown field type %q", result.Type)
	}
	if !result.Configuration.Format.IsValid() {
		return Field{}, NewError(CodeInvalidFieldFormat, "unknown text format %q", result.Configuration.Format)
	}

	return result, nil
}
