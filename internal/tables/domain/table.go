package domain

import (
	"time"

	"github.com/lowcodejsorg/lowcodejs-sub005/internal/infra/utils"
)

type TableType string

const (
	TableTypeTable      TableType = "table"
	TableTypeFieldGroup TableType = "field-group"
)

type Visibility string

const (
	VisibilityPublic     Visibility = "public"
	VisibilityRestricted Visibility = "restricted"
	VisibilityOpen       Visibility = "open"
	VisibilityForm       Visibility = "form"
)

func (v Visibility) IsValid() bool {
	switch v {
	case VisibilityPublic, VisibilityRestricted, VisibilityOpen, VisibilityForm:
		return true
	default:
		return false
	}
}

type Collaboration string

const (
	CollaborationOpen       Collaboration = "open"
	CollaborationRestricted Collaboration = "restricted"
)

func (c Collaboration) IsValid() bool {
	return c == CollaborationOpen || c == CollaborationRestricted
}

type TableConfiguration struct {
	Owner          ID
	Administrators []ID
	Visibility     Visibility
	Collaboration  Collaboration
	ListOrder      []Slug
	FormOrder      []Slug
}

// TableMethods holds the opaque script hooks. They are stored and returned
// verbatim and never executed here.
type TableMethods struct {
	OnLoad     string
	BeforeSave string
	AfterSave  string
}

type Table struct {
	ID            ID
	Name          Name
	Slug          Slug
	Type          TableType
	FieldIDs      []ID
	Configuration TableConfiguration
	Methods       TableMethods
	Lifecycle
	SchemaVersion Version
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (t Table) IsOwner(user ID) bool {
	return user != "" && t.Configuration.Owner == user
}

func (t Table) IsAdministrator(user ID) bool {
	if user == "" {
		return false
	}
	for _, admin := range t.Configuration.Administrators {
		if admin == user {
			return true
		}
	}
	return false
}

// CollectionName is the physical row collection bound to the table.
func (t Table) CollectionName() string {
	return CollectionName(t.Slug)
}

func CollectionName(slug Slug) string {
	return "rows_" + slug.String()
}

// BumpSchemaVersion marks the table metadata as changed so cached row store
// handles are rebuilt.
func (t *Table) BumpSchemaVersion(now time.Time) {
	t.SchemaVersion++
	t.UpdatedAt = now.UTC()
}

func NewTableBuilder() *tableBuilder {
	return &tableBuilder{}
}

type tableBuilder struct {
	actions []tableHandler
}

type tableHandler func(v *Table) error

func (b *tableBuilder) WithID(value ID) *tableBuilder {
	b.actions = append(b.actions, func(d *Table) error {
		d.ID = value
		return nil
	})
	return b
}

// WithName also derives the slug unless one is set explicitly afterwards.
func (b *tableBuilder) WithName(value string) *tableBuilder {
	b.actions = append(b.actions, func(d *Table) error {
		d.Name = Name(value)
		d.Slug = Slug(utils.Slugify(value))
		return nil
	})
	return b
}

func (b *tableBuilder) WithSlug(value string) *tableBuilder {
	b.actions = append(b.actions, func(d *Table) error {
		d.Slug = Slug(value)
		return nil
	})
	return b
}

func (b *tableBuilder) WithType(value TableType) *tableBuilder {
	b.actions = append(b.actions, func(d *Table) error {
		d.Type = value
		return nil
	})
	return b
}

func (b *tableBuilder) WithOwner(value ID) *tableBuilder {
	b.actions = append(b.actions, func(d *Table) error {
		d.Configuration.Owner = value
		return nil
	})
	return b
}

func (b *tableBuilder) WithAdministrators(value ...ID) *tableBuilder {
	b.actions = append(b.actions, func(d *Table) error {
		d.Configuration.Administrators = value
		return nil
	})
	return b
}

func (b *tableBuilder) WithVisibility(value Visibility) *tableBuilder {
	b.actions = append(b.actions, func(d *Table) error {
		d.Configuration.Visibility = value
		return nil
	})
	return b
}

func (b *tableBuilder) WithCollaboration(value Collaboration) *tableBuilder {
	b.actions = append(b.actions, func(d *Table) error {
		d.Configuration.Collaboration = value
		return nil
	})
	return b
}

func (b *tableBuilder) WithConfiguration(value TableConfiguration) *tableBuilder {
	b.actions = append(b.actions, func(d *Table) error {
		d.Configuration = value
		return nil
	})
	return b
}

func (b *tableBuilder) WithMethods(value TableMethods) *tableBuilder {
	b.actions = append(b.actions, func(d *Table) error {
		d.Methods = value
		return nil
	})
	return b
}

func (b *tableBuilder) WithFieldIDs(value ...ID) *tableBuilder {
	b.actions = append(b.actions, func(d *Table) error {
		d.FieldIDs = value
		return nil
	})
	return b
}

func (b *tableBuilder) Build() (Table, error) {
	now := time.Now().UTC()
	result := Table{
		ID:       ID(utils.GenerateUUID()),
		Type:     TableTypeTable,
		FieldIDs: make([]ID, 0),
		Configuration: TableConfiguration{
			Administrators: make([]ID, 0),
			Visibility:     VisibilityRestricted,
			Collaboration:  CollaborationRestricted,
		},
		SchemaVersion: 1,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	for _, a := range b.actions {
		if err := a(&result); err != nil {
			return Table{}, err
		}
	}

	if result.Name == "" {
		return Table{}, ErrTableNameRequired
	}
	if !utils.IsSlug(result.Slug.String()) {
		return Table{}, NewError(CodeInvalidSlug, "table slug %q is not a valid slug", result.Slug)
	}
	if !result.Configuration.Visibility.IsValid() {
		return Table{}, NewError(CodeInvalidConfiguration, "unknown visibility %q", result.Configuration.Visibility)
	}
	if !result.Configuration.Collaboration.IsValid() {
		return Table{}, NewError(CodeInvalidConfiguration, "unknown collaboration %q", result.Configuration.Collaboration)
	}
	if result.Type != TableTypeTable && result.Type != TableTypeFieldGroup {
		return Table{}, NewError(CodeInvalidConfiguration, "unknown table type %q", result.Type)
	}

	return result, nil
}
