package internal

import (
	"time"

	"github.com/lowcodejsorg/lowcodejs-sub005/internal/tables/domain"

	"gorm.io/datatypes"
)

type Table struct {
	ID            string                                        `json:"id" gorm:"primaryKey"`
	Name          string                                        `json:"name" gorm:"not null"`
	Slug          string                                        `json:"slug" gorm:"uniqueIndex;not null"`
	Type          string                                        `json:"type" gorm:"index;not null"`
	FieldIDs      datatypes.JSONSlice[string]                   `json:"field_ids"`
	Configuration datatypes.JSONType[domain.TableConfiguration] `json:"configuration"`
	Methods       datatypes.JSONType[domain.TableMethods]       `json:"methods"`
	Trashed       bool                                          `json:"trashed" gorm:"index;not null;default:false"`
	TrashedAt     *time.Time                                    `json:"trashed_at,omitempty"`
	SchemaVersion int64                                         `json:"schema_version" gorm:"not null;default:1"`
	CreatedAt     time.Time                                     `json:"created_at"`
	UpdatedAt     time.Time                                     `json:"updated_at"`
}

func (Table) TableName() string {
	return "tables"
}

func FromTable(value domain.Table) Table {
	fieldIDs := make([]string, len(value.FieldIDs))
	for i, id := range value.FieldIDs {
		fieldIDs[i] = id.String()
	}

	return Table{
		ID:            value.ID.String(),
		Name:          value.Name.String(),
		Slug:          value.Slug.String(),
		Type:          string(value.Type),
		FieldIDs:      datatypes.NewJSONSlice(fieldIDs),
		Configuration: datatypes.NewJSONType(value.Configuration),
		Methods:       datatypes.NewJSONType(value.Methods),
		Trashed:       value.Trashed,
		TrashedAt:     value.TrashedAt,
		SchemaVersion: int64(value.SchemaVersion),
		CreatedAt:     value.CreatedAt,
		UpdatedAt:     value.UpdatedAt,
	}
}

func (m Table) ToDomain() domain.Table {
	fieldIDs := make([]domain.ID, len(m.FieldIDs))
	for i, id := range m.FieldIDs {
		fieldIDs[i] = domain.ID(id)
	}

	configuration := m.Configuration.Data()
	if configuration.Administrators == nil {
		configuration.Administrators = make([]domain.ID, 0)
	}

	return domain.Table{
		ID:            domain.ID(m.ID),
		Name:          domain.Name(m.Name),
		Slug:          domain.Slug(m.Slug),
		Type:          domain.TableType(m.Type),
		FieldIDs:      fieldIDs,
		Configuration: configuration,
		Methods:       m.Methods.Data(),
		Lifecycle: domain.Lifecycle{
			Trashed:   m.Trashed,
			TrashedAt: m.TrashedAt,
		},
		SchemaVersion: domain.Version(m.SchemaVersion),
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}
