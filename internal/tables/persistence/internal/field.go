package internal

import (
	"time"

	"github.com/lowcodejsorg/lowcodejs-sub005/internal/infra/utils"
	"github.com/lowcodejsorg/lowcodejs-sub005/internal/tables/domain"

	"gorm.io/datatypes"
)

type Field struct {
	ID            string                                        `json:"id" gorm:"primaryKey"`
	TableID       string                                        `json:"table_id" gorm:"index;not null"`
	Name          string                                        `json:"name" gorm:"not null"`
	Slug          string                                        `json:"slug" gorm:"not null"`
	Type          string                                        `json:"type" gorm:"not null"`
	Configuration datatypes.JSONType[domain.FieldConfiguration] `json:"configuration"`
	// GroupTableSlug mirrors configuration.group so embedding fields can be
	// found without decoding every configuration.
	GroupTableSlug *string    `json:"group_table_slug,omitempty" gorm:"index"`
	Trashed        bool       `json:"trashed" gorm:"not null;default:false"`
	TrashedAt      *time.Time `json:"trashed_at,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

func (Field) TableName() string {
	return "fields"
}

func FromField(value domain.Field) Field {
	var group *string
	if value.Configuration.Group != nil {
		group = utils.StringPtr(value.Configuration.Group.TableSlug.String())
	}

	return Field{
		ID:             value.ID.String(),
		TableID:        value.TableID.String(),
		Name:           value.Name.String(),
		Slug:           value.Slug.String(),
		Type:           string(value.Type),
		Configuration:  datatypes.NewJSONType(value.Configuration),
		GroupTableSlug: group,
		Trashed:        value.Trashed,
		TrashedAt:      value.TrashedAt,
		CreatedAt:      value.CreatedAt,
		UpdatedAt:      value.UpdatedAt,
	}
}

func (m Field) ToDomain() domain.Field {
	return domain.Field{
		ID:            domain.ID(m.ID),
		TableID:       domain.ID(m.TableID),
		Name:          domain.Name(m.Name),
		Slug:          domain.Slug(m.Slug),
		Type:          domain.FieldType(m.Type),
		Configuration: m.Configuration.Data(),
		Lifecycle: domain.Lifecycle{
			Trashed:   m.Trashed,
			TrashedAt: m.TrashedAt,
		},
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}
