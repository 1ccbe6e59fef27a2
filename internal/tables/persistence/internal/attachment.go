package internal

import (
	"time"

	"github.com/lowcodejsorg/lowcodejs-sub005/internal/tables/domain"
)

// Reaction holds one reaction per (table, row, field, user).
type Reaction struct {
	ID        string     `json:"id" gorm:"primaryKey"`
	TableSlug string     `json:"table_slug" gorm:"uniqueIndex:idx_row_reactions_key;not null"`
	RowID     string     `json:"row_id" gorm:"uniqueIndex:idx_row_reactions_key;not null"`
	FieldSlug string     `json:"field_slug" gorm:"uniqueIndex:idx_row_reactions_key;not null"`
	UserID    string     `json:"user_id" gorm:"uniqueIndex:idx_row_reactions_key;not null"`
	Type      string     `json:"type" gorm:"not null"`
	Trashed   bool       `json:"trashed" gorm:"not null;default:false"`
	TrashedAt *time.Time `json:"trashed_at,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

func (Reaction) TableName() string {
	return "row_reactions"
}

func FromReaction(value domain.Reaction) Reaction {
	return Reaction{
		ID:        value.ID.String(),
		TableSlug: value.TableSlug.String(),
		RowID:     value.RowID.String(),
		FieldSlug: value.FieldSlug.String(),
		UserID:    value.UserID.String(),
		Type:      string(value.Type),
		Trashed:   value.Trashed,
		TrashedAt: value.TrashedAt,
		CreatedAt: value.CreatedAt,
		UpdatedAt: value.UpdatedAt,
	}
}

func (m Reaction) ToDomain() domain.Reaction {
	return domain.Reaction{
		ID:        domain.ID(m.ID),
		TableSlug: domain.Slug(m.TableSlug),
		RowID:     domain.ID(m.RowID),
		FieldSlug: domain.Slug(m.FieldSlug),
		UserID:    domain.ID(m.UserID),
		Type:      domain.ReactionType(m.Type),
		Lifecycle: domain.Lifecycle{
			Trashed:   m.Trashed,
			TrashedAt: m.TrashedAt,
		},
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

// Evaluation holds one rating per (table, row, field, user).
type Evaluation struct {
	ID        string    `json:"id" gorm:"primaryKey"`
	TableSlug string    `json:"table_slug" gorm:"uniqueIndex:idx_row_evaluations_key;not null"`
	RowID     string    `json:"row_id" gorm:"uniqueIndex:idx_row_evaluations_key;not null"`
	FieldSlug string    `json:"field_slug" gorm:"uniqueIndex:idx_row_evaluations_key;not null"`
	UserID    string    `json:"user_id" gorm:"uniqueIndex:idx_row_evaluations_key;not null"`
	Value     float64   `json:"value" gorm:"not null"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Evaluation) TableName() string {
	return "row_evaluations"
}

func FromEvaluation(value domain.Evaluation) Evaluation {
	return Evaluation{
		ID:        value.ID.String(),
		TableSlug: value.TableSlug.String(),
		RowID:     value.RowID.String(),
		FieldSlug: value.FieldSlug.String(),
		UserID:    value.UserID.String(),
		Value:     value.Value,
		CreatedAt: value.CreatedAt,
		UpdatedAt: value.UpdatedAt,
	}
}

// ReactionCount and EvaluationAggregate receive the grouped summary queries.
type ReactionCount struct {
	RowID     string
	FieldSlug string
	Type      string
	Total     int
}

type EvaluationAggregate struct {
	RowID     string
	FieldSlug string
	Average   float64
	Total     int
}
