package domain

import "time"

// Row is a dynamic record keyed by field slug.
type Row struct {
	ID      ID
	Data    map[string]any
	Creator ID
	Lifecycle
	Version   Version
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (r Row) Value(slug Slug) (any, bool) {
	value, found := r.Data[slug.String()]
	return value, found
}

type ReactionType string

const (
	ReactionLike    ReactionType = "like"
	ReactionDislike ReactionType = "dislike"
)

func (t ReactionType) IsValid() bool {
	return t == ReactionLike || t == ReactionDislike
}

// Reaction is one user's reaction on a (row, field) pair. Resubmitting the
// same type toggles it between active and trashed.
type Reaction struct {
	ID        ID
	TableSlug Slug
	RowID     ID
	FieldSlug Slug
	UserID    ID
	Type      ReactionType
	Lifecycle
	CreatedAt time.Time
	UpdatedAt time.Time
}

type ReactionSummary struct {
	Counts map[ReactionType]int `json:"counts"`
	Total  int                  `json:"total"`
}

func NewReactionSummary() ReactionSummary {
	return ReactionSummary{Counts: make(map[ReactionType]int)}
}

type Evaluation struct {
	ID        ID
	TableSlug Slug
	RowID     ID
	FieldSlug Slug
	UserID    ID
	Value     float64
	CreatedAt time.Time
	UpdatedAt time.Time
}

type EvaluationSummary struct {
	Average float64 `json:"average"`
	Count   int     `json:"count"`
}

// FileReference is a FILE value paired with the result of the lazy existence
// check.
type FileReference struct {
	Ref    string `json:"ref"`
	Exists bool   `json:"exists"`
}

// RelatedRow is the projection of a relationship target.
type RelatedRow struct {
	ID      ID  `json:"id"`
	Display any `json:"display"`
}
