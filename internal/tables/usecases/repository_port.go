package usecases

//go:generate mockgen -source=repository_port.go -destination=../../../test/unit/doubles/tables/usecases/repository_port_mock.go -package=usecases -mock_names=TableRepository=MockTableRepository,FieldRepository=MockFieldRepository,RowCollections=MockRowCollections,RowCollection=MockRowCollection,ReactionRepository=MockReactionRepository,EvaluationRepository=MockEvaluationRepository

import (
	"context"
	"time"

	"github.com/lowcodejsorg/lowcodejs-sub005/internal/tables/domain"
)

type TableFilter struct {
	Search  string
	Trashed bool
	Type    domain.TableType
}

type TableRepository interface {
	Create(ctx context.Context, table domain.Table) error
	GetByID(ctx context.Context, id domain.ID) (domain.Table, error)
	GetBySlug(ctx context.Context, slug domain.Slug) (domain.Table, error)
	FindAll(ctx context.Context, filter TableFilter, pagination Pagination) ([]domain.Table, int, error)
	Update(ctx context.Context, table domain.Table) error
	Delete(ctx context.Context, id domain.ID) error
}

type FieldRepository interface {
	Create(ctx context.Context, field domain.Field) error
	GetByID(ctx context.Context, id domain.ID) (domain.Field, error)
	FindByTable(ctx context.Context, tableID domain.ID) ([]domain.Field, error)
	FindByGroupTable(ctx context.Context, groupSlug domain.Slug) ([]domain.Field, error)
	Update(ctx context.Context, field domain.Field) error
	DeleteByTable(ctx context.Context, tableID domain.ID) error
}

type Sort struct {
	Field domain.Slug
	Order domain.SortOrder
}

// RowQuery is the storage level form of a row listing. SearchSlugs are the
// filterable fields matched against Search.
type RowQuery struct {
	Search      string
	SearchSlugs []domain.Slug
	Trashed     bool
	Sort        *Sort
	Limit       int
	Offset      int
}

// RowCollection is the physical storage of the rows of one table. Every
// method is a single atomic statement against that collection.
type RowCollection interface {
	Create(ctx context.Context, row domain.Row) error
	GetByID(ctx context.Context, id domain.ID) (domain.Row, error)
	FindByIDs(ctx context.Context, ids []domain.ID) ([]domain.Row, error)
	Find(ctx context.Context, query RowQuery) ([]domain.Row, int, error)
	// UpdateData replaces the row data when the stored version still equals
	// expected. It reports false when another writer got there first.
	UpdateData(ctx context.Context, id domain.ID, data map[string]any, expected domain.Version, at time.Time) (bool, error)
	// SetTrashed reports false when the row already was in the requested state.
	SetTrashed(ctx context.Context, id domain.ID, trashed bool, at time.Time) (bool, error)
	// Delete removes the row together with its reactions and evaluations.
	Delete(ctx context.Context, id domain.ID) error
}

type RowCollections interface {
	Open(ctx context.Context, slug domain.Slug) (RowCollection, error)
	Drop(ctx context.Context, slug domain.Slug) error
}

type ReactionRepository interface {
	// Toggle upserts the reaction of reaction.UserID in a single statement.
	// Sending the type already stored flips its trashed state.
	Toggle(ctx context.Context, reaction domain.Reaction) error
	Summaries(ctx context.Context, table domain.Slug, rowIDs []domain.ID) (map[domain.ID]map[domain.Slug]domain.ReactionSummary, error)
}

type EvaluationRepository interface {
	Upsert(ctx context.Context, evaluation domain.Evaluation) error
	Summaries(ctx context.Context, table domain.Slug, rowIDs []domain.ID) (map[domain.ID]map[domain.Slug]domain.EvaluationSummary, error)
}
