package persistence

import (
	"context"
	"fmt"

	"github.com/lowcodejsorg/lowcodejs-sub005/internal/infra/sql"
	"github.com/lowcodejsorg/lowcodejs-sub005/internal/tables/domain"
	"github.com/lowcodejsorg/lowcodejs-sub005/internal/tables/persistence/internal"
	"github.com/lowcodejsorg/lowcodejs-sub005/internal/tables/usecases"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var attachmentKey = []clause.Column{
	{Name: "table_slug"},
	{Name: "row_id"},
	{Name: "field_slug"},
	{Name: "user_id"},
}

func NewReactionRepository(orm sql.ORM) (*SimpleReactionRepository, error) {
	err := orm.AutoMigrate(&internal.Reaction{})
	if err != nil {
		return nil, fmt.Errorf("auto migrating: %w", err)
	}

	return &SimpleReactionRepository{
		orm: orm,
	}, nil
}

var _ usecases.ReactionRepository = (*SimpleReactionRepository)(nil)

type SimpleReactionRepository struct {
	orm sql.ORM
}

// Toggle inserts the reaction or, when the user already reacted, resolves the
// conflict in the same statement: the same type flips the trashed state and
// a different type replaces it and is active again.
func (r *SimpleReactionRepository) Toggle(ctx context.Context, reaction domain.Reaction) error {
	entity := internal.FromReaction(reaction)

	upsert := clause.OnConflict{
		Columns: attachmentKey,
		DoUpdates: clause.Set{
			{
				Column: clause.Column{Name: "trashed"},
				Value:  gorm.Expr("CASE WHEN row_reactions.type = excluded.type THEN NOT row_reactions.trashed ELSE ? END", false),
			},
			{
				Column: clause.Column{Name: "trashed_at"},
				Value:  gorm.Expr("CASE WHEN row_reactions.type = excluded.type AND NOT row_reactions.trashed THEN excluded.updated_at ELSE NULL END"),
			},
			{Column: clause.Column{Name: "type"}, Value: gorm.Expr("excluded.type")},
			{Column: clause.Column{Name: "updated_at"}, Value: gorm.Expr("excluded.updated_at")},
		},
	}

	err := r.orm.WithContext(ctx).Clauses(upsert).Create(&entity).Error()
	if err != nil {
		return storageError("upserting reaction in database", err)
	}

	return nil
}

func (r *SimpleReactionRepository) Summaries(
	ctx context.Context,
	table domain.Slug,
	rowIDs []domain.ID,
) (map[domain.ID]map[domain.Slug]domain.ReactionSummary, error) {
	result := make(map[domain.ID]map[domain.Slug]domain.ReactionSummary)
	if len(rowIDs) == 0 {
		return result, nil
	}

	var counts []internal.ReactionCount
	err := r.orm.
		WithContext(ctx).
		Model(&internal.Reaction{}).
		Select("row_id, field_slug, type, COUNT(*) AS total").
		Where("table_slug = ? AND row_id IN ? AND trashed = ?", table.String(), rawIDs(rowIDs), false).
		Group("row_id, field_slug, type").
		Scan(&counts).
		Error()
	if err != nil {
		return nil, storageError("summarizing reactions", err)
	}

	for _, count := range counts {
		rowID := domain.ID(count.RowID)
		fieldSlug := domain.Slug(count.FieldSlug)
		if result[rowID] == nil {
			result[rowID] = make(map[domain.Slug]domain.ReactionSummary)
		}
		summary, found := result[rowID][fieldSlug]
		if !found {
			summary = domain.NewReactionSummary()
		}
		summary.Counts[domain.ReactionType(count.Type)] += count.Total
		summary.Total += count.Total
		result[rowID][fieldSlug] = summary
	}

	return result, nil
}

func rawIDs(ids []domain.ID) []string {
	result := make([]string, len(ids))
	for i, id := range ids {
		result[i] = id.String()
	}
	return result
}
