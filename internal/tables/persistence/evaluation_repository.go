package persistence

import (
	"context"
	"fmt"

	"github.com/lowcodejsorg/lowcodejs-sub005/internal/infra/sql"
	"github.com/lowcodejsorg/lowcodejs-sub005/internal/tables/domain"
	"github.com/lowcodejsorg/lowcodejs-sub005/internal/tables/persistence/internal"
	"github.com/lowcodejsorg/lowcodejs-sub005/internal/tables/usecases"

	"gorm.io/gorm/clause"
)

func NewEvaluationRepository(orm sql.ORM) (*SimpleEvaluationRepository, error) {
	err := orm.AutoMigrate(&internal.Evaluation{})
	if err != nil {
		return nil, fmt.Errorf("auto migrating: %w", err)
	}

	return &SimpleEvaluationRepository{
		orm: orm,
	}, nil
}

var _ usecases.EvaluationRepository = (*SimpleEvaluationRepository)(nil)

type SimpleEvaluationRepository struct {
	orm sql.ORM
}

// Upsert keeps a single evaluation per user. A later value replaces the
// earlier one in the same statement.
func (r *SimpleEvaluationRepository) Upsert(ctx context.Context, evaluation domain.Evaluation) error {
	entity := internal.FromEvaluation(evaluation)

	upsert := clause.OnConflict{
		Columns:   attachmentKey,
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}

	err := r.orm.WithContext(ctx).Clauses(upsert).Create(&entity).Error()
	if err != nil {
		return storageError("upserting evaluation in database", err)
	}

	return nil
}

func (r *SimpleEvaluationRepository) Summaries(
	ctx context.Context,
	table domain.Slug,
	rowIDs []domain.ID,
) (map[domain.ID]map[domain.Slug]domain.EvaluationSummary, error) {
	result := make(map[domain.ID]map[domain.Slug]domain.EvaluationSummary)
	if len(rowIDs) == 0 {
		return result, nil
	}

	var aggregates []internal.EvaluationAggregate
	err := r.orm.
		WithContext(ctx).
		Model(&internal.Evaluation{}).
		Select("row_id, field_slug, AVG(value) AS average, COUNT(*) AS total").
		Where("table_slug = ? AND row_id IN ?", table.String(), rawIDs(rowIDs)).
		Group("row_id, field_slug").
		Scan(&aggregates).
		Error()
	if err != nil {
		return nil, storageError("summarizing evaluations", err)
	}

	for _, aggregate := range aggregates {
		rowID := domain.ID(aggregate.RowID)
		if result[rowID] == nil {
			result[rowID] = make(map[domain.Slug]domain.EvaluationSummary)
		}
		result[rowID][domain.Slug(aggregate.FieldSlug)] = domain.EvaluationSummary{
			Average: aggregate.Average,
			Count:   aggregate.Total,
		}
	}

	return result, nil
}
