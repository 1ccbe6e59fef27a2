package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/lowcodejsorg/lowcodejs-sub005/internal/infra/sql"
	"github.com/lowcodejsorg/lowcodejs-sub005/internal/tables/domain"
	"github.com/lowcodejsorg/lowcodejs-sub005/internal/tables/persistence/internal"
	"github.com/lowcodejsorg/lowcodejs-sub005/internal/tables/usecases"
)

func NewFieldRepository(orm sql.ORM) (*SimpleFieldRepository, error) {
	err := orm.AutoMigrate(&internal.Field{})
	if err != nil {
		return nil, fmt.Errorf("auto migrating: %w", err)
	}

	return &SimpleFieldRepository{
		orm: orm,
	}, nil
}

var _ usecases.FieldRepository = (*SimpleFieldRepository)(nil)

type SimpleFieldRepository struct {
	orm sql.ORM
}

func (r *SimpleFieldRepository) Create(ctx context.Context, field domain.Field) error {
	entity := internal.FromField(field)

	err := r.orm.WithContext(ctx).Create(&entity).Error()
	if err != nil {
		return storageError("creating field in database", err)
	}

	return nil
}

func (r *SimpleFieldRepository) GetByID(ctx context.Context, id domain.ID) (domain.Field, error) {
	var entity internal.Field
	err := r.orm.
		WithContext(ctx).
		First(&entity, "id = ?", id.String()).
		Error()

	if errors.Is(err, sql.ErrRecordNotFound) {
		return domain.Field{}, domain.NewError(domain.CodeFieldNotFound, "field %q not found", id)
	}
	if err != nil {
		return domain.Field{}, storageError("database query", err)
	}

	return entity.ToDomain(), nil
}

func (r *SimpleFieldRepository) FindByTable(ctx context.Context, tableID domain.ID) ([]domain.Field, error) {
	return r.find(ctx, "table_id = ?", tableID.String())
}

func (r *SimpleFieldRepository) FindByGroupTable(ctx context.Context, groupSlug domain.Slug) ([]domain.Field, error) {
	return r.find(ctx, "group_table_slug = ?", groupSlug.String())
}

func (r *SimpleFieldRepository) find(ctx context.Context, query string, args ...any) ([]domain.Field, error) {
	var entities []internal.Field
	err := r.orm.
		WithContext(ctx).
		Where(query, args...).
		Order("created_at ASC, id ASC").
		Find(&entities).
		Error()
	if err != nil {
		return nil, storageError("database query", err)
	}

	result := make([]domain.Field, len(entities))
	for i, entity := range entities {
		result[i] = entity.ToDomain()
	}

	return result, nil
}

func (r *SimpleFieldRepository) Update(ctx context.Context, field domain.Field) error {
	entity := internal.FromField(field)

	err := r.orm.WithContext(ctx).Save(&entity).Error()
	if err != nil {
		return storageError("updating field in database", err)
	}

	return nil
}

func (r *SimpleFieldRepository) DeleteByTable(ctx context.Context, tableID domain.ID) error {
	err := r.orm.WithContext(ctx).Delete(&internal.Field{}, "table_id = ?", tableID.String()).Error()
	if err != nil {
		return storageError("deleting fields from database", err)
	}

	return nil
}
