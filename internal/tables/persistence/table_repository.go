package persistence

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/lowcodejsorg/lowcodejs-sub005/internal/infra/sql"
	"github.com/lowcodejsorg/lowcodejs-sub005/internal/tables/domain"
	"github.com/lowcodejsorg/lowcodejs-sub005/internal/tables/persistence/internal"
	"github.com/lowcodejsorg/lowcodejs-sub005/internal/tables/usecases"
)

func NewTableRepository(orm sql.ORM) (*SimpleTableRepository, error) {
	err := orm.AutoMigrate(&internal.Table{})
	if err != nil {
		return nil, fmt.Errorf("auto migrating: %w", err)
	}

	return &SimpleTableRepository{
		orm: orm,
	}, nil
}

var _ usecases.TableRepository = (*SimpleTableRepository)(nil)

type SimpleTableRepository struct {
	orm sql.ORM
}

func (r *SimpleTableRepository) Create(ctx context.Context, table domain.Table) error {
	entity := internal.FromTable(table)

	err := r.orm.WithContext(ctx).Create(&entity).Error()
	if errors.Is(err, sql.ErrDuplicatedKey) {
		return domain.NewError(domain.CodeTableSlugTaken, "a table with slug %q already exists", table.Slug)
	}
	if err != nil {
		return storageError("creating table in database", err)
	}

	return nil
}

func (r *SimpleTableRepository) GetByID(ctx context.Context, id domain.ID) (domain.Table, error) {
	var entity internal.Table
	err := r.orm.
		WithContext(ctx).
		First(&entity, "id = ?", id.String()).
		Error()

	if errors.Is(err, sql.ErrRecordNotFound) {
		return domain.Table{}, domain.NewError(domain.CodeTableNotFound, "table %q not found", id)
	}
	if err != nil {
		return domain.Table{}, storageError("database query", err)
	}

	return entity.ToDomain(), nil
}

func (r *SimpleTableRepository) GetBySlug(ctx context.Context, slug domain.Slug) (domain.Table, error) {
	var entity internal.Table
	err := r.orm.
		WithContext(ctx).
		First(&entity, "slug = ?", slug.String()).
		Error()

	if errors.Is(err, sql.ErrRecordNotFound) {
		return domain.Table{}, domain.NewError(domain.CodeTableNotFound, "table %q not found", slug)
	}
	if err != nil {
		return domain.Table{}, storageError("database query", err)
	}

	return entity.ToDomain(), nil
}

func (r *SimpleTableRepository) FindAll(
	ctx context.Context,
	filter usecases.TableFilter,
	pagination usecases.Pagination,
) ([]domain.Table, int, error) {
	scope := func() sql.ORM {
		query := r.orm.WithContext(ctx).Model(&internal.Table{}).Where("trashed = ?", filter.Trashed)
		if filter.Type != "" {
			query = query.Where("type = ?", string(filter.Type))
		}
		if search := strings.TrimSpace(filter.Search); search != "" {
			pattern := likePattern(search)
			query = query.Where("(LOWER(name) LIKE ? ESCAPE '\\' OR slug LIKE ? ESCAPE '\\')", pattern, pattern)
		}
		return query
	}

	var total int64
	err := scope().Count(&total).Error()
	if err != nil {
		return nil, 0, storageError("count query", err)
	}

	var entities []internal.Table
	err = scope().
		Order("created_at ASC, id ASC").
		Limit(pagination.Limit()).
		Offset(pagination.Offset()).
		Find(&entities).
		Error()
	if err != nil {
		return nil, 0, storageError("database query", err)
	}

	result := make([]domain.Table, len(entities))
	for i, entity := range entities {
		result[i] = entity.ToDomain()
	}

	return result, int(total), nil
}

func (r *SimpleTableRepository) Update(ctx context.Context, table domain.Table) error {
	entity := internal.FromTable(table)

	err := r.orm.WithContext(ctx).Save(&entity).Error()
	if err != nil {
		return storageError("updating table in database", err)
	}

	return nil
}

func (r *SimpleTableRepository) Delete(ctx context.Context, id domain.ID) error {
	err := r.orm.WithContext(ctx).Delete(&internal.Table{}, "id = ?", id.String()).Error()
	if err != nil {
		return storageError("deleting table from database", err)
	}

	return nil
}

// likePattern lowercases term and escapes the LIKE wildcards in it.
func likePattern(term string) string {
	escaped := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(strings.ToLower(term))
	return "%" + escaped + "%"
}
