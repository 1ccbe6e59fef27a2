package persistence

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/lowcodejsorg/lowcodejs-sub005/internal/infra/sql"
	"github.com/lowcodejsorg/lowcodejs-sub005/internal/tables/domain"
	"github.com/lowcodejsorg/lowcodejs-sub005/internal/tables/persistence/internal"
	"github.com/lowcodejsorg/lowcodejs-sub005/internal/tables/usecases"

	"gorm.io/datatypes"
	"gorm.io/gorm/clause"
)

// NewRowCollections returns the provider of the physical row collections.
// Every table gets its own rows_<slug> collection created on first use.
func NewRowCollections(orm sql.ORM) *SimpleRowCollections {
	return &SimpleRowCollections{
		orm: orm,
	}
}

var _ usecases.RowCollections = (*SimpleRowCollections)(nil)

type SimpleRowCollections struct {
	orm      sql.ORM
	migrated sync.Map
}

func (c *SimpleRowCollections) Open(ctx context.Context, slug domain.Slug) (usecases.RowCollection, error) {
	name := domain.CollectionName(slug)

	if _, done := c.migrated.Load(name); !done {
		if err := c.migrate(ctx, name); err != nil {
			return nil, err
		}
		c.migrated.Store(name, true)
	}

	return &SimpleRowCollection{
		orm:   c.orm,
		table: slug,
		name:  name,
	}, nil
}

func (c *SimpleRowCollections) migrate(ctx context.Context, name string) error {
	err := c.orm.Table(name).AutoMigrate(&internal.Row{})
	if err != nil {
		return fmt.Errorf("auto migrating %s: %w", name, err)
	}

	// index names are global in both dialects so they carry the collection
	for _, column := range []string{"trashed", "created_at"} {
		err := c.orm.WithContext(ctx).Exec(
			"CREATE INDEX IF NOT EXISTS ? ON ? (?)",
			clause.Table{Name: fmt.Sprintf("idx_%s_%s", name, column)},
			clause.Table{Name: name},
			clause.Column{Name: column},
		).Error()
		if err != nil {
			return storageError("indexing "+name, err)
		}
	}

	slog.Debug("row collection ready", slog.String("collection", name))
	return nil
}

// Drop removes the collection together with the reactions and evaluations
// of its rows.
func (c *SimpleRowCollections) Drop(ctx context.Context, slug domain.Slug) error {
	name := domain.CollectionName(slug)

	err := c.orm.WithContext(ctx).Transaction(func(tx sql.ORM) error {
		if err := tx.Delete(&internal.Reaction{}, "table_slug = ?", slug.String()).Error(); err != nil {
			return err
		}
		if err := tx.Delete(&internal.Evaluation{}, "table_slug = ?", slug.String()).Error(); err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		return storageError("deleting attachments of "+name, err)
	}

	if err := c.orm.DropTable(name); err != nil {
		return storageError("dropping "+name, err)
	}
	c.migrated.Delete(name)

	slog.Info("row collection dropped", slog.String("collection", name))
	return nil
}

var _ usecases.RowCollection = (*SimpleRowCollection)(nil)

type SimpleRowCollection struct {
	orm   sql.ORM
	table domain.Slug
	name  string
}

func (r *SimpleRowCollection) rows(ctx context.Context) sql.ORM {
	return r.orm.WithContext(ctx).Table(r.name)
}

func (r *SimpleRowCollection) rowNotFound(id domain.ID) error {
	return domain.NewError(domain.CodeRowNotFound, "row %q not found in %s", id, r.table)
}

func (r *SimpleRowCollection) Create(ctx context.Context, row domain.Row) error {
	entity := internal.FromRow(row)

	err := r.rows(ctx).Create(&entity).Error()
	if err != nil {
		return storageError("creating row in database", err)
	}

	return nil
}

func (r *SimpleRowCollection) GetByID(ctx context.Context, id domain.ID) (domain.Row, error) {
	var entity internal.Row
	err := r.rows(ctx).
		First(&entity, "id = ?", id.String()).
		Error()

	if errors.Is(err, sql.ErrRecordNotFound) {
		return domain.Row{}, r.rowNotFound(id)
	}
	if err != nil {
		return domain.Row{}, storageError("database query", err)
	}

	return entity.ToDomain(), nil
}

func (r *SimpleRowCollection) FindByIDs(ctx context.Context, ids []domain.ID) ([]domain.Row, error) {
	if len(ids) == 0 {
		return []domain.Row{}, nil
	}

	raw := make([]string, len(ids))
	for i, id := range ids {
		raw[i] = id.String()
	}

	var entities []internal.Row
	err := r.rows(ctx).Where("id IN ?", raw).Find(&entities).Error()
	if err != nil {
		return nil, storageError("database query", err)
	}

	return toDomainRows(entities), nil
}

func (r *SimpleRowCollection) Find(ctx context.Context, query usecases.RowQuery) ([]domain.Row, int, error) {
	dialect := r.orm.Dialect()

	scope := func() sql.ORM {
		tx := r.rows(ctx).Where("trashed = ?", query.Trashed)
		if query.Search != "" && len(query.SearchSlugs) > 0 {
			pattern := likePattern(query.Search)
			conditions := make([]string, len(query.SearchSlugs))
			args := make([]any, len(query.SearchSlugs))
			for i, slug := range query.SearchSlugs {
				conditions[i] = fmt.Sprintf("LOWER(%s) LIKE ? ESCAPE '\\'", jsonText(dialect, slug))
				args[i] = pattern
			}
			tx = tx.Where("("+strings.Join(conditions, " OR ")+")", args...)
		}
		return tx
	}

	var total int64
	err := scope().Count(&total).Error()
	if err != nil {
		return nil, 0, storageError("count query", err)
	}

	var entities []internal.Row
	err = scope().
		Order(orderBy(dialect, query.Sort)).
		Limit(query.Limit).
		Offset(query.Offset).
		Find(&entities).
		Error()
	if err != nil {
		return nil, 0, storageError("database query", err)
	}

	return toDomainRows(entities), int(total), nil
}

func (r *SimpleRowCollection) UpdateData(ctx context.Context, id domain.ID, data map[string]any, expected domain.Version, at time.Time) (bool, error) {
	tx := r.rows(ctx).
		Where("id = ? AND version = ?", id.String(), int64(expected)).
		Updates(map[string]any{
			"data":       datatypes.JSONMap(data),
			"version":    int64(expected) + 1,
			"updated_at": at,
		})
	if err := tx.Error(); err != nil {
		return false, storageError("updating row in database", err)
	}
	if tx.RowsAffected() > 0 {
		return true, nil
	}

	return false, r.mustExist(ctx, id)
}

func (r *SimpleRowCollection) SetTrashed(ctx context.Context, id domain.ID, trashed bool, at time.Time) (bool, error) {
	var trashedAt *time.Time
	if trashed {
		trashedAt = &at
	}

	tx := r.rows(ctx).
		Where("id = ? AND trashed = ?", id.String(), !trashed).
		Updates(map[string]any{
			"trashed":    trashed,
			"trashed_at": trashedAt,
			"updated_at": at,
		})
	if err := tx.Error(); err != nil {
		return false, storageError("trashing row in database", err)
	}
	if tx.RowsAffected() > 0 {
		return true, nil
	}

	return false, r.mustExist(ctx, id)
}

func (r *SimpleRowCollection) mustExist(ctx context.Context, id domain.ID) error {
	var count int64
	err := r.rows(ctx).Where("id = ?", id.String()).Count(&count).Error()
	if err != nil {
		return storageError("database query", err)
	}
	if count == 0 {
		return r.rowNotFound(id)
	}
	return nil
}

func (r *SimpleRowCollection) Delete(ctx context.Context, id domain.ID) error {
	err := r.orm.WithContext(ctx).Transaction(func(tx sql.ORM) error {
		deleted := tx.Table(r.name).Delete(&internal.Row{}, "id = ?", id.String())
		if err := deleted.Error(); err != nil {
			return err
		}
		if deleted.RowsAffected() == 0 {
			return r.rowNotFound(id)
		}

		attachment := "table_slug = ? AND row_id = ?"
		if err := tx.Delete(&internal.Reaction{}, attachment, r.table.String(), id.String()).Error(); err != nil {
			return err
		}
		return tx.Delete(&internal.Evaluation{}, attachment, r.table.String(), id.String()).Error()
	})

	var domainErr *domain.Error
	if errors.As(err, &domainErr) {
		return err
	}
	if err != nil {
		return storageError("deleting row from database", err)
	}

	return nil
}

// jsonText is the dialect specific text of the field slug inside data.
// Slugs are restricted to [a-z0-9_] so they are safe to inline.
func jsonText(dialect string, slug domain.Slug) string {
	if dialect == sql.DriverPostgres {
		return fmt.Sprintf("data->>'%s'", slug)
	}
	return fmt.Sprintf("CAST(json_extract(data, '$.%s') AS TEXT)", slug)
}

func orderBy(dialect string, sort *usecases.Sort) string {
	if sort == nil {
		return "created_at ASC, id ASC"
	}

	direction := "ASC"
	if sort.Order == domain.SortDesc {
		direction = "DESC"
	}

	var column string
	switch sort.Field {
	case "createdAt":
		column = "created_at"
	case "updatedAt":
		column = "updated_at"
	default:
		column = jsonText(dialect, sort.Field)
	}
	return fmt.Sprintf("%s %s, id ASC", column, direction)
}

func toDomainRows(entities []internal.Row) []domain.Row {
	result := make([]domain.Row, len(entities))
	for i, entity := range entities {
		result[i] = entity.ToDomain()
	}
	return result
}
