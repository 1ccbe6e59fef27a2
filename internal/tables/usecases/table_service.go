package usecases

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/lowcodejsorg/lowcodejs-sub005/internal/tables/domain"
)

type CreateTableInput struct {
	Name          string
	Type          domain.TableType
	Configuration domain.TableConfiguration
	Methods       domain.TableMethods
	Owner         domain.ID
}

// TablePatch carries the table attributes to change. Nil members are left
// untouched.
type TablePatch struct {
	Name           *string
	Visibility     *domain.Visibility
	Collaboration  *domain.Collaboration
	Administrators *[]domain.ID
	Methods        *domain.TableMethods
	ListOrder      *[]domain.Slug
	FormOrder      *[]domain.Slug
}

type TableService interface {
	CreateTable(ctx context.Context, input CreateTableInput) (domain.Table, error)
	GetTable(ctx context.Context, slug domain.Slug) (domain.Table, error)
	ListTables(ctx context.Context, filter TableFilter, pagination Pagination) (Page[domain.Table], error)
	UpdateTable(ctx context.Context, slug domain.Slug, patch TablePatch) (domain.Table, error)
	TrashTable(ctx context.Context, slug domain.Slug) (domain.Table, error)
	RestoreTable(ctx context.Context, slug domain.Slug) (domain.Table, error)
	DeleteTable(ctx context.Context, slug domain.Slug) error
}

func NewTableService(repositories Repositories, registry *Registry) *SimpleTableService {
	return &SimpleTableService{
		tables:      repositories.Tables,
		fields:      repositories.Fields,
		collections: repositories.Collections,
		registry:    registry,
	}
}

var _ TableService = (*SimpleTableService)(nil)

type SimpleTableService struct {
	tables      TableRepository
	fields      FieldRepository
	collections RowCollections
	registry    *Registry
}

func (s *SimpleTableService) CreateTable(ctx context.Context, input CreateTableInput) (domain.Table, error) {
	configuration := input.Configuration
	if configuration.Visibility == "" {
		configuration.Visibility = domain.VisibilityRestricted
	}
	if configuration.Collaboration == "" {
		configuration.Collaboration = domain.CollaborationRestricted
	}
	if configuration.Administrators == nil {
		configuration.Administrators = make([]domain.ID, 0)
	}

	tableType := input.Type
	if tableType == "" {
		tableType = domain.TableTypeTable
	}

	table, err := domain.NewTableBuilder().
		WithName(input.Name).
		WithType(tableType).
		WithConfiguration(configuration).
		WithOwner(input.Owner).
		WithMethods(input.Methods).
		Build()
	if err != nil {
		return domain.Table{}, err
	}

	return s.create(ctx, table)
}

func (s *SimpleTableService) create(ctx context.Context, table domain.Table) (domain.Table, error) {
	_, err := s.tables.GetBySlug(ctx, table.Slug)
	switch {
	case err == nil:
		return domain.Table{}, domain.NewError(domain.CodeTableSlugTaken, "a table with slug %q already exists", table.Slug)
	case !errors.Is(err, domain.ErrTableNotFound):
		return domain.Table{}, storageFailure("checking table slug", err)
	}

	table.SchemaVersion = s.registry.NextSchemaVersion(ctx, table.Slug)

	if err := s.tables.Create(ctx, table); err != nil {
		return domain.Table{}, storageFailure("creating table", err)
	}

	if table.Type == domain.TableTypeTable {
		if _, err := s.collections.Open(ctx, table.Slug); err != nil {
			return domain.Table{}, storageFailure("provisioning row collection", err)
		}
	}
	s.registry.Invalidate(ctx, table.Slug, table.SchemaVersion)

	slog.Info("table created successfully",
		slog.String("id", table.ID.String()),
		slog.String("slug", table.Slug.String()),
		slog.String("type", string(table.Type)))

	return table, nil
}

func (s *SimpleTableService) GetTable(ctx context.Context, slug domain.Slug) (domain.Table, error) {
	table, err := s.tables.GetBySlug(ctx, slug)
	if err != nil {
		return domain.Table{}, storageFailure("getting table", err)
	}
	return table, nil
}

func (s *SimpleTableService) ListTables(ctx context.Context, filter TableFilter, pagination Pagination) (Page[domain.Table], error) {
	pagination = pagination.Normalize()

	tables, total, err := s.tables.FindAll(ctx, filter, pagination)
	if err != nil {
		return Page[domain.Table]{}, storageFailure("listing tables", err)
	}

	return Page[domain.Table]{
		Data: tables,
		Meta: NewPageMeta(total, pagination),
	}, nil
}

func (s *SimpleTableService) UpdateTable(ctx context.Context, slug domain.Slug, patch TablePatch) (domain.Table, error) {
	table, err := s.GetTable(ctx, slug)
	if err != nil {
		return domain.Table{}, err
	}

	if patch.Name != nil {
		if *patch.Name == "" {
			return domain.Table{}, domain.ErrTableNameRequired
		}
		// the slug names the row collection and stays fixed
		table.Name = domain.Name(*patch.Name)
	}
	if patch.Visibility != nil {
		if !patch.Visibility.IsValid() {
			return domain.Table{}, domain.NewError(domain.CodeInvalidConfiguration, "unknown visibility %q", *patch.Visibility)
		}
		table.Configuration.Visibility = *patch.Visibility
	}
	if patch.Collaboration != nil {
		if !patch.Collaboration.IsValid() {
			return domain.Table{}, domain.NewError(domain.CodeInvalidConfiguration, "unknown collaboration %q", *patch.Collaboration)
		}
		table.Configuration.Collaboration = *patch.Collaboration
	}
	if patch.Administrators != nil {
		table.Configuration.Administrators = *patch.Administrators
	}
	if patch.Methods != nil {
		table.Methods = *patch.Methods
	}
	if patch.ListOrder != nil {
		table.Configuration.ListOrder = *patch.ListOrder
	}
	if patch.FormOrder != nil {
		table.Configuration.FormOrder = *patch.FormOrder
	}

	table, err = s.registry.Commit(ctx, table)
	if err != nil {
		return domain.Table{}, err
	}

	slog.Info("table updated successfully",
		slog.String("slug", table.Slug.String()),
		slog.Int64("schema_version", int64(table.SchemaVersion)))

	return table, nil
}

// TrashTable is idempotent. A trashed table no longer resolves to a row
// store.
func (s *SimpleTableService) TrashTable(ctx context.Context, slug domain.Slug) (domain.Table, error) {
	table, err := s.GetTable(ctx, slug)
	if err != nil {
		return domain.Table{}, err
	}
	if !table.Lifecycle.Trash(time.Now()) {
		return table, nil
	}
	return s.registry.Commit(ctx, table)
}

func (s *SimpleTableService) RestoreTable(ctx context.Context, slug domain.Slug) (domain.Table, error) {
	table, err := s.GetTable(ctx, slug)
	if err != nil {
		return domain.Table{}, err
	}
	if !table.Lifecycle.Restore() {
		return table, nil
	}
	return s.registry.Commit(ctx, table)
}

// DeleteTable removes the table metadata, its fields and its rows for good.
// A field group still embedded by an active field cannot be deleted.
func (s *SimpleTableService) DeleteTable(ctx context.Context, slug domain.Slug) error {
	table, err := s.GetTable(ctx, slug)
	if err != nil {
		return err
	}

	if table.Type == domain.TableTypeFieldGroup {
		embedding, err := s.fields.FindByGroupTable(ctx, slug)
		if err != nil {
			return storageFailure("finding embedding fields", err)
		}
		for _, field := range embedding {
			if !field.Trashed {
				return domain.NewError(domain.CodeInvalidConfiguration, "field group %q is still used by field %q", slug, field.Slug)
			}
		}
	}

	if table.Type == domain.TableTypeTable {
		if err := s.collections.Drop(ctx, slug); err != nil {
			return storageFailure("dropping row collection", err)
		}
	}
	if err := s.fields.DeleteByTable(ctx, table.ID); err != nil {
		return storageFailure("deleting fields", err)
	}
	if err := s.tables.Delete(ctx, table.ID); err != nil {
		return storageFailure("deleting table", err)
	}

	// handles cached for the deleted table become unreachable
	s.registry.Invalidate(ctx, slug, table.SchemaVersion+1)

	slog.Info("table deleted successfully",
		slog.String("id", table.ID.String()),
		slog.String("slug", slug.String()))

	return nil
}
