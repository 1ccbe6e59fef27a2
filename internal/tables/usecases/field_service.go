package usecases

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/lowcodejsorg/lowcodejs-sub005/internal/tables/domain"
)

type CreateFieldInput struct {
	Name          string
	Type          domain.FieldType
	Configuration domain.FieldConfiguration
}

// FieldPatch carries the field attributes to change. The slug and the type
// of a field never change.
type FieldPatch struct {
	Name          *string
	Configuration *domain.FieldConfiguration
}

type FieldService interface {
	CreateField(ctx context.Context, tableSlug domain.Slug, input CreateFieldInput) (domain.Field, error)
	UpdateField(ctx context.Context, tableSlug domain.Slug, id domain.ID, patch FieldPatch) (domain.Field, error)
	TrashField(ctx context.Context, tableSlug domain.Slug, id domain.ID) (domain.Field, error)
	RestoreField(ctx context.Context, tableSlug domain.Slug, id domain.ID) (domain.Field, error)
	ReorderFields(ctx context.Context, tableSlug domain.Slug, order []domain.ID) (domain.Table, error)
	ListFields(ctx context.Context, tableSlug domain.Slug) ([]domain.Field, error)
	TrashCategoryNode(ctx context.Context, tableSlug, fieldSlug domain.Slug, node domain.ID, cascade bool) (domain.Field, error)
	RestoreCategoryNode(ctx context.Context, tableSlug, fieldSlug domain.Slug, node domain.ID) (domain.Field, error)
}

func NewFieldService(repositories Repositories, registry *Registry) *SimpleFieldService {
	return &SimpleFieldService{
		tables:   repositories.Tables,
		fields:   repositories.Fields,
		registry: registry,
	}
}

var _ FieldService = (*SimpleFieldService)(nil)

type SimpleFieldService struct {
	tables   TableRepository
	fields   FieldRepository
	registry *Registry
}

func (s *SimpleFieldService) CreateField(ctx context.Context, tableSlug domain.Slug, input CreateFieldInput) (domain.Field, error) {
	table, err := s.activeTable(ctx, tableSlug)
	if err != nil {
		return domain.Field{}, err
	}

	field, err := domain.NewFieldBuilder().
		WithTableID(table.ID).
		WithName(input.Name).
		WithType(input.Type).
		WithConfiguration(input.Configuration).
		Build()
	if err != nil {
		return domain.Field{}, err
	}

	if field.Type == domain.FieldTypeFieldGroup {
		group, err := s.groupTable(ctx, table, field)
		if err != nil {
			return domain.Field{}, err
		}
		field.Configuration.Group = &domain.GroupConfig{TableSlug: group.Slug}
	}

	if err := s.checkCompiles(ctx, table, field); err != nil {
		return domain.Field{}, err
	}

	if err := s.fields.Create(ctx, field); err != nil {
		return domain.Field{}, storageFailure("creating field", err)
	}

	table.FieldIDs = append(table.FieldIDs, field.ID)
	if _, err := s.registry.Commit(ctx, table); err != nil {
		return domain.Field{}, err
	}

	slog.Info("field created successfully",
		slog.String("table", table.Slug.String()),
		slog.String("slug", field.Slug.String()),
		slog.String("type", string(field.Type)))

	return field, nil
}

// groupTable returns the nested table of a FIELD_GROUP field, creating
// <table>_<field> when the configuration names none.
func (s *SimpleFieldService) groupTable(ctx context.Context, parent domain.Table, field domain.Field) (domain.Table, error) {
	if field.Configuration.Group != nil && field.Configuration.Group.TableSlug != "" {
		group, err := s.tables.GetBySlug(ctx, field.Configuration.Group.TableSlug)
		if errors.Is(err, domain.ErrTableNotFound) {
			return domain.Table{}, domain.NewError(domain.CodeInvalidConfiguration, "field group table %q does not exist", field.Configuration.Group.TableSlug)
		}
		if err != nil {
			return domain.Table{}, storageFailure("loading field group table", err)
		}
		if group.Type != domain.TableTypeFieldGroup {
			return domain.Table{}, domain.NewError(domain.CodeInvalidConfiguration, "table %q is not a field group", group.Slug)
		}
		return group, nil
	}

	slug := domain.Slug(parent.Slug.String() + "_" + field.Slug.String())
	group, err := s.tables.GetBySlug(ctx, slug)
	if err == nil {
		if group.Type != domain.TableTypeFieldGroup {
			return domain.Table{}, domain.NewError(domain.CodeTableSlugTaken, "a table with slug %q already exists", slug)
		}
		return group, nil
	}
	if !errors.Is(err, domain.ErrTableNotFound) {
		return domain.Table{}, storageFailure("loading field group table", err)
	}

	group, err = domain.NewTableBuilder().
		WithName(field.Name.String()).
		WithSlug(slug.String()).
		WithType(domain.TableTypeFieldGroup).
		WithOwner(parent.Configuration.Owner).
		Build()
	if err != nil {
		return domain.Table{}, err
	}
	group.SchemaVersion = s.registry.NextSchemaVersion(ctx, slug)

	if err := s.tables.Create(ctx, group); err != nil {
		return domain.Table{}, storageFailure("creating field group table", err)
	}
	s.registry.Invalidate(ctx, slug, group.SchemaVersion)

	slog.Info("field group table created",
		slog.String("table", parent.Slug.String()),
		slog.String("group", slug.String()))

	return group, nil
}

func (s *SimpleFieldService) UpdateField(ctx context.Context, tableSlug domain.Slug, id domain.ID, patch FieldPatch) (domain.Field, error) {
	table, field, err := s.fieldOf(ctx, tableSlug, id)
	if err != nil {
		return domain.Field{}, err
	}

	if patch.Name != nil {
		if *patch.Name == "" {
			return domain.Field{}, domain.ErrFieldNameRequired
		}
		field.Name = domain.Name(*patch.Name)
	}
	if patch.Configuration != nil {
		configuration := *patch.Configuration
		if field.Type == domain.FieldTypeFieldGroup && (configuration.Group == nil || configuration.Group.TableSlug == "") {
			configuration.Group = field.Configuration.Group
		}
		if !configuration.Format.IsValid() {
			return domain.Field{}, domain.NewError(domain.CodeInvalidFieldFormat, "unknown text format %q", configuration.Format)
		}
		field.Configuration = configuration
	}
	field.UpdatedAt = time.Now().UTC()

	return s.save(ctx, table, field, true)
}

// TrashField is idempotent. Stored row values of the field are kept but are
// no longer validated or returned.
func (s *SimpleFieldService) TrashField(ctx context.Context, tableSlug domain.Slug, id domain.ID) (domain.Field, error) {
	table, field, err := s.fieldOf(ctx, tableSlug, id)
	if err != nil {
		return domain.Field{}, err
	}
	if !field.Lifecycle.Trash(time.Now()) {
		return field, nil
	}
	return s.save(ctx, table, field, false)
}

// RestoreField fails with DUPLICATE_FIELD_SLUG when an active field took the
// slug in the meantime.
func (s *SimpleFieldService) RestoreField(ctx context.Context, tableSlug domain.Slug, id domain.ID) (domain.Field, error) {
	table, field, err := s.fieldOf(ctx, tableSlug, id)
	if err != nil {
		return domain.Field{}, err
	}
	if !field.Lifecycle.Restore() {
		return field, nil
	}
	return s.save(ctx, table, field, true)
}

// ReorderFields sets the field order of the table. order must list every
// field of the table exactly once.
func (s *SimpleFieldService) ReorderFields(ctx context.Context, tableSlug domain.Slug, order []domain.ID) (domain.Table, error) {
	table, err := s.activeTable(ctx, tableSlug)
	if err != nil {
		return domain.Table{}, err
	}

	fields, err := s.fields.FindByTable(ctx, table.ID)
	if err != nil {
		return domain.Table{}, storageFailure("loading fields", err)
	}

	known := make(map[domain.ID]bool, len(fields))
	for _, field := range fields {
		known[field.ID] = true
	}
	if len(order) != len(known) {
		return domain.Table{}, domain.NewError(domain.CodeInvalidConfiguration, "order lists %d fields, table has %d", len(order), len(known))
	}
	listed := make(map[domain.ID]bool, len(order))
	for _, id := range order {
		if !known[id] || listed[id] {
			return domain.Table{}, domain.NewError(domain.CodeInvalidConfiguration, "order must list every field once, %q is unexpected", id)
		}
		listed[id] = true
	}

	table.FieldIDs = append([]domain.ID(nil), order...)
	return s.registry.Commit(ctx, table)
}

// ListFields returns every field of the table in table order, trashed ones
// included.
func (s *SimpleFieldService) ListFields(ctx context.Context, tableSlug domain.Slug) ([]domain.Field, error) {
	table, err := s.tables.GetBySlug(ctx, tableSlug)
	if err != nil {
		return nil, storageFailure("getting table", err)
	}
	return s.registry.orderedFields(ctx, table)
}

// TrashCategoryNode trashes a node of a CATEGORY field tree. A node with
// active children is only trashed together with them, and only when cascade
// confirms it.
func (s *SimpleFieldService) TrashCategoryNode(ctx context.Context, tableSlug, fieldSlug domain.Slug, node domain.ID, cascade bool) (domain.Field, error) {
	table, field, err := s.categoryField(ctx, tableSlug, fieldSlug)
	if err != nil {
		return domain.Field{}, err
	}

	tree, err := field.Configuration.CategoryTree.Trash(node, cascade, time.Now())
	if err != nil {
		return domain.Field{}, err
	}
	field.Configuration.CategoryTree = tree
	field.UpdatedAt = time.Now().UTC()

	return s.save(ctx, table, field, false)
}

func (s *SimpleFieldService) RestoreCategoryNode(ctx context.Context, tableSlug, fieldSlug domain.Slug, node domain.ID) (domain.Field, error) {
	table, field, err := s.categoryField(ctx, tableSlug, fieldSlug)
	if err != nil {
		return domain.Field{}, err
	}

	tree, err := field.Configuration.CategoryTree.Restore(node)
	if err != nil {
		return domain.Field{}, err
	}
	field.Configuration.CategoryTree = tree
	field.UpdatedAt = time.Now().UTC()

	return s.save(ctx, table, field, false)
}

func (s *SimpleFieldService) categoryField(ctx context.Context, tableSlug, fieldSlug domain.Slug) (domain.Table, domain.Field, error) {
	table, err := s.activeTable(ctx, tableSlug)
	if err != nil {
		return domain.Table{}, domain.Field{}, err
	}

	fields, err := s.fields.FindByTable(ctx, table.ID)
	if err != nil {
		return domain.Table{}, domain.Field{}, storageFailure("loading fields", err)
	}
	for _, field := range fields {
		if field.Slug != fieldSlug || field.Trashed {
			continue
		}
		if field.Type != domain.FieldTypeCategory {
			return domain.Table{}, domain.Field{}, domain.NewError(domain.CodeFieldTypeMismatch, "field %q is %s, not %s", fieldSlug, field.Type, domain.FieldTypeCategory)
		}
		return table, field, nil
	}
	return domain.Table{}, domain.Field{}, domain.NewError(domain.CodeFieldNotFound, "table %q has no field %q", tableSlug, fieldSlug)
}

func (s *SimpleFieldService) activeTable(ctx context.Context, slug domain.Slug) (domain.Table, error) {
	return s.registry.activeTable(ctx, slug)
}

func (s *SimpleFieldService) fieldOf(ctx context.Context, tableSlug domain.Slug, id domain.ID) (domain.Table, domain.Field, error) {
	table, err := s.activeTable(ctx, tableSlug)
	if err != nil {
		return domain.Table{}, domain.Field{}, err
	}

	field, err := s.fields.GetByID(ctx, id)
	if err != nil {
		return domain.Table{}, domain.Field{}, storageFailure("getting field", err)
	}
	if field.TableID != table.ID {
		return domain.Table{}, domain.Field{}, domain.NewError(domain.CodeFieldNotFound, "table %q has no field %q", tableSlug, id)
	}
	return table, field, nil
}

// save persists field and commits its table. With check set the table must
// still compile with the changed field in place.
func (s *SimpleFieldService) save(ctx context.Context, table domain.Table, field domain.Field, check bool) (domain.Field, error) {
	if check {
		if err := s.checkCompiles(ctx, table, field); err != nil {
			return domain.Field{}, err
		}
	}

	if err := s.fields.Update(ctx, field); err != nil {
		return domain.Field{}, storageFailure("updating field", err)
	}
	if _, err := s.registry.Commit(ctx, table); err != nil {
		return domain.Field{}, err
	}

	slog.Info("field updated successfully",
		slog.String("table", table.Slug.String()),
		slog.String("slug", field.Slug.String()),
		slog.String("state", string(field.State())))

	return field, nil
}

// checkCompiles compiles the table with field added or replaced.
func (s *SimpleFieldService) checkCompiles(ctx context.Context, table domain.Table, field domain.Field) error {
	fields, err := s.registry.orderedFields(ctx, table)
	if err != nil {
		return err
	}

	replaced := false
	for i := range fields {
		if fields[i].ID == field.ID {
			fields[i] = field
			replaced = true
		}
	}
	if !replaced {
		fields = append(fields, field)
	}

	_, err = s.registry.Compile(ctx, fields)
	return err
}
