package usecases

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/lowcodejsorg/lowcodejs-sub005/internal/infra/cache"
	"github.com/lowcodejsorg/lowcodejs-sub005/internal/infra/metrics"
	"github.com/lowcodejsorg/lowcodejs-sub005/internal/tables/domain"
	"github.com/lowcodejsorg/lowcodejs-sub005/internal/tables/schema"
)

const DefaultHandleTTL = 10 * time.Minute

type RegistryConfig struct {
	HandleTTL time.Duration
}

type Repositories struct {
	Tables      TableRepository
	Fields      FieldRepository
	Collections RowCollections
	Reactions   ReactionRepository
	Evaluations EvaluationRepository
}

// Registry resolves table slugs to row store handles. Handles are cached
// under slug@generation, where the generation is the schema version last
// published for the slug. Publishing a newer generation makes the next
// Resolve rebuild the handle while requests already holding the old handle
// finish against the old descriptor.
type Registry struct {
	repositories Repositories
	files        ObjectStorage
	ids          IDGenerator
	handles      cache.Cache
	generations  cache.GenerationStore
	recorder     *metrics.Recorder
	ttl          time.Duration
}

func NewRegistry(
	repositories Repositories,
	files ObjectStorage,
	ids IDGenerator,
	handles cache.Cache,
	generations cache.GenerationStore,
	recorder *metrics.Recorder,
	config RegistryConfig,
) *Registry {
	ttl := config.HandleTTL
	if ttl <= 0 {
		ttl = DefaultHandleTTL
	}

	return &Registry{
		repositories: repositories,
		files:        files,
		ids:          ids,
		handles:      handles,
		generations:  generations,
		recorder:     recorder,
		ttl:          ttl,
	}
}

func handleKey(slug domain.Slug, generation int64) string {
	return fmt.Sprintf("%s@%d", slug, generation)
}

// Resolve returns the row store bound to the current schema of slug.
func (r *Registry) Resolve(ctx context.Context, slug domain.Slug) (*RowStore, error) {
	generation, found, err := r.generations.Get(ctx, slug.String())
	if err != nil {
		slog.Warn("reading table generation, building uncached handle",
			slog.String("table", slug.String()),
			slog.String("error", err.Error()))
		return r.build(ctx, slug)
	}

	if !found {
		table, err := r.activeTable(ctx, slug)
		if err != nil {
			return nil, err
		}
		generation = int64(table.SchemaVersion)
		r.publish(ctx, slug, generation)
	}

	loaded := false
	value, err := r.handles.GetOrSet(ctx, handleKey(slug, generation), r.ttl, func() (any, error) {
		loaded = true
		return r.build(ctx, slug)
	})
	if err != nil {
		return nil, err
	}

	if loaded {
		r.recorder.RegistryMiss(ctx, slug.String())
	} else {
		r.recorder.RegistryHit(ctx, slug.String())
	}

	store := value.(*RowStore)
	if int64(store.table.SchemaVersion) > generation {
		r.publish(ctx, slug, int64(store.table.SchemaVersion))
	}
	return store, nil
}

// Invalidate publishes version as the generation of slug and drops the
// handle cached for the previous one.
func (r *Registry) Invalidate(ctx context.Context, slug domain.Slug, version domain.Version) {
	r.publish(ctx, slug, int64(version))
	r.handles.Delete(ctx, handleKey(slug, int64(version)-1))
}

// NextSchemaVersion returns a version strictly above any generation already
// published for slug, so a table recreated under a deleted slug never
// collides with handles cached for its predecessor.
func (r *Registry) NextSchemaVersion(ctx context.Context, slug domain.Slug) domain.Version {
	generation, found, err := r.generations.Get(ctx, slug.String())
	if err != nil || !found {
		return 1
	}
	return domain.Version(generation + 1)
}

// Commit persists a metadata change of table under a bumped schema version
// and publishes it. Tables embedding table through a FIELD_GROUP field are
// committed as well since their compiled schema contains it.
func (r *Registry) Commit(ctx context.Context, table domain.Table) (domain.Table, error) {
	committed, err := r.commit(ctx, table, make(map[domain.ID]bool))
	if err != nil {
		return domain.Table{}, err
	}
	return committed, nil
}

func (r *Registry) commit(ctx context.Context, table domain.Table, seen map[domain.ID]bool) (domain.Table, error) {
	seen[table.ID] = true

	table.BumpSchemaVersion(time.Now())
	if err := r.repositories.Tables.Update(ctx, table); err != nil {
		return domain.Table{}, storageFailure("updating table", err)
	}
	r.Invalidate(ctx, table.Slug, table.SchemaVersion)

	if table.Type != domain.TableTypeFieldGroup {
		return table, nil
	}

	embedding, err := r.repositories.Fields.FindByGroupTable(ctx, table.Slug)
	if err != nil {
		return domain.Table{}, storageFailure("finding embedding fields", err)
	}
	for _, field := range embedding {
		if seen[field.TableID] {
			continue
		}
		parent, err := r.repositories.Tables.GetByID(ctx, field.TableID)
		if err != nil {
			return domain.Table{}, storageFailure("loading embedding table", err)
		}
		if _, err := r.commit(ctx, parent, seen); err != nil {
			return domain.Table{}, err
		}
	}
	return table, nil
}

func (r *Registry) publish(ctx context.Context, slug domain.Slug, generation int64) {
	if err := r.generations.Publish(ctx, slug.String(), generation); err != nil {
		slog.Error("publishing table generation",
			slog.String("table", slug.String()),
			slog.Int64("generation", generation),
			slog.String("error", err.Error()))
	}
}

func (r *Registry) activeTable(ctx context.Context, slug domain.Slug) (domain.Table, error) {
	table, err := r.repositories.Tables.GetBySlug(ctx, slug)
	if err != nil {
		return domain.Table{}, storageFailure("loading table", err)
	}
	if table.Trashed {
		return domain.Table{}, domain.NewError(domain.CodeTableNotFound, "table %q is in the trash", slug)
	}
	return table, nil
}

func (r *Registry) build(ctx context.Context, slug domain.Slug) (*RowStore, error) {
	table, err := r.activeTable(ctx, slug)
	if err != nil {
		return nil, err
	}

	fields, err := r.orderedFields(ctx, table)
	if err != nil {
		return nil, err
	}

	descriptor, err := r.Compile(ctx, fields)
	if err != nil {
		slog.Error("compiling table schema",
			slog.String("table", slug.String()),
			slog.String("error", err.Error()))
		return nil, err
	}
	r.recorder.SchemaCompiled(ctx, slug.String())

	rows, err := r.repositories.Collections.Open(ctx, slug)
	if err != nil {
		return nil, storageFailure("opening row collection", err)
	}

	slog.Debug("row store handle built",
		slog.String("table", slug.String()),
		slog.Int64("schema_version", int64(table.SchemaVersion)),
		slog.String("descriptor_version", descriptor.Version))

	return &RowStore{
		table:       table,
		descriptor:  descriptor,
		rows:        rows,
		reactions:   r.repositories.Reactions,
		evaluations: r.repositories.Evaluations,
		files:       r.files,
		ids:         r.ids,
		registry:    r,
		recorder:    r.recorder,
	}, nil
}

// Compile compiles fields, loading the nested tables of FIELD_GROUP fields.
func (r *Registry) Compile(ctx context.Context, fields []domain.Field) (schema.Descriptor, error) {
	groups := make(schema.Groups)
	if err := r.loadGroups(ctx, fields, groups); err != nil {
		return schema.Descriptor{}, err
	}
	return schema.Compile(fields, groups)
}

func (r *Registry) loadGroups(ctx context.Context, fields []domain.Field, groups schema.Groups) error {
	for _, field := range fields {
		if field.Trashed || field.Type != domain.FieldTypeFieldGroup || field.Configuration.Group == nil {
			continue
		}
		slug := field.Configuration.Group.TableSlug
		if _, loaded := groups[slug]; loaded {
			continue
		}

		group, err := r.repositories.Tables.GetBySlug(ctx, slug)
		if errors.Is(err, domain.ErrTableNotFound) {
			// compiling reports the missing group with the field that needs it
			continue
		}
		if err != nil {
			return storageFailure("loading field group", err)
		}

		nested, err := r.orderedFields(ctx, group)
		if err != nil {
			return err
		}
		groups[slug] = nested

		if err := r.loadGroups(ctx, nested, groups); err != nil {
			return err
		}
	}
	return nil
}

// orderedFields returns the fields of table in the order of table.FieldIDs.
// Fields missing from that list follow, oldest first.
func (r *Registry) orderedFields(ctx context.Context, table domain.Table) ([]domain.Field, error) {
	fields, err := r.repositories.Fields.FindByTable(ctx, table.ID)
	if err != nil {
		return nil, storageFailure("loading fields", err)
	}
	return orderFields(table.FieldIDs, fields), nil
}

func orderFields(order []domain.ID, fields []domain.Field) []domain.Field {
	position := make(map[domain.ID]int, len(order))
	for i, id := range order {
		position[id] = i
	}

	result := append([]domain.Field(nil), fields...)
	sort.SliceStable(result, func(i, j int) bool {
		pi, iKnown := position[result[i].ID]
		pj, jKnown := position[result[j].ID]
		switch {
		case iKnown && jKnown:
			return pi < pj
		case iKnown != jKnown:
			return iKnown
		default:
			return result[i].CreatedAt.Before(result[j].CreatedAt)
		}
	})
	return result
}
