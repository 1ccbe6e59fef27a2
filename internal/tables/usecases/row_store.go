package usecases

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/lowcodejsorg/lowcodejs-sub005/internal/infra/metrics"
	"github.com/lowcodejsorg/lowcodejs-sub005/internal/tables/domain"
	"github.com/lowcodejsorg/lowcodejs-sub005/internal/tables/schema"
)

// MaxUpdateAttempts bounds the optimistic retries of Update.
const MaxUpdateAttempts = 5

type RowFilter struct {
	Search  string
	Trashed bool
	Sort    *Sort
}

// RowStore executes row operations against one table. A handle is immutable
// and keeps validating against the descriptor it was built with.
type RowStore struct {
	table       domain.Table
	descriptor  schema.Descriptor
	rows        RowCollection
	reactions   ReactionRepository
	evaluations EvaluationRepository
	files       ObjectStorage
	ids         IDGenerator
	registry    *Registry
	recorder    *metrics.Recorder
}

func (s *RowStore) Table() domain.Table {
	return s.table
}

func (s *RowStore) Descriptor() schema.Descriptor {
	return s.descriptor
}

// observe starts timing operation. The returned func records it with the
// final error of the caller.
func (s *RowStore) observe(ctx context.Context, operation string) func(*error) {
	start := time.Now()
	return func(err *error) {
		s.recorder.RowOperation(ctx, s.table.Slug.String(), operation, start, *err)
	}
}

func (s *RowStore) Create(ctx context.Context, payload map[string]any, creator domain.ID) (row domain.Row, err error) {
	defer s.observe(ctx, "create")(&err)

	data, err := s.descriptor.ValidateCreate(payload)
	if err != nil {
		return domain.Row{}, err
	}

	now := time.Now().UTC()
	row = domain.Row{
		ID:        s.ids.NewID(),
		Data:      data,
		Creator:   creator,
		Version:   1,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err = s.rows.Create(ctx, row); err != nil {
		return domain.Row{}, storageFailure("creating row", err)
	}

	slog.Info("row created",
		slog.String("table", s.table.Slug.String()),
		slog.String("id", row.ID.String()))

	return s.present(ctx, row)
}

func (s *RowStore) FindOne(ctx context.Context, id domain.ID) (row domain.Row, err error) {
	defer s.observe(ctx, "find_one")(&err)

	row, err = s.rows.GetByID(ctx, id)
	if err != nil {
		return domain.Row{}, storageFailure("getting row", err)
	}
	return s.present(ctx, row)
}

func (s *RowStore) FindPaginated(ctx context.Context, filter RowFilter, pagination Pagination) (page Page[domain.Row], err error) {
	defer s.observe(ctx, "find_paginated")(&err)

	query := RowQuery{
		Search:  strings.TrimSpace(filter.Search),
		Trashed: filter.Trashed,
		Limit:   pagination.Limit(),
		Offset:  pagination.Offset(),
	}
	for _, rule := range s.descriptor.Filterable() {
		query.SearchSlugs = append(query.SearchSlugs, rule.Slug)
	}
	if filter.Sort != nil {
		sortBy, err := s.sortOf(*filter.Sort)
		if err != nil {
			return Page[domain.Row]{}, err
		}
		query.Sort = sortBy
	}

	rows, total, err := s.rows.Find(ctx, query)
	if err != nil {
		return Page[domain.Row]{}, storageFailure("listing rows", err)
	}

	presented, err := s.presentAll(ctx, rows)
	if err != nil {
		return Page[domain.Row]{}, err
	}

	return Page[domain.Row]{
		Data: presented,
		Meta: NewPageMeta(total, pagination),
	}, nil
}

// sortOf accepts the row timestamps and any active stored field.
func (s *RowStore) sortOf(requested Sort) (*Sort, error) {
	order := requested.Order
	if order == "" {
		order = domain.SortAsc
	}
	if order != domain.SortAsc && order != domain.SortDesc {
		return nil, domain.NewError(domain.CodeInvalidConfiguration, "unknown sort order %q", requested.Order)
	}

	switch requested.Field {
	case "createdAt", "updatedAt":
		return &Sort{Field: requested.Field, Order: order}, nil
	}

	rule, found := s.descriptor.Rule(requested.Field)
	if !found || rule.Type.IsReadOnly() || rule.Type == domain.FieldTypeFieldGroup {
		return nil, domain.NewError(domain.CodeFieldNotFound, "cannot sort by %q", requested.Field)
	}
	return &Sort{Field: requested.Field, Order: order}, nil
}

// Update validates only the fields present in patch and merges them into the
// stored row. Concurrent updates of disjoint fields never overwrite each
// other: the merge is written with a version check and retried.
func (s *RowStore) Update(ctx context.Context, id domain.ID, patch map[string]any) (row domain.Row, err error) {
	defer s.observe(ctx, "update")(&err)

	changes, err := s.descriptor.ValidatePatch(patch)
	if err != nil {
		return domain.Row{}, err
	}

	for attempt := 1; attempt <= MaxUpdateAttempts; attempt++ {
		current, err := s.rows.GetByID(ctx, id)
		if err != nil {
			return domain.Row{}, storageFailure("getting row", err)
		}

		merged := make(map[string]any, len(current.Data)+len(changes))
		for key, value := range current.Data {
			merged[key] = value
		}
		for key, value := range changes {
			merged[key] = value
		}

		now := time.Now().UTC()
		written, err := s.rows.UpdateData(ctx, id, merged, current.Version, now)
		if err != nil {
			return domain.Row{}, storageFailure("updating row", err)
		}
		if written {
			current.Data = merged
			current.Version++
			current.UpdatedAt = now
			return s.present(ctx, current)
		}

		slog.Warn("row changed concurrently, retrying update",
			slog.String("table", s.table.Slug.String()),
			slog.String("id", id.String()),
			slog.Int("attempt", attempt))
	}

	return domain.Row{}, domain.NewError(domain.CodeConcurrentUpdate, "row %q kept changing during update", id)
}

// Trash is idempotent: trashing a trashed row keeps its original trashedAt.
func (s *RowStore) Trash(ctx context.Context, id domain.ID) (domain.Row, error) {
	return s.setTrashed(ctx, id, true)
}

// Restore is idempotent.
func (s *RowStore) Restore(ctx context.Context, id domain.ID) (domain.Row, error) {
	return s.setTrashed(ctx, id, false)
}

func (s *RowStore) setTrashed(ctx context.Context, id domain.ID, trashed bool) (row domain.Row, err error) {
	operation := "restore"
	if trashed {
		operation = "trash"
	}
	defer s.observe(ctx, operation)(&err)

	if _, err = s.rows.SetTrashed(ctx, id, trashed, time.Now().UTC()); err != nil {
		return domain.Row{}, storageFailure(operation+" row", err)
	}

	row, err = s.rows.GetByID(ctx, id)
	if err != nil {
		return domain.Row{}, storageFailure("getting row", err)
	}
	return s.present(ctx, row)
}

// Delete removes the row permanently. There is no way back.
func (s *RowStore) Delete(ctx context.Context, id domain.ID) (err error) {
	defer s.observe(ctx, "delete")(&err)

	if err = s.rows.Delete(ctx, id); err != nil {
		return storageFailure("deleting row", err)
	}

	slog.Info("row deleted",
		slog.String("table", s.table.Slug.String()),
		slog.String("id", id.String()))
	return nil
}

func (s *RowStore) present(ctx context.Context, row domain.Row) (domain.Row, error) {
	rows, err := s.presentAll(ctx, []domain.Row{row})
	if err != nil {
		return domain.Row{}, err
	}
	return rows[0], nil
}

// presentAll projects stored data onto the active fields and fills REACTION
// and EVALUATION fields with their summaries, batched over all rows.
func (s *RowStore) presentAll(ctx context.Context, rows []domain.Row) ([]domain.Row, error) {
	reactionRules := s.descriptor.RulesOfType(domain.FieldTypeReaction)
	evaluationRules := s.descriptor.RulesOfType(domain.FieldTypeEvaluation)

	ids := make([]domain.ID, len(rows))
	for i, row := range rows {
		ids[i] = row.ID
	}

	var (
		reactions   map[domain.ID]map[domain.Slug]domain.ReactionSummary
		evaluations map[domain.ID]map[domain.Slug]domain.EvaluationSummary
		err         error
	)
	if len(reactionRules) > 0 && len(ids) > 0 {
		reactions, err = s.reactions.Summaries(ctx, s.table.Slug, ids)
		if err != nil {
			return nil, storageFailure("summarizing reactions", err)
		}
	}
	if len(evaluationRules) > 0 && len(ids) > 0 {
		evaluations, err = s.evaluations.Summaries(ctx, s.table.Slug, ids)
		if err != nil {
			return nil, storageFailure("summarizing evaluations", err)
		}
	}

	result := make([]domain.Row, len(rows))
	for i, row := range rows {
		data := s.descriptor.Project(row.Data)
		for _, rule := range reactionRules {
			summary, found := reactions[row.ID][rule.Slug]
			if !found {
				summary = domain.NewReactionSummary()
			}
			data[rule.Slug.String()] = summary
		}
		for _, rule := range evaluationRules {
			data[rule.Slug.String()] = roundSummary(evaluations[row.ID][rule.Slug])
		}
		row.Data = data
		result[i] = row
	}
	return result, nil
}

func (s *RowStore) rule(slug domain.Slug, expected domain.FieldType, mismatch *domain.Error) (schema.FieldRule, error) {
	rule, found := s.descriptor.Rule(slug)
	if !found {
		return schema.FieldRule{}, domain.NewError(domain.CodeFieldNotFound, "table %q has no field %q", s.table.Slug, slug)
	}
	if rule.Type != expected {
		return schema.FieldRule{}, domain.NewError(mismatch.Code, "field %q is %s, not %s", slug, rule.Type, expected)
	}
	return rule, nil
}

func (s *RowStore) ensureRow(ctx context.Context, id domain.ID) error {
	_, err := s.rows.GetByID(ctx, id)
	if errors.Is(err, domain.ErrRowNotFound) {
		return err
	}
	if err != nil {
		return storageFailure("getting row", err)
	}
	return nil
}
