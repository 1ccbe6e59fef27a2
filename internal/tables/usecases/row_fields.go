package usecases

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/lowcodejsorg/lowcodejs-sub005/internal/tables/domain"
)

// AddReaction records the reaction of user on the REACTION field of a row.
// A user holds at most one reaction per row and field: a different type
// overwrites the previous one and the same type toggles it off and on.
func (s *RowStore) AddReaction(ctx context.Context, rowID domain.ID, fieldSlug domain.Slug, user domain.ID, reactionType domain.ReactionType) (row domain.Row, err error) {
	defer s.observe(ctx, "add_reaction")(&err)

	if user == "" {
		return domain.Row{}, domain.NewError(domain.CodeAuthenticationRequired, "reactions need an authenticated user")
	}
	if !reactionType.IsValid() {
		return domain.Row{}, domain.NewError(domain.CodeInvalidReactionType, "unknown reaction type %q", reactionType)
	}
	if _, err = s.rule(fieldSlug, domain.FieldTypeReaction, domain.ErrFieldNotReactionType); err != nil {
		return domain.Row{}, err
	}
	if err = s.ensureRow(ctx, rowID); err != nil {
		return domain.Row{}, err
	}

	now := time.Now().UTC()
	reaction := domain.Reaction{
		ID:        s.ids.NewID(),
		TableSlug: s.table.Slug,
		RowID:     rowID,
		FieldSlug: fieldSlug,
		UserID:    user,
		Type:      reactionType,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err = s.reactions.Toggle(ctx, reaction); err != nil {
		return domain.Row{}, storageFailure("toggling reaction", err)
	}

	return s.FindOne(ctx, rowID)
}

// AddEvaluation records the rating of user on the EVALUATION field of a row,
// replacing any rating the same user gave before.
func (s *RowStore) AddEvaluation(ctx context.Context, rowID domain.ID, fieldSlug domain.Slug, user domain.ID, value float64) (row domain.Row, err error) {
	defer s.observe(ctx, "add_evaluation")(&err)

	if user == "" {
		return domain.Row{}, domain.NewError(domain.CodeAuthenticationRequired, "evaluations need an authenticated user")
	}
	rule, err := s.rule(fieldSlug, domain.FieldTypeEvaluation, domain.ErrFieldNotEvaluation)
	if err != nil {
		return domain.Row{}, err
	}

	lower, upper := rule.Configuration.EvaluationRange()
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return domain.Row{}, domain.NewError(domain.CodeInvalidEvaluation, "%s must be between %v and %v", fieldSlug, lower, upper)
	}
	rating := decimal.NewFromFloat(value).Round(2)
	if rating.LessThan(decimal.NewFromFloat(lower)) || rating.GreaterThan(decimal.NewFromFloat(upper)) {
		return domain.Row{}, domain.NewError(domain.CodeInvalidEvaluation, "%s must be between %v and %v", fieldSlug, lower, upper)
	}
	if err = s.ensureRow(ctx, rowID); err != nil {
		return domain.Row{}, err
	}

	normalized, _ := rating.Float64()
	now := time.Now().UTC()
	evaluation := domain.Evaluation{
		ID:        s.ids.NewID(),
		TableSlug: s.table.Slug,
		RowID:     rowID,
		FieldSlug: fieldSlug,
		UserID:    user,
		Value:     normalized,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err = s.evaluations.Upsert(ctx, evaluation); err != nil {
		return domain.Row{}, storageFailure("upserting evaluation", err)
	}

	return s.FindOne(ctx, rowID)
}

func roundSummary(summary domain.EvaluationSummary) domain.EvaluationSummary {
	summary.Average, _ = decimal.NewFromFloat(summary.Average).Round(2).Float64()
	return summary
}

// ExpandRelationship resolves the targets referenced by a RELATIONSHIP field
// of row. References are best effort: targets that are missing or trashed,
// and a target table that no longer exists, are silently dropped.
func (s *RowStore) ExpandRelationship(ctx context.Context, row domain.Row, fieldSlug domain.Slug) (related []domain.RelatedRow, err error) {
	defer s.observe(ctx, "expand_relationship")(&err)

	rule, err := s.rule(fieldSlug, domain.FieldTypeRelationship, domain.ErrFieldTypeMismatch)
	if err != nil {
		return nil, err
	}
	relationship := rule.Configuration.Relationship
	if relationship == nil {
		return nil, domain.NewError(domain.CodeInvalidConfiguration, "%s has no relationship target", fieldSlug)
	}

	ids := referencedIDs(row.Data[fieldSlug.String()])
	if len(ids) == 0 {
		return []domain.RelatedRow{}, nil
	}

	target, err := s.registry.Resolve(ctx, relationship.TargetTableSlug)
	if errors.Is(err, domain.ErrTableNotFound) {
		slog.Warn("relationship target table is gone",
			slog.String("table", s.table.Slug.String()),
			slog.String("field", fieldSlug.String()),
			slog.String("target", relationship.TargetTableSlug.String()))
		return []domain.RelatedRow{}, nil
	}
	if err != nil {
		return nil, err
	}

	rows, err := target.rows.FindByIDs(ctx, ids)
	if err != nil {
		return nil, storageFailure("loading related rows", err)
	}

	byID := make(map[domain.ID]domain.Row, len(rows))
	for _, candidate := range rows {
		if !candidate.Trashed {
			byID[candidate.ID] = candidate
		}
	}

	related = make([]domain.RelatedRow, 0, len(byID))
	for _, id := range ids {
		candidate, found := byID[id]
		if !found {
			continue
		}
		display := any(candidate.ID)
		if relationship.DisplayFieldSlug != "" {
			display = target.descriptor.Project(candidate.Data)[relationship.DisplayFieldSlug.String()]
		}
		related = append(related, domain.RelatedRow{ID: candidate.ID, Display: display})
	}

	sortRelated(related, relationship.Order)
	return related, nil
}

// sortRelated orders by display text using language aware collation. Without
// an order the stored reference order is kept.
func sortRelated(related []domain.RelatedRow, order domain.SortOrder) {
	if order != domain.SortAsc && order != domain.SortDesc {
		return
	}

	collator := collate.New(language.Und, collate.IgnoreCase, collate.Numeric)
	sort.SliceStable(related, func(i, j int) bool {
		a, b := displayText(related[i].Display), displayText(related[j].Display)
		if order == domain.SortDesc {
			a, b = b, a
		}
		return collator.CompareString(a, b) < 0
	})
}

func displayText(value any) string {
	if value == nil {
		return ""
	}
	return fmt.Sprint(value)
}

// ResolveFiles reports every reference stored in a FILE field of row
// together with whether the object exists in storage.
func (s *RowStore) ResolveFiles(ctx context.Context, row domain.Row, fieldSlug domain.Slug) (files []domain.FileReference, err error) {
	defer s.observe(ctx, "resolve_files")(&err)

	if _, err = s.rule(fieldSlug, domain.FieldTypeFile, domain.ErrFieldTypeMismatch); err != nil {
		return nil, err
	}

	refs := referencedIDs(row.Data[fieldSlug.String()])
	files = make([]domain.FileReference, 0, len(refs))
	for _, ref := range refs {
		exists, err := s.files.Exists(ctx, ref.String())
		if err != nil {
			return nil, storageFailure("checking file", err)
		}
		files = append(files, domain.FileReference{Ref: ref.String(), Exists: exists})
	}
	return files, nil
}

// referencedIDs reads the single or multiple reference stored in a row.
func referencedIDs(value any) []domain.ID {
	var raw []string
	switch v := value.(type) {
	case string:
		raw = []string{v}
	case []string:
		raw = v
	case []any:
		for _, item := range v {
			if s, ok := item.(string); ok {
				raw = append(raw, s)
			}
		}
	}

	ids := make([]domain.ID, 0, len(raw))
	for _, item := range raw {
		if item = strings.TrimSpace(item); item != "" {
			ids = append(ids, domain.ID(item))
		}
	}
	return ids
}
