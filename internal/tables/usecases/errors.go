package usecases

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/lowcodejsorg/lowcodejs-sub005/internal/tables/domain"
)

// storageFailure passes domain errors through untouched, turns deadlines into
// STORAGE_TIMEOUT and logs anything else before wrapping it.
func storageFailure(action string, err error) error {
	var (
		domainErr  *domain.Error
		validation *domain.ValidationError
		separator  *domain.SeparatorHasChildrenError
	)
	switch {
	case errors.As(err, &validation), errors.As(err, &separator), errors.As(err, &domainErr):
		return err
	case errors.Is(err, context.DeadlineExceeded):
		slog.Error(action, slog.String("error", err.Error()))
		return fmt.Errorf("%s: %w", action, domain.NewError(domain.CodeStorageTimeout, "storage did not answer in time"))
	default:
		slog.Error(action, slog.String("error", err.Error()))
		return fmt.Errorf("%s: %w", action, err)
	}
}
