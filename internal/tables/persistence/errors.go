package persistence

import (
	"errors"
	"fmt"

	"github.com/lowcodejsorg/lowcodejs-sub005/internal/infra/sql"
	"github.com/lowcodejsorg/lowcodejs-sub005/internal/tables/domain"
)

// storageError wraps err for the usecases. Timeouts become STORAGE_TIMEOUT
// so callers never have to know about the ORM.
func storageError(action string, err error) error {
	if errors.Is(err, sql.ErrQueryTimeout) {
		return fmt.Errorf("%s: %w", action, domain.NewError(domain.CodeStorageTimeout, "storage did not answer in time"))
	}
	return fmt.Errorf("%s: %w", action, err)
}
