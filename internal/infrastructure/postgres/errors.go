package postgres

import (
	"errors"
	"fmt"

	"github.com/LavaJover/printshop-order-service/internal/domain"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

const (
	uniqueViolation     = "23505"
	foreignKeyViolation = "23503"
	// Raised when an id is not a valid uuid; no such row can exist.
	invalidTextRepresentation = "22P02"
)

// MapError turns driver errors into domain errors. what names the thing
// being read or written.
func MapError(err error, what string) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return fmt.Errorf("%w: %s", domain.ErrNotFound, what)
	case errors.Is(err, gorm.ErrDuplicatedKey), hasCode(err, uniqueViolation):
		return fmt.Errorf("%w: %s already exists", domain.ErrConflict, what)
	case errors.Is(err, gorm.ErrForeignKeyViolated), hasCode(err, foreignKeyViolation):
		return fmt.Errorf("%w: %s references a missing row", domain.ErrNotFound, what)
	case hasCode(err, invalidTextRepresentation):
		return fmt.Errorf("%w: %s", domain.ErrNotFound, what)
	case errors.Is(err, domain.ErrNotFound), errors.Is(err, domain.ErrConflict),
		errors.Is(err, domain.ErrInsufficientPoints), errors.Is(err, domain.ErrValidation):
		return err
	}
	return fmt.Errorf("%w: %s: %v", domain.ErrStorage, what, err)
}

func IsUniqueViolation(err error) bool {
	return hasCode(err, uniqueViolation)
}

func hasCode(err error, code string) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == code
	}
	return false
}
