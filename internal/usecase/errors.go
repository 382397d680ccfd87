package usecase

import (
	"errors"

	"github.com/LavaJover/printshop-order-service/internal/domain"
)

// ErrorKind labels err by its domain class for metrics.
func ErrorKind(err error) string {
	switch {
	case errors.Is(err, domain.ErrValidation):
		return "validation"
	case errors.Is(err, domain.ErrNotFound):
		return "not_found"
	case errors.Is(err, domain.ErrForbidden):
		return "forbidden"
	case errors.Is(err, domain.ErrInvalidTransition):
		return "invalid_transition"
	case errors.Is(err, domain.ErrInsufficientPoints):
		return "insufficient_points"
	case errors.Is(err, domain.ErrConflict):
		return "conflict"
	case errors.Is(err, domain.ErrStorage):
		return "storage"
	}
	return "internal"
}
