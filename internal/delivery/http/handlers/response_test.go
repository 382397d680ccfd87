package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/LavaJover/printshop-order-service/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestStatusFor(t *testing.T) {
	cases := map[error]int{
		domain.ErrValidation:         http.StatusBadRequest,
		domain.ErrNotFound:           http.StatusNotFound,
		domain.ErrForbidden:          http.StatusForbidden,
		domain.ErrInvalidTransition:  http.StatusConflict,
		domain.ErrConflict:           http.StatusConflict,
		domain.ErrInsufficientPoints: http.StatusUnprocessableEntity,
		domain.ErrStorage:            http.StatusServiceUnavailable,
		errors.New("boom"):           http.StatusInternalServerError,
	}
	for err, want := range cases {
		wrapped := fmt.Errorf("%w: detail", err)
		assert.Equal(t, want, StatusFor(wrapped), err.Error())
	}
}

func TestWriteDomainErrorHidesStorageDetail(t *testing.T) {
	rec := httptest.NewRecorder()
	writeDomainError(rec, fmt.Errorf("%w: dial tcp 10.0.0.3:5432", domain.ErrStorage))

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.NotContains(t, rec.Body.String(), "10.0.0.3")
}
