package postgres

import (
	"errors"
	"fmt"
	"testing"

	"github.com/LavaJover/printshop-order-service/internal/domain"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestMapError(t *testing.T) {
	assert.NoError(t, MapError(nil, "order"))
	assert.ErrorIs(t, MapError(gorm.ErrRecordNotFound, "order o1"), domain.ErrNotFound)
	assert.ErrorIs(t, MapError(gorm.ErrDuplicatedKey, "shop s1"), domain.ErrConflict)
	assert.ErrorIs(t, MapError(fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505"}), "reward"), domain.ErrConflict)
	assert.ErrorIs(t, MapError(&pgconn.PgError{Code: "23503"}, "local price"), domain.ErrNotFound)
	assert.ErrorIs(t, MapError(errors.New("connection refused"), "orders"), domain.ErrStorage)
	assert.True(t, IsUniqueViolation(&pgconn.PgError{Code: "23505"}))

	passthrough := fmt.Errorf("%w: balance 3", domain.ErrInsufficientPoints)
	assert.Same(t, passthrough, MapError(passthrough, "client"))
}

func TestMapErrorMalformedIDIsNotFound(t *testing.T) {
	driverErr := &pgconn.PgError{Code: "22P02", Message: `invalid input syntax for type uuid: "abc"`}

	err := MapError(fmt.Errorf("select order: %w", driverErr), "order abc")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.NotErrorIs(t, err, domain.ErrStorage)
	assert.Contains(t, err.Error(), "order abc")
}
