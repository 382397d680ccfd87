package domain

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanTransition(t *testing.T) {
	cases := []struct {
		from, to OrderStatus
		allowed  bool
	}{
		{StatusPending, StatusProcessing, true},
		{StatusProcessing, StatusReady, true},
		{StatusReady, StatusCompleted, true},
		{StatusPending, StatusCancelled, true},
		{StatusProcessing, StatusCancelled, true},
		{StatusReady, StatusCancelled, true},
		{StatusPending, StatusCompleted, false},
		{StatusReady, StatusProcessing, false},
		{StatusPending, StatusPending, false},
		{StatusCompleted, StatusCompleted, false},
		{StatusCompleted, StatusCancelled, false},
		{StatusCancelled, StatusPending, false},
	}
	for _, tc := range cases {
		t.Run(string(tc.from)+"->"+string(tc.to), func(t *testing.T) {
			assert.Equal(t, tc.allowed, CanTransition(tc.from, tc.to))
		})
	}
}

func TestTerminalStates(t *testing.T) {
	assert.True(t, StatusCompleted.IsTerminal())
	assert.True(t, StatusCancelled.IsTerminal())
	assert.False(t, StatusReady.IsTerminal())
}

func TestParseOrderStatus(t *testing.T) {
	s, err := ParseOrderStatus("ready")
	require.NoError(t, err)
	assert.Equal(t, StatusReady, s)

	_, err = ParseOrderStatus("shipped")
	assert.True(t, errors.Is(err, ErrInvalidTransition))
}

func TestOrderTotals(t *testing.T) {
	files := []OrderFile{
		{PricePerCopy: decimal.RequireFromString("0.40"), Copies: 10},
		{PricePerCopy: decimal.RequireFromString("1.15"), Copies: 3},
		{PricePerCopy: decimal.RequireFromString("0.07"), Copies: 1},
	}
	total, points := OrderTotals(files)
	assert.True(t, total.Equal(decimal.RequireFromString("7.52")), total.String())
	assert.Equal(t, int64(75), points)
}

func TestPointsForTotalFloors(t *testing.T) {
	assert.Equal(t, int64(40), PointsForTotal(decimal.RequireFromString("4.00")))
	assert.Equal(t, int64(12), PointsForTotal(decimal.RequireFromString("1.29")))
	assert.Equal(t, int64(0), PointsForTotal(decimal.RequireFromString("0.09")))
	assert.Equal(t, int64(0), PointsForTotal(decimal.Zero))
}

func TestTombstones(t *testing.T) {
	assert.Equal(t, "purged:aged", PurgeAged.Tombstone())
	assert.True(t, IsTombstone(PurgeManual.Tombstone()))
	assert.False(t, IsTombstone("orders/o1/f1/scan.pdf"))
	assert.True(t, OrderFile{StoragePath: PurgeCancelled.Tombstone()}.Purged())

	_, err := ParsePurgeMode("weekly")
	assert.ErrorIs(t, err, ErrValidation)
}
