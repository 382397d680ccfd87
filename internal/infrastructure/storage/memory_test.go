package storage

import (
	"context"
	"strings"
	"testing"

	"github.com/LavaJover/printshop-order-service/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryBlobStoreRoundTrip(t *testing.T) {
	s := NewMemoryBlobStore()
	ctx := context.Background()

	require.NoError(t, s.Put(ctx, "orders/o1/f1/scan.pdf", strings.NewReader("%PDF"), "application/pdf"))
	assert.True(t, s.Has("orders/o1/f1/scan.pdf"))
	assert.Equal(t, []string{"orders/o1/f1/scan.pdf"}, s.Paths())

	require.NoError(t, s.Remove(ctx, "orders/o1/f1/scan.pdf"))
	assert.ErrorIs(t, s.Remove(ctx, "orders/o1/f1/scan.pdf"), domain.ErrBlobNotFound)
}

func TestMemoryBlobStoreRejectsEmptyPath(t *testing.T) {
	err := NewMemoryBlobStore().Put(context.Background(), "", strings.NewReader("x"), "")
	assert.ErrorIs(t, err, errInvalidObject)
}

func TestNewGCSBlobStoreRequiresBucket(t *testing.T) {
	_, err := NewGCSBlobStore(context.Background(), "  ")
	assert.ErrorIs(t, err, errInvalidBucket)
}
