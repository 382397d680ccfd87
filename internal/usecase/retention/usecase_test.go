package retention

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/LavaJover/printshop-order-service/internal/domain"
	"github.com/LavaJover/printshop-order-service/internal/infrastructure/memory"
	"github.com/LavaJover/printshop-order-service/internal/infrastructure/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var admin = domain.Actor{ID: "admin-1", Role: domain.RoleAdmin}

type fixture struct {
	store *memory.Store
	blobs *storage.MemoryBlobStore
	uc    *DefaultRetentionUsecase
	now   time.Time
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		store: memory.NewStore(),
		blobs: storage.NewMemoryBlobStore(),
		now:   time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
	}
	f.uc = NewDefaultRetentionUsecase(f.store, f.blobs, nil, nil, nil, 0)
	f.uc.Now = func() time.Time { return f.now }
	require.NoError(t, f.store.CreateShop(context.Background(), &domain.Shop{ID: "shop-1", Name: "Centro"}))
	return f
}

// addOrder stores an order whose single file was uploaded at createdAt.
func (f *fixture) addOrder(t *testing.T, id string, status domain.OrderStatus, createdAt time.Time) string {
	t.Helper()
	ctx := context.Background()
	fileID := "file-" + id
	path := "orders/" + id + "/" + fileID + "/doc.pdf"
	require.NoError(t, f.blobs.Put(ctx, path, strings.NewReader("%PDF"), "application/pdf"))
	require.NoError(t, f.store.CreateOrder(ctx, &domain.Order{
		ID:       id,
		ClientID: "client-1",
		ShopID:   "shop-1",
		Status:   status,
		Files: []domain.OrderFile{
			{ID: fileID, ServiceName: "B/N A4", Copies: 1, StoragePath: path, CreatedAt: createdAt},
		},
		CreatedAt: createdAt,
	}))
	return fileID
}

func (f *fixture) file(t *testing.T, id string) *domain.OrderFile {
	t.Helper()
	files, err := f.store.GetFilesByIDs(context.Background(), []string{id})
	require.NoError(t, err)
	require.Len(t, files, 1)
	return files[0]
}

func TestPurgeCancelledFiles(t *testing.T) {
	f := newFixture(t)
	cancelled := f.addOrder(t, "o1", domain.StatusCancelled, f.now)
	live := f.addOrder(t, "o2", domain.StatusProcessing, f.now)

	res, err := f.uc.PurgeEligibleFiles(context.Background(), admin, domain.PurgeCancelled, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(1), res.FilesPurged)

	purged := f.file(t, cancelled)
	assert.Equal(t, "purged:cancelled", purged.StoragePath)
	assert.NotNil(t, purged.PurgedAt)
	assert.Equal(t, []string{"orders/o2/" + live + "/doc.pdf"}, f.blobs.Paths())

	res, err = f.uc.PurgeEligibleFiles(context.Background(), admin, domain.PurgeCancelled, nil)
	require.NoError(t, err)
	assert.Zero(t, res.FilesPurged, "tombstoned files are never selected again")
}

func TestPurgeAgedFilesIgnoresStatus(t *testing.T) {
	f := newFixture(t)
	old := f.addOrder(t, "o1", domain.StatusCompleted, f.now.Add(-31*24*time.Hour))
	fresh := f.addOrder(t, "o2", domain.StatusCompleted, f.now.Add(-29*24*time.Hour))

	res, err := f.uc.PurgeEligibleFiles(context.Background(), admin, domain.PurgeAged, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(1), res.FilesPurged)
	assert.Equal(t, "purged:aged", f.file(t, old).StoragePath)
	assert.False(t, f.file(t, fresh).Purged())
}

func TestManualPurge(t *testing.T) {
	f := newFixture(t)
	id := f.addOrder(t, "o1", domain.StatusPending, f.now)
	ctx := context.Background()

	_, err := f.uc.PurgeEligibleFiles(ctx, admin, domain.PurgeManual, nil)
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = f.uc.PurgeEligibleFiles(ctx, admin, domain.PurgeManual, []string{id, "ghost"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.False(t, f.file(t, id).Purged())

	_, err = f.uc.PurgeEligibleFiles(ctx, domain.Actor{ID: "m", Role: domain.RoleManager}, domain.PurgeManual, []string{id})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	res, err := f.uc.PurgeEligibleFiles(ctx, admin, domain.PurgeManual, []string{id})
	require.NoError(t, err)
	assert.Equal(t, int64(1), res.FilesPurged)
	assert.Equal(t, "purged:manual", f.file(t, id).StoragePath)
}

type flakyTombstones struct {
	domain.OrderFileRepository
	failures int
}

func (r *flakyTombstones) MarkFilePurged(ctx context.Context, fileID, tombstone string, at time.Time) error {
	if r.failures > 0 {
		r.failures--
		return errors.Join(domain.ErrStorage, errors.New("connection reset"))
	}
	return r.OrderFileRepository.MarkFilePurged(ctx, fileID, tombstone, at)
}

func TestFailedTombstoneIsRetriedNextRun(t *testing.T) {
	f := newFixture(t)
	id := f.addOrder(t, "o1", domain.StatusCancelled, f.now)
	f.uc.FileRepo = &flakyTombstones{OrderFileRepository: f.store, failures: 1}

	res, err := f.uc.PurgeEligibleFiles(context.Background(), admin, domain.PurgeCancelled, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(0), res.FilesPurged)
	assert.Equal(t, int64(1), res.FilesFailed)
	assert.False(t, f.file(t, id).Purged())
	assert.Empty(t, f.blobs.Paths(), "blob went first")

	res, err = f.uc.PurgeEligibleFiles(context.Background(), admin, domain.PurgeCancelled, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(1), res.FilesPurged)
	assert.True(t, f.file(t, id).Purged())
}

func TestUnknownModeAndStrayIDs(t *testing.T) {
	f := newFixture(t)
	_, err := f.uc.PurgeEligibleFiles(context.Background(), admin, domain.PurgeMode("weekly"), nil)
	assert.ErrorIs(t, err, domain.ErrValidation)
	_, err = f.uc.PurgeEligibleFiles(context.Background(), admin, domain.PurgeAged, []string{"x"})
	assert.ErrorIs(t, err, domain.ErrValidation)
}
