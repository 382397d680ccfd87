package order

import (
	"context"
	"errors"
	"io"
	"strings"
	"sync"
	"testing"

	"github.com/LavaJover/printshop-order-service/internal/domain"
	"github.com/LavaJover/printshop-order-service/internal/infrastructure/memory"
	"github.com/LavaJover/printshop-order-service/internal/infrastructure/metrics"
	"github.com/LavaJover/printshop-order-service/internal/infrastructure/storage"
	"github.com/LavaJover/printshop-order-service/internal/usecase/catalog"
	catalogdto "github.com/LavaJover/printshop-order-service/internal/usecase/dto/catalog"
	orderdto "github.com/LavaJover/printshop-order-service/internal/usecase/dto/order"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	admin   = domain.Actor{ID: "admin-1", Role: domain.RoleAdmin}
	manager = domain.Actor{ID: "manager-1", Role: domain.RoleManager}
	client  = domain.Actor{ID: "client-1", Role: domain.RoleClient}
)

type ledgerRecorder struct {
	mu     sync.Mutex
	events []domain.LedgerEvent
}

func (r *ledgerRecorder) PublishLedger(_ context.Context, events ...domain.LedgerEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, events...)
	return nil
}

func (r *ledgerRecorder) PublishMaintenance(context.Context, domain.MaintenanceEvent) error {
	return nil
}

type fixture struct {
	store   *memory.Store
	blobs   *storage.MemoryBlobStore
	catalog *catalog.DefaultCatalogUsecase
	uc      *DefaultOrderUsecase
	events  *ledgerRecorder
	shopID  string
}

// newFixture prices "B/N A4" at 0.50 globally and 0.40 at a shop that may
// edit prices and is run by manager.
func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()
	f := &fixture{
		store:  memory.NewStore(),
		blobs:  storage.NewMemoryBlobStore(),
		events: &ledgerRecorder{},
	}
	f.catalog = catalog.NewDefaultCatalogUsecase(f.store, f.store, f.store, nil, nil, nil, uuid.NewString)

	_, err := f.catalog.UpsertServicePrice(ctx, admin, &catalogdto.ServicePriceInput{ServiceName: "B/N A4", BasePrice: "0.50"})
	require.NoError(t, err)
	_, err = f.catalog.UpsertServicePrice(ctx, admin, &catalogdto.ServicePriceInput{ServiceName: "Color A4", BasePrice: "1.25"})
	require.NoError(t, err)
	_, err = f.catalog.UpsertServicePrice(ctx, admin, &catalogdto.ServicePriceInput{ServiceName: "Photo 10x15", BasePrice: "0.90", IsPhotoPrint: true})
	require.NoError(t, err)

	shop, err := f.catalog.CreateShop(ctx, admin, &catalogdto.CreateShopInput{Name: "Shop B", CanEditPrices: true})
	require.NoError(t, err)
	_, err = f.catalog.AssignManager(ctx, admin, shop.ID, manager.ID)
	require.NoError(t, err)
	_, err = f.catalog.UpsertLocalPrice(ctx, manager, &catalogdto.LocalPriceInput{ShopID: shop.ID, ServiceName: "B/N A4", Price: "0.40"})
	require.NoError(t, err)
	f.shopID = shop.ID

	f.uc = NewDefaultOrderUsecase(f.store, f.store, f.store, f.catalog, f.blobs, f.store, f.events, nil, nil)
	return f
}

func (f *fixture) create(t *testing.T, lines ...orderdto.OrderLineInput) *orderdto.OrderOutput {
	t.Helper()
	out, err := f.uc.CreateOrder(context.Background(), client, &orderdto.CreateOrderInput{
		ClientID: client.ID, ShopID: f.shopID, Lines: lines,
	})
	require.NoError(t, err)
	return out
}

func (f *fixture) balance(t *testing.T) int64 {
	t.Helper()
	c, err := f.store.GetClient(context.Background(), client.ID)
	require.NoError(t, err)
	return c.Points
}

func (f *fixture) audit(t *testing.T, orderID string) []*domain.AuditEntry {
	t.Helper()
	entries, err := f.store.ListAuditEntries(context.Background(), orderID)
	require.NoError(t, err)
	return entries
}

func TestCreateOrderFreezesPrices(t *testing.T) {
	f := newFixture(t)
	out := f.create(t,
		orderdto.OrderLineInput{ServiceName: "B/N A4", Copies: 10, ColorMode: "bw", Size: "A4"},
		orderdto.OrderLineInput{ServiceName: "Color A4", Copies: 3, ColorMode: "color", Size: "A4"},
	)

	assert.Equal(t, "pending", out.Status)
	assert.Equal(t, "7.75", out.TotalPrice)
	assert.Equal(t, int64(77), out.PointsEarned)
	require.Len(t, out.Files, 2)
	assert.Equal(t, "0.40", out.Files[0].PricePerCopy)
	assert.Equal(t, "4.00", out.Files[0].LineTotal)

	entries := f.audit(t, out.ID)
	require.Len(t, entries, 1)
	assert.Equal(t, domain.AuditCreated, entries[0].Action)
	assert.Equal(t, "7.75", entries[0].Details["total_price"])
	assert.Equal(t, 2, entries[0].Details["line_count"])

	// Later price changes do not touch the stored order.
	_, err := f.catalog.AdjustGlobalPrices(context.Background(), admin, decimal.NewFromInt(50))
	require.NoError(t, err)
	got, err := f.uc.GetOrder(context.Background(), client, out.ID)
	require.NoError(t, err)
	assert.Equal(t, "7.75", got.TotalPrice)
	assert.Equal(t, "1.25", got.Files[1].PricePerCopy)
}

func TestCreateOrderValidation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	cases := map[string]*orderdto.CreateOrderInput{
		"no lines":     {ClientID: client.ID, ShopID: f.shopID},
		"zero copies":  {ClientID: client.ID, ShopID: f.shopID, Lines: []orderdto.OrderLineInput{{ServiceName: "B/N A4", Copies: 0}}},
		"unknown":      {ClientID: client.ID, ShopID: f.shopID, Lines: []orderdto.OrderLineInput{{ServiceName: "Laminado", Copies: 1}}},
		"photo filter": {ClientID: client.ID, ShopID: f.shopID, Lines: []orderdto.OrderLineInput{{ServiceName: "Photo 10x15", Copies: 1}}},
	}
	for name, input := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := f.uc.CreateOrder(ctx, client, input)
			assert.ErrorIs(t, err, domain.ErrValidation)
		})
	}

	// Admins order on behalf of a client and must name one.
	_, err := f.uc.CreateOrder(ctx, admin, &orderdto.CreateOrderInput{
		ShopID: f.shopID, Lines: []orderdto.OrderLineInput{{ServiceName: "B/N A4", Copies: 1}},
	})
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = f.uc.CreateOrder(ctx, client, &orderdto.CreateOrderInput{
		ClientID: client.ID, ShopID: "missing", Lines: []orderdto.OrderLineInput{{ServiceName: "B/N A4", Copies: 1}},
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = f.uc.CreateOrder(ctx, client, &orderdto.CreateOrderInput{
		ClientID: "client-2", ShopID: f.shopID, Lines: []orderdto.OrderLineInput{{ServiceName: "B/N A4", Copies: 1}},
	})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestCreateOrderChecksRoleBeforeInput(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.uc.CreateOrder(ctx, manager, &orderdto.CreateOrderInput{ClientID: client.ID, ShopID: f.shopID})
	assert.ErrorIs(t, err, domain.ErrForbidden)
	assert.NotErrorIs(t, err, domain.ErrValidation)

	_, err = f.uc.CreateOrder(ctx, client, &orderdto.CreateOrderInput{ShopID: f.shopID})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

type flakyBlobs struct {
	*storage.MemoryBlobStore
}

func (b *flakyBlobs) Put(ctx context.Context, path string, body io.Reader, contentType string) error {
	if strings.HasSuffix(path, "broken.pdf") {
		return errors.Join(domain.ErrStorage, errors.New("bucket unavailable"))
	}
	return b.MemoryBlobStore.Put(ctx, path, body, contentType)
}

func TestUploadFailureIsRecordedNotEscalated(t *testing.T) {
	f := newFixture(t)
	f.uc.Blobs = &flakyBlobs{f.blobs}
	f.uc.Metrics = metrics.NewPrintshopMetrics(prometheus.NewRegistry())

	out := f.create(t,
		orderdto.OrderLineInput{ServiceName: "B/N A4", Copies: 1, FileName: "thesis.pdf", Payload: strings.NewReader("%PDF-1")},
		orderdto.OrderLineInput{ServiceName: "B/N A4", Copies: 1, FileName: "broken.pdf", Payload: strings.NewReader("%PDF-2")},
	)

	assert.Equal(t, 1, out.FailedUploads)
	assert.False(t, out.Files[0].UploadFailed)
	assert.Equal(t, "orders/"+out.ID+"/"+out.Files[0].ID+"/thesis.pdf", out.Files[0].StoragePath)
	assert.True(t, out.Files[1].UploadFailed)
	assert.Empty(t, out.Files[1].StoragePath)
	assert.True(t, f.blobs.Has(out.Files[0].StoragePath))

	entries := f.audit(t, out.ID)
	assert.Equal(t, 1, entries[0].Details["failed_uploads"])
	assert.Equal(t, 1.0, testutil.ToFloat64(f.uc.Metrics.OrderFileUploadFailures.WithLabelValues(f.shopID)))
}

type failingAudit struct {
	domain.OrderRepository
}

func (failingAudit) AppendAudit(context.Context, *domain.AuditEntry) error {
	return errors.Join(domain.ErrStorage, errors.New("write failed"))
}

func TestCreateOrderRollsBackAndDiscardsPayloads(t *testing.T) {
	f := newFixture(t)
	f.uc.OrderRepo = failingAudit{f.store}

	_, err := f.uc.CreateOrder(context.Background(), client, &orderdto.CreateOrderInput{
		ClientID: client.ID, ShopID: f.shopID,
		Lines: []orderdto.OrderLineInput{{ServiceName: "B/N A4", Copies: 2, FileName: "a.pdf", Payload: strings.NewReader("x")}},
	})
	require.ErrorIs(t, err, domain.ErrStorage)

	orders, err := f.store.ListOrdersByClient(context.Background(), client.ID)
	require.NoError(t, err)
	assert.Empty(t, orders)
	assert.Empty(t, f.blobs.Paths())
}

func TestTransitionsAccrueOnce(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	out := f.create(t, orderdto.OrderLineInput{ServiceName: "B/N A4", Copies: 10})
	assert.Equal(t, "4.00", out.TotalPrice)
	assert.Equal(t, int64(40), out.PointsEarned)

	for _, status := range []string{"processing", "ready", "completed"} {
		_, err := f.uc.TransitionOrder(ctx, manager, out.ID, status)
		require.NoError(t, err, status)
	}
	assert.Equal(t, int64(40), f.balance(t))
	assert.Len(t, f.audit(t, out.ID), 4)

	_, err := f.uc.TransitionOrder(ctx, manager, out.ID, "completed")
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
	_, err = f.uc.TransitionOrder(ctx, admin, out.ID, "cancelled")
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)

	assert.Equal(t, int64(40), f.balance(t))
	assert.Len(t, f.audit(t, out.ID), 4)
	require.Len(t, f.events.events, 1)
	assert.Equal(t, domain.LedgerAccrued, f.events.events[0].Type)
	assert.Equal(t, out.ID, f.events.events[0].OrderID)
}

func TestTransitionRules(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	out := f.create(t, orderdto.OrderLineInput{ServiceName: "B/N A4", Copies: 1})

	_, err := f.uc.TransitionOrder(ctx, manager, "missing", "processing")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = f.uc.TransitionOrder(ctx, client, out.ID, "processing")
	assert.ErrorIs(t, err, domain.ErrForbidden)
	_, err = f.uc.TransitionOrder(ctx, domain.Actor{ID: "manager-2", Role: domain.RoleManager}, out.ID, "processing")
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = f.uc.TransitionOrder(ctx, manager, out.ID, "shipped")
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
	_, err = f.uc.TransitionOrder(ctx, manager, out.ID, "pending")
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
	_, err = f.uc.TransitionOrder(ctx, manager, out.ID, "ready")
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)

	got, err := f.uc.TransitionOrder(ctx, admin, out.ID, "cancelled")
	require.NoError(t, err)
	assert.Equal(t, "cancelled", got.Status)
	assert.Equal(t, int64(0), f.balance(t))
}

// staleOrders serves a snapshot taken before another caller moved the order.
type staleOrders struct {
	domain.OrderRepository
	snapshot *domain.Order
}

func (s staleOrders) GetOrderByID(context.Context, string) (*domain.Order, error) {
	o := *s.snapshot
	return &o, nil
}

func TestConcurrentTransitionConflicts(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	out := f.create(t, orderdto.OrderLineInput{ServiceName: "B/N A4", Copies: 10})
	for _, status := range []string{"processing", "ready"} {
		_, err := f.uc.TransitionOrder(ctx, manager, out.ID, status)
		require.NoError(t, err)
	}
	snapshot, err := f.store.GetOrderByID(ctx, out.ID)
	require.NoError(t, err)

	_, err = f.uc.TransitionOrder(ctx, manager, out.ID, "completed")
	require.NoError(t, err)

	f.uc.OrderRepo = staleOrders{OrderRepository: f.store, snapshot: snapshot}
	_, err = f.uc.TransitionOrder(ctx, admin, out.ID, "completed")
	assert.ErrorIs(t, err, domain.ErrConflict)

	assert.Equal(t, int64(40), f.balance(t))
	assert.Len(t, f.audit(t, out.ID), 4)
}

type failingAccrual struct {
	domain.ClientRepository
}

func (failingAccrual) AddPoints(context.Context, string, int64) error {
	return errors.Join(domain.ErrStorage, errors.New("deadlock"))
}

func TestCompletionRollsBackWhenAccrualFails(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	out := f.create(t, orderdto.OrderLineInput{ServiceName: "B/N A4", Copies: 10})
	for _, status := range []string{"processing", "ready"} {
		_, err := f.uc.TransitionOrder(ctx, manager, out.ID, status)
		require.NoError(t, err)
	}

	f.uc.ClientRepo = failingAccrual{f.store}
	_, err := f.uc.TransitionOrder(ctx, manager, out.ID, "completed")
	require.ErrorIs(t, err, domain.ErrStorage)

	stored, err := f.store.GetOrderByID(ctx, out.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusReady, stored.Status)
	assert.Len(t, f.audit(t, out.ID), 3)
}

func TestQueriesRespectOwnership(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	first := f.create(t, orderdto.OrderLineInput{ServiceName: "B/N A4", Copies: 1})
	f.create(t, orderdto.OrderLineInput{ServiceName: "B/N A4", Copies: 2})
	_, err := f.uc.TransitionOrder(ctx, manager, first.ID, "processing")
	require.NoError(t, err)

	got, err := f.uc.GetOrder(ctx, manager, first.ID)
	require.NoError(t, err)
	assert.Len(t, got.Audit, 2)

	_, err = f.uc.GetOrder(ctx, domain.Actor{ID: "client-2", Role: domain.RoleClient}, first.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	mine, err := f.uc.ListClientOrders(ctx, client, client.ID)
	require.NoError(t, err)
	assert.Len(t, mine, 2)
	_, err = f.uc.ListClientOrders(ctx, client, "client-2")
	assert.ErrorIs(t, err, domain.ErrForbidden)

	processing, err := f.uc.ListShopOrders(ctx, manager, f.shopID, "processing")
	require.NoError(t, err)
	require.Len(t, processing, 1)
	assert.Equal(t, first.ID, processing[0].ID)

	all, err := f.uc.ListShopOrders(ctx, admin, f.shopID, "")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	_, err = f.uc.ListShopOrders(ctx, manager, f.shopID, "lost")
	assert.ErrorIs(t, err, domain.ErrValidation)
	_, err = f.uc.ListShopOrders(ctx, client, f.shopID, "")
	assert.ErrorIs(t, err, domain.ErrForbidden)
}
