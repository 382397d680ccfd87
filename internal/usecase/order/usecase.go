package order

import (
	"context"
	"time"

	"github.com/LavaJover/printshop-order-service/internal/domain"
	"github.com/LavaJover/printshop-order-service/internal/infrastructure/logger"
	"github.com/LavaJover/printshop-order-service/internal/infrastructure/metrics"
	orderdto "github.com/LavaJover/printshop-order-service/internal/usecase/dto/order"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const tracerName = "printshop/usecase/order"

type OrderUsecase interface {
	CreateOrder(ctx context.Context, actor domain.Actor, input *orderdto.CreateOrderInput) (*orderdto.OrderOutput, error)
	TransitionOrder(ctx context.Context, actor domain.Actor, orderID, newStatus string) (*orderdto.OrderOutput, error)

	GetOrder(ctx context.Context, actor domain.Actor, orderID string) (*orderdto.OrderOutput, error)
	ListClientOrders(ctx context.Context, actor domain.Actor, clientID string) ([]*orderdto.OrderOutput, error)
	ListShopOrders(ctx context.Context, actor domain.Actor, shopID, status string) ([]*orderdto.OrderOutput, error)
}

// PriceResolver yields the priced catalog of a shop.
type PriceResolver interface {
	ResolveCatalog(ctx context.Context, shopID string) ([]domain.CatalogEntry, error)
}

type DefaultOrderUsecase struct {
	OrderRepo  domain.OrderRepository
	ShopRepo   domain.ShopRepository
	ClientRepo domain.ClientRepository
	Prices     PriceResolver
	Blobs      domain.BlobStore
	Tx         domain.TxManager
	Publisher  domain.EventPublisher
	Metrics    *metrics.PrintshopMetrics
	Logger     *zap.Logger
	Now        func() time.Time
	NewID      func() string
}

func NewDefaultOrderUsecase(
	orderRepo domain.OrderRepository,
	shopRepo domain.ShopRepository,
	clientRepo domain.ClientRepository,
	prices PriceResolver,
	blobs domain.BlobStore,
	tx domain.TxManager,
	publisher domain.EventPublisher,
	printshopMetrics *metrics.PrintshopMetrics,
	log *zap.Logger,
) *DefaultOrderUsecase {
	return &DefaultOrderUsecase{
		OrderRepo:  orderRepo,
		ShopRepo:   shopRepo,
		ClientRepo: clientRepo,
		Prices:     prices,
		Blobs:      blobs,
		Tx:         tx,
		Publisher:  publisher,
		Metrics:    printshopMetrics,
		Logger:     logger.OrNop(log).Named("order"),
		Now:        func() time.Time { return time.Now().UTC() },
		NewID:      uuid.NewString,
	}
}
