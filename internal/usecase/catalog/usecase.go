package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/LavaJover/printshop-order-service/internal/domain"
	"github.com/LavaJover/printshop-order-service/internal/infrastructure/logger"
	"github.com/LavaJover/printshop-order-service/internal/infrastructure/metrics"
	"github.com/LavaJover/printshop-order-service/internal/infrastructure/tracing"
	catalogdto "github.com/LavaJover/printshop-order-service/internal/usecase/dto/catalog"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

const tracerName = "printshop/usecase/catalog"

type CatalogUsecase interface {
	ResolveCatalog(ctx context.Context, shopID string) ([]domain.CatalogEntry, error)

	ListServicePrices(ctx context.Context) ([]domain.ServicePrice, error)
	UpsertServicePrice(ctx context.Context, actor domain.Actor, input *catalogdto.ServicePriceInput) (*domain.ServicePrice, error)
	DeleteServicePrice(ctx context.Context, actor domain.Actor, serviceName string) error
	AdjustGlobalPrices(ctx context.Context, actor domain.Actor, percent decimal.Decimal) (int64, error)

	UpsertLocalPrice(ctx context.Context, actor domain.Actor, input *catalogdto.LocalPriceInput) (*domain.LocalPrice, error)
	DeleteLocalPrice(ctx context.Context, actor domain.Actor, shopID, serviceName string) error

	CreateShop(ctx context.Context, actor domain.Actor, input *catalogdto.CreateShopInput) (*domain.Shop, error)
	GetShop(ctx context.Context, shopID string) (*domain.Shop, error)
	ListShops(ctx context.Context) ([]*domain.Shop, error)
	UpdateShop(ctx context.Context, actor domain.Actor, shopID string, input *catalogdto.UpdateShopInput) (*domain.Shop, error)
	AssignManager(ctx context.Context, actor domain.Actor, shopID, managerID string) (*domain.Shop, error)
	UnassignManager(ctx context.Context, actor domain.Actor, shopID string) (*domain.Shop, error)
}

type DefaultCatalogUsecase struct {
	CatalogRepo domain.CatalogRepository
	ShopRepo    domain.ShopRepository
	Tx          domain.TxManager
	Publisher   domain.EventPublisher
	Metrics     *metrics.PrintshopMetrics
	Logger      *zap.Logger
	Now         func() time.Time
	NewID       func() string
}

func NewDefaultCatalogUsecase(
	catalogRepo domain.CatalogRepository,
	shopRepo domain.ShopRepository,
	tx domain.TxManager,
	publisher domain.EventPublisher,
	printshopMetrics *metrics.PrintshopMetrics,
	log *zap.Logger,
	newID func() string,
) *DefaultCatalogUsecase {
	return &DefaultCatalogUsecase{
		CatalogRepo: catalogRepo,
		ShopRepo:    shopRepo,
		Tx:          tx,
		Publisher:   publisher,
		Metrics:     printshopMetrics,
		Logger:      logger.OrNop(log).Named("catalog"),
		Now:         func() time.Time { return time.Now().UTC() },
		NewID:       newID,
	}
}

func (uc *DefaultCatalogUsecase) ResolveCatalog(ctx context.Context, shopID string) (_ []domain.CatalogEntry, err error) {
	ctx, span := tracing.Start(ctx, tracerName, "catalog.Resolve", attribute.String("shop_id", shopID))
	defer tracing.End(span, &err)

	shop, err := uc.ShopRepo.GetShop(ctx, shopID)
	if err != nil {
		return nil, err
	}
	prices, err := uc.CatalogRepo.ListServicePrices(ctx)
	if err != nil {
		return nil, err
	}

	var overrides []domain.LocalPrice
	if shop.CanEditPrices {
		overrides, err = uc.CatalogRepo.ListLocalPrices(ctx, shop.ID)
		if err != nil {
			return nil, err
		}
	}

	return domain.ResolveCatalog(shop, prices, overrides), nil
}

func (uc *DefaultCatalogUsecase) ListServicePrices(ctx context.Context) ([]domain.ServicePrice, error) {
	return uc.CatalogRepo.ListServicePrices(ctx)
}

func (uc *DefaultCatalogUsecase) UpsertServicePrice(ctx context.Context, actor domain.Actor, input *catalogdto.ServicePriceInput) (*domain.ServicePrice, error) {
	if err := actor.RequireAdmin(); err != nil {
		return nil, err
	}
	name := strings.TrimSpace(input.ServiceName)
	if name == "" {
		return nil, fmt.Errorf("%w: service name is required", domain.ErrValidation)
	}
	price, err := parsePrice(input.BasePrice)
	if err != nil {
		return nil, err
	}

	sp := &domain.ServicePrice{
		ServiceName:  name,
		BasePrice:    price,
		IsPhotoPrint: input.IsPhotoPrint,
		UpdatedAt:    uc.Now(),
	}
	if err := uc.CatalogRepo.UpsertServicePrice(ctx, sp); err != nil {
		return nil, err
	}

	uc.Logger.Info("service price saved",
		zap.String("service", name),
		zap.String("base_price", price.StringFixed(2)),
		zap.String("actor_id", actor.ID),
	)
	return sp, nil
}

func (uc *DefaultCatalogUsecase) DeleteServicePrice(ctx context.Context, actor domain.Actor, serviceName string) error {
	if err := actor.RequireAdmin(); err != nil {
		return err
	}
	if err := uc.CatalogRepo.DeleteServicePrice(ctx, serviceName); err != nil {
		return err
	}
	uc.Logger.Info("service price deleted", zap.String("service", serviceName), zap.String("actor_id", actor.ID))
	return nil
}

func (uc *DefaultCatalogUsecase) UpsertLocalPrice(ctx context.Context, actor domain.Actor, input *catalogdto.LocalPriceInput) (*domain.LocalPrice, error) {
	shop, err := uc.ShopRepo.GetShop(ctx, input.ShopID)
	if err != nil {
		return nil, err
	}
	if !actor.Manages(shop) {
		return nil, fmt.Errorf("%w: only the shop manager edits local prices", domain.ErrForbidden)
	}
	if !shop.CanEditPrices {
		return nil, fmt.Errorf("%w: shop %s may not edit prices", domain.ErrForbidden, shop.ID)
	}

	name := strings.TrimSpace(input.ServiceName)
	if _, err := uc.CatalogRepo.GetServicePrice(ctx, name); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("%w: unknown service %q", domain.ErrValidation, name)
		}
		return nil, err
	}
	price, err := parsePrice(input.Price)
	if err != nil {
		return nil, err
	}

	lp := &domain.LocalPrice{ShopID: shop.ID, ServiceName: name, Price: price, UpdatedAt: uc.Now()}
	if err := uc.CatalogRepo.UpsertLocalPrice(ctx, lp); err != nil {
		return nil, err
	}
	return lp, nil
}

func (uc *DefaultCatalogUsecase) DeleteLocalPrice(ctx context.Context, actor domain.Actor, shopID, serviceName string) error {
	shop, err := uc.ShopRepo.GetShop(ctx, shopID)
	if err != nil {
		return err
	}
	if !actor.Manages(shop) {
		return fmt.Errorf("%w: only the shop manager edits local prices", domain.ErrForbidden)
	}
	return uc.CatalogRepo.DeleteLocalPrice(ctx, shop.ID, serviceName)
}

// parsePrice accepts a non-negative amount with at most two decimals.
func parsePrice(raw string) (decimal.Decimal, error) {
	price, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: price %q is not a number", domain.ErrValidation, raw)
	}
	if price.IsNegative() {
		return decimal.Zero, fmt.Errorf("%w: price must not be negative", domain.ErrValidation)
	}
	if !price.Equal(price.Round(2)) {
		return decimal.Zero, fmt.Errorf("%w: price %s has more than two decimals", domain.ErrValidation, raw)
	}
	return price, nil
}
