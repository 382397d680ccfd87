package domain

import (
	"context"

	"github.com/shopspring/decimal"
)

type CatalogRepository interface {
	ListServicePrices(ctx context.Context) ([]ServicePrice, error)
	GetServicePrice(ctx context.Context, serviceName string) (*ServicePrice, error)
	UpsertServicePrice(ctx context.Context, price *ServicePrice) error
	// DeleteServicePrice also drops every local override of the service.
	DeleteServicePrice(ctx context.Context, serviceName string) error
	// LockServicePrices reads all global rows for update. Call inside a transaction.
	LockServicePrices(ctx context.Context) ([]ServicePrice, error)
	UpdateBasePrice(ctx context.Context, serviceName string, price decimal.Decimal) error

	ListLocalPrices(ctx context.Context, shopID string) ([]LocalPrice, error)
	UpsertLocalPrice(ctx context.Context, price *LocalPrice) error
	DeleteLocalPrice(ctx context.Context, shopID, serviceName string) error
}

type ShopRepository interface {
	CreateShop(ctx context.Context, shop *Shop) error
	GetShop(ctx context.Context, shopID string) (*Shop, error)
	ListShops(ctx context.Context) ([]*Shop, error)
	// UpdateShop writes name, address and capability flags.
	UpdateShop(ctx context.Context, shop *Shop) error
	// ClearManager detaches managerID from whatever shop holds it.
	ClearManager(ctx context.Context, managerID string) error
	// SetManager overwrites the shop's manager. An empty id unassigns.
	SetManager(ctx context.Context, shopID, managerID string) error
}
