package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/LavaJover/printshop-order-service/internal/domain"
	"github.com/LavaJover/printshop-order-service/internal/infrastructure/postgres"
	"github.com/LavaJover/printshop-order-service/internal/infrastructure/postgres/mappers"
	"github.com/LavaJover/printshop-order-service/internal/infrastructure/postgres/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type DefaultCatalogRepository struct {
	DB *gorm.DB
}

func NewDefaultCatalogRepository(db *gorm.DB) *DefaultCatalogRepository {
	return &DefaultCatalogRepository{DB: db}
}

func (r *DefaultCatalogRepository) ListServicePrices(ctx context.Context) ([]domain.ServicePrice, error) {
	var rows []models.ServicePriceModel
	if err := postgres.Conn(ctx, r.DB).Order("service_name").Find(&rows).Error; err != nil {
		return nil, postgres.MapError(err, "service prices")
	}
	return toServicePrices(rows), nil
}

func (r *DefaultCatalogRepository) GetServicePrice(ctx context.Context, serviceName string) (*domain.ServicePrice, error) {
	var row models.ServicePriceModel
	if err := postgres.Conn(ctx, r.DB).First(&row, "service_name = ?", serviceName).Error; err != nil {
		return nil, postgres.MapError(err, fmt.Sprintf("service %q", serviceName))
	}
	price := mappers.ToDomainServicePrice(&row)
	return &price, nil
}

func (r *DefaultCatalogRepository) UpsertServicePrice(ctx context.Context, price *domain.ServicePrice) error {
	err := postgres.Conn(ctx, r.DB).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "service_name"}},
		DoUpdates: clause.AssignmentColumns([]string{"base_price", "is_photo_print", "updated_at"}),
	}).Create(mappers.ToGORMServicePrice(price)).Error
	return postgres.MapError(err, fmt.Sprintf("service %q", price.ServiceName))
}

// DeleteServicePrice relies on ON DELETE CASCADE to drop the overrides.
func (r *DefaultCatalogRepository) DeleteServicePrice(ctx context.Context, serviceName string) error {
	res := postgres.Conn(ctx, r.DB).Delete(&models.ServicePriceModel{}, "service_name = ?", serviceName)
	return affected(res, fmt.Sprintf("service %q", serviceName))
}

func (r *DefaultCatalogRepository) LockServicePrices(ctx context.Context) ([]domain.ServicePrice, error) {
	var rows []models.ServicePriceModel
	err := postgres.Conn(ctx, r.DB).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Order("service_name").
		Find(&rows).Error
	if err != nil {
		return nil, postgres.MapError(err, "service prices")
	}
	return toServicePrices(rows), nil
}

func (r *DefaultCatalogRepository) UpdateBasePrice(ctx context.Context, serviceName string, price decimal.Decimal) error {
	res := postgres.Conn(ctx, r.DB).Model(&models.ServicePriceModel{}).
		Where("service_name = ?", serviceName).
		Updates(map[string]any{"base_price": price, "updated_at": time.Now().UTC()})
	return affected(res, fmt.Sprintf("service %q", serviceName))
}

func (r *DefaultCatalogRepository) ListLocalPrices(ctx context.Context, shopID string) ([]domain.LocalPrice, error) {
	var rows []models.LocalPriceModel
	if err := postgres.Conn(ctx, r.DB).Where("shop_id = ?", shopID).Order("service_name").Find(&rows).Error; err != nil {
		return nil, postgres.MapError(err, "local prices")
	}
	out := make([]domain.LocalPrice, 0, len(rows))
	for i := range rows {
		out = append(out, mappers.ToDomainLocalPrice(&rows[i]))
	}
	return out, nil
}

func (r *DefaultCatalogRepository) UpsertLocalPrice(ctx context.Context, price *domain.LocalPrice) error {
	err := postgres.Conn(ctx, r.DB).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "shop_id"}, {Name: "service_name"}},
		DoUpdates: clause.AssignmentColumns([]string{"price", "updated_at"}),
	}).Create(mappers.ToGORMLocalPrice(price)).Error
	return postgres.MapError(err, fmt.Sprintf("local price %s/%q", price.ShopID, price.ServiceName))
}

func (r *DefaultCatalogRepository) DeleteLocalPrice(ctx context.Context, shopID, serviceName string) error {
	res := postgres.Conn(ctx, r.DB).Delete(&models.LocalPriceModel{}, "shop_id = ? AND service_name = ?", shopID, serviceName)
	return affected(res, fmt.Sprintf("local price %s/%q", shopID, serviceName))
}

func toServicePrices(rows []models.ServicePriceModel) []domain.ServicePrice {
	out := make([]domain.ServicePrice, 0, len(rows))
	for i := range rows {
		out = append(out, mappers.ToDomainServicePrice(&rows[i]))
	}
	return out
}

// affected maps a write that touched no row to ErrNotFound.
func affected(res *gorm.DB, what string) error {
	if res.Error != nil {
		return postgres.MapError(res.Error, what)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: %s", domain.ErrNotFound, what)
	}
	return nil
}
