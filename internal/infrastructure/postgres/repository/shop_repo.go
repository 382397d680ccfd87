package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/LavaJover/printshop-order-service/internal/domain"
	"github.com/LavaJover/printshop-order-service/internal/infrastructure/postgres"
	"github.com/LavaJover/printshop-order-service/internal/infrastructure/postgres/mappers"
	"github.com/LavaJover/printshop-order-service/internal/infrastructure/postgres/models"
	"gorm.io/gorm"
)

type DefaultShopRepository struct {
	DB *gorm.DB
}

func NewDefaultShopRepository(db *gorm.DB) *DefaultShopRepository {
	return &DefaultShopRepository{DB: db}
}

func (r *DefaultShopRepository) CreateShop(ctx context.Context, shop *domain.Shop) error {
	err := postgres.Conn(ctx, r.DB).Create(mappers.ToGORMShop(shop)).Error
	return postgres.MapError(err, "shop "+shop.ID)
}

func (r *DefaultShopRepository) GetShop(ctx context.Context, shopID string) (*domain.Shop, error) {
	var row models.ShopModel
	if err := postgres.Conn(ctx, r.DB).First(&row, "id = ?", shopID).Error; err != nil {
		return nil, postgres.MapError(err, "shop "+shopID)
	}
	return mappers.ToDomainShop(&row), nil
}

func (r *DefaultShopRepository) ListShops(ctx context.Context) ([]*domain.Shop, error) {
	var rows []models.ShopModel
	if err := postgres.Conn(ctx, r.DB).Order("name, id").Find(&rows).Error; err != nil {
		return nil, postgres.MapError(err, "shops")
	}
	out := make([]*domain.Shop, 0, len(rows))
	for i := range rows {
		out = append(out, mappers.ToDomainShop(&rows[i]))
	}
	return out, nil
}

func (r *DefaultShopRepository) UpdateShop(ctx context.Context, shop *domain.Shop) error {
	res := postgres.Conn(ctx, r.DB).Model(&models.ShopModel{}).
		Where("id = ?", shop.ID).
		Updates(map[string]any{
			"name":            shop.Name,
			"address":         shop.Address,
			"has_photo_print": shop.HasPhotoPrint,
			"can_edit_prices": shop.CanEditPrices,
			"updated_at":      shop.UpdatedAt,
		})
	return affected(res, "shop "+shop.ID)
}

func (r *DefaultShopRepository) ClearManager(ctx context.Context, managerID string) error {
	err := postgres.Conn(ctx, r.DB).Model(&models.ShopModel{}).
		Where("manager_id = ?", managerID).
		Updates(map[string]any{"manager_id": gorm.Expr("NULL"), "updated_at": time.Now().UTC()}).Error
	return postgres.MapError(err, fmt.Sprintf("manager %s", managerID))
}

func (r *DefaultShopRepository) SetManager(ctx context.Context, shopID, managerID string) error {
	var manager any = gorm.Expr("NULL")
	if managerID != "" {
		manager = managerID
	}
	res := postgres.Conn(ctx, r.DB).Model(&models.ShopModel{}).
		Where("id = ?", shopID).
		Updates(map[string]any{"manager_id": manager, "updated_at": time.Now().UTC()})
	return affected(res, "shop "+shopID)
}
