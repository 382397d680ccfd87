package catalog

import (
	"context"
	"fmt"
	"strings"

	"github.com/LavaJover/printshop-order-service/internal/domain"
	catalogdto "github.com/LavaJover/printshop-order-service/internal/usecase/dto/catalog"
	"go.uber.org/zap"
)

func (uc *DefaultCatalogUsecase) CreateShop(ctx context.Context, actor domain.Actor, input *catalogdto.CreateShopInput) (*domain.Shop, error) {
	if err := actor.RequireAdmin(); err != nil {
		return nil, err
	}
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: shop name is required", domain.ErrValidation)
	}

	now := uc.Now()
	shop := &domain.Shop{
		ID:            uc.NewID(),
		Name:          name,
		Address:       strings.TrimSpace(input.Address),
		HasPhotoPrint: input.HasPhotoPrint,
		CanEditPrices: input.CanEditPrices,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := uc.ShopRepo.CreateShop(ctx, shop); err != nil {
		return nil, err
	}

	uc.Logger.Info("shop created", zap.String("shop_id", shop.ID), zap.String("actor_id", actor.ID))
	return shop, nil
}

func (uc *DefaultCatalogUsecase) GetShop(ctx context.Context, shopID string) (*domain.Shop, error) {
	return uc.ShopRepo.GetShop(ctx, shopID)
}

func (uc *DefaultCatalogUsecase) ListShops(ctx context.Context) ([]*domain.Shop, error) {
	return uc.ShopRepo.ListShops(ctx)
}

// UpdateShop patches shop attributes. Switching can_edit_prices off keeps
// the override rows, the resolver just stops applying them.
func (uc *DefaultCatalogUsecase) UpdateShop(ctx context.Context, actor domain.Actor, shopID string, input *catalogdto.UpdateShopInput) (*domain.Shop, error) {
	if err := actor.RequireAdmin(); err != nil {
		return nil, err
	}

	var shop *domain.Shop
	err := uc.Tx.WithinTx(ctx, func(ctx context.Context) error {
		var err error
		shop, err = uc.ShopRepo.GetShop(ctx, shopID)
		if err != nil {
			return err
		}
		if input.Name != nil {
			name := strings.TrimSpace(*input.Name)
			if name == "" {
				return fmt.Errorf("%w: shop name is required", domain.ErrValidation)
			}
			shop.Name = name
		}
		if input.Address != nil {
			shop.Address = strings.TrimSpace(*input.Address)
		}
		if input.HasPhotoPrint != nil {
			shop.HasPhotoPrint = *input.HasPhotoPrint
		}
		if input.CanEditPrices != nil {
			shop.CanEditPrices = *input.CanEditPrices
		}
		shop.UpdatedAt = uc.Now()
		return uc.ShopRepo.UpdateShop(ctx, shop)
	})
	if err != nil {
		return nil, err
	}
	return shop, nil
}

// AssignManager gives shopID to managerID, first detaching the manager from
// any shop they held, so a manager runs at most one shop.
func (uc *DefaultCatalogUsecase) AssignManager(ctx context.Context, actor domain.Actor, shopID, managerID string) (*domain.Shop, error) {
	if err := actor.RequireAdmin(); err != nil {
		return nil, err
	}
	managerID = strings.TrimSpace(managerID)
	if managerID == "" {
		return nil, fmt.Errorf("%w: manager id is required", domain.ErrValidation)
	}

	var shop *domain.Shop
	err := uc.Tx.WithinTx(ctx, func(ctx context.Context) error {
		var err error
		if shop, err = uc.ShopRepo.GetShop(ctx, shopID); err != nil {
			return err
		}
		if err := uc.ShopRepo.ClearManager(ctx, managerID); err != nil {
			return err
		}
		if err := uc.ShopRepo.SetManager(ctx, shopID, managerID); err != nil {
			return err
		}
		shop.ManagerID = managerID
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.Logger.Info("manager assigned",
		zap.String("shop_id", shopID),
		zap.String("manager_id", managerID),
		zap.String("actor_id", actor.ID),
	)
	return shop, nil
}

func (uc *DefaultCatalogUsecase) UnassignManager(ctx context.Context, actor domain.Actor, shopID string) (*domain.Shop, error) {
	if err := actor.RequireAdmin(); err != nil {
		return nil, err
	}

	var shop *domain.Shop
	err := uc.Tx.WithinTx(ctx, func(ctx context.Context) error {
		var err error
		if shop, err = uc.ShopRepo.GetShop(ctx, shopID); err != nil {
			return err
		}
		shop.ManagerID = ""
		return uc.ShopRepo.SetManager(ctx, shopID, "")
	})
	if err != nil {
		return nil, err
	}
	return shop, nil
}
