package mappers

import (
	"github.com/LavaJover/printshop-order-service/internal/domain"
	"github.com/LavaJover/printshop-order-service/internal/infrastructure/postgres/models"
)

func ToDomainServicePrice(model *models.ServicePriceModel) domain.ServicePrice {
	return domain.ServicePrice{
		ServiceName:  model.ServiceName,
		BasePrice:    model.BasePrice,
		IsPhotoPrint: model.IsPhotoPrint,
		UpdatedAt:    model.UpdatedAt,
	}
}

func ToGORMServicePrice(price *domain.ServicePrice) *models.ServicePriceModel {
	return &models.ServicePriceModel{
		ServiceName:  price.ServiceName,
		BasePrice:    price.BasePrice,
		IsPhotoPrint: price.IsPhotoPrint,
		UpdatedAt:    price.UpdatedAt,
	}
}

func ToDomainLocalPrice(model *models.LocalPriceModel) domain.LocalPrice {
	return domain.LocalPrice{
		ShopID:      model.ShopID,
		ServiceName: model.ServiceName,
		Price:       model.Price,
		UpdatedAt:   model.UpdatedAt,
	}
}

func ToGORMLocalPrice(price *domain.LocalPrice) *models.LocalPriceModel {
	return &models.LocalPriceModel{
		ShopID:      price.ShopID,
		ServiceName: price.ServiceName,
		Price:       price.Price,
		UpdatedAt:   price.UpdatedAt,
	}
}

func ToDomainShop(model *models.ShopModel) *domain.Shop {
	shop := &domain.Shop{
		ID:            model.ID,
		Name:          model.Name,
		Address:       model.Address,
		HasPhotoPrint: model.HasPhotoPrint,
		CanEditPrices: model.CanEditPrices,
		CreatedAt:     model.CreatedAt,
		UpdatedAt:     model.UpdatedAt,
	}
	if model.ManagerID != nil {
		shop.ManagerID = *model.ManagerID
	}
	return shop
}

// ToGORMShop stores an empty manager as NULL so the unique index only
// covers assigned managers.
func ToGORMShop(shop *domain.Shop) *models.ShopModel {
	model := &models.ShopModel{
		ID:            shop.ID,
		Name:          shop.Name,
		Address:       shop.Address,
		HasPhotoPrint: shop.HasPhotoPrint,
		CanEditPrices: shop.CanEditPrices,
		CreatedAt:     shop.CreatedAt,
		UpdatedAt:     shop.UpdatedAt,
	}
	if shop.ManagerID != "" {
		managerID := shop.ManagerID
		model.ManagerID = &managerID
	}
	return model
}
