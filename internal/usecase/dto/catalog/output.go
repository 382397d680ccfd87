package catalogdto

import "github.com/LavaJover/printshop-order-service/internal/domain"

type CatalogEntryOutput struct {
	ServiceName    string `json:"service_name"`
	EffectivePrice string `json:"effective_price"`
	IsPhotoPrint   bool   `json:"is_photo_print"`
	IsCustom       bool   `json:"is_custom"`
}

type ServicePriceOutput struct {
	ServiceName  string `json:"service_name"`
	BasePrice    string `json:"base_price"`
	IsPhotoPrint bool   `json:"is_photo_print"`
}

type ShopOutput struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Address       string `json:"address"`
	ManagerID     string `json:"manager_id,omitempty"`
	HasPhotoPrint bool   `json:"has_photo_print"`
	CanEditPrices bool   `json:"can_edit_prices"`
}

type AdjustPricesOutput struct {
	RowsUpdated int64 `json:"rows_updated"`
}

func ToCatalogOutputs(entries []domain.CatalogEntry) []CatalogEntryOutput {
	out := make([]CatalogEntryOutput, 0, len(entries))
	for _, e := range entries {
		out = append(out, CatalogEntryOutput{
			ServiceName:    e.ServiceName,
			EffectivePrice: e.EffectivePrice.StringFixed(2),
			IsPhotoPrint:   e.IsPhotoPrint,
			IsCustom:       e.IsCustom,
		})
	}
	return out
}

func ToServicePriceOutput(p *domain.ServicePrice) *ServicePriceOutput {
	return &ServicePriceOutput{
		ServiceName:  p.ServiceName,
		BasePrice:    p.BasePrice.StringFixed(2),
		IsPhotoPrint: p.IsPhotoPrint,
	}
}

func ToShopOutput(s *domain.Shop) *ShopOutput {
	return &ShopOutput{
		ID:            s.ID,
		Name:          s.Name,
		Address:       s.Address,
		ManagerID:     s.ManagerID,
		HasPhotoPrint: s.HasPhotoPrint,
		CanEditPrices: s.CanEditPrices,
	}
}

type LocalPriceOutput struct {
	ShopID      string `json:"shop_id"`
	ServiceName string `json:"service_name"`
	Price       string `json:"price"`
}

func ToLocalPriceOutput(p *domain.LocalPrice) *LocalPriceOutput {
	return &LocalPriceOutput{ShopID: p.ShopID, ServiceName: p.ServiceName, Price: p.Price.StringFixed(2)}
}
