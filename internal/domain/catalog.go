package domain

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

type ServicePrice struct {
	ServiceName  string
	BasePrice    decimal.Decimal
	IsPhotoPrint bool
	UpdatedAt    time.Time
}

// LocalPrice overrides the global price of a service at one shop.
type LocalPrice struct {
	ShopID      string
	ServiceName string
	Price       decimal.Decimal
	UpdatedAt   time.Time
}

type Shop struct {
	ID            string
	Name          string
	Address       string
	ManagerID     string
	HasPhotoPrint bool
	CanEditPrices bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

type CatalogEntry struct {
	ServiceName    string
	EffectivePrice decimal.Decimal
	IsPhotoPrint   bool
	IsCustom       bool
}

// ResolveCatalog derives the priced catalog a shop may offer. Photo print
// services are dropped when the shop has no photo printing, and overrides
// only apply while the shop is allowed to edit prices.
func ResolveCatalog(shop *Shop, prices []ServicePrice, overrides []LocalPrice) []CatalogEntry {
	local := make(map[string]decimal.Decimal, len(overrides))
	if shop.CanEditPrices {
		for _, o := range overrides {
			if o.ShopID != shop.ID {
				continue
			}
			local[o.ServiceName] = o.Price
		}
	}

	catalog := make([]CatalogEntry, 0, len(prices))
	for _, p := range prices {
		if p.IsPhotoPrint && !shop.HasPhotoPrint {
			continue
		}
		entry := CatalogEntry{
			ServiceName:    p.ServiceName,
			EffectivePrice: p.BasePrice,
			IsPhotoPrint:   p.IsPhotoPrint,
		}
		if price, ok := local[p.ServiceName]; ok {
			entry.EffectivePrice = price
			entry.IsCustom = true
		}
		catalog = append(catalog, entry)
	}

	sort.Slice(catalog, func(i, j int) bool {
		return catalog[i].ServiceName < catalog[j].ServiceName
	})
	return catalog
}

// AdjustPrice applies a percentage delta and rounds to the minor unit,
// half away from zero.
func AdjustPrice(base, percent decimal.Decimal) decimal.Decimal {
	hundred := decimal.NewFromInt(100)
	return base.Mul(hundred.Add(percent)).Div(hundred).Round(2)
}
