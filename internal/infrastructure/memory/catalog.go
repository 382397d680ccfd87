package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/LavaJover/printshop-order-service/internal/domain"
	"github.com/shopspring/decimal"
)

func (s *Store) ListServicePrices(ctx context.Context) ([]domain.ServicePrice, error) {
	defer s.lock(ctx)()
	return s.sortedPrices(), nil
}

func (s *Store) sortedPrices() []domain.ServicePrice {
	out := make([]domain.ServicePrice, 0, len(s.st.prices))
	for _, p := range s.st.prices {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ServiceName < out[j].ServiceName })
	return out
}

func (s *Store) GetServicePrice(ctx context.Context, serviceName string) (*domain.ServicePrice, error) {
	defer s.lock(ctx)()
	p, ok := s.st.prices[serviceName]
	if !ok {
		return nil, fmt.Errorf("%w: service %q", domain.ErrNotFound, serviceName)
	}
	return &p, nil
}

func (s *Store) UpsertServicePrice(ctx context.Context, price *domain.ServicePrice) error {
	defer s.lock(ctx)()
	s.st.prices[price.ServiceName] = *price
	return nil
}

func (s *Store) DeleteServicePrice(ctx context.Context, serviceName string) error {
	defer s.lock(ctx)()
	if _, ok := s.st.prices[serviceName]; !ok {
		return fmt.Errorf("%w: service %q", domain.ErrNotFound, serviceName)
	}
	delete(s.st.prices, serviceName)
	for _, overrides := range s.st.local {
		delete(overrides, serviceName)
	}
	return nil
}

func (s *Store) LockServicePrices(ctx context.Context) ([]domain.ServicePrice, error) {
	defer s.lock(ctx)()
	return s.sortedPrices(), nil
}

func (s *Store) UpdateBasePrice(ctx context.Context, serviceName string, price decimal.Decimal) error {
	defer s.lock(ctx)()
	p, ok := s.st.prices[serviceName]
	if !ok {
		return fmt.Errorf("%w: service %q", domain.ErrNotFound, serviceName)
	}
	p.BasePrice = price
	s.st.prices[serviceName] = p
	return nil
}

func (s *Store) ListLocalPrices(ctx context.Context, shopID string) ([]domain.LocalPrice, error) {
	defer s.lock(ctx)()
	out := make([]domain.LocalPrice, 0, len(s.st.local[shopID]))
	for _, p := range s.st.local[shopID] {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ServiceName < out[j].ServiceName })
	return out, nil
}

func (s *Store) UpsertLocalPrice(ctx context.Context, price *domain.LocalPrice) error {
	defer s.lock(ctx)()
	if _, ok := s.st.shops[price.ShopID]; !ok {
		return fmt.Errorf("%w: shop %s", domain.ErrNotFound, price.ShopID)
	}
	if _, ok := s.st.prices[price.ServiceName]; !ok {
		return fmt.Errorf("%w: service %q", domain.ErrNotFound, price.ServiceName)
	}
	if s.st.local[price.ShopID] == nil {
		s.st.local[price.ShopID] = map[string]domain.LocalPrice{}
	}
	s.st.local[price.ShopID][price.ServiceName] = *price
	return nil
}

func (s *Store) DeleteLocalPrice(ctx context.Context, shopID, serviceName string) error {
	defer s.lock(ctx)()
	if _, ok := s.st.local[shopID][serviceName]; !ok {
		return fmt.Errorf("%w: local price %q", domain.ErrNotFound, serviceName)
	}
	delete(s.st.local[shopID], serviceName)
	return nil
}

func (s *Store) CreateShop(ctx context.Context, shop *domain.Shop) error {
	defer s.lock(ctx)()
	if _, ok := s.st.shops[shop.ID]; ok {
		return fmt.Errorf("%w: shop %s exists", domain.ErrConflict, shop.ID)
	}
	s.st.shops[shop.ID] = *shop
	return nil
}

func (s *Store) GetShop(ctx context.Context, shopID string) (*domain.Shop, error) {
	defer s.lock(ctx)()
	shop, ok := s.st.shops[shopID]
	if !ok {
		return nil, fmt.Errorf("%w: shop %s", domain.ErrNotFound, shopID)
	}
	return &shop, nil
}

func (s *Store) ListShops(ctx context.Context) ([]*domain.Shop, error) {
	defer s.lock(ctx)()
	out := make([]*domain.Shop, 0, len(s.st.shops))
	for _, shop := range s.st.shops {
		shop := shop
		out = append(out, &shop)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (s *Store) UpdateShop(ctx context.Context, shop *domain.Shop) error {
	defer s.lock(ctx)()
	current, ok := s.st.shops[shop.ID]
	if !ok {
		return fmt.Errorf("%w: shop %s", domain.ErrNotFound, shop.ID)
	}
	current.Name = shop.Name
	current.Address = shop.Address
	current.HasPhotoPrint = shop.HasPhotoPrint
	current.CanEditPrices = shop.CanEditPrices
	current.UpdatedAt = shop.UpdatedAt
	s.st.shops[shop.ID] = current
	return nil
}

func (s *Store) ClearManager(ctx context.Context, managerID string) error {
	defer s.lock(ctx)()
	for id, shop := range s.st.shops {
		if shop.ManagerID == managerID {
			shop.ManagerID = ""
			s.st.shops[id] = shop
		}
	}
	return nil
}

func (s *Store) SetManager(ctx context.Context, shopID, managerID string) error {
	defer s.lock(ctx)()
	shop, ok := s.st.shops[shopID]
	if !ok {
		return fmt.Errorf("%w: shop %s", domain.ErrNotFound, shopID)
	}
	shop.ManagerID = managerID
	s.st.shops[shopID] = shop
	return nil
}
