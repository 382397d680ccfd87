package order

import (
	"context"
	"fmt"

	"github.com/LavaJover/printshop-order-service/internal/domain"
	orderdto "github.com/LavaJover/printshop-order-service/internal/usecase/dto/order"
)

// GetOrder returns the order with its lines and audit trail. The owning
// client, the shop manager and administrators may read it.
func (uc *DefaultOrderUsecase) GetOrder(ctx context.Context, actor domain.Actor, orderID string) (*orderdto.OrderOutput, error) {
	order, err := uc.OrderRepo.GetOrderByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if err := uc.canRead(ctx, actor, order); err != nil {
		return nil, err
	}
	entries, err := uc.OrderRepo.ListAuditEntries(ctx, order.ID)
	if err != nil {
		return nil, err
	}

	out := orderdto.ToOrderOutput(order)
	out.Audit = orderdto.ToAuditOutputs(entries)
	return out, nil
}

func (uc *DefaultOrderUsecase) ListClientOrders(ctx context.Context, actor domain.Actor, clientID string) ([]*orderdto.OrderOutput, error) {
	if !actor.IsAdmin() && (actor.Role != domain.RoleClient || actor.ID != clientID) {
		return nil, fmt.Errorf("%w: not allowed to list orders of client %s", domain.ErrForbidden, clientID)
	}
	orders, err := uc.OrderRepo.ListOrdersByClient(ctx, clientID)
	if err != nil {
		return nil, err
	}
	return toOutputs(orders), nil
}

// ListShopOrders lists a shop's orders, all of them when status is empty.
func (uc *DefaultOrderUsecase) ListShopOrders(ctx context.Context, actor domain.Actor, shopID, status string) ([]*orderdto.OrderOutput, error) {
	shop, err := uc.ShopRepo.GetShop(ctx, shopID)
	if err != nil {
		return nil, err
	}
	if !actor.IsAdmin() && !actor.Manages(shop) {
		return nil, fmt.Errorf("%w: not allowed to list orders of shop %s", domain.ErrForbidden, shopID)
	}

	var filter domain.OrderStatus
	if status != "" {
		if filter, err = domain.ParseOrderStatus(status); err != nil {
			return nil, fmt.Errorf("%w: unknown status filter %q", domain.ErrValidation, status)
		}
	}

	orders, err := uc.OrderRepo.ListOrdersByShop(ctx, shopID, filter)
	if err != nil {
		return nil, err
	}
	return toOutputs(orders), nil
}

func (uc *DefaultOrderUsecase) canRead(ctx context.Context, actor domain.Actor, order *domain.Order) error {
	switch actor.Role {
	case domain.RoleAdmin:
		return nil
	case domain.RoleClient:
		if actor.ID == order.ClientID {
			return nil
		}
	case domain.RoleManager:
		shop, err := uc.ShopRepo.GetShop(ctx, order.ShopID)
		if err != nil {
			return err
		}
		if actor.Manages(shop) {
			return nil
		}
	}
	return fmt.Errorf("%w: not allowed to read order %s", domain.ErrForbidden, order.ID)
}

func toOutputs(orders []*domain.Order) []*orderdto.OrderOutput {
	out := make([]*orderdto.OrderOutput, 0, len(orders))
	for _, o := range orders {
		out = append(out, orderdto.ToOrderOutput(o))
	}
	return out
}
