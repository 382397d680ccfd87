package order

import (
	"context"
	"fmt"

	"github.com/LavaJover/printshop-order-service/internal/domain"
	"github.com/LavaJover/printshop-order-service/internal/infrastructure/tracing"
	"github.com/LavaJover/printshop-order-service/internal/usecase"
	orderdto "github.com/LavaJover/printshop-order-service/internal/usecase/dto/order"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// TransitionOrder moves an order one step along the status table. The status
// write is conditional on the status read here, so of two racing callers one
// gets ErrConflict. Points accrue in the same transaction that completes the
// order, which makes accrual happen at most once.
func (uc *DefaultOrderUsecase) TransitionOrder(ctx context.Context, actor domain.Actor, orderID, newStatus string) (_ *orderdto.OrderOutput, err error) {
	ctx, span := tracing.Start(ctx, tracerName, "order.Transition",
		attribute.String("order_id", orderID),
		attribute.String("new_status", newStatus),
	)
	defer tracing.End(span, &err)

	to, err := domain.ParseOrderStatus(newStatus)
	if err != nil {
		uc.recordError("transition_order", err)
		return nil, err
	}

	order, err := uc.OrderRepo.GetOrderByID(ctx, orderID)
	if err != nil {
		uc.recordError("transition_order", err)
		return nil, err
	}
	shop, err := uc.ShopRepo.GetShop(ctx, order.ShopID)
	if err != nil {
		uc.recordError("transition_order", err)
		return nil, err
	}
	if !actor.IsAdmin() && !actor.Manages(shop) {
		err := fmt.Errorf("%w: only the shop manager or an administrator may change order %s", domain.ErrForbidden, order.ID)
		uc.recordError("transition_order", err)
		return nil, err
	}

	from := order.Status
	if from == to {
		err := fmt.Errorf("%w: order %s is already %s", domain.ErrInvalidTransition, order.ID, to)
		uc.recordError("transition_order", err)
		return nil, err
	}
	if !domain.CanTransition(from, to) {
		err := fmt.Errorf("%w: %s -> %s", domain.ErrInvalidTransition, from, to)
		uc.recordError("transition_order", err)
		return nil, err
	}

	now := uc.Now()
	accrue := to == domain.StatusCompleted && order.PointsEarned > 0
	err = uc.Tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := uc.OrderRepo.UpdateStatus(ctx, order.ID, from, to, now); err != nil {
			return err
		}
		if err := uc.OrderRepo.AppendAudit(ctx, &domain.AuditEntry{
			OrderID: order.ID,
			ActorID: actor.ID,
			Action:  domain.AuditStatusChange,
			Details: map[string]any{
				"new_status":      string(to),
				"previous_status": string(from),
			},
			CreatedAt: now,
		}); err != nil {
			return err
		}
		if !accrue {
			return nil
		}
		if err := uc.ClientRepo.EnsureClient(ctx, order.ClientID); err != nil {
			return err
		}
		return uc.ClientRepo.AddPoints(ctx, order.ClientID, order.PointsEarned)
	})
	if err != nil {
		uc.recordError("transition_order", err)
		return nil, err
	}

	order.Status = to
	order.UpdatedAt = now
	uc.recordTransitionMetrics(order, from, accrue)
	uc.Logger.Info("order status changed",
		zap.String("order_id", order.ID),
		zap.String("from", string(from)),
		zap.String("to", string(to)),
		zap.String("actor_id", actor.ID),
	)
	if accrue {
		usecase.PublishLedger(ctx, uc.Publisher, uc.Logger, domain.LedgerEvent{
			Type:       domain.LedgerAccrued,
			ClientID:   order.ClientID,
			OrderID:    order.ID,
			Points:     order.PointsEarned,
			OccurredAt: now,
		})
	}

	return orderdto.ToOrderOutput(order), nil
}
