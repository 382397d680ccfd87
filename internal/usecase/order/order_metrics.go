package order

import (
	"github.com/LavaJover/printshop-order-service/internal/domain"
	"github.com/LavaJover/printshop-order-service/internal/usecase"
)

func (uc *DefaultOrderUsecase) recordOrderCreatedMetrics(order *domain.Order, failedUploads int) {
	if uc.Metrics == nil {
		return
	}
	total, _ := order.TotalPrice.Float64()
	uc.Metrics.RecordOrderCreated(order.ShopID, total, failedUploads)
}

// recordTransitionMetrics is called after a committed status change.
func (uc *DefaultOrderUsecase) recordTransitionMetrics(order *domain.Order, from domain.OrderStatus, accrued bool) {
	if uc.Metrics == nil {
		return
	}

	uc.Metrics.RecordTransition(string(from), string(order.Status))

	if order.Status.IsTerminal() && !order.CreatedAt.IsZero() {
		uc.Metrics.RecordOrderProcessingDuration(
			order.ShopID,
			string(order.Status),
			order.UpdatedAt.Sub(order.CreatedAt).Seconds(),
		)
	}

	if accrued {
		uc.Metrics.RecordPointsAccrued(order.PointsEarned)
	}
}

func (uc *DefaultOrderUsecase) recordError(operation string, err error) {
	if uc.Metrics == nil {
		return
	}
	uc.Metrics.RecordError(operation, usecase.ErrorKind(err))
}
