package catalog

import (
	"context"
	"fmt"

	"github.com/LavaJover/printshop-order-service/internal/domain"
	"github.com/LavaJover/printshop-order-service/internal/infrastructure/tracing"
	"github.com/LavaJover/printshop-order-service/internal/usecase"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

var minPercent = decimal.NewFromInt(-100)

// AdjustGlobalPrices rewrites every global base price by percent in one
// transaction. Local overrides are not touched.
func (uc *DefaultCatalogUsecase) AdjustGlobalPrices(ctx context.Context, actor domain.Actor, percent decimal.Decimal) (_ int64, err error) {
	ctx, span := tracing.Start(ctx, tracerName, "catalog.AdjustGlobalPrices", attribute.String("percent", percent.String()))
	defer tracing.End(span, &err)

	if err := actor.RequireAdmin(); err != nil {
		return 0, err
	}
	if percent.IsZero() {
		return 0, fmt.Errorf("%w: percentage must not be zero", domain.ErrValidation)
	}
	if percent.LessThan(minPercent) {
		return 0, fmt.Errorf("%w: percentage below -100 would make prices negative", domain.ErrValidation)
	}

	var rows int64
	err = uc.Tx.WithinTx(ctx, func(ctx context.Context) error {
		prices, err := uc.CatalogRepo.LockServicePrices(ctx)
		if err != nil {
			return err
		}
		for _, p := range prices {
			if err := uc.CatalogRepo.UpdateBasePrice(ctx, p.ServiceName, domain.AdjustPrice(p.BasePrice, percent)); err != nil {
				return err
			}
		}
		rows = int64(len(prices))
		return nil
	})
	if err != nil {
		uc.recordError("adjust_prices", err)
		return 0, err
	}

	if uc.Metrics != nil {
		uc.Metrics.RecordPriceAdjustment(rows)
	}
	uc.Logger.Info("global prices adjusted",
		zap.String("percent", percent.String()),
		zap.Int64("rows_updated", rows),
		zap.String("actor_id", actor.ID),
	)
	usecase.PublishMaintenance(ctx, uc.Publisher, uc.Logger, domain.MaintenanceEvent{
		Type:       domain.MaintenancePricesAdjusted,
		ActorID:    actor.ID,
		Percent:    percent.String(),
		Affected:   rows,
		OccurredAt: uc.Now(),
	})
	return rows, nil
}

func (uc *DefaultCatalogUsecase) recordError(operation string, err error) {
	if uc.Metrics == nil {
		return
	}
	uc.Metrics.RecordError(operation, usecase.ErrorKind(err))
}
