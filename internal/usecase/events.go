package usecase

import (
	"context"
	"time"

	"github.com/LavaJover/printshop-order-service/internal/domain"
	"go.uber.org/zap"
)

const publishTimeout = 5 * time.Second

// PublishLedger sends committed ledger events. Failures are logged only,
// the ledger change itself already stands.
func PublishLedger(ctx context.Context, pub domain.EventPublisher, log *zap.Logger, events ...domain.LedgerEvent) {
	if pub == nil || len(events) == 0 {
		return
	}
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()

	if err := pub.PublishLedger(ctx, events...); err != nil {
		log.Warn("failed to publish ledger events",
			zap.String("type", string(events[0].Type)),
			zap.Int("count", len(events)),
			zap.Error(err),
		)
	}
}

func PublishMaintenance(ctx context.Context, pub domain.EventPublisher, log *zap.Logger, event domain.MaintenanceEvent) {
	if pub == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()

	if err := pub.PublishMaintenance(ctx, event); err != nil {
		log.Warn("failed to publish maintenance event",
			zap.String("type", string(event.Type)),
			zap.Error(err),
		)
	}
}
