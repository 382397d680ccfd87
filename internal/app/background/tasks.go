package background

import (
	"context"
	"sync"
	"time"

	"github.com/LavaJover/printshop-order-service/internal/config"
	"github.com/LavaJover/printshop-order-service/internal/domain"
	publisher "github.com/LavaJover/printshop-order-service/internal/infrastructure/kafka"
	"github.com/LavaJover/printshop-order-service/internal/infrastructure/logger"
	"github.com/LavaJover/printshop-order-service/internal/usecase/points"
	"github.com/LavaJover/printshop-order-service/internal/usecase/retention"
	"go.uber.org/zap"
)

// systemActor runs scheduled maintenance with administrator rights.
var systemActor = domain.Actor{ID: "system:retention", Role: domain.RoleAdmin}

type BackgroundTasks struct {
	RetentionUsecase retention.RetentionUsecase
	PointsUsecase    points.PointsUsecase
	Subscriber       domain.SubscriberPort
	Retention        config.Retention
	Kafka            config.KafkaService
	Logger           *zap.Logger

	wg sync.WaitGroup
}

func NewBackgroundTasks(
	retentionUC retention.RetentionUsecase,
	pointsUC points.PointsUsecase,
	subscriber domain.SubscriberPort,
	retentionCfg config.Retention,
	kafkaCfg config.KafkaService,
	log *zap.Logger,
) *BackgroundTasks {
	return &BackgroundTasks{
		RetentionUsecase: retentionUC,
		PointsUsecase:    pointsUC,
		Subscriber:       subscriber,
		Retention:        retentionCfg,
		Kafka:            kafkaCfg,
		Logger:           logger.OrNop(log).Named("background"),
	}
}

// StartAll launches the enabled jobs. They stop when ctx is cancelled;
// Wait blocks until they have.
func (bt *BackgroundTasks) StartAll(ctx context.Context) {
	if bt.Retention.AutoPurge {
		bt.wg.Add(1)
		go func() {
			defer bt.wg.Done()
			bt.startRetentionPurge(ctx)
		}()
	}
	if bt.Subscriber != nil {
		bt.wg.Add(1)
		go func() {
			defer bt.wg.Done()
			bt.startClientRegistrations(ctx)
		}()
	}
}

func (bt *BackgroundTasks) Wait() {
	bt.wg.Wait()
}

func (bt *BackgroundTasks) startRetentionPurge(ctx context.Context) {
	interval := bt.Retention.Interval
	if interval <= 0 {
		interval = time.Hour
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			bt.PurgeOnce(ctx)
		}
	}
}

// PurgeOnce runs the cancelled and aged selections one after the other.
func (bt *BackgroundTasks) PurgeOnce(ctx context.Context) {
	for _, mode := range []domain.PurgeMode{domain.PurgeCancelled, domain.PurgeAged} {
		res, err := bt.RetentionUsecase.PurgeEligibleFiles(ctx, systemActor, mode, nil)
		if err != nil {
			bt.Logger.Error("scheduled purge failed", zap.String("mode", string(mode)), zap.Error(err))
			continue
		}
		if res.FilesPurged > 0 || res.FilesFailed > 0 {
			bt.Logger.Info("scheduled purge finished",
				zap.String("mode", string(mode)),
				zap.Int64("purged", res.FilesPurged),
				zap.Int64("failed", res.FilesFailed),
			)
		}
	}
}

func (bt *BackgroundTasks) startClientRegistrations(ctx context.Context) {
	msgs, err := bt.Subscriber.Subscribe(ctx, bt.Kafka.ClientsTopic, bt.Kafka.GroupID)
	if err != nil {
		bt.Logger.Error("client registrations subscribe failed", zap.Error(err))
		return
	}
	for msg := range msgs {
		bt.HandleClientRegistered(ctx, msg)
	}
}

func (bt *BackgroundTasks) HandleClientRegistered(ctx context.Context, msg domain.Message) {
	ev, skip, err := publisher.DecodeClientRegistered(msg)
	if err != nil {
		bt.Logger.Warn("dropping malformed client event", zap.Error(err))
		return
	}
	if skip {
		return
	}
	if err := bt.PointsUsecase.EnsureClient(ctx, ev.ClientID); err != nil {
		bt.Logger.Error("ensure client failed", zap.String("client_id", ev.ClientID), zap.Error(err))
	}
}
