package retention

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/LavaJover/printshop-order-service/internal/domain"
	"github.com/LavaJover/printshop-order-service/internal/infrastructure/logger"
	"github.com/LavaJover/printshop-order-service/internal/infrastructure/metrics"
	"github.com/LavaJover/printshop-order-service/internal/infrastructure/tracing"
	"github.com/LavaJover/printshop-order-service/internal/usecase"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

const tracerName = "printshop/usecase/retention"

type RetentionUsecase interface {
	PurgeEligibleFiles(ctx context.Context, actor domain.Actor, mode domain.PurgeMode, fileIDs []string) (*domain.PurgeResult, error)
}

type DefaultRetentionUsecase struct {
	FileRepo  domain.OrderFileRepository
	Blobs     domain.BlobStore
	Publisher domain.EventPublisher
	Metrics   *metrics.PrintshopMetrics
	Logger    *zap.Logger
	MaxAge    time.Duration
	Now       func() time.Time
}

func NewDefaultRetentionUsecase(
	fileRepo domain.OrderFileRepository,
	blobs domain.BlobStore,
	publisher domain.EventPublisher,
	printshopMetrics *metrics.PrintshopMetrics,
	log *zap.Logger,
	maxAge time.Duration,
) *DefaultRetentionUsecase {
	if maxAge <= 0 {
		maxAge = domain.DefaultRetentionWindow
	}
	return &DefaultRetentionUsecase{
		FileRepo:  fileRepo,
		Blobs:     blobs,
		Publisher: publisher,
		Metrics:   printshopMetrics,
		Logger:    logger.OrNop(log).Named("retention"),
		MaxAge:    maxAge,
		Now:       func() time.Time { return time.Now().UTC() },
	}
}

// PurgeEligibleFiles deletes stored payloads and tombstones their rows.
// A file is tombstoned only after its blob is gone, so a failure at either
// step leaves it selectable by the next run.
func (uc *DefaultRetentionUsecase) PurgeEligibleFiles(ctx context.Context, actor domain.Actor, mode domain.PurgeMode, fileIDs []string) (_ *domain.PurgeResult, err error) {
	ctx, span := tracing.Start(ctx, tracerName, "retention.Purge", attribute.String("mode", string(mode)))
	defer tracing.End(span, &err)

	if err := actor.RequireAdmin(); err != nil {
		return nil, err
	}

	files, err := uc.selectFiles(ctx, mode, fileIDs)
	if err != nil {
		uc.recordError(err)
		return nil, err
	}

	result := &domain.PurgeResult{}
	for _, file := range files {
		if err := uc.purgeFile(ctx, file, mode); err != nil {
			result.FilesFailed++
			uc.Logger.Warn("file purge failed",
				zap.String("file_id", file.ID),
				zap.String("order_id", file.OrderID),
				zap.String("mode", string(mode)),
				zap.Error(err),
			)
			continue
		}
		result.FilesPurged++
	}

	if uc.Metrics != nil {
		uc.Metrics.RecordPurge(string(mode), result.FilesPurged, result.FilesFailed)
	}
	uc.Logger.Info("retention purge finished",
		zap.String("mode", string(mode)),
		zap.Int64("files_purged", result.FilesPurged),
		zap.Int64("files_failed", result.FilesFailed),
		zap.String("actor_id", actor.ID),
	)
	if result.FilesPurged > 0 || result.FilesFailed > 0 {
		usecase.PublishMaintenance(ctx, uc.Publisher, uc.Logger, domain.MaintenanceEvent{
			Type:       domain.MaintenanceFilesPurged,
			ActorID:    actor.ID,
			Mode:       mode,
			Affected:   result.FilesPurged,
			Failed:     result.FilesFailed,
			OccurredAt: uc.Now(),
		})
	}

	return result, nil
}

func (uc *DefaultRetentionUsecase) selectFiles(ctx context.Context, mode domain.PurgeMode, fileIDs []string) ([]*domain.OrderFile, error) {
	switch mode {
	case domain.PurgeManual:
		if len(fileIDs) == 0 {
			return nil, fmt.Errorf("%w: manual purge needs file ids", domain.ErrValidation)
		}
		found, err := uc.FileRepo.GetFilesByIDs(ctx, fileIDs)
		if err != nil {
			return nil, err
		}
		if missing := missingIDs(fileIDs, found); len(missing) > 0 {
			return nil, fmt.Errorf("%w: files %v", domain.ErrNotFound, missing)
		}
		pending := found[:0]
		for _, f := range found {
			if !f.Purged() {
				pending = append(pending, f)
			}
		}
		return pending, nil
	case domain.PurgeCancelled, domain.PurgeAged:
		if len(fileIDs) > 0 {
			return nil, fmt.Errorf("%w: file ids are only accepted in manual mode", domain.ErrValidation)
		}
		return uc.FileRepo.FindPurgeCandidates(ctx, mode, uc.Now().Add(-uc.MaxAge))
	default:
		return nil, fmt.Errorf("%w: unknown purge mode %q", domain.ErrValidation, mode)
	}
}

func (uc *DefaultRetentionUsecase) purgeFile(ctx context.Context, file *domain.OrderFile, mode domain.PurgeMode) error {
	if file.StoragePath != "" {
		err := uc.Blobs.Remove(ctx, file.StoragePath)
		if err != nil && !errors.Is(err, domain.ErrBlobNotFound) {
			return fmt.Errorf("%w: remove %s: %v", domain.ErrStorage, file.StoragePath, err)
		}
	}
	return uc.FileRepo.MarkFilePurged(ctx, file.ID, mode.Tombstone(), uc.Now())
}

func (uc *DefaultRetentionUsecase) recordError(err error) {
	if uc.Metrics == nil {
		return
	}
	uc.Metrics.RecordError("purge_files", usecase.ErrorKind(err))
}

func missingIDs(want []string, found []*domain.OrderFile) []string {
	seen := make(map[string]struct{}, len(found))
	for _, f := range found {
		seen[f.ID] = struct{}{}
	}
	var missing []string
	for _, id := range want {
		if _, ok := seen[id]; !ok {
			missing = append(missing, id)
		}
	}
	return missing
}
