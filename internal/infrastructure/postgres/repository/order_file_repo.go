package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/LavaJover/printshop-order-service/internal/domain"
	"github.com/LavaJover/printshop-order-service/internal/infrastructure/postgres"
	"github.com/LavaJover/printshop-order-service/internal/infrastructure/postgres/mappers"
	"github.com/LavaJover/printshop-order-service/internal/infrastructure/postgres/models"
	"gorm.io/gorm"
)

const tombstonePattern = "purged:%"

type DefaultOrderFileRepository struct {
	DB *gorm.DB
}

func NewDefaultOrderFileRepository(db *gorm.DB) *DefaultOrderFileRepository {
	return &DefaultOrderFileRepository{DB: db}
}

func (r *DefaultOrderFileRepository) FindPurgeCandidates(ctx context.Context, mode domain.PurgeMode, olderThan time.Time) ([]*domain.OrderFile, error) {
	query := postgres.Conn(ctx, r.DB).Model(&models.OrderFileModel{}).
		Where("order_files.storage_path NOT LIKE ?", tombstonePattern)

	switch mode {
	case domain.PurgeCancelled:
		query = query.
			Joins("JOIN orders ON orders.id = order_files.order_id").
			Where("orders.status = ?", domain.StatusCancelled)
	case domain.PurgeAged:
		query = query.Where("order_files.created_at < ?", olderThan)
	default:
		return nil, fmt.Errorf("%w: mode %s has no selection rule", domain.ErrValidation, mode)
	}

	var rows []models.OrderFileModel
	if err := query.Order("order_files.id").Find(&rows).Error; err != nil {
		return nil, postgres.MapError(err, "purge candidates")
	}
	return toFiles(rows), nil
}

func (r *DefaultOrderFileRepository) GetFilesByIDs(ctx context.Context, fileIDs []string) ([]*domain.OrderFile, error) {
	if len(fileIDs) == 0 {
		return []*domain.OrderFile{}, nil
	}
	var rows []models.OrderFileModel
	if err := postgres.Conn(ctx, r.DB).Where("id IN ?", fileIDs).Order("id").Find(&rows).Error; err != nil {
		return nil, postgres.MapError(err, "order files")
	}
	return toFiles(rows), nil
}

func (r *DefaultOrderFileRepository) MarkFilePurged(ctx context.Context, fileID, tombstone string, at time.Time) error {
	db := postgres.Conn(ctx, r.DB)
	res := db.Model(&models.OrderFileModel{}).
		Where("id = ? AND storage_path NOT LIKE ?", fileID, tombstonePattern).
		Updates(map[string]any{"storage_path": tombstone, "purged_at": at})
	if res.Error != nil {
		return postgres.MapError(res.Error, "order file "+fileID)
	}
	if res.RowsAffected == 1 {
		return nil
	}

	var count int64
	if err := db.Model(&models.OrderFileModel{}).Where("id = ?", fileID).Count(&count).Error; err != nil {
		return postgres.MapError(err, "order file "+fileID)
	}
	if count == 0 {
		return fmt.Errorf("%w: order file %s", domain.ErrNotFound, fileID)
	}
	return fmt.Errorf("%w: order file %s already purged", domain.ErrConflict, fileID)
}

func toFiles(rows []models.OrderFileModel) []*domain.OrderFile {
	out := make([]*domain.OrderFile, 0, len(rows))
	for i := range rows {
		f := mappers.ToDomainOrderFile(&rows[i])
		out = append(out, &f)
	}
	return out
}
