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

type DefaultOrderRepository struct {
	DB *gorm.DB
}

func NewDefaultOrderRepository(db *gorm.DB) *DefaultOrderRepository {
	return &DefaultOrderRepository{DB: db}
}

func preloadFiles(db *gorm.DB) *gorm.DB {
	return db.Order("line_no")
}

func (r *DefaultOrderRepository) CreateOrder(ctx context.Context, order *domain.Order) error {
	err := postgres.Conn(ctx, r.DB).Create(mappers.ToGORMOrder(order)).Error
	return postgres.MapError(err, "order "+order.ID)
}

func (r *DefaultOrderRepository) GetOrderByID(ctx context.Context, orderID string) (*domain.Order, error) {
	var row models.OrderModel
	err := postgres.Conn(ctx, r.DB).
		Preload("Files", preloadFiles).
		First(&row, "id = ?", orderID).Error
	if err != nil {
		return nil, postgres.MapError(err, "order "+orderID)
	}
	return mappers.ToDomainOrder(&row), nil
}

func (r *DefaultOrderRepository) ListOrdersByClient(ctx context.Context, clientID string) ([]*domain.Order, error) {
	return r.list(postgres.Conn(ctx, r.DB).Where("client_id = ?", clientID))
}

func (r *DefaultOrderRepository) ListOrdersByShop(ctx context.Context, shopID string, status domain.OrderStatus) ([]*domain.Order, error) {
	query := postgres.Conn(ctx, r.DB).Where("shop_id = ?", shopID)
	if status != "" {
		query = query.Where("status = ?", status)
	}
	return r.list(query)
}

func (r *DefaultOrderRepository) list(query *gorm.DB) ([]*domain.Order, error) {
	var rows []models.OrderModel
	err := query.
		Preload("Files", preloadFiles).
		Order("created_at DESC, id").
		Find(&rows).Error
	if err != nil {
		return nil, postgres.MapError(err, "orders")
	}
	out := make([]*domain.Order, 0, len(rows))
	for i := range rows {
		out = append(out, mappers.ToDomainOrder(&rows[i]))
	}
	return out, nil
}

// UpdateStatus is a compare-and-set on the status column.
func (r *DefaultOrderRepository) UpdateStatus(ctx context.Context, orderID string, from, to domain.OrderStatus, at time.Time) error {
	db := postgres.Conn(ctx, r.DB)
	res := db.Model(&models.OrderModel{}).
		Where("id = ? AND status = ?", orderID, from).
		Updates(map[string]any{"status": to, "updated_at": at})
	if res.Error != nil {
		return postgres.MapError(res.Error, "order "+orderID)
	}
	if res.RowsAffected == 1 {
		return nil
	}

	var count int64
	if err := db.Model(&models.OrderModel{}).Where("id = ?", orderID).Count(&count).Error; err != nil {
		return postgres.MapError(err, "order "+orderID)
	}
	if count == 0 {
		return fmt.Errorf("%w: order %s", domain.ErrNotFound, orderID)
	}
	return fmt.Errorf("%w: order %s is no longer %s", domain.ErrConflict, orderID, from)
}

func (r *DefaultOrderRepository) AppendAudit(ctx context.Context, entry *domain.AuditEntry) error {
	row := mappers.ToGORMAuditEntry(entry)
	if err := postgres.Conn(ctx, r.DB).Create(row).Error; err != nil {
		return postgres.MapError(err, "audit entry of order "+entry.OrderID)
	}
	entry.ID = row.ID
	return nil
}

func (r *DefaultOrderRepository) ListAuditEntries(ctx context.Context, orderID string) ([]*domain.AuditEntry, error) {
	var rows []models.AuditEntryModel
	err := postgres.Conn(ctx, r.DB).
		Where("order_id = ?", orderID).
		Order("id").
		Find(&rows).Error
	if err != nil {
		return nil, postgres.MapError(err, "audit entries")
	}
	out := make([]*domain.AuditEntry, 0, len(rows))
	for i := range rows {
		out = append(out, mappers.ToDomainAuditEntry(&rows[i]))
	}
	return out, nil
}
