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
	"gorm.io/gorm/clause"
)

const (
	earnedPointsSQL = `COALESCE((SELECT SUM(o.points_earned) FROM orders o
		WHERE o.client_id = clients.id AND o.status = 'completed'), 0)`
	spentPointsSQL = `COALESCE((SELECT SUM(rr.points_spent) FROM reward_redemptions rr
		WHERE rr.client_id = clients.id), 0)`
)

// DefaultClientRepository changes balances only with single statements:
// increments, guarded decrements and full recomputation.
type DefaultClientRepository struct {
	DB *gorm.DB
}

func NewDefaultClientRepository(db *gorm.DB) *DefaultClientRepository {
	return &DefaultClientRepository{DB: db}
}

func (r *DefaultClientRepository) EnsureClient(ctx context.Context, clientID string) error {
	now := time.Now().UTC()
	err := postgres.Conn(ctx, r.DB).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&models.ClientModel{ID: clientID, CreatedAt: now, UpdatedAt: now}).Error
	return postgres.MapError(err, "client "+clientID)
}

func (r *DefaultClientRepository) GetClient(ctx context.Context, clientID string) (*domain.Client, error) {
	var row models.ClientModel
	if err := postgres.Conn(ctx, r.DB).First(&row, "id = ?", clientID).Error; err != nil {
		return nil, postgres.MapError(err, "client "+clientID)
	}
	return mappers.ToDomainClient(&row), nil
}

func (r *DefaultClientRepository) AddPoints(ctx context.Context, clientID string, amount int64) error {
	res := postgres.Conn(ctx, r.DB).Model(&models.ClientModel{}).
		Where("id = ?", clientID).
		Updates(map[string]any{
			"points":     gorm.Expr("points + ?", amount),
			"updated_at": time.Now().UTC(),
		})
	return affected(res, "client "+clientID)
}

func (r *DefaultClientRepository) DebitPoints(ctx context.Context, clientID string, amount int64) (int64, error) {
	db := postgres.Conn(ctx, r.DB)
	var remaining []int64
	res := db.Raw(
		`UPDATE clients SET points = points - ?, updated_at = ?
		 WHERE id = ? AND points >= ?
		 RETURNING points`,
		amount, time.Now().UTC(), clientID, amount,
	).Scan(&remaining)
	if res.Error != nil {
		return 0, postgres.MapError(res.Error, "client "+clientID)
	}
	if len(remaining) == 1 {
		return remaining[0], nil
	}

	client, err := r.GetClient(ctx, clientID)
	if err != nil {
		return 0, err
	}
	return client.Points, fmt.Errorf("%w: balance %d, need %d", domain.ErrInsufficientPoints, client.Points, amount)
}

func (r *DefaultClientRepository) ReconcilePoints(ctx context.Context, mode domain.ReconcileMode) (int64, error) {
	var balance string
	switch mode {
	case domain.ReconcileEarned:
		balance = earnedPointsSQL
	case domain.ReconcileNet:
		balance = "GREATEST(" + earnedPointsSQL + " - " + spentPointsSQL + ", 0)"
	default:
		return 0, fmt.Errorf("%w: unknown reconcile mode %q", domain.ErrValidation, mode)
	}

	res := postgres.Conn(ctx, r.DB).Exec(
		"UPDATE clients SET points = "+balance+", updated_at = ?",
		time.Now().UTC(),
	)
	if res.Error != nil {
		return 0, postgres.MapError(res.Error, "client balances")
	}
	return res.RowsAffected, nil
}
