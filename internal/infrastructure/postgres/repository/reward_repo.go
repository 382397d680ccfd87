package repository

import (
	"context"

	"github.com/LavaJover/printshop-order-service/internal/domain"
	"github.com/LavaJover/printshop-order-service/internal/infrastructure/postgres"
	"github.com/LavaJover/printshop-order-service/internal/infrastructure/postgres/mappers"
	"github.com/LavaJover/printshop-order-service/internal/infrastructure/postgres/models"
	"gorm.io/gorm"
)

type DefaultRewardRepository struct {
	DB *gorm.DB
}

func NewDefaultRewardRepository(db *gorm.DB) *DefaultRewardRepository {
	return &DefaultRewardRepository{DB: db}
}

func (r *DefaultRewardRepository) CreateReward(ctx context.Context, reward *domain.Reward) error {
	err := postgres.Conn(ctx, r.DB).Create(mappers.ToGORMReward(reward)).Error
	return postgres.MapError(err, "reward "+reward.ID)
}

func (r *DefaultRewardRepository) GetReward(ctx context.Context, rewardID string) (*domain.Reward, error) {
	var row models.RewardModel
	if err := postgres.Conn(ctx, r.DB).First(&row, "id = ?", rewardID).Error; err != nil {
		return nil, postgres.MapError(err, "reward "+rewardID)
	}
	return mappers.ToDomainReward(&row), nil
}

func (r *DefaultRewardRepository) ListRewards(ctx context.Context, activeOnly bool) ([]*domain.Reward, error) {
	query := postgres.Conn(ctx, r.DB)
	if activeOnly {
		query = query.Where("is_active")
	}
	var rows []models.RewardModel
	if err := query.Order("points_cost, name").Find(&rows).Error; err != nil {
		return nil, postgres.MapError(err, "rewards")
	}
	out := make([]*domain.Reward, 0, len(rows))
	for i := range rows {
		out = append(out, mappers.ToDomainReward(&rows[i]))
	}
	return out, nil
}

func (r *DefaultRewardRepository) UpdateReward(ctx context.Context, reward *domain.Reward) error {
	res := postgres.Conn(ctx, r.DB).Model(&models.RewardModel{}).
		Where("id = ?", reward.ID).
		Updates(map[string]any{
			"name":        reward.Name,
			"points_cost": reward.PointsCost,
			"is_active":   reward.IsActive,
		})
	return affected(res, "reward "+reward.ID)
}

func (r *DefaultRewardRepository) CreateRedemption(ctx context.Context, redemption *domain.RewardRedemption) error {
	err := postgres.Conn(ctx, r.DB).Create(mappers.ToGORMRedemption(redemption)).Error
	return postgres.MapError(err, "redemption "+redemption.ID)
}

func (r *DefaultRewardRepository) ListRedemptions(ctx context.Context, clientID string) ([]*domain.RewardRedemption, error) {
	var rows []models.RewardRedemptionModel
	err := postgres.Conn(ctx, r.DB).
		Where("client_id = ?", clientID).
		Order("redeemed_at DESC").
		Find(&rows).Error
	if err != nil {
		return nil, postgres.MapError(err, "redemptions")
	}
	out := make([]*domain.RewardRedemption, 0, len(rows))
	for i := range rows {
		out = append(out, mappers.ToDomainRedemption(&rows[i]))
	}
	return out, nil
}
