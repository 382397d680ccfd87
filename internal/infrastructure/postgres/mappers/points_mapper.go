package mappers

import (
	"github.com/LavaJover/printshop-order-service/internal/domain"
	"github.com/LavaJover/printshop-order-service/internal/infrastructure/postgres/models"
)

func ToDomainClient(model *models.ClientModel) *domain.Client {
	return &domain.Client{
		ID:        model.ID,
		Points:    model.Points,
		CreatedAt: model.CreatedAt,
		UpdatedAt: model.UpdatedAt,
	}
}

func ToDomainReward(model *models.RewardModel) *domain.Reward {
	return &domain.Reward{
		ID:         model.ID,
		Name:       model.Name,
		PointsCost: model.PointsCost,
		IsActive:   model.IsActive,
		CreatedAt:  model.CreatedAt,
	}
}

func ToGORMReward(reward *domain.Reward) *models.RewardModel {
	return &models.RewardModel{
		ID:         reward.ID,
		Name:       reward.Name,
		PointsCost: reward.PointsCost,
		IsActive:   reward.IsActive,
		CreatedAt:  reward.CreatedAt,
	}
}

func ToDomainRedemption(model *models.RewardRedemptionModel) *domain.RewardRedemption {
	return &domain.RewardRedemption{
		ID:          model.ID,
		ClientID:    model.ClientID,
		RewardID:    model.RewardID,
		PointsSpent: model.PointsSpent,
		VoucherCode: model.VoucherCode,
		RedeemedAt:  model.RedeemedAt,
	}
}

func ToGORMRedemption(r *domain.RewardRedemption) *models.RewardRedemptionModel {
	return &models.RewardRedemptionModel{
		ID:          r.ID,
		ClientID:    r.ClientID,
		RewardID:    r.RewardID,
		PointsSpent: r.PointsSpent,
		VoucherCode: r.VoucherCode,
		RedeemedAt:  r.RedeemedAt,
	}
}
