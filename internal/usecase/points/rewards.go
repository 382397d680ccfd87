package points

import (
	"context"
	"fmt"
	"strings"

	"github.com/LavaJover/printshop-order-service/internal/domain"
	pointsdto "github.com/LavaJover/printshop-order-service/internal/usecase/dto/points"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

func (uc *DefaultPointsUsecase) ListRewards(ctx context.Context, activeOnly bool) ([]*domain.Reward, error) {
	return uc.RewardRepo.ListRewards(ctx, activeOnly)
}

func (uc *DefaultPointsUsecase) CreateReward(ctx context.Context, actor domain.Actor, input *pointsdto.CreateRewardInput) (*domain.Reward, error) {
	if err := actor.RequireAdmin(); err != nil {
		return nil, err
	}
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: reward name is required", domain.ErrValidation)
	}
	if input.PointsCost <= 0 {
		return nil, fmt.Errorf("%w: points cost must be positive", domain.ErrValidation)
	}

	reward := &domain.Reward{
		ID:         uuid.NewString(),
		Name:       name,
		PointsCost: input.PointsCost,
		IsActive:   input.IsActive,
		CreatedAt:  uc.Now(),
	}
	if err := uc.RewardRepo.CreateReward(ctx, reward); err != nil {
		return nil, err
	}
	uc.Logger.Info("reward created", zap.String("reward_id", reward.ID), zap.Int64("points_cost", reward.PointsCost))
	return reward, nil
}

func (uc *DefaultPointsUsecase) UpdateReward(ctx context.Context, actor domain.Actor, rewardID string, input *pointsdto.UpdateRewardInput) (*domain.Reward, error) {
	if err := actor.RequireAdmin(); err != nil {
		return nil, err
	}

	var reward *domain.Reward
	err := uc.Tx.WithinTx(ctx, func(ctx context.Context) error {
		var err error
		if reward, err = uc.RewardRepo.GetReward(ctx, rewardID); err != nil {
			return err
		}
		if input.Name != nil {
			name := strings.TrimSpace(*input.Name)
			if name == "" {
				return fmt.Errorf("%w: reward name is required", domain.ErrValidation)
			}
			reward.Name = name
		}
		if input.PointsCost != nil {
			if *input.PointsCost <= 0 {
				return fmt.Errorf("%w: points cost must be positive", domain.ErrValidation)
			}
			reward.PointsCost = *input.PointsCost
		}
		if input.IsActive != nil {
			reward.IsActive = *input.IsActive
		}
		return uc.RewardRepo.UpdateReward(ctx, reward)
	})
	if err != nil {
		return nil, err
	}
	return reward, nil
}
