package pointsdto

import (
	"time"

	"github.com/LavaJover/printshop-order-service/internal/domain"
)

type BalanceOutput struct {
	ClientID string `json:"client_id"`
	Points   int64  `json:"points"`
}

type RedeemOutput struct {
	RemainingBalance int64  `json:"remaining_balance"`
	VoucherCode      string `json:"voucher_code"`
	RedemptionID     string `json:"redemption_id"`
}

type ReconcileOutput struct {
	ClientsUpdated int64  `json:"clients_updated"`
	Mode           string `json:"mode"`
}

type RewardOutput struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	PointsCost int64  `json:"points_cost"`
	IsActive   bool   `json:"is_active"`
}

type RedemptionOutput struct {
	ID          string    `json:"id"`
	RewardID    string    `json:"reward_id"`
	PointsSpent int64     `json:"points_spent"`
	VoucherCode string    `json:"voucher_code"`
	RedeemedAt  time.Time `json:"redeemed_at"`
}

func ToRewardOutput(r *domain.Reward) *RewardOutput {
	return &RewardOutput{ID: r.ID, Name: r.Name, PointsCost: r.PointsCost, IsActive: r.IsActive}
}

func ToRedemptionOutput(r *domain.RewardRedemption) *RedemptionOutput {
	return &RedemptionOutput{
		ID:          r.ID,
		RewardID:    r.RewardID,
		PointsSpent: r.PointsSpent,
		VoucherCode: r.VoucherCode,
		RedeemedAt:  r.RedeemedAt,
	}
}
