package domain

import "context"

// ClientRepository exposes only atomic balance primitives.
type ClientRepository interface {
	// EnsureClient creates a zero balance profile if none exists.
	EnsureClient(ctx context.Context, clientID string) error
	GetClient(ctx context.Context, clientID string) (*Client, error)
	AddPoints(ctx context.Context, clientID string, amount int64) error
	// DebitPoints decrements only when the balance covers amount and
	// returns the remaining balance, otherwise ErrInsufficientPoints.
	DebitPoints(ctx context.Context, clientID string, amount int64) (int64, error)
	// ReconcilePoints overwrites every balance from the order history and
	// returns the number of profiles written.
	ReconcilePoints(ctx context.Context, mode ReconcileMode) (int64, error)
}

type RewardRepository interface {
	CreateReward(ctx context.Context, reward *Reward) error
	GetReward(ctx context.Context, rewardID string) (*Reward, error)
	ListRewards(ctx context.Context, activeOnly bool) ([]*Reward, error)
	UpdateReward(ctx context.Context, reward *Reward) error
	CreateRedemption(ctx context.Context, redemption *RewardRedemption) error
	ListRedemptions(ctx context.Context, clientID string) ([]*RewardRedemption, error)
}
