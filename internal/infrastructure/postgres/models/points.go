package models

import "time"

type ClientModel struct {
	ID        string `gorm:"primaryKey"`
	Points    int64  `gorm:"not null;default:0"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (ClientModel) TableName() string {
	return "clients"
}

type RewardModel struct {
	ID         string `gorm:"primaryKey;type:uuid"`
	Name       string `gorm:"not null"`
	PointsCost int64  `gorm:"not null"`
	IsActive   bool   `gorm:"not null;default:true"`
	CreatedAt  time.Time
}

func (RewardModel) TableName() string {
	return "rewards"
}

type RewardRedemptionModel struct {
	ID          string `gorm:"primaryKey;type:uuid"`
	ClientID    string `gorm:"not null;index"`
	RewardID    string `gorm:"type:uuid;not null"`
	PointsSpent int64  `gorm:"not null"`
	VoucherCode string `gorm:"not null;uniqueIndex"`
	RedeemedAt  time.Time
}

func (RewardRedemptionModel) TableName() string {
	return "reward_redemptions"
}
