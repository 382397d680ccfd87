package domain

import (
	"fmt"
	"time"
)

type Client struct {
	ID        string
	Points    int64
	CreatedAt time.Time
	UpdatedAt time.Time
}

type Reward struct {
	ID         string
	Name       string
	PointsCost int64
	IsActive   bool
	CreatedAt  time.Time
}

type RewardRedemption struct {
	ID          string
	ClientID    string
	RewardID    string
	PointsSpent int64
	VoucherCode string
	RedeemedAt  time.Time
}

// ReconcileMode selects how a repaired balance treats redemptions.
type ReconcileMode string

const (
	// Balance = sum of points earned by completed orders.
	ReconcileEarned ReconcileMode = "earned"
	// Balance = earned minus points spent on redemptions, never below zero.
	ReconcileNet ReconcileMode = "net"
)

func ParseReconcileMode(s string) (ReconcileMode, error) {
	switch m := ReconcileMode(s); m {
	case ReconcileEarned, ReconcileNet:
		return m, nil
	case "":
		return ReconcileEarned, nil
	}
	return "", fmt.Errorf("%w: unknown reconcile mode %q", ErrValidation, s)
}

type LedgerEventType string

const (
	LedgerAccrued    LedgerEventType = "accrued"
	LedgerDebited    LedgerEventType = "debited"
	LedgerReconciled LedgerEventType = "reconciled"
)

type LedgerEvent struct {
	Type       LedgerEventType
	ClientID   string
	OrderID    string
	RewardID   string
	Points     int64
	Clients    int64
	OccurredAt time.Time
}
