package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	StatusPending    OrderStatus = "pending"
	StatusProcessing OrderStatus = "processing"
	StatusReady      OrderStatus = "ready"
	StatusCompleted  OrderStatus = "completed"
	StatusCancelled  OrderStatus = "cancelled"
)

// PointsPerCurrencyUnit is the loyalty accrual rate.
const PointsPerCurrencyUnit = 10

// Forward progress plus cancellation. Terminal states have no exits.
var orderTransitions = map[OrderStatus][]OrderStatus{
	StatusPending:    {StatusProcessing, StatusCancelled},
	StatusProcessing: {StatusReady, StatusCancelled},
	StatusReady:      {StatusCompleted, StatusCancelled},
	StatusCompleted:  {},
	StatusCancelled:  {},
}

func ParseOrderStatus(s string) (OrderStatus, error) {
	status := OrderStatus(s)
	if _, ok := orderTransitions[status]; !ok {
		return "", fmt.Errorf("%w: unknown status %q", ErrInvalidTransition, s)
	}
	return status, nil
}

func (s OrderStatus) IsTerminal() bool {
	return len(orderTransitions[s]) == 0
}

// CanTransition reports whether the table allows from -> to. A no-op is never allowed.
func CanTransition(from, to OrderStatus) bool {
	for _, next := range orderTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

type Order struct {
	ID           string
	ClientID     string
	ShopID       string
	Status       OrderStatus
	TotalPrice   decimal.Decimal
	PointsEarned int64
	Files        []OrderFile
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// OrderFile is one priced line of an order together with its stored payload.
type OrderFile struct {
	ID           string
	OrderID      string
	ServiceName  string
	Copies       int
	ColorMode    string
	Size         string
	PricePerCopy decimal.Decimal
	FileName     string
	StoragePath  string
	UploadFailed bool
	CreatedAt    time.Time
	PurgedAt     *time.Time
}

func (f OrderFile) LineTotal() decimal.Decimal {
	return f.PricePerCopy.Mul(decimal.NewFromInt(int64(f.Copies)))
}

func (f OrderFile) Purged() bool {
	return IsTombstone(f.StoragePath)
}

// OrderTotals sums the line totals and derives the points award.
func OrderTotals(files []OrderFile) (decimal.Decimal, int64) {
	total := decimal.Zero
	for _, f := range files {
		total = total.Add(f.LineTotal())
	}
	return total, PointsForTotal(total)
}

func PointsForTotal(total decimal.Decimal) int64 {
	if total.Sign() <= 0 {
		return 0
	}
	return total.Mul(decimal.NewFromInt(PointsPerCurrencyUnit)).Floor().IntPart()
}

type AuditAction string

const (
	AuditCreated      AuditAction = "created"
	AuditStatusChange AuditAction = "status_change"
)

type AuditEntry struct {
	ID        uint
	OrderID   string
	ActorID   string
	Action    AuditAction
	Details   map[string]any
	CreatedAt time.Time
}
