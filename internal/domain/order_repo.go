package domain

import (
	"context"
	"time"
)

type OrderRepository interface {
	// CreateOrder inserts the order together with its files.
	CreateOrder(ctx context.Context, order *Order) error
	GetOrderByID(ctx context.Context, orderID string) (*Order, error)
	ListOrdersByClient(ctx context.Context, clientID string) ([]*Order, error)
	// An empty status lists every order of the shop.
	ListOrdersByShop(ctx context.Context, shopID string, status OrderStatus) ([]*Order, error)
	// UpdateStatus moves the order only while it is still in from, otherwise ErrConflict.
	UpdateStatus(ctx context.Context, orderID string, from, to OrderStatus, at time.Time) error
	AppendAudit(ctx context.Context, entry *AuditEntry) error
	ListAuditEntries(ctx context.Context, orderID string) ([]*AuditEntry, error)
}

type OrderFileRepository interface {
	// FindPurgeCandidates skips files that already carry a tombstone.
	FindPurgeCandidates(ctx context.Context, mode PurgeMode, olderThan time.Time) ([]*OrderFile, error)
	GetFilesByIDs(ctx context.Context, fileIDs []string) ([]*OrderFile, error)
	// MarkFilePurged returns ErrConflict if the file is already tombstoned.
	MarkFilePurged(ctx context.Context, fileID, tombstone string, at time.Time) error
}
