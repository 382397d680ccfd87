package domain

import (
	"context"
	"io"
)

// TxManager runs fn in one unit of work. Repositories called with the
// ctx passed to fn take part in the same transaction.
type TxManager interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}

type BlobStore interface {
	Put(ctx context.Context, path string, body io.Reader, contentType string) error
	// Remove returns ErrBlobNotFound when nothing is stored at path.
	Remove(ctx context.Context, path string) error
}

// EventPublisher announces committed ledger and maintenance changes.
type EventPublisher interface {
	PublishLedger(ctx context.Context, events ...LedgerEvent) error
	PublishMaintenance(ctx context.Context, event MaintenanceEvent) error
}
