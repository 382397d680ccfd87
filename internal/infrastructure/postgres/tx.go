package postgres

import (
	"context"

	"gorm.io/gorm"
)

type txKey struct{}

// TxManager runs units of work in a gorm transaction carried by ctx.
type TxManager struct {
	DB *gorm.DB
}

func NewTxManager(db *gorm.DB) *TxManager {
	return &TxManager{DB: db}
}

func (m *TxManager) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return fn(ctx)
	}
	return m.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(context.WithValue(ctx, txKey{}, tx))
	})
}

// Conn returns the transaction bound to ctx, or db scoped to ctx.
func Conn(ctx context.Context, db *gorm.DB) *gorm.DB {
	if tx, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return tx
	}
	return db.WithContext(ctx)
}
