package models

import (
	"time"

	"github.com/LavaJover/printshop-order-service/internal/domain"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

type OrderModel struct {
	ID           string             `gorm:"primaryKey;type:uuid"`
	ClientID     string             `gorm:"not null;index:idx_orders_client"`
	ShopID       string             `gorm:"not null;index:idx_orders_shop_status"`
	Status       domain.OrderStatus `gorm:"not null;index:idx_orders_shop_status"`
	TotalPrice   decimal.Decimal    `gorm:"type:numeric(10,2);not null"`
	PointsEarned int64              `gorm:"not null"`
	Files        []OrderFileModel   `gorm:"foreignKey:OrderID;references:ID"`
	CreatedAt    time.Time          `gorm:"index:idx_orders_client"`
	UpdatedAt    time.Time
}

func (OrderModel) TableName() string {
	return "orders"
}

type OrderFileModel struct {
	ID           string `gorm:"primaryKey;type:uuid"`
	OrderID      string `gorm:"type:uuid;not null;index"`
	LineNo       int    `gorm:"not null"`
	ServiceName  string `gorm:"not null"`
	Copies       int    `gorm:"not null"`
	ColorMode    string
	Size         string
	PricePerCopy decimal.Decimal `gorm:"type:numeric(10,2);not null"`
	FileName     string
	StoragePath  string
	UploadFailed bool `gorm:"not null;default:false"`
	CreatedAt    time.Time
	PurgedAt     *time.Time
}

func (OrderFileModel) TableName() string {
	return "order_files"
}

type AuditEntryModel struct {
	ID        uint              `gorm:"primaryKey"`
	OrderID   string            `gorm:"type:uuid;not null;index"`
	ActorID   string            `gorm:"not null"`
	Action    string            `gorm:"not null"`
	Details   datatypes.JSONMap `gorm:"type:jsonb"`
	CreatedAt time.Time
}

func (AuditEntryModel) TableName() string {
	return "order_audit_entries"
}
