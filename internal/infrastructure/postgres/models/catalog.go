package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type ServicePriceModel struct {
	ServiceName  string          `gorm:"primaryKey"`
	BasePrice    decimal.Decimal `gorm:"type:numeric(10,2);not null"`
	IsPhotoPrint bool            `gorm:"not null;default:false"`
	UpdatedAt    time.Time
}

func (ServicePriceModel) TableName() string {
	return "service_prices"
}

type LocalPriceModel struct {
	ShopID      string          `gorm:"primaryKey"`
	ServiceName string          `gorm:"primaryKey"`
	Price       decimal.Decimal `gorm:"type:numeric(10,2);not null"`
	UpdatedAt   time.Time
}

func (LocalPriceModel) TableName() string {
	return "local_prices"
}

type ShopModel struct {
	ID            string `gorm:"primaryKey"`
	Name          string `gorm:"not null"`
	Address       string
	ManagerID     *string `gorm:"uniqueIndex"`
	HasPhotoPrint bool    `gorm:"not null;default:false"`
	CanEditPrices bool    `gorm:"not null;default:false"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (ShopModel) TableName() string {
	return "shops"
}
