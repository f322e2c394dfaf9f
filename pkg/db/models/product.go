package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is a catalog entry shown on the storefront.
type Product struct {
	ID          string          `gorm:"column:id;primaryKey"`
	Name        string          `gorm:"column:name;not null"`
	Description string          `gorm:"column:description;not null"`
	Price       decimal.Decimal `gorm:"column:price;type:numeric(12,2);not null"`
	Allergens   []string        `gorm:"column:allergens;type:text;serializer:json"`
	Quantity    int             `gorm:"column:quantity;not null"`
	Tags        []string        `gorm:"column:tags;type:text;serializer:json"`
	Enabled     bool            `gorm:"column:enabled;not null"`
	Featured    bool            `gorm:"column:featured;not null"`
	Image       string          `gorm:"column:image;not null"`
	CreatedAt   time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}

func (Product) TableName() string { return "products" }
