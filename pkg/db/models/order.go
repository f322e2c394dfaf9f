package models

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/angelmondragon/keepers-bakery/pkg/enums"
)

// Order is the backend's record of a submitted checkout.
type Order struct {
	ID            string              `gorm:"column:id;primaryKey"`
	CustomerID    string              `gorm:"column:customer_id;not null"`
	CustomerName  string              `gorm:"column:customer_name;not null"`
	CustomerEmail string              `gorm:"column:customer_email;not null"`
	CustomerPhone string              `gorm:"column:customer_phone;not null"`
	Total         decimal.Decimal     `gorm:"column:total;type:numeric(12,2);not null"`
	Status        enums.OrderStatus   `gorm:"column:status;type:text;not null"`
	PaymentMethod enums.PaymentMethod `gorm:"column:payment_method;type:text;not null"`
	Notes         *string             `gorm:"column:notes"`
	Items         []OrderItem         `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	CreatedAt     time.Time           `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time           `gorm:"column:updated_at;autoUpdateTime"`
}

func (Order) TableName() string { return "orders" }

// OrderItem is one product line captured at the price the shopper saw.
type OrderItem struct {
	OrderID   string          `gorm:"column:order_id;primaryKey"`
	Position  int             `gorm:"column:position;primaryKey;autoIncrement:false"`
	ProductID string          `gorm:"column:product_id;not null"`
	Quantity  int             `gorm:"column:quantity;not null"`
	Price     decimal.Decimal `gorm:"column:price;type:numeric(12,2);not null"`
}

func (OrderItem) TableName() string { return "order_items" }
