package checkout

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/angelmondragon/keepers-bakery/pkg/enums"
)

// OrderItem is one line of an order as it crosses the storefront/backend boundary.
type OrderItem struct {
	ProductID string          `json:"productId" validate:"required,max=128"`
	Quantity  int             `json:"quantity" validate:"min=1"`
	Price     decimal.Decimal `json:"price" validate:"money"`
}

// OrderRequest is the create-order body posted to the order backend.
type OrderRequest struct {
	CustomerName  string              `json:"customerName" validate:"required,max=200"`
	CustomerEmail string              `json:"customerEmail" validate:"required,email,max=320"`
	CustomerPhone string              `json:"customerPhone" validate:"required,max=40"`
	Items         []OrderItem         `json:"items" validate:"required,min=1,dive"`
	Total         decimal.Decimal     `json:"total" validate:"money"`
	PaymentMethod enums.PaymentMethod `json:"paymentMethod" validate:"payment_method"`
	Notes         *string             `json:"notes,omitempty" validate:"omitempty,max=2000"`
}

// CreateOrderResponse is the payload returned when an order is accepted.
type CreateOrderResponse struct {
	OrderID string `json:"orderId"`
}

// Order is the backend's representation of an accepted order.
type Order struct {
	ID            string              `json:"id"`
	CustomerID    string              `json:"customerId"`
	CustomerName  string              `json:"customerName"`
	CustomerEmail string              `json:"customerEmail"`
	CustomerPhone string              `json:"customerPhone"`
	Items         []OrderItem         `json:"items"`
	Total         decimal.Decimal     `json:"total"`
	Status        enums.OrderStatus   `json:"status"`
	PaymentMethod enums.PaymentMethod `json:"paymentMethod"`
	Notes         *string             `json:"notes,omitempty"`
	CreatedAt     time.Time           `json:"createdAt"`
	UpdatedAt     time.Time           `json:"updatedAt"`
}
