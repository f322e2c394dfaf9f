package orders

import (
	"github.com/angelmondragon/keepers-bakery/pkg/checkout"
	"github.com/angelmondragon/keepers-bakery/pkg/db/models"
	"github.com/angelmondragon/keepers-bakery/pkg/enums"
	"github.com/angelmondragon/keepers-bakery/pkg/types"
)

// OrderList is one page of orders, newest first.
type OrderList = types.Page[checkout.Order]

// ListFilters narrows the admin order listing.
type ListFilters struct {
	Status *enums.OrderStatus
}

// FromModel maps a stored order onto its wire representation.
func FromModel(m models.Order) checkout.Order {
	items := make([]checkout.OrderItem, 0, len(m.Items))
	for _, item := range m.Items {
		items = append(items, checkout.OrderItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Price:     item.Price,
		})
	}
	return checkout.Order{
		ID:            m.ID,
		CustomerID:    m.CustomerID,
		CustomerName:  m.CustomerName,
		CustomerEmail: m.CustomerEmail,
		CustomerPhone: m.CustomerPhone,
		Items:         items,
		Total:         m.Total,
		Status:        m.Status,
		PaymentMethod: m.PaymentMethod,
		Notes:         m.Notes,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}
