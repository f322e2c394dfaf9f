package cart

import (
	"errors"

	"github.com/shopspring/decimal"
)

// ErrInvalidItem is returned when a catalog item cannot become a cart line.
var ErrInvalidItem = errors.New("invalid catalog item")

// CatalogItem is the product data the cart consumes when a shopper adds an item.
type CatalogItem struct {
	ID    string
	Name  string
	Price decimal.Decimal
	Image string
}

// Line is one product entry in a cart. Name, Price and Image are snapshots taken
// when the product was first added.
type Line struct {
	ProductID string          `json:"productId" validate:"required,max=128"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price" validate:"money"`
	Quantity  int             `json:"quantity" validate:"min=1"`
	Image     string          `json:"image"`
}

// Subtotal is the line's unit price times its quantity.
func (l Line) Subtotal() decimal.Decimal {
	return l.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// State is a read-only view of a cart with derived totals.
type State struct {
	Lines      []Line          `json:"lines"`
	TotalItems int             `json:"totalItems"`
	TotalPrice decimal.Decimal `json:"totalPrice"`
	DrawerOpen bool            `json:"drawerOpen"`
}
