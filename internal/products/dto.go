package product

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/angelmondragon/keepers-bakery/pkg/db/models"
)

// LowStockThreshold is the quantity at or below which a product shows a low stock badge.
const LowStockThreshold = 5

// ProductDTO is the catalog entry served to the storefront.
type ProductDTO struct {
	ID          string          `json:"id" validate:"required,max=128"`
	Name        string          `json:"name" validate:"required,max=200"`
	Description string          `json:"description" validate:"max=2000"`
	Price       decimal.Decimal `json:"price" validate:"money"`
	Allergens   []string        `json:"allergens" validate:"dive,required"`
	Quantity    int             `json:"quantity" validate:"min=0"`
	Tags        []string        `json:"tags" validate:"dive,required"`
	Enabled     bool            `json:"enabled"`
	Featured    bool            `json:"featured"`
	Image       string          `json:"image" validate:"omitempty,url"`
	LowStock    bool            `json:"lowStock"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

// ListFilters narrows the public catalog listing.
type ListFilters struct {
	Featured *bool
}

// LowStock reports whether the product should carry the low stock badge.
func LowStock(quantity int) bool {
	return quantity <= LowStockThreshold
}

func FromModel(m models.Product) ProductDTO {
	return ProductDTO{
		ID:          m.ID,
		Name:        m.Name,
		Description: m.Description,
		Price:       m.Price,
		Allergens:   nonNil(m.Allergens),
		Quantity:    m.Quantity,
		Tags:        nonNil(m.Tags),
		Enabled:     m.Enabled,
		Featured:    m.Featured,
		Image:       m.Image,
		LowStock:    LowStock(m.Quantity),
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

func (p ProductDTO) toModel() models.Product {
	return models.Product{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		Allergens:   nonNil(p.Allergens),
		Quantity:    p.Quantity,
		Tags:        nonNil(p.Tags),
		Enabled:     p.Enabled,
		Featured:    p.Featured,
		Image:       p.Image,
	}
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
