package orders

import (
	"context"
	"time"

	"github.com/angelmondragon/keepers-bakery/pkg/db/models"
	"github.com/angelmondragon/keepers-bakery/pkg/enums"
	"gorm.io/gorm"
)

// Repository defines persistence operations for the orders tables.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, order *models.Order) (*models.Order, error)
	FindByID(ctx context.Context, id string) (*models.Order, error)
	List(ctx context.Context, query ListQuery) ([]models.Order, error)
}

// ListQuery is a keyset page request over orders ordered by created_at, id descending.
type ListQuery struct {
	Limit  int
	Status *enums.OrderStatus
	After  *Cursor
}

// Cursor is the position of the last row already returned.
type Cursor struct {
	CreatedAt time.Time
	ID        string
}
