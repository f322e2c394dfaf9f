package product

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/angelmondragon/keepers-bakery/internal/repo"
	"github.com/angelmondragon/keepers-bakery/pkg/db/models"
)

// Repository persists catalog products.
type Repository struct {
	repo.Base
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{Base: repo.NewBase(db)}
}

// ListEnabled returns enabled products ordered by name.
func (r *Repository) ListEnabled(ctx context.Context, filters ListFilters) ([]models.Product, error) {
	qb := r.DB(ctx).Where("enabled = ?", true)
	if filters.Featured != nil {
		qb = qb.Where("featured = ?", *filters.Featured)
	}
	var products []models.Product
	if err := qb.Order("name ASC").Order("id ASC").Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

func (r *Repository) FindByID(ctx context.Context, id string) (*models.Product, error) {
	var product models.Product
	if err := r.DB(ctx).Where("id = ?", id).First(&product).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

// Upsert inserts products or refreshes their catalog fields by id.
func (r *Repository) Upsert(ctx context.Context, products []models.Product) error {
	if len(products) == 0 {
		return nil
	}
	return r.DB(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"name", "description", "price", "allergens", "quantity", "tags", "enabled", "featured", "image", "updated_at",
		}),
	}).Create(&products).Error
}
