package orders

import (
	"context"

	"github.com/angelmondragon/keepers-bakery/pkg/db/models"
	"gorm.io/gorm"
)

type repository struct {
	db *gorm.DB
}

// NewRepository builds an orders repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, order *models.Order) (*models.Order, error) {
	if err := r.db.WithContext(ctx).Create(order).Error; err != nil {
		return nil, err
	}
	return order, nil
}

func (r *repository) FindByID(ctx context.Context, id string) (*models.Order, error) {
	var order models.Order
	err := r.db.WithContext(ctx).
		Preload("Items", orderedItems).
		Where("id = ?", id).
		First(&order).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *repository) List(ctx context.Context, query ListQuery) ([]models.Order, error) {
	qb := r.db.WithContext(ctx).Model(&models.Order{}).Preload("Items", orderedItems)
	if query.Status != nil {
		qb = qb.Where("status = ?", *query.Status)
	}
	if query.After != nil {
		qb = qb.Where("((created_at < ?) OR (created_at = ? AND id < ?))", query.After.CreatedAt, query.After.CreatedAt, query.After.ID)
	}

	var orders []models.Order
	err := qb.Order("created_at DESC").Order("id DESC").Limit(query.Limit).Find(&orders).Error
	if err != nil {
		return nil, err
	}
	return orders, nil
}

func orderedItems(db *gorm.DB) *gorm.DB {
	return db.Order("position ASC")
}
