package repository

import (
	"context"

	"github.com/anish435/Hotel-Inventory-management-system/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PriceChangeRepository stores the immutable price audit trail.
// Rows are only ever inserted and listed.
type PriceChangeRepository interface {
	CreateTx(tx *gorm.DB, pc *model.PriceChange) error
	ListByItem(ctx context.Context, itemID uuid.UUID) ([]model.PriceChange, error)
}

type priceChangeRepo struct{ db *gorm.DB }

func NewPriceChangeRepository(db *gorm.DB) PriceChangeRepository {
	return &priceChangeRepo{db: db}
}

func (r *priceChangeRepo) CreateTx(tx *gorm.DB, pc *model.PriceChange) error {
	return tx.Create(pc).Error
}

func (r *priceChangeRepo) ListByItem(ctx context.Context, itemID uuid.UUID) ([]model.PriceChange, error) {
	var changes []model.PriceChange
	err := r.db.WithContext(ctx).
		Where("item_id = ?", itemID).
		Order("created_at DESC").
		Find(&changes).Error
	return changes, err
}
