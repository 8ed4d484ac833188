package repository

import (
	"context"

	"github.com/anish435/Hotel-Inventory-management-system/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// InventoryRepository defines the data access contract for the drink catalog.
// Services depend on this interface, not on the concrete GORM implementation,
// enabling clean unit testing via in-memory stubs.
//
// Stock mutations are deliberately relative and guarded at the SQL level:
// a plain read-modify-write would lose updates when two terminals sell the
// same item at the same moment.
type InventoryRepository interface {
	Create(ctx context.Context, item *model.InventoryItem) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.InventoryItem, error)
	List(ctx context.Context) ([]model.InventoryItem, error)

	// Used inside transactions — callers must pass the tx instance
	FindByIDTx(tx *gorm.DB, id uuid.UUID) (*model.InventoryItem, error)

	// DecrementStockTx subtracts qty only when enough stock remains.
	// Returns false (and no error) when the guard rejected the update.
	DecrementStockTx(tx *gorm.DB, id uuid.UUID, qty int) (bool, error)

	// IncrementStockTx returns qty units to stock (restock-on-removal).
	IncrementStockTx(tx *gorm.DB, id uuid.UUID, qty int) error

	// UpdatePriceTx changes the catalog price; snapshots on existing lines
	// and sale records are untouched.
	UpdatePriceTx(tx *gorm.DB, id uuid.UUID, price decimal.Decimal) error

	// DeleteTx removes a catalog entry. Returns false when no row matched.
	DeleteTx(tx *gorm.DB, id uuid.UUID) (bool, error)

	// AdjustStock applies a signed delta without an external transaction,
	// refusing any result below zero. Returns false when rejected.
	AdjustStock(ctx context.Context, id uuid.UUID, delta int) (bool, error)

	// DB exposes the underlying *gorm.DB so services can open transactions.
	DB() *gorm.DB
}

type inventoryRepo struct{ db *gorm.DB }

func NewInventoryRepository(db *gorm.DB) InventoryRepository { return &inventoryRepo{db: db} }

func (r *inventoryRepo) Create(ctx context.Context, item *model.InventoryItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *inventoryRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.InventoryItem, error) {
	var item model.InventoryItem
	err := r.db.WithContext(ctx).First(&item, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *inventoryRepo) List(ctx context.Context) ([]model.InventoryItem, error) {
	var items []model.InventoryItem
	err := r.db.WithContext(ctx).Order("name ASC, volume ASC").Find(&items).Error
	return items, err
}

func (r *inventoryRepo) FindByIDTx(tx *gorm.DB, id uuid.UUID) (*model.InventoryItem, error) {
	var item model.InventoryItem
	err := tx.First(&item, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *inventoryRepo) DecrementStockTx(tx *gorm.DB, id uuid.UUID, qty int) (bool, error) {
	res := tx.Model(&model.InventoryItem{}).
		Where("id = ? AND stock >= ?", id, qty).
		Update("stock", gorm.Expr("stock - ?", qty))
	return res.RowsAffected > 0, res.Error
}

func (r *inventoryRepo) IncrementStockTx(tx *gorm.DB, id uuid.UUID, qty int) error {
	return tx.Model(&model.InventoryItem{}).Where("id = ?", id).
		Update("stock", gorm.Expr("stock + ?", qty)).Error
}

func (r *inventoryRepo) UpdatePriceTx(tx *gorm.DB, id uuid.UUID, price decimal.Decimal) error {
	return tx.Model(&model.InventoryItem{}).Where("id = ?", id).
		Update("unit_price", price).Error
}

func (r *inventoryRepo) DeleteTx(tx *gorm.DB, id uuid.UUID) (bool, error) {
	res := tx.Delete(&model.InventoryItem{}, "id = ?", id)
	return res.RowsAffected > 0, res.Error
}

func (r *inventoryRepo) AdjustStock(ctx context.Context, id uuid.UUID, delta int) (bool, error) {
	res := r.db.WithContext(ctx).Model(&model.InventoryItem{}).
		Where("id = ? AND stock + ? >= 0", id, delta).
		Update("stock", gorm.Expr("stock + ?", delta))
	return res.RowsAffected > 0, res.Error
}

func (r *inventoryRepo) DB() *gorm.DB { return r.db }
