package repository

import (
	"context"
	"time"

	"github.com/anish435/Hotel-Inventory-management-system/internal/dto"
	"github.com/anish435/Hotel-Inventory-management-system/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// SaleRepository is the data access contract for the append-only sales
// history. Records are created inside the checkout/walk-in transaction and
// never updated; the only other mutation is administrative deletion.
type SaleRepository interface {
	CreateTx(tx *gorm.DB, sale *model.SaleRecord) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.SaleRecord, error)
	List(ctx context.Context, filter dto.SaleFilter) ([]model.SaleRecord, int64, error)

	// Delete purges one record and its lines. Returns false when no row matched.
	Delete(ctx context.Context, id uuid.UUID) (bool, error)

	// AggregateRange sums completed sales with created_at in [from, to),
	// split by payment mode.
	AggregateRange(ctx context.Context, from, to time.Time) (cash, upi decimal.Decimal, count int64, err error)

	DB() *gorm.DB
}

type saleRepo struct{ db *gorm.DB }

func NewSaleRepository(db *gorm.DB) SaleRepository { return &saleRepo{db: db} }

func (r *saleRepo) CreateTx(tx *gorm.DB, sale *model.SaleRecord) error {
	return tx.Create(sale).Error
}

func (r *saleRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.SaleRecord, error) {
	var sale model.SaleRecord
	err := r.db.WithContext(ctx).Preload("Lines").First(&sale, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &sale, nil
}

func (r *saleRepo) List(ctx context.Context, filter dto.SaleFilter) ([]model.SaleRecord, int64, error) {
	var sales []model.SaleRecord
	var total int64

	q := r.db.WithContext(ctx).Model(&model.SaleRecord{})

	if filter.Date != "" {
		day, err := time.ParseInLocation("2006-01-02", filter.Date, time.Local)
		if err == nil {
			q = q.Where("created_at >= ? AND created_at < ?", day, day.AddDate(0, 0, 1))
		}
	}
	switch filter.Kind {
	case model.SaleKindRoom, model.SaleKindWalkIn:
		q = q.Where("kind = ?", filter.Kind)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	err := q.Preload("Lines").
		Order("created_at DESC").
		Limit(filter.Limit).Offset(offset).
		Find(&sales).Error
	return sales, total, err
}

func (r *saleRepo) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	var deleted bool
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&model.SaleLine{}, "sale_id = ?", id).Error; err != nil {
			return err
		}
		res := tx.Delete(&model.SaleRecord{}, "id = ?", id)
		deleted = res.RowsAffected > 0
		return res.Error
	})
	return deleted, err
}

func (r *saleRepo) AggregateRange(ctx context.Context, from, to time.Time) (decimal.Decimal, decimal.Decimal, int64, error) {
	type row struct {
		PaymentMode string
		Total       decimal.Decimal
		Count       int64
	}
	var rows []row
	err := r.db.WithContext(ctx).Model(&model.SaleRecord{}).
		Select("payment_mode, COALESCE(SUM(total_amount), 0) AS total, COUNT(*) AS count").
		Where("created_at >= ? AND created_at < ?", from, to).
		Group("payment_mode").
		Scan(&rows).Error
	if err != nil {
		return decimal.Zero, decimal.Zero, 0, err
	}

	cash, upi := decimal.Zero, decimal.Zero
	var count int64
	for _, r := range rows {
		switch r.PaymentMode {
		case model.PaymentCash:
			cash = r.Total
		case model.PaymentUPI:
			upi = r.Total
		}
		count += r.Count
	}
	return cash, upi, count, nil
}

func (r *saleRepo) DB() *gorm.DB { return r.db }
