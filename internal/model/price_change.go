package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PriceChange records each catalog price edit. Records are immutable — never
// updated or deleted. Order line and sale snapshots are unaffected by the
// edits this table tracks; it exists purely as an audit trail.
type PriceChange struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ItemID      uuid.UUID       `gorm:"type:uuid;not null;index"`
	PriceBefore decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	PriceAfter  decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	ChangedBy   *uuid.UUID      `gorm:"type:uuid"`
	CreatedAt   time.Time
}
