package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// InventoryItem is one catalog entry (a drink in a given bottle size).
// Stock is mutated only through guarded relative updates so it can never
// drop below zero, even with several front-desk terminals selling at once.
type InventoryItem struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name      string          `gorm:"index;not null"`
	Volume    string          `gorm:"not null"` // label like "250ml", "1L"
	UnitPrice decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Stock     int             `gorm:"not null;default:0;check:stock >= 0"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// DisplayName is the denormalized label snapshotted into order lines,
// matching how the catalog is presented on the terminals.
func (i *InventoryItem) DisplayName() string {
	return i.Name + " " + i.Volume
}
