package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	SaleKindRoom   = "room"
	SaleKindWalkIn = "walkIn"

	PaymentCash = "cash"
	PaymentUPI  = "upi"
)

// SaleRecord is one finalized sale in the append-only history. Lines are a
// deep copy of the order lines at checkout time; records are immutable after
// creation except for administrative deletion.
type SaleRecord struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Kind        string    `gorm:"not null;index"` // room | walkIn
	RoomNumber  *string   `gorm:"index"`          // set only for room sales
	TotalAmount decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	PaymentMode string          `gorm:"not null"` // cash | upi
	CreatedAt   time.Time       `gorm:"index"`

	Lines []SaleLine `gorm:"foreignKey:SaleID;constraint:OnDelete:CASCADE"`
}

// SaleLine is the denormalized snapshot of one order line inside a sale.
// ItemID is kept for reporting but carries no foreign key: the catalog entry
// may be deleted later without touching history.
type SaleLine struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SaleID      uuid.UUID       `gorm:"type:uuid;index;not null"`
	ItemID      uuid.UUID       `gorm:"type:uuid;not null"`
	DisplayName string          `gorm:"not null"`
	UnitPrice   decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Quantity    int             `gorm:"not null"`
	LineTotal   decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	StaffID     *uuid.UUID      `gorm:"type:uuid"`
	StaffName   *string
}
