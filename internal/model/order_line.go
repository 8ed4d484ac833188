package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderLine is an uncommitted quantity of one catalog item attached to a room,
// pending checkout. UnitPrice is a snapshot taken when the line was first
// added — later catalog price edits never touch it. Lines for the same item
// are merged only when served by the same staff member.
type OrderLine struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	RoomNumber  string          `gorm:"index;not null"`
	ItemID      uuid.UUID       `gorm:"type:uuid;index;not null"`
	DisplayName string          `gorm:"not null"`
	UnitPrice   decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Quantity    int             `gorm:"not null"`
	LineTotal   decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	// Position preserves the on-screen ordering; line removal is index-based.
	Position  int        `gorm:"not null"`
	StaffID   *uuid.UUID `gorm:"type:uuid"`
	StaffName *string
	CreatedAt time.Time
	UpdatedAt time.Time
}
