package model

import (
	"time"

	"github.com/google/uuid"
)

// StaffMember is a person who can be recorded as having served an order line.
// Role: "runner" | "frontDesk" | "admin"
type StaffMember struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name      string    `gorm:"not null"`
	Role      string    `gorm:"type:varchar(20);not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName overrides GORM's default pluralization (staff_members, not staff_member).
func (StaffMember) TableName() string { return "staff_members" }
