package model

import (
	"time"

	"github.com/google/uuid"
)

// UserAccount is a login account for a terminal operator.
// Rol: "staff" | "admin" — destructive history/catalog operations require admin.
type UserAccount struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Username     string    `gorm:"uniqueIndex;not null"`
	DisplayName  string    `gorm:"not null"`
	PasswordHash string    `gorm:"not null"`
	Role         string    `gorm:"type:varchar(20);not null"`
	Active       bool      `gorm:"not null;default:true"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
