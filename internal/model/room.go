package model

import "time"

// Room statuses. Occupied iff at least one open order line exists;
// the column is a cache kept in sync inside every line mutation.
const (
	RoomVacant   = "vacant"
	RoomOccupied = "occupied"
)

// Room is one physical room of the property. The set of rooms is fixed:
// seeded once at startup from configuration, never deleted.
type Room struct {
	Number    string `gorm:"primaryKey"` // "101" … "405"
	Status    string `gorm:"not null;default:'vacant'"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Lines []OrderLine `gorm:"foreignKey:RoomNumber"`
}
