package infra

import (
	"fmt"

	"github.com/anish435/Hotel-Inventory-management-system/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDatabase establishes a GORM connection backed by pgx and runs
// AutoMigrate for the full schema. The schema is small enough that
// AutoMigrate is the whole migration story here.
func NewDatabase(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)

	if err := db.AutoMigrate(
		&model.InventoryItem{},
		&model.Room{},
		&model.OrderLine{},
		&model.SaleRecord{},
		&model.SaleLine{},
		&model.StaffMember{},
		&model.UserAccount{},
		&model.PriceChange{},
	); err != nil {
		return nil, fmt.Errorf("AutoMigrate: %w", err)
	}

	return db, nil
}
