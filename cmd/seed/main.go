// cmd/seed — loads the starting catalog, the room roster and a default admin
// account into an empty database. Safe to re-run: existing rows are kept.
// Usage: go run ./cmd/seed
package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/anish435/Hotel-Inventory-management-system/internal/config"
	"github.com/anish435/Hotel-Inventory-management-system/internal/infra"
	"github.com/anish435/Hotel-Inventory-management-system/internal/model"
	"github.com/anish435/Hotel-Inventory-management-system/internal/repository"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var startingCatalog = []model.InventoryItem{
	{Name: "Kinley Water", Volume: "1L", UnitPrice: decimal.NewFromInt(20), Stock: 50},
	{Name: "Kinley Water", Volume: "2L", UnitPrice: decimal.NewFromInt(30), Stock: 50},
	{Name: "Thums Up", Volume: "250ml", UnitPrice: decimal.NewFromInt(20), Stock: 50},
	{Name: "Thums Up", Volume: "500ml", UnitPrice: decimal.NewFromInt(30), Stock: 50},
	{Name: "Sprite", Volume: "250ml", UnitPrice: decimal.NewFromInt(20), Stock: 50},
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	db, err := infra.NewDatabase(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("db connect error: %v", err)
	}

	ctx := context.Background()

	roomRepo := repository.NewRoomRepository(db)
	if err := roomRepo.Seed(ctx, cfg.RoomNumberList()); err != nil {
		log.Fatalf("room seed error: %v", err)
	}

	if err := seedCatalog(ctx, db); err != nil {
		log.Fatalf("catalog seed error: %v", err)
	}

	username := os.Getenv("SEED_ADMIN_USERNAME")
	if username == "" {
		username = "admin"
	}
	password := os.Getenv("SEED_ADMIN_PASSWORD")
	if password == "" {
		password = "1234"
	}
	if err := seedAdmin(ctx, db, username, password); err != nil {
		log.Fatalf("admin seed error: %v", err)
	}

	fmt.Printf("seeded %d rooms, %d catalog items, admin user %q\n",
		len(cfg.RoomNumberList()), len(startingCatalog), username)
}

// seedCatalog inserts the starting drinks only when the catalog is empty,
// so re-running never clobbers prices or stock set through the API.
func seedCatalog(ctx context.Context, db *gorm.DB) error {
	var count int64
	if err := db.WithContext(ctx).Model(&model.InventoryItem{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	items := make([]model.InventoryItem, len(startingCatalog))
	copy(items, startingCatalog)
	return db.WithContext(ctx).Create(&items).Error
}

func seedAdmin(ctx context.Context, db *gorm.DB, username, password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), 12)
	if err != nil {
		return err
	}
	user := model.UserAccount{
		Username:     username,
		DisplayName:  "Administrator",
		PasswordHash: string(hash),
		Role:         "admin",
		Active:       true,
	}
	return db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "username"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"password_hash": string(hash),
			"active":        true,
		}),
	}).Create(&user).Error
}
