package repository

import (
	"context"

	"github.com/anish435/Hotel-Inventory-management-system/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// RoomRepository is the data access contract for rooms and their open order
// lines. The room set is fixed: Seed creates missing rooms once, nothing
// deletes them.
type RoomRepository interface {
	// Seed creates any missing rooms as vacant. Idempotent.
	Seed(ctx context.Context, numbers []string) error
	List(ctx context.Context) ([]model.Room, error)
	FindByNumber(ctx context.Context, number string) (*model.Room, error)

	// FindForUpdateTx loads the room row under a row lock, with its lines in
	// position order. The lock serializes concurrent line edits on one room
	// across terminals for the duration of the transaction.
	FindForUpdateTx(tx *gorm.DB, number string) (*model.Room, error)

	CreateLineTx(tx *gorm.DB, line *model.OrderLine) error
	SaveLineTx(tx *gorm.DB, line *model.OrderLine) error
	DeleteLineTx(tx *gorm.DB, id uuid.UUID) error
	DeleteAllLinesTx(tx *gorm.DB, roomNumber string) error
	SetStatusTx(tx *gorm.DB, number, status string) error

	// CountLinesForItemTx counts open lines across all rooms referencing a
	// catalog item — the guard behind the item deletion rule.
	CountLinesForItemTx(tx *gorm.DB, itemID uuid.UUID) (int64, error)

	DB() *gorm.DB
}

type roomRepo struct{ db *gorm.DB }

func NewRoomRepository(db *gorm.DB) RoomRepository { return &roomRepo{db: db} }

func (r *roomRepo) Seed(ctx context.Context, numbers []string) error {
	rooms := make([]model.Room, 0, len(numbers))
	for _, n := range numbers {
		rooms = append(rooms, model.Room{Number: n, Status: model.RoomVacant})
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&rooms).Error
}

func (r *roomRepo) List(ctx context.Context) ([]model.Room, error) {
	var rooms []model.Room
	err := r.db.WithContext(ctx).
		Preload("Lines", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		Order("number ASC").
		Find(&rooms).Error
	return rooms, err
}

func (r *roomRepo) FindByNumber(ctx context.Context, number string) (*model.Room, error) {
	var room model.Room
	err := r.db.WithContext(ctx).
		Preload("Lines", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		First(&room, "number = ?", number).Error
	if err != nil {
		return nil, err
	}
	return &room, nil
}

func (r *roomRepo) FindForUpdateTx(tx *gorm.DB, number string) (*model.Room, error) {
	var room model.Room
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&room, "number = ?", number).Error
	if err != nil {
		return nil, err
	}
	err = tx.Where("room_number = ?", number).Order("position ASC").Find(&room.Lines).Error
	if err != nil {
		return nil, err
	}
	return &room, nil
}

func (r *roomRepo) CreateLineTx(tx *gorm.DB, line *model.OrderLine) error {
	return tx.Create(line).Error
}

func (r *roomRepo) SaveLineTx(tx *gorm.DB, line *model.OrderLine) error {
	return tx.Save(line).Error
}

func (r *roomRepo) DeleteLineTx(tx *gorm.DB, id uuid.UUID) error {
	return tx.Delete(&model.OrderLine{}, "id = ?", id).Error
}

func (r *roomRepo) DeleteAllLinesTx(tx *gorm.DB, roomNumber string) error {
	return tx.Delete(&model.OrderLine{}, "room_number = ?", roomNumber).Error
}

func (r *roomRepo) SetStatusTx(tx *gorm.DB, number, status string) error {
	return tx.Model(&model.Room{}).Where("number = ?", number).
		Update("status", status).Error
}

func (r *roomRepo) CountLinesForItemTx(tx *gorm.DB, itemID uuid.UUID) (int64, error) {
	var count int64
	err := tx.Model(&model.OrderLine{}).Where("item_id = ?", itemID).Count(&count).Error
	return count, err
}

func (r *roomRepo) DB() *gorm.DB { return r.db }
