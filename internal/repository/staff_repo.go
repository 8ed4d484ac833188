package repository

import (
	"context"

	"github.com/anish435/Hotel-Inventory-management-system/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type StaffRepository interface {
	Create(ctx context.Context, s *model.StaffMember) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.StaffMember, error)
	List(ctx context.Context) ([]model.StaffMember, error)
	Update(ctx context.Context, s *model.StaffMember) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type staffRepo struct{ db *gorm.DB }

func NewStaffRepository(db *gorm.DB) StaffRepository { return &staffRepo{db: db} }

func (r *staffRepo) Create(ctx context.Context, s *model.StaffMember) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *staffRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.StaffMember, error) {
	var s model.StaffMember
	err := r.db.WithContext(ctx).First(&s, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *staffRepo) List(ctx context.Context) ([]model.StaffMember, error) {
	var staff []model.StaffMember
	err := r.db.WithContext(ctx).Order("name ASC").Find(&staff).Error
	return staff, err
}

func (r *staffRepo) Update(ctx context.Context, s *model.StaffMember) error {
	return r.db.WithContext(ctx).Save(s).Error
}

func (r *staffRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.StaffMember{}, "id = ?", id).Error
}
