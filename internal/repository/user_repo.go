package repository

import (
	"context"

	"github.com/anish435/Hotel-Inventory-management-system/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserRepository interface {
	Create(ctx context.Context, u *model.UserAccount) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.UserAccount, error)
	FindByUsername(ctx context.Context, username string) (*model.UserAccount, error)
	List(ctx context.Context) ([]model.UserAccount, error)    // active only
	ListAll(ctx context.Context) ([]model.UserAccount, error) // including deactivated
	Update(ctx context.Context, u *model.UserAccount) error
	Deactivate(ctx context.Context, id uuid.UUID) error
	Reactivate(ctx context.Context, id uuid.UUID) error
}

type userRepo struct{ db *gorm.DB }

func NewUserRepository(db *gorm.DB) UserRepository { return &userRepo{db: db} }

func (r *userRepo) Create(ctx context.Context, u *model.UserAccount) error {
	return r.db.WithContext(ctx).Create(u).Error
}

func (r *userRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.UserAccount, error) {
	var u model.UserAccount
	err := r.db.WithContext(ctx).First(&u, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *userRepo) FindByUsername(ctx context.Context, username string) (*model.UserAccount, error) {
	var u model.UserAccount
	err := r.db.WithContext(ctx).Where("username = ? AND active = true", username).First(&u).Error
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *userRepo) List(ctx context.Context) ([]model.UserAccount, error) {
	var users []model.UserAccount
	err := r.db.WithContext(ctx).Where("active = true").Order("username ASC").Find(&users).Error
	return users, err
}

func (r *userRepo) ListAll(ctx context.Context) ([]model.UserAccount, error) {
	var users []model.UserAccount
	err := r.db.WithContext(ctx).Order("username ASC").Find(&users).Error
	return users, err
}

func (r *userRepo) Update(ctx context.Context, u *model.UserAccount) error {
	return r.db.WithContext(ctx).Save(u).Error
}

func (r *userRepo) Deactivate(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.UserAccount{}).Where("id = ?", id).Update("active", false).Error
}

func (r *userRepo) Reactivate(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.UserAccount{}).Where("id = ?", id).Update("active", true).Error
}
