package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"ajurnie/internal/model"
)

// AdminRepository checks and manages admin identity rows. IsAdmin is
// queried fresh on every privileged request.
type AdminRepository interface {
	IsAdmin(ctx context.Context, userID uint) (bool, error)
	Create(ctx context.Context, admin *model.AdminUser) error
}

type adminRepository struct {
	db *gorm.DB
}

// NewAdminRepository builds a GORM-backed repository.
func NewAdminRepository(db *gorm.DB) AdminRepository {
	return &adminRepository{db: db}
}

func (r *adminRepository) IsAdmin(ctx context.Context, userID uint) (bool, error) {
	var admin model.AdminUser
	err := r.db.WithContext(ctx).Where("id = ?", userID).First(&admin).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (r *adminRepository) Create(ctx context.Context, admin *model.AdminUser) error {
	return r.db.WithContext(ctx).Create(admin).Error
}
