package repository

import (
	"context"

	"gorm.io/gorm"

	"ajurnie/internal/model"
)

// CouponRepository defines coupon persistence operations.
type CouponRepository interface {
	CreateCoupon(ctx context.Context, coupon *model.Coupon) error
	FindCouponByID(ctx context.Context, id uint) (*model.Coupon, error)
	AssignToUser(ctx context.Context, userCoupon *model.UserCoupon) error
	ListActiveForUser(ctx context.Context, userID uint) ([]model.UserCoupon, error)
}

type couponRepository struct {
	db *gorm.DB
}

// NewCouponRepository builds a GORM-backed repository.
func NewCouponRepository(db *gorm.DB) CouponRepository {
	return &couponRepository{db: db}
}

func (r *couponRepository) CreateCoupon(ctx context.Context, coupon *model.Coupon) error {
	return r.db.WithContext(ctx).Create(coupon).Error
}

func (r *couponRepository) FindCouponByID(ctx context.Context, id uint) (*model.Coupon, error) {
	var coupon model.Coupon
	if err := r.db.WithContext(ctx).First(&coupon, id).Error; err != nil {
		return nil, err
	}
	return &coupon, nil
}

func (r *couponRepository) AssignToUser(ctx context.Context, userCoupon *model.UserCoupon) error {
	return r.db.WithContext(ctx).Create(userCoupon).Error
}

// ListActiveForUser returns unused assignments whose coupon is still active.
func (r *couponRepository) ListActiveForUser(ctx context.Context, userID uint) ([]model.UserCoupon, error) {
	var coupons []model.UserCoupon
	err := r.db.WithContext(ctx).
		Joins("JOIN coupons ON coupons.id = user_coupons.coupon_id").
		Where("user_coupons.user_id = ? AND user_coupons.is_used = ? AND coupons.is_active = ?", userID, false, true).
		Preload("Coupon").
		Find(&coupons).Error
	if err != nil {
		return nil, err
	}
	return coupons, nil
}
