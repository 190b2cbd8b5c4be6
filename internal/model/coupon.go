package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Discount types a coupon can carry.
const (
	DiscountPercent = "percent"
	DiscountFixed   = "fixed"
)

// Coupon is a discount code redeemable against a subscription plan.
type Coupon struct {
	ID            uint            `json:"id" gorm:"primaryKey"`
	Code          string          `json:"code" gorm:"uniqueIndex;size:50;not null"`
	DiscountType  string          `json:"discount_type" gorm:"size:20;not null"`
	DiscountValue decimal.Decimal `json:"discount_value" gorm:"type:decimal(10,2)"`
	ExpiresAt     *time.Time      `json:"expires_at"`
	IsActive      bool            `json:"is_active" gorm:"default:true;index"`
	CreatedAt     time.Time       `json:"created_at"`
}

// UserCoupon assigns a coupon to a user and tracks redemption.
type UserCoupon struct {
	ID       uint `json:"id" gorm:"primaryKey"`
	UserID   uint `json:"user_id" gorm:"index;not null"`
	CouponID uint `json:"coupon_id" gorm:"index;not null"`
	IsUsed   bool `json:"is_used" gorm:"default:false"`

	Coupon *Coupon `json:"coupon,omitempty" gorm:"foreignKey:CouponID"`
}
