package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Plan identifiers offered on the pricing page.
const (
	PlanBasic   = "basic"
	PlanPremium = "premium"
)

// Subscription is the billing record behind a user profile's
// subscription status. At most one row exists per user; Stripe owns the
// actual charge lifecycle and is referenced only by customer id.
type Subscription struct {
	ID               uint            `json:"id" gorm:"primaryKey"`
	UserID           uint            `json:"user_id" gorm:"uniqueIndex;not null"`
	Plan             string          `json:"plan" gorm:"size:100;not null"`
	Status           string          `json:"status" gorm:"size:50;default:'trial';index"`
	Price            decimal.Decimal `json:"price" gorm:"type:decimal(10,2)"`
	StartDate        time.Time       `json:"start_date"`
	CurrentPeriodEnd time.Time       `json:"current_period_end"`
	StripeCustomerID string          `json:"-" gorm:"size:255"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}
