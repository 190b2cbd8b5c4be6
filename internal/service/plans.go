package service

import (
	"github.com/shopspring/decimal"

	apperrors "ajurnie/internal/errors"
	"ajurnie/internal/model"
)

// Monthly plan prices. Founding members keep a discounted rate for as
// long as they stay subscribed.
var planPrices = map[string]decimal.Decimal{
	model.PlanBasic:   decimal.NewFromFloat(9.99),
	model.PlanPremium: decimal.NewFromFloat(19.99),
}

var foundingDiscount = decimal.NewFromFloat(0.80)

// PlanPrice returns the monthly price for a plan, applying the
// founding-member rate when it applies.
func PlanPrice(plan string, foundingMember bool) (decimal.Decimal, error) {
	price, ok := planPrices[plan]
	if !ok {
		return decimal.Zero, apperrors.ErrUnknownPlan
	}
	if foundingMember {
		price = price.Mul(foundingDiscount).Round(2)
	}
	return price, nil
}
