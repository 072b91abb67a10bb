package cart

import (
	"time"

	"github.com/shopspring/decimal"
)

// PromoCode grants a percentage discount until it expires or its usage
// allowance runs out.
type PromoCode struct {
	Code            string
	DiscountPercent decimal.Decimal
	ValidUntil      time.Time
	UsageLeft       int
}

func NewPromoCode(code string, discountPercent decimal.Decimal, validUntil time.Time, usageLeft int) *PromoCode {
	return &PromoCode{
		Code:            code,
		DiscountPercent: discountPercent,
		ValidUntil:      validUntil,
		UsageLeft:       usageLeft,
	}
}

func (p *PromoCode) Valid() bool {
	return time.Now().Before(p.ValidUntil) && p.UsageLeft > 0
}

// Discount computes the discount amount without consuming usage.
func (p *PromoCode) Discount(total decimal.Decimal) decimal.Decimal {
	if !p.Valid() {
		return decimal.Zero
	}
	return total.Mul(p.DiscountPercent).Div(decimal.NewFromInt(100))
}

// Consume burns one usage; callers invoke it when the promo is actually
// redeemed, not on every total calculation.
func (p *PromoCode) Consume() bool {
	if !p.Valid() {
		return false
	}
	p.UsageLeft--
	return true
}
