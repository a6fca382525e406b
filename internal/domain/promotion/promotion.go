package promotion

import (
	"fmt"
	"strings"
	"time"

	"github.com/hotel/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// PromotionType represents how a promotion's discount is computed
type PromotionType string

const (
	PromotionTypePercentage  PromotionType = "PERCENTAGE"
	PromotionTypeFixedAmount PromotionType = "FIXED_AMOUNT"
)

// IsValid checks if the type is a valid PromotionType
func (t PromotionType) IsValid() bool {
	return t == PromotionTypePercentage || t == PromotionTypeFixedAmount
}

// String returns the string representation of PromotionType
func (t PromotionType) String() string {
	return string(t)
}

// PromotionScope restricts which charges a promotion may discount
type PromotionScope string

const (
	PromotionScopeAll     PromotionScope = "ALL"
	PromotionScopeRoom    PromotionScope = "ROOM"
	PromotionScopeService PromotionScope = "SERVICE"
)

// IsValid checks if the scope is a valid PromotionScope
func (s PromotionScope) IsValid() bool {
	return s == PromotionScopeAll || s == PromotionScopeRoom || s == PromotionScopeService
}

// String returns the string representation of PromotionScope
func (s PromotionScope) String() string {
	return string(s)
}

// Promotion represents a discount rule with scope, window, and usage limits.
// The code is unique; identity is immutable after creation.
type Promotion struct {
	shared.BaseAggregateRoot
	Code             string          `json:"code"`
	Type             PromotionType   `json:"type"`
	Scope            PromotionScope  `json:"scope"`
	Value            decimal.Decimal `json:"value"`
	MaxDiscount      *decimal.Decimal `json:"max_discount"`
	MinBookingAmount decimal.Decimal `json:"min_booking_amount"`
	TotalQty         *int            `json:"total_qty"`
	RemainingQty     *int            `json:"remaining_qty"` // nil = unlimited
	PerCustomerLimit int             `json:"per_customer_limit"`
	StartDate        time.Time       `json:"start_date"`
	EndDate          time.Time       `json:"end_date"`
	DisabledAt       *time.Time      `json:"disabled_at"`
}

// NewPromotion creates a promotion with the given terms
func NewPromotion(
	code string,
	promoType PromotionType,
	scope PromotionScope,
	value decimal.Decimal,
	maxDiscount *decimal.Decimal,
	minBookingAmount decimal.Decimal,
	totalQty *int,
	perCustomerLimit int,
	startDate, endDate time.Time,
) (*Promotion, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return nil, shared.NewDomainError("INVALID_CODE", "Promotion code cannot be empty")
	}
	if len(code) > 50 {
		return nil, shared.NewDomainError("INVALID_CODE", "Promotion code cannot exceed 50 characters")
	}
	if !promoType.IsValid() {
		return nil, shared.NewDomainError("INVALID_TYPE", "Promotion type is not valid")
	}
	if !scope.IsValid() {
		return nil, shared.NewDomainError("INVALID_SCOPE", "Promotion scope is not valid")
	}
	if value.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_VALUE", "Promotion value must be positive")
	}
	if promoType == PromotionTypePercentage && value.GreaterThan(decimal.NewFromInt(100)) {
		return nil, shared.NewDomainError("INVALID_VALUE", "Percentage promotion cannot exceed 100")
	}
	if maxDiscount != nil && maxDiscount.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_VALUE", "Max discount must be positive when set")
	}
	if minBookingAmount.IsNegative() {
		return nil, shared.NewDomainError("INVALID_VALUE", "Min booking amount cannot be negative")
	}
	if totalQty != nil && *totalQty <= 0 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Total quantity must be positive when set")
	}
	if perCustomerLimit <= 0 {
		perCustomerLimit = 1
	}
	if !endDate.After(startDate) {
		return nil, shared.NewDomainError("INVALID_WINDOW", "Promotion end date must be after start date")
	}

	p := &Promotion{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Code:              code,
		Type:              promoType,
		Scope:             scope,
		Value:             value,
		MaxDiscount:       maxDiscount,
		MinBookingAmount:  minBookingAmount,
		TotalQty:          totalQty,
		PerCustomerLimit:  perCustomerLimit,
		StartDate:         startDate,
		EndDate:           endDate,
	}
	if totalQty != nil {
		remaining := *totalQty
		p.RemainingQty = &remaining
	}
	return p, nil
}

// IsDisabled reports whether the promotion was disabled at or before now
func (p *Promotion) IsDisabled(now time.Time) bool {
	return p.DisabledAt != nil && !p.DisabledAt.After(now)
}

// IsWithinWindow reports whether now falls inside [StartDate, EndDate]
func (p *Promotion) IsWithinWindow(now time.Time) bool {
	return !now.Before(p.StartDate) && !now.After(p.EndDate)
}

// IsClaimable reports whether new claims are currently accepted
func (p *Promotion) IsClaimable(now time.Time) bool {
	if p.IsDisabled(now) || !p.IsWithinWindow(now) {
		return false
	}
	if p.RemainingQty != nil && *p.RemainingQty <= 0 {
		return false
	}
	return true
}

// ConsumeQuantity decrements the remaining claim quantity. Unlimited
// promotions (nil RemainingQty) are unaffected.
func (p *Promotion) ConsumeQuantity() error {
	if p.RemainingQty == nil {
		return nil
	}
	if *p.RemainingQty <= 0 {
		return shared.NewDomainError("NO_REMAINING_QTY", fmt.Sprintf("Promotion %s has no remaining quantity", p.Code))
	}
	remaining := *p.RemainingQty - 1
	p.RemainingQty = &remaining
	p.Touch()
	return nil
}

// Disable turns the promotion off for future validation and claiming
func (p *Promotion) Disable(now time.Time) {
	if p.DisabledAt == nil {
		p.DisabledAt = &now
		p.Touch()
	}
}

// CalculateDiscount computes the discount this promotion grants against a
// base amount. A base below the minimum booking amount yields zero (the
// promotion simply does not reduce the charge; it is not an error). The
// result is rounded half-away-from-zero to the currency minor unit and never
// exceeds the base amount.
func (p *Promotion) CalculateDiscount(baseAmount decimal.Decimal) decimal.Decimal {
	if baseAmount.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	if baseAmount.LessThan(p.MinBookingAmount) {
		return decimal.Zero
	}

	var discount decimal.Decimal
	switch p.Type {
	case PromotionTypePercentage:
		discount = baseAmount.Mul(p.Value).Div(decimal.NewFromInt(100))
		if p.MaxDiscount != nil && discount.GreaterThan(*p.MaxDiscount) {
			discount = *p.MaxDiscount
		}
	case PromotionTypeFixedAmount:
		discount = p.Value
	default:
		return decimal.Zero
	}

	if discount.GreaterThan(baseAmount) {
		discount = baseAmount
	}
	// decimal.Round rounds half away from zero
	return discount.Round(2)
}
