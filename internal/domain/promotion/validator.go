package promotion

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/hotel/backend/internal/domain/shared"
)

// ApplicationTarget classifies what a promotion application points at
type ApplicationTarget string

const (
	ApplicationTargetRoom        ApplicationTarget = "ROOM"
	ApplicationTargetService     ApplicationTarget = "SERVICE"
	ApplicationTargetTransaction ApplicationTarget = "TRANSACTION"
)

// Application is one claimed promotion the caller wants applied to a payment.
// A room or service ID narrows the discount to that allocation line; with
// neither set the discount applies at transaction level.
type Application struct {
	CustomerPromotionID uuid.UUID
	BookingRoomID       *uuid.UUID
	ServiceUsageID      *uuid.UUID
}

// Target resolves the application's target category from which IDs are set
func (a Application) Target() ApplicationTarget {
	switch {
	case a.BookingRoomID != nil:
		return ApplicationTargetRoom
	case a.ServiceUsageID != nil:
		return ApplicationTargetService
	default:
		return ApplicationTargetTransaction
	}
}

// matchesScope reports whether a promotion scope admits the target category.
// ALL admits anything; ROOM and SERVICE require their own category.
func matchesScope(scope PromotionScope, target ApplicationTarget) bool {
	switch scope {
	case PromotionScopeAll:
		return true
	case PromotionScopeRoom:
		return target == ApplicationTargetRoom
	case PromotionScopeService:
		return target == ApplicationTargetService
	}
	return false
}

// ValidateApplication checks a claimed promotion's eligibility against its
// application before it may be applied. Validation across a payment's
// application list is all-or-nothing: the caller aborts on the first error.
func ValidateApplication(app Application, claim *CustomerPromotion, promo *Promotion, now time.Time) error {
	if claim == nil || promo == nil {
		return shared.ErrNotFound
	}
	if !claim.IsAvailable() {
		return shared.NewDomainError("PROMOTION_NOT_AVAILABLE",
			fmt.Sprintf("Customer promotion is %s and cannot be applied", claim.Status))
	}
	if promo.IsDisabled(now) {
		return shared.NewDomainError("PROMOTION_DISABLED",
			fmt.Sprintf("Promotion %s is disabled", promo.Code))
	}
	if !promo.IsWithinWindow(now) {
		return shared.NewDomainError("PROMOTION_EXPIRED",
			fmt.Sprintf("Promotion %s is outside its active window", promo.Code))
	}
	if target := app.Target(); !matchesScope(promo.Scope, target) {
		return shared.NewDomainError("PROMOTION_SCOPE_MISMATCH",
			fmt.Sprintf("Promotion %s applies to %s charges only", promo.Code, allowedCategory(promo.Scope)))
	}
	return nil
}

func allowedCategory(scope PromotionScope) string {
	switch scope {
	case PromotionScopeRoom:
		return "room"
	case PromotionScopeService:
		return "service"
	default:
		return "any"
	}
}
