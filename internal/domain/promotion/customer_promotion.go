package promotion

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/hotel/backend/internal/domain/shared"
)

// CustomerPromotionStatus represents the state of a claimed promotion
type CustomerPromotionStatus string

const (
	CustomerPromotionStatusAvailable CustomerPromotionStatus = "AVAILABLE"
	CustomerPromotionStatusUsed      CustomerPromotionStatus = "USED"
	CustomerPromotionStatusExpired   CustomerPromotionStatus = "EXPIRED"
)

// IsValid checks if the status is a valid CustomerPromotionStatus
func (s CustomerPromotionStatus) IsValid() bool {
	switch s {
	case CustomerPromotionStatusAvailable, CustomerPromotionStatusUsed, CustomerPromotionStatusExpired:
		return true
	}
	return false
}

// String returns the string representation of CustomerPromotionStatus
func (s CustomerPromotionStatus) String() string {
	return string(s)
}

// IsTerminal returns true once the claim can no longer change state
func (s CustomerPromotionStatus) IsTerminal() bool {
	return s == CustomerPromotionStatusUsed || s == CustomerPromotionStatusExpired
}

// CustomerPromotion represents one customer's claimed instance of a
// promotion, consumable exactly once.
type CustomerPromotion struct {
	shared.BaseAggregateRoot
	CustomerID          uuid.UUID               `json:"customer_id"`
	PromotionID         uuid.UUID               `json:"promotion_id"`
	Status              CustomerPromotionStatus `json:"status"`
	ClaimedAt           time.Time               `json:"claimed_at"`
	UsedAt              *time.Time              `json:"used_at"`
	TransactionDetailID *uuid.UUID              `json:"transaction_detail_id"`
}

// NewCustomerPromotion records a successful claim
func NewCustomerPromotion(customerID, promotionID uuid.UUID) (*CustomerPromotion, error) {
	if customerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CUSTOMER", "Customer ID cannot be empty")
	}
	if promotionID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PROMOTION", "Promotion ID cannot be empty")
	}
	return &CustomerPromotion{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		CustomerID:        customerID,
		PromotionID:       promotionID,
		Status:            CustomerPromotionStatusAvailable,
		ClaimedAt:         time.Now(),
	}, nil
}

// IsAvailable returns true while the claim can still be applied
func (cp *CustomerPromotion) IsAvailable() bool {
	return cp.Status == CustomerPromotionStatusAvailable
}

// MarkUsed consumes the claim, anchoring it to the allocation line that
// received the discount
func (cp *CustomerPromotion) MarkUsed(transactionDetailID uuid.UUID) error {
	if cp.Status != CustomerPromotionStatusAvailable {
		return shared.NewDomainError("INVALID_STATE",
			fmt.Sprintf("Cannot use customer promotion in %s status", cp.Status))
	}
	now := time.Now()
	cp.Status = CustomerPromotionStatusUsed
	cp.UsedAt = &now
	cp.TransactionDetailID = &transactionDetailID
	cp.Touch()
	return nil
}

// MarkExpired transitions an available claim to EXPIRED
func (cp *CustomerPromotion) MarkExpired() error {
	if cp.Status != CustomerPromotionStatusAvailable {
		return shared.NewDomainError("INVALID_STATE",
			fmt.Sprintf("Cannot expire customer promotion in %s status", cp.Status))
	}
	cp.Status = CustomerPromotionStatusExpired
	cp.Touch()
	return nil
}
