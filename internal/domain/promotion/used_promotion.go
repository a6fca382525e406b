package promotion

import (
	"github.com/google/uuid"
	"github.com/hotel/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// UsedPromotion is the ledger record of one discount actually applied to an
// allocation line. It is never mutated after creation.
type UsedPromotion struct {
	shared.BaseEntity
	PromotionID         uuid.UUID       `json:"promotion_id"`
	DiscountAmount      decimal.Decimal `json:"discount_amount"`
	TransactionDetailID uuid.UUID       `json:"transaction_detail_id"`
	TransactionID       *uuid.UUID      `json:"transaction_id"`
}

// NewUsedPromotion records a discount application
func NewUsedPromotion(promotionID uuid.UUID, discountAmount decimal.Decimal, transactionDetailID uuid.UUID, transactionID *uuid.UUID) (*UsedPromotion, error) {
	if promotionID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PROMOTION", "Promotion ID cannot be empty")
	}
	if transactionDetailID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_DETAIL", "Transaction detail ID cannot be empty")
	}
	if discountAmount.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Discount amount must be positive")
	}
	return &UsedPromotion{
		BaseEntity:          shared.NewBaseEntity(),
		PromotionID:         promotionID,
		DiscountAmount:      discountAmount,
		TransactionDetailID: transactionDetailID,
		TransactionID:       transactionID,
	}, nil
}
