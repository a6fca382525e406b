package billing

import (
	"github.com/shopspring/decimal"

	"github.com/hotel/backend/internal/domain/shared"
)

const (
	EventTypeTransactionCompleted = "billing.transaction.completed"
)

// TransactionCompletedEvent is emitted when a payment settles.
type TransactionCompletedEvent struct {
	shared.BaseDomainEvent
	Type           TransactionType `json:"type"`
	Method         string          `json:"method"`
	BaseAmount     decimal.Decimal `json:"base_amount"`
	DiscountAmount decimal.Decimal `json:"discount_amount"`
	Amount         decimal.Decimal `json:"amount"`
}

func NewTransactionCompletedEvent(tx *Transaction) *TransactionCompletedEvent {
	return &TransactionCompletedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeTransactionCompleted, "Transaction", tx.ID),
		Type:            tx.Type,
		Method:          tx.Method,
		BaseAmount:      tx.BaseAmount,
		DiscountAmount:  tx.DiscountAmount,
		Amount:          tx.Amount,
	}
}
