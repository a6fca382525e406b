package billing

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/hotel/backend/internal/domain/shared"
)

// TransactionType classifies what a payment settles.
type TransactionType string

const (
	TransactionTypeDeposit       TransactionType = "DEPOSIT"
	TransactionTypeRoomCharge    TransactionType = "ROOM_CHARGE"
	TransactionTypeServiceCharge TransactionType = "SERVICE_CHARGE"
	TransactionTypeRefund        TransactionType = "REFUND"
	TransactionTypeAdjustment    TransactionType = "ADJUSTMENT"
)

func (t TransactionType) IsValid() bool {
	switch t {
	case TransactionTypeDeposit, TransactionTypeRoomCharge, TransactionTypeServiceCharge,
		TransactionTypeRefund, TransactionTypeAdjustment:
		return true
	}
	return false
}

func (t TransactionType) String() string {
	return string(t)
}

// TransactionStatus is the settlement state of a transaction. Payments are
// settled synchronously, so new transactions are created COMPLETED.
type TransactionStatus string

const (
	TransactionStatusCompleted TransactionStatus = "COMPLETED"
	TransactionStatusVoided    TransactionStatus = "VOIDED"
)

func (s TransactionStatus) IsValid() bool {
	switch s {
	case TransactionStatusCompleted, TransactionStatusVoided:
		return true
	}
	return false
}

func (s TransactionStatus) String() string {
	return string(s)
}

// Transaction is the header row of a settled payment. Amount is the net the
// customer actually paid: BaseAmount minus DiscountAmount.
type Transaction struct {
	shared.BaseAggregateRoot
	BookingID      *uuid.UUID        `json:"booking_id" gorm:"type:uuid;index"`
	Type           TransactionType   `json:"type" gorm:"type:varchar(30);not null"`
	Status         TransactionStatus `json:"status" gorm:"type:varchar(20);not null"`
	Method         string            `json:"method" gorm:"type:varchar(30);not null"`
	BaseAmount     decimal.Decimal   `json:"base_amount" gorm:"type:decimal(18,4);not null"`
	DiscountAmount decimal.Decimal   `json:"discount_amount" gorm:"type:decimal(18,4);not null"`
	Amount         decimal.Decimal   `json:"amount" gorm:"type:decimal(18,4);not null"`
	ProcessedBy    uuid.UUID         `json:"processed_by" gorm:"type:uuid;not null"`
	OccurredAt     time.Time         `json:"occurred_at" gorm:"not null"`
}

// NewTransaction builds a completed transaction header from aggregated
// charge-line totals.
func NewTransaction(bookingID *uuid.UUID, txType TransactionType, method string, totals Totals, processedBy uuid.UUID) (*Transaction, error) {
	if !txType.IsValid() {
		return nil, shared.NewDomainError("INVALID_TRANSACTION_TYPE", "invalid transaction type: "+string(txType))
	}
	if method == "" {
		return nil, shared.NewDomainError("INVALID_PAYMENT_METHOD", "payment method is required")
	}
	if totals.Amount.IsNegative() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "transaction amount cannot be negative")
	}

	tx := &Transaction{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		BookingID:         bookingID,
		Type:              txType,
		Status:            TransactionStatusCompleted,
		Method:            method,
		BaseAmount:        totals.Base,
		DiscountAmount:    totals.Discount,
		Amount:            totals.Amount,
		ProcessedBy:       processedBy,
		OccurredAt:        time.Now(),
	}
	tx.AddDomainEvent(NewTransactionCompletedEvent(tx))
	return tx, nil
}

// TransactionDetail is one allocation line of a transaction. Exactly one of
// BookingRoomID and ServiceUsageID is set. Standalone guest-service
// settlements have no parent transaction, so TransactionID is nullable.
type TransactionDetail struct {
	shared.BaseEntity
	TransactionID  *uuid.UUID      `json:"transaction_id" gorm:"type:uuid;index"`
	BookingRoomID  *uuid.UUID      `json:"booking_room_id" gorm:"type:uuid;index"`
	ServiceUsageID *uuid.UUID      `json:"service_usage_id" gorm:"type:uuid;index"`
	BaseAmount     decimal.Decimal `json:"base_amount" gorm:"type:decimal(18,4);not null"`
	DiscountAmount decimal.Decimal `json:"discount_amount" gorm:"type:decimal(18,4);not null"`
	Amount         decimal.Decimal `json:"amount" gorm:"type:decimal(18,4);not null"`
}

// NewTransactionDetail materializes a charge line as a persistent allocation
// row under the given transaction header.
func NewTransactionDetail(transactionID *uuid.UUID, line ChargeLine) (*TransactionDetail, error) {
	if err := line.Validate(); err != nil {
		return nil, err
	}
	return &TransactionDetail{
		BaseEntity:     shared.NewBaseEntity(),
		TransactionID:  transactionID,
		BookingRoomID:  line.BookingRoomID,
		ServiceUsageID: line.ServiceUsageID,
		BaseAmount:     line.BaseAmount,
		DiscountAmount: line.DiscountAmount,
		Amount:         line.Amount(),
	}, nil
}
