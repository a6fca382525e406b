package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/hotel/backend/internal/domain/billing"
)

// TransactionModel is the persistence model for the Transaction aggregate root.
type TransactionModel struct {
	AggregateModel
	BookingID      *uuid.UUID                `gorm:"type:uuid;index"`
	Type           billing.TransactionType   `gorm:"type:varchar(30);not null;index"`
	Status         billing.TransactionStatus `gorm:"type:varchar(20);not null;default:'COMPLETED'"`
	Method         string                    `gorm:"type:varchar(30);not null"`
	BaseAmount     decimal.Decimal           `gorm:"type:decimal(18,4);not null"`
	DiscountAmount decimal.Decimal           `gorm:"type:decimal(18,4);not null"`
	Amount         decimal.Decimal           `gorm:"type:decimal(18,4);not null"`
	ProcessedBy    uuid.UUID                 `gorm:"type:uuid;not null"`
	OccurredAt     time.Time                 `gorm:"not null;index"`
}

// TableName returns the table name for GORM
func (TransactionModel) TableName() string {
	return "transactions"
}

// ToDomain converts the persistence model to a domain Transaction entity.
func (m *TransactionModel) ToDomain() *billing.Transaction {
	return &billing.Transaction{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		BookingID:         m.BookingID,
		Type:              m.Type,
		Status:            m.Status,
		Method:            m.Method,
		BaseAmount:        m.BaseAmount,
		DiscountAmount:    m.DiscountAmount,
		Amount:            m.Amount,
		ProcessedBy:       m.ProcessedBy,
		OccurredAt:        m.OccurredAt,
	}
}

// FromDomain populates the persistence model from a domain Transaction entity.
func (m *TransactionModel) FromDomain(tx *billing.Transaction) {
	m.FromDomainAggregateRoot(tx.BaseAggregateRoot)
	m.BookingID = tx.BookingID
	m.Type = tx.Type
	m.Status = tx.Status
	m.Method = tx.Method
	m.BaseAmount = tx.BaseAmount
	m.DiscountAmount = tx.DiscountAmount
	m.Amount = tx.Amount
	m.ProcessedBy = tx.ProcessedBy
	m.OccurredAt = tx.OccurredAt
}

// TransactionModelFromDomain creates a new persistence model from a domain Transaction.
func TransactionModelFromDomain(tx *billing.Transaction) *TransactionModel {
	m := &TransactionModel{}
	m.FromDomain(tx)
	return m
}

// TransactionDetailModel is the persistence model for one allocation line.
type TransactionDetailModel struct {
	BaseModel
	TransactionID  *uuid.UUID      `gorm:"type:uuid;index"`
	BookingRoomID  *uuid.UUID      `gorm:"type:uuid;index"`
	ServiceUsageID *uuid.UUID      `gorm:"type:uuid;index"`
	BaseAmount     decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	DiscountAmount decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Amount         decimal.Decimal `gorm:"type:decimal(18,4);not null"`
}

// TableName returns the table name for GORM
func (TransactionDetailModel) TableName() string {
	return "transaction_details"
}

// ToDomain converts the persistence model to a domain TransactionDetail entity.
func (m *TransactionDetailModel) ToDomain() *billing.TransactionDetail {
	return &billing.TransactionDetail{
		BaseEntity:     m.BaseModel.ToDomain(),
		TransactionID:  m.TransactionID,
		BookingRoomID:  m.BookingRoomID,
		ServiceUsageID: m.ServiceUsageID,
		BaseAmount:     m.BaseAmount,
		DiscountAmount: m.DiscountAmount,
		Amount:         m.Amount,
	}
}

// FromDomain populates the persistence model from a domain TransactionDetail entity.
func (m *TransactionDetailModel) FromDomain(d *billing.TransactionDetail) {
	m.FromDomainBaseEntity(d.BaseEntity)
	m.TransactionID = d.TransactionID
	m.BookingRoomID = d.BookingRoomID
	m.ServiceUsageID = d.ServiceUsageID
	m.BaseAmount = d.BaseAmount
	m.DiscountAmount = d.DiscountAmount
	m.Amount = d.Amount
}

// TransactionDetailModelFromDomain creates a new persistence model from a domain TransactionDetail.
func TransactionDetailModelFromDomain(d *billing.TransactionDetail) *TransactionDetailModel {
	m := &TransactionDetailModel{}
	m.FromDomain(d)
	return m
}
