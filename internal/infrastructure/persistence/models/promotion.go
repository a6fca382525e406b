package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/hotel/backend/internal/domain/promotion"
)

// PromotionModel is the persistence model for the Promotion aggregate root.
type PromotionModel struct {
	AggregateModel
	Code             string                    `gorm:"type:varchar(50);not null;uniqueIndex"`
	Type             promotion.PromotionType   `gorm:"type:varchar(20);not null"`
	Scope            promotion.PromotionScope  `gorm:"type:varchar(20);not null"`
	Value            decimal.Decimal           `gorm:"type:decimal(18,4);not null"`
	MaxDiscount      *decimal.Decimal          `gorm:"type:decimal(18,4)"`
	MinBookingAmount decimal.Decimal           `gorm:"type:decimal(18,4);not null;default:0"`
	TotalQty         *int
	RemainingQty     *int
	PerCustomerLimit int       `gorm:"not null;default:1"`
	StartDate        time.Time `gorm:"not null;index"`
	EndDate          time.Time `gorm:"not null;index"`
	DisabledAt       *time.Time
}

// TableName returns the table name for GORM
func (PromotionModel) TableName() string {
	return "promotions"
}

// ToDomain converts the persistence model to a domain Promotion entity.
func (m *PromotionModel) ToDomain() *promotion.Promotion {
	return &promotion.Promotion{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		Code:              m.Code,
		Type:              m.Type,
		Scope:             m.Scope,
		Value:             m.Value,
		MaxDiscount:       m.MaxDiscount,
		MinBookingAmount:  m.MinBookingAmount,
		TotalQty:          m.TotalQty,
		RemainingQty:      m.RemainingQty,
		PerCustomerLimit:  m.PerCustomerLimit,
		StartDate:         m.StartDate,
		EndDate:           m.EndDate,
		DisabledAt:        m.DisabledAt,
	}
}

// FromDomain populates the persistence model from a domain Promotion entity.
func (m *PromotionModel) FromDomain(p *promotion.Promotion) {
	m.FromDomainAggregateRoot(p.BaseAggregateRoot)
	m.Code = p.Code
	m.Type = p.Type
	m.Scope = p.Scope
	m.Value = p.Value
	m.MaxDiscount = p.MaxDiscount
	m.MinBookingAmount = p.MinBookingAmount
	m.TotalQty = p.TotalQty
	m.RemainingQty = p.RemainingQty
	m.PerCustomerLimit = p.PerCustomerLimit
	m.StartDate = p.StartDate
	m.EndDate = p.EndDate
	m.DisabledAt = p.DisabledAt
}

// PromotionModelFromDomain creates a new persistence model from a domain Promotion.
func PromotionModelFromDomain(p *promotion.Promotion) *PromotionModel {
	m := &PromotionModel{}
	m.FromDomain(p)
	return m
}

// CustomerPromotionModel is the persistence model for claimed promotions.
type CustomerPromotionModel struct {
	AggregateModel
	CustomerID          uuid.UUID                         `gorm:"type:uuid;not null;index:idx_customer_promotion"`
	PromotionID         uuid.UUID                         `gorm:"type:uuid;not null;index:idx_customer_promotion"`
	Status              promotion.CustomerPromotionStatus `gorm:"type:varchar(20);not null;default:'AVAILABLE';index"`
	ClaimedAt           time.Time                         `gorm:"not null"`
	UsedAt              *time.Time
	TransactionDetailID *uuid.UUID `gorm:"type:uuid"`
}

// TableName returns the table name for GORM
func (CustomerPromotionModel) TableName() string {
	return "customer_promotions"
}

// ToDomain converts the persistence model to a domain CustomerPromotion entity.
func (m *CustomerPromotionModel) ToDomain() *promotion.CustomerPromotion {
	return &promotion.CustomerPromotion{
		BaseAggregateRoot:   m.ToDomainAggregateRoot(),
		CustomerID:          m.CustomerID,
		PromotionID:         m.PromotionID,
		Status:              m.Status,
		ClaimedAt:           m.ClaimedAt,
		UsedAt:              m.UsedAt,
		TransactionDetailID: m.TransactionDetailID,
	}
}

// FromDomain populates the persistence model from a domain CustomerPromotion entity.
func (m *CustomerPromotionModel) FromDomain(cp *promotion.CustomerPromotion) {
	m.FromDomainAggregateRoot(cp.BaseAggregateRoot)
	m.CustomerID = cp.CustomerID
	m.PromotionID = cp.PromotionID
	m.Status = cp.Status
	m.ClaimedAt = cp.ClaimedAt
	m.UsedAt = cp.UsedAt
	m.TransactionDetailID = cp.TransactionDetailID
}

// CustomerPromotionModelFromDomain creates a new persistence model from a domain CustomerPromotion.
func CustomerPromotionModelFromDomain(cp *promotion.CustomerPromotion) *CustomerPromotionModel {
	m := &CustomerPromotionModel{}
	m.FromDomain(cp)
	return m
}

// UsedPromotionModel is the persistence model for the discount ledger.
type UsedPromotionModel struct {
	BaseModel
	PromotionID         uuid.UUID       `gorm:"type:uuid;not null;index"`
	DiscountAmount      decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	TransactionDetailID uuid.UUID       `gorm:"type:uuid;not null;index"`
	TransactionID       *uuid.UUID      `gorm:"type:uuid;index"`
}

// TableName returns the table name for GORM
func (UsedPromotionModel) TableName() string {
	return "used_promotions"
}

// ToDomain converts the persistence model to a domain UsedPromotion entity.
func (m *UsedPromotionModel) ToDomain() *promotion.UsedPromotion {
	return &promotion.UsedPromotion{
		BaseEntity:          m.BaseModel.ToDomain(),
		PromotionID:         m.PromotionID,
		DiscountAmount:      m.DiscountAmount,
		TransactionDetailID: m.TransactionDetailID,
		TransactionID:       m.TransactionID,
	}
}

// FromDomain populates the persistence model from a domain UsedPromotion entity.
func (m *UsedPromotionModel) FromDomain(up *promotion.UsedPromotion) {
	m.FromDomainBaseEntity(up.BaseEntity)
	m.PromotionID = up.PromotionID
	m.DiscountAmount = up.DiscountAmount
	m.TransactionDetailID = up.TransactionDetailID
	m.TransactionID = up.TransactionID
}

// UsedPromotionModelFromDomain creates a new persistence model from a domain UsedPromotion.
func UsedPromotionModelFromDomain(up *promotion.UsedPromotion) *UsedPromotionModel {
	m := &UsedPromotionModel{}
	m.FromDomain(up)
	return m
}
