package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/hotel/backend/internal/domain/lodging"
)

// BookingModel is the persistence model for the Booking aggregate root.
type BookingModel struct {
	AggregateModel
	CustomerID  uuid.UUID             `gorm:"type:uuid;not null;index"`
	Status      lodging.BookingStatus `gorm:"type:varchar(20);not null;default:'PENDING';index"`
	TotalAmount decimal.Decimal       `gorm:"type:decimal(18,4);not null"`
	TotalPaid   decimal.Decimal       `gorm:"type:decimal(18,4);not null"`
	Balance     decimal.Decimal       `gorm:"type:decimal(18,4);not null"`
}

// TableName returns the table name for GORM
func (BookingModel) TableName() string {
	return "bookings"
}

// ToDomain converts the persistence model to a domain Booking entity.
func (m *BookingModel) ToDomain() *lodging.Booking {
	return &lodging.Booking{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		CustomerID:        m.CustomerID,
		Status:            m.Status,
		TotalAmount:       m.TotalAmount,
		TotalPaid:         m.TotalPaid,
		Balance:           m.Balance,
	}
}

// FromDomain populates the persistence model from a domain Booking entity.
func (m *BookingModel) FromDomain(b *lodging.Booking) {
	m.FromDomainAggregateRoot(b.BaseAggregateRoot)
	m.CustomerID = b.CustomerID
	m.Status = b.Status
	m.TotalAmount = b.TotalAmount
	m.TotalPaid = b.TotalPaid
	m.Balance = b.Balance
}

// BookingModelFromDomain creates a new persistence model from a domain Booking.
func BookingModelFromDomain(b *lodging.Booking) *BookingModel {
	m := &BookingModel{}
	m.FromDomain(b)
	return m
}

// BookingRoomModel is the persistence model for the BookingRoom aggregate root.
type BookingRoomModel struct {
	AggregateModel
	BookingID     uuid.UUID             `gorm:"type:uuid;not null;index"`
	RoomID        uuid.UUID             `gorm:"type:uuid;not null;index"`
	PricePerNight decimal.Decimal       `gorm:"type:decimal(18,4);not null"`
	Nights        int                   `gorm:"not null"`
	SubtotalRoom  decimal.Decimal       `gorm:"type:decimal(18,4);not null"`
	TotalAmount   decimal.Decimal       `gorm:"type:decimal(18,4);not null"`
	TotalPaid     decimal.Decimal       `gorm:"type:decimal(18,4);not null"`
	Balance       decimal.Decimal       `gorm:"type:decimal(18,4);not null"`
	Status        lodging.BookingStatus `gorm:"type:varchar(20);not null;default:'PENDING'"`
	RoomOrder     int                   `gorm:"not null;default:0"`
}

// TableName returns the table name for GORM
func (BookingRoomModel) TableName() string {
	return "booking_rooms"
}

// ToDomain converts the persistence model to a domain BookingRoom entity.
func (m *BookingRoomModel) ToDomain() *lodging.BookingRoom {
	return &lodging.BookingRoom{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		BookingID:         m.BookingID,
		RoomID:            m.RoomID,
		PricePerNight:     m.PricePerNight,
		Nights:            m.Nights,
		SubtotalRoom:      m.SubtotalRoom,
		TotalAmount:       m.TotalAmount,
		TotalPaid:         m.TotalPaid,
		Balance:           m.Balance,
		Status:            m.Status,
		RoomOrder:         m.RoomOrder,
	}
}

// FromDomain populates the persistence model from a domain BookingRoom entity.
func (m *BookingRoomModel) FromDomain(r *lodging.BookingRoom) {
	m.FromDomainAggregateRoot(r.BaseAggregateRoot)
	m.BookingID = r.BookingID
	m.RoomID = r.RoomID
	m.PricePerNight = r.PricePerNight
	m.Nights = r.Nights
	m.SubtotalRoom = r.SubtotalRoom
	m.TotalAmount = r.TotalAmount
	m.TotalPaid = r.TotalPaid
	m.Balance = r.Balance
	m.Status = r.Status
	m.RoomOrder = r.RoomOrder
}

// BookingRoomModelFromDomain creates a new persistence model from a domain BookingRoom.
func BookingRoomModelFromDomain(r *lodging.BookingRoom) *BookingRoomModel {
	m := &BookingRoomModel{}
	m.FromDomain(r)
	return m
}

// ServiceUsageModel is the persistence model for the ServiceUsage aggregate root.
type ServiceUsageModel struct {
	AggregateModel
	BookingID     *uuid.UUID                 `gorm:"type:uuid;index"`
	BookingRoomID *uuid.UUID                 `gorm:"type:uuid;index"`
	ServiceID     uuid.UUID                  `gorm:"type:uuid;not null;index"`
	Quantity      int                        `gorm:"not null"`
	UnitPrice     decimal.Decimal            `gorm:"type:decimal(18,4);not null"`
	TotalPrice    decimal.Decimal            `gorm:"type:decimal(18,4);not null"`
	TotalPaid     decimal.Decimal            `gorm:"type:decimal(18,4);not null"`
	Status        lodging.ServiceUsageStatus `gorm:"type:varchar(20);not null;default:'PENDING';index"`
	CompletedAt   *time.Time
	CancelledAt   *time.Time
}

// TableName returns the table name for GORM
func (ServiceUsageModel) TableName() string {
	return "service_usages"
}

// ToDomain converts the persistence model to a domain ServiceUsage entity.
func (m *ServiceUsageModel) ToDomain() *lodging.ServiceUsage {
	return &lodging.ServiceUsage{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		BookingID:         m.BookingID,
		BookingRoomID:     m.BookingRoomID,
		ServiceID:         m.ServiceID,
		Quantity:          m.Quantity,
		UnitPrice:         m.UnitPrice,
		TotalPrice:        m.TotalPrice,
		TotalPaid:         m.TotalPaid,
		Status:            m.Status,
		CompletedAt:       m.CompletedAt,
		CancelledAt:       m.CancelledAt,
	}
}

// FromDomain populates the persistence model from a domain ServiceUsage entity.
func (m *ServiceUsageModel) FromDomain(u *lodging.ServiceUsage) {
	m.FromDomainAggregateRoot(u.BaseAggregateRoot)
	m.BookingID = u.BookingID
	m.BookingRoomID = u.BookingRoomID
	m.ServiceID = u.ServiceID
	m.Quantity = u.Quantity
	m.UnitPrice = u.UnitPrice
	m.TotalPrice = u.TotalPrice
	m.TotalPaid = u.TotalPaid
	m.Status = u.Status
	m.CompletedAt = u.CompletedAt
	m.CancelledAt = u.CancelledAt
}

// ServiceUsageModelFromDomain creates a new persistence model from a domain ServiceUsage.
func ServiceUsageModelFromDomain(u *lodging.ServiceUsage) *ServiceUsageModel {
	m := &ServiceUsageModel{}
	m.FromDomain(u)
	return m
}
