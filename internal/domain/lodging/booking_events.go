package lodging

import (
	"github.com/hotel/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Event type constants for the lodging domain
const (
	EventTypeBookingCreated   = "lodging.booking.created"
	EventTypeBookingConfirmed = "lodging.booking.confirmed"
	EventTypeBookingFullyPaid = "lodging.booking.fully_paid"
)

// BookingCreatedEvent is raised when a new booking is created
type BookingCreatedEvent struct {
	shared.BaseDomainEvent
	CustomerID  string          `json:"customer_id"`
	TotalAmount decimal.Decimal `json:"total_amount"`
}

// NewBookingCreatedEvent creates a BookingCreatedEvent
func NewBookingCreatedEvent(b *Booking) *BookingCreatedEvent {
	return &BookingCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeBookingCreated, "Booking", b.ID),
		CustomerID:      b.CustomerID.String(),
		TotalAmount:     b.TotalAmount,
	}
}

// BookingConfirmedEvent is raised when a deposit confirms a booking
type BookingConfirmedEvent struct {
	shared.BaseDomainEvent
	TotalPaid decimal.Decimal `json:"total_paid"`
}

// NewBookingConfirmedEvent creates a BookingConfirmedEvent
func NewBookingConfirmedEvent(b *Booking) *BookingConfirmedEvent {
	return &BookingConfirmedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeBookingConfirmed, "Booking", b.ID),
		TotalPaid:       b.TotalPaid,
	}
}

// BookingFullyPaidEvent is raised when the booking balance reaches zero
type BookingFullyPaidEvent struct {
	shared.BaseDomainEvent
	TotalAmount decimal.Decimal `json:"total_amount"`
}

// NewBookingFullyPaidEvent creates a BookingFullyPaidEvent
func NewBookingFullyPaidEvent(b *Booking) *BookingFullyPaidEvent {
	return &BookingFullyPaidEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeBookingFullyPaid, "Booking", b.ID),
		TotalAmount:     b.TotalAmount,
	}
}
