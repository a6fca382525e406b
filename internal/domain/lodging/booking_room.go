package lodging

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/hotel/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// BookingRoom represents one room's allocation within a booking, carrying its
// own charge and payment state. It mirrors the subset of booking statuses that
// apply at room granularity.
type BookingRoom struct {
	shared.BaseAggregateRoot
	BookingID    uuid.UUID       `json:"booking_id"`
	RoomID       uuid.UUID       `json:"room_id"`
	PricePerNight decimal.Decimal `json:"price_per_night"`
	Nights       int             `json:"nights"`
	SubtotalRoom decimal.Decimal `json:"subtotal_room"` // room-only charge
	TotalAmount  decimal.Decimal `json:"total_amount"`
	TotalPaid    decimal.Decimal `json:"total_paid"`
	Balance      decimal.Decimal `json:"balance"`
	Status       BookingStatus   `json:"status"`
	RoomOrder    int             `json:"room_order"` // stable ordering within the booking
}

// NewBookingRoom creates a room allocation under a booking
func NewBookingRoom(bookingID, roomID uuid.UUID, pricePerNight decimal.Decimal, nights, order int) (*BookingRoom, error) {
	if bookingID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_BOOKING", "Booking ID cannot be empty")
	}
	if roomID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_ROOM", "Room ID cannot be empty")
	}
	if nights <= 0 {
		return nil, shared.NewDomainError("INVALID_NIGHTS", "Nights must be positive")
	}
	if pricePerNight.IsNegative() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Price per night cannot be negative")
	}

	subtotal := pricePerNight.Mul(decimal.NewFromInt(int64(nights)))
	return &BookingRoom{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		BookingID:         bookingID,
		RoomID:            roomID,
		PricePerNight:     pricePerNight,
		Nights:            nights,
		SubtotalRoom:      subtotal,
		TotalAmount:       subtotal,
		TotalPaid:         decimal.Zero,
		Balance:           subtotal,
		Status:            BookingStatusPending,
		RoomOrder:         order,
	}, nil
}

// HasOutstandingBalance returns true if the room still owes anything
func (r *BookingRoom) HasOutstandingBalance() bool {
	return r.Balance.GreaterThan(decimal.Zero)
}

// ApplyPayment records a payment against this room's balance.
// A payment never reduces the balance below zero.
func (r *BookingRoom) ApplyPayment(amount decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("INVALID_AMOUNT", "Payment amount must be positive")
	}
	if amount.GreaterThan(r.Balance) {
		return shared.NewDomainError("EXCEEDS_BALANCE",
			fmt.Sprintf("Payment amount %s exceeds room balance %s", amount.StringFixed(2), r.Balance.StringFixed(2)))
	}

	r.TotalPaid = r.TotalPaid.Add(amount)
	r.Balance = r.TotalAmount.Sub(r.TotalPaid)
	r.Touch()
	return nil
}

// Confirm moves a pending room to CONFIRMED; no-op when already confirmed
func (r *BookingRoom) Confirm() error {
	if r.Status == BookingStatusConfirmed {
		return nil
	}
	if !r.Status.CanTransitionTo(BookingStatusConfirmed) {
		return shared.NewDomainError("INVALID_STATE",
			fmt.Sprintf("Cannot confirm room in %s status", r.Status))
	}
	r.Status = BookingStatusConfirmed
	r.Touch()
	return nil
}

// IsPending returns true while the room awaits confirmation
func (r *BookingRoom) IsPending() bool {
	return r.Status == BookingStatusPending
}
