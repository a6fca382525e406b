package lodging

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/hotel/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "PENDING"    // Created, awaiting deposit
	BookingStatusConfirmed BookingStatus = "CONFIRMED"  // Deposit received
	BookingStatusCheckedIn BookingStatus = "CHECKED_IN" // Guest on premises
	BookingStatusCheckedOut BookingStatus = "CHECKED_OUT"
	BookingStatusCancelled  BookingStatus = "CANCELLED"
)

// IsValid checks if the status is a valid BookingStatus
func (s BookingStatus) IsValid() bool {
	switch s {
	case BookingStatusPending, BookingStatusConfirmed, BookingStatusCheckedIn,
		BookingStatusCheckedOut, BookingStatusCancelled:
		return true
	}
	return false
}

// String returns the string representation of BookingStatus
func (s BookingStatus) String() string {
	return string(s)
}

// IsTerminal returns true if the booking is in a terminal state
func (s BookingStatus) IsTerminal() bool {
	return s == BookingStatusCheckedOut || s == BookingStatusCancelled
}

// CanTransitionTo reports whether the status machine allows moving to next
func (s BookingStatus) CanTransitionTo(next BookingStatus) bool {
	switch s {
	case BookingStatusPending:
		return next == BookingStatusConfirmed || next == BookingStatusCancelled
	case BookingStatusConfirmed:
		return next == BookingStatusCheckedIn || next == BookingStatusCancelled
	case BookingStatusCheckedIn:
		return next == BookingStatusCheckedOut
	}
	return false
}

// Booking represents a guest's reservation aggregate root.
// It spans one or more rooms; monetary totals are always derived from the
// rooms rather than patched incrementally.
type Booking struct {
	shared.BaseAggregateRoot
	CustomerID  uuid.UUID       `json:"customer_id"`
	Status      BookingStatus   `json:"status"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	TotalPaid   decimal.Decimal `json:"total_paid"`
	Balance     decimal.Decimal `json:"balance"`
}

// NewBooking creates a new pending booking for a customer
func NewBooking(customerID uuid.UUID, totalAmount decimal.Decimal) (*Booking, error) {
	if customerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CUSTOMER", "Customer ID cannot be empty")
	}
	if totalAmount.IsNegative() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Booking total cannot be negative")
	}

	b := &Booking{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		CustomerID:        customerID,
		Status:            BookingStatusPending,
		TotalAmount:       totalAmount,
		TotalPaid:         decimal.Zero,
		Balance:           totalAmount,
	}

	b.AddDomainEvent(NewBookingCreatedEvent(b))

	return b, nil
}

// RecalculateTotals re-derives TotalPaid and Balance from the booking's rooms.
// TotalPaid is the sum of room payments; Balance is TotalAmount minus TotalPaid.
func (b *Booking) RecalculateTotals(rooms []BookingRoom) {
	paid := decimal.Zero
	for i := range rooms {
		paid = paid.Add(rooms[i].TotalPaid)
	}
	b.TotalPaid = paid
	b.Balance = b.TotalAmount.Sub(paid)
	b.Touch()

	if b.Balance.IsZero() && b.TotalAmount.IsPositive() {
		b.AddDomainEvent(NewBookingFullyPaidEvent(b))
	}
}

// TransitionTo moves the booking to the next status, enforcing the transition table
func (b *Booking) TransitionTo(next BookingStatus) error {
	if !next.IsValid() {
		return shared.NewDomainError("INVALID_STATUS", fmt.Sprintf("Unknown booking status %s", next))
	}
	if !b.Status.CanTransitionTo(next) {
		return shared.NewDomainError("INVALID_STATE",
			fmt.Sprintf("Cannot transition booking from %s to %s", b.Status, next))
	}
	b.Status = next
	b.Touch()
	return nil
}

// Confirm moves a pending booking to CONFIRMED. Deposit payments call this;
// confirming an already-confirmed booking is a no-op.
func (b *Booking) Confirm() error {
	if b.Status == BookingStatusConfirmed {
		return nil
	}
	if err := b.TransitionTo(BookingStatusConfirmed); err != nil {
		return err
	}
	b.AddDomainEvent(NewBookingConfirmedEvent(b))
	return nil
}

// IsCancelled returns true if the booking is cancelled
func (b *Booking) IsCancelled() bool {
	return b.Status == BookingStatusCancelled
}
