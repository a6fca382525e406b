package lodging

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/hotel/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// ServiceUsageStatus represents the lifecycle state of a service usage
type ServiceUsageStatus string

const (
	ServiceUsageStatusPending     ServiceUsageStatus = "PENDING"     // Ordered, not yet handed over
	ServiceUsageStatusTransferred ServiceUsageStatus = "TRANSFERRED" // Delivered to the guest
	ServiceUsageStatusCompleted   ServiceUsageStatus = "COMPLETED"   // Fully paid
	ServiceUsageStatusCancelled   ServiceUsageStatus = "CANCELLED"
)

// IsValid checks if the status is a valid ServiceUsageStatus
func (s ServiceUsageStatus) IsValid() bool {
	switch s {
	case ServiceUsageStatusPending, ServiceUsageStatusTransferred,
		ServiceUsageStatusCompleted, ServiceUsageStatusCancelled:
		return true
	}
	return false
}

// String returns the string representation of ServiceUsageStatus
func (s ServiceUsageStatus) String() string {
	return string(s)
}

// IsTerminal returns true once no further status change is allowed
func (s ServiceUsageStatus) IsTerminal() bool {
	return s == ServiceUsageStatusCompleted || s == ServiceUsageStatusCancelled
}

// CanTransitionTo reports whether the status machine allows moving to next.
// COMPLETED and CANCELLED are terminal, including CANCELLED -> CANCELLED.
func (s ServiceUsageStatus) CanTransitionTo(next ServiceUsageStatus) bool {
	switch s {
	case ServiceUsageStatusPending:
		return next == ServiceUsageStatusTransferred || next == ServiceUsageStatusCancelled
	case ServiceUsageStatusTransferred:
		return next == ServiceUsageStatusCompleted || next == ServiceUsageStatusCancelled
	}
	return false
}

// ServiceTarget classifies who a service usage is billed to
type ServiceTarget string

const (
	ServiceTargetRoom    ServiceTarget = "ROOM"    // attached to a booking room
	ServiceTargetBooking ServiceTarget = "BOOKING" // booking-level, no specific room
	ServiceTargetGuest   ServiceTarget = "GUEST"   // standalone walk-in service
)

// ServiceUsage represents a billable instance of a hotel service, optionally
// tied to a booking room or a booking, or standalone ("guest" service).
type ServiceUsage struct {
	shared.BaseAggregateRoot
	BookingID     *uuid.UUID         `json:"booking_id"`
	BookingRoomID *uuid.UUID         `json:"booking_room_id"`
	ServiceID     uuid.UUID          `json:"service_id"`
	Quantity      int                `json:"quantity"`
	UnitPrice     decimal.Decimal    `json:"unit_price"`
	TotalPrice    decimal.Decimal    `json:"total_price"`
	TotalPaid     decimal.Decimal    `json:"total_paid"`
	Status        ServiceUsageStatus `json:"status"`
	CompletedAt   *time.Time         `json:"completed_at"`
	CancelledAt   *time.Time         `json:"cancelled_at"`
}

// NewServiceUsage creates a pending service usage. A room-attached usage must
// also carry its booking ID; a usage with neither ID is a guest service.
func NewServiceUsage(serviceID uuid.UUID, bookingID, bookingRoomID *uuid.UUID, quantity int, unitPrice decimal.Decimal) (*ServiceUsage, error) {
	if serviceID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_SERVICE", "Service ID cannot be empty")
	}
	if quantity <= 0 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	if unitPrice.IsNegative() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Unit price cannot be negative")
	}
	if bookingRoomID != nil && bookingID == nil {
		return nil, shared.NewDomainError("INVALID_TARGET", "Room-attached service usage requires a booking ID")
	}

	return &ServiceUsage{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		BookingID:         bookingID,
		BookingRoomID:     bookingRoomID,
		ServiceID:         serviceID,
		Quantity:          quantity,
		UnitPrice:         unitPrice,
		TotalPrice:        unitPrice.Mul(decimal.NewFromInt(int64(quantity))),
		TotalPaid:         decimal.Zero,
		Status:            ServiceUsageStatusPending,
	}, nil
}

// Target classifies the usage by which owner IDs are present
func (u *ServiceUsage) Target() ServiceTarget {
	switch {
	case u.BookingRoomID != nil:
		return ServiceTargetRoom
	case u.BookingID != nil:
		return ServiceTargetBooking
	default:
		return ServiceTargetGuest
	}
}

// Balance returns the amount still owed for this usage
func (u *ServiceUsage) Balance() decimal.Decimal {
	return u.TotalPrice.Sub(u.TotalPaid)
}

// IsFullyPaid returns true once nothing is owed
func (u *ServiceUsage) IsFullyPaid() bool {
	return u.Balance().LessThanOrEqual(decimal.Zero)
}

// UpdateQuantity edits the quantity and recomputes the total price.
// Quantity may be edited only while the usage is PENDING.
func (u *ServiceUsage) UpdateQuantity(quantity int) error {
	if u.Status != ServiceUsageStatusPending {
		return shared.NewDomainError("INVALID_STATE",
			fmt.Sprintf("Cannot edit quantity of a %s service usage", u.Status))
	}
	if quantity <= 0 {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	u.Quantity = quantity
	u.TotalPrice = u.UnitPrice.Mul(decimal.NewFromInt(int64(quantity)))
	u.Touch()
	return nil
}

// TransitionTo moves the usage through its status machine
func (u *ServiceUsage) TransitionTo(next ServiceUsageStatus) error {
	if !next.IsValid() {
		return shared.NewDomainError("INVALID_STATUS", fmt.Sprintf("Unknown service usage status %s", next))
	}
	if !u.Status.CanTransitionTo(next) {
		return shared.NewDomainError("INVALID_STATE",
			fmt.Sprintf("Cannot transition service usage from %s to %s", u.Status, next))
	}
	switch next {
	case ServiceUsageStatusCompleted:
		now := time.Now()
		u.CompletedAt = &now
	case ServiceUsageStatusCancelled:
		now := time.Now()
		u.CancelledAt = &now
	}
	u.Status = next
	u.Touch()
	return nil
}

// ApplyPayment records a payment against the usage and auto-completes it the
// instant the total price is covered, regardless of the current status. A
// service paid straight from PENDING completes without passing TRANSFERRED.
func (u *ServiceUsage) ApplyPayment(amount decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("INVALID_AMOUNT", "Payment amount must be positive")
	}
	if amount.GreaterThan(u.Balance()) {
		return shared.NewDomainError("EXCEEDS_BALANCE",
			fmt.Sprintf("Payment amount %s exceeds service balance %s", amount.StringFixed(2), u.Balance().StringFixed(2)))
	}

	u.TotalPaid = u.TotalPaid.Add(amount)
	if u.TotalPaid.GreaterThanOrEqual(u.TotalPrice) && u.Status != ServiceUsageStatusCompleted {
		now := time.Now()
		u.Status = ServiceUsageStatusCompleted
		u.CompletedAt = &now
	}
	u.Touch()
	return nil
}

// Cancel voids the outstanding charge. The total price is zeroed so nothing
// remains billable; payments already recorded are not reversed.
func (u *ServiceUsage) Cancel() error {
	if u.Status.IsTerminal() {
		return shared.NewDomainError("INVALID_STATE",
			fmt.Sprintf("Cannot cancel a %s service usage", u.Status))
	}
	now := time.Now()
	u.Status = ServiceUsageStatusCancelled
	u.CancelledAt = &now
	u.TotalPrice = decimal.Zero
	u.Touch()
	return nil
}

// IsCancelled returns true if the usage was cancelled
func (u *ServiceUsage) IsCancelled() bool {
	return u.Status == ServiceUsageStatusCancelled
}
