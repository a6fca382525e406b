package lodging

import (
	"context"

	"github.com/google/uuid"

	"github.com/hotel/backend/internal/domain/billing"
	"github.com/hotel/backend/internal/domain/lodging"
)

// BookingService serves booking snapshots: the booking row with its rooms and
// their service usages, the same tree the payment engine settles against.
type BookingService struct {
	ledger billing.Ledger
}

// NewBookingService creates a new BookingService
func NewBookingService(ledger billing.Ledger) *BookingService {
	return &BookingService{ledger: ledger}
}

// BookingSnapshot is the read model of a booking's charge tree.
type BookingSnapshot struct {
	Booking       *lodging.Booking       `json:"booking"`
	Rooms         []lodging.BookingRoom  `json:"rooms"`
	ServiceUsages []lodging.ServiceUsage `json:"service_usages"`
}

// GetBooking loads a booking with its rooms and non-cancelled service usages.
func (s *BookingService) GetBooking(ctx context.Context, id uuid.UUID) (*BookingSnapshot, error) {
	repos := s.ledger.Repos()

	booking, err := repos.Bookings.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	rooms, err := repos.BookingRooms.FindByBooking(ctx, id)
	if err != nil {
		return nil, err
	}
	usages, err := repos.ServiceUsages.FindByBooking(ctx, id)
	if err != nil {
		return nil, err
	}

	return &BookingSnapshot{
		Booking:       booking,
		Rooms:         rooms,
		ServiceUsages: usages,
	}, nil
}
