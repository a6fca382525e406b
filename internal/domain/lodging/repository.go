package lodging

import (
	"context"

	"github.com/google/uuid"
	"github.com/hotel/backend/internal/domain/shared"
)

// BookingRepository defines the interface for booking persistence
type BookingRepository interface {
	// FindByID finds a booking by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Booking, error)

	// FindByCustomer finds bookings for a customer
	FindByCustomer(ctx context.Context, customerID uuid.UUID, filter shared.Filter) ([]Booking, error)

	// Save creates or updates a booking
	Save(ctx context.Context, booking *Booking) error

	// SaveWithLock saves with optimistic locking (version check)
	SaveWithLock(ctx context.Context, booking *Booking) error
}

// BookingRoomRepository defines the interface for booking room persistence
type BookingRoomRepository interface {
	// FindByID finds a booking room by ID
	FindByID(ctx context.Context, id uuid.UUID) (*BookingRoom, error)

	// FindByBooking finds all rooms of a booking in room order
	FindByBooking(ctx context.Context, bookingID uuid.UUID) ([]BookingRoom, error)

	// FindByIDs finds the given rooms; the result carries only the rows found
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]BookingRoom, error)

	// Save creates or updates a booking room
	Save(ctx context.Context, room *BookingRoom) error

	// SaveWithLock saves with optimistic locking (version check)
	SaveWithLock(ctx context.Context, room *BookingRoom) error
}

// ServiceUsageRepository defines the interface for service usage persistence
type ServiceUsageRepository interface {
	// FindByID finds a service usage by ID
	FindByID(ctx context.Context, id uuid.UUID) (*ServiceUsage, error)

	// FindByBookingRoom finds the non-cancelled usages of a room in creation order
	FindByBookingRoom(ctx context.Context, bookingRoomID uuid.UUID) ([]ServiceUsage, error)

	// FindByBooking finds the non-cancelled usages of a booking in creation order
	FindByBooking(ctx context.Context, bookingID uuid.UUID) ([]ServiceUsage, error)

	// Save creates or updates a service usage
	Save(ctx context.Context, usage *ServiceUsage) error

	// SaveWithLock saves with optimistic locking (version check)
	SaveWithLock(ctx context.Context, usage *ServiceUsage) error
}
