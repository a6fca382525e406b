package billing

import (
	"github.com/google/uuid"

	"github.com/hotel/backend/internal/domain/promotion"
	"github.com/hotel/backend/internal/domain/shared"
)

// ScenarioKind identifies which allocation path a payment request takes.
type ScenarioKind string

const (
	ScenarioFullBooking    ScenarioKind = "FULL_BOOKING"
	ScenarioSplitRoom      ScenarioKind = "SPLIT_ROOM"
	ScenarioBookingService ScenarioKind = "BOOKING_SERVICE"
	ScenarioGuestService   ScenarioKind = "GUEST_SERVICE"
)

func (k ScenarioKind) String() string {
	return string(k)
}

// PaymentRequest is the typed payload the engine is invoked with. The caller
// never supplies an amount; amounts are derived from outstanding balances.
type PaymentRequest struct {
	BookingID      *uuid.UUID
	BookingRoomIDs []uuid.UUID
	ServiceUsageID *uuid.UUID
	Type           TransactionType
	Method         string
	ProcessedBy    uuid.UUID
	Applications   []promotion.Application
}

// Scenario is the resolved routing decision for a payment request.
type Scenario struct {
	Kind           ScenarioKind
	BookingID      *uuid.UUID
	BookingRoomIDs []uuid.UUID
	ServiceUsageID *uuid.UUID
}

// ClassifyScenario routes a request by which identifiers it carries:
// bookingId alone is a full-booking payment, bookingId with room ids a
// split-room payment, bookingId with a service id a booking-service payment,
// and a service id alone a guest-service payment. Every other combination is
// rejected.
func ClassifyScenario(req PaymentRequest) (Scenario, error) {
	hasBooking := req.BookingID != nil
	hasRooms := len(req.BookingRoomIDs) > 0
	hasService := req.ServiceUsageID != nil

	switch {
	case hasBooking && !hasRooms && !hasService:
		return Scenario{Kind: ScenarioFullBooking, BookingID: req.BookingID}, nil
	case hasBooking && hasRooms && !hasService:
		if err := validateRoomIDs(req.BookingRoomIDs); err != nil {
			return Scenario{}, err
		}
		return Scenario{Kind: ScenarioSplitRoom, BookingID: req.BookingID, BookingRoomIDs: req.BookingRoomIDs}, nil
	case hasBooking && !hasRooms && hasService:
		return Scenario{Kind: ScenarioBookingService, BookingID: req.BookingID, ServiceUsageID: req.ServiceUsageID}, nil
	case !hasBooking && !hasRooms && hasService:
		return Scenario{Kind: ScenarioGuestService, ServiceUsageID: req.ServiceUsageID}, nil
	default:
		return Scenario{}, shared.ErrInvalidScenario
	}
}

func validateRoomIDs(ids []uuid.UUID) error {
	seen := make(map[uuid.UUID]struct{}, len(ids))
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			return shared.NewDomainError("DUPLICATE_ROOM", "the same room appears more than once in the payment request")
		}
		seen[id] = struct{}{}
	}
	return nil
}
