package billing

import (
	"sort"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/hotel/backend/internal/domain/lodging"
	"github.com/hotel/backend/internal/domain/shared"
)

// ChargeLine is one settle-this-much entry produced by the allocation
// builders. BaseAmount is the target's outstanding balance at build time;
// DiscountAmount is filled in later by the discount calculator.
type ChargeLine struct {
	BookingRoomID  *uuid.UUID
	ServiceUsageID *uuid.UUID
	BaseAmount     decimal.Decimal
	DiscountAmount decimal.Decimal
}

// Amount is the net the customer pays for this line.
func (l ChargeLine) Amount() decimal.Decimal {
	return l.BaseAmount.Sub(l.DiscountAmount)
}

func (l ChargeLine) IsRoom() bool {
	return l.BookingRoomID != nil
}

func (l ChargeLine) IsService() bool {
	return l.ServiceUsageID != nil
}

func (l ChargeLine) Validate() error {
	if l.IsRoom() == l.IsService() {
		return shared.NewDomainError("INVALID_CHARGE_LINE", "charge line must target exactly one of room or service")
	}
	if l.BaseAmount.IsNegative() {
		return shared.NewDomainError("INVALID_CHARGE_LINE", "charge line base amount cannot be negative")
	}
	if l.DiscountAmount.IsNegative() || l.DiscountAmount.GreaterThan(l.BaseAmount) {
		return shared.NewDomainError("INVALID_CHARGE_LINE", "charge line discount must be between zero and the base amount")
	}
	return nil
}

// ApplyDiscount adds a discount to the line, clamped so the accumulated
// discount never exceeds the base amount. Returns the portion actually
// applied.
func (l *ChargeLine) ApplyDiscount(amount decimal.Decimal) decimal.Decimal {
	room := l.BaseAmount.Sub(l.DiscountAmount)
	if amount.GreaterThan(room) {
		amount = room
	}
	if amount.IsNegative() {
		amount = decimal.Zero
	}
	l.DiscountAmount = l.DiscountAmount.Add(amount)
	return amount
}

func roomLine(room *lodging.BookingRoom) ChargeLine {
	id := room.ID
	return ChargeLine{BookingRoomID: &id, BaseAmount: room.Balance, DiscountAmount: decimal.Zero}
}

func serviceLine(usage *lodging.ServiceUsage) ChargeLine {
	id := usage.ID
	return ChargeLine{ServiceUsageID: &id, BaseAmount: usage.Balance(), DiscountAmount: decimal.Zero}
}

// BuildFullBookingLines produces the lines for a whole-booking settlement: in
// room order, each room with an outstanding balance followed by that room's
// unpaid non-cancelled services in creation order. Targets already settled in
// full are skipped.
func BuildFullBookingLines(rooms []*lodging.BookingRoom, usagesByRoom map[uuid.UUID][]*lodging.ServiceUsage) ([]ChargeLine, error) {
	if len(rooms) == 0 {
		return nil, shared.NewDomainError("NO_ROOMS", "booking has no rooms to charge")
	}
	var lines []ChargeLine
	for _, room := range rooms {
		lines = append(lines, roomAndServiceLines(room, usagesByRoom[room.ID])...)
	}
	return lines, nil
}

// BuildSplitRoomLines is BuildFullBookingLines restricted to the selected
// rooms. Selection is all-or-nothing: a room id that is missing or belongs to
// a different booking fails the whole payment.
func BuildSplitRoomLines(bookingID uuid.UUID, roomIDs []uuid.UUID, roomsByID map[uuid.UUID]*lodging.BookingRoom, usagesByRoom map[uuid.UUID][]*lodging.ServiceUsage) ([]ChargeLine, error) {
	if len(roomIDs) == 0 {
		return nil, shared.NewDomainError("NO_ROOMS", "no rooms selected for payment")
	}
	selected := make([]*lodging.BookingRoom, 0, len(roomIDs))
	for _, id := range roomIDs {
		room, ok := roomsByID[id]
		if !ok {
			return nil, shared.ErrNotFound
		}
		if room.BookingID != bookingID {
			return nil, shared.ErrNotFound
		}
		selected = append(selected, room)
	}
	sort.Slice(selected, func(i, j int) bool { return selected[i].RoomOrder < selected[j].RoomOrder })

	var lines []ChargeLine
	for _, room := range selected {
		lines = append(lines, roomAndServiceLines(room, usagesByRoom[room.ID])...)
	}
	return lines, nil
}

func roomAndServiceLines(room *lodging.BookingRoom, usages []*lodging.ServiceUsage) []ChargeLine {
	var lines []ChargeLine
	if room.HasOutstandingBalance() {
		lines = append(lines, roomLine(room))
	}
	for _, usage := range usages {
		if usage.Status == lodging.ServiceUsageStatusCancelled {
			continue
		}
		if usage.Balance().IsPositive() {
			lines = append(lines, serviceLine(usage))
		}
	}
	return lines
}

// BuildBookingServiceLine produces the single line for a booking-attached
// service settlement.
func BuildBookingServiceLine(bookingID uuid.UUID, usage *lodging.ServiceUsage) ([]ChargeLine, error) {
	if usage == nil {
		return nil, shared.ErrNotFound
	}
	if usage.BookingID == nil || *usage.BookingID != bookingID {
		return nil, shared.NewDomainError("SERVICE_NOT_IN_BOOKING", "service usage does not belong to the booking")
	}
	if usage.Status == lodging.ServiceUsageStatusCancelled {
		return nil, shared.NewDomainError("SERVICE_CANCELLED", "service usage has been cancelled")
	}
	if !usage.Balance().IsPositive() {
		return nil, shared.NewDomainError("SERVICE_ALREADY_PAID", "service usage has no outstanding balance")
	}
	return []ChargeLine{serviceLine(usage)}, nil
}

// BuildGuestServiceLine produces the single line for a standalone service
// settlement. The balance must be positive at build time; a discount applied
// in the same call may still bring the net amount to zero.
func BuildGuestServiceLine(usage *lodging.ServiceUsage) ([]ChargeLine, error) {
	if usage == nil {
		return nil, shared.ErrNotFound
	}
	if usage.BookingID != nil {
		return nil, shared.NewDomainError("SERVICE_NOT_STANDALONE", "service usage belongs to a booking; pay it through the booking")
	}
	if usage.Status == lodging.ServiceUsageStatusCancelled {
		return nil, shared.NewDomainError("SERVICE_CANCELLED", "service usage has been cancelled")
	}
	if !usage.Balance().IsPositive() {
		return nil, shared.NewDomainError("SERVICE_ALREADY_PAID", "service usage has no outstanding balance")
	}
	return []ChargeLine{serviceLine(usage)}, nil
}
