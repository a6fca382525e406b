package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	lodgingapp "github.com/hotel/backend/internal/application/lodging"
	"github.com/hotel/backend/internal/domain/lodging"
)

// BookingHandler handles booking read API endpoints
type BookingHandler struct {
	BaseHandler
	bookingService *lodgingapp.BookingService
}

// NewBookingHandler creates a new BookingHandler
func NewBookingHandler(bookingService *lodgingapp.BookingService) *BookingHandler {
	return &BookingHandler{bookingService: bookingService}
}

// BookingRoomResponse represents a booked room in API responses
type BookingRoomResponse struct {
	ID            string  `json:"id"`
	RoomID        string  `json:"room_id"`
	PricePerNight float64 `json:"price_per_night"`
	Nights        int     `json:"nights"`
	SubtotalRoom  float64 `json:"subtotal_room"`
	TotalAmount   float64 `json:"total_amount"`
	TotalPaid     float64 `json:"total_paid"`
	Balance       float64 `json:"balance"`
	Status        string  `json:"status"`
	RoomOrder     int     `json:"room_order"`
}

// BookingResponse is the full booking snapshot with rooms and services
type BookingResponse struct {
	ID            string                 `json:"id"`
	CustomerID    string                 `json:"customer_id"`
	Status        string                 `json:"status"`
	TotalAmount   float64                `json:"total_amount"`
	TotalPaid     float64                `json:"total_paid"`
	Balance       float64                `json:"balance"`
	Rooms         []BookingRoomResponse  `json:"rooms"`
	ServiceUsages []ServiceUsageResponse `json:"service_usages"`
	CreatedAt     time.Time              `json:"created_at"`
}

// GetBooking handles GET /api/v1/bookings/:id
func (h *BookingHandler) GetBooking(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid booking ID format")
		return
	}

	snapshot, err := h.bookingService.GetBooking(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, toBookingResponse(snapshot))
}

func toBookingRoomResponse(r lodging.BookingRoom) BookingRoomResponse {
	return BookingRoomResponse{
		ID:            r.ID.String(),
		RoomID:        r.RoomID.String(),
		PricePerNight: r.PricePerNight.InexactFloat64(),
		Nights:        r.Nights,
		SubtotalRoom:  r.SubtotalRoom.InexactFloat64(),
		TotalAmount:   r.TotalAmount.InexactFloat64(),
		TotalPaid:     r.TotalPaid.InexactFloat64(),
		Balance:       r.Balance.InexactFloat64(),
		Status:        r.Status.String(),
		RoomOrder:     r.RoomOrder,
	}
}

func toBookingResponse(s *lodgingapp.BookingSnapshot) BookingResponse {
	rooms := make([]BookingRoomResponse, len(s.Rooms))
	for i, r := range s.Rooms {
		rooms[i] = toBookingRoomResponse(r)
	}
	usages := make([]ServiceUsageResponse, len(s.ServiceUsages))
	for i := range s.ServiceUsages {
		usages[i] = toServiceUsageResponse(&s.ServiceUsages[i])
	}
	return BookingResponse{
		ID:            s.Booking.ID.String(),
		CustomerID:    s.Booking.CustomerID.String(),
		Status:        s.Booking.Status.String(),
		TotalAmount:   s.Booking.TotalAmount.InexactFloat64(),
		TotalPaid:     s.Booking.TotalPaid.InexactFloat64(),
		Balance:       s.Booking.Balance.InexactFloat64(),
		Rooms:         rooms,
		ServiceUsages: usages,
		CreatedAt:     s.Booking.CreatedAt,
	}
}
