package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	lodgingapp "github.com/hotel/backend/internal/application/lodging"
	"github.com/hotel/backend/internal/domain/lodging"
	"github.com/hotel/backend/internal/interfaces/http/middleware"
)

// ServiceUsageHandler handles service usage API endpoints
type ServiceUsageHandler struct {
	BaseHandler
	usageService *lodgingapp.ServiceUsageService
}

// NewServiceUsageHandler creates a new ServiceUsageHandler
func NewServiceUsageHandler(usageService *lodgingapp.ServiceUsageService) *ServiceUsageHandler {
	return &ServiceUsageHandler{usageService: usageService}
}

// ===================== Request/Response DTOs =====================

// CreateServiceUsageRequest records a new service usage. A booking room ID
// attaches the usage to that room, a booking ID alone makes it booking-level,
// and neither makes it a standalone guest usage.
type CreateServiceUsageRequest struct {
	ServiceID     string  `json:"service_id" binding:"required,uuid"`
	BookingID     *string `json:"booking_id" binding:"omitempty,uuid"`
	BookingRoomID *string `json:"booking_room_id" binding:"omitempty,uuid"`
	Quantity      int     `json:"quantity" binding:"required,gt=0"`
	UnitPrice     float64 `json:"unit_price" binding:"required,gt=0"`
}

// UpdateServiceUsageRequest patches quantity and/or status
type UpdateServiceUsageRequest struct {
	Quantity *int    `json:"quantity" binding:"omitempty,gt=0"`
	Status   *string `json:"status" binding:"omitempty,oneof=PENDING TRANSFERRED COMPLETED CANCELLED"`
}

// ServiceUsageResponse represents a service usage in API responses
type ServiceUsageResponse struct {
	ID            string     `json:"id"`
	ServiceID     string     `json:"service_id"`
	BookingID     *string    `json:"booking_id,omitempty"`
	BookingRoomID *string    `json:"booking_room_id,omitempty"`
	Quantity      int        `json:"quantity"`
	UnitPrice     float64    `json:"unit_price"`
	TotalPrice    float64    `json:"total_price"`
	TotalPaid     float64    `json:"total_paid"`
	Balance       float64    `json:"balance"`
	Status        string     `json:"status"`
	CompletedAt   *time.Time `json:"completed_at,omitempty"`
	CancelledAt   *time.Time `json:"cancelled_at,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
}

// ===================== Handlers =====================

// CreateServiceUsage handles POST /api/v1/service-usages
func (h *ServiceUsageHandler) CreateServiceUsage(c *gin.Context) {
	actorID, err := getActorID(c)
	if err != nil {
		h.BadRequest(c, "Invalid or missing actor ID")
		return
	}

	var req CreateServiceUsageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	serviceID, err := uuid.Parse(req.ServiceID)
	if err != nil {
		h.BadRequest(c, "Invalid service ID format")
		return
	}
	bookingID, err := parseUUIDPtr(req.BookingID)
	if err != nil {
		h.BadRequest(c, "Invalid booking ID format")
		return
	}
	bookingRoomID, err := parseUUIDPtr(req.BookingRoomID)
	if err != nil {
		h.BadRequest(c, "Invalid booking room ID format")
		return
	}

	usage, err := h.usageService.CreateServiceUsage(c.Request.Context(), lodgingapp.CreateServiceUsageRequest{
		ServiceID:     serviceID,
		BookingID:     bookingID,
		BookingRoomID: bookingRoomID,
		Quantity:      req.Quantity,
		UnitPrice:     decimal.NewFromFloat(req.UnitPrice),
		ActorID:       actorID,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, toServiceUsageResponse(usage))
}

// GetServiceUsage handles GET /api/v1/service-usages/:id
func (h *ServiceUsageHandler) GetServiceUsage(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid service usage ID format")
		return
	}

	usage, err := h.usageService.GetServiceUsage(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, toServiceUsageResponse(usage))
}

// UpdateServiceUsage handles PATCH /api/v1/service-usages/:id
func (h *ServiceUsageHandler) UpdateServiceUsage(c *gin.Context) {
	actorID, err := getActorID(c)
	if err != nil {
		h.BadRequest(c, "Invalid or missing actor ID")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid service usage ID format")
		return
	}

	var req UpdateServiceUsageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}
	if req.Quantity == nil && req.Status == nil {
		h.BadRequest(c, "Nothing to update")
		return
	}

	var usage *lodging.ServiceUsage
	if req.Quantity != nil {
		usage, err = h.usageService.UpdateQuantity(c.Request.Context(), id, *req.Quantity, actorID)
		if err != nil {
			h.HandleError(c, err)
			return
		}
	}
	if req.Status != nil {
		usage, err = h.usageService.UpdateStatus(c.Request.Context(), id, lodging.ServiceUsageStatus(*req.Status), actorID)
		if err != nil {
			h.HandleError(c, err)
			return
		}
	}
	h.Success(c, toServiceUsageResponse(usage))
}

// ===================== Conversions =====================

func toServiceUsageResponse(u *lodging.ServiceUsage) ServiceUsageResponse {
	return ServiceUsageResponse{
		ID:            u.ID.String(),
		ServiceID:     u.ServiceID.String(),
		BookingID:     uuidPtrToString(u.BookingID),
		BookingRoomID: uuidPtrToString(u.BookingRoomID),
		Quantity:      u.Quantity,
		UnitPrice:     u.UnitPrice.InexactFloat64(),
		TotalPrice:    u.TotalPrice.InexactFloat64(),
		TotalPaid:     u.TotalPaid.InexactFloat64(),
		Balance:       u.Balance().InexactFloat64(),
		Status:        u.Status.String(),
		CompletedAt:   u.CompletedAt,
		CancelledAt:   u.CancelledAt,
		CreatedAt:     u.CreatedAt,
	}
}
