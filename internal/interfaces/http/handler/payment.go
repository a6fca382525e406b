package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	billingapp "github.com/hotel/backend/internal/application/billing"
	"github.com/hotel/backend/internal/domain/billing"
	"github.com/hotel/backend/internal/domain/lodging"
	"github.com/hotel/backend/internal/domain/promotion"
	"github.com/hotel/backend/internal/domain/shared"
	"github.com/hotel/backend/internal/interfaces/http/dto"
	"github.com/hotel/backend/internal/interfaces/http/middleware"
)

// IdempotencyKeyHeader fences duplicate payment submissions. Amounts are
// derived from outstanding balances, so a replayed request would charge the
// remaining balance again rather than fail.
const IdempotencyKeyHeader = "Idempotency-Key"

// PaymentHandler handles payment allocation API endpoints
type PaymentHandler struct {
	BaseHandler
	paymentService *billingapp.PaymentService
	idempotency    shared.IdempotencyStore
	idempotencyTTL time.Duration
	logger         *zap.Logger
}

// NewPaymentHandler creates a new PaymentHandler
func NewPaymentHandler(paymentService *billingapp.PaymentService, idempotency shared.IdempotencyStore, idempotencyTTL time.Duration, logger *zap.Logger) *PaymentHandler {
	return &PaymentHandler{
		paymentService: paymentService,
		idempotency:    idempotency,
		idempotencyTTL: idempotencyTTL,
		logger:         logger,
	}
}

// ===================== Request/Response DTOs =====================

// PromotionApplicationRequest is one claimed promotion to apply to the payment
type PromotionApplicationRequest struct {
	CustomerPromotionID string  `json:"customer_promotion_id" binding:"required,uuid"`
	BookingRoomID       *string `json:"booking_room_id" binding:"omitempty,uuid"`
	ServiceUsageID      *string `json:"service_usage_id" binding:"omitempty,uuid"`
}

// ProcessPaymentRequest is the payment submission payload. Which IDs are set
// decides the allocation scenario; no amount is accepted from the caller.
type ProcessPaymentRequest struct {
	BookingID      *string                       `json:"booking_id" binding:"omitempty,uuid"`
	BookingRoomIDs []string                      `json:"booking_room_ids" binding:"omitempty,dive,uuid"`
	ServiceUsageID *string                       `json:"service_usage_id" binding:"omitempty,uuid"`
	Type           string                        `json:"type" binding:"required"`
	Method         string                        `json:"method" binding:"required"`
	Promotions     []PromotionApplicationRequest `json:"promotions" binding:"omitempty,dive"`
}

// TransactionResponse represents a transaction header in API responses
type TransactionResponse struct {
	ID             string    `json:"id"`
	BookingID      *string   `json:"booking_id,omitempty"`
	Type           string    `json:"type"`
	Status         string    `json:"status"`
	Method         string    `json:"method"`
	BaseAmount     float64   `json:"base_amount"`
	DiscountAmount float64   `json:"discount_amount"`
	Amount         float64   `json:"amount"`
	ProcessedBy    string    `json:"processed_by"`
	OccurredAt     time.Time `json:"occurred_at"`
}

// TransactionDetailResponse represents one allocation line in API responses
type TransactionDetailResponse struct {
	ID             string  `json:"id"`
	TransactionID  *string `json:"transaction_id,omitempty"`
	BookingRoomID  *string `json:"booking_room_id,omitempty"`
	ServiceUsageID *string `json:"service_usage_id,omitempty"`
	BaseAmount     float64 `json:"base_amount"`
	DiscountAmount float64 `json:"discount_amount"`
	Amount         float64 `json:"amount"`
}

// BookingSummaryResponse carries the booking totals after a payment
type BookingSummaryResponse struct {
	ID          string  `json:"id"`
	Status      string  `json:"status"`
	TotalAmount float64 `json:"total_amount"`
	TotalPaid   float64 `json:"total_paid"`
	Balance     float64 `json:"balance"`
}

// PaymentResponse is the result of a processed payment
type PaymentResponse struct {
	Transaction *TransactionResponse        `json:"transaction,omitempty"`
	Details     []TransactionDetailResponse `json:"details"`
	Booking     *BookingSummaryResponse     `json:"booking,omitempty"`
}

// ===================== Handlers =====================

// ProcessPayment handles POST /api/v1/payments
func (h *PaymentHandler) ProcessPayment(c *gin.Context) {
	actorID, err := getActorID(c)
	if err != nil {
		h.BadRequest(c, "Invalid or missing actor ID")
		return
	}

	var req ProcessPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	payment, err := h.toPaymentRequest(req, actorID)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	idempotencyKey := c.GetHeader(IdempotencyKeyHeader)
	if idempotencyKey != "" {
		processed, err := h.idempotency.IsProcessed(c.Request.Context(), idempotencyKey)
		if err != nil {
			h.logger.Warn("idempotency check failed, continuing", zap.Error(err))
		} else if processed {
			h.Conflict(c, dto.ErrCodeDuplicateRequest, "A payment with this idempotency key was already processed")
			return
		}
	}

	result, err := h.paymentService.ProcessPayment(c.Request.Context(), payment)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	if idempotencyKey != "" {
		if _, err := h.idempotency.MarkProcessed(c.Request.Context(), idempotencyKey, h.idempotencyTTL); err != nil {
			h.logger.Warn("failed to mark idempotency key", zap.Error(err))
		}
	}

	h.Created(c, toPaymentResponse(result))
}

// ListBookingTransactions handles GET /api/v1/bookings/:id/transactions
func (h *PaymentHandler) ListBookingTransactions(c *gin.Context) {
	bookingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid booking ID format")
		return
	}

	var q listQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}
	filter := shared.DefaultFilter()
	if q.Page != nil {
		filter.Page = *q.Page
	}
	if q.PageSize != nil {
		filter.PageSize = *q.PageSize
	}

	page, err := h.paymentService.ListBookingTransactions(c.Request.Context(), bookingID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	items := make([]TransactionResponse, len(page.Items))
	for i, tx := range page.Items {
		items[i] = *toTransactionResponse(tx)
	}
	h.SuccessWithMeta(c, items, page.Total, page.Page, page.PageSize)
}

// listQuery binds pagination query parameters onto an existing filter
type listQuery struct {
	Page     *int `form:"page" binding:"omitempty,min=1"`
	PageSize *int `form:"page_size" binding:"omitempty,min=1,max=100"`
}

func (h *PaymentHandler) toPaymentRequest(req ProcessPaymentRequest, actorID uuid.UUID) (billing.PaymentRequest, error) {
	payment := billing.PaymentRequest{
		Type:        billing.TransactionType(req.Type),
		Method:      req.Method,
		ProcessedBy: actorID,
	}

	var err error
	if payment.BookingID, err = parseUUIDPtr(req.BookingID); err != nil {
		return billing.PaymentRequest{}, err
	}
	if payment.ServiceUsageID, err = parseUUIDPtr(req.ServiceUsageID); err != nil {
		return billing.PaymentRequest{}, err
	}
	for _, raw := range req.BookingRoomIDs {
		id, err := uuid.Parse(raw)
		if err != nil {
			return billing.PaymentRequest{}, err
		}
		payment.BookingRoomIDs = append(payment.BookingRoomIDs, id)
	}

	for _, app := range req.Promotions {
		claimID, err := uuid.Parse(app.CustomerPromotionID)
		if err != nil {
			return billing.PaymentRequest{}, err
		}
		application := promotion.Application{CustomerPromotionID: claimID}
		if application.BookingRoomID, err = parseUUIDPtr(app.BookingRoomID); err != nil {
			return billing.PaymentRequest{}, err
		}
		if application.ServiceUsageID, err = parseUUIDPtr(app.ServiceUsageID); err != nil {
			return billing.PaymentRequest{}, err
		}
		payment.Applications = append(payment.Applications, application)
	}
	return payment, nil
}

// ===================== Conversions =====================

func parseUUIDPtr(raw *string) (*uuid.UUID, error) {
	if raw == nil || *raw == "" {
		return nil, nil
	}
	id, err := uuid.Parse(*raw)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

func uuidPtrToString(id *uuid.UUID) *string {
	if id == nil {
		return nil
	}
	s := id.String()
	return &s
}

func toTransactionResponse(tx *billing.Transaction) *TransactionResponse {
	if tx == nil {
		return nil
	}
	return &TransactionResponse{
		ID:             tx.ID.String(),
		BookingID:      uuidPtrToString(tx.BookingID),
		Type:           tx.Type.String(),
		Status:         tx.Status.String(),
		Method:         tx.Method,
		BaseAmount:     tx.BaseAmount.InexactFloat64(),
		DiscountAmount: tx.DiscountAmount.InexactFloat64(),
		Amount:         tx.Amount.InexactFloat64(),
		ProcessedBy:    tx.ProcessedBy.String(),
		OccurredAt:     tx.OccurredAt,
	}
}

func toTransactionDetailResponses(details []*billing.TransactionDetail) []TransactionDetailResponse {
	out := make([]TransactionDetailResponse, len(details))
	for i, d := range details {
		out[i] = TransactionDetailResponse{
			ID:             d.ID.String(),
			TransactionID:  uuidPtrToString(d.TransactionID),
			BookingRoomID:  uuidPtrToString(d.BookingRoomID),
			ServiceUsageID: uuidPtrToString(d.ServiceUsageID),
			BaseAmount:     d.BaseAmount.InexactFloat64(),
			DiscountAmount: d.DiscountAmount.InexactFloat64(),
			Amount:         d.Amount.InexactFloat64(),
		}
	}
	return out
}

func toBookingSummaryResponse(b *lodging.Booking) *BookingSummaryResponse {
	if b == nil {
		return nil
	}
	return &BookingSummaryResponse{
		ID:          b.ID.String(),
		Status:      b.Status.String(),
		TotalAmount: b.TotalAmount.InexactFloat64(),
		TotalPaid:   b.TotalPaid.InexactFloat64(),
		Balance:     b.Balance.InexactFloat64(),
	}
}

func toPaymentResponse(result *billingapp.PaymentResult) PaymentResponse {
	return PaymentResponse{
		Transaction: toTransactionResponse(result.Transaction),
		Details:     toTransactionDetailResponses(result.Details),
		Booking:     toBookingSummaryResponse(result.Booking),
	}
}
