package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	promotionapp "github.com/hotel/backend/internal/application/promotion"
	"github.com/hotel/backend/internal/domain/promotion"
	"github.com/hotel/backend/internal/interfaces/http/middleware"
)

// PromotionHandler handles promotion lifecycle API endpoints
type PromotionHandler struct {
	BaseHandler
	promotionService *promotionapp.PromotionService
}

// NewPromotionHandler creates a new PromotionHandler
func NewPromotionHandler(promotionService *promotionapp.PromotionService) *PromotionHandler {
	return &PromotionHandler{promotionService: promotionService}
}

// ===================== Request/Response DTOs =====================

// CreatePromotionRequest defines a new promotion
type CreatePromotionRequest struct {
	Code             string   `json:"code" binding:"required,min=1,max=50"`
	Type             string   `json:"type" binding:"required,oneof=PERCENTAGE FIXED_AMOUNT"`
	Scope            string   `json:"scope" binding:"required,oneof=ALL ROOM SERVICE"`
	Value            float64  `json:"value" binding:"required,gt=0"`
	MaxDiscount      *float64 `json:"max_discount" binding:"omitempty,gt=0"`
	MinBookingAmount float64  `json:"min_booking_amount" binding:"omitempty,gte=0"`
	TotalQty         *int     `json:"total_qty" binding:"omitempty,gt=0"`
	PerCustomerLimit int      `json:"per_customer_limit" binding:"omitempty,gt=0"`
	StartDate        string   `json:"start_date" binding:"required"`
	EndDate          string   `json:"end_date" binding:"required"`
}

// ClaimPromotionRequest claims a promotion code for a customer
type ClaimPromotionRequest struct {
	CustomerID string `json:"customer_id" binding:"required,uuid"`
	Code       string `json:"code" binding:"required"`
}

// PromotionResponse represents a promotion in API responses
type PromotionResponse struct {
	ID               string     `json:"id"`
	Code             string     `json:"code"`
	Type             string     `json:"type"`
	Scope            string     `json:"scope"`
	Value            float64    `json:"value"`
	MaxDiscount      *float64   `json:"max_discount,omitempty"`
	MinBookingAmount float64    `json:"min_booking_amount"`
	TotalQty         *int       `json:"total_qty,omitempty"`
	RemainingQty     *int       `json:"remaining_qty,omitempty"`
	PerCustomerLimit int        `json:"per_customer_limit"`
	StartDate        time.Time  `json:"start_date"`
	EndDate          time.Time  `json:"end_date"`
	DisabledAt       *time.Time `json:"disabled_at,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
}

// CustomerPromotionResponse represents a claimed promotion in API responses
type CustomerPromotionResponse struct {
	ID                  string     `json:"id"`
	CustomerID          string     `json:"customer_id"`
	PromotionID         string     `json:"promotion_id"`
	Status              string     `json:"status"`
	ClaimedAt           time.Time  `json:"claimed_at"`
	UsedAt              *time.Time `json:"used_at,omitempty"`
	TransactionDetailID *string    `json:"transaction_detail_id,omitempty"`
}

// ExpireClaimsResponse reports how many claims a sweep expired
type ExpireClaimsResponse struct {
	Expired int `json:"expired"`
}

// ===================== Handlers =====================

// CreatePromotion handles POST /api/v1/promotions
func (h *PromotionHandler) CreatePromotion(c *gin.Context) {
	actorID, err := getActorID(c)
	if err != nil {
		h.BadRequest(c, "Invalid or missing actor ID")
		return
	}

	var req CreatePromotionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	startDate, err := time.Parse(time.RFC3339, req.StartDate)
	if err != nil {
		h.BadRequest(c, "Invalid start_date, expected RFC3339")
		return
	}
	endDate, err := time.Parse(time.RFC3339, req.EndDate)
	if err != nil {
		h.BadRequest(c, "Invalid end_date, expected RFC3339")
		return
	}

	appReq := promotionapp.CreatePromotionRequest{
		Code:             req.Code,
		Type:             promotion.PromotionType(req.Type),
		Scope:            promotion.PromotionScope(req.Scope),
		Value:            decimal.NewFromFloat(req.Value),
		MinBookingAmount: decimal.NewFromFloat(req.MinBookingAmount),
		TotalQty:         req.TotalQty,
		PerCustomerLimit: req.PerCustomerLimit,
		StartDate:        startDate,
		EndDate:          endDate,
		ActorID:          actorID,
	}
	if req.MaxDiscount != nil {
		appReq.MaxDiscount = toDecimalPtr(*req.MaxDiscount)
	}

	promo, err := h.promotionService.CreatePromotion(c.Request.Context(), appReq)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, toPromotionResponse(promo))
}

// GetPromotion handles GET /api/v1/promotions/:id
func (h *PromotionHandler) GetPromotion(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid promotion ID format")
		return
	}

	promo, err := h.promotionService.GetPromotion(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, toPromotionResponse(promo))
}

// DisablePromotion handles POST /api/v1/promotions/:id/disable
func (h *PromotionHandler) DisablePromotion(c *gin.Context) {
	actorID, err := getActorID(c)
	if err != nil {
		h.BadRequest(c, "Invalid or missing actor ID")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid promotion ID format")
		return
	}

	promo, err := h.promotionService.DisablePromotion(c.Request.Context(), id, actorID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, toPromotionResponse(promo))
}

// ClaimPromotion handles POST /api/v1/promotions/claim
func (h *PromotionHandler) ClaimPromotion(c *gin.Context) {
	var req ClaimPromotionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	customerID, err := uuid.Parse(req.CustomerID)
	if err != nil {
		h.BadRequest(c, "Invalid customer ID format")
		return
	}

	claim, err := h.promotionService.ClaimPromotion(c.Request.Context(), customerID, req.Code)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, toCustomerPromotionResponse(claim))
}

// ExpireClaims handles POST /api/v1/promotions/expire
func (h *PromotionHandler) ExpireClaims(c *gin.Context) {
	expired, err := h.promotionService.ExpireClaims(c.Request.Context(), time.Now())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, ExpireClaimsResponse{Expired: expired})
}

// ===================== Conversions =====================

func toPromotionResponse(p *promotion.Promotion) PromotionResponse {
	resp := PromotionResponse{
		ID:               p.ID.String(),
		Code:             p.Code,
		Type:             p.Type.String(),
		Scope:            p.Scope.String(),
		Value:            p.Value.InexactFloat64(),
		MinBookingAmount: p.MinBookingAmount.InexactFloat64(),
		TotalQty:         p.TotalQty,
		RemainingQty:     p.RemainingQty,
		PerCustomerLimit: p.PerCustomerLimit,
		StartDate:        p.StartDate,
		EndDate:          p.EndDate,
		DisabledAt:       p.DisabledAt,
		CreatedAt:        p.CreatedAt,
	}
	if p.MaxDiscount != nil {
		v := p.MaxDiscount.InexactFloat64()
		resp.MaxDiscount = &v
	}
	return resp
}

func toCustomerPromotionResponse(cp *promotion.CustomerPromotion) CustomerPromotionResponse {
	return CustomerPromotionResponse{
		ID:                  cp.ID.String(),
		CustomerID:          cp.CustomerID.String(),
		PromotionID:         cp.PromotionID.String(),
		Status:              cp.Status.String(),
		ClaimedAt:           cp.ClaimedAt,
		UsedAt:              cp.UsedAt,
		TransactionDetailID: uuidPtrToString(cp.TransactionDetailID),
	}
}
