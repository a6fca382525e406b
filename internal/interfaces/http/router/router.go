package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/hotel/backend/internal/infrastructure/config"
	"github.com/hotel/backend/internal/infrastructure/logger"
	"github.com/hotel/backend/internal/interfaces/http/handler"
	"github.com/hotel/backend/internal/interfaces/http/middleware"
)

// Handlers bundles everything the router mounts.
type Handlers struct {
	Payment      *handler.PaymentHandler
	Promotion    *handler.PromotionHandler
	ServiceUsage *handler.ServiceUsageHandler
	Booking      *handler.BookingHandler
	Health       *handler.HealthHandler
}

// New builds the gin engine with the ambient middleware chain and all
// API routes mounted under /api/v1.
func New(cfg *config.Config, log *zap.Logger, h Handlers) *gin.Engine {
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	if len(cfg.HTTP.TrustedProxies) > 0 {
		_ = engine.SetTrustedProxies(cfg.HTTP.TrustedProxies)
	}

	engine.Use(middleware.RequestID())
	engine.Use(logger.GinMiddleware(log))
	engine.Use(logger.Recovery(log))
	engine.Use(middleware.Secure())
	if len(cfg.HTTP.CORSAllowOrigins) > 0 {
		corsCfg := middleware.DefaultCORSConfig()
		corsCfg.AllowOrigins = cfg.HTTP.CORSAllowOrigins
		engine.Use(middleware.CORSWithConfig(corsCfg))
	}
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))
	if cfg.HTTP.RateLimitEnabled {
		limiter := middleware.NewRateLimiter(cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitWindow)
		engine.Use(middleware.RateLimit(limiter))
	}

	engine.GET("/health", h.Health.Health)

	api := engine.Group("/api/v1")

	api.POST("/payments", h.Payment.ProcessPayment)

	api.POST("/promotions", h.Promotion.CreatePromotion)
	api.POST("/promotions/claim", h.Promotion.ClaimPromotion)
	api.POST("/promotions/expire", h.Promotion.ExpireClaims)
	api.GET("/promotions/:id", h.Promotion.GetPromotion)
	api.POST("/promotions/:id/disable", h.Promotion.DisablePromotion)

	api.POST("/service-usages", h.ServiceUsage.CreateServiceUsage)
	api.GET("/service-usages/:id", h.ServiceUsage.GetServiceUsage)
	api.PATCH("/service-usages/:id", h.ServiceUsage.UpdateServiceUsage)

	api.GET("/bookings/:id", h.Booking.GetBooking)
	api.GET("/bookings/:id/transactions", h.Payment.ListBookingTransactions)

	return engine
}
