package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	gormlogger "gorm.io/gorm/logger"

	billingapp "github.com/hotel/backend/internal/application/billing"
	lodgingapp "github.com/hotel/backend/internal/application/lodging"
	promotionapp "github.com/hotel/backend/internal/application/promotion"
	"github.com/hotel/backend/internal/infrastructure/cache"
	"github.com/hotel/backend/internal/infrastructure/config"
	"github.com/hotel/backend/internal/infrastructure/logger"
	"github.com/hotel/backend/internal/infrastructure/persistence"
	"github.com/hotel/backend/internal/infrastructure/scheduler"
	"github.com/hotel/backend/internal/interfaces/http/handler"
	"github.com/hotel/backend/internal/interfaces/http/middleware"
	"github.com/hotel/backend/internal/interfaces/http/router"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load configuration: " + err.Error())
	}

	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting server",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
	)

	gormLog := logger.NewGormLogger(log, gormlogger.Warn)
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		_ = db.Close()
	}()

	idempotencyStore, err := cache.NewIdempotencyStore(cfg, log)
	if err != nil {
		log.Fatal("Failed to initialize idempotency store", zap.Error(err))
	}
	defer func() {
		_ = idempotencyStore.Close()
	}()

	ledger := persistence.NewGormLedger(db.DB)

	paymentService := billingapp.NewPaymentService(ledger, log)
	promotionService := promotionapp.NewPromotionService(ledger, log)
	usageService := lodgingapp.NewServiceUsageService(ledger, log)
	bookingService := lodgingapp.NewBookingService(ledger)

	middleware.SetupValidator()

	engine := router.New(cfg, log, router.Handlers{
		Payment:      handler.NewPaymentHandler(paymentService, idempotencyStore, cfg.Idempotency.TTL, log),
		Promotion:    handler.NewPromotionHandler(promotionService),
		ServiceUsage: handler.NewServiceUsageHandler(usageService),
		Booking:      handler.NewBookingHandler(bookingService),
		Health:       handler.NewHealthHandler(db),
	})

	rootCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.Promotion.ExpirySweepEnabled {
		sweeper := scheduler.NewExpirySweeper(scheduler.ExpirySweeperConfig{
			Interval: cfg.Promotion.ExpirySweepInterval,
		}, promotionService, log)
		if err := sweeper.Start(rootCtx); err != nil {
			log.Fatal("Failed to start promotion expiry sweeper", zap.Error(err))
		}
		defer func() {
			stopCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = sweeper.Stop(stopCtx)
		}()
	}

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("HTTP server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	<-rootCtx.Done()
	log.Info("Shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
		os.Exit(1)
	}
	log.Info("Server exited")
}
