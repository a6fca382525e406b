package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	billingapp "github.com/hotel/backend/internal/application/billing"
	"github.com/hotel/backend/internal/domain/lodging"
	"github.com/hotel/backend/internal/infrastructure/cache"
	"github.com/hotel/backend/internal/infrastructure/persistence"
	"github.com/hotel/backend/internal/infrastructure/persistence/models"
	"github.com/hotel/backend/internal/interfaces/http/middleware"
)

type paymentTestEnv struct {
	router *gin.Engine
	ledger *persistence.GormLedger
}

func newPaymentTestEnv(t *testing.T) *paymentTestEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)
	middleware.SetupValidator()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.BookingModel{},
		&models.BookingRoomModel{},
		&models.ServiceUsageModel{},
		&models.TransactionModel{},
		&models.TransactionDetailModel{},
		&models.PromotionModel{},
		&models.CustomerPromotionModel{},
		&models.UsedPromotionModel{},
		&models.ActivityLogModel{},
	))

	ledger := persistence.NewGormLedger(db)
	service := billingapp.NewPaymentService(ledger, zap.NewNop())

	store := cache.NewInMemoryIdempotencyStore()
	t.Cleanup(func() { _ = store.Close() })
	h := NewPaymentHandler(service, store, time.Hour, zap.NewNop())

	router := gin.New()
	router.POST("/payments", h.ProcessPayment)
	router.GET("/bookings/:id/transactions", h.ListBookingTransactions)

	return &paymentTestEnv{router: router, ledger: ledger}
}

// seedBooking stores a pending booking with two unpaid rooms.
func (env *paymentTestEnv) seedBooking(t *testing.T) *lodging.Booking {
	t.Helper()
	ctx := context.Background()
	repos := env.ledger.Repos()

	booking, err := lodging.NewBooking(uuid.New(), decimal.NewFromInt(400))
	require.NoError(t, err)
	require.NoError(t, repos.Bookings.Save(ctx, booking))

	for order := 0; order < 2; order++ {
		room, err := lodging.NewBookingRoom(booking.ID, uuid.New(), decimal.NewFromInt(100), 2, order)
		require.NoError(t, err)
		require.NoError(t, repos.BookingRooms.Save(ctx, room))
	}
	return booking
}

func (env *paymentTestEnv) post(t *testing.T, body map[string]any, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/payments", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	for key, value := range headers {
		req.Header.Set(key, value)
	}

	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)
	return rec
}

func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestProcessPaymentEndpoint(t *testing.T) {
	actorID := uuid.New().String()

	t.Run("settles a full booking payment", func(t *testing.T) {
		env := newPaymentTestEnv(t)
		booking := env.seedBooking(t)

		rec := env.post(t, map[string]any{
			"booking_id": booking.ID.String(),
			"type":       "ROOM_CHARGE",
			"method":     "CASH",
		}, map[string]string{ActorIDHeader: actorID})

		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
		body := decodeResponse(t, rec)
		assert.Equal(t, true, body["success"])

		data := body["data"].(map[string]any)
		tx := data["transaction"].(map[string]any)
		assert.Equal(t, float64(400), tx["amount"])
		assert.Equal(t, "COMPLETED", tx["status"])
		assert.Len(t, data["details"], 2)

		summary := data["booking"].(map[string]any)
		assert.Equal(t, float64(400), summary["total_paid"])
		assert.Equal(t, float64(0), summary["balance"])
	})

	t.Run("rejects a replayed idempotency key", func(t *testing.T) {
		env := newPaymentTestEnv(t)
		booking := env.seedBooking(t)
		headers := map[string]string{
			ActorIDHeader:        actorID,
			IdempotencyKeyHeader: "pay-once",
		}
		request := map[string]any{
			"booking_id": booking.ID.String(),
			"type":       "DEPOSIT",
			"method":     "CARD",
		}

		rec := env.post(t, request, headers)
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

		rec = env.post(t, request, headers)
		assert.Equal(t, http.StatusConflict, rec.Code)
		body := decodeResponse(t, rec)
		errInfo := body["error"].(map[string]any)
		assert.Equal(t, "DUPLICATE_REQUEST", errInfo["code"])
	})

	t.Run("requires an actor header", func(t *testing.T) {
		env := newPaymentTestEnv(t)
		booking := env.seedBooking(t)

		rec := env.post(t, map[string]any{
			"booking_id": booking.ID.String(),
			"type":       "ROOM_CHARGE",
			"method":     "CASH",
		}, nil)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("maps a missing booking to 404", func(t *testing.T) {
		env := newPaymentTestEnv(t)

		rec := env.post(t, map[string]any{
			"booking_id": uuid.New().String(),
			"type":       "ROOM_CHARGE",
			"method":     "CASH",
		}, map[string]string{ActorIDHeader: actorID})

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("rejects conflicting targets", func(t *testing.T) {
		env := newPaymentTestEnv(t)
		booking := env.seedBooking(t)

		rec := env.post(t, map[string]any{
			"booking_id":       booking.ID.String(),
			"booking_room_ids": []string{uuid.New().String()},
			"service_usage_id": uuid.New().String(),
			"type":             "ROOM_CHARGE",
			"method":           "CASH",
		}, map[string]string{ActorIDHeader: actorID})

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestListBookingTransactionsEndpoint(t *testing.T) {
	actorID := uuid.New().String()
	env := newPaymentTestEnv(t)
	booking := env.seedBooking(t)

	rec := env.post(t, map[string]any{
		"booking_id": booking.ID.String(),
		"type":       "ROOM_CHARGE",
		"method":     "CASH",
	}, map[string]string{ActorIDHeader: actorID})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	req := httptest.NewRequest(http.MethodGet, fmt.Sprintf("/bookings/%s/transactions?page=1&page_size=10", booking.ID), nil)
	listRec := httptest.NewRecorder()
	env.router.ServeHTTP(listRec, req)

	require.Equal(t, http.StatusOK, listRec.Code, listRec.Body.String())
	body := decodeResponse(t, listRec)
	meta := body["meta"].(map[string]any)
	assert.Equal(t, float64(1), meta["total"])
	assert.Len(t, body["data"], 1)
}
