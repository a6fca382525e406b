package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hotel/backend/internal/domain/lodging"
	"github.com/hotel/backend/internal/domain/shared"
	"github.com/hotel/backend/internal/infrastructure/persistence/models"
)

func newBookingForTest(t *testing.T, customerID uuid.UUID, total decimal.Decimal) *lodging.Booking {
	t.Helper()
	booking, err := lodging.NewBooking(customerID, total)
	require.NoError(t, err)
	return booking
}

func TestGormBookingRepository(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t, &models.BookingModel{})
	repo := NewGormBookingRepository(db)

	t.Run("FindByID returns not found for unknown id", func(t *testing.T) {
		_, err := repo.FindByID(ctx, uuid.New())
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("Save and FindByID round-trip", func(t *testing.T) {
		booking := newBookingForTest(t, uuid.New(), decimal.NewFromInt(500))
		require.NoError(t, repo.Save(ctx, booking))

		found, err := repo.FindByID(ctx, booking.ID)
		require.NoError(t, err)
		assert.Equal(t, booking.CustomerID, found.CustomerID)
		assert.Equal(t, lodging.BookingStatusPending, found.Status)
		assert.True(t, decimal.NewFromInt(500).Equal(found.TotalAmount))
		assert.True(t, decimal.NewFromInt(500).Equal(found.Balance))
		assert.Equal(t, 1, found.Version)
	})

	t.Run("FindByCustomer orders by most recent and paginates", func(t *testing.T) {
		customerID := uuid.New()
		base := time.Now().Add(-time.Hour)
		older := newBookingForTest(t, customerID, decimal.NewFromInt(100))
		older.CreatedAt = base
		newer := newBookingForTest(t, customerID, decimal.NewFromInt(200))
		newer.CreatedAt = base.Add(30 * time.Minute)
		require.NoError(t, repo.Save(ctx, older))
		require.NoError(t, repo.Save(ctx, newer))

		bookings, err := repo.FindByCustomer(ctx, customerID, shared.Filter{})
		require.NoError(t, err)
		require.Len(t, bookings, 2)
		assert.Equal(t, newer.ID, bookings[0].ID)
		assert.Equal(t, older.ID, bookings[1].ID)

		page, err := repo.FindByCustomer(ctx, customerID, shared.Filter{Page: 2, PageSize: 1})
		require.NoError(t, err)
		require.Len(t, page, 1)
		assert.Equal(t, older.ID, page[0].ID)
	})

	t.Run("SaveWithLock advances the version", func(t *testing.T) {
		booking := newBookingForTest(t, uuid.New(), decimal.NewFromInt(300))
		require.NoError(t, repo.Save(ctx, booking))

		booking.TotalPaid = decimal.NewFromInt(100)
		booking.Balance = decimal.NewFromInt(200)
		require.NoError(t, repo.SaveWithLock(ctx, booking))
		assert.Equal(t, 2, booking.Version)

		found, err := repo.FindByID(ctx, booking.ID)
		require.NoError(t, err)
		assert.Equal(t, 2, found.Version)
		assert.True(t, decimal.NewFromInt(100).Equal(found.TotalPaid))
	})

	t.Run("SaveWithLock rejects a stale version", func(t *testing.T) {
		booking := newBookingForTest(t, uuid.New(), decimal.NewFromInt(300))
		require.NoError(t, repo.Save(ctx, booking))

		stale, err := repo.FindByID(ctx, booking.ID)
		require.NoError(t, err)

		require.NoError(t, repo.SaveWithLock(ctx, booking))

		stale.TotalPaid = decimal.NewFromInt(50)
		err = repo.SaveWithLock(ctx, stale)
		assert.ErrorIs(t, err, shared.ErrConcurrencyConflict)
	})
}
