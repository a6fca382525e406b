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

func newUsageForTest(t *testing.T, bookingID, roomID *uuid.UUID) *lodging.ServiceUsage {
	t.Helper()
	usage, err := lodging.NewServiceUsage(uuid.New(), bookingID, roomID, 2, decimal.NewFromInt(15))
	require.NoError(t, err)
	return usage
}

func TestGormServiceUsageRepository(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t, &models.ServiceUsageModel{})
	repo := NewGormServiceUsageRepository(db)

	t.Run("FindByID returns not found for unknown id", func(t *testing.T) {
		_, err := repo.FindByID(ctx, uuid.New())
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("Save and FindByID round-trip for a guest usage", func(t *testing.T) {
		usage := newUsageForTest(t, nil, nil)
		require.NoError(t, repo.Save(ctx, usage))

		found, err := repo.FindByID(ctx, usage.ID)
		require.NoError(t, err)
		assert.Nil(t, found.BookingID)
		assert.Nil(t, found.BookingRoomID)
		assert.True(t, decimal.NewFromInt(30).Equal(found.TotalPrice))
		assert.Equal(t, lodging.ServiceUsageStatusPending, found.Status)
	})

	t.Run("FindByBooking excludes cancelled usages", func(t *testing.T) {
		bookingID := uuid.New()
		roomID := uuid.New()
		base := time.Now().Add(-time.Hour)

		kept := newUsageForTest(t, &bookingID, &roomID)
		kept.CreatedAt = base
		later := newUsageForTest(t, &bookingID, &roomID)
		later.CreatedAt = base.Add(time.Minute)
		cancelled := newUsageForTest(t, &bookingID, &roomID)
		require.NoError(t, cancelled.Cancel())

		for _, usage := range []*lodging.ServiceUsage{kept, later, cancelled} {
			require.NoError(t, repo.Save(ctx, usage))
		}

		usages, err := repo.FindByBooking(ctx, bookingID)
		require.NoError(t, err)
		require.Len(t, usages, 2)
		assert.Equal(t, kept.ID, usages[0].ID)
		assert.Equal(t, later.ID, usages[1].ID)
	})

	t.Run("FindByBookingRoom filters by room", func(t *testing.T) {
		bookingID := uuid.New()
		roomA := uuid.New()
		roomB := uuid.New()

		forA := newUsageForTest(t, &bookingID, &roomA)
		forB := newUsageForTest(t, &bookingID, &roomB)
		require.NoError(t, repo.Save(ctx, forA))
		require.NoError(t, repo.Save(ctx, forB))

		usages, err := repo.FindByBookingRoom(ctx, roomA)
		require.NoError(t, err)
		require.Len(t, usages, 1)
		assert.Equal(t, forA.ID, usages[0].ID)
	})

	t.Run("SaveWithLock rejects a stale version", func(t *testing.T) {
		usage := newUsageForTest(t, nil, nil)
		require.NoError(t, repo.Save(ctx, usage))

		stale, err := repo.FindByID(ctx, usage.ID)
		require.NoError(t, err)

		require.NoError(t, usage.ApplyPayment(decimal.NewFromInt(10)))
		require.NoError(t, repo.SaveWithLock(ctx, usage))

		err = repo.SaveWithLock(ctx, stale)
		assert.ErrorIs(t, err, shared.ErrConcurrencyConflict)
	})
}
