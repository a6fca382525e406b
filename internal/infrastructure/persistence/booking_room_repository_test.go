package persistence

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hotel/backend/internal/domain/lodging"
	"github.com/hotel/backend/internal/domain/shared"
	"github.com/hotel/backend/internal/infrastructure/persistence/models"
)

func newRoomForTest(t *testing.T, bookingID uuid.UUID, order int) *lodging.BookingRoom {
	t.Helper()
	room, err := lodging.NewBookingRoom(bookingID, uuid.New(), decimal.NewFromInt(100), 2, order)
	require.NoError(t, err)
	return room
}

func TestGormBookingRoomRepository(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t, &models.BookingRoomModel{})
	repo := NewGormBookingRoomRepository(db)

	t.Run("FindByID returns not found for unknown id", func(t *testing.T) {
		_, err := repo.FindByID(ctx, uuid.New())
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("FindByBooking sorts by room order", func(t *testing.T) {
		bookingID := uuid.New()
		second := newRoomForTest(t, bookingID, 1)
		first := newRoomForTest(t, bookingID, 0)
		third := newRoomForTest(t, bookingID, 2)
		for _, room := range []*lodging.BookingRoom{second, first, third} {
			require.NoError(t, repo.Save(ctx, room))
		}

		rooms, err := repo.FindByBooking(ctx, bookingID)
		require.NoError(t, err)
		require.Len(t, rooms, 3)
		assert.Equal(t, first.ID, rooms[0].ID)
		assert.Equal(t, second.ID, rooms[1].ID)
		assert.Equal(t, third.ID, rooms[2].ID)
	})

	t.Run("FindByIDs returns only the requested rooms in order", func(t *testing.T) {
		bookingID := uuid.New()
		a := newRoomForTest(t, bookingID, 0)
		b := newRoomForTest(t, bookingID, 1)
		c := newRoomForTest(t, bookingID, 2)
		for _, room := range []*lodging.BookingRoom{a, b, c} {
			require.NoError(t, repo.Save(ctx, room))
		}

		rooms, err := repo.FindByIDs(ctx, []uuid.UUID{c.ID, a.ID})
		require.NoError(t, err)
		require.Len(t, rooms, 2)
		assert.Equal(t, a.ID, rooms[0].ID)
		assert.Equal(t, c.ID, rooms[1].ID)
	})

	t.Run("SaveWithLock rejects a stale version", func(t *testing.T) {
		room := newRoomForTest(t, uuid.New(), 0)
		require.NoError(t, repo.Save(ctx, room))

		stale, err := repo.FindByID(ctx, room.ID)
		require.NoError(t, err)

		require.NoError(t, room.ApplyPayment(decimal.NewFromInt(50)))
		require.NoError(t, repo.SaveWithLock(ctx, room))

		err = repo.SaveWithLock(ctx, stale)
		assert.ErrorIs(t, err, shared.ErrConcurrencyConflict)
	})
}
