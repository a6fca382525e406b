package lodging

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBookingRoom(t *testing.T) {
	t.Run("subtotal is price times nights", func(t *testing.T) {
		room, err := NewBookingRoom(uuid.New(), uuid.New(), decimal.NewFromFloat(99.50), 3, 0)
		require.NoError(t, err)
		assert.True(t, room.SubtotalRoom.Equal(decimal.NewFromFloat(298.50)))
		assert.True(t, room.Balance.Equal(room.TotalAmount))
		assert.Equal(t, BookingStatusPending, room.Status)
	})

	t.Run("rejects zero nights", func(t *testing.T) {
		_, err := NewBookingRoom(uuid.New(), uuid.New(), decimal.NewFromInt(100), 0, 0)
		assert.Error(t, err)
	})

	t.Run("rejects negative price", func(t *testing.T) {
		_, err := NewBookingRoom(uuid.New(), uuid.New(), decimal.NewFromInt(-5), 1, 0)
		assert.Error(t, err)
	})
}

func TestBookingRoomApplyPayment(t *testing.T) {
	room, err := NewBookingRoom(uuid.New(), uuid.New(), decimal.NewFromInt(100), 2, 0)
	require.NoError(t, err)

	t.Run("partial payment reduces balance", func(t *testing.T) {
		require.NoError(t, room.ApplyPayment(decimal.NewFromInt(120)))
		assert.True(t, room.Balance.Equal(decimal.NewFromInt(80)))
		assert.True(t, room.HasOutstandingBalance())
	})

	t.Run("overpayment is rejected", func(t *testing.T) {
		err := room.ApplyPayment(decimal.NewFromInt(81))
		require.Error(t, err)
		assert.True(t, room.Balance.Equal(decimal.NewFromInt(80)))
	})

	t.Run("settling in full clears the balance", func(t *testing.T) {
		require.NoError(t, room.ApplyPayment(decimal.NewFromInt(80)))
		assert.False(t, room.HasOutstandingBalance())
	})

	t.Run("non-positive payment is rejected", func(t *testing.T) {
		assert.Error(t, room.ApplyPayment(decimal.Zero))
	})
}

func TestBookingRoomConfirm(t *testing.T) {
	room, err := NewBookingRoom(uuid.New(), uuid.New(), decimal.NewFromInt(50), 1, 0)
	require.NoError(t, err)

	assert.True(t, room.IsPending())
	require.NoError(t, room.Confirm())
	assert.Equal(t, BookingStatusConfirmed, room.Status)

	// idempotent
	require.NoError(t, room.Confirm())
}
