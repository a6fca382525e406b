package lodging

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBooking(t *testing.T) {
	t.Run("creates a pending booking", func(t *testing.T) {
		b, err := NewBooking(uuid.New(), decimal.NewFromInt(500))
		require.NoError(t, err)
		assert.Equal(t, BookingStatusPending, b.Status)
		assert.True(t, b.Balance.Equal(decimal.NewFromInt(500)))
		assert.True(t, b.TotalPaid.IsZero())
	})

	t.Run("rejects nil customer", func(t *testing.T) {
		_, err := NewBooking(uuid.Nil, decimal.NewFromInt(100))
		assert.Error(t, err)
	})

	t.Run("rejects negative total", func(t *testing.T) {
		_, err := NewBooking(uuid.New(), decimal.NewFromInt(-1))
		assert.Error(t, err)
	})
}

func TestBookingRecalculateTotals(t *testing.T) {
	b, err := NewBooking(uuid.New(), decimal.NewFromInt(300))
	require.NoError(t, err)

	roomA, err := NewBookingRoom(b.ID, uuid.New(), decimal.NewFromInt(100), 2, 0)
	require.NoError(t, err)
	roomB, err := NewBookingRoom(b.ID, uuid.New(), decimal.NewFromInt(100), 1, 1)
	require.NoError(t, err)

	require.NoError(t, roomA.ApplyPayment(decimal.NewFromInt(150)))
	b.RecalculateTotals([]BookingRoom{*roomA, *roomB})
	assert.True(t, b.TotalPaid.Equal(decimal.NewFromInt(150)))
	assert.True(t, b.Balance.Equal(decimal.NewFromInt(150)))

	require.NoError(t, roomA.ApplyPayment(decimal.NewFromInt(50)))
	require.NoError(t, roomB.ApplyPayment(decimal.NewFromInt(100)))
	b.ClearDomainEvents()
	b.RecalculateTotals([]BookingRoom{*roomA, *roomB})
	assert.True(t, b.Balance.IsZero())
	assert.Len(t, b.GetDomainEvents(), 1)
}

func TestBookingTransitions(t *testing.T) {
	t.Run("pending to confirmed", func(t *testing.T) {
		b, _ := NewBooking(uuid.New(), decimal.NewFromInt(100))
		require.NoError(t, b.Confirm())
		assert.Equal(t, BookingStatusConfirmed, b.Status)
	})

	t.Run("confirm is idempotent", func(t *testing.T) {
		b, _ := NewBooking(uuid.New(), decimal.NewFromInt(100))
		require.NoError(t, b.Confirm())
		require.NoError(t, b.Confirm())
		assert.Equal(t, BookingStatusConfirmed, b.Status)
	})

	t.Run("checked out is terminal", func(t *testing.T) {
		b, _ := NewBooking(uuid.New(), decimal.NewFromInt(100))
		require.NoError(t, b.TransitionTo(BookingStatusConfirmed))
		require.NoError(t, b.TransitionTo(BookingStatusCheckedIn))
		require.NoError(t, b.TransitionTo(BookingStatusCheckedOut))
		assert.Error(t, b.TransitionTo(BookingStatusCancelled))
	})

	t.Run("cannot skip from pending to checked in", func(t *testing.T) {
		b, _ := NewBooking(uuid.New(), decimal.NewFromInt(100))
		assert.Error(t, b.TransitionTo(BookingStatusCheckedIn))
	})

	t.Run("unknown status is rejected", func(t *testing.T) {
		b, _ := NewBooking(uuid.New(), decimal.NewFromInt(100))
		assert.Error(t, b.TransitionTo(BookingStatus("PAUSED")))
	})
}
