package lodging

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewServiceUsage(t *testing.T) {
	bookingID := uuid.New()
	roomID := uuid.New()

	t.Run("total price is quantity times unit price", func(t *testing.T) {
		usage, err := NewServiceUsage(uuid.New(), &bookingID, &roomID, 3, decimal.NewFromFloat(12.50))
		require.NoError(t, err)
		assert.True(t, usage.TotalPrice.Equal(decimal.NewFromFloat(37.50)))
		assert.Equal(t, ServiceUsageStatusPending, usage.Status)
	})

	t.Run("room id without booking id is rejected", func(t *testing.T) {
		_, err := NewServiceUsage(uuid.New(), nil, &roomID, 1, decimal.NewFromInt(10))
		assert.Error(t, err)
	})

	t.Run("rejects zero quantity", func(t *testing.T) {
		_, err := NewServiceUsage(uuid.New(), &bookingID, nil, 0, decimal.NewFromInt(10))
		assert.Error(t, err)
	})
}

func TestServiceUsageTarget(t *testing.T) {
	bookingID := uuid.New()
	roomID := uuid.New()

	roomUsage, _ := NewServiceUsage(uuid.New(), &bookingID, &roomID, 1, decimal.NewFromInt(10))
	assert.Equal(t, ServiceTargetRoom, roomUsage.Target())

	bookingUsage, _ := NewServiceUsage(uuid.New(), &bookingID, nil, 1, decimal.NewFromInt(10))
	assert.Equal(t, ServiceTargetBooking, bookingUsage.Target())

	guestUsage, _ := NewServiceUsage(uuid.New(), nil, nil, 1, decimal.NewFromInt(10))
	assert.Equal(t, ServiceTargetGuest, guestUsage.Target())
}

func TestServiceUsageLifecycle(t *testing.T) {
	t.Run("pending to transferred to completed", func(t *testing.T) {
		usage, _ := NewServiceUsage(uuid.New(), nil, nil, 1, decimal.NewFromInt(10))
		require.NoError(t, usage.TransitionTo(ServiceUsageStatusTransferred))
		require.NoError(t, usage.TransitionTo(ServiceUsageStatusCompleted))
		assert.NotNil(t, usage.CompletedAt)
	})

	t.Run("completed is terminal", func(t *testing.T) {
		usage, _ := NewServiceUsage(uuid.New(), nil, nil, 1, decimal.NewFromInt(10))
		require.NoError(t, usage.TransitionTo(ServiceUsageStatusTransferred))
		require.NoError(t, usage.TransitionTo(ServiceUsageStatusCompleted))
		assert.Error(t, usage.TransitionTo(ServiceUsageStatusCancelled))
	})

	t.Run("cannot skip transferred via transition", func(t *testing.T) {
		usage, _ := NewServiceUsage(uuid.New(), nil, nil, 1, decimal.NewFromInt(10))
		assert.Error(t, usage.TransitionTo(ServiceUsageStatusCompleted))
	})

	t.Run("quantity editable only while pending", func(t *testing.T) {
		usage, _ := NewServiceUsage(uuid.New(), nil, nil, 2, decimal.NewFromInt(15))
		require.NoError(t, usage.UpdateQuantity(5))
		assert.True(t, usage.TotalPrice.Equal(decimal.NewFromInt(75)))

		require.NoError(t, usage.TransitionTo(ServiceUsageStatusTransferred))
		assert.Error(t, usage.UpdateQuantity(1))
	})
}

func TestServiceUsageApplyPayment(t *testing.T) {
	t.Run("full payment auto-completes from pending", func(t *testing.T) {
		usage, _ := NewServiceUsage(uuid.New(), nil, nil, 2, decimal.NewFromInt(20))
		require.NoError(t, usage.ApplyPayment(decimal.NewFromInt(40)))
		assert.Equal(t, ServiceUsageStatusCompleted, usage.Status)
		assert.NotNil(t, usage.CompletedAt)
		assert.True(t, usage.IsFullyPaid())
	})

	t.Run("partial payment keeps the status", func(t *testing.T) {
		usage, _ := NewServiceUsage(uuid.New(), nil, nil, 2, decimal.NewFromInt(20))
		require.NoError(t, usage.ApplyPayment(decimal.NewFromInt(15)))
		assert.Equal(t, ServiceUsageStatusPending, usage.Status)
		assert.True(t, usage.Balance().Equal(decimal.NewFromInt(25)))
	})

	t.Run("overpayment is rejected", func(t *testing.T) {
		usage, _ := NewServiceUsage(uuid.New(), nil, nil, 1, decimal.NewFromInt(20))
		assert.Error(t, usage.ApplyPayment(decimal.NewFromInt(21)))
	})
}

func TestServiceUsageCancel(t *testing.T) {
	t.Run("cancelling zeroes the outstanding charge", func(t *testing.T) {
		usage, _ := NewServiceUsage(uuid.New(), nil, nil, 3, decimal.NewFromInt(10))
		require.NoError(t, usage.ApplyPayment(decimal.NewFromInt(10)))
		require.NoError(t, usage.Cancel())
		assert.True(t, usage.IsCancelled())
		assert.True(t, usage.TotalPrice.IsZero())
		assert.True(t, usage.TotalPaid.Equal(decimal.NewFromInt(10)))
	})

	t.Run("terminal states cannot be cancelled", func(t *testing.T) {
		usage, _ := NewServiceUsage(uuid.New(), nil, nil, 1, decimal.NewFromInt(10))
		require.NoError(t, usage.ApplyPayment(decimal.NewFromInt(10)))
		assert.Error(t, usage.Cancel())
	})
}
