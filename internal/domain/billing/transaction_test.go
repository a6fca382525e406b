package billing

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTransaction(t *testing.T) {
	bookingID := uuid.New()
	totals := Totals{
		Base:     decimal.NewFromInt(300),
		Discount: decimal.NewFromInt(30),
		Amount:   decimal.NewFromInt(270),
	}

	t.Run("creates a completed transaction", func(t *testing.T) {
		tx, err := NewTransaction(&bookingID, TransactionTypeRoomCharge, "CASH", totals, uuid.New())
		require.NoError(t, err)
		assert.Equal(t, TransactionStatusCompleted, tx.Status)
		assert.True(t, tx.Amount.Equal(decimal.NewFromInt(270)))
		assert.False(t, tx.OccurredAt.IsZero())
		assert.Len(t, tx.GetDomainEvents(), 1)
	})

	t.Run("rejects an unknown type", func(t *testing.T) {
		_, err := NewTransaction(&bookingID, TransactionType("WIRE"), "CASH", totals, uuid.New())
		assert.Error(t, err)
	})

	t.Run("rejects an empty method", func(t *testing.T) {
		_, err := NewTransaction(&bookingID, TransactionTypeDeposit, "", totals, uuid.New())
		assert.Error(t, err)
	})
}

func TestNewTransactionDetail(t *testing.T) {
	txID := uuid.New()
	roomID := uuid.New()

	t.Run("materializes a charge line", func(t *testing.T) {
		line := ChargeLine{
			BookingRoomID:  &roomID,
			BaseAmount:     decimal.NewFromInt(100),
			DiscountAmount: decimal.NewFromInt(25),
		}
		detail, err := NewTransactionDetail(&txID, line)
		require.NoError(t, err)
		assert.Equal(t, &txID, detail.TransactionID)
		assert.True(t, detail.Amount.Equal(decimal.NewFromInt(75)))
	})

	t.Run("nil transaction id is allowed for guest settlements", func(t *testing.T) {
		usageID := uuid.New()
		line := ChargeLine{ServiceUsageID: &usageID, BaseAmount: decimal.NewFromInt(40)}
		detail, err := NewTransactionDetail(nil, line)
		require.NoError(t, err)
		assert.Nil(t, detail.TransactionID)
	})

	t.Run("invalid line is rejected", func(t *testing.T) {
		_, err := NewTransactionDetail(&txID, ChargeLine{BaseAmount: decimal.NewFromInt(10)})
		assert.Error(t, err)
	})
}
