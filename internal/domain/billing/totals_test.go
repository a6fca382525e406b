package billing

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestAggregateLines(t *testing.T) {
	roomID := uuid.New()
	usageID := uuid.New()

	t.Run("sums bases and line discounts", func(t *testing.T) {
		lines := []ChargeLine{
			{BookingRoomID: &roomID, BaseAmount: decimal.NewFromInt(200), DiscountAmount: decimal.NewFromInt(20)},
			{ServiceUsageID: &usageID, BaseAmount: decimal.NewFromInt(50)},
		}
		totals := AggregateLines(lines, decimal.Zero)
		assert.True(t, totals.Base.Equal(decimal.NewFromInt(250)))
		assert.True(t, totals.Discount.Equal(decimal.NewFromInt(20)))
		assert.True(t, totals.Amount.Equal(decimal.NewFromInt(230)))
	})

	t.Run("folds in the transaction-level discount once", func(t *testing.T) {
		lines := []ChargeLine{
			{BookingRoomID: &roomID, BaseAmount: decimal.NewFromInt(100), DiscountAmount: decimal.NewFromInt(10)},
		}
		totals := AggregateLines(lines, decimal.NewFromInt(30))
		assert.True(t, totals.Discount.Equal(decimal.NewFromInt(40)))
		assert.True(t, totals.Amount.Equal(decimal.NewFromInt(60)))
	})

	t.Run("transaction discount is clamped so the net never goes negative", func(t *testing.T) {
		lines := []ChargeLine{
			{BookingRoomID: &roomID, BaseAmount: decimal.NewFromInt(100), DiscountAmount: decimal.NewFromInt(80)},
		}
		totals := AggregateLines(lines, decimal.NewFromInt(50))
		assert.True(t, totals.Discount.Equal(decimal.NewFromInt(100)))
		assert.True(t, totals.Amount.IsZero())
	})

	t.Run("base equals discount plus amount", func(t *testing.T) {
		lines := []ChargeLine{
			{BookingRoomID: &roomID, BaseAmount: decimal.NewFromFloat(123.45), DiscountAmount: decimal.NewFromFloat(12.34)},
			{ServiceUsageID: &usageID, BaseAmount: decimal.NewFromFloat(67.89)},
		}
		totals := AggregateLines(lines, decimal.NewFromFloat(5.55))
		assert.True(t, totals.Base.Equal(totals.Discount.Add(totals.Amount)))
	})
}
