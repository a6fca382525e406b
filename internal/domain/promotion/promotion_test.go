package promotion

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func activeWindow() (time.Time, time.Time) {
	now := time.Now()
	return now.Add(-24 * time.Hour), now.Add(24 * time.Hour)
}

func newPercentPromotion(t *testing.T, value int64, maxDiscount *decimal.Decimal) *Promotion {
	t.Helper()
	start, end := activeWindow()
	p, err := NewPromotion("SUMMER", PromotionTypePercentage, PromotionScopeAll,
		decimal.NewFromInt(value), maxDiscount, decimal.Zero, nil, 1, start, end)
	require.NoError(t, err)
	return p
}

func TestNewPromotion(t *testing.T) {
	start, end := activeWindow()

	t.Run("normalizes the code to upper case", func(t *testing.T) {
		p, err := NewPromotion("  spring10 ", PromotionTypePercentage, PromotionScopeRoom,
			decimal.NewFromInt(10), nil, decimal.Zero, nil, 2, start, end)
		require.NoError(t, err)
		assert.Equal(t, "SPRING10", p.Code)
		assert.Equal(t, 2, p.PerCustomerLimit)
	})

	t.Run("seeds remaining quantity from total", func(t *testing.T) {
		qty := 50
		p, err := NewPromotion("LIMITED", PromotionTypeFixedAmount, PromotionScopeAll,
			decimal.NewFromInt(5), nil, decimal.Zero, &qty, 1, start, end)
		require.NoError(t, err)
		require.NotNil(t, p.RemainingQty)
		assert.Equal(t, 50, *p.RemainingQty)
	})

	t.Run("percentage above 100 is rejected", func(t *testing.T) {
		_, err := NewPromotion("BIG", PromotionTypePercentage, PromotionScopeAll,
			decimal.NewFromInt(101), nil, decimal.Zero, nil, 1, start, end)
		assert.Error(t, err)
	})

	t.Run("end before start is rejected", func(t *testing.T) {
		_, err := NewPromotion("BACKWARDS", PromotionTypePercentage, PromotionScopeAll,
			decimal.NewFromInt(10), nil, decimal.Zero, nil, 1, end, start)
		assert.Error(t, err)
	})

	t.Run("empty code is rejected", func(t *testing.T) {
		_, err := NewPromotion("   ", PromotionTypePercentage, PromotionScopeAll,
			decimal.NewFromInt(10), nil, decimal.Zero, nil, 1, start, end)
		assert.Error(t, err)
	})
}

func TestCalculateDiscount(t *testing.T) {
	t.Run("percentage of the base", func(t *testing.T) {
		p := newPercentPromotion(t, 10, nil)
		got := p.CalculateDiscount(decimal.NewFromInt(250))
		assert.True(t, got.Equal(decimal.NewFromInt(25)))
	})

	t.Run("percentage capped by max discount", func(t *testing.T) {
		maxDiscount := decimal.NewFromInt(20)
		p := newPercentPromotion(t, 10, &maxDiscount)
		got := p.CalculateDiscount(decimal.NewFromInt(500))
		assert.True(t, got.Equal(decimal.NewFromInt(20)))
	})

	t.Run("fixed amount never exceeds the base", func(t *testing.T) {
		start, end := activeWindow()
		p, err := NewPromotion("FLAT50", PromotionTypeFixedAmount, PromotionScopeAll,
			decimal.NewFromInt(50), nil, decimal.Zero, nil, 1, start, end)
		require.NoError(t, err)

		assert.True(t, p.CalculateDiscount(decimal.NewFromInt(30)).Equal(decimal.NewFromInt(30)))
		assert.True(t, p.CalculateDiscount(decimal.NewFromInt(80)).Equal(decimal.NewFromInt(50)))
	})

	t.Run("base below minimum yields zero", func(t *testing.T) {
		start, end := activeWindow()
		p, err := NewPromotion("MIN100", PromotionTypePercentage, PromotionScopeAll,
			decimal.NewFromInt(10), nil, decimal.NewFromInt(100), nil, 1, start, end)
		require.NoError(t, err)

		assert.True(t, p.CalculateDiscount(decimal.NewFromInt(99)).IsZero())
		assert.True(t, p.CalculateDiscount(decimal.NewFromInt(100)).Equal(decimal.NewFromInt(10)))
	})

	t.Run("zero or negative base yields zero", func(t *testing.T) {
		p := newPercentPromotion(t, 10, nil)
		assert.True(t, p.CalculateDiscount(decimal.Zero).IsZero())
		assert.True(t, p.CalculateDiscount(decimal.NewFromInt(-5)).IsZero())
	})

	t.Run("rounds half away from zero to cents", func(t *testing.T) {
		start, end := activeWindow()
		p, err := NewPromotion("ODD", PromotionTypePercentage, PromotionScopeAll,
			decimal.NewFromFloat(12.5), nil, decimal.Zero, nil, 1, start, end)
		require.NoError(t, err)

		// 12.5% of 10.01 = 1.25125 -> 1.25
		assert.True(t, p.CalculateDiscount(decimal.NewFromFloat(10.01)).Equal(decimal.NewFromFloat(1.25)))
		// 12.5% of 10.02 = 1.2525 -> 1.25, of 10.04 = 1.255 -> 1.26
		assert.True(t, p.CalculateDiscount(decimal.NewFromFloat(10.04)).Equal(decimal.NewFromFloat(1.26)))
	})
}

func TestPromotionClaimability(t *testing.T) {
	now := time.Now()

	t.Run("active promotion is claimable", func(t *testing.T) {
		p := newPercentPromotion(t, 10, nil)
		assert.True(t, p.IsClaimable(now))
	})

	t.Run("disabled promotion is not claimable", func(t *testing.T) {
		p := newPercentPromotion(t, 10, nil)
		p.Disable(now)
		assert.True(t, p.IsDisabled(now))
		assert.False(t, p.IsClaimable(now))
	})

	t.Run("promotion outside the window is not claimable", func(t *testing.T) {
		start, end := activeWindow()
		p, err := NewPromotion("PAST", PromotionTypePercentage, PromotionScopeAll,
			decimal.NewFromInt(10), nil, decimal.Zero, nil, 1, start, end)
		require.NoError(t, err)
		assert.False(t, p.IsClaimable(end.Add(time.Hour)))
	})

	t.Run("exhausted quantity blocks claiming", func(t *testing.T) {
		qty := 1
		start, end := activeWindow()
		p, err := NewPromotion("ONE", PromotionTypePercentage, PromotionScopeAll,
			decimal.NewFromInt(10), nil, decimal.Zero, &qty, 1, start, end)
		require.NoError(t, err)

		require.NoError(t, p.ConsumeQuantity())
		assert.False(t, p.IsClaimable(now))
		assert.Error(t, p.ConsumeQuantity())
	})

	t.Run("unlimited promotion never exhausts", func(t *testing.T) {
		p := newPercentPromotion(t, 10, nil)
		for i := 0; i < 10; i++ {
			require.NoError(t, p.ConsumeQuantity())
		}
		assert.Nil(t, p.RemainingQty)
	})
}
