package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hotel/backend/internal/domain/promotion"
	"github.com/hotel/backend/internal/domain/shared"
	"github.com/hotel/backend/internal/infrastructure/persistence/models"
)

func newPromotionForTest(t *testing.T, code string, start, end time.Time) *promotion.Promotion {
	t.Helper()
	promo, err := promotion.NewPromotion(
		code,
		promotion.PromotionTypePercentage,
		promotion.PromotionScopeAll,
		decimal.NewFromInt(10),
		nil,
		decimal.Zero,
		nil,
		1,
		start, end,
	)
	require.NoError(t, err)
	return promo
}

func TestGormPromotionRepository(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t, &models.PromotionModel{})
	repo := NewGormPromotionRepository(db)

	start := time.Now().Add(-24 * time.Hour)
	end := time.Now().Add(24 * time.Hour)

	t.Run("FindByCode returns not found for unknown code", func(t *testing.T) {
		_, err := repo.FindByCode(ctx, "NOPE")
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("Save and FindByCode round-trip", func(t *testing.T) {
		promo := newPromotionForTest(t, "SUMMER10", start, end)
		require.NoError(t, repo.Save(ctx, promo))

		found, err := repo.FindByCode(ctx, "SUMMER10")
		require.NoError(t, err)
		assert.Equal(t, promo.ID, found.ID)
		assert.Equal(t, promotion.PromotionTypePercentage, found.Type)
		assert.True(t, decimal.NewFromInt(10).Equal(found.Value))
	})

	t.Run("ExistsByCode", func(t *testing.T) {
		promo := newPromotionForTest(t, "WINTER20", start, end)
		require.NoError(t, repo.Save(ctx, promo))

		exists, err := repo.ExistsByCode(ctx, "WINTER20")
		require.NoError(t, err)
		assert.True(t, exists)

		exists, err = repo.ExistsByCode(ctx, "MISSING")
		require.NoError(t, err)
		assert.False(t, exists)
	})

	t.Run("SaveWithLock rejects a stale version", func(t *testing.T) {
		promo := newPromotionForTest(t, "LOCKED", start, end)
		require.NoError(t, repo.Save(ctx, promo))

		stale, err := repo.FindByID(ctx, promo.ID)
		require.NoError(t, err)

		promo.Disable(time.Now())
		require.NoError(t, repo.SaveWithLock(ctx, promo))

		err = repo.SaveWithLock(ctx, stale)
		assert.ErrorIs(t, err, shared.ErrConcurrencyConflict)
	})
}

func TestGormCustomerPromotionRepository(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t, &models.PromotionModel{}, &models.CustomerPromotionModel{})
	promos := NewGormPromotionRepository(db)
	repo := NewGormCustomerPromotionRepository(db)

	t.Run("CountByCustomerAndPromotion counts all statuses", func(t *testing.T) {
		customerID := uuid.New()
		promotionID := uuid.New()

		first, err := promotion.NewCustomerPromotion(customerID, promotionID)
		require.NoError(t, err)
		second, err := promotion.NewCustomerPromotion(customerID, promotionID)
		require.NoError(t, err)
		require.NoError(t, second.MarkExpired())
		other, err := promotion.NewCustomerPromotion(uuid.New(), promotionID)
		require.NoError(t, err)

		for _, claim := range []*promotion.CustomerPromotion{first, second, other} {
			require.NoError(t, repo.Save(ctx, claim))
		}

		count, err := repo.CountByCustomerAndPromotion(ctx, customerID, promotionID)
		require.NoError(t, err)
		assert.Equal(t, int64(2), count)
	})

	t.Run("FindAvailableEndedBefore joins on the promotion window", func(t *testing.T) {
		now := time.Now()
		ended := newPromotionForTest(t, "ENDED", now.Add(-48*time.Hour), now.Add(-24*time.Hour))
		running := newPromotionForTest(t, "RUNNING", now.Add(-24*time.Hour), now.Add(24*time.Hour))
		require.NoError(t, promos.Save(ctx, ended))
		require.NoError(t, promos.Save(ctx, running))

		staleClaim, err := promotion.NewCustomerPromotion(uuid.New(), ended.ID)
		require.NoError(t, err)
		usedClaim, err := promotion.NewCustomerPromotion(uuid.New(), ended.ID)
		require.NoError(t, err)
		require.NoError(t, usedClaim.MarkUsed(uuid.New()))
		liveClaim, err := promotion.NewCustomerPromotion(uuid.New(), running.ID)
		require.NoError(t, err)

		for _, claim := range []*promotion.CustomerPromotion{staleClaim, usedClaim, liveClaim} {
			require.NoError(t, repo.Save(ctx, claim))
		}

		claims, err := repo.FindAvailableEndedBefore(ctx, now)
		require.NoError(t, err)
		require.Len(t, claims, 1)
		assert.Equal(t, staleClaim.ID, claims[0].ID)
	})
}

func TestGormUsedPromotionRepository(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t, &models.UsedPromotionModel{})
	repo := NewGormUsedPromotionRepository(db)

	t.Run("FindByTransaction returns the redemptions of one transaction", func(t *testing.T) {
		txID := uuid.New()
		mine, err := promotion.NewUsedPromotion(uuid.New(), decimal.NewFromInt(15), uuid.New(), &txID)
		require.NoError(t, err)
		otherTx := uuid.New()
		other, err := promotion.NewUsedPromotion(uuid.New(), decimal.NewFromInt(5), uuid.New(), &otherTx)
		require.NoError(t, err)

		require.NoError(t, repo.Create(ctx, mine))
		require.NoError(t, repo.Create(ctx, other))

		used, err := repo.FindByTransaction(ctx, txID)
		require.NoError(t, err)
		require.Len(t, used, 1)
		assert.Equal(t, mine.ID, used[0].ID)
		assert.True(t, decimal.NewFromInt(15).Equal(used[0].DiscountAmount))
	})
}
