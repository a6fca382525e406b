package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hotel/backend/internal/domain/billing"
	"github.com/hotel/backend/internal/domain/shared"
	"github.com/hotel/backend/internal/infrastructure/persistence/models"
)

func newTransactionForTest(t *testing.T, bookingID *uuid.UUID, occurredAt time.Time) *billing.Transaction {
	t.Helper()
	tx, err := billing.NewTransaction(bookingID, billing.TransactionTypeRoomCharge, "CASH", billing.Totals{
		Base:     decimal.NewFromInt(100),
		Discount: decimal.NewFromInt(10),
		Amount:   decimal.NewFromInt(90),
	}, uuid.New())
	require.NoError(t, err)
	tx.OccurredAt = occurredAt
	return tx
}

func TestGormTransactionRepository(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t, &models.TransactionModel{})
	repo := NewGormTransactionRepository(db)

	t.Run("FindByID returns not found for unknown id", func(t *testing.T) {
		_, err := repo.FindByID(ctx, uuid.New())
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("Create and FindByID round-trip", func(t *testing.T) {
		bookingID := uuid.New()
		tx := newTransactionForTest(t, &bookingID, time.Now())
		require.NoError(t, repo.Create(ctx, tx))

		found, err := repo.FindByID(ctx, tx.ID)
		require.NoError(t, err)
		require.NotNil(t, found.BookingID)
		assert.Equal(t, bookingID, *found.BookingID)
		assert.Equal(t, billing.TransactionStatusCompleted, found.Status)
		assert.True(t, decimal.NewFromInt(90).Equal(found.Amount))
	})

	t.Run("FindByBooking paginates most recent first", func(t *testing.T) {
		bookingID := uuid.New()
		base := time.Now().Add(-time.Hour)
		oldest := newTransactionForTest(t, &bookingID, base)
		middle := newTransactionForTest(t, &bookingID, base.Add(10*time.Minute))
		newest := newTransactionForTest(t, &bookingID, base.Add(20*time.Minute))
		for _, tx := range []*billing.Transaction{oldest, middle, newest} {
			require.NoError(t, repo.Create(ctx, tx))
		}

		page, err := repo.FindByBooking(ctx, bookingID, shared.Filter{Page: 1, PageSize: 2})
		require.NoError(t, err)
		assert.Equal(t, int64(3), page.Total)
		assert.Equal(t, 2, page.TotalPages)
		require.Len(t, page.Items, 2)
		assert.Equal(t, newest.ID, page.Items[0].ID)
		assert.Equal(t, middle.ID, page.Items[1].ID)

		page, err = repo.FindByBooking(ctx, bookingID, shared.Filter{Page: 2, PageSize: 2})
		require.NoError(t, err)
		require.Len(t, page.Items, 1)
		assert.Equal(t, oldest.ID, page.Items[0].ID)
	})

	t.Run("FindByBooking ignores other bookings", func(t *testing.T) {
		bookingID := uuid.New()
		page, err := repo.FindByBooking(ctx, bookingID, shared.Filter{})
		require.NoError(t, err)
		assert.Equal(t, int64(0), page.Total)
		assert.Empty(t, page.Items)
	})
}

func TestGormTransactionDetailRepository(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t, &models.TransactionDetailModel{})
	repo := NewGormTransactionDetailRepository(db)

	roomLine := func(roomID uuid.UUID) billing.ChargeLine {
		return billing.ChargeLine{
			BookingRoomID:  &roomID,
			BaseAmount:     decimal.NewFromInt(100),
			DiscountAmount: decimal.NewFromInt(20),
		}
	}

	t.Run("FindByTransaction returns the allocation rows", func(t *testing.T) {
		txID := uuid.New()
		base := time.Now().Add(-time.Hour)
		first, err := billing.NewTransactionDetail(&txID, roomLine(uuid.New()))
		require.NoError(t, err)
		first.CreatedAt = base
		second, err := billing.NewTransactionDetail(&txID, roomLine(uuid.New()))
		require.NoError(t, err)
		second.CreatedAt = base.Add(time.Minute)

		require.NoError(t, repo.Create(ctx, first))
		require.NoError(t, repo.Create(ctx, second))

		details, err := repo.FindByTransaction(ctx, txID)
		require.NoError(t, err)
		require.Len(t, details, 2)
		assert.Equal(t, first.ID, details[0].ID)
		assert.True(t, decimal.NewFromInt(80).Equal(details[0].Amount))
	})

	t.Run("FindByServiceUsage finds standalone settlements", func(t *testing.T) {
		usageID := uuid.New()
		detail, err := billing.NewTransactionDetail(nil, billing.ChargeLine{
			ServiceUsageID: &usageID,
			BaseAmount:     decimal.NewFromInt(45),
			DiscountAmount: decimal.Zero,
		})
		require.NoError(t, err)
		require.NoError(t, repo.Create(ctx, detail))

		details, err := repo.FindByServiceUsage(ctx, usageID)
		require.NoError(t, err)
		require.Len(t, details, 1)
		assert.Nil(t, details[0].TransactionID)
		assert.True(t, decimal.NewFromInt(45).Equal(details[0].Amount))
	})
}
