package billing

import (
	"context"

	"github.com/hotel/backend/internal/domain/activity"
	"github.com/hotel/backend/internal/domain/lodging"
	"github.com/hotel/backend/internal/domain/promotion"
)

// Repos bundles every repository a payment touches. Inside Ledger.Execute
// all of them operate on the same database transaction.
type Repos struct {
	Bookings           lodging.BookingRepository
	BookingRooms       lodging.BookingRoomRepository
	ServiceUsages      lodging.ServiceUsageRepository
	Transactions       TransactionRepository
	TransactionDetails TransactionDetailRepository
	Promotions         promotion.PromotionRepository
	CustomerPromotions promotion.CustomerPromotionRepository
	UsedPromotions     promotion.UsedPromotionRepository
	Activities         activity.Repository
}

// Ledger is the single entry point for atomic allocation work. Execute runs
// fn inside one database transaction: every write fn performs through the
// supplied Repos commits together or not at all.
type Ledger interface {
	Repos() Repos
	Execute(ctx context.Context, fn func(ctx context.Context, repos Repos) error) error
}
