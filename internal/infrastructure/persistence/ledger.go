package persistence

import (
	"context"

	"gorm.io/gorm"

	"github.com/hotel/backend/internal/domain/billing"
)

// GormLedger implements billing.Ledger on a GORM connection. Execute opens a
// database transaction and hands the callback a Repos bound to it, so every
// repository call inside the callback commits or rolls back as one unit.
type GormLedger struct {
	db *gorm.DB
}

// NewGormLedger creates a new GormLedger
func NewGormLedger(db *gorm.DB) *GormLedger {
	return &GormLedger{db: db}
}

// Repos returns repositories bound to the base connection, outside any
// transaction. Use these for reads and single-aggregate writes.
func (l *GormLedger) Repos() billing.Repos {
	return reposFor(l.db)
}

// Execute runs fn inside one database transaction
func (l *GormLedger) Execute(ctx context.Context, fn func(ctx context.Context, repos billing.Repos) error) error {
	return l.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(ctx, reposFor(tx))
	})
}

func reposFor(db *gorm.DB) billing.Repos {
	return billing.Repos{
		Bookings:           NewGormBookingRepository(db),
		BookingRooms:       NewGormBookingRoomRepository(db),
		ServiceUsages:      NewGormServiceUsageRepository(db),
		Transactions:       NewGormTransactionRepository(db),
		TransactionDetails: NewGormTransactionDetailRepository(db),
		Promotions:         NewGormPromotionRepository(db),
		CustomerPromotions: NewGormCustomerPromotionRepository(db),
		UsedPromotions:     NewGormUsedPromotionRepository(db),
		Activities:         NewGormActivityLogRepository(db),
	}
}
