package promotion

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// PromotionRepository defines the interface for promotion persistence
type PromotionRepository interface {
	// FindByID finds a promotion by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Promotion, error)

	// FindByCode finds a promotion by its unique code
	FindByCode(ctx context.Context, code string) (*Promotion, error)

	// ExistsByCode checks whether a promotion code is taken
	ExistsByCode(ctx context.Context, code string) (bool, error)

	// Save creates or updates a promotion
	Save(ctx context.Context, promo *Promotion) error

	// SaveWithLock saves with optimistic locking; claim quantity decrements
	// ride on this to serialize concurrent claims
	SaveWithLock(ctx context.Context, promo *Promotion) error
}

// CustomerPromotionRepository defines the interface for claimed promotions
type CustomerPromotionRepository interface {
	// FindByID finds a customer promotion by ID
	FindByID(ctx context.Context, id uuid.UUID) (*CustomerPromotion, error)

	// CountByCustomerAndPromotion counts how many claims a customer holds
	// for one promotion, regardless of status
	CountByCustomerAndPromotion(ctx context.Context, customerID, promotionID uuid.UUID) (int64, error)

	// FindAvailableEndedBefore finds AVAILABLE claims whose promotion window
	// ended before the cutoff; used by the periodic expiry sweep
	FindAvailableEndedBefore(ctx context.Context, cutoff time.Time) ([]CustomerPromotion, error)

	// Save creates or updates a customer promotion
	Save(ctx context.Context, cp *CustomerPromotion) error

	// SaveWithLock saves with optimistic locking (version check)
	SaveWithLock(ctx context.Context, cp *CustomerPromotion) error
}

// UsedPromotionRepository persists the immutable discount ledger
type UsedPromotionRepository interface {
	// Create appends one discount application record
	Create(ctx context.Context, up *UsedPromotion) error

	// FindByTransaction lists the discount records for a transaction
	FindByTransaction(ctx context.Context, transactionID uuid.UUID) ([]UsedPromotion, error)
}
