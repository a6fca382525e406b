package billing

import (
	"context"

	"github.com/google/uuid"

	"github.com/hotel/backend/internal/domain/shared"
)

// TransactionRepository persists transaction headers. Transactions are
// immutable after creation, so there is no save-with-lock variant.
type TransactionRepository interface {
	Create(ctx context.Context, tx *Transaction) error
	FindByID(ctx context.Context, id uuid.UUID) (*Transaction, error)
	FindByBooking(ctx context.Context, bookingID uuid.UUID, filter shared.Filter) (shared.Paginated[*Transaction], error)
}

// TransactionDetailRepository persists allocation lines.
type TransactionDetailRepository interface {
	Create(ctx context.Context, detail *TransactionDetail) error
	FindByTransaction(ctx context.Context, transactionID uuid.UUID) ([]*TransactionDetail, error)
	FindByServiceUsage(ctx context.Context, serviceUsageID uuid.UUID) ([]*TransactionDetail, error)
}
