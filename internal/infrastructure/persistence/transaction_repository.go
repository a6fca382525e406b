package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/hotel/backend/internal/domain/billing"
	"github.com/hotel/backend/internal/domain/shared"
	"github.com/hotel/backend/internal/infrastructure/persistence/models"
)

// GormTransactionRepository implements billing.TransactionRepository using GORM
type GormTransactionRepository struct {
	db *gorm.DB
}

// NewGormTransactionRepository creates a new GormTransactionRepository
func NewGormTransactionRepository(db *gorm.DB) *GormTransactionRepository {
	return &GormTransactionRepository{db: db}
}

// Create inserts a new transaction header
func (r *GormTransactionRepository) Create(ctx context.Context, tx *billing.Transaction) error {
	model := models.TransactionModelFromDomain(tx)
	return r.db.WithContext(ctx).Create(model).Error
}

// FindByID finds a transaction by its ID
func (r *GormTransactionRepository) FindByID(ctx context.Context, id uuid.UUID) (*billing.Transaction, error) {
	var model models.TransactionModel
	if err := r.db.WithContext(ctx).
		First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByBooking finds the transactions of a booking, most recent first
func (r *GormTransactionRepository) FindByBooking(ctx context.Context, bookingID uuid.UUID, filter shared.Filter) (shared.Paginated[*billing.Transaction], error) {
	var transactionModels []models.TransactionModel
	var total int64

	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = shared.DefaultFilter().PageSize
	}

	if err := r.db.WithContext(ctx).
		Model(&models.TransactionModel{}).
		Where("booking_id = ?", bookingID).
		Count(&total).Error; err != nil {
		return shared.Paginated[*billing.Transaction]{}, err
	}

	query := r.db.WithContext(ctx).
		Where("booking_id = ?", bookingID).
		Order("occurred_at DESC")
	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}
	if err := query.Find(&transactionModels).Error; err != nil {
		return shared.Paginated[*billing.Transaction]{}, err
	}

	transactions := make([]*billing.Transaction, len(transactionModels))
	for i, model := range transactionModels {
		transactions[i] = model.ToDomain()
	}
	return shared.NewPaginated(transactions, total, filter.Page, filter.PageSize), nil
}
