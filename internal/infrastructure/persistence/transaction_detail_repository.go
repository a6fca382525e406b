package persistence

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/hotel/backend/internal/domain/billing"
	"github.com/hotel/backend/internal/infrastructure/persistence/models"
)

// GormTransactionDetailRepository implements billing.TransactionDetailRepository using GORM
type GormTransactionDetailRepository struct {
	db *gorm.DB
}

// NewGormTransactionDetailRepository creates a new GormTransactionDetailRepository
func NewGormTransactionDetailRepository(db *gorm.DB) *GormTransactionDetailRepository {
	return &GormTransactionDetailRepository{db: db}
}

// Create inserts a new allocation line
func (r *GormTransactionDetailRepository) Create(ctx context.Context, detail *billing.TransactionDetail) error {
	model := models.TransactionDetailModelFromDomain(detail)
	return r.db.WithContext(ctx).Create(model).Error
}

// FindByTransaction lists the lines of a transaction in creation order
func (r *GormTransactionDetailRepository) FindByTransaction(ctx context.Context, transactionID uuid.UUID) ([]*billing.TransactionDetail, error) {
	return r.find(ctx, "transaction_id = ?", transactionID)
}

// FindByServiceUsage lists the lines that settled a service usage
func (r *GormTransactionDetailRepository) FindByServiceUsage(ctx context.Context, serviceUsageID uuid.UUID) ([]*billing.TransactionDetail, error) {
	return r.find(ctx, "service_usage_id = ?", serviceUsageID)
}

func (r *GormTransactionDetailRepository) find(ctx context.Context, cond string, arg uuid.UUID) ([]*billing.TransactionDetail, error) {
	var detailModels []models.TransactionDetailModel
	if err := r.db.WithContext(ctx).
		Where(cond, arg).
		Order("created_at ASC").
		Find(&detailModels).Error; err != nil {
		return nil, err
	}
	details := make([]*billing.TransactionDetail, len(detailModels))
	for i, model := range detailModels {
		details[i] = model.ToDomain()
	}
	return details, nil
}
