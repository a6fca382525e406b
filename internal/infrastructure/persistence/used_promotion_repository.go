package persistence

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/hotel/backend/internal/domain/promotion"
	"github.com/hotel/backend/internal/infrastructure/persistence/models"
)

// GormUsedPromotionRepository implements promotion.UsedPromotionRepository using GORM
type GormUsedPromotionRepository struct {
	db *gorm.DB
}

// NewGormUsedPromotionRepository creates a new GormUsedPromotionRepository
func NewGormUsedPromotionRepository(db *gorm.DB) *GormUsedPromotionRepository {
	return &GormUsedPromotionRepository{db: db}
}

// Create appends one discount application record
func (r *GormUsedPromotionRepository) Create(ctx context.Context, up *promotion.UsedPromotion) error {
	model := models.UsedPromotionModelFromDomain(up)
	return r.db.WithContext(ctx).Create(model).Error
}

// FindByTransaction lists the discount records for a transaction
func (r *GormUsedPromotionRepository) FindByTransaction(ctx context.Context, transactionID uuid.UUID) ([]promotion.UsedPromotion, error) {
	var usedModels []models.UsedPromotionModel
	if err := r.db.WithContext(ctx).
		Where("transaction_id = ?", transactionID).
		Order("created_at ASC").
		Find(&usedModels).Error; err != nil {
		return nil, err
	}
	used := make([]promotion.UsedPromotion, len(usedModels))
	for i, model := range usedModels {
		used[i] = *model.ToDomain()
	}
	return used, nil
}
