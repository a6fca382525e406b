package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/hotel/backend/internal/domain/promotion"
	"github.com/hotel/backend/internal/domain/shared"
	"github.com/hotel/backend/internal/infrastructure/persistence/models"
)

// GormCustomerPromotionRepository implements promotion.CustomerPromotionRepository using GORM
type GormCustomerPromotionRepository struct {
	db *gorm.DB
}

// NewGormCustomerPromotionRepository creates a new GormCustomerPromotionRepository
func NewGormCustomerPromotionRepository(db *gorm.DB) *GormCustomerPromotionRepository {
	return &GormCustomerPromotionRepository{db: db}
}

// FindByID finds a customer promotion by its ID
func (r *GormCustomerPromotionRepository) FindByID(ctx context.Context, id uuid.UUID) (*promotion.CustomerPromotion, error) {
	var model models.CustomerPromotionModel
	if err := r.db.WithContext(ctx).
		First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// CountByCustomerAndPromotion counts how many claims a customer holds for
// one promotion, regardless of status
func (r *GormCustomerPromotionRepository) CountByCustomerAndPromotion(ctx context.Context, customerID, promotionID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.CustomerPromotionModel{}).
		Where("customer_id = ? AND promotion_id = ?", customerID, promotionID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// FindAvailableEndedBefore finds AVAILABLE claims whose promotion window
// ended before the cutoff
func (r *GormCustomerPromotionRepository) FindAvailableEndedBefore(ctx context.Context, cutoff time.Time) ([]promotion.CustomerPromotion, error) {
	var claimModels []models.CustomerPromotionModel
	if err := r.db.WithContext(ctx).
		Joins("JOIN promotions ON promotions.id = customer_promotions.promotion_id").
		Where("customer_promotions.status = ?", promotion.CustomerPromotionStatusAvailable).
		Where("promotions.end_date < ?", cutoff).
		Find(&claimModels).Error; err != nil {
		return nil, err
	}
	claims := make([]promotion.CustomerPromotion, len(claimModels))
	for i, model := range claimModels {
		claims[i] = *model.ToDomain()
	}
	return claims, nil
}

// Save creates or updates a customer promotion
func (r *GormCustomerPromotionRepository) Save(ctx context.Context, cp *promotion.CustomerPromotion) error {
	model := models.CustomerPromotionModelFromDomain(cp)
	return r.db.WithContext(ctx).Save(model).Error
}

// SaveWithLock saves with optimistic locking (version check)
func (r *GormCustomerPromotionRepository) SaveWithLock(ctx context.Context, cp *promotion.CustomerPromotion) error {
	expected := cp.Version
	model := models.CustomerPromotionModelFromDomain(cp)
	model.Version = expected + 1

	result := r.db.WithContext(ctx).
		Model(model).
		Where("id = ? AND version = ?", cp.ID, expected).
		Updates(model)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrConcurrencyConflict
	}
	cp.IncrementVersion()
	return nil
}
