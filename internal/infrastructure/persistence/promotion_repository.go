package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/hotel/backend/internal/domain/promotion"
	"github.com/hotel/backend/internal/domain/shared"
	"github.com/hotel/backend/internal/infrastructure/persistence/models"
)

// GormPromotionRepository implements promotion.PromotionRepository using GORM
type GormPromotionRepository struct {
	db *gorm.DB
}

// NewGormPromotionRepository creates a new GormPromotionRepository
func NewGormPromotionRepository(db *gorm.DB) *GormPromotionRepository {
	return &GormPromotionRepository{db: db}
}

// FindByID finds a promotion by its ID
func (r *GormPromotionRepository) FindByID(ctx context.Context, id uuid.UUID) (*promotion.Promotion, error) {
	var model models.PromotionModel
	if err := r.db.WithContext(ctx).
		First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByCode finds a promotion by its unique code
func (r *GormPromotionRepository) FindByCode(ctx context.Context, code string) (*promotion.Promotion, error) {
	var model models.PromotionModel
	if err := r.db.WithContext(ctx).
		Where("code = ?", code).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// ExistsByCode checks whether a promotion code is taken
func (r *GormPromotionRepository) ExistsByCode(ctx context.Context, code string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.PromotionModel{}).
		Where("code = ?", code).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Save creates or updates a promotion
func (r *GormPromotionRepository) Save(ctx context.Context, promo *promotion.Promotion) error {
	model := models.PromotionModelFromDomain(promo)
	return r.db.WithContext(ctx).Save(model).Error
}

// SaveWithLock saves with optimistic locking. Claim quantity decrements ride
// on this check to serialize concurrent claims of the same promotion.
func (r *GormPromotionRepository) SaveWithLock(ctx context.Context, promo *promotion.Promotion) error {
	expected := promo.Version
	model := models.PromotionModelFromDomain(promo)
	model.Version = expected + 1

	result := r.db.WithContext(ctx).
		Model(model).
		Where("id = ? AND version = ?", promo.ID, expected).
		Updates(model)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrConcurrencyConflict
	}
	promo.IncrementVersion()
	return nil
}
