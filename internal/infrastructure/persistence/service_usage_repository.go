package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/hotel/backend/internal/domain/lodging"
	"github.com/hotel/backend/internal/domain/shared"
	"github.com/hotel/backend/internal/infrastructure/persistence/models"
)

// GormServiceUsageRepository implements lodging.ServiceUsageRepository using GORM
type GormServiceUsageRepository struct {
	db *gorm.DB
}

// NewGormServiceUsageRepository creates a new GormServiceUsageRepository
func NewGormServiceUsageRepository(db *gorm.DB) *GormServiceUsageRepository {
	return &GormServiceUsageRepository{db: db}
}

// FindByID finds a service usage by its ID
func (r *GormServiceUsageRepository) FindByID(ctx context.Context, id uuid.UUID) (*lodging.ServiceUsage, error) {
	var model models.ServiceUsageModel
	if err := r.db.WithContext(ctx).
		First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByBookingRoom finds the non-cancelled usages of a room in creation order
func (r *GormServiceUsageRepository) FindByBookingRoom(ctx context.Context, bookingRoomID uuid.UUID) ([]lodging.ServiceUsage, error) {
	return r.findActive(ctx, "booking_room_id = ?", bookingRoomID)
}

// FindByBooking finds the non-cancelled usages of a booking in creation order
func (r *GormServiceUsageRepository) FindByBooking(ctx context.Context, bookingID uuid.UUID) ([]lodging.ServiceUsage, error) {
	return r.findActive(ctx, "booking_id = ?", bookingID)
}

func (r *GormServiceUsageRepository) findActive(ctx context.Context, cond string, arg uuid.UUID) ([]lodging.ServiceUsage, error) {
	var usageModels []models.ServiceUsageModel
	if err := r.db.WithContext(ctx).
		Where(cond, arg).
		Where("status <> ?", lodging.ServiceUsageStatusCancelled).
		Order("created_at ASC").
		Find(&usageModels).Error; err != nil {
		return nil, err
	}
	usages := make([]lodging.ServiceUsage, len(usageModels))
	for i, model := range usageModels {
		usages[i] = *model.ToDomain()
	}
	return usages, nil
}

// Save creates or updates a service usage
func (r *GormServiceUsageRepository) Save(ctx context.Context, usage *lodging.ServiceUsage) error {
	model := models.ServiceUsageModelFromDomain(usage)
	return r.db.WithContext(ctx).Save(model).Error
}

// SaveWithLock saves with optimistic locking (version check)
func (r *GormServiceUsageRepository) SaveWithLock(ctx context.Context, usage *lodging.ServiceUsage) error {
	expected := usage.Version
	model := models.ServiceUsageModelFromDomain(usage)
	model.Version = expected + 1

	result := r.db.WithContext(ctx).
		Model(model).
		Where("id = ? AND version = ?", usage.ID, expected).
		Updates(model)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrConcurrencyConflict
	}
	usage.IncrementVersion()
	return nil
}
