package persistence

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/hotel/backend/internal/domain/activity"
	"github.com/hotel/backend/internal/domain/shared"
	"github.com/hotel/backend/internal/infrastructure/persistence/models"
)

// GormActivityLogRepository implements activity.Repository using GORM
type GormActivityLogRepository struct {
	db *gorm.DB
}

// NewGormActivityLogRepository creates a new GormActivityLogRepository
func NewGormActivityLogRepository(db *gorm.DB) *GormActivityLogRepository {
	return &GormActivityLogRepository{db: db}
}

// Create appends an audit entry
func (r *GormActivityLogRepository) Create(ctx context.Context, log *activity.Log) error {
	model := models.ActivityLogModelFromDomain(log)
	return r.db.WithContext(ctx).Create(model).Error
}

// FindByEntity lists the audit entries of one entity, most recent first
func (r *GormActivityLogRepository) FindByEntity(ctx context.Context, entityType string, entityID uuid.UUID, filter shared.Filter) (shared.Paginated[*activity.Log], error) {
	var logModels []models.ActivityLogModel
	var total int64

	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = shared.DefaultFilter().PageSize
	}

	if err := r.db.WithContext(ctx).
		Model(&models.ActivityLogModel{}).
		Where("entity_type = ? AND entity_id = ?", entityType, entityID).
		Count(&total).Error; err != nil {
		return shared.Paginated[*activity.Log]{}, err
	}

	offset := (filter.Page - 1) * filter.PageSize
	if err := r.db.WithContext(ctx).
		Where("entity_type = ? AND entity_id = ?", entityType, entityID).
		Order("created_at DESC").
		Offset(offset).
		Limit(filter.PageSize).
		Find(&logModels).Error; err != nil {
		return shared.Paginated[*activity.Log]{}, err
	}

	logs := make([]*activity.Log, len(logModels))
	for i, model := range logModels {
		logs[i] = model.ToDomain()
	}
	return shared.NewPaginated(logs, total, filter.Page, filter.PageSize), nil
}
