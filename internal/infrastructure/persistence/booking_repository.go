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

// GormBookingRepository implements lodging.BookingRepository using GORM
type GormBookingRepository struct {
	db *gorm.DB
}

// NewGormBookingRepository creates a new GormBookingRepository
func NewGormBookingRepository(db *gorm.DB) *GormBookingRepository {
	return &GormBookingRepository{db: db}
}

// FindByID finds a booking by its ID
func (r *GormBookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*lodging.Booking, error) {
	var model models.BookingModel
	if err := r.db.WithContext(ctx).
		First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByCustomer finds bookings for a customer, most recent first
func (r *GormBookingRepository) FindByCustomer(ctx context.Context, customerID uuid.UUID, filter shared.Filter) ([]lodging.Booking, error) {
	var bookingModels []models.BookingModel
	query := r.db.WithContext(ctx).
		Where("customer_id = ?", customerID).
		Order("created_at DESC")
	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}
	if err := query.Find(&bookingModels).Error; err != nil {
		return nil, err
	}
	bookings := make([]lodging.Booking, len(bookingModels))
	for i, model := range bookingModels {
		bookings[i] = *model.ToDomain()
	}
	return bookings, nil
}

// Save creates or updates a booking
func (r *GormBookingRepository) Save(ctx context.Context, booking *lodging.Booking) error {
	model := models.BookingModelFromDomain(booking)
	return r.db.WithContext(ctx).Save(model).Error
}

// SaveWithLock saves with optimistic locking. The row is updated only when
// its stored version still matches the version the booking was loaded at;
// on success the version advances by one on both the row and the entity.
func (r *GormBookingRepository) SaveWithLock(ctx context.Context, booking *lodging.Booking) error {
	expected := booking.Version
	model := models.BookingModelFromDomain(booking)
	model.Version = expected + 1

	result := r.db.WithContext(ctx).
		Model(model).
		Where("id = ? AND version = ?", booking.ID, expected).
		Updates(model)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrConcurrencyConflict
	}
	booking.IncrementVersion()
	return nil
}
