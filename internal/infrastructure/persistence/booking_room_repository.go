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

// GormBookingRoomRepository implements lodging.BookingRoomRepository using GORM
type GormBookingRoomRepository struct {
	db *gorm.DB
}

// NewGormBookingRoomRepository creates a new GormBookingRoomRepository
func NewGormBookingRoomRepository(db *gorm.DB) *GormBookingRoomRepository {
	return &GormBookingRoomRepository{db: db}
}

// FindByID finds a booking room by its ID
func (r *GormBookingRoomRepository) FindByID(ctx context.Context, id uuid.UUID) (*lodging.BookingRoom, error) {
	var model models.BookingRoomModel
	if err := r.db.WithContext(ctx).
		First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByBooking finds all rooms of a booking in room order
func (r *GormBookingRoomRepository) FindByBooking(ctx context.Context, bookingID uuid.UUID) ([]lodging.BookingRoom, error) {
	var roomModels []models.BookingRoomModel
	if err := r.db.WithContext(ctx).
		Where("booking_id = ?", bookingID).
		Order("room_order ASC, created_at ASC").
		Find(&roomModels).Error; err != nil {
		return nil, err
	}
	rooms := make([]lodging.BookingRoom, len(roomModels))
	for i, model := range roomModels {
		rooms[i] = *model.ToDomain()
	}
	return rooms, nil
}

// FindByIDs finds the given rooms; the result carries only the rows found
func (r *GormBookingRoomRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]lodging.BookingRoom, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var roomModels []models.BookingRoomModel
	if err := r.db.WithContext(ctx).
		Where("id IN ?", ids).
		Order("room_order ASC, created_at ASC").
		Find(&roomModels).Error; err != nil {
		return nil, err
	}
	rooms := make([]lodging.BookingRoom, len(roomModels))
	for i, model := range roomModels {
		rooms[i] = *model.ToDomain()
	}
	return rooms, nil
}

// Save creates or updates a booking room
func (r *GormBookingRoomRepository) Save(ctx context.Context, room *lodging.BookingRoom) error {
	model := models.BookingRoomModelFromDomain(room)
	return r.db.WithContext(ctx).Save(model).Error
}

// SaveWithLock saves with optimistic locking (version check)
func (r *GormBookingRoomRepository) SaveWithLock(ctx context.Context, room *lodging.BookingRoom) error {
	expected := room.Version
	model := models.BookingRoomModelFromDomain(room)
	model.Version = expected + 1

	result := r.db.WithContext(ctx).
		Model(model).
		Where("id = ? AND version = ?", room.ID, expected).
		Updates(model)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrConcurrencyConflict
	}
	room.IncrementVersion()
	return nil
}
