package lodging

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/hotel/backend/internal/domain/activity"
	"github.com/hotel/backend/internal/domain/billing"
	"github.com/hotel/backend/internal/domain/lodging"
	"github.com/hotel/backend/internal/domain/shared"
)

// ServiceUsageService manages the lifecycle of billable service usages:
// creation, quantity edits while pending, status transitions and
// cancellation. Payment-driven completion lives in the payment engine.
type ServiceUsageService struct {
	ledger billing.Ledger
	logger *zap.Logger
}

// NewServiceUsageService creates a new ServiceUsageService
func NewServiceUsageService(ledger billing.Ledger, logger *zap.Logger) *ServiceUsageService {
	return &ServiceUsageService{
		ledger: ledger,
		logger: logger,
	}
}

// CreateServiceUsageRequest carries a new billable service instance. Both
// booking ids absent means a standalone guest service; a room id requires the
// booking id of the room's booking.
type CreateServiceUsageRequest struct {
	ServiceID     uuid.UUID
	BookingID     *uuid.UUID
	BookingRoomID *uuid.UUID
	Quantity      int
	UnitPrice     decimal.Decimal
	ActorID       uuid.UUID
}

// CreateServiceUsage records a new service usage. Room-attached usages are
// checked against the room's booking before they are accepted.
func (s *ServiceUsageService) CreateServiceUsage(ctx context.Context, req CreateServiceUsageRequest) (*lodging.ServiceUsage, error) {
	var usage *lodging.ServiceUsage
	err := s.ledger.Execute(ctx, func(ctx context.Context, repos billing.Repos) error {
		if req.BookingID != nil {
			booking, err := repos.Bookings.FindByID(ctx, *req.BookingID)
			if err != nil {
				return err
			}
			if booking.IsCancelled() {
				return shared.NewDomainError("BOOKING_CANCELLED", "cannot add services to a cancelled booking")
			}
		}
		if req.BookingRoomID != nil {
			room, err := repos.BookingRooms.FindByID(ctx, *req.BookingRoomID)
			if err != nil {
				return err
			}
			if req.BookingID == nil || room.BookingID != *req.BookingID {
				return shared.NewDomainError("ROOM_NOT_IN_BOOKING", "room does not belong to the booking")
			}
		}

		var err error
		usage, err = lodging.NewServiceUsage(req.ServiceID, req.BookingID, req.BookingRoomID, req.Quantity, req.UnitPrice)
		if err != nil {
			return err
		}
		if err := repos.ServiceUsages.Save(ctx, usage); err != nil {
			return fmt.Errorf("failed to save service usage: %w", err)
		}
		s.recordActivity(ctx, repos, activity.ActionServiceCreated, usage.ID, req.ActorID, map[string]any{
			"service_id":  req.ServiceID.String(),
			"quantity":    req.Quantity,
			"total_price": usage.TotalPrice.String(),
		})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return usage, nil
}

// GetServiceUsage loads a service usage by id.
func (s *ServiceUsageService) GetServiceUsage(ctx context.Context, id uuid.UUID) (*lodging.ServiceUsage, error) {
	return s.ledger.Repos().ServiceUsages.FindByID(ctx, id)
}

// UpdateQuantity edits the quantity of a pending usage and recomputes its
// total price.
func (s *ServiceUsageService) UpdateQuantity(ctx context.Context, id uuid.UUID, quantity int, actorID uuid.UUID) (*lodging.ServiceUsage, error) {
	return s.mutate(ctx, id, actorID, activity.ActionServiceUpdated, func(usage *lodging.ServiceUsage) error {
		return usage.UpdateQuantity(quantity)
	})
}

// UpdateStatus moves a usage along its lifecycle, rejecting transitions the
// state machine does not allow.
func (s *ServiceUsageService) UpdateStatus(ctx context.Context, id uuid.UUID, status lodging.ServiceUsageStatus, actorID uuid.UUID) (*lodging.ServiceUsage, error) {
	if status == lodging.ServiceUsageStatusCancelled {
		return s.CancelServiceUsage(ctx, id, actorID)
	}
	return s.mutate(ctx, id, actorID, activity.ActionServiceUpdated, func(usage *lodging.ServiceUsage) error {
		return usage.TransitionTo(status)
	})
}

// CancelServiceUsage cancels a usage. The outstanding charge disappears;
// already-recorded payments stay on the books.
func (s *ServiceUsageService) CancelServiceUsage(ctx context.Context, id uuid.UUID, actorID uuid.UUID) (*lodging.ServiceUsage, error) {
	return s.mutate(ctx, id, actorID, activity.ActionServiceCancelled, func(usage *lodging.ServiceUsage) error {
		return usage.Cancel()
	})
}

func (s *ServiceUsageService) mutate(ctx context.Context, id uuid.UUID, actorID uuid.UUID, action string, fn func(*lodging.ServiceUsage) error) (*lodging.ServiceUsage, error) {
	var usage *lodging.ServiceUsage
	err := s.ledger.Execute(ctx, func(ctx context.Context, repos billing.Repos) error {
		var err error
		usage, err = repos.ServiceUsages.FindByID(ctx, id)
		if err != nil {
			return err
		}
		if err := fn(usage); err != nil {
			return err
		}
		if err := repos.ServiceUsages.SaveWithLock(ctx, usage); err != nil {
			return fmt.Errorf("failed to save service usage: %w", err)
		}
		s.recordActivity(ctx, repos, action, usage.ID, actorID, map[string]any{
			"status":      usage.Status.String(),
			"quantity":    usage.Quantity,
			"total_price": usage.TotalPrice.String(),
		})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return usage, nil
}

func (s *ServiceUsageService) recordActivity(ctx context.Context, repos billing.Repos, action string, entityID, actorID uuid.UUID, detail map[string]any) {
	log, err := activity.NewLog(action, "ServiceUsage", entityID, actorID, detail)
	if err != nil {
		s.logger.Warn("failed to build service usage activity entry", zap.Error(err))
		return
	}
	if err := repos.Activities.Create(ctx, log); err != nil {
		s.logger.Warn("failed to record service usage activity", zap.Error(err))
	}
}
