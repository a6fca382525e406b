package activity

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"

	"github.com/hotel/backend/internal/domain/shared"
)

// Action names for audit entries written by the engine.
const (
	ActionPaymentProcessed  = "payment.processed"
	ActionPromotionClaimed  = "promotion.claimed"
	ActionPromotionExpired  = "promotion.expired"
	ActionPromotionDisabled = "promotion.disabled"
	ActionServiceCreated    = "service_usage.created"
	ActionServiceUpdated    = "service_usage.updated"
	ActionServiceCancelled  = "service_usage.cancelled"
)

// Log is a single append-only audit entry. Rows are never updated or
// deleted.
type Log struct {
	shared.BaseEntity
	Action     string          `json:"action" gorm:"type:varchar(60);not null;index"`
	EntityType string          `json:"entity_type" gorm:"type:varchar(40);not null"`
	EntityID   uuid.UUID       `json:"entity_id" gorm:"type:uuid;not null;index"`
	ActorID    uuid.UUID       `json:"actor_id" gorm:"type:uuid;not null"`
	Detail     json.RawMessage `json:"detail" gorm:"type:jsonb"`
}

// NewLog builds an audit entry. Detail may be nil; anything marshallable is
// accepted and stored as JSON.
func NewLog(action, entityType string, entityID, actorID uuid.UUID, detail any) (*Log, error) {
	if action == "" || entityType == "" {
		return nil, shared.NewDomainError("INVALID_ACTIVITY", "activity action and entity type are required")
	}
	var raw json.RawMessage
	if detail != nil {
		b, err := json.Marshal(detail)
		if err != nil {
			return nil, shared.NewDomainError("INVALID_ACTIVITY", "activity detail is not serializable")
		}
		raw = b
	}
	return &Log{
		BaseEntity: shared.NewBaseEntity(),
		Action:     action,
		EntityType: entityType,
		EntityID:   entityID,
		ActorID:    actorID,
		Detail:     raw,
	}, nil
}

// Repository stores audit entries. Failures to record activity must never
// fail the business operation that produced them.
type Repository interface {
	Create(ctx context.Context, log *Log) error
	FindByEntity(ctx context.Context, entityType string, entityID uuid.UUID, filter shared.Filter) (shared.Paginated[*Log], error)
}
