package models

import (
	"encoding/json"

	"github.com/google/uuid"

	"github.com/hotel/backend/internal/domain/activity"
)

// ActivityLogModel is the persistence model for audit entries.
type ActivityLogModel struct {
	BaseModel
	Action     string          `gorm:"type:varchar(60);not null;index"`
	EntityType string          `gorm:"type:varchar(40);not null"`
	EntityID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	ActorID    uuid.UUID       `gorm:"type:uuid;not null"`
	Detail     json.RawMessage `gorm:"type:jsonb"`
}

// TableName returns the table name for GORM
func (ActivityLogModel) TableName() string {
	return "activity_logs"
}

// ToDomain converts the persistence model to a domain Log entity.
func (m *ActivityLogModel) ToDomain() *activity.Log {
	return &activity.Log{
		BaseEntity: m.BaseModel.ToDomain(),
		Action:     m.Action,
		EntityType: m.EntityType,
		EntityID:   m.EntityID,
		ActorID:    m.ActorID,
		Detail:     m.Detail,
	}
}

// FromDomain populates the persistence model from a domain Log entity.
func (m *ActivityLogModel) FromDomain(l *activity.Log) {
	m.FromDomainBaseEntity(l.BaseEntity)
	m.Action = l.Action
	m.EntityType = l.EntityType
	m.EntityID = l.EntityID
	m.ActorID = l.ActorID
	m.Detail = l.Detail
}

// ActivityLogModelFromDomain creates a new persistence model from a domain Log.
func ActivityLogModelFromDomain(l *activity.Log) *ActivityLogModel {
	m := &ActivityLogModel{}
	m.FromDomain(l)
	return m
}
