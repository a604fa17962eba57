// Package outboxrepo provides data transfer objects and mapping functions for
// the transactional outbox. Events are written in the same transaction as the
// business change they announce and drained later by the dispatch job.
package outboxrepo

import (
	"time"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/outbox"

	"github.com/google/uuid"
)

// EventDTO represents the database structure for persisting outbox events.
type EventDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	EventType string    `gorm:"type:varchar(64);not null"`
	Payload   string    `gorm:"type:jsonb;not null"`
	Status    string    `gorm:"type:varchar(16);not null;index"`
	Retries   int       `gorm:"type:int;not null"`
	LastError *string   `gorm:"type:text"`
	CreatedAt time.Time `gorm:"type:timestamptz;not null"`
}

// TableName specifies the database table name for outbox events.
func (EventDTO) TableName() string {
	return "outbox_events"
}

// fromDomain converts an outbox event to its database representation.
func fromDomain(event *outbox.Event) EventDTO {
	return EventDTO{
		ID:        event.ID().Bytes(),
		EventType: event.EventType(),
		Payload:   event.Payload(),
		Status:    string(event.Status()),
		Retries:   event.Retries(),
		LastError: event.LastError(),
		CreatedAt: event.CreatedAt(),
	}
}

// toDomain converts a database DTO to an outbox event.
func toDomain(dto EventDTO) (*outbox.Event, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	return outbox.RestoreEvent(
		id,
		dto.EventType,
		dto.Payload,
		outbox.EventStatus(dto.Status),
		dto.Retries,
		dto.LastError,
		dto.CreatedAt,
	)
}
