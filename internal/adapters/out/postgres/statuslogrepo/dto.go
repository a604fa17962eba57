// Package statuslogrepo provides data transfer objects and mapping functions
// for the append-only status ledger. Rows are inserted and read back in
// insertion order; nothing ever updates or deletes them.
package statuslogrepo

import (
	"time"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/statuslog"

	"github.com/google/uuid"
)

// EntryDTO represents the database structure for persisting ledger entries.
// The surrogate bigserial key preserves insertion order for entries created
// in the same instant.
type EntryDTO struct {
	ID          int64      `gorm:"type:bigint;primaryKey;autoIncrement"`
	Subject     int        `gorm:"type:int;not null;index:idx_status_log_subject"`
	SubjectID   uuid.UUID  `gorm:"type:uuid;not null;index:idx_status_log_subject"`
	Status      string     `gorm:"type:varchar(64);not null"`
	Description string     `gorm:"type:text"`
	ActorID     *uuid.UUID `gorm:"type:uuid"`
	CreatedAt   time.Time  `gorm:"type:timestamptz;not null"`
}

// TableName specifies the database table name for ledger entries.
func (EntryDTO) TableName() string {
	return "status_log"
}

// fromDomain converts a ledger entry to its database representation.
func fromDomain(entry *statuslog.Entry) EntryDTO {
	var actorID *uuid.UUID
	if entry.ActorID() != nil {
		raw := entry.ActorID().Bytes()
		actorID = &raw
	}

	return EntryDTO{
		Subject:     int(entry.Subject()),
		SubjectID:   entry.SubjectID().Bytes(),
		Status:      entry.Status(),
		Description: entry.Description(),
		ActorID:     actorID,
		CreatedAt:   entry.CreatedAt(),
	}
}

// toDomain converts a database DTO to a ledger entry.
func toDomain(dto EntryDTO) (*statuslog.Entry, error) {
	subjectID, err := kernel.UUIDFromBytes(dto.SubjectID[:])
	if err != nil {
		return nil, err
	}

	var actorID *kernel.UUID
	if dto.ActorID != nil {
		id, actorErr := kernel.UUIDFromBytes((*dto.ActorID)[:])
		if actorErr != nil {
			return nil, actorErr
		}
		actorID = &id
	}

	return statuslog.RestoreEntry(
		statuslog.Subject(dto.Subject),
		subjectID,
		dto.Status,
		dto.Description,
		actorID,
		dto.CreatedAt,
	)
}
