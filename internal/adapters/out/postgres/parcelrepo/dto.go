// Package parcelrepo provides data transfer objects and mapping functions for parcel persistence.
// This package implements the repository pattern for the parcel domain aggregate, handling
// the conversion between domain entities and database representations.
package parcelrepo

import (
	"time"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/parcel"

	"github.com/google/uuid"
)

// ParcelDTO represents the database structure for persisting parcel aggregates.
type ParcelDTO struct {
	ID                 uuid.UUID  `gorm:"type:uuid;primaryKey"`
	SenderAgentID      uuid.UUID  `gorm:"type:uuid;not null;index"`
	ReceiverName       string     `gorm:"type:varchar(255);not null"`
	ReceiverPhone      string     `gorm:"type:varchar(32)"`
	ReceiverEmail      string     `gorm:"type:varchar(255)"`
	Address            string     `gorm:"type:text;not null"`
	Status             int        `gorm:"type:int;not null;index"`
	ReceptionMode      int        `gorm:"type:int;not null"`
	FailedAttempts     int        `gorm:"type:int;not null"`
	ProofOfDeliveryURL *string    `gorm:"type:text"`
	SettledAt          *time.Time `gorm:"type:timestamptz"`
	SurveyAccessKey    *string    `gorm:"type:varchar(64)"`
}

// TableName specifies the database table name for parcel entities.
// Overrides GORM's default naming convention to use "parcels" instead of "parcel_dtos".
func (ParcelDTO) TableName() string {
	return "parcels"
}

// fromDomain converts a parcel domain aggregate to its database representation.
func fromDomain(aggregate *parcel.Parcel) ParcelDTO {
	return ParcelDTO{
		ID:                 aggregate.ID().Bytes(),
		SenderAgentID:      aggregate.SenderAgentID().Bytes(),
		ReceiverName:       aggregate.ReceiverName(),
		ReceiverPhone:      aggregate.ReceiverPhone(),
		ReceiverEmail:      aggregate.ReceiverEmail(),
		Address:            aggregate.Address(),
		Status:             int(aggregate.Status()),
		ReceptionMode:      int(aggregate.ReceptionMode()),
		FailedAttempts:     aggregate.FailedAttempts(),
		ProofOfDeliveryURL: aggregate.ProofOfDeliveryURL(),
		SettledAt:          aggregate.SettledAt(),
		SurveyAccessKey:    aggregate.SurveyAccessKey(),
	}
}

// toDomain converts a database DTO to a parcel domain aggregate.
// Reconstructs the aggregate with its persisted state using RestoreParcel.
func toDomain(dto ParcelDTO) (*parcel.Parcel, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	senderAgentID, err := kernel.UUIDFromBytes(dto.SenderAgentID[:])
	if err != nil {
		return nil, err
	}

	return parcel.RestoreParcel(
		id,
		senderAgentID,
		dto.ReceiverName,
		dto.ReceiverPhone,
		dto.ReceiverEmail,
		dto.Address,
		parcel.Status(dto.Status),
		parcel.ReceptionMode(dto.ReceptionMode),
		dto.FailedAttempts,
		dto.ProofOfDeliveryURL,
		dto.SettledAt,
		dto.SurveyAccessKey,
	)
}
