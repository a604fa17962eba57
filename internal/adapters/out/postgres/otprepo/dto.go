// Package otprepo provides data transfer objects and mapping functions for
// one-time password persistence. The table holds at most one row per
// (shipment, parcel) pair; issuing again overwrites the row in place.
package otprepo

import (
	"time"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/otp"

	"github.com/google/uuid"
)

// DeliveryOtpDTO represents the database structure for persisting one-time passwords.
type DeliveryOtpDTO struct {
	ShipmentID uuid.UUID `gorm:"type:uuid;primaryKey"`
	ParcelID   uuid.UUID `gorm:"type:uuid;primaryKey"`
	Code       string    `gorm:"type:varchar(16);not null"`
	ExpiresAt  time.Time `gorm:"type:timestamptz;not null"`
	IsValid    bool      `gorm:"type:boolean;not null"`
}

// TableName specifies the database table name for one-time password entities.
func (DeliveryOtpDTO) TableName() string {
	return "delivery_otps"
}

// fromDomain converts a one-time password aggregate to its database representation.
func fromDomain(aggregate *otp.DeliveryOtp) DeliveryOtpDTO {
	return DeliveryOtpDTO{
		ShipmentID: aggregate.ShipmentID().Bytes(),
		ParcelID:   aggregate.ParcelID().Bytes(),
		Code:       aggregate.Code(),
		ExpiresAt:  aggregate.ExpiresAt(),
		IsValid:    aggregate.IsValid(),
	}
}

// toDomain converts a database DTO to a one-time password aggregate.
func toDomain(dto DeliveryOtpDTO) (*otp.DeliveryOtp, error) {
	shipmentID, err := kernel.UUIDFromBytes(dto.ShipmentID[:])
	if err != nil {
		return nil, err
	}

	parcelID, err := kernel.UUIDFromBytes(dto.ParcelID[:])
	if err != nil {
		return nil, err
	}

	return otp.RestoreDeliveryOtp(shipmentID, parcelID, dto.Code, dto.ExpiresAt, dto.IsValid)
}
