// Package trackingrepo provides data transfer objects and mapping functions
// for the append-only position sample stream.
package trackingrepo

import (
	"time"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/tracking"

	"github.com/google/uuid"
)

// LocationSampleDTO represents the database structure for persisting position samples.
// The surrogate bigserial key keeps same-instant samples in arrival order.
type LocationSampleDTO struct {
	ID         int64     `gorm:"type:bigint;primaryKey;autoIncrement"`
	ShipmentID uuid.UUID `gorm:"type:uuid;not null;index"`
	Latitude   float64   `gorm:"type:double precision;not null"`
	Longitude  float64   `gorm:"type:double precision;not null"`
	CreatedAt  time.Time `gorm:"type:timestamptz;not null"`
}

// TableName specifies the database table name for position sample entities.
func (LocationSampleDTO) TableName() string {
	return "shipment_locations"
}

// fromDomain converts a position sample to its database representation.
func fromDomain(sample *tracking.LocationSample) LocationSampleDTO {
	return LocationSampleDTO{
		ShipmentID: sample.ShipmentID().Bytes(),
		Latitude:   sample.Point().Lat(),
		Longitude:  sample.Point().Long(),
		CreatedAt:  sample.CreatedAt(),
	}
}

// toDomain converts a database DTO to a position sample.
func toDomain(dto LocationSampleDTO) (*tracking.LocationSample, error) {
	shipmentID, err := kernel.UUIDFromBytes(dto.ShipmentID[:])
	if err != nil {
		return nil, err
	}

	point, err := kernel.NewGeoPoint(dto.Latitude, dto.Longitude)
	if err != nil {
		return nil, err
	}

	return tracking.RestoreLocationSample(shipmentID, point, dto.CreatedAt)
}
