// Package shipmentrepo provides data transfer objects and mapping functions for shipment persistence.
// This package implements the repository pattern for the shipment domain aggregate, handling
// the conversion between domain entities and database representations.
package shipmentrepo

import (
	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/shipment"

	"github.com/google/uuid"
)

// ShipmentDTO represents the database structure for persisting shipment aggregates.
// Maps shipment domain entities to relational tables with the parcel legs as
// child rows linked by foreign key.
type ShipmentDTO struct {
	ID                   uuid.UUID      `gorm:"type:uuid;primaryKey"`
	Kind                 int            `gorm:"type:int;not null"`
	Status               int            `gorm:"type:int;not null;index"`
	NextParcelID         *uuid.UUID     `gorm:"type:uuid"`
	ProofOfTransferURL   *string        `gorm:"type:text"`
	DriverID             *uuid.UUID     `gorm:"type:uuid;index"`
	VehicleID            *uuid.UUID     `gorm:"type:uuid"`
	DestinationPartyID   *uuid.UUID     `gorm:"type:uuid"`
	DestinationPartyName string         `gorm:"type:varchar(255)"`
	Legs                 []ParcelLegDTO `gorm:"foreignKey:ShipmentID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the database table name for shipment entities.
// Overrides GORM's default naming convention to use "shipments" instead of "shipment_dtos".
func (ShipmentDTO) TableName() string {
	return "shipments"
}

// ParcelLegDTO represents one parcel's membership row on a shipment.
// The pair (shipment, parcel) is the natural key; a parcel rides a shipment
// at most once. Ordinal preserves the aggregate's leg order across loads.
type ParcelLegDTO struct {
	ShipmentID uuid.UUID `gorm:"type:uuid;primaryKey"`
	ParcelID   uuid.UUID `gorm:"type:uuid;primaryKey"`
	Ordinal    int       `gorm:"type:int;not null"`
	Status     int       `gorm:"type:int;not null"`
}

// TableName specifies the database table name for parcel leg entities.
func (ParcelLegDTO) TableName() string {
	return "shipment_parcel_legs"
}

// fromDomain converts a shipment domain aggregate to its database representation.
// Maps the aggregate and all of its parcel legs.
func fromDomain(aggregate *shipment.Shipment) ShipmentDTO {
	shipmentID := aggregate.ID().Bytes()

	legs := make([]ParcelLegDTO, 0, len(aggregate.Legs()))
	for i, leg := range aggregate.Legs() {
		legs = append(legs, ParcelLegDTO{
			ShipmentID: shipmentID,
			ParcelID:   leg.ParcelID().Bytes(),
			Ordinal:    i,
			Status:     int(leg.Status()),
		})
	}

	return ShipmentDTO{
		ID:                   shipmentID,
		Kind:                 int(aggregate.Kind()),
		Status:               int(aggregate.Status()),
		NextParcelID:         optionalUUIDBytes(aggregate.NextParcelID()),
		ProofOfTransferURL:   aggregate.ProofOfTransferURL(),
		DriverID:             optionalUUIDBytes(aggregate.DriverID()),
		VehicleID:            optionalUUIDBytes(aggregate.VehicleID()),
		DestinationPartyID:   optionalUUIDBytes(aggregate.DestinationPartyID()),
		DestinationPartyName: aggregate.DestinationPartyName(),
		Legs:                 legs,
	}
}

// toDomain converts a database DTO to a shipment domain aggregate.
// Reconstructs the complete aggregate including all parcel legs using RestoreShipment.
func toDomain(dto ShipmentDTO) (*shipment.Shipment, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	nextParcelID, err := optionalUUIDFromBytes(dto.NextParcelID)
	if err != nil {
		return nil, err
	}

	driverID, err := optionalUUIDFromBytes(dto.DriverID)
	if err != nil {
		return nil, err
	}

	vehicleID, err := optionalUUIDFromBytes(dto.VehicleID)
	if err != nil {
		return nil, err
	}

	destinationPartyID, err := optionalUUIDFromBytes(dto.DestinationPartyID)
	if err != nil {
		return nil, err
	}

	legs := make([]shipment.ParcelLeg, 0, len(dto.Legs))
	for _, legDto := range dto.Legs {
		parcelID, legErr := kernel.UUIDFromBytes(legDto.ParcelID[:])
		if legErr != nil {
			return nil, legErr
		}

		leg, legErr := shipment.NewParcelLeg(parcelID, shipment.LegStatus(legDto.Status))
		if legErr != nil {
			return nil, legErr
		}
		legs = append(legs, leg)
	}

	return shipment.RestoreShipment(
		id,
		shipment.Kind(dto.Kind),
		shipment.Status(dto.Status),
		nextParcelID,
		dto.ProofOfTransferURL,
		driverID,
		vehicleID,
		destinationPartyID,
		dto.DestinationPartyName,
		legs,
	)
}

func optionalUUIDBytes(id *kernel.UUID) *uuid.UUID {
	if id == nil {
		return nil
	}
	raw := id.Bytes()
	return &raw
}

func optionalUUIDFromBytes(raw *uuid.UUID) (*kernel.UUID, error) {
	if raw == nil {
		return nil, nil
	}

	id, err := kernel.UUIDFromBytes((*raw)[:])
	if err != nil {
		return nil, err
	}
	return &id, nil
}
