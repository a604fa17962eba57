// Package assignmentrepo provides data transfer objects and mapping functions
// for driver and vehicle assignment persistence.
package assignmentrepo

import (
	"freight/internal/core/domain/model/assignment"
	"freight/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// AssignmentDTO represents the database structure for persisting assignments.
type AssignmentDTO struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	ShipmentID uuid.UUID `gorm:"type:uuid;not null;index"`
	DriverID   uuid.UUID `gorm:"type:uuid;not null"`
	VehicleID  uuid.UUID `gorm:"type:uuid;not null"`
	IsReleased bool      `gorm:"type:boolean;not null"`
}

// TableName specifies the database table name for assignment entities.
func (AssignmentDTO) TableName() string {
	return "assignments"
}

// fromDomain converts an assignment aggregate to its database representation.
func fromDomain(aggregate *assignment.Assignment) AssignmentDTO {
	return AssignmentDTO{
		ID:         aggregate.ID().Bytes(),
		ShipmentID: aggregate.ShipmentID().Bytes(),
		DriverID:   aggregate.DriverID().Bytes(),
		VehicleID:  aggregate.VehicleID().Bytes(),
		IsReleased: aggregate.IsReleased(),
	}
}

// toDomain converts a database DTO to an assignment aggregate.
func toDomain(dto AssignmentDTO) (*assignment.Assignment, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	shipmentID, err := kernel.UUIDFromBytes(dto.ShipmentID[:])
	if err != nil {
		return nil, err
	}

	driverID, err := kernel.UUIDFromBytes(dto.DriverID[:])
	if err != nil {
		return nil, err
	}

	vehicleID, err := kernel.UUIDFromBytes(dto.VehicleID[:])
	if err != nil {
		return nil, err
	}

	return assignment.RestoreAssignment(id, shipmentID, driverID, vehicleID, dto.IsReleased)
}
