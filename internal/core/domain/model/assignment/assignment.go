// Package assignment holds the exclusivity locks binding a driver and a
// vehicle to an active transfer shipment. A driver or vehicle on an active
// assignment cannot be booked onto another one; the lock is released inside
// the transfer completion transaction.
package assignment

import (
	"errors"

	"freight/internal/core/domain/model/kernel"
)

var (
	// ErrAssignmentIsNotConstructed is returned when an Assignment instance
	// was not created through NewAssignment or RestoreAssignment.
	ErrAssignmentIsNotConstructed = errors.New("Assignment must be created via NewAssignment or RestoreAssignment")

	// ErrAssignmentAlreadyReleased is returned when releasing a lock twice.
	ErrAssignmentAlreadyReleased = errors.New("assignment is already released")
)

// Assignment locks one driver and one vehicle to one transfer shipment.
type Assignment struct {
	id         kernel.UUID
	shipmentID kernel.UUID
	driverID   kernel.UUID
	vehicleID  kernel.UUID
	isReleased bool

	isConstructed bool
}

// NewAssignment creates an active lock for the shipment.
func NewAssignment(
	id kernel.UUID,
	shipmentID kernel.UUID,
	driverID kernel.UUID,
	vehicleID kernel.UUID,
) (*Assignment, error) {
	if err := errors.Join(
		id.Validate(),
		shipmentID.Validate(),
		driverID.Validate(),
		vehicleID.Validate(),
	); err != nil {
		return nil, err
	}

	return &Assignment{
		id:            id,
		shipmentID:    shipmentID,
		driverID:      driverID,
		vehicleID:     vehicleID,
		isConstructed: true,
	}, nil
}

// RestoreAssignment reconstructs an Assignment from persistence.
// This function is intended for repository implementations only.
func RestoreAssignment(
	id kernel.UUID,
	shipmentID kernel.UUID,
	driverID kernel.UUID,
	vehicleID kernel.UUID,
	isReleased bool,
) (*Assignment, error) {
	a, err := NewAssignment(id, shipmentID, driverID, vehicleID)
	if err != nil {
		return nil, err
	}

	a.isReleased = isReleased
	return a, nil
}

// Validate ensures the Assignment instance was properly constructed.
func (a *Assignment) Validate() error {
	if a == nil || !a.isConstructed {
		return ErrAssignmentIsNotConstructed
	}

	return nil
}

// ID returns the assignment's unique identifier.
func (a *Assignment) ID() kernel.UUID {
	return a.id
}

// ShipmentID returns the transfer shipment the lock belongs to.
func (a *Assignment) ShipmentID() kernel.UUID {
	return a.shipmentID
}

// DriverID returns the locked driver.
func (a *Assignment) DriverID() kernel.UUID {
	return a.driverID
}

// VehicleID returns the locked vehicle.
func (a *Assignment) VehicleID() kernel.UUID {
	return a.vehicleID
}

// IsReleased reports whether the lock has been released.
func (a *Assignment) IsReleased() bool {
	return a.isReleased
}

// Release frees the driver and vehicle for new bookings. Called inside the
// transfer completion transaction; releasing twice is an error.
func (a *Assignment) Release() error {
	if a.isReleased {
		return ErrAssignmentAlreadyReleased
	}

	a.isReleased = true
	return nil
}
