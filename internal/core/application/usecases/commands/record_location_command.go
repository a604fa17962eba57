package commands

import (
	"errors"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/guard"
)

var ErrRecordLocationCommandIsNotConstructed = errors.New(
	"RecordLocationCommand must be created via NewRecordLocationCommand constructor",
)

// RecordLocationCommand appends one live position sample for a shipment.
type RecordLocationCommand struct { //nolint:recvcheck //using for validation
	shipmentID kernel.UUID
	point      kernel.GeoPoint

	guard guard.ConstructorGuard
}

// NewRecordLocationCommand creates a command to record a shipment position.
func NewRecordLocationCommand(shipmentID kernel.UUID, point kernel.GeoPoint) (RecordLocationCommand, error) {
	command := RecordLocationCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		shipmentID.Validate(),
		point.Validate(),
	); err != nil {
		return RecordLocationCommand{}, err
	}

	command.shipmentID = shipmentID
	command.point = point
	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c RecordLocationCommand) Validate() error {
	return c.guard.Validate(ErrRecordLocationCommandIsNotConstructed)
}

// ShipmentID returns the shipment that reported the position.
func (c RecordLocationCommand) ShipmentID() kernel.UUID {
	return c.shipmentID
}

// Point returns the reported position.
func (c RecordLocationCommand) Point() kernel.GeoPoint {
	return c.point
}
