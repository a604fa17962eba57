package commands

import (
	"errors"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/guard"
)

var ErrSelectNextDeliveryCommandIsNotConstructed = errors.New(
	"SelectNextDeliveryCommand must be created via NewSelectNextDeliveryCommand constructor",
)

// SelectNextDeliveryCommand asks for the next stop on a delivery shipment:
// the undelivered parcel nearest to the driver's current position.
//
// The origin is optional. When the driver's app posts live coordinates they
// are used directly; otherwise the handler falls back to the latest recorded
// position sample of the shipment.
type SelectNextDeliveryCommand struct { //nolint:recvcheck //using for validation
	shipmentID kernel.UUID
	origin     *kernel.GeoPoint

	guard guard.ConstructorGuard
}

// NewSelectNextDeliveryCommand creates a command to pick the next stop.
// Pass a nil origin to fall back to the shipment's latest position sample.
func NewSelectNextDeliveryCommand(shipmentID kernel.UUID, origin *kernel.GeoPoint) (SelectNextDeliveryCommand, error) {
	command := SelectNextDeliveryCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setShipmentID(shipmentID),
		command.setOrigin(origin),
	); err != nil {
		return SelectNextDeliveryCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c SelectNextDeliveryCommand) Validate() error {
	return c.guard.Validate(ErrSelectNextDeliveryCommandIsNotConstructed)
}

// ShipmentID returns the delivery shipment to pick the next stop for.
func (c SelectNextDeliveryCommand) ShipmentID() kernel.UUID {
	return c.shipmentID
}

// Origin returns the driver's live position, or nil when the handler should
// fall back to the latest recorded sample.
func (c SelectNextDeliveryCommand) Origin() *kernel.GeoPoint {
	return c.origin
}

func (c *SelectNextDeliveryCommand) setShipmentID(shipmentID kernel.UUID) error {
	if err := shipmentID.Validate(); err != nil {
		return err
	}

	c.shipmentID = shipmentID
	return nil
}

func (c *SelectNextDeliveryCommand) setOrigin(origin *kernel.GeoPoint) error {
	if origin != nil {
		if err := origin.Validate(); err != nil {
			return err
		}
	}

	c.origin = origin
	return nil
}
