package commands

import (
	"errors"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/errs"
	"freight/internal/pkg/guard"
)

var ErrMarkFailedCommandIsNotConstructed = errors.New(
	"MarkFailedCommand must be created via NewMarkFailedCommand constructor",
)

// MarkFailedCommand records a failed delivery attempt with a free-text
// reason. No OTP is involved; failing is always allowed for a parcel that is
// out for delivery.
type MarkFailedCommand struct { //nolint:recvcheck //using for validation
	shipmentID    kernel.UUID
	parcelID      kernel.UUID
	failureReason string
	actorID       kernel.UUID

	guard guard.ConstructorGuard
}

// NewMarkFailedCommand creates a command to record a failed delivery attempt.
func NewMarkFailedCommand(
	shipmentID kernel.UUID,
	parcelID kernel.UUID,
	failureReason string,
	actorID kernel.UUID,
) (MarkFailedCommand, error) {
	command := MarkFailedCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setShipmentID(shipmentID),
		command.setParcelID(parcelID),
		command.setFailureReason(failureReason),
		command.setActorID(actorID),
	); err != nil {
		return MarkFailedCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c MarkFailedCommand) Validate() error {
	return c.guard.Validate(ErrMarkFailedCommandIsNotConstructed)
}

// ShipmentID returns the delivery shipment the parcel rides.
func (c MarkFailedCommand) ShipmentID() kernel.UUID {
	return c.shipmentID
}

// ParcelID returns the parcel whose attempt failed.
func (c MarkFailedCommand) ParcelID() kernel.UUID {
	return c.parcelID
}

// FailureReason returns the driver's free-text explanation.
func (c MarkFailedCommand) FailureReason() string {
	return c.failureReason
}

// ActorID returns who recorded the failure.
func (c MarkFailedCommand) ActorID() kernel.UUID {
	return c.actorID
}

func (c *MarkFailedCommand) setShipmentID(shipmentID kernel.UUID) error {
	if err := shipmentID.Validate(); err != nil {
		return err
	}

	c.shipmentID = shipmentID
	return nil
}

func (c *MarkFailedCommand) setParcelID(parcelID kernel.UUID) error {
	if err := parcelID.Validate(); err != nil {
		return err
	}

	c.parcelID = parcelID
	return nil
}

func (c *MarkFailedCommand) setFailureReason(reason string) error {
	if reason == "" {
		return errs.NewValueIsRequiredError("failureReason")
	}

	c.failureReason = reason
	return nil
}

func (c *MarkFailedCommand) setActorID(actorID kernel.UUID) error {
	if err := actorID.Validate(); err != nil {
		return err
	}

	c.actorID = actorID
	return nil
}
