package commands

import (
	"errors"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/guard"
)

var ErrIssueOtpCommandIsNotConstructed = errors.New(
	"IssueOtpCommand must be created via NewIssueOtpCommand constructor",
)

// IssueOtpCommand requests a fresh one-time password for a parcel riding a
// delivery shipment. The code is sent to the receiver out of band; issuing a
// new code silently replaces the previous one.
type IssueOtpCommand struct { //nolint:recvcheck //using for validation
	shipmentID kernel.UUID
	parcelID   kernel.UUID

	guard guard.ConstructorGuard
}

// NewIssueOtpCommand creates a command to issue a delivery one-time password.
func NewIssueOtpCommand(shipmentID, parcelID kernel.UUID) (IssueOtpCommand, error) {
	command := IssueOtpCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setShipmentID(shipmentID),
		command.setParcelID(parcelID),
	); err != nil {
		return IssueOtpCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c IssueOtpCommand) Validate() error {
	return c.guard.Validate(ErrIssueOtpCommandIsNotConstructed)
}

// ShipmentID returns the delivery shipment the parcel rides.
func (c IssueOtpCommand) ShipmentID() kernel.UUID {
	return c.shipmentID
}

// ParcelID returns the parcel the code will settle.
func (c IssueOtpCommand) ParcelID() kernel.UUID {
	return c.parcelID
}

func (c *IssueOtpCommand) setShipmentID(shipmentID kernel.UUID) error {
	if err := shipmentID.Validate(); err != nil {
		return err
	}

	c.shipmentID = shipmentID
	return nil
}

func (c *IssueOtpCommand) setParcelID(parcelID kernel.UUID) error {
	if err := parcelID.Validate(); err != nil {
		return err
	}

	c.parcelID = parcelID
	return nil
}
