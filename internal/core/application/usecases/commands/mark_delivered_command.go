package commands

import (
	"errors"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/errs"
	"freight/internal/pkg/guard"
)

var ErrMarkDeliveredCommandIsNotConstructed = errors.New(
	"MarkDeliveredCommand must be created via NewMarkDeliveredCommand constructor",
)

// MarkDeliveredCommand settles a delivery: the driver presents the receiver's
// one-time password and a proof-of-delivery photo, and the parcel leaves the
// fulfillment flow for good.
type MarkDeliveredCommand struct { //nolint:recvcheck //using for validation
	shipmentID         kernel.UUID
	parcelID           kernel.UUID
	code               string
	proofOfDeliveryURL string
	actorID            kernel.UUID

	guard guard.ConstructorGuard
}

// NewMarkDeliveredCommand creates a command to settle a delivery.
func NewMarkDeliveredCommand(
	shipmentID kernel.UUID,
	parcelID kernel.UUID,
	code string,
	proofOfDeliveryURL string,
	actorID kernel.UUID,
) (MarkDeliveredCommand, error) {
	command := MarkDeliveredCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setShipmentID(shipmentID),
		command.setParcelID(parcelID),
		command.setCode(code),
		command.setProofOfDeliveryURL(proofOfDeliveryURL),
		command.setActorID(actorID),
	); err != nil {
		return MarkDeliveredCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c MarkDeliveredCommand) Validate() error {
	return c.guard.Validate(ErrMarkDeliveredCommandIsNotConstructed)
}

// ShipmentID returns the delivery shipment the parcel rides.
func (c MarkDeliveredCommand) ShipmentID() kernel.UUID {
	return c.shipmentID
}

// ParcelID returns the parcel being settled.
func (c MarkDeliveredCommand) ParcelID() kernel.UUID {
	return c.parcelID
}

// Code returns the one-time password presented by the receiver.
func (c MarkDeliveredCommand) Code() string {
	return c.code
}

// ProofOfDeliveryURL returns the captured proof image reference.
func (c MarkDeliveredCommand) ProofOfDeliveryURL() string {
	return c.proofOfDeliveryURL
}

// ActorID returns who settled the delivery.
func (c MarkDeliveredCommand) ActorID() kernel.UUID {
	return c.actorID
}

func (c *MarkDeliveredCommand) setShipmentID(shipmentID kernel.UUID) error {
	if err := shipmentID.Validate(); err != nil {
		return err
	}

	c.shipmentID = shipmentID
	return nil
}

func (c *MarkDeliveredCommand) setParcelID(parcelID kernel.UUID) error {
	if err := parcelID.Validate(); err != nil {
		return err
	}

	c.parcelID = parcelID
	return nil
}

func (c *MarkDeliveredCommand) setCode(code string) error {
	if code == "" {
		return errs.NewValueIsRequiredError("code")
	}

	c.code = code
	return nil
}

func (c *MarkDeliveredCommand) setProofOfDeliveryURL(url string) error {
	if url == "" {
		return errs.NewValueIsRequiredError("imageUrl")
	}

	c.proofOfDeliveryURL = url
	return nil
}

func (c *MarkDeliveredCommand) setActorID(actorID kernel.UUID) error {
	if err := actorID.Validate(); err != nil {
		return err
	}

	c.actorID = actorID
	return nil
}
