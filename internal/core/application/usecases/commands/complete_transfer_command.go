package commands

import (
	"errors"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/errs"
	"freight/internal/pkg/guard"
)

var ErrCompleteTransferCommandIsNotConstructed = errors.New(
	"CompleteTransferCommand must be created via NewCompleteTransferCommand constructor",
)

// CompleteTransferCommand confirms the handover of a transfer shipment with
// a proof-of-transfer photo. Completion settles the whole batch: every
// member parcel moves to its post-transfer status in one transaction.
type CompleteTransferCommand struct { //nolint:recvcheck //using for validation
	shipmentID         kernel.UUID
	proofOfTransferURL string
	actorID            kernel.UUID

	guard guard.ConstructorGuard
}

// NewCompleteTransferCommand creates a command to confirm a transfer handover.
func NewCompleteTransferCommand(
	shipmentID kernel.UUID,
	proofOfTransferURL string,
	actorID kernel.UUID,
) (CompleteTransferCommand, error) {
	command := CompleteTransferCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setShipmentID(shipmentID),
		command.setProofOfTransferURL(proofOfTransferURL),
		command.setActorID(actorID),
	); err != nil {
		return CompleteTransferCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c CompleteTransferCommand) Validate() error {
	return c.guard.Validate(ErrCompleteTransferCommandIsNotConstructed)
}

// ShipmentID returns the transfer shipment being handed over.
func (c CompleteTransferCommand) ShipmentID() kernel.UUID {
	return c.shipmentID
}

// ProofOfTransferURL returns the captured handover photo reference.
func (c CompleteTransferCommand) ProofOfTransferURL() string {
	return c.proofOfTransferURL
}

// ActorID returns who confirmed the handover.
func (c CompleteTransferCommand) ActorID() kernel.UUID {
	return c.actorID
}

func (c *CompleteTransferCommand) setShipmentID(shipmentID kernel.UUID) error {
	if err := shipmentID.Validate(); err != nil {
		return err
	}

	c.shipmentID = shipmentID
	return nil
}

func (c *CompleteTransferCommand) setProofOfTransferURL(url string) error {
	if url == "" {
		return errs.NewValueIsRequiredError("imageUrl")
	}

	c.proofOfTransferURL = url
	return nil
}

func (c *CompleteTransferCommand) setActorID(actorID kernel.UUID) error {
	if err := actorID.Validate(); err != nil {
		return err
	}

	c.actorID = actorID
	return nil
}
