package commands

import (
	"errors"

	"freight/internal/pkg/guard"
)

var ErrDispatchOutboxCommandIsNotConstructed = errors.New(
	"DispatchOutboxCommand must be created via NewDispatchOutboxCommand constructor",
)

// DispatchOutboxCommand drains a batch of pending outbox events to the
// message broker. Triggered periodically by the outbox dispatch job.
type DispatchOutboxCommand struct {
	guard guard.ConstructorGuard
}

// NewDispatchOutboxCommand creates a new command to trigger outbox dispatch.
func NewDispatchOutboxCommand() DispatchOutboxCommand {
	return DispatchOutboxCommand{
		guard: guard.NewConstructorGuard(),
	}
}

// Validate ensures the command was created through the constructor.
func (c *DispatchOutboxCommand) Validate() error {
	return c.guard.Validate(ErrDispatchOutboxCommandIsNotConstructed)
}
