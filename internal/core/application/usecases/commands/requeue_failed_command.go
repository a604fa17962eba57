package commands

import (
	"errors"

	"freight/internal/pkg/guard"
)

var ErrRequeueFailedCommandIsNotConstructed = errors.New(
	"RequeueFailedCommand must be created via NewRequeueFailedCommand constructor",
)

// RequeueFailedCommand sweeps failed door-to-door parcels back into sorting
// so the next delivery run can pick them up. Parcels escalated to pickup are
// left alone. Triggered periodically by the redelivery job.
type RequeueFailedCommand struct {
	guard guard.ConstructorGuard
}

// NewRequeueFailedCommand creates a new command to trigger the redelivery sweep.
func NewRequeueFailedCommand() RequeueFailedCommand {
	return RequeueFailedCommand{
		guard: guard.NewConstructorGuard(),
	}
}

// Validate ensures the command was created through the constructor.
func (c *RequeueFailedCommand) Validate() error {
	return c.guard.Validate(ErrRequeueFailedCommandIsNotConstructed)
}
