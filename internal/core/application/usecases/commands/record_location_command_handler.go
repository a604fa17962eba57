package commands

import (
	"context"

	"freight/internal/core/domain/model/tracking"
	"freight/internal/core/ports"
)

// RecordLocationCommandHandler appends live position samples.
// The shipment must exist; beyond that every report is accepted, the stream
// is append-only and never rewritten.
type RecordLocationCommandHandler struct {
	uowFactory TrackingUoWFactory
	clock      ports.Clock
}

// NewRecordLocationCommandHandler creates a handler for position reports.
func NewRecordLocationCommandHandler(uowFactory TrackingUoWFactory, clock ports.Clock) RecordLocationCommandHandler {
	return RecordLocationCommandHandler{
		uowFactory: uowFactory,
		clock:      clock,
	}
}

// Handle processes the position report command.
func (h RecordLocationCommandHandler) Handle(ctx context.Context, command RecordLocationCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if _, err := uow.ShipmentRepository().Get(ctx, command.ShipmentID()); err != nil {
		return err
	}

	sample, err := tracking.NewLocationSample(command.ShipmentID(), command.Point(), h.clock.Now())
	if err != nil {
		return err
	}

	if err = uow.LocationRepository().Add(ctx, sample); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
