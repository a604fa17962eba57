package commands

import (
	"context"

	"freight/internal/core/domain/model/statuslog"
	"freight/internal/core/ports"
)

// RequeueFailedCommandHandler orchestrates the redelivery sweep.
// Loads every failed door-to-door parcel below the escalation threshold,
// puts it back into sorting, and writes one system ledger entry per parcel.
// The whole sweep commits as one unit.
type RequeueFailedCommandHandler struct {
	uowFactory RequeueUoWFactory
	clock      ports.Clock
}

// NewRequeueFailedCommandHandler creates a handler for the redelivery sweep.
func NewRequeueFailedCommandHandler(uowFactory RequeueUoWFactory, clock ports.Clock) RequeueFailedCommandHandler {
	return RequeueFailedCommandHandler{
		uowFactory: uowFactory,
		clock:      clock,
	}
}

// Handle processes the redelivery sweep. Returns the number of requeued
// parcels so the job can log its work.
func (h RequeueFailedCommandHandler) Handle(ctx context.Context, command RequeueFailedCommand) (int, error) {
	if err := command.Validate(); err != nil {
		return 0, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	candidates, err := uow.ParcelRepository().GetAllRequeueable(ctx)
	if err != nil {
		return 0, err
	}
	if len(candidates) == 0 {
		return 0, uow.Commit(ctx)
	}

	now := h.clock.Now()
	entries := make([]*statuslog.Entry, 0, len(candidates))

	for _, candidate := range candidates {
		if err = candidate.RequeueForDelivery(); err != nil {
			return 0, err
		}

		// nil actor: the system requeues, not a person
		entry, entryErr := statuslog.NewEntry(
			statuslog.SubjectParcel,
			candidate.ID(),
			candidate.Status().String(),
			"requeued for re-delivery",
			nil,
			now,
		)
		if entryErr != nil {
			return 0, entryErr
		}
		entries = append(entries, entry)
	}

	if err = uow.ParcelRepository().UpdateBatch(ctx, candidates); err != nil {
		return 0, err
	}
	if err = uow.StatusLogRepository().AppendBatch(ctx, entries); err != nil {
		return 0, err
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}

	return len(candidates), nil
}
