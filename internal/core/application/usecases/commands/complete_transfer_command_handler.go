package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/outbox"
	"freight/internal/core/domain/model/parcel"
	"freight/internal/core/domain/model/shipment"
	"freight/internal/core/domain/model/statuslog"
	"freight/internal/core/ports"
)

// CompleteTransferCommandHandler orchestrates transfer completion.
// One transaction settles the whole batch: the shipment completes with its
// proof image, every member leg and parcel moves to its post-transfer
// status, the ledger gets one entry per member plus one for the shipment,
// and the driver and vehicle locks are released. A zero-member shipment
// completes with nothing but the shipment entry.
type CompleteTransferCommandHandler struct {
	uowFactory TransferUoWFactory
	clock      ports.Clock
}

// NewCompleteTransferCommandHandler creates a handler for transfer completion.
func NewCompleteTransferCommandHandler(uowFactory TransferUoWFactory, clock ports.Clock) CompleteTransferCommandHandler {
	return CompleteTransferCommandHandler{
		uowFactory: uowFactory,
		clock:      clock,
	}
}

// transferCompletedPayload notifies operations about the settled batch.
type transferCompletedPayload struct {
	ShipmentID       string `json:"shipmentId"`
	Kind             string `json:"kind"`
	DestinationParty string `json:"destinationParty"`
	ParcelCount      int    `json:"parcelCount"`
	CompletedAt      string `json:"completedAt"`
}

// Handle processes the transfer completion command.
//
// A missing shipment propagates as not found; completing a shipment twice is
// a precondition failure with no side effects. On success the completed
// shipment is returned for the transport layer to render.
func (h CompleteTransferCommandHandler) Handle(
	ctx context.Context,
	command CompleteTransferCommand,
) (*shipment.Shipment, error) {
	if err := command.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	now := h.clock.Now()

	shp, err := uow.ShipmentRepository().Get(ctx, command.ShipmentID())
	if err != nil {
		return nil, err
	}

	if err = shp.CompleteTransfer(command.ProofOfTransferURL()); err != nil {
		return nil, err
	}

	members, err := h.settleMembers(ctx, uow, shp)
	if err != nil {
		return nil, err
	}

	if err = uow.ShipmentRepository().Update(ctx, shp); err != nil {
		return nil, err
	}
	if len(members) > 0 {
		if err = uow.ParcelRepository().UpdateBatch(ctx, members); err != nil {
			return nil, err
		}
	}

	actorID := command.ActorID()
	entries, err := h.buildLedgerEntries(shp, members, &actorID, now)
	if err != nil {
		return nil, err
	}
	if err = uow.StatusLogRepository().AppendBatch(ctx, entries); err != nil {
		return nil, err
	}

	if err = h.releaseLocks(ctx, uow, shp); err != nil {
		return nil, err
	}

	raw, err := json.Marshal(transferCompletedPayload{
		ShipmentID:       shp.ID().String(),
		Kind:             shp.Kind().String(),
		DestinationParty: shp.DestinationPartyName(),
		ParcelCount:      len(members),
		CompletedAt:      now.Format(time.RFC3339),
	})
	if err != nil {
		return nil, err
	}
	event, err := outbox.NewEvent(kernel.NewUUID(), outbox.EventTypeTransferCompleted, string(raw), now)
	if err != nil {
		return nil, err
	}
	if err = uow.OutboxRepository().Add(ctx, event); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return shp, nil
}

// settleMembers loads every member parcel and moves it to its post-transfer
// status: handed to the partner forwarder, or back in one of our warehouses.
func (h CompleteTransferCommandHandler) settleMembers(
	ctx context.Context,
	uow TransferUoW,
	shp *shipment.Shipment,
) ([]*parcel.Parcel, error) {
	legs := shp.Legs()
	if len(legs) == 0 {
		return nil, nil
	}

	ids := make([]kernel.UUID, 0, len(legs))
	for _, leg := range legs {
		ids = append(ids, leg.ParcelID())
	}

	members, err := uow.ParcelRepository().GetMany(ctx, ids)
	if err != nil {
		return nil, err
	}

	for _, member := range members {
		switch shp.Kind() {
		case shipment.ForwarderTransfer:
			err = member.CompleteForwarderTransfer()
		default:
			err = member.CompleteWarehouseTransfer()
		}
		if err != nil {
			return nil, err
		}
	}

	return members, nil
}

func (h CompleteTransferCommandHandler) buildLedgerEntries(
	shp *shipment.Shipment,
	members []*parcel.Parcel,
	actorID *kernel.UUID,
	now time.Time,
) ([]*statuslog.Entry, error) {
	description := fmt.Sprintf("transfer completed, received by %s", shp.DestinationPartyName())

	entries := make([]*statuslog.Entry, 0, len(members)+1)
	for _, member := range members {
		entry, err := statuslog.NewEntry(
			statuslog.SubjectParcel,
			member.ID(),
			member.Status().String(),
			description,
			actorID,
			now,
		)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}

	shipmentEntry, err := statuslog.NewEntry(
		statuslog.SubjectShipment,
		shp.ID(),
		shp.Status().String(),
		description,
		actorID,
		now,
	)
	if err != nil {
		return nil, err
	}

	return append(entries, shipmentEntry), nil
}

// releaseLocks frees the driver and vehicle for new bookings.
func (h CompleteTransferCommandHandler) releaseLocks(ctx context.Context, uow TransferUoW, shp *shipment.Shipment) error {
	locks, err := uow.AssignmentRepository().GetActiveForShipment(ctx, shp.ID())
	if err != nil {
		return err
	}

	for _, lock := range locks {
		if err = lock.Release(); err != nil {
			return err
		}
		if err = uow.AssignmentRepository().Update(ctx, lock); err != nil {
			return err
		}
	}

	return nil
}
