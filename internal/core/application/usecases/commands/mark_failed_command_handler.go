package commands

import (
	"context"
	"encoding/json"
	"errors"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/outbox"
	"freight/internal/core/domain/model/parcel"
	"freight/internal/core/domain/model/statuslog"
	"freight/internal/core/ports"
	"freight/internal/pkg/errs"
)

// MarkFailedCommandHandler orchestrates failed delivery attempts.
// In one transaction the attempt counter grows, the reception mode escalates
// to pickup exactly at the threshold, the leg fails (and the shipment
// completes when it was the last open one), any outstanding OTP is retired,
// the ledger records the driver's reason plus the shipment completion, and
// the receiver notification is enqueued.
type MarkFailedCommandHandler struct {
	uowFactory DeliveryUoWFactory
	clock      ports.Clock
}

// NewMarkFailedCommandHandler creates a handler for failed delivery attempts.
func NewMarkFailedCommandHandler(uowFactory DeliveryUoWFactory, clock ports.Clock) MarkFailedCommandHandler {
	return MarkFailedCommandHandler{
		uowFactory: uowFactory,
		clock:      clock,
	}
}

// failedNotificationPayload tells the receiver what happened. Escalated
// means the parcel switched to pickup and will not be re-delivered.
type failedNotificationPayload struct {
	ParcelID      string `json:"parcelId"`
	ShipmentID    string `json:"shipmentId"`
	ReceiverName  string `json:"receiverName"`
	ReceiverPhone string `json:"receiverPhone,omitempty"`
	ReceiverEmail string `json:"receiverEmail,omitempty"`
	FailureReason string `json:"failureReason"`
	Escalated     bool   `json:"escalated"`
}

// Handle processes the failed delivery attempt command.
//
// On success the updated parcel is returned so the transport layer can tell
// a scheduled re-delivery apart from an escalation to pickup.
func (h MarkFailedCommandHandler) Handle(ctx context.Context, command MarkFailedCommand) (*parcel.Parcel, error) {
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

	failed, err := uow.ParcelRepository().Get(ctx, command.ParcelID())
	if err != nil {
		return nil, err
	}

	escalated, err := failed.RecordFailedDelivery()
	if err != nil {
		return nil, err
	}

	if err = shp.FailLeg(command.ParcelID()); err != nil {
		return nil, err
	}
	if next := shp.NextParcelID(); next != nil && next.IsEqual(command.ParcelID()) {
		if err = shp.SetNextParcel(nil); err != nil {
			return nil, err
		}
	}
	runFinished := len(shp.InTransitLegs()) == 0
	if runFinished {
		if err = shp.CompleteRun(); err != nil {
			return nil, err
		}
	}

	if err = uow.ParcelRepository().Update(ctx, failed); err != nil {
		return nil, err
	}
	if err = uow.ShipmentRepository().Update(ctx, shp); err != nil {
		return nil, err
	}

	actorID := command.ActorID()
	parcelEntry, err := statuslog.NewEntry(
		statuslog.SubjectParcel,
		command.ParcelID(),
		failed.Status().String(),
		command.FailureReason(),
		&actorID,
		now,
	)
	if err != nil {
		return nil, err
	}

	entries := []*statuslog.Entry{parcelEntry}
	if runFinished {
		shipmentEntry, entryErr := statuslog.NewEntry(
			statuslog.SubjectShipment,
			command.ShipmentID(),
			"Completed",
			"all legs settled",
			&actorID,
			now,
		)
		if entryErr != nil {
			return nil, entryErr
		}
		entries = append(entries, shipmentEntry)
	}
	if err = uow.StatusLogRepository().AppendBatch(ctx, entries); err != nil {
		return nil, err
	}

	eventType := outbox.EventTypeDeliveryFailed
	if escalated {
		eventType = outbox.EventTypeDeliveryEscalated
	}

	raw, err := json.Marshal(failedNotificationPayload{
		ParcelID:      command.ParcelID().String(),
		ShipmentID:    command.ShipmentID().String(),
		ReceiverName:  failed.ReceiverName(),
		ReceiverPhone: failed.ReceiverPhone(),
		ReceiverEmail: failed.ReceiverEmail(),
		FailureReason: command.FailureReason(),
		Escalated:     escalated,
	})
	if err != nil {
		return nil, err
	}

	event, err := outbox.NewEvent(kernel.NewUUID(), eventType, string(raw), now)
	if err != nil {
		return nil, err
	}
	if err = uow.OutboxRepository().Add(ctx, event); err != nil {
		return nil, err
	}

	// Retired last: a stale code must not settle a later run, and the OTP
	// store may live outside the transaction.
	if err = h.retireOtp(ctx, uow, command); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return failed, nil
}

// retireOtp invalidates any outstanding code for the pair. A pair without a
// code is the common case and not an error.
func (h MarkFailedCommandHandler) retireOtp(ctx context.Context, uow DeliveryUoW, command MarkFailedCommand) error {
	deliveryOtp, err := uow.OtpRepository().Get(ctx, command.ShipmentID(), command.ParcelID())
	if errors.Is(err, errs.ErrObjectNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	deliveryOtp.Invalidate()
	return uow.OtpRepository().Save(ctx, deliveryOtp)
}
