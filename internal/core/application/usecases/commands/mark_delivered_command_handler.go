package commands

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/outbox"
	"freight/internal/core/domain/model/parcel"
	"freight/internal/core/domain/model/statuslog"
	"freight/internal/core/ports"
	"freight/internal/pkg/errs"
)

// ErrOtpRejected is returned when the presented one-time password does not
// settle the delivery. It deliberately does not say why: wrong code, expired
// code, consumed code and missing code are indistinguishable to the caller.
var ErrOtpRejected = errors.New("one-time password was rejected")

// MarkDeliveredCommandHandler orchestrates delivery settlement.
// Everything moves in one transaction: the OTP is consumed, the parcel gets
// its proof and settlement time, the survey access key is ensured, the leg
// and (when it was the last open one) the shipment complete, the ledger gets
// its entries, and the receiver/agent notifications are enqueued. A failure
// at any step rolls the whole unit back, leaving the OTP presentable.
type MarkDeliveredCommandHandler struct {
	uowFactory DeliveryUoWFactory
	clock      ports.Clock
	codes      ports.CodeGenerator
}

// NewMarkDeliveredCommandHandler creates a handler for delivery settlement.
func NewMarkDeliveredCommandHandler(
	uowFactory DeliveryUoWFactory,
	clock ports.Clock,
	codes ports.CodeGenerator,
) MarkDeliveredCommandHandler {
	return MarkDeliveredCommandHandler{
		uowFactory: uowFactory,
		clock:      clock,
		codes:      codes,
	}
}

// settledNotificationPayload feeds the post-delivery notifications: the
// receiver gets a survey link gated by the access key, the sending agent
// gets a settlement notice.
type settledNotificationPayload struct {
	ParcelID        string `json:"parcelId"`
	ShipmentID      string `json:"shipmentId"`
	ReceiverName    string `json:"receiverName"`
	ReceiverPhone   string `json:"receiverPhone,omitempty"`
	ReceiverEmail   string `json:"receiverEmail,omitempty"`
	SenderAgentID   string `json:"senderAgentId"`
	SurveyAccessKey string `json:"surveyAccessKey"`
	SettledAt       string `json:"settledAt"`
}

// Handle processes the delivery settlement command.
//
// The OTP check happens before any mutation: an invalid, expired, consumed
// or missing code returns ErrOtpRejected and changes nothing. On success the
// settled parcel is returned for the transport layer to render.
func (h MarkDeliveredCommandHandler) Handle(
	ctx context.Context,
	command MarkDeliveredCommand,
) (*parcel.Parcel, error) {
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

	deliveryOtp, err := uow.OtpRepository().Get(ctx, command.ShipmentID(), command.ParcelID())
	if errors.Is(err, errs.ErrObjectNotFound) {
		return nil, ErrOtpRejected
	}
	if err != nil {
		return nil, err
	}

	if !deliveryOtp.Matches(command.Code(), now) {
		return nil, ErrOtpRejected
	}

	shp, err := uow.ShipmentRepository().Get(ctx, command.ShipmentID())
	if err != nil {
		return nil, err
	}

	settled, err := uow.ParcelRepository().Get(ctx, command.ParcelID())
	if err != nil {
		return nil, err
	}

	if err = settled.MarkDelivered(command.ProofOfDeliveryURL(), now); err != nil {
		return nil, err
	}

	if settled.SurveyAccessKey() == nil {
		key, keyErr := h.codes.NewAccessKey()
		if keyErr != nil {
			return nil, keyErr
		}
		if err = settled.IssueSurveyAccessKey(key); err != nil {
			return nil, err
		}
	}

	if err = shp.CompleteLeg(command.ParcelID()); err != nil {
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

	if err = uow.ParcelRepository().Update(ctx, settled); err != nil {
		return nil, err
	}
	if err = uow.ShipmentRepository().Update(ctx, shp); err != nil {
		return nil, err
	}

	actorID := command.ActorID()
	entries, err := h.buildLedgerEntries(command, settled, runFinished, &actorID, now)
	if err != nil {
		return nil, err
	}
	if err = uow.StatusLogRepository().AppendBatch(ctx, entries); err != nil {
		return nil, err
	}

	event, err := h.buildNotification(command, settled, now)
	if err != nil {
		return nil, err
	}
	if err = uow.OutboxRepository().Add(ctx, event); err != nil {
		return nil, err
	}

	// The consuming write goes last. The OTP store may live outside the
	// transaction; any failure before this point leaves the code presentable.
	if err = deliveryOtp.Consume(); err != nil {
		return nil, ErrOtpRejected
	}
	if err = uow.OtpRepository().Save(ctx, deliveryOtp); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return settled, nil
}

func (h MarkDeliveredCommandHandler) buildLedgerEntries(
	command MarkDeliveredCommand,
	settled *parcel.Parcel,
	runFinished bool,
	actorID *kernel.UUID,
	now time.Time,
) ([]*statuslog.Entry, error) {
	parcelEntry, err := statuslog.NewEntry(
		statuslog.SubjectParcel,
		command.ParcelID(),
		settled.Status().String(),
		"delivery settled with proof of delivery",
		actorID,
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
			actorID,
			now,
		)
		if entryErr != nil {
			return nil, entryErr
		}
		entries = append(entries, shipmentEntry)
	}

	return entries, nil
}

func (h MarkDeliveredCommandHandler) buildNotification(
	command MarkDeliveredCommand,
	settled *parcel.Parcel,
	now time.Time,
) (*outbox.Event, error) {
	var accessKey string
	if settled.SurveyAccessKey() != nil {
		accessKey = *settled.SurveyAccessKey()
	}

	raw, err := json.Marshal(settledNotificationPayload{
		ParcelID:        command.ParcelID().String(),
		ShipmentID:      command.ShipmentID().String(),
		ReceiverName:    settled.ReceiverName(),
		ReceiverPhone:   settled.ReceiverPhone(),
		ReceiverEmail:   settled.ReceiverEmail(),
		SenderAgentID:   settled.SenderAgentID().String(),
		SurveyAccessKey: accessKey,
		SettledAt:       now.Format(time.RFC3339),
	})
	if err != nil {
		return nil, err
	}

	return outbox.NewEvent(kernel.NewUUID(), outbox.EventTypeDeliverySettled, string(raw), now)
}
