package commands

import (
	"context"
	"encoding/json"
	"time"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/otp"
	"freight/internal/core/domain/model/outbox"
	"freight/internal/core/domain/model/parcel"
	"freight/internal/core/domain/model/shipment"
	"freight/internal/core/ports"
	"freight/internal/pkg/errs"
)

// IssueOtpCommandHandler orchestrates one-time password issuance.
// Verifies the parcel actually rides the delivery shipment, generates a fresh
// code with an expiry in the reference timezone, upserts it (replacing any
// previous code), and enqueues the SMS and email triggers as outbox events in
// the same transaction.
type IssueOtpCommandHandler struct {
	uowFactory OtpIssueUoWFactory
	clock      ports.Clock
	codes      ports.CodeGenerator
	ttl        time.Duration
}

// NewIssueOtpCommandHandler creates a handler for OTP issuance. The ttl
// controls how long an issued code stays presentable.
func NewIssueOtpCommandHandler(
	uowFactory OtpIssueUoWFactory,
	clock ports.Clock,
	codes ports.CodeGenerator,
	ttl time.Duration,
) IssueOtpCommandHandler {
	return IssueOtpCommandHandler{
		uowFactory: uowFactory,
		clock:      clock,
		codes:      codes,
		ttl:        ttl,
	}
}

// otpNotificationPayload carries what the downstream notifier needs to reach
// the receiver. The code itself never travels through the outbox; the
// notifier reads it from the store when rendering the message.
type otpNotificationPayload struct {
	ShipmentID   string `json:"shipmentId"`
	ParcelID     string `json:"parcelId"`
	ReceiverName string `json:"receiverName"`
	Phone        string `json:"phone,omitempty"`
	Email        string `json:"email,omitempty"`
	ExpiresAt    string `json:"expiresAt"`
}

// Handle processes the OTP issuance command.
//
// The parcel must be riding the delivery shipment on an in-transit leg.
// The upsert makes the new code the only one that can match; the previous
// code dies with the overwrite.
func (h IssueOtpCommandHandler) Handle(ctx context.Context, command IssueOtpCommand) error {
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

	shp, err := uow.ShipmentRepository().Get(ctx, command.ShipmentID())
	if err != nil {
		return err
	}

	if shp.Kind() != shipment.Delivery {
		return errs.NewPreconditionFailedError("shipment", "one-time passwords exist only for delivery shipments")
	}

	leg, err := shp.LegFor(command.ParcelID())
	if err != nil {
		return err
	}
	if leg.Status() != shipment.LegInTransit {
		return errs.NewPreconditionFailedError("parcel", "parcel is not out for delivery on this shipment")
	}

	receiver, err := uow.ParcelRepository().Get(ctx, command.ParcelID())
	if err != nil {
		return err
	}

	code, err := h.codes.NewOtpCode()
	if err != nil {
		return err
	}

	expiresAt := h.clock.Now().Add(h.ttl)

	deliveryOtp, err := otp.NewDeliveryOtp(command.ShipmentID(), command.ParcelID(), code, expiresAt)
	if err != nil {
		return err
	}

	if err = uow.OtpRepository().Save(ctx, deliveryOtp); err != nil {
		return err
	}

	events, err := h.buildNotifications(receiver, command, expiresAt)
	if err != nil {
		return err
	}

	if len(events) > 0 {
		if err = uow.OutboxRepository().AddBatch(ctx, events); err != nil {
			return err
		}
	}

	return uow.Commit(ctx)
}

// buildNotifications enqueues an SMS trigger when the receiver has a phone
// and an email trigger when they have an address. A receiver with neither
// gets the code read out by the driver; that is not an error here.
func (h IssueOtpCommandHandler) buildNotifications(
	receiver *parcel.Parcel,
	command IssueOtpCommand,
	expiresAt time.Time,
) ([]*outbox.Event, error) {
	payload := otpNotificationPayload{
		ShipmentID:   command.ShipmentID().String(),
		ParcelID:     command.ParcelID().String(),
		ReceiverName: receiver.ReceiverName(),
		Phone:        receiver.ReceiverPhone(),
		Email:        receiver.ReceiverEmail(),
		ExpiresAt:    expiresAt.Format(time.RFC3339),
	}

	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	now := h.clock.Now()
	var events []*outbox.Event

	if receiver.ReceiverPhone() != "" {
		event, eventErr := outbox.NewEvent(kernel.NewUUID(), outbox.EventTypeOtpSms, string(raw), now)
		if eventErr != nil {
			return nil, eventErr
		}
		events = append(events, event)
	}

	if receiver.ReceiverEmail() != "" {
		event, eventErr := outbox.NewEvent(kernel.NewUUID(), outbox.EventTypeOtpEmail, string(raw), now)
		if eventErr != nil {
			return nil, eventErr
		}
		events = append(events, event)
	}

	return events, nil
}
