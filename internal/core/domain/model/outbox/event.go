// Package outbox implements the transactional outbox: notification events
// are enqueued inside the business transaction and published to the broker
// after commit by a background dispatcher. A publish failure never affects
// committed business state.
package outbox

import (
	"errors"
	"time"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/errs"
)

// EventStatus represents the dispatch state of an outbox event.
type EventStatus string

const (
	EventStatusPending   EventStatus = "pending"
	EventStatusProcessed EventStatus = "processed"
	EventStatusFailed    EventStatus = "failed"
)

// Event types enqueued by the use cases. The payload carries the contact
// details and message parameters the downstream notifier needs.
const (
	EventTypeOtpSms            = "otp.sms"
	EventTypeOtpEmail          = "otp.email"
	EventTypeDeliverySettled   = "delivery.settled"
	EventTypeDeliveryFailed    = "delivery.failed"
	EventTypeDeliveryEscalated = "delivery.escalated"
	EventTypeTransferCompleted = "transfer.completed"
)

// ErrEventIsNotConstructed is returned when an Event instance was not created
// through NewEvent or RestoreEvent.
var ErrEventIsNotConstructed = errors.New("Event must be created via NewEvent or RestoreEvent")

// Event is one pending notification in the transactional outbox.
type Event struct {
	id        kernel.UUID
	eventType string
	payload   string
	status    EventStatus
	retries   int
	lastError *string
	createdAt time.Time

	isConstructed bool
}

// NewEvent creates a pending outbox event with a JSON payload.
func NewEvent(
	id kernel.UUID,
	eventType string,
	payload string,
	createdAt time.Time,
) (*Event, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if eventType == "" {
		return nil, errs.NewValueIsRequiredError("eventType")
	}
	if payload == "" {
		return nil, errs.NewValueIsRequiredError("payload")
	}
	if createdAt.IsZero() {
		return nil, errs.NewValueIsRequiredError("createdAt")
	}

	return &Event{
		id:            id,
		eventType:     eventType,
		payload:       payload,
		status:        EventStatusPending,
		createdAt:     createdAt,
		isConstructed: true,
	}, nil
}

// RestoreEvent reconstructs an Event from persistence.
// This function is intended for repository implementations only.
func RestoreEvent(
	id kernel.UUID,
	eventType string,
	payload string,
	status EventStatus,
	retries int,
	lastError *string,
	createdAt time.Time,
) (*Event, error) {
	e, err := NewEvent(id, eventType, payload, createdAt)
	if err != nil {
		return nil, err
	}

	e.status = status
	e.retries = retries
	e.lastError = lastError
	return e, nil
}

// Validate ensures the Event instance was properly constructed.
func (e *Event) Validate() error {
	if e == nil || !e.isConstructed {
		return ErrEventIsNotConstructed
	}

	return nil
}

// ID returns the event's unique identifier.
func (e *Event) ID() kernel.UUID {
	return e.id
}

// EventType returns the notification kind.
func (e *Event) EventType() string {
	return e.eventType
}

// Payload returns the JSON payload for the downstream notifier.
func (e *Event) Payload() string {
	return e.payload
}

// Status returns the dispatch state.
func (e *Event) Status() EventStatus {
	return e.status
}

// Retries returns how many failed publish attempts occurred.
func (e *Event) Retries() int {
	return e.retries
}

// LastError returns the last publish error, or nil.
func (e *Event) LastError() *string {
	return e.lastError
}

// CreatedAt returns when the event was enqueued.
func (e *Event) CreatedAt() time.Time {
	return e.createdAt
}

// MarkProcessed records a successful publish.
func (e *Event) MarkProcessed() {
	e.status = EventStatusProcessed
	e.lastError = nil
}

// MarkFailed records a failed publish attempt. The event stays eligible for
// redelivery; the dispatcher decides when to give up based on the retry count.
func (e *Event) MarkFailed(cause error) {
	e.status = EventStatusFailed
	e.retries++
	msg := cause.Error()
	e.lastError = &msg
}
