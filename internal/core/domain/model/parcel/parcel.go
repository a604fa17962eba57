package parcel

import (
	"errors"
	"time"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/errs"
)

// EscalationThreshold is the failed-attempt count at which a door-to-door
// parcel escalates to pickup mode. The flip happens exactly when the counter
// reaches this value and never reverts automatically.
const EscalationThreshold = 2

var (
	// ErrParcelIsNotConstructed is returned when a Parcel instance was not
	// created through NewParcel or RestoreParcel. This ensures all parcels
	// are properly validated.
	ErrParcelIsNotConstructed = errors.New("Parcel must be created via NewParcel or RestoreParcel")

	// ErrProofOfDeliveryIsRequired is returned when a delivery is committed
	// without a proof-of-delivery image reference.
	ErrProofOfDeliveryIsRequired = errors.New("proof of delivery image reference is required")

	// ErrSurveyAccessKeyAlreadyIssued is returned when attempting to issue a
	// second survey access key. Each parcel owns at most one long-lived key.
	ErrSurveyAccessKeyAlreadyIssued = errors.New("survey access key is already issued")
)

// Parcel represents one physical freight package. It is the aggregate root
// that manages the package's global delivery lifecycle from warehouse intake
// through transfers to last-mile delivery.
//
// Parcel follows these invariants:
//   - Must have a valid unique identifier and a valid sending agent
//   - Status transitions follow the explicit table in Status
//   - The failed-attempt counter only increases
//   - Reception mode flips to ForPickup exactly once, when attempts reach EscalationThreshold
//   - A parcel is never deleted; Delivered is the only terminal status
//   - Can only be created through NewParcel or RestoreParcel
//
// Sender and receiver contact and address fields are opaque to the engine;
// they are carried for ledger descriptions, notifications, and the geocoding
// collaborator, never interpreted.
type Parcel struct {
	// id is the unique identifier (opaque tracking id) for the parcel
	id kernel.UUID

	// senderAgentID identifies the agent who handed the parcel in
	senderAgentID kernel.UUID

	// receiver contact fields, opaque to the engine
	receiverName  string
	receiverPhone string
	receiverEmail string

	// address is the delivery address line, resolved to coordinates by an
	// external geocoding collaborator
	address string

	// status is the current global lifecycle state
	status Status

	// receptionMode is how the receiver obtains the parcel
	receptionMode ReceptionMode

	// failedAttempts counts failed delivery attempts; monotonically increasing
	failedAttempts int

	// proofOfDeliveryURL references the captured proof image (nil until delivered)
	proofOfDeliveryURL *string

	// settledAt is when the delivery was settled (nil until delivered)
	settledAt *time.Time

	// surveyAccessKey gates the post-delivery satisfaction survey; issued at
	// most once per parcel, checked for equality only, never time-boxed
	surveyAccessKey *string

	// isConstructed ensures the parcel was created via a constructor
	isConstructed bool
}

// NewParcel creates a new Parcel at warehouse intake with InWarehouse status
// and DoorToDoor reception mode.
//
// Parameters:
//   - id: Unique identifier for the parcel (must be valid UUID)
//   - senderAgentID: The sending agent's identifier (must be valid UUID)
//   - receiverName, receiverPhone, receiverEmail: receiver contact (name required)
//   - address: delivery address line (required)
//
// Returns the created parcel, or a validation error if any parameter is
// invalid.
func NewParcel(
	id kernel.UUID,
	senderAgentID kernel.UUID,
	receiverName string,
	receiverPhone string,
	receiverEmail string,
	address string,
) (*Parcel, error) {
	p := &Parcel{
		status:        InWarehouse,
		receptionMode: DoorToDoor,
		isConstructed: true,
	}

	if err := errors.Join(
		p.setID(id),
		p.setSenderAgentID(senderAgentID),
		p.setReceiver(receiverName, receiverPhone, receiverEmail),
		p.setAddress(address),
	); err != nil {
		return nil, err
	}

	return p, nil
}

// RestoreParcel reconstructs a Parcel from persistence without applying
// transition rules. All invariant checks on individual values still run.
// This function is intended for repository implementations only.
func RestoreParcel(
	id kernel.UUID,
	senderAgentID kernel.UUID,
	receiverName string,
	receiverPhone string,
	receiverEmail string,
	address string,
	status Status,
	receptionMode ReceptionMode,
	failedAttempts int,
	proofOfDeliveryURL *string,
	settledAt *time.Time,
	surveyAccessKey *string,
) (*Parcel, error) {
	p := &Parcel{
		status:             status,
		receptionMode:      receptionMode,
		failedAttempts:     failedAttempts,
		proofOfDeliveryURL: proofOfDeliveryURL,
		settledAt:          settledAt,
		surveyAccessKey:    surveyAccessKey,
		isConstructed:      true,
	}

	if err := errors.Join(
		p.setID(id),
		p.setSenderAgentID(senderAgentID),
		p.setReceiver(receiverName, receiverPhone, receiverEmail),
		p.setAddress(address),
		status.Validate(),
		receptionMode.Validate(),
	); err != nil {
		return nil, err
	}

	if failedAttempts < 0 {
		return nil, errs.NewValueIsInvalidError("failedAttempts")
	}

	return p, nil
}

// Validate ensures the Parcel instance was properly constructed.
// Returns ErrParcelIsNotConstructed otherwise.
func (p *Parcel) Validate() error {
	if p == nil || !p.isConstructed {
		return ErrParcelIsNotConstructed
	}

	return nil
}

// IsEqual compares two parcels by their unique identifiers.
func (p *Parcel) IsEqual(other *Parcel) bool {
	return other != nil && p.id.IsEqual(other.id)
}

// ID returns the parcel's unique identifier.
func (p *Parcel) ID() kernel.UUID {
	return p.id
}

// SenderAgentID returns the identifier of the agent who handed the parcel in.
func (p *Parcel) SenderAgentID() kernel.UUID {
	return p.senderAgentID
}

// ReceiverName returns the receiver's display name.
func (p *Parcel) ReceiverName() string {
	return p.receiverName
}

// ReceiverPhone returns the receiver's phone number, if any.
func (p *Parcel) ReceiverPhone() string {
	return p.receiverPhone
}

// ReceiverEmail returns the receiver's email address, if any.
func (p *Parcel) ReceiverEmail() string {
	return p.receiverEmail
}

// Address returns the opaque delivery address line.
func (p *Parcel) Address() string {
	return p.address
}

// Status returns the current global lifecycle status of the parcel.
func (p *Parcel) Status() Status {
	return p.status
}

// ReceptionMode returns how the receiver obtains the parcel.
func (p *Parcel) ReceptionMode() ReceptionMode {
	return p.receptionMode
}

// FailedAttempts returns the number of failed delivery attempts.
func (p *Parcel) FailedAttempts() int {
	return p.failedAttempts
}

// ProofOfDeliveryURL returns the proof-of-delivery image reference.
// Returns nil if the parcel has not been delivered.
func (p *Parcel) ProofOfDeliveryURL() *string {
	return p.proofOfDeliveryURL
}

// SettledAt returns the settlement timestamp.
// Returns nil if the parcel has not been delivered.
func (p *Parcel) SettledAt() *time.Time {
	return p.settledAt
}

// SurveyAccessKey returns the post-delivery survey access key.
// Returns nil if no key has been issued yet.
func (p *Parcel) SurveyAccessKey() *string {
	return p.surveyAccessKey
}

// MarkDelivered settles the parcel: transitions the status to Delivered and
// records the proof-of-delivery image reference and settlement timestamp.
//
// Business rules:
//   - The parcel must be in a status that allows the Delivered transition
//     (Shipping or OutForDelivery)
//   - The proof image reference must not be empty
//
// The OTP gating the transition is checked and consumed by the application
// layer inside the same transaction; the aggregate only enforces its own
// state rules.
func (p *Parcel) MarkDelivered(proofOfDeliveryURL string, settledAt time.Time) error {
	if proofOfDeliveryURL == "" {
		return ErrProofOfDeliveryIsRequired
	}

	newStatus, err := p.status.TransitionTo(Delivered)
	if err != nil {
		return err
	}

	p.status = newStatus
	p.proofOfDeliveryURL = &proofOfDeliveryURL
	p.settledAt = &settledAt
	return nil
}

// RecordFailedDelivery registers one failed delivery attempt.
//
// The status transitions to FailedDelivery, the attempt counter increases,
// and when the new count reaches EscalationThreshold the reception mode flips
// to ForPickup. The flip happens exactly once: a third failure leaves the
// mode untouched.
//
// Returns:
//   - escalated: true iff this attempt triggered the ForPickup escalation
//   - error: if the status does not allow a delivery failure
func (p *Parcel) RecordFailedDelivery() (bool, error) {
	newStatus, err := p.status.TransitionTo(FailedDelivery)
	if err != nil {
		return false, err
	}

	p.status = newStatus
	p.failedAttempts++

	escalated := false
	if p.failedAttempts == EscalationThreshold && p.receptionMode == DoorToDoor {
		p.receptionMode = ForPickup
		escalated = true
	}

	return escalated, nil
}

// CompleteForwarderTransfer marks the parcel as received by a partner
// forwarder. Used by the transfer-completion flow for forwarder legs.
func (p *Parcel) CompleteForwarderTransfer() error {
	newStatus, err := p.status.TransitionTo(TransferredForwarder)
	if err != nil {
		return err
	}

	p.status = newStatus
	return nil
}

// CompleteWarehouseTransfer marks the parcel as arrived at the destination
// warehouse. Used by the transfer-completion flow for warehouse legs.
func (p *Parcel) CompleteWarehouseTransfer() error {
	newStatus, err := p.status.TransitionTo(InWarehouse)
	if err != nil {
		return err
	}

	p.status = newStatus
	return nil
}

// RequeueForDelivery puts a failed door-to-door parcel back into sorting so
// the next delivery run can pick it up. Parcels escalated to ForPickup stay
// at the warehouse and are not requeued.
func (p *Parcel) RequeueForDelivery() error {
	if p.receptionMode != DoorToDoor {
		return errs.NewPreconditionFailedError("parcel", "pickup parcels are not requeued for delivery")
	}

	if p.status != FailedDelivery {
		return errs.NewPreconditionFailedError("parcel", "only failed deliveries are requeued")
	}

	newStatus, err := p.status.TransitionTo(Sorting)
	if err != nil {
		return err
	}

	p.status = newStatus
	return nil
}

// IssueSurveyAccessKey stores the single long-lived access key that gates the
// post-delivery satisfaction survey. A parcel owns at most one key; issuing a
// second returns ErrSurveyAccessKeyAlreadyIssued.
func (p *Parcel) IssueSurveyAccessKey(key string) error {
	if key == "" {
		return errs.NewValueIsRequiredError("surveyAccessKey")
	}

	if p.surveyAccessKey != nil {
		return ErrSurveyAccessKeyAlreadyIssued
	}

	p.surveyAccessKey = &key
	return nil
}

func (p *Parcel) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	p.id = id
	return nil
}

func (p *Parcel) setSenderAgentID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	p.senderAgentID = id
	return nil
}

func (p *Parcel) setReceiver(name, phone, email string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("receiverName")
	}
	p.receiverName = name
	p.receiverPhone = phone
	p.receiverEmail = email
	return nil
}

func (p *Parcel) setAddress(address string) error {
	if address == "" {
		return errs.NewValueIsRequiredError("address")
	}
	p.address = address
	return nil
}
