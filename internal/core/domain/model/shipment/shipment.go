package shipment

import (
	"errors"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/errs"
)

var (
	// ErrShipmentIsNotConstructed is returned when a Shipment instance was
	// not created through NewShipment or RestoreShipment.
	ErrShipmentIsNotConstructed = errors.New("Shipment must be created via NewShipment or RestoreShipment")

	// ErrParcelAlreadyOnShipment is returned when adding a parcel that is
	// already a member of the shipment.
	ErrParcelAlreadyOnShipment = errors.New("parcel is already on the shipment")

	// ErrParcelNotOnShipment is returned when operating on a parcel that is
	// not a member of the shipment.
	ErrParcelNotOnShipment = errors.New("parcel is not on the shipment")

	// ErrProofOfTransferIsRequired is returned when a transfer is completed
	// without a proof-of-transfer image reference.
	ErrProofOfTransferIsRequired = errors.New("proof of transfer image reference is required")
)

// ParcelLeg records one parcel's membership and per-leg status on a shipment.
// It is a child entity of the Shipment aggregate.
type ParcelLeg struct {
	parcelID kernel.UUID
	status   LegStatus
}

// NewParcelLeg creates a membership entry in the given leg status.
// Intended for repository reconstruction; AddParcel is the domain entry point.
func NewParcelLeg(parcelID kernel.UUID, status LegStatus) (ParcelLeg, error) {
	if err := errors.Join(parcelID.Validate(), status.Validate()); err != nil {
		return ParcelLeg{}, err
	}
	return ParcelLeg{parcelID: parcelID, status: status}, nil
}

// ParcelID returns the member parcel's identifier.
func (l ParcelLeg) ParcelID() kernel.UUID {
	return l.parcelID
}

// Status returns the per-leg status of the member parcel.
func (l ParcelLeg) Status() LegStatus {
	return l.status
}

// Shipment represents a logical movement grouping parcels for one leg:
// a delivery run, a forwarder transfer, or a warehouse transfer. It is the
// aggregate root owning the per-parcel leg entries.
//
// Shipment follows these invariants:
//   - Must have a valid unique identifier and kind
//   - Status transitions follow Preparing -> InTransit -> Completed/Failed
//   - A parcel appears at most once among the member legs
//   - Transfer shipments carry a destination party, a driver, and a vehicle
//   - The next-parcel pointer may only reference a member parcel
//
// The next-parcel pointer is advisory: it tells the driver UI which stop the
// selector chose last, and is not used for concurrency control.
type Shipment struct {
	// id is the unique identifier for the shipment
	id kernel.UUID

	// kind is what kind of movement this shipment performs
	kind Kind

	// status is the current lifecycle state
	status Status

	// nextParcelID is the advisory "next parcel to deliver" pointer
	// (delivery shipments only, nil when unset)
	nextParcelID *kernel.UUID

	// proofOfTransferURL references the captured handoff image
	// (transfer shipments only, nil until completed)
	proofOfTransferURL *string

	// driverID and vehicleID are bound via exclusivity locks for transfers
	driverID  *kernel.UUID
	vehicleID *kernel.UUID

	// destinationPartyID identifies the receiving agent or warehouse
	// (transfer shipments only)
	destinationPartyID *kernel.UUID

	// destinationPartyName is the display name used in ledger descriptions
	destinationPartyName string

	// legs are the member parcels with their per-leg status
	legs []ParcelLeg

	// isConstructed ensures the shipment was created via a constructor
	isConstructed bool
}

// NewShipment creates a delivery shipment in Preparing status with no
// member parcels.
func NewShipment(id kernel.UUID, kind Kind) (*Shipment, error) {
	s := &Shipment{
		status:        Preparing,
		isConstructed: true,
	}

	if err := errors.Join(s.setID(id), s.setKind(kind)); err != nil {
		return nil, err
	}

	return s, nil
}

// NewTransferShipment creates a forwarder- or warehouse-transfer shipment
// bound to a driver, a vehicle, and a destination party.
func NewTransferShipment(
	id kernel.UUID,
	kind Kind,
	driverID kernel.UUID,
	vehicleID kernel.UUID,
	destinationPartyID kernel.UUID,
	destinationPartyName string,
) (*Shipment, error) {
	s, err := NewShipment(id, kind)
	if err != nil {
		return nil, err
	}

	if !kind.IsTransfer() {
		return nil, errs.NewValueIsInvalidError("kind must be a transfer kind")
	}

	if err = errors.Join(driverID.Validate(), vehicleID.Validate(), destinationPartyID.Validate()); err != nil {
		return nil, err
	}
	if destinationPartyName == "" {
		return nil, errs.NewValueIsRequiredError("destinationPartyName")
	}

	s.driverID = &driverID
	s.vehicleID = &vehicleID
	s.destinationPartyID = &destinationPartyID
	s.destinationPartyName = destinationPartyName
	return s, nil
}

// RestoreShipment reconstructs a Shipment from persistence without applying
// transition rules. Intended for repository implementations only.
func RestoreShipment(
	id kernel.UUID,
	kind Kind,
	status Status,
	nextParcelID *kernel.UUID,
	proofOfTransferURL *string,
	driverID *kernel.UUID,
	vehicleID *kernel.UUID,
	destinationPartyID *kernel.UUID,
	destinationPartyName string,
	legs []ParcelLeg,
) (*Shipment, error) {
	s := &Shipment{
		status:               status,
		nextParcelID:         nextParcelID,
		proofOfTransferURL:   proofOfTransferURL,
		driverID:             driverID,
		vehicleID:            vehicleID,
		destinationPartyID:   destinationPartyID,
		destinationPartyName: destinationPartyName,
		legs:                 make([]ParcelLeg, len(legs)),
		isConstructed:        true,
	}
	copy(s.legs, legs)

	if err := errors.Join(s.setID(id), s.setKind(kind), status.Validate()); err != nil {
		return nil, err
	}

	seen := make(map[kernel.UUID]struct{}, len(legs))
	for _, leg := range legs {
		if _, dup := seen[leg.parcelID]; dup {
			return nil, errs.NewInconsistentStateError(
				"parcel appears at most once per shipment", leg.parcelID.String())
		}
		seen[leg.parcelID] = struct{}{}
	}

	return s, nil
}

// Validate ensures the Shipment instance was properly constructed.
func (s *Shipment) Validate() error {
	if s == nil || !s.isConstructed {
		return ErrShipmentIsNotConstructed
	}

	return nil
}

// IsEqual compares two shipments by their unique identifiers.
func (s *Shipment) IsEqual(other *Shipment) bool {
	return other != nil && s.id.IsEqual(other.id)
}

// ID returns the shipment's unique identifier.
func (s *Shipment) ID() kernel.UUID {
	return s.id
}

// Kind returns what kind of movement this shipment performs.
func (s *Shipment) Kind() Kind {
	return s.kind
}

// Status returns the current lifecycle status of the shipment.
func (s *Shipment) Status() Status {
	return s.status
}

// NextParcelID returns the advisory next-parcel pointer, or nil when unset.
func (s *Shipment) NextParcelID() *kernel.UUID {
	return s.nextParcelID
}

// ProofOfTransferURL returns the proof-of-transfer image reference, or nil.
func (s *Shipment) ProofOfTransferURL() *string {
	return s.proofOfTransferURL
}

// DriverID returns the bound driver's identifier, or nil.
func (s *Shipment) DriverID() *kernel.UUID {
	return s.driverID
}

// VehicleID returns the bound vehicle's identifier, or nil.
func (s *Shipment) VehicleID() *kernel.UUID {
	return s.vehicleID
}

// DestinationPartyID returns the receiving party's identifier, or nil.
func (s *Shipment) DestinationPartyID() *kernel.UUID {
	return s.destinationPartyID
}

// DestinationPartyName returns the receiving party's display name.
func (s *Shipment) DestinationPartyName() string {
	return s.destinationPartyName
}

// Legs returns a copy of the member parcel legs in stable insertion order.
func (s *Shipment) Legs() []ParcelLeg {
	legs := make([]ParcelLeg, len(s.legs))
	copy(legs, s.legs)
	return legs
}

// InTransitLegs returns the member legs currently in transit, preserving
// insertion order. The order matters: the route selector breaks distance
// ties by first occurrence.
func (s *Shipment) InTransitLegs() []ParcelLeg {
	legs := make([]ParcelLeg, 0, len(s.legs))
	for _, leg := range s.legs {
		if leg.status == LegInTransit {
			legs = append(legs, leg)
		}
	}
	return legs
}

// LegFor returns the membership entry for the given parcel.
// Returns ErrParcelNotOnShipment if the parcel is not a member.
func (s *Shipment) LegFor(parcelID kernel.UUID) (ParcelLeg, error) {
	for _, leg := range s.legs {
		if leg.parcelID.IsEqual(parcelID) {
			return leg, nil
		}
	}
	return ParcelLeg{}, ErrParcelNotOnShipment
}

// AddParcel adds a parcel to the shipment in LegPending status.
// A parcel may only be added while the shipment is preparing.
func (s *Shipment) AddParcel(parcelID kernel.UUID) error {
	if err := parcelID.Validate(); err != nil {
		return err
	}

	if s.status != Preparing {
		return errs.NewPreconditionFailedError("shipment", "parcels can only be added while preparing")
	}

	if _, err := s.LegFor(parcelID); err == nil {
		return ErrParcelAlreadyOnShipment
	}

	s.legs = append(s.legs, ParcelLeg{parcelID: parcelID, status: LegPending})
	return nil
}

// Depart transitions the shipment to InTransit and starts every pending leg.
func (s *Shipment) Depart() error {
	newStatus, err := s.status.Depart()
	if err != nil {
		return err
	}

	s.status = newStatus
	for i, leg := range s.legs {
		started, startErr := leg.status.Start()
		if startErr != nil {
			return startErr
		}
		s.legs[i].status = started
	}
	return nil
}

// SetNextParcel records the advisory next-parcel pointer. The parcel must be
// a member of the shipment. Passing nil clears the pointer (no more parcels
// to deliver).
func (s *Shipment) SetNextParcel(parcelID *kernel.UUID) error {
	if parcelID == nil {
		s.nextParcelID = nil
		return nil
	}

	if _, err := s.LegFor(*parcelID); err != nil {
		return err
	}

	id := *parcelID
	s.nextParcelID = &id
	return nil
}

// CompleteLeg marks one member parcel's leg as completed. Used by the
// delivery flow when a parcel is settled.
func (s *Shipment) CompleteLeg(parcelID kernel.UUID) error {
	return s.updateLeg(parcelID, func(status LegStatus) (LegStatus, error) {
		return status.Complete()
	})
}

// FailLeg marks one member parcel's leg as failed. Used by the delivery flow
// when an attempt fails.
func (s *Shipment) FailLeg(parcelID kernel.UUID) error {
	return s.updateLeg(parcelID, func(status LegStatus) (LegStatus, error) {
		return status.Fail()
	})
}

// CompleteTransfer closes out a transfer shipment: the shipment becomes
// Completed, the proof-of-transfer image is stored, and every member leg is
// completed in one pass. A shipment with zero members completes safely.
//
// Completing an already completed shipment fails with a precondition error
// so a duplicate confirmation call cannot re-apply side effects.
func (s *Shipment) CompleteTransfer(proofOfTransferURL string) error {
	if !s.kind.IsTransfer() {
		return errs.NewValueIsInvalidError("kind must be a transfer kind")
	}

	if proofOfTransferURL == "" {
		return ErrProofOfTransferIsRequired
	}

	newStatus, err := s.status.Complete()
	if err != nil {
		return err
	}

	completed := make([]ParcelLeg, len(s.legs))
	for i, leg := range s.legs {
		legStatus, legErr := leg.status.Complete()
		if legErr != nil {
			return legErr
		}
		completed[i] = ParcelLeg{parcelID: leg.parcelID, status: legStatus}
	}

	s.status = newStatus
	s.proofOfTransferURL = &proofOfTransferURL
	s.legs = completed
	return nil
}

// CompleteRun closes out a delivery shipment once every leg has reached a
// final state. The delivery flow calls it after the last settlement or
// failed attempt; calling it with open legs is a precondition failure.
func (s *Shipment) CompleteRun() error {
	for _, leg := range s.legs {
		if leg.status == LegPending || leg.status == LegInTransit {
			return errs.NewPreconditionFailedError("shipment", "legs are still open")
		}
	}

	newStatus, err := s.status.Complete()
	if err != nil {
		return err
	}

	s.status = newStatus
	s.nextParcelID = nil
	return nil
}

func (s *Shipment) updateLeg(parcelID kernel.UUID, transition func(LegStatus) (LegStatus, error)) error {
	for i, leg := range s.legs {
		if !leg.parcelID.IsEqual(parcelID) {
			continue
		}

		newStatus, err := transition(leg.status)
		if err != nil {
			return err
		}

		s.legs[i].status = newStatus
		return nil
	}

	return ErrParcelNotOnShipment
}

func (s *Shipment) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	s.id = id
	return nil
}

func (s *Shipment) setKind(kind Kind) error {
	if err := kind.Validate(); err != nil {
		return err
	}
	s.kind = kind
	return nil
}
