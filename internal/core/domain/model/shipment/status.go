package shipment

import (
	"fmt"

	"freight/internal/pkg/errs"
)

// Status represents the lifecycle state of a shipment.
//
// State transitions:
//
//	Preparing ──> InTransit ──┬──> Completed
//	                          └──> Failed
//
// Completed and Failed are final states with no further transitions.
type Status int

const (
	// UnknownStatus represents an invalid or undefined status.
	UnknownStatus Status = iota

	// Preparing means the shipment is being assembled at the warehouse.
	Preparing

	// InTransit means the shipment has departed and is moving.
	InTransit

	// Completed means the shipment finished its leg. Final.
	Completed

	// Failed means the shipment was aborted. Final.
	Failed
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		UnknownStatus: "Unknown",
		Preparing:     "Preparing",
		InTransit:     "InTransit",
		Completed:     "Completed",
		Failed:        "Failed",
	}
}

// Validate checks if the Status value is valid.
func (s Status) Validate() error {
	if s != Preparing && s != InTransit && s != Completed && s != Failed {
		return errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%d is not a valid shipment status", s),
		)
	}
	return nil
}

// String returns the human-readable name of the status.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// Depart transitions the status to InTransit.
//
// Valid transitions:
//   - Preparing -> InTransit
func (s Status) Depart() (Status, error) {
	if s != Preparing {
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to depart from", s.String()),
		)
	}

	return InTransit, nil
}

// Complete transitions the status to Completed.
//
// Valid transitions:
//   - InTransit -> Completed
//
// Completing an already completed shipment is a precondition failure, which
// lets the transport layer distinguish a duplicate completion call from a
// plain validation error.
func (s Status) Complete() (Status, error) {
	if s == Completed {
		return 0, errs.NewPreconditionFailedError("shipment", "already completed")
	}

	if s != InTransit {
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to complete", s.String()),
		)
	}

	return Completed, nil
}

// Fail transitions the status to Failed.
//
// Valid transitions:
//   - InTransit -> Failed
func (s Status) Fail() (Status, error) {
	if s != InTransit {
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to fail", s.String()),
		)
	}

	return Failed, nil
}
