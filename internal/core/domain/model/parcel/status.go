package parcel

import (
	"fmt"

	"freight/internal/pkg/errs"
)

// Status represents the global lifecycle state of a parcel across the whole
// logistics pipeline, independent of any particular shipment leg.
//
// State transitions:
//
//	InWarehouse ──> Sorting ──┬──> Shipping ──> OutForDelivery ──┬──> Delivered
//	     ^                    │         │              │         │
//	     │                    │         └──────────────┴─────────┴──> FailedDelivery
//	     │                    ├──> TransferringWarehouse ──> InWarehouse
//	     │                    └──> TransferringForwarder ──> TransferredForwarder
//	     │                                                        │
//	     └── FailedDelivery ──> Sorting <─────────────────────────┘
//
// Delivered is terminal. FailedDelivery is recoverable: the parcel is
// re-queued into sorting for another delivery run or handed over for pickup.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// InWarehouse means the parcel is stored at one of our warehouses.
	InWarehouse

	// Sorting means the parcel is being allocated to its next leg.
	Sorting

	// TransferringWarehouse means the parcel is moving between our warehouses.
	TransferringWarehouse

	// TransferringForwarder means the parcel is on its way to a partner forwarder.
	TransferringForwarder

	// TransferredForwarder means a partner forwarder has confirmed receipt.
	TransferredForwarder

	// Shipping means the parcel is on an outbound delivery shipment.
	Shipping

	// OutForDelivery means the parcel is on the last-mile vehicle.
	OutForDelivery

	// Delivered means the receiver confirmed receipt. Terminal.
	Delivered

	// FailedDelivery means the last delivery attempt failed.
	FailedDelivery
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:               "Unknown",
		InWarehouse:           "InWarehouse",
		Sorting:               "Sorting",
		TransferringWarehouse: "TransferringWarehouse",
		TransferringForwarder: "TransferringForwarder",
		TransferredForwarder:  "TransferredForwarder",
		Shipping:              "Shipping",
		OutForDelivery:        "OutForDelivery",
		Delivered:             "Delivered",
		FailedDelivery:        "FailedDelivery",
	}
}

// allowedTransitions is the explicit transition table. A parcel may only move
// along these edges; everything else is rejected with a validation error.
func allowedTransitions() map[Status][]Status {
	return map[Status][]Status{
		InWarehouse:           {Sorting, TransferringWarehouse, TransferringForwarder, Shipping},
		Sorting:               {InWarehouse, TransferringWarehouse, TransferringForwarder, Shipping},
		TransferringWarehouse: {InWarehouse},
		TransferringForwarder: {TransferredForwarder},
		TransferredForwarder:  {Sorting, Shipping},
		Shipping:              {OutForDelivery, Delivered, FailedDelivery},
		OutForDelivery:        {Delivered, FailedDelivery},
		Delivered:             {},
		FailedDelivery:        {Sorting, Shipping, OutForDelivery},
	}
}

// Validate checks if the Status value is one of the defined parcel statuses.
// Unknown (0) and out-of-range values are invalid.
func (s Status) Validate() error {
	if _, ok := allowedTransitions()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the human-readable name of the status.
// Returns "Unknown" for invalid status values.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// CanTransitionTo reports whether moving to the target status is allowed
// from the current one.
func (s Status) CanTransitionTo(target Status) bool {
	for _, allowed := range allowedTransitions()[s] {
		if allowed == target {
			return true
		}
	}
	return false
}

// TransitionTo validates and performs the transition to the target status.
//
// Returns:
//   - (target, nil) on a valid transition
//   - (0, error) if the edge is not in the allowed-transition table
func (s Status) TransitionTo(target Status) (Status, error) {
	if err := target.Validate(); err != nil {
		return 0, err
	}

	if !s.CanTransitionTo(target) {
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s cannot transition to %s", s.String(), target.String()),
		)
	}

	return target, nil
}

// IsTerminal reports whether the status allows no further transitions.
func (s Status) IsTerminal() bool {
	return len(allowedTransitions()[s]) == 0 && s.Validate() == nil
}
