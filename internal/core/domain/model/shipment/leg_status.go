package shipment

import (
	"fmt"

	"freight/internal/pkg/errs"
)

// LegStatus represents one parcel's progress on one shipment. It is distinct
// from the parcel's global status: a parcel can be LegInTransit on its
// current leg while its global status is, for example, Sorting.
//
// State transitions:
//
//	LegPending ──┬──> LegInTransit ──┬──> LegCompleted
//	             │                   └──> LegFailed
//	             └──> LegCompleted        (batch transfer completion)
type LegStatus int

const (
	// UnknownLegStatus represents an invalid or undefined leg status.
	UnknownLegStatus LegStatus = iota

	// LegPending means the parcel is on the shipment but the leg has not started.
	LegPending

	// LegInTransit means the parcel is moving on this leg.
	LegInTransit

	// LegCompleted means the parcel finished this leg. Final.
	LegCompleted

	// LegFailed means the parcel could not complete this leg. Final.
	LegFailed
)

func getLegStatusStrings() map[LegStatus]string {
	return map[LegStatus]string{
		UnknownLegStatus: "Unknown",
		LegPending:       "Pending",
		LegInTransit:     "InTransit",
		LegCompleted:     "Completed",
		LegFailed:        "Failed",
	}
}

// Validate checks if the LegStatus value is valid.
func (s LegStatus) Validate() error {
	if s != LegPending && s != LegInTransit && s != LegCompleted && s != LegFailed {
		return errs.NewValueIsInvalidErrorWithCause(
			"leg status is invalid",
			fmt.Errorf("%d is not a valid leg status", s),
		)
	}
	return nil
}

// String returns the human-readable name of the leg status.
func (s LegStatus) String() string {
	if str, ok := getLegStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// Complete transitions the leg to LegCompleted.
//
// Valid transitions:
//   - LegInTransit -> LegCompleted (delivery settled, transfer confirmed)
//   - LegPending -> LegCompleted (batch transfer completion closes pending legs too)
func (s LegStatus) Complete() (LegStatus, error) {
	if s != LegInTransit && s != LegPending {
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"leg status is invalid",
			fmt.Errorf("%s is not a valid leg status to complete", s.String()),
		)
	}

	return LegCompleted, nil
}

// Fail transitions the leg to LegFailed.
//
// Valid transitions:
//   - LegInTransit -> LegFailed
func (s LegStatus) Fail() (LegStatus, error) {
	if s != LegInTransit {
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"leg status is invalid",
			fmt.Errorf("%s is not a valid leg status to fail", s.String()),
		)
	}

	return LegFailed, nil
}

// Start transitions the leg to LegInTransit.
//
// Valid transitions:
//   - LegPending -> LegInTransit
func (s LegStatus) Start() (LegStatus, error) {
	if s != LegPending {
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"leg status is invalid",
			fmt.Errorf("%s is not a valid leg status to start", s.String()),
		)
	}

	return LegInTransit, nil
}
