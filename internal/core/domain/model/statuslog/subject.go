package statuslog

import (
	"fmt"

	"freight/internal/pkg/errs"
)

// Subject identifies which kind of aggregate a ledger entry describes.
type Subject int

const (
	// UnknownSubject represents an invalid or undefined subject.
	UnknownSubject Subject = iota

	// SubjectParcel marks entries describing a parcel status transition.
	SubjectParcel

	// SubjectShipment marks entries describing a shipment status transition.
	SubjectShipment
)

func getSubjectStrings() map[Subject]string {
	return map[Subject]string{
		UnknownSubject:  "Unknown",
		SubjectParcel:   "Parcel",
		SubjectShipment: "Shipment",
	}
}

// Validate checks if the Subject value is valid.
func (s Subject) Validate() error {
	if s != SubjectParcel && s != SubjectShipment {
		return errs.NewValueIsInvalidErrorWithCause(
			"subject is invalid",
			fmt.Errorf("%d is not a valid ledger subject", s),
		)
	}
	return nil
}

// String returns the human-readable name of the subject.
func (s Subject) String() string {
	if str, ok := getSubjectStrings()[s]; ok {
		return str
	}
	return "Unknown"
}
