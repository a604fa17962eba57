package parcel

import (
	"fmt"

	"freight/internal/pkg/errs"
)

// ReceptionMode describes how the receiver obtains the parcel.
//
// DoorToDoor is the default: a driver brings the parcel to the receiver's
// address. After the second failed delivery attempt the mode escalates to
// ForPickup and the receiver must collect the parcel at the warehouse; the
// escalation never reverts automatically.
type ReceptionMode int

const (
	// UnknownMode represents an invalid or undefined reception mode.
	UnknownMode ReceptionMode = iota

	// DoorToDoor means the parcel is delivered to the receiver's address.
	DoorToDoor

	// ForPickup means the receiver collects the parcel at the warehouse.
	ForPickup
)

func getReceptionModeStrings() map[ReceptionMode]string {
	return map[ReceptionMode]string{
		UnknownMode: "Unknown",
		DoorToDoor:  "DoorToDoor",
		ForPickup:   "ForPickup",
	}
}

// Validate checks if the ReceptionMode value is valid.
func (m ReceptionMode) Validate() error {
	if m != DoorToDoor && m != ForPickup {
		return errs.NewValueIsInvalidErrorWithCause(
			"reception mode is invalid",
			fmt.Errorf("%d is not a valid reception mode", m),
		)
	}
	return nil
}

// String returns the human-readable name of the reception mode.
func (m ReceptionMode) String() string {
	if str, ok := getReceptionModeStrings()[m]; ok {
		return str
	}
	return "Unknown"
}
