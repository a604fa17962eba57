package shipment

import (
	"fmt"

	"freight/internal/pkg/errs"
)

// Kind describes what kind of movement a shipment performs.
type Kind int

const (
	// UnknownKind represents an invalid or undefined kind.
	UnknownKind Kind = iota

	// Delivery is a last-mile run bringing parcels to receivers.
	Delivery

	// ForwarderTransfer moves parcels to a partner forwarder.
	ForwarderTransfer

	// WarehouseTransfer moves parcels between our warehouses.
	WarehouseTransfer
)

func getKindStrings() map[Kind]string {
	return map[Kind]string{
		UnknownKind:       "Unknown",
		Delivery:          "Delivery",
		ForwarderTransfer: "ForwarderTransfer",
		WarehouseTransfer: "WarehouseTransfer",
	}
}

// Validate checks if the Kind value is valid.
func (k Kind) Validate() error {
	if k != Delivery && k != ForwarderTransfer && k != WarehouseTransfer {
		return errs.NewValueIsInvalidErrorWithCause(
			"kind is invalid",
			fmt.Errorf("%d is not a valid shipment kind", k),
		)
	}
	return nil
}

// IsTransfer reports whether the shipment moves parcels between parties
// rather than delivering them to receivers.
func (k Kind) IsTransfer() bool {
	return k == ForwarderTransfer || k == WarehouseTransfer
}

// String returns the human-readable name of the kind.
func (k Kind) String() string {
	if str, ok := getKindStrings()[k]; ok {
		return str
	}
	return "Unknown"
}
