// Package queries contains read-only operations in the CQRS architecture.
// Query handlers read either through a repository port (when the backing
// store is swappable) or straight through the database as a read model.
package queries

import (
	"errors"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/errs"
	"freight/internal/pkg/guard"
)

var ErrCheckOtpQueryIsNotConstructed = errors.New(
	"CheckOtpQuery must be created via NewCheckOtpQuery constructor",
)

// CheckOtpQuery asks whether a presented one-time password would settle the
// delivery, without consuming it. The driver's app uses it to pre-validate
// before uploading the proof photo.
type CheckOtpQuery struct { //nolint:recvcheck //using for validation
	shipmentID kernel.UUID
	parcelID   kernel.UUID
	code       string

	guard guard.ConstructorGuard
}

// NewCheckOtpQuery creates a query to pre-validate a one-time password.
func NewCheckOtpQuery(shipmentID, parcelID kernel.UUID, code string) (CheckOtpQuery, error) {
	query := CheckOtpQuery{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		shipmentID.Validate(),
		parcelID.Validate(),
	); err != nil {
		return CheckOtpQuery{}, err
	}
	if code == "" {
		return CheckOtpQuery{}, errs.NewValueIsRequiredError("code")
	}

	query.shipmentID = shipmentID
	query.parcelID = parcelID
	query.code = code
	return query, nil
}

// Validate ensures the query was created through the constructor.
func (q CheckOtpQuery) Validate() error {
	return q.guard.Validate(ErrCheckOtpQueryIsNotConstructed)
}

// ShipmentID returns the delivery shipment the parcel rides.
func (q CheckOtpQuery) ShipmentID() kernel.UUID {
	return q.shipmentID
}

// ParcelID returns the parcel the code would settle.
func (q CheckOtpQuery) ParcelID() kernel.UUID {
	return q.parcelID
}

// Code returns the presented one-time password.
func (q CheckOtpQuery) Code() string {
	return q.code
}

// CheckOtpQueryResponse reports only whether the code would be accepted.
// The reason for a rejection is never revealed.
type CheckOtpQueryResponse struct {
	IsValid bool
}
