package otp

import (
	"errors"
	"time"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/errs"
)

var (
	// ErrOtpIsNotConstructed is returned when a DeliveryOtp instance was not
	// created through NewDeliveryOtp or RestoreDeliveryOtp.
	ErrOtpIsNotConstructed = errors.New("DeliveryOtp must be created via NewDeliveryOtp or RestoreDeliveryOtp")

	// ErrOtpAlreadyConsumed is returned when consuming a code that has
	// already settled a delivery or was invalidated by a failed attempt.
	ErrOtpAlreadyConsumed = errors.New("one-time password is already consumed")
)

// DeliveryOtp is the one-time password gating delivery settlement for one
// parcel on one delivery shipment.
//
// DeliveryOtp follows these invariants:
//   - Identified by the (shipment, parcel) pair; at most one row exists per pair
//   - The code is a non-empty fixed-width numeric string
//   - Once consumed or invalidated it never becomes valid again
//   - Can only be created through NewDeliveryOtp or RestoreDeliveryOtp
//
// Whether a presented code is accepted depends on three facts: the stored
// code matches, the expiry has not passed, and the row is still valid. The
// caller never learns which of the three failed.
type DeliveryOtp struct {
	shipmentID kernel.UUID
	parcelID   kernel.UUID
	code       string
	expiresAt  time.Time
	isValid    bool

	// isConstructed ensures the OTP was created via a constructor
	isConstructed bool
}

// NewDeliveryOtp creates a valid one-time password for the (shipment, parcel)
// pair. Persisting it overwrites any previous code for the same pair, so the
// last issued code is the only one that can ever match.
func NewDeliveryOtp(
	shipmentID kernel.UUID,
	parcelID kernel.UUID,
	code string,
	expiresAt time.Time,
) (*DeliveryOtp, error) {
	o := &DeliveryOtp{
		isValid:       true,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setShipmentID(shipmentID),
		o.setParcelID(parcelID),
		o.setCode(code),
		o.setExpiresAt(expiresAt),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// RestoreDeliveryOtp reconstructs a DeliveryOtp from persistence.
// This function is intended for repository implementations only.
func RestoreDeliveryOtp(
	shipmentID kernel.UUID,
	parcelID kernel.UUID,
	code string,
	expiresAt time.Time,
	isValid bool,
) (*DeliveryOtp, error) {
	o := &DeliveryOtp{
		isValid:       isValid,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setShipmentID(shipmentID),
		o.setParcelID(parcelID),
		o.setCode(code),
		o.setExpiresAt(expiresAt),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// Validate ensures the DeliveryOtp instance was properly constructed.
// Returns ErrOtpIsNotConstructed otherwise.
func (o *DeliveryOtp) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOtpIsNotConstructed
	}

	return nil
}

// ShipmentID returns the delivery shipment the code belongs to.
func (o *DeliveryOtp) ShipmentID() kernel.UUID {
	return o.shipmentID
}

// ParcelID returns the parcel the code settles.
func (o *DeliveryOtp) ParcelID() kernel.UUID {
	return o.parcelID
}

// Code returns the stored code. Repository use only; matching goes through
// Matches so the expiry and validity checks cannot be skipped.
func (o *DeliveryOtp) Code() string {
	return o.code
}

// ExpiresAt returns the expiry instant.
func (o *DeliveryOtp) ExpiresAt() time.Time {
	return o.expiresAt
}

// IsValid reports whether the code has neither been consumed nor invalidated.
func (o *DeliveryOtp) IsValid() bool {
	return o.isValid
}

// Matches reports whether the presented code settles the delivery at the
// given instant. All three conditions must hold: the code matches, the row is
// still valid, and the expiry has not passed. Callers must not reveal which
// condition failed.
func (o *DeliveryOtp) Matches(code string, now time.Time) bool {
	return o.isValid && o.code == code && now.Before(o.expiresAt)
}

// Consume marks the code as used. Called exactly once, inside the delivery
// settlement transaction; if that transaction rolls back the consumption is
// rolled back with it.
func (o *DeliveryOtp) Consume() error {
	if !o.isValid {
		return ErrOtpAlreadyConsumed
	}

	o.isValid = false
	return nil
}

// Invalidate defensively retires the code regardless of current state. Used
// when a delivery attempt fails so a stale code cannot settle a later run.
func (o *DeliveryOtp) Invalidate() {
	o.isValid = false
}

func (o *DeliveryOtp) setShipmentID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.shipmentID = id
	return nil
}

func (o *DeliveryOtp) setParcelID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.parcelID = id
	return nil
}

func (o *DeliveryOtp) setCode(code string) error {
	if code == "" {
		return errs.NewValueIsRequiredError("code")
	}
	for _, r := range code {
		if r < '0' || r > '9' {
			return errs.NewValueIsInvalidError("code")
		}
	}
	o.code = code
	return nil
}

func (o *DeliveryOtp) setExpiresAt(expiresAt time.Time) error {
	if expiresAt.IsZero() {
		return errs.NewValueIsRequiredError("expiresAt")
	}
	o.expiresAt = expiresAt
	return nil
}
