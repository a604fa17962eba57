package queries

import (
	"context"
	"errors"

	"freight/internal/core/ports"
	"freight/internal/pkg/errs"
)

// CheckOtpQueryHandler pre-validates one-time passwords.
// Reads through the OtpRepository port rather than the database directly so
// the check works identically against the Postgres and Redis backed stores.
//
// A missing code answers invalid. A duplicate row for the pair is a
// consistency violation and propagates as an error; the store promises at
// most one code per (shipment, parcel).
type CheckOtpQueryHandler struct {
	otpRepo ports.OtpRepository
	clock   ports.Clock
}

// NewCheckOtpQueryHandler creates a handler for OTP pre-validation.
func NewCheckOtpQueryHandler(otpRepo ports.OtpRepository, clock ports.Clock) CheckOtpQueryHandler {
	return CheckOtpQueryHandler{
		otpRepo: otpRepo,
		clock:   clock,
	}
}

// Handle executes the pre-validation. The code is not consumed; only the
// settlement transaction consumes codes.
func (h CheckOtpQueryHandler) Handle(ctx context.Context, query CheckOtpQuery) (CheckOtpQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return CheckOtpQueryResponse{}, err
	}

	deliveryOtp, err := h.otpRepo.Get(ctx, query.ShipmentID(), query.ParcelID())
	if errors.Is(err, errs.ErrObjectNotFound) {
		return CheckOtpQueryResponse{IsValid: false}, nil
	}
	if err != nil {
		return CheckOtpQueryResponse{}, err
	}

	return CheckOtpQueryResponse{
		IsValid: deliveryOtp.Matches(query.Code(), h.clock.Now()),
	}, nil
}
