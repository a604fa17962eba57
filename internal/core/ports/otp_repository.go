package ports

import (
	"context"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/otp"
)

// OtpRepository defines the persistence contract for delivery one-time
// passwords. The store is keyed by the (shipment, parcel) pair: Save upserts,
// so issuing a new code silently replaces the previous one.
//
// Implementations exist for Postgres (row upsert) and Redis (native TTL).
type OtpRepository interface {
	// Save upserts the code for its (shipment, parcel) pair. The last saved
	// code is the only one that can ever match.
	Save(ctx context.Context, aggregate *otp.DeliveryOtp) error

	// Get retrieves the code for the pair. Returns an ObjectNotFoundError
	// when no code exists. Both backends key on the pair, so at most one
	// code can ever be stored.
	Get(ctx context.Context, shipmentID, parcelID kernel.UUID) (*otp.DeliveryOtp, error)
}
