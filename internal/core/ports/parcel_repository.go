package ports

import (
	"context"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/parcel"
)

// ParcelRepository defines the persistence contract for parcel aggregates.
// Parcels are never deleted; the contract only grows rows and mutates state.
type ParcelRepository interface {
	// Add persists a new parcel aggregate to storage.
	Add(ctx context.Context, aggregate *parcel.Parcel) error

	// Update persists changes to an existing parcel aggregate.
	Update(ctx context.Context, aggregate *parcel.Parcel) error

	// UpdateBatch persists changes to many parcels in one round trip.
	// Used by the transfer completion flow to settle all members at once.
	UpdateBatch(ctx context.Context, aggregates []*parcel.Parcel) error

	// Get retrieves a parcel aggregate by its unique identifier.
	// Returns an ObjectNotFoundError when no row exists.
	Get(ctx context.Context, id kernel.UUID) (*parcel.Parcel, error)

	// GetMany retrieves the parcels for the given identifiers. Every id must
	// resolve; a missing row is an ObjectNotFoundError.
	GetMany(ctx context.Context, ids []kernel.UUID) ([]*parcel.Parcel, error)

	// GetAllRequeueable retrieves failed door-to-door parcels below the
	// escalation threshold. Used by the redelivery job.
	GetAllRequeueable(ctx context.Context) ([]*parcel.Parcel, error)
}
