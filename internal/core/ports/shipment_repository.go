package ports

import (
	"context"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/shipment"
)

// ShipmentRepository defines the persistence contract for shipment aggregates
// and their member legs.
type ShipmentRepository interface {
	// Add persists a new shipment aggregate and its legs to storage.
	Add(ctx context.Context, aggregate *shipment.Shipment) error

	// Update persists changes to an existing shipment aggregate, including
	// the state of every member leg.
	Update(ctx context.Context, aggregate *shipment.Shipment) error

	// Get retrieves a shipment with its legs by its unique identifier.
	// Returns an ObjectNotFoundError when no row exists and an
	// InconsistentStateError when more than one row matches.
	Get(ctx context.Context, id kernel.UUID) (*shipment.Shipment, error)
}
