package ports

import (
	"context"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/tracking"
)

// LocationRepository defines the persistence contract for the append-only
// stream of shipment position samples.
type LocationRepository interface {
	// Add appends one position sample.
	Add(ctx context.Context, sample *tracking.LocationSample) error

	// GetLatest retrieves the most recent sample for the shipment. Returns
	// an ObjectNotFoundError when the shipment has never reported.
	GetLatest(ctx context.Context, shipmentID kernel.UUID) (*tracking.LocationSample, error)

	// GetAllForShipment retrieves every sample for the shipment, ordered by
	// creation time ascending.
	GetAllForShipment(ctx context.Context, shipmentID kernel.UUID) ([]*tracking.LocationSample, error)
}
