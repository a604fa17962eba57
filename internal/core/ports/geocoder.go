package ports

import (
	"context"

	"freight/internal/core/domain/model/kernel"
)

// Geocoder resolves an opaque delivery address line to coordinates. Geocoding
// itself is an external collaborator; the engine treats addresses as opaque
// and only consumes the resulting point.
type Geocoder interface {
	Geocode(ctx context.Context, address string) (kernel.GeoPoint, error)
}
