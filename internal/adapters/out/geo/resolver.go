// Package geo resolves delivery addresses to distances for route selection.
// Addresses stay opaque to the engine; an external geocoder turns them into
// coordinates and the great-circle distance does the rest.
package geo

import (
	"context"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/ports"
)

// GeocodeDistanceResolver measures the straight-line distance from an origin
// to a delivery address by geocoding the address first.
type GeocodeDistanceResolver struct {
	geocoder ports.Geocoder
}

// NewGeocodeDistanceResolver creates a resolver backed by the given geocoder.
func NewGeocodeDistanceResolver(geocoder ports.Geocoder) *GeocodeDistanceResolver {
	return &GeocodeDistanceResolver{geocoder: geocoder}
}

// DistanceMeters geocodes the address and returns the great-circle distance
// from the origin in meters.
func (r *GeocodeDistanceResolver) DistanceMeters(
	ctx context.Context,
	origin kernel.GeoPoint,
	address string,
) (float64, error) {
	destination, err := r.geocoder.Geocode(ctx, address)
	if err != nil {
		return 0, err
	}

	return origin.DistanceMetersTo(destination)
}
