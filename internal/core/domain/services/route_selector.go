package services

import (
	"context"
	"errors"
	"math"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/parcel"
	"freight/internal/core/domain/model/shipment"
)

// ErrParcelsIncomplete is returned when a shipment leg references a parcel
// the caller did not supply. The caller is expected to load every parcel
// riding the shipment before asking for the next stop.
var ErrParcelsIncomplete = errors.New("parcels do not cover the shipment's in-transit legs")

// AddressDistanceResolver measures the travel-relevant distance from an
// origin point to a delivery address. The address is an opaque line resolved
// to coordinates by an external geocoding collaborator behind this
// capability.
type AddressDistanceResolver interface {
	DistanceMeters(ctx context.Context, origin kernel.GeoPoint, address string) (float64, error)
}

// RouteSelector is a domain service picking the next stop on a delivery
// shipment: the undelivered parcel whose delivery address is nearest to the
// driver's current position.
//
// Business rules:
//   - Only in-transit legs compete; completed and failed legs are skipped
//   - The strict minimum distance wins
//   - On ties the earliest leg in shipment order wins
//   - An empty candidate set is a normal outcome, not an error
//
// The selection is advisory. It never mutates parcel or leg state; the
// caller records the winner on the shipment's next-parcel pointer.
type RouteSelector struct{}

// NewRouteSelector creates a new RouteSelector instance.
func NewRouteSelector() RouteSelector {
	return RouteSelector{}
}

// SelectNext returns the nearest undelivered parcel on the shipment, measured
// from origin.
//
// Parameters:
//   - shp: the delivery shipment (must be valid)
//   - parcels: the parcels riding the shipment; must cover every in-transit leg
//   - origin: the driver's current position
//   - resolver: measures distance from origin to each parcel's address
//
// Returns nil with no error when the shipment has no in-transit legs. A
// distance resolution failure aborts the selection and propagates.
func (r RouteSelector) SelectNext(
	ctx context.Context,
	shp *shipment.Shipment,
	parcels []*parcel.Parcel,
	origin kernel.GeoPoint,
	resolver AddressDistanceResolver,
) (*parcel.Parcel, error) {
	if err := shp.Validate(); err != nil {
		return nil, err
	}
	if err := origin.Validate(); err != nil {
		return nil, err
	}

	byID := make(map[kernel.UUID]*parcel.Parcel, len(parcels))
	for _, p := range parcels {
		if err := p.Validate(); err != nil {
			return nil, err
		}
		byID[p.ID()] = p
	}

	var (
		best         *parcel.Parcel
		bestDistance = math.MaxFloat64
	)

	for _, leg := range shp.InTransitLegs() {
		candidate, ok := byID[leg.ParcelID()]
		if !ok {
			return nil, ErrParcelsIncomplete
		}

		distance, err := resolver.DistanceMeters(ctx, origin, candidate.Address())
		if err != nil {
			return nil, err
		}

		// strict comparison keeps the earliest leg on ties
		if distance < bestDistance {
			bestDistance = distance
			best = candidate
		}
	}

	return best, nil
}
