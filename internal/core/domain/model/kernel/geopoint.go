package kernel

import (
	"errors"
	"fmt"

	"freight/internal/pkg/errs"
	"freight/internal/pkg/guard"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"
)

const (
	// LatitudeMin is the minimum valid latitude in degrees.
	LatitudeMin = -90.0
	// LatitudeMax is the maximum valid latitude in degrees.
	LatitudeMax = 90.0
	// LongitudeMin is the minimum valid longitude in degrees.
	LongitudeMin = -180.0
	// LongitudeMax is the maximum valid longitude in degrees.
	LongitudeMax = 180.0
)

// ErrGeoPointIsNotConstructed is returned when attempting to use an
// improperly initialized GeoPoint. GeoPoints must be created using the
// NewGeoPoint constructor to ensure coordinates are within WGS84 bounds.
var ErrGeoPointIsNotConstructed = errs.NewValueIsRequiredError(
	"geo point must be created via NewGeoPoint constructor")

// GeoPoint represents a WGS84 coordinate pair with validated bounds.
// GeoPoint is an immutable value object; the zero value is invalid and will
// fail validation - use the constructor to create instances.
//
// GeoPoints describe where a driver currently is and where a parcel must be
// delivered. Straight-line (great-circle) distance between two points is the
// metric used by the next-delivery selection.
//
// Example:
//
//	origin, err := kernel.NewGeoPoint(14.65, 121.03)
//	if err != nil {
//	    // Handle validation error
//	}
type GeoPoint struct { //nolint:recvcheck //using for validation
	lat  float64
	long float64

	guard guard.ConstructorGuard
}

// NewGeoPoint creates a GeoPoint from latitude and longitude in degrees.
// Latitude must lie in [LatitudeMin..LatitudeMax] and longitude in
// [LongitudeMin..LongitudeMax]; both bounds are inclusive.
func NewGeoPoint(lat float64, long float64) (GeoPoint, error) {
	point := GeoPoint{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(point.setLat(lat), point.setLong(long)); err != nil {
		return GeoPoint{}, err
	}

	return point, nil
}

// Validate checks if the GeoPoint was properly constructed using the
// constructor. The zero value is invalid and fails this validation.
func (p GeoPoint) Validate() error {
	return p.guard.Validate(ErrGeoPointIsNotConstructed)
}

// Lat returns the latitude in degrees.
func (p GeoPoint) Lat() float64 {
	return p.lat
}

// Long returns the longitude in degrees.
func (p GeoPoint) Long() float64 {
	return p.long
}

// DistanceMetersTo returns the great-circle distance to another point in
// meters. Both points must be properly constructed.
func (p GeoPoint) DistanceMetersTo(other GeoPoint) (float64, error) {
	if err := p.Validate(); err != nil {
		return 0, err
	}
	if err := other.Validate(); err != nil {
		return 0, err
	}

	return geo.Distance(
		orb.Point{p.long, p.lat},
		orb.Point{other.long, other.lat},
	), nil
}

// IsEqual compares two GeoPoints by exact coordinate equality.
func (p GeoPoint) IsEqual(other GeoPoint) bool {
	return p.lat == other.lat && p.long == other.long
}

// String returns a human-readable "lat,long" representation.
func (p GeoPoint) String() string {
	return fmt.Sprintf("%.6f,%.6f", p.lat, p.long)
}

func (p *GeoPoint) setLat(lat float64) error {
	if lat < LatitudeMin || lat > LatitudeMax {
		return errs.NewValueIsOutOfRangeError("lat", lat, LatitudeMin, LatitudeMax)
	}
	p.lat = lat
	return nil
}

func (p *GeoPoint) setLong(long float64) error {
	if long < LongitudeMin || long > LongitudeMax {
		return errs.NewValueIsOutOfRangeError("long", long, LongitudeMin, LongitudeMax)
	}
	p.long = long
	return nil
}
