// Package tracking holds the append-only stream of live shipment positions.
package tracking

import (
	"errors"
	"time"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/errs"
)

// ErrSampleIsNotConstructed is returned when a LocationSample instance was
// not created through NewLocationSample or RestoreLocationSample.
var ErrSampleIsNotConstructed = errors.New("LocationSample must be created via NewLocationSample or RestoreLocationSample")

// LocationSample is one reported position of a shipment. Samples are only
// ever appended; the latest one doubles as the driver position fallback for
// next-stop selection when the caller posts no live coordinates.
type LocationSample struct {
	shipmentID kernel.UUID
	point      kernel.GeoPoint
	createdAt  time.Time

	isConstructed bool
}

// NewLocationSample creates a position sample for a shipment.
func NewLocationSample(
	shipmentID kernel.UUID,
	point kernel.GeoPoint,
	createdAt time.Time,
) (*LocationSample, error) {
	s := &LocationSample{isConstructed: true}

	if err := errors.Join(
		shipmentID.Validate(),
		point.Validate(),
		s.setCreatedAt(createdAt),
	); err != nil {
		return nil, err
	}

	s.shipmentID = shipmentID
	s.point = point
	return s, nil
}

// RestoreLocationSample reconstructs a LocationSample from persistence.
// This function is intended for repository implementations only.
func RestoreLocationSample(
	shipmentID kernel.UUID,
	point kernel.GeoPoint,
	createdAt time.Time,
) (*LocationSample, error) {
	return NewLocationSample(shipmentID, point, createdAt)
}

// Validate ensures the LocationSample instance was properly constructed.
func (s *LocationSample) Validate() error {
	if s == nil || !s.isConstructed {
		return ErrSampleIsNotConstructed
	}

	return nil
}

// ShipmentID returns the shipment the sample belongs to.
func (s *LocationSample) ShipmentID() kernel.UUID {
	return s.shipmentID
}

// Point returns the reported position.
func (s *LocationSample) Point() kernel.GeoPoint {
	return s.point
}

// CreatedAt returns when the position was recorded.
func (s *LocationSample) CreatedAt() time.Time {
	return s.createdAt
}

func (s *LocationSample) setCreatedAt(createdAt time.Time) error {
	if createdAt.IsZero() {
		return errs.NewValueIsRequiredError("createdAt")
	}
	s.createdAt = createdAt
	return nil
}
