package queries

import (
	"errors"
	"time"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/guard"
)

var ErrGetShipmentLocationsQueryIsNotConstructed = errors.New(
	"GetShipmentLocationsQuery must be created via NewGetShipmentLocationsQuery constructor",
)

// GetShipmentLocationsQuery retrieves the position history of one shipment,
// oldest sample first.
type GetShipmentLocationsQuery struct { //nolint:recvcheck //using for validation
	shipmentID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetShipmentLocationsQuery creates a query for a shipment's position history.
func NewGetShipmentLocationsQuery(shipmentID kernel.UUID) (GetShipmentLocationsQuery, error) {
	if err := shipmentID.Validate(); err != nil {
		return GetShipmentLocationsQuery{}, err
	}

	return GetShipmentLocationsQuery{
		shipmentID: shipmentID,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetShipmentLocationsQuery) Validate() error {
	return q.guard.Validate(ErrGetShipmentLocationsQueryIsNotConstructed)
}

// ShipmentID returns the shipment whose history is requested.
func (q GetShipmentLocationsQuery) ShipmentID() kernel.UUID {
	return q.shipmentID
}

// GetShipmentLocationsQueryResponse is one position sample of the history.
type GetShipmentLocationsQueryResponse struct {
	Point     kernel.GeoPoint
	CreatedAt time.Time
}
