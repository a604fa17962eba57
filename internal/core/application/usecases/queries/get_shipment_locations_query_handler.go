package queries

import (
	"context"
	"time"

	"freight/internal/core/domain/model/kernel"

	"gorm.io/gorm"
)

// GetShipmentLocationsQueryHandler reads the position history straight from
// the database as a read model, bypassing the aggregate.
type GetShipmentLocationsQueryHandler struct {
	db *gorm.DB
}

// NewGetShipmentLocationsQueryHandler creates a handler for position history queries.
// Requires a GORM database connection for query execution.
func NewGetShipmentLocationsQueryHandler(db *gorm.DB) GetShipmentLocationsQueryHandler {
	return GetShipmentLocationsQueryHandler{db: db}
}

// Handle executes the query. Samples come back oldest first; a shipment that
// never reported yields an empty slice, not an error.
func (h GetShipmentLocationsQueryHandler) Handle(
	ctx context.Context,
	query GetShipmentLocationsQuery,
) ([]GetShipmentLocationsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	samples := make([]GetShipmentLocationsQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			latitude,
			longitude,
			created_at
		FROM shipment_locations
		WHERE shipment_id = ?
		ORDER BY created_at, id
	`, query.ShipmentID().String()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			latitude  float64
			longitude float64
			createdAt time.Time
		)

		if err = rows.Scan(&latitude, &longitude, &createdAt); err != nil {
			return nil, err
		}

		point, pointErr := kernel.NewGeoPoint(latitude, longitude)
		if pointErr != nil {
			return nil, pointErr
		}

		samples = append(samples, GetShipmentLocationsQueryResponse{
			Point:     point,
			CreatedAt: createdAt,
		})
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return samples, nil
}
