package ports

import (
	"context"

	"freight/internal/core/domain/model/assignment"
	"freight/internal/core/domain/model/kernel"
)

// AssignmentRepository defines the persistence contract for driver and
// vehicle exclusivity locks.
type AssignmentRepository interface {
	// Add persists a new assignment lock.
	Add(ctx context.Context, aggregate *assignment.Assignment) error

	// Update persists changes to an existing assignment lock.
	Update(ctx context.Context, aggregate *assignment.Assignment) error

	// GetActiveForShipment retrieves the unreleased locks bound to the
	// shipment. Returns an empty slice when nothing is locked.
	GetActiveForShipment(ctx context.Context, shipmentID kernel.UUID) ([]*assignment.Assignment, error)
}
