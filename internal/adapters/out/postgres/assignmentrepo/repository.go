package assignmentrepo

import (
	"context"

	"freight/internal/core/domain/model/assignment"
	"freight/internal/core/domain/model/kernel"

	"gorm.io/gorm"
)

// GormAssignmentRepository implements AssignmentRepository using GORM.
type GormAssignmentRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormAssignmentRepository creates a new GORM assignment repository.
func NewGormAssignmentRepository(db *gorm.DB, tracker aggregateTracker) *GormAssignmentRepository {
	return &GormAssignmentRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new assignment to the database.
func (r *GormAssignmentRepository) Add(ctx context.Context, aggregate *assignment.Assignment) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves an existing assignment to the database.
func (r *GormAssignmentRepository) Update(ctx context.Context, aggregate *assignment.Assignment) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)

	result := r.db.WithContext(ctx).Save(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// GetActiveForShipment retrieves the unreleased assignments holding resources
// for the given shipment. An empty slice means nothing is locked.
func (r *GormAssignmentRepository) GetActiveForShipment(
	ctx context.Context,
	shipmentID kernel.UUID,
) ([]*assignment.Assignment, error) {
	if err := shipmentID.Validate(); err != nil {
		return nil, err
	}

	var dtos []AssignmentDTO
	if err := r.db.WithContext(ctx).
		Where("shipment_id = ? AND is_released = false", shipmentID.Bytes()).
		Find(&dtos).Error; err != nil {
		return nil, err
	}

	assignments := make([]*assignment.Assignment, 0, len(dtos))
	for _, dto := range dtos {
		a, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		assignments = append(assignments, a)
	}

	return assignments, nil
}
