package trackingrepo

import (
	"context"
	"errors"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/tracking"
	"freight/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormLocationRepository implements LocationRepository using GORM.
type GormLocationRepository struct {
	db *gorm.DB
}

// NewGormLocationRepository creates a new GORM position sample repository.
func NewGormLocationRepository(db *gorm.DB) *GormLocationRepository {
	return &GormLocationRepository{db: db}
}

// Add appends one position sample to the stream.
func (r *GormLocationRepository) Add(ctx context.Context, sample *tracking.LocationSample) error {
	if err := sample.Validate(); err != nil {
		return err
	}

	dto := fromDomain(sample)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// GetLatest retrieves the most recent position sample for a shipment.
// Returns an ObjectNotFoundError when the shipment never reported.
func (r *GormLocationRepository) GetLatest(
	ctx context.Context,
	shipmentID kernel.UUID,
) (*tracking.LocationSample, error) {
	if err := shipmentID.Validate(); err != nil {
		return nil, err
	}

	var dto LocationSampleDTO
	if err := r.db.WithContext(ctx).
		Where("shipment_id = ?", shipmentID.Bytes()).
		Order("created_at DESC, id DESC").
		First(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("locationSample", shipmentID.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetAllForShipment retrieves the full position history, oldest first.
// A shipment that never reported yields an empty slice.
func (r *GormLocationRepository) GetAllForShipment(
	ctx context.Context,
	shipmentID kernel.UUID,
) ([]*tracking.LocationSample, error) {
	if err := shipmentID.Validate(); err != nil {
		return nil, err
	}

	var dtos []LocationSampleDTO
	if err := r.db.WithContext(ctx).
		Where("shipment_id = ?", shipmentID.Bytes()).
		Order("created_at, id").
		Find(&dtos).Error; err != nil {
		return nil, err
	}

	samples := make([]*tracking.LocationSample, 0, len(dtos))
	for _, dto := range dtos {
		sample, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		samples = append(samples, sample)
	}

	return samples, nil
}
