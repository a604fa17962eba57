package parcelrepo

import (
	"context"
	"errors"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/parcel"
	"freight/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormParcelRepository implements ParcelRepository using GORM.
type GormParcelRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormParcelRepository creates a new GORM parcel repository.
func NewGormParcelRepository(db *gorm.DB, tracker aggregateTracker) *GormParcelRepository {
	return &GormParcelRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new parcel to the database.
func (r *GormParcelRepository) Add(ctx context.Context, aggregate *parcel.Parcel) error {
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

// Update saves an existing parcel to the database.
func (r *GormParcelRepository) Update(ctx context.Context, aggregate *parcel.Parcel) error {
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

// UpdateBatch saves many parcels in one round trip. The transfer completion
// flow uses it to settle every member of a batch atomically.
func (r *GormParcelRepository) UpdateBatch(ctx context.Context, aggregates []*parcel.Parcel) error {
	if len(aggregates) == 0 {
		return nil
	}

	dtos := make([]ParcelDTO, 0, len(aggregates))
	for _, aggregate := range aggregates {
		if err := aggregate.Validate(); err != nil {
			return err
		}
		dtos = append(dtos, fromDomain(aggregate))
	}

	if err := r.db.WithContext(ctx).Save(&dtos).Error; err != nil {
		return err
	}

	for _, aggregate := range aggregates {
		r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	}
	return nil
}

// Get retrieves a parcel by ID.
func (r *GormParcelRepository) Get(ctx context.Context, id kernel.UUID) (*parcel.Parcel, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto ParcelDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("parcel", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetMany retrieves the parcels for the given identifiers. Every identifier
// must resolve; a missing row fails the whole read.
func (r *GormParcelRepository) GetMany(ctx context.Context, ids []kernel.UUID) ([]*parcel.Parcel, error) {
	if len(ids) == 0 {
		return []*parcel.Parcel{}, nil
	}

	raw := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if err := id.Validate(); err != nil {
			return nil, err
		}
		raw = append(raw, id.Bytes())
	}

	var dtos []ParcelDTO
	if err := r.db.WithContext(ctx).Where("id IN ?", raw).Find(&dtos).Error; err != nil {
		return nil, err
	}

	byID := make(map[uuid.UUID]ParcelDTO, len(dtos))
	for _, dto := range dtos {
		byID[dto.ID] = dto
	}

	parcels := make([]*parcel.Parcel, 0, len(ids))
	for _, id := range ids {
		dto, ok := byID[id.Bytes()]
		if !ok {
			return nil, errs.NewObjectNotFoundError("parcel", id.String())
		}

		p, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		parcels = append(parcels, p)
	}

	return parcels, nil
}

// GetAllRequeueable retrieves failed door-to-door parcels still below the
// escalation threshold. These are the candidates for the redelivery sweep.
func (r *GormParcelRepository) GetAllRequeueable(ctx context.Context) ([]*parcel.Parcel, error) {
	var dtos []ParcelDTO
	if err := r.db.WithContext(ctx).
		Where("status = ?", int(parcel.FailedDelivery)).
		Where("reception_mode = ?", int(parcel.DoorToDoor)).
		Where("failed_attempts < ?", parcel.EscalationThreshold).
		Find(&dtos).Error; err != nil {
		return nil, err
	}

	parcels := make([]*parcel.Parcel, 0, len(dtos))
	for _, dto := range dtos {
		p, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		parcels = append(parcels, p)
	}

	return parcels, nil
}
