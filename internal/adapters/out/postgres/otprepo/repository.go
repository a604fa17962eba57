package otprepo

import (
	"context"
	"errors"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/otp"
	"freight/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormOtpRepository implements OtpRepository using GORM.
// The upsert on the (shipment_id, parcel_id) key makes a re-issued code the
// only one that can match; the previous code dies with the overwrite.
type GormOtpRepository struct {
	db *gorm.DB
}

// NewGormOtpRepository creates a new GORM one-time password repository.
func NewGormOtpRepository(db *gorm.DB) *GormOtpRepository {
	return &GormOtpRepository{db: db}
}

// Save upserts the one-time password for its (shipment, parcel) pair.
func (r *GormOtpRepository) Save(ctx context.Context, aggregate *otp.DeliveryOtp) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)

	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "shipment_id"}, {Name: "parcel_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"code", "expires_at", "is_valid"}),
	}).Create(&dto).Error
}

// Get retrieves the one-time password for the (shipment, parcel) pair.
func (r *GormOtpRepository) Get(ctx context.Context, shipmentID, parcelID kernel.UUID) (*otp.DeliveryOtp, error) {
	if err := shipmentID.Validate(); err != nil {
		return nil, err
	}
	if err := parcelID.Validate(); err != nil {
		return nil, err
	}

	var dto DeliveryOtpDTO
	if err := r.db.WithContext(ctx).
		First(&dto, "shipment_id = ? AND parcel_id = ?", shipmentID.Bytes(), parcelID.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("otp", parcelID.String())
		}
		return nil, err
	}

	return toDomain(dto)
}
