package statuslogrepo

import (
	"context"
	"errors"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/statuslog"
	"freight/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormStatusLogRepository implements StatusLogRepository using GORM.
type GormStatusLogRepository struct {
	db *gorm.DB
}

// NewGormStatusLogRepository creates a new GORM status ledger repository.
func NewGormStatusLogRepository(db *gorm.DB) *GormStatusLogRepository {
	return &GormStatusLogRepository{db: db}
}

// Append inserts one ledger entry.
func (r *GormStatusLogRepository) Append(ctx context.Context, entry *statuslog.Entry) error {
	if err := entry.Validate(); err != nil {
		return err
	}

	dto := fromDomain(entry)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// AppendBatch inserts many ledger entries in one statement, preserving slice
// order. The settlement flows use it so a parcel entry and its shipment entry
// land together.
func (r *GormStatusLogRepository) AppendBatch(ctx context.Context, entries []*statuslog.Entry) error {
	if len(entries) == 0 {
		return nil
	}

	dtos := make([]EntryDTO, 0, len(entries))
	for _, entry := range entries {
		if err := entry.Validate(); err != nil {
			return err
		}
		dtos = append(dtos, fromDomain(entry))
	}

	return r.db.WithContext(ctx).Create(&dtos).Error
}

// Latest retrieves the most recent ledger entry for a subject.
func (r *GormStatusLogRepository) Latest(
	ctx context.Context,
	subject statuslog.Subject,
	subjectID kernel.UUID,
) (*statuslog.Entry, error) {
	if err := subject.Validate(); err != nil {
		return nil, err
	}
	if err := subjectID.Validate(); err != nil {
		return nil, err
	}

	var dto EntryDTO
	if err := r.db.WithContext(ctx).
		Where("subject = ? AND subject_id = ?", int(subject), subjectID.Bytes()).
		Order("created_at DESC, id DESC").
		First(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("statusLogEntry", subjectID.String())
		}
		return nil, err
	}

	return toDomain(dto)
}
