package outboxrepo

import (
	"context"

	"freight/internal/core/domain/model/outbox"

	"gorm.io/gorm"
)

// GormOutboxRepository implements OutboxRepository using GORM.
type GormOutboxRepository struct {
	db *gorm.DB
}

// NewGormOutboxRepository creates a new GORM outbox repository.
func NewGormOutboxRepository(db *gorm.DB) *GormOutboxRepository {
	return &GormOutboxRepository{db: db}
}

// Add persists one outbox event.
func (r *GormOutboxRepository) Add(ctx context.Context, event *outbox.Event) error {
	if err := event.Validate(); err != nil {
		return err
	}

	dto := fromDomain(event)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// AddBatch persists many outbox events in one statement.
func (r *GormOutboxRepository) AddBatch(ctx context.Context, events []*outbox.Event) error {
	if len(events) == 0 {
		return nil
	}

	dtos := make([]EventDTO, 0, len(events))
	for _, event := range events {
		if err := event.Validate(); err != nil {
			return err
		}
		dtos = append(dtos, fromDomain(event))
	}

	return r.db.WithContext(ctx).Create(&dtos).Error
}

// Update persists dispatch bookkeeping on an existing event.
func (r *GormOutboxRepository) Update(ctx context.Context, event *outbox.Event) error {
	if err := event.Validate(); err != nil {
		return err
	}

	dto := fromDomain(event)

	result := r.db.WithContext(ctx).Save(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

// GetPending retrieves up to limit undispatched events, oldest first.
// Failed events stay in the queue and come back on the next sweep.
func (r *GormOutboxRepository) GetPending(ctx context.Context, limit int) ([]*outbox.Event, error) {
	var dtos []EventDTO
	if err := r.db.WithContext(ctx).
		Where("status IN ?", []string{
			string(outbox.EventStatusPending),
			string(outbox.EventStatusFailed),
		}).
		Order("created_at").
		Limit(limit).
		Find(&dtos).Error; err != nil {
		return nil, err
	}

	events := make([]*outbox.Event, 0, len(dtos))
	for _, dto := range dtos {
		event, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		events = append(events, event)
	}

	return events, nil
}
