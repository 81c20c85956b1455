package outboxrepo

import (
	"context"

	"distribution/internal/core/domain/model/outbox"

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

// Add appends an event to the outbox.
func (r *GormOutboxRepository) Add(ctx context.Context, event *outbox.Event) error {
	if err := event.Validate(); err != nil {
		return err
	}

	dto := fromDomain(event)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// GetUndispatched returns up to limit events that have not been dispatched
// yet, oldest first, so the dispatcher preserves per-order event ordering.
func (r *GormOutboxRepository) GetUndispatched(ctx context.Context, limit int) ([]*outbox.Event, error) {
	var dtos []EventDTO
	err := r.db.WithContext(ctx).
		Where("dispatched_at IS NULL").
		Order("created_at, id").
		Limit(limit).
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	events := make([]*outbox.Event, 0, len(dtos))
	for _, dto := range dtos {
		event, toErr := toDomain(dto)
		if toErr != nil {
			return nil, toErr
		}
		events = append(events, event)
	}

	return events, nil
}

// Update writes the event's dispatch bookkeeping columns.
func (r *GormOutboxRepository) Update(ctx context.Context, event *outbox.Event) error {
	if err := event.Validate(); err != nil {
		return err
	}

	dto := fromDomain(event)
	result := r.db.WithContext(ctx).Model(&EventDTO{}).
		Where("id = ?", dto.ID).
		Select("DispatchedAt", "Attempts").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}
