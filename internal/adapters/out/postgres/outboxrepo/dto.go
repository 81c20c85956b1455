// Package outboxrepo persists the durable outbound event log. Events are
// written in the same transaction as the state change that caused them and
// drained asynchronously by the dispatch job.
package outboxrepo

import (
	"encoding/json"
	"time"

	"distribution/internal/core/domain/model/kernel"
	"distribution/internal/core/domain/model/outbox"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// EventDTO represents the database structure for outbox rows.
type EventDTO struct {
	ID         uuid.UUID      `gorm:"type:uuid;primaryKey"`
	TenantID   uuid.UUID      `gorm:"type:uuid;index"`
	OrderID    uuid.UUID      `gorm:"type:uuid;index"`
	Kind       string         `gorm:"type:varchar(32)"`
	Recipients pq.StringArray  `gorm:"type:text[]"`
	Payload    json.RawMessage `gorm:"type:jsonb"`

	CreatedAt    time.Time `gorm:"index:idx_outbox_undispatched,where:dispatched_at IS NULL"`
	DispatchedAt *time.Time
	Attempts     int
}

// TableName specifies the database table name for outbox events.
func (EventDTO) TableName() string {
	return "outbox_events"
}

func fromDomain(event *outbox.Event) EventDTO {
	return EventDTO{
		ID:           event.ID().Bytes(),
		TenantID:     event.TenantID().Bytes(),
		OrderID:      event.OrderID().Bytes(),
		Kind:         event.Kind().String(),
		Recipients:   pq.StringArray(event.Recipients()),
		Payload:      event.Payload(),
		CreatedAt:    event.CreatedAt(),
		DispatchedAt: event.DispatchedAt(),
		Attempts:     event.Attempts(),
	}
}

func toDomain(dto EventDTO) (*outbox.Event, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	tenantID, err := kernel.UUIDFromBytes(dto.TenantID[:])
	if err != nil {
		return nil, err
	}
	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}

	return outbox.RestoreEvent(
		id, tenantID, orderID,
		outbox.Kind(dto.Kind),
		[]string(dto.Recipients),
		dto.Payload,
		dto.CreatedAt,
		dto.DispatchedAt,
		dto.Attempts,
	)
}
