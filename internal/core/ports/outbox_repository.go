package ports

import (
	"context"

	"distribution/internal/core/domain/model/outbox"
)

// OutboxRepository defines the persistence contract for the outbound event
// log. Add runs inside the same transaction as the order mutation the event
// describes; the remaining methods are used by the dispatch job after
// commit.
type OutboxRepository interface {
	// Add appends an event to the log.
	Add(ctx context.Context, event *outbox.Event) error

	// GetUndispatched retrieves up to limit pending events, oldest first.
	GetUndispatched(ctx context.Context, limit int) ([]*outbox.Event, error)

	// Update persists the event's dispatch state.
	Update(ctx context.Context, event *outbox.Event) error
}
