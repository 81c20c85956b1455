package ports

import (
	"context"

	"distribution/internal/core/domain/model/outbox"
)

// EventPublisher delivers outbox events to the message broker. Used by the
// dispatch job, never by request handling; publish failures are logged and
// retried on the next tick.
type EventPublisher interface {
	// Publish delivers one event. It returns once the broker acknowledged
	// the message.
	Publish(ctx context.Context, event *outbox.Event) error
}
