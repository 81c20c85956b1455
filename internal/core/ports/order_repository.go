package ports

import (
	"context"
	"time"

	"distribution/internal/core/domain/model/kernel"
	"distribution/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
// Every read is tenant-scoped: an order belonging to another tenant is
// indistinguishable from a missing one.
type OrderRepository interface {
	// Add persists a new order aggregate with its items and history.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate, including
	// items and newly appended history entries.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order with its items and history by its unique
	// identifier within the tenant.
	Get(ctx context.Context, id, tenantID kernel.UUID) (*order.Order, error)

	// CountCreatedSince counts orders the tenant created at or after the
	// given instant. Feeds the daily order number sequence.
	CountCreatedSince(ctx context.Context, tenantID kernel.UUID, since time.Time) (int, error)
}
