package ports

import (
	"context"

	"distribution/internal/core/domain/model/kernel"
)

// PlanLimitDecision is the outcome of a quota check: whether another order
// may be created this month, and the counters behind the verdict.
type PlanLimitDecision struct {
	Allowed bool
	Current int
	Max     int
}

// PlanLimitChecker vetoes order creation when a tenant's monthly order quota
// is exhausted. The check runs before the creation transaction opens; the
// recording runs after it commits and is best-effort.
type PlanLimitChecker interface {
	// CanCreateOrder reports whether the tenant may create another order
	// this month.
	CanCreateOrder(ctx context.Context, tenantID kernel.UUID) (PlanLimitDecision, error)

	// RecordOrderCreated counts a committed order against the tenant's
	// monthly quota.
	RecordOrderCreated(ctx context.Context, tenantID kernel.UUID) error
}
