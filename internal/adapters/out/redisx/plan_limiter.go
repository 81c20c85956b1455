// Package redisx implements the monthly plan limit counter on Redis. Each
// tenant gets one counter per calendar month; the counter is advisory quota
// bookkeeping, not transactional state, so a lost increment only ever errs
// in the tenant's favor.
package redisx

import (
	"context"
	"fmt"
	"time"

	"distribution/internal/core/domain/model/kernel"
	"distribution/internal/core/ports"

	"github.com/redis/go-redis/v9"
)

// Counter keys survive into the next month so the previous period stays
// inspectable, then expire.
const counterTTL = 45 * 24 * time.Hour

// PlanLimiter implements ports.PlanLimitChecker backed by per-tenant
// monthly Redis counters. A non-positive max disables the quota entirely.
type PlanLimiter struct {
	client *redis.Client
	max    int
	now    func() time.Time
}

// NewPlanLimiter creates a limiter enforcing max orders per tenant per
// calendar month. max <= 0 means unlimited.
func NewPlanLimiter(client *redis.Client, max int) *PlanLimiter {
	return &PlanLimiter{
		client: client,
		max:    max,
		now:    time.Now,
	}
}

// CanCreateOrder reports whether the tenant is still under this month's
// quota. Redis being unreachable surfaces as an error; the caller decides
// whether that blocks creation.
func (l *PlanLimiter) CanCreateOrder(ctx context.Context, tenantID kernel.UUID) (ports.PlanLimitDecision, error) {
	if l.max <= 0 {
		return ports.PlanLimitDecision{Allowed: true, Max: l.max}, nil
	}

	current, err := l.client.Get(ctx, l.key(tenantID)).Int()
	if err != nil && err != redis.Nil {
		return ports.PlanLimitDecision{}, fmt.Errorf("plan limit lookup: %w", err)
	}

	return ports.PlanLimitDecision{
		Allowed: current < l.max,
		Current: current,
		Max:     l.max,
	}, nil
}

// RecordOrderCreated counts one committed order against the tenant's
// monthly quota. The TTL is set when the counter is first created.
func (l *PlanLimiter) RecordOrderCreated(ctx context.Context, tenantID kernel.UUID) error {
	if l.max <= 0 {
		return nil
	}

	key := l.key(tenantID)
	count, err := l.client.Incr(ctx, key).Result()
	if err != nil {
		return fmt.Errorf("plan limit increment: %w", err)
	}

	if count == 1 {
		if err := l.client.Expire(ctx, key, counterTTL).Err(); err != nil {
			return fmt.Errorf("plan limit expire: %w", err)
		}
	}

	return nil
}

func (l *PlanLimiter) key(tenantID kernel.UUID) string {
	return fmt.Sprintf("plan:orders:%s:%s", tenantID.String(), l.now().UTC().Format("200601"))
}
