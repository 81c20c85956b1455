package ports

import (
	"context"

	"distribution/internal/core/domain/model/kernel"
	"distribution/internal/core/domain/model/tenant"
)

// TenantRepository defines the read contract for tenant settings consumed by
// order placement. Tenant administration is external.
type TenantRepository interface {
	// Get retrieves a tenant by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*tenant.Tenant, error)
}
