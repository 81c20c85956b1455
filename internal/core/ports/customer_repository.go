package ports

import (
	"context"

	"distribution/internal/core/domain/model/customer"
	"distribution/internal/core/domain/model/kernel"
)

// CustomerRepository defines the persistence contract for the receivables
// side of customer accounts, including the tier policies attached to them.
type CustomerRepository interface {
	// Get retrieves a customer within the tenant.
	Get(ctx context.Context, id, tenantID kernel.UUID) (*customer.Customer, error)

	// GetForUpdate retrieves a customer within the tenant, acquiring a
	// pessimistic row lock so concurrent debt mutations serialize.
	GetForUpdate(ctx context.Context, id, tenantID kernel.UUID) (*customer.Customer, error)

	// Update persists the customer's balances.
	Update(ctx context.Context, aggregate *customer.Customer) error

	// GetTier retrieves a tier policy within the tenant.
	GetTier(ctx context.Context, id, tenantID kernel.UUID) (*customer.Tier, error)
}
