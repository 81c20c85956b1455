package ports

import (
	"context"

	"distribution/internal/core/domain/model/kernel"
	"distribution/internal/core/domain/model/product"
)

// ProductRepository defines the persistence contract for the stock-ledger
// side of products.
type ProductRepository interface {
	// GetForUpdate retrieves a product within the tenant, acquiring a
	// pessimistic row lock for the duration of the surrounding transaction.
	// A second transaction touching the same product blocks until the first
	// commits or rolls back.
	GetForUpdate(ctx context.Context, id, tenantID kernel.UUID) (*product.Product, error)

	// Update persists the product's stock and reservation quantities.
	Update(ctx context.Context, aggregate *product.Product) error
}
