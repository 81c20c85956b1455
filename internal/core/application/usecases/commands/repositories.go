// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS
// architecture. All commands follow a consistent pattern: validation,
// transaction management, and persistence.
package commands

import (
	"context"

	"distribution/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command
// handlers. Each handler depends on the narrowest interface covering the
// repositories it actually touches, so tests mock only what a use case
// needs.
type (
	// TxManager handles database transaction lifecycle.
	// Ensures atomic operations across multiple repository calls.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// SavepointManager marks and unwinds savepoints inside a running
	// transaction. The batch coordinator uses it to isolate per-order
	// failures without aborting siblings.
	SavepointManager interface {
		SavePoint(ctx context.Context, name string) error
		RollbackTo(ctx context.Context, name string) error
	}

	// OrderRepoFactory provides access to the order repository within a
	// transaction.
	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// ProductRepoFactory provides access to the product repository within a
	// transaction.
	ProductRepoFactory interface {
		ProductRepository() ports.ProductRepository
	}

	// CustomerRepoFactory provides access to the customer repository within
	// a transaction.
	CustomerRepoFactory interface {
		CustomerRepository() ports.CustomerRepository
	}

	// TenantRepoFactory provides access to the tenant repository within a
	// transaction.
	TenantRepoFactory interface {
		TenantRepository() ports.TenantRepository
	}

	// OutboxRepoFactory provides access to the outbox repository within a
	// transaction.
	OutboxRepoFactory interface {
		OutboxRepository() ports.OutboxRepository
	}

	// OrderUoW manages transactions for order-only operations, such as
	// recording a payment fact.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
	}

	// OrderUoWFactory creates new order unit of work instances.
	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// CreateOrderUoW manages the order creation transaction, which spans
	// every aggregate the transaction engine touches: the order itself,
	// the stock ledger, the customer balances, the tenant settings, and
	// the outbox.
	CreateOrderUoW interface {
		TxManager
		OrderRepoFactory
		ProductRepoFactory
		CustomerRepoFactory
		TenantRepoFactory
		OutboxRepoFactory
	}

	// CreateOrderUoWFactory creates new order creation unit of work
	// instances.
	CreateOrderUoWFactory interface {
		Create() CreateOrderUoW
	}

	// LifecycleUoW manages status transition transactions. Cancellation
	// reaches into the stock ledger and customer balances, so the full set
	// of side-effect repositories is available.
	LifecycleUoW interface {
		TxManager
		OrderRepoFactory
		ProductRepoFactory
		CustomerRepoFactory
		OutboxRepoFactory
	}

	// LifecycleUoWFactory creates new lifecycle unit of work instances.
	LifecycleUoWFactory interface {
		Create() LifecycleUoW
	}

	// BatchUoW manages one shared transaction for a batch operation, with
	// savepoints delimiting each order's mutations.
	BatchUoW interface {
		TxManager
		SavepointManager
		OrderRepoFactory
		ProductRepoFactory
		CustomerRepoFactory
		OutboxRepoFactory
	}

	// BatchUoWFactory creates new batch unit of work instances.
	BatchUoWFactory interface {
		Create() BatchUoW
	}
)
