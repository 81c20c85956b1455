package commands

import (
	"context"
	"time"
)

// ChangeOrderStatusCommandHandler is the status transition engine's entry
// point for a single order. It loads the order, validates the requested edge
// against the adjacency table and the actor's permissions, and applies the
// transition with its ledger side effects in one transaction.
type ChangeOrderStatusCommandHandler struct {
	uowFactory LifecycleUoWFactory
}

// NewChangeOrderStatusCommandHandler creates a handler for status
// transitions.
func NewChangeOrderStatusCommandHandler(uowFactory LifecycleUoWFactory) ChangeOrderStatusCommandHandler {
	return ChangeOrderStatusCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the status change command. A transition to cancelled is
// routed through the cancellation path, so stock release and debt decrement
// are never skipped. Any failure rolls back the whole transition: status,
// history, and ledgers stay untouched.
func (h *ChangeOrderStatusCommandHandler) Handle(ctx context.Context, cmd ChangeOrderStatusCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	o, err := uow.OrderRepository().Get(ctx, cmd.OrderID(), cmd.Actor().TenantID())
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	if err = transitionOrder(ctx, uow, o, cmd.Actor(), cmd.Target(), cmd.Notes(), now); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
