package commands

import (
	"context"
	"time"
)

// CancelOrderCommandHandler cancels a single order with its ledger side
// effects: stock release and debt decrement happen atomically with the
// status write and history row.
type CancelOrderCommandHandler struct {
	uowFactory LifecycleUoWFactory
}

// NewCancelOrderCommandHandler creates a handler for order cancellation.
func NewCancelOrderCommandHandler(uowFactory LifecycleUoWFactory) CancelOrderCommandHandler {
	return CancelOrderCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the cancellation command. Permission rules: lifecycle
// roles may cancel any order the state machine allows; the order's creator
// may cancel their own order only while it is still pending or confirmed.
func (h *CancelOrderCommandHandler) Handle(ctx context.Context, cmd CancelOrderCommand) error {
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
	if err = cancelOrder(ctx, uow, o, cmd.Actor(), cmd.Reason(), now); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
