package commands

import (
	"context"
	"fmt"
	"time"

	"distribution/internal/core/domain/model/kernel"
	"distribution/internal/core/domain/model/order"
	"distribution/internal/pkg/errs"
)

// BatchItemResult reports the outcome of the batch action on one order.
// PreviousStatus is set on success so callers can render what changed;
// ErrorCode and Error carry the stable code and message on failure.
type BatchItemResult struct {
	OrderID        kernel.UUID
	Success        bool
	ErrorCode      string
	Error          string
	PreviousStatus *order.Status
}

// BatchResult aggregates the per-order outcomes of one batch operation.
type BatchResult struct {
	Processed int
	Succeeded int
	Failed    int
	Results   []BatchItemResult
}

// BatchOrdersCommandHandler applies one action across up to MaxBatchSize
// orders inside a single transaction. Each order's mutations are bracketed
// by a savepoint: a failing order rolls back only to its own savepoint and
// is recorded as a failure, while siblings already applied stay committed
// with the batch.
type BatchOrdersCommandHandler struct {
	uowFactory BatchUoWFactory
}

// NewBatchOrdersCommandHandler creates a handler for batch operations.
func NewBatchOrdersCommandHandler(uowFactory BatchUoWFactory) BatchOrdersCommandHandler {
	return BatchOrdersCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the batch command serially, order by order, and returns
// the aggregate result. The returned error is reserved for transaction-level
// failures; per-order validation failures land in the result instead.
func (h *BatchOrdersCommandHandler) Handle(ctx context.Context, cmd BatchOrdersCommand) (BatchResult, error) {
	if err := cmd.Validate(); err != nil {
		return BatchResult{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return BatchResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	now := time.Now().UTC()
	result := BatchResult{
		Results: make([]BatchItemResult, 0, len(cmd.OrderIDs())),
	}

	for i, orderID := range cmd.OrderIDs() {
		savepoint := fmt.Sprintf("batch_item_%d", i)
		if err := uow.SavePoint(ctx, savepoint); err != nil {
			return BatchResult{}, err
		}

		previous, err := h.applyToOrder(ctx, uow, cmd, orderID, now)
		if err != nil {
			if rollbackErr := uow.RollbackTo(ctx, savepoint); rollbackErr != nil {
				return BatchResult{}, rollbackErr
			}
			result.Results = append(result.Results, BatchItemResult{
				OrderID:   orderID,
				Success:   false,
				ErrorCode: errs.CodeOf(err),
				Error:     err.Error(),
			})
			result.Failed++
			continue
		}

		result.Results = append(result.Results, BatchItemResult{
			OrderID:        orderID,
			Success:        true,
			PreviousStatus: &previous,
		})
		result.Succeeded++
	}

	result.Processed = len(result.Results)

	if err := uow.Commit(ctx); err != nil {
		return BatchResult{}, err
	}

	return result, nil
}

// applyToOrder resolves one order and applies the batch action to it,
// returning the order's status before the action.
func (h *BatchOrdersCommandHandler) applyToOrder(
	ctx context.Context,
	uow BatchUoW,
	cmd BatchOrdersCommand,
	orderID kernel.UUID,
	now time.Time,
) (order.Status, error) {
	actor := cmd.Actor()
	o, err := uow.OrderRepository().Get(ctx, orderID, actor.TenantID())
	if err != nil {
		return "", err
	}

	previous := o.Status()

	switch cmd.Operation() {
	case BatchChangeStatus:
		err = transitionOrder(ctx, uow, o, actor, cmd.TargetStatus(), cmd.Notes(), now)
	case BatchCancel:
		err = cancelOrder(ctx, uow, o, actor, cmd.Notes(), now)
	case BatchAssignDriver:
		if err = o.AssignDriver(actor, cmd.AssigneeID()); err == nil {
			err = uow.OrderRepository().Update(ctx, o)
		}
	case BatchAssignSalesRep:
		if err = o.AssignSalesRep(actor, cmd.AssigneeID()); err == nil {
			err = uow.OrderRepository().Update(ctx, o)
		}
	default:
		err = errs.NewValueIsInvalidError("operation")
	}

	if err != nil {
		return "", err
	}

	return previous, nil
}
