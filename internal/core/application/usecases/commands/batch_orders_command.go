package commands

import (
	"errors"
	"fmt"

	"distribution/internal/core/domain/model/kernel"
	"distribution/internal/core/domain/model/order"
	"distribution/internal/pkg/errs"
	"distribution/internal/pkg/guard"
)

var ErrBatchOrdersCommandIsNotConstructed = errors.New(
	"BatchOrdersCommand must be created via one of the NewBatch*Command constructors",
)

// MaxBatchSize caps how many orders one batch operation may touch. The cap
// bounds worst-case lock hold time, since the batch processes serially
// inside one transaction.
const MaxBatchSize = 100

// BatchOperation identifies which action a batch applies to every order.
type BatchOperation string

const (
	BatchChangeStatus   BatchOperation = "change_status"
	BatchAssignDriver   BatchOperation = "assign_driver"
	BatchAssignSalesRep BatchOperation = "assign_sales_rep"
	BatchCancel         BatchOperation = "cancel"
)

// BatchOrdersCommand represents one administrative action applied across a
// bounded set of orders. Each order is validated independently: one order's
// failure is recorded in the result and never aborts its siblings.
type BatchOrdersCommand struct { //nolint:recvcheck //using for validation
	actor        kernel.Actor
	orderIDs     []kernel.UUID
	operation    BatchOperation
	targetStatus order.Status
	assigneeID   kernel.UUID
	notes        string

	guard guard.ConstructorGuard
}

// NewBatchChangeStatusCommand creates a batch command moving every order to
// the target status.
func NewBatchChangeStatusCommand(
	actor kernel.Actor,
	orderIDs []kernel.UUID,
	target order.Status,
	notes string,
) (BatchOrdersCommand, error) {
	cmd, err := newBatchOrdersCommand(actor, orderIDs, BatchChangeStatus, notes)
	if err != nil {
		return BatchOrdersCommand{}, err
	}
	if err = target.Validate(); err != nil {
		return BatchOrdersCommand{}, err
	}
	cmd.targetStatus = target
	return cmd, nil
}

// NewBatchAssignDriverCommand creates a batch command assigning a driver to
// every order.
func NewBatchAssignDriverCommand(
	actor kernel.Actor,
	orderIDs []kernel.UUID,
	driverID kernel.UUID,
) (BatchOrdersCommand, error) {
	cmd, err := newBatchOrdersCommand(actor, orderIDs, BatchAssignDriver, "")
	if err != nil {
		return BatchOrdersCommand{}, err
	}
	if err = driverID.Validate(); err != nil {
		return BatchOrdersCommand{}, err
	}
	cmd.assigneeID = driverID
	return cmd, nil
}

// NewBatchAssignSalesRepCommand creates a batch command reassigning the
// responsible sales rep on every order.
func NewBatchAssignSalesRepCommand(
	actor kernel.Actor,
	orderIDs []kernel.UUID,
	salesRepID kernel.UUID,
) (BatchOrdersCommand, error) {
	cmd, err := newBatchOrdersCommand(actor, orderIDs, BatchAssignSalesRep, "")
	if err != nil {
		return BatchOrdersCommand{}, err
	}
	if err = salesRepID.Validate(); err != nil {
		return BatchOrdersCommand{}, err
	}
	cmd.assigneeID = salesRepID
	return cmd, nil
}

// NewBatchCancelCommand creates a batch command cancelling every order. The
// reason is recorded on each order that accepts the cancellation.
func NewBatchCancelCommand(
	actor kernel.Actor,
	orderIDs []kernel.UUID,
	reason string,
) (BatchOrdersCommand, error) {
	cmd, err := newBatchOrdersCommand(actor, orderIDs, BatchCancel, reason)
	if err != nil {
		return BatchOrdersCommand{}, err
	}
	return cmd, nil
}

func newBatchOrdersCommand(
	actor kernel.Actor,
	orderIDs []kernel.UUID,
	operation BatchOperation,
	notes string,
) (BatchOrdersCommand, error) {
	cmd := BatchOrdersCommand{
		operation: operation,
		notes:     notes,
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setActor(actor),
		cmd.setOrderIDs(orderIDs),
	); err != nil {
		return BatchOrdersCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through a constructor.
func (c BatchOrdersCommand) Validate() error {
	return c.guard.Validate(ErrBatchOrdersCommandIsNotConstructed)
}

// Actor returns the user running the batch.
func (c BatchOrdersCommand) Actor() kernel.Actor {
	return c.actor
}

// OrderIDs returns the orders the batch applies to.
func (c BatchOrdersCommand) OrderIDs() []kernel.UUID {
	out := make([]kernel.UUID, len(c.orderIDs))
	copy(out, c.orderIDs)
	return out
}

// Operation returns the action applied to every order.
func (c BatchOrdersCommand) Operation() BatchOperation {
	return c.operation
}

// TargetStatus returns the status a change-status batch moves orders to.
func (c BatchOrdersCommand) TargetStatus() order.Status {
	return c.targetStatus
}

// AssigneeID returns the driver or sales rep an assignment batch applies.
func (c BatchOrdersCommand) AssigneeID() kernel.UUID {
	return c.assigneeID
}

// Notes returns the note or cancellation reason attached to the batch.
func (c BatchOrdersCommand) Notes() string {
	return c.notes
}

func (c *BatchOrdersCommand) setActor(actor kernel.Actor) error {
	if err := actor.Validate(); err != nil {
		return err
	}
	c.actor = actor
	return nil
}

func (c *BatchOrdersCommand) setOrderIDs(orderIDs []kernel.UUID) error {
	if len(orderIDs) == 0 {
		return errs.NewValueIsRequiredError("orderIDs")
	}
	if len(orderIDs) > MaxBatchSize {
		return errs.NewValueIsOutOfRangeError("orderIDs", len(orderIDs), 1, MaxBatchSize)
	}

	for _, id := range orderIDs {
		if err := id.Validate(); err != nil {
			return fmt.Errorf("orderIDs: %w", err)
		}
	}

	c.orderIDs = make([]kernel.UUID, len(orderIDs))
	copy(c.orderIDs, orderIDs)
	return nil
}
