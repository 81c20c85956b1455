package order

import (
	"fmt"

	"distribution/internal/core/domain/model/kernel"
	"distribution/internal/pkg/errs"
)

// ValidateActorTransition checks whether the actor may move an order created
// by createdBy along the edge from the current status to target. It applies
// the permission rules first, then the adjacency table, and mutates nothing.
//
// The batch preview runs the same checks against scanned rows, which is why
// this lives as a package-level function rather than only on the aggregate.
func ValidateActorTransition(actor kernel.Actor, from Status, createdBy kernel.UUID, target Status) error {
	if err := actor.Validate(); err != nil {
		return err
	}

	if target == StatusCancelled {
		if !canCancel(actor, from, createdBy) {
			return errs.NewForbiddenError("cancel order")
		}
	} else if !actor.Role().CanTransitionOrders() {
		return errs.NewForbiddenError("change order status")
	}

	return from.ValidateTransition(target)
}

// ValidateActorAssignment checks whether the actor may assign a driver or
// sales rep to an order in the given status. Only admins and supervisors may
// assign, and only while the order is not terminal.
func ValidateActorAssignment(actor kernel.Actor, status Status) error {
	if err := actor.Validate(); err != nil {
		return err
	}

	if !actor.Role().CanAssignOrders() {
		return errs.NewForbiddenError("assign order")
	}

	if status.IsTerminal() {
		return errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("cannot reassign a %s order", status))
	}

	return nil
}

// canCancel applies the cancellation permission rules: lifecycle roles
// always, the creator only while the order is pending or confirmed.
func canCancel(actor kernel.Actor, status Status, createdBy kernel.UUID) bool {
	if actor.Role().CanTransitionOrders() {
		return true
	}
	if !actor.UserID().IsEqual(createdBy) {
		return false
	}
	return status == StatusPending || status == StatusConfirmed
}
