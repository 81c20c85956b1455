package commands

import (
	"context"
	"time"

	"distribution/internal/core/domain/model/kernel"
	"distribution/internal/core/domain/model/order"
	"distribution/internal/core/domain/model/outbox"
)

// transitionOrder applies one lifecycle transition to a loaded order
// together with its atomic side effects, inside the caller's transaction.
// The single status-change handler, the cancel handler, and the batch
// coordinator all route through here, so a transition behaves identically
// no matter which entry point triggered it.
func transitionOrder(
	ctx context.Context,
	uow LifecycleUoW,
	o *order.Order,
	actor kernel.Actor,
	target order.Status,
	notes string,
	now time.Time,
) error {
	if target == order.StatusCancelled {
		return cancelOrder(ctx, uow, o, actor, notes, now)
	}

	if err := o.ChangeStatus(actor, target, notes, now); err != nil {
		return err
	}

	if err := uow.OrderRepository().Update(ctx, o); err != nil {
		return err
	}

	return appendOrderEvent(ctx, uow.OutboxRepository(), o, outbox.KindOrderStatusChanged, now)
}

// cancelOrder terminates an order and applies the cancellation ledger side
// effects atomically with the status write:
//   - every line's reserved stock is released (clamped at zero),
//   - the customer's debt is decremented by the order total (floor-clamped),
//   - the cancellation stamps and history row are persisted,
//   - an order_cancelled outbox event is appended.
func cancelOrder(
	ctx context.Context,
	uow LifecycleUoW,
	o *order.Order,
	actor kernel.Actor,
	reason string,
	now time.Time,
) error {
	if err := o.Cancel(actor, reason, now); err != nil {
		return err
	}

	// Rows are locked in the same order as creation (customer, then
	// products), so a concurrent create and cancel touching the same rows
	// cannot deadlock.
	customerRepo := uow.CustomerRepository()
	cust, err := customerRepo.GetForUpdate(ctx, o.CustomerID(), o.TenantID())
	if err != nil {
		return err
	}
	if err = cust.DecreaseDebt(o.Amounts().Total()); err != nil {
		return err
	}
	if err = customerRepo.Update(ctx, cust); err != nil {
		return err
	}

	// Lines may repeat a product; each row is locked once and releases the
	// summed quantity.
	productIDs := make([]kernel.UUID, 0, len(o.Items()))
	qtyByProduct := make(map[kernel.UUID]int, len(o.Items()))
	for _, item := range o.Items() {
		if _, seen := qtyByProduct[item.ProductID()]; !seen {
			productIDs = append(productIDs, item.ProductID())
		}
		qtyByProduct[item.ProductID()] += item.QtyOrdered()
	}

	productRepo := uow.ProductRepository()
	for _, productID := range productIDs {
		p, lockErr := productRepo.GetForUpdate(ctx, productID, o.TenantID())
		if lockErr != nil {
			return lockErr
		}
		if err = p.Release(qtyByProduct[productID]); err != nil {
			return err
		}
		if err = productRepo.Update(ctx, p); err != nil {
			return err
		}
	}

	if err = uow.OrderRepository().Update(ctx, o); err != nil {
		return err
	}

	return appendOrderEvent(ctx, uow.OutboxRepository(), o, outbox.KindOrderCancelled, now)
}
