package commands

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"distribution/internal/core/domain/model/customer"
	"distribution/internal/core/domain/model/kernel"
	"distribution/internal/core/domain/model/order"
	"distribution/internal/core/domain/model/outbox"
	"distribution/internal/core/domain/model/product"
	"distribution/internal/core/domain/services"
	"distribution/internal/core/ports"
	"distribution/internal/pkg/errs"
)

// CreateOrderCommandHandler is the order transaction engine. It validates a
// proposed order against the customer's credit policy and the stock ledger,
// then atomically creates the order with its lines, reservations, history,
// debt increment, and outbox event. Any step failing rolls back everything.
//
// The tenant's monthly order quota is checked before the transaction opens:
// the quota is a pre-flight veto, not part of the atomic unit.
type CreateOrderCommandHandler struct {
	uowFactory   CreateOrderUoWFactory
	planLimits   ports.PlanLimitChecker
	creditPolicy services.CreditPolicy
	orderNumbers services.OrderNumberGenerator
	logger       *slog.Logger
}

// NewCreateOrderCommandHandler creates a handler for order placement.
func NewCreateOrderCommandHandler(
	uowFactory CreateOrderUoWFactory,
	planLimits ports.PlanLimitChecker,
	creditPolicy services.CreditPolicy,
	orderNumbers services.OrderNumberGenerator,
	logger *slog.Logger,
) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory:   uowFactory,
		planLimits:   planLimits,
		creditPolicy: creditPolicy,
		orderNumbers: orderNumbers,
		logger:       logger.With("component", "create_order"),
	}
}

// Handle processes the order placement command and returns the created
// order.
//
// Inside one transaction, aborting entirely on the first failure:
//  1. Load the customer; reject orders a sales rep places for customers
//     they did not register themselves.
//  2. Apply the credit policy gate.
//  3. Lock every ordered product row once and check the summed quantity
//     against availability, plus price drift per line.
//  4. Generate the order number from today's per-tenant sequence.
//  5. Insert the order, its lines, and the creation history row.
//  6. Reserve stock for every line.
//  7. Increment the customer's debt by the order total.
//  8. Append the order_created outbox event.
func (h *CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	actor := cmd.Actor()
	tenantID := actor.TenantID()

	decision, err := h.planLimits.CanCreateOrder(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	if !decision.Allowed {
		return nil, errs.NewLimitExceededError(tenantID.String(), decision.Current, decision.Max)
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	customerRepo := uow.CustomerRepository()
	cust, err := customerRepo.GetForUpdate(ctx, cmd.CustomerID(), tenantID)
	if err != nil {
		return nil, err
	}

	if actor.Role() == kernel.RoleSalesRep && !cust.WasCreatedBy(actor.UserID()) {
		return nil, errs.NewForbiddenError("create order for another rep's customer")
	}

	var tier *customer.Tier
	if tierID := cust.TierID(); tierID != nil {
		tier, err = customerRepo.GetTier(ctx, *tierID, tenantID)
		if err != nil {
			return nil, err
		}
	}

	if err = h.creditPolicy.Evaluate(cust, tier, cmd.Amounts().Total()); err != nil {
		return nil, err
	}

	productRepo := uow.ProductRepository()
	items := cmd.Items()

	// Lines may repeat a product. Each product row is locked once and checked
	// against the summed quantity, so the reservation written later covers
	// every line referencing it.
	productIDs := make([]kernel.UUID, 0, len(items))
	qtyByProduct := make(map[kernel.UUID]int, len(items))
	for _, item := range items {
		if _, seen := qtyByProduct[item.ProductID()]; !seen {
			productIDs = append(productIDs, item.ProductID())
		}
		qtyByProduct[item.ProductID()] += item.QtyOrdered()
	}

	products := make(map[kernel.UUID]*product.Product, len(productIDs))
	for _, productID := range productIDs {
		p, lockErr := productRepo.GetForUpdate(ctx, productID, tenantID)
		if lockErr != nil {
			return nil, lockErr
		}
		if qty := qtyByProduct[productID]; qty > p.Available() {
			return nil, errs.NewInsufficientStockError(p.ID().String(), qty, p.Available())
		}
		products[productID] = p
	}

	for _, item := range items {
		if priceErr := products[item.ProductID()].CheckPrice(item.UnitPrice()); priceErr != nil {
			return nil, priceErr
		}
	}

	now := time.Now().UTC()
	orderNumber, err := h.generateOrderNumber(ctx, uow, tenantID, now)
	if err != nil {
		return nil, err
	}

	newOrder, err := order.NewOrder(order.NewOrderParams{
		ID:                    kernel.NewUUID(),
		TenantID:              tenantID,
		OrderNumber:           orderNumber,
		CustomerID:            cmd.CustomerID(),
		SalesRepID:            cmd.SalesRepID(),
		CreatedBy:             actor.UserID(),
		Amounts:               cmd.Amounts(),
		Notes:                 cmd.Notes(),
		RequestedDeliveryDate: cmd.RequestedDeliveryDate(),
		Items:                 items,
		Now:                   now,
	})
	if err != nil {
		return nil, err
	}

	if err = uow.OrderRepository().Add(ctx, newOrder); err != nil {
		return nil, err
	}

	for _, productID := range productIDs {
		p := products[productID]
		if err = p.Reserve(qtyByProduct[productID]); err != nil {
			return nil, err
		}
		if err = productRepo.Update(ctx, p); err != nil {
			return nil, err
		}
	}

	if err = cust.IncreaseDebt(cmd.Amounts().Total()); err != nil {
		return nil, err
	}
	if err = customerRepo.Update(ctx, cust); err != nil {
		return nil, err
	}

	if err = appendOrderEvent(ctx, uow.OutboxRepository(), newOrder, outbox.KindOrderCreated, now); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	if recordErr := h.planLimits.RecordOrderCreated(ctx, tenantID); recordErr != nil {
		h.logger.ErrorContext(ctx, "failed to record order against plan quota",
			"tenant_id", tenantID.String(), "error", recordErr)
	}

	return newOrder, nil
}

// generateOrderNumber derives the daily sequence by counting the tenant's
// orders since local midnight inside the creation transaction. Concurrent
// creations in the same minute can collide; the number is a human-readable
// secondary identifier, never the primary key.
func (h *CreateOrderCommandHandler) generateOrderNumber(
	ctx context.Context,
	uow CreateOrderUoW,
	tenantID kernel.UUID,
	now time.Time,
) (string, error) {
	tn, err := uow.TenantRepository().Get(ctx, tenantID)
	if err != nil {
		return "", err
	}

	startOfDay, err := h.orderNumbers.StartOfDay(tn, now)
	if err != nil {
		return "", err
	}

	priorCount, err := uow.OrderRepository().CountCreatedSince(ctx, tenantID, startOfDay)
	if err != nil {
		return "", err
	}

	return h.orderNumbers.Generate(tn, priorCount, now)
}

// appendOrderEvent writes one outbox event describing what happened to the
// order. The event is persisted in the same transaction as the mutation it
// describes and dispatched after commit by the outbox job.
func appendOrderEvent(
	ctx context.Context,
	outboxRepo ports.OutboxRepository,
	o *order.Order,
	kind outbox.Kind,
	now time.Time,
) error {
	payload, err := json.Marshal(map[string]string{
		"order_id":     o.ID().String(),
		"order_number": o.OrderNumber(),
		"status":       o.Status().String(),
		"total":        o.Amounts().Total().String(),
	})
	if err != nil {
		return err
	}

	recipients := []string{o.CustomerID().String(), o.SalesRepID().String()}
	event, err := outbox.NewEvent(kernel.NewUUID(), o.TenantID(), o.ID(), kind, recipients, payload, now)
	if err != nil {
		return err
	}

	return outboxRepo.Add(ctx, event)
}
