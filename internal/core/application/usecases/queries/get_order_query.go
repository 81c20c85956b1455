package queries

import (
	"errors"
	"time"

	"distribution/internal/core/domain/model/kernel"
	"distribution/internal/core/domain/model/order"
	"distribution/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var (
	ErrGetOrderQueryIsNotConstructed = errors.New(
		"GetOrderQuery must be created via NewGetOrderQuery constructor",
	)
)

// GetOrderQuery retrieves a single order with its line items and status
// history. The lookup is tenant-scoped and role-scoped: a sales rep can only
// fetch orders they created, a driver only orders assigned to them. An order
// outside the actor's scope reads as not found rather than forbidden, so the
// endpoint does not leak order existence across scopes.
//
// Example:
//
//	query, err := queries.NewGetOrderQuery(actor, orderID)
//	if err != nil {
//	    return err
//	}
//
//	details, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return err
//	}
//	fmt.Printf("order %s: %s\n", details.OrderNumber, details.Status)
type GetOrderQuery struct {
	actor   kernel.Actor
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetOrderQuery creates a query to fetch one order on behalf of the actor.
func NewGetOrderQuery(actor kernel.Actor, orderID kernel.UUID) (GetOrderQuery, error) {
	if err := errors.Join(actor.Validate(), orderID.Validate()); err != nil {
		return GetOrderQuery{}, err
	}

	return GetOrderQuery{
		actor:   actor,
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderQueryIsNotConstructed)
}

// Actor returns the identity the query runs on behalf of.
func (q GetOrderQuery) Actor() kernel.Actor {
	return q.actor
}

// OrderID returns the identifier of the order to fetch.
func (q GetOrderQuery) OrderID() kernel.UUID {
	return q.orderID
}

// OrderDetailsResponse is the full read model of one order: header fields,
// line items, and the append-only status history in chronological order.
type OrderDetailsResponse struct {
	ID            kernel.UUID
	OrderNumber   string
	CustomerID    kernel.UUID
	SalesRepID    kernel.UUID
	DriverID      *kernel.UUID
	CreatedBy     kernel.UUID
	Status        order.Status
	PaymentStatus order.PaymentStatus
	Subtotal      decimal.Decimal
	Discount      decimal.Decimal
	Tax           decimal.Decimal
	Total         decimal.Decimal
	Notes         string

	RequestedDeliveryDate *time.Time
	CreatedAt             time.Time
	DeliveredAt           *time.Time
	CancelledAt           *time.Time
	CancelledBy           *kernel.UUID
	CancelReason          string

	Items   []OrderItemResponse
	History []OrderHistoryResponse
}

// OrderItemResponse is one order line in the read model.
type OrderItemResponse struct {
	ID           kernel.UUID
	ProductID    kernel.UUID
	UnitPrice    decimal.Decimal
	QtyOrdered   int
	QtyPicked    int
	QtyDelivered int
	LineTotal    decimal.Decimal
}

// OrderHistoryResponse is one status history entry in the read model.
// FromStatus is nil for the creation entry.
type OrderHistoryResponse struct {
	ID         kernel.UUID
	FromStatus *order.Status
	ToStatus   order.Status
	ChangedBy  kernel.UUID
	Notes      string
	OccurredAt time.Time
}
