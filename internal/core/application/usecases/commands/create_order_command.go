package commands

import (
	"errors"
	"time"

	"distribution/internal/core/domain/model/kernel"
	"distribution/internal/core/domain/model/order"
	"distribution/internal/pkg/guard"
)

var ErrCreateOrderCommandIsNotConstructed = errors.New(
	"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
)

// CreateOrderCommand represents a request to place a new sales order.
// It carries the acting user, the ordering customer, the order lines with
// their quoted unit prices, and the caller-supplied monetary breakdown.
//
// Example:
//
//	item, _ := order.NewItem(kernel.NewUUID(), productID, price, 3, lineTotal)
//	amounts, _ := order.NewAmounts(subtotal, discount, tax, total)
//	cmd, err := NewCreateOrderCommand(actor, customerID, nil,
//	    []*order.Item{item}, amounts, "leave at the gate", nil)
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	actor                 kernel.Actor
	customerID            kernel.UUID
	salesRepID            *kernel.UUID
	items                 []*order.Item
	amounts               order.Amounts
	notes                 string
	requestedDeliveryDate *time.Time

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand creates a command to place a new order.
// salesRepID may be nil, in which case the acting user becomes the
// responsible sales rep. Validates the actor, the customer reference, every
// line, and the amounts; failures are aggregated into a single error.
func NewCreateOrderCommand(
	actor kernel.Actor,
	customerID kernel.UUID,
	salesRepID *kernel.UUID,
	items []*order.Item,
	amounts order.Amounts,
	notes string,
	requestedDeliveryDate *time.Time,
) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setActor(actor),
		cmd.setCustomerID(customerID),
		cmd.setSalesRepID(salesRepID),
		cmd.setItems(items),
		cmd.setAmounts(amounts),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	cmd.notes = notes
	if requestedDeliveryDate != nil {
		date := *requestedDeliveryDate
		cmd.requestedDeliveryDate = &date
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

// Actor returns the user placing the order.
func (c CreateOrderCommand) Actor() kernel.Actor {
	return c.actor
}

// CustomerID returns the ordering customer.
func (c CreateOrderCommand) CustomerID() kernel.UUID {
	return c.customerID
}

// SalesRepID returns the responsible sales rep: the explicitly supplied one,
// or the acting user when none was given.
func (c CreateOrderCommand) SalesRepID() kernel.UUID {
	if c.salesRepID != nil {
		return *c.salesRepID
	}
	return c.actor.UserID()
}

// Items returns the order lines.
func (c CreateOrderCommand) Items() []*order.Item {
	out := make([]*order.Item, len(c.items))
	copy(out, c.items)
	return out
}

// Amounts returns the caller-supplied monetary breakdown.
func (c CreateOrderCommand) Amounts() order.Amounts {
	return c.amounts
}

// Notes returns the free-form order note.
func (c CreateOrderCommand) Notes() string {
	return c.notes
}

// RequestedDeliveryDate returns the requested delivery date, or nil.
func (c CreateOrderCommand) RequestedDeliveryDate() *time.Time {
	if c.requestedDeliveryDate == nil {
		return nil
	}
	date := *c.requestedDeliveryDate
	return &date
}

func (c *CreateOrderCommand) setActor(actor kernel.Actor) error {
	if err := actor.Validate(); err != nil {
		return err
	}
	c.actor = actor
	return nil
}

func (c *CreateOrderCommand) setCustomerID(customerID kernel.UUID) error {
	if err := customerID.Validate(); err != nil {
		return err
	}
	c.customerID = customerID
	return nil
}

func (c *CreateOrderCommand) setSalesRepID(salesRepID *kernel.UUID) error {
	if salesRepID == nil {
		return nil
	}
	if err := salesRepID.Validate(); err != nil {
		return err
	}
	id := *salesRepID
	c.salesRepID = &id
	return nil
}

func (c *CreateOrderCommand) setItems(items []*order.Item) error {
	if len(items) == 0 {
		return order.ErrItemsAreRequired
	}

	for _, item := range items {
		if err := item.Validate(); err != nil {
			return err
		}
	}

	c.items = make([]*order.Item, len(items))
	copy(c.items, items)
	return nil
}

func (c *CreateOrderCommand) setAmounts(amounts order.Amounts) error {
	if err := amounts.Validate(); err != nil {
		return err
	}
	c.amounts = amounts
	return nil
}
