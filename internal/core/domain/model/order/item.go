package order

import (
	"errors"
	"fmt"

	"distribution/internal/core/domain/model/kernel"
	"distribution/internal/pkg/errs"
	"distribution/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

// ErrItemIsNotConstructed is returned when using an improperly initialized
// Item. Items must be created via NewItem or RestoreItem.
var ErrItemIsNotConstructed = errors.New("Item must be created via NewItem or RestoreItem constructor")

// Item is one line of an order: a product, the unit price snapshotted at
// order time, and the ordered quantity. Items are exclusively owned by their
// Order and are created atomically with it.
//
// The unit price is a snapshot: later catalog price changes never affect an
// existing order line. qtyPicked and qtyDelivered track fulfillment progress
// and are mutated by warehouse and delivery workflows.
type Item struct {
	// id uniquely identifies the order line
	id kernel.UUID

	// productID references the product this line reserves
	productID kernel.UUID

	// unitPrice is the per-unit price locked at order time
	unitPrice decimal.Decimal

	// qtyOrdered is the quantity the customer ordered (always positive)
	qtyOrdered int

	// qtyPicked is the quantity picked by the warehouse so far
	qtyPicked int

	// qtyDelivered is the quantity actually delivered
	qtyDelivered int

	// lineTotal is the caller-supplied total for this line
	lineTotal decimal.Decimal

	// guard ensures the item was properly constructed
	guard guard.ConstructorGuard
}

// NewItem creates a fresh order line. Fulfillment quantities start at zero.
//
// Validation rules:
//   - id and productID must be valid UUIDs
//   - unitPrice and lineTotal must be non-negative
//   - qtyOrdered must be positive
func NewItem(
	id kernel.UUID,
	productID kernel.UUID,
	unitPrice decimal.Decimal,
	qtyOrdered int,
	lineTotal decimal.Decimal,
) (*Item, error) {
	item := &Item{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		item.setID(id),
		item.setProductID(productID),
		item.setUnitPrice(unitPrice),
		item.setQtyOrdered(qtyOrdered),
		item.setLineTotal(lineTotal),
	); err != nil {
		return nil, err
	}

	return item, nil
}

// RestoreItem reconstructs an order line from persistent storage, including
// its fulfillment progress.
func RestoreItem(
	id kernel.UUID,
	productID kernel.UUID,
	unitPrice decimal.Decimal,
	qtyOrdered int,
	qtyPicked int,
	qtyDelivered int,
	lineTotal decimal.Decimal,
) (*Item, error) {
	item, err := NewItem(id, productID, unitPrice, qtyOrdered, lineTotal)
	if err != nil {
		return nil, err
	}

	if err := errors.Join(
		item.setQtyPicked(qtyPicked),
		item.setQtyDelivered(qtyDelivered),
	); err != nil {
		return nil, err
	}

	return item, nil
}

// Validate checks if the Item was properly constructed via a constructor.
func (i *Item) Validate() error {
	if i == nil {
		return ErrItemIsNotConstructed
	}
	return i.guard.Validate(ErrItemIsNotConstructed)
}

// ID returns the order line's unique identifier.
func (i *Item) ID() kernel.UUID {
	return i.id
}

// ProductID returns the product this line reserves.
func (i *Item) ProductID() kernel.UUID {
	return i.productID
}

// UnitPrice returns the per-unit price locked at order time.
func (i *Item) UnitPrice() decimal.Decimal {
	return i.unitPrice
}

// QtyOrdered returns the ordered quantity.
func (i *Item) QtyOrdered() int {
	return i.qtyOrdered
}

// QtyPicked returns the quantity picked so far.
func (i *Item) QtyPicked() int {
	return i.qtyPicked
}

// QtyDelivered returns the quantity delivered so far.
func (i *Item) QtyDelivered() int {
	return i.qtyDelivered
}

// LineTotal returns the caller-supplied line total.
func (i *Item) LineTotal() decimal.Decimal {
	return i.lineTotal
}

func (i *Item) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	i.id = id
	return nil
}

func (i *Item) setProductID(productID kernel.UUID) error {
	if err := productID.Validate(); err != nil {
		return err
	}
	i.productID = productID
	return nil
}

func (i *Item) setUnitPrice(unitPrice decimal.Decimal) error {
	if unitPrice.IsNegative() {
		return errs.NewValueIsInvalidErrorWithCause("unitPrice", fmt.Errorf("%s is negative", unitPrice))
	}
	i.unitPrice = unitPrice
	return nil
}

func (i *Item) setQtyOrdered(qty int) error {
	if qty <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("qtyOrdered", fmt.Errorf("%d is not greater than 0", qty))
	}
	i.qtyOrdered = qty
	return nil
}

func (i *Item) setQtyPicked(qty int) error {
	if qty < 0 {
		return errs.NewValueIsInvalidErrorWithCause("qtyPicked", fmt.Errorf("%d is negative", qty))
	}
	i.qtyPicked = qty
	return nil
}

func (i *Item) setQtyDelivered(qty int) error {
	if qty < 0 {
		return errs.NewValueIsInvalidErrorWithCause("qtyDelivered", fmt.Errorf("%d is negative", qty))
	}
	i.qtyDelivered = qty
	return nil
}

func (i *Item) setLineTotal(lineTotal decimal.Decimal) error {
	if lineTotal.IsNegative() {
		return errs.NewValueIsInvalidErrorWithCause("lineTotal", fmt.Errorf("%s is negative", lineTotal))
	}
	i.lineTotal = lineTotal
	return nil
}
