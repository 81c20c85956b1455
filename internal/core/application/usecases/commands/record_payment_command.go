package commands

import (
	"errors"

	"distribution/internal/core/domain/model/kernel"
	"distribution/internal/core/domain/model/order"
	"distribution/internal/pkg/guard"
)

var ErrRecordPaymentCommandIsNotConstructed = errors.New(
	"RecordPaymentCommand must be created via NewRecordPaymentCommand constructor",
)

// RecordPaymentCommand records an externally settled payment fact against an
// order. Settlement happens outside the core; recording it never changes
// order totals or customer debt.
type RecordPaymentCommand struct { //nolint:recvcheck //using for validation
	actor   kernel.Actor
	orderID kernel.UUID
	status  order.PaymentStatus

	guard guard.ConstructorGuard
}

// NewRecordPaymentCommand creates a command to record a payment status.
func NewRecordPaymentCommand(
	actor kernel.Actor,
	orderID kernel.UUID,
	status order.PaymentStatus,
) (RecordPaymentCommand, error) {
	cmd := RecordPaymentCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setActor(actor),
		cmd.setOrderID(orderID),
		cmd.setStatus(status),
	); err != nil {
		return RecordPaymentCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c RecordPaymentCommand) Validate() error {
	return c.guard.Validate(ErrRecordPaymentCommandIsNotConstructed)
}

// Actor returns the user recording the payment.
func (c RecordPaymentCommand) Actor() kernel.Actor {
	return c.actor
}

// OrderID returns the order the payment applies to.
func (c RecordPaymentCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Status returns the payment status to record.
func (c RecordPaymentCommand) Status() order.PaymentStatus {
	return c.status
}

func (c *RecordPaymentCommand) setActor(actor kernel.Actor) error {
	if err := actor.Validate(); err != nil {
		return err
	}
	c.actor = actor
	return nil
}

func (c *RecordPaymentCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *RecordPaymentCommand) setStatus(status order.PaymentStatus) error {
	if err := status.Validate(); err != nil {
		return err
	}
	c.status = status
	return nil
}
