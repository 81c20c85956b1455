package order

import (
	"errors"
	"fmt"
	"time"

	"distribution/internal/core/domain/model/kernel"
	"distribution/internal/pkg/errs"
	"distribution/internal/pkg/guard"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created
	// through NewOrder or RestoreOrder. This ensures all orders are properly validated.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder constructor")

	// ErrOrderNumberIsRequired is returned when attempting to create an order
	// without a human-readable order number.
	ErrOrderNumberIsRequired = errs.NewValueIsRequiredError("orderNumber")

	// ErrItemsAreRequired is returned when attempting to create an order with
	// no lines.
	ErrItemsAreRequired = errs.NewValueIsRequiredError("items")
)

// Order is the aggregate root of the sales order lifecycle. It owns the order
// lines and the append-only status history, and it is the only place where
// status transitions, cancellation, assignment, and payment recording are
// decided.
//
// Order follows these invariants:
//   - Created exactly once in status pending with payment status unpaid
//   - Every lifecycle change appends exactly one history entry
//   - Status changes follow the fixed adjacency table (see Status)
//   - Terminal orders (delivered, returned, cancelled) never change again
//   - Monetary amounts are caller-supplied and never recomputed
//
// The struct uses private fields so every mutation flows through a validated
// method. Orders are never deleted; cancellation is a status.
type Order struct {
	id          kernel.UUID
	tenantID    kernel.UUID
	orderNumber string
	customerID  kernel.UUID
	salesRepID  kernel.UUID
	createdBy   kernel.UUID
	driverID    *kernel.UUID

	status        Status
	paymentStatus PaymentStatus
	amounts       Amounts

	notes                 string
	requestedDeliveryDate *time.Time

	createdAt    time.Time
	deliveredAt  *time.Time
	cancelledAt  *time.Time
	cancelledBy  *kernel.UUID
	cancelReason string

	items   []*Item
	history []*HistoryEntry

	guard guard.ConstructorGuard
}

// NewOrderParams carries everything needed to create a fresh order.
// SalesRepID is the rep responsible for the customer; CreatedBy is the user
// who actually placed the order (the two differ when an admin orders on a
// rep's behalf).
type NewOrderParams struct {
	ID                    kernel.UUID
	TenantID              kernel.UUID
	OrderNumber           string
	CustomerID            kernel.UUID
	SalesRepID            kernel.UUID
	CreatedBy             kernel.UUID
	Amounts               Amounts
	Notes                 string
	RequestedDeliveryDate *time.Time
	Items                 []*Item
	Now                   time.Time
}

// NewOrder creates a new Order in status pending with payment status unpaid
// and exactly one history entry recording the creation.
//
// All identity fields, the amounts, and the order lines are validated;
// failures are aggregated into a single error. If Now is the zero time, the
// current UTC time is used.
func NewOrder(params NewOrderParams) (*Order, error) {
	o := &Order{
		status:        StatusPending,
		paymentStatus: PaymentUnpaid,
		guard:         guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		o.setID(params.ID),
		o.setTenantID(params.TenantID),
		o.setOrderNumber(params.OrderNumber),
		o.setCustomerID(params.CustomerID),
		o.setSalesRepID(params.SalesRepID),
		o.setCreatedBy(params.CreatedBy),
		o.setAmounts(params.Amounts),
		o.setItems(params.Items),
	); err != nil {
		return nil, err
	}

	now := params.Now
	if now.IsZero() {
		now = time.Now().UTC()
	}
	o.createdAt = now
	o.notes = params.Notes
	o.requestedDeliveryDate = copyTime(params.RequestedDeliveryDate)

	if err := o.appendHistory(nil, StatusPending, params.CreatedBy, "", now); err != nil {
		return nil, err
	}

	return o, nil
}

// RestoreOrderParams carries the full persisted state of an order.
type RestoreOrderParams struct {
	ID                    kernel.UUID
	TenantID              kernel.UUID
	OrderNumber           string
	CustomerID            kernel.UUID
	SalesRepID            kernel.UUID
	CreatedBy             kernel.UUID
	DriverID              *kernel.UUID
	Status                Status
	PaymentStatus         PaymentStatus
	Amounts               Amounts
	Notes                 string
	RequestedDeliveryDate *time.Time
	CreatedAt             time.Time
	DeliveredAt           *time.Time
	CancelledAt           *time.Time
	CancelledBy           *kernel.UUID
	CancelReason          string
	Items                 []*Item
	History               []*HistoryEntry
}

// RestoreOrder reconstructs an Order aggregate from persistent storage,
// preserving its lifecycle state, timestamps, lines, and audit trail. Unlike
// NewOrder it does not append a history entry.
func RestoreOrder(params RestoreOrderParams) (*Order, error) {
	o := &Order{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		o.setID(params.ID),
		o.setTenantID(params.TenantID),
		o.setOrderNumber(params.OrderNumber),
		o.setCustomerID(params.CustomerID),
		o.setSalesRepID(params.SalesRepID),
		o.setCreatedBy(params.CreatedBy),
		o.setAmounts(params.Amounts),
		o.setItems(params.Items),
		o.setStatus(params.Status),
		o.setPaymentStatus(params.PaymentStatus),
		o.setHistory(params.History),
	); err != nil {
		return nil, err
	}

	if params.CreatedAt.IsZero() {
		return nil, errs.NewValueIsRequiredError("createdAt")
	}

	o.driverID = copyUUID(params.DriverID)
	o.notes = params.Notes
	o.requestedDeliveryDate = copyTime(params.RequestedDeliveryDate)
	o.createdAt = params.CreatedAt
	o.deliveredAt = copyTime(params.DeliveredAt)
	o.cancelledAt = copyTime(params.CancelledAt)
	o.cancelledBy = copyUUID(params.CancelledBy)
	o.cancelReason = params.CancelReason

	return o, nil
}

// Validate ensures the Order was properly constructed through a constructor.
func (o *Order) Validate() error {
	if o == nil {
		return ErrOrderIsNotConstructed
	}
	return o.guard.Validate(ErrOrderIsNotConstructed)
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// TenantID returns the tenant that owns the order.
func (o *Order) TenantID() kernel.UUID {
	return o.tenantID
}

// OrderNumber returns the human-readable order number.
func (o *Order) OrderNumber() string {
	return o.orderNumber
}

// CustomerID returns the ordering customer.
func (o *Order) CustomerID() kernel.UUID {
	return o.customerID
}

// SalesRepID returns the sales rep responsible for the order.
func (o *Order) SalesRepID() kernel.UUID {
	return o.salesRepID
}

// CreatedBy returns the user who placed the order.
func (o *Order) CreatedBy() kernel.UUID {
	return o.createdBy
}

// DriverID returns the assigned driver, or nil if unassigned.
func (o *Order) DriverID() *kernel.UUID {
	return copyUUID(o.driverID)
}

// Status returns the current lifecycle status.
func (o *Order) Status() Status {
	return o.status
}

// PaymentStatus returns the current payment status.
func (o *Order) PaymentStatus() PaymentStatus {
	return o.paymentStatus
}

// Amounts returns the monetary breakdown of the order.
func (o *Order) Amounts() Amounts {
	return o.amounts
}

// Notes returns the free-form order note.
func (o *Order) Notes() string {
	return o.notes
}

// RequestedDeliveryDate returns the requested delivery date, or nil.
func (o *Order) RequestedDeliveryDate() *time.Time {
	return copyTime(o.requestedDeliveryDate)
}

// CreatedAt returns when the order was created.
func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

// DeliveredAt returns when the order was delivered, or nil.
func (o *Order) DeliveredAt() *time.Time {
	return copyTime(o.deliveredAt)
}

// CancelledAt returns when the order was cancelled, or nil.
func (o *Order) CancelledAt() *time.Time {
	return copyTime(o.cancelledAt)
}

// CancelledBy returns who cancelled the order, or nil.
func (o *Order) CancelledBy() *kernel.UUID {
	return copyUUID(o.cancelledBy)
}

// CancelReason returns the reason given at cancellation time.
func (o *Order) CancelReason() string {
	return o.cancelReason
}

// Items returns the order lines. The returned slice is a copy to prevent
// external modification of the aggregate's line set.
func (o *Order) Items() []*Item {
	out := make([]*Item, len(o.items))
	copy(out, o.items)
	return out
}

// History returns the append-only audit trail, oldest entry first.
// The returned slice is a copy.
func (o *Order) History() []*HistoryEntry {
	out := make([]*HistoryEntry, len(o.history))
	copy(out, o.history)
	return out
}

// ChangeStatus moves the order along one edge of the lifecycle state machine
// and appends a history entry.
//
// Permission rules:
//   - Only lifecycle roles (admins, supervisor, warehouse, driver) may
//     transition orders; sales reps cannot.
//
// Transition rules:
//   - The edge from the current status to target must exist in the adjacency
//     table; otherwise the call fails with InvalidStatusTransition naming the
//     attempted pair and the order is left unchanged.
//   - A transition to cancelled is routed through Cancel, so cancellation
//     stamps are never skipped.
//   - A transition to delivered stamps deliveredAt exactly once; the stamp is
//     idempotent and never overwritten.
func (o *Order) ChangeStatus(actor kernel.Actor, target Status, notes string, now time.Time) error {
	if target == StatusCancelled {
		return o.Cancel(actor, notes, now)
	}

	if err := o.ValidateStatusChange(actor, target); err != nil {
		return err
	}

	previous := o.status
	if err := o.appendHistory(&previous, target, actor.UserID(), notes, now); err != nil {
		return err
	}

	o.status = target
	if target == StatusDelivered && o.deliveredAt == nil {
		deliveredAt := now
		o.deliveredAt = &deliveredAt
	}

	return nil
}

// Cancel terminates the order, stamping who cancelled it, when, and why.
//
// Permission rules:
//   - Lifecycle roles may cancel any order the state machine allows.
//   - The order's creator may additionally cancel their own order, but only
//     while it is still pending or confirmed; once picking has begun, only
//     lifecycle roles can cancel.
//
// Transition rules follow the adjacency table: delivering and terminal
// orders cannot be cancelled directly.
//
// The ledger side effects of cancellation (stock release, debt decrement)
// belong to the use case layer; the aggregate records the state change.
func (o *Order) Cancel(actor kernel.Actor, reason string, now time.Time) error {
	if err := actor.Validate(); err != nil {
		return err
	}

	if !o.canBeCancelledBy(actor) {
		return errs.NewForbiddenError("cancel order")
	}

	if err := o.status.ValidateTransition(StatusCancelled); err != nil {
		return err
	}

	previous := o.status
	if err := o.appendHistory(&previous, StatusCancelled, actor.UserID(), reason, now); err != nil {
		return err
	}

	o.status = StatusCancelled
	cancelledAt := now
	cancelledBy := actor.UserID()
	o.cancelledAt = &cancelledAt
	o.cancelledBy = &cancelledBy
	o.cancelReason = reason

	return nil
}

// AssignDriver sets the delivering driver. Only admins and supervisors may
// assign, and only while the order is not terminal.
func (o *Order) AssignDriver(actor kernel.Actor, driverID kernel.UUID) error {
	if err := actor.Validate(); err != nil {
		return err
	}
	if err := driverID.Validate(); err != nil {
		return err
	}

	if err := ValidateActorAssignment(actor, o.status); err != nil {
		return err
	}

	o.driverID = &driverID
	return nil
}

// AssignSalesRep reassigns the responsible sales rep. Only admins and
// supervisors may reassign, and only while the order is not terminal.
func (o *Order) AssignSalesRep(actor kernel.Actor, salesRepID kernel.UUID) error {
	if err := actor.Validate(); err != nil {
		return err
	}
	if err := salesRepID.Validate(); err != nil {
		return err
	}

	if err := ValidateActorAssignment(actor, o.status); err != nil {
		return err
	}

	o.salesRepID = salesRepID
	return nil
}

// RecordPayment records an externally settled payment fact. Recording a
// payment never changes order totals or customer debt.
//
// Admins and supervisors may record payments on any order; the responsible
// sales rep and the order's creator may record payments on their own orders.
// Cancelled orders do not accept payments.
func (o *Order) RecordPayment(actor kernel.Actor, status PaymentStatus) error {
	if err := actor.Validate(); err != nil {
		return err
	}
	if err := status.Validate(); err != nil {
		return err
	}

	allowed := actor.Role().IsAdmin() ||
		actor.Role() == kernel.RoleSupervisor ||
		actor.UserID().IsEqual(o.salesRepID) ||
		actor.UserID().IsEqual(o.createdBy)
	if !allowed {
		return errs.NewForbiddenError("record payment")
	}

	if o.status == StatusCancelled {
		return errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("cannot record payment on %s order", o.status))
	}

	o.paymentStatus = status
	return nil
}

// ValidateStatusChange checks permission and lifecycle rules for a
// transition to target without mutating the order. ChangeStatus and the
// batch preview share it, so an order reported eligible by the preview is
// exactly an order the real transition would accept.
func (o *Order) ValidateStatusChange(actor kernel.Actor, target Status) error {
	return ValidateActorTransition(actor, o.status, o.createdBy, target)
}

// canBeCancelledBy applies the cancellation permission rules: lifecycle roles
// always, the creator only while the order is pending or confirmed.
func (o *Order) canBeCancelledBy(actor kernel.Actor) bool {
	return canCancel(actor, o.status, o.createdBy)
}

func (o *Order) appendHistory(
	fromStatus *Status,
	toStatus Status,
	changedBy kernel.UUID,
	notes string,
	occurredAt time.Time,
) error {
	if occurredAt.IsZero() {
		occurredAt = time.Now().UTC()
	}

	entry, err := NewHistoryEntry(kernel.NewUUID(), fromStatus, toStatus, changedBy, notes, occurredAt)
	if err != nil {
		return err
	}

	o.history = append(o.history, entry)
	return nil
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setTenantID(tenantID kernel.UUID) error {
	if err := tenantID.Validate(); err != nil {
		return err
	}
	o.tenantID = tenantID
	return nil
}

func (o *Order) setOrderNumber(orderNumber string) error {
	if orderNumber == "" {
		return ErrOrderNumberIsRequired
	}
	o.orderNumber = orderNumber
	return nil
}

func (o *Order) setCustomerID(customerID kernel.UUID) error {
	if err := customerID.Validate(); err != nil {
		return err
	}
	o.customerID = customerID
	return nil
}

func (o *Order) setSalesRepID(salesRepID kernel.UUID) error {
	if err := salesRepID.Validate(); err != nil {
		return err
	}
	o.salesRepID = salesRepID
	return nil
}

func (o *Order) setCreatedBy(createdBy kernel.UUID) error {
	if err := createdBy.Validate(); err != nil {
		return err
	}
	o.createdBy = createdBy
	return nil
}

func (o *Order) setAmounts(amounts Amounts) error {
	if err := amounts.Validate(); err != nil {
		return err
	}
	o.amounts = amounts
	return nil
}

func (o *Order) setItems(items []*Item) error {
	if len(items) == 0 {
		return ErrItemsAreRequired
	}

	for _, item := range items {
		if err := item.Validate(); err != nil {
			return err
		}
	}

	o.items = make([]*Item, len(items))
	copy(o.items, items)
	return nil
}

func (o *Order) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	o.status = status
	return nil
}

func (o *Order) setPaymentStatus(status PaymentStatus) error {
	if err := status.Validate(); err != nil {
		return err
	}
	o.paymentStatus = status
	return nil
}

func (o *Order) setHistory(history []*HistoryEntry) error {
	for _, entry := range history {
		if err := entry.Validate(); err != nil {
			return err
		}
	}

	o.history = make([]*HistoryEntry, len(history))
	copy(o.history, history)
	return nil
}

func copyTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	c := *t
	return &c
}

func copyUUID(id *kernel.UUID) *kernel.UUID {
	if id == nil {
		return nil
	}
	c := *id
	return &c
}
