package outbox

import (
	"encoding/json"
	"errors"
	"time"

	"distribution/internal/core/domain/model/kernel"
	"distribution/internal/pkg/errs"
	"distribution/internal/pkg/guard"
)

// ErrEventIsNotConstructed indicates that the Event was not properly
// initialized through the NewEvent or RestoreEvent constructor functions.
var ErrEventIsNotConstructed = errors.New("Event must be created via NewEvent or RestoreEvent constructor")

// Kind identifies what happened to an order.
type Kind string

const (
	KindOrderCreated       Kind = "order_created"
	KindOrderStatusChanged Kind = "order_status_changed"
	KindOrderCancelled     Kind = "order_cancelled"
)

func validKinds() map[Kind]struct{} {
	return map[Kind]struct{}{
		KindOrderCreated:       {},
		KindOrderStatusChanged: {},
		KindOrderCancelled:     {},
	}
}

// Validate checks that the kind is one of the known event kinds.
func (k Kind) Validate() error {
	if _, ok := validKinds()[k]; !ok {
		return errs.NewValueIsInvalidError("kind")
	}
	return nil
}

// String returns the kind's wire representation.
func (k Kind) String() string {
	return string(k)
}

// Event is one row of the durable outbound event log. Events are written in
// the same transaction as the order mutation they describe and drained by
// the dispatch job after commit, closing the gap between commit and
// notification that a fire-and-forget call would leave on a crash.
type Event struct {
	id           kernel.UUID
	tenantID     kernel.UUID
	orderID      kernel.UUID
	kind         Kind
	recipients   []string
	payload      json.RawMessage
	createdAt    time.Time
	dispatchedAt *time.Time
	attempts     int
	guard        guard.ConstructorGuard
}

// NewEvent creates an undispatched event. A zero now falls back to the
// current UTC time.
func NewEvent(
	id, tenantID, orderID kernel.UUID,
	kind Kind,
	recipients []string,
	payload json.RawMessage,
	now time.Time,
) (*Event, error) {
	event := &Event{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		event.setID(id),
		event.setTenantID(tenantID),
		event.setOrderID(orderID),
		event.setKind(kind),
	); err != nil {
		return nil, err
	}

	if now.IsZero() {
		now = time.Now().UTC()
	}

	event.recipients = append([]string(nil), recipients...)
	event.payload = append(json.RawMessage(nil), payload...)
	event.createdAt = now
	return event, nil
}

// RestoreEvent reconstructs an event from persistent storage.
func RestoreEvent(
	id, tenantID, orderID kernel.UUID,
	kind Kind,
	recipients []string,
	payload json.RawMessage,
	createdAt time.Time,
	dispatchedAt *time.Time,
	attempts int,
) (*Event, error) {
	event, err := NewEvent(id, tenantID, orderID, kind, recipients, payload, createdAt)
	if err != nil {
		return nil, err
	}

	if dispatchedAt != nil {
		at := *dispatchedAt
		event.dispatchedAt = &at
	}
	event.attempts = attempts
	return event, nil
}

// Validate checks that the event was built through one of its constructors.
func (e *Event) Validate() error {
	if e == nil {
		return ErrEventIsNotConstructed
	}
	return e.guard.Validate(ErrEventIsNotConstructed)
}

// ID returns the event's unique identifier.
func (e *Event) ID() kernel.UUID {
	return e.id
}

// TenantID returns the tenant the event belongs to.
func (e *Event) TenantID() kernel.UUID {
	return e.tenantID
}

// OrderID returns the order the event describes.
func (e *Event) OrderID() kernel.UUID {
	return e.orderID
}

// Kind returns what happened to the order.
func (e *Event) Kind() Kind {
	return e.kind
}

// Recipients returns the delivery targets for the notification. The
// returned slice is a copy.
func (e *Event) Recipients() []string {
	return append([]string(nil), e.recipients...)
}

// Payload returns the serialized event body. The returned slice is a copy.
func (e *Event) Payload() json.RawMessage {
	return append(json.RawMessage(nil), e.payload...)
}

// CreatedAt returns when the event was written.
func (e *Event) CreatedAt() time.Time {
	return e.createdAt
}

// DispatchedAt returns when the event was successfully published, nil while
// it is still pending.
func (e *Event) DispatchedAt() *time.Time {
	if e.dispatchedAt == nil {
		return nil
	}
	at := *e.dispatchedAt
	return &at
}

// Attempts returns how many times dispatch has been tried.
func (e *Event) Attempts() int {
	return e.attempts
}

// IsDispatched reports whether the event has been published.
func (e *Event) IsDispatched() bool {
	return e.dispatchedAt != nil
}

// MarkDispatched stamps the successful publish time. A zero now falls back
// to the current UTC time.
func (e *Event) MarkDispatched(now time.Time) {
	if now.IsZero() {
		now = time.Now().UTC()
	}
	at := now
	e.dispatchedAt = &at
	e.attempts++
}

// MarkFailed counts a failed dispatch attempt; the event stays pending.
func (e *Event) MarkFailed() {
	e.attempts++
}

func (e *Event) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	e.id = id
	return nil
}

func (e *Event) setTenantID(tenantID kernel.UUID) error {
	if err := tenantID.Validate(); err != nil {
		return err
	}

	e.tenantID = tenantID
	return nil
}

func (e *Event) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	e.orderID = orderID
	return nil
}

func (e *Event) setKind(kind Kind) error {
	if err := kind.Validate(); err != nil {
		return err
	}

	e.kind = kind
	return nil
}
