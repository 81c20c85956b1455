package order

import (
	"fmt"

	"distribution/internal/pkg/errs"
)

// Status represents the lifecycle state of an order.
// It implements a state machine with a fixed adjacency table: every legal
// transition is an explicit edge, and everything else is rejected.
//
// State transitions:
//
//	pending ──> confirmed ──> approved ──> picking ──> picked ──> loaded ──> delivering
//	   │            │             │           │           │          │           │
//	   │            │             │           │           │          │           ├──> delivered
//	   │            │             │           │           │          │           ├──> partial ──> delivered | returned | cancelled
//	   │            │             │           │           │          │           └──> returned
//	   └────────────┴─────────────┴───────────┴───────────┴──────────┴──> cancelled
//
// delivered, returned, and cancelled are terminal: they have no outgoing
// edges, so no further transition (including re-delivery) is possible.
//
// Status is a value object that validates state transitions and provides
// string representations for persistence and display.
type Status string

const (
	// StatusPending is the initial status of every order at creation time.
	StatusPending Status = "pending"

	// StatusConfirmed indicates the order has been acknowledged by the tenant.
	StatusConfirmed Status = "confirmed"

	// StatusApproved indicates a supervisor released the order to fulfillment.
	StatusApproved Status = "approved"

	// StatusPicking indicates warehouse picking is in progress.
	StatusPicking Status = "picking"

	// StatusPicked indicates all lines have been picked.
	StatusPicked Status = "picked"

	// StatusLoaded indicates the order is loaded onto a vehicle.
	StatusLoaded Status = "loaded"

	// StatusDelivering indicates the order is out for delivery.
	StatusDelivering Status = "delivering"

	// StatusDelivered indicates a complete, successful delivery. Terminal.
	StatusDelivered Status = "delivered"

	// StatusPartial indicates a partial delivery: some lines were delivered,
	// the rest are pending resolution.
	StatusPartial Status = "partial"

	// StatusReturned indicates the customer refused the delivery. Terminal.
	StatusReturned Status = "returned"

	// StatusCancelled indicates the order was cancelled before completion.
	// Terminal.
	StatusCancelled Status = "cancelled"
)

// statusTransitions returns the adjacency table of the order state machine.
// A missing key or an empty edge list means the status has no outgoing edges.
func statusTransitions() map[Status][]Status {
	return map[Status][]Status{
		StatusPending:    {StatusConfirmed, StatusCancelled},
		StatusConfirmed:  {StatusApproved, StatusCancelled},
		StatusApproved:   {StatusPicking, StatusCancelled},
		StatusPicking:    {StatusPicked, StatusCancelled},
		StatusPicked:     {StatusLoaded, StatusCancelled},
		StatusLoaded:     {StatusDelivering, StatusCancelled},
		StatusDelivering: {StatusDelivered, StatusPartial, StatusReturned},
		StatusPartial:    {StatusDelivered, StatusReturned, StatusCancelled},
		StatusDelivered:  {},
		StatusReturned:   {},
		StatusCancelled:  {},
	}
}

// StatusFromString parses a status from its wire representation.
// Returns an error for any string outside the status set.
func StatusFromString(s string) (Status, error) {
	status := Status(s)
	if err := status.Validate(); err != nil {
		return "", err
	}
	return status, nil
}

// Validate checks if the Status value belongs to the status set.
func (s Status) Validate() error {
	if _, ok := statusTransitions()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid status", string(s)))
	}
	return nil
}

// String returns the wire representation of the status.
// This method implements the fmt.Stringer interface.
func (s Status) String() string {
	return string(s)
}

// IsTerminal reports whether the status has no outgoing edges.
// Terminal orders cannot be transitioned, cancelled, or reassigned.
func (s Status) IsTerminal() bool {
	return s == StatusDelivered || s == StatusReturned || s == StatusCancelled
}

// CanTransitionTo reports whether the adjacency table contains an edge from
// the current status to the target.
func (s Status) CanTransitionTo(target Status) bool {
	for _, next := range statusTransitions()[s] {
		if next == target {
			return true
		}
	}
	return false
}

// ValidateTransition checks the edge from the current status to the target,
// returning an InvalidStatusTransitionError naming the attempted pair when
// the edge is absent.
func (s Status) ValidateTransition(target Status) error {
	if err := target.Validate(); err != nil {
		return err
	}
	if !s.CanTransitionTo(target) {
		return errs.NewInvalidStatusTransitionError(s.String(), target.String())
	}
	return nil
}
