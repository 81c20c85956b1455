// Package order provides domain entities and business logic for sales order
// management. It implements the Order aggregate root with lifecycle
// management, state transitions, and the append-only audit trail.
//
// The package includes:
//   - Order: the aggregate root owning identity, lines, amounts, and lifecycle
//   - Item: an order line with a price snapshot and fulfillment quantities
//   - Status: a state machine over a fixed adjacency table of lifecycle edges
//   - PaymentStatus: the externally settled payment fact
//   - HistoryEntry: one immutable row of the audit trail
//   - Amounts: the caller-supplied monetary breakdown
//
// Key business rules:
//   - Orders are created in status pending with payment status unpaid
//   - Every lifecycle change appends exactly one history entry
//   - delivered, returned, and cancelled are terminal states
//   - The order's creator may cancel only while pending or confirmed
//   - Monetary amounts are trusted as supplied and never recomputed
//
// The package follows Domain-Driven Design principles, providing rich domain
// behavior, encapsulation, and validation to ensure business rules are enforced.
package order
