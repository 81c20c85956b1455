// Package services provides domain services that implement business rules
// spanning multiple domain entities in the distribution system.
//
// The package includes:
//   - CreditPolicy: evaluates a customer's tier rules against a proposed
//     order total at creation time
//   - OrderNumberGenerator: produces the tenant-scoped, timezone-local,
//     daily-sequential human order identifier
//
// Domain services hold no state and coordinate between aggregates,
// implementing logic that does not naturally belong to a single aggregate
// root.
package services
