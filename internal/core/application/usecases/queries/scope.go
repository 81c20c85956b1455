// Package queries contains read operations for retrieving system state.
// Implements the Query pattern for read operations in the CQRS architecture.
// Queries return optimized read models for specific use cases.
package queries

import (
	"distribution/internal/core/domain/model/kernel"
)

// roleScope returns the SQL predicate restricting which order rows the actor
// may see, with its bind arguments. Sales reps see only orders they created,
// drivers only orders assigned to them; every other role sees its whole
// tenant. The predicate composes into listing and lookup queries so role
// filtering is never scattered across branches.
func roleScope(actor kernel.Actor) (string, []any) {
	switch actor.Role() {
	case kernel.RoleSalesRep:
		return " AND created_by = ?", []any{actor.UserID().Bytes()}
	case kernel.RoleDriver:
		return " AND driver_id = ?", []any{actor.UserID().Bytes()}
	default:
		return "", nil
	}
}
