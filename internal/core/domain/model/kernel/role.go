package kernel

import (
	"fmt"

	"distribution/internal/pkg/errs"
)

// Role represents the access role an authenticated user holds within a tenant.
// It is a value object: the set of roles is closed, and every operation of the
// core checks permissions against it rather than against raw strings.
type Role string

const (
	// RoleSuperAdmin is the platform operator. Super admins act across tenant
	// boundaries and may perform every operation.
	RoleSuperAdmin Role = "super_admin"

	// RoleTenantAdmin administers a single tenant and may perform every
	// operation within it.
	RoleTenantAdmin Role = "tenant_admin"

	// RoleSupervisor oversees the tenant's sales operation: approving orders,
	// assigning drivers and sales reps, and driving the order lifecycle.
	RoleSupervisor Role = "supervisor"

	// RoleSalesRep creates orders for the customers they manage and sees only
	// their own orders.
	RoleSalesRep Role = "sales_rep"

	// RoleWarehouse handles fulfillment: picking, packing, and loading.
	RoleWarehouse Role = "warehouse"

	// RoleDriver delivers orders and sees only orders assigned to them.
	RoleDriver Role = "driver"
)

func validRoles() map[Role]struct{} {
	return map[Role]struct{}{
		RoleSuperAdmin:  {},
		RoleTenantAdmin: {},
		RoleSupervisor:  {},
		RoleSalesRep:    {},
		RoleWarehouse:   {},
		RoleDriver:      {},
	}
}

// RoleFromString parses a role from its wire representation.
// Returns an error for any string outside the closed role set.
func RoleFromString(s string) (Role, error) {
	r := Role(s)
	if err := r.Validate(); err != nil {
		return "", err
	}
	return r, nil
}

// Validate checks if the Role value belongs to the closed role set.
func (r Role) Validate() error {
	if _, ok := validRoles()[r]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("role", fmt.Errorf("%q is not a valid role", string(r)))
	}
	return nil
}

// String returns the wire representation of the role.
func (r Role) String() string {
	return string(r)
}

// IsAdmin reports whether the role carries tenant-wide administrative power.
func (r Role) IsAdmin() bool {
	return r == RoleSuperAdmin || r == RoleTenantAdmin
}

// CanTransitionOrders reports whether the role may drive general order
// lifecycle transitions. Sales reps are excluded: their only lifecycle power
// is cancelling their own early-stage orders, which the order aggregate
// grants separately to the creator.
func (r Role) CanTransitionOrders() bool {
	switch r {
	case RoleSuperAdmin, RoleTenantAdmin, RoleSupervisor, RoleWarehouse, RoleDriver:
		return true
	default:
		return false
	}
}

// CanAssignOrders reports whether the role may assign drivers and sales reps
// to orders.
func (r Role) CanAssignOrders() bool {
	return r.IsAdmin() || r == RoleSupervisor
}
