package kernel

import (
	"errors"

	"distribution/internal/pkg/errs"
	"distribution/internal/pkg/guard"
)

// ErrActorIsNotConstructed is returned when attempting to use an improperly
// initialized Actor. Actors must be created via NewActor.
var ErrActorIsNotConstructed = errs.NewValueIsRequiredError("actor must be created via NewActor constructor")

// Actor is the authenticated identity on whose behalf an operation runs.
// Every command and query of the core receives an Actor; permission checks
// and row scoping derive from it, never from raw request fields.
//
// Actor is an immutable value object. The zero value is invalid and fails
// validation - use NewActor to create instances.
type Actor struct { //nolint:recvcheck //using for validation
	userID   UUID
	tenantID UUID
	role     Role
	guard    guard.ConstructorGuard
}

// NewActor creates a new Actor with the given identity and role.
// All three components are validated; a zero user or tenant ID or a role
// outside the closed role set yields an error.
func NewActor(userID UUID, tenantID UUID, role Role) (Actor, error) {
	actor := Actor{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		actor.setUserID(userID),
		actor.setTenantID(tenantID),
		actor.setRole(role),
	); err != nil {
		return Actor{}, err
	}

	return actor, nil
}

// Validate checks if the Actor was properly constructed using NewActor.
func (a Actor) Validate() error {
	return a.guard.Validate(ErrActorIsNotConstructed)
}

// UserID returns the acting user's identifier.
func (a Actor) UserID() UUID {
	return a.userID
}

// TenantID returns the tenant the actor operates within.
func (a Actor) TenantID() UUID {
	return a.tenantID
}

// Role returns the actor's access role.
func (a Actor) Role() Role {
	return a.role
}

// IsEqual compares two actors by user, tenant, and role.
func (a Actor) IsEqual(other Actor) (bool, error) {
	if err := errors.Join(a.Validate(), other.Validate()); err != nil {
		return false, err
	}

	return a == other, nil
}

func (a *Actor) setUserID(userID UUID) error {
	if err := userID.Validate(); err != nil {
		return err
	}
	a.userID = userID
	return nil
}

func (a *Actor) setTenantID(tenantID UUID) error {
	if err := tenantID.Validate(); err != nil {
		return err
	}
	a.tenantID = tenantID
	return nil
}

func (a *Actor) setRole(role Role) error {
	if err := role.Validate(); err != nil {
		return err
	}
	a.role = role
	return nil
}
