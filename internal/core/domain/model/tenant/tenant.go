package tenant

import (
	"errors"
	"fmt"
	"time"

	"distribution/internal/core/domain/model/kernel"
	"distribution/internal/pkg/errs"
	"distribution/internal/pkg/guard"
)

// ErrTenantIsNotConstructed indicates that the Tenant was not properly
// initialized through the NewTenant constructor function.
var ErrTenantIsNotConstructed = errors.New("Tenant must be created via NewTenant constructor")

const (
	defaultOrderPrefix = "ORD-"
	defaultTimezone    = "UTC"
)

// Tenant is the order-placement view of a tenant organization: the prefix
// its order numbers carry and the timezone its daily sequence resets in.
// Tenant administration is an external concern.
type Tenant struct {
	id          kernel.UUID
	name        string
	orderPrefix string
	timezone    string
	location    *time.Location
	guard       guard.ConstructorGuard
}

// NewTenant creates a tenant. An empty orderPrefix falls back to "ORD-" and
// an empty timezone to UTC; a non-empty timezone must be a valid IANA name.
func NewTenant(id kernel.UUID, name, orderPrefix, timezone string) (*Tenant, error) {
	tenant := &Tenant{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		tenant.setID(id),
		tenant.setName(name),
		tenant.setOrderPrefix(orderPrefix),
		tenant.setTimezone(timezone),
	); err != nil {
		return nil, err
	}

	return tenant, nil
}

// Validate checks that the tenant was built through its constructor.
func (t *Tenant) Validate() error {
	if t == nil {
		return ErrTenantIsNotConstructed
	}
	return t.guard.Validate(ErrTenantIsNotConstructed)
}

// IsEqual compares two tenants by their unique identifiers.
func (t *Tenant) IsEqual(other *Tenant) bool {
	return other != nil && t.id.IsEqual(other.id)
}

// ID returns the tenant's unique identifier.
func (t *Tenant) ID() kernel.UUID {
	return t.id
}

// Name returns the tenant's display name.
func (t *Tenant) Name() string {
	return t.name
}

// OrderPrefix returns the prefix carried by the tenant's order numbers.
func (t *Tenant) OrderPrefix() string {
	return t.orderPrefix
}

// Timezone returns the tenant's IANA timezone name.
func (t *Tenant) Timezone() string {
	return t.timezone
}

// Location returns the tenant's timezone, resolved once at construction.
// Local midnight in this location is where the daily order sequence resets.
func (t *Tenant) Location() *time.Location {
	return t.location
}

func (t *Tenant) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	t.id = id
	return nil
}

func (t *Tenant) setName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("name")
	}

	t.name = name
	return nil
}

func (t *Tenant) setOrderPrefix(orderPrefix string) error {
	if orderPrefix == "" {
		orderPrefix = defaultOrderPrefix
	}

	t.orderPrefix = orderPrefix
	return nil
}

func (t *Tenant) setTimezone(timezone string) error {
	if timezone == "" {
		timezone = defaultTimezone
	}

	location, err := time.LoadLocation(timezone)
	if err != nil {
		return errs.NewValueIsInvalidErrorWithCause(
			"timezone",
			fmt.Errorf("%q is not a valid IANA timezone: %w", timezone, err),
		)
	}

	t.timezone = timezone
	t.location = location
	return nil
}
