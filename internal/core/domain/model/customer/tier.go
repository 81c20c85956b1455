package customer

import (
	"errors"
	"fmt"

	"distribution/internal/core/domain/model/kernel"
	"distribution/internal/pkg/errs"
	"distribution/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

// ErrTierIsNotConstructed indicates that the Tier was not properly
// initialized through the NewTier constructor function.
var ErrTierIsNotConstructed = errors.New("Tier must be created via NewTier constructor")

// Tier is a named credit policy attached to a customer. Tier administration
// is external; order placement only reads the three policy knobs:
//
//   - creditAllowed: whether the customer may order on credit at all. When
//     false, orders must be covered by prepaid credit balance.
//   - creditLimit: optional cap on debtBalance + new order total.
//   - maxOrderAmount: optional cap on a single order's total.
//
// A nil limit means the corresponding rule is not enforced. The policy is
// evaluated once, at order creation; existing orders are never re-validated.
type Tier struct {
	id             kernel.UUID
	tenantID       kernel.UUID
	name           string
	creditAllowed  bool
	creditLimit    *decimal.Decimal
	maxOrderAmount *decimal.Decimal
	guard          guard.ConstructorGuard
}

// NewTier creates a tier policy. creditLimit and maxOrderAmount are optional
// and must be non-negative when present.
func NewTier(
	id, tenantID kernel.UUID,
	name string,
	creditAllowed bool,
	creditLimit, maxOrderAmount *decimal.Decimal,
) (*Tier, error) {
	tier := &Tier{
		guard:         guard.NewConstructorGuard(),
		creditAllowed: creditAllowed,
	}

	if err := errors.Join(
		tier.setID(id),
		tier.setTenantID(tenantID),
		tier.setName(name),
		tier.setCreditLimit(creditLimit),
		tier.setMaxOrderAmount(maxOrderAmount),
	); err != nil {
		return nil, err
	}

	return tier, nil
}

// Validate checks that the tier was built through its constructor.
func (t *Tier) Validate() error {
	if t == nil {
		return ErrTierIsNotConstructed
	}
	return t.guard.Validate(ErrTierIsNotConstructed)
}

// IsEqual compares two tiers by their unique identifiers.
func (t *Tier) IsEqual(other *Tier) bool {
	return other != nil && t.id.IsEqual(other.id)
}

// ID returns the tier's unique identifier.
func (t *Tier) ID() kernel.UUID {
	return t.id
}

// TenantID returns the tenant that owns the tier.
func (t *Tier) TenantID() kernel.UUID {
	return t.tenantID
}

// Name returns the tier's display name.
func (t *Tier) Name() string {
	return t.name
}

// CreditAllowed reports whether customers on this tier may order on credit.
func (t *Tier) CreditAllowed() bool {
	return t.creditAllowed
}

// CreditLimit returns the cap on outstanding debt, nil when unlimited.
func (t *Tier) CreditLimit() *decimal.Decimal {
	if t.creditLimit == nil {
		return nil
	}
	limit := *t.creditLimit
	return &limit
}

// MaxOrderAmount returns the cap on a single order's total, nil when
// unlimited.
func (t *Tier) MaxOrderAmount() *decimal.Decimal {
	if t.maxOrderAmount == nil {
		return nil
	}
	maxAmount := *t.maxOrderAmount
	return &maxAmount
}

func (t *Tier) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	t.id = id
	return nil
}

func (t *Tier) setTenantID(tenantID kernel.UUID) error {
	if err := tenantID.Validate(); err != nil {
		return err
	}

	t.tenantID = tenantID
	return nil
}

func (t *Tier) setName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("name")
	}

	t.name = name
	return nil
}

func (t *Tier) setCreditLimit(creditLimit *decimal.Decimal) error {
	if creditLimit != nil {
		if creditLimit.IsNegative() {
			return errs.NewValueIsInvalidErrorWithCause(
				"creditLimit",
				fmt.Errorf("%s is negative", creditLimit),
			)
		}
		limit := *creditLimit
		t.creditLimit = &limit
		return nil
	}

	t.creditLimit = nil
	return nil
}

func (t *Tier) setMaxOrderAmount(maxOrderAmount *decimal.Decimal) error {
	if maxOrderAmount != nil {
		if maxOrderAmount.IsNegative() {
			return errs.NewValueIsInvalidErrorWithCause(
				"maxOrderAmount",
				fmt.Errorf("%s is negative", maxOrderAmount),
			)
		}
		maxAmount := *maxOrderAmount
		t.maxOrderAmount = &maxAmount
		return nil
	}

	t.maxOrderAmount = nil
	return nil
}
