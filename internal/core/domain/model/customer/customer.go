package customer

import (
	"errors"
	"fmt"

	"distribution/internal/core/domain/model/kernel"
	"distribution/internal/pkg/errs"
	"distribution/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

// ErrCustomerIsNotConstructed indicates that the Customer was not properly
// initialized through the NewCustomer or RestoreCustomer constructor
// functions.
var ErrCustomerIsNotConstructed = errors.New("Customer must be created via NewCustomer or RestoreCustomer constructor")

// Customer is the receivables view of a customer account: who created the
// account, which tier policy applies, and the two balances order placement
// manipulates.
//
// debtBalance is the sum of totals of the customer's non-cancelled orders.
// It changes exactly twice per order's life: incremented on creation and
// decremented (floor-clamped) on cancellation. Delivery and approval never
// touch it.
//
// creditBalance is prepaid funds, consulted by the credit policy when the
// customer's tier does not allow ordering on credit.
type Customer struct {
	id              kernel.UUID
	tenantID        kernel.UUID
	createdByUserID kernel.UUID
	name            string
	tierID          *kernel.UUID
	debtBalance     decimal.Decimal
	creditBalance   decimal.Decimal
	guard           guard.ConstructorGuard
}

// NewCustomer creates a customer account with zero balances.
func NewCustomer(id, tenantID, createdByUserID kernel.UUID, name string, tierID *kernel.UUID) (*Customer, error) {
	customer := &Customer{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		customer.setID(id),
		customer.setTenantID(tenantID),
		customer.setCreatedByUserID(createdByUserID),
		customer.setName(name),
		customer.setTierID(tierID),
	); err != nil {
		return nil, err
	}

	customer.debtBalance = decimal.Zero
	customer.creditBalance = decimal.Zero
	return customer, nil
}

// RestoreCustomer reconstructs a customer from persistent storage.
func RestoreCustomer(
	id, tenantID, createdByUserID kernel.UUID,
	name string,
	tierID *kernel.UUID,
	debtBalance, creditBalance decimal.Decimal,
) (*Customer, error) {
	customer := &Customer{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		customer.setID(id),
		customer.setTenantID(tenantID),
		customer.setCreatedByUserID(createdByUserID),
		customer.setName(name),
		customer.setTierID(tierID),
		customer.setDebtBalance(debtBalance),
		customer.setCreditBalance(creditBalance),
	); err != nil {
		return nil, err
	}

	return customer, nil
}

// Validate checks that the customer was built through one of its
// constructors.
func (c *Customer) Validate() error {
	if c == nil {
		return ErrCustomerIsNotConstructed
	}
	return c.guard.Validate(ErrCustomerIsNotConstructed)
}

// IsEqual compares two customers by their unique identifiers.
func (c *Customer) IsEqual(other *Customer) bool {
	return other != nil && c.id.IsEqual(other.id)
}

// ID returns the customer's unique identifier.
func (c *Customer) ID() kernel.UUID {
	return c.id
}

// TenantID returns the tenant that owns the customer account.
func (c *Customer) TenantID() kernel.UUID {
	return c.tenantID
}

// CreatedByUserID returns the user who registered the customer account.
func (c *Customer) CreatedByUserID() kernel.UUID {
	return c.createdByUserID
}

// Name returns the customer's display name.
func (c *Customer) Name() string {
	return c.name
}

// TierID returns the customer's tier, nil when no tier policy applies.
func (c *Customer) TierID() *kernel.UUID {
	if c.tierID == nil {
		return nil
	}
	id := *c.tierID
	return &id
}

// DebtBalance returns the sum of totals of the customer's non-cancelled
// orders.
func (c *Customer) DebtBalance() decimal.Decimal {
	return c.debtBalance
}

// CreditBalance returns the customer's prepaid funds.
func (c *Customer) CreditBalance() decimal.Decimal {
	return c.creditBalance
}

// WasCreatedBy reports whether the given user registered this customer
// account. Sales reps may only place orders for customers they registered
// themselves.
func (c *Customer) WasCreatedBy(userID kernel.UUID) bool {
	return c.createdByUserID.IsEqual(userID)
}

// IncreaseDebt adds an order total to the customer's debt.
func (c *Customer) IncreaseDebt(amount decimal.Decimal) error {
	if amount.IsNegative() {
		return errs.NewValueIsInvalidErrorWithCause(
			"amount",
			fmt.Errorf("%s is negative", amount),
		)
	}

	c.debtBalance = c.debtBalance.Add(amount)
	return nil
}

// DecreaseDebt subtracts a cancelled order's total from the customer's debt.
// The result is clamped at zero. The clamp is a safety valve against double
// processing, not a ledger correction.
func (c *Customer) DecreaseDebt(amount decimal.Decimal) error {
	if amount.IsNegative() {
		return errs.NewValueIsInvalidErrorWithCause(
			"amount",
			fmt.Errorf("%s is negative", amount),
		)
	}

	c.debtBalance = c.debtBalance.Sub(amount)
	if c.debtBalance.IsNegative() {
		c.debtBalance = decimal.Zero
	}
	return nil
}

func (c *Customer) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	c.id = id
	return nil
}

func (c *Customer) setTenantID(tenantID kernel.UUID) error {
	if err := tenantID.Validate(); err != nil {
		return err
	}

	c.tenantID = tenantID
	return nil
}

func (c *Customer) setCreatedByUserID(createdByUserID kernel.UUID) error {
	if err := createdByUserID.Validate(); err != nil {
		return err
	}

	c.createdByUserID = createdByUserID
	return nil
}

func (c *Customer) setName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("name")
	}

	c.name = name
	return nil
}

func (c *Customer) setTierID(tierID *kernel.UUID) error {
	if tierID != nil {
		if err := tierID.Validate(); err != nil {
			return err
		}
		id := *tierID
		c.tierID = &id
		return nil
	}

	c.tierID = nil
	return nil
}

func (c *Customer) setDebtBalance(debtBalance decimal.Decimal) error {
	if debtBalance.IsNegative() {
		return errs.NewValueIsInvalidErrorWithCause(
			"debtBalance",
			fmt.Errorf("%s is negative", debtBalance),
		)
	}

	c.debtBalance = debtBalance
	return nil
}

func (c *Customer) setCreditBalance(creditBalance decimal.Decimal) error {
	if creditBalance.IsNegative() {
		return errs.NewValueIsInvalidErrorWithCause(
			"creditBalance",
			fmt.Errorf("%s is negative", creditBalance),
		)
	}

	c.creditBalance = creditBalance
	return nil
}
