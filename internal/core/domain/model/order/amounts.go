package order

import (
	"errors"
	"fmt"

	"distribution/internal/pkg/errs"
	"distribution/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

// ErrAmountsAreNotConstructed is returned when attempting to use improperly
// initialized Amounts. Amounts must be created via NewAmounts.
var ErrAmountsAreNotConstructed = errors.New("Amounts must be created via NewAmounts constructor")

// Amounts is the monetary breakdown of an order: subtotal, discount, tax,
// and total. All four are caller-supplied fixed-point decimals; the total is
// trusted as given and deliberately never recomputed from the parts, so a
// tenant's own rounding and discount rules survive round trips through the
// core untouched.
//
// Amounts is an immutable value object. The zero value is invalid - use
// NewAmounts to create instances.
type Amounts struct { //nolint:recvcheck //using for validation
	subtotal decimal.Decimal
	discount decimal.Decimal
	tax      decimal.Decimal
	total    decimal.Decimal
	guard    guard.ConstructorGuard
}

// NewAmounts creates an Amounts value with the given monetary components.
// Every component must be non-negative; violations are aggregated into a
// single error.
func NewAmounts(subtotal, discount, tax, total decimal.Decimal) (Amounts, error) {
	amounts := Amounts{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		amounts.setSubtotal(subtotal),
		amounts.setDiscount(discount),
		amounts.setTax(tax),
		amounts.setTotal(total),
	); err != nil {
		return Amounts{}, err
	}

	return amounts, nil
}

// Validate checks if the Amounts value was properly constructed via NewAmounts.
func (a Amounts) Validate() error {
	return a.guard.Validate(ErrAmountsAreNotConstructed)
}

// Subtotal returns the sum of line totals before discount and tax.
func (a Amounts) Subtotal() decimal.Decimal {
	return a.subtotal
}

// Discount returns the discount applied to the order.
func (a Amounts) Discount() decimal.Decimal {
	return a.discount
}

// Tax returns the tax applied to the order.
func (a Amounts) Tax() decimal.Decimal {
	return a.tax
}

// Total returns the order total as supplied by the caller.
func (a Amounts) Total() decimal.Decimal {
	return a.total
}

func (a *Amounts) setSubtotal(subtotal decimal.Decimal) error {
	if subtotal.IsNegative() {
		return errs.NewValueIsInvalidErrorWithCause("subtotal", fmt.Errorf("%s is negative", subtotal))
	}
	a.subtotal = subtotal
	return nil
}

func (a *Amounts) setDiscount(discount decimal.Decimal) error {
	if discount.IsNegative() {
		return errs.NewValueIsInvalidErrorWithCause("discountAmount", fmt.Errorf("%s is negative", discount))
	}
	a.discount = discount
	return nil
}

func (a *Amounts) setTax(tax decimal.Decimal) error {
	if tax.IsNegative() {
		return errs.NewValueIsInvalidErrorWithCause("taxAmount", fmt.Errorf("%s is negative", tax))
	}
	a.tax = tax
	return nil
}

func (a *Amounts) setTotal(total decimal.Decimal) error {
	if total.IsNegative() {
		return errs.NewValueIsInvalidErrorWithCause("total", fmt.Errorf("%s is negative", total))
	}
	a.total = total
	return nil
}
