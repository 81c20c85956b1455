package services

import (
	"fmt"

	"distribution/internal/core/domain/model/customer"
	"distribution/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// CreditPolicy is a domain service that applies a customer's tier rules to a
// proposed order total. It is a one-shot gate at order creation time: orders
// already placed are never re-validated when a tier or balance changes.
//
// The rules, applied in order:
//  1. No tier attached: the order is allowed.
//  2. Tier forbids credit: the customer's prepaid credit balance must cover
//     the total, otherwise CreditNotAllowed.
//  3. Tier has a credit limit: current debt plus the total must not exceed
//     it, otherwise CreditLimitExceeded.
//  4. Tier caps single orders: the total must not exceed maxOrderAmount,
//     otherwise MaxOrderExceeded.
type CreditPolicy struct{}

// NewCreditPolicy creates a new CreditPolicy instance.
func NewCreditPolicy() CreditPolicy {
	return CreditPolicy{}
}

// Evaluate checks a proposed order total against the customer's balances and
// the tier policy. A nil tier means no policy applies.
func (p CreditPolicy) Evaluate(cust *customer.Customer, tier *customer.Tier, total decimal.Decimal) error {
	if err := cust.Validate(); err != nil {
		return err
	}

	if total.IsNegative() {
		return errs.NewValueIsInvalidErrorWithCause(
			"total",
			fmt.Errorf("%s is negative", total),
		)
	}

	if tier == nil {
		return nil
	}

	if err := tier.Validate(); err != nil {
		return err
	}

	if !tier.CreditAllowed() && cust.CreditBalance().LessThan(total) {
		return errs.NewCreditNotAllowedError(
			cust.ID().String(),
			total.String(),
			cust.CreditBalance().String(),
		)
	}

	if limit := tier.CreditLimit(); limit != nil && cust.DebtBalance().Add(total).GreaterThan(*limit) {
		return errs.NewCreditLimitExceededError(
			cust.ID().String(),
			cust.DebtBalance().String(),
			total.String(),
			limit.String(),
		)
	}

	if maxAmount := tier.MaxOrderAmount(); maxAmount != nil && total.GreaterThan(*maxAmount) {
		return errs.NewMaxOrderExceededError(total.String(), maxAmount.String())
	}

	return nil
}
