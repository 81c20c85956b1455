package services

import (
	"fmt"
	"time"

	"distribution/internal/core/domain/model/tenant"
	"distribution/internal/pkg/errs"
)

// OrderNumberGenerator is a domain service that produces the human-readable
// order number: {tenant prefix}{daily sequence, two digits}{HHMM}.
//
// The daily sequence counts orders the tenant already created since local
// midnight, resolved in the tenant's configured timezone, plus one. The
// number is not collision-proof under concurrent creation in the same
// minute; it is a secondary human identifier, never the primary key.
type OrderNumberGenerator struct{}

// NewOrderNumberGenerator creates a new OrderNumberGenerator instance.
func NewOrderNumberGenerator() OrderNumberGenerator {
	return OrderNumberGenerator{}
}

// Generate builds the order number for the (priorCount+1)-th order of the
// tenant's local day at the given instant. The sequence widens past two
// digits when a tenant exceeds 99 daily orders.
func (g OrderNumberGenerator) Generate(tn *tenant.Tenant, priorCount int, now time.Time) (string, error) {
	if err := tn.Validate(); err != nil {
		return "", err
	}

	if priorCount < 0 {
		return "", errs.NewValueIsInvalidErrorWithCause(
			"priorCount",
			fmt.Errorf("%d is less than 0", priorCount),
		)
	}

	local := now.In(tn.Location())
	return fmt.Sprintf("%s%02d%s", tn.OrderPrefix(), priorCount+1, local.Format("1504")), nil
}

// StartOfDay returns the instant the tenant's local day containing now
// began. Orders created at or after this instant belong to today's
// sequence.
func (g OrderNumberGenerator) StartOfDay(tn *tenant.Tenant, now time.Time) (time.Time, error) {
	if err := tn.Validate(); err != nil {
		return time.Time{}, err
	}

	local := now.In(tn.Location())
	year, month, day := local.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, tn.Location()), nil
}
