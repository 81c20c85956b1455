package queries

import (
	"errors"
	"time"

	"distribution/internal/core/domain/model/kernel"
	"distribution/internal/core/domain/model/order"
	"distribution/internal/pkg/errs"
	"distribution/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var (
	ErrListOrdersQueryIsNotConstructed = errors.New(
		"ListOrdersQuery must be created via NewListOrdersQuery constructor",
	)
)

// Pagination bounds for order listings.
const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// ListOrdersFilter narrows an order listing. Nil fields are ignored.
// CreatedFrom/CreatedTo bound created_at inclusively from below and
// exclusively from above.
type ListOrdersFilter struct {
	Status      *order.Status
	CustomerID  *kernel.UUID
	DriverID    *kernel.UUID
	CreatedFrom *time.Time
	CreatedTo   *time.Time
}

// ListOrdersQuery retrieves a page of orders matching the filter, newest
// first. Listings are tenant-scoped and role-scoped the same way as single
// order lookups: sales reps list only orders they created, drivers only
// orders assigned to them.
//
// Example:
//
//	status := order.StatusPending
//	query, err := queries.NewListOrdersQuery(actor, queries.ListOrdersFilter{
//	    Status: &status,
//	}, 1, 50)
//	if err != nil {
//	    return err
//	}
//
//	page, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return err
//	}
//	fmt.Printf("%d of %d pending orders\n", len(page.Orders), page.Total)
type ListOrdersQuery struct {
	actor    kernel.Actor
	filter   ListOrdersFilter
	page     int
	pageSize int

	guard guard.ConstructorGuard
}

// NewListOrdersQuery creates a listing query. Page numbering starts at 1;
// a zero pageSize falls back to DefaultPageSize, anything above MaxPageSize
// is rejected.
func NewListOrdersQuery(
	actor kernel.Actor,
	filter ListOrdersFilter,
	page int,
	pageSize int,
) (ListOrdersQuery, error) {
	if err := actor.Validate(); err != nil {
		return ListOrdersQuery{}, err
	}

	if page < 1 {
		return ListOrdersQuery{}, errs.NewValueIsOutOfRangeError("page", page, 1, nil)
	}
	if pageSize == 0 {
		pageSize = DefaultPageSize
	}
	if pageSize < 1 || pageSize > MaxPageSize {
		return ListOrdersQuery{}, errs.NewValueIsOutOfRangeError("pageSize", pageSize, 1, MaxPageSize)
	}

	if filter.Status != nil {
		if err := filter.Status.Validate(); err != nil {
			return ListOrdersQuery{}, err
		}
	}
	if filter.CustomerID != nil {
		if err := filter.CustomerID.Validate(); err != nil {
			return ListOrdersQuery{}, errs.NewValueIsInvalidErrorWithCause("customerID", err)
		}
	}
	if filter.DriverID != nil {
		if err := filter.DriverID.Validate(); err != nil {
			return ListOrdersQuery{}, errs.NewValueIsInvalidErrorWithCause("driverID", err)
		}
	}
	if filter.CreatedFrom != nil && filter.CreatedTo != nil &&
		filter.CreatedTo.Before(*filter.CreatedFrom) {
		return ListOrdersQuery{}, errs.NewValueIsInvalidError("createdTo precedes createdFrom")
	}

	return ListOrdersQuery{
		actor:    actor,
		filter:   filter,
		page:     page,
		pageSize: pageSize,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q ListOrdersQuery) Validate() error {
	return q.guard.Validate(ErrListOrdersQueryIsNotConstructed)
}

// Actor returns the identity the query runs on behalf of.
func (q ListOrdersQuery) Actor() kernel.Actor {
	return q.actor
}

// Filter returns the listing filter.
func (q ListOrdersQuery) Filter() ListOrdersFilter {
	return q.filter
}

// Page returns the 1-based page number.
func (q ListOrdersQuery) Page() int {
	return q.page
}

// PageSize returns the number of orders per page.
func (q ListOrdersQuery) PageSize() int {
	return q.pageSize
}

// OrderListResponse is one page of an order listing plus the total match
// count for pagination controls.
type OrderListResponse struct {
	Orders   []OrderSummaryResponse
	Total    int64
	Page     int
	PageSize int
}

// OrderSummaryResponse is the listing row read model: header fields only,
// no items or history.
type OrderSummaryResponse struct {
	ID            kernel.UUID
	OrderNumber   string
	CustomerID    kernel.UUID
	SalesRepID    kernel.UUID
	DriverID      *kernel.UUID
	Status        order.Status
	PaymentStatus order.PaymentStatus
	Total         decimal.Decimal
	CreatedAt     time.Time
}
