package queries

import (
	"context"

	"distribution/internal/core/domain/model/kernel"
	"distribution/internal/core/domain/model/order"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ListOrdersQueryHandler pages through orders matching a filter. The count
// and the page run against the same predicate so Total always agrees with
// the rows returned.
type ListOrdersQueryHandler struct {
	db *gorm.DB
}

// NewListOrdersQueryHandler creates a handler for order listings.
func NewListOrdersQueryHandler(db *gorm.DB) ListOrdersQueryHandler {
	return ListOrdersQueryHandler{db: db}
}

// Handle returns the requested page, newest orders first. A page past the
// end of the result set returns an empty slice with the true Total.
func (h ListOrdersQueryHandler) Handle(
	ctx context.Context,
	query ListOrdersQuery,
) (OrderListResponse, error) {
	if err := query.Validate(); err != nil {
		return OrderListResponse{}, err
	}

	whereSQL, args := listPredicate(query)

	var total int64
	err := h.db.WithContext(ctx).
		Raw("SELECT count(*) FROM orders"+whereSQL, args...).
		Scan(&total).Error
	if err != nil {
		return OrderListResponse{}, err
	}

	offset := (query.Page() - 1) * query.PageSize()
	pageArgs := append(args, query.PageSize(), offset)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			order_number,
			customer_id,
			sales_rep_id,
			driver_id,
			status,
			payment_status,
			total,
			created_at
		FROM orders`+whereSQL+`
		ORDER BY created_at DESC, id DESC
		LIMIT ? OFFSET ?`,
		pageArgs...,
	).Rows()
	if err != nil {
		return OrderListResponse{}, err
	}
	defer rows.Close()

	orders := make([]OrderSummaryResponse, 0, query.PageSize())
	for rows.Next() {
		var (
			id, customerID, salesRepID  uuid.UUID
			driverID                    uuid.NullUUID
			statusRaw, paymentStatusRaw string
			summary                     OrderSummaryResponse
		)

		err = rows.Scan(
			&id,
			&summary.OrderNumber,
			&customerID,
			&salesRepID,
			&driverID,
			&statusRaw,
			&paymentStatusRaw,
			&summary.Total,
			&summary.CreatedAt,
		)
		if err != nil {
			return OrderListResponse{}, err
		}

		summary.ID, err = kernel.UUIDFromBytes(id[:])
		if err != nil {
			return OrderListResponse{}, err
		}
		summary.CustomerID, err = kernel.UUIDFromBytes(customerID[:])
		if err != nil {
			return OrderListResponse{}, err
		}
		summary.SalesRepID, err = kernel.UUIDFromBytes(salesRepID[:])
		if err != nil {
			return OrderListResponse{}, err
		}
		summary.DriverID, err = optionalUUID(driverID)
		if err != nil {
			return OrderListResponse{}, err
		}
		summary.Status, err = order.StatusFromString(statusRaw)
		if err != nil {
			return OrderListResponse{}, err
		}
		summary.PaymentStatus, err = order.PaymentStatusFromString(paymentStatusRaw)
		if err != nil {
			return OrderListResponse{}, err
		}

		orders = append(orders, summary)
	}

	if err = rows.Err(); err != nil {
		return OrderListResponse{}, err
	}

	return OrderListResponse{
		Orders:   orders,
		Total:    total,
		Page:     query.Page(),
		PageSize: query.PageSize(),
	}, nil
}

// listPredicate builds the shared WHERE clause for the count and page
// queries: tenant scope, role scope, then the optional filters.
func listPredicate(query ListOrdersQuery) (string, []any) {
	whereSQL := " WHERE tenant_id = ?"
	args := []any{query.Actor().TenantID().Bytes()}

	scopeSQL, scopeArgs := roleScope(query.Actor())
	whereSQL += scopeSQL
	args = append(args, scopeArgs...)

	filter := query.Filter()
	if filter.Status != nil {
		whereSQL += " AND status = ?"
		args = append(args, filter.Status.String())
	}
	if filter.CustomerID != nil {
		whereSQL += " AND customer_id = ?"
		args = append(args, filter.CustomerID.Bytes())
	}
	if filter.DriverID != nil {
		whereSQL += " AND driver_id = ?"
		args = append(args, filter.DriverID.Bytes())
	}
	if filter.CreatedFrom != nil {
		whereSQL += " AND created_at >= ?"
		args = append(args, *filter.CreatedFrom)
	}
	if filter.CreatedTo != nil {
		whereSQL += " AND created_at < ?"
		args = append(args, *filter.CreatedTo)
	}

	return whereSQL, args
}
