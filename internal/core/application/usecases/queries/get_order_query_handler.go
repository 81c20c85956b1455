package queries

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"distribution/internal/core/domain/model/kernel"
	"distribution/internal/core/domain/model/order"
	"distribution/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetOrderQueryHandler reads one order with items and history from the
// database. The read model is assembled from raw rows rather than the
// aggregate, so the query side never takes row locks.
type GetOrderQueryHandler struct {
	db *gorm.DB
}

// NewGetOrderQueryHandler creates a handler for single order lookups.
func NewGetOrderQueryHandler(db *gorm.DB) GetOrderQueryHandler {
	return GetOrderQueryHandler{db: db}
}

// Handle fetches the order identified by the query within the actor's role
// scope. Returns ObjectNotFoundError when no visible row matches, which
// covers both a missing order and an order the actor may not see.
func (h GetOrderQueryHandler) Handle(
	ctx context.Context,
	query GetOrderQuery,
) (OrderDetailsResponse, error) {
	if err := query.Validate(); err != nil {
		return OrderDetailsResponse{}, err
	}

	scopeSQL, scopeArgs := roleScope(query.Actor())
	args := append([]any{
		query.OrderID().Bytes(),
		query.Actor().TenantID().Bytes(),
	}, scopeArgs...)

	row := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			order_number,
			customer_id,
			sales_rep_id,
			driver_id,
			created_by,
			status,
			payment_status,
			subtotal,
			discount,
			tax,
			total,
			notes,
			requested_delivery_date,
			created_at,
			delivered_at,
			cancelled_at,
			cancelled_by,
			cancel_reason
		FROM orders
		WHERE id = ? AND tenant_id = ?`+scopeSQL,
		args...,
	).Row()

	details, err := scanOrderDetails(row)
	if errors.Is(err, sql.ErrNoRows) {
		return OrderDetailsResponse{}, errs.NewObjectNotFoundError("order", query.OrderID())
	}
	if err != nil {
		return OrderDetailsResponse{}, err
	}

	details.Items, err = h.loadItems(ctx, query.OrderID())
	if err != nil {
		return OrderDetailsResponse{}, err
	}

	details.History, err = h.loadHistory(ctx, query.OrderID())
	if err != nil {
		return OrderDetailsResponse{}, err
	}

	return details, nil
}

func scanOrderDetails(row *sql.Row) (OrderDetailsResponse, error) {
	var (
		id, customerID, salesRepID, createdBy uuid.UUID
		driverID, cancelledBy                 uuid.NullUUID
		statusRaw, paymentStatusRaw           string
		notes, cancelReason                   sql.NullString
		requestedDeliveryDate                 sql.NullTime
		deliveredAt, cancelledAt              sql.NullTime
		details                               OrderDetailsResponse
	)

	err := row.Scan(
		&id,
		&details.OrderNumber,
		&customerID,
		&salesRepID,
		&driverID,
		&createdBy,
		&statusRaw,
		&paymentStatusRaw,
		&details.Subtotal,
		&details.Discount,
		&details.Tax,
		&details.Total,
		&notes,
		&requestedDeliveryDate,
		&details.CreatedAt,
		&deliveredAt,
		&cancelledAt,
		&cancelledBy,
		&cancelReason,
	)
	if err != nil {
		return OrderDetailsResponse{}, err
	}

	details.ID, err = kernel.UUIDFromBytes(id[:])
	if err != nil {
		return OrderDetailsResponse{}, err
	}
	details.CustomerID, err = kernel.UUIDFromBytes(customerID[:])
	if err != nil {
		return OrderDetailsResponse{}, err
	}
	details.SalesRepID, err = kernel.UUIDFromBytes(salesRepID[:])
	if err != nil {
		return OrderDetailsResponse{}, err
	}
	details.CreatedBy, err = kernel.UUIDFromBytes(createdBy[:])
	if err != nil {
		return OrderDetailsResponse{}, err
	}
	details.DriverID, err = optionalUUID(driverID)
	if err != nil {
		return OrderDetailsResponse{}, err
	}
	details.CancelledBy, err = optionalUUID(cancelledBy)
	if err != nil {
		return OrderDetailsResponse{}, err
	}

	details.Status, err = order.StatusFromString(statusRaw)
	if err != nil {
		return OrderDetailsResponse{}, err
	}
	details.PaymentStatus, err = order.PaymentStatusFromString(paymentStatusRaw)
	if err != nil {
		return OrderDetailsResponse{}, err
	}

	details.Notes = notes.String
	details.CancelReason = cancelReason.String
	details.RequestedDeliveryDate = optionalTime(requestedDeliveryDate)
	details.DeliveredAt = optionalTime(deliveredAt)
	details.CancelledAt = optionalTime(cancelledAt)

	return details, nil
}

func (h GetOrderQueryHandler) loadItems(
	ctx context.Context,
	orderID kernel.UUID,
) ([]OrderItemResponse, error) {
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			product_id,
			unit_price,
			qty_ordered,
			qty_picked,
			qty_delivered,
			line_total
		FROM order_items
		WHERE order_id = ?
		ORDER BY id`,
		orderID.Bytes(),
	).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]OrderItemResponse, 0)
	for rows.Next() {
		var (
			id, productID uuid.UUID
			item          OrderItemResponse
		)

		err = rows.Scan(
			&id,
			&productID,
			&item.UnitPrice,
			&item.QtyOrdered,
			&item.QtyPicked,
			&item.QtyDelivered,
			&item.LineTotal,
		)
		if err != nil {
			return nil, err
		}

		item.ID, err = kernel.UUIDFromBytes(id[:])
		if err != nil {
			return nil, err
		}
		item.ProductID, err = kernel.UUIDFromBytes(productID[:])
		if err != nil {
			return nil, err
		}

		items = append(items, item)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return items, nil
}

func (h GetOrderQueryHandler) loadHistory(
	ctx context.Context,
	orderID kernel.UUID,
) ([]OrderHistoryResponse, error) {
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			from_status,
			to_status,
			changed_by,
			notes,
			occurred_at
		FROM order_status_history
		WHERE order_id = ?
		ORDER BY occurred_at, id`,
		orderID.Bytes(),
	).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	history := make([]OrderHistoryResponse, 0)
	for rows.Next() {
		var (
			id, changedBy uuid.UUID
			fromRaw       sql.NullString
			toRaw         string
			notes         sql.NullString
			entry         OrderHistoryResponse
		)

		err = rows.Scan(
			&id,
			&fromRaw,
			&toRaw,
			&changedBy,
			&notes,
			&entry.OccurredAt,
		)
		if err != nil {
			return nil, err
		}

		entry.ID, err = kernel.UUIDFromBytes(id[:])
		if err != nil {
			return nil, err
		}
		entry.ChangedBy, err = kernel.UUIDFromBytes(changedBy[:])
		if err != nil {
			return nil, err
		}

		if fromRaw.Valid {
			from, fromErr := order.StatusFromString(fromRaw.String)
			if fromErr != nil {
				return nil, fromErr
			}
			entry.FromStatus = &from
		}
		entry.ToStatus, err = order.StatusFromString(toRaw)
		if err != nil {
			return nil, err
		}
		entry.Notes = notes.String

		history = append(history, entry)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return history, nil
}

func optionalUUID(v uuid.NullUUID) (*kernel.UUID, error) {
	if !v.Valid {
		return nil, nil
	}
	id, err := kernel.UUIDFromBytes(v.UUID[:])
	if err != nil {
		return nil, err
	}
	return &id, nil
}

func optionalTime(v sql.NullTime) *time.Time {
	if !v.Valid {
		return nil
	}
	t := v.Time
	return &t
}
