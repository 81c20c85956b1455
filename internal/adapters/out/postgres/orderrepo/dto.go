// Package orderrepo provides data transfer objects and mapping functions for order persistence.
// This package implements the repository pattern for the order domain aggregate, handling
// the conversion between domain entities and database representations.
package orderrepo

import (
	"time"

	"distribution/internal/core/domain/model/kernel"
	"distribution/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderDTO represents the database structure for persisting order aggregates.
// Line items and status history live in child tables keyed by order id; both
// are written through the aggregate and never mutated directly.
type OrderDTO struct {
	ID            uuid.UUID  `gorm:"type:uuid;primaryKey"`
	TenantID      uuid.UUID  `gorm:"type:uuid;index:idx_orders_tenant_created,priority:1;uniqueIndex:idx_orders_tenant_number,priority:1"`
	OrderNumber   string     `gorm:"type:varchar(32);uniqueIndex:idx_orders_tenant_number,priority:2"`
	CustomerID    uuid.UUID  `gorm:"type:uuid;index"`
	SalesRepID    uuid.UUID  `gorm:"type:uuid;index"`
	CreatedBy     uuid.UUID  `gorm:"type:uuid;index"`
	DriverID      *uuid.UUID `gorm:"type:uuid;index"`
	Status        string     `gorm:"type:varchar(16);index"`
	PaymentStatus string     `gorm:"type:varchar(16)"`

	Subtotal decimal.Decimal `gorm:"type:numeric(14,2)"`
	Discount decimal.Decimal `gorm:"type:numeric(14,2)"`
	Tax      decimal.Decimal `gorm:"type:numeric(14,2)"`
	Total    decimal.Decimal `gorm:"type:numeric(14,2)"`

	Notes                 string `gorm:"type:text"`
	RequestedDeliveryDate *time.Time
	CreatedAt             time.Time `gorm:"index:idx_orders_tenant_created,priority:2"`
	DeliveredAt           *time.Time
	CancelledAt           *time.Time
	CancelledBy           *uuid.UUID `gorm:"type:uuid"`
	CancelReason          string     `gorm:"type:text"`

	Items   []ItemDTO    `gorm:"foreignKey:OrderID;references:ID"`
	History []HistoryDTO `gorm:"foreignKey:OrderID;references:ID"`
}

// TableName specifies the database table name for order entities.
func (OrderDTO) TableName() string {
	return "orders"
}

// ItemDTO represents one order line in the database.
type ItemDTO struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey"`
	OrderID      uuid.UUID       `gorm:"type:uuid;index"`
	ProductID    uuid.UUID       `gorm:"type:uuid;index"`
	UnitPrice    decimal.Decimal `gorm:"type:numeric(14,2)"`
	QtyOrdered   int
	QtyPicked    int
	QtyDelivered int
	LineTotal    decimal.Decimal `gorm:"type:numeric(14,2)"`
}

// TableName specifies the database table name for order line items.
func (ItemDTO) TableName() string {
	return "order_items"
}

// HistoryDTO represents one status history entry in the database.
// Rows are append-only; FromStatus is null for the creation entry.
type HistoryDTO struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID    uuid.UUID `gorm:"type:uuid;index"`
	FromStatus *string   `gorm:"type:varchar(16)"`
	ToStatus   string    `gorm:"type:varchar(16)"`
	ChangedBy  uuid.UUID `gorm:"type:uuid"`
	Notes      string    `gorm:"type:text"`
	OccurredAt time.Time
}

// TableName specifies the database table name for order status history.
func (HistoryDTO) TableName() string {
	return "order_status_history"
}

// fromDomain converts an order domain aggregate to its database representation,
// including child rows for items and history.
func fromDomain(aggregate *order.Order) OrderDTO {
	dto := OrderDTO{
		ID:            aggregate.ID().Bytes(),
		TenantID:      aggregate.TenantID().Bytes(),
		OrderNumber:   aggregate.OrderNumber(),
		CustomerID:    aggregate.CustomerID().Bytes(),
		SalesRepID:    aggregate.SalesRepID().Bytes(),
		CreatedBy:     aggregate.CreatedBy().Bytes(),
		DriverID:      optionalID(aggregate.DriverID()),
		Status:        aggregate.Status().String(),
		PaymentStatus: aggregate.PaymentStatus().String(),

		Subtotal: aggregate.Amounts().Subtotal(),
		Discount: aggregate.Amounts().Discount(),
		Tax:      aggregate.Amounts().Tax(),
		Total:    aggregate.Amounts().Total(),

		Notes:                 aggregate.Notes(),
		RequestedDeliveryDate: aggregate.RequestedDeliveryDate(),
		CreatedAt:             aggregate.CreatedAt(),
		DeliveredAt:           aggregate.DeliveredAt(),
		CancelledAt:           aggregate.CancelledAt(),
		CancelledBy:           optionalID(aggregate.CancelledBy()),
		CancelReason:          aggregate.CancelReason(),
	}

	for _, item := range aggregate.Items() {
		dto.Items = append(dto.Items, ItemDTO{
			ID:           item.ID().Bytes(),
			OrderID:      dto.ID,
			ProductID:    item.ProductID().Bytes(),
			UnitPrice:    item.UnitPrice(),
			QtyOrdered:   item.QtyOrdered(),
			QtyPicked:    item.QtyPicked(),
			QtyDelivered: item.QtyDelivered(),
			LineTotal:    item.LineTotal(),
		})
	}

	for _, entry := range aggregate.History() {
		var fromStatus *string
		if from := entry.FromStatus(); from != nil {
			s := from.String()
			fromStatus = &s
		}
		dto.History = append(dto.History, HistoryDTO{
			ID:         entry.ID().Bytes(),
			OrderID:    dto.ID,
			FromStatus: fromStatus,
			ToStatus:   entry.ToStatus().String(),
			ChangedBy:  entry.ChangedBy().Bytes(),
			Notes:      entry.Notes(),
			OccurredAt: entry.OccurredAt(),
		})
	}

	return dto
}

// toDomain converts a database DTO to an order domain aggregate.
// Reconstructs the complete aggregate including child rows using RestoreOrder.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	tenantID, err := kernel.UUIDFromBytes(dto.TenantID[:])
	if err != nil {
		return nil, err
	}
	customerID, err := kernel.UUIDFromBytes(dto.CustomerID[:])
	if err != nil {
		return nil, err
	}
	salesRepID, err := kernel.UUIDFromBytes(dto.SalesRepID[:])
	if err != nil {
		return nil, err
	}
	createdBy, err := kernel.UUIDFromBytes(dto.CreatedBy[:])
	if err != nil {
		return nil, err
	}
	driverID, err := restoreOptionalID(dto.DriverID)
	if err != nil {
		return nil, err
	}
	cancelledBy, err := restoreOptionalID(dto.CancelledBy)
	if err != nil {
		return nil, err
	}

	status, err := order.StatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}
	paymentStatus, err := order.PaymentStatusFromString(dto.PaymentStatus)
	if err != nil {
		return nil, err
	}
	amounts, err := order.NewAmounts(dto.Subtotal, dto.Discount, dto.Tax, dto.Total)
	if err != nil {
		return nil, err
	}

	items := make([]*order.Item, 0, len(dto.Items))
	for _, itemDTO := range dto.Items {
		item, itemErr := itemToDomain(itemDTO)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	history := make([]*order.HistoryEntry, 0, len(dto.History))
	for _, historyDTO := range dto.History {
		entry, entryErr := historyToDomain(historyDTO)
		if entryErr != nil {
			return nil, entryErr
		}
		history = append(history, entry)
	}

	return order.RestoreOrder(order.RestoreOrderParams{
		ID:                    id,
		TenantID:              tenantID,
		OrderNumber:           dto.OrderNumber,
		CustomerID:            customerID,
		SalesRepID:            salesRepID,
		CreatedBy:             createdBy,
		DriverID:              driverID,
		Status:                status,
		PaymentStatus:         paymentStatus,
		Amounts:               amounts,
		Notes:                 dto.Notes,
		RequestedDeliveryDate: dto.RequestedDeliveryDate,
		CreatedAt:             dto.CreatedAt,
		DeliveredAt:           dto.DeliveredAt,
		CancelledAt:           dto.CancelledAt,
		CancelledBy:           cancelledBy,
		CancelReason:          dto.CancelReason,
		Items:                 items,
		History:               history,
	})
}

func itemToDomain(dto ItemDTO) (*order.Item, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	productID, err := kernel.UUIDFromBytes(dto.ProductID[:])
	if err != nil {
		return nil, err
	}

	return order.RestoreItem(
		id, productID, dto.UnitPrice,
		dto.QtyOrdered, dto.QtyPicked, dto.QtyDelivered,
		dto.LineTotal,
	)
}

func historyToDomain(dto HistoryDTO) (*order.HistoryEntry, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	changedBy, err := kernel.UUIDFromBytes(dto.ChangedBy[:])
	if err != nil {
		return nil, err
	}

	var fromStatus *order.Status
	if dto.FromStatus != nil {
		from, fromErr := order.StatusFromString(*dto.FromStatus)
		if fromErr != nil {
			return nil, fromErr
		}
		fromStatus = &from
	}
	toStatus, err := order.StatusFromString(dto.ToStatus)
	if err != nil {
		return nil, err
	}

	return order.NewHistoryEntry(id, fromStatus, toStatus, changedBy, dto.Notes, dto.OccurredAt)
}

func optionalID(id *kernel.UUID) *uuid.UUID {
	if id == nil {
		return nil
	}
	raw := id.Bytes()
	return &raw
}

func restoreOptionalID(raw *uuid.UUID) (*kernel.UUID, error) {
	if raw == nil {
		return nil, nil
	}
	id, err := kernel.UUIDFromBytes((*raw)[:])
	if err != nil {
		return nil, err
	}
	return &id, nil
}
