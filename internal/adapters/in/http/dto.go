package http

import (
	"time"

	"distribution/internal/core/application/usecases/commands"
	"distribution/internal/core/application/usecases/queries"
	"distribution/internal/core/domain/model/order"

	"github.com/shopspring/decimal"
)

// Request bodies.

type createOrderRequest struct {
	CustomerID            string             `json:"customer_id"`
	SalesRepID            *string            `json:"sales_rep_id,omitempty"`
	Items                 []orderItemRequest `json:"items"`
	Amounts               amountsRequest     `json:"amounts"`
	Notes                 string             `json:"notes,omitempty"`
	RequestedDeliveryDate *time.Time         `json:"requested_delivery_date,omitempty"`
}

type orderItemRequest struct {
	ProductID  string          `json:"product_id"`
	UnitPrice  decimal.Decimal `json:"unit_price"`
	QtyOrdered int             `json:"qty_ordered"`
	LineTotal  decimal.Decimal `json:"line_total"`
}

type amountsRequest struct {
	Subtotal decimal.Decimal `json:"subtotal"`
	Discount decimal.Decimal `json:"discount"`
	Tax      decimal.Decimal `json:"tax"`
	Total    decimal.Decimal `json:"total"`
}

type changeStatusRequest struct {
	Status string `json:"status"`
	Notes  string `json:"notes,omitempty"`
}

type cancelOrderRequest struct {
	Reason string `json:"reason,omitempty"`
}

type recordPaymentRequest struct {
	PaymentStatus string `json:"payment_status"`
}

type batchStatusRequest struct {
	OrderIDs []string `json:"order_ids"`
	Status   string   `json:"status"`
	Notes    string   `json:"notes,omitempty"`
}

type batchDriverRequest struct {
	OrderIDs []string `json:"order_ids"`
	DriverID string   `json:"driver_id"`
}

type batchSalesRepRequest struct {
	OrderIDs   []string `json:"order_ids"`
	SalesRepID string   `json:"sales_rep_id"`
}

type batchCancelRequest struct {
	OrderIDs []string `json:"order_ids"`
	Reason   string   `json:"reason,omitempty"`
}

type batchPreviewRequest struct {
	OrderIDs  []string `json:"order_ids"`
	Operation string   `json:"operation"`
	Status    *string  `json:"status,omitempty"`
}

// Response bodies.

type orderSummaryResponse struct {
	ID            string          `json:"id"`
	OrderNumber   string          `json:"order_number"`
	CustomerID    string          `json:"customer_id"`
	SalesRepID    string          `json:"sales_rep_id"`
	DriverID      *string         `json:"driver_id,omitempty"`
	Status        string          `json:"status"`
	PaymentStatus string          `json:"payment_status"`
	Total         decimal.Decimal `json:"total"`
	CreatedAt     time.Time       `json:"created_at"`
}

type orderListResponse struct {
	Orders   []orderSummaryResponse `json:"orders"`
	Total    int64                  `json:"total"`
	Page     int                    `json:"page"`
	PageSize int                    `json:"page_size"`
}

type orderDetailsResponse struct {
	ID                    string                 `json:"id"`
	OrderNumber           string                 `json:"order_number"`
	CustomerID            string                 `json:"customer_id"`
	SalesRepID            string                 `json:"sales_rep_id"`
	DriverID              *string                `json:"driver_id,omitempty"`
	CreatedBy             string                 `json:"created_by"`
	Status                string                 `json:"status"`
	PaymentStatus         string                 `json:"payment_status"`
	Subtotal              decimal.Decimal        `json:"subtotal"`
	Discount              decimal.Decimal        `json:"discount"`
	Tax                   decimal.Decimal        `json:"tax"`
	Total                 decimal.Decimal        `json:"total"`
	Notes                 string                 `json:"notes,omitempty"`
	RequestedDeliveryDate *time.Time             `json:"requested_delivery_date,omitempty"`
	CreatedAt             time.Time              `json:"created_at"`
	DeliveredAt           *time.Time             `json:"delivered_at,omitempty"`
	CancelledAt           *time.Time             `json:"cancelled_at,omitempty"`
	CancelledBy           *string                `json:"cancelled_by,omitempty"`
	CancelReason          string                 `json:"cancel_reason,omitempty"`
	Items                 []orderItemResponse    `json:"items"`
	History               []orderHistoryResponse `json:"history"`
}

type orderItemResponse struct {
	ID           string          `json:"id"`
	ProductID    string          `json:"product_id"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	QtyOrdered   int             `json:"qty_ordered"`
	QtyPicked    int             `json:"qty_picked"`
	QtyDelivered int             `json:"qty_delivered"`
	LineTotal    decimal.Decimal `json:"line_total"`
}

type orderHistoryResponse struct {
	FromStatus *string   `json:"from_status,omitempty"`
	ToStatus   string    `json:"to_status"`
	ChangedBy  string    `json:"changed_by"`
	Notes      string    `json:"notes,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

type batchResultResponse struct {
	Processed int                       `json:"processed"`
	Succeeded int                       `json:"succeeded"`
	Failed    int                       `json:"failed"`
	Results   []batchItemResultResponse `json:"results"`
}

type batchItemResultResponse struct {
	OrderID        string  `json:"order_id"`
	Success        bool    `json:"success"`
	PreviousStatus *string `json:"previous_status,omitempty"`
	ErrorCode      string  `json:"error_code,omitempty"`
	Error          string  `json:"error,omitempty"`
}

type batchPreviewResponse struct {
	Eligible   int                        `json:"eligible"`
	Ineligible int                        `json:"ineligible"`
	Results    []batchPreviewItemResponse `json:"results"`
}

type batchPreviewItemResponse struct {
	OrderID       string  `json:"order_id"`
	Eligible      bool    `json:"eligible"`
	CurrentStatus *string `json:"current_status,omitempty"`
	ErrorCode     string  `json:"error_code,omitempty"`
	Reason        string  `json:"reason,omitempty"`
}

// Mapping helpers.

func toOrderDetailsResponse(details queries.OrderDetailsResponse) orderDetailsResponse {
	resp := orderDetailsResponse{
		ID:                    details.ID.String(),
		OrderNumber:           details.OrderNumber,
		CustomerID:            details.CustomerID.String(),
		SalesRepID:            details.SalesRepID.String(),
		CreatedBy:             details.CreatedBy.String(),
		Status:                details.Status.String(),
		PaymentStatus:         details.PaymentStatus.String(),
		Subtotal:              details.Subtotal,
		Discount:              details.Discount,
		Tax:                   details.Tax,
		Total:                 details.Total,
		Notes:                 details.Notes,
		RequestedDeliveryDate: details.RequestedDeliveryDate,
		CreatedAt:             details.CreatedAt,
		DeliveredAt:           details.DeliveredAt,
		CancelledAt:           details.CancelledAt,
		CancelReason:          details.CancelReason,
		Items:                 make([]orderItemResponse, 0, len(details.Items)),
		History:               make([]orderHistoryResponse, 0, len(details.History)),
	}

	if details.DriverID != nil {
		s := details.DriverID.String()
		resp.DriverID = &s
	}
	if details.CancelledBy != nil {
		s := details.CancelledBy.String()
		resp.CancelledBy = &s
	}

	for _, item := range details.Items {
		resp.Items = append(resp.Items, orderItemResponse{
			ID:           item.ID.String(),
			ProductID:    item.ProductID.String(),
			UnitPrice:    item.UnitPrice,
			QtyOrdered:   item.QtyOrdered,
			QtyPicked:    item.QtyPicked,
			QtyDelivered: item.QtyDelivered,
			LineTotal:    item.LineTotal,
		})
	}

	for _, entry := range details.History {
		historyResp := orderHistoryResponse{
			ToStatus:   entry.ToStatus.String(),
			ChangedBy:  entry.ChangedBy.String(),
			Notes:      entry.Notes,
			OccurredAt: entry.OccurredAt,
		}
		if entry.FromStatus != nil {
			s := entry.FromStatus.String()
			historyResp.FromStatus = &s
		}
		resp.History = append(resp.History, historyResp)
	}

	return resp
}

func toOrderSummaryResponse(summary queries.OrderSummaryResponse) orderSummaryResponse {
	resp := orderSummaryResponse{
		ID:            summary.ID.String(),
		OrderNumber:   summary.OrderNumber,
		CustomerID:    summary.CustomerID.String(),
		SalesRepID:    summary.SalesRepID.String(),
		Status:        summary.Status.String(),
		PaymentStatus: summary.PaymentStatus.String(),
		Total:         summary.Total,
		CreatedAt:     summary.CreatedAt,
	}
	if summary.DriverID != nil {
		s := summary.DriverID.String()
		resp.DriverID = &s
	}
	return resp
}

func toCreatedOrderResponse(o *order.Order) orderSummaryResponse {
	return orderSummaryResponse{
		ID:            o.ID().String(),
		OrderNumber:   o.OrderNumber(),
		CustomerID:    o.CustomerID().String(),
		SalesRepID:    o.SalesRepID().String(),
		Status:        o.Status().String(),
		PaymentStatus: o.PaymentStatus().String(),
		Total:         o.Amounts().Total(),
		CreatedAt:     o.CreatedAt(),
	}
}

func toBatchResultResponse(result commands.BatchResult) batchResultResponse {
	resp := batchResultResponse{
		Processed: result.Processed,
		Succeeded: result.Succeeded,
		Failed:    result.Failed,
		Results:   make([]batchItemResultResponse, 0, len(result.Results)),
	}

	for _, item := range result.Results {
		itemResp := batchItemResultResponse{
			OrderID:   item.OrderID.String(),
			Success:   item.Success,
			ErrorCode: item.ErrorCode,
			Error:     item.Error,
		}
		if item.PreviousStatus != nil {
			s := item.PreviousStatus.String()
			itemResp.PreviousStatus = &s
		}
		resp.Results = append(resp.Results, itemResp)
	}

	return resp
}

func toBatchPreviewResponse(preview queries.BatchPreviewResponse) batchPreviewResponse {
	resp := batchPreviewResponse{
		Eligible:   preview.Eligible,
		Ineligible: preview.Ineligible,
		Results:    make([]batchPreviewItemResponse, 0, len(preview.Results)),
	}

	for _, item := range preview.Results {
		itemResp := batchPreviewItemResponse{
			OrderID:   item.OrderID.String(),
			Eligible:  item.Eligible,
			ErrorCode: item.ErrorCode,
			Reason:    item.Reason,
		}
		if item.CurrentStatus != nil {
			s := item.CurrentStatus.String()
			itemResp.CurrentStatus = &s
		}
		resp.Results = append(resp.Results, itemResp)
	}

	return resp
}
