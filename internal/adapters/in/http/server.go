package http

import (
	"net/http"
	"strconv"
	"time"

	"distribution/internal/core/application/usecases/commands"
	"distribution/internal/core/application/usecases/queries"
	"distribution/internal/core/domain/model/kernel"
	"distribution/internal/core/domain/model/order"

	"github.com/labstack/echo/v4"
)

// Server coordinates between HTTP handlers and application use cases.
// Every route expects the calling identity in the X-User-Id, X-Tenant-Id
// and X-User-Role headers; an upstream gateway is responsible for
// authenticating them.
type Server struct {
	// Command handlers
	createOrderHandler   commands.CreateOrderCommandHandler
	changeStatusHandler  commands.ChangeOrderStatusCommandHandler
	cancelOrderHandler   commands.CancelOrderCommandHandler
	recordPaymentHandler commands.RecordPaymentCommandHandler
	batchOrdersHandler   commands.BatchOrdersCommandHandler

	// Query handlers
	getOrderHandler     queries.GetOrderQueryHandler
	listOrdersHandler   queries.ListOrdersQueryHandler
	previewBatchHandler queries.PreviewBatchQueryHandler
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	createOrderHandler commands.CreateOrderCommandHandler,
	changeStatusHandler commands.ChangeOrderStatusCommandHandler,
	cancelOrderHandler commands.CancelOrderCommandHandler,
	recordPaymentHandler commands.RecordPaymentCommandHandler,
	batchOrdersHandler commands.BatchOrdersCommandHandler,
	getOrderHandler queries.GetOrderQueryHandler,
	listOrdersHandler queries.ListOrdersQueryHandler,
	previewBatchHandler queries.PreviewBatchQueryHandler,
) *Server {
	return &Server{
		createOrderHandler:   createOrderHandler,
		changeStatusHandler:  changeStatusHandler,
		cancelOrderHandler:   cancelOrderHandler,
		recordPaymentHandler: recordPaymentHandler,
		batchOrdersHandler:   batchOrdersHandler,
		getOrderHandler:      getOrderHandler,
		listOrdersHandler:    listOrdersHandler,
		previewBatchHandler:  previewBatchHandler,
	}
}

// RegisterRoutes attaches all API routes to the given Echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", s.Health)

	api := e.Group("/api/v1")
	api.POST("/orders", s.CreateOrder)
	api.GET("/orders", s.ListOrders)
	api.GET("/orders/:orderId", s.GetOrder)
	api.POST("/orders/:orderId/status", s.ChangeOrderStatus)
	api.POST("/orders/:orderId/cancel", s.CancelOrder)
	api.POST("/orders/:orderId/payment", s.RecordPayment)
	api.POST("/orders/batch/status", s.BatchChangeStatus)
	api.POST("/orders/batch/driver", s.BatchAssignDriver)
	api.POST("/orders/batch/sales-rep", s.BatchAssignSalesRep)
	api.POST("/orders/batch/cancel", s.BatchCancel)
	api.POST("/orders/batch/preview", s.PreviewBatch)
}

// Health handles GET /health.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// CreateOrder handles POST /api/v1/orders - places a new order.
func (s *Server) CreateOrder(ctx echo.Context) error {
	actor, err := actorFromRequest(ctx)
	if err != nil {
		return writeBadRequest(ctx, err.Error())
	}

	var req createOrderRequest
	if err := ctx.Bind(&req); err != nil {
		return writeBadRequest(ctx, "invalid request body")
	}

	customerID, err := kernel.UUIDFromString(req.CustomerID)
	if err != nil {
		return writeBadRequest(ctx, "invalid customer_id")
	}

	var salesRepID *kernel.UUID
	if req.SalesRepID != nil {
		id, err := kernel.UUIDFromString(*req.SalesRepID)
		if err != nil {
			return writeBadRequest(ctx, "invalid sales_rep_id")
		}
		salesRepID = &id
	}

	items := make([]*order.Item, 0, len(req.Items))
	for _, itemReq := range req.Items {
		productID, err := kernel.UUIDFromString(itemReq.ProductID)
		if err != nil {
			return writeBadRequest(ctx, "invalid product_id")
		}

		item, err := order.NewItem(
			kernel.NewUUID(), productID, itemReq.UnitPrice, itemReq.QtyOrdered, itemReq.LineTotal)
		if err != nil {
			return writeError(ctx, err)
		}
		items = append(items, item)
	}

	amounts, err := order.NewAmounts(
		req.Amounts.Subtotal, req.Amounts.Discount, req.Amounts.Tax, req.Amounts.Total)
	if err != nil {
		return writeError(ctx, err)
	}

	cmd, err := commands.NewCreateOrderCommand(
		actor, customerID, salesRepID, items, amounts, req.Notes, req.RequestedDeliveryDate)
	if err != nil {
		return writeError(ctx, err)
	}

	placed, err := s.createOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, toCreatedOrderResponse(placed))
}

// ListOrders handles GET /api/v1/orders - lists orders for the caller's tenant.
func (s *Server) ListOrders(ctx echo.Context) error {
	actor, err := actorFromRequest(ctx)
	if err != nil {
		return writeBadRequest(ctx, err.Error())
	}

	filter, err := listFilterFromRequest(ctx)
	if err != nil {
		return writeBadRequest(ctx, err.Error())
	}

	page := 1
	if raw := ctx.QueryParam("page"); raw != "" {
		page, err = strconv.Atoi(raw)
		if err != nil {
			return writeBadRequest(ctx, "invalid page")
		}
	}

	pageSize := 0
	if raw := ctx.QueryParam("page_size"); raw != "" {
		pageSize, err = strconv.Atoi(raw)
		if err != nil {
			return writeBadRequest(ctx, "invalid page_size")
		}
	}

	query, err := queries.NewListOrdersQuery(actor, filter, page, pageSize)
	if err != nil {
		return writeError(ctx, err)
	}

	result, err := s.listOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	response := orderListResponse{
		Orders:   make([]orderSummaryResponse, 0, len(result.Orders)),
		Total:    result.Total,
		Page:     result.Page,
		PageSize: result.PageSize,
	}
	for _, summary := range result.Orders {
		response.Orders = append(response.Orders, toOrderSummaryResponse(summary))
	}

	return ctx.JSON(http.StatusOK, response)
}

// GetOrder handles GET /api/v1/orders/:orderId - retrieves one order with
// its items and status history.
func (s *Server) GetOrder(ctx echo.Context) error {
	actor, err := actorFromRequest(ctx)
	if err != nil {
		return writeBadRequest(ctx, err.Error())
	}

	orderID, err := kernel.UUIDFromString(ctx.Param("orderId"))
	if err != nil {
		return writeBadRequest(ctx, "invalid order id")
	}

	query, err := queries.NewGetOrderQuery(actor, orderID)
	if err != nil {
		return writeError(ctx, err)
	}

	details, err := s.getOrderHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toOrderDetailsResponse(details))
}

// ChangeOrderStatus handles POST /api/v1/orders/:orderId/status.
func (s *Server) ChangeOrderStatus(ctx echo.Context) error {
	actor, err := actorFromRequest(ctx)
	if err != nil {
		return writeBadRequest(ctx, err.Error())
	}

	orderID, err := kernel.UUIDFromString(ctx.Param("orderId"))
	if err != nil {
		return writeBadRequest(ctx, "invalid order id")
	}

	var req changeStatusRequest
	if err := ctx.Bind(&req); err != nil {
		return writeBadRequest(ctx, "invalid request body")
	}

	target, err := order.StatusFromString(req.Status)
	if err != nil {
		return writeError(ctx, err)
	}

	cmd, err := commands.NewChangeOrderStatusCommand(actor, orderID, target, req.Notes)
	if err != nil {
		return writeError(ctx, err)
	}

	if err := s.changeStatusHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// CancelOrder handles POST /api/v1/orders/:orderId/cancel.
func (s *Server) CancelOrder(ctx echo.Context) error {
	actor, err := actorFromRequest(ctx)
	if err != nil {
		return writeBadRequest(ctx, err.Error())
	}

	orderID, err := kernel.UUIDFromString(ctx.Param("orderId"))
	if err != nil {
		return writeBadRequest(ctx, "invalid order id")
	}

	var req cancelOrderRequest
	if err := ctx.Bind(&req); err != nil {
		return writeBadRequest(ctx, "invalid request body")
	}

	cmd, err := commands.NewCancelOrderCommand(actor, orderID, req.Reason)
	if err != nil {
		return writeError(ctx, err)
	}

	if err := s.cancelOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// RecordPayment handles POST /api/v1/orders/:orderId/payment.
func (s *Server) RecordPayment(ctx echo.Context) error {
	actor, err := actorFromRequest(ctx)
	if err != nil {
		return writeBadRequest(ctx, err.Error())
	}

	orderID, err := kernel.UUIDFromString(ctx.Param("orderId"))
	if err != nil {
		return writeBadRequest(ctx, "invalid order id")
	}

	var req recordPaymentRequest
	if err := ctx.Bind(&req); err != nil {
		return writeBadRequest(ctx, "invalid request body")
	}

	status, err := order.PaymentStatusFromString(req.PaymentStatus)
	if err != nil {
		return writeError(ctx, err)
	}

	cmd, err := commands.NewRecordPaymentCommand(actor, orderID, status)
	if err != nil {
		return writeError(ctx, err)
	}

	if err := s.recordPaymentHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// BatchChangeStatus handles POST /api/v1/orders/batch/status.
func (s *Server) BatchChangeStatus(ctx echo.Context) error {
	actor, err := actorFromRequest(ctx)
	if err != nil {
		return writeBadRequest(ctx, err.Error())
	}

	var req batchStatusRequest
	if err := ctx.Bind(&req); err != nil {
		return writeBadRequest(ctx, "invalid request body")
	}

	orderIDs, err := parseOrderIDs(req.OrderIDs)
	if err != nil {
		return writeBadRequest(ctx, err.Error())
	}

	target, err := order.StatusFromString(req.Status)
	if err != nil {
		return writeError(ctx, err)
	}

	cmd, err := commands.NewBatchChangeStatusCommand(actor, orderIDs, target, req.Notes)
	if err != nil {
		return writeError(ctx, err)
	}

	return s.runBatch(ctx, cmd)
}

// BatchAssignDriver handles POST /api/v1/orders/batch/driver.
func (s *Server) BatchAssignDriver(ctx echo.Context) error {
	actor, err := actorFromRequest(ctx)
	if err != nil {
		return writeBadRequest(ctx, err.Error())
	}

	var req batchDriverRequest
	if err := ctx.Bind(&req); err != nil {
		return writeBadRequest(ctx, "invalid request body")
	}

	orderIDs, err := parseOrderIDs(req.OrderIDs)
	if err != nil {
		return writeBadRequest(ctx, err.Error())
	}

	driverID, err := kernel.UUIDFromString(req.DriverID)
	if err != nil {
		return writeBadRequest(ctx, "invalid driver_id")
	}

	cmd, err := commands.NewBatchAssignDriverCommand(actor, orderIDs, driverID)
	if err != nil {
		return writeError(ctx, err)
	}

	return s.runBatch(ctx, cmd)
}

// BatchAssignSalesRep handles POST /api/v1/orders/batch/sales-rep.
func (s *Server) BatchAssignSalesRep(ctx echo.Context) error {
	actor, err := actorFromRequest(ctx)
	if err != nil {
		return writeBadRequest(ctx, err.Error())
	}

	var req batchSalesRepRequest
	if err := ctx.Bind(&req); err != nil {
		return writeBadRequest(ctx, "invalid request body")
	}

	orderIDs, err := parseOrderIDs(req.OrderIDs)
	if err != nil {
		return writeBadRequest(ctx, err.Error())
	}

	salesRepID, err := kernel.UUIDFromString(req.SalesRepID)
	if err != nil {
		return writeBadRequest(ctx, "invalid sales_rep_id")
	}

	cmd, err := commands.NewBatchAssignSalesRepCommand(actor, orderIDs, salesRepID)
	if err != nil {
		return writeError(ctx, err)
	}

	return s.runBatch(ctx, cmd)
}

// BatchCancel handles POST /api/v1/orders/batch/cancel.
func (s *Server) BatchCancel(ctx echo.Context) error {
	actor, err := actorFromRequest(ctx)
	if err != nil {
		return writeBadRequest(ctx, err.Error())
	}

	var req batchCancelRequest
	if err := ctx.Bind(&req); err != nil {
		return writeBadRequest(ctx, "invalid request body")
	}

	orderIDs, err := parseOrderIDs(req.OrderIDs)
	if err != nil {
		return writeBadRequest(ctx, err.Error())
	}

	cmd, err := commands.NewBatchCancelCommand(actor, orderIDs, req.Reason)
	if err != nil {
		return writeError(ctx, err)
	}

	return s.runBatch(ctx, cmd)
}

// PreviewBatch handles POST /api/v1/orders/batch/preview - reports per-order
// eligibility without mutating anything.
func (s *Server) PreviewBatch(ctx echo.Context) error {
	actor, err := actorFromRequest(ctx)
	if err != nil {
		return writeBadRequest(ctx, err.Error())
	}

	var req batchPreviewRequest
	if err := ctx.Bind(&req); err != nil {
		return writeBadRequest(ctx, "invalid request body")
	}

	orderIDs, err := parseOrderIDs(req.OrderIDs)
	if err != nil {
		return writeBadRequest(ctx, err.Error())
	}

	var targetStatus *order.Status
	if req.Status != nil {
		status, err := order.StatusFromString(*req.Status)
		if err != nil {
			return writeError(ctx, err)
		}
		targetStatus = &status
	}

	query, err := queries.NewPreviewBatchQuery(
		actor, orderIDs, queries.PreviewOperation(req.Operation), targetStatus)
	if err != nil {
		return writeError(ctx, err)
	}

	preview, err := s.previewBatchHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toBatchPreviewResponse(preview))
}

func (s *Server) runBatch(ctx echo.Context, cmd commands.BatchOrdersCommand) error {
	result, err := s.batchOrdersHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}
	return ctx.JSON(http.StatusOK, toBatchResultResponse(result))
}

func parseOrderIDs(raw []string) ([]kernel.UUID, error) {
	ids := make([]kernel.UUID, 0, len(raw))
	for _, s := range raw {
		id, err := kernel.UUIDFromString(s)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func listFilterFromRequest(ctx echo.Context) (queries.ListOrdersFilter, error) {
	var filter queries.ListOrdersFilter

	if raw := ctx.QueryParam("status"); raw != "" {
		status, err := order.StatusFromString(raw)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	if raw := ctx.QueryParam("customer_id"); raw != "" {
		id, err := kernel.UUIDFromString(raw)
		if err != nil {
			return filter, err
		}
		filter.CustomerID = &id
	}

	if raw := ctx.QueryParam("driver_id"); raw != "" {
		id, err := kernel.UUIDFromString(raw)
		if err != nil {
			return filter, err
		}
		filter.DriverID = &id
	}

	if raw := ctx.QueryParam("from"); raw != "" {
		from, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return filter, err
		}
		filter.CreatedFrom = &from
	}

	if raw := ctx.QueryParam("to"); raw != "" {
		to, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return filter, err
		}
		filter.CreatedTo = &to
	}

	return filter, nil
}
