package queries

import (
	"context"

	"distribution/internal/core/domain/model/kernel"
	"distribution/internal/core/domain/model/order"
	"distribution/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PreviewBatchQueryHandler evaluates batch eligibility against current order
// rows. It applies the same permission and transition rules as batch
// execution, read-only and without locks.
type PreviewBatchQueryHandler struct {
	db *gorm.DB
}

// NewPreviewBatchQueryHandler creates a handler for batch previews.
func NewPreviewBatchQueryHandler(db *gorm.DB) PreviewBatchQueryHandler {
	return PreviewBatchQueryHandler{db: db}
}

type previewRow struct {
	status    order.Status
	createdBy kernel.UUID
}

// Handle returns a verdict for every requested order id, preserving the
// request order. Ids outside the actor's tenant or role scope report
// NOT_FOUND, the same way listings hide them.
func (h PreviewBatchQueryHandler) Handle(
	ctx context.Context,
	query PreviewBatchQuery,
) (BatchPreviewResponse, error) {
	if err := query.Validate(); err != nil {
		return BatchPreviewResponse{}, err
	}

	rows, err := h.loadRows(ctx, query)
	if err != nil {
		return BatchPreviewResponse{}, err
	}

	response := BatchPreviewResponse{
		Results: make([]BatchPreviewItemResponse, 0, len(query.OrderIDs())),
	}

	for _, orderID := range query.OrderIDs() {
		item := BatchPreviewItemResponse{OrderID: orderID}

		row, found := rows[orderID]
		if !found {
			notFound := errs.NewObjectNotFoundError("order", orderID)
			item.ErrorCode = errs.CodeOf(notFound)
			item.Reason = notFound.Error()
			response.Ineligible++
			response.Results = append(response.Results, item)
			continue
		}

		status := row.status
		item.CurrentStatus = &status

		if evalErr := h.evaluate(query, row); evalErr != nil {
			item.ErrorCode = errs.CodeOf(evalErr)
			item.Reason = evalErr.Error()
			response.Ineligible++
		} else {
			item.Eligible = true
			response.Eligible++
		}

		response.Results = append(response.Results, item)
	}

	return response, nil
}

func (h PreviewBatchQueryHandler) evaluate(query PreviewBatchQuery, row previewRow) error {
	switch query.Operation() {
	case PreviewChangeStatus:
		return order.ValidateActorTransition(
			query.Actor(), row.status, row.createdBy, *query.TargetStatus())
	case PreviewCancel:
		return order.ValidateActorTransition(
			query.Actor(), row.status, row.createdBy, order.StatusCancelled)
	default:
		return order.ValidateActorAssignment(query.Actor(), row.status)
	}
}

func (h PreviewBatchQueryHandler) loadRows(
	ctx context.Context,
	query PreviewBatchQuery,
) (map[kernel.UUID]previewRow, error) {
	ids := make([]uuid.UUID, 0, len(query.OrderIDs()))
	for _, id := range query.OrderIDs() {
		ids = append(ids, id.Bytes())
	}

	scopeSQL, scopeArgs := roleScope(query.Actor())
	args := make([]any, 0, 2+len(scopeArgs))
	args = append(args, query.Actor().TenantID().Bytes(), ids)
	args = append(args, scopeArgs...)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			status,
			created_by
		FROM orders
		WHERE tenant_id = ? AND id IN ?`+scopeSQL,
		args...,
	).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	found := make(map[kernel.UUID]previewRow, len(ids))
	for rows.Next() {
		var (
			id, createdBy uuid.UUID
			statusRaw     string
		)

		if err = rows.Scan(&id, &statusRaw, &createdBy); err != nil {
			return nil, err
		}

		orderID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		status, statusErr := order.StatusFromString(statusRaw)
		if statusErr != nil {
			return nil, statusErr
		}
		creator, creatorErr := kernel.UUIDFromBytes(createdBy[:])
		if creatorErr != nil {
			return nil, creatorErr
		}

		found[orderID] = previewRow{status: status, createdBy: creator}
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return found, nil
}
