package queries

import (
	"errors"

	"distribution/internal/core/domain/model/kernel"
	"distribution/internal/core/domain/model/order"
	"distribution/internal/pkg/errs"
	"distribution/internal/pkg/guard"
)

var (
	ErrPreviewBatchQueryIsNotConstructed = errors.New(
		"PreviewBatchQuery must be created via NewPreviewBatchQuery constructor",
	)
)

// PreviewOperation identifies which batch action a preview evaluates.
// The wire values match the batch command operations one to one.
type PreviewOperation string

const (
	PreviewChangeStatus   PreviewOperation = "change_status"
	PreviewAssignDriver   PreviewOperation = "assign_driver"
	PreviewAssignSalesRep PreviewOperation = "assign_sales_rep"
	PreviewCancel         PreviewOperation = "cancel"
)

// Same cap as batch execution, so a preview that passes can always be
// submitted as-is.
const maxPreviewSize = 100

// Validate checks the operation is one of the known batch actions.
func (o PreviewOperation) Validate() error {
	switch o {
	case PreviewChangeStatus, PreviewAssignDriver, PreviewAssignSalesRep, PreviewCancel:
		return nil
	default:
		return errs.NewValueIsInvalidError("operation")
	}
}

// PreviewBatchQuery evaluates a batch operation against current order state
// without executing it: for every order id it reports whether the operation
// would succeed and, when it would not, the same error code the batch
// handler would record. The preview takes no locks, so a concurrent write
// between preview and execution can still change the outcome.
//
// Example:
//
//	query, err := queries.NewPreviewBatchQuery(
//	    actor, orderIDs, queries.PreviewChangeStatus, &target)
//	if err != nil {
//	    return err
//	}
//
//	preview, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return err
//	}
//	fmt.Printf("%d of %d orders eligible\n", preview.Eligible, len(preview.Results))
type PreviewBatchQuery struct {
	actor        kernel.Actor
	orderIDs     []kernel.UUID
	operation    PreviewOperation
	targetStatus *order.Status

	guard guard.ConstructorGuard
}

// NewPreviewBatchQuery creates a preview for the given operation over 1-100
// order ids. targetStatus is required for change_status and must be nil for
// every other operation.
func NewPreviewBatchQuery(
	actor kernel.Actor,
	orderIDs []kernel.UUID,
	operation PreviewOperation,
	targetStatus *order.Status,
) (PreviewBatchQuery, error) {
	if err := errors.Join(actor.Validate(), operation.Validate()); err != nil {
		return PreviewBatchQuery{}, err
	}

	if len(orderIDs) == 0 {
		return PreviewBatchQuery{}, errs.NewValueIsRequiredError("orderIDs")
	}
	if len(orderIDs) > maxPreviewSize {
		return PreviewBatchQuery{}, errs.NewValueIsOutOfRangeError(
			"orderIDs", len(orderIDs), 1, maxPreviewSize)
	}
	for _, id := range orderIDs {
		if err := id.Validate(); err != nil {
			return PreviewBatchQuery{}, errs.NewValueIsInvalidErrorWithCause("orderIDs", err)
		}
	}

	switch operation {
	case PreviewChangeStatus:
		if targetStatus == nil {
			return PreviewBatchQuery{}, errs.NewValueIsRequiredError("targetStatus")
		}
		if err := targetStatus.Validate(); err != nil {
			return PreviewBatchQuery{}, err
		}
	default:
		if targetStatus != nil {
			return PreviewBatchQuery{}, errs.NewValueIsInvalidError("targetStatus")
		}
	}

	return PreviewBatchQuery{
		actor:        actor,
		orderIDs:     orderIDs,
		operation:    operation,
		targetStatus: targetStatus,
		guard:        guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q PreviewBatchQuery) Validate() error {
	return q.guard.Validate(ErrPreviewBatchQueryIsNotConstructed)
}

// Actor returns the identity the preview runs on behalf of.
func (q PreviewBatchQuery) Actor() kernel.Actor {
	return q.actor
}

// OrderIDs returns the order identifiers under evaluation.
func (q PreviewBatchQuery) OrderIDs() []kernel.UUID {
	return q.orderIDs
}

// Operation returns the batch action being previewed.
func (q PreviewBatchQuery) Operation() PreviewOperation {
	return q.operation
}

// TargetStatus returns the destination status for change_status previews,
// nil otherwise.
func (q PreviewBatchQuery) TargetStatus() *order.Status {
	return q.targetStatus
}

// BatchPreviewResponse aggregates the per-order eligibility verdicts.
type BatchPreviewResponse struct {
	Eligible   int
	Ineligible int
	Results    []BatchPreviewItemResponse
}

// BatchPreviewItemResponse is the verdict for one order id. For ineligible
// orders ErrorCode and Reason carry the same code and message the batch
// handler would record; CurrentStatus is nil when the order was not found.
type BatchPreviewItemResponse struct {
	OrderID       kernel.UUID
	Eligible      bool
	CurrentStatus *order.Status
	ErrorCode     string
	Reason        string
}
