package errs

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors. Every typed error below unwraps to exactly one of these,
// so callers can classify with errors.Is regardless of the concrete type.
var (
	ErrValueIsRequired         = errors.New("value is required")
	ErrValueIsInvalid          = errors.New("value is invalid")
	ErrValueIsOutOfRange       = errors.New("value is out of range")
	ErrObjectNotFound          = errors.New("object not found")
	ErrForbidden               = errors.New("forbidden")
	ErrInvalidStatusTransition = errors.New("invalid status transition")
	ErrInsufficientStock       = errors.New("insufficient stock")
	ErrPriceChanged            = errors.New("price changed")
	ErrCreditNotAllowed        = errors.New("credit not allowed")
	ErrCreditLimitExceeded     = errors.New("credit limit exceeded")
	ErrMaxOrderExceeded        = errors.New("max order amount exceeded")
	ErrLimitExceeded           = errors.New("plan limit exceeded")
)

// Stable error codes surfaced to API clients. Exactly one code exists for
// each sentinel; CodeOf falls back to CodeServerError.
const (
	CodeValueRequired           = "VALUE_REQUIRED"
	CodeValueInvalid            = "VALUE_INVALID"
	CodeValueOutOfRange         = "VALUE_OUT_OF_RANGE"
	CodeNotFound                = "NOT_FOUND"
	CodeForbidden               = "FORBIDDEN"
	CodeInvalidStatusTransition = "INVALID_STATUS_TRANSITION"
	CodeInsufficientStock       = "INSUFFICIENT_STOCK"
	CodePriceChanged            = "PRICE_CHANGED"
	CodeCreditNotAllowed        = "CREDIT_NOT_ALLOWED"
	CodeCreditLimitExceeded     = "CREDIT_LIMIT_EXCEEDED"
	CodeMaxOrderExceeded        = "MAX_ORDER_EXCEEDED"
	CodeLimitExceeded           = "LIMIT_EXCEEDED"
	CodeServerError             = "SERVER_ERROR"
)

// CodeOf resolves any error to its stable code. Unrecognized errors resolve
// to CodeServerError.
func CodeOf(err error) string {
	switch {
	case errors.Is(err, ErrValueIsRequired):
		return CodeValueRequired
	case errors.Is(err, ErrValueIsInvalid):
		return CodeValueInvalid
	case errors.Is(err, ErrValueIsOutOfRange):
		return CodeValueOutOfRange
	case errors.Is(err, ErrObjectNotFound):
		return CodeNotFound
	case errors.Is(err, ErrForbidden):
		return CodeForbidden
	case errors.Is(err, ErrInvalidStatusTransition):
		return CodeInvalidStatusTransition
	case errors.Is(err, ErrInsufficientStock):
		return CodeInsufficientStock
	case errors.Is(err, ErrPriceChanged):
		return CodePriceChanged
	case errors.Is(err, ErrCreditNotAllowed):
		return CodeCreditNotAllowed
	case errors.Is(err, ErrCreditLimitExceeded):
		return CodeCreditLimitExceeded
	case errors.Is(err, ErrMaxOrderExceeded):
		return CodeMaxOrderExceeded
	case errors.Is(err, ErrLimitExceeded):
		return CodeLimitExceeded
	default:
		return CodeServerError
	}
}

// sanitize flattens newlines so multi-line input cannot break log lines or
// API error payloads.
func sanitize(s string) string {
	return strings.ReplaceAll(s, "\n", " ")
}

// ValueIsRequiredError reports a missing required value.
type ValueIsRequiredError struct {
	ParamName string
	Cause     error
}

func NewValueIsRequiredError(paramName string) *ValueIsRequiredError {
	return &ValueIsRequiredError{ParamName: paramName}
}

func NewValueIsRequiredErrorWithCause(paramName string, cause error) *ValueIsRequiredError {
	return &ValueIsRequiredError{ParamName: paramName, Cause: cause}
}

func (e *ValueIsRequiredError) Error() string {
	if e.Cause != nil {
		return sanitize(fmt.Sprintf("%s: %s (cause: %s)", ErrValueIsRequired, e.ParamName, e.Cause))
	}
	return sanitize(fmt.Sprintf("%s: %s", ErrValueIsRequired, e.ParamName))
}

func (e *ValueIsRequiredError) Unwrap() error {
	return ErrValueIsRequired
}

// ValueIsInvalidError reports a value that fails validation.
type ValueIsInvalidError struct {
	ParamName string
	Cause     error
}

func NewValueIsInvalidError(paramName string) *ValueIsInvalidError {
	return &ValueIsInvalidError{ParamName: paramName}
}

func NewValueIsInvalidErrorWithCause(paramName string, cause error) *ValueIsInvalidError {
	return &ValueIsInvalidError{ParamName: paramName, Cause: cause}
}

func (e *ValueIsInvalidError) Error() string {
	if e.Cause != nil {
		return sanitize(fmt.Sprintf("%s: %s (cause: %s)", ErrValueIsInvalid, e.ParamName, e.Cause))
	}
	return sanitize(fmt.Sprintf("%s: %s", ErrValueIsInvalid, e.ParamName))
}

func (e *ValueIsInvalidError) Unwrap() error {
	return ErrValueIsInvalid
}

// ValueIsOutOfRangeError reports a value outside its permitted bounds.
type ValueIsOutOfRangeError struct {
	ParamName string
	Value     any
	Min       any
	Max       any
	Cause     error
}

func NewValueIsOutOfRangeError(paramName string, value, minValue, maxValue any) *ValueIsOutOfRangeError {
	return &ValueIsOutOfRangeError{ParamName: paramName, Value: value, Min: minValue, Max: maxValue}
}

func NewValueIsOutOfRangeErrorWithCause(
	paramName string, value, minValue, maxValue any, cause error,
) *ValueIsOutOfRangeError {
	return &ValueIsOutOfRangeError{ParamName: paramName, Value: value, Min: minValue, Max: maxValue, Cause: cause}
}

func (e *ValueIsOutOfRangeError) Error() string {
	msg := fmt.Sprintf("%s: %v is %s, min value is %v, max value is %v",
		ErrValueIsInvalid, e.Value, e.ParamName, e.Min, e.Max)
	if e.Cause != nil {
		msg = fmt.Sprintf("%s (cause: %s)", msg, e.Cause)
	}
	return sanitize(msg)
}

func (e *ValueIsOutOfRangeError) Unwrap() error {
	return ErrValueIsOutOfRange
}

// ObjectNotFoundError reports a lookup that matched nothing.
type ObjectNotFoundError struct {
	ParamName string
	ID        any
	Cause     error
}

func NewObjectNotFoundError(paramName string, id any) *ObjectNotFoundError {
	return &ObjectNotFoundError{ParamName: paramName, ID: id}
}

func NewObjectNotFoundErrorWithCause(paramName string, id any, cause error) *ObjectNotFoundError {
	return &ObjectNotFoundError{ParamName: paramName, ID: id, Cause: cause}
}

func (e *ObjectNotFoundError) Error() string {
	if e.Cause != nil {
		return sanitize(fmt.Sprintf("%s: param is: %s, ID is: %s (cause: %s)",
			ErrObjectNotFound, e.ParamName, e.ID, e.Cause))
	}
	return sanitize(fmt.Sprintf("%s: %s", ErrObjectNotFound, e.ID))
}

func (e *ObjectNotFoundError) Unwrap() error {
	return ErrObjectNotFound
}

// ForbiddenError reports an action the acting user may not perform.
type ForbiddenError struct {
	Action string
	Cause  error
}

func NewForbiddenError(action string) *ForbiddenError {
	return &ForbiddenError{Action: action}
}

func NewForbiddenErrorWithCause(action string, cause error) *ForbiddenError {
	return &ForbiddenError{Action: action, Cause: cause}
}

func (e *ForbiddenError) Error() string {
	if e.Cause != nil {
		return sanitize(fmt.Sprintf("%s: %s (cause: %s)", ErrForbidden, e.Action, e.Cause))
	}
	return sanitize(fmt.Sprintf("%s: %s", ErrForbidden, e.Action))
}

func (e *ForbiddenError) Unwrap() error {
	return ErrForbidden
}

// InvalidStatusTransitionError reports a lifecycle edge absent from the
// order status adjacency table. From and To carry the attempted pair.
type InvalidStatusTransitionError struct {
	From string
	To   string
}

func NewInvalidStatusTransitionError(from, to string) *InvalidStatusTransitionError {
	return &InvalidStatusTransitionError{From: from, To: to}
}

func (e *InvalidStatusTransitionError) Error() string {
	return sanitize(fmt.Sprintf("%s: %s -> %s", ErrInvalidStatusTransition, e.From, e.To))
}

func (e *InvalidStatusTransitionError) Unwrap() error {
	return ErrInvalidStatusTransition
}

// InsufficientStockError reports a reservation exceeding available stock.
type InsufficientStockError struct {
	ProductID string
	Requested int
	Available int
}

func NewInsufficientStockError(productID string, requested, available int) *InsufficientStockError {
	return &InsufficientStockError{ProductID: productID, Requested: requested, Available: available}
}

func (e *InsufficientStockError) Error() string {
	return sanitize(fmt.Sprintf("%s: product %s, requested %d, available %d",
		ErrInsufficientStock, e.ProductID, e.Requested, e.Available))
}

func (e *InsufficientStockError) Unwrap() error {
	return ErrInsufficientStock
}

// PriceChangedError reports a drift between the caller-quoted unit price and
// the locked product price beyond the accepted tolerance. Amounts are
// pre-formatted decimal strings.
type PriceChangedError struct {
	ProductID string
	Quoted    string
	Current   string
}

func NewPriceChangedError(productID, quoted, current string) *PriceChangedError {
	return &PriceChangedError{ProductID: productID, Quoted: quoted, Current: current}
}

func (e *PriceChangedError) Error() string {
	return sanitize(fmt.Sprintf("%s: product %s, quoted %s, current %s",
		ErrPriceChanged, e.ProductID, e.Quoted, e.Current))
}

func (e *PriceChangedError) Unwrap() error {
	return ErrPriceChanged
}

// CreditNotAllowedError reports an order from a customer whose tier forbids
// credit and whose prepaid balance does not cover the total.
type CreditNotAllowedError struct {
	CustomerID    string
	Total         string
	CreditBalance string
}

func NewCreditNotAllowedError(customerID, total, creditBalance string) *CreditNotAllowedError {
	return &CreditNotAllowedError{CustomerID: customerID, Total: total, CreditBalance: creditBalance}
}

func (e *CreditNotAllowedError) Error() string {
	return sanitize(fmt.Sprintf("%s: customer %s, total %s, credit balance %s",
		ErrCreditNotAllowed, e.CustomerID, e.Total, e.CreditBalance))
}

func (e *CreditNotAllowedError) Unwrap() error {
	return ErrCreditNotAllowed
}

// CreditLimitExceededError reports an order that would push the customer's
// debt past the tier credit limit.
type CreditLimitExceededError struct {
	CustomerID string
	Debt       string
	Total      string
	Limit      string
}

func NewCreditLimitExceededError(customerID, debt, total, limit string) *CreditLimitExceededError {
	return &CreditLimitExceededError{CustomerID: customerID, Debt: debt, Total: total, Limit: limit}
}

func (e *CreditLimitExceededError) Error() string {
	return sanitize(fmt.Sprintf("%s: customer %s, debt %s + total %s exceeds limit %s",
		ErrCreditLimitExceeded, e.CustomerID, e.Debt, e.Total, e.Limit))
}

func (e *CreditLimitExceededError) Unwrap() error {
	return ErrCreditLimitExceeded
}

// MaxOrderExceededError reports a single order above the tier's maximum
// order amount.
type MaxOrderExceededError struct {
	Total string
	Max   string
}

func NewMaxOrderExceededError(total, maxAmount string) *MaxOrderExceededError {
	return &MaxOrderExceededError{Total: total, Max: maxAmount}
}

func (e *MaxOrderExceededError) Error() string {
	return sanitize(fmt.Sprintf("%s: total %s, max %s", ErrMaxOrderExceeded, e.Total, e.Max))
}

func (e *MaxOrderExceededError) Unwrap() error {
	return ErrMaxOrderExceeded
}

// LimitExceededError reports an exhausted tenant plan quota.
type LimitExceededError struct {
	TenantID string
	Current  int
	Max      int
}

func NewLimitExceededError(tenantID string, current, maxOrders int) *LimitExceededError {
	return &LimitExceededError{TenantID: tenantID, Current: current, Max: maxOrders}
}

func (e *LimitExceededError) Error() string {
	return sanitize(fmt.Sprintf("%s: tenant %s, current %d, max %d",
		ErrLimitExceeded, e.TenantID, e.Current, e.Max))
}

func (e *LimitExceededError) Unwrap() error {
	return ErrLimitExceeded
}
