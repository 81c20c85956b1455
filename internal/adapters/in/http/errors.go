package http

import (
	"net/http"

	"distribution/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// ErrorResponse is the error envelope returned by every endpoint: a stable
// machine-readable code and a human-readable message.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// statusForCode maps stable error codes to HTTP statuses. Domain conflicts
// (illegal transition, exhausted stock, stale price, credit refusals) are
// 409: the request was well-formed but current state rejects it.
func statusForCode(code string) int {
	switch code {
	case errs.CodeNotFound:
		return http.StatusNotFound
	case errs.CodeForbidden:
		return http.StatusForbidden
	case errs.CodeLimitExceeded:
		return http.StatusTooManyRequests
	case errs.CodeInvalidStatusTransition,
		errs.CodeInsufficientStock,
		errs.CodePriceChanged,
		errs.CodeCreditNotAllowed,
		errs.CodeCreditLimitExceeded,
		errs.CodeMaxOrderExceeded:
		return http.StatusConflict
	case errs.CodeValueRequired, errs.CodeValueInvalid, errs.CodeValueOutOfRange:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// writeError renders err as the error envelope with the mapped HTTP status.
func writeError(ctx echo.Context, err error) error {
	code := errs.CodeOf(err)
	return ctx.JSON(statusForCode(code), ErrorResponse{
		Code:    code,
		Message: err.Error(),
	})
}

// writeBadRequest renders a VALUE_INVALID envelope for malformed input that
// never reached command validation.
func writeBadRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, ErrorResponse{
		Code:    errs.CodeValueInvalid,
		Message: message,
	})
}
