// Package errs provides standardized error types for the distribution platform.
// It implements a consistent pattern for error creation, formatting, and unwrapping
// that is used throughout the application.
//
// Two groups of errors exist:
//   - Generic validation errors (ValueIsRequiredError, ValueIsInvalidError,
//     ValueIsOutOfRangeError, ObjectNotFoundError) used by constructors and
//     lookups everywhere.
//   - Domain errors of the order core (ForbiddenError,
//     InvalidStatusTransitionError, InsufficientStockError, PriceChangedError,
//     CreditNotAllowedError, CreditLimitExceededError, MaxOrderExceededError,
//     LimitExceededError) raised by the placement and lifecycle engines.
//
// Each error type follows a consistent pattern:
//   - A sentinel error variable (e.g. ErrInsufficientStock)
//   - A struct type with fields for error details
//   - Constructor functions
//   - Error() method for formatting the error message
//   - Unwrap() method returning the sentinel, so errors.Is classification
//     works across the whole taxonomy
//
// API adapters resolve any error to a stable transport code with CodeOf;
// errors outside the taxonomy resolve to CodeServerError.
package errs
