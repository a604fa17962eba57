// Package errs provides standardized error types for the freight fulfillment
// application. It implements a consistent pattern for error creation,
// formatting, and unwrapping that is used throughout the application.
//
// The package includes several error types for common error scenarios:
//   - ValueIsRequiredError: For when a required value is missing
//   - ValueIsInvalidError: For when a value is invalid
//   - ObjectNotFoundError: For when an object cannot be found
//   - InconsistentStateError: For server-side invariant violations
//   - PreconditionFailedError: For operations rejected due to subject state
//
// Each error type follows a consistent pattern:
//   - A sentinel error variable (e.g., ErrValueIsRequired)
//   - A struct type with fields for error details
//   - Constructor functions with and without cause
//   - Error() method for formatting the error message
//   - Unwrap() method for error wrapping/unwrapping support
//
// This standardized approach to error handling improves error reporting,
// makes error handling more consistent, and enables better error
// classification at the HTTP boundary, where the taxonomy maps onto
// transport-level status codes in exactly one place.
package errs
