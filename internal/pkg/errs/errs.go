package errs

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for classification with errors.Is. Each struct error type
// below unwraps to one of these, so callers can branch on the error class
// without depending on the concrete type.
var (
	ErrObjectNotFound     = errors.New("object not found")
	ErrValueIsInvalid     = errors.New("value is invalid")
	ErrValueIsOutOfRange  = errors.New("value is out of range")
	ErrValueIsRequired    = errors.New("value is required")
	ErrVersionIsInvalid   = errors.New("version is invalid")
	ErrInconsistentState  = errors.New("state is inconsistent")
	ErrPreconditionFailed = errors.New("precondition failed")
)

// sanitize collapses newlines so error messages stay single-line in logs.
func sanitize(v any) string {
	return strings.ReplaceAll(fmt.Sprintf("%v", v), "\n", " ")
}

// ObjectNotFoundError indicates that a referenced object does not exist.
type ObjectNotFoundError struct {
	ParamName string
	ID        any
	Cause     error
}

// NewObjectNotFoundError creates an ObjectNotFoundError without a cause.
func NewObjectNotFoundError(paramName string, id any) *ObjectNotFoundError {
	return &ObjectNotFoundError{ParamName: paramName, ID: id}
}

// NewObjectNotFoundErrorWithCause creates an ObjectNotFoundError with an underlying cause.
func NewObjectNotFoundErrorWithCause(paramName string, id any, cause error) *ObjectNotFoundError {
	return &ObjectNotFoundError{ParamName: paramName, ID: id, Cause: cause}
}

func (e *ObjectNotFoundError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: param is: %s, ID is: %s (cause: %s)",
			ErrObjectNotFound, e.ParamName, e.ID, e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrObjectNotFound, e.ID)
}

func (e *ObjectNotFoundError) Unwrap() error {
	return ErrObjectNotFound
}

// ValueIsInvalidError indicates that a provided value failed validation.
type ValueIsInvalidError struct {
	ParamName string
	Cause     error
}

// NewValueIsInvalidError creates a ValueIsInvalidError without a cause.
func NewValueIsInvalidError(paramName string) *ValueIsInvalidError {
	return &ValueIsInvalidError{ParamName: paramName}
}

// NewValueIsInvalidErrorWithCause creates a ValueIsInvalidError with an underlying cause.
func NewValueIsInvalidErrorWithCause(paramName string, cause error) *ValueIsInvalidError {
	return &ValueIsInvalidError{ParamName: paramName, Cause: cause}
}

func (e *ValueIsInvalidError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %s)", ErrValueIsInvalid, e.ParamName, e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrValueIsInvalid, e.ParamName)
}

func (e *ValueIsInvalidError) Unwrap() error {
	return ErrValueIsInvalid
}

// ValueIsOutOfRangeError indicates that a value lies outside its allowed range.
type ValueIsOutOfRangeError struct {
	ParamName string
	Value     any
	Min       any
	Max       any
	Cause     error
}

// NewValueIsOutOfRangeError creates a ValueIsOutOfRangeError without a cause.
func NewValueIsOutOfRangeError(paramName string, value, minValue, maxValue any) *ValueIsOutOfRangeError {
	return &ValueIsOutOfRangeError{ParamName: paramName, Value: value, Min: minValue, Max: maxValue}
}

// NewValueIsOutOfRangeErrorWithCause creates a ValueIsOutOfRangeError with an underlying cause.
func NewValueIsOutOfRangeErrorWithCause(
	paramName string, value, minValue, maxValue any, cause error,
) *ValueIsOutOfRangeError {
	return &ValueIsOutOfRangeError{ParamName: paramName, Value: value, Min: minValue, Max: maxValue, Cause: cause}
}

func (e *ValueIsOutOfRangeError) Error() string {
	msg := fmt.Sprintf("%s: %s is %s, min value is %s, max value is %s",
		ErrValueIsInvalid, sanitize(e.Value), e.ParamName, sanitize(e.Min), sanitize(e.Max))
	if e.Cause != nil {
		msg = fmt.Sprintf("%s (cause: %s)", msg, e.Cause)
	}
	return msg
}

func (e *ValueIsOutOfRangeError) Unwrap() error {
	return ErrValueIsOutOfRange
}

// ValueIsRequiredError indicates that a required value is missing.
type ValueIsRequiredError struct {
	ParamName string
	Cause     error
}

// NewValueIsRequiredError creates a ValueIsRequiredError without a cause.
func NewValueIsRequiredError(paramName string) *ValueIsRequiredError {
	return &ValueIsRequiredError{ParamName: paramName}
}

// NewValueIsRequiredErrorWithCause creates a ValueIsRequiredError with an underlying cause.
func NewValueIsRequiredErrorWithCause(paramName string, cause error) *ValueIsRequiredError {
	return &ValueIsRequiredError{ParamName: paramName, Cause: cause}
}

func (e *ValueIsRequiredError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %s)", ErrValueIsRequired, e.ParamName, e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrValueIsRequired, e.ParamName)
}

func (e *ValueIsRequiredError) Unwrap() error {
	return ErrValueIsRequired
}

// VersionIsInvalidError indicates an invalid aggregate or schema version.
type VersionIsInvalidError struct {
	ParamName string
	Cause     error
}

// NewVersionIsInvalidError creates a VersionIsInvalidError with an underlying cause.
func NewVersionIsInvalidError(paramName string, cause error) *VersionIsInvalidError {
	return &VersionIsInvalidError{ParamName: paramName, Cause: cause}
}

// NewVersionIsInvalidErrorWithCause creates a VersionIsInvalidError without a cause.
func NewVersionIsInvalidErrorWithCause(paramName string) *VersionIsInvalidError {
	return &VersionIsInvalidError{ParamName: paramName}
}

func (e *VersionIsInvalidError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %s)", ErrVersionIsInvalid, e.ParamName, e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrVersionIsInvalid, e.ParamName)
}

func (e *VersionIsInvalidError) Unwrap() error {
	return ErrVersionIsInvalid
}

// InconsistentStateError indicates a server-side invariant violation, such as
// finding more than one row where a composite key guarantees at most one.
// This class of error is never recoverable by the caller and must be logged
// loudly; the transport layer surfaces it as a generic server error.
type InconsistentStateError struct {
	Invariant string
	Detail    string
	Cause     error
}

// NewInconsistentStateError creates an InconsistentStateError without a cause.
func NewInconsistentStateError(invariant, detail string) *InconsistentStateError {
	return &InconsistentStateError{Invariant: invariant, Detail: detail}
}

// NewInconsistentStateErrorWithCause creates an InconsistentStateError with an underlying cause.
func NewInconsistentStateErrorWithCause(invariant, detail string, cause error) *InconsistentStateError {
	return &InconsistentStateError{Invariant: invariant, Detail: detail, Cause: cause}
}

func (e *InconsistentStateError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (%s) (cause: %s)", ErrInconsistentState, e.Invariant, sanitize(e.Detail), e.Cause)
	}
	return fmt.Sprintf("%s: %s (%s)", ErrInconsistentState, e.Invariant, sanitize(e.Detail))
}

func (e *InconsistentStateError) Unwrap() error {
	return ErrInconsistentState
}

// PreconditionFailedError indicates that an operation was rejected because the
// subject is not in a state that allows it, e.g. completing a transfer
// shipment that is already completed.
type PreconditionFailedError struct {
	ParamName string
	Detail    string
	Cause     error
}

// NewPreconditionFailedError creates a PreconditionFailedError without a cause.
func NewPreconditionFailedError(paramName, detail string) *PreconditionFailedError {
	return &PreconditionFailedError{ParamName: paramName, Detail: detail}
}

// NewPreconditionFailedErrorWithCause creates a PreconditionFailedError with an underlying cause.
func NewPreconditionFailedErrorWithCause(paramName, detail string, cause error) *PreconditionFailedError {
	return &PreconditionFailedError{ParamName: paramName, Detail: detail, Cause: cause}
}

func (e *PreconditionFailedError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (%s) (cause: %s)", ErrPreconditionFailed, e.ParamName, sanitize(e.Detail), e.Cause)
	}
	return fmt.Sprintf("%s: %s (%s)", ErrPreconditionFailed, e.ParamName, sanitize(e.Detail))
}

func (e *PreconditionFailedError) Unwrap() error {
	return ErrPreconditionFailed
}
