package http

import (
	"errors"
	"log/slog"
	"net/http"

	"freight/internal/core/application/usecases/commands"
	"freight/internal/pkg/errs"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// ErrorMapper translates use case errors into transport responses.
// The whole taxonomy is classified in exactly one place so no handler can
// leak a different status for the same failure. Consistency violations and
// anything unclassified answer a generic 500 and are logged loudly; the
// response never carries internals.
type ErrorMapper struct {
	logger *slog.Logger
}

// NewErrorMapper creates the error mapper used as Echo's HTTPErrorHandler.
func NewErrorMapper(logger *slog.Logger) *ErrorMapper {
	return &ErrorMapper{logger: logger.With("component", "http_error_mapper")}
}

// Handle implements echo.HTTPErrorHandler.
func (m *ErrorMapper) Handle(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	statusCode, errorCode, message := m.classify(err)

	if statusCode == http.StatusInternalServerError {
		m.logger.ErrorContext(c.Request().Context(), "Unhandled error",
			"error", err,
			"path", c.Request().URL.Path,
			"method", c.Request().Method,
		)
	}

	_ = Error(c, statusCode, errorCode, message, "")
}

// classify maps the error taxonomy to transport codes.
//
// The one-time password rejection is deliberately opaque: wrong, expired,
// consumed and never-issued codes all answer the same way.
func (m *ErrorMapper) classify(err error) (int, string, string) {
	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		message, _ := httpErr.Message.(string)
		return httpErr.Code, "HTTP_ERROR", message
	}

	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		return http.StatusBadRequest, "VALIDATION_FAILED", validationErrs.Error()
	}

	switch {
	case errors.Is(err, commands.ErrOtpRejected):
		return http.StatusNotFound, "OTP_REJECTED", "one-time password was rejected"
	case errors.Is(err, commands.ErrDriverPositionUnknown):
		return http.StatusPreconditionFailed, "POSITION_UNKNOWN", "driver position is unknown"
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound, "OBJECT_NOT_FOUND", err.Error()
	case errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return http.StatusBadRequest, "VALIDATION_FAILED", err.Error()
	case errors.Is(err, errs.ErrPreconditionFailed):
		return http.StatusPreconditionFailed, "PRECONDITION_FAILED", err.Error()
	case errors.Is(err, errs.ErrInconsistentState):
		return http.StatusInternalServerError, "INTERNAL_ERROR", "internal error"
	default:
		return http.StatusInternalServerError, "INTERNAL_ERROR", "internal error"
	}
}
