package errors

import (
	stderrors "errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/render"
)

// APIError represents a structured API error response
type APIError struct {
	StatusCode int         `json:"status_code"`
	ErrorCode  string      `json:"error_code"`
	Message    string      `json:"message"`
	Details    interface{} `json:"details,omitempty"`
}

// Error implements the error interface
func (e *APIError) Error() string {
	return e.Message
}

// Render implements the render.Renderer interface for chi/render
func (e *APIError) Render(w http.ResponseWriter, r *http.Request) error {
	render.Status(r, e.StatusCode)
	return nil
}

// New creates a new APIError with the given parameters
func New(statusCode int, errorCode, message string) *APIError {
	return &APIError{
		StatusCode: statusCode,
		ErrorCode:  errorCode,
		Message:    message,
	}
}

// NewWithDetails creates a new APIError with additional details
func NewWithDetails(statusCode int, errorCode, message string, details interface{}) *APIError {
	return &APIError{
		StatusCode: statusCode,
		ErrorCode:  errorCode,
		Message:    message,
		Details:    details,
	}
}

// Predefined error types for common scenarios
var (
	ErrInvalidRequest   = New(http.StatusBadRequest, "INVALID_REQUEST", "Invalid request format")
	ErrInvalidParameter = New(http.StatusBadRequest, "INVALID_PARAMETER", "Invalid parameter value")
	ErrNotFound         = New(http.StatusNotFound, "NOT_FOUND", "Resource not found")
	ErrInternalServer   = New(http.StatusInternalServerError, "INTERNAL_SERVER_ERROR", "Internal server error")
)

// ErrValidation creates a validation error with field details
func ErrValidation(field, message string) *APIError {
	return NewWithDetails(http.StatusBadRequest, "VALIDATION_FAILED", "Request validation failed", map[string]string{
		"field":   field,
		"message": message,
	})
}

// ErrorHandler maps application errors onto API responses and logs them.
type ErrorHandler struct {
	logger *slog.Logger
}

// NewErrorHandler creates a new error handler
func NewErrorHandler(logger *slog.Logger) *ErrorHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &ErrorHandler{logger: logger}
}

// HandleError writes an error response for err, translating the AppError
// taxonomy into status codes. Unknown errors become 500s without leaking
// internals to the client.
func (h *ErrorHandler) HandleError(w http.ResponseWriter, r *http.Request, err error) {
	apiErr := h.toAPIError(err)

	if apiErr.StatusCode >= http.StatusInternalServerError {
		h.logger.ErrorContext(r.Context(), "request failed",
			slog.String("path", r.URL.Path),
			slog.String("error", err.Error()))
	} else {
		h.logger.WarnContext(r.Context(), "request rejected",
			slog.String("path", r.URL.Path),
			slog.String("error_code", apiErr.ErrorCode))
	}

	if renderErr := render.Render(w, r, apiErr); renderErr != nil {
		http.Error(w, apiErr.Message, apiErr.StatusCode)
	}
}

func (h *ErrorHandler) toAPIError(err error) *APIError {
	var apiErr *APIError
	if stderrors.As(err, &apiErr) {
		return apiErr
	}

	var appErr *AppError
	if stderrors.As(err, &appErr) {
		switch appErr.Type {
		case ErrTypeNoData:
			return NewWithDetails(http.StatusNotFound, "NO_DATA", appErr.Message, appErr.Context)
		case ErrTypeDivisionByZero:
			return NewWithDetails(http.StatusUnprocessableEntity, "DIVISION_BY_ZERO", appErr.Message, appErr.Context)
		case ErrTypeValidation:
			return NewWithDetails(http.StatusBadRequest, "VALIDATION_FAILED", appErr.Message, appErr.Context)
		case ErrTypeNotFound:
			return NewWithDetails(http.StatusNotFound, "NOT_FOUND", appErr.Message, appErr.Context)
		case ErrTypeParsing:
			return NewWithDetails(http.StatusUnprocessableEntity, "PARSING_FAILED", appErr.Message, appErr.Context)
		}
	}

	return ErrInternalServer
}
