// Package errors provides the application error taxonomy shared by the
// pipeline, analytics, and transport layers.
package errors

import (
	stderrors "errors"
	"fmt"
)

// ErrorType represents the type of error
type ErrorType string

const (
	ErrTypeParsing        ErrorType = "PARSING"
	ErrTypeValidation     ErrorType = "VALIDATION"
	ErrTypeNotFound       ErrorType = "NOT_FOUND"
	ErrTypeConfig         ErrorType = "CONFIG"
	ErrTypeStorage        ErrorType = "STORAGE"
	ErrTypeNoData         ErrorType = "NO_DATA"
	ErrTypeDivisionByZero ErrorType = "DIVISION_BY_ZERO"
)

// AppError represents an application-specific error
type AppError struct {
	Type    ErrorType
	Message string
	Cause   error
	Context map[string]interface{}
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Type, e.Message)
}

// Unwrap allows errors.Is and errors.As to work with AppError
func (e *AppError) Unwrap() error {
	return e.Cause
}

// WithContext adds context to the error
func (e *AppError) WithContext(key string, value interface{}) *AppError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// NewAppError creates a new application error
func NewAppError(errType ErrorType, message string, cause error) *AppError {
	return &AppError{
		Type:    errType,
		Message: message,
		Cause:   cause,
		Context: make(map[string]interface{}),
	}
}

// Helper functions for common error types

// NewParsingError creates a parsing-related error
func NewParsingError(message string, cause error) *AppError {
	return NewAppError(ErrTypeParsing, message, cause)
}

// NewValidationError creates a validation error
func NewValidationError(message string) *AppError {
	return NewAppError(ErrTypeValidation, message, nil)
}

// NewNotFoundError creates a not found error
func NewNotFoundError(resource string) *AppError {
	return NewAppError(ErrTypeNotFound, fmt.Sprintf("%s not found", resource), nil)
}

// NewConfigError creates a configuration error
func NewConfigError(message string, cause error) *AppError {
	return NewAppError(ErrTypeConfig, message, cause)
}

// NewStorageError creates a storage-related error
func NewStorageError(message string, cause error) *AppError {
	return NewAppError(ErrTypeStorage, message, cause)
}

// NewNoDataError creates an error for aggregate queries evaluated over an
// empty record set. Queries must signal this instead of returning a
// misleading zero value.
func NewNoDataError(query string) *AppError {
	return NewAppError(ErrTypeNoData, fmt.Sprintf("no data for %s", query), nil)
}

// NewDivisionByZeroError creates an error for ratio computations whose
// denominator is zero or null.
func NewDivisionByZeroError(operation string) *AppError {
	return NewAppError(ErrTypeDivisionByZero, fmt.Sprintf("division by zero in %s", operation), nil)
}

// IsType reports whether err is (or wraps) an AppError of the given type.
func IsType(err error, errType ErrorType) bool {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr.Type == errType
	}
	return false
}

// IsNoData reports whether err signals an empty-input aggregate.
func IsNoData(err error) bool {
	return IsType(err, ErrTypeNoData)
}

// IsDivisionByZero reports whether err signals a zero denominator.
func IsDivisionByZero(err error) bool {
	return IsType(err, ErrTypeDivisionByZero)
}
