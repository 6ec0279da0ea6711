package errors

import (
	stderrors "errors"
	"fmt"
)

// ErrorType defines different categories of errors
type ErrorType string

const (
	ErrorTypeNotFound          ErrorType = "NOT_FOUND"
	ErrorTypeInvalidParameter  ErrorType = "INVALID_PARAMETER"
	ErrorTypeDataSourceTimeout ErrorType = "DATASOURCE_TIMEOUT"
	ErrorTypeLayout            ErrorType = "LAYOUT"
	ErrorTypeInternal          ErrorType = "INTERNAL"
)

// AppError is the custom error type for the application
type AppError struct {
	Type    ErrorType
	Message string
	Err     error
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap allows errors.Is and errors.As to work
func (e *AppError) Unwrap() error {
	return e.Err
}

// Constructor functions for different error types

// NewNotFoundError creates an error for an unknown herb/disease/pathway reference
func NewNotFoundError(message string) error {
	return &AppError{
		Type:    ErrorTypeNotFound,
		Message: message,
	}
}

// NewInvalidParameterError creates an error for a threshold or node budget out of domain
func NewInvalidParameterError(message string) error {
	return &AppError{
		Type:    ErrorTypeInvalidParameter,
		Message: message,
	}
}

// NewDataSourceTimeoutError creates an error for an external lookup that exceeded its bound
func NewDataSourceTimeoutError(message string, err error) error {
	return &AppError{
		Type:    ErrorTypeDataSourceTimeout,
		Message: message,
		Err:     err,
	}
}

// NewLayoutError creates an error for a degenerate graph that cannot be laid out
func NewLayoutError(message string) error {
	return &AppError{
		Type:    ErrorTypeLayout,
		Message: message,
	}
}

// NewInternalError creates an internal error
func NewInternalError(message string, err error) error {
	return &AppError{
		Type:    ErrorTypeInternal,
		Message: message,
		Err:     err,
	}
}

// Wrap wraps an error with additional context
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}

	// If it's already an AppError, preserve the type
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return &AppError{
			Type:    appErr.Type,
			Message: fmt.Sprintf("%s: %s", message, appErr.Message),
			Err:     appErr.Err,
		}
	}

	// Otherwise, create an internal error
	return &AppError{
		Type:    ErrorTypeInternal,
		Message: message,
		Err:     err,
	}
}

// TypeOf returns the error category, or ErrorTypeInternal for foreign errors
func TypeOf(err error) ErrorType {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr.Type
	}
	return ErrorTypeInternal
}

// Type checking functions

// IsNotFound checks if an error is a not found error
func IsNotFound(err error) bool {
	var appErr *AppError
	return stderrors.As(err, &appErr) && appErr.Type == ErrorTypeNotFound
}

// IsInvalidParameter checks if an error is an invalid parameter error
func IsInvalidParameter(err error) bool {
	var appErr *AppError
	return stderrors.As(err, &appErr) && appErr.Type == ErrorTypeInvalidParameter
}

// IsDataSourceTimeout checks if an error is a data source timeout error
func IsDataSourceTimeout(err error) bool {
	var appErr *AppError
	return stderrors.As(err, &appErr) && appErr.Type == ErrorTypeDataSourceTimeout
}

// IsLayout checks if an error is a layout error
func IsLayout(err error) bool {
	var appErr *AppError
	return stderrors.As(err, &appErr) && appErr.Type == ErrorTypeLayout
}

// IsInternal checks if an error is an internal error
func IsInternal(err error) bool {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr.Type == ErrorTypeInternal
	}
	return true
}
