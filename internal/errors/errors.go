package errors

import (
	"errors"
	"fmt"
)

// ErrorType represents the type of error
type ErrorType string

const (
	ErrTypeMissingColumn ErrorType = "MISSING_COLUMN"
	ErrTypeJoinIntegrity ErrorType = "JOIN_INTEGRITY"
	ErrTypeParsing       ErrorType = "PARSING"
	ErrTypeNetwork       ErrorType = "NETWORK"
	ErrTypeStorage       ErrorType = "STORAGE"
	ErrTypeConfig        ErrorType = "CONFIG"
)

// AppError represents an application-specific error. Fatal errors abort
// the file being processed. Per-row data-quality conditions are not
// errors at all; they travel as diagnostic events and counters.
type AppError struct {
	Type    ErrorType
	Message string
	Cause   error
	Fatal   bool
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

// IsFatal reports whether err carries a fatal AppError. Fatal errors are
// scoped to the file that raised them; callers abort that file and move
// on to the next.
func IsFatal(err error) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Fatal
	}
	return false
}

// Type returns the ErrorType of err, or the empty string when err does
// not wrap an AppError.
func Type(err error) ErrorType {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Type
	}
	return ""
}

// Helper functions for the pipeline error taxonomy

// NewMissingColumnError reports that no accepted alias for a required
// field was present. Fatal for the current file; the available columns
// travel in the error context for diagnosis.
func NewMissingColumnError(field string, available []string) *AppError {
	e := NewAppError(ErrTypeMissingColumn, fmt.Sprintf("no column found for field %q", field), nil)
	e.Fatal = true
	return e.WithContext("field", field).WithContext("available_columns", available)
}

// NewJoinIntegrityError reports a row-count mismatch after the left-join
// stage. Fatal for the current file.
func NewJoinIntegrityError(want, got int) *AppError {
	e := NewAppError(ErrTypeJoinIntegrity,
		fmt.Sprintf("left join changed row count: want %d, got %d", want, got), nil)
	e.Fatal = true
	return e
}

// NewParsingError creates a parsing-related error
func NewParsingError(message string, cause error) *AppError {
	return NewAppError(ErrTypeParsing, message, cause)
}

// NewNetworkError creates a network-related error
func NewNetworkError(message string, cause error) *AppError {
	return NewAppError(ErrTypeNetwork, message, cause)
}

// NewStorageError creates a storage-related error
func NewStorageError(message string, cause error) *AppError {
	return NewAppError(ErrTypeStorage, message, cause)
}

// NewConfigError creates a configuration error
func NewConfigError(message string, cause error) *AppError {
	return NewAppError(ErrTypeConfig, message, cause)
}
