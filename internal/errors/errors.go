// Package errors provides a lightweight structured error type (IconCacheError)
// for category-based classification and exit-code mapping in the CLI.
package errors

import (
	"errors"
	"fmt"
)

// ErrorCategory represents the category of an iconcache error for classification
type ErrorCategory string

const (
	// User-facing input errors
	CategoryValidation ErrorCategory = "validation"

	// Per-file and filesystem errors
	CategoryFileSystem ErrorCategory = "filesystem"
	CategoryDecode     ErrorCategory = "decode"

	// Runtime and infrastructure errors
	CategoryRuntime  ErrorCategory = "runtime"
	CategoryInternal ErrorCategory = "internal"
)

// ErrorSeverity indicates how critical an error is
type ErrorSeverity string

const (
	SeverityFatal   ErrorSeverity = "fatal"   // Stops execution
	SeverityError   ErrorSeverity = "error"   // Error, but not fatal
	SeverityWarning ErrorSeverity = "warning" // Continues with degraded functionality
)

// IconCacheError is a structured error with category, severity, and context
type IconCacheError struct {
	Category ErrorCategory `json:"category"`
	Severity ErrorSeverity `json:"severity"`
	Message  string        `json:"message"`
	Cause    error         `json:"cause,omitempty"`
	Context  ContextFields `json:"context,omitempty"`
}

// ContextFields carries structured context for IconCacheError
type ContextFields map[string]any

// Error implements the error interface
func (e *IconCacheError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s (%s): %s: %v", e.Category, e.Severity, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s (%s): %s", e.Category, e.Severity, e.Message)
}

// Unwrap implements error unwrapping for Go 1.13+ error handling
func (e *IconCacheError) Unwrap() error {
	return e.Cause
}

// WithContext adds context information to the error
func (e *IconCacheError) WithContext(key string, value any) *IconCacheError {
	if e.Context == nil {
		e.Context = make(ContextFields)
	}
	e.Context[key] = value
	return e
}

// New creates a new IconCacheError
func New(category ErrorCategory, severity ErrorSeverity, message string) *IconCacheError {
	return &IconCacheError{
		Category: category,
		Severity: severity,
		Message:  message,
	}
}

// Wrap creates a new IconCacheError that wraps an existing error
func Wrap(err error, category ErrorCategory, severity ErrorSeverity, message string) *IconCacheError {
	return &IconCacheError{
		Category: category,
		Severity: severity,
		Message:  message,
		Cause:    err,
	}
}

// As finds the outermost IconCacheError in err's chain.
func As(err error) (*IconCacheError, bool) {
	var ice *IconCacheError
	if errors.As(err, &ice) {
		return ice, true
	}
	return nil, false
}

// IsCategory checks if an error belongs to a specific category
func IsCategory(err error, category ErrorCategory) bool {
	if ice, ok := As(err); ok {
		return ice.Category == category
	}
	return false
}

// GetCategory extracts the category from an error, or returns CategoryInternal if not an IconCacheError
func GetCategory(err error) ErrorCategory {
	if ice, ok := As(err); ok {
		return ice.Category
	}
	return CategoryInternal
}
