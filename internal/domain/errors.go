package domain

import "fmt"

// DomainError represents a domain-specific error
type DomainError struct {
	Code    string
	Message string
	Err     error
}

// Error implements the error interface
func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error
func (e *DomainError) Unwrap() error {
	return e.Err
}

// NewDomainError creates a new DomainError
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
		Err:     nil,
	}
}

// NewDomainErrorWithCause creates a new DomainError with an underlying cause
func NewDomainErrorWithCause(code, message string, err error) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Common domain error codes
const (
	ErrCodeValidation     = "VALIDATION_ERROR"
	ErrCodeNotFound       = "NOT_FOUND"
	ErrCodeNotImplemented = "NOT_IMPLEMENTED"
	ErrCodeInternalError  = "INTERNAL_ERROR"
)

// ErrEmptyQuery rejects searches with no query text. Unknown search types
// and sort keys fall back to defaults instead of erroring.
var ErrEmptyQuery = NewDomainError(ErrCodeValidation, "query is required")

// Unimplemented search modalities. These are permanent capability signals,
// not transient failures.
var (
	ErrVoiceSearchNotImplemented  = NewDomainError(ErrCodeNotImplemented, "voice search is not implemented")
	ErrVisualSearchNotImplemented = NewDomainError(ErrCodeNotImplemented, "visual search is not implemented")
)
