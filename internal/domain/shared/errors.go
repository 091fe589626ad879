package shared

import "fmt"

// DomainError represents a domain-level error
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error implements the error interface
func (e *DomainError) Error() string {
	return e.Message
}

// Is reports whether target carries the same error code. Sentinel errors
// below can therefore be matched with errors.Is against errors created
// later with a more specific message.
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// NewDomainErrorf creates a new domain error with a formatted message
func NewDomainErrorf(code, format string, args ...any) *DomainError {
	return &DomainError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Common domain errors
var (
	ErrNotFound            = NewDomainError("NOT_FOUND", "Resource not found")
	ErrConflict            = NewDomainError("CONFLICT", "Resource already exists")
	ErrValidation          = NewDomainError("VALIDATION_FAILURE", "Invalid input provided")
	ErrInvalidState        = NewDomainError("INVALID_STATE", "Operation not allowed in current state")
	ErrInsufficientStock   = NewDomainError("INSUFFICIENT_STOCK", "Insufficient stock available")
	ErrPaymentInsufficient = NewDomainError("PAYMENT_INSUFFICIENT", "Amount tendered is less than total")
	ErrInsufficientPoints  = NewDomainError("INSUFFICIENT_POINTS", "Insufficient loyalty points")
	ErrUndecodableFile     = NewDomainError("UNDECODABLE_FILE", "File could not be decoded with any supported encoding")
	ErrMissingColumns      = NewDomainError("MISSING_COLUMNS", "Required columns are missing")
	ErrStorageFailure      = NewDomainError("STORAGE_FAILURE", "Underlying storage commit failed")
)
