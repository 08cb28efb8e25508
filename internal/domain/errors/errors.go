package errors

import (
	"errors"
	"fmt"
)

var (
	// Configuration errors
	ErrMissingCredentials = errors.New("missing gateway credentials")

	// Invoice lookup errors. These surface when the charge itself went through
	// but the follow-up invoice read could not resolve the data needed to
	// derive a message or authorization. They must stay distinguishable from a
	// declined charge, which is reported as success=false, never as an error.
	ErrInvoiceNotFound     = errors.New("no matching invoice found")
	ErrTransactionNotFound = errors.New("no transaction found on invoice")
	ErrLineItemNotFound    = errors.New("no line item found on invoice")

	// Provider errors
	ErrProviderNotFound    = errors.New("payment provider not found")
	ErrProviderUnavailable = errors.New("payment provider unavailable")

	// Validation errors
	ErrValidationFailed = errors.New("validation failed")
	ErrInvalidInput     = errors.New("invalid input")
	ErrInvalidAmount    = errors.New("invalid amount")
	ErrInvalidCurrency  = errors.New("invalid currency")
)

// DomainError wraps errors with additional context
type DomainError struct {
	Code    string
	Message string
	Err     error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string, err error) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// ValidationError represents a validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed for field %s: %s", e.Field, e.Message)
}

// NewValidationError creates a new validation error
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: message,
	}
}
