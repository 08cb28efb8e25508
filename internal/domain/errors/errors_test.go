package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDomainError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *DomainError
		expected string
	}{
		{
			name: "with wrapped error",
			err: &DomainError{
				Code:    "charge_failed",
				Message: "charge processing failed",
				Err:     errors.New("connection reset"),
			},
			expected: "charge processing failed: connection reset",
		},
		{
			name: "without wrapped error",
			err: &DomainError{
				Code:    "invalid_state",
				Message: "cannot reconcile response without an invoice",
				Err:     nil,
			},
			expected: "cannot reconcile response without an invoice",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.err.Error())
		})
	}
}

func TestDomainError_Unwrap(t *testing.T) {
	originalErr := errors.New("original error")
	domainErr := &DomainError{
		Code:    "test",
		Message: "test message",
		Err:     originalErr,
	}

	unwrapped := domainErr.Unwrap()
	assert.Equal(t, originalErr, unwrapped)
}

func TestNewDomainError(t *testing.T) {
	originalErr := errors.New("underlying error")
	err := NewDomainError("test_code", "test message", originalErr)

	assert.NotNil(t, err)
	assert.Equal(t, "test_code", err.Code)
	assert.Equal(t, "test message", err.Message)
	assert.True(t, errors.Is(err, originalErr))
}

func TestValidationError_Error(t *testing.T) {
	err := NewValidationError("email", "cannot be empty")
	assert.Equal(t, "validation failed for field email: cannot be empty", err.Error())
}

func TestLookupErrors_DistinctFromSentinels(t *testing.T) {
	// Wrapped lookup errors must keep matching their sentinel and nothing else.
	wrapped := fmt.Errorf("%w: none of the 3 most recent invoices matches", ErrInvoiceNotFound)

	assert.True(t, errors.Is(wrapped, ErrInvoiceNotFound))
	assert.False(t, errors.Is(wrapped, ErrTransactionNotFound))
	assert.False(t, errors.Is(wrapped, ErrProviderUnavailable))
}
