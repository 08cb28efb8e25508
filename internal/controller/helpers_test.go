package controller

import (
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"testing"

	domainErrors "github.com/cassiomorais/recurly-gateway/internal/domain/errors"
	"github.com/cassiomorais/recurly-gateway/internal/recurly"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteError_Mappings(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"validation", domainErrors.NewValidationError("token", "required"), 400, "validation_error"},
		{"provider not found", domainErrors.ErrProviderNotFound, 404, "provider_not_found"},
		{"provider unavailable", domainErrors.ErrProviderUnavailable, 503, "provider_unavailable"},
		{"invoice lookup", domainErrors.ErrInvoiceNotFound, 502, "invoice_lookup_failed"},
		{"transaction lookup", domainErrors.ErrTransactionNotFound, 502, "invoice_lookup_failed"},
		{"line item lookup", domainErrors.ErrLineItemNotFound, 502, "invoice_lookup_failed"},
		{"wrapped lookup", fmt.Errorf("charging: %w", domainErrors.ErrInvoiceNotFound), 502, "invoice_lookup_failed"},
		{"upstream", &recurly.APIError{Status: 422, Body: "invalid token"}, 502, "upstream_error"},
		{"domain error", domainErrors.NewDomainError("card_expired", "card expired", nil), 422, "card_expired"},
		{"unknown", fmt.Errorf("boom"), 500, "internal_error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			writeError(rec, tt.err)

			assert.Equal(t, tt.wantStatus, rec.Code)

			var resp ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.Equal(t, tt.wantCode, resp.Code)
		})
	}
}

func TestWriteError_UnknownErrorHidesDetails(t *testing.T) {
	rec := httptest.NewRecorder()
	writeError(rec, fmt.Errorf("pq: secret connection string"))

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "internal server error", resp.Error)
}
