package providers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/cassiomorais/recurly-gateway/internal/domain/errors"
	"github.com/cassiomorais/recurly-gateway/internal/recurly"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRecurlyProvider_MissingCredentials(t *testing.T) {
	_, err := NewRecurlyProvider(recurly.Config{Subdomain: "acme"}, zerolog.Nop())
	assert.ErrorIs(t, err, errors.ErrMissingCredentials)
}

func TestRecurlyProvider_Charge_RequiresPaymentMethod(t *testing.T) {
	p, err := NewRecurlyProvider(recurly.Config{
		Subdomain: "acme", APIKey: "k", PublicKey: "p",
	}, zerolog.Nop())
	require.NoError(t, err)

	_, err = p.Charge(context.Background(), ChargeRequest{AmountCents: 1000})

	var validationErr *errors.ValidationError
	assert.ErrorAs(t, err, &validationErr)
}

func TestRecurlyProvider_Charge_TokenPurchase(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			w.Write([]byte(`{"uuid":"resp-1"}`))
			return
		}
		w.Write([]byte(`{"data":[{
			"uuid":"inv-1","state":"paid","paid":12.5,
			"account":{"email":"buyer@example.com"},
			"transactions":[{"uuid":"txn-1","status":"success"}],
			"line_items":[{"type":"charge","uuid":"li-1"}]
		}]}`))
	}))
	defer ts.Close()

	p, err := NewRecurlyProvider(recurly.Config{
		Subdomain: "acme", APIKey: "k", PublicKey: "p", Host: ts.URL, TestMode: true,
	}, zerolog.Nop())
	require.NoError(t, err)

	result, err := p.Charge(context.Background(), ChargeRequest{
		AmountCents: 1250,
		Token:       "tok_abc",
		Email:       "buyer@example.com",
	})
	require.NoError(t, err)

	assert.True(t, result.Success)
	assert.Equal(t, "resp-1", result.Authorization)
	assert.Equal(t, "success", result.Message)
	assert.True(t, result.TestMode)
}

func TestMockProvider_Charge(t *testing.T) {
	p := NewMockProvider("sandbox", WithLatency(time.Millisecond))

	result, err := p.Charge(context.Background(), ChargeRequest{AmountCents: 100, Token: "tok"})
	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.NotEmpty(t, result.Authorization)
}

func TestMockProvider_AlwaysDeclines(t *testing.T) {
	p := NewMockProvider("sandbox", WithLatency(time.Millisecond), WithDeclineRate(1.0))

	result, err := p.Charge(context.Background(), ChargeRequest{AmountCents: 100, Token: "tok"})
	require.NoError(t, err)
	assert.False(t, result.Success)
	assert.Empty(t, result.Authorization)
}

func TestMockProvider_LookupFailure(t *testing.T) {
	p := NewMockProvider("sandbox", WithLatency(time.Millisecond), WithLookupFailureRate(1.0))

	_, err := p.Charge(context.Background(), ChargeRequest{AmountCents: 100, Token: "tok"})
	assert.ErrorIs(t, err, errors.ErrInvoiceNotFound)
}
