package service

import (
	"context"
	"testing"
	"time"

	domainErrors "github.com/cassiomorais/recurly-gateway/internal/domain/errors"
	"github.com/cassiomorais/recurly-gateway/internal/infrastructure/observability"
	"github.com/cassiomorais/recurly-gateway/internal/providers"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T, provs ...providers.Provider) (*ChargeService, *observability.Metrics) {
	t.Helper()
	metrics := observability.NewMetrics("test", prometheus.NewRegistry())
	factory := providers.NewFactory(providers.BreakerSettings{}, metrics, provs...)
	return NewChargeService(factory, metrics, zerolog.Nop()), metrics
}

func TestChargeService_Approved(t *testing.T) {
	svc, metrics := newTestService(t, providers.NewMockProvider("recurly", providers.WithLatency(time.Millisecond)))

	result, err := svc.Charge(context.Background(), "recurly", providers.ChargeRequest{
		AmountCents: 1000,
		Token:       "tok",
	})
	require.NoError(t, err)

	assert.True(t, result.Success)
	assert.NotEmpty(t, result.Authorization)
	assert.Zero(t, testutil.ToFloat64(metrics.InvoiceLookupFailures.WithLabelValues("invoice")))
}

func TestChargeService_DeclineIsNotAnError(t *testing.T) {
	svc, metrics := newTestService(t, providers.NewMockProvider("recurly",
		providers.WithLatency(time.Millisecond),
		providers.WithDeclineRate(1.0),
	))

	result, err := svc.Charge(context.Background(), "recurly", providers.ChargeRequest{
		AmountCents: 1000,
		Token:       "tok",
	})
	require.NoError(t, err)

	assert.False(t, result.Success)
	// a decline performed no failed lookup
	assert.Zero(t, testutil.ToFloat64(metrics.InvoiceLookupFailures.WithLabelValues("invoice")))
}

func TestChargeService_LookupFailureSurfacesAsError(t *testing.T) {
	svc, metrics := newTestService(t, providers.NewMockProvider("recurly",
		providers.WithLatency(time.Millisecond),
		providers.WithLookupFailureRate(1.0),
	))

	result, err := svc.Charge(context.Background(), "recurly", providers.ChargeRequest{
		AmountCents: 1000,
		Token:       "tok",
	})

	assert.Nil(t, result)
	assert.ErrorIs(t, err, domainErrors.ErrInvoiceNotFound)
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.InvoiceLookupFailures.WithLabelValues("invoice")))
}

func TestChargeService_UnknownProvider(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Charge(context.Background(), "stripe", providers.ChargeRequest{Token: "tok"})
	assert.ErrorIs(t, err, domainErrors.ErrProviderNotFound)
}
