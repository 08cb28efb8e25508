package providers

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	domainErrors "github.com/cassiomorais/recurly-gateway/internal/domain/errors"
	"github.com/google/uuid"
)

// MockProvider simulates a gateway for tests and local development.
type MockProvider struct {
	name        string
	declineRate float64 // 0.0 to 1.0
	latency     time.Duration
	lookupRate  float64 // 0.0 to 1.0, rate of simulated invoice lookup failures
}

type MockProviderOption func(*MockProvider)

func WithDeclineRate(rate float64) MockProviderOption {
	return func(p *MockProvider) { p.declineRate = rate }
}

func WithLatency(d time.Duration) MockProviderOption {
	return func(p *MockProvider) { p.latency = d }
}

func WithLookupFailureRate(rate float64) MockProviderOption {
	return func(p *MockProvider) { p.lookupRate = rate }
}

func NewMockProvider(name string, opts ...MockProviderOption) *MockProvider {
	p := &MockProvider{
		name:        name,
		declineRate: 0.0,
		latency:     100 * time.Millisecond,
		lookupRate:  0.0,
	}
	for _, o := range opts {
		o(p)
	}
	return p
}

func (p *MockProvider) Name() string { return p.name }

func (p *MockProvider) Charge(ctx context.Context, req ChargeRequest) (*ChargeResult, error) {
	// Simulate latency
	select {
	case <-time.After(p.latency):
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	// Simulate the follow-up invoice read coming back empty
	if rand.Float64() < p.lookupRate {
		return nil, domainErrors.ErrInvoiceNotFound
	}

	// Simulate a decline: a well-formed response without a uuid
	if rand.Float64() < p.declineRate {
		return &ChargeResult{
			Success: false,
			Message: "declined",
		}, nil
	}

	return &ChargeResult{
		Success:       true,
		Message:       "success",
		Authorization: fmt.Sprintf("%s_auth_%s", p.name, uuid.New().String()[:8]),
		TestMode:      true,
	}, nil
}
