package providers

import (
	"fmt"
	"time"

	"github.com/cassiomorais/recurly-gateway/internal/domain/errors"
	"github.com/cassiomorais/recurly-gateway/internal/infrastructure/observability"
	"github.com/sony/gobreaker/v2"
)

// BreakerSettings tunes the per-provider circuit breakers.
type BreakerSettings struct {
	Threshold int
	Timeout   time.Duration
}

type Factory struct {
	providers       map[string]Provider
	circuitBreakers map[string]*gobreaker.CircuitBreaker[*ChargeResult]
	settings        BreakerSettings
	metrics         *observability.Metrics
}

func NewFactory(settings BreakerSettings, metrics *observability.Metrics, providersList ...Provider) *Factory {
	if settings.Threshold <= 0 {
		settings.Threshold = 10
	}
	if settings.Timeout <= 0 {
		settings.Timeout = 30 * time.Second
	}

	f := &Factory{
		providers:       make(map[string]Provider),
		circuitBreakers: make(map[string]*gobreaker.CircuitBreaker[*ChargeResult]),
		settings:        settings,
		metrics:         metrics,
	}
	for _, p := range providersList {
		f.Register(p)
	}
	return f
}

func (f *Factory) Register(p Provider) {
	f.providers[p.Name()] = p
	f.circuitBreakers[p.Name()] = gobreaker.NewCircuitBreaker[*ChargeResult](gobreaker.Settings{
		Name:        p.Name(),
		MaxRequests: 10,
		Interval:    60 * time.Second,
		Timeout:     f.settings.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.Requests >= uint32(f.settings.Threshold) && failureRatio >= 0.6
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			if f.metrics != nil {
				f.metrics.CircuitBreakerState.WithLabelValues(name).Set(breakerStateValue(to))
			}
		},
	})
}

func (f *Factory) Get(name string) (Provider, *gobreaker.CircuitBreaker[*ChargeResult], error) {
	p, ok := f.providers[name]
	if !ok {
		return nil, nil, fmt.Errorf("unknown provider %q: %w", name, errors.ErrProviderNotFound)
	}
	breaker := f.circuitBreakers[name]
	return p, breaker, nil
}

func breakerStateValue(s gobreaker.State) float64 {
	switch s {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	default:
		return 2
	}
}
