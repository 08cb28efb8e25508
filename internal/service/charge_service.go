package service

import (
	"context"
	stderrors "errors"
	"fmt"
	"time"

	domainErrors "github.com/cassiomorais/recurly-gateway/internal/domain/errors"
	"github.com/cassiomorais/recurly-gateway/internal/infrastructure/observability"
	"github.com/cassiomorais/recurly-gateway/internal/providers"
	"github.com/rs/zerolog"
	"github.com/sony/gobreaker/v2"
)

// ChargeService routes charges to a provider through its circuit breaker and
// records the outcome. It holds no per-charge state.
type ChargeService struct {
	factory *providers.Factory
	metrics *observability.Metrics
	logger  zerolog.Logger
}

func NewChargeService(factory *providers.Factory, metrics *observability.Metrics, logger zerolog.Logger) *ChargeService {
	return &ChargeService{
		factory: factory,
		metrics: metrics,
		logger:  logger,
	}
}

// Charge executes one charge against the named provider. A decline comes back
// as a result with Success=false; an invoice lookup failure after a charge
// comes back as an error matching ErrInvoiceNotFound, so the two are never
// conflated.
func (s *ChargeService) Charge(ctx context.Context, providerName string, req providers.ChargeRequest) (*providers.ChargeResult, error) {
	provider, breaker, err := s.factory.Get(providerName)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	result, err := breaker.Execute(func() (*providers.ChargeResult, error) {
		return provider.Charge(ctx, req)
	})
	duration := time.Since(start).Seconds()

	status := s.classify(result, err)
	s.metrics.ChargesTotal.WithLabelValues(providerName, status).Inc()
	s.metrics.ChargeDuration.WithLabelValues(providerName, status).Observe(duration)
	s.metrics.CircuitBreakerRequests.WithLabelValues(providerName, statusToBreakerResult(err)).Inc()

	if err != nil {
		s.metrics.ChargeErrors.WithLabelValues(providerName, status).Inc()
		s.logger.Error().Err(err).Str("provider", providerName).Msg("Charge failed")

		if stderrors.Is(err, gobreaker.ErrOpenState) || stderrors.Is(err, gobreaker.ErrTooManyRequests) {
			return nil, fmt.Errorf("%w: circuit breaker rejected the call", domainErrors.ErrProviderUnavailable)
		}
		if resource, ok := lookupFailureResource(err); ok {
			s.metrics.InvoiceLookupFailures.WithLabelValues(resource).Inc()
		}
		return nil, err
	}

	s.logger.Info().
		Str("provider", providerName).
		Bool("success", result.Success).
		Str("message", result.Message).
		Msg("Charge reconciled")

	return result, nil
}

func (s *ChargeService) classify(result *providers.ChargeResult, err error) string {
	if _, ok := lookupFailureResource(err); ok {
		return "lookup_failed"
	}
	switch {
	case stderrors.Is(err, gobreaker.ErrOpenState), stderrors.Is(err, gobreaker.ErrTooManyRequests):
		return "breaker_open"
	case err != nil:
		return "error"
	case result != nil && result.Success:
		return "approved"
	default:
		return "declined"
	}
}

// lookupFailureResource maps a reconciliation lookup error to the resource
// that could not be resolved. Only errors from the invoice-read path qualify.
func lookupFailureResource(err error) (string, bool) {
	switch {
	case stderrors.Is(err, domainErrors.ErrInvoiceNotFound):
		return "invoice", true
	case stderrors.Is(err, domainErrors.ErrTransactionNotFound):
		return "transaction", true
	case stderrors.Is(err, domainErrors.ErrLineItemNotFound):
		return "line_item", true
	}
	return "", false
}

func statusToBreakerResult(err error) string {
	if err != nil {
		return "failure"
	}
	return "success"
}
