package recurly

import (
	"context"
	"fmt"

	"github.com/cassiomorais/recurly-gateway/internal/domain/errors"
	"github.com/rs/zerolog"
)

// Config holds the per-site credentials and knobs for one gateway instance.
// Subdomain, APIKey, and PublicKey are all required.
type Config struct {
	Subdomain string
	APIKey    string
	PublicKey string
	// Host overrides the production API host, mainly for tests.
	Host string
	// DefaultCurrency is used when the caller supplies none. Defaults to USD.
	DefaultCurrency string
	// TestMode is echoed back on every response so callers can tell sandbox
	// charges from live ones.
	TestMode bool
}

const defaultCurrency = "USD"

// Gateway adapts generic purchase intents onto the provider's HTTP/JSON API.
// A single Gateway is safe for concurrent use: all per-call state, including
// the invoice cache the reconciler needs, lives in per-call values.
type Gateway struct {
	client          *Client
	defaultCurrency string
	testMode        bool
	logger          zerolog.Logger
}

// New validates the credentials and builds a gateway. Missing credentials are
// a configuration error, surfaced here and never at charge time.
func New(cfg Config, logger zerolog.Logger) (*Gateway, error) {
	if cfg.Subdomain == "" {
		return nil, fmt.Errorf("%w: subdomain", errors.ErrMissingCredentials)
	}
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("%w: api key", errors.ErrMissingCredentials)
	}
	if cfg.PublicKey == "" {
		return nil, fmt.Errorf("%w: public key", errors.ErrMissingCredentials)
	}

	currency := cfg.DefaultCurrency
	if currency == "" {
		currency = defaultCurrency
	}

	return &Gateway{
		client:          NewClient(cfg.Subdomain, cfg.APIKey, cfg.Host, logger),
		defaultCurrency: currency,
		testMode:        cfg.TestMode,
		logger:          logger,
	}, nil
}

// Purchase executes a one-off purchase, or a subscription signup when the
// options carry a plan code. It makes one write round trip and at most one
// follow-up invoice read; transport faults propagate unchanged, and a
// declined charge comes back as Success=false rather than an error.
func (g *Gateway) Purchase(ctx context.Context, amountCents int64, method PaymentMethod, opts PurchaseOptions) (*Response, error) {
	payload := buildPurchase(method, opts, g.defaultCurrency)

	endpoint := EndpointPurchases
	if opts.subscription() {
		endpoint = EndpointSubscriptions
	}

	resp, raw, err := g.client.CreatePurchase(ctx, endpoint, payload)
	if err != nil {
		return nil, err
	}

	result, err := newReconciler(g.client, payload.Account.Email, amountCents).reconcile(ctx, resp)
	if err != nil {
		return nil, err
	}
	result.TestMode = g.testMode
	result.Raw = raw

	g.logger.Info().
		Str("endpoint", string(endpoint)).
		Bool("success", result.Success).
		Str("authorization", result.Authorization).
		Msg("Purchase reconciled")

	return result, nil
}
