package providers

import (
	"context"

	"github.com/cassiomorais/recurly-gateway/internal/domain/errors"
	"github.com/cassiomorais/recurly-gateway/internal/recurly"
	"github.com/rs/zerolog"
)

// RecurlyProvider adapts the generic Provider contract onto the Recurly
// gateway.
type RecurlyProvider struct {
	gateway *recurly.Gateway
}

func NewRecurlyProvider(cfg recurly.Config, logger zerolog.Logger) (*RecurlyProvider, error) {
	gw, err := recurly.New(cfg, logger)
	if err != nil {
		return nil, err
	}
	return &RecurlyProvider{gateway: gw}, nil
}

func (p *RecurlyProvider) Name() string { return "recurly" }

func (p *RecurlyProvider) Charge(ctx context.Context, req ChargeRequest) (*ChargeResult, error) {
	method, err := paymentMethodFrom(req)
	if err != nil {
		return nil, err
	}

	resp, err := p.gateway.Purchase(ctx, req.AmountCents, method, recurly.PurchaseOptions{
		PlanCode:        req.PlanCode,
		Currency:        req.Currency,
		Code:            req.CustomerCode,
		FirstName:       req.FirstName,
		LastName:        req.LastName,
		Email:           req.Email,
		BillingAddress:  toRecurlyAddress(req.BillingAddress),
		ShippingAddress: toRecurlyAddress(req.ShippingAddress),
		Phone:           req.Phone,
		Description:     req.Description,
		LineItems:       req.LineItems,
	})
	if err != nil {
		return nil, err
	}

	return &ChargeResult{
		Success:       resp.Success,
		Message:       resp.Message,
		Authorization: resp.Authorization,
		TestMode:      resp.TestMode,
	}, nil
}

func paymentMethodFrom(req ChargeRequest) (recurly.PaymentMethod, error) {
	switch {
	case req.Token != "":
		return recurly.Token(req.Token), nil
	case req.Card != nil:
		return recurly.Card{
			Number:            req.Card.Number,
			Month:             req.Card.Month,
			Year:              req.Card.Year,
			VerificationValue: req.Card.VerificationValue,
		}, nil
	default:
		return nil, errors.NewValidationError("payment_method", "either token or card is required")
	}
}

func toRecurlyAddress(a *Address) *recurly.Address {
	if a == nil {
		return nil
	}
	return &recurly.Address{
		Address1: a.Address1,
		Address2: a.Address2,
		City:     a.City,
		State:    a.State,
		Zip:      a.Zip,
		Country:  a.Country,
	}
}
