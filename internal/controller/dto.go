package controller

import (
	"github.com/cassiomorais/recurly-gateway/internal/providers"
)

// --- Request DTOs ---
// These DTOs handle HTTP/JSON concerns (string amounts, validation tags).
// Controllers convert these to provider-layer requests before calling the
// charge service.

// CardRequest carries raw card fields when no stored token is available.
type CardRequest struct {
	Number            string `json:"number" validate:"required,numeric"`
	Month             int    `json:"month" validate:"required,min=1,max=12"`
	Year              int    `json:"year" validate:"required,min=2000"`
	VerificationValue string `json:"verification_value,omitempty"`
}

// AddressRequest is a postal address in API requests.
type AddressRequest struct {
	Address1 string `json:"address1,omitempty"`
	Address2 string `json:"address2,omitempty"`
	City     string `json:"city,omitempty"`
	State    string `json:"state,omitempty"`
	Zip      string `json:"zip,omitempty"`
	Country  string `json:"country,omitempty"`
}

// CreateChargeRequest holds the input for creating a charge. Exactly one of
// token or card must be present; a plan_code turns the charge into a
// subscription signup, where a zero amount is a valid trial.
type CreateChargeRequest struct {
	Provider    string `json:"provider,omitempty"`
	AmountCents int64  `json:"amount_cents" validate:"required_without=PlanCode,gte=0"`
	Currency    string `json:"currency,omitempty" validate:"omitempty,len=3"`
	PlanCode    string `json:"plan_code,omitempty"`

	Token string       `json:"token,omitempty"`
	Card  *CardRequest `json:"card,omitempty"`

	CustomerCode string `json:"customer_code,omitempty"`
	FirstName    string `json:"first_name,omitempty"`
	LastName     string `json:"last_name,omitempty"`
	Email        string `json:"email,omitempty" validate:"omitempty,email"`

	BillingAddress  *AddressRequest `json:"billing_address,omitempty"`
	ShippingAddress *AddressRequest `json:"shipping_address,omitempty"`
	Phone           string          `json:"phone,omitempty"`

	Description string           `json:"description,omitempty"`
	LineItems   []map[string]any `json:"line_items,omitempty"`
}

// --- Response DTOs ---

// ChargeResponse represents the reconciled outcome of a charge.
type ChargeResponse struct {
	Success       bool   `json:"success"`
	Message       string `json:"message"`
	Authorization string `json:"authorization,omitempty"`
	TestMode      bool   `json:"test_mode"`
}

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// --- Conversion helpers ---

// ToChargeRequest converts the API request to a provider-layer request.
func (r *CreateChargeRequest) ToChargeRequest() providers.ChargeRequest {
	req := providers.ChargeRequest{
		AmountCents:     r.AmountCents,
		Currency:        r.Currency,
		PlanCode:        r.PlanCode,
		Token:           r.Token,
		CustomerCode:    r.CustomerCode,
		FirstName:       r.FirstName,
		LastName:        r.LastName,
		Email:           r.Email,
		BillingAddress:  addressFrom(r.BillingAddress),
		ShippingAddress: addressFrom(r.ShippingAddress),
		Phone:           r.Phone,
		Description:     r.Description,
		LineItems:       r.LineItems,
	}
	if r.Card != nil {
		req.Card = &providers.CardDetails{
			Number:            r.Card.Number,
			Month:             r.Card.Month,
			Year:              r.Card.Year,
			VerificationValue: r.Card.VerificationValue,
		}
	}
	return req
}

// FromChargeResult converts a provider result to an API response.
func FromChargeResult(res *providers.ChargeResult) *ChargeResponse {
	return &ChargeResponse{
		Success:       res.Success,
		Message:       res.Message,
		Authorization: res.Authorization,
		TestMode:      res.TestMode,
	}
}

func addressFrom(a *AddressRequest) *providers.Address {
	if a == nil {
		return nil
	}
	return &providers.Address{
		Address1: a.Address1,
		Address2: a.Address2,
		City:     a.City,
		State:    a.State,
		Zip:      a.Zip,
		Country:  a.Country,
	}
}
