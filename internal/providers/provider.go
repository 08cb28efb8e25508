package providers

import (
	"context"
)

// ChargeResult is the provider-agnostic outcome of a charge. Success=false
// with a message is a decline, not an error.
type ChargeResult struct {
	Success       bool
	Message       string
	Authorization string
	TestMode      bool
}

type Provider interface {
	// Name returns the provider name.
	Name() string
	// Charge performs a purchase or subscription charge through the provider.
	Charge(ctx context.Context, req ChargeRequest) (*ChargeResult, error)
}

// CardDetails carries raw card fields when no stored token is available.
type CardDetails struct {
	Number            string
	Month             int
	Year              int
	VerificationValue string
}

// Address is a provider-agnostic postal address.
type Address struct {
	Address1 string
	Address2 string
	City     string
	State    string
	Zip      string
	Country  string
}

// ChargeRequest carries the caller's payment intent. Exactly one of Token or
// Card funds the charge; a present PlanCode makes it a subscription charge.
type ChargeRequest struct {
	AmountCents int64
	Currency    string
	PlanCode    string

	Token string
	Card  *CardDetails

	CustomerCode string
	FirstName    string
	LastName     string
	Email        string

	BillingAddress  *Address
	ShippingAddress *Address
	Phone           string

	Description string
	LineItems   []map[string]any
}
