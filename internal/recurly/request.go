package recurly

// PaymentMethod is the tagged variant for how a purchase is funded: either a
// pre-tokenized billing reference or raw card details.
type PaymentMethod interface {
	applyTo(bi *BillingInfoParams)
}

// Token is an opaque stored billing token issued by the provider.
type Token string

// applyTo merges the token into the billing info. The merge is idempotent: an
// already-set token is never overwritten.
func (t Token) applyTo(bi *BillingInfoParams) {
	if bi.TokenID == "" {
		bi.TokenID = string(t)
	}
}

// Card holds raw card details. The verification value is optional and omitted
// from the payload entirely when empty.
type Card struct {
	Number            string
	Month             int
	Year              int
	VerificationValue string
}

func (c Card) applyTo(bi *BillingInfoParams) {
	bi.Number = c.Number
	bi.Month = c.Month
	bi.Year = c.Year
	if c.VerificationValue != "" {
		bi.VerificationValue = c.VerificationValue
	}
}

// Address is a postal address as the provider schema spells it.
type Address struct {
	Address1 string `json:"address1,omitempty"`
	Address2 string `json:"address2,omitempty"`
	City     string `json:"city,omitempty"`
	State    string `json:"state,omitempty"`
	Zip      string `json:"zip,omitempty"`
	Country  string `json:"country,omitempty"`
}

// PurchaseOptions carries the customer, billing, and mode fields of a payment
// intent. A present PlanCode switches the purchase into subscription mode.
type PurchaseOptions struct {
	PlanCode        string
	Currency        string
	Code            string
	FirstName       string
	LastName        string
	Email           string
	BillingAddress  *Address
	Address         *Address // legacy alias for BillingAddress
	ShippingAddress *Address
	Phone           string
	Description     string
	LineItems       []map[string]any
}

func (o PurchaseOptions) subscription() bool {
	return o.PlanCode != ""
}

// billingAddress resolves the billing address, honoring the legacy field.
func (o PurchaseOptions) billingAddress() *Address {
	if o.BillingAddress != nil {
		return o.BillingAddress
	}
	return o.Address
}

// BillingInfoParams is the billing_info node of the purchase payload. Exactly
// one of TokenID or the raw card fields is ever populated.
type BillingInfoParams struct {
	TokenID           string `json:"token_id,omitempty"`
	Number            string `json:"number,omitempty"`
	Month             int    `json:"month,omitempty"`
	Year              int    `json:"year,omitempty"`
	VerificationValue string `json:"verification_value,omitempty"`
	Address1          string `json:"address1,omitempty"`
	Address2          string `json:"address2,omitempty"`
	City              string `json:"city,omitempty"`
	State             string `json:"state,omitempty"`
	Zip               string `json:"zip,omitempty"`
	Country           string `json:"country,omitempty"`
	Phone             string `json:"phone,omitempty"`
}

func (bi *BillingInfoParams) mergeAddress(a Address) {
	bi.Address1 = a.Address1
	bi.Address2 = a.Address2
	bi.City = a.City
	bi.State = a.State
	bi.Zip = a.Zip
	bi.Country = a.Country
}

// AccountParams is the account node of the purchase payload.
type AccountParams struct {
	Code        string            `json:"code,omitempty"`
	FirstName   string            `json:"first_name,omitempty"`
	LastName    string            `json:"last_name,omitempty"`
	Email       string            `json:"email,omitempty"`
	BillingInfo BillingInfoParams `json:"billing_info"`
}

// PurchasePayload mirrors the provider request schema for both the purchases
// and subscriptions endpoints.
type PurchasePayload struct {
	Currency        string           `json:"currency"`
	PlanCode        string           `json:"plan_code,omitempty"`
	Account         AccountParams    `json:"account"`
	ShippingAddress *Address         `json:"shipping_address,omitempty"`
	LineItems       []map[string]any `json:"line_items,omitempty"`
	Description     string           `json:"description,omitempty"`
}

// buildPurchase translates a payment intent into the provider payload. It is
// a pure function of its inputs: no I/O, no validation beyond presence checks.
// Malformed caller-supplied line items pass through unchanged.
func buildPurchase(method PaymentMethod, opts PurchaseOptions, defaultCurrency string) *PurchasePayload {
	post := &PurchasePayload{}

	if opts.subscription() {
		post.PlanCode = opts.PlanCode
	}
	post.Currency = opts.Currency
	if post.Currency == "" {
		post.Currency = defaultCurrency
	}

	if opts.Description != "" {
		post.Description = opts.Description
	}
	method.applyTo(&post.Account.BillingInfo)

	// Line items only accompany one-off purchases, never subscriptions.
	if !opts.subscription() && len(opts.LineItems) > 0 {
		post.LineItems = opts.LineItems
	}

	if opts.Code != "" {
		post.Account.Code = opts.Code
	}
	if opts.FirstName != "" {
		post.Account.FirstName = opts.FirstName
	}
	if opts.LastName != "" {
		post.Account.LastName = opts.LastName
	}
	if opts.Email != "" {
		post.Account.Email = opts.Email
	}

	billing := opts.billingAddress()
	if billing != nil {
		post.Account.BillingInfo.mergeAddress(*billing)
		if opts.Phone != "" {
			post.Account.BillingInfo.Phone = opts.Phone
		}
	}
	if opts.ShippingAddress != nil {
		// TODO: the shipping address is mirrored from the billing address and
		// the caller-supplied value is discarded; confirm with the billing
		// team before changing this, downstream consumers may rely on it.
		post.ShippingAddress = billing
	}

	return post
}
