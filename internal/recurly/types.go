package recurly

import (
	"bytes"
	"encoding/json"
)

// Invoice states and line item types the reconciler cares about.
const (
	invoiceStateCollected = "collected"
	lineItemTypeCredit    = "credit"
)

// Collection decodes provider list fields that arrive either as a bare JSON
// array or wrapped in a {"data": [...]} envelope. The invoice endpoints use
// both shapes for the same logical field depending on the resource expansion.
type Collection[T any] struct {
	Data []T
}

func (c *Collection[T]) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		c.Data = nil
		return nil
	}
	if b[0] == '[' {
		return json.Unmarshal(b, &c.Data)
	}
	var envelope struct {
		Data []T `json:"data"`
	}
	if err := json.Unmarshal(b, &envelope); err != nil {
		return err
	}
	c.Data = envelope.Data
	return nil
}

func (c Collection[T]) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Data []T `json:"data"`
	}{c.Data})
}

// First returns the first element, or the zero value and false when empty.
func (c Collection[T]) First() (T, bool) {
	if len(c.Data) == 0 {
		var zero T
		return zero, false
	}
	return c.Data[0], true
}

// Transaction is a single financial movement attached to an invoice.
type Transaction struct {
	UUID   string `json:"uuid"`
	Status string `json:"status"`
}

// LineItem is a single billed item on an invoice.
type LineItem struct {
	Type string `json:"type"`
	UUID string `json:"uuid"`
}

// InvoiceAccount carries the slice of account data embedded in an invoice.
type InvoiceAccount struct {
	Email string `json:"email"`
}

// Invoice is the provider-side billing record aggregating the transactions of
// a purchase. It is owned and mutated entirely by the provider; this adapter
// only ever reads it.
type Invoice struct {
	UUID            string                  `json:"uuid"`
	State           string                  `json:"state"`
	Paid            float64                 `json:"paid"`
	SubtotalInCents int64                   `json:"subtotal_in_cents"`
	Account         InvoiceAccount          `json:"account"`
	LineItems       Collection[LineItem]    `json:"line_items"`
	Transactions    Collection[Transaction] `json:"transactions"`
}

// ChargeResponse is the JSON body returned by the purchases and subscriptions
// endpoints. Depending on the invoice type the authoritative uuid may live at
// the top level, on the nested charge invoice, or only on the invoice fetched
// through the follow-up list call.
type ChargeResponse struct {
	UUID          string   `json:"uuid"`
	ChargeInvoice *Invoice `json:"charge_invoice"`
}

// invoicesPage is the envelope returned by GET invoices, most-recent-first.
type invoicesPage struct {
	Data []Invoice `json:"data"`
}

// Response is the reconciled result handed back to the caller. Authorization
// is the stable identifier usable for later lookups against this payment.
type Response struct {
	Success       bool
	Message       string
	Authorization string
	TestMode      bool
	// Raw is the purchase response body exactly as the provider sent it. The
	// uuid backfill the reconciler performs is not reflected here; the
	// backfilled value surfaces through Authorization.
	Raw json.RawMessage
}
