package recurly

import (
	"context"
	stderrors "errors"
	"fmt"

	"github.com/cassiomorais/recurly-gateway/internal/domain/errors"
)

// recentInvoiceWindow bounds how many of the most recent invoices are scanned
// when resolving the invoice belonging to the purchase that was just made.
const recentInvoiceWindow = 3

type invoiceLister interface {
	ListInvoices(ctx context.Context) ([]Invoice, error)
}

// invoiceContext resolves and caches the relevant invoice for exactly one
// purchase call. It must never outlive the call: sharing it across purchases
// would leak one customer's invoice into another's reconciliation.
type invoiceContext struct {
	lister   invoiceLister
	email    string
	resolved bool
	invoice  *Invoice
	err      error
}

// resolve fetches the invoice list once and picks the first invoice among the
// most recent whose account email matches the submitted account email. The
// outcome, found or not, is cached for the rest of the call.
func (ic *invoiceContext) resolve(ctx context.Context) (*Invoice, error) {
	if ic.resolved {
		return ic.invoice, ic.err
	}
	ic.resolved = true

	invoices, err := ic.lister.ListInvoices(ctx)
	if err != nil {
		ic.err = err
		return nil, ic.err
	}

	n := min(len(invoices), recentInvoiceWindow)
	for i := 0; i < n; i++ {
		if invoices[i].Account.Email == ic.email {
			ic.invoice = &invoices[i]
			return ic.invoice, nil
		}
	}

	ic.err = fmt.Errorf("%w: none of the %d most recent invoices matches the submitted account",
		errors.ErrInvoiceNotFound, recentInvoiceWindow)
	return nil, ic.err
}

// reconciler turns a raw charge response into a single pass/fail result. The
// provider does not answer with approved/declined: a purchase may yield a
// trial (zero-amount) invoice, an invoice fully covered by account credit, a
// subscription invoice, or a plain charged invoice with nested transactions.
type reconciler struct {
	inv         *invoiceContext
	amountCents int64
}

func newReconciler(lister invoiceLister, email string, amountCents int64) *reconciler {
	return &reconciler{
		inv:         &invoiceContext{lister: lister, email: email},
		amountCents: amountCents,
	}
}

// trialPayment reports whether the resolved invoice never produced a
// financial transaction: no transactions and nothing paid.
func (r *reconciler) trialPayment(ctx context.Context) (bool, error) {
	inv, err := r.inv.resolve(ctx)
	if err != nil {
		return false, err
	}
	return len(inv.Transactions.Data) == 0 && inv.Paid == 0.0, nil
}

// paidByCredit reports whether the purchase was fully covered by account
// credit: a collected invoice with no transactions whose first line item is a
// credit and whose subtotal equals the submitted amount. A purchase without a
// resolvable invoice is simply not a credit case, not a failure.
func (r *reconciler) paidByCredit(ctx context.Context) (bool, error) {
	inv, err := r.inv.resolve(ctx)
	if err != nil {
		if stderrors.Is(err, errors.ErrInvoiceNotFound) {
			return false, nil
		}
		return false, err
	}

	if len(inv.Transactions.Data) != 0 || inv.State != invoiceStateCollected {
		return false, nil
	}
	item, ok := inv.LineItems.First()
	return ok && item.Type == lineItemTypeCredit && inv.SubtotalInCents == r.amountCents, nil
}

// reconcile derives (success, message, authorization) from the charge
// response, reading the invoice list at most once. The response uuid is
// backfilled in place before success is judged, so a credit-covered or
// invoice-embedded charge still counts as successful.
func (r *reconciler) reconcile(ctx context.Context, resp *ChargeResponse) (*Response, error) {
	credit, err := r.paidByCredit(ctx)
	if err != nil {
		return nil, err
	}
	if credit {
		inv, _ := r.inv.resolve(ctx) // cached, cannot fail after paidByCredit
		if item, ok := inv.LineItems.First(); ok {
			resp.UUID = item.UUID
		}
	} else if resp.UUID == "" && resp.ChargeInvoice != nil {
		if tx, ok := resp.ChargeInvoice.Transactions.First(); ok {
			resp.UUID = tx.UUID
		}
	}
	success := resp.UUID != ""

	trial, err := r.trialPayment(ctx)
	if err != nil {
		return nil, err
	}

	result := &Response{Success: success}
	inv, _ := r.inv.resolve(ctx) // non-nil: trialPayment already resolved it

	if trial {
		// Trial payments carry no transaction, so both the message and the
		// authorization come from invoice state alone.
		item, ok := inv.LineItems.First()
		if !ok {
			return nil, fmt.Errorf("%w: trial invoice %s", errors.ErrLineItemNotFound, inv.UUID)
		}
		result.Message = inv.State
		result.Authorization = item.UUID
		return result, nil
	}

	tx, ok := inv.Transactions.First()
	if !ok {
		return nil, fmt.Errorf("%w: invoice %s", errors.ErrTransactionNotFound, inv.UUID)
	}
	result.Message = tx.Status
	if resp.UUID != "" {
		result.Authorization = resp.UUID
	} else {
		result.Authorization = tx.UUID
	}
	return result, nil
}
