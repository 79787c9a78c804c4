// Package models provides the data structures shared by the extraction,
// reconciliation and detection components.
package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Canonical field names. Extractors, the QR parser and the reconciler all
// speak this vocabulary; a QR value replaces an OCR value only when both
// carry the same name.
const (
	FieldVendor        = "vendor"
	FieldDate          = "date"
	FieldTime          = "time"
	FieldTotal         = "total"
	FieldInvoiceNumber = "invoice_number"
	FieldVATRate       = "vat_rate"
	FieldVATAmount     = "vat_amount"
	FieldCategory      = "category"
	FieldPaymentMethod = "payment_method"
)

// DateLayoutISO is the single date layout used for resolved dates.
const DateLayoutISO = "2006-01-02"

// Fields is the canonical optional-field set produced by extraction.
// Every field may be absent; absence is an expected state, not an error.
// Dates are ISO strings (YYYY-MM-DD), times are HH:MM or HH:MM:SS.
type Fields struct {
	Vendor        *string          `json:"vendor,omitempty"`
	Date          *string          `json:"date,omitempty"`
	Time          *string          `json:"time,omitempty"`
	Total         *decimal.Decimal `json:"total,omitempty"`
	InvoiceNumber *string          `json:"invoice_number,omitempty"`
	VATRate       *decimal.Decimal `json:"vat_rate,omitempty"`
	VATAmount     *decimal.Decimal `json:"vat_amount,omitempty"`
	Category      *string          `json:"category,omitempty"`
	PaymentMethod *string          `json:"payment_method,omitempty"`
}

// FieldCandidate is one extracted value for one field, tagged with the rank
// of the tier that produced it. Lower rank means higher trust.
type FieldCandidate struct {
	Value string
	Tier  int
}

// QRFields carries the field set decoded from a machine-readable payload.
// Raw always holds the undecoded payload, whichever grammar matched (or
// none).
type QRFields struct {
	Fields
	Raw string `json:"raw"`
}

// ReconciledInvoice is the merge of OCR-derived fields with QR overrides,
// plus the review triage decision.
type ReconciledInvoice struct {
	Fields
	NeedsReview  bool    `json:"needs_review"`
	ReviewReason *string `json:"review_reason,omitempty"`
}

// LineItem is a best-effort line captured from the body of an invoice.
// Items are advisory; they never feed reconciliation or triage.
type LineItem struct {
	RawLine     string          `json:"raw_line"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
}

// DateValue parses the resolved date, if any.
func (f *Fields) DateValue() (time.Time, bool) {
	if f.Date == nil {
		return time.Time{}, false
	}
	t, err := time.Parse(DateLayoutISO, *f.Date)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// StringPtr returns a pointer to s. Convenience for building optional
// fields in call sites and tests.
func StringPtr(s string) *string {
	return &s
}

// DecimalPtr returns a pointer to d.
func DecimalPtr(d decimal.Decimal) *decimal.Decimal {
	return &d
}
