package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// RecordKind classifies a stored invoice as income or expense.
type RecordKind string

const (
	KindExpense RecordKind = "expense"
	KindIncome  RecordKind = "income"
)

// InvoiceRecord is a persisted invoice: the reconciled fields plus
// identity. Records are created once per successful ingestion and mutated
// only through the allow-listed correction operation.
type InvoiceRecord struct {
	ID        uuid.UUID  `json:"id"`
	UserID    string     `json:"user_id"`
	Filename  string     `json:"filename"`
	Kind      RecordKind `json:"kind"`
	CreatedAt time.Time  `json:"created_at"`
	ReconciledInvoice
}

// DuplicateMatchBasis names the path that produced a duplicate match.
type DuplicateMatchBasis string

const (
	// MatchByInvoiceNumber is the exact, highest-trust path: same invoice
	// number and case-insensitively equal vendor.
	MatchByInvoiceNumber DuplicateMatchBasis = "invoice_number"
	// MatchByVendorDateTotal matches vendor and date exactly with the
	// total inside the configured tolerance.
	MatchByVendorDateTotal DuplicateMatchBasis = "vendor_date_total"
)

// DuplicateMatch is a prior record judged to represent the same physical
// invoice as a newly ingested one. It is advisory: the caller decides
// whether to warn or block.
type DuplicateMatch struct {
	Record    InvoiceRecord       `json:"record"`
	MatchedBy DuplicateMatchBasis `json:"matched_by"`
}

// RecurringSignal reports that a vendor has billed the user in every one of
// at least N distinct calendar months inside the trailing window.
type RecurringSignal struct {
	Vendor       string          `json:"vendor"`
	Months       []string        `json:"months"` // "YYYY-MM", ascending
	Count        int             `json:"count"`
	AverageTotal decimal.Decimal `json:"average_total"`
}

// MonthlyAggregate is one calendar month of a vendor's history for a user,
// as returned by the store's aggregation query.
type MonthlyAggregate struct {
	Month string          `json:"month"` // "YYYY-MM"
	Count int             `json:"count"`
	Sum   decimal.Decimal `json:"sum"`
}

// Correction is the allow-listed set of fields a user may change on a
// stored record. Nil members are left untouched. Supplying a total clears
// the needs-review flag.
type Correction struct {
	Total         *decimal.Decimal
	Vendor        *string
	Date          *string
	Category      *string
	PaymentMethod *string
	Kind          *RecordKind
}
