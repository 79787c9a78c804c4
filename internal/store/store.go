// Package store persists invoice records and answers the scoped queries
// the duplicate and recurring detectors depend on.
//
// Every query takes the owning user as a mandatory parameter and filters
// at the query level — never client-side after a broader read — so
// cross-user matches are impossible by construction.
package store

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"autotax/invoice-engine/internal/models"
)

// InvoiceStore is the persistence boundary of the engine. Implementations
// must wrap infrastructure failures in *engineerror.StoreError so callers
// can distinguish "no match" from "store down" — the latter is a hard
// failure.
type InvoiceStore interface {
	// Insert stores a new record. Records are never silently overwritten:
	// inserting an existing ID is an error.
	Insert(ctx context.Context, record models.InvoiceRecord) error

	// FindByInvoiceNumberAndVendor returns the user's record with the
	// exact invoice number and case-insensitively equal vendor, or nil.
	FindByInvoiceNumberAndVendor(ctx context.Context, userID, number, vendor string) (*models.InvoiceRecord, error)

	// FindByVendorDateTotal returns the user's records with the given
	// vendor (case-insensitive) and ISO date whose total lies within
	// tolerance (absolute) of total.
	FindByVendorDateTotal(ctx context.Context, userID, vendor, date string, total, tolerance decimal.Decimal) ([]models.InvoiceRecord, error)

	// AggregateMonthlyByVendor groups the user's records for a vendor by
	// calendar month, counting records dated on or after since. Months
	// are returned in ascending order.
	AggregateMonthlyByVendor(ctx context.Context, userID, vendor string, since time.Time) ([]models.MonthlyAggregate, error)

	// UpdateFields applies an allow-listed correction to a record and
	// returns the updated record. Supplying a total clears the
	// needs-review flag.
	UpdateFields(ctx context.Context, userID string, id uuid.UUID, correction models.Correction) (*models.InvoiceRecord, error)

	// DeleteRecord removes one record of the user.
	DeleteRecord(ctx context.Context, userID string, id uuid.UUID) error

	// ListByUser returns every record of the user.
	ListByUser(ctx context.Context, userID string) ([]models.InvoiceRecord, error)

	// Close releases the underlying resources.
	Close() error
}

// applyCorrection is shared by implementations: it mutates a loaded record
// according to the allow-list and handles the needs-review transition.
func applyCorrection(record *models.InvoiceRecord, correction models.Correction) {
	if correction.Total != nil {
		record.Total = correction.Total
		record.NeedsReview = false
		record.ReviewReason = nil
	}
	if correction.Vendor != nil {
		record.Vendor = correction.Vendor
	}
	if correction.Date != nil {
		record.Date = correction.Date
	}
	if correction.Category != nil {
		record.Category = correction.Category
	}
	if correction.PaymentMethod != nil {
		record.PaymentMethod = correction.PaymentMethod
	}
	if correction.Kind != nil {
		record.Kind = *correction.Kind
	}
}

// monthKey formats a time as the "YYYY-MM" aggregation key.
func monthKey(t time.Time) string {
	return t.Format("2006-01")
}
