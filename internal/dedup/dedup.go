// Package dedup detects likely duplicate ingestions and recurring vendor
// billing patterns over a user's stored history.
package dedup

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"autotax/invoice-engine/internal/models"
	"autotax/invoice-engine/internal/store"
)

// Defaults for the matching thresholds. Both are overridable through
// configuration; the defaults encode how much drift between two scans of
// the same paper invoice is still considered "the same number".
const (
	DefaultTolerancePercent      = 2.0
	DefaultRecurringWindowMonths = 3
)

// minAbsoluteTolerance keeps the proportional tolerance from collapsing to
// zero on very small totals: a pair of 0.40 / 0.41 receipts should still
// compare as near-equal.
var minAbsoluteTolerance = decimal.NewFromFloat(0.01)

// Detector answers duplicate and recurring queries against a store. All
// lookups are scoped to one user; histories never mix across users.
type Detector struct {
	store                 store.InvoiceStore
	tolerancePercent      decimal.Decimal
	recurringWindowMonths int
}

// NewDetector builds a detector with the given thresholds. Non-positive
// values fall back to the defaults.
func NewDetector(s store.InvoiceStore, tolerancePercent float64, recurringWindowMonths int) *Detector {
	if tolerancePercent <= 0 {
		tolerancePercent = DefaultTolerancePercent
	}
	if recurringWindowMonths <= 0 {
		recurringWindowMonths = DefaultRecurringWindowMonths
	}
	return &Detector{
		store:                 s,
		tolerancePercent:      decimal.NewFromFloat(tolerancePercent),
		recurringWindowMonths: recurringWindowMonths,
	}
}

// FindDuplicate looks for a prior record of the same user representing the
// same physical invoice as candidate. Two paths, tried in order of trust:
//
//  1. Exact invoice number plus case-insensitive vendor. A hit here is
//     decisive and the second path is not consulted.
//  2. Same vendor (case-insensitive) and date with the total within
//     max(total x tolerance%, 0.01). Among several hits the one with the
//     closest total wins.
//
// A nil result with nil error means no duplicate. Store failures propagate.
func (d *Detector) FindDuplicate(ctx context.Context, userID string, candidate models.Fields) (*models.DuplicateMatch, error) {
	if candidate.Vendor == nil {
		return nil, nil
	}

	if candidate.InvoiceNumber != nil {
		record, err := d.store.FindByInvoiceNumberAndVendor(ctx, userID, *candidate.InvoiceNumber, *candidate.Vendor)
		if err != nil {
			return nil, err
		}
		if record != nil {
			return &models.DuplicateMatch{Record: *record, MatchedBy: models.MatchByInvoiceNumber}, nil
		}
	}

	if candidate.Date == nil || candidate.Total == nil {
		return nil, nil
	}

	tolerance := candidate.Total.Mul(d.tolerancePercent).Div(decimal.NewFromInt(100)).Abs()
	if tolerance.LessThan(minAbsoluteTolerance) {
		tolerance = minAbsoluteTolerance
	}

	matches, err := d.store.FindByVendorDateTotal(ctx, userID, *candidate.Vendor, *candidate.Date, *candidate.Total, tolerance)
	if err != nil {
		return nil, err
	}
	if len(matches) == 0 {
		return nil, nil
	}

	closest := matches[0]
	closestDelta := closest.Total.Sub(*candidate.Total).Abs()
	for _, match := range matches[1:] {
		delta := match.Total.Sub(*candidate.Total).Abs()
		if delta.LessThan(closestDelta) {
			closest = match
			closestDelta = delta
		}
	}
	return &models.DuplicateMatch{Record: closest, MatchedBy: models.MatchByVendorDateTotal}, nil
}

// FindRecurring reports whether vendor has billed the user in at least N
// distinct calendar months inside the trailing N-month window ending at
// now. N is the configured window length, so a monthly subscription fires
// after its third consecutive month.
func (d *Detector) FindRecurring(ctx context.Context, userID, vendor string, now time.Time) (*models.RecurringSignal, error) {
	since := windowStart(now, d.recurringWindowMonths)
	aggregates, err := d.store.AggregateMonthlyByVendor(ctx, userID, vendor, since)
	if err != nil {
		return nil, err
	}
	if len(aggregates) < d.recurringWindowMonths {
		return nil, nil
	}

	signal := &models.RecurringSignal{Vendor: vendor}
	sum := decimal.Zero
	for _, agg := range aggregates {
		signal.Months = append(signal.Months, agg.Month)
		signal.Count += agg.Count
		sum = sum.Add(agg.Sum)
	}
	if signal.Count > 0 {
		signal.AverageTotal = sum.Div(decimal.NewFromInt(int64(signal.Count))).Round(2)
	}
	return signal, nil
}

// windowStart is the first day of the month N-1 months before now, so the
// window spans N calendar months including the current one.
func windowStart(now time.Time, months int) time.Time {
	firstOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	return firstOfMonth.AddDate(0, -(months - 1), 0)
}
