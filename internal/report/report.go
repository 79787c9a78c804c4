// Package report renders a user's stored invoices as CSV exports and
// spending summaries.
package report

import (
	"io"
	"sort"

	"github.com/gocarina/gocsv"
	"github.com/shopspring/decimal"

	"autotax/invoice-engine/internal/models"
)

// Row is the flat CSV projection of a stored record. Optional fields
// render empty rather than "nil".
type Row struct {
	ID            string `csv:"id"`
	Filename      string `csv:"filename"`
	Kind          string `csv:"kind"`
	Vendor        string `csv:"vendor"`
	Date          string `csv:"date"`
	Time          string `csv:"time"`
	Total         string `csv:"total"`
	VATRate       string `csv:"vat_rate"`
	VATAmount     string `csv:"vat_amount"`
	InvoiceNumber string `csv:"invoice_number"`
	Category      string `csv:"category"`
	PaymentMethod string `csv:"payment_method"`
	NeedsReview   bool   `csv:"needs_review"`
	ReviewReason  string `csv:"review_reason"`
}

// WriteCSV renders records as CSV, sorted by date then vendor so exports
// are stable across runs.
func WriteCSV(w io.Writer, records []models.InvoiceRecord) error {
	sorted := make([]models.InvoiceRecord, len(records))
	copy(sorted, records)
	sort.Slice(sorted, func(i, j int) bool {
		di, dj := deref(sorted[i].Date), deref(sorted[j].Date)
		if di != dj {
			return di < dj
		}
		return deref(sorted[i].Vendor) < deref(sorted[j].Vendor)
	})

	rows := make([]Row, 0, len(sorted))
	for _, record := range sorted {
		rows = append(rows, toRow(record))
	}
	return gocsv.Marshal(&rows, w)
}

func toRow(record models.InvoiceRecord) Row {
	return Row{
		ID:            record.ID.String(),
		Filename:      record.Filename,
		Kind:          string(record.Kind),
		Vendor:        deref(record.Vendor),
		Date:          deref(record.Date),
		Time:          deref(record.Time),
		Total:         derefDecimal(record.Total),
		VATRate:       derefDecimal(record.VATRate),
		VATAmount:     derefDecimal(record.VATAmount),
		InvoiceNumber: deref(record.InvoiceNumber),
		Category:      deref(record.Category),
		PaymentMethod: deref(record.PaymentMethod),
		NeedsReview:   record.NeedsReview,
		ReviewReason:  deref(record.ReviewReason),
	}
}

// Summary partitions a user's records by extraction quality and totals the
// spend that could actually be read.
type Summary struct {
	Total      int             `json:"total"`
	Complete   int             `json:"complete"`
	Incomplete int             `json:"incomplete"`
	Unreadable int             `json:"unreadable"`
	GrandTotal decimal.Decimal `json:"grand_total"`
}

// Summarize classifies each record: complete records carry a total and are
// not flagged, incomplete ones carry a total but some other field is
// missing, unreadable ones have no total at all. The grand total sums only
// expense records with a readable total.
func Summarize(records []models.InvoiceRecord) Summary {
	summary := Summary{Total: len(records)}
	for _, record := range records {
		if record.Total == nil {
			summary.Unreadable++
			continue
		}
		if record.Vendor == nil || record.Date == nil {
			summary.Incomplete++
		} else {
			summary.Complete++
		}
		if record.Kind == models.KindExpense {
			summary.GrandTotal = summary.GrandTotal.Add(*record.Total)
		}
	}
	return summary
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func derefDecimal(d *decimal.Decimal) string {
	if d == nil {
		return ""
	}
	return d.StringFixed(2)
}
