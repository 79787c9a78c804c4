package report

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"autotax/invoice-engine/internal/models"
)

func record(vendor, date, total string, kind models.RecordKind) models.InvoiceRecord {
	r := models.InvoiceRecord{
		ID:        uuid.New(),
		UserID:    "alice",
		Kind:      kind,
		CreatedAt: time.Now().UTC(),
	}
	if vendor != "" {
		r.Vendor = models.StringPtr(vendor)
	}
	if date != "" {
		r.Date = models.StringPtr(date)
	}
	if total != "" {
		amount, _ := decimal.NewFromString(total)
		r.Total = models.DecimalPtr(amount)
	} else {
		r.NeedsReview = true
		r.ReviewReason = models.StringPtr("total could not be determined")
	}
	return r
}

func TestWriteCSV(t *testing.T) {
	records := []models.InvoiceRecord{
		record("Migros", "2024-02-01", "19.90", models.KindExpense),
		record("REWE", "2024-01-15", "42.00", models.KindExpense),
	}

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, records))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], "vendor")
	assert.Contains(t, lines[0], "needs_review")
	// Sorted by date: REWE (January) before Migros (February).
	assert.Contains(t, lines[1], "REWE")
	assert.Contains(t, lines[1], "42.00")
	assert.Contains(t, lines[2], "Migros")
}

func TestWriteCSVEmptyFieldsRenderEmpty(t *testing.T) {
	records := []models.InvoiceRecord{
		record("", "", "", models.KindExpense),
	}

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, records))
	assert.Contains(t, buf.String(), "total could not be determined")
}

func TestSummarize(t *testing.T) {
	records := []models.InvoiceRecord{
		record("REWE", "2024-01-15", "42.00", models.KindExpense),   // complete
		record("Migros", "", "19.90", models.KindExpense),           // incomplete: no date
		record("", "", "", models.KindExpense),                      // unreadable: no total
		record("Kunde GmbH", "2024-01-20", "100.00", models.KindIncome), // complete, not summed
	}

	summary := Summarize(records)

	assert.Equal(t, 4, summary.Total)
	assert.Equal(t, 2, summary.Complete)
	assert.Equal(t, 1, summary.Incomplete)
	assert.Equal(t, 1, summary.Unreadable)
	assert.True(t, decimal.NewFromFloat(61.90).Equal(summary.GrandTotal),
		"grand total sums readable expenses only, got %s", summary.GrandTotal)
}

func TestSummarizeEmpty(t *testing.T) {
	summary := Summarize(nil)
	assert.Equal(t, 0, summary.Total)
	assert.True(t, summary.GrandTotal.IsZero())
}
