package engine

import (
	"context"
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"autotax/invoice-engine/internal/dictionary"
	"autotax/invoice-engine/internal/engineerror"
	"autotax/invoice-engine/internal/logging"
	"autotax/invoice-engine/internal/models"
	"autotax/invoice-engine/internal/store"
)

func newTestEngine(s store.InvoiceStore) *Engine {
	return New(dictionary.Default(), s, Options{}, logging.NewNopLogger())
}

func TestExtractGermanReceipt(t *testing.T) {
	eng := newTestEngine(store.NewMemoryStore())

	invoice := eng.Extract("REWE\nDatum: 12.03.2024\nSumme: 1.234,56 €", "")

	require.NotNil(t, invoice.Vendor)
	assert.Equal(t, "Rewe", *invoice.Vendor)
	require.NotNil(t, invoice.Date)
	assert.Equal(t, "2024-03-12", *invoice.Date)
	require.NotNil(t, invoice.Total)
	assert.True(t, decimal.NewFromFloat(1234.56).Equal(*invoice.Total))
	require.NotNil(t, invoice.Category)
	assert.Equal(t, "grocery", *invoice.Category)
	assert.False(t, invoice.NeedsReview)
	assert.Nil(t, invoice.ReviewReason)
}

func TestExtractMisreadReceiptRecovered(t *testing.T) {
	eng := newTestEngine(store.NewMemoryStore())

	// OCR noise: misread vendor, misread label, shredded year.
	invoice := eng.Extract("REVVE\nDatum: 12.03.2 024\nSUMNE: 12,99", "")

	require.NotNil(t, invoice.Vendor)
	assert.Equal(t, "Rewe", *invoice.Vendor)
	require.NotNil(t, invoice.Date)
	assert.Equal(t, "2024-03-12", *invoice.Date)
	require.NotNil(t, invoice.Total)
	assert.True(t, decimal.NewFromFloat(12.99).Equal(*invoice.Total))
}

func TestExtractPayloadOverridesRecognizedTotal(t *testing.T) {
	eng := newTestEngine(store.NewMemoryStore())

	invoice := eng.Extract("REWE\nSumme: 41,50", "total=42.00")

	require.NotNil(t, invoice.Total)
	assert.True(t, decimal.NewFromFloat(42.00).Equal(*invoice.Total), "payload total must win over recognized text")
	require.NotNil(t, invoice.Vendor)
	assert.Equal(t, "Rewe", *invoice.Vendor)
}

func TestExtractNoTotalNeedsReview(t *testing.T) {
	eng := newTestEngine(store.NewMemoryStore())

	invoice := eng.Extract("Unleserlicher Beleg\nDanke", "")

	assert.Nil(t, invoice.Total)
	assert.True(t, invoice.NeedsReview)
	require.NotNil(t, invoice.ReviewReason)
	assert.Equal(t, "total could not be determined", *invoice.ReviewReason)
}

func TestIngestStoresRecord(t *testing.T) {
	s := store.NewMemoryStore()
	eng := newTestEngine(s)
	ctx := context.Background()

	result, err := eng.Ingest(ctx, IngestRequest{
		UserID:   "alice",
		Filename: "scan.txt",
		OCRText:  "REWE\nDatum: 12.03.2024\nSumme: 42,00",
	})
	require.NoError(t, err)
	assert.Equal(t, "alice", result.Record.UserID)
	assert.Equal(t, models.KindExpense, result.Record.Kind, "kind defaults to expense")
	assert.Nil(t, result.Duplicate)

	records, err := s.ListByUser(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, result.Record.ID, records[0].ID)
}

func TestIngestUnreadableDocumentStillStored(t *testing.T) {
	s := store.NewMemoryStore()
	eng := newTestEngine(s)
	ctx := context.Background()

	result, err := eng.Ingest(ctx, IngestRequest{
		UserID:   "alice",
		Filename: "blurry.txt",
		OCRText:  "###???###",
	})
	require.NoError(t, err, "extraction misses are not errors")
	assert.True(t, result.Record.NeedsReview)

	records, err := s.ListByUser(ctx, "alice")
	require.NoError(t, err)
	assert.Len(t, records, 1)
}

func TestIngestSecondCopyReportsDuplicate(t *testing.T) {
	s := store.NewMemoryStore()
	eng := newTestEngine(s)
	ctx := context.Background()

	text := "REWE\nDatum: 12.03.2024\nSumme: 42,00"
	first, err := eng.Ingest(ctx, IngestRequest{UserID: "alice", Filename: "a.txt", OCRText: text})
	require.NoError(t, err)
	assert.Nil(t, first.Duplicate, "a record must not match itself")

	second, err := eng.Ingest(ctx, IngestRequest{UserID: "alice", Filename: "b.txt", OCRText: text})
	require.NoError(t, err)
	require.NotNil(t, second.Duplicate)
	assert.Equal(t, first.Record.ID, second.Duplicate.Record.ID)
	assert.Equal(t, models.MatchByVendorDateTotal, second.Duplicate.MatchedBy)
}

func TestIngestStoreFailurePropagates(t *testing.T) {
	s := store.NewMemoryStore()
	s.FailWith = assert.AnError
	eng := newTestEngine(s)

	_, err := eng.Ingest(context.Background(), IngestRequest{
		UserID:  "alice",
		OCRText: "REWE\nSumme 42,00",
	})
	require.Error(t, err)
	var storeErr *engineerror.StoreError
	assert.ErrorAs(t, err, &storeErr)
}

func TestIngestBatchProcessesEveryRequest(t *testing.T) {
	s := store.NewMemoryStore()
	eng := newTestEngine(s)
	ctx := context.Background()

	var requests []IngestRequest
	for i := 0; i < 10; i++ {
		requests = append(requests, IngestRequest{
			UserID:   "alice",
			Filename: fmt.Sprintf("scan-%d.txt", i),
			OCRText:  fmt.Sprintf("Beleg Nummer %d\nSumme: %d,00", i, 10+i),
		})
	}

	outcomes := eng.IngestBatch(ctx, requests)
	require.Len(t, outcomes, 10)

	seen := map[string]bool{}
	for _, outcome := range outcomes {
		require.NoError(t, outcome.Err)
		seen[outcome.Request.Filename] = true
	}
	assert.Len(t, seen, 10, "every request gets exactly one outcome")

	records, err := s.ListByUser(ctx, "alice")
	require.NoError(t, err)
	assert.Len(t, records, 10)
}

func TestIngestBatchFailureDoesNotStopOthers(t *testing.T) {
	s := store.NewMemoryStore()
	eng := newTestEngine(s)
	ctx := context.Background()

	requests := []IngestRequest{
		{UserID: "alice", Filename: "ok.txt", OCRText: "REWE\nSumme 42,00"},
		{UserID: "alice", Filename: "also-ok.txt", OCRText: "Migros\nTotal 10,00"},
	}

	outcomes := eng.IngestBatch(ctx, requests)
	require.Len(t, outcomes, 2)
	for _, outcome := range outcomes {
		assert.NoError(t, outcome.Err)
		assert.NotNil(t, outcome.Result)
	}
}
