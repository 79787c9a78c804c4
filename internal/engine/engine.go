// Package engine wires the pipeline together: normalization, field
// extraction, payload parsing, reconciliation, persistence, and the
// post-ingest duplicate and recurring checks.
package engine

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"autotax/invoice-engine/internal/dedup"
	"autotax/invoice-engine/internal/dictionary"
	"autotax/invoice-engine/internal/extract"
	"autotax/invoice-engine/internal/logging"
	"autotax/invoice-engine/internal/models"
	"autotax/invoice-engine/internal/normalize"
	"autotax/invoice-engine/internal/qrparse"
	"autotax/invoice-engine/internal/reconcile"
	"autotax/invoice-engine/internal/store"
)

// Engine runs the extraction pipeline. It is safe for concurrent use: the
// extractors are stateless and the store serializes its own mutations.
type Engine struct {
	fields   *extract.FieldExtractor
	payloads *qrparse.Parser
	store    store.InvoiceStore
	detector *dedup.Detector
	log      logging.Logger
	workers  int
}

// Options carries the tunables the engine does not default on its own.
type Options struct {
	TolerancePercent      float64
	RecurringWindowMonths int
	BatchWorkers          int
}

// New builds an engine over the given dictionary and store.
func New(dict *dictionary.Dictionary, s store.InvoiceStore, opts Options, log logging.Logger) *Engine {
	workers := opts.BatchWorkers
	if workers <= 0 {
		workers = 4
	}
	return &Engine{
		fields:   extract.NewFieldExtractor(dict),
		payloads: qrparse.NewParser(dict),
		store:    s,
		detector: dedup.NewDetector(s, opts.TolerancePercent, opts.RecurringWindowMonths),
		log:      log,
		workers:  workers,
	}
}

// Extract runs the pure pipeline: normalize the OCR text, extract fields,
// parse the payload if present, and reconcile. Nothing is persisted and no
// history is consulted, so the result depends only on the inputs.
func (e *Engine) Extract(ocrText, qrPayload string) models.ReconciledInvoice {
	cleaned := normalize.Clean(ocrText)
	ocrFields := e.fields.Extract(cleaned)

	var qrFields models.QRFields
	if strings.TrimSpace(qrPayload) != "" {
		qrFields = e.payloads.Parse(qrPayload)
	}
	return reconcile.Merge(ocrFields, qrFields)
}

// IngestRequest is one document to ingest for one user.
type IngestRequest struct {
	UserID    string
	Filename  string
	Kind      models.RecordKind
	OCRText   string
	QRPayload string
}

// IngestResult is the stored record plus the advisory signals computed
// against the user's prior history. Duplicate and Recurring are nil when
// nothing fired.
type IngestResult struct {
	Record    models.InvoiceRecord
	Duplicate *models.DuplicateMatch
	Recurring *models.RecurringSignal
}

// Ingest extracts, persists, and runs the history checks. Extraction
// misses are not errors — an unreadable document still produces a stored,
// review-flagged record. Store failures are errors and abort the
// ingestion.
//
// The duplicate check runs against history as it was before this record
// was inserted, so a document never matches itself.
func (e *Engine) Ingest(ctx context.Context, req IngestRequest) (*IngestResult, error) {
	invoice := e.Extract(req.OCRText, req.QRPayload)

	kind := req.Kind
	if kind == "" {
		kind = models.KindExpense
	}

	var duplicate *models.DuplicateMatch
	var err error
	duplicate, err = e.detector.FindDuplicate(ctx, req.UserID, invoice.Fields)
	if err != nil {
		return nil, err
	}

	record := models.InvoiceRecord{
		ID:                uuid.New(),
		UserID:            req.UserID,
		Filename:          req.Filename,
		Kind:              kind,
		CreatedAt:         time.Now().UTC(),
		ReconciledInvoice: invoice,
	}
	if err := e.store.Insert(ctx, record); err != nil {
		return nil, err
	}

	var recurring *models.RecurringSignal
	if record.Vendor != nil {
		recurring, err = e.detector.FindRecurring(ctx, req.UserID, *record.Vendor, record.CreatedAt)
		if err != nil {
			return nil, err
		}
	}

	log := e.log.WithFields(
		logging.F("user_id", req.UserID),
		logging.F("record_id", record.ID.String()),
		logging.F("needs_review", record.NeedsReview),
	)
	if duplicate != nil {
		log = log.WithField("duplicate_of", duplicate.Record.ID.String())
	}
	log.Info("invoice ingested")

	return &IngestResult{Record: record, Duplicate: duplicate, Recurring: recurring}, nil
}

// BatchOutcome is the per-document result of a batch run. Exactly one of
// Result and Err is set.
type BatchOutcome struct {
	Request IngestRequest
	Result  *IngestResult
	Err     error
}

// IngestBatch ingests many documents through a bounded worker pool. One
// document failing does not stop the others; every request gets exactly
// one outcome. Outcomes arrive in completion order, not request order.
func (e *Engine) IngestBatch(ctx context.Context, requests []IngestRequest) []BatchOutcome {
	jobs := make(chan IngestRequest)
	outcomes := make(chan BatchOutcome)

	var wg sync.WaitGroup
	for i := 0; i < e.workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for req := range jobs {
				result, err := e.Ingest(ctx, req)
				outcomes <- BatchOutcome{Request: req, Result: result, Err: err}
			}
		}()
	}

	go func() {
		for _, req := range requests {
			jobs <- req
		}
		close(jobs)
		wg.Wait()
		close(outcomes)
	}()

	collected := make([]BatchOutcome, 0, len(requests))
	for outcome := range outcomes {
		if outcome.Err != nil {
			e.log.WithError(outcome.Err).WithField("filename", outcome.Request.Filename).Error("ingestion failed")
		}
		collected = append(collected, outcome)
	}
	return collected
}
