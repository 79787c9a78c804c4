package store

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"autotax/invoice-engine/internal/engineerror"
	"autotax/invoice-engine/internal/models"
)

// MemoryStore is an in-memory InvoiceStore for tests and ephemeral runs.
// FailWith, when set, is returned (wrapped) by every operation, which lets
// tests exercise hard-failure propagation without a broken database file.
type MemoryStore struct {
	mu       sync.Mutex
	records  map[string]map[uuid.UUID]models.InvoiceRecord
	FailWith error
}

// NewMemoryStore returns an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{records: map[string]map[uuid.UUID]models.InvoiceRecord{}}
}

func (s *MemoryStore) Insert(ctx context.Context, record models.InvoiceRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailWith != nil {
		return &engineerror.StoreError{Op: "insert", Err: s.FailWith}
	}
	user, ok := s.records[record.UserID]
	if !ok {
		user = map[uuid.UUID]models.InvoiceRecord{}
		s.records[record.UserID] = user
	}
	if _, exists := user[record.ID]; exists {
		return &engineerror.StoreError{Op: "insert", Err: fmt.Errorf("record %s already exists", record.ID)}
	}
	user[record.ID] = record
	return nil
}

func (s *MemoryStore) FindByInvoiceNumberAndVendor(ctx context.Context, userID, number, vendor string) (*models.InvoiceRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailWith != nil {
		return nil, &engineerror.StoreError{Op: "find_by_invoice_number_and_vendor", Err: s.FailWith}
	}
	for _, record := range s.records[userID] {
		if record.InvoiceNumber == nil || record.Vendor == nil {
			continue
		}
		if *record.InvoiceNumber == number && strings.EqualFold(*record.Vendor, vendor) {
			found := record
			return &found, nil
		}
	}
	return nil, nil
}

func (s *MemoryStore) FindByVendorDateTotal(ctx context.Context, userID, vendor, date string, total, tolerance decimal.Decimal) ([]models.InvoiceRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailWith != nil {
		return nil, &engineerror.StoreError{Op: "find_by_vendor_date_total", Err: s.FailWith}
	}
	var matches []models.InvoiceRecord
	for _, record := range s.records[userID] {
		if record.Vendor == nil || record.Date == nil || record.Total == nil {
			continue
		}
		if !strings.EqualFold(*record.Vendor, vendor) || *record.Date != date {
			continue
		}
		if record.Total.Sub(total).Abs().LessThanOrEqual(tolerance) {
			matches = append(matches, record)
		}
	}
	return matches, nil
}

func (s *MemoryStore) AggregateMonthlyByVendor(ctx context.Context, userID, vendor string, since time.Time) ([]models.MonthlyAggregate, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailWith != nil {
		return nil, &engineerror.StoreError{Op: "aggregate_monthly_by_vendor", Err: s.FailWith}
	}
	totals := map[string]*models.MonthlyAggregate{}
	for _, record := range s.records[userID] {
		if record.Vendor == nil || !strings.EqualFold(*record.Vendor, vendor) {
			continue
		}
		date, ok := record.DateValue()
		if !ok || date.Before(since) {
			continue
		}
		key := monthKey(date)
		agg, ok := totals[key]
		if !ok {
			agg = &models.MonthlyAggregate{Month: key}
			totals[key] = agg
		}
		agg.Count++
		if record.Total != nil {
			agg.Sum = agg.Sum.Add(*record.Total)
		}
	}
	out := make([]models.MonthlyAggregate, 0, len(totals))
	for _, agg := range totals {
		out = append(out, *agg)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Month < out[j].Month })
	return out, nil
}

func (s *MemoryStore) UpdateFields(ctx context.Context, userID string, id uuid.UUID, correction models.Correction) (*models.InvoiceRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailWith != nil {
		return nil, &engineerror.StoreError{Op: "update_fields", Err: s.FailWith}
	}
	user, ok := s.records[userID]
	if !ok {
		return nil, &engineerror.RecordNotFoundError{UserID: userID, ID: id.String()}
	}
	record, ok := user[id]
	if !ok {
		return nil, &engineerror.RecordNotFoundError{UserID: userID, ID: id.String()}
	}
	applyCorrection(&record, correction)
	user[id] = record
	return &record, nil
}

func (s *MemoryStore) DeleteRecord(ctx context.Context, userID string, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailWith != nil {
		return &engineerror.StoreError{Op: "delete_record", Err: s.FailWith}
	}
	user, ok := s.records[userID]
	if !ok {
		return &engineerror.RecordNotFoundError{UserID: userID, ID: id.String()}
	}
	if _, ok := user[id]; !ok {
		return &engineerror.RecordNotFoundError{UserID: userID, ID: id.String()}
	}
	delete(user, id)
	return nil
}

func (s *MemoryStore) ListByUser(ctx context.Context, userID string) ([]models.InvoiceRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailWith != nil {
		return nil, &engineerror.StoreError{Op: "list_by_user", Err: s.FailWith}
	}
	records := make([]models.InvoiceRecord, 0, len(s.records[userID]))
	for _, record := range s.records[userID] {
		records = append(records, record)
	}
	sort.Slice(records, func(i, j int) bool { return records[i].CreatedAt.Before(records[j].CreatedAt) })
	return records, nil
}

func (s *MemoryStore) Close() error { return nil }
