package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.etcd.io/bbolt"

	"autotax/invoice-engine/internal/engineerror"
	"autotax/invoice-engine/internal/models"
)

const invoicesBucket = "invoices"

// BoltStore implements InvoiceStore on bbolt. Records live in a nested
// bucket per user under the top-level invoices bucket, so every read
// naturally touches only one user's data.
//
// The workload is low-contention, so record mutations take one coarse
// per-process mutex around the read-modify-write instead of per-record
// locking.
type BoltStore struct {
	db *bbolt.DB
	mu sync.Mutex
}

// NewBoltStore opens (or creates) the database file at path.
func NewBoltStore(path string) (*BoltStore, error) {
	db, err := bbolt.Open(path, 0600, &bbolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, &engineerror.StoreError{Op: "open", Err: err}
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(invoicesBucket))
		return err
	})
	if err != nil {
		_ = db.Close()
		return nil, &engineerror.StoreError{Op: "init", Err: err}
	}

	return &BoltStore{db: db}, nil
}

// Insert stores a new record under the owning user's bucket. Re-ingestion
// never silently overwrites: an existing ID is rejected.
func (s *BoltStore) Insert(ctx context.Context, record models.InvoiceRecord) error {
	err := s.db.Update(func(tx *bbolt.Tx) error {
		bucket, err := s.userBucket(tx, record.UserID, true)
		if err != nil {
			return err
		}
		key := []byte(record.ID.String())
		if bucket.Get(key) != nil {
			return fmt.Errorf("record %s already exists", record.ID)
		}
		data, err := json.Marshal(record)
		if err != nil {
			return fmt.Errorf("marshaling record: %w", err)
		}
		return bucket.Put(key, data)
	})
	if err != nil {
		return &engineerror.StoreError{Op: "insert", Err: err}
	}
	return nil
}

func (s *BoltStore) FindByInvoiceNumberAndVendor(ctx context.Context, userID, number, vendor string) (*models.InvoiceRecord, error) {
	var match *models.InvoiceRecord
	err := s.viewUser(userID, func(record models.InvoiceRecord) bool {
		if record.InvoiceNumber == nil || record.Vendor == nil {
			return true
		}
		if *record.InvoiceNumber == number && strings.EqualFold(*record.Vendor, vendor) {
			match = &record
			return false
		}
		return true
	})
	if err != nil {
		return nil, &engineerror.StoreError{Op: "find_by_invoice_number_and_vendor", Err: err}
	}
	return match, nil
}

func (s *BoltStore) FindByVendorDateTotal(ctx context.Context, userID, vendor, date string, total, tolerance decimal.Decimal) ([]models.InvoiceRecord, error) {
	var matches []models.InvoiceRecord
	err := s.viewUser(userID, func(record models.InvoiceRecord) bool {
		if record.Vendor == nil || record.Date == nil || record.Total == nil {
			return true
		}
		if !strings.EqualFold(*record.Vendor, vendor) || *record.Date != date {
			return true
		}
		if record.Total.Sub(total).Abs().LessThanOrEqual(tolerance) {
			matches = append(matches, record)
		}
		return true
	})
	if err != nil {
		return nil, &engineerror.StoreError{Op: "find_by_vendor_date_total", Err: err}
	}
	return matches, nil
}

func (s *BoltStore) AggregateMonthlyByVendor(ctx context.Context, userID, vendor string, since time.Time) ([]models.MonthlyAggregate, error) {
	totals := map[string]*models.MonthlyAggregate{}
	err := s.viewUser(userID, func(record models.InvoiceRecord) bool {
		if record.Vendor == nil || !strings.EqualFold(*record.Vendor, vendor) {
			return true
		}
		date, ok := record.DateValue()
		if !ok || date.Before(since) {
			return true
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
		return true
	})
	if err != nil {
		return nil, &engineerror.StoreError{Op: "aggregate_monthly_by_vendor", Err: err}
	}

	out := make([]models.MonthlyAggregate, 0, len(totals))
	for _, agg := range totals {
		out = append(out, *agg)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Month < out[j].Month })
	return out, nil
}

// UpdateFields applies a correction under the coarse write lock so
// concurrent corrections cannot interleave on a single record.
func (s *BoltStore) UpdateFields(ctx context.Context, userID string, id uuid.UUID, correction models.Correction) (*models.InvoiceRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var updated *models.InvoiceRecord
	err := s.db.Update(func(tx *bbolt.Tx) error {
		bucket, err := s.userBucket(tx, userID, false)
		if err != nil {
			return err
		}
		if bucket == nil {
			return &engineerror.RecordNotFoundError{UserID: userID, ID: id.String()}
		}
		key := []byte(id.String())
		data := bucket.Get(key)
		if data == nil {
			return &engineerror.RecordNotFoundError{UserID: userID, ID: id.String()}
		}
		var record models.InvoiceRecord
		if err := json.Unmarshal(data, &record); err != nil {
			return fmt.Errorf("unmarshaling record: %w", err)
		}
		applyCorrection(&record, correction)
		out, err := json.Marshal(record)
		if err != nil {
			return fmt.Errorf("marshaling record: %w", err)
		}
		if err := bucket.Put(key, out); err != nil {
			return err
		}
		updated = &record
		return nil
	})
	if err != nil {
		if notFound, ok := err.(*engineerror.RecordNotFoundError); ok {
			return nil, notFound
		}
		return nil, &engineerror.StoreError{Op: "update_fields", Err: err}
	}
	return updated, nil
}

// DeleteRecord removes a record under the coarse write lock.
func (s *BoltStore) DeleteRecord(ctx context.Context, userID string, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := s.db.Update(func(tx *bbolt.Tx) error {
		bucket, err := s.userBucket(tx, userID, false)
		if err != nil {
			return err
		}
		key := []byte(id.String())
		if bucket == nil || bucket.Get(key) == nil {
			return &engineerror.RecordNotFoundError{UserID: userID, ID: id.String()}
		}
		return bucket.Delete(key)
	})
	if err != nil {
		if notFound, ok := err.(*engineerror.RecordNotFoundError); ok {
			return notFound
		}
		return &engineerror.StoreError{Op: "delete_record", Err: err}
	}
	return nil
}

func (s *BoltStore) ListByUser(ctx context.Context, userID string) ([]models.InvoiceRecord, error) {
	records := make([]models.InvoiceRecord, 0)
	err := s.viewUser(userID, func(record models.InvoiceRecord) bool {
		records = append(records, record)
		return true
	})
	if err != nil {
		return nil, &engineerror.StoreError{Op: "list_by_user", Err: err}
	}
	return records, nil
}

// Close closes the database file.
func (s *BoltStore) Close() error {
	return s.db.Close()
}

// userBucket returns the nested bucket for one user, optionally creating
// it. A nil bucket (without error) means the user has no records yet.
func (s *BoltStore) userBucket(tx *bbolt.Tx, userID string, create bool) (*bbolt.Bucket, error) {
	root := tx.Bucket([]byte(invoicesBucket))
	if root == nil {
		return nil, fmt.Errorf("bucket %s missing", invoicesBucket)
	}
	if create {
		return root.CreateBucketIfNotExists([]byte(userID))
	}
	return root.Bucket([]byte(userID)), nil
}

// viewUser streams every record of one user through fn inside a read
// transaction. fn returns false to stop early.
func (s *BoltStore) viewUser(userID string, fn func(models.InvoiceRecord) bool) error {
	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket, err := s.userBucket(tx, userID, false)
		if err != nil {
			return err
		}
		if bucket == nil {
			return nil
		}
		return bucket.ForEach(func(k, v []byte) error {
			var record models.InvoiceRecord
			if err := json.Unmarshal(v, &record); err != nil {
				return fmt.Errorf("unmarshaling record %s: %w", k, err)
			}
			if !fn(record) {
				return errStopIteration
			}
			return nil
		})
	})
	if errors.Is(err, errStopIteration) {
		return nil
	}
	return err
}

// errStopIteration signals an intentional early exit from ForEach.
var errStopIteration = errors.New("stop iteration")
