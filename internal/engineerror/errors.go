// Package engineerror defines the typed errors surfaced by the engine.
//
// Field extraction misses and implausible values are not errors: extractors
// represent them as absent fields. The types here cover the conditions that
// do have to reach a caller, chiefly persistent-store failures.
package engineerror

import "fmt"

// StoreError wraps a failure of the persistent store. Duplicate and
// recurring lookups propagate it as a hard failure: silently treating a
// store outage as "no duplicate found" would mislead the caller.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("invoice store: %s failed: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

// RecordNotFoundError reports that a record ID does not exist for the
// given user.
type RecordNotFoundError struct {
	UserID string
	ID     string
}

func (e *RecordNotFoundError) Error() string {
	return fmt.Sprintf("invoice record %s not found for user %s", e.ID, e.UserID)
}
