package catalog

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when a lookup by sequence number or id has no match.
var ErrNotFound = errors.New("event not found")

// InvalidDateError reports a record whose date could not be parsed. The
// record is skipped during batch normalization; the error names the offender
// so callers can surface it without aborting the rest of the collection.
type InvalidDateError struct {
	ID    string
	Value string
	Err   error
}

func (e *InvalidDateError) Error() string {
	return fmt.Sprintf("event %s: invalid date %q: %v", e.ID, e.Value, e.Err)
}

func (e *InvalidDateError) Unwrap() error {
	return e.Err
}
