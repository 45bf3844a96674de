// Package recorderror defines the typed validation errors returned by the
// expense record validator and the split allocator. These errors are
// recoverable per record: batch callers collect them and continue.
package recorderror

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// MissingFieldError reports a required field that was absent or empty.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("missing required field '%s'", e.Field)
}

// InvalidAmountError reports a field that could not be parsed to a finite,
// non-negative decimal amount.
type InvalidAmountError struct {
	Field string
	Value string
	Err   error
}

func (e *InvalidAmountError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("invalid amount in field '%s': '%s': %v", e.Field, e.Value, e.Err)
	}
	return fmt.Sprintf("invalid amount in field '%s': '%s'", e.Field, e.Value)
}

func (e *InvalidAmountError) Unwrap() error {
	return e.Err
}

// InvalidDateError reports a date that does not match the strict
// YYYY-MM-DD calendar format.
type InvalidDateError struct {
	Field string
	Value string
}

func (e *InvalidDateError) Error() string {
	return fmt.Sprintf("invalid date in field '%s': '%s' (expected YYYY-MM-DD)", e.Field, e.Value)
}

// InvalidCodeFormatError reports an accounting code that does not match the
// NNNN-NNN format.
type InvalidCodeFormatError struct {
	Field string
	Value string
}

func (e *InvalidCodeFormatError) Error() string {
	return fmt.Sprintf("invalid accounting code in field '%s': '%s' (expected NNNN-NNN)", e.Field, e.Value)
}

// SplitExceedsTotalError reports a proposed split allocation whose sum
// overruns the parent record's amount.
type SplitExceedsTotalError struct {
	Total     decimal.Decimal
	Allocated decimal.Decimal
}

func (e *SplitExceedsTotalError) Error() string {
	return fmt.Sprintf("split allocations (%s) exceed record amount (%s)",
		e.Allocated.StringFixed(2), e.Total.StringFixed(2))
}

// ValidationErrors aggregates every validation failure found in one raw
// record so callers can report them together.
type ValidationErrors []error

func (v ValidationErrors) Error() string {
	if len(v) == 0 {
		return "validation failed"
	}
	msgs := make([]string, len(v))
	for i, err := range v {
		msgs[i] = err.Error()
	}
	return strings.Join(msgs, "; ")
}

// Unwrap exposes the individual errors to errors.Is and errors.As.
func (v ValidationErrors) Unwrap() []error {
	return v
}
