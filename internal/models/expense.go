// Package models defines the domain types shared across the application:
// raw extraction output, validated expense records, split allocations and
// the renderer-agnostic report table.
package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// MileageRate is the fixed reimbursement rate per kilometer.
var MileageRate = decimal.NewFromFloat(0.72)

// TripPurpose classifies a mileage entry.
type TripPurpose string

const (
	TripBusiness   TripPurpose = "business"
	TripClientSite TripPurpose = "client_site"
	TripConference TripPurpose = "conference"
	TripOther      TripPurpose = "other"
)

// Mileage holds the distance details of a mileage expense. It is present
// only on records coded 6026-000, whose amount is derived from kilometers
// rather than entered directly.
type Mileage struct {
	Kilometers   decimal.Decimal `json:"kilometers"`
	FromLocation string          `json:"from_location"`
	ToLocation   string          `json:"to_location"`
	TripPurpose  TripPurpose     `json:"trip_purpose"`
}

// SplitAllocation is a partial allocation of an expense's amount to a
// secondary accounting code.
type SplitAllocation struct {
	AccountingCode string          `json:"accounting_code"`
	Amount         decimal.Decimal `json:"amount"`
	Percentage     decimal.Decimal `json:"percentage"`
}

// ExpenseRecord is one validated reimbursable item.
type ExpenseRecord struct {
	ID             string            `json:"id"`
	Date           time.Time         `json:"date"`
	Merchant       string            `json:"merchant"`
	Amount         decimal.Decimal   `json:"amount"`
	Tax            decimal.Decimal   `json:"tax"`
	Description    string            `json:"description"`
	AccountingCode string            `json:"accounting_code"`
	Name           string            `json:"name"`
	Department     string            `json:"department"`
	Location       string            `json:"location"`
	Mileage        *Mileage          `json:"mileage,omitempty"`
	Splits         []SplitAllocation `json:"splits,omitempty"`
}

// SplitTotal returns the sum of all split amounts.
func (r *ExpenseRecord) SplitTotal() decimal.Decimal {
	total := decimal.Zero
	for _, s := range r.Splits {
		total = total.Add(s.Amount)
	}
	return total
}

// PrimaryAllocation returns the unallocated remainder attributed to the
// record's own accounting code. It is computed on demand, never stored.
func (r *ExpenseRecord) PrimaryAllocation() decimal.Decimal {
	return r.Amount.Sub(r.SplitTotal())
}

// Clone returns a deep copy of the record. The split allocator works on a
// copy so a rejected edit leaves the original untouched.
func (r *ExpenseRecord) Clone() *ExpenseRecord {
	out := *r
	if r.Mileage != nil {
		m := *r.Mileage
		out.Mileage = &m
	}
	if r.Splits != nil {
		out.Splits = make([]SplitAllocation, len(r.Splits))
		copy(out.Splits, r.Splits)
	}
	return &out
}
