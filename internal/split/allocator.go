// Package split implements fractional allocation of an expense's amount
// across secondary accounting codes. The unallocated remainder stays with
// the record's own code as the primary allocation.
package split

import (
	"expensereport/internal/logging"
	"expensereport/internal/models"
	"expensereport/internal/recorderror"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Input is one proposed allocation. Exactly one of Amount or Percentage
// must be set; the other is derived.
type Input struct {
	Code       string
	Amount     *decimal.Decimal
	Percentage *decimal.Decimal
}

// Allocator validates and applies split allocations to expense records.
type Allocator struct {
	logger logging.Logger
}

// New creates an Allocator.
func New(logger logging.Logger) *Allocator {
	if logger == nil {
		logger = &logging.MockLogger{}
	}
	return &Allocator{logger: logger}
}

// Apply replaces the record's splits wholesale with the given inputs and
// returns the updated record. The input record is never modified: on
// success a modified copy is returned, on rejection the caller's record is
// left exactly as it was. Input order is preserved; it controls the order
// split fragments appear in the report.
func (a *Allocator) Apply(record *models.ExpenseRecord, inputs []Input) (*models.ExpenseRecord, error) {
	splits := make([]models.SplitAllocation, 0, len(inputs))
	allocated := decimal.Zero

	for _, in := range inputs {
		alloc, err := a.resolve(record, in)
		if err != nil {
			return nil, err
		}
		allocated = allocated.Add(alloc.Amount)
		splits = append(splits, alloc)
	}

	// Amounts are exact decimals, so any overrun is a real over-allocation,
	// not rounding noise. Rejecting strictly keeps the primary allocation
	// non-negative.
	if allocated.GreaterThan(record.Amount) {
		return nil, &recorderror.SplitExceedsTotalError{
			Total:     record.Amount,
			Allocated: allocated,
		}
	}

	out := record.Clone()
	out.Splits = splits

	a.logger.WithFields(
		logging.Field{Key: logging.FieldRecordID, Value: record.ID},
		logging.Field{Key: logging.FieldCount, Value: len(splits)},
		logging.Field{Key: "primary", Value: out.PrimaryAllocation().StringFixed(2)},
	).Debug("Applied split allocations")

	return out, nil
}

// resolve derives the missing one of amount/percentage for a single input.
func (a *Allocator) resolve(record *models.ExpenseRecord, in Input) (models.SplitAllocation, error) {
	switch {
	case in.Amount != nil:
		amount := *in.Amount
		if amount.IsNegative() {
			return models.SplitAllocation{}, &recorderror.InvalidAmountError{
				Field: "amount", Value: amount.String(),
			}
		}
		pct := decimal.Zero
		if !record.Amount.IsZero() {
			pct = amount.Div(record.Amount).Mul(hundred)
		}
		return models.SplitAllocation{
			AccountingCode: in.Code,
			Amount:         amount,
			Percentage:     pct,
		}, nil

	case in.Percentage != nil:
		pct := *in.Percentage
		if pct.IsNegative() {
			return models.SplitAllocation{}, &recorderror.InvalidAmountError{
				Field: "percentage", Value: pct.String(),
			}
		}
		amount := pct.Div(hundred).Mul(record.Amount).Round(2)
		return models.SplitAllocation{
			AccountingCode: in.Code,
			Amount:         amount,
			Percentage:     pct,
		}, nil

	default:
		return models.SplitAllocation{}, &recorderror.MissingFieldError{Field: "amount or percentage"}
	}
}
