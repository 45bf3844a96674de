// Package layout builds the renderer-agnostic report table from validated
// expense records. It owns row placement, cross-section split fragments and
// all aggregate totals; visual styling belongs to the renderer.
package layout

import (
	"strings"

	"expensereport/internal/catalog"
	"expensereport/internal/currencyutils"
	"expensereport/internal/logging"
	"expensereport/internal/models"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Engine lays out expense records into a ReportTable. Build is pure and
// idempotent: the same record list always produces an identical table.
type Engine struct {
	logger logging.Logger
}

// New creates a layout Engine.
func New(logger logging.Logger) *Engine {
	if logger == nil {
		logger = &logging.MockLogger{}
	}
	return &Engine{logger: logger}
}

// Build partitions records into the Promotion and Other sections, emits one
// row per record plus synthetic rows for split fragments whose code belongs
// to the other section, and computes per-column, per-section and grand
// totals. Rows preserve the input record order; no re-sorting happens here.
func (e *Engine) Build(records []*models.ExpenseRecord) *models.ReportTable {
	sections := map[catalog.Section]*models.ReportSection{
		catalog.SectionPromotion: {
			Name:    "Promotion",
			Section: catalog.SectionPromotion,
			Codes:   catalog.BySection(catalog.SectionPromotion),
		},
		catalog.SectionOther: {
			Name:    "Other",
			Section: catalog.SectionOther,
			Codes:   catalog.BySection(catalog.SectionOther),
		},
	}

	for _, record := range records {
		e.placeRecord(sections, record)
	}

	table := &models.ReportTable{}
	for _, sec := range []catalog.Section{catalog.SectionPromotion, catalog.SectionOther} {
		section := sections[sec]
		totalize(section)
		table.Sections = append(table.Sections, *section)
		table.GrandTotal = table.GrandTotal.Add(section.SectionTotal)
	}

	e.logger.WithFields(
		logging.Field{Key: logging.FieldCount, Value: len(records)},
		logging.Field{Key: "grand_total", Value: table.GrandTotal.StringFixed(2)},
	).Debug("Built report table")

	return table
}

// placeRecord emits the record's primary row and any split fragments.
func (e *Engine) placeRecord(sections map[catalog.Section]*models.ReportSection, record *models.ExpenseRecord) {
	primarySection := catalog.SectionOf(record.AccountingCode)
	description := describeRecord(record)

	row := models.ReportRow{
		Date:        record.Date,
		Description: description,
		Amounts:     map[string]decimal.Decimal{},
	}

	if len(record.Splits) == 0 {
		// Zero amounts are placed, not suppressed; the row still appears.
		addAmount(row.Amounts, columnFor(record.AccountingCode), record.Amount)
	} else {
		if primary := record.PrimaryAllocation(); !primary.IsZero() {
			addAmount(row.Amounts, columnFor(record.AccountingCode), primary)
		}
		for _, s := range record.Splits {
			fragmentSection := catalog.SectionOf(s.AccountingCode)
			if fragmentSection == primarySection {
				addAmount(row.Amounts, columnFor(s.AccountingCode), s.Amount)
				continue
			}
			// Cross-section fragment: separate synthetic row in the other
			// section, carrying the record's date and description.
			fragment := models.ReportRow{
				Date:        record.Date,
				Description: description,
				Amounts: map[string]decimal.Decimal{
					columnFor(s.AccountingCode): s.Amount,
				},
			}
			other := sections[fragmentSection]
			other.Rows = append(other.Rows, fragment)
		}
	}

	section := sections[primarySection]
	section.Rows = append(section.Rows, row)
}

// fallbackColumn is where custom codes land. MustLookup panics at init if
// the fallback ever stops being a real catalog entry.
var fallbackColumn = catalog.MustLookup(catalog.CodeOffice)

// columnFor maps a code to its report column. Custom codes the catalog does
// not know about land in the Office & General column of the Other section.
func columnFor(code string) string {
	if _, ok := catalog.Lookup(code); ok {
		return code
	}
	return fallbackColumn.Code
}

func addAmount(amounts map[string]decimal.Decimal, column string, amount decimal.Decimal) {
	amounts[column] = amounts[column].Add(amount)
}

// totalize computes the per-column sums and the section total.
func totalize(section *models.ReportSection) {
	section.ColumnTotals = map[string]decimal.Decimal{}
	for _, row := range section.Rows {
		for code, amount := range row.Amounts {
			section.ColumnTotals[code] = section.ColumnTotals[code].Add(amount)
		}
	}
	section.SectionTotal = decimal.Zero
	for _, sum := range section.ColumnTotals {
		section.SectionTotal = section.SectionTotal.Add(sum)
	}
}

// describeRecord builds the row description: "merchant: description", an
// optional Location line, and one allocation line per split (primary first)
// when splits exist.
func describeRecord(record *models.ExpenseRecord) string {
	var b strings.Builder
	b.WriteString(record.Merchant)
	if record.Description != "" {
		b.WriteString(": ")
		b.WriteString(record.Description)
	}

	if record.Location != "" {
		b.WriteString("\nLocation: ")
		b.WriteString(record.Location)
	}

	if len(record.Splits) > 0 {
		writeAllocationLine(&b, record.AccountingCode, record.PrimaryAllocation(), record.Amount)
		for _, s := range record.Splits {
			writeAllocationLine(&b, s.AccountingCode, s.Amount, record.Amount)
		}
	}

	return b.String()
}

func writeAllocationLine(b *strings.Builder, code string, amount, total decimal.Decimal) {
	pct := decimal.Zero
	if !total.IsZero() {
		pct = amount.Div(total).Mul(hundred)
	}
	b.WriteString("\n")
	b.WriteString(code)
	b.WriteString(": ")
	b.WriteString(currencyutils.FormatAmount(amount))
	b.WriteString(" (")
	b.WriteString(pct.StringFixed(1))
	b.WriteString("%)")
}
