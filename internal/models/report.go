package models

import (
	"time"

	"expensereport/internal/catalog"

	"github.com/shopspring/decimal"
)

// ReportRow is one data row of a report section. Amounts maps an accounting
// code to the amount placed in that code's column; codes absent from the map
// render as empty cells.
type ReportRow struct {
	Date        time.Time
	Description string
	Amounts     map[string]decimal.Decimal
}

// RowTotal returns the sum of the row's column amounts.
func (r ReportRow) RowTotal() decimal.Decimal {
	total := decimal.Zero
	for _, a := range r.Amounts {
		total = total.Add(a)
	}
	return total
}

// ReportSection is one of the two top-level groupings of the report.
type ReportSection struct {
	Name         string
	Section      catalog.Section
	Codes        []catalog.AccountingCode
	Rows         []ReportRow
	ColumnTotals map[string]decimal.Decimal
	SectionTotal decimal.Decimal
}

// ReportTable is the layout engine's output: a renderer-agnostic grid.
// It is built fresh on every export request and never persisted.
type ReportTable struct {
	Sections   []ReportSection
	GrandTotal decimal.Decimal
}

// SectionByName returns the section with the given name, or nil.
func (t *ReportTable) SectionByName(name string) *ReportSection {
	for i := range t.Sections {
		if t.Sections[i].Name == name {
			return &t.Sections[i]
		}
	}
	return nil
}
