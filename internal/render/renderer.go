// Package render turns a ReportTable into output bytes. The layout engine
// owns the numbers; this package owns only their serialization. Fonts,
// colors and column widths are somebody else's problem.
package render

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"encoding/xml"
	"fmt"
	"strings"

	"expensereport/internal/dateutils"
	"expensereport/internal/logging"
	"expensereport/internal/models"
)

// Renderer serializes report tables to csv, json or xml.
type Renderer struct {
	logger    logging.Logger
	delimiter rune
}

// New creates a Renderer with the default comma delimiter.
func New(logger logging.Logger) *Renderer {
	if logger == nil {
		logger = &logging.MockLogger{}
	}
	return &Renderer{logger: logger, delimiter: ','}
}

// SetDelimiter changes the CSV field delimiter.
func (r *Renderer) SetDelimiter(delim rune) {
	if delim != 0 {
		r.delimiter = delim
	}
}

// Render serializes the table in the requested format.
func (r *Renderer) Render(table *models.ReportTable, format string) ([]byte, error) {
	switch strings.ToLower(format) {
	case "csv":
		return r.renderCSV(table)
	case "json":
		return r.renderJSON(table)
	case "xml":
		return r.renderXML(table)
	default:
		return nil, fmt.Errorf("unsupported report format: %s", format)
	}
}

// renderCSV writes one block per section: a title line, a header row, the
// data rows, and a totals row; a grand total line closes the file.
func (r *Renderer) renderCSV(table *models.ReportTable) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	w.Comma = r.delimiter

	for _, section := range table.Sections {
		if err := w.Write([]string{section.Name}); err != nil {
			return nil, fmt.Errorf("failed to write section title: %w", err)
		}

		header := []string{"Date", "Description"}
		for _, code := range section.Codes {
			header = append(header, code.CategoryName)
		}
		if err := w.Write(header); err != nil {
			return nil, fmt.Errorf("failed to write header: %w", err)
		}

		for _, row := range section.Rows {
			cells := []string{dateutils.ToISODate(row.Date), row.Description}
			for _, code := range section.Codes {
				if amount, ok := row.Amounts[code.Code]; ok {
					cells = append(cells, amount.StringFixed(2))
				} else {
					cells = append(cells, "")
				}
			}
			if err := w.Write(cells); err != nil {
				return nil, fmt.Errorf("failed to write row: %w", err)
			}
		}

		totals := []string{"", "Total"}
		for _, code := range section.Codes {
			if sum, ok := section.ColumnTotals[code.Code]; ok {
				totals = append(totals, sum.StringFixed(2))
			} else {
				totals = append(totals, "")
			}
		}
		if err := w.Write(totals); err != nil {
			return nil, fmt.Errorf("failed to write totals: %w", err)
		}
		if err := w.Write([]string{"", "Section total", section.SectionTotal.StringFixed(2)}); err != nil {
			return nil, fmt.Errorf("failed to write section total: %w", err)
		}
	}

	if err := w.Write([]string{"", "Grand total", table.GrandTotal.StringFixed(2)}); err != nil {
		return nil, fmt.Errorf("failed to write grand total: %w", err)
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("csv writer error: %w", err)
	}
	return buf.Bytes(), nil
}

func (r *Renderer) renderJSON(table *models.ReportTable) ([]byte, error) {
	out, err := json.MarshalIndent(toDocument(table), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal JSON report: %w", err)
	}
	return out, nil
}

func (r *Renderer) renderXML(table *models.ReportTable) ([]byte, error) {
	out, err := xml.MarshalIndent(toDocument(table), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal XML report: %w", err)
	}
	return append([]byte(xml.Header), out...), nil
}
