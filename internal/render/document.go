package render

import (
	"encoding/xml"

	"expensereport/internal/dateutils"
	"expensereport/internal/models"
)

// reportDocument is the serialization mirror of models.ReportTable.
// encoding/xml cannot marshal maps, so rows are flattened into cell lists
// in the section's column order.
type reportDocument struct {
	XMLName    xml.Name          `xml:"expenseReport" json:"-"`
	Sections   []sectionDocument `xml:"section" json:"sections"`
	GrandTotal string            `xml:"grandTotal" json:"grand_total"`
}

type sectionDocument struct {
	Name         string         `xml:"name,attr" json:"name"`
	Columns      []string       `xml:"columns>column" json:"columns"`
	Rows         []rowDocument  `xml:"rows>row" json:"rows"`
	ColumnTotals []cellDocument `xml:"columnTotals>total" json:"column_totals"`
	SectionTotal string         `xml:"sectionTotal" json:"section_total"`
}

type rowDocument struct {
	Date        string         `xml:"date" json:"date"`
	Description string         `xml:"description" json:"description"`
	Cells       []cellDocument `xml:"cells>cell" json:"cells"`
}

type cellDocument struct {
	Code   string `xml:"code,attr" json:"code"`
	Amount string `xml:"amount" json:"amount"`
}

func toDocument(table *models.ReportTable) reportDocument {
	doc := reportDocument{GrandTotal: table.GrandTotal.StringFixed(2)}

	for _, section := range table.Sections {
		sec := sectionDocument{
			Name:         section.Name,
			SectionTotal: section.SectionTotal.StringFixed(2),
		}
		for _, code := range section.Codes {
			sec.Columns = append(sec.Columns, code.CategoryName)
		}
		for _, row := range section.Rows {
			r := rowDocument{
				Date:        dateutils.ToISODate(row.Date),
				Description: row.Description,
			}
			for _, code := range section.Codes {
				if amount, ok := row.Amounts[code.Code]; ok {
					r.Cells = append(r.Cells, cellDocument{
						Code:   code.Code,
						Amount: amount.StringFixed(2),
					})
				}
			}
			sec.Rows = append(sec.Rows, r)
		}
		for _, code := range section.Codes {
			if sum, ok := section.ColumnTotals[code.Code]; ok {
				sec.ColumnTotals = append(sec.ColumnTotals, cellDocument{
					Code:   code.Code,
					Amount: sum.StringFixed(2),
				})
			}
		}
		doc.Sections = append(doc.Sections, sec)
	}

	return doc
}
