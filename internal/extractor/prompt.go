package extractor

import (
	"strings"

	"expensereport/internal/catalog"
)

// buildExtractionPrompt constructs the instruction sent to the model along
// with the receipt text. It constrains the accounting code to the catalog
// and the output to a single JSON object matching models.RawExpense.
func buildExtractionPrompt(receiptText string) string {
	var b strings.Builder

	b.WriteString("You are an expense report assistant. Extract the expense fields ")
	b.WriteString("from the receipt text below and respond with a single JSON object, ")
	b.WriteString("no prose and no markdown fences.\n\n")

	b.WriteString("JSON fields (all values are strings; omit unknown fields):\n")
	b.WriteString("  date          - receipt date, format YYYY-MM-DD\n")
	b.WriteString("  merchant      - merchant or vendor name\n")
	b.WriteString("  amount        - total including tax, digits and decimal point only\n")
	b.WriteString("  tax           - tax portion if shown\n")
	b.WriteString("  description   - one short line describing the purchase\n")
	b.WriteString("  gl_code       - accounting code from the list below\n")
	b.WriteString("  location      - city or venue if shown\n\n")

	b.WriteString("Use ONLY the following accounting codes:\n")
	for _, section := range []catalog.Section{catalog.SectionPromotion, catalog.SectionOther} {
		for _, code := range catalog.BySection(section) {
			b.WriteString("  ")
			b.WriteString(code.Code)
			b.WriteString(" - ")
			b.WriteString(code.CategoryName)
			b.WriteString("\n")
		}
	}
	b.WriteString("\nIf no code clearly applies, omit gl_code entirely.\n")

	b.WriteString("\nReceipt text:\n---\n")
	b.WriteString(receiptText)
	b.WriteString("\n---\n")

	return b.String()
}
