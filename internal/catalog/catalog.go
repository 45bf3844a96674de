// Package catalog holds the static accounting code table. The catalog is
// fixed at process start and never mutated; changing it is a code change,
// not runtime configuration.
package catalog

import "fmt"

// Section is the top-level grouping a code belongs to in the rendered report.
type Section string

const (
	SectionPromotion Section = "promotion"
	SectionOther     Section = "other"
)

// Canonical accounting codes.
const (
	CodeUncategorized = "0000-000"
	CodeFood          = "6010-000"
	CodeSocial        = "6011-000"
	CodeTravel        = "6012-000"
	CodeMileage       = "6026-000"
	CodeMembership    = "6402-000"
	CodeSubscriptions = "6404-000"
	CodeOffice        = "6408-000"
	CodeEducation     = "7335-000"
)

// AccountingCode is an immutable catalog entry.
type AccountingCode struct {
	Code         string
	CategoryName string
	Section      Section
}

// Column order within each section is fixed and determines the column order
// of the rendered report.
var otherCodes = []AccountingCode{
	{Code: CodeOffice, CategoryName: "Office & General", Section: SectionOther},
	{Code: CodeMembership, CategoryName: "Membership", Section: SectionOther},
	{Code: CodeSubscriptions, CategoryName: "Subscriptions", Section: SectionOther},
	{Code: CodeEducation, CategoryName: "Education & Development", Section: SectionOther},
	{Code: CodeMileage, CategoryName: "Mileage/ETR", Section: SectionOther},
}

var promotionCodes = []AccountingCode{
	{Code: CodeUncategorized, CategoryName: "Other/Uncategorized", Section: SectionPromotion},
	{Code: CodeFood, CategoryName: "Food & Entertainment", Section: SectionPromotion},
	{Code: CodeSocial, CategoryName: "Social", Section: SectionPromotion},
	{Code: CodeTravel, CategoryName: "Travel", Section: SectionPromotion},
}

var byCode = func() map[string]AccountingCode {
	m := make(map[string]AccountingCode, len(otherCodes)+len(promotionCodes))
	for _, c := range otherCodes {
		m[c.Code] = c
	}
	for _, c := range promotionCodes {
		m[c.Code] = c
	}
	return m
}()

// Lookup returns the catalog entry for a code. The boolean is false for
// custom codes the catalog does not know about.
func Lookup(code string) (AccountingCode, bool) {
	c, ok := byCode[code]
	return c, ok
}

// MustLookup returns the catalog entry for a code and panics when the code
// is unknown. Reserved for codes the caller hardcodes.
func MustLookup(code string) AccountingCode {
	c, ok := byCode[code]
	if !ok {
		panic(fmt.Sprintf("catalog: unknown accounting code %q", code))
	}
	return c
}

// BySection returns the ordered code list for a section. Callers must not
// mutate the returned slice.
func BySection(section Section) []AccountingCode {
	if section == SectionPromotion {
		return promotionCodes
	}
	return otherCodes
}

// SectionOf returns the section owning a code. Custom codes not present in
// the catalog default to the Other section.
func SectionOf(code string) Section {
	if c, ok := byCode[code]; ok {
		return c.Section
	}
	return SectionOther
}
