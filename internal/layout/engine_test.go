package layout

import (
	"testing"
	"time"

	"expensereport/internal/catalog"
	"expensereport/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func travelRecord() *models.ExpenseRecord {
	return &models.ExpenseRecord{
		ID:             "rec-travel",
		Date:           time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		Merchant:       "Hilton",
		Amount:         dec("300"),
		AccountingCode: catalog.CodeTravel,
		Splits:         []models.SplitAllocation{},
	}
}

func columnCodes(section models.ReportSection) []string {
	codes := make([]string, 0, len(section.Codes))
	for _, c := range section.Codes {
		codes = append(codes, c.Code)
	}
	return codes
}

func sectionByName(t *testing.T, table *models.ReportTable, name string) *models.ReportSection {
	t.Helper()
	sec := table.SectionByName(name)
	require.NotNil(t, sec)
	return sec
}

func TestBuildSectionOrderAndColumns(t *testing.T) {
	e := New(nil)
	table := e.Build(nil)

	require.Len(t, table.Sections, 2)
	assert.Equal(t, "Promotion", table.Sections[0].Name)
	assert.Equal(t, "Other", table.Sections[1].Name)
	assert.Equal(t,
		[]string{catalog.CodeUncategorized, catalog.CodeFood, catalog.CodeSocial, catalog.CodeTravel},
		columnCodes(table.Sections[0]))
	assert.Equal(t,
		[]string{catalog.CodeOffice, catalog.CodeMembership, catalog.CodeSubscriptions, catalog.CodeEducation, catalog.CodeMileage},
		columnCodes(table.Sections[1]))
	assert.True(t, table.GrandTotal.IsZero())
}

func TestBuildPlacesUnsplitRecord(t *testing.T) {
	e := New(nil)
	table := e.Build([]*models.ExpenseRecord{travelRecord()})

	promo := sectionByName(t, table, "Promotion")
	require.Len(t, promo.Rows, 1)
	assert.Equal(t, "300", promo.Rows[0].Amounts[catalog.CodeTravel].String())
	assert.Equal(t, "Hilton", promo.Rows[0].Description)
	assert.Equal(t, "300", promo.SectionTotal.String())
	assert.Equal(t, "300", table.GrandTotal.String())
}

func TestBuildSameSectionSplitStaysInOneRow(t *testing.T) {
	e := New(nil)
	record := travelRecord()
	record.Splits = []models.SplitAllocation{
		{AccountingCode: catalog.CodeFood, Amount: dec("50")},
	}

	table := e.Build([]*models.ExpenseRecord{record})

	promo := sectionByName(t, table, "Promotion")
	require.Len(t, promo.Rows, 1)
	row := promo.Rows[0]
	assert.Equal(t, "250", row.Amounts[catalog.CodeTravel].String())
	assert.Equal(t, "50", row.Amounts[catalog.CodeFood].String())
	assert.Equal(t, "300", row.RowTotal().String())

	other := sectionByName(t, table, "Other")
	assert.Empty(t, other.Rows)
	assert.Equal(t, "300", table.GrandTotal.String())
}

func TestBuildCrossSectionSplitEmitsFragmentRow(t *testing.T) {
	e := New(nil)
	record := &models.ExpenseRecord{
		ID:             "rec-office",
		Date:           time.Date(2024, 4, 2, 0, 0, 0, 0, time.UTC),
		Merchant:       "Staples",
		Amount:         dec("100"),
		AccountingCode: catalog.CodeOffice,
		Splits: []models.SplitAllocation{
			{AccountingCode: catalog.CodeFood, Amount: dec("40")},
		},
	}

	table := e.Build([]*models.ExpenseRecord{record})

	other := sectionByName(t, table, "Other")
	require.Len(t, other.Rows, 1)
	assert.Equal(t, "60", other.Rows[0].Amounts[catalog.CodeOffice].String())

	promo := sectionByName(t, table, "Promotion")
	require.Len(t, promo.Rows, 1)
	assert.Equal(t, "40", promo.Rows[0].Amounts[catalog.CodeFood].String())
	assert.Equal(t, record.Date, promo.Rows[0].Date)
	assert.Equal(t, other.Rows[0].Description, promo.Rows[0].Description)

	assert.Equal(t, "100", table.GrandTotal.String())
}

func TestBuildFullyAllocatedSplitSuppressesPrimary(t *testing.T) {
	e := New(nil)
	record := travelRecord()
	record.Splits = []models.SplitAllocation{
		{AccountingCode: catalog.CodeFood, Amount: dec("300")},
	}

	table := e.Build([]*models.ExpenseRecord{record})

	promo := sectionByName(t, table, "Promotion")
	require.Len(t, promo.Rows, 1)
	_, hasPrimary := promo.Rows[0].Amounts[catalog.CodeTravel]
	assert.False(t, hasPrimary)
	assert.Equal(t, "300", promo.Rows[0].Amounts[catalog.CodeFood].String())
}

func TestBuildCustomCodeLandsInOfficeColumn(t *testing.T) {
	e := New(nil)
	record := &models.ExpenseRecord{
		ID:             "rec-custom",
		Date:           time.Date(2024, 5, 3, 0, 0, 0, 0, time.UTC),
		Merchant:       "Vendor",
		Amount:         dec("75"),
		AccountingCode: "9999-000",
		Splits:         []models.SplitAllocation{},
	}

	table := e.Build([]*models.ExpenseRecord{record})

	other := sectionByName(t, table, "Other")
	require.Len(t, other.Rows, 1)
	assert.Equal(t, "75", other.Rows[0].Amounts[catalog.CodeOffice].String())

	promo := sectionByName(t, table, "Promotion")
	assert.Empty(t, promo.Rows)
}

func TestBuildZeroAmountRecordStillEmitsRow(t *testing.T) {
	e := New(nil)
	record := travelRecord()
	record.Amount = decimal.Zero

	table := e.Build([]*models.ExpenseRecord{record})

	promo := sectionByName(t, table, "Promotion")
	require.Len(t, promo.Rows, 1)
	amount, ok := promo.Rows[0].Amounts[catalog.CodeTravel]
	require.True(t, ok)
	assert.True(t, amount.IsZero())
}

func TestBuildColumnAndSectionTotals(t *testing.T) {
	e := New(nil)
	first := travelRecord()
	second := travelRecord()
	second.ID = "rec-travel-2"
	second.Amount = dec("120.50")

	office := &models.ExpenseRecord{
		ID:             "rec-office",
		Date:           time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC),
		Merchant:       "Staples",
		Amount:         dec("80"),
		AccountingCode: catalog.CodeOffice,
		Splits:         []models.SplitAllocation{},
	}

	table := e.Build([]*models.ExpenseRecord{first, second, office})

	promo := sectionByName(t, table, "Promotion")
	assert.Equal(t, "420.5", promo.ColumnTotals[catalog.CodeTravel].String())
	assert.Equal(t, "420.5", promo.SectionTotal.String())

	other := sectionByName(t, table, "Other")
	assert.Equal(t, "80", other.ColumnTotals[catalog.CodeOffice].String())

	assert.Equal(t, "500.50", table.GrandTotal.StringFixed(2))
}

func TestBuildDescriptionCarriesAllocationLines(t *testing.T) {
	e := New(nil)
	record := travelRecord()
	record.Description = "conference stay"
	record.Location = "Toronto"
	record.Splits = []models.SplitAllocation{
		{AccountingCode: catalog.CodeFood, Amount: dec("50")},
	}

	table := e.Build([]*models.ExpenseRecord{record})

	promo := sectionByName(t, table, "Promotion")
	require.Len(t, promo.Rows, 1)
	desc := promo.Rows[0].Description
	assert.Contains(t, desc, "Hilton: conference stay")
	assert.Contains(t, desc, "Location: Toronto")
	assert.Contains(t, desc, "6012-000: $250.00 (83.3%)")
	assert.Contains(t, desc, "6010-000: $50.00 (16.7%)")
}

func TestBuildIsIdempotent(t *testing.T) {
	e := New(nil)
	records := []*models.ExpenseRecord{travelRecord()}
	records[0].Splits = []models.SplitAllocation{
		{AccountingCode: catalog.CodeOffice, Amount: dec("30")},
	}

	first := e.Build(records)
	second := e.Build(records)

	assert.Equal(t, first, second)
	assert.Equal(t, "300", first.GrandTotal.String())
}
