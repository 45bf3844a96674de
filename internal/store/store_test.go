package store

import (
	"os"
	"path/filepath"
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

func newTestStore(t *testing.T) *RecordStore {
	t.Helper()
	dir := t.TempDir()
	return NewRecordStore(
		filepath.Join(dir, "records.csv"),
		filepath.Join(dir, "splits.csv"),
		nil,
	)
}

func sampleRecords() []*models.ExpenseRecord {
	return []*models.ExpenseRecord{
		{
			ID:             "rec-1",
			Date:           time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
			Merchant:       "Hilton",
			Amount:         dec("300"),
			Tax:            dec("39"),
			Description:    "conference stay",
			AccountingCode: catalog.CodeTravel,
			Name:           "J. Doe",
			Department:     "Engineering",
			Location:       "Toronto",
			Splits: []models.SplitAllocation{
				{AccountingCode: catalog.CodeFood, Amount: dec("50"), Percentage: dec("16.6667")},
			},
		},
		{
			ID:             "rec-2",
			Date:           time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC),
			Merchant:       "Client visit",
			Amount:         dec("86.76"),
			Tax:            decimal.Zero,
			AccountingCode: catalog.CodeMileage,
			Splits:         []models.SplitAllocation{},
			Mileage: &models.Mileage{
				Kilometers:   dec("120.5"),
				FromLocation: "Toronto",
				ToLocation:   "Waterloo",
				TripPurpose:  models.TripClientSite,
			},
		},
	}
}

func TestLoadMissingFileReturnsEmpty(t *testing.T) {
	s := newTestStore(t)

	records, err := s.Load()
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.Save(sampleRecords()))

	loaded, err := s.Load()
	require.NoError(t, err)
	require.Len(t, loaded, 2)

	first := loaded[0]
	assert.Equal(t, "rec-1", first.ID)
	assert.Equal(t, "Hilton", first.Merchant)
	assert.Equal(t, "300.00", first.Amount.StringFixed(2))
	assert.Equal(t, "39.00", first.Tax.StringFixed(2))
	assert.Equal(t, catalog.CodeTravel, first.AccountingCode)
	assert.Equal(t, "2024-03-01", first.Date.Format("2006-01-02"))
	require.Len(t, first.Splits, 1)
	assert.Equal(t, catalog.CodeFood, first.Splits[0].AccountingCode)
	assert.Equal(t, "50.00", first.Splits[0].Amount.StringFixed(2))
	assert.Equal(t, "16.7", first.Splits[0].Percentage.StringFixed(1))

	second := loaded[1]
	assert.Empty(t, second.Splits)
	require.NotNil(t, second.Mileage)
	assert.Equal(t, "120.5", second.Mileage.Kilometers.String())
	assert.Equal(t, "Waterloo", second.Mileage.ToLocation)
	assert.Equal(t, models.TripClientSite, second.Mileage.TripPurpose)
	assert.True(t, second.Tax.IsZero())
}

func TestSaveReplacesWholesale(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.Save(sampleRecords()))

	remaining := sampleRecords()[:1]
	remaining[0].Splits = []models.SplitAllocation{}
	require.NoError(t, s.Save(remaining))

	loaded, err := s.Load()
	require.NoError(t, err)
	require.Len(t, loaded, 1)
	assert.Empty(t, loaded[0].Splits)
}

func TestSaveEmptyList(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.Save(nil))

	loaded, err := s.Load()
	require.NoError(t, err)
	assert.Empty(t, loaded)
}

func TestLoadRejectsCorruptDate(t *testing.T) {
	dir := t.TempDir()
	recordsFile := filepath.Join(dir, "records.csv")
	content := "id,date,merchant,amount,tax,gl_code,description,name,department,location,kilometers,from_location,to_location,trip_purpose\n" +
		"rec-1,03/01/2024,Hilton,300.00,0.00,6012-000,,,,,,,,\n"
	require.NoError(t, os.WriteFile(recordsFile, []byte(content), 0o600))

	s := NewRecordStore(recordsFile, filepath.Join(dir, "splits.csv"), nil)
	_, err := s.Load()
	assert.Error(t, err)
}

func TestFindByID(t *testing.T) {
	records := sampleRecords()

	found, ok := FindByID(records, "rec-2")
	require.True(t, ok)
	assert.Equal(t, "Client visit", found.Merchant)

	_, ok = FindByID(records, "missing")
	assert.False(t, ok)
}
