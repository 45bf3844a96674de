// Package store persists the working session's expense records. Records
// round-trip through two CSV files: one row per record plus a child file of
// split rows keyed by parent id. Persistence is best effort and session
// scoped; the core never touches it.
package store

import (
	"fmt"
	"os"

	"expensereport/internal/currencyutils"
	"expensereport/internal/dateutils"
	"expensereport/internal/logging"
	"expensereport/internal/models"

	"github.com/gocarina/gocsv"
	"github.com/shopspring/decimal"
)

// recordRow is the persisted shape of one expense record.
type recordRow struct {
	ID           string `csv:"id"`
	Date         string `csv:"date"`
	Merchant     string `csv:"merchant"`
	Amount       string `csv:"amount"`
	Tax          string `csv:"tax"`
	GLCode       string `csv:"gl_code"`
	Description  string `csv:"description"`
	Name         string `csv:"name"`
	Department   string `csv:"department"`
	Location     string `csv:"location"`
	Kilometers   string `csv:"kilometers"`
	FromLocation string `csv:"from_location"`
	ToLocation   string `csv:"to_location"`
	TripPurpose  string `csv:"trip_purpose"`
}

// splitRow is the persisted shape of one split allocation.
type splitRow struct {
	ParentID   string `csv:"parent_id"`
	GLCode     string `csv:"gl_code"`
	Amount     string `csv:"amount"`
	Percentage string `csv:"percentage"`
}

// RecordStore loads and saves the session's record list.
type RecordStore struct {
	recordsFile string
	splitsFile  string
	logger      logging.Logger
}

// NewRecordStore creates a store backed by the given file pair.
func NewRecordStore(recordsFile, splitsFile string, logger logging.Logger) *RecordStore {
	if logger == nil {
		logger = &logging.MockLogger{}
	}
	return &RecordStore{
		recordsFile: recordsFile,
		splitsFile:  splitsFile,
		logger:      logger,
	}
}

// Load reads the record list. A missing records file yields an empty list,
// not an error; a missing splits file just means no record has splits.
func (s *RecordStore) Load() ([]*models.ExpenseRecord, error) {
	rows, err := readCSVFile[recordRow](s.recordsFile)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	splitRows, err := readCSVFile[splitRow](s.splitsFile)
	if err != nil && !os.IsNotExist(err) {
		return nil, err
	}
	splitsByParent := make(map[string][]models.SplitAllocation)
	for _, sr := range splitRows {
		alloc, err := sr.toAllocation()
		if err != nil {
			return nil, err
		}
		splitsByParent[sr.ParentID] = append(splitsByParent[sr.ParentID], alloc)
	}

	records := make([]*models.ExpenseRecord, 0, len(rows))
	for _, row := range rows {
		record, err := row.toRecord()
		if err != nil {
			return nil, err
		}
		if splits, ok := splitsByParent[record.ID]; ok {
			record.Splits = splits
		}
		records = append(records, record)
	}

	s.logger.WithField(logging.FieldCount, len(records)).Debug("Loaded expense records")
	return records, nil
}

// Save writes the record list, replacing both files wholesale.
func (s *RecordStore) Save(records []*models.ExpenseRecord) error {
	rows := make([]recordRow, 0, len(records))
	var splitRows []splitRow
	for _, record := range records {
		rows = append(rows, toRow(record))
		for _, alloc := range record.Splits {
			splitRows = append(splitRows, splitRow{
				ParentID:   record.ID,
				GLCode:     alloc.AccountingCode,
				Amount:     alloc.Amount.StringFixed(2),
				Percentage: alloc.Percentage.StringFixed(4),
			})
		}
	}

	if err := writeCSVFile(s.recordsFile, &rows); err != nil {
		return err
	}
	if err := writeCSVFile(s.splitsFile, &splitRows); err != nil {
		return err
	}

	s.logger.WithFields(
		logging.Field{Key: logging.FieldCount, Value: len(records)},
		logging.Field{Key: logging.FieldFile, Value: s.recordsFile},
	).Info("Saved expense records")
	return nil
}

// FindByID returns the record with the given id from a loaded list.
func FindByID(records []*models.ExpenseRecord, id string) (*models.ExpenseRecord, bool) {
	for _, r := range records {
		if r.ID == id {
			return r, true
		}
	}
	return nil, false
}

func toRow(record *models.ExpenseRecord) recordRow {
	row := recordRow{
		ID:          record.ID,
		Date:        dateutils.ToISODate(record.Date),
		Merchant:    record.Merchant,
		Amount:      record.Amount.StringFixed(2),
		Tax:         record.Tax.StringFixed(2),
		GLCode:      record.AccountingCode,
		Description: record.Description,
		Name:        record.Name,
		Department:  record.Department,
		Location:    record.Location,
	}
	if record.Mileage != nil {
		row.Kilometers = record.Mileage.Kilometers.String()
		row.FromLocation = record.Mileage.FromLocation
		row.ToLocation = record.Mileage.ToLocation
		row.TripPurpose = string(record.Mileage.TripPurpose)
	}
	return row
}

func (row recordRow) toRecord() (*models.ExpenseRecord, error) {
	date, err := dateutils.ParseISODate(row.Date)
	if err != nil {
		return nil, fmt.Errorf("record %s: %w", row.ID, err)
	}
	amount, err := currencyutils.ParseAmount(row.Amount)
	if err != nil {
		return nil, fmt.Errorf("record %s: %w", row.ID, err)
	}
	tax, err := currencyutils.ParseAmount(row.Tax)
	if err != nil {
		return nil, fmt.Errorf("record %s: %w", row.ID, err)
	}

	record := &models.ExpenseRecord{
		ID:             row.ID,
		Date:           date,
		Merchant:       row.Merchant,
		Amount:         amount,
		Tax:            tax,
		Description:    row.Description,
		AccountingCode: row.GLCode,
		Name:           row.Name,
		Department:     row.Department,
		Location:       row.Location,
		Splits:         []models.SplitAllocation{},
	}

	if row.Kilometers != "" {
		km, err := decimal.NewFromString(row.Kilometers)
		if err != nil {
			return nil, fmt.Errorf("record %s: invalid kilometers '%s': %w", row.ID, row.Kilometers, err)
		}
		record.Mileage = &models.Mileage{
			Kilometers:   km,
			FromLocation: row.FromLocation,
			ToLocation:   row.ToLocation,
			TripPurpose:  models.TripPurpose(row.TripPurpose),
		}
	}

	return record, nil
}

func (row splitRow) toAllocation() (models.SplitAllocation, error) {
	amount, err := currencyutils.ParseAmount(row.Amount)
	if err != nil {
		return models.SplitAllocation{}, fmt.Errorf("split for %s: %w", row.ParentID, err)
	}
	pct, err := currencyutils.ParseAmount(row.Percentage)
	if err != nil {
		return models.SplitAllocation{}, fmt.Errorf("split for %s: %w", row.ParentID, err)
	}
	return models.SplitAllocation{
		AccountingCode: row.GLCode,
		Amount:         amount,
		Percentage:     pct,
	}, nil
}

// readCSVFile reads CSV data into a slice of structs using gocsv.
func readCSVFile[TRow any](filePath string) ([]TRow, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = file.Close()
	}()

	var rows []TRow
	if err := gocsv.UnmarshalFile(file, &rows); err != nil {
		return nil, fmt.Errorf("error parsing CSV file %s: %w", filePath, err)
	}
	return rows, nil
}

// writeCSVFile writes a slice of structs to a CSV file using gocsv.
func writeCSVFile[TRow any](filePath string, rows *[]TRow) error {
	file, err := os.Create(filePath)
	if err != nil {
		return fmt.Errorf("error creating CSV file %s: %w", filePath, err)
	}
	defer func() {
		_ = file.Close()
	}()

	if err := gocsv.MarshalFile(rows, file); err != nil {
		return fmt.Errorf("error writing CSV file %s: %w", filePath, err)
	}
	return nil
}
