// Package validate turns loosely-typed raw expense fields into validated
// ExpenseRecord values. It is the single point where untyped extraction or
// form data becomes typed; downstream components never see raw field bags.
package validate

import (
	"regexp"
	"strings"

	"expensereport/internal/catalog"
	"expensereport/internal/classifier"
	"expensereport/internal/currencyutils"
	"expensereport/internal/dateutils"
	"expensereport/internal/logging"
	"expensereport/internal/models"
	"expensereport/internal/recorderror"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var codePattern = regexp.MustCompile(`^\d{4}-\d{3}$`)

// Validator enforces the expense field contract. Validation failures are
// recoverable per record: batch callers collect them and keep going.
type Validator struct {
	classifier *classifier.Classifier
	logger     logging.Logger
}

// New creates a Validator. The classifier supplies a default accounting
// code when the raw fields omit one.
func New(cls *classifier.Classifier, logger logging.Logger) *Validator {
	if logger == nil {
		logger = &logging.MockLogger{}
	}
	if cls == nil {
		cls = classifier.New(logger)
	}
	return &Validator{classifier: cls, logger: logger}
}

// Validate checks every field of a raw expense and returns a fully
// populated ExpenseRecord with an assigned id and empty splits. On failure
// it returns a recorderror.ValidationErrors listing every problem found.
func (v *Validator) Validate(raw models.RawExpense) (*models.ExpenseRecord, error) {
	var errs recorderror.ValidationErrors

	merchant := raw.MerchantOrTitle()
	if merchant == "" {
		errs = append(errs, &recorderror.MissingFieldError{Field: "merchant"})
	}

	amountStr := strings.TrimSpace(raw.Amount)
	var amount decimal.Decimal
	if amountStr == "" {
		errs = append(errs, &recorderror.MissingFieldError{Field: "amount"})
	} else {
		parsed, err := currencyutils.ParseAmount(amountStr)
		switch {
		case err != nil:
			errs = append(errs, &recorderror.InvalidAmountError{Field: "amount", Value: raw.Amount, Err: err})
		case parsed.IsNegative():
			errs = append(errs, &recorderror.InvalidAmountError{Field: "amount", Value: raw.Amount})
		default:
			amount = parsed
		}
	}

	// A failed tax parse is not a hard error; the field defaults to zero.
	tax := decimal.Zero
	if t := strings.TrimSpace(raw.Tax); t != "" {
		if parsed, err := currencyutils.ParseAmount(t); err == nil && !parsed.IsNegative() {
			tax = parsed
		} else {
			v.logger.WithField("tax", raw.Tax).Debug("Unparseable tax value, defaulting to 0")
		}
	}

	dateStr := strings.TrimSpace(raw.Date)
	date, dateErr := dateutils.ParseISODate(dateStr)
	if dateStr == "" {
		errs = append(errs, &recorderror.MissingFieldError{Field: "date"})
	} else if dateErr != nil {
		errs = append(errs, &recorderror.InvalidDateError{Field: "date", Value: raw.Date})
	}

	code := raw.Code()
	if code != "" {
		if !codePattern.MatchString(code) {
			errs = append(errs, &recorderror.InvalidCodeFormatError{Field: "gl_code", Value: code})
		}
	} else {
		code = v.classifier.Classify(merchant, raw.Description)
	}

	record := &models.ExpenseRecord{
		ID:             uuid.NewString(),
		Date:           date,
		Merchant:       merchant,
		Amount:         amount,
		Tax:            tax,
		Description:    strings.TrimSpace(raw.Description),
		AccountingCode: code,
		Name:           strings.TrimSpace(raw.Name),
		Department:     strings.TrimSpace(raw.Department),
		Location:       strings.TrimSpace(raw.Location),
		Splits:         []models.SplitAllocation{},
	}

	if code == catalog.CodeMileage {
		if err := v.applyMileage(raw, record); err != nil {
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		return nil, errs
	}
	return record, nil
}

// applyMileage derives the record amount from kilometers at the fixed rate
// and forces tax to zero. When the caller did not supply kilometers
// explicitly, the amount field value is reinterpreted as kilometers; this
// dual use matches the edit form contract for mileage entries.
func (v *Validator) applyMileage(raw models.RawExpense, record *models.ExpenseRecord) error {
	kmStr := strings.TrimSpace(raw.Kilometers)
	var km decimal.Decimal
	if kmStr != "" {
		parsed, err := currencyutils.ParseAmount(kmStr)
		if err != nil || parsed.IsNegative() {
			return &recorderror.InvalidAmountError{Field: "kilometers", Value: raw.Kilometers, Err: err}
		}
		km = parsed
	} else {
		km = record.Amount
	}

	record.Amount = currencyutils.RoundMoney(km.Mul(models.MileageRate))
	record.Tax = decimal.Zero
	record.Mileage = &models.Mileage{
		Kilometers:   km,
		FromLocation: strings.TrimSpace(raw.FromLocation),
		ToLocation:   strings.TrimSpace(raw.ToLocation),
		TripPurpose:  parseTripPurpose(raw.TripPurpose),
	}

	v.logger.WithFields(
		logging.Field{Key: "kilometers", Value: km.String()},
		logging.Field{Key: "amount", Value: record.Amount.String()},
	).Debug("Derived mileage amount")
	return nil
}

func parseTripPurpose(s string) models.TripPurpose {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "business", "business_meeting":
		return models.TripBusiness
	case "client_site", "client", "client_visit":
		return models.TripClientSite
	case "conference":
		return models.TripConference
	default:
		return models.TripOther
	}
}
