// Package dateutils provides date parsing helpers.
package dateutils

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// DateLayoutISO is the only date layout the validator accepts from callers.
const DateLayoutISO = "2006-01-02"

var isoPattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// ParseISODate parses a strict YYYY-MM-DD calendar date. Anything else,
// including other common formats like 03/01/2024, is rejected.
func ParseISODate(dateStr string) (time.Time, error) {
	dateStr = CleanDateString(dateStr)

	if !isoPattern.MatchString(dateStr) {
		return time.Time{}, fmt.Errorf("date '%s' does not match YYYY-MM-DD", dateStr)
	}

	t, err := time.Parse(DateLayoutISO, dateStr)
	if err != nil {
		return time.Time{}, fmt.Errorf("date '%s' is not a valid calendar date: %w", dateStr, err)
	}

	return t, nil
}

// ToISODate formats a time.Time value as an ISO date (YYYY-MM-DD).
func ToISODate(date time.Time) string {
	return date.Format(DateLayoutISO)
}

// CleanDateString trims whitespace and collapses internal runs of spaces.
func CleanDateString(dateStr string) string {
	dateStr = strings.TrimSpace(dateStr)
	re := regexp.MustCompile(`\s+`)
	return re.ReplaceAllString(dateStr, " ")
}
