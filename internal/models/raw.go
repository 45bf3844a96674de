package models

import "strings"

// RawExpense is the loosely-typed field bag produced by LLM receipt
// extraction or a user-submitted edit form. Every member is a string;
// the validator is the single point where this becomes a typed
// ExpenseRecord.
type RawExpense struct {
	Date        string `json:"date"`
	Merchant    string `json:"merchant"`
	Title       string `json:"title,omitempty"`
	Amount      string `json:"amount"`
	Tax         string `json:"tax,omitempty"`
	Description string `json:"description"`
	GLCode      string `json:"gl_code,omitempty"`
	GLCodeAlt   string `json:"glCode,omitempty"`
	Name        string `json:"name,omitempty"`
	Department  string `json:"department,omitempty"`
	Location    string `json:"location,omitempty"`

	// Mileage fields, meaningful only when the resolved code is 6026-000.
	Kilometers   string `json:"kilometers,omitempty"`
	FromLocation string `json:"from_location,omitempty"`
	ToLocation   string `json:"to_location,omitempty"`
	TripPurpose  string `json:"trip_purpose,omitempty"`
}

// MerchantOrTitle returns the merchant field, falling back to the title
// field some extraction paths populate instead.
func (r RawExpense) MerchantOrTitle() string {
	if m := strings.TrimSpace(r.Merchant); m != "" {
		return m
	}
	return strings.TrimSpace(r.Title)
}

// Code returns the supplied accounting code, whichever spelling the caller
// used ("gl_code" from the LLM, "glCode" from form submissions).
func (r RawExpense) Code() string {
	if c := strings.TrimSpace(r.GLCode); c != "" {
		return c
	}
	return strings.TrimSpace(r.GLCodeAlt)
}
