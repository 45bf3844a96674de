// Package extractor turns raw receipt text into a RawExpense field bag
// using an LLM. The model call is an external collaborator hidden behind
// the Extractor interface so the pipeline can be tested without a network.
package extractor

import (
	"context"

	"expensereport/internal/models"
)

// Extractor extracts structured expense fields from receipt text.
type Extractor interface {
	// Extract parses the receipt text and returns the loosely-typed field
	// bag the validator consumes. Implementations interact with an external
	// AI service (e.g. Google Gemini).
	Extract(ctx context.Context, receiptText string) (models.RawExpense, error)
}

// MockExtractor implements Extractor for testing.
type MockExtractor struct {
	Raw models.RawExpense
	Err error
}

// Extract returns the predefined raw expense or error.
func (m *MockExtractor) Extract(context.Context, string) (models.RawExpense, error) {
	if m.Err != nil {
		return models.RawExpense{}, m.Err
	}
	return m.Raw, nil
}
