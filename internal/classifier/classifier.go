// Package classifier infers a default accounting code from merchant and
// description text when the extraction step did not supply one. It tests an
// ordered list of keyword rules, first match wins, and always falls back to
// Office & General so no record is ever left without a code.
package classifier

import (
	"strings"

	"expensereport/internal/catalog"
	"expensereport/internal/logging"
)

// Rule maps a keyword set to an accounting code. Rules are evaluated in
// order; the first rule with any keyword contained in the input wins.
type Rule struct {
	Code     string   `yaml:"code"`
	Keywords []string `yaml:"keywords"`
}

// Classifier performs deterministic keyword classification. It makes no
// external calls and holds no mutable state, so it is safe for concurrent
// use.
type Classifier struct {
	rules  []Rule
	logger logging.Logger
}

// New creates a Classifier with the built-in rule table.
func New(logger logging.Logger) *Classifier {
	return NewWithRules(DefaultRules(), logger)
}

// NewWithRules creates a Classifier with a custom rule table, typically
// loaded from a YAML override file.
func NewWithRules(rules []Rule, logger logging.Logger) *Classifier {
	if logger == nil {
		logger = &logging.MockLogger{}
	}
	return &Classifier{rules: rules, logger: logger}
}

// Classify returns the accounting code for the given merchant and
// description text. It never returns an empty code: when no rule matches,
// the Office & General code is the universal default.
func (c *Classifier) Classify(merchantText, descriptionText string) string {
	haystack := strings.ToLower(merchantText + " " + descriptionText)

	for _, rule := range c.rules {
		for _, keyword := range rule.Keywords {
			if strings.Contains(haystack, strings.ToLower(keyword)) {
				c.logger.WithFields(
					logging.Field{Key: "keyword", Value: keyword},
					logging.Field{Key: logging.FieldCode, Value: rule.Code},
				).Debug("Expense classified by keyword match")
				return rule.Code
			}
		}
	}

	c.logger.WithField(logging.FieldCode, catalog.CodeOffice).
		Debug("No keyword rule matched, using default code")
	return catalog.CodeOffice
}

// DefaultRules returns the built-in ordered rule table. The order matters:
// subscription vendors are tested before restaurant keywords so that
// "Zoom monthly subscription" lands on Subscriptions, not Food.
func DefaultRules() []Rule {
	return []Rule{
		{
			Code: catalog.CodeSubscriptions,
			Keywords: []string{
				"subscription", "license", "saas", "cloud",
				"zoom", "slack", "adobe", "dropbox", "github", "notion",
				"figma", "atlassian", "aws", "azure", "google workspace",
				"microsoft 365", "openai",
			},
		},
		{
			Code: catalog.CodeEducation,
			Keywords: []string{
				"training", "course", "certification", "workshop",
				"seminar", "udemy", "coursera", "bootcamp", "tuition",
			},
		},
		{
			Code: catalog.CodeFood,
			Keywords: []string{
				"restaurant", "cafe", "coffee", "catering", "bistro",
				"pizzeria", "starbucks", "bakery", "lunch", "dinner",
			},
		},
		{
			Code: catalog.CodeTravel,
			Keywords: []string{
				"hotel", "flight", "airline", "taxi", "uber", "lyft",
				"rideshare", "airbnb", "rental car", "train ticket",
			},
		},
		{
			Code: catalog.CodeMileage,
			Keywords: []string{
				"mileage", "toll", "highway", "407 etr", "etr",
			},
		},
		{
			Code: catalog.CodeMembership,
			Keywords: []string{
				"membership", "dues", "association", "chamber of commerce",
			},
		},
		{
			Code: catalog.CodeOffice,
			Keywords: []string{
				"hardware", "equipment", "computer", "monitor", "keyboard",
				"staples", "office supplies", "printer",
			},
		},
	}
}
