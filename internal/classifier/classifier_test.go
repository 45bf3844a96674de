package classifier

import (
	"testing"

	"expensereport/internal/catalog"
	"expensereport/internal/logging"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	cls := New(&logging.MockLogger{})

	tests := []struct {
		name        string
		merchant    string
		description string
		expected    string
	}{
		{
			name:        "subscription vendor",
			merchant:    "Zoom",
			description: "monthly subscription",
			expected:    catalog.CodeSubscriptions,
		},
		{
			name:        "coffee shop",
			merchant:    "Starbucks",
			description: "coffee meeting",
			expected:    catalog.CodeFood,
		},
		{
			name:        "training course",
			merchant:    "Coursera",
			description: "Go certification course",
			expected:    catalog.CodeEducation,
		},
		{
			name:        "hotel stay",
			merchant:    "Hilton Toronto",
			description: "hotel two nights",
			expected:    catalog.CodeTravel,
		},
		{
			name:        "highway toll",
			merchant:    "407 ETR",
			description: "toll charges",
			expected:    catalog.CodeMileage,
		},
		{
			name:        "association dues",
			merchant:    "Professional Engineers",
			description: "annual membership dues",
			expected:    catalog.CodeMembership,
		},
		{
			name:        "hardware purchase",
			merchant:    "Best Buy",
			description: "computer monitor",
			expected:    catalog.CodeOffice,
		},
		{
			name:        "no match falls back to office",
			merchant:    "Unknown Vendor Inc",
			description: "miscellaneous",
			expected:    catalog.CodeOffice,
		},
		{
			name:        "case insensitive",
			merchant:    "STARBUCKS COFFEE #1234",
			description: "",
			expected:    catalog.CodeFood,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, cls.Classify(tc.merchant, tc.description))
		})
	}
}

func TestClassifyIsDeterministic(t *testing.T) {
	cls := New(&logging.MockLogger{})

	for i := 0; i < 10; i++ {
		assert.Equal(t, catalog.CodeFood, cls.Classify("Starbucks", "coffee meeting"))
		assert.Equal(t, catalog.CodeSubscriptions, cls.Classify("Zoom", "monthly subscription"))
	}
}

func TestClassifyRuleOrder(t *testing.T) {
	cls := New(&logging.MockLogger{})

	// "subscription" outranks the restaurant keywords even when both match.
	assert.Equal(t, catalog.CodeSubscriptions,
		cls.Classify("Cafe Software", "coffee app subscription"))
}

func TestClassifyCustomRules(t *testing.T) {
	rules := []Rule{
		{Code: catalog.CodeSocial, Keywords: []string{"team event"}},
	}
	cls := NewWithRules(rules, &logging.MockLogger{})

	assert.Equal(t, catalog.CodeSocial, cls.Classify("Bowling Lanes", "team event"))
	// Anything else still falls back to Office & General.
	assert.Equal(t, catalog.CodeOffice, cls.Classify("Starbucks", "coffee"))
}
