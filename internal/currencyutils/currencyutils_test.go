package currencyutils

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		expected  string
		expectErr bool
	}{
		{name: "plain", input: "1234.56", expected: "1234.56"},
		{name: "empty is zero", input: "", expected: "0"},
		{name: "whitespace is zero", input: "   ", expected: "0"},
		{name: "dollar symbol", input: "$42.50", expected: "42.5"},
		{name: "euro symbol", input: "€99.99", expected: "99.99"},
		{name: "us thousands", input: "$1,234.56", expected: "1234.56"},
		{name: "european format", input: "1.234,56", expected: "1234.56"},
		{name: "comma decimal", input: "1234,56", expected: "1234.56"},
		{name: "comma thousands only", input: "1,234", expected: "1234"},
		{name: "swiss apostrophe", input: "CHF 1'234.56", expected: "1234.56"},
		{name: "negative", input: "-50.25", expected: "-50.25"},
		{name: "garbage", input: "abc", expectErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			amount, err := ParseAmount(tc.input)
			if tc.expectErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expected, amount.String())
		})
	}
}

func TestFormatAmount(t *testing.T) {
	assert.Equal(t, "$250.00", FormatAmount(decimal.NewFromInt(250)))
	assert.Equal(t, "$0.50", FormatAmount(decimal.NewFromFloat(0.5)))
}

func TestRoundMoney(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{input: "86.760", expected: "86.76"},
		{input: "10.005", expected: "10.01"},
		{input: "10.004", expected: "10"},
		{input: "-10.005", expected: "-10.01"},
	}

	for _, tc := range tests {
		d, err := decimal.NewFromString(tc.input)
		require.NoError(t, err)
		assert.Equal(t, tc.expected, RoundMoney(d).String(), "input %s", tc.input)
	}
}
