package dateutils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseISODate(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		expected  string
		expectErr bool
	}{
		{name: "valid", input: "2024-03-01", expected: "2024-03-01"},
		{name: "trimmed", input: "  2024-03-01  ", expected: "2024-03-01"},
		{name: "slash format rejected", input: "03/01/2024", expectErr: true},
		{name: "short year rejected", input: "24-03-01", expectErr: true},
		{name: "missing zero padding rejected", input: "2024-3-1", expectErr: true},
		{name: "impossible date rejected", input: "2024-13-45", expectErr: true},
		{name: "empty rejected", input: "", expectErr: true},
		{name: "datetime rejected", input: "2024-03-01T10:00:00", expectErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			parsed, err := ParseISODate(tc.input)
			if tc.expectErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expected, ToISODate(parsed))
		})
	}
}

func TestToISODate(t *testing.T) {
	d := time.Date(2024, 12, 5, 14, 30, 0, 0, time.UTC)
	assert.Equal(t, "2024-12-05", ToISODate(d))
}

func TestCleanDateString(t *testing.T) {
	assert.Equal(t, "2024-03-01", CleanDateString("  2024-03-01 "))
	assert.Equal(t, "1 March 2024", CleanDateString("1   March \t 2024"))
}
