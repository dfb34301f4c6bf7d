package price_test

import (
	"testing"

	"roam/shared/price"

	"github.com/stretchr/testify/assert"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name     string
		input    any
		expected int
	}{
		{
			name:     "rupee symbol with commas and trailing dash",
			input:    "₹85,000/-",
			expected: 85000,
		},
		{
			name:     "INR prefix",
			input:    "INR85000",
			expected: 85000,
		},
		{
			name:     "plain numeric string",
			input:    "50000",
			expected: 50000,
		},
		{
			name:     "integer passes through",
			input:    90000,
			expected: 90000,
		},
		{
			name:     "json float truncates",
			input:    85000.0,
			expected: 85000,
		},
		{
			name:     "negative clamps to zero",
			input:    -100,
			expected: 0,
		},
		{
			name:     "nil is zero",
			input:    nil,
			expected: 0,
		},
		{
			name:     "unparsable string is zero",
			input:    "call for price",
			expected: 0,
		},
		{
			name:     "empty string is zero",
			input:    "",
			expected: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, price.Parse(tt.input))
		})
	}
}

func TestParseStringNeverNegative(t *testing.T) {
	inputs := []string{"₹85,000/-", "INR85000", "-500", "free", "", "₹1,23,456/-"}

	for _, input := range inputs {
		assert.GreaterOrEqual(t, price.ParseString(input), 0, input)
	}
}
