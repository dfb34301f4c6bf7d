package duration_test

import (
	"testing"

	"roam/shared/duration"

	"github.com/stretchr/testify/assert"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "already canonical",
			input:    "6 Nights 5 Days",
			expected: "6 Nights 5 Days",
		},
		{
			name:     "days before nights",
			input:    "5 Days 6 Nights",
			expected: "6 Nights 5 Days",
		},
		{
			name:     "singular night with ampersand",
			input:    "6 Night & 7 Days",
			expected: "6 Nights 7 Days",
		},
		{
			name:     "days ampersand nights",
			input:    "7 Days & 6 Nights",
			expected: "6 Nights 7 Days",
		},
		{
			name:     "compact nights days",
			input:    "6N 7D",
			expected: "6 Nights 7 Days",
		},
		{
			name:     "compact days nights",
			input:    "7D 6N",
			expected: "6 Nights 7 Days",
		},
		{
			name:     "bare integer is a day count",
			input:    "7",
			expected: "6 Nights 7 Days",
		},
		{
			name:     "bare one day floors nights at one",
			input:    "1",
			expected: "1 Nights 1 Days",
		},
		{
			name:     "equal nights and days",
			input:    "3 Nights 3 Days",
			expected: "3 Nights 3 Days",
		},
		{
			name:     "extra whitespace tolerated",
			input:    "  6 nights   5 days ",
			expected: "6 Nights 5 Days",
		},
		{
			name:     "empty input",
			input:    "",
			expected: "N/A",
		},
		{
			name:     "whitespace only input",
			input:    "   ",
			expected: "N/A",
		},
		{
			name:     "unrecognized input passes through trimmed",
			input:    " garbled text ",
			expected: "garbled text",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, duration.Format(tt.input))
		})
	}
}

func TestNights(t *testing.T) {
	assert.Equal(t, "6 Nights", duration.Nights("6 Nights 5 Days"))
	assert.Equal(t, "6 Nights", duration.Nights("5 Days 6 Nights"))
	assert.Equal(t, "6 Nights", duration.Nights("7"))
	assert.Equal(t, "N/A", duration.Nights("bad"))
	assert.Equal(t, "N/A", duration.Nights(""))
}

func TestDays(t *testing.T) {
	assert.Equal(t, "5 Days", duration.Days("6 Nights 5 Days"))
	assert.Equal(t, "7 Days", duration.Days("6N 7D"))
	assert.Equal(t, "N/A", duration.Days("bad"))
}

func TestNightsValue(t *testing.T) {
	assert.Equal(t, 6, duration.NightsValue("6 Nights 5 Days"))
	assert.Equal(t, 6, duration.NightsValue("7"))
	assert.Equal(t, 0, duration.NightsValue("bad"))
	assert.Equal(t, 0, duration.NightsValue(""))
}
