// Package price extracts integer rupee amounts from the mixed-format
// price fields of catalog packages ("₹85,000/-", "INR85000", 85000).
package price

import (
	"regexp"
	"strconv"
	"strings"
)

var digits = regexp.MustCompile(`\d+`)

// Parse returns the integer amount carried by a price field. Numbers pass
// through (floats truncate), strings are stripped of currency decoration
// and parsed, and anything unparsable is 0. The result is never negative.
func Parse(value any) int {
	switch v := value.(type) {
	case nil:
		return 0
	case int:
		return nonNegative(v)
	case int64:
		return nonNegative(int(v))
	case float64:
		return nonNegative(int(v))
	case string:
		return ParseString(v)
	default:
		return 0
	}
}

// ParseString parses a currency-decorated price string such as
// "₹85,000/-" or "INR85000".
func ParseString(raw string) int {
	cleaned := strings.NewReplacer("₹", "", "INR", "", ",", "", "/-", "").Replace(raw)

	match := digits.FindString(cleaned)
	if match == "" {
		return 0
	}

	amount, err := strconv.Atoi(match)
	if err != nil {
		return 0
	}

	return amount
}

func nonNegative(v int) int {
	if v < 0 {
		return 0
	}

	return v
}
