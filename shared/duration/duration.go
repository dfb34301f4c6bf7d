// Package duration normalizes the free-text duration strings attached to
// travel packages ("6 Nights 5 Days", "5 Days 6 Nights", "6N 7D", "7")
// into the canonical "N Nights M Days" form used as a filter key.
package duration

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// NotAvailable is returned for empty input and by the extractors when the
// canonical form carries no matching component.
const NotAvailable = "N/A"

type pattern struct {
	re          *regexp.Regexp
	nightsFirst bool
}

var patterns = []pattern{
	// "<a> Night(s) [&] <b> Day(s)"
	{regexp.MustCompile(`(?i)^(\d+)\s*nights?\s*&?\s*(\d+)\s*days?$`), true},
	// "<a> Day(s) [&] <b> Night(s)"
	{regexp.MustCompile(`(?i)^(\d+)\s*days?\s*&?\s*(\d+)\s*nights?$`), false},
	// "<a>N <b>D"
	{regexp.MustCompile(`(?i)^(\d+)\s*n\s+(\d+)\s*d$`), true},
	// "<a>D <b>N"
	{regexp.MustCompile(`(?i)^(\d+)\s*d\s+(\d+)\s*n$`), false},
}

var (
	bareNumber  = regexp.MustCompile(`^\d+$`)
	nightsToken = regexp.MustCompile(`(\d+) Nights`)
	daysToken   = regexp.MustCompile(`(\d+) Days`)
)

// Format converts a human-entered duration string into "N Nights M Days".
// Empty input yields NotAvailable; input matching none of the known
// patterns is returned trimmed but otherwise unchanged. The number keeps
// the label of the slot it appeared in, so "6 Nights 5 Days" and
// "5 Days 6 Nights" normalize to the same string.
func Format(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return NotAvailable
	}

	for _, p := range patterns {
		match := p.re.FindStringSubmatch(trimmed)
		if match == nil {
			continue
		}

		first, _ := strconv.Atoi(match[1])
		second, _ := strconv.Atoi(match[2])

		if p.nightsFirst {
			return canonical(first, second)
		}

		return canonical(second, first)
	}

	if bareNumber.MatchString(trimmed) {
		// A bare integer is a day count; nights is one less, floored at 1.
		days, _ := strconv.Atoi(trimmed)

		return canonical(max(1, days-1), days)
	}

	return trimmed
}

// Nights extracts the "N Nights" token from the canonical form of the
// given duration, or NotAvailable when there is none.
func Nights(raw string) string {
	match := nightsToken.FindString(Format(raw))
	if match == "" {
		return NotAvailable
	}

	return match
}

// Days extracts the "N Days" token from the canonical form of the given
// duration, or NotAvailable when there is none.
func Days(raw string) string {
	match := daysToken.FindString(Format(raw))
	if match == "" {
		return NotAvailable
	}

	return match
}

// NightsValue returns the numeric nights component of the canonical form,
// or 0 when the duration does not normalize.
func NightsValue(raw string) int {
	match := nightsToken.FindStringSubmatch(Format(raw))
	if match == nil {
		return 0
	}

	nights, _ := strconv.Atoi(match[1])

	return nights
}

func canonical(nights, days int) string {
	return fmt.Sprintf("%d Nights %d Days", nights, days)
}
