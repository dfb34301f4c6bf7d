// Package destination holds the static per-destination configuration the
// catalog serves: city facets, alias tables, page sizes and price-slider
// bounds. Destinations change a few times a year, so a code-level
// registry is enough.
package destination

import "strings"

type Destination struct {
	Slug   string
	Name   string
	Cities []string
	// Aliases maps a lowercased alternative spelling to the canonical
	// city name used in package locations.
	Aliases map[string]string
	// PageSize is the number of packages shown per catalog page.
	PageSize int
	// PriceFloor and PriceCeiling bound the price slider; the ceiling is
	// also the default maximum when no price filter is active.
	PriceFloor   int
	PriceCeiling int
	// RatingFallback, when non-zero, is the star rating a package
	// without one matches against in the rating filter. Zero means an
	// absent rating never matches.
	RatingFallback int
}

var registry = map[string]Destination{
	"bali": {
		Slug:   "bali",
		Name:   "Bali",
		Cities: []string{"Kuta", "Ubud", "Seminyak", "Nusa Dua", "Canggu"},
		Aliases: map[string]string{
			"denpasar": "Kuta",
			"benoa":    "Nusa Dua",
		},
		PageSize:       5,
		PriceFloor:     25000,
		PriceCeiling:   200000,
		RatingFallback: 4,
	},
	"singapore": {
		Slug:         "singapore",
		Name:         "Singapore",
		Cities:       []string{"Sentosa", "Marina Bay", "Orchard", "Chinatown"},
		Aliases:      map[string]string{},
		PageSize:     3,
		PriceFloor:   40000,
		PriceCeiling: 250000,
	},
	"vietnam": {
		Slug:   "vietnam",
		Name:   "Vietnam",
		Cities: []string{"Hanoi", "Ho Chi Minh City", "Da Nang", "Ha Long", "Hoi An"},
		Aliases: map[string]string{
			"saigon":  "Ho Chi Minh City",
			"halong":  "Ha Long",
			"danang":  "Da Nang",
			"hoi-an":  "Hoi An",
			"hochiminh": "Ho Chi Minh City",
		},
		PageSize:       5,
		PriceFloor:     30000,
		PriceCeiling:   180000,
		RatingFallback: 4,
	},
	"andaman": {
		Slug:   "andaman",
		Name:   "Andaman",
		Cities: []string{"Port Blair", "Havelock", "Neil Island"},
		Aliases: map[string]string{
			"swaraj dweep":  "Havelock",
			"shaheed dweep": "Neil Island",
		},
		PageSize:     3,
		PriceFloor:   20000,
		PriceCeiling: 150000,
	},
	"thailand": {
		Slug:   "thailand",
		Name:   "Thailand",
		Cities: []string{"Bangkok", "Phuket", "Krabi", "Pattaya", "Chiang Mai"},
		Aliases: map[string]string{
			"koh samui": "Phuket",
		},
		PageSize:       5,
		PriceFloor:     25000,
		PriceCeiling:   160000,
		RatingFallback: 4,
	},
}

// Get resolves a destination by slug, case-insensitively.
func Get(slug string) (Destination, bool) {
	dest, ok := registry[strings.ToLower(strings.TrimSpace(slug))]

	return dest, ok
}

// All returns every registered destination.
func All() []Destination {
	dests := make([]Destination, 0, len(registry))
	for _, dest := range registry {
		dests = append(dests, dest)
	}

	return dests
}

// Canonical resolves a city name or alias to its canonical form for the
// given destination. Unknown names are returned trimmed.
func (d Destination) Canonical(city string) string {
	trimmed := strings.TrimSpace(city)

	if canonical, ok := d.Aliases[strings.ToLower(trimmed)]; ok {
		return canonical
	}

	return trimmed
}
