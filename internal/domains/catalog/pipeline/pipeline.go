// Package pipeline turns the full package list of a destination into one
// page of catalog results: a conjunction of facet filters, a stable sort,
// a fixed-size page slice and facet counts for the filter badges.
package pipeline

import (
	"sort"
	"strings"

	"roam/internal/domains/destination"
	"roam/internal/domains/packages/model"
	"roam/shared/duration"
	"roam/shared/price"
)

const (
	SortPriceLow   = "price-low"
	SortPriceHigh  = "price-high"
	SortDuration   = "duration"
	SortRating     = "rating"
	SortPopularity = "popularity"
)

// tierPriority orders packages for the popularity sort. Unknown tiers
// sort after every known one.
var tierPriority = map[string]int{
	"Luxury":   1,
	"Premium":  2,
	"Deluxe":   3,
	"Standard": 4,
	"Basic":    5,
}

const unknownTierPriority = 1 << 20

// Selection is the active filter/sort/page state. A zero-length filter
// group imposes no constraint; MaxPrice <= 0 disables the price cap.
type Selection struct {
	Cities   []string
	Ratings  []int
	Nights   []string
	MaxPrice int
	SortBy   string
	Page     int
}

type Facets struct {
	Cities  map[string]int `json:"cities"`
	Ratings map[int]int    `json:"ratings"`
	Nights  map[string]int `json:"nights"`
}

type Result struct {
	Items      []model.Package
	Page       int
	TotalItems int
	TotalPages int
	Facets     Facets
}

// Run applies the selection against every package of a destination.
// Facet counts are computed against the unfiltered universe so a badge
// always reads "how many packages have this attribute".
func Run(pkgs []model.Package, sel Selection, dest destination.Destination) Result {
	filtered := make([]model.Package, 0, len(pkgs))

	for _, pkg := range pkgs {
		if matches(pkg, sel, dest) {
			filtered = append(filtered, pkg)
		}
	}

	sortPackages(filtered, sel.SortBy)

	pageSize := dest.PageSize
	if pageSize <= 0 {
		pageSize = 5
	}

	totalPages := (len(filtered) + pageSize - 1) / pageSize

	page := 0
	if totalPages > 0 {
		page = min(max(0, sel.Page), totalPages-1)
	}

	start := page * pageSize
	end := min(start+pageSize, len(filtered))

	return Result{
		Items:      filtered[start:end],
		Page:       page,
		TotalItems: len(filtered),
		TotalPages: totalPages,
		Facets:     facetCounts(pkgs, dest),
	}
}

// matches returns true only if every active filter group passes.
func matches(pkg model.Package, sel Selection, dest destination.Destination) bool {
	if len(sel.Cities) > 0 && !matchesCity(pkg, sel.Cities, dest) {
		return false
	}

	if len(sel.Ratings) > 0 && !matchesRating(pkg, sel.Ratings, dest) {
		return false
	}

	if len(sel.Nights) > 0 && !matchesNights(pkg, sel.Nights) {
		return false
	}

	if sel.MaxPrice > 0 && price.ParseString(pkg.Price) > sel.MaxPrice {
		return false
	}

	return true
}

func matchesCity(pkg model.Package, cities []string, dest destination.Destination) bool {
	tokens := locationTokens(pkg.Location)

	for _, city := range cities {
		wanted := dest.Canonical(city)

		for _, token := range tokens {
			if strings.EqualFold(dest.Canonical(token), wanted) {
				return true
			}
		}
	}

	return false
}

func matchesRating(pkg model.Package, ratings []int, dest destination.Destination) bool {
	rating, ok := filterRating(pkg, dest)
	if !ok {
		return false
	}

	for _, wanted := range ratings {
		if rating == wanted {
			return true
		}
	}

	return false
}

// filterRating is the rating a package carries for filter matching. A
// package without one only participates when the destination configures
// a fallback.
func filterRating(pkg model.Package, dest destination.Destination) (int, bool) {
	if pkg.HotelRating != nil {
		return *pkg.HotelRating, true
	}

	if dest.RatingFallback > 0 {
		return dest.RatingFallback, true
	}

	return 0, false
}

func matchesNights(pkg model.Package, nights []string) bool {
	token := duration.Nights(pkg.Duration)

	for _, wanted := range nights {
		if token == wanted {
			return true
		}
	}

	return false
}

// locationTokens splits a free-text location ("Kuta & Ubud") into its
// city tokens.
func locationTokens(location string) []string {
	tokens := strings.FieldsFunc(location, func(r rune) bool {
		return r == '&' || r == ','
	})

	cleaned := make([]string, 0, len(tokens))

	for _, token := range tokens {
		if trimmed := strings.TrimSpace(token); trimmed != "" {
			cleaned = append(cleaned, trimmed)
		}
	}

	return cleaned
}

// sortPackages sorts in place. Sorts are stable so equal entries keep
// their catalog order across re-renders.
func sortPackages(pkgs []model.Package, sortBy string) {
	switch sortBy {
	case SortPriceLow:
		sort.SliceStable(pkgs, func(i, j int) bool {
			return price.ParseString(pkgs[i].Price) < price.ParseString(pkgs[j].Price)
		})
	case SortPriceHigh:
		sort.SliceStable(pkgs, func(i, j int) bool {
			return price.ParseString(pkgs[i].Price) > price.ParseString(pkgs[j].Price)
		})
	case SortDuration:
		sort.SliceStable(pkgs, func(i, j int) bool {
			return duration.NightsValue(pkgs[i].Duration) < duration.NightsValue(pkgs[j].Duration)
		})
	case SortRating:
		sort.SliceStable(pkgs, func(i, j int) bool {
			return sortRating(pkgs[i]) > sortRating(pkgs[j])
		})
	default:
		// Popularity is also the fallback for unknown sort keys.
		sort.SliceStable(pkgs, func(i, j int) bool {
			return tierRank(pkgs[i].Tier) < tierRank(pkgs[j].Tier)
		})
	}
}

func sortRating(pkg model.Package) int {
	if pkg.HotelRating == nil {
		return 0
	}

	return *pkg.HotelRating
}

func tierRank(tier string) int {
	if rank, ok := tierPriority[tier]; ok {
		return rank
	}

	return unknownTierPriority
}

// facetCounts counts single-facet matches across the whole universe.
func facetCounts(pkgs []model.Package, dest destination.Destination) Facets {
	facets := Facets{
		Cities:  map[string]int{},
		Ratings: map[int]int{},
		Nights:  map[string]int{},
	}

	for _, city := range dest.Cities {
		facets.Cities[city] = 0
	}

	for _, pkg := range pkgs {
		for _, city := range dest.Cities {
			if matchesCity(pkg, []string{city}, dest) {
				facets.Cities[city]++
			}
		}

		if rating, ok := filterRating(pkg, dest); ok {
			facets.Ratings[rating]++
		}

		if token := duration.Nights(pkg.Duration); token != duration.NotAvailable {
			facets.Nights[token]++
		}
	}

	return facets
}

// NextPage advances circularly through the result pages; with no pages
// it is a no-op.
func NextPage(page, totalPages int) int {
	if totalPages <= 0 {
		return page
	}

	return (page + 1) % totalPages
}

// PrevPage steps back circularly through the result pages; with no pages
// it is a no-op.
func PrevPage(page, totalPages int) int {
	if totalPages <= 0 {
		return page
	}

	return (page - 1 + totalPages) % totalPages
}
