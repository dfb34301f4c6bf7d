package pipeline

import (
	"testing"

	"roam/internal/domains/destination"
	"roam/internal/domains/packages/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int {
	return &v
}

func testDestination() destination.Destination {
	return destination.Destination{
		Slug:   "bali",
		Name:   "Bali",
		Cities: []string{"Kuta", "Ubud", "Seminyak"},
		Aliases: map[string]string{
			"denpasar": "Kuta",
		},
		PageSize:       2,
		PriceFloor:     25000,
		PriceCeiling:   200000,
		RatingFallback: 4,
	}
}

func testPackages() []model.Package {
	return []model.Package{
		{
			ID:          "pkg-1",
			Title:       "Kuta Beach Escape",
			Location:    "Kuta",
			Duration:    "4 Nights 5 Days",
			Price:       "₹45,000/-",
			Tier:        "Standard",
			HotelRating: intPtr(3),
		},
		{
			ID:          "pkg-2",
			Title:       "Ubud Jungle Retreat",
			Location:    "Ubud",
			Duration:    "6 Nights 7 Days",
			Price:       "₹85,000/-",
			Tier:        "Premium",
			HotelRating: intPtr(5),
		},
		{
			ID:       "pkg-3",
			Title:    "Island Hopper",
			Location: "Kuta & Ubud",
			Duration: "5 Days 6 Nights",
			Price:    "₹60,000/-",
			Tier:     "Deluxe",
		},
		{
			ID:          "pkg-4",
			Title:       "Seminyak Luxury Villas",
			Location:    "Seminyak",
			Duration:    "7",
			Price:       "₹1,20,000/-",
			Tier:        "Luxury",
			HotelRating: intPtr(5),
		},
		{
			ID:          "pkg-5",
			Title:       "Budget Bali",
			Location:    "Kuta",
			Duration:    "3 Nights 4 Days",
			Price:       "₹28,000/-",
			Tier:        "Basic",
			HotelRating: intPtr(3),
		},
	}
}

func resultIDs(result Result) []string {
	ids := make([]string, 0, len(result.Items))
	for _, item := range result.Items {
		ids = append(ids, item.ID)
	}

	return ids
}

func TestRun_NoFilters(t *testing.T) {
	result := Run(testPackages(), Selection{}, testDestination())

	assert.Equal(t, 5, result.TotalItems)
	assert.Equal(t, 3, result.TotalPages)
	assert.Equal(t, 0, result.Page)
	require.Len(t, result.Items, 2)
	// Popularity is the default sort: Luxury first, then Premium.
	assert.Equal(t, []string{"pkg-4", "pkg-2"}, resultIDs(result))
}

func TestRun_CityFilter(t *testing.T) {
	tests := []struct {
		name    string
		cities  []string
		wantIDs []string
	}{
		{
			name:    "single city matches multi-city locations",
			cities:  []string{"Ubud"},
			wantIDs: []string{"pkg-2", "pkg-3"},
		},
		{
			name:    "alias resolves to canonical city",
			cities:  []string{"Denpasar"},
			wantIDs: []string{"pkg-1", "pkg-3", "pkg-5"},
		},
		{
			name:    "multiple cities union",
			cities:  []string{"Ubud", "Seminyak"},
			wantIDs: []string{"pkg-2", "pkg-3", "pkg-4"},
		},
		{
			name:    "unknown city matches nothing",
			cities:  []string{"Atlantis"},
			wantIDs: []string{},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			result := Run(testPackages(), Selection{Cities: tc.cities, SortBy: SortPriceLow, Page: 0}, testDestination())

			matched := make([]string, 0, result.TotalItems)
			for page := 0; page < result.TotalPages; page++ {
				pageResult := Run(testPackages(), Selection{Cities: tc.cities, SortBy: SortPriceLow, Page: page}, testDestination())
				matched = append(matched, resultIDs(pageResult)...)
			}

			assert.ElementsMatch(t, tc.wantIDs, matched)
		})
	}
}

func TestRun_RatingFilter(t *testing.T) {
	dest := testDestination()

	t.Run("fallback lets unrated packages match", func(t *testing.T) {
		result := Run(testPackages(), Selection{Ratings: []int{4}}, dest)

		assert.Equal(t, 1, result.TotalItems)
		assert.Equal(t, "pkg-3", result.Items[0].ID)
	})

	t.Run("zero fallback excludes unrated packages", func(t *testing.T) {
		noFallback := dest
		noFallback.RatingFallback = 0

		result := Run(testPackages(), Selection{Ratings: []int{4}}, noFallback)

		assert.Equal(t, 0, result.TotalItems)
	})

	t.Run("multiple ratings union", func(t *testing.T) {
		result := Run(testPackages(), Selection{Ratings: []int{3, 5}}, dest)

		assert.Equal(t, 4, result.TotalItems)
	})
}

func TestRun_NightsFilter(t *testing.T) {
	// pkg-3's "5 Days 6 Nights" normalizes to 6 nights, same bucket as
	// pkg-2 and the bare-number pkg-4.
	result := Run(testPackages(), Selection{Nights: []string{"6 Nights"}, SortBy: SortPriceLow}, testDestination())

	assert.Equal(t, 3, result.TotalItems)
	assert.Equal(t, []string{"pkg-3", "pkg-2"}, resultIDs(result))
}

func TestRun_MaxPriceFilter(t *testing.T) {
	result := Run(testPackages(), Selection{MaxPrice: 60000, SortBy: SortPriceHigh}, testDestination())

	assert.Equal(t, 3, result.TotalItems)
	assert.Equal(t, []string{"pkg-3", "pkg-1"}, resultIDs(result))
}

func TestRun_FiltersAreConjunctive(t *testing.T) {
	sel := Selection{
		Cities:   []string{"Kuta"},
		Ratings:  []int{3},
		MaxPrice: 30000,
	}

	result := Run(testPackages(), sel, testDestination())

	require.Equal(t, 1, result.TotalItems)
	assert.Equal(t, "pkg-5", result.Items[0].ID)
}

func TestRun_Sorting(t *testing.T) {
	dest := testDestination()
	dest.PageSize = 10

	tests := []struct {
		name    string
		sortBy  string
		wantIDs []string
	}{
		{
			name:    "price low to high",
			sortBy:  SortPriceLow,
			wantIDs: []string{"pkg-5", "pkg-1", "pkg-3", "pkg-2", "pkg-4"},
		},
		{
			name:    "price high to low",
			sortBy:  SortPriceHigh,
			wantIDs: []string{"pkg-4", "pkg-2", "pkg-3", "pkg-1", "pkg-5"},
		},
		{
			name:    "duration by nights ascending",
			sortBy:  SortDuration,
			wantIDs: []string{"pkg-5", "pkg-1", "pkg-2", "pkg-3", "pkg-4"},
		},
		{
			name:    "rating descending with missing as zero",
			sortBy:  SortRating,
			wantIDs: []string{"pkg-2", "pkg-4", "pkg-1", "pkg-5", "pkg-3"},
		},
		{
			name:    "popularity by tier",
			sortBy:  SortPopularity,
			wantIDs: []string{"pkg-4", "pkg-2", "pkg-3", "pkg-1", "pkg-5"},
		},
		{
			name:    "unknown key falls back to popularity",
			sortBy:  "bogus",
			wantIDs: []string{"pkg-4", "pkg-2", "pkg-3", "pkg-1", "pkg-5"},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			result := Run(testPackages(), Selection{SortBy: tc.sortBy}, dest)

			assert.Equal(t, tc.wantIDs, resultIDs(result))
		})
	}
}

func TestRun_SortIsStable(t *testing.T) {
	dest := testDestination()
	dest.PageSize = 10

	pkgs := []model.Package{
		{ID: "a", Price: "₹50,000", Tier: "Standard"},
		{ID: "b", Price: "₹50,000", Tier: "Standard"},
		{ID: "c", Price: "₹50,000", Tier: "Standard"},
	}

	result := Run(pkgs, Selection{SortBy: SortPriceLow}, dest)

	assert.Equal(t, []string{"a", "b", "c"}, resultIDs(result))
}

func TestRun_Pagination(t *testing.T) {
	dest := testDestination()

	t.Run("page past the end clamps to last page", func(t *testing.T) {
		result := Run(testPackages(), Selection{Page: 99}, dest)

		assert.Equal(t, 2, result.Page)
		assert.Len(t, result.Items, 1)
	})

	t.Run("negative page clamps to first page", func(t *testing.T) {
		result := Run(testPackages(), Selection{Page: -3}, dest)

		assert.Equal(t, 0, result.Page)
	})

	t.Run("empty result has zero pages", func(t *testing.T) {
		result := Run(testPackages(), Selection{Cities: []string{"Atlantis"}, Page: 4}, dest)

		assert.Equal(t, 0, result.Page)
		assert.Equal(t, 0, result.TotalPages)
		assert.Empty(t, result.Items)
	})

	t.Run("pages partition the filtered set", func(t *testing.T) {
		seen := map[string]bool{}

		first := Run(testPackages(), Selection{SortBy: SortPriceLow}, dest)
		for page := 0; page < first.TotalPages; page++ {
			result := Run(testPackages(), Selection{SortBy: SortPriceLow, Page: page}, dest)
			for _, item := range result.Items {
				assert.False(t, seen[item.ID], "package %s appeared on two pages", item.ID)
				seen[item.ID] = true
			}
		}

		assert.Len(t, seen, first.TotalItems)
	})
}

func TestRun_Idempotent(t *testing.T) {
	sel := Selection{Cities: []string{"Kuta"}, SortBy: SortPriceLow, Page: 0}

	first := Run(testPackages(), sel, testDestination())
	second := Run(testPackages(), sel, testDestination())

	assert.Equal(t, resultIDs(first), resultIDs(second))
	assert.Equal(t, first.TotalItems, second.TotalItems)
	assert.Equal(t, first.Facets, second.Facets)
}

func TestRun_Facets(t *testing.T) {
	result := Run(testPackages(), Selection{Cities: []string{"Seminyak"}}, testDestination())

	// Facet counts always reflect the unfiltered universe.
	assert.Equal(t, map[string]int{"Kuta": 3, "Ubud": 2, "Seminyak": 1}, result.Facets.Cities)
	assert.Equal(t, map[int]int{3: 2, 4: 1, 5: 2}, result.Facets.Ratings)
	assert.Equal(t, map[string]int{"3 Nights": 1, "4 Nights": 1, "6 Nights": 3}, result.Facets.Nights)
}

func TestRun_FacetRatingsWithoutFallback(t *testing.T) {
	dest := testDestination()
	dest.RatingFallback = 0

	result := Run(testPackages(), Selection{}, dest)

	assert.Equal(t, map[int]int{3: 2, 5: 2}, result.Facets.Ratings)
}

func TestPageNavigation(t *testing.T) {
	assert.Equal(t, 1, NextPage(0, 3))
	assert.Equal(t, 0, NextPage(2, 3), "next page wraps around")
	assert.Equal(t, 2, PrevPage(0, 3), "previous page wraps around")
	assert.Equal(t, 1, PrevPage(2, 3))

	assert.Equal(t, 0, NextPage(0, 0), "no pages is a no-op")
	assert.Equal(t, 0, PrevPage(0, 0), "no pages is a no-op")
}
