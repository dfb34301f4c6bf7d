package dto_test

import (
	"testing"

	"roam/internal/domains/itinerary/model/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateItineraryRequest_Normalize(t *testing.T) {
	req := dto.CreateItineraryRequest{
		PackageID: "pkg-1",
		Title:     " Bali Honeymoon Escape ",
		Days: []dto.DayRequest{
			{
				Title:         "  Arrival & Check-in ",
				Activities:    []string{"Airport pickup", "  ", ""},
				Meals:         []string{"Dinner", " "},
				Accommodation: " Grand Kuta Resort ",
			},
			{
				Title:      "   ",
				Activities: []string{"", "  "},
				Meals:      nil,
			},
			{
				Title:      "Island Tour",
				Activities: []string{"Snorkeling"},
				Meals:      []string{"Breakfast", "Lunch"},
			},
		},
		Inclusions: []string{"Hotel stay", "", "  Transfers "},
		Exclusions: []string{" ", ""},
	}

	req.Normalize()

	assert.Equal(t, "Bali Honeymoon Escape", req.Title)

	require.Len(t, req.Days, 2, "fully blank days are dropped")
	assert.Equal(t, "Arrival & Check-in", req.Days[0].Title)
	assert.Equal(t, []string{"Airport pickup"}, req.Days[0].Activities)
	assert.Equal(t, []string{"Dinner"}, req.Days[0].Meals)
	assert.Equal(t, "Grand Kuta Resort", req.Days[0].Accommodation)
	assert.Equal(t, "Island Tour", req.Days[1].Title)

	assert.Equal(t, []string{"Hotel stay", "Transfers"}, req.Inclusions)
	assert.Empty(t, req.Exclusions)
}

func TestCreateItineraryRequest_NormalizeKeepsAccommodationOnlyDay(t *testing.T) {
	req := dto.CreateItineraryRequest{
		PackageID: "pkg-1",
		Days: []dto.DayRequest{
			{Accommodation: "Seminyak Villa"},
		},
	}

	req.Normalize()

	require.Len(t, req.Days, 1)
	assert.Equal(t, "Seminyak Villa", req.Days[0].Accommodation)
}

func TestCreateItineraryRequest_ToModelRenumbersDays(t *testing.T) {
	req := dto.CreateItineraryRequest{
		PackageID: "pkg-1",
		Days: []dto.DayRequest{
			{Title: "Arrival"},
			{Title: "   "},
			{Title: "Departure"},
		},
	}

	req.Normalize()
	itinerary := req.ToModel("admin")

	require.Len(t, itinerary.Days, 2)
	assert.Equal(t, 1, itinerary.Days[0].Day)
	assert.Equal(t, "Arrival", itinerary.Days[0].Title)
	assert.Equal(t, 2, itinerary.Days[1].Day)
	assert.Equal(t, "Departure", itinerary.Days[1].Title)
	assert.Equal(t, "admin", itinerary.CreatedBy)
	assert.NotEmpty(t, itinerary.ID)
}

func TestCreateItineraryRequest_ToModelCarriesHotelBlock(t *testing.T) {
	rating := 5

	req := dto.CreateItineraryRequest{
		PackageID:        "pkg-1",
		Title:            "Bali Honeymoon Escape",
		Duration:         "4 Nights 5 Days",
		Overview:         "A slow week between Kuta and Ubud.",
		HotelName:        "Grand Kuta Resort",
		HotelRating:      &rating,
		HotelDescription: "Beachfront resort with private pool villas.",
		Days: []dto.DayRequest{
			{Title: "Arrival", Accommodation: "Grand Kuta Resort"},
		},
		HotelImages: []dto.HotelImageRequest{
			{
				Src:         "https://cdn.example.com/bucket/itinerary/pool.jpg",
				Alt:         "Pool at dusk",
				Name:        "Main pool",
				Description: "The resort's central pool.",
			},
		},
	}

	req.Normalize()
	itinerary := req.ToModel("admin")

	assert.Equal(t, "Bali Honeymoon Escape", itinerary.Title)
	assert.Equal(t, "4 Nights 5 Days", itinerary.Duration)
	assert.Equal(t, "A slow week between Kuta and Ubud.", itinerary.Overview)
	assert.Equal(t, "Grand Kuta Resort", itinerary.HotelName)
	require.NotNil(t, itinerary.HotelRating)
	assert.Equal(t, 5, *itinerary.HotelRating)
	assert.Equal(t, "Beachfront resort with private pool villas.", itinerary.HotelDescription)
	assert.Equal(t, "Grand Kuta Resort", itinerary.Days[0].Accommodation)

	require.Len(t, itinerary.HotelImages, 1)
	assert.Equal(t, "https://cdn.example.com/bucket/itinerary/pool.jpg", itinerary.HotelImages[0].Src)
	assert.Equal(t, "Pool at dusk", itinerary.HotelImages[0].Alt)
	assert.Equal(t, "Main pool", itinerary.HotelImages[0].Name)
	assert.Equal(t, "The resort's central pool.", itinerary.HotelImages[0].Description)
}

func TestUpdateItineraryRequest_ToFields(t *testing.T) {
	req := dto.UpdateItineraryRequest{
		Days: []dto.DayRequest{
			{Title: "Beach Day", Activities: []string{"Surfing"}},
		},
		Inclusions: []string{"Breakfast"},
	}

	req.Normalize()
	fields := req.ToFields("admin")

	assert.Contains(t, fields, "days")
	assert.Contains(t, fields, "inclusions")
	assert.NotContains(t, fields, "exclusions", "untouched columns stay out of the update")
	assert.NotContains(t, fields, "hotel_images")
	assert.NotContains(t, fields, "title")
	assert.NotContains(t, fields, "hotel_name")
	assert.Equal(t, "admin", fields["modified_by"])
}

func TestUpdateItineraryRequest_ToFieldsWithHotelBlock(t *testing.T) {
	rating := 4

	req := dto.UpdateItineraryRequest{
		Title:            "Vietnam Heritage Trail",
		HotelName:        "Hanoi Pearl",
		HotelRating:      &rating,
		HotelDescription: "Boutique hotel in the Old Quarter.",
	}

	req.Normalize()
	fields := req.ToFields("admin")

	assert.Equal(t, "Vietnam Heritage Trail", fields["title"])
	assert.Equal(t, "Hanoi Pearl", fields["hotel_name"])
	assert.Equal(t, &rating, fields["hotel_rating"])
	assert.Equal(t, "Boutique hotel in the Old Quarter.", fields["hotel_description"])
	assert.NotContains(t, fields, "days")
	assert.NotContains(t, fields, "overview")
}
