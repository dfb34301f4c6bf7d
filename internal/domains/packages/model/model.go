package model

import (
	"roam/shared/model"

	"github.com/lib/pq"
)

const (
	TableName  = "packages"
	EntityName = "package"

	FieldID          = "id"
	FieldDestination = "destination"
	FieldTitle       = "title"
	FieldLocation    = "location"
	FieldDuration    = "duration"
	FieldPrice       = "price"
	FieldTier        = "tier"
	FieldHotelRating = "hotel_rating"
)

// Package is a sellable travel product. Duration and price are kept in
// their human-entered form and normalized at read time.
type Package struct {
	ID          string         `db:"id"`
	Destination string         `db:"destination"`
	Title       string         `db:"title"`
	Location    string         `db:"location"`
	Duration    string         `db:"duration"`
	Price       string         `db:"price"`
	Tier        string         `db:"tier"`
	HotelRating *int           `db:"hotel_rating"`
	Features    pq.StringArray `db:"features"`
	Highlights  pq.StringArray `db:"highlights"`
	model.Metadata
}

// Rating returns the package's hotel rating, or the given fallback when
// none is recorded.
func (p Package) Rating(fallback int) int {
	if p.HotelRating == nil {
		return fallback
	}

	return *p.HotelRating
}
