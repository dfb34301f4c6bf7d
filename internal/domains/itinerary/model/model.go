package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"

	"roam/shared/model"

	"github.com/lib/pq"
)

const (
	TableName  = "itineraries"
	EntityName = "itinerary"

	FieldID        = "id"
	FieldPackageID = "package_id"
)

// Day is one entry of a day-wise plan. Days are stored as a JSONB
// document because admins reorder and reshape them as a unit.
type Day struct {
	Day           int      `json:"day"`
	Title         string   `json:"title"`
	Activities    []string `json:"activities"`
	Meals         []string `json:"meals"`
	Accommodation string   `json:"accommodation"`
}

type Days []Day

func (d Days) Value() (driver.Value, error) {
	return json.Marshal(d)
}

func (d *Days) Scan(src any) error {
	bytes, ok := src.([]byte)
	if !ok {
		return fmt.Errorf("unsupported scan type for days: %T", src)
	}

	return json.Unmarshal(bytes, d)
}

type HotelImage struct {
	Src         string `json:"src"`
	Alt         string `json:"alt"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

type HotelImages []HotelImage

func (h HotelImages) Value() (driver.Value, error) {
	return json.Marshal(h)
}

func (h *HotelImages) Scan(src any) error {
	bytes, ok := src.([]byte)
	if !ok {
		return fmt.Errorf("unsupported scan type for hotel images: %T", src)
	}

	return json.Unmarshal(bytes, h)
}

// Itinerary is the day-wise plan of a single package. One row per
// package, enforced by a unique constraint on package_id.
type Itinerary struct {
	ID               string         `db:"id"`
	PackageID        string         `db:"package_id"`
	Title            string         `db:"title"`
	Duration         string         `db:"duration"`
	Overview         string         `db:"overview"`
	HotelName        string         `db:"hotel_name"`
	HotelRating      *int           `db:"hotel_rating"`
	HotelDescription string         `db:"hotel_description"`
	Days             Days           `db:"days"`
	Inclusions       pq.StringArray `db:"inclusions"`
	Exclusions       pq.StringArray `db:"exclusions"`
	HotelImages      HotelImages    `db:"hotel_images"`
	model.Metadata
}
