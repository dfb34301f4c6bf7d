package dto

import (
	"roam/internal/domains/packages/model"
	"roam/shared"
	gDto "roam/shared/dto"
	"roam/shared/duration"
	gModel "roam/shared/model"
	"roam/shared/price"
	"roam/shared/timezone"

	"github.com/google/uuid"
)

type CreatePackageRequest struct {
	Destination string   `json:"destination" validate:"required,lowercase"`
	Title       string   `json:"title" validate:"required,min=3,max=150"`
	Location    string   `json:"location" validate:"required,max=150"`
	Duration    string   `json:"duration" validate:"omitempty,max=50"`
	Price       string   `json:"price" validate:"required,max=50"`
	Tier        string   `json:"tier" validate:"omitempty,oneof=Luxury Premium Deluxe Standard Basic"`
	HotelRating *int     `json:"hotel_rating" validate:"omitempty,min=1,max=5"`
	Features    []string `json:"features" validate:"omitempty,dive,min=1"`
	Highlights  []string `json:"highlights" validate:"omitempty,dive,min=1"`
}

func (c *CreatePackageRequest) ToModel(user string) model.Package {
	return model.Package{
		ID:          uuid.NewString(),
		Destination: c.Destination,
		Title:       c.Title,
		Location:    c.Location,
		Duration:    c.Duration,
		Price:       c.Price,
		Tier:        c.Tier,
		HotelRating: c.HotelRating,
		Features:    c.Features,
		Highlights:  c.Highlights,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

type UpdatePackageRequest struct {
	Title       string   `db:"title"        json:"title"        validate:"omitempty,min=3,max=150"`
	Location    string   `db:"location"     json:"location"     validate:"omitempty,max=150"`
	Duration    string   `db:"duration"     json:"duration"     validate:"omitempty,max=50"`
	Price       string   `db:"price"        json:"price"        validate:"omitempty,max=50"`
	Tier        string   `db:"tier"         json:"tier"         validate:"omitempty,oneof=Luxury Premium Deluxe Standard Basic"`
	HotelRating *int     `db:"hotel_rating" json:"hotel_rating" validate:"omitempty,min=1,max=5"`
	Features    []string `db:"features"     json:"features"     validate:"omitempty,dive,min=1"`
	Highlights  []string `db:"highlights"   json:"highlights"   validate:"omitempty,dive,min=1"`
}

// PackageResponse serves the duration normalized (with its nights and
// days parts broken out) and the raw price next to its parsed amount,
// so clients never reimplement the parsing.
type PackageResponse struct {
	ID          string   `json:"id"`
	Destination string   `json:"destination"`
	Title       string   `json:"title"`
	Location    string   `json:"location"`
	Duration    string   `json:"duration"`
	Nights      string   `json:"nights"`
	Days        string   `json:"days"`
	Price       string   `json:"price"`
	PriceAmount int      `json:"price_amount"`
	Tier        string   `json:"tier"`
	HotelRating *int     `json:"hotel_rating"`
	Features    []string `json:"features"`
	Highlights  []string `json:"highlights"`
	gDto.Metadata
}

func (r *PackageResponse) FromModel(model model.Package) {
	normalized := duration.Format(model.Duration)

	r.ID = model.ID
	r.Destination = model.Destination
	r.Title = model.Title
	r.Location = model.Location
	r.Duration = normalized
	r.Nights = duration.Nights(normalized)
	r.Days = duration.Days(normalized)
	r.Price = model.Price
	r.PriceAmount = price.ParseString(model.Price)
	r.Tier = model.Tier
	r.HotelRating = model.HotelRating
	r.Features = model.Features
	r.Highlights = model.Highlights
	r.Metadata.FromModel(model.Metadata)
}

type GetPackagesResponse struct {
	Items     []PackageResponse `json:"items"`
	TotalPage int               `json:"total_page"`
	TotalData int               `json:"total_data"`
}

func (r *GetPackagesResponse) FromModels(models []model.Package, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Items = make([]PackageResponse, len(models))
	for i, m := range models {
		r.Items[i].FromModel(m)
	}
}
