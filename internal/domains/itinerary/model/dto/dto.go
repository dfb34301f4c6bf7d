package dto

import (
	"mime/multipart"
	"strings"

	"roam/internal/domains/itinerary/model"
	"roam/shared"
	gDto "roam/shared/dto"
	gModel "roam/shared/model"
	"roam/shared/timezone"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

type DayRequest struct {
	Title         string   `json:"title" validate:"omitempty,max=150"`
	Activities    []string `json:"activities" validate:"omitempty,dive"`
	Meals         []string `json:"meals" validate:"omitempty,dive"`
	Accommodation string   `json:"accommodation" validate:"omitempty,max=150"`
}

type HotelImageRequest struct {
	Src         string `json:"src" validate:"required,url"`
	Alt         string `json:"alt" validate:"omitempty,max=150"`
	Name        string `json:"name" validate:"omitempty,max=150"`
	Description string `json:"description" validate:"omitempty,max=500"`
}

type CreateItineraryRequest struct {
	PackageID        string              `json:"package_id" validate:"required,uuid"`
	Title            string              `json:"title" validate:"required,max=150"`
	Duration         string              `json:"duration" validate:"omitempty,max=50"`
	Overview         string              `json:"overview" validate:"omitempty,max=2000"`
	HotelName        string              `json:"hotel_name" validate:"omitempty,max=150"`
	HotelRating      *int                `json:"hotel_rating" validate:"omitempty,min=1,max=5"`
	HotelDescription string              `json:"hotel_description" validate:"omitempty,max=2000"`
	Days             []DayRequest        `json:"days" validate:"required,min=1,dive"`
	Inclusions       []string            `json:"inclusions" validate:"omitempty,dive"`
	Exclusions       []string            `json:"exclusions" validate:"omitempty,dive"`
	HotelImages      []HotelImageRequest `json:"hotel_images" validate:"omitempty,dive"`
}

// Normalize strips blank entries the admin form tends to submit and
// renumbers the surviving days sequentially from 1.
func (c *CreateItineraryRequest) Normalize() {
	c.Title = strings.TrimSpace(c.Title)
	c.Days = normalizeDays(c.Days)
	c.Inclusions = cleanStrings(c.Inclusions)
	c.Exclusions = cleanStrings(c.Exclusions)
}

func (c *CreateItineraryRequest) ToModel(user string) model.Itinerary {
	return model.Itinerary{
		ID:               uuid.NewString(),
		PackageID:        c.PackageID,
		Title:            c.Title,
		Duration:         c.Duration,
		Overview:         c.Overview,
		HotelName:        c.HotelName,
		HotelRating:      c.HotelRating,
		HotelDescription: c.HotelDescription,
		Days:             toModelDays(c.Days),
		Inclusions:       pq.StringArray(c.Inclusions),
		Exclusions:       pq.StringArray(c.Exclusions),
		HotelImages:      toModelImages(c.HotelImages),
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

type UpdateItineraryRequest struct {
	Title            string              `db:"title"             json:"title"             validate:"omitempty,max=150"`
	Duration         string              `db:"duration"          json:"duration"          validate:"omitempty,max=50"`
	Overview         string              `db:"overview"          json:"overview"          validate:"omitempty,max=2000"`
	HotelName        string              `db:"hotel_name"        json:"hotel_name"        validate:"omitempty,max=150"`
	HotelRating      *int                `db:"hotel_rating"      json:"hotel_rating"      validate:"omitempty,min=1,max=5"`
	HotelDescription string              `db:"hotel_description" json:"hotel_description" validate:"omitempty,max=2000"`
	Days             []DayRequest        `db:"days"              json:"days"              validate:"omitempty,min=1,dive"`
	Inclusions       []string            `db:"inclusions"        json:"inclusions"        validate:"omitempty,dive"`
	Exclusions       []string            `db:"exclusions"        json:"exclusions"        validate:"omitempty,dive"`
	HotelImages      []HotelImageRequest `db:"hotel_images"      json:"hotel_images"      validate:"omitempty,dive"`
}

func (u *UpdateItineraryRequest) Normalize() {
	u.Title = strings.TrimSpace(u.Title)
	u.Days = normalizeDays(u.Days)
	u.Inclusions = cleanStrings(u.Inclusions)
	u.Exclusions = cleanStrings(u.Exclusions)
}

// ToFields maps the request onto column values. Days and hotel images
// need their model representation so the driver can marshal them.
func (u *UpdateItineraryRequest) ToFields(user string) map[string]any {
	fields := shared.TransformFields(struct {
		Title            string            `db:"title"`
		Duration         string            `db:"duration"`
		Overview         string            `db:"overview"`
		HotelName        string            `db:"hotel_name"`
		HotelRating      *int              `db:"hotel_rating"`
		HotelDescription string            `db:"hotel_description"`
		Days             model.Days        `db:"days"`
		Inclusions       pq.StringArray    `db:"inclusions"`
		Exclusions       pq.StringArray    `db:"exclusions"`
		HotelImages      model.HotelImages `db:"hotel_images"`
	}{
		Title:            u.Title,
		Duration:         u.Duration,
		Overview:         u.Overview,
		HotelName:        u.HotelName,
		HotelRating:      u.HotelRating,
		HotelDescription: u.HotelDescription,
		Days:             toModelDays(u.Days),
		Inclusions:       pq.StringArray(u.Inclusions),
		Exclusions:       pq.StringArray(u.Exclusions),
		HotelImages:      toModelImages(u.HotelImages),
	}, user)

	return fields
}

func normalizeDays(days []DayRequest) []DayRequest {
	cleaned := make([]DayRequest, 0, len(days))

	for _, day := range days {
		day.Title = strings.TrimSpace(day.Title)
		day.Activities = cleanStrings(day.Activities)
		day.Meals = cleanStrings(day.Meals)
		day.Accommodation = strings.TrimSpace(day.Accommodation)

		if day.Title == "" && len(day.Activities) == 0 && len(day.Meals) == 0 && day.Accommodation == "" {
			continue
		}

		cleaned = append(cleaned, day)
	}

	return cleaned
}

func cleanStrings(values []string) []string {
	if values == nil {
		return nil
	}

	cleaned := make([]string, 0, len(values))

	for _, value := range values {
		if trimmed := strings.TrimSpace(value); trimmed != "" {
			cleaned = append(cleaned, trimmed)
		}
	}

	return cleaned
}

func toModelDays(days []DayRequest) model.Days {
	if len(days) == 0 {
		return nil
	}

	modelDays := make(model.Days, len(days))
	for i, day := range days {
		modelDays[i] = model.Day{
			Day:           i + 1,
			Title:         day.Title,
			Activities:    day.Activities,
			Meals:         day.Meals,
			Accommodation: day.Accommodation,
		}
	}

	return modelDays
}

func toModelImages(images []HotelImageRequest) model.HotelImages {
	if len(images) == 0 {
		return nil
	}

	modelImages := make(model.HotelImages, len(images))
	for i, image := range images {
		modelImages[i] = model.HotelImage{
			Src:         image.Src,
			Alt:         image.Alt,
			Name:        image.Name,
			Description: image.Description,
		}
	}

	return modelImages
}

type ItineraryResponse struct {
	ID               string             `json:"id"`
	PackageID        string             `json:"package_id"`
	Title            string             `json:"title"`
	Duration         string             `json:"duration"`
	Overview         string             `json:"overview"`
	HotelName        string             `json:"hotel_name"`
	HotelRating      *int               `json:"hotel_rating"`
	HotelDescription string             `json:"hotel_description"`
	Days             []model.Day        `json:"days"`
	Inclusions       []string           `json:"inclusions"`
	Exclusions       []string           `json:"exclusions"`
	HotelImages      []model.HotelImage `json:"hotel_images"`
	gDto.Metadata
}

func (r *ItineraryResponse) FromModel(model model.Itinerary) {
	r.ID = model.ID
	r.PackageID = model.PackageID
	r.Title = model.Title
	r.Duration = model.Duration
	r.Overview = model.Overview
	r.HotelName = model.HotelName
	r.HotelRating = model.HotelRating
	r.HotelDescription = model.HotelDescription
	r.Days = model.Days
	r.Inclusions = model.Inclusions
	r.Exclusions = model.Exclusions
	r.HotelImages = model.HotelImages
	r.Metadata.FromModel(model.Metadata)
}

type GetItinerariesResponse struct {
	Items     []ItineraryResponse `json:"items"`
	TotalPage int                 `json:"total_page"`
	TotalData int                 `json:"total_data"`
}

func (r *GetItinerariesResponse) FromModels(models []model.Itinerary, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Items = make([]ItineraryResponse, len(models))
	for i, m := range models {
		r.Items[i].FromModel(m)
	}
}

type UploadImageRequest struct {
	Image     *multipart.FileHeader `json:"image"                swaggerignore:"true"                 validate:"required,mimetypes=image/png image/jpg image/jpeg"`
	ImageFile multipart.File        `json:"-"`
}

type UploadImageResponse struct {
	URL      string `json:"url"`
	FileName string `json:"file_name"`
}

func (r *UploadImageResponse) FromModel(url, fileName string) {
	r.URL = url
	r.FileName = fileName
}
