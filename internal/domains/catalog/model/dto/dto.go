package dto

import (
	"roam/internal/domains/catalog/pipeline"
	"roam/internal/domains/destination"
	pkgDto "roam/internal/domains/packages/model/dto"
)

// GetCatalogResponse is one rendered catalog page: the items, the paging
// state with circular next/prev pointers, the facet counts and the
// destination's slider bounds.
type GetCatalogResponse struct {
	Destination  string                   `json:"destination"`
	Items        []pkgDto.PackageResponse `json:"items"`
	Page         int                      `json:"page"`
	NextPage     int                      `json:"next_page"`
	PrevPage     int                      `json:"prev_page"`
	TotalPages   int                      `json:"total_pages"`
	TotalItems   int                      `json:"total_items"`
	PageSize     int                      `json:"page_size"`
	PriceFloor   int                      `json:"price_floor"`
	PriceCeiling int                      `json:"price_ceiling"`
	Facets       pipeline.Facets          `json:"facets"`
}

func (r *GetCatalogResponse) FromResult(result pipeline.Result, dest destination.Destination) {
	r.Destination = dest.Slug
	r.Page = result.Page
	r.NextPage = pipeline.NextPage(result.Page, result.TotalPages)
	r.PrevPage = pipeline.PrevPage(result.Page, result.TotalPages)
	r.TotalPages = result.TotalPages
	r.TotalItems = result.TotalItems
	r.PageSize = dest.PageSize
	r.PriceFloor = dest.PriceFloor
	r.PriceCeiling = dest.PriceCeiling
	r.Facets = result.Facets

	r.Items = make([]pkgDto.PackageResponse, len(result.Items))
	for i, item := range result.Items {
		r.Items[i].FromModel(item)
	}
}

type CityFacet struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

type GetCitiesResponse struct {
	Destination string      `json:"destination"`
	Items       []CityFacet `json:"items"`
}

func (r *GetCitiesResponse) FromFacets(dest destination.Destination, counts map[string]int) {
	r.Destination = dest.Slug

	r.Items = make([]CityFacet, len(dest.Cities))
	for i, city := range dest.Cities {
		r.Items[i] = CityFacet{Name: city, Count: counts[city]}
	}
}

type DestinationResponse struct {
	Slug         string   `json:"slug"`
	Name         string   `json:"name"`
	Cities       []string `json:"cities"`
	PageSize     int      `json:"page_size"`
	PriceFloor   int      `json:"price_floor"`
	PriceCeiling int      `json:"price_ceiling"`
}

type GetDestinationsResponse struct {
	Items []DestinationResponse `json:"items"`
}

func (r *GetDestinationsResponse) FromDestinations(dests []destination.Destination) {
	r.Items = make([]DestinationResponse, len(dests))
	for i, dest := range dests {
		r.Items[i] = DestinationResponse{
			Slug:         dest.Slug,
			Name:         dest.Name,
			Cities:       dest.Cities,
			PageSize:     dest.PageSize,
			PriceFloor:   dest.PriceFloor,
			PriceCeiling: dest.PriceCeiling,
		}
	}
}
