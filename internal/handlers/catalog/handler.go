package catalog

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"roam/infras/otel"
	"roam/internal/domains/catalog/pipeline"
	"roam/internal/domains/catalog/service"
	"roam/shared/constant"
	"roam/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

const (
	queryParamCities   = "cities"
	queryParamRatings  = "ratings"
	queryParamNights   = "nights"
	queryParamMaxPrice = "max_price"
	queryParamSort     = "sort"
)

type Handler struct {
	service service.Catalog
	otel    otel.Otel
}

func New(service service.Catalog, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/catalog", func(routerGroup chi.Router) {
		routerGroup.Get("/destinations", handler.GetDestinations)
		routerGroup.Get("/{destination}/packages", handler.GetPackages)
		routerGroup.Get("/{destination}/packages/{package_id}/itinerary", handler.GetItinerary)
		routerGroup.Get("/{destination}/cities", handler.GetCities)
		routerGroup.Post("/{destination}/refresh", handler.Refresh)
	})
}

// GetDestinations lists every destination the catalog serves.
// @Summary Get destinations
// @Description Retrieve all destinations with their cities and price bounds.
// @Tags Catalog
// @Produce json
// @Success 200 {object} dto.GetDestinationsResponse "List of destinations"
// @Router /v1/catalog/destinations [get]
func (handler *Handler) GetDestinations(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetDestinations")
	defer scope.End()

	res := handler.service.GetDestinations(ctx)

	response.WithJSON(w, http.StatusOK, res)
}

// GetPackages renders one catalog page for a destination.
// @Summary Get catalog packages
// @Description Retrieve a filtered, sorted and paginated page of a
// destination's packages with facet counts.
// @Tags Catalog
// @Produce json
// @Param destination path string true "Destination slug"
// @Param cities query string false "Comma-separated city filter"
// @Param ratings query string false "Comma-separated star ratings"
// @Param nights query string false "Comma-separated night counts"
// @Param max_price query int false "Maximum price in rupees"
// @Param sort query string false "Sort key" Enums(price-low, price-high, duration, rating, popularity)
// @Param page query int false "Zero-based page index"
// @Success 200 {object} dto.GetCatalogResponse "Catalog page"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/catalog/{destination}/packages [get]
func (handler *Handler) GetPackages(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetPackages")
	defer scope.End()

	dest := chi.URLParam(r, constant.RequestParamDestination)
	sel := selectionFromRequest(r)

	res, err := handler.service.GetPackages(ctx, dest, sel)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("destination", dest).Msg("failed to get catalog packages")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Catalog page rendered for " + dest)

	response.WithJSON(w, http.StatusOK, res)
}

// GetItinerary retrieves the itinerary of a catalog package.
// @Summary Get a package's itinerary
// @Description Retrieve the day-wise itinerary of a package in a destination.
// @Tags Catalog
// @Produce json
// @Param destination path string true "Destination slug"
// @Param package_id path string true "Package ID"
// @Success 200 {object} dto.ItineraryResponse "Itinerary details"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/catalog/{destination}/packages/{package_id}/itinerary [get]
func (handler *Handler) GetItinerary(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetItinerary")
	defer scope.End()

	dest := chi.URLParam(r, constant.RequestParamDestination)
	packageID := chi.URLParam(r, constant.RequestParamPackageID)

	res, err := handler.service.GetItinerary(ctx, dest, packageID)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("destination", dest).Str("package_id", packageID).Msg("failed to get itinerary")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// GetCities lists a destination's cities with package counts.
// @Summary Get destination cities
// @Description Retrieve the cities of a destination with the number of
// packages in each.
// @Tags Catalog
// @Produce json
// @Param destination path string true "Destination slug"
// @Success 200 {object} dto.GetCitiesResponse "Cities with package counts"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/catalog/{destination}/cities [get]
func (handler *Handler) GetCities(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetCities")
	defer scope.End()

	dest := chi.URLParam(r, constant.RequestParamDestination)

	res, err := handler.service.GetCities(ctx, dest)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("destination", dest).Msg("failed to get cities")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// Refresh forces a snapshot refresh for a destination.
// @Summary Refresh a destination's catalog
// @Description Invalidate the destination's snapshot and refetch it
// immediately instead of waiting for the next scheduled refresh.
// @Tags Catalog
// @Produce json
// @Param destination path string true "Destination slug"
// @Success 200 {object} response.Message "Catalog refreshed"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/catalog/{destination}/refresh [post]
func (handler *Handler) Refresh(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Refresh")
	defer scope.End()

	dest := chi.URLParam(r, constant.RequestParamDestination)

	if err := handler.service.Refresh(ctx, dest); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("destination", dest).Msg("failed to refresh catalog")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Catalog refreshed for " + dest)

	response.WithMessage(w, http.StatusOK, "Catalog refreshed")
}

// selectionFromRequest parses the filter, sort and page state from the
// query string. Unparsable values degrade to no constraint.
func selectionFromRequest(r *http.Request) pipeline.Selection {
	query := r.URL.Query()

	sel := pipeline.Selection{
		Cities: splitParam(query.Get(queryParamCities)),
		SortBy: query.Get(queryParamSort),
	}

	for _, value := range splitParam(query.Get(queryParamRatings)) {
		if rating, err := strconv.Atoi(value); err == nil {
			sel.Ratings = append(sel.Ratings, rating)
		}
	}

	for _, value := range splitParam(query.Get(queryParamNights)) {
		sel.Nights = append(sel.Nights, nightsToken(value))
	}

	if maxPrice, err := strconv.Atoi(query.Get(queryParamMaxPrice)); err == nil && maxPrice > 0 {
		sel.MaxPrice = maxPrice
	}

	if page, err := strconv.Atoi(query.Get(constant.RequestParamPage)); err == nil {
		sel.Page = page
	}

	return sel
}

func splitParam(raw string) []string {
	if raw == "" {
		return nil
	}

	values := []string{}

	for _, part := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			values = append(values, trimmed)
		}
	}

	return values
}

// nightsToken accepts both "6" and "6 Nights" from clients.
func nightsToken(value string) string {
	if n, err := strconv.Atoi(value); err == nil {
		return fmt.Sprintf("%d Nights", n)
	}

	return value
}
