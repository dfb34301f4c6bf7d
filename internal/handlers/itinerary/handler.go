package itinerary

import (
	"net/http"

	"roam/infras/otel"
	"roam/internal/domains/itinerary/model"
	"roam/internal/domains/itinerary/model/dto"
	"roam/internal/domains/itinerary/service"
	"roam/shared/constant"
	gDto "roam/shared/dto"
	"roam/shared/validator"
	"roam/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Itinerary
	otel    otel.Otel
}

func New(service service.Itinerary, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/admin/itineraries", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateItinerary)
		routerGroup.Get("/", handler.GetItineraries)
		routerGroup.Get("/{id}", handler.GetItineraryByID)
		routerGroup.Patch("/{id}", handler.UpdateItinerary)
		routerGroup.Delete("/{id}", handler.DeleteItinerary)
		routerGroup.Post("/upload", handler.UploadImage)
	})
}

// CreateItinerary handles the creation of a package's itinerary.
// @Summary Create an itinerary
// @Description Create the day-wise itinerary for a package. Blank days
// and entries are stripped and days renumbered from 1.
// @Tags Itinerary
// @Accept json
// @Produce json
// @Param request body dto.CreateItineraryRequest true "Create Itinerary Request"
// @Success 201 {object} response.Message "Itinerary created successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/admin/itineraries [post]
// @Security ApiKeyAuth
func (handler *Handler) CreateItinerary(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateItinerary")
	defer scope.End()

	req := dto.CreateItineraryRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.Create(ctx, req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create itinerary")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Itinerary created successfully by user " + user)

	response.WithMessage(w, http.StatusCreated, "Itinerary created successfully")
}

// GetItineraries retrieves all itineraries based on query parameters.
// @Summary Get all itineraries
// @Description Retrieve all itineraries with optional filtering and pagination.
// @Tags Itinerary
// @Accept json
// @Produce json
// @Param package_id query string false "Filter by package ID"
// @Success 200 {object} dto.GetItinerariesResponse "List of itineraries"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/admin/itineraries [get]
// @Security ApiKeyAuth
func (handler *Handler) GetItineraries(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetItineraries")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	packageID := r.URL.Query().Get(constant.RequestParamPackageID)

	filterGroup := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters:  []any{},
	}

	if packageID != "" {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldPackageID,
			Operator: gDto.FilterOperatorEq,
			Value:    packageID,
			Table:    model.TableName,
		})
	}

	itineraries, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get itineraries")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Itineraries retrieved successfully")

	response.WithJSON(w, http.StatusOK, itineraries)
}

// GetItineraryByID retrieves an itinerary by its ID.
// @Summary Get an itinerary by ID
// @Description Retrieve an itinerary by its unique identifier.
// @Tags Itinerary
// @Accept json
// @Produce json
// @Param id path string true "Itinerary ID"
// @Success 200 {object} dto.ItineraryResponse "Itinerary details"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/admin/itineraries/{id} [get]
// @Security ApiKeyAuth
func (handler *Handler) GetItineraryByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetItineraryByID")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	itinerary, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get itinerary by ID")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Itinerary retrieved successfully")

	response.WithJSON(w, http.StatusOK, itinerary)
}

// UpdateItinerary updates an existing itinerary by its ID.
// @Summary Update an itinerary by ID
// @Description Update the details of an existing itinerary. Blank days
// and entries are stripped and days renumbered from 1.
// @Tags Itinerary
// @Accept json
// @Produce json
// @Param id path string true "Itinerary ID"
// @Param request body dto.UpdateItineraryRequest true "Update Itinerary Request"
// @Success 200 {object} response.Message "Itinerary updated successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/admin/itineraries/{id} [patch]
// @Security ApiKeyAuth
func (handler *Handler) UpdateItinerary(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateItinerary")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	req := dto.UpdateItineraryRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.Update(ctx, req, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update itinerary")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Itinerary updated successfully by user " + user)

	response.WithMessage(w, http.StatusOK, "Itinerary updated successfully")
}

// DeleteItinerary deletes an itinerary by its ID.
// @Summary Delete an itinerary by ID
// @Description Delete an itinerary using its unique identifier. Hotel
// images attached to it are removed from storage.
// @Tags Itinerary
// @Accept json
// @Produce json
// @Param id path string true "Itinerary ID"
// @Success 200 {object} response.Message "Itinerary deleted successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/admin/itineraries/{id} [delete]
// @Security ApiKeyAuth
func (handler *Handler) DeleteItinerary(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteItinerary")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := handler.service.Delete(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete itinerary")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Itinerary deleted successfully by user " + user)

	response.WithMessage(w, http.StatusOK, "Itinerary deleted successfully")
}

// UploadImage handles hotel image upload to S3.
// @Summary Upload a hotel image to S3
// @Description Upload a hotel image file to S3 and return the URL.
// @Tags Itinerary
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Image file to upload"
// @Success 200 {object} dto.UploadImageResponse "Image uploaded successfully"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/admin/itineraries/upload [post]
// @Security ApiKeyAuth
func (handler *Handler) UploadImage(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UploadImage")
	defer scope.End()

	if err := r.ParseMultipartForm(constant.RequestMaxMemory); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to parse multipart form")

		response.WithError(w, err)

		return
	}

	file, fileHeader, err := r.FormFile(constant.FormFile)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get file from form")

		response.WithError(w, err)

		return
	}
	defer file.Close()

	req := dto.UploadImageRequest{
		Image:     fileHeader,
		ImageFile: file,
	}

	res, err := handler.service.UploadImage(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to upload file")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Image uploaded successfully by user " + user)

	response.WithJSON(w, http.StatusOK, res)
}
