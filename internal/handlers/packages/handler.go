package packages

import (
	"net/http"

	"roam/infras/otel"
	"roam/internal/domains/packages/model"
	"roam/internal/domains/packages/model/dto"
	"roam/internal/domains/packages/service"
	"roam/shared/constant"
	gDto "roam/shared/dto"
	"roam/shared/validator"
	"roam/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Packages
	otel    otel.Otel
}

func New(service service.Packages, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/admin/packages", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreatePackage)
		routerGroup.Get("/", handler.GetPackages)
		routerGroup.Get("/{id}", handler.GetPackageByID)
		routerGroup.Patch("/{id}", handler.UpdatePackage)
		routerGroup.Delete("/{id}", handler.DeletePackage)
	})
}

// CreatePackage handles the creation of a new travel package.
// @Summary Create a new package
// @Description Create a new travel package with the provided details.
// @Tags Packages
// @Accept json
// @Produce json
// @Param request body dto.CreatePackageRequest true "Create Package Request"
// @Success 201 {object} response.Message "Package created successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/admin/packages [post]
// @Security ApiKeyAuth
func (handler *Handler) CreatePackage(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreatePackage")
	defer scope.End()

	req := dto.CreatePackageRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.Create(ctx, req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create package")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Package created successfully by user " + user)

	response.WithMessage(w, http.StatusCreated, "Package created successfully")
}

// GetPackages retrieves all packages based on query parameters.
// @Summary Get all packages
// @Description Retrieve all packages with optional filtering and pagination.
// @Tags Packages
// @Accept json
// @Produce json
// @Param destination query string false "Filter by destination"
// @Param title query string false "Filter by title"
// @Success 200 {object} dto.GetPackagesResponse "List of packages"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/admin/packages [get]
// @Security ApiKeyAuth
func (handler *Handler) GetPackages(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetPackages")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	destination := r.URL.Query().Get(model.FieldDestination)
	title := r.URL.Query().Get(model.FieldTitle)

	filterGroup := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters:  []any{},
	}

	if destination != "" {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldDestination,
			Operator: gDto.FilterOperatorEq,
			Value:    destination,
			Table:    model.TableName,
		})
	}

	if title != "" {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldTitle,
			Operator: gDto.FilterOperatorLike,
			Value:    title,
			Table:    model.TableName,
		})
	}

	packages, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get packages")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Packages retrieved successfully")

	response.WithJSON(w, http.StatusOK, packages)
}

// GetPackageByID retrieves a package by its ID.
// @Summary Get a package by ID
// @Description Retrieve a package by its unique identifier.
// @Tags Packages
// @Accept json
// @Produce json
// @Param id path string true "Package ID"
// @Success 200 {object} dto.PackageResponse "Package details"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/admin/packages/{id} [get]
// @Security ApiKeyAuth
func (handler *Handler) GetPackageByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetPackageByID")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	pkg, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get package by ID")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Package retrieved successfully")

	response.WithJSON(w, http.StatusOK, pkg)
}

// UpdatePackage updates an existing package by its ID.
// @Summary Update a package by ID
// @Description Update the details of an existing package.
// @Tags Packages
// @Accept json
// @Produce json
// @Param id path string true "Package ID"
// @Param request body dto.UpdatePackageRequest true "Update Package Request"
// @Success 200 {object} response.Message "Package updated successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/admin/packages/{id} [patch]
// @Security ApiKeyAuth
func (handler *Handler) UpdatePackage(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdatePackage")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	req := dto.UpdatePackageRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.Update(ctx, req, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update package")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Package updated successfully by user " + user)

	response.WithMessage(w, http.StatusOK, "Package updated successfully")
}

// DeletePackage deletes a package by its ID.
// @Summary Delete a package by ID
// @Description Delete a package using its unique identifier. The
// package's itinerary is removed with it.
// @Tags Packages
// @Accept json
// @Produce json
// @Param id path string true "Package ID"
// @Success 200 {object} response.Message "Package deleted successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/admin/packages/{id} [delete]
// @Security ApiKeyAuth
func (handler *Handler) DeletePackage(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeletePackage")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := handler.service.Delete(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete package")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Package deleted successfully by user " + user)

	response.WithMessage(w, http.StatusOK, "Package deleted successfully")
}
