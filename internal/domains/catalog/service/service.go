package service

import (
	"context"

	"roam/infras/otel"
	"roam/internal/domains/catalog/model/dto"
	"roam/internal/domains/catalog/pipeline"
	"roam/internal/domains/catalog/snapshot"
	"roam/internal/domains/destination"
	itnDto "roam/internal/domains/itinerary/model/dto"
	itnService "roam/internal/domains/itinerary/service"
	"roam/shared/constant"
	"roam/shared/failure"

	"github.com/rs/zerolog/log"
)

type Catalog interface {
	GetPackages(ctx context.Context, dest string, sel pipeline.Selection) (dto.GetCatalogResponse, error)
	GetItinerary(ctx context.Context, dest, packageID string) (itnDto.ItineraryResponse, error)
	GetCities(ctx context.Context, dest string) (dto.GetCitiesResponse, error)
	GetDestinations(ctx context.Context) dto.GetDestinationsResponse
	Refresh(ctx context.Context, dest string) error
}

type serviceImpl struct {
	snapshot  *snapshot.Store
	itinerary itnService.Itinerary
	otel      otel.Otel
}

func New(snapshot *snapshot.Store, itinerary itnService.Itinerary, otel otel.Otel) Catalog {
	return &serviceImpl{
		snapshot:  snapshot,
		itinerary: itinerary,
		otel:      otel,
	}
}

func (s *serviceImpl) GetPackages(ctx context.Context, destSlug string, sel pipeline.Selection) (res dto.GetCatalogResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetPackages")
	defer scope.End()
	defer scope.TraceIfError(err)

	dest, ok := destination.Get(destSlug)
	if !ok {
		return res, failure.UnknownDestination
	}

	packages, err := s.snapshot.Get(ctx, dest.Slug)
	if err != nil {
		log.Error().Err(err).Str("destination", dest.Slug).Msg("failed to load catalog snapshot")

		return res, err
	}

	result := pipeline.Run(packages, sel, dest)
	res.FromResult(result, dest)

	return res, nil
}

func (s *serviceImpl) GetItinerary(ctx context.Context, destSlug, packageID string) (res itnDto.ItineraryResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetItinerary")
	defer scope.End()
	defer scope.TraceIfError(err)

	dest, ok := destination.Get(destSlug)
	if !ok {
		return res, failure.UnknownDestination
	}

	packages, err := s.snapshot.Get(ctx, dest.Slug)
	if err != nil {
		log.Error().Err(err).Str("destination", dest.Slug).Msg("failed to load catalog snapshot")

		return res, err
	}

	found := false

	for _, pkg := range packages {
		if pkg.ID == packageID {
			found = true

			break
		}
	}

	if !found {
		return res, failure.NotFound("package not found")
	}

	return s.itinerary.GetByPackageID(ctx, packageID)
}

func (s *serviceImpl) GetCities(ctx context.Context, destSlug string) (res dto.GetCitiesResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetCities")
	defer scope.End()
	defer scope.TraceIfError(err)

	dest, ok := destination.Get(destSlug)
	if !ok {
		return res, failure.UnknownDestination
	}

	packages, err := s.snapshot.Get(ctx, dest.Slug)
	if err != nil {
		log.Error().Err(err).Str("destination", dest.Slug).Msg("failed to load catalog snapshot")

		return res, err
	}

	result := pipeline.Run(packages, pipeline.Selection{}, dest)
	res.FromFacets(dest, result.Facets.Cities)

	return res, nil
}

func (s *serviceImpl) GetDestinations(ctx context.Context) (res dto.GetDestinationsResponse) {
	_, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetDestinations")
	defer scope.End()

	res.FromDestinations(destination.All())

	return res
}

func (s *serviceImpl) Refresh(ctx context.Context, destSlug string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Refresh")
	defer scope.End()
	defer scope.TraceIfError(err)

	dest, ok := destination.Get(destSlug)
	if !ok {
		return failure.UnknownDestination
	}

	s.snapshot.Invalidate(dest.Slug)

	if _, err = s.snapshot.Refresh(ctx, dest.Slug); err != nil {
		log.Error().Err(err).Str("destination", dest.Slug).Msg("forced snapshot refresh failed")

		return err
	}

	return nil
}
