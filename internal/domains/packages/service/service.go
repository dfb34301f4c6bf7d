package service

import (
	"context"
	"fmt"

	"roam/config"
	"roam/infras/kafka"
	"roam/infras/otel"
	"roam/internal/domains/destination"
	"roam/internal/domains/packages/model"
	"roam/internal/domains/packages/model/dto"
	"roam/internal/domains/packages/repository"
	"roam/shared"
	"roam/shared/cache"
	"roam/shared/constant"
	gDto "roam/shared/dto"
	"roam/shared/failure"

	"github.com/rs/zerolog/log"
)

const (
	cacheGetPackage    = "package:get"
	cacheGetAllPackage = "package:get_all"
	cacheCountPackage  = "package:count"
)

// SnapshotInvalidator marks a destination's catalog snapshot stale after
// a mutation so the next read refetches.
type SnapshotInvalidator interface {
	Invalidate(destination string)
}

type Packages interface {
	Create(ctx context.Context, req dto.CreatePackageRequest) error
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetPackagesResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	Get(ctx context.Context, id string) (dto.PackageResponse, error)
	Update(ctx context.Context, req dto.UpdatePackageRequest, id string) error
	Delete(ctx context.Context, id string) error
}

type serviceImpl struct {
	repo     repository.Packages
	cfg      *config.Config
	cache    cache.RedisCache
	otel     otel.Otel
	kafka    kafka.Client
	snapshot SnapshotInvalidator
}

func New(repo repository.Packages, cfg *config.Config, cache cache.RedisCache, otel otel.Otel, kafka kafka.Client, snapshot SnapshotInvalidator) Packages {
	return &serviceImpl{
		repo:     repo,
		cfg:      cfg,
		cache:    cache,
		otel:     otel,
		kafka:    kafka,
		snapshot: snapshot,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreatePackageRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	if _, ok := destination.Get(req.Destination); !ok {
		return failure.UnknownDestination
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	pkg := req.ToModel(user)

	if err = s.repo.Insert(ctx, pkg); err != nil {
		return err
	}

	s.afterMutation(ctx, pkg.ID, pkg.Destination, constant.EventActionCreated)

	return nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetPackagesResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllPackage, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for packages")

		return res, nil
	}

	total, err := s.Count(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count packages")

		return res, err
	}

	packages, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get packages")

		return res, err
	}

	res.FromModels(packages, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save packages to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (total int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Count")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountPackage, req, filter)

	err = s.cache.Get(ctx, cacheKey, &total)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for package count")

		return total, nil
	}

	total, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count packages")

		return total, err
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, total, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save package count to cache")
		}
	}()

	return total, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.PackageResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheGetPackage, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for package")

		return res, nil
	}

	pkg, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get package")

		return res, fmt.Errorf("failed to get package: %w", err)
	}

	if pkg.ID == constant.Empty {
		return res, failure.NotFound("package not found")
	}

	res.FromModel(pkg)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save package to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdatePackageRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	pkg, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get package for update")

		return err
	}

	if pkg.ID == constant.Empty {
		log.Error().Msg("package not found")

		return failure.NotFound("package not found")
	}

	updatedFields := shared.TransformFields(req, user)
	if err = s.repo.Update(ctx, updatedFields, filter); err != nil {
		log.Error().Err(err).Msg("failed to update package")

		return fmt.Errorf("failed to update package: %w", err)
	}

	s.afterMutation(ctx, id, pkg.Destination, constant.EventActionUpdated)

	return nil
}

func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer scope.TraceIfError(err)

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	pkg, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get package for deletion")

		return fmt.Errorf("failed to get package: %w", err)
	}

	if pkg.ID == constant.Empty {
		log.Error().Msg("package not found")

		return failure.NotFound("package not found")
	}

	// The itinerary row goes with it via the FK cascade.
	if err = s.repo.Delete(ctx, filter); err != nil {
		log.Error().Err(err).Msg("failed to delete package")

		return fmt.Errorf("failed to delete package: %w", err)
	}

	s.afterMutation(ctx, id, pkg.Destination, constant.EventActionDeleted)

	return nil
}

// afterMutation invalidates every read path that could still serve the
// old row and publishes the mutation to the catalog events topic.
func (s *serviceImpl) afterMutation(ctx context.Context, id, dest, action string) {
	s.snapshot.Invalidate(dest)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetPackage, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete package cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllPackage)
		shared.InvalidateCaches(c, s.cache, cacheCountPackage)

		event := kafka.Message{
			Key: id,
			Value: gDto.CatalogEvent{
				Entity:      constant.EventEntityPackage,
				Action:      action,
				ID:          id,
				Destination: dest,
			},
		}

		if err := s.kafka.SendMessages(c, s.cfg.Kafka.EventTopic, event); err != nil {
			log.Error().Err(err).Str("package_id", id).Msg("failed to publish catalog event")
		}
	}()
}
