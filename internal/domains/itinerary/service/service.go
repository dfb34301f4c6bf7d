package service

import (
	"context"
	"errors"
	"fmt"

	"roam/config"
	"roam/infras/kafka"
	"roam/infras/otel"
	"roam/infras/s3"
	"roam/internal/domains/itinerary/model"
	"roam/internal/domains/itinerary/model/dto"
	"roam/internal/domains/itinerary/repository"
	pkgModel "roam/internal/domains/packages/model"
	pkgRepository "roam/internal/domains/packages/repository"
	"roam/shared"
	"roam/shared/cache"
	"roam/shared/constant"
	gDto "roam/shared/dto"
	"roam/shared/failure"

	"github.com/rs/zerolog/log"
)

const (
	cacheGetItinerary    = "itinerary:get"
	cacheGetByPackage    = "itinerary:get_by_package"
	cacheGetAllItinerary = "itinerary:get_all"
	cacheCountItinerary  = "itinerary:count"
)

var (
	ErrDeleteImagesFromS3 = errors.New("failed to delete images from S3")
)

// SnapshotInvalidator marks a destination's catalog snapshot stale after
// a mutation so the next read refetches.
type SnapshotInvalidator interface {
	Invalidate(destination string)
}

type Itinerary interface {
	Create(ctx context.Context, req dto.CreateItineraryRequest) error
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetItinerariesResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	Get(ctx context.Context, id string) (dto.ItineraryResponse, error)
	GetByPackageID(ctx context.Context, packageID string) (dto.ItineraryResponse, error)
	Update(ctx context.Context, req dto.UpdateItineraryRequest, id string) error
	Delete(ctx context.Context, id string) error
	UploadImage(ctx context.Context, req dto.UploadImageRequest) (dto.UploadImageResponse, error)
}

type serviceImpl struct {
	repo     repository.Itinerary
	pkgRepo  pkgRepository.Packages
	cfg      *config.Config
	cache    cache.RedisCache
	otel     otel.Otel
	kafka    kafka.Client
	s3       s3.S3
	snapshot SnapshotInvalidator
}

func New(repo repository.Itinerary, pkgRepo pkgRepository.Packages, cfg *config.Config, cache cache.RedisCache, otel otel.Otel, kafka kafka.Client, s3 s3.S3, snapshot SnapshotInvalidator) Itinerary {
	return &serviceImpl{
		repo:     repo,
		pkgRepo:  pkgRepo,
		cfg:      cfg,
		cache:    cache,
		otel:     otel,
		kafka:    kafka,
		s3:       s3,
		snapshot: snapshot,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateItineraryRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	req.Normalize()

	if len(req.Days) == 0 {
		return failure.BadRequestFromString("itinerary needs at least one non-empty day")
	}

	pkg, err := s.pkgRepo.Get(ctx, shared.FilterByID(req.PackageID, pkgModel.FieldID, pkgModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get package for itinerary")

		return fmt.Errorf("failed to get package: %w", err)
	}

	if pkg.ID == constant.Empty {
		return failure.NotFound("package not found")
	}

	exist, err := s.repo.Exist(ctx, shared.FilterByID(req.PackageID, model.FieldPackageID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to check itinerary existence")

		return err
	}

	if exist {
		return failure.Conflict("package already has an itinerary")
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	itinerary := req.ToModel(user)

	if err = s.repo.Insert(ctx, itinerary); err != nil {
		return err
	}

	s.afterMutation(ctx, itinerary.ID, req.PackageID, pkg.Destination, constant.EventActionCreated)

	return nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetItinerariesResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllItinerary, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for itineraries")

		return res, nil
	}

	total, err := s.Count(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count itineraries")

		return res, err
	}

	itineraries, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get itineraries")

		return res, err
	}

	res.FromModels(itineraries, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save itineraries to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (total int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Count")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountItinerary, req, filter)

	err = s.cache.Get(ctx, cacheKey, &total)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for itinerary count")

		return total, nil
	}

	total, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count itineraries")

		return total, err
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, total, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save itinerary count to cache")
		}
	}()

	return total, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.ItineraryResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheGetItinerary, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for itinerary")

		return res, nil
	}

	itinerary, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get itinerary")

		return res, fmt.Errorf("failed to get itinerary: %w", err)
	}

	if itinerary.ID == constant.Empty {
		return res, failure.NotFound("itinerary not found")
	}

	res.FromModel(itinerary)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save itinerary to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) GetByPackageID(ctx context.Context, packageID string) (res dto.ItineraryResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetByPackageID")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheGetByPackage, packageID)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for package itinerary")

		return res, nil
	}

	itinerary, err := s.repo.Get(ctx, shared.FilterByID(packageID, model.FieldPackageID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get itinerary by package")

		return res, fmt.Errorf("failed to get itinerary: %w", err)
	}

	if itinerary.ID == constant.Empty {
		return res, failure.NotFound("itinerary not found")
	}

	res.FromModel(itinerary)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save package itinerary to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateItineraryRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer scope.TraceIfError(err)

	req.Normalize()

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	itinerary, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get itinerary for update")

		return err
	}

	if itinerary.ID == constant.Empty {
		log.Error().Msg("itinerary not found")

		return failure.NotFound("itinerary not found")
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	if err = s.repo.Update(ctx, req.ToFields(user), filter); err != nil {
		log.Error().Err(err).Msg("failed to update itinerary")

		return fmt.Errorf("failed to update itinerary: %w", err)
	}

	dest := s.destinationOf(ctx, itinerary.PackageID)
	s.afterMutation(ctx, id, itinerary.PackageID, dest, constant.EventActionUpdated)

	return nil
}

func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer scope.TraceIfError(err)

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	itinerary, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get itinerary for deletion")

		return fmt.Errorf("failed to get itinerary: %w", err)
	}

	if itinerary.ID == constant.Empty {
		log.Error().Msg("itinerary not found")

		return failure.NotFound("itinerary not found")
	}

	if err = s.repo.Delete(ctx, filter); err != nil {
		log.Error().Err(err).Msg("failed to delete itinerary")

		return fmt.Errorf("failed to delete itinerary: %w", err)
	}

	dest := s.destinationOf(ctx, itinerary.PackageID)
	s.afterMutation(ctx, id, itinerary.PackageID, dest, constant.EventActionDeleted)

	if len(itinerary.HotelImages) > 0 {
		go func() {
			c := context.WithoutCancel(ctx)

			if err := s.deleteImagesFromS3(c, itinerary.HotelImages); err != nil {
				log.Error().Err(err).Msg("failed to delete itinerary images from S3")
			}
		}()
	}

	return nil
}

func (s *serviceImpl) UploadImage(ctx context.Context, req dto.UploadImageRequest) (res dto.UploadImageResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".UploadImage")
	defer scope.End()
	defer scope.TraceIfError(err)

	bucketName := s.cfg.External.S3.BucketName

	url, err := s.s3.UploadFile(ctx, bucketName, model.EntityName, req.ImageFile, req.Image, req.Image.Filename)
	if err != nil {
		log.Error().Err(err).Msg("failed to upload file to S3")

		return res, fmt.Errorf("failed to upload file to S3: %w", err)
	}

	res.FromModel(url, req.Image.Filename)

	return res, nil
}

func (s *serviceImpl) deleteImagesFromS3(ctx context.Context, images model.HotelImages) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".deleteImagesFromS3")
	defer scope.End()
	defer scope.TraceIfError(err)

	bucketName := s.cfg.External.S3.BucketName

	var deleteErrors []error

	for _, image := range images {
		objectName := s.s3.GetObjectNameFromURL(bucketName, image.Src)
		if objectName == constant.Empty {
			log.Warn().Str("src", image.Src).Msg("failed to extract object name from URL")

			continue
		}

		if err := s.s3.DeleteFile(ctx, bucketName, model.EntityName, objectName); err != nil {
			log.Error().Err(err).Str("objectName", objectName).Msg("failed to delete file from S3")
			deleteErrors = append(deleteErrors, err)
		}
	}

	if len(deleteErrors) > 0 {
		return fmt.Errorf("%w: %d images", ErrDeleteImagesFromS3, len(deleteErrors))
	}

	return nil
}

// destinationOf resolves the destination slug of a package for snapshot
// invalidation. A lookup failure only degrades the event payload.
func (s *serviceImpl) destinationOf(ctx context.Context, packageID string) string {
	pkg, err := s.pkgRepo.Get(ctx, shared.FilterByID(packageID, pkgModel.FieldID, pkgModel.TableName))
	if err != nil {
		log.Error().Err(err).Str("package_id", packageID).Msg("failed to resolve package destination")

		return constant.Empty
	}

	return pkg.Destination
}

func (s *serviceImpl) afterMutation(ctx context.Context, id, packageID, dest, action string) {
	if dest != constant.Empty {
		s.snapshot.Invalidate(dest)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetItinerary, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete itinerary cache")
		}

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetByPackage, packageID)); err != nil {
			log.Error().Err(err).Msg("failed to delete package itinerary cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllItinerary)
		shared.InvalidateCaches(c, s.cache, cacheCountItinerary)

		event := kafka.Message{
			Key: id,
			Value: gDto.CatalogEvent{
				Entity:      constant.EventEntityItinerary,
				Action:      action,
				ID:          id,
				Destination: dest,
			},
		}

		if err := s.kafka.SendMessages(c, s.cfg.Kafka.EventTopic, event); err != nil {
			log.Error().Err(err).Str("itinerary_id", id).Msg("failed to publish catalog event")
		}
	}()
}
