//go:build wireinject
// +build wireinject

package di

import (
	"roam/config"
	"roam/infras/kafka"
	"roam/infras/otel"
	"roam/infras/postgres"
	"roam/infras/redis"
	"roam/infras/s3"
	"roam/internal/domains/catalog/snapshot"
	"roam/internal/events"
	catalogHandler "roam/internal/handlers/catalog"
	itineraryHandler "roam/internal/handlers/itinerary"
	packagesHandler "roam/internal/handlers/packages"
	"roam/shared/cache"
	"roam/transport/http"
	"roam/transport/http/middleware"
	"roam/transport/http/router"

	catalogService "roam/internal/domains/catalog/service"
	itineraryRepository "roam/internal/domains/itinerary/repository"
	itineraryService "roam/internal/domains/itinerary/service"
	packagesRepository "roam/internal/domains/packages/repository"
	packagesService "roam/internal/domains/packages/service"

	"github.com/google/wire"
)

var configurations = wire.NewSet(
	config.Get,
)

var infrastructures = wire.NewSet(
	postgres.New,
	otel.New,
	redis.New,
	kafka.New,
	s3.New,
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
)

var packagesDomain = wire.NewSet(
	packagesRepository.New,
	packagesService.New,
)

var itineraryDomain = wire.NewSet(
	itineraryRepository.New,
	itineraryService.New,
)

var catalogDomain = wire.NewSet(
	provideSnapshotStore,
	wire.Bind(new(packagesService.SnapshotInvalidator), new(*snapshot.Store)),
	wire.Bind(new(itineraryService.SnapshotInvalidator), new(*snapshot.Store)),
	catalogService.New,
)

var domains = wire.NewSet(
	packagesDomain,
	itineraryDomain,
	catalogDomain,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	catalogHandler.New,
	packagesHandler.New,
	itineraryHandler.New,
	router.New,
)

func InitializeService() *App {
	wire.Build(
		configurations,
		infrastructures,
		middlewares,
		sharedHelpers,
		domains,
		routing,
		http.New,
		events.NewConsumer,
		wire.Struct(new(App), "*"),
	)

	return &App{}
}
