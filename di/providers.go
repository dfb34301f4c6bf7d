package di

import (
	"time"

	"roam/config"
	"roam/infras/otel"
	"roam/internal/domains/catalog/snapshot"
	"roam/internal/events"
	"roam/transport/http"

	packagesRepository "roam/internal/domains/packages/repository"
)

// App bundles the long-running components main has to start.
type App struct {
	HTTP     *http.HTTP
	Snapshot *snapshot.Store
	Events   *events.Consumer
}

func provideSnapshotStore(repo packagesRepository.Packages, otl otel.Otel, cfg *config.Config) *snapshot.Store {
	return snapshot.NewStore(repo, otl, time.Duration(cfg.Catalog.RefreshIntervalSeconds)*time.Second)
}
