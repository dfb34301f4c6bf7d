package handler

import (
	"net/http"

	"roam/config"
	"roam/di"
	"roam/shared/logger"
)

// Handler is the serverless entrypoint. Snapshots refresh lazily on the
// first catalog request of a cold instance.
func Handler(w http.ResponseWriter, r *http.Request) {
	r.RequestURI = r.URL.String()

	cfg := config.Get()

	logger.InitLogger()

	logger.SetLogLevel(cfg)

	app := di.InitializeService()
	app.HTTP.Handler().ServeHTTP(w, r)
}
