package http

import (
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"roam/config"
	"roam/transport/http/middleware"
	"roam/transport/http/response"
	"roam/transport/http/router"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog/log"
)

type ServerState int

const (
	ServerStateReady ServerState = iota + 1
	ServerStateInGracePeriod
	ServerStateInCleanupPeriod
)

type HTTP struct {
	Config     *config.Config
	Router     router.Router
	Middleware middleware.AppMiddleware
	State      ServerState
	mux        *chi.Mux
}

func New(cfg *config.Config, r router.Router, mw middleware.AppMiddleware) *HTTP {
	return &HTTP{
		Config:     cfg,
		Router:     r,
		Middleware: mw,
	}
}

func (h *HTTP) Serve() {
	h.setup()

	addr := net.JoinHostPort(h.Config.Server.Host, h.Config.Server.Port)

	log.Info().Str("addr", addr).Msg("Starting up HTTP server.")

	server := &http.Server{
		Addr:              addr,
		Handler:           h.mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal().Err(err).Msg("Failed to start HTTP server")
	}
}

// Handler exposes the configured mux, mainly for httptest.
func (h *HTTP) Handler() http.Handler {
	h.setup()

	return h.mux
}

func (h *HTTP) setup() {
	h.setupRoutes()
	h.setupGracefulShutdown()
	h.State = ServerStateReady
}

func (h *HTTP) setupRoutes() {
	h.mux = chi.NewRouter()

	h.mux.Use(chiMiddleware.Recoverer)
	h.mux.Use(chiMiddleware.RequestID)

	if h.Config.App.CORS.Enable {
		h.mux.Use(cors.Handler(cors.Options{
			AllowCredentials: h.Config.App.CORS.AllowCredentials,
			AllowedHeaders:   h.Config.App.CORS.AllowedHeaders,
			AllowedMethods:   h.Config.App.CORS.AllowedMethods,
			AllowedOrigins:   h.Config.App.CORS.AllowedOrigins,
			MaxAge:           h.Config.App.CORS.MaxAgeSeconds,
		}))
	}

	h.mux.Use(h.Middleware.Tracing)
	h.mux.Use(h.Middleware.RateLimit())

	h.mux.Get("/health", h.HealthCheck)

	h.Router.SetupRoutes(h.mux)
}

// HealthCheck reports server readiness and shutdown state.
// @Summary Health check
// @Description Report whether the server is ready to receive traffic.
// @Tags Health
// @Produce json
// @Success 200 {object} response.Message "Server is healthy"
// @Failure 503 {object} response.Message
// @Router /health [get]
func (h *HTTP) HealthCheck(w http.ResponseWriter, r *http.Request) {
	switch h.State {
	case ServerStateInGracePeriod:
		response.WithPreparingShutdown(w)
	case ServerStateInCleanupPeriod:
		response.WithUnhealthy(w)
	default:
		response.WithMessage(w, http.StatusOK, "OK")
	}
}

func (h *HTTP) setupGracefulShutdown() {
	serverStateCh := make(chan os.Signal, 1)

	signal.Notify(serverStateCh, os.Interrupt, syscall.SIGTERM)

	go h.respondToSigterm(serverStateCh)
}

func (h *HTTP) respondToSigterm(done chan os.Signal) {
	<-done

	defer os.Exit(0)

	if h.Config.Server.Env == "development" {
		log.Warn().Msg("Received SIGTERM. Shutting down now.")

		return
	}

	shutdownConfig := h.Config.Server.Shutdown

	log.Info().Msg("Received SIGTERM.")
	log.Info().Int64("seconds", shutdownConfig.GracePeriodSeconds).Msg("Entering grace period.")

	h.State = ServerStateInGracePeriod

	time.Sleep(time.Duration(shutdownConfig.GracePeriodSeconds) * time.Second)

	log.Info().Int64("seconds", shutdownConfig.CleanupPeriodSeconds).Msg("Entering cleanup period.")

	h.State = ServerStateInCleanupPeriod

	time.Sleep(time.Duration(shutdownConfig.CleanupPeriodSeconds) * time.Second)

	log.Info().Msg("Cleaning up completed. Shutting down now.")
}
