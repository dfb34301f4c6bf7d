package router

import (
	"roam/internal/handlers/catalog"
	"roam/internal/handlers/itinerary"
	"roam/internal/handlers/packages"
	"roam/transport/http/middleware"

	"github.com/go-chi/chi/v5"
)

type DomainHandlers struct {
	Catalog   catalog.Handler
	Packages  packages.Handler
	Itinerary itinerary.Handler
}

type Router struct {
	DomainHandlers DomainHandlers
	Middleware     middleware.AppMiddleware
}

func (r *Router) SetupRoutes(router chi.Router) {
	router.Route("/v1", func(routerGroup chi.Router) {
		r.DomainHandlers.Catalog.Router(routerGroup)

		routerGroup.Group(func(adminGroup chi.Router) {
			adminGroup.Use(r.Middleware.APIKey)

			r.DomainHandlers.Packages.Router(adminGroup)
			r.DomainHandlers.Itinerary.Router(adminGroup)
		})
	})
}

func New(domainHandlers DomainHandlers, middleware middleware.AppMiddleware) Router {
	return Router{
		DomainHandlers: domainHandlers,
		Middleware:     middleware,
	}
}
