package router

import (
	"trailguard/internal/handlers/alert"
	"trailguard/internal/handlers/auth"
	"trailguard/internal/handlers/location"
	"trailguard/internal/handlers/rating"
	"trailguard/internal/handlers/status"
	"trailguard/internal/handlers/visit"
	"trailguard/transport/http/middleware"

	"github.com/go-chi/chi/v5"
	httpSwagger "github.com/swaggo/http-swagger"
)

type DomainHandlers struct {
	Auth     auth.Handler
	Location location.Handler
	Visit    visit.Handler
	Alert    alert.Handler
	Rating   rating.Handler
	Status   status.Handler
}

type Router struct {
	DomainHandlers DomainHandlers
	AppMiddleware  middleware.AppMiddleware
}

func (r *Router) SetupRoutes(router chi.Router) {
	router.Use(r.AppMiddleware.Tracing)
	router.Use(r.AppMiddleware.CORS)
	router.Use(r.AppMiddleware.RateLimit)

	r.DomainHandlers.Status.Router(router)

	router.Get("/swagger/*", httpSwagger.WrapHandler)

	router.Route("/v1", func(routerGroup chi.Router) {
		r.DomainHandlers.Auth.Router(routerGroup)
		r.DomainHandlers.Location.Router(routerGroup)
		r.DomainHandlers.Visit.Router(routerGroup)
		r.DomainHandlers.Alert.Router(routerGroup)
		r.DomainHandlers.Rating.Router(routerGroup)
	})
}

func New(domainHandlers DomainHandlers, appMiddleware middleware.AppMiddleware) Router {
	return Router{
		DomainHandlers: domainHandlers,
		AppMiddleware:  appMiddleware,
	}
}
