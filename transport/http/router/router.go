package router

import (
	"net/http"
	"shareit/config"
	"shareit/infras/prometheus"
	"shareit/internal/handlers/booking"
	"shareit/internal/handlers/item"
	"shareit/internal/handlers/request"
	"shareit/internal/handlers/user"
	"shareit/transport/http/middleware"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger"
)

type DomainHandlers struct {
	User    user.Handler
	Item    item.Handler
	Booking booking.Handler
	Request request.Handler
}

type Router struct {
	DomainHandlers DomainHandlers
	middleware     middleware.AppMiddleware
	metrics        prometheus.Metrics
	config         *config.Config
}

func (r *Router) SetupRoutes(router chi.Router) {
	if r.config.App.CORS.Enable {
		router.Use(cors.Handler(cors.Options{
			AllowedOrigins:   r.config.App.CORS.AllowedOrigins,
			AllowedMethods:   r.config.App.CORS.AllowedMethods,
			AllowedHeaders:   r.config.App.CORS.AllowedHeaders,
			AllowCredentials: r.config.App.CORS.AllowCredentials,
			MaxAge:           r.config.App.CORS.MaxAgeSeconds,
		}))
	}

	router.Use(
		r.middleware.RequestID,
		r.middleware.Tracing,
		r.middleware.Metrics,
		r.middleware.RateLimit(),
	)

	if r.config.Metrics.Enable {
		router.Method(http.MethodGet, "/metrics", r.metrics.Handler())
	}

	router.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	router.Route("/v1", func(routerGroup chi.Router) {
		routerGroup.Use(r.middleware.Identity)

		r.DomainHandlers.User.Router(routerGroup)
		r.DomainHandlers.Item.Router(routerGroup)
		r.DomainHandlers.Booking.Router(routerGroup)
		r.DomainHandlers.Request.Router(routerGroup)
	})
}

func New(domainHandlers DomainHandlers, appMiddleware middleware.AppMiddleware, metrics prometheus.Metrics, cfg *config.Config) Router {
	return Router{
		DomainHandlers: domainHandlers,
		middleware:     appMiddleware,
		metrics:        metrics,
		config:         cfg,
	}
}
