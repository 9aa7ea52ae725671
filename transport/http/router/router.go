package router

import (
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger"

	"hotelops/config"
	_ "hotelops/docs"
	"hotelops/internal/handlers/admin"
	"hotelops/internal/handlers/analytics"
	"hotelops/internal/handlers/auth"
	"hotelops/internal/handlers/booking"
	"hotelops/internal/handlers/customer"
	"hotelops/internal/handlers/feature"
	"hotelops/internal/handlers/health"
	"hotelops/internal/handlers/hotel"
	"hotelops/internal/handlers/profile"
	"hotelops/internal/handlers/room"
	"hotelops/shared/constant"
	"hotelops/transport/http/middleware"
)

type DomainHandlers struct {
	Auth      auth.Handler
	Profile   profile.Handler
	Hotel     hotel.Handler
	Room      room.Handler
	Feature   feature.Handler
	Customer  customer.Handler
	Booking   booking.Handler
	Analytics analytics.Handler
	Admin     admin.Handler
	Health    health.Handler
}

type Router struct {
	DomainHandlers DomainHandlers
	app            middleware.AppMiddleware
	authAccess     middleware.AuthAccess
	cfg            *config.Config
}

func (r *Router) SetupRoutes(router chi.Router) {
	router.Use(chiMiddleware.RequestID)
	router.Use(chiMiddleware.RealIP)
	router.Use(chiMiddleware.Recoverer)
	router.Use(r.app.Tracing)

	if r.cfg.App.CORS.Enable {
		router.Use(cors.Handler(r.corsOptions()))
	}

	router.Use(r.app.RateLimit())

	r.DomainHandlers.Health.Router(router)

	if r.cfg.Server.Env == constant.ServerEnvDevelopment {
		router.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))
	}

	router.Route("/v1", func(routerGroup chi.Router) {
		routerGroup.Use(r.app.CaptureErrors)
		routerGroup.Use(r.authAccess.APIKey)
		routerGroup.Use(r.authAccess.Auth)
		routerGroup.Use(r.authAccess.Access)

		r.DomainHandlers.Auth.Router(routerGroup)
		r.DomainHandlers.Profile.Router(routerGroup)
		r.DomainHandlers.Hotel.Router(routerGroup)
		r.DomainHandlers.Room.Router(routerGroup)
		r.DomainHandlers.Feature.Router(routerGroup)
		r.DomainHandlers.Customer.Router(routerGroup)
		r.DomainHandlers.Booking.Router(routerGroup)
		r.DomainHandlers.Analytics.Router(routerGroup)
		r.DomainHandlers.Admin.Router(routerGroup)
	})
}

func (r *Router) corsOptions() cors.Options {
	options := r.cfg.App.CORS

	return cors.Options{
		AllowedOrigins:   options.AllowedOrigins,
		AllowedMethods:   options.AllowedMethods,
		AllowedHeaders:   options.AllowedHeaders,
		AllowCredentials: options.AllowCredentials,
		MaxAge:           options.MaxAgeSeconds,
	}
}

func New(
	domainHandlers DomainHandlers,
	app middleware.AppMiddleware,
	authAccess middleware.AuthAccess,
	cfg *config.Config,
) Router {
	return Router{
		DomainHandlers: domainHandlers,
		app:            app,
		authAccess:     authAccess,
		cfg:            cfg,
	}
}
