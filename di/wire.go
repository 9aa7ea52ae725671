//go:build wireinject
// +build wireinject

package di

import (
	"github.com/google/wire"

	"hotelops/config"
	"hotelops/infras/jwt"
	"hotelops/infras/kafka"
	"hotelops/infras/otel"
	"hotelops/infras/postgres"
	"hotelops/infras/redis"
	"hotelops/infras/s3"
	analyticsRepository "hotelops/internal/domains/analytics/repository"
	analyticsService "hotelops/internal/domains/analytics/service"
	authService "hotelops/internal/domains/auth/service"
	bookingRepository "hotelops/internal/domains/booking/repository"
	bookingService "hotelops/internal/domains/booking/service"
	customerRepository "hotelops/internal/domains/customer/repository"
	customerService "hotelops/internal/domains/customer/service"
	featureRepository "hotelops/internal/domains/feature/repository"
	featureService "hotelops/internal/domains/feature/service"
	hotelRepository "hotelops/internal/domains/hotel/repository"
	hotelService "hotelops/internal/domains/hotel/service"
	notificationRepository "hotelops/internal/domains/notification/repository"
	notificationService "hotelops/internal/domains/notification/service"
	profileRepository "hotelops/internal/domains/profile/repository"
	profileService "hotelops/internal/domains/profile/service"
	roomRepository "hotelops/internal/domains/room/repository"
	roomService "hotelops/internal/domains/room/service"
	userRepository "hotelops/internal/domains/user/repository"
	adminHandler "hotelops/internal/handlers/admin"
	analyticsHandler "hotelops/internal/handlers/analytics"
	authHandler "hotelops/internal/handlers/auth"
	bookingHandler "hotelops/internal/handlers/booking"
	customerHandler "hotelops/internal/handlers/customer"
	featureHandler "hotelops/internal/handlers/feature"
	healthHandler "hotelops/internal/handlers/health"
	hotelHandler "hotelops/internal/handlers/hotel"
	profileHandler "hotelops/internal/handlers/profile"
	roomHandler "hotelops/internal/handlers/room"
	"hotelops/permissions"
	"hotelops/shared/cache"
	"hotelops/shared/errorlog"
	"hotelops/transport/http"
	"hotelops/transport/http/middleware"
	"hotelops/transport/http/router"
)

var configurations = wire.NewSet(
	config.Get,
	permissions.Get,
)

var infrastructures = wire.NewSet(
	postgres.New,
	otel.New,
	redis.New,
	jwt.New,
	kafka.New,
	s3.New,
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
	middleware.NewAuthAccessMiddleware,
	wire.Bind(new(middleware.TokenRevocation), new(authService.Auth)),
	wire.Bind(new(middleware.PrincipalLoader), new(profileService.Profile)),
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
	errorlog.NewFromConfig,
)

var notificationDomain = wire.NewSet(
	notificationService.NewDispatcher,
)

var authDomain = wire.NewSet(
	userRepository.New,
	authService.New,
)

var profileDomain = wire.NewSet(
	profileRepository.New,
	profileRepository.NewStaffPermission,
	profileService.New,
)

var hotelDomain = wire.NewSet(
	hotelRepository.New,
	hotelService.New,
)

var roomDomain = wire.NewSet(
	roomRepository.New,
	roomService.New,
	featureRepository.New,
	featureService.New,
)

var bookingDomain = wire.NewSet(
	customerRepository.New,
	customerService.New,
	bookingRepository.New,
	bookingService.New,
	analyticsRepository.New,
	analyticsService.New,
)

var domains = wire.NewSet(
	notificationDomain,
	authDomain,
	profileDomain,
	hotelDomain,
	roomDomain,
	bookingDomain,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	authHandler.New,
	profileHandler.New,
	hotelHandler.New,
	roomHandler.New,
	featureHandler.New,
	customerHandler.New,
	bookingHandler.New,
	analyticsHandler.New,
	adminHandler.New,
	healthHandler.New,
	router.New,
)

func InitializeService() *http.HTTP {
	wire.Build(
		configurations,
		infrastructures,
		middlewares,
		sharedHelpers,
		domains,
		routing,
		http.New,
	)

	return &http.HTTP{}
}

func InitializeNotifier() *notificationService.Consumer {
	wire.Build(
		config.Get,
		otel.New,
		postgres.New,
		redis.New,
		kafka.New,
		cache.NewRedisCache,
		notificationRepository.New,
		notificationService.NewRenderer,
		notificationService.NewLogSender,
		notificationService.NewConsumer,
	)

	return &notificationService.Consumer{}
}
