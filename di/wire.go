//go:build wireinject
// +build wireinject

package di

import (
	"icpac/config"
	"icpac/infras/jwt"
	"icpac/infras/kafka"
	"icpac/infras/otel"
	"icpac/infras/postgres"
	"icpac/infras/redis"
	"icpac/infras/s3"
	"icpac/internal/events"
	"icpac/permissions"
	"icpac/shared/cache"
	"icpac/transport/http"
	"icpac/transport/http/middleware"
	"icpac/transport/http/router"

	authService "icpac/internal/domains/auth/service"
	availabilityService "icpac/internal/domains/availability/service"
	bookingRepository "icpac/internal/domains/booking/repository"
	bookingService "icpac/internal/domains/booking/service"
	roomRepository "icpac/internal/domains/room/repository"
	roomService "icpac/internal/domains/room/service"
	userRepository "icpac/internal/domains/user/repository"
	userService "icpac/internal/domains/user/service"

	authHandler "icpac/internal/handlers/auth"
	availabilityHandler "icpac/internal/handlers/availability"
	bookingHandler "icpac/internal/handlers/booking"
	healthHandler "icpac/internal/handlers/health"
	roomHandler "icpac/internal/handlers/room"
	userHandler "icpac/internal/handlers/user"

	"github.com/google/wire"
	goRedis "github.com/redis/go-redis/v9"
)

var configurations = wire.NewSet(
	config.Get,
	permissions.Get,
)

var infrastructures = wire.NewSet(
	postgres.New,
	otel.New,
	redis.New,
	wire.Bind(new(goRedis.UniversalClient), new(*goRedis.Client)),
	jwt.New,
	kafka.New,
	s3.New,
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
	middleware.NewAuthRoleMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
	events.New,
)

var repositories = wire.NewSet(
	userRepository.New,
	roomRepository.New,
	bookingRepository.New,
)

var domains = wire.NewSet(
	authService.New,
	userService.New,
	roomService.New,
	bookingService.New,
	availabilityService.New,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	healthChecks,
	healthHandler.New,
	authHandler.New,
	userHandler.New,
	roomHandler.New,
	bookingHandler.New,
	availabilityHandler.New,
	router.New,
)

func InitializeService() *http.HTTP {
	wire.Build(
		configurations,
		infrastructures,
		middlewares,
		sharedHelpers,
		repositories,
		domains,
		routing,
		http.New,
	)

	return &http.HTTP{}
}
