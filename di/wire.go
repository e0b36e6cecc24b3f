//go:build wireinject
// +build wireinject

package di

import (
	"shareit/config"
	"shareit/infras/otel"
	"shareit/infras/postgres"
	"shareit/infras/prometheus"
	"shareit/infras/redis"
	"shareit/shared/cache"
	"shareit/shared/clock"
	"shareit/transport/http"
	"shareit/transport/http/middleware"
	"shareit/transport/http/router"

	bookingRepository "shareit/internal/domains/booking/repository"
	bookingService "shareit/internal/domains/booking/service"
	bookingHandler "shareit/internal/handlers/booking"

	commentRepository "shareit/internal/domains/comment/repository"
	commentService "shareit/internal/domains/comment/service"

	itemRepository "shareit/internal/domains/item/repository"
	itemService "shareit/internal/domains/item/service"
	itemHandler "shareit/internal/handlers/item"

	requestRepository "shareit/internal/domains/request/repository"
	requestService "shareit/internal/domains/request/service"
	requestHandler "shareit/internal/handlers/request"

	userRepository "shareit/internal/domains/user/repository"
	userService "shareit/internal/domains/user/service"
	userHandler "shareit/internal/handlers/user"

	"github.com/google/wire"
)

var configurations = wire.NewSet(
	config.Get,
)

var infrastructures = wire.NewSet(
	postgres.New,
	otel.New,
	redis.New,
	prometheus.New,
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
	clock.NewRealClock,
)

var userDomain = wire.NewSet(
	userRepository.New,
	userService.New,
	userService.NewDirectory,
)

var itemDomain = wire.NewSet(
	itemRepository.New,
	itemService.New,
	itemService.NewDirectory,
)

var bookingDomain = wire.NewSet(
	bookingRepository.New,
	bookingService.New,
)

var commentDomain = wire.NewSet(
	commentRepository.New,
	commentService.New,
)

var requestDomain = wire.NewSet(
	requestRepository.New,
	requestService.New,
	requestService.NewDirectory,
)

var domains = wire.NewSet(
	userDomain,
	itemDomain,
	bookingDomain,
	commentDomain,
	requestDomain,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	userHandler.New,
	itemHandler.New,
	bookingHandler.New,
	requestHandler.New,
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
