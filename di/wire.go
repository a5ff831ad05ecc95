//go:build wireinject
// +build wireinject

package di

import (
	"trailguard/config"
	"trailguard/infras/jwt"
	"trailguard/infras/kafka"
	"trailguard/infras/otel"
	"trailguard/infras/postgres"
	"trailguard/infras/redis"
	"trailguard/infras/s3"
	"trailguard/internal/watchdog"
	"trailguard/shared/cache"
	"trailguard/shared/pubsub"
	"trailguard/transport/http"
	"trailguard/transport/http/middleware"
	"trailguard/transport/http/router"

	"github.com/google/wire"

	authService "trailguard/internal/domains/auth/service"
	userRepository "trailguard/internal/domains/user/repository"
	authHandler "trailguard/internal/handlers/auth"

	locationRepository "trailguard/internal/domains/location/repository"
	locationService "trailguard/internal/domains/location/service"
	locationHandler "trailguard/internal/handlers/location"

	visitRepository "trailguard/internal/domains/visit/repository"
	visitService "trailguard/internal/domains/visit/service"
	visitHandler "trailguard/internal/handlers/visit"

	alertRepository "trailguard/internal/domains/alert/repository"
	alertService "trailguard/internal/domains/alert/service"
	alertHandler "trailguard/internal/handlers/alert"

	ratingRepository "trailguard/internal/domains/rating/repository"
	ratingService "trailguard/internal/domains/rating/service"
	ratingHandler "trailguard/internal/handlers/rating"

	statusHandler "trailguard/internal/handlers/status"
)

var configurations = wire.NewSet(
	config.Get,
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
	middleware.NewAuthMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
	pubsub.NewRedisBroker,
)

var authDomain = wire.NewSet(
	userRepository.New,
	authService.New,
)

var locationDomain = wire.NewSet(
	locationRepository.New,
	locationService.New,
)

var visitDomain = wire.NewSet(
	visitRepository.New,
	visitService.New,
)

var alertDomain = wire.NewSet(
	alertRepository.New,
	alertService.New,
)

var ratingDomain = wire.NewSet(
	ratingRepository.New,
	ratingService.New,
)

var domains = wire.NewSet(
	authDomain,
	locationDomain,
	visitDomain,
	alertDomain,
	ratingDomain,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	authHandler.New,
	locationHandler.New,
	visitHandler.New,
	alertHandler.New,
	ratingHandler.New,
	statusHandler.New,
	router.New,
)

// newWatchdog narrows the domain services to the interfaces the
// watchdog sweeps through.
func newWatchdog(visits visitService.Visit, alerts alertService.Alert, cfg *config.Config, ot otel.Otel) *watchdog.Watchdog {
	return watchdog.New(visits, alerts, cfg, ot)
}

func InitializeService() *http.HTTP {
	wire.Build(
		configurations,
		infrastructures,
		middlewares,
		sharedHelpers,
		domains,
		routing,
		newWatchdog,
		http.New,
	)

	return &http.HTTP{}
}
