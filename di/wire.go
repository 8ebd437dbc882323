//go:build wireinject
// +build wireinject

package di

import (
	"lagoon/config"
	"lagoon/infras/jwt"
	"lagoon/infras/otel"
	"lagoon/infras/postgres"
	"lagoon/infras/redis"
	"lagoon/infras/s3"
	"lagoon/shared/cache"
	"lagoon/shared/code"
	"lagoon/transport/http"
	"lagoon/transport/http/middleware"
	"lagoon/transport/http/router"

	adminService "lagoon/internal/domains/admin/service"
	authService "lagoon/internal/domains/auth/service"
	bookingRepository "lagoon/internal/domains/booking/repository"
	bookingService "lagoon/internal/domains/booking/service"
	contactRepository "lagoon/internal/domains/contact/repository"
	contactService "lagoon/internal/domains/contact/service"
	imageService "lagoon/internal/domains/image/service"
	imageStore "lagoon/internal/domains/image/store"
	testimonialRepository "lagoon/internal/domains/testimonial/repository"
	testimonialService "lagoon/internal/domains/testimonial/service"
	userRepository "lagoon/internal/domains/user/repository"
	userService "lagoon/internal/domains/user/service"

	adminHandler "lagoon/internal/handlers/admin"
	authHandler "lagoon/internal/handlers/auth"
	bookingHandler "lagoon/internal/handlers/booking"
	contactHandler "lagoon/internal/handlers/contact"
	healthHandler "lagoon/internal/handlers/health"
	imageHandler "lagoon/internal/handlers/image"
	testimonialHandler "lagoon/internal/handlers/testimonial"
	userHandler "lagoon/internal/handlers/user"

	"github.com/google/wire"
)

var configurations = wire.NewSet(
	config.Get,
)

var infrastructures = wire.NewSet(
	postgres.New,
	otel.New,
	redis.New,
	jwt.New,
	s3.New,
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
	middleware.NewAuthRoleMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
	code.New,
)

var bookingDomain = wire.NewSet(
	bookingRepository.New,
	bookingService.New,
)

var contactDomain = wire.NewSet(
	contactRepository.New,
	contactService.New,
)

var testimonialDomain = wire.NewSet(
	testimonialRepository.New,
	testimonialService.New,
)

var userDomain = wire.NewSet(
	userRepository.New,
	userService.New,
)

var authDomain = wire.NewSet(
	authService.New,
)

var imageDomain = wire.NewSet(
	imageStore.NewMemoryStore,
	imageService.New,
)

var adminDomain = wire.NewSet(
	adminService.NewDashboard,
	adminService.NewExport,
)

var domains = wire.NewSet(
	bookingDomain,
	contactDomain,
	testimonialDomain,
	userDomain,
	authDomain,
	imageDomain,
	adminDomain,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	healthHandler.New,
	authHandler.New,
	bookingHandler.New,
	contactHandler.New,
	testimonialHandler.New,
	imageHandler.New,
	adminHandler.New,
	userHandler.New,
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
