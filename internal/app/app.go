// Package app assembles the Fiber application from its dependencies.
package app

import (
	"context"

	"mercado/internal/config"
	"mercado/internal/database"
	"mercado/internal/handlers"
	"mercado/internal/middleware"
	"mercado/internal/repositories"
	"mercado/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

// Dependencies are the process-wide resources the app is built on.
type Dependencies struct {
	Config *config.Config
	Logger zerolog.Logger
	// DB is nil when the memory driver is configured.
	DB *gorm.DB
	// Publisher is nil when event publishing is disabled.
	Publisher services.EventPublisher
}

// NewApp wires repositories, services, handlers and middleware.
func NewApp(deps Dependencies) *fiber.App {
	var productRepo repositories.ProductRepository
	var ping func(ctx context.Context) error
	if deps.DB != nil {
		productRepo = repositories.NewGORMProductRepository(deps.DB)
		ping = func(ctx context.Context) error {
			return database.Ping(ctx, deps.DB)
		}
	} else {
		productRepo = repositories.NewMemoryProductRepository()
	}

	opts := []services.Option{services.WithStrictMutations(deps.Config.StrictMutations)}
	if deps.Publisher != nil {
		opts = append(opts, services.WithEventPublisher(deps.Publisher))
	}
	productService := services.NewProductService(productRepo, opts...)

	productHandler := handlers.NewProductHandler(productService)
	healthHandler := handlers.NewHealthHandler(ping, database.PingTimeout)

	app := fiber.New(fiber.Config{
		AppName:               "mercado",
		ErrorHandler:          handlers.ErrorHandler,
		DisableStartupMessage: true,
	})

	app.Use(requestid.New())
	app.Use(middleware.Metrics())
	app.Use(middleware.RequestLogger(deps.Logger))
	app.Use(recover.New())

	healthHandler.RegisterRoutes(app)
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))
	productHandler.RegisterRoutes(app)

	return app
}
