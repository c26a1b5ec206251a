package cmd

import (
	"fmt"
	"time"

	"mercado/internal/app"
	"mercado/internal/config"
	"mercado/internal/database"
	"mercado/pkg/rabbitmq"

	"github.com/spf13/cobra"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server",
		RunE:  runServe,
	}
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx, cfg, log, err := bootstrap(cmd.Context())
	if err != nil {
		return err
	}

	deps := app.Dependencies{Config: cfg, Logger: log}

	if cfg.Database.Driver != config.DriverMemory {
		db, err := database.Open(cfg.Database, log)
		if err != nil {
			return err
		}
		defer func() {
			if err := database.Close(db); err != nil {
				log.Error().Err(err).Msg("failed to close database")
			}
		}()
		if err := database.Migrate(db); err != nil {
			return err
		}
		deps.DB = db
	}

	if cfg.RabbitMQ.Enabled() {
		mqClient, err := rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQ.URL, Queue: cfg.RabbitMQ.Queue})
		if err != nil {
			return err
		}
		defer func() {
			if err := mqClient.Close(); err != nil {
				log.Error().Err(err).Msg("failed to close RabbitMQ client")
			}
		}()
		deps.Publisher = mqClient
	}

	fiberApp := app.NewApp(deps)

	listenErr := make(chan error, 1)
	go func() {
		listenErr <- fiberApp.Listen(cfg.Port)
	}()
	log.Info().
		Str("port", cfg.Port).
		Str("driver", cfg.Database.Driver).
		Bool("events", cfg.RabbitMQ.Enabled()).
		Msg("server started")

	select {
	case err := <-listenErr:
		return fmt.Errorf("server stopped: %w", err)
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down server")
	if err := fiberApp.ShutdownWithTimeout(shutdownTimeout); err != nil {
		return fmt.Errorf("failed to shut down server: %w", err)
	}
	log.Info().Msg("server gracefully stopped")
	return nil
}
