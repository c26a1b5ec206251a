// Package cmd holds the command line entry points of mercado.
package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"mercado/internal/config"
	"mercado/internal/logger"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// Execute runs the root command. SIGINT and SIGTERM cancel the command
// context, which the server and the consumer treat as a shutdown request.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	rootCmd := newRootCmd()
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "mercado",
		Short:        "Product catalog REST API",
		SilenceUsage: true,
		// running without a subcommand starts the server
		RunE: runServe,
	}
	rootCmd.AddCommand(newServeCmd(), newMigrateCmd(), newConsumeCmd())
	return rootCmd
}

// bootstrap loads the configuration and builds the process logger.
func bootstrap(ctx context.Context) (context.Context, *config.Config, zerolog.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return ctx, nil, zerolog.Nop(), err
	}
	log := logger.New(cfg)
	return log.WithContext(ctx), cfg, log, nil
}
