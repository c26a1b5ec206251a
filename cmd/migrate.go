package cmd

import (
	"mercado/internal/config"
	"mercado/internal/database"

	"github.com/spf13/cobra"
)

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the product table and exit",
		RunE:  runMigrate,
	}
}

func runMigrate(cmd *cobra.Command, _ []string) error {
	_, cfg, log, err := bootstrap(cmd.Context())
	if err != nil {
		return err
	}
	if cfg.Database.Driver == config.DriverMemory {
		log.Info().Msg("memory driver has no schema to migrate")
		return nil
	}

	db, err := database.Open(cfg.Database, log)
	if err != nil {
		return err
	}
	defer database.Close(db)

	if err := database.Migrate(db); err != nil {
		return err
	}
	log.Info().Str("driver", cfg.Database.Driver).Msg("database migrated")
	return nil
}
