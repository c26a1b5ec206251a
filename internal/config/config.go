// Package config loads the runtime configuration from the environment.
//
// Values come from process environment variables, optionally seeded from a
// `.env` file in the working directory. Defaults are registered on viper so
// that every key is known before AutomaticEnv lookups.
package config

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvTest        = "test"

	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverMemory   = "memory"

	defaultDatabaseFile = "database.sqlite"
	testDatabaseFile    = "database.test.sqlite"
)

// Config is the root configuration object for the application.
type Config struct {
	Env  string `validate:"required"`
	Port string `validate:"required"`

	Database DatabaseConfig
	RabbitMQ RabbitMQConfig
	Log      LogConfig

	// StrictMutations makes update and delete answer 404 when no row matched.
	StrictMutations bool
}

// DatabaseConfig selects the storage driver and its data source.
type DatabaseConfig struct {
	Driver string `validate:"oneof=sqlite postgres memory"`
	DSN    string `validate:"required_unless=Driver memory"`
}

// RabbitMQConfig enables product event publishing when URL is set.
type RabbitMQConfig struct {
	URL   string
	Queue string `validate:"required"`
}

// Enabled reports whether a broker URL was configured.
func (c RabbitMQConfig) Enabled() bool {
	return c.URL != ""
}

// LogConfig controls the process logger.
type LogConfig struct {
	Level string
	File  string
}

// Load reads `.env` (if present) and the environment into a validated Config.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	v := viper.New()
	v.SetDefault("APP_ENV", EnvDevelopment)
	v.SetDefault("APP_PORT", ":3000")
	v.SetDefault("DATABASE_DRIVER", DriverSQLite)
	v.SetDefault("DATABASE_DSN", "")
	v.SetDefault("PRODUCT_STRICT_MUTATIONS", false)
	v.SetDefault("RABBITMQ_URL", "")
	v.SetDefault("RABBITMQ_QUEUE", "product_events")
	v.SetDefault("LOG_LEVEL", "")
	v.SetDefault("LOG_FILE", "")
	v.AutomaticEnv()

	cfg := &Config{
		Env:  v.GetString("APP_ENV"),
		Port: v.GetString("APP_PORT"),
		Database: DatabaseConfig{
			Driver: v.GetString("DATABASE_DRIVER"),
			DSN:    v.GetString("DATABASE_DSN"),
		},
		RabbitMQ: RabbitMQConfig{
			URL:   v.GetString("RABBITMQ_URL"),
			Queue: v.GetString("RABBITMQ_QUEUE"),
		},
		Log: LogConfig{
			Level: v.GetString("LOG_LEVEL"),
			File:  v.GetString("LOG_FILE"),
		},
		StrictMutations: v.GetBool("PRODUCT_STRICT_MUTATIONS"),
	}

	if cfg.Database.Driver == DriverSQLite && cfg.Database.DSN == "" {
		cfg.Database.DSN = defaultDatabaseFile
		if cfg.Env == EnvTest {
			cfg.Database.DSN = testDatabaseFile
		}
	}

	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
		if cfg.Env == EnvDevelopment {
			cfg.Log.Level = "trace"
		}
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}
