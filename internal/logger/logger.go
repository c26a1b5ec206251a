// Package logger builds the process-wide zerolog logger.
package logger

import (
	"io"
	"os"
	"time"

	"mercado/internal/config"

	"github.com/natefinch/lumberjack"
	"github.com/rs/zerolog"
)

// New returns a logger writing to stdout and, when configured, to a rotated
// log file. Development builds get the human-friendly console format.
func New(cfg *config.Config) zerolog.Logger {
	zerolog.DurationFieldUnit = time.Millisecond
	zerolog.TimestampFieldName = "timestamp"
	zerolog.MessageFieldName = "message"

	level, err := zerolog.ParseLevel(cfg.Log.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}

	var stdout io.Writer = os.Stdout
	if cfg.Env == config.EnvDevelopment {
		stdout = zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
	}

	output := stdout
	if cfg.Log.File != "" {
		fileWriter := &lumberjack.Logger{
			Filename:   cfg.Log.File,
			MaxSize:    50,
			MaxBackups: 3,
			Compress:   true,
		}
		output = zerolog.MultiLevelWriter(stdout, fileWriter)
	}

	return zerolog.New(output).
		Level(level).
		With().
		Timestamp().
		Str("app", "mercado").
		Str("env", cfg.Env).
		Logger()
}
