// Package logger configures the process-wide slog logger.
package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/alkime/voicescribe/internal/config"
)

// Level returns the configured log level.
func Level(cfg *config.Config) slog.Level {
	logLevel := slog.LevelInfo
	if cfg.Env == config.EnvDevelopment {
		logLevel = slog.LevelDebug
	}
	if cfg.LogLevel == "debug" {
		logLevel = slog.LevelDebug
	}

	return logLevel
}

// SetupLogger configures structured JSON logging to stdout based on environment.
func SetupLogger(cfg *config.Config) *slog.Logger {
	return install(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: Level(cfg),
	}))
}

// SetupText configures human-readable logging to w, for CLI commands.
func SetupText(w io.Writer, level slog.Level) *slog.Logger {
	return install(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: level,
	}))
}

// SetupFile sends logs to a file so a full-screen terminal UI is not
// corrupted. The returned closer must be called on exit.
func SetupFile(path string, cfg *config.Config) (*slog.Logger, io.Closer, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file: %w", err)
	}

	logger := install(slog.NewTextHandler(f, &slog.HandlerOptions{
		Level: Level(cfg),
	}))

	return logger, f, nil
}

func install(handler slog.Handler) *slog.Logger {
	logger := slog.New(handler)

	// Set as default logger
	slog.SetDefault(logger)

	return logger
}
