package logger_test

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/alkime/voicescribe/internal/config"
	"github.com/alkime/voicescribe/internal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLevel(t *testing.T) {
	tests := []struct {
		name string
		cfg  config.Config
		want slog.Level
	}{
		{"production info", config.Config{Env: "production", LogLevel: "info"}, slog.LevelInfo},
		{"production debug", config.Config{Env: "production", LogLevel: "debug"}, slog.LevelDebug},
		{"development", config.Config{Env: "development", LogLevel: "info"}, slog.LevelDebug},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, logger.Level(&tt.cfg))
		})
	}
}

func TestSetupText(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	var buf bytes.Buffer
	l := logger.SetupText(&buf, slog.LevelInfo)

	l.Debug("hidden")
	slog.Info("visible", "key", "value")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "key=value")
}

func TestSetupFile(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	path := filepath.Join(t.TempDir(), "logs", "voice.log")

	l, closer, err := logger.SetupFile(path, &config.Config{Env: "production", LogLevel: "info"})
	require.NoError(t, err)

	l.Info("written to file")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "written to file")
}
