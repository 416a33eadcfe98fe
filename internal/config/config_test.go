package config_test

import (
	"testing"
	"time"

	"github.com/alkime/voicescribe/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProcess_Defaults(t *testing.T) {
	cfg, err := config.Process()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "English", cfg.Language)
	assert.Equal(t, "gpt-4o-transcribe", cfg.TranscriptionModel)
	assert.Equal(t, "claude-haiku-4-5", cfg.AnalysisModel)
	assert.Equal(t, "mp3", cfg.AudioFormat)
	assert.Equal(t, 16000, cfg.SampleRate)
	assert.Equal(t, 3*time.Second, cfg.NoticeTTL)
}

func TestProcess_Overrides(t *testing.T) {
	t.Setenv("ENV", "production")
	t.Setenv("PORT", "9090")
	t.Setenv("VOICESCRIBE_LANGUAGE", "es")
	t.Setenv("VOICESCRIBE_AUDIO_FORMAT", "wav")
	t.Setenv("VOICESCRIBE_NOTICE_TTL", "500ms")
	t.Setenv("VOICESCRIBE_DATA_DIR", "/tmp/vs")
	t.Setenv("TRUSTED_PROXIES", "10.0.0.0/8,172.16.0.0/12")

	cfg, err := config.Process()
	require.NoError(t, err)

	assert.True(t, cfg.IsProduction())
	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "es", cfg.Language)
	assert.Equal(t, "wav", cfg.AudioFormat)
	assert.Equal(t, 500*time.Millisecond, cfg.NoticeTTL)
	assert.Equal(t, "/tmp/vs", cfg.DataDir)
	assert.Equal(t, []string{"10.0.0.0/8", "172.16.0.0/12"}, cfg.TrustedProxies)
}

func TestProcess_InvalidValue(t *testing.T) {
	t.Setenv("VOICESCRIBE_SAMPLE_RATE", "fast")

	_, err := config.Process()
	require.Error(t, err)
}

func TestBuildCSP(t *testing.T) {
	strict := config.BuildCSP("strict")
	assert.Contains(t, strict, "object-src 'none'")
	assert.Contains(t, strict, "media-src 'self' blob:")

	relaxed := config.BuildCSP("relaxed")
	assert.Contains(t, relaxed, "'unsafe-inline'")
	assert.NotContains(t, relaxed, "object-src")
}
