// Package config loads application settings from the environment.
package config

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

const (
	// EnvProduction represents the production environment.
	EnvProduction = "production"
	// EnvDevelopment represents the development environment.
	EnvDevelopment = "development"
)

// Config holds all application configuration.
type Config struct {
	// Server settings
	Env            string   `envconfig:"ENV" default:"development"`
	Port           string   `envconfig:"PORT" default:"8080"`
	TrustedProxies []string `envconfig:"TRUSTED_PROXIES" default:"127.0.0.1"`

	// Security settings
	HSTSMaxAge int    `envconfig:"HSTS_MAX_AGE" default:"31536000"`
	CSPMode    string `envconfig:"CSP_MODE" default:"relaxed"`

	// Logging settings
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`

	// Storage settings; an empty DataDir means workdir.Root().
	DataDir   string `envconfig:"VOICESCRIBE_DATA_DIR"`
	PublicDir string `envconfig:"PUBLIC_DIR" default:"./public"`

	// Remote model settings
	OpenAIAPIKey       string        `envconfig:"OPENAI_API_KEY"`
	AnthropicAPIKey    string        `envconfig:"ANTHROPIC_API_KEY"`
	TranscriptionModel string        `envconfig:"VOICESCRIBE_TRANSCRIPTION_MODEL" default:"gpt-4o-transcribe"`
	AnalysisModel      string        `envconfig:"VOICESCRIBE_ANALYSIS_MODEL" default:"claude-haiku-4-5"`
	RequestTimeout     time.Duration `envconfig:"VOICESCRIBE_REQUEST_TIMEOUT" default:"2m"`

	// Capture and UI settings
	Language    string        `envconfig:"VOICESCRIBE_LANGUAGE" default:"English"`
	AudioFormat string        `envconfig:"VOICESCRIBE_AUDIO_FORMAT" default:"mp3"`
	SampleRate  int           `envconfig:"VOICESCRIBE_SAMPLE_RATE" default:"16000"`
	NoticeTTL   time.Duration `envconfig:"VOICESCRIBE_NOTICE_TTL" default:"3s"`
	MaxUpload   int64         `envconfig:"VOICESCRIBE_MAX_UPLOAD" default:"26214400"`
}

// LoadConfig loads configuration from .env file and environment variables.
func LoadConfig() (*Config, error) {
	// Try to load .env file (optional for development)
	if err := godotenv.Load(); err != nil {
		// Not an error if file doesn't exist (expected in production)
		if !os.IsNotExist(err) {
			log.Printf("Warning: Error loading .env file: %v", err)
		}
	}

	return Process()
}

// Process reads configuration from the environment only.
func Process() (*Config, error) {
	var config Config
	if err := envconfig.Process("", &config); err != nil {
		return nil, fmt.Errorf("failed to process environment variables: %w", err)
	}

	return &config, nil
}

// IsProduction reports whether the production environment is configured.
func (c *Config) IsProduction() bool {
	return c.Env == EnvProduction
}

// BuildCSP constructs Content Security Policy based on mode.
func BuildCSP(mode string) string {
	if mode == "strict" {
		// Production CSP
		return "default-src 'self'; " +
			"style-src 'self' 'unsafe-inline'; " +
			"script-src 'self'; " +
			"img-src 'self' data:; " +
			"media-src 'self' blob:; " +
			"object-src 'none'; " +
			"base-uri 'self'; " +
			"form-action 'self'"
	}

	// Development/relaxed CSP
	return "default-src 'self'; " +
		"style-src 'self' 'unsafe-inline'; " +
		"script-src 'self' 'unsafe-inline'; " +
		"img-src 'self' data:; " +
		"media-src 'self' blob:"
}
