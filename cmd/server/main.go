package main

import (
	"log"

	"github.com/alkime/voicescribe/internal/analysis"
	"github.com/alkime/voicescribe/internal/config"
	"github.com/alkime/voicescribe/internal/logger"
	"github.com/alkime/voicescribe/internal/server"
	"github.com/alkime/voicescribe/internal/session"
	"github.com/alkime/voicescribe/internal/store"
	"github.com/alkime/voicescribe/internal/theme"
	"github.com/alkime/voicescribe/internal/transcription"
	"github.com/alkime/voicescribe/internal/workdir"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Setup structured logging
	logger := logger.SetupLogger(cfg)

	dirs, err := workdir.Prep(cfg.DataDir)
	if err != nil {
		log.Fatalf("Failed to prepare data directory: %v", err)
	}

	db, err := store.OpenSQLite(dirs.DBPath())
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	// Log startup information
	logger.Info("Starting VoiceScribe server",
		"env", cfg.Env,
		"port", cfg.Port,
		"data_dir", dirs.Root,
		"public_dir", cfg.PublicDir,
	)

	srv := server.New(cfg, logger, server.Deps{
		Sessions: session.NewManager(db),
		Theme:    theme.NewPreference(db, func() theme.Theme { return theme.Light }),
		Transcriber: transcription.NewClient(transcription.Config{
			APIKey:  cfg.OpenAIAPIKey,
			Model:   cfg.TranscriptionModel,
			Timeout: cfg.RequestTimeout,
		}),
		Analyzer: analysis.NewClient(analysis.Config{
			APIKey:  cfg.AnthropicAPIKey,
			Model:   cfg.AnalysisModel,
			Timeout: cfg.RequestTimeout,
		}),
	})

	if err := server.Run(srv); err != nil {
		logger.Error("Failed to start server", "error", err)
		log.Fatalf("Fatal: %v", err) //nolint:gocritic // fatal startup error
	}
}
