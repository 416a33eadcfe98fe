package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/alkime/voicescribe/internal/analysis"
	"github.com/alkime/voicescribe/internal/config"
	"github.com/alkime/voicescribe/internal/editor"
	"github.com/alkime/voicescribe/internal/keyring"
	"github.com/alkime/voicescribe/internal/session"
	"github.com/alkime/voicescribe/internal/transcription"
	"github.com/dustin/go-humanize"
)

// TranscribeCmd transcribes an existing audio file.
type TranscribeCmd struct {
	File            string `arg:"" type:"existingfile" help:"Audio file (mp3, wav, m4a, webm, ogg, flac)"`
	Language        string `flag:"" short:"l" help:"Target language name or code (default: VOICESCRIBE_LANGUAGE)"`
	Save            string `flag:"" optional:"" help:"Save the transcript as a session with this name"`
	Edit            bool   `flag:"" short:"e" help:"Review the transcript in $EDITOR before analysis and saving"`
	Analyze         bool   `flag:"" default:"true" negatable:"" help:"Print transcript metrics"`
	OpenAIAPIKey    string `flag:"" env:"OPENAI_API_KEY" help:"OpenAI API key for transcription"`
	AnthropicAPIKey string `flag:"" env:"ANTHROPIC_API_KEY" help:"Anthropic API key for analysis"`
}

// Run executes the transcribe command.
func (c *TranscribeCmd) Run(g *Globals) error {
	cfg, err := g.env()
	if err != nil {
		return err
	}

	langName := firstNonEmpty(c.Language, cfg.Language)
	lang, err := transcription.ParseLanguage(langName)
	if err != nil {
		return fmt.Errorf("invalid language %q: %w", langName, err)
	}

	data, err := os.ReadFile(c.File)
	if err != nil {
		return fmt.Errorf("failed to read audio file: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	slog.Info("transcribing",
		"file", filepath.Base(c.File),
		"size", humanize.Bytes(uint64(len(data))),
		"language", lang.Name)

	client := transcription.NewClient(transcription.Config{
		APIKey:  keyring.Resolve(keyring.OpenAI, firstNonEmpty(c.OpenAIAPIKey, cfg.OpenAIAPIKey)),
		Model:   cfg.TranscriptionModel,
		Timeout: cfg.RequestTimeout,
	})

	text, err := client.Transcribe(ctx, data, transcription.MIMETypeFor(c.File), lang)
	if err != nil {
		return err
	}

	if c.Edit {
		if text, err = editor.Edit(ctx, text); err != nil {
			return err
		}
	}

	fmt.Println(text)

	if c.Analyze {
		analyzer := analysis.NewClient(analysis.Config{
			APIKey:  keyring.Resolve(keyring.Anthropic, firstNonEmpty(c.AnthropicAPIKey, cfg.AnthropicAPIKey)),
			Model:   cfg.AnalysisModel,
			Timeout: cfg.RequestTimeout,
		})

		metrics, err := analyzer.Analyze(ctx, text)
		switch {
		case err != nil:
			// the transcript is still useful
			slog.Warn("analysis failed", "error", err)
		case metrics != nil:
			fmt.Println()
			printMetrics(metrics)
		}
	}

	if c.Save == "" {
		return nil
	}

	return saveTranscript(cfg, text, c.Save)
}

func saveTranscript(cfg *config.Config, text, name string) error {
	db, _, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	s, err := session.NewManager(db).Save(text, name)
	if errors.Is(err, session.ErrDuplicateName) {
		return fmt.Errorf("session %q already exists: %w", name, err)
	}
	if err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}

	slog.Info("saved session", "id", s.ID, "name", s.Name)

	return nil
}

func printMetrics(m *analysis.Metrics) {
	for _, f := range m.Fields() {
		fmt.Printf("%-13s %s\n", f.Label+":", humanize.Comma(int64(f.Value)))
	}
}
