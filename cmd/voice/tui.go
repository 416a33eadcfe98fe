package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/alkime/voicescribe/internal/analysis"
	"github.com/alkime/voicescribe/internal/app"
	"github.com/alkime/voicescribe/internal/audio"
	"github.com/alkime/voicescribe/internal/config"
	"github.com/alkime/voicescribe/internal/keyring"
	"github.com/alkime/voicescribe/internal/logger"
	"github.com/alkime/voicescribe/internal/session"
	"github.com/alkime/voicescribe/internal/share"
	"github.com/alkime/voicescribe/internal/theme"
	"github.com/alkime/voicescribe/internal/transcription"
	"github.com/alkime/voicescribe/internal/tui"
	"github.com/alkime/voicescribe/pkg/uictl"
	tea "github.com/charmbracelet/bubbletea"
)

// levelSamples is roughly 50ms of audio at 16kHz.
const levelSamples = 800

// TUICmd is the default command that runs the TUI.
type TUICmd struct {
	Language        string `flag:"" short:"l" help:"Target language name or code (default: VOICESCRIBE_LANGUAGE)"`
	Format          string `flag:"" help:"Recording container: mp3 or wav (default: VOICESCRIBE_AUDIO_FORMAT)"`
	OpenAIAPIKey    string `flag:"" env:"OPENAI_API_KEY" help:"OpenAI API key for transcription"`
	AnthropicAPIKey string `flag:"" env:"ANTHROPIC_API_KEY" help:"Anthropic API key for analysis"`
}

func (c *TUICmd) apply(cfg *config.Config) {
	if c.Language != "" {
		cfg.Language = c.Language
	}
	if c.Format != "" {
		cfg.AudioFormat = c.Format
	}
	cfg.OpenAIAPIKey = keyring.Resolve(keyring.OpenAI, firstNonEmpty(c.OpenAIAPIKey, cfg.OpenAIAPIKey))
	cfg.AnthropicAPIKey = keyring.Resolve(keyring.Anthropic, firstNonEmpty(c.AnthropicAPIKey, cfg.AnthropicAPIKey))
}

// Run executes the TUI command.
//
//nolint:funlen // CLI command with multiple setup steps
func (c *TUICmd) Run(g *Globals) error {
	cfg, err := g.env()
	if err != nil {
		return err
	}
	c.apply(cfg)

	lang, err := transcription.ParseLanguage(cfg.Language)
	if err != nil {
		return fmt.Errorf("invalid language %q: %w", cfg.Language, err)
	}

	format, err := audio.ParseFormat(cfg.AudioFormat)
	if err != nil {
		return err
	}

	db, dirs, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	// The TUI owns the terminal, so logs go to a file from here on.
	log, logCloser, err := logger.SetupFile(dirs.LogPath(), cfg)
	if err != nil {
		return err
	}
	defer logCloser.Close()

	if missing := missingKeys(cfg); len(missing) > 0 {
		fmt.Fprintf(os.Stderr, "warning: missing API keys: %s. Set via environment variables or run 'voice config set-key'\n",
			strings.Join(missing, ", "))
	}

	recorder, err := audio.NewRecorder(audio.RecorderConfig{
		Encoder: audio.EncoderConfig{Format: format, SampleRate: cfg.SampleRate},
		TempDir: dirs.Recordings,
	})
	if err != nil {
		return fmt.Errorf("failed to create audio recorder: %w", err)
	}

	clip := share.NewClipboard()

	ctrl, err := app.New(app.Config{
		Recorder: recorder,
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
		Sharer:     share.NewNative(clip),
		Downloader: share.NewDownloader(dirs.Downloads),
		Clipboard:  clip,
		Sessions:   session.NewManager(db),
		Theme:      theme.NewPreference(db, theme.Ambient),
		Language:   lang,
		NoticeTTL:  cfg.NoticeTTL,
		Logger:     log,
	})
	if err != nil {
		return fmt.Errorf("failed to create controller: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	model := tui.New(ctrl, tui.Options{
		Ctx:    ctx,
		Cancel: cancel,
		Levels: uictl.LevelsFunc[int16](func() []int16 {
			return recorder.Levels(levelSamples)
		}),
		Captured: uictl.DialFunc[int64](recorder.BytesCaptured),
		Logger:   log,
	})

	p := tea.NewProgram(model, tea.WithAltScreen())

	// Send blocks until the event loop receives, so never call it inline.
	ctrl.SetOnChange(func() { go p.Send(tui.StateChangedMsg{}) })

	_, runErr := p.Run()

	if err := ctrl.Close(); err != nil {
		slog.Error("failed to release recorder", "error", err)
	}

	if runErr != nil {
		return fmt.Errorf("failed to start TUI: %w", runErr)
	}

	fmt.Println("finished. bye!")

	return nil
}

func missingKeys(cfg *config.Config) []string {
	var missing []string
	if cfg.OpenAIAPIKey == "" {
		missing = append(missing, "openai")
	}
	if cfg.AnthropicAPIKey == "" {
		missing = append(missing, "anthropic")
	}

	return missing
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}

	return ""
}
