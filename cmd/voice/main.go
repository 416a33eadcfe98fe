package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"
	"github.com/alkime/voicescribe/internal/audio"
	"github.com/alkime/voicescribe/internal/config"
	"github.com/alkime/voicescribe/internal/logger"
	"github.com/alkime/voicescribe/internal/store"
	"github.com/alkime/voicescribe/internal/workdir"
)

// CLI defines the voice command structure.
type CLI struct {
	// Default TUI command (runs when no subcommand given)
	TUI TUICmd `cmd:"" default:"withargs" help:"Launch terminal UI for recording and transcribing"`

	// Subcommands
	Transcribe TranscribeCmd `cmd:"" help:"Transcribe an audio file"`
	Sessions   SessionsCmd   `cmd:"" help:"Manage saved sessions"`
	Theme      ThemeCmd      `cmd:"" help:"Show or change the color theme"`
	Devices    DevicesCmd    `cmd:"" help:"List available audio devices"`
	Config     ConfigCmd     `cmd:"" help:"Manage configuration"`

	DataDir string `flag:"" env:"VOICESCRIBE_DATA_DIR" help:"Data directory (default: ~/Documents/Alkime/VoiceScribe)"`
}

// Globals is bound into every command's Run.
type Globals struct {
	DataDir string
}

// env loads configuration and applies global overrides.
func (g *Globals) env() (*config.Config, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	if g.DataDir != "" {
		cfg.DataDir = g.DataDir
	}

	if cfg.LogLevel == "debug" {
		logger.SetupText(os.Stderr, slog.LevelDebug)
	}

	return cfg, nil
}

// openStore prepares the data directories and opens the database.
func openStore(cfg *config.Config) (*store.SQLite, workdir.Dirs, error) {
	dirs, err := workdir.Prep(cfg.DataDir)
	if err != nil {
		return nil, workdir.Dirs{}, fmt.Errorf("failed to prepare data directory: %w", err)
	}

	db, err := store.OpenSQLite(dirs.DBPath())
	if err != nil {
		return nil, workdir.Dirs{}, fmt.Errorf("failed to open database: %w", err)
	}

	return db, dirs, nil
}

// DevicesCmd lists available audio devices.
type DevicesCmd struct{}

// Run executes the devices command.
func (dcmd *DevicesCmd) Run() error {
	slog.Info("Enumerating audio devices...")

	adev := audio.NewDevice(nil)
	devices, err := adev.EnumerateDevices(context.Background())
	if err != nil {
		return fmt.Errorf("failed to enumerate audio devices: %w", err)
	}

	for _, dev := range devices {
		slog.Info("Audio Device",
			"name", dev.Name,
			"isDefault", dev.IsDefault,
			"formatCount", dev.FormatCount,
			"formats", dev.Formats,
		)
	}

	return nil
}

func main() {
	// Set up text-based logger for CLI output; the TUI swaps in a file logger.
	logger.SetupText(os.Stderr, slog.LevelInfo)

	cli := &CLI{} //nolint:exhaustruct // Kong fills in command fields
	ctx := kong.Parse(cli,
		kong.Name("voice"),
		kong.Description("Record, transcribe and analyze voice notes."),
		kong.UsageOnError(),
	)
	err := ctx.Run(&Globals{DataDir: cli.DataDir})
	ctx.FatalIfErrorf(err)
	os.Exit(0)
}
