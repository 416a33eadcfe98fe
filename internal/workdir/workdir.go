// Package workdir locates the application's data directory on disk.
package workdir

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	// DBFile is the SQLite database holding sessions and preferences.
	DBFile = "voicescribe.db"
	// LogFile receives logs while the terminal UI owns the screen.
	LogFile = "voice.log"
)

// Root returns the base directory for all application data.
// The path is expanded at runtime to resolve to:
//
//	$HOME/Documents/Alkime/VoiceScribe
//
// A non-empty override (VOICESCRIBE_DATA_DIR) replaces it.
func Root(override string) (string, error) {
	if override != "" {
		return override, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}
	return filepath.Join(home, "Documents", "Alkime", "VoiceScribe"), nil
}

// Dirs holds the resolved locations under the data root.
type Dirs struct {
	Root       string
	Recordings string
	Downloads  string
}

// DBPath returns the database file path.
func (d Dirs) DBPath() string {
	return filepath.Join(d.Root, DBFile)
}

// LogPath returns the log file path.
func (d Dirs) LogPath() string {
	return filepath.Join(d.Root, LogFile)
}

// Resolve computes the data directories without creating them.
func Resolve(override string) (Dirs, error) {
	root, err := Root(override)
	if err != nil {
		return Dirs{}, err
	}

	return Dirs{
		Root:       root,
		Recordings: filepath.Join(root, "recordings"),
		Downloads:  filepath.Join(root, "downloads"),
	}, nil
}

// Prep resolves the data directories and ensures they exist.
func Prep(override string) (Dirs, error) {
	dirs, err := Resolve(override)
	if err != nil {
		return Dirs{}, err
	}

	for _, dir := range []string{dirs.Root, dirs.Recordings, dirs.Downloads} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return Dirs{}, fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	return dirs, nil
}
