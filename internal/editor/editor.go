// Package editor hands text to the user's preferred editor for review.
package editor

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"strings"
)

// Command returns the editor to launch: $VOICESCRIBE_EDITOR, then $EDITOR,
// then vi.
func Command() string {
	for _, env := range []string{"VOICESCRIBE_EDITOR", "EDITOR"} {
		if v := os.Getenv(env); v != "" {
			return v
		}
	}

	return "vi"
}

// Open opens the specified file in the user's preferred editor and waits for
// it to exit.
func Open(ctx context.Context, filePath string) error {
	editor := Command()

	slog.Debug("opening file in editor", "editor", editor, "path", filePath)

	cmd := exec.CommandContext(ctx, editor, filePath)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		slog.Info("you can manually edit the file", "path", filePath)
		return fmt.Errorf("failed to open editor: %w", err)
	}

	return nil
}

// Edit writes text to a temporary file, opens it in the editor and returns
// the saved contents with surrounding whitespace trimmed.
func Edit(ctx context.Context, text string) (string, error) {
	f, err := os.CreateTemp("", "voicescribe-*.txt")
	if err != nil {
		return "", fmt.Errorf("failed to create temp file: %w", err)
	}
	path := f.Name()
	defer os.Remove(path)

	if _, err := f.WriteString(text + "\n"); err != nil {
		f.Close()
		return "", fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("failed to close temp file: %w", err)
	}

	if err := Open(ctx, path); err != nil {
		return "", err
	}

	edited, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read edited file: %w", err)
	}

	return strings.TrimSpace(string(edited)), nil
}
