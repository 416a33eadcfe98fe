package editor

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeEditor writes a shell script that appends a line to its argument.
func fakeEditor(t *testing.T, script string) string {
	t.Helper()

	if runtime.GOOS == "windows" {
		t.Skip("shell script editor")
	}

	path := filepath.Join(t.TempDir(), "edit.sh")
	//nolint:gosec // test script must be executable
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"+script+"\n"), 0o755))

	return path
}

func TestCommand(t *testing.T) {
	t.Setenv("VOICESCRIBE_EDITOR", "")
	t.Setenv("EDITOR", "")
	assert.Equal(t, "vi", Command())

	t.Setenv("EDITOR", "nano")
	assert.Equal(t, "nano", Command())

	t.Setenv("VOICESCRIBE_EDITOR", "hx")
	assert.Equal(t, "hx", Command())
}

func TestEdit_ReturnsSavedText(t *testing.T) {
	t.Setenv("VOICESCRIBE_EDITOR", fakeEditor(t, `echo "and then some" >> "$1"`))

	got, err := Edit(context.Background(), "hello world")
	require.NoError(t, err)
	assert.Equal(t, "hello world\nand then some", got)
}

func TestEdit_Unchanged(t *testing.T) {
	t.Setenv("VOICESCRIBE_EDITOR", fakeEditor(t, "exit 0"))

	got, err := Edit(context.Background(), "  keep me  ")
	require.NoError(t, err)
	assert.Equal(t, "keep me", got)
}

func TestEdit_EditorFails(t *testing.T) {
	t.Setenv("VOICESCRIBE_EDITOR", fakeEditor(t, "exit 3"))

	_, err := Edit(context.Background(), "text")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to open editor")
}
