// Package share hands recordings and transcripts to the host system: the
// clipboard for text and the downloads directory as the fallback for files.
package share

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	cb "github.com/atotto/clipboard"
)

var (
	// ErrUnsupported means the host has no native share target for the payload.
	ErrUnsupported = errors.New("share not supported")
	// ErrRejected means a share target refused the payload.
	ErrRejected = errors.New("share rejected")
)

// Clipboard copies text to the system clipboard.
type Clipboard struct {
	write func(string) error
}

// NewClipboard returns a clipboard backed by the system clipboard.
func NewClipboard() *Clipboard {
	return &Clipboard{write: cb.WriteAll}
}

// Copy places text on the clipboard.
func (c *Clipboard) Copy(text string) error {
	if cb.Unsupported {
		return fmt.Errorf("%w: no clipboard utility found", ErrUnsupported)
	}

	if err := c.write(text); err != nil {
		return fmt.Errorf("failed to write clipboard: %w", err)
	}

	return nil
}

// Native is the host's share capability. A terminal host can share text via
// the clipboard but has no share sheet for files.
type Native struct {
	clip *Clipboard
}

// NewNative creates a native sharer on top of clip.
func NewNative(clip *Clipboard) *Native {
	return &Native{clip: clip}
}

// ShareText shares text with an optional title line.
func (n *Native) ShareText(_ context.Context, title, text string) error {
	if strings.TrimSpace(text) == "" {
		return fmt.Errorf("%w: nothing to share", ErrRejected)
	}

	payload := text
	if title != "" {
		payload = title + "\n\n" + text
	}

	return n.clip.Copy(payload)
}

// ShareFile always reports ErrUnsupported; callers fall back to a Downloader.
func (n *Native) ShareFile(_ context.Context, name, mimeType string, _ []byte) error {
	slog.Debug("native file share unavailable", "name", name, "mimeType", mimeType)
	return ErrUnsupported
}

// Downloader saves files into a directory, never overwriting existing ones.
type Downloader struct {
	Dir string
}

// NewDownloader creates a downloader rooted at dir.
func NewDownloader(dir string) *Downloader {
	return &Downloader{Dir: dir}
}

// Download writes data under name and returns the final path. If name is
// taken, "-1", "-2", ... is inserted before the extension.
func (d *Downloader) Download(name string, data []byte) (string, error) {
	name = filepath.Base(name)
	if name == "." || name == string(filepath.Separator) {
		return "", fmt.Errorf("invalid file name %q", name)
	}

	if err := os.MkdirAll(d.Dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create downloads directory: %w", err)
	}

	ext := filepath.Ext(name)
	stem := strings.TrimSuffix(name, ext)

	for i := 0; ; i++ {
		candidate := name
		if i > 0 {
			candidate = fmt.Sprintf("%s-%d%s", stem, i, ext)
		}

		path := filepath.Join(d.Dir, candidate)

		f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
		if errors.Is(err, os.ErrExist) {
			continue
		}
		if err != nil {
			return "", fmt.Errorf("failed to create %s: %w", path, err)
		}

		if _, err := f.Write(data); err != nil {
			f.Close()
			os.Remove(path)
			return "", fmt.Errorf("failed to write %s: %w", path, err)
		}

		if err := f.Close(); err != nil {
			return "", fmt.Errorf("failed to close %s: %w", path, err)
		}

		slog.Info("file downloaded", "path", path, "bytes", len(data))

		return path, nil
	}
}
