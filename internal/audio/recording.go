package audio

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// Recording is a finalized audio object. Its playback handle is a file on
// disk that lives until Release is called.
type Recording struct {
	MIMEType  string
	Data      []byte
	CreatedAt time.Time

	path     string
	mu       sync.Mutex
	released bool
}

// newRecording writes the encoded audio produced by encode into a fresh temp
// file in dir and returns a Recording owning that file.
func newRecording(dir string, format Format, encode func(f *os.File) error) (*Recording, error) {
	f, err := os.CreateTemp(dir, "recording-*"+format.Ext())
	if err != nil {
		return nil, fmt.Errorf("failed to create recording file: %w", err)
	}

	path := f.Name()
	cleanup := func() {
		_ = f.Close()
		_ = os.Remove(path)
	}

	if err := encode(f); err != nil {
		cleanup()
		return nil, err
	}

	if err := f.Close(); err != nil {
		_ = os.Remove(path)
		return nil, fmt.Errorf("failed to close recording file: %w", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		_ = os.Remove(path)
		return nil, fmt.Errorf("failed to read back recording: %w", err)
	}

	return &Recording{
		MIMEType:  format.MIMEType(),
		Data:      data,
		CreatedAt: time.Now(),
		path:      path,
	}, nil
}

// NewRecording wraps already-encoded audio in a Recording that owns a
// playback file in dir.
func NewRecording(dir string, format Format, data []byte) (*Recording, error) {
	return newRecording(dir, format, func(f *os.File) error {
		if _, err := f.Write(data); err != nil {
			return fmt.Errorf("failed to write recording file: %w", err)
		}

		return nil
	})
}

// Path returns the playback file path.
func (r *Recording) Path() string {
	if r == nil {
		return ""
	}

	return r.path
}

// URL returns a file:// URL for playback.
func (r *Recording) URL() string {
	if r == nil || r.path == "" {
		return ""
	}

	return (&url.URL{Scheme: "file", Path: filepath.ToSlash(r.path)}).String()
}

// Size returns the encoded size in bytes.
func (r *Recording) Size() int {
	if r == nil {
		return 0
	}

	return len(r.Data)
}

// Filename returns a download-friendly name for the recording.
func (r *Recording) Filename() string {
	ext := filepath.Ext(r.Path())
	if ext == "" {
		ext = FormatMP3.Ext()
	}

	return "recording-" + r.CreatedAt.Format("20060102-150405") + ext
}

// Released reports whether the playback handle has been released.
func (r *Recording) Released() bool {
	if r == nil {
		return true
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	return r.released
}

// Release removes the playback file. It is safe to call more than once and
// on a nil Recording.
func (r *Recording) Release() error {
	if r == nil {
		return nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.released {
		return nil
	}
	r.released = true

	if r.path == "" {
		return nil
	}

	if err := os.Remove(r.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to remove recording file %s: %w", r.path, err)
	}

	return nil
}
