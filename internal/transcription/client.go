// Package transcription turns recorded audio into text using a hosted
// speech model.
package transcription

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"mime"
	"path/filepath"
	"strings"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// DefaultModel is the transcription model used when none is configured.
const DefaultModel = "gpt-4o-transcribe"

var (
	ErrTranscriptionFailed = errors.New("transcription failed")
	ErrEmptyAudio          = errors.New("audio is empty")
)

// Config configures a Client.
type Config struct {
	APIKey string
	Model  string
	// BaseURL overrides the API endpoint (tests, proxies).
	BaseURL string
	Timeout time.Duration
}

// Client transcribes audio with the OpenAI audio API. Each call makes exactly
// one request; retries are left to the caller.
type Client struct {
	apiKey string
	model  string
	opts   []option.RequestOption
}

// NewClient creates a new transcription client.
func NewClient(conf Config) *Client {
	model := conf.Model
	if model == "" {
		model = DefaultModel
	}

	opts := []option.RequestOption{
		option.WithAPIKey(conf.APIKey),
		option.WithMaxRetries(0),
	}
	if conf.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(conf.BaseURL))
	}
	if conf.Timeout > 0 {
		opts = append(opts, option.WithRequestTimeout(conf.Timeout))
	}

	return &Client{
		apiKey: conf.APIKey,
		model:  model,
		opts:   opts,
	}
}

// Transcribe sends audio of the given MIME type and returns the transcript in
// lang, verbatim.
func (c *Client) Transcribe(ctx context.Context, audio []byte, mimeType string, lang Language) (string, error) {
	if c.apiKey == "" {
		return "", fmt.Errorf("%w: API key required: set OPENAI_API_KEY or run 'voice config set-key openai <key>'",
			ErrTranscriptionFailed)
	}

	if len(audio) == 0 {
		return "", ErrEmptyAudio
	}

	if lang.Name == "" {
		lang = English
	}

	client := openai.NewClient(c.opts...)

	params := openai.AudioTranscriptionNewParams{
		File:     openai.File(bytes.NewReader(audio), "audio"+extensionFor(mimeType), mimeType),
		Model:    openai.AudioModel(c.model),
		Language: openai.String(lang.Code()),
		Prompt:   openai.String(instructionFor(lang)),
	}

	start := time.Now()
	resp, err := client.Audio.Transcriptions.New(ctx, params)
	if err != nil {
		slog.Warn("transcription request failed", "error", err, "model", c.model)
		return "", fmt.Errorf("%w: %w", ErrTranscriptionFailed, err)
	}

	if strings.TrimSpace(resp.Text) == "" {
		return "", fmt.Errorf("%w: empty transcript returned", ErrTranscriptionFailed)
	}

	slog.Info("transcription complete",
		"model", c.model,
		"language", lang.Code(),
		"audioBytes", len(audio),
		"chars", len(resp.Text),
		"elapsed", time.Since(start))

	return resp.Text, nil
}

func instructionFor(lang Language) string {
	return fmt.Sprintf("Transcribe this audio recording into %s. "+
		"Return only the transcript text, without commentary.", lang.Name)
}

var extensions = map[string]string{
	"audio/mpeg":  ".mp3",
	"audio/mp3":   ".mp3",
	"audio/wav":   ".wav",
	"audio/wave":  ".wav",
	"audio/x-wav": ".wav",
	"audio/webm":  ".webm",
	"audio/ogg":   ".ogg",
	"audio/mp4":   ".m4a",
	"audio/x-m4a": ".m4a",
	"audio/flac":  ".flac",
}

// extensionFor maps a MIME type (parameters allowed) to the file extension
// the API uses to detect the container.
func extensionFor(mimeType string) string {
	mediaType, _, err := mime.ParseMediaType(mimeType)
	if err != nil {
		mediaType = strings.ToLower(strings.TrimSpace(mimeType))
	}

	if ext, ok := extensions[mediaType]; ok {
		return ext
	}

	if exts, err := mime.ExtensionsByType(mediaType); err == nil && len(exts) > 0 {
		return exts[0]
	}

	return ".mp3"
}

var mimeTypes = map[string]string{
	".mp3":  "audio/mpeg",
	".wav":  "audio/wav",
	".webm": "audio/webm",
	".ogg":  "audio/ogg",
	".m4a":  "audio/mp4",
	".mp4":  "audio/mp4",
	".flac": "audio/flac",
}

// MIMETypeFor guesses an audio file's media type from its name.
func MIMETypeFor(filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	if mt, ok := mimeTypes[ext]; ok {
		return mt
	}

	if mt := mime.TypeByExtension(ext); mt != "" {
		return mt
	}

	return "audio/mpeg"
}
