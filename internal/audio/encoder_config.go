package audio

import (
	"errors"
	"fmt"
	"strings"
)

const (
	// DefaultSampleRate is 16kHz, the native rate of most speech models.
	DefaultSampleRate = 16_000
	// DefaultChannels is mono.
	DefaultChannels = 1
	// DefaultFormat is the container recordings are finalized into.
	DefaultFormat = FormatMP3
)

// Format is the container a finished recording is encoded into.
type Format string

const (
	FormatMP3 Format = "mp3"
	FormatWAV Format = "wav"
)

// ParseFormat converts s into a Format.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatMP3, FormatWAV:
		return f, nil
	default:
		return "", fmt.Errorf("unsupported audio format %q: must be 'mp3' or 'wav'", s)
	}
}

// MIMEType returns the media type of recordings in this format.
func (f Format) MIMEType() string {
	switch f {
	case FormatWAV:
		return "audio/wav"
	default:
		return "audio/mpeg"
	}
}

// Ext returns the file extension, including the dot.
func (f Format) Ext() string {
	return "." + string(f)
}

// EncoderConfig configures how captured PCM is finalized.
type EncoderConfig struct {
	// Format is the output container (default: mp3).
	Format Format

	// SampleRate is the capture rate in Hz (default: 16000).
	SampleRate int

	// Channels is the number of capture channels (default: 1).
	// MP3 output duplicates mono into stereo to work around a shine-mp3 mono bug.
	Channels int
}

// Validate returns an error if the config is invalid.
func (c EncoderConfig) Validate() error {
	if _, err := ParseFormat(string(c.Format)); err != nil {
		return err
	}

	if c.SampleRate <= 0 {
		return errors.New("sample rate must be positive")
	}

	if c.Channels != 1 {
		return errors.New("only mono (1 channel) is supported")
	}

	return nil
}

// WithDefaults returns a config with default values applied to zero fields.
func (c EncoderConfig) WithDefaults() EncoderConfig {
	if c.Format == "" {
		c.Format = DefaultFormat
	}

	if c.SampleRate == 0 {
		c.SampleRate = DefaultSampleRate
	}

	if c.Channels == 0 {
		c.Channels = DefaultChannels
	}

	return c
}
