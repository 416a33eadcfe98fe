package audio

import (
	"fmt"
	"io"
	"log/slog"

	mp3encoder "github.com/braheezy/shine-mp3/pkg/mp3"
	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// Encode writes S16LE pcm to w in the configured container format.
func Encode(conf EncoderConfig, pcm []byte, w io.WriteSeeker) error {
	if err := conf.Validate(); err != nil {
		return fmt.Errorf("invalid encoder config: %w", err)
	}

	samples := BytesToInt16(pcm)

	slog.Debug("encoding recording",
		"format", conf.Format,
		"samples", len(samples),
		"sampleRate", conf.SampleRate,
		"channels", conf.Channels)

	switch conf.Format {
	case FormatWAV:
		return encodeWAV(conf, samples, w)
	default:
		return encodeMP3(conf, samples, w)
	}
}

func encodeMP3(conf EncoderConfig, mono []int16, w io.Writer) error {
	// shine-mp3 mis-steps through mono input, so feed it L=R stereo.
	stereo := make([]int16, len(mono)*2)
	for i, s := range mono {
		stereo[i*2] = s
		stereo[i*2+1] = s
	}

	enc := mp3encoder.NewEncoder(conf.SampleRate, 2)
	if err := enc.Write(w, stereo); err != nil {
		return fmt.Errorf("failed to encode MP3: %w", err)
	}

	return nil
}

func encodeWAV(conf EncoderConfig, samples []int16, w io.WriteSeeker) error {
	data := make([]int, len(samples))
	for i, s := range samples {
		data[i] = int(s)
	}

	buf := &goaudio.IntBuffer{
		Format: &goaudio.Format{
			NumChannels: conf.Channels,
			SampleRate:  conf.SampleRate,
		},
		Data:           data,
		SourceBitDepth: 16,
	}

	enc := wav.NewEncoder(w, conf.SampleRate, 16, conf.Channels, 1)
	if err := enc.Write(buf); err != nil {
		return fmt.Errorf("failed to encode WAV: %w", err)
	}

	// Close backfills the RIFF header sizes.
	if err := enc.Close(); err != nil {
		return fmt.Errorf("failed to finalize WAV: %w", err)
	}

	return nil
}
