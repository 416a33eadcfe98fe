package audio_test

import (
	"context"
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/alkime/voicescribe/internal/audio"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRecorder(t *testing.T, format audio.Format, dev *fakeDevice) *audio.Recorder {
	t.Helper()

	rec, err := audio.NewRecorder(audio.RecorderConfig{
		Encoder:   audio.EncoderConfig{Format: format},
		TempDir:   t.TempDir(),
		NewDevice: func(audio.DeviceConfig) audio.Device { return dev },
	})
	require.NoError(t, err)

	return rec
}

func TestNewRecorder_ValidatesConfig(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		config      audio.EncoderConfig
		expectError string
	}{
		{
			name:        "defaults",
			config:      audio.EncoderConfig{},
			expectError: "",
		},
		{
			name:        "negative sample rate",
			config:      audio.EncoderConfig{SampleRate: -1},
			expectError: "sample rate must be positive",
		},
		{
			name:        "stereo",
			config:      audio.EncoderConfig{Channels: 2},
			expectError: "only mono (1 channel) is supported",
		},
		{
			name:        "unknown format",
			config:      audio.EncoderConfig{Format: "ogg"},
			expectError: "unsupported audio format",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			rec, err := audio.NewRecorder(audio.RecorderConfig{Encoder: tt.config})
			if tt.expectError != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.expectError)
				assert.Nil(t, rec)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, audio.FormatMP3, rec.Format())
		})
	}
}

func TestRecorder_StartStopProducesRecording(t *testing.T) {
	t.Parallel()

	dev := &fakeDevice{packets: []audio.DataPacket{pcm(800, 100), pcm(800, -100), pcm(400, 7)}}
	rec := newTestRecorder(t, audio.FormatWAV, dev)
	ctx := context.Background()

	require.NoError(t, rec.Start(ctx))
	assert.True(t, rec.IsRecording())
	assert.Equal(t, audio.StateRecording, rec.State())

	recording, err := rec.Stop(ctx)
	require.NoError(t, err)
	require.NotNil(t, recording)
	t.Cleanup(func() { _ = recording.Release() })

	assert.Equal(t, audio.StateIdle, rec.State())
	assert.True(t, dev.wasDeallocated(), "stop must release the capture device")
	assert.Equal(t, int64(2000*2), rec.BytesCaptured())

	assert.Equal(t, "audio/wav", recording.MIMEType)
	assert.Equal(t, "RIFF", string(recording.Data[:4]))
	// 44-byte header plus every buffered sample, in order.
	assert.Len(t, recording.Data, 44+2000*2)
	assert.True(t, strings.HasPrefix(recording.URL(), "file://"))

	onDisk, err := os.ReadFile(recording.Path())
	require.NoError(t, err)
	assert.Equal(t, recording.Data, onDisk)

	// Levels reflect the latest samples.
	levels := rec.Levels(4)
	assert.Equal(t, []int16{7, 7, 7, 7}, levels)
}

func TestRecorder_MP3Output(t *testing.T) {
	t.Parallel()

	dev := &fakeDevice{packets: []audio.DataPacket{pcm(16000, 1000)}}
	rec := newTestRecorder(t, audio.FormatMP3, dev)
	ctx := context.Background()

	require.NoError(t, rec.Start(ctx))
	recording, err := rec.Stop(ctx)
	require.NoError(t, err)
	t.Cleanup(func() { _ = recording.Release() })

	assert.Equal(t, "audio/mpeg", recording.MIMEType)
	assert.NotEmpty(t, recording.Data)
	assert.Equal(t, ".mp3", recording.Path()[len(recording.Path())-4:])
}

func TestRecorder_PermissionDenied(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		dev  *fakeDevice
	}{
		{name: "capture fails", dev: &fakeDevice{captureErr: errors.New("no microphone")}},
		{name: "start fails", dev: &fakeDevice{startErr: errors.New("access denied")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			rec := newTestRecorder(t, audio.FormatWAV, tt.dev)

			err := rec.Start(context.Background())
			require.ErrorIs(t, err, audio.ErrPermissionDenied)
			assert.Equal(t, audio.StateIdle, rec.State())
		})
	}
}

func TestRecorder_StopWhileIdleIsNoop(t *testing.T) {
	t.Parallel()

	rec := newTestRecorder(t, audio.FormatWAV, &fakeDevice{})

	recording, err := rec.Stop(context.Background())
	assert.NoError(t, err)
	assert.Nil(t, recording)
	assert.Equal(t, audio.StateIdle, rec.State())
}

func TestRecorder_StartTwiceFails(t *testing.T) {
	t.Parallel()

	rec := newTestRecorder(t, audio.FormatWAV, &fakeDevice{packets: []audio.DataPacket{pcm(10, 1)}})
	ctx := context.Background()

	require.NoError(t, rec.Start(ctx))
	assert.ErrorIs(t, rec.Start(ctx), audio.ErrAlreadyRecording)

	recording, err := rec.Stop(ctx)
	require.NoError(t, err)
	_ = recording.Release()
}

func TestRecorder_EmptyCapture(t *testing.T) {
	t.Parallel()

	rec := newTestRecorder(t, audio.FormatWAV, &fakeDevice{})
	ctx := context.Background()

	require.NoError(t, rec.Start(ctx))
	recording, err := rec.Stop(ctx)
	assert.ErrorIs(t, err, audio.ErrEmptyRecording)
	assert.Nil(t, recording)
	assert.Equal(t, audio.StateIdle, rec.State())
}

func TestRecorder_NewCycleDiscardsOldChunks(t *testing.T) {
	t.Parallel()

	dev := &fakeDevice{packets: []audio.DataPacket{pcm(100, 1)}}
	rec := newTestRecorder(t, audio.FormatWAV, dev)
	ctx := context.Background()

	require.NoError(t, rec.Start(ctx))
	first, err := rec.Stop(ctx)
	require.NoError(t, err)
	defer first.Release()

	require.NoError(t, rec.Start(ctx))
	second, err := rec.Stop(ctx)
	require.NoError(t, err)
	defer second.Release()

	assert.Len(t, second.Data, 44+100*2)
	assert.NotEqual(t, first.Path(), second.Path())
}
