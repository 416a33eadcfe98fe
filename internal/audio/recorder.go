// Package audio captures microphone audio and finalizes it into playable
// recordings.
package audio

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"sync/atomic"

	"github.com/alkime/voicescribe/pkg/channels"
	"github.com/gen2brain/malgo"
)

// Sentinel errors for recorder state and capture failures.
var (
	ErrPermissionDenied = errors.New("microphone access denied or unavailable")
	ErrAlreadyRecording = errors.New("recording already in progress")
	ErrEmptyRecording   = errors.New("no audio was captured")
)

// State is the recorder lifecycle state.
type State int

const (
	StateIdle State = iota
	StateRecording
	StateFinalizing
)

func (s State) String() string {
	switch s {
	case StateRecording:
		return "recording"
	case StateFinalizing:
		return "finalizing"
	default:
		return "idle"
	}
}

// levelWindow is how many recent samples are kept for level meters.
const levelWindow = DefaultSampleRate

// RecorderConfig configures a Recorder.
type RecorderConfig struct {
	Encoder EncoderConfig
	// TempDir holds playback files. Empty means os.TempDir().
	TempDir string
	// NewDevice allocates a capture device for each recording. Nil means malgo.
	NewDevice func(DeviceConfig) Device
}

// Recorder buffers captured audio between Start and Stop and encodes it into
// a single Recording.
type Recorder struct {
	conf      EncoderConfig
	tempDir   string
	newDevice func(DeviceConfig) Device

	mu    sync.Mutex
	state State
	dev   Device
	dataC chan DataPacket
	stopC chan struct{}
	wg    sync.WaitGroup

	chunkMu sync.Mutex
	chunks  [][]byte

	captured atomic.Int64
	levels   *RingBuffer[int16]
}

// NewRecorder validates conf and returns an idle Recorder.
func NewRecorder(conf RecorderConfig) (*Recorder, error) {
	enc := conf.Encoder.WithDefaults()
	if err := enc.Validate(); err != nil {
		return nil, fmt.Errorf("invalid encoder config: %w", err)
	}

	newDevice := conf.NewDevice
	if newDevice == nil {
		newDevice = func(dc DeviceConfig) Device { return NewDevice(&dc) }
	}

	return &Recorder{
		conf:      enc,
		tempDir:   conf.TempDir,
		newDevice: newDevice,
		levels:    NewRingBuffer[int16](levelWindow),
	}, nil
}

// Format returns the container recordings are finalized into.
func (r *Recorder) Format() Format {
	return r.conf.Format
}

// State returns the current lifecycle state.
func (r *Recorder) State() State {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.state
}

// IsRecording reports whether capture is in progress.
func (r *Recorder) IsRecording() bool {
	return r.State() == StateRecording
}

// BytesCaptured returns the PCM bytes buffered by the current recording.
func (r *Recorder) BytesCaptured() int64 {
	return r.captured.Load()
}

// Levels returns up to n of the most recently captured samples.
func (r *Recorder) Levels(n int) []int16 {
	return r.levels.Recent(n)
}

// Start acquires the microphone and begins buffering audio. If the device
// cannot be acquired it returns ErrPermissionDenied and the recorder stays idle.
func (r *Recorder) Start(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.state != StateIdle {
		return ErrAlreadyRecording
	}

	dev := r.newDevice(DeviceConfig{
		Format:          malgo.FormatS16,
		CaptureChannels: r.conf.Channels,
		SampleRate:      r.conf.SampleRate,
	})
	dataC := make(chan DataPacket, 256)

	if err := dev.CaptureInto(ctx, dataC); err != nil {
		return fmt.Errorf("%w: %w", ErrPermissionDenied, err)
	}

	if err := dev.Start(ctx); err != nil {
		dev.Dealloc(ctx)
		return fmt.Errorf("%w: %w", ErrPermissionDenied, err)
	}

	r.resetBuffers()
	r.dev = dev
	r.dataC = dataC
	r.stopC = make(chan struct{})
	r.state = StateRecording

	stopC := r.stopC
	r.wg.Go(func() {
		for {
			select {
			case packet := <-dataC:
				r.appendChunk(packet)
			case <-stopC:
				return
			}
		}
	})

	slog.Info("recording started",
		"sampleRate", r.conf.SampleRate,
		"channels", r.conf.Channels,
		"format", r.conf.Format)

	return nil
}

// Stop ends capture, releases the device, and encodes everything buffered
// into one Recording. Calling Stop while idle is a no-op returning nil.
func (r *Recorder) Stop(ctx context.Context) (*Recording, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.state != StateRecording {
		return nil, nil
	}
	r.state = StateFinalizing
	defer func() { r.state = StateIdle }()

	// Stop blocks until in-flight callbacks have delivered their packets.
	if err := r.dev.Stop(ctx); err != nil {
		slog.Warn("failed to stop audio device", "error", err)
	}

	close(r.stopC)
	r.wg.Wait()
	channels.Drain(r.dataC, r.appendChunk)

	if dropped := r.dev.Dropped(); dropped > 0 {
		slog.Warn("audio packets dropped during capture", "dropped", dropped)
	}

	r.dev.Dealloc(ctx)
	r.dev = nil
	r.dataC = nil

	pcm := r.takeChunks()

	slog.Info("recording stopped", "bytes", len(pcm))

	if len(pcm) == 0 {
		return nil, ErrEmptyRecording
	}

	rec, err := newRecording(r.tempDir, r.conf.Format, func(f *os.File) error {
		return Encode(r.conf, pcm, f)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to finalize recording: %w", err)
	}

	return rec, nil
}

func (r *Recorder) appendChunk(packet DataPacket) {
	if len(packet) == 0 {
		return
	}

	r.chunkMu.Lock()
	r.chunks = append(r.chunks, packet)
	r.chunkMu.Unlock()

	r.captured.Add(int64(len(packet)))
	r.levels.Write(BytesToInt16(packet))
}

// takeChunks concatenates the buffered chunks in arrival order and empties
// the buffer.
func (r *Recorder) takeChunks() []byte {
	r.chunkMu.Lock()
	defer r.chunkMu.Unlock()

	size := 0
	for _, c := range r.chunks {
		size += len(c)
	}

	pcm := make([]byte, 0, size)
	for _, c := range r.chunks {
		pcm = append(pcm, c...)
	}
	r.chunks = nil

	return pcm
}

func (r *Recorder) resetBuffers() {
	r.chunkMu.Lock()
	r.chunks = nil
	r.chunkMu.Unlock()

	r.captured.Store(0)
	r.levels.Reset()
}
