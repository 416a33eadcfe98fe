package audio_test

import (
	"context"
	"errors"
	"sync"

	"github.com/alkime/voicescribe/internal/audio"
)

// fakeDevice emits a fixed set of packets when started.
type fakeDevice struct {
	mu          sync.Mutex
	packets     []audio.DataPacket
	captureErr  error
	startErr    error
	dataC       chan audio.DataPacket
	started     bool
	deallocated bool
}

func (f *fakeDevice) EnumerateDevices(context.Context) ([]audio.Info, error) {
	return []audio.Info{{Name: "fake", IsDefault: true}}, nil
}

func (f *fakeDevice) CaptureInto(_ context.Context, dataC chan audio.DataPacket) error {
	if f.captureErr != nil {
		return f.captureErr
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.dataC = dataC

	return nil
}

func (f *fakeDevice) Start(context.Context) error {
	if f.startErr != nil {
		return f.startErr
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if f.dataC == nil {
		return errors.New("not captured")
	}

	f.started = true
	for _, p := range f.packets {
		f.dataC <- p
	}

	return nil
}

func (f *fakeDevice) Stop(context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.started = false

	return nil
}

func (f *fakeDevice) IsStarted() bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.started
}

func (f *fakeDevice) Dropped() int64 { return 0 }

func (f *fakeDevice) Dealloc(context.Context) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deallocated = true
}

func (f *fakeDevice) wasDeallocated() bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.deallocated
}

// pcm returns n S16LE samples with the given value.
func pcm(n int, value int16) audio.DataPacket {
	out := make([]byte, n*2)
	for i := 0; i < n; i++ {
		out[i*2] = byte(uint16(value))
		out[i*2+1] = byte(uint16(value) >> 8)
	}

	return out
}
