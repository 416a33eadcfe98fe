package audio

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"

	"github.com/alkime/voicescribe/pkg/channels"
	"github.com/alkime/voicescribe/pkg/collections"
	"github.com/gen2brain/malgo"
)

// DataPacket is one chunk of raw S16LE samples delivered by the capture device.
type DataPacket = []byte

// DeviceConfig configures a capture device.
type DeviceConfig struct {
	Format          malgo.FormatType
	CaptureChannels int
	SampleRate      int
}

// Device is the platform capture API.
type Device interface {
	// EnumerateDevices lists available capture devices.
	// It ignores any device configuration passed in.
	EnumerateDevices(ctx context.Context) ([]Info, error)

	// CaptureInto acquires the underlying device. Once started, packets of
	// sampled bytes are written into dataC in arrival order.
	CaptureInto(ctx context.Context, dataC chan DataPacket) error

	// Start starts the audio device.
	Start(ctx context.Context) error
	// Stop stops the audio device, flushing pending callbacks.
	// If the underlying device has already been deallocated this is a no-op.
	Stop(ctx context.Context) error

	// IsStarted returns whether the audio device is currently started.
	IsStarted() bool

	// Dropped returns the number of packets discarded because dataC was full.
	Dropped() int64

	// Dealloc releases the underlying audio device.
	Dealloc(ctx context.Context)
}

type device struct {
	conf *DeviceConfig

	mgCtx    *malgo.AllocatedContext
	mgDevice *malgo.Device
	dropped  atomic.Int64
}

// NewDevice returns a malgo-backed capture device.
func NewDevice(conf *DeviceConfig) Device {
	return &device{conf: conf}
}

func (d *device) EnumerateDevices(ctx context.Context) ([]Info, error) {
	devCtx, err := malgo.InitContext(nil, malgo.ContextConfig{}, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize malgo context: %w", err)
	}
	defer uninitializeContext(devCtx)

	captureDevices, err := devCtx.Devices(malgo.Capture)
	if err != nil {
		return nil, fmt.Errorf("failed to get capture devices: %w", err)
	}

	return collections.Apply(captureDevices, malgoDeviceInfoToDeviceInfo), nil
}

func (d *device) CaptureInto(ctx context.Context, dataC chan DataPacket) error {
	if dataC == nil {
		return errors.New("data channel is nil. unable to allocate device")
	}

	if d.conf == nil {
		return errors.New("device config is nil. unable to allocate device")
	}

	mgCtx, err := malgo.InitContext(nil, malgo.ContextConfig{}, nil)
	if err != nil {
		return fmt.Errorf("failed to initialize malgo context: %w", err)
	}

	devCnf := malgo.DefaultDeviceConfig(malgo.Capture)
	devCnf.Capture.Format = d.conf.Format
	devCnf.Capture.Channels = uint32(d.conf.CaptureChannels)
	devCnf.SampleRate = uint32(d.conf.SampleRate)

	callbacks := malgo.DeviceCallbacks{
		Data: func(_, samples []byte, _ uint32) {
			// miniaudio reuses the sample buffer once the callback returns.
			if err := channels.SendNonBlock(dataC, bytes.Clone(samples)); err != nil {
				d.dropped.Add(1)
			}
		},
	}

	mgDevice, err := malgo.InitDevice(mgCtx.Context, devCnf, callbacks)
	if err != nil {
		uninitializeContext(mgCtx)
		return fmt.Errorf("failed to initialize malgo capture device: %w", err)
	}

	d.mgCtx = mgCtx
	d.mgDevice = mgDevice
	d.dropped.Store(0)

	return nil
}

func (d *device) Start(ctx context.Context) error {
	if d.mgDevice == nil {
		return errors.New("device nil. have you allocated it with CaptureInto()?")
	}

	if d.mgDevice.IsStarted() {
		return nil
	}

	if err := d.mgDevice.Start(); err != nil {
		return fmt.Errorf("failed to start malgo device: %w", err)
	}

	return nil
}

func (d *device) Stop(ctx context.Context) error {
	if d.mgDevice == nil {
		return nil
	}

	if err := d.mgDevice.Stop(); err != nil {
		return fmt.Errorf("failed to stop malgo device: %w", err)
	}

	return nil
}

func (d *device) IsStarted() bool {
	if d.mgDevice == nil {
		return false
	}

	return d.mgDevice.IsStarted()
}

func (d *device) Dropped() int64 {
	return d.dropped.Load()
}

func (d *device) Dealloc(ctx context.Context) {
	if d.mgDevice == nil {
		return
	}

	d.mgDevice.Uninit()
	uninitializeContext(d.mgCtx)
	d.mgDevice = nil
	d.mgCtx = nil
}

// Info describes a capture device.
type Info struct {
	Name        string
	IsDefault   bool
	FormatCount int
	Formats     []string
}

func malgoDeviceInfoToDeviceInfo(mdi malgo.DeviceInfo) Info {
	formats := make([]string, len(mdi.Formats))
	for i, mf := range mdi.Formats {
		formats[i] = fmt.Sprintf("(SampleSizeBytes: %d, Channels: %d, SampleRate: %d)",
			malgo.SampleSizeInBytes(mf.Format),
			mf.Channels, mf.SampleRate)
	}
	return Info{
		Name:        mdi.Name(),
		IsDefault:   mdi.IsDefault != 0,
		FormatCount: int(mdi.FormatCount),
		Formats:     formats,
	}
}

func uninitializeContext(deviceCtx *malgo.AllocatedContext) {
	if deviceCtx == nil {
		return
	}

	if err := deviceCtx.Uninit(); err != nil {
		slog.Error("failed to uninitialize malgo context", "error", err)
	}
	deviceCtx.Free()
}
