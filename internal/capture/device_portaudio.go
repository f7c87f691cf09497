//go:build portaudio

package capture

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/gordonklaus/portaudio"
)

// Device records from the default input device through PortAudio.
type Device struct {
	mu sync.Mutex
}

// OpenDevice initialises PortAudio. Call Close when done.
func OpenDevice() (*Device, error) {
	if err := portaudio.Initialize(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDeviceUnavailable, err)
	}
	if _, err := portaudio.DefaultInputDevice(); err != nil {
		_ = portaudio.Terminate()
		return nil, fmt.Errorf("%w: %w", ErrDeviceUnavailable, err)
	}
	return &Device{}, nil
}

// Capture opens a mono input stream at sampleRate, records
// duration × sampleRate samples and closes the stream again.
// ctx is checked between host buffers.
func (d *Device) Capture(ctx context.Context, duration time.Duration, sampleRate float64) ([]float64, error) {
	n, err := BufferLength(duration, sampleRate)
	if err != nil {
		return nil, err
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	in := make([]float32, deviceFramesPerBuffer)
	stream, err := portaudio.OpenDefaultStream(monoChannels, 0, sampleRate, len(in), in)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDeviceUnavailable, err)
	}
	defer func() { _ = stream.Close() }()

	if err := stream.Start(); err != nil {
		return nil, fmt.Errorf("failed to start input stream: %w", err)
	}
	defer func() { _ = stream.Stop() }()

	out := make([]float64, 0, n)
	for len(out) < n {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := stream.Read(); err != nil {
			return nil, fmt.Errorf("failed to read input stream: %w", err)
		}
		take := min(n-len(out), len(in))
		for _, v := range in[:take] {
			out = append(out, float64(v))
		}
	}

	return out, nil
}

// Close releases PortAudio.
func (d *Device) Close() error {
	return portaudio.Terminate()
}
