//go:build !portaudio

package capture

import (
	"context"
	"fmt"
	"time"
)

// Device is unavailable in builds without the portaudio tag.
type Device struct{}

// OpenDevice always fails; rebuild with -tags portaudio for microphone input.
func OpenDevice() (*Device, error) {
	return nil, fmt.Errorf("%w: built without portaudio support", ErrDeviceUnavailable)
}

// Capture always fails with ErrDeviceUnavailable.
func (d *Device) Capture(context.Context, time.Duration, float64) ([]float64, error) {
	return nil, ErrDeviceUnavailable
}

// Close does nothing.
func (d *Device) Close() error { return nil }
