// Package capture provides sample sources for tuning rounds: WAV files,
// synthetic tones and, with the portaudio build tag, the default input
// device.
//
// Every source implements
//
//	Capture(ctx context.Context, duration time.Duration, sampleRate float64) ([]float64, error)
//
// and returns exactly duration × sampleRate mono samples in [-1, 1], or an
// error.
package capture

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/tphakala/simd/f64"
)

// Capture errors.
var (
	// ErrDeviceUnavailable indicates that no input device could be opened.
	ErrDeviceUnavailable = errors.New("audio input device unavailable")

	// ErrRateMismatch indicates that the source cannot deliver the requested
	// sample rate.
	ErrRateMismatch = errors.New("sample rate mismatch")

	// ErrExhausted indicates that the source has fewer samples left than a
	// round needs.
	ErrExhausted = errors.New("audio source exhausted")

	// ErrInvalidRequest indicates a non-positive duration or sample rate.
	ErrInvalidRequest = errors.New("invalid capture request")
)

// BufferLength returns the number of samples in one capture,
// duration × sampleRate truncated to an integer.
func BufferLength(duration time.Duration, sampleRate float64) (int, error) {
	if duration <= 0 || !(sampleRate > 0) || math.IsInf(sampleRate, 0) {
		return 0, fmt.Errorf("%w: duration %v, sample rate %v", ErrInvalidRequest, duration, sampleRate)
	}
	n := int(duration.Seconds() * sampleRate)
	if n < 1 {
		return 0, fmt.Errorf("%w: %v at %v Hz yields no samples", ErrInvalidRequest, duration, sampleRate)
	}
	return n, nil
}

// RMS returns the root-mean-square level of samples.
func RMS(samples []float64) float64 {
	if len(samples) == 0 {
		return 0
	}
	return math.Sqrt(f64.DotProduct(samples, samples) / float64(len(samples)))
}

// maxValue returns the full-scale magnitude of a signed PCM sample.
func maxValue(bitDepth int) float64 {
	switch bitDepth {
	case bitsPerSample16:
		return maxInt16
	case bitsPerSample24:
		return maxInt24
	case bitsPerSample32:
		return maxInt32
	default:
		return maxInt16
	}
}

// downmixInto averages interleaved PCM frames into dst and scales the
// result to [-1, 1]. dst must hold at least frames samples.
func downmixInto(dst []float64, data []int, channels, frames, bitDepth int) {
	if channels == monoChannels {
		for i := range frames {
			dst[i] = float64(data[i])
		}
	} else {
		for i := range frames {
			base := i * channels
			var sum int
			for ch := range channels {
				sum += data[base+ch]
			}
			dst[i] = float64(sum) / float64(channels)
		}
	}

	out := dst[:frames]
	f64.Scale(out, out, 1/maxValue(bitDepth))
}
