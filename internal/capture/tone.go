package capture

import (
	"context"
	"math"
	"math/rand"
	"sync"
	"time"
)

// Tone is a synthetic source: a sine at Frequency with optional overtones
// and uniform noise. Successive captures continue the waveform without a
// phase jump. The zero value produces silence.
type Tone struct {
	// Frequency is the fundamental in Hz.
	Frequency float64

	// Amplitude scales the fundamental.
	Amplitude float64

	// Harmonics holds amplitudes for 2×, 3×, ... the fundamental.
	Harmonics []float64

	// Noise is the peak amplitude of added uniform noise.
	Noise float64

	// Seed makes the noise reproducible.
	Seed int64

	mu       sync.Mutex
	position int
	rng      *rand.Rand
}

// Capture synthesises duration × sampleRate samples. It never blocks.
func (t *Tone) Capture(ctx context.Context, duration time.Duration, sampleRate float64) ([]float64, error) {
	n, err := BufferLength(duration, sampleRate)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if t.Noise > 0 && t.rng == nil {
		t.rng = rand.New(rand.NewSource(t.Seed))
	}

	out := make([]float64, n)
	step := 2 * math.Pi * t.Frequency / sampleRate
	for i := range out {
		phase := step * float64(t.position+i)
		v := t.Amplitude * math.Sin(phase)
		for h, amp := range t.Harmonics {
			v += amp * math.Sin(float64(h+2)*phase)
		}
		if t.Noise > 0 {
			v += t.Noise * (2*t.rng.Float64() - 1)
		}
		out[i] = v
	}
	t.position += n

	return out, nil
}

// Reset rewinds the waveform and the noise generator.
func (t *Tone) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.position = 0
	t.rng = nil
}
