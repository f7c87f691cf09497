package capture

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tphakala/go-guitar-tuner/internal/testutil"
)

func TestTone_Length(t *testing.T) {
	tone := &Tone{Frequency: 110, Amplitude: 1}
	got, err := tone.Capture(context.Background(), 2*time.Second, testutil.SampleRate)
	require.NoError(t, err)
	assert.Len(t, got, testutil.Samples)
}

func TestTone_MatchesSine(t *testing.T) {
	tone := &Tone{Frequency: 196, Amplitude: 0.8}
	got, err := tone.Capture(context.Background(), 50*time.Millisecond, testutil.SampleRate)
	require.NoError(t, err)

	want := testutil.SineWithAmplitude(196, 0.8, testutil.SampleRate, len(got))
	assert.InDeltaSlice(t, want, got, testutil.DefaultTolerance)
}

func TestTone_ContinuesPhase(t *testing.T) {
	tone := &Tone{Frequency: 82.41, Amplitude: 1}
	ctx := context.Background()

	first, err := tone.Capture(ctx, 10*time.Millisecond, testutil.SampleRate)
	require.NoError(t, err)
	second, err := tone.Capture(ctx, 10*time.Millisecond, testutil.SampleRate)
	require.NoError(t, err)

	want := testutil.Sine(82.41, testutil.SampleRate, len(first)+len(second))
	assert.InDeltaSlice(t, want, append(first, second...), 1e-9)

	tone.Reset()
	again, err := tone.Capture(ctx, 10*time.Millisecond, testutil.SampleRate)
	require.NoError(t, err)
	assert.Equal(t, first, again)
}

func TestTone_ZeroValueIsSilent(t *testing.T) {
	var tone Tone
	got, err := tone.Capture(context.Background(), 10*time.Millisecond, testutil.SampleRate)
	require.NoError(t, err)
	for _, v := range got {
		require.Zero(t, v)
	}
}

func TestTone_NoiseIsReproducible(t *testing.T) {
	a := &Tone{Noise: 0.1, Seed: 3}
	b := &Tone{Noise: 0.1, Seed: 3}
	ctx := context.Background()

	x, err := a.Capture(ctx, 10*time.Millisecond, testutil.SampleRate)
	require.NoError(t, err)
	y, err := b.Capture(ctx, 10*time.Millisecond, testutil.SampleRate)
	require.NoError(t, err)

	assert.Equal(t, x, y)
	testutil.AssertAllInRange(t, x, -0.1, 0.1)
	assert.Greater(t, RMS(x), 0.0)
}

func TestTone_Harmonics(t *testing.T) {
	tone := &Tone{Frequency: 100, Harmonics: []float64{0.5}}
	got, err := tone.Capture(context.Background(), 10*time.Millisecond, 1000)
	require.NoError(t, err)

	for i, v := range got {
		want := 0.5 * math.Sin(2*2*math.Pi*100*float64(i)/1000)
		require.InDelta(t, want, v, 1e-9, "sample %d", i)
	}
}

func TestTone_InvalidRequest(t *testing.T) {
	tone := &Tone{Frequency: 110, Amplitude: 1}
	_, err := tone.Capture(context.Background(), 0, 44100)
	assert.ErrorIs(t, err, ErrInvalidRequest)

	_, err = tone.Capture(context.Background(), time.Second, 0)
	assert.ErrorIs(t, err, ErrInvalidRequest)
}

func TestTone_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	tone := &Tone{Frequency: 110, Amplitude: 1}
	_, err := tone.Capture(ctx, time.Second, 44100)
	assert.ErrorIs(t, err, context.Canceled)
}
