package capture

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tphakala/go-guitar-tuner/internal/testutil"
)

func writeFixture(t *testing.T, samples []float64, rate, bitDepth int) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "fixture.wav")
	require.NoError(t, WriteWAV(path, samples, rate, bitDepth))
	return path
}

func TestOpenWAV_FileNotFound(t *testing.T) {
	_, err := OpenWAV("/nonexistent/file.wav")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to open input file")
}

func TestOpenWAV_InvalidWAV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "invalid.wav")
	require.NoError(t, os.WriteFile(path, []byte("not a wav file"), 0o644))

	_, err := OpenWAV(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid WAV file")
}

func TestWriteWAV_UnsupportedBitDepth(t *testing.T) {
	err := WriteWAV(filepath.Join(t.TempDir(), "x.wav"), []float64{0}, 44100, 12)
	require.Error(t, err)
}

func TestWriteWAV_InvalidDirectory(t *testing.T) {
	err := WriteWAV("/nonexistent/dir/out.wav", []float64{0}, 44100, 16)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to create output file")
}

func TestWAVRoundTrip(t *testing.T) {
	for _, bitDepth := range []int{16, 24, 32} {
		t.Run(fmt.Sprintf("%dbit", bitDepth), func(t *testing.T) {
			samples := testutil.SineWithAmplitude(110, 0.5, testutil.SampleRate, 4410)
			path := writeFixture(t, samples, int(testutil.SampleRate), bitDepth)

			w, err := OpenWAV(path)
			require.NoError(t, err)
			defer func() { _ = w.Close() }()

			assert.Equal(t, 44100, w.SampleRate())
			assert.Equal(t, 1, w.Channels())
			assert.Equal(t, bitDepth, w.BitDepth())

			got, err := w.Capture(context.Background(), 100*time.Millisecond, testutil.SampleRate)
			require.NoError(t, err)
			require.Len(t, got, len(samples))

			tol := 1.0 / maxValue(bitDepth)
			for i := range samples {
				require.InDelta(t, samples[i], got[i], tol, "sample %d", i)
			}
		})
	}
}

func TestWAVFile_ConsecutiveWindows(t *testing.T) {
	samples := make([]float64, 1000)
	for i := range samples {
		samples[i] = float64(i%100) / 100
	}
	path := writeFixture(t, samples, 1000, 16)

	w, err := OpenWAV(path)
	require.NoError(t, err)
	defer func() { _ = w.Close() }()

	ctx := context.Background()
	first, err := w.Capture(ctx, 400*time.Millisecond, 1000)
	require.NoError(t, err)
	second, err := w.Capture(ctx, 400*time.Millisecond, 1000)
	require.NoError(t, err)

	require.Len(t, first, 400)
	require.Len(t, second, 400)
	assert.InDelta(t, samples[0], first[0], 1e-4)
	assert.InDelta(t, samples[400], second[0], 1e-4)
	assert.InDelta(t, samples[799], second[399], 1e-4)

	// 200 samples remain; a third 400-sample window cannot be served.
	_, err = w.Capture(ctx, 400*time.Millisecond, 1000)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrExhausted)
}

func TestWAVFile_RateMismatch(t *testing.T) {
	path := writeFixture(t, make([]float64, 480), 48000, 16)

	w, err := OpenWAV(path)
	require.NoError(t, err)
	defer func() { _ = w.Close() }()

	_, err = w.Capture(context.Background(), 10*time.Millisecond, 44100)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrRateMismatch)
}

func TestWAVFile_CancelledContext(t *testing.T) {
	path := writeFixture(t, make([]float64, 441), 44100, 16)

	w, err := OpenWAV(path)
	require.NoError(t, err)
	defer func() { _ = w.Close() }()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = w.Capture(ctx, 10*time.Millisecond, 44100)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestWAVFile_StereoDownmix(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stereo.wav")
	f, err := os.Create(path)
	require.NoError(t, err)

	// Left at +half scale, right silent: the mono mix is a quarter scale.
	frames := 100
	data := make([]int, frames*2)
	for i := range frames {
		data[2*i] = 16384
		data[2*i+1] = 0
	}
	enc := wav.NewEncoder(f, 8000, 16, 2, 1)
	require.NoError(t, enc.Write(&audio.IntBuffer{
		Data:           data,
		Format:         &audio.Format{NumChannels: 2, SampleRate: 8000},
		SourceBitDepth: 16,
	}))
	require.NoError(t, enc.Close())
	require.NoError(t, f.Close())

	w, err := OpenWAV(path)
	require.NoError(t, err)
	defer func() { _ = w.Close() }()
	assert.Equal(t, 2, w.Channels())

	got, err := w.Capture(context.Background(), 10*time.Millisecond, 8000)
	require.NoError(t, err)
	require.Len(t, got, 80)
	for _, v := range got {
		assert.InDelta(t, 8192.0/maxInt16, v, 1e-9)
	}
}
