package main

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	tuner "github.com/tphakala/go-guitar-tuner"
	"github.com/tphakala/go-guitar-tuner/internal/capture"
)

func TestRun_NoteRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "e2.wav")
	require.NoError(t, run([]string{"-note", "E2", "-harmonics", "0.3,0.1", path}, &bytes.Buffer{}))

	src, err := capture.OpenWAV(path)
	require.NoError(t, err)
	defer func() { _ = src.Close() }()

	assert.Equal(t, 44100, src.SampleRate())
	assert.Equal(t, 1, src.Channels())
	assert.Equal(t, 16, src.BitDepth())

	samples, err := src.Capture(context.Background(), 2*time.Second, 44100)
	require.NoError(t, err)

	result, err := tuner.Detect(samples, 44100, nil)
	require.NoError(t, err)
	assert.Equal(t, "E2", result.Note)
	assert.InDelta(t, 0, result.Deviation, 0.5)
}

func TestRun_Frequency(t *testing.T) {
	path := filepath.Join(t.TempDir(), "flat.wav")
	args := []string{"-freq", "250", "-rate", "8000", "-duration", "1s", "-bits", "24", path}
	require.NoError(t, run(args, &bytes.Buffer{}))

	src, err := capture.OpenWAV(path)
	require.NoError(t, err)
	defer func() { _ = src.Close() }()

	assert.Equal(t, 8000, src.SampleRate())
	assert.Equal(t, 24, src.BitDepth())

	samples, err := src.Capture(context.Background(), time.Second, 8000)
	require.NoError(t, err)
	result, err := tuner.Detect(samples, 8000, nil)
	require.NoError(t, err)
	assert.Equal(t, "B3", result.Note)
	assert.InDelta(t, 3.06, result.Deviation, 1e-9)
}

func TestRun_Errors(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "x.wav")

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"no output", []string{"-note", "A2"}, "insufficient arguments"},
		{"no note", []string{out}, "one of -note or -freq"},
		{"unknown note", []string{"-note", "C9", out}, "unknown note"},
		{"negative freq", []string{"-freq", "-5", out}, "must be positive"},
		{"bad harmonics", []string{"-note", "A2", "-harmonics", "a,b", out}, "invalid harmonic"},
		{"bad bit depth", []string{"-note", "A2", "-bits", "12", out}, "unsupported bit depth"},
		{"bad duration", []string{"-note", "A2", "-duration", "0s", out}, "invalid capture request"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := run(tt.args, &bytes.Buffer{})
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestResolveFrequency_CustomTable(t *testing.T) {
	hz, err := resolveFrequency(0, "D2", "D2=73.42,A2=110")
	require.NoError(t, err)
	assert.Equal(t, 73.42, hz)

	hz, err = resolveFrequency(99, "D2", "")
	require.NoError(t, err)
	assert.Equal(t, 99.0, hz)
}

func TestParseHarmonics(t *testing.T) {
	h, err := parseHarmonics(" 0.5, 0.25 ")
	require.NoError(t, err)
	assert.Equal(t, []float64{0.5, 0.25}, h)

	h, err = parseHarmonics("")
	require.NoError(t, err)
	assert.Nil(t, h)
}
