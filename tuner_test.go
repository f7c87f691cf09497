package tuner

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, 44100.0, cfg.SampleRate)
	assert.Equal(t, 2*time.Second, cfg.Duration)
	assert.Equal(t, WindowRectangular, cfg.Window)
	assert.Zero(t, cfg.CaptureTimeout)
	assert.Equal(t, 88200, cfg.BufferLength())
	assert.Equal(t, StandardTuning().Notes(), cfg.Notes.Notes())
}

func TestConfig_BufferLengthTruncates(t *testing.T) {
	cfg := &Config{SampleRate: 44100, Duration: 1500 * time.Microsecond}
	assert.Equal(t, 66, cfg.BufferLength(), "66.15 samples truncate to 66")

	cfg = &Config{SampleRate: 8000, Duration: 100 * time.Microsecond}
	assert.Equal(t, 0, cfg.BufferLength())
}

func TestConfig_Validate(t *testing.T) {
	empty := &NoteTable{}

	tests := []struct {
		name   string
		modify func(*Config)
	}{
		{"zero sample rate", func(c *Config) { c.SampleRate = 0 }},
		{"negative sample rate", func(c *Config) { c.SampleRate = -44100 }},
		{"NaN sample rate", func(c *Config) { c.SampleRate = math.NaN() }},
		{"infinite sample rate", func(c *Config) { c.SampleRate = math.Inf(1) }},
		{"excessive sample rate", func(c *Config) { c.SampleRate = 1e7 }},
		{"zero duration", func(c *Config) { c.Duration = 0 }},
		{"negative duration", func(c *Config) { c.Duration = -time.Second }},
		{"duration shorter than a sample", func(c *Config) { c.Duration = time.Microsecond }},
		{"empty note table", func(c *Config) { c.Notes = empty }},
		{"negative timeout", func(c *Config) { c.CaptureTimeout = -time.Second }},
		{"unknown window", func(c *Config) { c.Window = Window(99) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidConfig)
		})
	}
}

func TestConfig_ValidateAccepts(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
	}{
		{"nil notes", func(c *Config) { c.Notes = nil }},
		{"short buffer", func(c *Config) { c.SampleRate = 8000; c.Duration = time.Millisecond }},
		{"hann window", func(c *Config) { c.Window = WindowHann }},
		{"timeout", func(c *Config) { c.CaptureTimeout = 3 * time.Second }},
		{"high rate", func(c *Config) { c.SampleRate = 192000 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(cfg)
			assert.NoError(t, cfg.Validate())
		})
	}
}

func TestErrorsAreDistinct(t *testing.T) {
	assert.NotErrorIs(t, ErrCapture, ErrInvalidInput)
	assert.NotErrorIs(t, ErrInvalidConfig, ErrInvalidInput)
	assert.NotErrorIs(t, ErrRoundInProgress, ErrCapture)
}
