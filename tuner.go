package tuner

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/tphakala/go-guitar-tuner/internal/spectrum"
)

// Common errors returned by the tuner.
var (
	// ErrInvalidInput indicates an empty sample buffer, a non-positive sample
	// rate or non-finite samples. It is a programming or configuration error
	// and always aborts the current round.
	ErrInvalidInput = spectrum.ErrInvalidInput

	// ErrCapture indicates that the capture collaborator could not supply a
	// buffer of the requested length and rate.
	ErrCapture = errors.New("audio capture failed")

	// ErrInvalidConfig indicates invalid configuration parameters.
	ErrInvalidConfig = errors.New("invalid tuner configuration")

	// ErrRoundInProgress indicates that Round was called while another round
	// on the same session had not finished.
	ErrRoundInProgress = errors.New("tuning round already in progress")
)

// Config holds tuner configuration.
type Config struct {
	// SampleRate is the capture sample rate in Hz.
	SampleRate float64

	// Duration is the length of audio captured per round.
	// The buffer holds Duration × SampleRate samples, truncated.
	Duration time.Duration

	// Notes is the reference table matched against.
	// A nil table selects StandardTuning.
	Notes *NoteTable

	// Window is applied to each buffer before the transform.
	// The zero value, WindowRectangular, applies no window.
	Window Window

	// CaptureTimeout bounds how long a round waits for the capturer.
	// Zero waits indefinitely.
	CaptureTimeout time.Duration
}

// DefaultConfig returns the reference configuration: two seconds at
// 44.1 kHz, standard tuning, no analysis window.
func DefaultConfig() *Config {
	return &Config{
		SampleRate: DefaultSampleRate,
		Duration:   DefaultDuration,
		Notes:      StandardTuning(),
		Window:     WindowRectangular,
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if !(c.SampleRate > 0) || math.IsInf(c.SampleRate, 0) {
		return fmt.Errorf("%w: sample rate must be positive", ErrInvalidConfig)
	}

	if c.SampleRate > maxSampleRate {
		return fmt.Errorf("%w: sample rate exceeds %v Hz", ErrInvalidConfig, maxSampleRate)
	}

	if c.Duration <= 0 {
		return fmt.Errorf("%w: duration must be positive", ErrInvalidConfig)
	}

	if c.BufferLength() < minBufferLength {
		return fmt.Errorf("%w: %v at %v Hz yields no samples", ErrInvalidConfig, c.Duration, c.SampleRate)
	}

	if c.Notes != nil && c.Notes.Len() == 0 {
		return fmt.Errorf("%w: note table is empty", ErrInvalidConfig)
	}

	if c.CaptureTimeout < 0 {
		return fmt.Errorf("%w: capture timeout must not be negative", ErrInvalidConfig)
	}

	if !c.Window.Valid() {
		return fmt.Errorf("%w: unknown window %s", ErrInvalidConfig, c.Window)
	}

	return nil
}

// BufferLength returns the number of samples captured per round.
func (c *Config) BufferLength() int {
	return int(c.Duration.Seconds() * c.SampleRate)
}

// notes returns the configured table or the standard tuning.
func (c *Config) notes() *NoteTable {
	if c.Notes == nil {
		return StandardTuning()
	}
	return c.Notes
}
