package tuner

import "time"

// Reference capture parameters.
const (
	// DefaultSampleRate is CD-quality capture.
	DefaultSampleRate = 44100.0

	// DefaultDuration is the length of one tuning round.
	DefaultDuration = 2 * time.Second
)

// Configuration limits
const (
	minBufferLength = 1        // A round must capture at least one sample
	maxSampleRate   = 768000.0 // Highest sample rate accepted by Validate
	centsPerOctave  = 1200.0   // Cents in one octave (12 semitones)
)

// NoSoundDetected is the note label reported when no spectral peak exists.
const NoSoundDetected = "no sound detected"
