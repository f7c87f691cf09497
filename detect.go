package tuner

import (
	"github.com/tphakala/go-guitar-tuner/internal/peak"
	"github.com/tphakala/go-guitar-tuner/internal/spectrum"
)

// Spectrum is a one-sided magnitude spectrum: Frequencies[i] is the
// frequency of bin i in Hz and Magnitudes[i] its modulus.
type Spectrum = spectrum.Spectrum

// Window selects the analysis window applied before the transform.
type Window = spectrum.Window

// Analysis windows.
const (
	WindowRectangular = spectrum.Rectangular
	WindowHann        = spectrum.Hann
	WindowHamming     = spectrum.Hamming
	WindowBlackman    = spectrum.Blackman
	WindowBartlett    = spectrum.Bartlett
	WindowKaiser      = spectrum.Kaiser
)

// ParseWindow maps a window name such as "hann" to a Window.
func ParseWindow(name string) (Window, error) {
	return spectrum.ParseWindow(name)
}

// Analyze computes the one-sided magnitude spectrum of samples without an
// analysis window. It returns ErrInvalidInput for an empty buffer or a
// non-positive sample rate.
func Analyze(samples []float64, sampleRate float64) (Spectrum, error) {
	return spectrum.Analyze(samples, sampleRate, WindowRectangular)
}

// AnalyzeWindowed is like Analyze but applies w to a copy of samples first.
func AnalyzeWindowed(samples []float64, sampleRate float64, w Window) (Spectrum, error) {
	return spectrum.Analyze(samples, sampleRate, w)
}

// SelectPeak returns the frequency of the highest local maximum in s.
// The first and last bins are never candidates. Equal maxima resolve to the
// lowest frequency.
func SelectPeak(s Spectrum) PeakFrequency {
	mags := s.Magnitudes
	if len(s.Frequencies) < len(mags) {
		mags = mags[:len(s.Frequencies)]
	}

	p, ok := peak.Select(mags)
	if !ok {
		return PeakFrequency{}
	}
	return PeakFrequency{
		Hz:        s.Frequencies[p.Bin],
		Magnitude: p.Magnitude,
		Bin:       p.Bin,
		Valid:     true,
	}
}

// Detect runs one buffer through analysis, peak selection and matching
// against table. A nil table selects StandardTuning.
//
// For repeated captures use a Session.
func Detect(samples []float64, sampleRate float64, table *NoteTable) (MatchResult, error) {
	if table == nil {
		table = StandardTuning()
	}

	spec, err := Analyze(samples, sampleRate)
	if err != nil {
		return MatchResult{}, err
	}

	return table.Match(SelectPeak(spec)), nil
}
