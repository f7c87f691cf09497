// Package spectrum computes one-sided magnitude spectra of real-valued
// sample buffers.
package spectrum

import (
	"errors"
	"fmt"
	"math"
	"math/cmplx"

	"github.com/mjibson/go-dsp/window"
	"gonum.org/v1/gonum/dsp/fourier"
)

// ErrInvalidInput indicates an empty buffer, a non-positive sample rate or
// non-finite input values.
var ErrInvalidInput = errors.New("invalid analysis input")

// Window selects the analysis window applied before the transform.
type Window int

const (
	// Rectangular leaves the samples untouched.
	Rectangular Window = iota

	// Hann applies a raised-cosine window.
	Hann

	// Hamming applies a Hamming window.
	Hamming

	// Blackman applies a three-term Blackman window.
	Blackman

	// Bartlett applies a triangular window.
	Bartlett

	// Kaiser applies a Kaiser window with β = KaiserBeta.
	Kaiser
)

// String returns the lower-case window name.
func (w Window) String() string {
	switch w {
	case Rectangular:
		return "rectangular"
	case Hann:
		return "hann"
	case Hamming:
		return "hamming"
	case Blackman:
		return "blackman"
	case Bartlett:
		return "bartlett"
	case Kaiser:
		return "kaiser"
	default:
		return fmt.Sprintf("window(%d)", int(w))
	}
}

// Valid reports whether w names a supported window.
func (w Window) Valid() bool {
	return w >= Rectangular && w <= Kaiser
}

// ParseWindow maps a window name to a Window. The empty string selects
// Rectangular.
func ParseWindow(name string) (Window, error) {
	switch name {
	case "", "rectangular", "rect", "none":
		return Rectangular, nil
	case "hann", "hanning":
		return Hann, nil
	case "hamming":
		return Hamming, nil
	case "blackman":
		return Blackman, nil
	case "bartlett", "triangular":
		return Bartlett, nil
	case "kaiser":
		return Kaiser, nil
	default:
		return Rectangular, fmt.Errorf("unknown window %q", name)
	}
}

// coefficients returns the go-dsp window generator for w, or nil for
// Rectangular.
func (w Window) coefficients() (func(int) []float64, error) {
	switch w {
	case Rectangular:
		return nil, nil
	case Hann:
		return window.Hann, nil
	case Hamming:
		return window.Hamming, nil
	case Blackman:
		return window.Blackman, nil
	case Bartlett:
		return window.Bartlett, nil
	case Kaiser:
		return kaiserWindow, nil
	default:
		return nil, fmt.Errorf("%w: unknown window %d", ErrInvalidInput, int(w))
	}
}

// Spectrum is a one-sided magnitude spectrum.
// Frequencies[i] is the centre frequency of bin i and Magnitudes[i] its
// modulus. Both slices have length N/2 for an N-sample input.
type Spectrum struct {
	Frequencies []float64
	Magnitudes  []float64

	// SampleRate and Size describe the analysed buffer.
	SampleRate float64
	Size       int
}

// Len returns the number of bins.
func (s Spectrum) Len() int {
	return len(s.Magnitudes)
}

// BinWidth returns the spacing between adjacent bins in Hz.
func (s Spectrum) BinWidth() float64 {
	if s.Size == 0 {
		return 0
	}
	return s.SampleRate / float64(s.Size)
}

// Nyquist returns half the sample rate.
func (s Spectrum) Nyquist() float64 {
	return s.SampleRate / nyquistDivisor
}

// Analyze transforms samples into a one-sided magnitude spectrum.
//
// The transform is a real-input FFT, which yields the same coefficients as
// the first half of a full complex DFT. The first ⌊N/2⌋ bins are kept.
// samples is never modified.
func Analyze(samples []float64, sampleRate float64, w Window) (Spectrum, error) {
	n := len(samples)
	if n == 0 {
		return Spectrum{}, fmt.Errorf("%w: empty sample buffer", ErrInvalidInput)
	}
	if !(sampleRate > 0) || math.IsInf(sampleRate, 0) {
		return Spectrum{}, fmt.Errorf("%w: sample rate must be positive and finite, got %v", ErrInvalidInput, sampleRate)
	}
	for i, v := range samples {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return Spectrum{}, fmt.Errorf("%w: sample %d is not finite", ErrInvalidInput, i)
		}
	}

	windowFn, err := w.coefficients()
	if err != nil {
		return Spectrum{}, err
	}

	seq := samples
	if windowFn != nil && n >= minWindowLength {
		seq = make([]float64, n)
		copy(seq, samples)
		window.Apply(seq, windowFn)
	}

	coeffs := fourier.NewFFT(n).Coefficients(nil, seq)

	bins := n / nyquistDivisor
	spec := Spectrum{
		Frequencies: make([]float64, bins),
		Magnitudes:  make([]float64, bins),
		SampleRate:  sampleRate,
		Size:        n,
	}
	for i := range bins {
		spec.Frequencies[i] = float64(i) * sampleRate / float64(n)
		spec.Magnitudes[i] = cmplx.Abs(coeffs[i])
	}

	return spec, nil
}
