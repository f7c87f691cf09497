// Package peak locates the dominant local maximum of a magnitude spectrum.
package peak

// MinHeight is the height a local maximum must reach to be a candidate.
// Zero admits every local maximum of a non-negative spectrum, including
// very quiet ones.
const MinHeight = 0.0

// Peak identifies one spectral bin.
type Peak struct {
	Bin       int
	Magnitude float64
}

// Find returns every local maximum of magnitudes in ascending bin order.
// A bin qualifies when it is strictly greater than both neighbours and
// at least MinHeight; the first and last bins never qualify.
func Find(magnitudes []float64) []Peak {
	var peaks []Peak
	for i := 1; i < len(magnitudes)-1; i++ {
		if isPeak(magnitudes, i) {
			peaks = append(peaks, Peak{Bin: i, Magnitude: magnitudes[i]})
		}
	}
	return peaks
}

// Select returns the highest local maximum of magnitudes. Equal heights
// resolve to the lowest bin. ok is false when there is no local maximum.
func Select(magnitudes []float64) (p Peak, ok bool) {
	for i := 1; i < len(magnitudes)-1; i++ {
		if !isPeak(magnitudes, i) {
			continue
		}
		if !ok || magnitudes[i] > p.Magnitude {
			p = Peak{Bin: i, Magnitude: magnitudes[i]}
			ok = true
		}
	}
	return p, ok
}

// isPeak reports whether interior bin i is a local maximum of at least MinHeight.
func isPeak(m []float64, i int) bool {
	return m[i] > m[i-1] && m[i] > m[i+1] && m[i] >= MinHeight
}
