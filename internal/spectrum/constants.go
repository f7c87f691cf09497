package spectrum

const (
	// nyquistDivisor halves the transform length: a real input of N samples
	// has ⌊N/2⌋ non-negative frequency bins below Nyquist.
	nyquistDivisor = 2

	// minWindowLength is the shortest buffer a window is applied to.
	// go-dsp windows divide by L-1 and are undefined for a single sample.
	minWindowLength = 2

	// kaiserCenterDivisor places the Kaiser window centre at (L-1)/2.
	kaiserCenterDivisor = 2

	// besselSmallArg splits the I₀ approximation into its polynomial and
	// asymptotic ranges.
	besselSmallArg = 3.75
)
