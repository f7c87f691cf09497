package spectrum

import "math"

// KaiserBeta is the β used by the Kaiser window. 8.6 gives sidelobes close
// to a Blackman window with a slightly narrower main lobe.
const KaiserBeta = 8.6

// kaiserWindow returns an L-point Kaiser window with β = KaiserBeta:
//
//	w[n] = I₀(β √(1 - ((n - α)/α)²)) / I₀(β),  α = (L-1)/2
func kaiserWindow(length int) []float64 {
	w := make([]float64, length)
	if length == 1 {
		w[0] = 1
		return w
	}

	alpha := float64(length-1) / kaiserCenterDivisor
	norm := besselI0(KaiserBeta)
	for n := range length {
		x := (float64(n) - alpha) / alpha
		w[n] = besselI0(KaiserBeta*math.Sqrt(math.Max(0, 1-x*x))) / norm
	}
	return w
}

// besselI0 evaluates the modified Bessel function of the first kind, order
// zero, with the Abramowitz & Stegun polynomial approximations (9.8.1, 9.8.2).
func besselI0(x float64) float64 {
	ax := math.Abs(x)

	if ax < besselSmallArg {
		t := x / besselSmallArg
		t *= t
		return 1 + t*(3.5156229+t*(3.0899424+t*(1.2067492+
			t*(0.2659732+t*(0.0360768+t*0.0045813)))))
	}

	t := besselSmallArg / ax
	p := 0.39894228 + t*(0.01328592+t*(0.00225319+
		t*(-0.00157565+t*(0.00916281+t*(-0.02057706+
			t*(0.02635537+t*(-0.01647633+t*0.00392377)))))))
	return math.Exp(ax) * p / math.Sqrt(ax)
}
