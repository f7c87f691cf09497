package spectrum

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBesselI0(t *testing.T) {
	tests := []struct {
		x, want float64
	}{
		{0, 1},
		{1, 1.2660658777520082},
		{-1, 1.2660658777520082},
		{5, 27.239871823604442},
		{10, 2815.716628466254},
	}
	for _, tt := range tests {
		assert.InEpsilon(t, tt.want, besselI0(tt.x), 1e-6, "I0(%v)", tt.x)
	}
}

func TestKaiserWindow_Shape(t *testing.T) {
	w := kaiserWindow(9)
	require.Len(t, w, 9)

	assert.InDelta(t, 1, w[4], 1e-12, "centre tap")
	assert.InEpsilon(t, 1/besselI0(KaiserBeta), w[0], 1e-12)
	for i := range 4 {
		assert.InDelta(t, w[i], w[8-i], 1e-12, "symmetry at %d", i)
		assert.Less(t, w[i], w[i+1], "rises towards the centre")
	}
}

func TestKaiserWindow_SingleTap(t *testing.T) {
	assert.Equal(t, []float64{1}, kaiserWindow(1))
}
