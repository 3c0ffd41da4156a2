package fibar

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

func gaussianSumsToOne(t *testing.T, k [][]float32) {
	t.Helper()
	var sum float32
	for _, row := range k {
		for _, v := range row {
			sum += v
		}
	}
	require.InDelta(t, 1.0, float64(sum), 1e-4)
}

func TestGaussianKernelsNormalize(t *testing.T) {
	gaussianSumsToOne(t, kernelSlice3x3())
	gaussianSumsToOne(t, kernelSlice5x5())
}

// filter3x3 must be bit-identical to the generic path at every position
// in the image, including every boundary and corner case, given the
// same floating-point summation order.
func TestFilter3x3MatchesGenericEverywhere(t *testing.T) {
	const w, h = 9, 7
	state := make([]PixelState, w*h)
	rng := rand.New(rand.NewSource(1))
	for i := range state {
		state[i] = PixelState{L: rng.Float32()*4 - 2, Pbar: rng.Float32(), Scale: 1}
	}

	k := kernelSlice3x3()
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			got := filter3x3(state, uint16(x), uint16(y), w, h)
			want := spatialFilterN(state, uint16(x), uint16(y), w, h, k)
			require.Equal(t, want.L, got.L, "mismatch at (%d,%d)", x, y)
			require.Equal(t, want.Pbar, got.Pbar)
			require.Equal(t, want.NumEventsInQueue, got.NumEventsInQueue)
			require.Equal(t, want.Scale, got.Scale)
		}
	}
}

func TestSpatialFilterOnlyTouchesL(t *testing.T) {
	const w, h = 5, 5
	state := make([]PixelState, w*h)
	for i := range state {
		state[i] = PixelState{L: float32(i), Pbar: 0.5, NumEventsInQueue: 3, NumPixActive: 2, Scale: 1.5}
	}
	out := spatialFilterN(state, 2, 2, w, h, kernelSlice3x3())
	require.Equal(t, float32(0.5), out.Pbar)
	require.EqualValues(t, 3, out.NumEventsInQueue)
	require.EqualValues(t, 2, out.NumPixActive)
	require.Equal(t, float32(1.5), out.Scale)
}

// Boundary policy: truncate without renormalizing. At a corner only the
// centre and 3 neighbours are summed, and their weights total 9/16, so
// the result is dampened rather than scaled back up to a full-weight
// average.
func TestSpatialFilterBoundaryDampening(t *testing.T) {
	const w, h = 5, 5
	state := make([]PixelState, w*h)
	for i := range state {
		state[i] = PixelState{L: 1, Scale: 1}
	}
	state[0].L = 10 // corner pixel itself
	out := spatialFilterN(state, 0, 0, w, h, kernelSlice3x3())
	// Corner case only sums center + 3 neighbours (k[2][1]+k[1][2]+k[2][2]):
	// 10*4/16 + 1*(2+2+1)/16 = 45/16. Renormalizing over the 9/16 of the
	// kernel in bounds would give 5 instead.
	require.InDelta(t, 45.0/16, float64(out.L), 1e-6)
	require.Less(t, float64(out.L), 10.0)
	require.Greater(t, float64(out.L), 1.0)
}

func TestSpatialFilterNoNaNAtEveryBoundaryRegion(t *testing.T) {
	const w, h = 6, 6
	state := make([]PixelState, w*h)
	for i := range state {
		state[i] = PixelState{L: 1, Scale: 1}
	}
	positions := [][2]int{
		{0, 0}, {w - 1, 0}, {0, h - 1}, {w - 1, h - 1}, // corners
		{w / 2, 0}, {w / 2, h - 1}, {0, h / 2}, {w - 1, h / 2}, // edges
		{w / 2, h / 2}, // interior
	}
	for _, p := range positions {
		out := filter3x3(state, uint16(p[0]), uint16(p[1]), w, h)
		require.False(t, isNaNOrInf(out.L), "got non-finite L at (%d,%d)", p[0], p[1])
	}
}

func isNaNOrInf(f float32) bool {
	return f != f || f > 3.4e38 || f < -3.4e38
}
