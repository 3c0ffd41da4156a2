package fibar

// Gaussian3x3 and Gaussian5x5 are the compile-time kernel constants
// from spec §4.3. Both sum to 1; the 5x5 kernel is the binomial 5-tap
// outer product.
var (
	Gaussian3x3 = [3][3]float32{
		{1.0 / 16, 2.0 / 16, 1.0 / 16},
		{2.0 / 16, 4.0 / 16, 2.0 / 16},
		{1.0 / 16, 2.0 / 16, 1.0 / 16},
	}
	Gaussian5x5 = [5][5]float32{
		{1.0 / 256, 4.0 / 256, 6.0 / 256, 4.0 / 256, 1.0 / 256},
		{4.0 / 256, 16.0 / 256, 24.0 / 256, 16.0 / 256, 4.0 / 256},
		{6.0 / 256, 24.0 / 256, 36.0 / 256, 24.0 / 256, 6.0 / 256},
		{4.0 / 256, 16.0 / 256, 24.0 / 256, 16.0 / 256, 4.0 / 256},
		{1.0 / 256, 4.0 / 256, 6.0 / 256, 4.0 / 256, 1.0 / 256},
	}
)

// spatialFilterN applies an NxN Gaussian kernel centred on (x, y),
// honouring the spec's boundary policy: the kernel is summed only
// over in-bounds neighbours and the result is NOT renormalized, so
// boundary pixels receive a slightly dampened L. Every field besides
// L is copied unchanged from the centre pixel.
//
// To stay bit-identical with filter3x3 on a 3x3 kernel, the centre
// term is added first, and every remaining in-bounds neighbour is
// then added in row-major (top-to-bottom, left-to-right) order — the
// same order filter3x3 uses for its boundary cases.
func spatialFilterN(state []PixelState, x, y uint16, width, height int, k [][]float32) PixelState {
	n := len(k)
	half := n / 2
	idx0 := int(y)*width + int(x)
	center := state[idx0]

	sum := center.L * k[half][half]

	yMin, yMax := clampLo(int(y)-half), clampHi(int(y)+half+1, height)
	xMin, xMax := clampLo(int(x)-half), clampHi(int(x)+half+1, width)

	for iy := yMin; iy < yMax; iy++ {
		ky := iy - int(y) + half
		rowOff := iy * width
		for ix := xMin; ix < xMax; ix++ {
			if ix == int(x) && iy == int(y) {
				continue
			}
			kx := ix - int(x) + half
			sum += state[rowOff+ix].L * k[ky][kx]
		}
	}
	return center.withBlurredL(sum)
}

func clampLo(v int) int {
	if v < 0 {
		return 0
	}
	return v
}

func clampHi(v, limit int) int {
	if v > limit {
		return limit
	}
	return v
}

// kernelSlice3x3 and kernelSlice5x5 convert a fixed-size kernel array
// into the [][]float32 shape spatialFilterN expects. The row slices
// alias the package-level arrays; only the outer slice is built on each
// call.
func kernelSlice3x3() [][]float32 {
	return [][]float32{Gaussian3x3[0][:], Gaussian3x3[1][:], Gaussian3x3[2][:]}
}

func kernelSlice5x5() [][]float32 {
	return [][]float32{
		Gaussian5x5[0][:], Gaussian5x5[1][:], Gaussian5x5[2][:],
		Gaussian5x5[3][:], Gaussian5x5[4][:],
	}
}

// filter3x3 is the specialized hot-path 3x3 Gaussian blur (C3),
// hand-unrolled into the nine boundary cases (interior + 4 edges + 4
// corners) from the original C++ (spatial_filter.hpp's filter_3x3).
// It must — and does, by construction — produce results bit-identical
// to spatialFilterN(state, x, y, width, height, kernelSlice3x3()):
// the centre term is added first in both, and the remaining neighbours
// are added in the same row-major order.
func filter3x3(state []PixelState, x, y uint16, width, height int) PixelState {
	k := Gaussian3x3
	idx0 := int(y)*width + int(x)
	center := state[idx0]
	sum := center.L * k[1][1]

	w, h := width, height
	xi, yi := int(x), int(y)

	add := func(ix, iy int, kv float32) {
		sum += state[iy*w+ix].L * kv
	}

	switch {
	case xi > 0 && xi < w-1 && yi > 0 && yi < h-1:
		// interior: full 3x3 neighbourhood
		add(xi-1, yi-1, k[0][0])
		add(xi, yi-1, k[1][0])
		add(xi+1, yi-1, k[2][0])
		add(xi-1, yi, k[0][1])
		add(xi+1, yi, k[2][1])
		add(xi-1, yi+1, k[0][2])
		add(xi, yi+1, k[1][2])
		add(xi+1, yi+1, k[2][2])
	case xi > 0 && xi < w-1 && yi == 0:
		// top edge, not corner
		add(xi-1, yi, k[0][1])
		add(xi+1, yi, k[2][1])
		add(xi-1, yi+1, k[0][2])
		add(xi, yi+1, k[1][2])
		add(xi+1, yi+1, k[2][2])
	case xi > 0 && xi < w-1 && yi == h-1:
		// bottom edge, not corner
		add(xi-1, yi-1, k[0][0])
		add(xi, yi-1, k[1][0])
		add(xi+1, yi-1, k[2][0])
		add(xi-1, yi, k[0][1])
		add(xi+1, yi, k[2][1])
	case xi == 0 && yi > 0 && yi < h-1:
		// left edge, not corner
		add(xi, yi-1, k[1][0])
		add(xi+1, yi-1, k[2][0])
		add(xi+1, yi, k[2][1])
		add(xi, yi+1, k[1][2])
		add(xi+1, yi+1, k[2][2])
	case xi == w-1 && yi > 0 && yi < h-1:
		// right edge, not corner
		add(xi-1, yi-1, k[0][0])
		add(xi, yi-1, k[1][0])
		add(xi-1, yi, k[0][1])
		add(xi-1, yi+1, k[0][2])
		add(xi, yi+1, k[1][2])
	case xi == 0 && yi == 0:
		// top-left corner
		add(xi+1, yi, k[2][1])
		add(xi, yi+1, k[1][2])
		add(xi+1, yi+1, k[2][2])
	case xi == w-1 && yi == 0:
		// top-right corner
		add(xi-1, yi, k[0][1])
		add(xi-1, yi+1, k[0][2])
		add(xi, yi+1, k[1][2])
	case xi == 0 && yi == h-1:
		// bottom-left corner
		add(xi, yi-1, k[1][0])
		add(xi+1, yi-1, k[2][0])
		add(xi+1, yi, k[2][1])
	default:
		// bottom-right corner
		add(xi-1, yi-1, k[0][0])
		add(xi, yi-1, k[1][0])
		add(xi-1, yi, k[0][1])
	}
	return center.withBlurredL(sum)
}
