package fibar

import "math"

// filterCoeffs holds the four precomputed temporal-filter coefficients
// (C2) derived from a cutoff period T_cut. See computeFilterCoeffs.
type filterCoeffs struct {
	c0, c1, c2, c3 float32
}

// computeFilterCoeffs derives the four IIR coefficients from a cutoff
// period, in the same order and with the same double-precision
// intermediate math as the original C++ (computeAlphaBeta +
// ImageReconstructor::initialize), then narrows to float32.
//
// T_cut <= 2*pi is a degenerate but not-erroneous input per spec; the
// test suite exercises T_cut = 2, where cos(omega) is close to -1 and
// alpha/beta remain finite.
func computeFilterCoeffs(tCut float64) filterCoeffs {
	omega := 2 * math.Pi / tCut
	phi := 2 - math.Cos(omega)
	alpha := (1 - math.Sin(omega)) / math.Cos(omega)
	beta := phi - math.Sqrt(phi*phi-1)
	return filterCoeffs{
		c0: float32(alpha),
		c1: float32(1 - alpha),
		c2: float32(beta),
		c3: float32(0.5 * (1 + beta)),
	}
}

// updateTemporal runs the causal two-state IIR filter (C2) for one
// event on pixel s, in place. polarity is 0 (OFF) or 1 (ON). It takes
// no timestamp: Event accepts t but does not pass it on, since only
// event ordering and polarity matter.
func updateTemporal(s *PixelState, c filterCoeffs, polarity uint8) {
	p := float32(-1)
	if polarity != 0 {
		p = 1
	}
	dp := s.Scale * (p - s.Pbar)
	l := c.c2*s.L + c.c3*dp
	s.Pbar = c.c0*s.Pbar + c.c1*p
	s.L = l
}
