package fibar

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestComputeFilterCoeffs(t *testing.T) {
	// For a large cutoff, omega is tiny, so alpha and beta are both close
	// to 1: pbar moves only slightly per event and L decays slowly.
	c := computeFilterCoeffs(10000)
	require.InDelta(t, 1, c.c0, 1e-2)
	require.InDelta(t, 0, c.c1, 1e-2)
}

func TestUpdateTemporalSingleEventFromZero(t *testing.T) {
	c := computeFilterCoeffs(10000)
	s := newPixelState()
	updateTemporal(&s, c, 1)
	require.InDelta(t, 0.00062812, float64(s.Pbar), 1e-4)
	require.InDelta(t, 0.999686, float64(s.L), 1e-4)
}

func TestUpdateTemporalDegenerateCutoff(t *testing.T) {
	c := computeFilterCoeffs(2)
	s := newPixelState()
	updateTemporal(&s, c, 1)
	require.InDelta(t, 2.0, float64(s.Pbar), 1e-4)
	require.InDelta(t, 0.5857865, float64(s.L), 1e-4)
}

// Scenario 6's precise, verifiable claim: doubling Scale exactly
// doubles the dp contribution to L on the very first event (pbar
// starts at 0, so dp = scale*(p-0) = scale*p), and the ratio of the
// two L responses is therefore exactly the scale ratio.
func TestCalibrationScalesDpContributionLinearly(t *testing.T) {
	c := computeFilterCoeffs(10000)

	baseline := newPixelState()
	updateTemporal(&baseline, c, 1)

	scaled := newPixelState()
	scaled.Scale = 2
	updateTemporal(&scaled, c, 1)

	require.InDelta(t, float64(baseline.Pbar), float64(scaled.Pbar), 1e-6, "pbar never depends on scale")
	require.InDelta(t, 2.0, float64(scaled.L)/float64(baseline.L), 1e-4)
}
