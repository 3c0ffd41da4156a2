package fibar

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSetFillRatioDerivesWindowBounds(t *testing.T) {
	r := newTestSpatial(t, 10000, 0.5)
	require.Equal(t, uint64(100), r.fillRatioDenom)
	require.Greater(t, r.fillRatioNum, uint64(0))
	require.Greater(t, r.minWindowSize, uint64(0))
	require.LessOrEqual(t, r.minWindowSize, r.maxWindowSize)
}

func TestSetFillRatioClampsBelowTilesPerPixel(t *testing.T) {
	// tileSize 2 -> area 4 -> tiles-per-pixel floor is 0.25; asking for a
	// fill ratio below that floor must not produce a zero or negative
	// fillRatioNum.
	r := newTestSpatial(t, 10000, 0.01)
	require.Greater(t, r.fillRatioNum, uint64(0))
}

// adjustWindow preserves the literal (scaled, not unscaled) dead-band
// comparison from the original C++: it compares |500*(nt-np)| against
// the scaled np directly rather than against an unscaled occupancy
// count, so the window can move even when true occupancy hasn't
// changed by much, purely because of the fillRatioNum/Denom scale
// factors. This test locks in that literal behaviour rather than a
// "corrected" one.
func TestAdjustWindowPreservesScaledDeadBand(t *testing.T) {
	r := newTestSpatial(t, 10000, 0.5)
	r.eventWindowSize = 2000
	r.numOccupiedPixels = r.fillRatioDenom * 1
	r.numOccupiedTiles = r.fillRatioNum * 1
	before := r.eventWindowSize
	r.adjustWindow()
	// With exactly one active pixel in exactly one active tile, nt/np is
	// fillRatioNum/fillRatioDenom, a ratio > 1 for any realistic fill
	// ratio and tile area, so the dead-band should trip and grow the
	// window.
	if r.fillRatioNum != r.fillRatioDenom {
		require.NotEqual(t, before, r.eventWindowSize)
	}
}

func TestAdjustWindowClampsToMinAndMax(t *testing.T) {
	r := newTestSpatial(t, 10000, 0.5)
	r.eventWindowSize = r.maxWindowSize
	r.numOccupiedPixels = r.fillRatioDenom * 1000
	r.numOccupiedTiles = r.fillRatioNum * 1
	r.adjustWindow()
	require.LessOrEqual(t, r.eventWindowSize, r.maxWindowSize)

	r.eventWindowSize = r.minWindowSize
	r.numOccupiedPixels = r.fillRatioDenom * 1
	r.numOccupiedTiles = r.fillRatioNum * 1000
	r.adjustWindow()
	require.GreaterOrEqual(t, r.eventWindowSize, r.minWindowSize)
}

func TestOnEventActivatesPixelAndTile(t *testing.T) {
	r := newTestSpatial(t, 10000, 0.5)
	require.NoError(t, r.Event(0, 4, 4, 1))

	idx := 4*r.width + 4
	require.EqualValues(t, 1, r.state[idx].NumEventsInQueue)
	require.Greater(t, r.numOccupiedPixels, uint64(0))
	require.Greater(t, r.numOccupiedTiles, uint64(0))

	tileIdx := tileTopLeft(4, 4, r.width, r.tileSize)
	require.EqualValues(t, 1, r.state[tileIdx].NumPixActive)
}
