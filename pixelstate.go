package fibar

// PixelState is the per-pixel record maintained by a Reconstructor (C1).
//
// NumPixActive is overloaded per spec: on the cell that is the top-left
// corner of a tile, it is the authoritative count of active pixels in
// that tile (see tile.go); on every other cell its value is unused by
// the controller. This mirrors the memory layout of the C++ original
// (ros2-gbp/fibar_lib-release) rather than a cleaner split field —
// see DESIGN.md for why a cleaner design was not adopted wholesale.
type PixelState struct {
	// L is the filtered log-intensity.
	L float32
	// Pbar is the polarity EMA, in [-1, +1] at steady state.
	Pbar float32
	// NumEventsInQueue is the count of this pixel's events currently
	// sitting in the event queue. A pixel is active iff this is > 0.
	NumEventsInQueue uint16
	// NumPixActive is the tile occupancy count, valid only on a tile's
	// top-left pixel. See tileTopLeft.
	NumPixActive uint8
	// Scale is the per-pixel calibration gain. 1 when no calibration
	// file has been loaded.
	Scale float32
}

// isActive reports whether the pixel currently has at least one event
// resident in the queue, which is what makes a pixel active.
func (s *PixelState) isActive() bool { return s.NumEventsInQueue > 0 }

// withBlurredL returns a copy of s with L replaced, and every other
// field — Pbar, NumPixActive, NumEventsInQueue, Scale — left untouched.
// The spatial filter must never touch these; they are not spatial
// quantities and averaging them would corrupt the activity bookkeeping.
func (s PixelState) withBlurredL(l float32) PixelState {
	s.L = l
	return s
}

// newPixelState returns the zero-value PixelState with an implicit
// calibration scale of 1, per spec §3 ("when absent, implicitly 1").
func newPixelState() PixelState {
	return PixelState{Scale: 1}
}
