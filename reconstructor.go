// Package fibar reconstructs a grayscale log-intensity image from an
// asynchronous stream of per-pixel brightness-change events, as
// produced by an event camera. See NewReconstructor and
// NewSpatialReconstructor.
package fibar

import "math"

// Reconstructor holds all per-pixel filter state for one image plane
// and ingests events one at a time. A Reconstructor is not safe for
// concurrent use — all operations on one instance must be serialized
// by the caller (spec §5). Use RunShards to drive several independent
// Reconstructors in parallel.
type Reconstructor struct {
	width, height int
	coeffs        filterCoeffs
	state         []PixelState

	spatialEnabled bool
	tileSize       int
	kernelSize     int // 3 or 5, only meaningful when spatialEnabled

	queue *eventQueue

	eventWindowSize   uint64
	minWindowSize     uint64
	maxWindowSize     uint64
	fillRatioNum      uint64
	fillRatioDenom    uint64
	numOccupiedPixels uint64
	numOccupiedTiles  uint64
}

// NewReconstructor builds a non-spatial reconstructor (spec §4.2):
// every event runs only the temporal filter (C1/C2). There is no
// event queue and no activity tracking.
func NewReconstructor(width, height int, tCut float64) (*Reconstructor, error) {
	r, err := newBase(width, height, tCut)
	if err != nil {
		return nil, err
	}
	return r, nil
}

// NewSpatialReconstructor builds a reconstructor with activity
// tracking and spatial (Gaussian) smoothing enabled (spec §4.5).
// tileSize must satisfy tileSize*tileSize <= 128 (spec §6); 2 is the
// optimized case for tile indexing (see tileTopLeft). kernelSize
// selects the Gaussian kernel applied on pixel deactivation: 3 (the
// hand-unrolled filter3x3) or 5.
func NewSpatialReconstructor(width, height int, tCut float64, fillRatio float64, tileSize, kernelSize int) (*Reconstructor, error) {
	if tileSize*tileSize > 128 {
		return nil, &ConfigurationError{Reason: "tile area exceeds 128 pixels"}
	}
	if kernelSize != 3 && kernelSize != 5 {
		return nil, &ConfigurationError{Reason: "kernel size must be 3 or 5"}
	}
	if fillRatio <= 0 || fillRatio > 1 {
		return nil, &ConfigurationError{Reason: "fill ratio must be in (0, 1]"}
	}

	r, err := newBase(width, height, tCut)
	if err != nil {
		return nil, err
	}
	r.spatialEnabled = true
	r.tileSize = tileSize
	r.kernelSize = kernelSize

	if tileSize == 0 {
		// tile_size == 0 disables the queue entirely (spec §4.5,
		// §8 invariant I6): event_window_size stays 0 and the
		// activity pipeline never runs, so Event falls back to the
		// bare temporal filter (see Event below).
		return r, nil
	}

	r.maxWindowSize = uint64(width) * uint64(height)
	r.setFillRatio(fillRatio)
	r.eventWindowSize = startWindowSize
	if r.eventWindowSize > r.maxWindowSize {
		r.eventWindowSize = r.maxWindowSize
	}
	r.queue = newEventQueue(maxInt(int(r.maxWindowSize), 1))
	return r, nil
}

func newBase(width, height int, tCut float64) (*Reconstructor, error) {
	if width <= 0 || height <= 0 {
		return nil, &ConfigurationError{Reason: "width and height must be positive"}
	}
	if width > 1<<15 || height > 1<<15 {
		return nil, &ConfigurationError{Reason: "width and height must be <= 2^15"}
	}
	if math.Cos(2*math.Pi/tCut) == 0 {
		return nil, &DomainError{TCut: tCut}
	}
	state := make([]PixelState, width*height)
	for i := range state {
		state[i] = newPixelState()
	}
	return &Reconstructor{
		width:  width,
		height: height,
		coeffs: computeFilterCoeffs(tCut),
		state:  state,
	}, nil
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// Event ingests one (t, x, y, polarity) event (spec §6). t is reserved
// and not consumed by the core. polarity must be 0 (OFF) or 1 (ON).
//
// In spatial mode this runs the full activity-tracking pipeline (C6)
// and may return a *HotPixelError if the drain loop finds bookkeeping
// already at zero — a fatal, upstream-masking condition per spec.
// In non-spatial mode only the temporal filter runs and Event never
// fails except on out-of-range coordinates.
func (r *Reconstructor) Event(t uint32, x, y uint16, polarity uint8) error {
	if int(x) >= r.width || int(y) >= r.height {
		return &IngestionRangeError{X: x, Y: y, Width: r.width, Height: r.height}
	}
	if !r.spatialEnabled || r.tileSize == 0 {
		s := &r.state[int(y)*r.width+int(x)]
		updateTemporal(s, r.coeffs, polarity)
		return nil
	}
	return r.onEvent(x, y, polarity)
}

// Width returns the configured image width.
func (r *Reconstructor) Width() int { return r.width }

// Height returns the configured image height.
func (r *Reconstructor) Height() int { return r.height }

// State returns a read-only view of the pixel-state array, row-major.
// Callers must not retain it across further calls to Event, which may
// mutate it in place.
func (r *Reconstructor) State() []PixelState { return r.state }

// QueueSize returns the number of events currently buffered (0 in
// non-spatial mode).
func (r *Reconstructor) QueueSize() int {
	if r.queue == nil {
		return 0
	}
	return r.queue.Len()
}

// EventWindowSize returns the current target queue length (0 in
// non-spatial mode, or if tile_size was configured as 0).
func (r *Reconstructor) EventWindowSize() uint64 { return r.eventWindowSize }

// FillRatio returns the current per-tile fill ratio, or -1 if no tile
// is currently occupied (spec §6). This mirrors the original C++
// literally: both numOccupiedPixels and numOccupiedTiles carry their
// fillRatioDenom/fillRatioNum scale factors, so the ratio below is not
// a "clean" pixels-per-tile fraction — it reproduces the source's own
// (scaled) computation rather than re-deriving a normalized one.
func (r *Reconstructor) FillRatio() float64 {
	if !r.spatialEnabled || r.numOccupiedTiles == 0 {
		return -1
	}
	area := float64(r.tileSize * r.tileSize)
	return float64(r.numOccupiedPixels) / (float64(r.numOccupiedTiles) * area)
}
