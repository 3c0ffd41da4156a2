package fibar

// The activity controller (C6) is implemented as methods on
// *Reconstructor rather than its own type: per spec it needs tight,
// mutable access to the pixel-state array, the tile indexing, the
// event queue and the global counters, and splitting it into a
// separate struct would just mean passing all of those through on
// every call.

const startWindowSize = 2000

// setFillRatio derives fillRatioNum/Denom and the window bounds from a
// configured target fill ratio, following spec §4.5's fixed-point
// encoding (denominator pinned at 100) and the min-window derivation
// from the original C++ comment: the smallest window the multiplicative
// update cannot shrink further.
func (r *Reconstructor) setFillRatio(fillRatio float64) {
	const denom = 100
	r.fillRatioDenom = denom
	area := float64(r.tileSize * r.tileSize)
	tilesPerPixel := 1.0 / area
	ratio := fillRatio
	if lo := tilesPerPixel + 1e-3; ratio < lo {
		ratio = lo
	}
	if ratio > 1 {
		ratio = 1
	}
	npPerNt := area * ratio
	r.fillRatioNum = uint64(npPerNt * denom)
	if area > 0 {
		r.minWindowSize = uint64(ceilDiv(1, npPerNt-1))
	}
}

// ceilDiv returns ceil(num/den) for den > 0; setFillRatio calls it with
// num = 1. Kept as a tiny helper rather than importing math.Ceil for a
// single division.
func ceilDiv(num, den float64) uint64 {
	q := num / den
	iq := uint64(q)
	if float64(iq) < q {
		iq++
	}
	return iq
}

// onEvent runs the full per-event ingestion pipeline for spatial mode
// (spec §4.5, steps 1-5): temporal filter, idle->active bookkeeping,
// enqueue, drain loop, window adjustment.
func (r *Reconstructor) onEvent(x, y uint16, polarity uint8) error {
	idx := int(y)*r.width + int(x)
	s := &r.state[idx]

	updateTemporal(s, r.coeffs, polarity)

	wasIdle := !s.isActive()
	if wasIdle {
		r.numOccupiedPixels += r.fillRatioDenom
		tileIdx := tileTopLeft(x, y, r.width, r.tileSize)
		tile := &r.state[tileIdx]
		if tile.NumPixActive == 0 {
			r.numOccupiedTiles += r.fillRatioNum
		}
		tile.NumPixActive++
	}
	// NumEventsInQueue is a uint16: once it reaches 0xffff, further
	// events on this pixel update the temporal filter but are not
	// queued, so the count never wraps back to zero.
	if s.NumEventsInQueue < 0xffff {
		s.NumEventsInQueue++
		r.queue.push(packEvent(x, y, polarity))
	}

	if err := r.drain(); err != nil {
		return err
	}
	r.adjustWindow()
	return nil
}

// drain pops events off the queue head until its length is back at or
// below event_window_size, deactivating and spatially filtering any
// pixel whose queued-event count reaches zero.
func (r *Reconstructor) drain() error {
	for uint64(r.queue.Len()) > r.eventWindowSize {
		e := r.queue.pop()
		x, y := e.x(), e.y()
		idx := int(y)*r.width + int(x)
		s := &r.state[idx]

		if !s.isActive() {
			return &HotPixelError{X: x, Y: y}
		}
		s.NumEventsInQueue--

		if !s.isActive() {
			if r.kernelSize == 5 {
				*s = spatialFilterN(r.state, x, y, r.width, r.height, kernelSlice5x5())
			} else {
				*s = filter3x3(r.state, x, y, r.width, r.height)
			}
			s.NumEventsInQueue = 0

			tileIdx := tileTopLeft(x, y, r.width, r.tileSize)
			tile := &r.state[tileIdx]
			if tile.NumPixActive == 0 {
				return &HotPixelError{X: x, Y: y, Tile: true}
			}
			tile.NumPixActive--
			if tile.NumPixActive == 0 {
				r.numOccupiedTiles -= r.fillRatioNum
			}
			r.numOccupiedPixels -= r.fillRatioDenom
		}
	}
	return nil
}

// adjustWindow recomputes event_window_size to track the configured
// fill ratio, preserving the literal-integer dead-band test from the
// original C++ (|500*(nt-np)| > np) even though nt and np are scaled
// by fillRatioNum/fillRatioDenom respectively rather than being
// unscaled counts — see spec §9's Open Question and DESIGN.md.
func (r *Reconstructor) adjustWindow() {
	nt := int64(r.numOccupiedTiles)
	np := int64(r.numOccupiedPixels)
	if np <= 1 {
		np = int64(r.fillRatioDenom)
	}
	diff := 500 * (nt - np)
	if diff < 0 {
		diff = -diff
	}
	if diff <= np {
		return
	}
	target := uint64(int64(r.eventWindowSize) * nt / np)
	if target < r.minWindowSize {
		target = r.minWindowSize
	}
	if target > r.maxWindowSize {
		target = r.maxWindowSize
	}
	r.eventWindowSize = target
}
