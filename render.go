package fibar

import "math"

// Image writes the min/max-normalized 8-bit intensity reconstruction
// (C7) into img, which must have at least height*stride bytes. stride
// is the number of bytes per row, allowing packed (stride == width) or
// padded output layouts.
//
// Per spec, the max_L seed must use the most-negative representable
// float32 rather than the smallest positive one, so that an all-negative
// L field still raises max_L correctly.
func (r *Reconstructor) Image(img []byte, stride int) {
	minL := float32(math.MaxFloat32)
	maxL := -float32(math.MaxFloat32)
	for i := range r.state {
		l := r.state[i].L
		if l > maxL {
			maxL = l
		}
		if l < minL {
			minL = l
		}
	}

	scale := float32(255) / (maxL - minL)
	for y := 0; y < r.height; y++ {
		rowOff := y * stride
		stateOff := y * r.width
		for x := 0; x < r.width; x++ {
			v := (r.state[stateOff+x].L - minL) * scale
			img[rowOff+x] = uint8(v)
		}
	}
}

// ActivePixelImage writes a heatmap (C7) of the events currently
// resident in the queue: the byte at each event's (x, y) is
// incremented once per queued event for that pixel, saturating at 255
// rather than wrapping. The buffer is zeroed first. In non-spatial
// mode (no queue) the image is left all-zero.
func (r *Reconstructor) ActivePixelImage(img []byte, stride int) {
	for y := 0; y < r.height; y++ {
		row := img[y*stride : y*stride+r.width]
		for i := range row {
			row[i] = 0
		}
	}
	if r.queue == nil {
		return
	}
	r.queue.forEach(func(e event) {
		i := int(e.y())*stride + int(e.x())
		if img[i] < 255 {
			img[i]++
		}
	})
}
