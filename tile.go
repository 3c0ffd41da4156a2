package fibar

// tileTopLeft returns the flat index of the pixel state cell that
// holds the authoritative tile-occupancy counter for the tile
// containing pixel (x, y) — the tile's top-left corner (C4).
//
// For tileSize == 2 this specializes to the bit-trick from the
// original C++ (`(ey >> 1) * tile_stride_y + (ex & ~1)`); the general
// formula below produces the same result for any tileSize whose
// square is a power of two boundary-aligned grid and also covers
// non-power-of-two tile sizes (e.g. tileSize == 3).
func tileTopLeft(x, y uint16, width, tileSize int) int {
	if tileSize == 2 {
		tx := int(x) &^ 1
		ty := int(y) &^ 1
		return ty*width + tx
	}
	tx := (int(x) / tileSize) * tileSize
	ty := (int(y) / tileSize) * tileSize
	return ty*width + tx
}
