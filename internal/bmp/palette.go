package bmp

import (
	"math"

	"github.com/anas-shakeel/bmp-editor/internal/raster"
)

// Palette is the color table of an indexed (<= 8 bpp) bitmap.
// Pixel value i refers to entry i.
type Palette []raster.Pixel

// Number of palette entries the header declares (0 when the image has no palette)
func PaletteSize(h BitmapInfoHeader) int {
	if h.BitCount > 8 {
		return 0
	}
	if h.ColorsUsed > 0 {
		if h.ColorsUsed > math.MaxInt32 {
			return math.MaxInt32
		}
		return int(h.ColorsUsed)
	}
	return 1 << h.BitCount
}

// Decodes up to count 4-byte (B, G, R, reserved) entries from b.
// Entries that are not fully present are left out instead of failing.
func DecodePalette(b []byte, count int) Palette {
	if count <= 0 {
		return nil
	}
	if available := len(b) / 4; count > available {
		count = available
	}

	pal := make(Palette, count)
	for i := range count {
		pal[i] = raster.Pixel{B: b[i*4], G: b[i*4+1], R: b[i*4+2]}
	}
	return pal
}

// Encode returns the on-disk bytes of the palette, with reserved bytes zeroed
func (p Palette) Encode() []byte {
	b := make([]byte, 0, len(p)*4)
	for _, c := range p {
		b = append(b, c.B, c.G, c.R, 0)
	}
	return b
}

// Returns entry i, or black when i is outside the palette
func (p Palette) Lookup(i int) raster.Pixel {
	if i < 0 || i >= len(p) {
		return raster.Black
	}
	return p[i]
}

// Returns the index of the entry closest to c (squared RGB distance), searching
// only the first limit entries. The first of equally close entries wins, and an
// empty search returns 0.
func (p Palette) Nearest(c raster.Pixel, limit int) int {
	if limit > len(p) || limit < 0 {
		limit = len(p)
	}

	best := 0
	bestDiff := math.MaxInt
	for i := range limit {
		dr := int(c.R) - int(p[i].R)
		dg := int(c.G) - int(p[i].G)
		db := int(c.B) - int(p[i].B)

		diff := dr*dr + dg*dg + db*db
		if diff < bestDiff {
			bestDiff = diff
			best = i
		}
	}
	return best
}
