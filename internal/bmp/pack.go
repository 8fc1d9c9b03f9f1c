package bmp

import (
	"github.com/anas-shakeel/bmp-editor/internal/raster"
)

// Pack encodes a raster into row-padded pixel data at bitCount bits per pixel.
// Rows are written top-down when topDown is set, bottom-up otherwise. Indexed
// depths map every pixel to its nearest palette entry.
func Pack(r *raster.Raster, bitCount int, topDown bool, pal Palette) []byte {
	stride := Stride(r.Width, bitCount)
	data := make([]byte, stride*r.Height)

	for y := range r.Height {
		row := r.Height - 1 - y // bottom-up
		if topDown {
			row = y
		}
		byteIndex := row * stride

		for x := range r.Width {
			packPixel(data, byteIndex, x, bitCount, r.Pixels[y][x], pal)
		}
	}

	return data
}

func packPixel(data []byte, byteIndex, x, bitCount int, p raster.Pixel, pal Palette) {
	switch bitCount {
	case 24:
		i := byteIndex + x*3
		if i+2 >= len(data) {
			return
		}
		copy(data[i:i+3], p.BytesBGR())

	case 8:
		i := byteIndex + x
		if i >= len(data) {
			return
		}
		data[i] = byte(pal.Nearest(p, 256))

	case 4:
		i := byteIndex + x/2
		if i >= len(data) {
			return
		}
		index := byte(pal.Nearest(p, 16))
		if x%2 == 0 {
			data[i] = data[i]&0x0f | index<<4 // Upper nibble (first pixel in byte)
		} else {
			data[i] = data[i]&0xf0 | index // Lower nibble
		}

	case 1:
		i := byteIndex + x/8
		if i >= len(data) {
			return
		}
		bit := byte(1) << (7 - x%8)
		if nearestOfTwo(p, pal) == 0 {
			data[i] &^= bit
		} else {
			data[i] |= bit
		}
	}
}

// nearestOfTwo matches p against palette entries 0 and 1 only.
// With fewer than two entries the answer is always 0.
func nearestOfTwo(p raster.Pixel, pal Palette) int {
	if len(pal) < 2 {
		return 0
	}
	return pal.Nearest(p, 2)
}
