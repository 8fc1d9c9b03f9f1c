package bmp

import (
	"github.com/apex/log"

	"github.com/anas-shakeel/bmp-editor/internal/raster"
)

// Unpack decodes raw pixel data (starting at the header's OffBits) into a raster
// of the header's dimensions. The header must already be validated.
//
// Decoding is lenient below the header level: pixels whose bytes lie past the
// end of raw, and palette indices with no palette entry, come out black.
func Unpack(raw []byte, h BitmapInfoHeader, pal Palette) *raster.Raster {
	width := int(h.Width)
	height := h.AbsHeight()
	bitCount := int(h.BitCount)
	stride := Stride(width, bitCount)

	r := raster.New(width, height)
	missing := 0

	for y := range height {
		row := height - 1 - y // bottom-up
		if h.TopDown() {
			row = y
		}
		byteIndex := row * stride

		for x := range width {
			p, ok := unpackPixel(raw, byteIndex, x, bitCount, pal)
			if !ok {
				missing++
			}
			r.Pixels[y][x] = p
		}
	}

	if missing > 0 {
		log.WithFields(log.Fields{
			"pixels":   missing,
			"raw_size": len(raw),
			"stride":   stride,
		}).Debug("Pixels defaulted to black")
	}

	return r
}

// unpackPixel reads pixel x of the on-disk row starting at byteIndex.
// ok is false when the pixel fell back to black.
func unpackPixel(raw []byte, byteIndex, x, bitCount int, pal Palette) (p raster.Pixel, ok bool) {
	var index int

	switch bitCount {
	case 24:
		i := byteIndex + x*3
		if i+2 >= len(raw) {
			return raster.Black, false
		}
		return raster.Pixel{B: raw[i], G: raw[i+1], R: raw[i+2]}, true

	case 8:
		i := byteIndex + x
		if i >= len(raw) {
			return raster.Black, false
		}
		index = int(raw[i])

	case 4:
		i := byteIndex + x/2
		if i >= len(raw) {
			return raster.Black, false
		}
		if x%2 == 0 {
			index = int(raw[i]>>4) & 0x0f // Upper nibble
		} else {
			index = int(raw[i]) & 0x0f // Lower nibble
		}

	case 1:
		i := byteIndex + x/8
		if i >= len(raw) {
			return raster.Black, false
		}
		shift := 7 - x%8 // MSB is the leftmost pixel
		index = int(raw[i]>>shift) & 0x01

	default:
		return raster.Black, false
	}

	if index >= len(pal) {
		return raster.Black, false
	}
	return pal[index], true
}
