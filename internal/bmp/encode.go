package bmp

import (
	"errors"
	"fmt"

	"github.com/anas-shakeel/bmp-editor/internal/raster"
)

// EncodeOptions control how Encode writes a new bitmap
type EncodeOptions struct {
	BitCount    int     // 1, 4, 8 or 24; 0 means 24
	Palette     Palette // Used for BitCount <= 8; DefaultPalette when empty
	TopDown     bool    // Store rows top-to-bottom (negative height)
	XPixelsPerM int32
	YPixelsPerM int32
}

// Encodes a raster as a new (uncompressed) bitmap file
func Encode(r *raster.Raster, opts EncodeOptions) ([]byte, error) {
	if r == nil || r.Width <= 0 || r.Height <= 0 {
		return nil, errors.New("bmp: width and height must be greater than 0")
	}

	bitCount := opts.BitCount
	if bitCount == 0 {
		bitCount = 24
	}
	if !supportedBitCount(bitCount) {
		return nil, fmt.Errorf("%w: %d bits per pixel (want 1, 4, 8 or 24)", ErrUnsupportedFormat, bitCount)
	}

	pal := opts.Palette
	if bitCount <= 8 && len(pal) == 0 {
		pal = DefaultPalette(bitCount)
	}

	height := int32(1) // Only the sign matters here; encode sets the size.
	if opts.TopDown {
		height = -1
	}

	fh := BitmapFileHeader{Type: signature}
	ih := BitmapInfoHeader{
		Height:      height,
		Planes:      1,
		BitCount:    uint16(bitCount),
		XPixelsPerM: opts.XPixelsPerM,
		YPixelsPerM: opts.YPixelsPerM,
	}

	return encode(r, fh, ih, pal), nil
}

// encode writes headers, palette and packed pixels for r. Header fields that
// depend on the pixels are recomputed; the others (reserved words, planes,
// resolution, ColorsImportant) are kept from fh and ih.
func encode(r *raster.Raster, fh BitmapFileHeader, ih BitmapInfoHeader, pal Palette) []byte {
	bitCount := int(ih.BitCount)
	topDown := ih.TopDown()
	if bitCount > 8 {
		pal = nil
	} else if len(pal) == 0 {
		// An indexed file must carry the colors its pixels refer to
		pal = DefaultPalette(bitCount)
	}

	sizeImage := Stride(r.Width, bitCount) * r.Height

	ih.Size = InfoHeaderSize
	ih.Width = int32(r.Width)
	ih.Height = int32(r.Height)
	if topDown {
		ih.Height = -ih.Height
	}
	ih.Compression = 0
	ih.SizeImage = uint32(sizeImage)
	switch {
	case pal == nil:
		ih.ColorsUsed = 0
	case ih.ColorsUsed != 0 || len(pal) != 1<<bitCount:
		ih.ColorsUsed = uint32(len(pal))
	}

	fh.Type = signature
	fh.OffBits = uint32(HeadersSize + len(pal)*4)
	fh.Size = fh.OffBits + uint32(sizeImage)

	out := make([]byte, 0, int(fh.Size))
	out = append(out, fh.Encode()...)
	out = append(out, ih.Encode()...)
	out = append(out, pal.Encode()...)
	out = append(out, Pack(r, bitCount, topDown, pal)...)

	return out
}

// DefaultPalette returns the palette Encode uses when none is given:
// black and white for 1 bpp, an even grayscale ramp for 4 and 8 bpp.
func DefaultPalette(bitCount int) Palette {
	switch bitCount {
	case 1:
		return Palette{raster.Black, raster.White}
	case 4, 8:
		n := 1 << bitCount
		pal := make(Palette, n)
		for i := range n {
			v := byte(i * 255 / (n - 1))
			pal[i] = raster.RGB(v, v, v)
		}
		return pal
	}
	return nil
}
