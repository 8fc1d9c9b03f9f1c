package bmp

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/anas-shakeel/bmp-editor/internal/raster"
)

// bmpFile describes a hand-made bitmap. build lays it out on disk with
// binary.Write so the codec is checked against an independent encoder.
type bmpFile struct {
	width, height int32
	bitCount      uint16
	compression   uint32
	colorsUsed    uint32
	reserved1     uint16
	reserved2     uint16
	palette       []byte // raw B, G, R, X entries
	gap           []byte // bytes between the palette and the pixel data
	pixels        []byte
}

func (f bmpFile) build(t *testing.T) []byte {
	t.Helper()

	offset := uint32(HeadersSize + len(f.palette) + len(f.gap))
	fh := BitmapFileHeader{
		Type:      [2]byte{'B', 'M'},
		Size:      offset + uint32(len(f.pixels)),
		Reserved1: f.reserved1,
		Reserved2: f.reserved2,
		OffBits:   offset,
	}
	ih := BitmapInfoHeader{
		Size:        InfoHeaderSize,
		Width:       f.width,
		Height:      f.height,
		Planes:      1,
		BitCount:    f.bitCount,
		Compression: f.compression,
		SizeImage:   uint32(len(f.pixels)),
		XPixelsPerM: 2835,
		YPixelsPerM: 2835,
		ColorsUsed:  f.colorsUsed,
	}

	var buf bytes.Buffer
	if err := binary.Write(&buf, binary.LittleEndian, fh); err != nil {
		t.Fatalf("write file header: %v", err)
	}
	if err := binary.Write(&buf, binary.LittleEndian, ih); err != nil {
		t.Fatalf("write info header: %v", err)
	}
	buf.Write(f.palette)
	buf.Write(f.gap)
	buf.Write(f.pixels)

	return buf.Bytes()
}

func mustLoad(t *testing.T, data []byte) *BitmapImage {
	t.Helper()
	b, err := Load(data)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	return b
}

func mustEncode(t *testing.T, r *raster.Raster, opts EncodeOptions) []byte {
	t.Helper()
	data, err := Encode(r, opts)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	return data
}

// gradient returns a raster where every pixel differs from its neighbours.
func gradient(width, height int) *raster.Raster {
	r := raster.New(width, height)
	for y := range height {
		for x := range width {
			r.SetPixel(x, y, raster.RGB(byte(x*40), byte(y*30), byte(x*7+y*13)))
		}
	}
	return r
}

func assertRaster(t *testing.T, got, want *raster.Raster) {
	t.Helper()
	if got.Width != want.Width || got.Height != want.Height {
		t.Fatalf("raster size = %dx%d, want %dx%d", got.Width, got.Height, want.Width, want.Height)
	}
	for y := range want.Height {
		for x := range want.Width {
			if got.Pixel(x, y) != want.Pixel(x, y) {
				t.Errorf("pixel (%d,%d) = %+v, want %+v", x, y, got.Pixel(x, y), want.Pixel(x, y))
			}
		}
	}
}
