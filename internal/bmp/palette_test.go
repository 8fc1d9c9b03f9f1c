package bmp

import (
	"bytes"
	"testing"

	"github.com/anas-shakeel/bmp-editor/internal/raster"
)

func TestPaletteSize(t *testing.T) {
	tests := []struct {
		bitCount   uint16
		colorsUsed uint32
		want       int
	}{
		{1, 0, 2},
		{4, 0, 16},
		{8, 0, 256},
		{8, 12, 12},
		{4, 3, 3},
		{24, 0, 0},
		{24, 16, 0},
	}

	for _, tt := range tests {
		h := BitmapInfoHeader{BitCount: tt.bitCount, ColorsUsed: tt.colorsUsed}
		if got := PaletteSize(h); got != tt.want {
			t.Errorf("PaletteSize(bpp=%d, used=%d) = %d, want %d", tt.bitCount, tt.colorsUsed, got, tt.want)
		}
	}
}

func TestDecodePalette(t *testing.T) {
	data := []byte{
		0x01, 0x02, 0x03, 0xff, // B, G, R, reserved
		0x10, 0x20, 0x30, 0x00,
		0xaa, 0xbb, // partial entry
	}

	pal := DecodePalette(data, 4)
	if len(pal) != 2 {
		t.Fatalf("len = %d, want 2 (only complete entries)", len(pal))
	}
	if pal[0] != raster.RGB(0x03, 0x02, 0x01) {
		t.Errorf("pal[0] = %+v", pal[0])
	}
	if pal[1] != raster.RGB(0x30, 0x20, 0x10) {
		t.Errorf("pal[1] = %+v", pal[1])
	}

	if got := DecodePalette(data, 1); len(got) != 1 {
		t.Errorf("DecodePalette(count=1) len = %d", len(got))
	}
	if got := DecodePalette(data, 0); got != nil {
		t.Errorf("DecodePalette(count=0) = %v, want nil", got)
	}
}

func TestPaletteEncode(t *testing.T) {
	pal := Palette{raster.RGB(1, 2, 3), raster.RGB(4, 5, 6)}
	want := []byte{3, 2, 1, 0, 6, 5, 4, 0}

	if got := pal.Encode(); !bytes.Equal(got, want) {
		t.Errorf("Encode = % x, want % x", got, want)
	}
}

func TestPaletteLookup(t *testing.T) {
	pal := Palette{raster.White}

	if pal.Lookup(0) != raster.White {
		t.Error("Lookup(0) is not white")
	}
	if pal.Lookup(1) != raster.Black || pal.Lookup(-1) != raster.Black {
		t.Error("Lookup outside the palette is not black")
	}
}

func TestPaletteNearest(t *testing.T) {
	red := raster.RGB(255, 0, 0)

	tests := []struct {
		name  string
		pal   Palette
		c     raster.Pixel
		limit int
		want  int
	}{
		{
			name:  "closest red",
			pal:   Palette{raster.RGB(254, 0, 0), raster.RGB(0, 255, 0)},
			c:     red,
			limit: 256,
			want:  0,
		},
		{
			name:  "exact match later",
			pal:   Palette{raster.Black, raster.White, red},
			c:     red,
			limit: 256,
			want:  2,
		},
		{
			name:  "tie keeps first",
			pal:   Palette{raster.RGB(10, 0, 0), raster.RGB(0, 10, 0), raster.RGB(0, 0, 10)},
			c:     raster.Black,
			limit: 256,
			want:  0,
		},
		{
			name:  "limit hides exact match",
			pal:   Palette{raster.Black, raster.RGB(200, 0, 0), red},
			c:     red,
			limit: 2,
			want:  1,
		},
		{
			name:  "empty palette",
			pal:   nil,
			c:     red,
			limit: 256,
			want:  0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.pal.Nearest(tt.c, tt.limit); got != tt.want {
				t.Errorf("Nearest = %d, want %d", got, tt.want)
			}
		})
	}
}
