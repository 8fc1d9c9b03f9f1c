package raster

import (
	"image"
	"image/color"
	"testing"
)

func TestNewIsBlack(t *testing.T) {
	r := New(3, 2)
	if r.Width != 3 || r.Height != 2 {
		t.Fatalf("New(3, 2) = %dx%d", r.Width, r.Height)
	}
	for y := range r.Height {
		for x := range r.Width {
			if r.Pixel(x, y) != Black {
				t.Errorf("pixel (%d,%d) = %v, want black", x, y, r.Pixel(x, y))
			}
		}
	}
}

func TestPixelOutOfBounds(t *testing.T) {
	r := New(2, 2)
	r.SetPixel(5, 5, White) // ignored
	r.SetPixel(-1, 0, White)

	if got := r.Pixel(5, 5); got != Black {
		t.Errorf("Pixel(5, 5) = %v, want black", got)
	}
	if got := r.Pixel(-1, 0); got != Black {
		t.Errorf("Pixel(-1, 0) = %v, want black", got)
	}
}

func TestCloneIsIndependent(t *testing.T) {
	r := New(2, 2)
	r.SetPixel(1, 1, RGB(10, 20, 30))

	dup := r.Clone()
	if !dup.Equal(r) {
		t.Fatal("clone differs from source")
	}

	dup.SetPixel(0, 0, White)
	if r.Pixel(0, 0) != Black {
		t.Error("writing to the clone changed the source")
	}
	if dup.Equal(r) {
		t.Error("Equal() = true after changing the clone")
	}
}

func TestEqualDimensions(t *testing.T) {
	if New(2, 3).Equal(New(3, 2)) {
		t.Error("2x3 raster equals 3x2 raster")
	}
	var nilRaster *Raster
	if nilRaster.Equal(New(1, 1)) {
		t.Error("nil raster equals non-nil raster")
	}
}

func TestImageInterface(t *testing.T) {
	r := New(2, 1)
	r.SetPixel(1, 0, RGB(255, 128, 0))

	var img image.Image = r
	if img.Bounds() != image.Rect(0, 0, 2, 1) {
		t.Errorf("Bounds() = %v", img.Bounds())
	}

	got := color.RGBAModel.Convert(img.At(1, 0)).(color.RGBA)
	want := color.RGBA{R: 255, G: 128, B: 0, A: 255}
	if got != want {
		t.Errorf("At(1, 0) = %v, want %v", got, want)
	}
}

func TestFromImage(t *testing.T) {
	src := image.NewRGBA(image.Rect(10, 10, 12, 12))
	src.Set(11, 10, color.RGBA{R: 1, G: 2, B: 3, A: 255})

	r := FromImage(src)
	if r.Width != 2 || r.Height != 2 {
		t.Fatalf("FromImage size = %dx%d, want 2x2", r.Width, r.Height)
	}
	if got := r.Pixel(1, 0); got != RGB(1, 2, 3) {
		t.Errorf("Pixel(1, 0) = %v, want {3 2 1}", got)
	}
	if got := r.Pixel(0, 0); got != Black {
		t.Errorf("Pixel(0, 0) = %v, want black", got)
	}
}
