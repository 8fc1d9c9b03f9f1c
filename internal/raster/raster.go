// raster package holds the decoded, true-color pixel grid of an image
package raster

import (
	"image"
	"image/color"
)

type Pixel struct {
	B, G, R byte
}

// Returns the Pixel in bytes as BGR (Blue, Green, Red)
func (p Pixel) BytesBGR() []byte {
	return []byte{p.B, p.G, p.R}
}

// RGBA implements color.Color (always opaque)
func (p Pixel) RGBA() (r, g, b, a uint32) {
	r = uint32(p.R)
	r |= r << 8
	g = uint32(p.G)
	g |= g << 8
	b = uint32(p.B)
	b |= b << 8
	return r, g, b, 0xffff
}

// RGB builds a Pixel from red, green and blue components
func RGB(r, g, b byte) Pixel {
	return Pixel{B: b, G: g, R: r}
}

var (
	Black = RGB(0, 0, 0)
	White = RGB(255, 255, 255)
)

// Raster is a dense Width x Height grid of pixels. Rows are stored
// top-to-bottom regardless of how the file lays them out on disk.
type Raster struct {
	Width  int
	Height int
	Pixels [][]Pixel
}

// Creates a black raster of the given size
func New(width, height int) *Raster {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}

	pixels := make([][]Pixel, height)
	for i := range height {
		pixels[i] = make([]Pixel, width)
	}

	return &Raster{Width: width, Height: height, Pixels: pixels}
}

// Returns the pixel at (x, y), or black when out of bounds
func (r *Raster) Pixel(x, y int) Pixel {
	if x < 0 || y < 0 || x >= r.Width || y >= r.Height {
		return Black
	}
	return r.Pixels[y][x]
}

// Sets the pixel at (x, y). Out of bounds writes are ignored.
func (r *Raster) SetPixel(x, y int, p Pixel) {
	if x < 0 || y < 0 || x >= r.Width || y >= r.Height {
		return
	}
	r.Pixels[y][x] = p
}

// Returns a deep copy of the raster
func (r *Raster) Clone() *Raster {
	dup := &Raster{Width: r.Width, Height: r.Height}

	dup.Pixels = make([][]Pixel, r.Height)
	for row := range r.Height {
		dup.Pixels[row] = make([]Pixel, r.Width)
		copy(dup.Pixels[row], r.Pixels[row])
	}

	return dup
}

// Reports whether both rasters have the same dimensions and pixels
func (r *Raster) Equal(o *Raster) bool {
	if r == nil || o == nil {
		return r == o
	}
	if r.Width != o.Width || r.Height != o.Height {
		return false
	}
	for row := range r.Height {
		for col := range r.Width {
			if r.Pixels[row][col] != o.Pixels[row][col] {
				return false
			}
		}
	}
	return true
}

// Returns a raster copied from any image.Image (alpha is dropped)
func FromImage(img image.Image) *Raster {
	bounds := img.Bounds()
	r := New(bounds.Dx(), bounds.Dy())

	for y := range r.Height {
		for x := range r.Width {
			c := color.RGBAModel.Convert(img.At(bounds.Min.X+x, bounds.Min.Y+y)).(color.RGBA)
			r.Pixels[y][x] = RGB(c.R, c.G, c.B)
		}
	}

	return r
}

// The methods below let a Raster be handed to anything that renders an image.Image.

func (r *Raster) ColorModel() color.Model {
	return color.RGBAModel
}

func (r *Raster) Bounds() image.Rectangle {
	return image.Rect(0, 0, r.Width, r.Height)
}

func (r *Raster) At(x, y int) color.Color {
	return r.Pixel(x, y)
}
