// Filters perform color manipulation and per-pixel operations
package filters

import (
	"errors"
	"math"

	"github.com/anas-shakeel/bmp-editor/internal/raster"
	"github.com/anas-shakeel/bmp-editor/internal/utils"
)

// Inverts (negates) the raster. The source is left untouched.
func Invert(src *raster.Raster) *raster.Raster {
	return mapPixels(src, func(p raster.Pixel) raster.Pixel {
		return raster.Pixel{B: 255 - p.B, G: 255 - p.G, R: 255 - p.R}
	})
}

// Converts a raster to Black-and-White
func Grayscale(src *raster.Raster) *raster.Raster {
	return mapPixels(src, func(p raster.Pixel) raster.Pixel {
		avg := byte(utils.Average(int(p.R), int(p.G), int(p.B)))
		return raster.RGB(avg, avg, avg)
	})
}

// Converts a raster to Black-and-White (with ITU-R 601-2 Luma Transform)
func GrayscaleLuma(src *raster.Raster) *raster.Raster {
	return mapPixels(src, func(p raster.Pixel) raster.Pixel {
		L := byte(int(p.R)*299/1000 + int(p.G)*587/1000 + int(p.B)*114/1000)
		return raster.RGB(L, L, L)
	})
}

// Adjusts the Brightness of a raster.
//
// method can be "add" (adds factor to each channel) or "multiply" (multiplies each channel by factor).
// Pixel values are clipped to [0, 255].
func Brightness(src *raster.Raster, factor float64, method string) (*raster.Raster, error) {
	type Operation func(x, y float64) float64
	var operation Operation

	// Select an operation of brightness (additive or multiplicative)
	switch method {
	case "add":
		operation = func(x, y float64) float64 {
			return x + y
		}
	case "multiply":
		operation = func(x, y float64) float64 {
			return x * y
		}
	default:
		return nil, errors.New("invalid method: method must be add or multiply")
	}

	return mapPixels(src, func(p raster.Pixel) raster.Pixel {
		return raster.Pixel{
			B: clip(operation(float64(p.B), factor)),
			G: clip(operation(float64(p.G), factor)),
			R: clip(operation(float64(p.R), factor)),
		}
	}), nil
}

// Adjusts the Contrast of a raster around the mean of each channel.
// factor > 1.0 increases Contrast, factor < 1.0 decreases it.
func Contrast(src *raster.Raster, factor float64) *raster.Raster {
	totalPixels := src.Width * src.Height
	if totalPixels <= 0 {
		return src.Clone()
	}

	// Compute mean for each channel
	var sumR, sumG, sumB int
	for _, row := range src.Pixels {
		for _, p := range row {
			sumR += int(p.R)
			sumG += int(p.G)
			sumB += int(p.B)
		}
	}
	meanR := float64(sumR / totalPixels) // Average of all R pixels
	meanG := float64(sumG / totalPixels) // Average of all G pixels
	meanB := float64(sumB / totalPixels) // Average of all B pixels

	return mapPixels(src, func(p raster.Pixel) raster.Pixel {
		return raster.Pixel{
			B: clip(float64(p.B)*factor + (1-factor)*meanB),
			G: clip(float64(p.G)*factor + (1-factor)*meanG),
			R: clip(float64(p.R)*factor + (1-factor)*meanR),
		}
	})
}

// Keeps one color channel ("red", "green" or "blue") and zeroes the others
func Channel(src *raster.Raster, channel string) (*raster.Raster, error) {
	var keep func(raster.Pixel) raster.Pixel

	switch channel {
	case "red":
		keep = func(p raster.Pixel) raster.Pixel { return raster.Pixel{R: p.R} }
	case "green":
		keep = func(p raster.Pixel) raster.Pixel { return raster.Pixel{G: p.G} }
	case "blue":
		keep = func(p raster.Pixel) raster.Pixel { return raster.Pixel{B: p.B} }
	default:
		return nil, errors.New("invalid color channel: only red, green, and blue are supported")
	}

	return mapPixels(src, keep), nil
}

func clip(v float64) byte {
	return byte(math.Min(math.Max(v, 0), 255))
}

func mapPixels(src *raster.Raster, fn func(raster.Pixel) raster.Pixel) *raster.Raster {
	dst := raster.New(src.Width, src.Height)

	// Iterate rows
	for row := range src.Height {
		// Iterate pixels in row
		for col := range src.Width {
			dst.Pixels[row][col] = fn(src.Pixels[row][col])
		}
	}

	return dst
}
