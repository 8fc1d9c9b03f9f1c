// Adjusts image dimensions, orientation, or structure.
package adjustments

import (
	"errors"

	"github.com/anas-shakeel/bmp-editor/internal/raster"
)

// Rotates the raster 90 degrees clockwise. Width and height swap.
func Rotate90(src *raster.Raster) *raster.Raster {
	dst := raster.New(src.Height, src.Width)

	for row := range dst.Height {
		for col := range dst.Width {
			dst.Pixels[row][col] = src.Pixels[src.Height-1-col][row]
		}
	}

	return dst
}

// Mirrors the raster's columns (left becomes right)
func FlipHorizontal(src *raster.Raster) *raster.Raster {
	dst := raster.New(src.Width, src.Height)

	for row := range src.Height {
		for col := range src.Width {
			dst.Pixels[row][col] = src.Pixels[row][src.Width-1-col]
		}
	}

	return dst
}

// Crops a region in the raster (0,0  is at the top-left of the image)
func Crop(src *raster.Raster, x, y, width, height int) (*raster.Raster, error) {
	// Validate bounds
	if x < 0 || y < 0 {
		return nil, errors.New("invalid bounds: negative origin")
	} else if width <= 0 || height <= 0 {
		return nil, errors.New("invalid bounds: empty region")
	} else if width+x > src.Width {
		return nil, errors.New("invalid bounds: width out of bounds")
	} else if height+y > src.Height {
		return nil, errors.New("invalid bounds: height out of bounds")
	}

	dst := raster.New(width, height)
	for row := range height { // Height | Rows
		copy(dst.Pixels[row], src.Pixels[row+y][x:x+width])
	}

	return dst, nil
}
