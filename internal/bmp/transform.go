package bmp

import (
	"fmt"
	"strings"

	"github.com/anas-shakeel/bmp-editor/internal/adjustments"
	"github.com/anas-shakeel/bmp-editor/internal/filters"
	"github.com/anas-shakeel/bmp-editor/internal/raster"
)

// Transform is one of the fixed edits a BitmapImage can apply
type Transform int

const (
	Invert Transform = iota
	Rotate90
	FlipHorizontal
	Grayscale
	GrayscaleLuma
)

var transformNames = map[string]Transform{
	"invert":    Invert,
	"rotate90":  Rotate90,
	"rotate":    Rotate90,
	"flip":      FlipHorizontal,
	"flip-h":    FlipHorizontal,
	"grayscale": Grayscale,
	"gray":      Grayscale,
	"luma":      GrayscaleLuma,
}

// Apply returns the transformed raster; src is not modified
func (t Transform) Apply(src *raster.Raster) *raster.Raster {
	switch t {
	case Invert:
		return filters.Invert(src)
	case Rotate90:
		return adjustments.Rotate90(src)
	case FlipHorizontal:
		return adjustments.FlipHorizontal(src)
	case Grayscale:
		return filters.Grayscale(src)
	case GrayscaleLuma:
		return filters.GrayscaleLuma(src)
	}
	return src.Clone()
}

func (t Transform) String() string {
	switch t {
	case Invert:
		return "Invert Colors"
	case Rotate90:
		return "Rotate 90°"
	case FlipHorizontal:
		return "Flip Horizontal"
	case Grayscale:
		return "Grayscale"
	case GrayscaleLuma:
		return "Grayscale (Luma)"
	}
	return fmt.Sprintf("Transform(%d)", int(t))
}

// Parses a transform name such as "invert", "rotate90" or "flip"
func ParseTransform(name string) (Transform, error) {
	t, ok := transformNames[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return 0, fmt.Errorf("unknown transform %q", name)
	}
	return t, nil
}
