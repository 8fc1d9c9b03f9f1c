// bmp package implements a reader and writer for uncompressed 1, 4, 8 and
// 24-bit Windows bitmaps.
package bmp

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/apex/log"

	"github.com/anas-shakeel/bmp-editor/internal/adjustments"
	"github.com/anas-shakeel/bmp-editor/internal/filters"
	"github.com/anas-shakeel/bmp-editor/internal/raster"
	"github.com/anas-shakeel/bmp-editor/internal/utils"
)

// BitmapImage owns everything known about one loaded bitmap: its headers,
// palette, the bytes it was loaded from and the current (possibly edited)
// pixels. The zero value is an empty image ready for Load.
//
// A BitmapImage is not safe for concurrent use.
type BitmapImage struct {
	filename   string
	fileHeader BitmapFileHeader
	infoHeader BitmapInfoHeader
	palette    Palette
	source     []byte // verbatim copy of the loaded file
	raw        []byte // pixel data, a sub-slice of source
	pixels     *raster.Raster
	modified   bool
}

// Decodes a bitmap from data into a new BitmapImage
func Load(data []byte) (*BitmapImage, error) {
	var b BitmapImage
	if err := b.Load(data); err != nil {
		return nil, err
	}
	return &b, nil
}

// Reads a Bitmap file
func ReadBitmap(filename string) (*BitmapImage, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}

	b, err := Load(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	b.filename = filename

	return b, nil
}

// Load decodes data and replaces the image's state with it. On error the
// previous state is left exactly as it was.
func (b *BitmapImage) Load(data []byte) error {
	fh, err := DecodeFileHeader(data)
	if err != nil {
		return err
	}
	ih, err := DecodeInfoHeader(data[FileHeaderSize:])
	if err != nil {
		return err
	}
	if err := ih.Validate(); err != nil {
		return err
	}
	if err := checkPixelBudget(ih, len(data)); err != nil {
		return err
	}

	source := bytes.Clone(data)

	// The palette directly follows the 40-byte info header
	pal := DecodePalette(source[HeadersSize:], PaletteSize(ih))

	var raw []byte
	if uint64(fh.OffBits) <= uint64(len(source)) {
		raw = source[fh.OffBits:]
	}

	pixels := Unpack(raw, ih, pal)

	log.WithFields(log.Fields{
		"width":    ih.Width,
		"height":   ih.Height,
		"bitcount": ih.BitCount,
		"palette":  len(pal),
		"offset":   fh.OffBits,
		"raw_size": len(raw),
	}).Debug("Decoded bitmap")

	*b = BitmapImage{
		fileHeader: fh,
		infoHeader: ih,
		palette:    pal,
		source:     source,
		raw:        raw,
		pixels:     pixels,
	}

	return nil
}

// ApplyTransform replaces the pixels with t applied to them and marks the
// image modified. It does nothing if no image is loaded.
func (b *BitmapImage) ApplyTransform(t Transform) {
	if b.Empty() {
		return
	}

	b.pixels = t.Apply(b.pixels)
	b.modified = true

	log.WithFields(log.Fields{
		"transform": t.String(),
		"width":     b.pixels.Width,
		"height":    b.pixels.Height,
	}).Debug("Applied transform")
}

// Crops the image to the given region (0,0 is the top-left pixel)
func (b *BitmapImage) Crop(x, y, width, height int) error {
	if b.Empty() {
		return ErrEmpty
	}

	cropped, err := adjustments.Crop(b.pixels, x, y, width, height)
	if err != nil {
		return err
	}
	b.pixels = cropped
	b.modified = true

	return nil
}

// Adjusts brightness by factor; method is "add" or "multiply"
func (b *BitmapImage) Brightness(factor float64, method string) error {
	if b.Empty() {
		return ErrEmpty
	}

	adjusted, err := filters.Brightness(b.pixels, factor, method)
	if err != nil {
		return err
	}
	b.pixels = adjusted
	b.modified = true

	return nil
}

// Adjusts contrast by factor (> 1 increases, < 1 decreases)
func (b *BitmapImage) Contrast(factor float64) error {
	if b.Empty() {
		return ErrEmpty
	}

	b.pixels = filters.Contrast(b.pixels, factor)
	b.modified = true

	return nil
}

// Keeps only the "red", "green" or "blue" channel
func (b *BitmapImage) IsolateChannel(channel string) error {
	if b.Empty() {
		return ErrEmpty
	}

	isolated, err := filters.Channel(b.pixels, channel)
	if err != nil {
		return err
	}
	b.pixels = isolated
	b.modified = true

	return nil
}

// ConvertBitCount changes the bit depth the image is saved with. Indexed
// depths (1, 4, 8) use pal, or DefaultPalette when pal is empty.
func (b *BitmapImage) ConvertBitCount(bitCount int, pal Palette) error {
	if b.Empty() {
		return ErrEmpty
	}
	if !supportedBitCount(bitCount) {
		return fmt.Errorf("%w: %d bits per pixel (want 1, 4, 8 or 24)", ErrUnsupportedFormat, bitCount)
	}

	if bitCount > 8 {
		pal = nil
	} else if len(pal) == 0 {
		pal = DefaultPalette(bitCount)
	}

	b.infoHeader.BitCount = uint16(bitCount)
	b.infoHeader.ColorsUsed = 0
	b.infoHeader.ColorsImportant = 0
	b.palette = pal
	b.modified = true

	return nil
}

// Save returns the image encoded as a BMP file.
//
// An unmodified image is reproduced byte for byte. A modified one gets fresh
// headers (sizes and offsets follow the current dimensions and bit depth,
// height keeps its sign), the palette unchanged and repacked pixel data.
func (b *BitmapImage) Save() ([]byte, error) {
	if b.Empty() {
		return nil, ErrEmpty
	}

	if !b.modified {
		out := make([]byte, 0, len(b.source))
		out = append(out, b.fileHeader.Encode()...)
		out = append(out, b.infoHeader.Encode()...)
		return append(out, b.source[HeadersSize:]...), nil
	}

	return encode(b.pixels, b.fileHeader, b.infoHeader, b.palette), nil
}

// Saves the bitmap image onto local disk
func (b *BitmapImage) WriteFile(filename string) error {
	data, err := b.Save()
	if err != nil {
		return err
	}
	return os.WriteFile(filename, data, 0644)
}

func (b *BitmapImage) Empty() bool {
	return b == nil || b.pixels == nil
}

func (b *BitmapImage) Modified() bool {
	return b.modified
}

func (b *BitmapImage) Filename() string {
	return b.filename
}

// Width of the current pixels (after any transform)
func (b *BitmapImage) Width() int {
	if b.Empty() {
		return 0
	}
	return b.pixels.Width
}

// Height of the current pixels (after any transform)
func (b *BitmapImage) Height() int {
	if b.Empty() {
		return 0
	}
	return b.pixels.Height
}

func (b *BitmapImage) BitCount() int {
	return int(b.infoHeader.BitCount)
}

// Raster returns the current pixels. Callers must treat it as read-only.
func (b *BitmapImage) Raster() *raster.Raster {
	return b.pixels
}

// Pixel data exactly as loaded, starting at OffBits
func (b *BitmapImage) RawData() []byte {
	return b.raw
}

func (b *BitmapImage) Palette() Palette {
	return b.palette
}

// Headers as loaded; Save recomputes them for modified images.
func (b *BitmapImage) FileHeader() BitmapFileHeader {
	return b.fileHeader
}

func (b *BitmapImage) InfoHeader() BitmapInfoHeader {
	return b.infoHeader
}

// Print the bitmap in terminal. Use for small images only
func (b *BitmapImage) PrintBitmap(w io.Writer, block string) {
	if b.Empty() {
		return
	}
	for _, row := range b.pixels.Pixels {
		for _, pixel := range row {
			fmt.Fprint(w, utils.ColoredBlock(block, int(pixel.R), int(pixel.G), int(pixel.B)))
		}
		fmt.Fprintln(w)
	}
}

// Print the Metadata bitmap in terminal. (in human-readable format)
func (b *BitmapImage) PrintMetadata(w io.Writer) {
	if b.Empty() {
		fmt.Fprintln(w, "No image loaded")
		return
	}

	fh, ih := b.fileHeader, b.infoHeader

	fmt.Fprintf(w, "Filename: \t%v\n", b.filename)
	fmt.Fprintf(w, "Filesize: \t%v bytes\n", len(b.source))
	fmt.Fprintf(w, "Width: \t\t%v px\n", b.Width())
	fmt.Fprintf(w, "Height: \t%v px\n", b.Height())
	fmt.Fprintf(w, "Format: \t%v-bit BMP\n", ih.BitCount)
	fmt.Fprintf(w, "Modified: \t%v\n", b.modified)
	fmt.Fprintf(w, "Stride: \t%v bytes\n", Stride(b.Width(), int(ih.BitCount)))

	fmt.Fprintf(w, "\nBMP File Header:\n")
	fmt.Fprintf(w, "Type: \t\t%s\n", fh.Type[:])
	fmt.Fprintf(w, "Size: \t\t%v bytes\n", fh.Size)
	fmt.Fprintf(w, "Reserved1: \t%v\n", fh.Reserved1)
	fmt.Fprintf(w, "Reserved2: \t%v\n", fh.Reserved2)
	fmt.Fprintf(w, "OffBits: \t%v bytes\n", fh.OffBits)

	fmt.Fprintf(w, "\nBMP Info Header:\n")
	fmt.Fprintf(w, "Size: \t\t%v bytes\n", ih.Size)
	fmt.Fprintf(w, "Width: \t\t%v px\n", ih.Width)
	fmt.Fprintf(w, "Height: \t%v px\n", ih.Height)
	fmt.Fprintf(w, "Planes: \t%v\n", ih.Planes)
	fmt.Fprintf(w, "BitCount: \t%v bits\n", ih.BitCount)
	fmt.Fprintf(w, "Compression: \t%v\n", ih.Compression)
	fmt.Fprintf(w, "SizeImage: \t%v bytes\n", ih.SizeImage)
	fmt.Fprintf(w, "XPixelsPerM: \t%v\n", ih.XPixelsPerM)
	fmt.Fprintf(w, "YPixelsPerM: \t%v\n", ih.YPixelsPerM)
	fmt.Fprintf(w, "ColorsUsed: \t%v\n", ih.ColorsUsed)
	fmt.Fprintf(w, "ColorsImportant: %v\n", ih.ColorsImportant)

	if len(b.palette) > 0 {
		fmt.Fprintf(w, "\nPalette (%d colors):\n", len(b.palette))
		for i, c := range b.palette {
			fmt.Fprintf(w, "%3d: %s #%02x%02x%02x\n", i, utils.ColoredBlock("  ", int(c.R), int(c.G), int(c.B)), c.R, c.G, c.B)
		}
	}
}
