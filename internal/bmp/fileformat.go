// BMP-specific structs and types
package bmp

import (
	"encoding/binary"
	"errors"
	"fmt"
)

const (
	FileHeaderSize = 14
	InfoHeaderSize = 40
	HeadersSize    = FileHeaderSize + InfoHeaderSize

	// Largest pixel count Load accepts; protects against absurd header dimensions.
	MaxPixels = 1 << 28

	// Load rejects files declaring more than this many pixels per byte of
	// input. A complete 1 bpp file holds at most 8.
	MaxPixelsPerByte = 64
)

var (
	ErrBadSignature      = errors.New("bmp: bad signature")
	ErrTruncated         = errors.New("bmp: truncated header")
	ErrUnsupportedFormat = errors.New("bmp: unsupported format")
	ErrEmpty             = errors.New("bmp: no image loaded")
)

var signature = [2]byte{'B', 'M'}

// The BitmapFileHeader structure contains information about the type, size,
// and layout of a file that contains a DIB [device-independent bitmap].
// https://learn.microsoft.com/en-us/windows/win32/api/wingdi/ns-wingdi-bitmapfileheader

type BitmapFileHeader struct {
	Type      [2]byte // The file type: must be 0x4d42 (ASCII string "BM").
	Size      uint32  // The size, in bytes, of the bitmap file.
	Reserved1 uint16  // Reserved; kept verbatim.
	Reserved2 uint16  // Reserved; kept verbatim.
	OffBits   uint32  // Bitmap File Offset (In bytes) to Pixel Arrays
}

// The BitmapInfoHeader structure contains information about the
// dimensions and color format of DIB [device-independent bitmap].

type BitmapInfoHeader struct {
	Size            uint32 // The number of bytes required by the structure.
	Width           int32  // The width of the bitmap, in pixels.
	Height          int32  // The height of the bitmap, in pixels. Negative means top-down rows.
	Planes          uint16 // The number of planes for the target device.
	BitCount        uint16 // The number of bits-per-pixel.
	Compression     uint32 // The type of compression
	SizeImage       uint32 // The size of the image (in bytes).
	XPixelsPerM     int32  // The horizontal resolution, in pixels-per-meter.
	YPixelsPerM     int32  // The vertical resolution, in pixels-per-meter.
	ColorsUsed      uint32 // Number of color indexes that are actually used by bitmap.
	ColorsImportant uint32 // Number of color indexes required for displaying the bitmap.
}

// Decodes the 14-byte file header from the start of b
func DecodeFileHeader(b []byte) (BitmapFileHeader, error) {
	var h BitmapFileHeader
	if len(b) < FileHeaderSize {
		return h, fmt.Errorf("%w: file header needs %d bytes, got %d", ErrTruncated, FileHeaderSize, len(b))
	}
	if b[0] != signature[0] || b[1] != signature[1] {
		return h, fmt.Errorf("%w: %q", ErrBadSignature, b[0:2])
	}

	le := binary.LittleEndian
	h.Type = [2]byte{b[0], b[1]}
	h.Size = le.Uint32(b[2:6])
	h.Reserved1 = le.Uint16(b[6:8])
	h.Reserved2 = le.Uint16(b[8:10])
	h.OffBits = le.Uint32(b[10:14])

	return h, nil
}

// Decodes the 40-byte info header from the start of b (the bytes following the file header)
func DecodeInfoHeader(b []byte) (BitmapInfoHeader, error) {
	var h BitmapInfoHeader
	if len(b) < InfoHeaderSize {
		return h, fmt.Errorf("%w: info header needs %d bytes, got %d", ErrTruncated, InfoHeaderSize, len(b))
	}

	le := binary.LittleEndian
	h.Size = le.Uint32(b[0:4])
	h.Width = int32(le.Uint32(b[4:8]))
	h.Height = int32(le.Uint32(b[8:12]))
	h.Planes = le.Uint16(b[12:14])
	h.BitCount = le.Uint16(b[14:16])
	h.Compression = le.Uint32(b[16:20])
	h.SizeImage = le.Uint32(b[20:24])
	h.XPixelsPerM = int32(le.Uint32(b[24:28]))
	h.YPixelsPerM = int32(le.Uint32(b[28:32]))
	h.ColorsUsed = le.Uint32(b[32:36])
	h.ColorsImportant = le.Uint32(b[36:40])

	return h, nil
}

// Encode returns the 14 on-disk bytes of the file header
func (h BitmapFileHeader) Encode() []byte {
	b := make([]byte, FileHeaderSize)

	le := binary.LittleEndian
	b[0], b[1] = h.Type[0], h.Type[1]
	le.PutUint32(b[2:6], h.Size)
	le.PutUint16(b[6:8], h.Reserved1)
	le.PutUint16(b[8:10], h.Reserved2)
	le.PutUint32(b[10:14], h.OffBits)

	return b
}

// Encode returns the 40 on-disk bytes of the info header
func (h BitmapInfoHeader) Encode() []byte {
	b := make([]byte, InfoHeaderSize)

	le := binary.LittleEndian
	le.PutUint32(b[0:4], h.Size)
	le.PutUint32(b[4:8], uint32(h.Width))
	le.PutUint32(b[8:12], uint32(h.Height))
	le.PutUint16(b[12:14], h.Planes)
	le.PutUint16(b[14:16], h.BitCount)
	le.PutUint32(b[16:20], h.Compression)
	le.PutUint32(b[20:24], h.SizeImage)
	le.PutUint32(b[24:28], uint32(h.XPixelsPerM))
	le.PutUint32(b[28:32], uint32(h.YPixelsPerM))
	le.PutUint32(b[32:36], h.ColorsUsed)
	le.PutUint32(b[36:40], h.ColorsImportant)

	return b
}

// Validate reports ErrUnsupportedFormat for headers this codec cannot decode
func (h BitmapInfoHeader) Validate() error {
	if h.Compression != 0 {
		return fmt.Errorf("%w: compression %d (only uncompressed is supported)", ErrUnsupportedFormat, h.Compression)
	}
	if !supportedBitCount(int(h.BitCount)) {
		return fmt.Errorf("%w: %d bits per pixel (want 1, 4, 8 or 24)", ErrUnsupportedFormat, h.BitCount)
	}
	if h.Width <= 0 || h.Height == 0 {
		return fmt.Errorf("%w: dimensions %dx%d", ErrUnsupportedFormat, h.Width, h.Height)
	}
	if int64(h.Width)*abs64(int64(h.Height)) > MaxPixels {
		return fmt.Errorf("%w: dimensions %dx%d exceed %d pixels", ErrUnsupportedFormat, h.Width, h.Height, MaxPixels)
	}
	return nil
}

// checkPixelBudget rejects headers whose pixel count is out of all
// proportion to the size of the file they came from. Truncated pixel data
// is still decoded (as black) as long as it stays within the budget.
func checkPixelBudget(h BitmapInfoHeader, fileSize int) error {
	pixels := int64(h.Width) * abs64(int64(h.Height))
	if pixels > int64(fileSize)*MaxPixelsPerByte {
		return fmt.Errorf("%w: %dx%d pixels declared by a %d byte file", ErrUnsupportedFormat, h.Width, h.Height, fileSize)
	}
	return nil
}

// Reports whether rows are stored top-to-bottom (negative height)
func (h BitmapInfoHeader) TopDown() bool {
	return h.Height < 0
}

// Absolute image height, in pixels
func (h BitmapInfoHeader) AbsHeight() int {
	return int(abs64(int64(h.Height)))
}

// Total bytes in a row, including the padding to a 4-byte boundary
func Stride(width, bitCount int) int {
	return ((width*bitCount + 31) / 32) * 4
}

func supportedBitCount(bitCount int) bool {
	switch bitCount {
	case 1, 4, 8, 24:
		return true
	}
	return false
}

func abs64(n int64) int64 {
	if n < 0 {
		return -n
	}
	return n
}
