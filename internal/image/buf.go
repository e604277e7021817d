package image

import (
	"errors"
	"image"
	"image/color"
)

// Common errors for image operations.
var (
	// ErrInvalidDimensions is returned when width or height is non-positive.
	ErrInvalidDimensions = errors.New("image: invalid dimensions")

	// ErrInvalidFormat is returned when the format is not recognized.
	ErrInvalidFormat = errors.New("image: invalid format")

	// ErrFormatMismatch is returned when two buffers must share a format but do not.
	ErrFormatMismatch = errors.New("image: format mismatch")
)

// ImageBuf is a format-aware pixel buffer anchored at the origin.
//
// ImageBuf stores pixel data in a contiguous byte slice, one tight row after another.
// It implements draw.Image, so it can be handed to golang.org/x/image/draw
// and to the standard library image/draw package directly.
//
// Thread safety: ImageBuf is safe for concurrent read access. Write operations
// require external synchronization.
type ImageBuf struct {
	data   []byte
	width  int
	height int
	stride int
	format Format
}

// NewImageBuf creates a new zero-filled image buffer with the given dimensions and format.
// Returns an error if dimensions are invalid or format is unknown.
func NewImageBuf(width, height int, format Format) (*ImageBuf, error) {
	if width <= 0 || height <= 0 {
		return nil, ErrInvalidDimensions
	}
	if !format.IsValid() {
		return nil, ErrInvalidFormat
	}

	stride := format.RowBytes(width)
	data := make([]byte, stride*height)

	return &ImageBuf{
		data:   data,
		width:  width,
		height: height,
		stride: stride,
		format: format,
	}, nil
}

// Width returns the image width in pixels.
func (b *ImageBuf) Width() int {
	return b.width
}

// Height returns the image height in pixels.
func (b *ImageBuf) Height() int {
	return b.height
}

// Size returns the image dimensions as a point (width, height).
func (b *ImageBuf) Size() image.Point {
	return image.Pt(b.width, b.height)
}

// Stride returns the number of bytes per row (including padding).
func (b *ImageBuf) Stride() int {
	return b.stride
}

// Format returns the pixel format.
func (b *ImageBuf) Format() Format {
	return b.format
}

// Data returns the raw pixel data slice.
func (b *ImageBuf) Data() []byte {
	return b.data
}

// RowBytes returns a slice of the pixel data for row y.
// Returns nil if y is out of bounds.
func (b *ImageBuf) RowBytes(y int) []byte {
	if y < 0 || y >= b.height {
		return nil
	}
	start := y * b.stride
	end := start + b.format.RowBytes(b.width)
	return b.data[start:end]
}

// PixelOffset returns the byte offset of pixel (x, y) in the data slice.
// Returns -1 if coordinates are out of bounds.
func (b *ImageBuf) PixelOffset(x, y int) int {
	if x < 0 || x >= b.width || y < 0 || y >= b.height {
		return -1
	}
	return y*b.stride + x*b.format.BytesPerPixel()
}

// PixelBytes returns a slice of the raw bytes for pixel (x, y).
// Returns nil if coordinates are out of bounds.
func (b *ImageBuf) PixelBytes(x, y int) []byte {
	offset := b.PixelOffset(x, y)
	if offset < 0 {
		return nil
	}
	bpp := b.format.BytesPerPixel()
	return b.data[offset : offset+bpp]
}

// Clear sets all pixels to zero (transparent black for RGBA formats).
func (b *ImageBuf) Clear() {
	for y := range b.height {
		clear(b.RowBytes(y))
	}
}

// Fill sets every pixel to the given raw pixel value.
// pixel must hold at least BytesPerPixel bytes.
func (b *ImageBuf) Fill(pixel []byte) {
	bpp := b.format.BytesPerPixel()
	if len(pixel) < bpp {
		return
	}
	if isZero(pixel[:bpp]) {
		b.Clear()
		return
	}
	for y := range b.height {
		row := b.RowBytes(y)
		for off := 0; off < len(row); off += bpp {
			copy(row[off:off+bpp], pixel)
		}
	}
}

// Bounds implements image.Image.
func (b *ImageBuf) Bounds() image.Rectangle {
	return image.Rect(0, 0, b.width, b.height)
}

// ColorModel implements image.Image.
func (b *ImageBuf) ColorModel() color.Model {
	return b.format.Model()
}

// At implements image.Image. Out-of-bounds pixels are transparent.
func (b *ImageBuf) At(x, y int) color.Color {
	px := b.PixelBytes(x, y)
	if px == nil {
		return b.format.Model().Convert(color.Transparent)
	}
	return b.format.Decode(px)
}

// Set implements draw.Image. Out-of-bounds writes are ignored.
func (b *ImageBuf) Set(x, y int, c color.Color) {
	offset := b.PixelOffset(x, y)
	if offset < 0 {
		return
	}
	copy(b.data[offset:], b.format.Encode(c))
}

func isZero(p []byte) bool {
	for _, v := range p {
		if v != 0 {
			return false
		}
	}
	return true
}
