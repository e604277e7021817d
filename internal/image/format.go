// Package image provides the pixel buffers that padwarp resamples and pads.
//
// Buffers keep the pixel layout of the standard library image they were built
// from, so a warp of a grayscale image stays grayscale and a warp of a
// premultiplied RGBA image stays premultiplied.
package image

import (
	"image"
	"image/color"
)

// Format represents a pixel storage format.
type Format uint8

const (
	// FormatGray8 is 8-bit grayscale (1 byte per pixel), like image.Gray.
	FormatGray8 Format = iota

	// FormatGray16 is 16-bit big-endian grayscale (2 bytes per pixel), like image.Gray16.
	FormatGray16

	// FormatRGBA8 is 32-bit non-premultiplied RGBA (4 bytes per pixel), like image.NRGBA.
	// Images whose color model has no dedicated format are converted to it.
	FormatRGBA8

	// FormatRGBAPremul is 32-bit RGBA with premultiplied alpha, like image.RGBA.
	FormatRGBAPremul

	// formatCount is the number of formats (for internal use).
	formatCount
)

// FormatInfo contains metadata about a pixel format.
type FormatInfo struct {
	// BytesPerPixel is the number of bytes per pixel.
	BytesPerPixel int

	// Channels is the number of samples per pixel.
	Channels int

	// BitsPerChannel is the number of bits per sample.
	BitsPerChannel int

	// HasAlpha indicates if the format has an alpha channel.
	HasAlpha bool

	// IsPremultiplied indicates if alpha is premultiplied.
	IsPremultiplied bool

	// Model is the color model of the matching standard library image.
	Model color.Model
}

var formatInfoTable = [formatCount]FormatInfo{
	FormatGray8: {
		BytesPerPixel:  1,
		Channels:       1,
		BitsPerChannel: 8,
		Model:          color.GrayModel,
	},
	FormatGray16: {
		BytesPerPixel:  2,
		Channels:       1,
		BitsPerChannel: 16,
		Model:          color.Gray16Model,
	},
	FormatRGBA8: {
		BytesPerPixel:  4,
		Channels:       4,
		BitsPerChannel: 8,
		HasAlpha:       true,
		Model:          color.NRGBAModel,
	},
	FormatRGBAPremul: {
		BytesPerPixel:   4,
		Channels:        4,
		BitsPerChannel:  8,
		HasAlpha:        true,
		IsPremultiplied: true,
		Model:           color.RGBAModel,
	},
}

// Info returns the FormatInfo for this format.
func (f Format) Info() FormatInfo {
	if f >= formatCount {
		return FormatInfo{}
	}
	return formatInfoTable[f]
}

// BytesPerPixel returns the number of bytes per pixel for this format.
func (f Format) BytesPerPixel() int {
	return f.Info().BytesPerPixel
}

// Channels returns the number of samples per pixel.
func (f Format) Channels() int {
	return f.Info().Channels
}

// BytesPerChannel returns the storage size of one sample.
func (f Format) BytesPerChannel() int {
	return f.Info().BitsPerChannel / 8
}

// MaxValue returns the largest value a single sample can hold.
func (f Format) MaxValue() float64 {
	if f.Info().BitsPerChannel == 16 {
		return 0xffff
	}
	return 0xff
}

// HasAlpha returns true if this format has an alpha channel.
func (f Format) HasAlpha() bool {
	return f.Info().HasAlpha
}

// IsPremultiplied returns true if alpha is premultiplied.
func (f Format) IsPremultiplied() bool {
	return f.Info().IsPremultiplied
}

// Model returns the color model matching this format.
// Unknown formats report color.NRGBAModel.
func (f Format) Model() color.Model {
	if m := f.Info().Model; m != nil {
		return m
	}
	return color.NRGBAModel
}

// String returns a string representation of the format.
func (f Format) String() string {
	switch f {
	case FormatGray8:
		return "Gray8"
	case FormatGray16:
		return "Gray16"
	case FormatRGBA8:
		return "RGBA8"
	case FormatRGBAPremul:
		return "RGBAPremul"
	default:
		return "Unknown"
	}
}

// IsValid returns true if the format is a valid known format.
func (f Format) IsValid() bool {
	return f < formatCount
}

// RowBytes calculates the number of bytes needed for a row of the given width.
func (f Format) RowBytes(width int) int {
	return width * f.BytesPerPixel()
}

// ImageBytes calculates the total number of bytes needed for an image.
func (f Format) ImageBytes(width, height int) int {
	return f.RowBytes(width) * height
}

// Encode converts c to this format's color model and returns its raw pixel bytes.
func (f Format) Encode(c color.Color) []byte {
	px := make([]byte, f.BytesPerPixel())
	switch v := f.Model().Convert(c).(type) {
	case color.Gray:
		px[0] = v.Y
	case color.Gray16:
		px[0] = byte(v.Y >> 8)
		px[1] = byte(v.Y)
	case color.NRGBA:
		px[0], px[1], px[2], px[3] = v.R, v.G, v.B, v.A
	case color.RGBA:
		px[0], px[1], px[2], px[3] = v.R, v.G, v.B, v.A
	}
	return px
}

// Decode interprets raw pixel bytes as a color of this format's model.
func (f Format) Decode(px []byte) color.Color {
	switch f {
	case FormatGray8:
		return color.Gray{Y: px[0]}
	case FormatGray16:
		return color.Gray16{Y: uint16(px[0])<<8 | uint16(px[1])}
	case FormatRGBA8:
		return color.NRGBA{R: px[0], G: px[1], B: px[2], A: px[3]}
	case FormatRGBAPremul:
		return color.RGBA{R: px[0], G: px[1], B: px[2], A: px[3]}
	default:
		return color.Transparent
	}
}

// FormatOf reports the format that preserves the pixel layout of img.
// Paletted, YCbCr, CMYK and other models map to FormatRGBA8.
func FormatOf(img image.Image) Format {
	switch img := img.(type) {
	case *ImageBuf:
		return img.format
	case *image.Gray:
		return FormatGray8
	case *image.Gray16:
		return FormatGray16
	case *image.RGBA:
		return FormatRGBAPremul
	default:
		return FormatRGBA8
	}
}
