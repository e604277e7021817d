package image

import (
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	// Decoders registered with image.Decode.
	_ "image/gif"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// I/O errors.
var (
	// ErrUnsupportedFormat is returned when the file extension has no encoder.
	ErrUnsupportedFormat = errors.New("image: unsupported format")

	// ErrEmptyImage is returned when a decoded or converted image has no pixels.
	ErrEmptyImage = errors.New("image: empty image")
)

// LoadImage loads an image from the given file path, detecting the format from
// its content. PNG, JPEG, GIF, BMP, TIFF and WebP are supported.
func LoadImage(path string) (*ImageBuf, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("image: open file: %w", err)
	}
	defer func() { _ = f.Close() }()

	return Decode(f)
}

// Decode decodes an image from the given reader, auto-detecting the format.
func Decode(r io.Reader) (*ImageBuf, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("image: decode: %w", err)
	}
	return FromStdImage(img)
}

// Save writes img to path, choosing the encoder from the file extension
// (.png, .jpg, .jpeg). JPEG output uses quality 95.
func Save(path string, img image.Image) error {
	var encode func(io.Writer, image.Image) error
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		encode = png.Encode
	case ".jpg", ".jpeg":
		encode = func(w io.Writer, m image.Image) error {
			return jpeg.Encode(w, m, &jpeg.Options{Quality: 95})
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
	}

	f, err := os.Create(filepath.Clean(path))
	if err != nil {
		return fmt.Errorf("image: create file: %w", err)
	}
	if err := encode(f, img); err != nil {
		_ = f.Close()
		return fmt.Errorf("image: encode %s: %w", filepath.Base(path), err)
	}
	return f.Close()
}

// FromStdImage copies a standard library image into a new ImageBuf whose
// format preserves the source layout (see FormatOf). The result is anchored
// at the origin even when img.Bounds().Min is not.
func FromStdImage(img image.Image) (*ImageBuf, error) {
	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()
	if width <= 0 || height <= 0 {
		return nil, ErrEmptyImage
	}

	buf, err := NewImageBuf(width, height, FormatOf(img))
	if err != nil {
		return nil, err
	}

	switch src := img.(type) {
	case *ImageBuf:
		for y := range height {
			copy(buf.RowBytes(y), src.RowBytes(y))
		}
		return buf, nil
	case *image.Gray:
		copyRows(buf, src.Pix, src.Stride, src.PixOffset(bounds.Min.X, bounds.Min.Y))
		return buf, nil
	case *image.Gray16:
		copyRows(buf, src.Pix, src.Stride, src.PixOffset(bounds.Min.X, bounds.Min.Y))
		return buf, nil
	case *image.RGBA:
		copyRows(buf, src.Pix, src.Stride, src.PixOffset(bounds.Min.X, bounds.Min.Y))
		return buf, nil
	case *image.NRGBA:
		copyRows(buf, src.Pix, src.Stride, src.PixOffset(bounds.Min.X, bounds.Min.Y))
		return buf, nil
	}

	// Generic slow path for any image type
	for y := range height {
		for x := range width {
			buf.Set(x, y, img.At(bounds.Min.X+x, bounds.Min.Y+y))
		}
	}
	return buf, nil
}

// copyRows copies height rows of pix, starting at byte offset start, into buf.
func copyRows(buf *ImageBuf, pix []byte, stride, start int) {
	n := buf.format.RowBytes(buf.width)
	for y := range buf.height {
		off := start + y*stride
		copy(buf.RowBytes(y), pix[off:off+n])
	}
}

// ToStdImage converts the ImageBuf to the standard library image type that
// matches its format: *image.Gray, *image.Gray16, *image.NRGBA or *image.RGBA.
func (b *ImageBuf) ToStdImage() image.Image {
	rect := image.Rect(0, 0, b.width, b.height)

	var pix []byte
	var stride int
	var out image.Image

	switch b.format {
	case FormatGray8:
		m := image.NewGray(rect)
		pix, stride, out = m.Pix, m.Stride, m
	case FormatGray16:
		m := image.NewGray16(rect)
		pix, stride, out = m.Pix, m.Stride, m
	case FormatRGBAPremul:
		m := image.NewRGBA(rect)
		pix, stride, out = m.Pix, m.Stride, m
	default:
		m := image.NewNRGBA(rect)
		pix, stride, out = m.Pix, m.Stride, m
	}

	for y := range b.height {
		copy(pix[y*stride:], b.RowBytes(y))
	}
	return out
}

// Convert copies img into a new ImageBuf of the given format.
func Convert(img image.Image, format Format) (*ImageBuf, error) {
	if FormatOf(img) == format {
		return FromStdImage(img)
	}

	bounds := img.Bounds()
	buf, err := NewImageBuf(bounds.Dx(), bounds.Dy(), format)
	if err != nil {
		return nil, err
	}
	for y := range buf.height {
		for x := range buf.width {
			buf.Set(x, y, img.At(bounds.Min.X+x, bounds.Min.Y+y))
		}
	}
	return buf, nil
}
