package image

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"testing"
)

func TestNewImageBuf(t *testing.T) {
	tests := []struct {
		name    string
		width   int
		height  int
		format  Format
		wantErr error
	}{
		{"valid RGBA8", 100, 100, FormatRGBA8, nil},
		{"valid Gray8", 50, 50, FormatGray8, nil},
		{"valid Gray16", 7, 3, FormatGray16, nil},
		{"1x1 minimum", 1, 1, FormatRGBAPremul, nil},
		{"zero width", 0, 100, FormatRGBA8, ErrInvalidDimensions},
		{"zero height", 100, 0, FormatRGBA8, ErrInvalidDimensions},
		{"negative width", -1, 100, FormatRGBA8, ErrInvalidDimensions},
		{"negative height", 100, -1, FormatRGBA8, ErrInvalidDimensions},
		{"invalid format", 100, 100, Format(255), ErrInvalidFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf, err := NewImageBuf(tt.width, tt.height, tt.format)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("NewImageBuf() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if err != nil {
				return
			}
			if buf.Width() != tt.width {
				t.Errorf("Width() = %d, want %d", buf.Width(), tt.width)
			}
			if buf.Height() != tt.height {
				t.Errorf("Height() = %d, want %d", buf.Height(), tt.height)
			}
			if buf.Format() != tt.format {
				t.Errorf("Format() = %v, want %v", buf.Format(), tt.format)
			}
			expectedStride := tt.format.RowBytes(tt.width)
			if buf.Stride() != expectedStride {
				t.Errorf("Stride() = %d, want %d", buf.Stride(), expectedStride)
			}
			if len(buf.Data()) != expectedStride*tt.height {
				t.Errorf("len(Data()) = %d, want %d", len(buf.Data()), expectedStride*tt.height)
			}
		})
	}
}

func TestImageBuf_PixelOffset(t *testing.T) {
	buf, _ := NewImageBuf(10, 10, FormatRGBA8)

	tests := []struct {
		x, y int
		want int
	}{
		{0, 0, 0},
		{1, 0, 4},
		{0, 1, 40},
		{9, 9, 396},
		{-1, 0, -1},
		{10, 0, -1},
		{0, 10, -1},
	}
	for _, tt := range tests {
		if got := buf.PixelOffset(tt.x, tt.y); got != tt.want {
			t.Errorf("PixelOffset(%d, %d) = %d, want %d", tt.x, tt.y, got, tt.want)
		}
	}
	if buf.RowBytes(-1) != nil || buf.RowBytes(10) != nil {
		t.Error("RowBytes out of range should be nil")
	}
}

func TestImageBuf_Fill(t *testing.T) {
	buf, _ := NewImageBuf(3, 2, FormatRGBA8)
	px := []byte{10, 20, 30, 40}

	buf.Fill(px)
	for y := range 2 {
		for x := range 3 {
			if got := buf.PixelBytes(x, y); !bytes.Equal(got, px) {
				t.Fatalf("pixel (%d, %d) = %v, want %v", x, y, got, px)
			}
		}
	}

	buf.Fill([]byte{0, 0, 0, 0})
	if !isZero(buf.Data()) {
		t.Error("Fill with zero pixel did not clear")
	}

	buf.Fill([]byte{1})
	if !isZero(buf.Data()) {
		t.Error("Fill with short pixel must be a no-op")
	}
}

func TestImageBuf_DrawImage(t *testing.T) {
	tests := []struct {
		format Format
		in     color.Color
		want   color.Color
	}{
		{FormatGray8, color.Gray{Y: 77}, color.Gray{Y: 77}},
		{FormatGray16, color.Gray16{Y: 0xabcd}, color.Gray16{Y: 0xabcd}},
		{FormatRGBA8, color.NRGBA{R: 200, G: 100, B: 50, A: 128}, color.NRGBA{R: 200, G: 100, B: 50, A: 128}},
		{FormatRGBAPremul, color.RGBA{R: 100, G: 50, B: 25, A: 128}, color.RGBA{R: 100, G: 50, B: 25, A: 128}},
	}

	for _, tt := range tests {
		t.Run(tt.format.String(), func(t *testing.T) {
			buf, _ := NewImageBuf(4, 4, tt.format)
			if buf.Bounds() != image.Rect(0, 0, 4, 4) {
				t.Errorf("Bounds() = %v", buf.Bounds())
			}
			if buf.ColorModel() != tt.format.Model() {
				t.Error("ColorModel() does not match the format")
			}

			buf.Set(1, 2, tt.in)
			if got := buf.At(1, 2); got != tt.want {
				t.Errorf("At(1, 2) = %#v, want %#v", got, tt.want)
			}

			// Out-of-range writes are dropped and reads are transparent.
			buf.Set(4, 4, tt.in)
			if _, _, _, a := buf.At(-1, 0).RGBA(); a != 0 && tt.format.HasAlpha() {
				t.Errorf("At(-1, 0) alpha = %d, want 0", a)
			}
		})
	}
}

func BenchmarkNewImageBuf(b *testing.B) {
	for b.Loop() {
		_, _ = NewImageBuf(1024, 1024, FormatRGBA8)
	}
}

func BenchmarkImageBuf_Fill(b *testing.B) {
	buf, _ := NewImageBuf(1024, 1024, FormatRGBA8)
	px := []byte{1, 2, 3, 4}
	for b.Loop() {
		buf.Fill(px)
	}
}
