package image

import (
	"testing"
)

// gradient returns a width x height Gray8 buffer whose pixel (x, y) is 10*x + y.
func gradient(width, height int) *ImageBuf {
	buf, _ := NewImageBuf(width, height, FormatGray8)
	for y := range height {
		for x := range width {
			buf.PixelBytes(x, y)[0] = byte(10*x + y)
		}
	}
	return buf
}

func sampleGray(img *ImageBuf, x, y float64, mode InterpolationMode) byte {
	out := make([]byte, 1)
	Sample(img, x, y, mode, out)
	return out[0]
}

func TestSampleNearest(t *testing.T) {
	img := gradient(4, 4)

	tests := []struct {
		name string
		x, y float64
		want byte
	}{
		{"pixel center", 1.5, 2.5, 12},
		{"top-left of pixel", 2.0, 1.0, 21},
		{"just before next pixel", 2.999, 0.5, 20},
		{"clamped left", -3, 0.5, 0},
		{"clamped bottom-right", 10, 10, 33},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := sampleGray(img, tt.x, tt.y, InterpNearest); got != tt.want {
				t.Errorf("Sample(%g, %g) = %d, want %d", tt.x, tt.y, got, tt.want)
			}
		})
	}
}

func TestSampleBilinear(t *testing.T) {
	img := gradient(4, 4)

	tests := []struct {
		name string
		x, y float64
		want byte
	}{
		{"pixel center is exact", 2.5, 1.5, 21},
		{"halfway between columns", 2.0, 0.5, 15},
		{"halfway between rows", 0.5, 1.0, 1},
		{"quarter between columns", 1.75, 0.5, 13},
		{"edge clamps", 0.0, 0.5, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := sampleGray(img, tt.x, tt.y, InterpBilinear); got != tt.want {
				t.Errorf("Sample(%g, %g) = %d, want %d", tt.x, tt.y, got, tt.want)
			}
		})
	}
}

func TestSampleBicubic(t *testing.T) {
	img := gradient(6, 6)

	// Catmull-Rom reproduces pixel values at centers and linear ramps between them.
	if got := sampleGray(img, 2.5, 3.5, InterpBicubic); got != 23 {
		t.Errorf("center sample = %d, want 23", got)
	}
	if got := sampleGray(img, 3.0, 2.5, InterpBicubic); got != 27 {
		t.Errorf("midpoint sample = %d, want 27", got)
	}
}

func TestSampleBicubicClampsOvershoot(t *testing.T) {
	buf, _ := NewImageBuf(4, 1, FormatGray8)
	buf.Fill([]byte{255})
	buf.PixelBytes(0, 0)[0] = 0

	// The kernel overshoots next to a hard edge; the stored value must clamp.
	if got := sampleGray(buf, 2.0, 0.5, InterpBicubic); got != 255 {
		t.Errorf("sample next to edge = %d, want 255", got)
	}
}

func TestSampleAllFormats(t *testing.T) {
	tests := []struct {
		format Format
		px     []byte
	}{
		{FormatGray8, []byte{90}},
		{FormatGray16, []byte{0xab, 0xcd}},
		{FormatRGBA8, []byte{10, 20, 30, 40}},
		{FormatRGBAPremul, []byte{10, 20, 30, 40}},
	}

	for _, tt := range tests {
		for _, mode := range []InterpolationMode{InterpNearest, InterpBilinear, InterpBicubic} {
			t.Run(tt.format.String()+"/"+mode.String(), func(t *testing.T) {
				buf, _ := NewImageBuf(5, 5, tt.format)
				buf.Fill(tt.px)

				out := make([]byte, tt.format.BytesPerPixel())
				Sample(buf, 2.3, 1.7, mode, out)
				for i := range out {
					if out[i] != tt.px[i] {
						t.Fatalf("Sample on uniform image = %v, want %v", out, tt.px)
					}
				}
			})
		}
	}
}

func TestInterpolationModeString(t *testing.T) {
	tests := []struct {
		mode InterpolationMode
		want string
	}{
		{InterpNearest, "Nearest"},
		{InterpBilinear, "Bilinear"},
		{InterpBicubic, "Bicubic"},
		{InterpolationMode(99), "Unknown"},
	}
	for _, tt := range tests {
		if got := tt.mode.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

func BenchmarkSampleBilinear(b *testing.B) {
	img := gradient(64, 64)
	out := make([]byte, 1)
	for b.Loop() {
		Sample(img, 31.3, 17.8, InterpBilinear, out)
	}
}

func BenchmarkSampleBicubic(b *testing.B) {
	img := gradient(64, 64)
	out := make([]byte, 1)
	for b.Loop() {
		Sample(img, 31.3, 17.8, InterpBicubic, out)
	}
}
