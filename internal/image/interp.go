package image

import "math"

// InterpolationMode defines how source pixels are sampled.
type InterpolationMode uint8

const (
	// InterpNearest selects the closest pixel (no interpolation).
	// Fast but produces blocky results when scaling.
	InterpNearest InterpolationMode = iota

	// InterpBilinear performs linear interpolation between 4 neighboring pixels.
	// Good balance between quality and performance.
	InterpBilinear

	// InterpBicubic performs cubic interpolation using a 4x4 pixel neighborhood.
	// Highest quality but slower than bilinear.
	InterpBicubic
)

// String returns a string representation of the interpolation mode.
func (m InterpolationMode) String() string {
	switch m {
	case InterpNearest:
		return "Nearest"
	case InterpBilinear:
		return "Bilinear"
	case InterpBicubic:
		return "Bicubic"
	default:
		return "Unknown"
	}
}

// maxChannels is the largest channel count of any Format.
const maxChannels = 4

// sample holds one interpolated pixel, one float per channel.
type sample [maxChannels]float64

// Sample samples img at continuous pixel coordinates (x, y), where pixel (i, j)
// covers [i, i+1) x [j, j+1) and its center is (i+0.5, j+0.5).
// Neighbors outside the image are clamped to the edge.
// The result is written to out as raw pixel bytes in img's format.
func Sample(img *ImageBuf, x, y float64, mode InterpolationMode, out []byte) {
	var s sample
	switch mode {
	case InterpNearest:
		s = sampleNearest(img, x, y)
	case InterpBicubic:
		s = sampleBicubic(img, x, y)
	default:
		s = sampleBilinear(img, x, y)
	}
	img.format.store(out, s)
}

// sampleNearest returns the pixel containing (x, y).
func sampleNearest(img *ImageBuf, x, y float64) sample {
	px := clamp(int(math.Floor(x)), 0, img.width-1)
	py := clamp(int(math.Floor(y)), 0, img.height-1)
	return img.format.load(img.PixelBytes(px, py))
}

// sampleBilinear interpolates between the 4 pixel centers surrounding (x, y).
func sampleBilinear(img *ImageBuf, x, y float64) sample {
	fx := x - 0.5
	fy := y - 0.5

	x0 := int(math.Floor(fx))
	y0 := int(math.Floor(fy))
	tx := fx - float64(x0)
	ty := fy - float64(y0)

	x1 := clamp(x0+1, 0, img.width-1)
	y1 := clamp(y0+1, 0, img.height-1)
	x0 = clamp(x0, 0, img.width-1)
	y0 = clamp(y0, 0, img.height-1)

	p00 := img.format.load(img.PixelBytes(x0, y0))
	p10 := img.format.load(img.PixelBytes(x1, y0))
	p01 := img.format.load(img.PixelBytes(x0, y1))
	p11 := img.format.load(img.PixelBytes(x1, y1))

	var s sample
	for c := range img.format.Channels() {
		s[c] = lerp2D(p00[c], p10[c], p01[c], p11[c], tx, ty)
	}
	return s
}

// sampleBicubic uses Catmull-Rom splines over the 4x4 neighborhood of (x, y).
func sampleBicubic(img *ImageBuf, x, y float64) sample {
	fx := x - 0.5
	fy := y - 0.5

	ix := int(math.Floor(fx))
	iy := int(math.Floor(fy))
	tx := fx - float64(ix)
	ty := fy - float64(iy)

	wx := [4]float64{cubicWeight(tx + 1), cubicWeight(tx), cubicWeight(tx - 1), cubicWeight(tx - 2)}
	wy := [4]float64{cubicWeight(ty + 1), cubicWeight(ty), cubicWeight(ty - 1), cubicWeight(ty - 2)}

	var s sample
	for dy := -1; dy <= 2; dy++ {
		py := clamp(iy+dy, 0, img.height-1)
		for dx := -1; dx <= 2; dx++ {
			px := clamp(ix+dx, 0, img.width-1)
			p := img.format.load(img.PixelBytes(px, py))
			w := wx[dx+1] * wy[dy+1]
			for c := range img.format.Channels() {
				s[c] += p[c] * w
			}
		}
	}
	return s
}

// load reads one pixel into a sample.
func (f Format) load(px []byte) sample {
	var s sample
	if f.BytesPerChannel() == 2 {
		for c := range f.Channels() {
			s[c] = float64(uint16(px[2*c])<<8 | uint16(px[2*c+1]))
		}
		return s
	}
	for c := range f.Channels() {
		s[c] = float64(px[c])
	}
	return s
}

// store rounds and clamps a sample into raw pixel bytes.
func (f Format) store(px []byte, s sample) {
	maxVal := f.MaxValue()
	if f.BytesPerChannel() == 2 {
		for c := range f.Channels() {
			v := uint16(clampFloat(math.Round(s[c]), 0, maxVal))
			px[2*c] = byte(v >> 8)
			px[2*c+1] = byte(v)
		}
		return
	}
	for c := range f.Channels() {
		px[c] = byte(clampFloat(math.Round(s[c]), 0, maxVal))
	}
}

// clamp clamps an integer value to [minVal, maxVal].
//
//nolint:unparam // minVal is always 0 currently, but function is general-purpose
func clamp(val, minVal, maxVal int) int {
	if val < minVal {
		return minVal
	}
	if val > maxVal {
		return maxVal
	}
	return val
}

// clampFloat clamps a float64 value to [minVal, maxVal].
func clampFloat(val, minVal, maxVal float64) float64 {
	if val < minVal {
		return minVal
	}
	if val > maxVal {
		return maxVal
	}
	return val
}

// lerp performs linear interpolation between a and b.
func lerp(a, b, t float64) float64 {
	return a*(1-t) + b*t
}

// lerp2D performs bilinear interpolation on a 2x2 grid.
func lerp2D(v00, v10, v01, v11, tx, ty float64) float64 {
	v0 := lerp(v00, v10, tx)
	v1 := lerp(v01, v11, tx)
	return lerp(v0, v1, ty)
}

// cubicWeight computes the Catmull-Rom cubic weight for distance t.
func cubicWeight(t float64) float64 {
	// Catmull-Rom spline (Mitchell-Netravali with B=0, C=0.5):
	// |t| < 1: (1.5|t|³ - 2.5|t|² + 1)
	// 1 ≤ |t| < 2: (-0.5|t|³ + 2.5|t|² - 4|t| + 2)
	// |t| ≥ 2: 0
	absT := math.Abs(t)
	if absT < 1 {
		return 1.5*absT*absT*absT - 2.5*absT*absT + 1.0
	}
	if absT < 2 {
		return -0.5*absT*absT*absT + 2.5*absT*absT - 4.0*absT + 2.0
	}
	return 0
}
