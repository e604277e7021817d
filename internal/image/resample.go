package image

import (
	"math"
	"sync"

	"github.com/gogpu/padwarp/internal/parallel"
)

// BorderMode defines what a resampler or padder produces outside the source.
type BorderMode uint8

const (
	// BorderConstant fills the outside with a fixed pixel value.
	BorderConstant BorderMode = iota

	// BorderReplicate repeats the nearest edge pixel.
	BorderReplicate
)

// String returns a string representation of the border mode.
func (m BorderMode) String() string {
	switch m {
	case BorderConstant:
		return "Constant"
	case BorderReplicate:
		return "Replicate"
	default:
		return "Unknown"
	}
}

// Mapping maps a point of the destination canvas to continuous source pixel
// coordinates. ok is false when the point has no preimage (for example a
// projective mapping evaluated beyond its horizon).
type Mapping func(x, y float64) (sx, sy float64, ok bool)

// ResampleParams specifies parameters for Resample.
type ResampleParams struct {
	// Interp specifies the interpolation mode for sampling.
	Interp InterpolationMode

	// Border selects constant fill or edge replication outside the source.
	Border BorderMode

	// Fill is the raw pixel written outside the source with BorderConstant.
	// A nil or short Fill means zero.
	Fill []byte
}

// replicateMargin bounds how far outside the source a replicated coordinate
// is tracked before it is clamped. Anything further samples the same edge.
const replicateMargin = 4

// Canvases smaller than parallelMinPixels are resampled on the calling
// goroutine. Larger ones are split into bands of at least bandMinRows rows.
const (
	parallelMinPixels = 1 << 16
	bandMinRows       = 8
)

// workers is shared by every Resample call in the process.
var workers = sync.OnceValue(func() *parallel.WorkerPool {
	return parallel.NewWorkerPool(0)
})

// Resample fills every pixel of dst by mapping its center through m and
// sampling src there. Both buffers must share a format. m may be called
// concurrently from several goroutines.
//
// The operation performs the following steps for each destination pixel:
//  1. Map the pixel center to source coordinates
//  2. Apply the border rule if the point lies outside the source
//  3. Sample the source using the specified interpolation
func Resample(dst, src *ImageBuf, m Mapping, p ResampleParams) error {
	if dst.format != src.format {
		return ErrFormatMismatch
	}

	fill := p.Fill
	if len(fill) < dst.format.BytesPerPixel() {
		fill = make([]byte, dst.format.BytesPerPixel())
	}

	rows := func(y0, y1 int) {
		resampleRows(dst, src, m, p, fill, y0, y1)
	}
	if dst.width*dst.height < parallelMinPixels {
		rows(0, dst.height)
		return nil
	}
	parallel.ForEachBand(workers(), dst.height, bandMinRows, rows)
	return nil
}

// resampleRows resamples rows [y0, y1) of dst.
func resampleRows(dst, src *ImageBuf, m Mapping, p ResampleParams, fill []byte, y0, y1 int) {
	bpp := dst.format.BytesPerPixel()
	sw, sh := float64(src.width), float64(src.height)

	for y := y0; y < y1; y++ {
		row := dst.RowBytes(y)
		for x := range dst.width {
			px := row[x*bpp : (x+1)*bpp]

			sx, sy, ok := m(float64(x)+0.5, float64(y)+0.5)
			if !ok || math.IsNaN(sx) || math.IsNaN(sy) {
				copy(px, fill)
				continue
			}

			if p.Border == BorderConstant {
				if sx < 0 || sy < 0 || sx >= sw || sy >= sh {
					copy(px, fill)
					continue
				}
			} else {
				sx = clampFloat(sx, -replicateMargin, sw+replicateMargin)
				sy = clampFloat(sy, -replicateMargin, sh+replicateMargin)
			}

			Sample(src, sx, sy, p.Interp, px)
		}
	}
}
