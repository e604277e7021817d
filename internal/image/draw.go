package image

import (
	"image"
	"math"
)

// CopyAt copies src into dst so that src's origin lands on (x, y).
// Rows and columns of src that fall outside dst are skipped.
func CopyAt(dst, src *ImageBuf, x, y int) error {
	if dst.format != src.format {
		return ErrFormatMismatch
	}

	r := image.Rect(x, y, x+src.width, y+src.height).Intersect(dst.Bounds())
	if r.Empty() {
		return nil
	}

	bpp := dst.format.BytesPerPixel()
	for dy := r.Min.Y; dy < r.Max.Y; dy++ {
		srcRow := src.RowBytes(dy - y)
		dstRow := dst.RowBytes(dy)
		copy(dstRow[r.Min.X*bpp:r.Max.X*bpp], srcRow[(r.Min.X-x)*bpp:(r.Max.X-x)*bpp])
	}
	return nil
}

// Pad returns a new width x height buffer holding src at offset off.
// Pixels not covered by src are filled with fill (BorderConstant) or copied
// from the nearest edge of src (BorderReplicate). The result is drawn from the
// scratch pool and may be returned with PutScratch.
func Pad(src *ImageBuf, width, height int, off image.Point, border BorderMode, fill []byte) (*ImageBuf, error) {
	out, err := GetScratch(width, height, src.format)
	if err != nil {
		return nil, err
	}

	if border == BorderReplicate {
		bpp := src.format.BytesPerPixel()
		for y := range height {
			srcRow := src.RowBytes(clamp(y-off.Y, 0, src.height-1))
			dstRow := out.RowBytes(y)
			for x := range width {
				sx := clamp(x-off.X, 0, src.width-1)
				copy(dstRow[x*bpp:(x+1)*bpp], srcRow[sx*bpp:(sx+1)*bpp])
			}
		}
		return out, nil
	}

	if fill != nil {
		out.Fill(fill)
	}
	if err := CopyAt(out, src, off.X, off.Y); err != nil {
		return nil, err
	}
	return out, nil
}

// Blend returns the weighted sum a*alpha + b*(1-alpha) of two buffers of
// identical size and format. alpha is clamped to [0, 1].
func Blend(a, b *ImageBuf, alpha float64) (*ImageBuf, error) {
	if a.format != b.format {
		return nil, ErrFormatMismatch
	}
	if a.width != b.width || a.height != b.height {
		return nil, ErrInvalidDimensions
	}

	alpha = math.Max(0.0, math.Min(1.0, alpha))

	out, err := NewImageBuf(a.width, a.height, a.format)
	if err != nil {
		return nil, err
	}

	channels := a.format.Channels()
	for y := range a.height {
		for x := range a.width {
			pa := a.format.load(a.PixelBytes(x, y))
			pb := b.format.load(b.PixelBytes(x, y))
			var s sample
			for c := range channels {
				s[c] = lerp(pb[c], pa[c], alpha)
			}
			out.format.store(out.PixelBytes(x, y), s)
		}
	}
	return out, nil
}
