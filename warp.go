package padwarp

import (
	"fmt"
	"image"

	intImage "github.com/gogpu/padwarp/internal/image"
)

// Result holds the outputs of a padded warp.
type Result struct {
	// Warped is the source image resampled onto the padded canvas.
	Warped image.Image

	// Padded is the destination image placed at Layout.Offset on a canvas
	// of the same size as Warped.
	Padded image.Image

	// Layout is the canvas geometry shared by both images.
	Layout Layout

	// Transform is the adjusted matrix that mapped the source onto the canvas.
	Transform Homography
}

// WarpAffinePadded warps src through the 2x3 affine matrix m and pads dst so
// that both images fit, unclipped, on one canvas.
//
// The canvas is the smallest integer box containing the mapped corners of src
// and the corners of dst. Both outputs share its size; the destination is
// copied at the translation that moves the box to the origin, and each output
// keeps the pixel format of its input.
func WarpAffinePadded(src, dst image.Image, m Affine, opts ...Option) (warped, padded image.Image, err error) {
	r, err := AffinePadded(src, dst, m, opts...)
	if err != nil {
		return nil, nil, err
	}
	return r.Warped, r.Padded, nil
}

// WarpPerspectivePadded is WarpAffinePadded for a 3x3 homography h.
// The translation is composed with h by matrix product.
func WarpPerspectivePadded(src, dst image.Image, h Homography, opts ...Option) (warped, padded image.Image, err error) {
	r, err := PerspectivePadded(src, dst, h, opts...)
	if err != nil {
		return nil, nil, err
	}
	return r.Warped, r.Padded, nil
}

// AffinePadded is WarpAffinePadded returning the full Result.
func AffinePadded(src, dst image.Image, m Affine, opts ...Option) (Result, error) {
	o := newOptions(opts)
	srcSize, dstSize := src.Bounds().Size(), dst.Bounds().Size()

	if err := checkSizes(srcSize, dstSize); err != nil {
		return Result{}, err
	}
	if err := m.Validate(); err != nil {
		return Result{}, err
	}
	if o.inverse {
		inv, ok := m.Invert()
		if !ok {
			return Result{}, fmt.Errorf("%w: cannot invert %v", ErrDegenerateTransform, m)
		}
		m = inv
	}

	l, adjusted, err := AffineLayout(m, srcSize, dstSize)
	if err != nil {
		return Result{}, err
	}
	return render(src, dst, l, adjusted.Homography(), o)
}

// PerspectivePadded is WarpPerspectivePadded returning the full Result.
func PerspectivePadded(src, dst image.Image, h Homography, opts ...Option) (Result, error) {
	o := newOptions(opts)
	srcSize, dstSize := src.Bounds().Size(), dst.Bounds().Size()

	if err := checkSizes(srcSize, dstSize); err != nil {
		return Result{}, err
	}
	if err := h.Validate(); err != nil {
		return Result{}, err
	}
	if o.inverse {
		inv, ok := h.Invert()
		if !ok {
			return Result{}, fmt.Errorf("%w: cannot invert %v", ErrDegenerateTransform, h)
		}
		h = inv
	}

	l, adjusted, err := PerspectiveLayout(h, srcSize, dstSize)
	if err != nil {
		return Result{}, err
	}
	return render(src, dst, l, adjusted, o)
}

// render allocates both canvases for l, warps src onto the first and pads
// dst into the second.
func render(src, dst image.Image, l Layout, adjusted Homography, o options) (Result, error) {
	if o.maxPixels > 0 && l.Pixels() > o.maxPixels {
		return Result{}, fmt.Errorf("%w: %dx%d exceeds %d pixels",
			ErrCanvasTooLarge, l.Size.X, l.Size.Y, o.maxPixels)
	}

	Logger().Debug("padwarp: layout",
		"offset", l.Offset, "size", l.Size,
		"min_x", l.Bounds.MinX, "min_y", l.Bounds.MinY,
		"max_x", l.Bounds.MaxX, "max_y", l.Bounds.MaxY)

	srcBuf, err := intImage.FromStdImage(src)
	if err != nil {
		return Result{}, fmt.Errorf("padwarp: source: %w", err)
	}
	dstBuf, err := intImage.FromStdImage(dst)
	if err != nil {
		return Result{}, fmt.Errorf("padwarp: destination: %w", err)
	}

	canvas, err := intImage.GetScratch(l.Size.X, l.Size.Y, srcBuf.Format())
	if err != nil {
		return Result{}, fmt.Errorf("padwarp: allocate canvas: %w", err)
	}
	defer intImage.PutScratch(canvas)

	if err := o.warper.Warp(canvas, srcBuf, adjusted, o.params()); err != nil {
		return Result{}, fmt.Errorf("padwarp: warp: %w", err)
	}

	fillPx := dstBuf.Format().Encode(o.borderValue)
	padded, err := intImage.Pad(dstBuf, l.Size.X, l.Size.Y, l.Offset, borderMode(o.border), fillPx)
	if err != nil {
		return Result{}, fmt.Errorf("padwarp: pad destination: %w", err)
	}
	defer intImage.PutScratch(padded)

	return Result{
		Warped:    canvas.ToStdImage(),
		Padded:    padded.ToStdImage(),
		Layout:    l,
		Transform: adjusted,
	}, nil
}
