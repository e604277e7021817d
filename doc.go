// Package padwarp warps an image through an affine or perspective transform
// without clipping it.
//
// # Overview
//
// A plain warp renders the source into a canvas the size of the destination,
// so every pixel mapped to negative or out-of-range coordinates is lost.
// padwarp instead computes the bounding box of the mapped source corners and
// the destination corners, grows the canvas to contain it, shifts the
// transform so the box starts at the origin, and pads the destination by the
// same shift. The two outputs line up pixel for pixel and can be blended
// directly.
//
// # Quick Start
//
//	import "github.com/gogpu/padwarp"
//
//	h := padwarp.Homography{
//	    0.9, 0.1, -40,
//	    -0.05, 1.1, 25,
//	    0.0002, 0.0001, 1,
//	}
//	warped, padded, err := padwarp.WarpPerspectivePadded(src, dst, h)
//
// For 2x3 matrices use WarpAffinePadded with an Affine. AffinePadded and
// PerspectivePadded return a Result that also carries the Layout and the
// adjusted transform. AffineLayout and PerspectiveLayout compute the geometry
// alone.
//
// # Coordinate System
//
// Uses standard image coordinates:
//   - Origin (0,0) at the top-left corner of the top-left pixel
//   - X increases right
//   - Y increases down
//   - Pixel (i, j) covers [i, i+1) x [j, j+1)
//
// # Rounding
//
// Bounding box minima are rounded down and maxima up, after snapping values
// within 1e-9 of an integer to that integer. The canvas is therefore the
// smallest integer box that contains both corner sets.
//
// # Resampling
//
// The resampling primitive is the Warper interface. DefaultWarper delegates
// affine matrices to golang.org/x/image/draw and resamples homographies with
// an inverse-mapping sampler (nearest, bilinear or bicubic). Supply another
// implementation with WithWarper.
package padwarp
