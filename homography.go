package padwarp

import (
	"fmt"
	"math"
)

// degenerateEpsilon is the magnitude below which a homogeneous weight w'
// is treated as zero.
const degenerateEpsilon = 1e-12

// Homography is a 3x3 projective transformation in row-major order:
//
//	| h[0] h[1] h[2] |
//	| h[3] h[4] h[5] |
//	| h[6] h[7] h[8] |
//
// A point (x, y) maps to (x'/w', y'/w') where (x', y', w') = H * (x, y, 1).
type Homography [9]float64

// IdentityHomography returns the 3x3 identity.
func IdentityHomography() Homography {
	return Homography{1, 0, 0, 0, 1, 0, 0, 0, 1}
}

// HomographyFromRows builds a Homography from a 3x3 row-major slice.
// It returns ErrInvalidShape for any other shape and ErrInvalidMatrix for
// non-finite entries.
func HomographyFromRows(rows [][]float64) (Homography, error) {
	if len(rows) != 3 {
		return Homography{}, fmt.Errorf("%w: homography must be 3x3, got %s", ErrInvalidShape, shapeOf(rows))
	}
	var h Homography
	for i, r := range rows {
		if len(r) != 3 {
			return Homography{}, fmt.Errorf("%w: homography must be 3x3, got %s", ErrInvalidShape, shapeOf(rows))
		}
		copy(h[3*i:3*i+3], r)
	}
	if err := h.Validate(); err != nil {
		return Homography{}, err
	}
	return h, nil
}

// Validate returns ErrInvalidMatrix if any entry is NaN or infinite.
func (h Homography) Validate() error {
	for _, v := range h {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: non-finite entry in %v", ErrInvalidMatrix, h)
		}
	}
	return nil
}

// Multiply returns h * other; the result applies other first, then h.
func (h Homography) Multiply(other Homography) Homography {
	var out Homography
	for r := range 3 {
		for c := range 3 {
			out[3*r+c] = h[3*r]*other[c] + h[3*r+1]*other[3+c] + h[3*r+2]*other[6+c]
		}
	}
	return out
}

// Normalize scales h so that h[8] == 1. Matrices whose h[8] is (near) zero
// are returned unchanged, since they cannot be rescaled that way.
func (h Homography) Normalize() Homography {
	if math.Abs(h[8]) < degenerateEpsilon || h[8] == 1 {
		return h
	}
	s := 1 / h[8]
	for i := range h {
		h[i] *= s
	}
	h[8] = 1
	return h
}

// Apply returns the homogeneous product H * (x, y, 1).
func (h Homography) Apply(p Point) (x, y, w float64) {
	x = h[0]*p.X + h[1]*p.Y + h[2]
	y = h[3]*p.X + h[4]*p.Y + h[5]
	w = h[6]*p.X + h[7]*p.Y + h[8]
	return x, y, w
}

// MapPoint implements PointMapper. It fails with ErrDegenerateTransform when
// the homogeneous weight of p is within degenerateEpsilon of zero.
func (h Homography) MapPoint(p Point) (Point, error) {
	x, y, w := h.Apply(p)
	if math.Abs(w) <= degenerateEpsilon {
		return Point{}, fmt.Errorf("%w: w'=%g at (%g, %g)", ErrDegenerateTransform, w, p.X, p.Y)
	}
	return Point{X: x / w, Y: y / w}, nil
}

// Invert returns the inverse homography, normalized.
// Returns false if the matrix is singular.
func (h Homography) Invert() (Homography, bool) {
	c00 := h[4]*h[8] - h[5]*h[7]
	c01 := h[5]*h[6] - h[3]*h[8]
	c02 := h[3]*h[7] - h[4]*h[6]

	det := h[0]*c00 + h[1]*c01 + h[2]*c02
	if nearSingular(det, rowMax(h[0], h[1], h[2])*rowMax(h[3], h[4], h[5])*rowMax(h[6], h[7], h[8])) {
		return Homography{}, false
	}
	invDet := 1 / det

	inv := Homography{
		c00 * invDet,
		(h[2]*h[7] - h[1]*h[8]) * invDet,
		(h[1]*h[5] - h[2]*h[4]) * invDet,
		c01 * invDet,
		(h[0]*h[8] - h[2]*h[6]) * invDet,
		(h[2]*h[3] - h[0]*h[5]) * invDet,
		c02 * invDet,
		(h[1]*h[6] - h[0]*h[7]) * invDet,
		(h[0]*h[4] - h[1]*h[3]) * invDet,
	}
	return inv.Normalize(), true
}

// Affine returns the top two rows of h as an Affine when h has bottom row
// (0, 0, 1) after normalization.
func (h Homography) Affine() (Affine, bool) {
	n := h.Normalize()
	if n[6] != 0 || n[7] != 0 || n[8] != 1 {
		return Affine{}, false
	}
	return Affine{
		A: n[0], B: n[1], C: n[2],
		D: n[3], E: n[4], F: n[5],
	}, true
}

// String formats the matrix as three bracketed rows.
func (h Homography) String() string {
	return fmt.Sprintf("[[%g %g %g] [%g %g %g] [%g %g %g]]",
		h[0], h[1], h[2], h[3], h[4], h[5], h[6], h[7], h[8])
}
