package padwarp

import (
	"fmt"
	"math"

	"golang.org/x/image/math/f64"
)

// singularEpsilon is the determinant magnitude, relative to the product of
// the row magnitudes, below which a matrix is treated as non-invertible.
const singularEpsilon = 1e-12

// Affine represents a 2D affine transformation matrix.
// It uses a 2x3 matrix in row-major order:
//
//	| a  b  c |
//	| d  e  f |
//
// This represents the transformation:
//
//	x' = a*x + b*y + c
//	y' = d*x + e*y + f
//
// The implicit third row is (0, 0, 1).
type Affine struct {
	A, B, C float64
	D, E, F float64
}

// Identity returns the identity transformation matrix.
func Identity() Affine {
	return Affine{
		A: 1, B: 0, C: 0,
		D: 0, E: 1, F: 0,
	}
}

// Translate creates a translation matrix.
func Translate(x, y float64) Affine {
	return Affine{
		A: 1, B: 0, C: x,
		D: 0, E: 1, F: y,
	}
}

// Scale creates a scaling matrix.
func Scale(x, y float64) Affine {
	return Affine{
		A: x, B: 0, C: 0,
		D: 0, E: y, F: 0,
	}
}

// Rotate creates a rotation matrix (angle in radians).
func Rotate(angle float64) Affine {
	cos := math.Cos(angle)
	sin := math.Sin(angle)
	return Affine{
		A: cos, B: -sin, C: 0,
		D: sin, E: cos, F: 0,
	}
}

// Shear creates a shear matrix.
func Shear(x, y float64) Affine {
	return Affine{
		A: 1, B: x, C: 0,
		D: y, E: 1, F: 0,
	}
}

// AffineFromRows builds an Affine from a 2x3 row-major slice.
// It returns ErrInvalidShape for any other shape and ErrInvalidMatrix for
// non-finite entries.
func AffineFromRows(rows [][]float64) (Affine, error) {
	if len(rows) != 2 || len(rows[0]) != 3 || len(rows[1]) != 3 {
		return Affine{}, fmt.Errorf("%w: affine matrix must be 2x3, got %s", ErrInvalidShape, shapeOf(rows))
	}
	m := Affine{
		A: rows[0][0], B: rows[0][1], C: rows[0][2],
		D: rows[1][0], E: rows[1][1], F: rows[1][2],
	}
	if err := m.Validate(); err != nil {
		return Affine{}, err
	}
	return m, nil
}

// Validate returns ErrInvalidMatrix if any entry is NaN or infinite.
func (m Affine) Validate() error {
	for _, v := range [6]float64{m.A, m.B, m.C, m.D, m.E, m.F} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: non-finite entry in %v", ErrInvalidMatrix, m)
		}
	}
	return nil
}

// Multiply multiplies two matrices (m * other).
// The result applies other first, then m.
func (m Affine) Multiply(other Affine) Affine {
	return Affine{
		A: m.A*other.A + m.B*other.D,
		B: m.A*other.B + m.B*other.E,
		C: m.A*other.C + m.B*other.F + m.C,
		D: m.D*other.A + m.E*other.D,
		E: m.D*other.B + m.E*other.E,
		F: m.D*other.C + m.E*other.F + m.F,
	}
}

// Shifted returns m with (tx, ty) added to its translation column.
// This equals Translate(tx, ty).Multiply(m).
func (m Affine) Shifted(tx, ty float64) Affine {
	m.C += tx
	m.F += ty
	return m
}

// TransformPoint applies the transformation to a point.
func (m Affine) TransformPoint(p Point) Point {
	return Point{
		X: m.A*p.X + m.B*p.Y + m.C,
		Y: m.D*p.X + m.E*p.Y + m.F,
	}
}

// MapPoint implements PointMapper. Affine maps never fail.
func (m Affine) MapPoint(p Point) (Point, error) {
	return m.TransformPoint(p), nil
}

// Invert returns the inverse matrix.
// Returns false if the matrix is singular (non-invertible).
func (m Affine) Invert() (Affine, bool) {
	det := m.A*m.E - m.B*m.D
	if nearSingular(det, rowMax(m.A, m.B)*rowMax(m.D, m.E)) {
		return Affine{}, false
	}

	invDet := 1.0 / det
	return Affine{
		A: m.E * invDet,
		B: -m.B * invDet,
		C: (m.B*m.F - m.C*m.E) * invDet,
		D: -m.D * invDet,
		E: m.A * invDet,
		F: (m.C*m.D - m.A*m.F) * invDet,
	}, true
}

// Homography embeds m in a 3x3 matrix with bottom row (0, 0, 1).
func (m Affine) Homography() Homography {
	return Homography{
		m.A, m.B, m.C,
		m.D, m.E, m.F,
		0, 0, 1,
	}
}

// Aff3 returns m in the layout used by golang.org/x/image/draw.
func (m Affine) Aff3() f64.Aff3 {
	return f64.Aff3{m.A, m.B, m.C, m.D, m.E, m.F}
}

// IsIdentity returns true if the matrix is the identity matrix.
func (m Affine) IsIdentity() bool {
	return m.A == 1 && m.B == 0 && m.C == 0 &&
		m.D == 0 && m.E == 1 && m.F == 0
}

// String formats the matrix as two bracketed rows.
func (m Affine) String() string {
	return fmt.Sprintf("[[%g %g %g] [%g %g %g]]", m.A, m.B, m.C, m.D, m.E, m.F)
}

func shapeOf(rows [][]float64) string {
	if len(rows) == 0 {
		return "0x0"
	}
	cols := len(rows[0])
	for _, r := range rows[1:] {
		if len(r) != cols {
			return fmt.Sprintf("%dx(ragged)", len(rows))
		}
	}
	return fmt.Sprintf("%dx%d", len(rows), cols)
}

// nearSingular reports whether det is negligible against bound, the product
// of the largest entry of each row. The test is scale-free, so a uniform
// scale by 1e-7 stays invertible.
func nearSingular(det, bound float64) bool {
	return math.Abs(det) <= singularEpsilon*bound
}

func rowMax(v ...float64) float64 {
	m := 0.0
	for _, x := range v {
		m = math.Max(m, math.Abs(x))
	}
	return m
}
