package padwarp

import (
	"fmt"
	"image"
	"math"
)

// snapEpsilon is the absolute distance to an integer below which a bounding
// box coordinate is treated as that integer before rounding.
const snapEpsilon = 1e-9

// maxCanvasSide caps each canvas dimension so the integer conversion of a
// bounding box extent cannot overflow.
const maxCanvasSide = 1 << 30

// PointMapper maps a point through a geometric transform.
// Affine and Homography implement it.
type PointMapper interface {
	MapPoint(p Point) (Point, error)
}

// Bounds is an axis-aligned box in floating-point pixel coordinates.
type Bounds struct {
	MinX, MinY float64
	MaxX, MaxY float64
}

// BoundsOf returns the smallest Bounds containing all pts.
// It returns the zero Bounds when pts is empty.
func BoundsOf(pts ...Point) Bounds {
	if len(pts) == 0 {
		return Bounds{}
	}
	b := Bounds{MinX: pts[0].X, MinY: pts[0].Y, MaxX: pts[0].X, MaxY: pts[0].Y}
	for _, p := range pts[1:] {
		b.MinX = math.Min(b.MinX, p.X)
		b.MinY = math.Min(b.MinY, p.Y)
		b.MaxX = math.Max(b.MaxX, p.X)
		b.MaxY = math.Max(b.MaxY, p.Y)
	}
	return b
}

// Contains reports whether p lies inside b, edges included.
func (b Bounds) Contains(p Point) bool {
	return p.X >= b.MinX && p.X <= b.MaxX && p.Y >= b.MinY && p.Y <= b.MaxY
}

// Layout is the geometry of one padded warp.
type Layout struct {
	// Bounds encloses the mapped source corners and the destination corners,
	// in destination coordinates.
	Bounds Bounds

	// Offset is the translation applied to destination coordinates. The
	// destination image's origin lands on the canvas at Offset.
	Offset image.Point

	// Size is the canvas size shared by both output images.
	Size image.Point
}

// Shift returns the translation matrix that moves destination coordinates
// onto the canvas.
func (l Layout) Shift() Affine {
	return Translate(float64(l.Offset.X), float64(l.Offset.Y))
}

// Pixels returns the number of pixels in the canvas.
func (l Layout) Pixels() int {
	return l.Size.X * l.Size.Y
}

// ComputeLayout maps the corners of a srcSize image through m and returns the
// smallest integer canvas containing them together with the corners of a
// dstSize image. Minima are rounded down and maxima up.
func ComputeLayout(m PointMapper, srcSize, dstSize image.Point) (Layout, error) {
	if err := checkSizes(srcSize, dstSize); err != nil {
		return Layout{}, err
	}

	pts := make([]Point, 0, 8)
	for _, c := range Corners(srcSize) {
		p, err := m.MapPoint(c)
		if err != nil {
			return Layout{}, fmt.Errorf("padwarp: map corner (%g, %g): %w", c.X, c.Y, err)
		}
		if !p.IsFinite() {
			return Layout{}, fmt.Errorf("%w: corner (%g, %g) maps to (%g, %g)",
				ErrDegenerateTransform, c.X, c.Y, p.X, p.Y)
		}
		pts = append(pts, p)
	}
	dstCorners := Corners(dstSize)
	pts = append(pts, dstCorners[:]...)

	b := BoundsOf(pts...)

	minX := math.Floor(snap(b.MinX))
	minY := math.Floor(snap(b.MinY))
	maxX := math.Ceil(snap(b.MaxX))
	maxY := math.Ceil(snap(b.MaxY))

	w, h := maxX-minX, maxY-minY
	if w > maxCanvasSide || h > maxCanvasSide {
		return Layout{}, fmt.Errorf("%w: %gx%g", ErrCanvasTooLarge, w, h)
	}

	return Layout{
		Bounds: b,
		Offset: image.Pt(int(-minX), int(-minY)),
		Size:   image.Pt(int(w), int(h)),
	}, nil
}

// AffineLayout computes the padded layout for an affine warp and returns the
// adjusted matrix mapping source pixels onto the canvas.
func AffineLayout(m Affine, srcSize, dstSize image.Point) (Layout, Affine, error) {
	if err := checkSizes(srcSize, dstSize); err != nil {
		return Layout{}, Affine{}, err
	}
	if err := m.Validate(); err != nil {
		return Layout{}, Affine{}, err
	}

	l, err := ComputeLayout(m, srcSize, dstSize)
	if err != nil {
		return Layout{}, Affine{}, err
	}
	return l, m.Shifted(float64(l.Offset.X), float64(l.Offset.Y)), nil
}

// PerspectiveLayout computes the padded layout for a perspective warp and
// returns the adjusted homography T * H mapping source pixels onto the canvas.
// H is normalized so that H[2][2] == 1 when possible.
func PerspectiveLayout(h Homography, srcSize, dstSize image.Point) (Layout, Homography, error) {
	if err := checkSizes(srcSize, dstSize); err != nil {
		return Layout{}, Homography{}, err
	}
	if err := h.Validate(); err != nil {
		return Layout{}, Homography{}, err
	}
	h = h.Normalize()

	if err := checkHorizon(h, srcSize); err != nil {
		return Layout{}, Homography{}, err
	}

	l, err := ComputeLayout(h, srcSize, dstSize)
	if err != nil {
		return Layout{}, Homography{}, err
	}
	return l, l.Shift().Homography().Multiply(h).Normalize(), nil
}

// checkHorizon rejects homographies whose corner weights change sign: the
// image then straddles the line at infinity and has no finite bounding box.
func checkHorizon(h Homography, size image.Point) error {
	sign := 0.0
	for _, c := range Corners(size) {
		_, _, w := h.Apply(c)
		if math.Abs(w) <= degenerateEpsilon {
			continue // reported by MapPoint
		}
		s := math.Copysign(1, w)
		if sign != 0 && s != sign {
			return fmt.Errorf("%w: source corners straddle the horizon", ErrDegenerateTransform)
		}
		sign = s
	}
	return nil
}

func checkSizes(srcSize, dstSize image.Point) error {
	if srcSize.X <= 0 || srcSize.Y <= 0 {
		return fmt.Errorf("%w: source is %dx%d", ErrInvalidDimensions, srcSize.X, srcSize.Y)
	}
	if dstSize.X <= 0 || dstSize.Y <= 0 {
		return fmt.Errorf("%w: destination is %dx%d", ErrInvalidDimensions, dstSize.X, dstSize.Y)
	}
	return nil
}

// snap returns the nearest integer when v is within snapEpsilon of it, and
// v otherwise.
func snap(v float64) float64 {
	r := math.Round(v)
	if math.Abs(v-r) <= snapEpsilon {
		return r
	}
	return v
}
