package padwarp

import (
	"image"
	"math"
)

// Point represents a 2D point in pixel coordinates.
type Point struct {
	X, Y float64
}

// Pt is a convenience function to create a Point.
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

// IsFinite reports whether both coordinates are finite numbers.
func (p Point) IsFinite() bool {
	return !math.IsNaN(p.X) && !math.IsInf(p.X, 0) &&
		!math.IsNaN(p.Y) && !math.IsInf(p.Y, 0)
}

// Corners returns the four corners of a w x h image in clockwise order
// from the origin: (0,0), (w,0), (w,h), (0,h).
func Corners(size image.Point) [4]Point {
	w, h := float64(size.X), float64(size.Y)
	return [4]Point{
		{X: 0, Y: 0},
		{X: w, Y: 0},
		{X: w, Y: h},
		{X: 0, Y: h},
	}
}
