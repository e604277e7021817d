package padwarp

import "errors"

// Errors returned by the padded warp operations. They are wrapped with
// context, so test for them with errors.Is.
var (
	// ErrInvalidShape is returned when a matrix built from rows is not 2x3
	// (affine) or 3x3 (homography).
	ErrInvalidShape = errors.New("padwarp: invalid matrix shape")

	// ErrInvalidMatrix is returned when a matrix has NaN or infinite entries.
	ErrInvalidMatrix = errors.New("padwarp: invalid matrix")

	// ErrDegenerateTransform is returned when a homography sends a source
	// corner to infinity, when the corners straddle the horizon, or when a
	// singular matrix is given with WithInverseMap.
	ErrDegenerateTransform = errors.New("padwarp: degenerate transform")

	// ErrInvalidDimensions is returned when an image has non-positive width or height.
	ErrInvalidDimensions = errors.New("padwarp: invalid image dimensions")

	// ErrCanvasTooLarge is returned when the padded canvas would exceed the
	// configured pixel limit.
	ErrCanvasTooLarge = errors.New("padwarp: canvas too large")
)
