package padwarp

import (
	"fmt"
	"image/color"
	"strings"
)

// DefaultMaxCanvasPixels is the default limit on the padded canvas area.
const DefaultMaxCanvasPixels = 1 << 28

// Interpolation selects how source pixels are resampled.
type Interpolation uint8

const (
	// InterpolationBilinear blends the 4 nearest pixels. This is the default.
	InterpolationBilinear Interpolation = iota

	// InterpolationNearest picks the closest pixel.
	InterpolationNearest

	// InterpolationBicubic uses a Catmull-Rom 4x4 kernel.
	InterpolationBicubic
)

// String returns a string representation of the interpolation.
func (i Interpolation) String() string {
	switch i {
	case InterpolationBilinear:
		return "bilinear"
	case InterpolationNearest:
		return "nearest"
	case InterpolationBicubic:
		return "bicubic"
	default:
		return "unknown"
	}
}

// ParseInterpolation parses "nearest", "bilinear" (or "linear") and "bicubic"
// (or "cubic").
func ParseInterpolation(s string) (Interpolation, error) {
	switch strings.ToLower(s) {
	case "nearest":
		return InterpolationNearest, nil
	case "bilinear", "linear":
		return InterpolationBilinear, nil
	case "bicubic", "cubic":
		return InterpolationBicubic, nil
	default:
		return 0, fmt.Errorf("padwarp: unknown interpolation %q", s)
	}
}

// BorderMode selects what fills canvas pixels not covered by an image.
type BorderMode uint8

const (
	// BorderConstant fills with the border value (zero by default).
	BorderConstant BorderMode = iota

	// BorderReplicate repeats the nearest edge pixel of the image.
	BorderReplicate
)

// String returns a string representation of the border mode.
func (b BorderMode) String() string {
	switch b {
	case BorderConstant:
		return "constant"
	case BorderReplicate:
		return "replicate"
	default:
		return "unknown"
	}
}

// ParseBorderMode parses "constant" and "replicate".
func ParseBorderMode(s string) (BorderMode, error) {
	switch strings.ToLower(s) {
	case "constant":
		return BorderConstant, nil
	case "replicate":
		return BorderReplicate, nil
	default:
		return 0, fmt.Errorf("padwarp: unknown border mode %q", s)
	}
}

// Option configures a padded warp.
// Use functional options to customize behavior.
//
// Example:
//
//	warped, padded, err := padwarp.WarpPerspectivePadded(src, dst, h,
//	    padwarp.WithInterpolation(padwarp.InterpolationBicubic),
//	    padwarp.WithInverseMap(),
//	)
type Option func(*options)

// options holds optional configuration for a padded warp.
type options struct {
	interp      Interpolation
	inverse     bool
	border      BorderMode
	borderValue color.Color
	warper      Warper
	maxPixels   int
}

// defaultOptions returns the default warp options.
func defaultOptions() options {
	return options{
		interp:      InterpolationBilinear,
		border:      BorderConstant,
		borderValue: color.Transparent,
		warper:      DefaultWarper{},
		maxPixels:   DefaultMaxCanvasPixels,
	}
}

func newOptions(opts []Option) options {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// params returns the WarpParams handed to the Warper.
func (o options) params() WarpParams {
	return WarpParams{
		Interpolation: o.interp,
		Border:        o.border,
		BorderValue:   o.borderValue,
	}
}

// WithInterpolation sets the resampling method.
func WithInterpolation(i Interpolation) Option {
	return func(o *options) {
		o.interp = i
	}
}

// WithInverseMap declares that the matrix maps destination coordinates to
// source coordinates. It is inverted before use.
func WithInverseMap() Option {
	return func(o *options) {
		o.inverse = true
	}
}

// WithBorder sets the border mode used both when resampling the source and
// when padding the destination.
func WithBorder(b BorderMode) Option {
	return func(o *options) {
		o.border = b
	}
}

// WithBorderValue sets the fill color for BorderConstant.
// A nil color means transparent black.
func WithBorderValue(c color.Color) Option {
	return func(o *options) {
		if c == nil {
			c = color.Transparent
		}
		o.borderValue = c
	}
}

// WithWarper replaces the resampling primitive.
// A nil Warper restores DefaultWarper.
func WithWarper(w Warper) Option {
	return func(o *options) {
		if w == nil {
			w = DefaultWarper{}
		}
		o.warper = w
	}
}

// WithMaxCanvasPixels limits the padded canvas area. Zero or a negative
// value disables the limit.
func WithMaxCanvasPixels(n int) Option {
	return func(o *options) {
		o.maxPixels = n
	}
}
