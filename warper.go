package padwarp

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"math"

	xdraw "golang.org/x/image/draw"

	intImage "github.com/gogpu/padwarp/internal/image"
)

// WarpParams carries the resampling settings passed to a Warper.
type WarpParams struct {
	// Interpolation selects the resampling method.
	Interpolation Interpolation

	// Border selects constant fill or edge replication outside the source.
	Border BorderMode

	// BorderValue is the fill color for BorderConstant.
	BorderValue color.Color
}

// Warper is the geometric resampling primitive.
//
// Warp overwrites every pixel of dst with src resampled through m, where m
// maps source pixel coordinates to dst pixel coordinates. Pixels of dst with
// no preimage in src follow p.Border. dst and src must not be retained after
// Warp returns.
type Warper interface {
	Warp(dst draw.Image, src image.Image, m Homography, p WarpParams) error
}

// DefaultWarper is the Warper used unless WithWarper is given.
//
// Affine matrices with a constant border are resampled by
// golang.org/x/image/draw. Homographies and replicated borders go through
// an inverse-mapping resampler. A singular matrix collapses the source onto
// a line, so no dst pixel has a preimage and dst is filled with the border
// value.
type DefaultWarper struct{}

// Warp implements Warper.
func (DefaultWarper) Warp(dst draw.Image, src image.Image, m Homography, p WarpParams) error {
	if p.BorderValue == nil {
		p.BorderValue = color.Transparent
	}

	inv, ok := m.Invert()
	if !ok {
		Logger().Debug("padwarp: singular transform", "matrix", m)
		fill(dst, p.BorderValue)
		return nil
	}

	if a, ok := m.Affine(); ok && p.Border == BorderConstant {
		Logger().Debug("padwarp: affine transform", "interp", p.Interpolation, "matrix", a)

		fill(dst, p.BorderValue)
		if a.IsIdentity() {
			copyImage(dst, src)
			return nil
		}
		transformer(p.Interpolation).Transform(dst, a.Aff3(), src, src.Bounds(), xdraw.Src, nil)
		return nil
	}

	Logger().Debug("padwarp: inverse-mapped resample",
		"interp", p.Interpolation, "border", p.Border, "matrix", m)
	return resample(dst, src, inv, p)
}

// transformer maps an Interpolation to its x/image/draw implementation.
func transformer(i Interpolation) xdraw.Transformer {
	switch i {
	case InterpolationNearest:
		return xdraw.NearestNeighbor
	case InterpolationBicubic:
		return xdraw.CatmullRom
	default:
		return xdraw.BiLinear
	}
}

func interpMode(i Interpolation) intImage.InterpolationMode {
	switch i {
	case InterpolationNearest:
		return intImage.InterpNearest
	case InterpolationBicubic:
		return intImage.InterpBicubic
	default:
		return intImage.InterpBilinear
	}
}

func borderMode(b BorderMode) intImage.BorderMode {
	if b == BorderReplicate {
		return intImage.BorderReplicate
	}
	return intImage.BorderConstant
}

// fill sets every pixel of dst to c.
func fill(dst draw.Image, c color.Color) {
	if buf, ok := dst.(*intImage.ImageBuf); ok {
		buf.Fill(buf.Format().Encode(c))
		return
	}
	draw.Draw(dst, dst.Bounds(), image.NewUniform(c), image.Point{}, draw.Src)
}

// copyImage copies src onto dst at src's own coordinates.
func copyImage(dst draw.Image, src image.Image) {
	dbuf, dok := dst.(*intImage.ImageBuf)
	sbuf, sok := src.(*intImage.ImageBuf)
	if dok && sok && dbuf.Format() == sbuf.Format() {
		if err := intImage.CopyAt(dbuf, sbuf, 0, 0); err == nil {
			return
		}
	}
	sb := src.Bounds()
	draw.Draw(dst, sb, src, sb.Min, draw.Src)
}

// resample fills dst by mapping each pixel center through inv into src.
// dst and src are used in place when both are ImageBufs of the same format;
// otherwise they are staged through temporary buffers.
func resample(dst draw.Image, src image.Image, inv Homography, p WarpParams) error {
	sbuf, ok := src.(*intImage.ImageBuf)
	if !ok {
		var err error
		if sbuf, err = intImage.FromStdImage(src); err != nil {
			return fmt.Errorf("stage source: %w", err)
		}
	}
	srcMin := src.Bounds().Min

	db := dst.Bounds()
	dbuf, direct := dst.(*intImage.ImageBuf)
	if !direct || dbuf.Format() != sbuf.Format() {
		var err error
		if dbuf, err = intImage.GetScratch(db.Dx(), db.Dy(), sbuf.Format()); err != nil {
			return fmt.Errorf("stage canvas: %w", err)
		}
		defer intImage.PutScratch(dbuf)
		direct = false
	}

	mapping := func(x, y float64) (float64, float64, bool) {
		sx, sy, w := inv.Apply(Point{X: x + float64(db.Min.X), Y: y + float64(db.Min.Y)})
		if math.Abs(w) <= degenerateEpsilon {
			return 0, 0, false
		}
		return sx/w - float64(srcMin.X), sy/w - float64(srcMin.Y), true
	}

	err := intImage.Resample(dbuf, sbuf, mapping, intImage.ResampleParams{
		Interp: interpMode(p.Interpolation),
		Border: borderMode(p.Border),
		Fill:   sbuf.Format().Encode(p.BorderValue),
	})
	if err != nil {
		return fmt.Errorf("resample: %w", err)
	}

	if !direct {
		draw.Draw(dst, db, dbuf, image.Point{}, draw.Src)
	}
	return nil
}
