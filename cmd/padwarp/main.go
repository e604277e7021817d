// Command padwarp warps one image onto another without clipping either.
//
// Usage:
//
//	padwarp -src src.png -dst dst.png -matrix h.txt [flags]
//
// The matrix file holds two (affine) or three (perspective) whitespace- or
// comma-separated rows; '#' starts a comment. The warped source, the padded
// destination and an alpha blend of both can be written as PNG or JPEG.
package main

import (
	"errors"
	"flag"
	"fmt"
	"image"
	"io"
	"log"
	"log/slog"
	"os"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/gogpu/padwarp"
	intImage "github.com/gogpu/padwarp/internal/image"
)

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(2)
		}
		log.Fatalf("padwarp: %v", err)
	}
}

// config holds the parsed command line.
type config struct {
	src, dst, matrix string

	outWarped, outPadded, outBlend string

	affine  bool
	inverse bool
	verbose bool

	interp string
	border string
	alpha  float64
	lang   string
}

func parseFlags(args []string, stderr io.Writer) (config, error) {
	var cfg config

	fs := flag.NewFlagSet("padwarp", flag.ContinueOnError)
	fs.SetOutput(stderr)

	fs.StringVar(&cfg.src, "src", "", "source image, to be warped")
	fs.StringVar(&cfg.dst, "dst", "", "destination image, to be padded")
	fs.StringVar(&cfg.matrix, "matrix", "", "matrix file (2 rows: affine, 3 rows: perspective)")
	fs.StringVar(&cfg.outWarped, "out-warped", "warped.png", "output path for the warped source")
	fs.StringVar(&cfg.outPadded, "out-padded", "padded.png", "output path for the padded destination")
	fs.StringVar(&cfg.outBlend, "out-blend", "", "optional output path for a blend of both outputs")
	fs.BoolVar(&cfg.affine, "affine", false, "require a 2x3 affine matrix")
	fs.BoolVar(&cfg.inverse, "inverse", false, "the matrix maps destination to source")
	fs.BoolVar(&cfg.verbose, "v", false, "log debug information to stderr")
	fs.StringVar(&cfg.interp, "interp", "bilinear", "interpolation: nearest, bilinear, bicubic")
	fs.StringVar(&cfg.border, "border", "constant", "border mode: constant, replicate")
	fs.Float64Var(&cfg.alpha, "alpha", 0.5, "weight of the warped image in the blend")
	fs.StringVar(&cfg.lang, "lang", "en", "language tag for the summary")

	if err := fs.Parse(args); err != nil {
		return config{}, err
	}
	if cfg.src == "" || cfg.dst == "" || cfg.matrix == "" {
		fs.Usage()
		return config{}, errors.New("-src, -dst and -matrix are required")
	}
	return cfg, nil
}

func run(args []string, stdout, stderr io.Writer) error {
	cfg, err := parseFlags(args, stderr)
	if err != nil {
		return err
	}

	if cfg.verbose {
		padwarp.SetLogger(slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})))
		defer padwarp.SetLogger(nil)
	}

	opts, err := warpOptions(cfg)
	if err != nil {
		return err
	}

	src, err := intImage.LoadImage(cfg.src)
	if err != nil {
		return fmt.Errorf("load source: %w", err)
	}
	dst, err := intImage.LoadImage(cfg.dst)
	if err != nil {
		return fmt.Errorf("load destination: %w", err)
	}
	rows, err := readMatrixFile(cfg.matrix)
	if err != nil {
		return err
	}

	var res padwarp.Result
	if cfg.affine || len(rows) == 2 {
		m, err := padwarp.AffineFromRows(rows)
		if err != nil {
			return err
		}
		res, err = padwarp.AffinePadded(src, dst, m, opts...)
		if err != nil {
			return err
		}
	} else {
		h, err := padwarp.HomographyFromRows(rows)
		if err != nil {
			return err
		}
		res, err = padwarp.PerspectivePadded(src, dst, h, opts...)
		if err != nil {
			return err
		}
	}

	if err := intImage.Save(cfg.outWarped, res.Warped); err != nil {
		return err
	}
	if err := intImage.Save(cfg.outPadded, res.Padded); err != nil {
		return err
	}
	if cfg.outBlend != "" {
		if err := saveBlend(cfg.outBlend, res.Warped, res.Padded, cfg.alpha); err != nil {
			return err
		}
	}

	p := message.NewPrinter(language.Make(cfg.lang))
	p.Fprintf(stdout, "canvas %d x %d, destination offset (%d, %d)\n",
		res.Layout.Size.X, res.Layout.Size.Y, res.Layout.Offset.X, res.Layout.Offset.Y)
	p.Fprintf(stdout, "adjusted transform %v\n", res.Transform)
	return nil
}

func warpOptions(cfg config) ([]padwarp.Option, error) {
	interp, err := padwarp.ParseInterpolation(cfg.interp)
	if err != nil {
		return nil, err
	}
	border, err := padwarp.ParseBorderMode(cfg.border)
	if err != nil {
		return nil, err
	}

	opts := []padwarp.Option{
		padwarp.WithInterpolation(interp),
		padwarp.WithBorder(border),
	}
	if cfg.inverse {
		opts = append(opts, padwarp.WithInverseMap())
	}
	return opts, nil
}

// saveBlend writes warped*alpha + padded*(1-alpha), both converted to RGBA.
func saveBlend(path string, warped, padded image.Image, alpha float64) error {
	a, err := intImage.Convert(warped, intImage.FormatRGBA8)
	if err != nil {
		return err
	}
	b, err := intImage.Convert(padded, intImage.FormatRGBA8)
	if err != nil {
		return err
	}
	blended, err := intImage.Blend(a, b, alpha)
	if err != nil {
		return fmt.Errorf("blend: %w", err)
	}
	return intImage.Save(path, blended)
}
