package main

import (
	"bytes"
	"errors"
	"flag"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	intImage "github.com/gogpu/padwarp/internal/image"
)

func TestParseMatrix(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    [][]float64
		wantErr bool
	}{
		{
			name: "savetxt layout",
			in:   "1.000000000000000000e+00 0.000000000000000000e+00 5.000000000000000000e+01\n0 1 60\n",
			want: [][]float64{{1, 0, 50}, {0, 1, 60}},
		},
		{
			name: "commas, comments and blank lines",
			in:   "# header\n1, 0, 0\n\n0,1,0  # trailing\r\n0.001,0,1\r\n",
			want: [][]float64{{1, 0, 0}, {0, 1, 0}, {0.001, 0, 1}},
		},
		{
			name: "ragged rows pass through",
			in:   "1 2 3\n4 5\n",
			want: [][]float64{{1, 2, 3}, {4, 5}},
		},
		{
			name:    "bad number",
			in:      "1 0 x\n",
			wantErr: true,
		},
		{
			name: "empty",
			in:   "# nothing\n",
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseMatrix(strings.NewReader(tt.in))
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseMatrix() error = %v, wantErr %v", err, tt.wantErr)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("parseMatrix() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParseMatrixLineNumber(t *testing.T) {
	_, err := parseMatrix(strings.NewReader("1 0 0\n\n0 1 y\n"))
	if err == nil || !strings.Contains(err.Error(), "line 3") {
		t.Errorf("error = %v, want it to name line 3", err)
	}
}

func writePNG(t *testing.T, path string, w, h int, c color.NRGBA) {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3] = c.R, c.G, c.B, c.A
	}
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
}

func TestRun(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src.png")
	dst := filepath.Join(dir, "dst.png")
	writePNG(t, src, 100, 100, color.NRGBA{R: 255, A: 255})
	writePNG(t, dst, 100, 100, color.NRGBA{B: 255, A: 255})

	tests := []struct {
		name       string
		matrix     string
		extra      []string
		wantOutput string
		wantSize   image.Point
	}{
		{
			name:       "affine translation",
			matrix:     "1 0 50\n0 1 50\n",
			wantOutput: "canvas 150 x 150, destination offset (0, 0)",
			wantSize:   image.Pt(150, 150),
		},
		{
			name:       "perspective negative shift",
			matrix:     "1 0 -30\n0 1 -20\n0 0 1\n",
			extra:      []string{"-interp", "nearest", "-border", "replicate"},
			wantOutput: "canvas 130 x 120, destination offset (30, 20)",
			wantSize:   image.Pt(130, 120),
		},
		{
			name:       "inverse map",
			matrix:     "1 0 30\n0 1 20\n",
			extra:      []string{"-inverse"},
			wantOutput: "canvas 130 x 120, destination offset (30, 20)",
			wantSize:   image.Pt(130, 120),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := t.TempDir()
			matrix := filepath.Join(out, "m.txt")
			writeFile(t, matrix, tt.matrix)

			args := append([]string{
				"-src", src, "-dst", dst, "-matrix", matrix,
				"-out-warped", filepath.Join(out, "w.png"),
				"-out-padded", filepath.Join(out, "p.png"),
				"-out-blend", filepath.Join(out, "b.png"),
			}, tt.extra...)

			var stdout, stderr bytes.Buffer
			if err := run(args, &stdout, &stderr); err != nil {
				t.Fatalf("run: %v\nstderr: %s", err, stderr.String())
			}
			if !strings.Contains(stdout.String(), tt.wantOutput) {
				t.Errorf("stdout = %q, want it to contain %q", stdout.String(), tt.wantOutput)
			}

			for _, name := range []string{"w.png", "p.png", "b.png"} {
				img, err := intImage.LoadImage(filepath.Join(out, name))
				if err != nil {
					t.Fatalf("load %s: %v", name, err)
				}
				if img.Size() != tt.wantSize {
					t.Errorf("%s size = %v, want %v", name, img.Size(), tt.wantSize)
				}
			}
		})
	}
}

func TestRunVerboseLogs(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src.png")
	matrix := filepath.Join(dir, "m.txt")
	writePNG(t, src, 10, 10, color.NRGBA{G: 255, A: 255})
	writeFile(t, matrix, "1 0 -5\n0 1 0\n")

	var stdout, stderr bytes.Buffer
	args := []string{
		"-v", "-src", src, "-dst", src, "-matrix", matrix,
		"-out-warped", filepath.Join(dir, "w.png"),
		"-out-padded", filepath.Join(dir, "p.png"),
	}
	if err := run(args, &stdout, &stderr); err != nil {
		t.Fatalf("run: %v", err)
	}
	if !strings.Contains(stderr.String(), "padwarp: layout") {
		t.Errorf("stderr = %q, want debug layout record", stderr.String())
	}
}

func TestRunErrors(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src.png")
	writePNG(t, src, 10, 10, color.NRGBA{A: 255})

	bad := filepath.Join(dir, "bad.txt")
	writeFile(t, bad, "1 0\n0 1\n")
	three := filepath.Join(dir, "three.txt")
	writeFile(t, three, "1 0 0\n0 1 0\n0 0 1\n")
	good := filepath.Join(dir, "good.txt")
	writeFile(t, good, "1 0 0\n0 1 0\n")

	base := func(matrix string, extra ...string) []string {
		return append([]string{"-src", src, "-dst", src, "-matrix", matrix,
			"-out-warped", filepath.Join(dir, "w.png"),
			"-out-padded", filepath.Join(dir, "p.png")}, extra...)
	}

	tests := []struct {
		name string
		args []string
	}{
		{"missing flags", []string{"-src", src}},
		{"unknown flag", []string{"-nope"}},
		{"missing source", []string{"-src", filepath.Join(dir, "none.png"), "-dst", src, "-matrix", good}},
		{"missing matrix", base(filepath.Join(dir, "none.txt"))},
		{"bad shape", base(bad)},
		{"affine flag with 3x3", base(three, "-affine")},
		{"bad interpolation", base(good, "-interp", "lanczos")},
		{"bad border", base(good, "-border", "wrap")},
		{"bad output extension", base(good, "-out-blend", filepath.Join(dir, "b.gif"))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stdout, stderr bytes.Buffer
			if err := run(tt.args, &stdout, &stderr); err == nil {
				t.Error("run() succeeded, want error")
			}
		})
	}
}

func TestRunHelp(t *testing.T) {
	var stdout, stderr bytes.Buffer
	if err := run([]string{"-h"}, &stdout, &stderr); !errors.Is(err, flag.ErrHelp) {
		t.Errorf("error = %v, want flag.ErrHelp", err)
	}
	if !strings.Contains(stderr.String(), "-matrix") {
		t.Error("usage does not list -matrix")
	}
}
