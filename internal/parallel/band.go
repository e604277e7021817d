package parallel

// Band is the half-open row range [Y0, Y1).
type Band struct {
	Y0, Y1 int
}

// Bands splits height rows into at most n contiguous bands of at least
// minRows rows each (the last band may be shorter). It returns nil when
// height is not positive.
func Bands(height, n, minRows int) []Band {
	if height <= 0 {
		return nil
	}
	n = max(n, 1)
	minRows = max(minRows, 1)

	rows := max((height+n-1)/n, minRows)
	out := make([]Band, 0, (height+rows-1)/rows)
	for y := 0; y < height; y += rows {
		out = append(out, Band{Y0: y, Y1: min(y+rows, height)})
	}
	return out
}

// ForEachBand calls fn for each band of height rows on the pool and waits
// for all calls to return. Bands are sized so each worker gets about four.
// fn must only touch the rows it is given.
func ForEachBand(p *WorkerPool, height, minRows int, fn func(y0, y1 int)) {
	bands := Bands(height, 4*p.Workers(), minRows)
	if len(bands) == 1 {
		fn(bands[0].Y0, bands[0].Y1)
		return
	}

	work := make([]func(), len(bands))
	for i, b := range bands {
		work[i] = func() { fn(b.Y0, b.Y1) }
	}
	p.ExecuteAll(work)
}
