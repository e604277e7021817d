package image

import "sync"

// Pool recycles scratch buffers between warps.
//
// Buffers are grouped by dimensions and format, so a sequence of warps over
// frames of one size reuses the same canvases. Buffers larger than maxBytes
// are never retained; padded canvases can be large and holding them would
// pin memory long after the warp that needed them.
//
// Thread safety: All methods are safe for concurrent use.
type Pool struct {
	mu       sync.Mutex
	buckets  map[poolKey][]*ImageBuf
	perKey   int // max buffers per bucket, 0 means unlimited
	maxBytes int // largest retained buffer, 0 means unlimited
}

// poolKey identifies a bucket of identical buffers.
type poolKey struct {
	width  int
	height int
	format Format
}

// NewPool creates a pool that keeps at most perKey buffers of each
// size and format, each no larger than maxBytes.
func NewPool(perKey, maxBytes int) *Pool {
	return &Pool{
		buckets:  make(map[poolKey][]*ImageBuf),
		perKey:   perKey,
		maxBytes: maxBytes,
	}
}

// Get returns a zero-filled buffer of the given size and format, reusing a
// pooled one when available.
func (p *Pool) Get(width, height int, format Format) (*ImageBuf, error) {
	key := poolKey{width: width, height: height, format: format}

	p.mu.Lock()
	bucket := p.buckets[key]
	if n := len(bucket); n > 0 {
		buf := bucket[n-1]
		bucket[n-1] = nil
		p.buckets[key] = bucket[:n-1]
		p.mu.Unlock()

		buf.Clear()
		return buf, nil
	}
	p.mu.Unlock()

	return NewImageBuf(width, height, format)
}

// Put hands buf back to the pool. The caller must not use buf afterwards.
// Buffers over the size limit are dropped.
func (p *Pool) Put(buf *ImageBuf) {
	if buf == nil {
		return
	}
	if p.maxBytes > 0 && len(buf.data) > p.maxBytes {
		return
	}

	key := poolKey{width: buf.width, height: buf.height, format: buf.format}

	p.mu.Lock()
	defer p.mu.Unlock()

	bucket := p.buckets[key]
	if p.perKey > 0 && len(bucket) >= p.perKey {
		return
	}
	p.buckets[key] = append(bucket, buf)
}

// Len returns the number of buffers currently held.
func (p *Pool) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()

	n := 0
	for _, bucket := range p.buckets {
		n += len(bucket)
	}
	return n
}

// scratch holds canvases and staging buffers shared by all warps.
var scratch = NewPool(4, 64<<20)

// GetScratch returns a zero-filled buffer from the shared scratch pool.
func GetScratch(width, height int, format Format) (*ImageBuf, error) {
	return scratch.Get(width, height, format)
}

// PutScratch returns buf to the shared scratch pool.
func PutScratch(buf *ImageBuf) {
	scratch.Put(buf)
}
