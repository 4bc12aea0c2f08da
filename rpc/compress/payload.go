package compress

// Payload is a logical byte stream held either in one contiguous buffer or as
// an ordered list of fragments whose concatenation is the stream. The zero
// value is an empty single buffer.
type Payload struct {
	single []byte
	frags  [][]byte
	size   int
	multi  bool
}

// Single wraps one contiguous buffer.
func Single(b []byte) Payload {
	return Payload{single: b, size: len(b)}
}

// Multi wraps an ordered list of fragments. Fragments may have any length,
// including zero.
func Multi(frags [][]byte) Payload {
	size := 0
	for _, f := range frags {
		size += len(f)
	}
	return Payload{frags: frags, size: size, multi: true}
}

// Len returns the logical size in bytes.
func (p Payload) Len() int { return p.size }

// IsMulti reports whether the payload is held as a fragment list.
func (p Payload) IsMulti() bool { return p.multi }

// Contiguous returns the single buffer, or false for a fragment list.
func (p Payload) Contiguous() ([]byte, bool) {
	if p.multi {
		return nil, false
	}
	return p.single, true
}

// Fragments returns the buffers making up the payload, in order.
func (p Payload) Fragments() [][]byte {
	if p.multi {
		return p.frags
	}
	if p.single == nil {
		return nil
	}
	return [][]byte{p.single}
}

// Bytes returns the payload as one slice. A single buffer is returned as is;
// fragments are concatenated into a new slice.
func (p Payload) Bytes() []byte {
	if !p.multi {
		return p.single
	}
	out := make([]byte, 0, p.size)
	for _, f := range p.frags {
		out = append(out, f...)
	}
	return out
}

// Split cuts b into fragments of at most size bytes without copying. It is
// how transports hand large messages to the compressor.
func Split(b []byte, size int) Payload {
	if size <= 0 || len(b) <= size {
		return Multi([][]byte{b})
	}
	frags := make([][]byte, 0, (len(b)+size-1)/size)
	for len(b) > 0 {
		n := min(size, len(b))
		frags = append(frags, b[:n:n])
		b = b[n:]
	}
	return Multi(frags)
}

// fragReader is a cursor over a payload.
type fragReader struct {
	frags [][]byte
	idx   int // current fragment
	off   int // offset inside frags[idx]
	left  int // bytes remaining overall
}

func newFragReader(p Payload) fragReader {
	return fragReader{frags: p.Fragments(), left: p.Len()}
}

// skipEmpty moves past exhausted fragments.
func (r *fragReader) skipEmpty() {
	for r.idx < len(r.frags) && r.off == len(r.frags[r.idx]) {
		r.idx++
		r.off = 0
	}
}

// view returns the next n bytes without copying if they sit in one fragment.
func (r *fragReader) view(n int) ([]byte, bool) {
	if n == 0 {
		return nil, true
	}
	r.skipEmpty()
	if r.idx == len(r.frags) {
		return nil, false
	}
	f := r.frags[r.idx]
	if len(f)-r.off < n {
		return nil, false
	}
	b := f[r.off : r.off+n : r.off+n]
	r.off += n
	r.left -= n
	return b, true
}

// read copies exactly len(dst) bytes. The caller checks r.left first.
func (r *fragReader) read(dst []byte) {
	r.left -= len(dst)
	for len(dst) > 0 {
		r.skipEmpty()
		n := copy(dst, r.frags[r.idx][r.off:])
		r.off += n
		dst = dst[n:]
	}
}

// skip advances n bytes. The caller checks r.left first.
func (r *fragReader) skip(n int) {
	r.left -= n
	for n > 0 {
		r.skipEmpty()
		step := min(n, len(r.frags[r.idx])-r.off)
		r.off += step
		n -= step
	}
}
