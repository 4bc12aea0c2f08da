package compress

import (
	"fmt"

	"github.com/joshuapare/corekit/internal/buf"
)

// Compress encodes data into the chunked wire format. The first headSpace
// bytes of the first output buffer are reserved for the caller's own header
// and are never written.
func (c *Context) Compress(headSpace int, data Payload) (Payload, error) {
	if headSpace < 0 {
		return Payload{}, fmt.Errorf("%w: %d", ErrHeadSpace, headSpace)
	}
	c.enc.Reset()

	var (
		out Payload
		err error
	)
	n := data.Len()
	single, ok := buf.SumOverflowSafe(c.enc.Bound(n), headSpace, ChunkHeaderSize)
	fast := ok && n <= ChunkSize && single <= ChunkSize
	if fast {
		out, err = c.compressSingle(headSpace, data)
	} else {
		out, err = c.compressChunked(headSpace, data)
	}
	if err != nil {
		return Payload{}, err
	}

	if fast {
		c.stats.compressFast.Add(1)
	}
	c.stats.compressed.Add(1)
	c.stats.compressIn.Add(int64(n))
	c.stats.compressOut.Add(int64(out.Len()))
	return out, nil
}

// compressSingle is the fast path for messages that fit one chunk and one buffer.
func (c *Context) compressSingle(headSpace int, data Payload) (Payload, error) {
	n := data.Len()
	src, ok := data.Contiguous()
	if !ok {
		r := newFragReader(data)
		src = c.nextInput(&r, n)
	}

	bound := c.enc.Bound(n)
	dst := make([]byte, headSpace+ChunkHeaderSize+bound)
	compressed, err := c.enc.Encode(dst[headSpace+ChunkHeaderSize:], src)
	if err != nil {
		return Payload{}, fmt.Errorf("compress: %s: %w", c.codec.Name(), err)
	}
	putHeader(dst[headSpace:], true, n)
	return Single(dst[:headSpace+ChunkHeaderSize+compressed]), nil
}

// compressChunked splits data into ChunkSize input chunks and packs the
// framed chunks into ChunkSize output buffers, splitting across buffers as needed.
func (c *Context) compressChunked(headSpace int, data Payload) (Payload, error) {
	if c.stage == nil {
		c.stage = make([]byte, ChunkHeaderSize+c.enc.Bound(ChunkSize))
	}
	r := newFragReader(data)
	w := newChunkWriter(headSpace)

	for r.left > ChunkSize {
		if err := c.writeChunk(&w, c.nextInput(&r, ChunkSize), false); err != nil {
			return Payload{}, err
		}
	}
	if err := c.writeChunk(&w, c.nextInput(&r, r.left), true); err != nil {
		return Payload{}, err
	}
	return w.finish(), nil
}

// writeChunk compresses one input chunk into the stage and appends header
// and payload to the output.
func (c *Context) writeChunk(w *chunkWriter, src []byte, last bool) error {
	compressed, err := c.enc.Encode(c.stage[ChunkHeaderSize:], src)
	if err != nil {
		return fmt.Errorf("compress: %s: %w", c.codec.Name(), err)
	}
	if last {
		putHeader(c.stage, true, len(src))
	} else {
		putHeader(c.stage, false, compressed)
	}
	w.write(c.stage[:ChunkHeaderSize+compressed])
	return nil
}

// nextInput returns the next n <= ChunkSize input bytes, straight from the
// fragment when they are contiguous there and gathered otherwise.
func (c *Context) nextInput(r *fragReader, n int) []byte {
	if b, ok := r.view(n); ok {
		return b
	}
	if c.gather == nil {
		c.gather = make([]byte, ChunkSize)
	}
	r.read(c.gather[:n])
	return c.gather[:n]
}

// chunkWriter appends bytes to a growing list of ChunkSize buffers. The first
// buffer is at least ChunkSize and starts past the head space.
type chunkWriter struct {
	bufs [][]byte
	off  int // write offset in the last buffer
}

func newChunkWriter(headSpace int) chunkWriter {
	return chunkWriter{
		bufs: [][]byte{make([]byte, max(headSpace, ChunkSize))},
		off:  headSpace,
	}
}

func (w *chunkWriter) write(src []byte) {
	for len(src) > 0 {
		last := w.bufs[len(w.bufs)-1]
		if w.off == len(last) {
			last = make([]byte, ChunkSize)
			w.bufs = append(w.bufs, last)
			w.off = 0
		}
		n := copy(last[w.off:], src)
		w.off += n
		src = src[n:]
	}
}

// finish trims the last buffer to its used length.
func (w *chunkWriter) finish() Payload {
	i := len(w.bufs) - 1
	w.bufs[i] = w.bufs[i][:w.off]
	if len(w.bufs) == 1 {
		return Single(w.bufs[0])
	}
	return Multi(w.bufs)
}
