package compress

import (
	"fmt"

	"github.com/joshuapare/corekit/internal/buf"
	"github.com/joshuapare/corekit/internal/logger"
)

// Decompress decodes a message produced by Compress (or a compatible peer).
// Inputs shorter than one chunk header decode to an empty payload. Any error
// means the stream state of the message is unusable; callers should drop the
// connection rather than retry.
func (c *Context) Decompress(data Payload) (Payload, error) {
	if data.Len() < ChunkHeaderSize {
		return Payload{}, nil
	}
	if err := c.dec.Reset(); err != nil {
		return Payload{}, fmt.Errorf("%w: %w", ErrStreamReset, err)
	}

	var (
		out Payload
		err error
	)
	if src, ok := data.Contiguous(); ok {
		if last, n := DecodeHeader(buf.U32LE(src)); last {
			out, err = c.decompressSingle(src[ChunkHeaderSize:], n)
			if err == nil {
				c.stats.decompressFast.Add(1)
			}
			return c.account(data, out, err)
		}
	}
	out, err = c.decompressChunked(data)
	return c.account(data, out, err)
}

func (c *Context) account(in, out Payload, err error) (Payload, error) {
	if err != nil {
		c.stats.decompressErrors.Add(1)
		return Payload{}, err
	}
	c.stats.decompressed.Add(1)
	c.stats.decompressIn.Add(int64(in.Len()))
	c.stats.decompressOut.Add(int64(out.Len()))
	return out, nil
}

// decompressSingle is the fast path for a single buffer holding only a last chunk.
func (c *Context) decompressSingle(src []byte, n uint32) (Payload, error) {
	dst, err := c.decodeChunk(src, n, 0)
	if err != nil {
		return Payload{}, err
	}
	return Single(dst), nil
}

func (c *Context) decompressChunked(data Payload) (Payload, error) {
	r := newFragReader(data)
	var (
		bufs [][]byte
		off  int
	)
	for {
		off = data.Len() - r.left
		if r.left < ChunkHeaderSize {
			return Payload{}, fmt.Errorf("%w: header at offset %d", ErrTruncated, off)
		}
		r.read(c.hdr[:])
		last, n := DecodeHeader(buf.U32LE(c.hdr[:]))
		if last {
			dst, err := c.decodeChunk(c.stageChunk(&r, r.left), n, off)
			if err != nil {
				return Payload{}, err
			}
			bufs = append(bufs, dst)
			break
		}
		if int(n) > r.left {
			return Payload{}, fmt.Errorf("%w: chunk at offset %d claims %d bytes, %d left",
				ErrTruncated, off, n, r.left)
		}
		dst, err := c.decodeChunk(c.stageChunk(&r, int(n)), ChunkSize, off)
		if err != nil {
			return Payload{}, err
		}
		bufs = append(bufs, dst)
	}

	if len(bufs) == 1 {
		return Single(bufs[0]), nil
	}
	return Multi(bufs), nil
}

// decodeChunk decompresses one chunk into a new buffer of exactly n bytes.
func (c *Context) decodeChunk(src []byte, n uint32, off int) ([]byte, error) {
	if n > ChunkSize {
		return nil, fmt.Errorf("%w: chunk at offset %d decodes to %d bytes, limit %d",
			ErrCorrupt, off, n, ChunkSize)
	}
	dst := make([]byte, n)
	got, err := c.dec.Decode(dst, src)
	if err != nil {
		return nil, fmt.Errorf("%w: chunk at offset %d: %s: %w", ErrCorrupt, off, c.codec.Name(), err)
	}
	if got != int(n) {
		return nil, fmt.Errorf("%w: chunk at offset %d decoded %d bytes, header says %d",
			ErrCorrupt, off, got, n)
	}
	return dst, nil
}

// stageChunk returns the next n compressed bytes as one slice. Bytes split
// across fragments are copied into the scratch buffer, which grows to the
// largest chunk seen. Peers may use a different bound, so any chunk size is
// accepted.
func (c *Context) stageChunk(r *fragReader, n int) []byte {
	if b, ok := r.view(n); ok {
		return b
	}
	s := c.growScratch(n)[:n]
	r.read(s)
	return s
}

func (c *Context) growScratch(n int) []byte {
	if len(c.scratch) >= n {
		return c.scratch
	}
	size := max(n, c.enc.Bound(ChunkSize))
	if c.scratch != nil {
		logger.Debug("compress: scratch grown", "from", len(c.scratch), "to", size)
	}
	c.scratch = make([]byte, size)
	c.stats.scratchGrowths.Add(1)
	return c.scratch
}
