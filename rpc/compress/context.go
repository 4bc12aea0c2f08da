package compress

import (
	"sync/atomic"
)

// noCopy makes go vet's copylocks check flag copies of a Context.
type noCopy struct{}

func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}

// Context is the per-worker compressor state: one codec stream for each
// direction plus staging buffers that are reused across messages. Only one
// Compress or Decompress call may run on a Context at a time.
type Context struct {
	_ noCopy

	codec Codec
	enc   Encoder
	dec   Decoder

	stage   []byte // chunk header + compressed chunk, compress side
	gather  []byte // input chunk assembled across fragments, compress side
	scratch []byte // compressed chunk assembled across fragments, grows only
	hdr     [ChunkHeaderSize]byte

	stats counters
}

// Option configures a Context.
type Option func(*Context)

// WithCodec selects the block codec. The default is LZ4.
func WithCodec(c Codec) Option {
	return func(ctx *Context) {
		if c != nil {
			ctx.codec = c
		}
	}
}

// NewContext returns a Context ready for use.
func NewContext(opts ...Option) *Context {
	c := &Context{codec: LZ4()}
	for _, opt := range opts {
		opt(c)
	}
	c.enc = c.codec.NewEncoder()
	c.dec = c.codec.NewDecoder()
	return c
}

// Codec returns the codec the context was built with.
func (c *Context) Codec() Codec { return c.codec }

// Stats returns a snapshot of the context counters. Safe to call from any goroutine.
func (c *Context) Stats() Stats { return c.stats.snapshot() }

// ScratchSize returns the current size of the decompression scratch buffer.
func (c *Context) ScratchSize() int { return len(c.scratch) }

// Stats is a point-in-time copy of compressor counters.
type Stats struct {
	Compressed       int64 // messages compressed
	CompressFastPath int64 // of which single-buffer fast path
	CompressIn       int64 // bytes before compression
	CompressOut      int64 // bytes after compression, head space included
	Decompressed     int64 // messages decompressed
	DecompressFast   int64 // of which single-chunk fast path
	DecompressIn     int64 // compressed bytes consumed
	DecompressOut    int64 // bytes produced
	DecompressErrors int64 // messages rejected as corrupt or truncated
	ScratchGrowths   int64 // times the decompression scratch buffer grew
}

type counters struct {
	compressed       atomic.Int64
	compressFast     atomic.Int64
	compressIn       atomic.Int64
	compressOut      atomic.Int64
	decompressed     atomic.Int64
	decompressFast   atomic.Int64
	decompressIn     atomic.Int64
	decompressOut    atomic.Int64
	decompressErrors atomic.Int64
	scratchGrowths   atomic.Int64
}

func (c *counters) snapshot() Stats {
	return Stats{
		Compressed:       c.compressed.Load(),
		CompressFastPath: c.compressFast.Load(),
		CompressIn:       c.compressIn.Load(),
		CompressOut:      c.compressOut.Load(),
		Decompressed:     c.decompressed.Load(),
		DecompressFast:   c.decompressFast.Load(),
		DecompressIn:     c.decompressIn.Load(),
		DecompressOut:    c.decompressOut.Load(),
		DecompressErrors: c.decompressErrors.Load(),
		ScratchGrowths:   c.scratchGrowths.Load(),
	}
}
