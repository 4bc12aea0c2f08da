package compress

import (
	"errors"

	"github.com/pierrec/lz4/v4"
)

// LZ4Name is the negotiated name of the LZ4 fragmented codec.
const LZ4Name = "LZ4_FRAGMENTED"

var errLZ4Trailing = errors.New("lz4: trailing bytes after empty block")

type lz4Codec struct {
	level lz4.CompressionLevel
}

// LZ4 returns the default codec: LZ4 block format, fast compressor.
func LZ4() Codec { return lz4Codec{level: lz4.Fast} }

// LZ4HC returns the LZ4 codec with the high-compression encoder at level. The
// wire format is unchanged, so it negotiates under the same name.
func LZ4HC(level lz4.CompressionLevel) Codec { return lz4Codec{level: level} }

func (lz4Codec) Name() string { return LZ4Name }

func (c lz4Codec) NewEncoder() Encoder {
	if c.level == lz4.Fast {
		return &lz4Encoder{}
	}
	return &lz4Encoder{hc: &lz4.CompressorHC{Level: c.level}}
}

func (lz4Codec) NewDecoder() Decoder { return &lz4Decoder{} }

type lz4Encoder struct {
	fast lz4.Compressor
	hc   *lz4.CompressorHC
}

// Reset is a no-op: the compressors clear their match tables per block.
func (e *lz4Encoder) Reset() {}

func (e *lz4Encoder) Bound(n int) int { return lz4.CompressBlockBound(n) }

func (e *lz4Encoder) Encode(dst, src []byte) (int, error) {
	if e.hc != nil {
		return e.hc.CompressBlock(src, dst)
	}
	return e.fast.CompressBlock(src, dst)
}

// lz4Decoder resolves matches against the last historySize bytes of output
// of the current message.
type lz4Decoder struct {
	hist history
}

func (d *lz4Decoder) Reset() error {
	d.hist.reset()
	return nil
}

func (d *lz4Decoder) Decode(dst, src []byte) (int, error) {
	if len(dst) == 0 {
		// An empty block is a single zero token, or nothing at all.
		if len(src) > 1 || (len(src) == 1 && src[0] != 0) {
			return 0, errLZ4Trailing
		}
		return 0, nil
	}
	n, err := lz4.UncompressBlockWithDict(src, dst, d.hist.bytes())
	if err != nil {
		return n, err
	}
	d.hist.add(dst[:n])
	return n, nil
}
