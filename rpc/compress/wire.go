package compress

import (
	"fmt"

	"github.com/joshuapare/corekit/internal/buf"
)

const (
	// ChunkSize is the decompressed size of every intermediate chunk and the
	// size of the output buffers on both sides.
	ChunkSize = 128 << 10

	// ChunkHeaderSize is the size of the little-endian chunk header.
	ChunkHeaderSize = 4

	// LastChunkFlag marks the final chunk of a message.
	LastChunkFlag uint32 = 1 << 31

	lengthMask = LastChunkFlag - 1
)

// EncodeHeader builds a chunk header. For the last chunk n is the
// decompressed length, otherwise the compressed length.
func EncodeHeader(last bool, n uint32) uint32 {
	v := n & lengthMask
	if last {
		v |= LastChunkFlag
	}
	return v
}

// DecodeHeader splits a chunk header into its flag and length.
func DecodeHeader(v uint32) (last bool, n uint32) {
	return v&LastChunkFlag != 0, v & lengthMask
}

func putHeader(b []byte, last bool, n int) {
	buf.PutU32LE(b, EncodeHeader(last, uint32(n)))
}

// ChunkInfo describes one chunk of an encoded message.
type ChunkInfo struct {
	Offset       int  // offset of the header within the message
	Last         bool // last-chunk flag
	Compressed   int  // payload bytes on the wire
	Decompressed int  // bytes after decompression
}

// Inspect walks the chunk headers of an encoded message without
// decompressing anything. Messages shorter than a header yield no chunks.
func Inspect(data Payload) ([]ChunkInfo, error) {
	if data.Len() < ChunkHeaderSize {
		return nil, nil
	}
	r := newFragReader(data)
	var (
		chunks []ChunkInfo
		hdr    [ChunkHeaderSize]byte
	)
	for {
		off := data.Len() - r.left
		if r.left < ChunkHeaderSize {
			return chunks, fmt.Errorf("%w: header at offset %d", ErrTruncated, off)
		}
		r.read(hdr[:])
		last, n := DecodeHeader(buf.U32LE(hdr[:]))
		if last {
			chunks = append(chunks, ChunkInfo{
				Offset: off, Last: true, Compressed: r.left, Decompressed: int(n),
			})
			return chunks, nil
		}
		if int(n) > r.left {
			return chunks, fmt.Errorf("%w: chunk at offset %d claims %d bytes, %d left",
				ErrTruncated, off, n, r.left)
		}
		r.skip(int(n))
		chunks = append(chunks, ChunkInfo{
			Offset: off, Compressed: int(n), Decompressed: ChunkSize,
		})
	}
}
