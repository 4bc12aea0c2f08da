// Package compress implements the fragmented stream compressor used on RPC
// payloads.
//
// # Wire Format
//
// A compressed message is one or more chunks, each preceded by a 4-byte
// little-endian header:
//
//	chunk   := header(4) || payload
//	bit 31 = 0  intermediate chunk; bits 30..0 = compressed payload length,
//	            decompressed length is ChunkSize (128 KiB)
//	bit 31 = 1  last chunk; bits 30..0 = decompressed length, the payload is
//	            whatever remains of the message
//	message := chunk* ending in exactly one last chunk
//
// Chunks are produced by one block codec stream per message, so they are
// decoded strictly in order with the stream state reset once per message.
// The LZ4 decoder keeps the previous 64 KiB of output as a dictionary, which
// makes it compatible with peers whose encoder references earlier chunks.
//
// # Buffers
//
// Payloads are either one contiguous buffer or an ordered list of fragments
// (see Payload). Small messages take a fast path on both sides: a message that
// fits one chunk and whose worst-case compressed size fits one output buffer
// is compressed straight into a single buffer, and a single-buffer input whose
// first header is the last chunk is decompressed without any staging.
//
// # Contexts
//
// A Context holds the codec stream state and reusable staging buffers of one
// worker. It is not safe for concurrent use; each shard owns one.
package compress
