package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/joshuapare/corekit/rpc/compress"
)

// resetFlags restores the command globals after a test.
func resetFlags(t *testing.T) {
	t.Helper()
	t.Cleanup(func() {
		jsonOut, quiet, verbose = false, false, false
		compressHeadSpace, compressCodec, compressFrag = 0, compress.LZ4Name, 0
		decompressCodec, decompressSkip, decompressFrag = compress.LZ4Name, 0, 0
		inspectSkip = 0
		benchConfig, benchObjects, benchSize, benchMessage, benchRounds = "", 1_000_000, 16, 1<<20, 3
	})
}

func writeInput(t *testing.T, size int) (string, []byte) {
	t.Helper()
	data := bytes.Repeat([]byte("fragmented stream "), size/18+1)[:size]
	path := filepath.Join(t.TempDir(), "input.bin")
	require.NoError(t, os.WriteFile(path, data, 0o600))
	return path, data
}

func TestCompressDecompressCommands(t *testing.T) {
	tests := []struct {
		name      string
		size      int
		codec     string
		headSpace int
		frag      int
	}{
		{"small lz4", 1000, compress.LZ4Name, 0, 0},
		{"large lz4 with head space", 3*compress.ChunkSize + 11, compress.LZ4Name, 16, 0},
		{"large s2 fragmented", 2*compress.ChunkSize + 5, compress.S2Name, 8, 4096},
		{"empty", 0, compress.LZ4Name, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resetFlags(t)
			quiet = true
			in, data := writeInput(t, tt.size)
			dir := t.TempDir()
			enc := filepath.Join(dir, "out.frag")
			dec := filepath.Join(dir, "out.bin")

			compressCodec, compressHeadSpace, compressFrag = tt.codec, tt.headSpace, tt.frag
			require.NoError(t, runCompress([]string{in, enc}))

			decompressCodec, decompressSkip, decompressFrag = tt.codec, tt.headSpace, tt.frag
			require.NoError(t, runDecompress([]string{enc, dec}))

			got, err := os.ReadFile(dec)
			require.NoError(t, err)
			require.Equal(t, data, got)
		})
	}
}

func TestCompressUnknownCodec(t *testing.T) {
	resetFlags(t)
	in, _ := writeInput(t, 10)
	compressCodec = "BROTLI"
	err := runCompress([]string{in, filepath.Join(t.TempDir(), "x")})
	require.ErrorIs(t, err, compress.ErrUnknownCodec)
}

func TestDecompressCorruptInput(t *testing.T) {
	resetFlags(t)
	path := filepath.Join(t.TempDir(), "bad.frag")
	require.NoError(t, os.WriteFile(path, []byte{0x10, 0, 0, 0, 1, 2}, 0o600))
	err := runDecompress([]string{path, filepath.Join(t.TempDir(), "x")})
	require.ErrorIs(t, err, compress.ErrTruncated)
}

func TestInspectCommand(t *testing.T) {
	resetFlags(t)
	quiet = true
	in, _ := writeInput(t, 2*compress.ChunkSize+100)
	enc := filepath.Join(t.TempDir(), "out.frag")
	require.NoError(t, runCompress([]string{in, enc}))

	quiet = false
	out, err := captureOutput(t, func() error { return runInspect([]string{enc}) })
	require.NoError(t, err)
	assertContains(t, out, []string{"CHUNK", "yes", "Chunks:       3", "Decompressed: 262,244 bytes"})

	jsonOut = true
	out, err = captureOutput(t, func() error { return runInspect([]string{enc}) })
	require.NoError(t, err)
	assertContains(t, out, []string{`"Last": true`, `"decompressed": 262244`})
}

func TestBenchCommand(t *testing.T) {
	resetFlags(t)
	cfg := filepath.Join(t.TempDir(), "pool.yaml")
	require.NoError(t, os.WriteFile(cfg, []byte("shards: 2\nqueue_depth: 1\n"), 0o600))
	benchConfig, benchObjects, benchSize, benchMessage, benchRounds = cfg, 20000, 24, 300_000, 2

	out, err := captureOutput(t, func() error { return runBench(context.Background()) })
	require.NoError(t, err)
	assertContains(t, out, []string{
		"80,000 allocations on 2 shards",
		`corekit_arena_live_blocks{shard="0"} 0`,
		`corekit_arena_live_blocks{shard="1"} 0`,
		`corekit_compress_messages_total{direction="decompress",shard="1"} 2`,
	})
}
