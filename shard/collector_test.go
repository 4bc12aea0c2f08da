package shard

import (
	"context"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/corekit/rpc/compress"
)

func TestCollectorRegisters(t *testing.T) {
	p := newTestPool(t, 3, 0)
	reg := prometheus.NewPedanticRegistry()
	require.NoError(t, reg.Register(NewCollector(p)))

	// 6 arena series and 10 compressor series per shard.
	require.Equal(t, 3*16, testutil.CollectAndCount(NewCollector(p)))
	require.Equal(t, 3, testutil.CollectAndCount(NewCollector(p), "corekit_arena_live_blocks"))

	_, err := reg.Gather()
	require.NoError(t, err)
}

func TestCollectorValues(t *testing.T) {
	p := newTestPool(t, 2, 0)
	require.NoError(t, p.Submit(context.Background(), 0, func(s *Shard) error {
		enc, err := s.Codec.Compress(0, compress.Single([]byte("hello hello hello")))
		if err != nil {
			return err
		}
		_, err = s.Codec.Decompress(enc)
		return err
	}))

	want := `
# HELP corekit_compress_messages_total Messages processed.
# TYPE corekit_compress_messages_total counter
corekit_compress_messages_total{direction="compress",shard="0"} 1
corekit_compress_messages_total{direction="compress",shard="1"} 0
corekit_compress_messages_total{direction="decompress",shard="0"} 1
corekit_compress_messages_total{direction="decompress",shard="1"} 0
`
	require.NoError(t, testutil.CollectAndCompare(NewCollector(p), strings.NewReader(want),
		"corekit_compress_messages_total"))
}
