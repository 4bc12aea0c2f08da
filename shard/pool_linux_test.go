package shard

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/sys/unix"
)

func TestWorkerKeepsItsThread(t *testing.T) {
	p := newTestPool(t, 2, 0)
	tid := func(id int) int {
		var got int
		require.NoError(t, p.Submit(context.Background(), id, func(*Shard) error {
			got = unix.Gettid()
			return nil
		}))
		return got
	}

	first := tid(0)
	for range 50 {
		require.Equal(t, first, tid(0))
	}
	require.NotEqual(t, first, tid(1))
}

func TestPinnedPool(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Shards = 2
	cfg.PinCPUs = true
	logs := captureLogs(t)
	p, err := NewPool(cfg)
	require.NoError(t, err)

	// Pinning may be refused inside restricted cpusets; the pool still works.
	require.NoError(t, p.ForEach(context.Background(), func(*Shard) error { return nil }))
	require.NoError(t, p.Close())

	out := logs.String()
	for id := range cfg.Shards {
		shard := fmt.Sprintf("shard=%d ", id)
		require.True(t,
			strings.Contains(out, `msg="shard: pinned" `+shard) ||
				strings.Contains(out, `msg="shard: cpu pinning failed" `+shard),
			"no pinning record for shard %d in:\n%s", id, out)
	}
}
