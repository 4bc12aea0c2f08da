package shard

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/corekit/rpc/compress"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, runtime.NumCPU(), cfg.Shards)
	assert.Equal(t, compress.LZ4Name, cfg.Codec)
	assert.False(t, cfg.PinCPUs)
}

func TestParseConfig(t *testing.T) {
	cfg, err := ParseConfig([]byte(`
shards: 3
pin_cpus: true
codec: S2_FRAGMENTED
`))
	require.NoError(t, err)
	assert.Equal(t, Config{Shards: 3, PinCPUs: true, Codec: compress.S2Name, QueueDepth: 64}, cfg)

	cfg, err = ParseConfig(nil)
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg, "empty document keeps defaults")
}

func TestParseConfigErrors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"unknown field", "shards: 2\nthreads: 4\n"},
		{"zero shards", "shards: 0\n"},
		{"too many shards", "shards: 5000\n"},
		{"negative queue", "queue_depth: -1\n"},
		{"unknown codec", "codec: GZIP\n"},
		{"not yaml", "shards: [1, 2\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseConfig([]byte(tt.yaml))
			require.ErrorIs(t, err, ErrInvalidConfig)
		})
	}
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pool.yaml")
	require.NoError(t, os.WriteFile(path, []byte("shards: 2\nqueue_depth: 0\n"), 0o600))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 2, cfg.Shards)
	assert.Zero(t, cfg.QueueDepth)

	_, err = LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.ErrorIs(t, err, os.ErrNotExist)
}
