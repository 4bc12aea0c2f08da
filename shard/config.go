package shard

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"

	"gopkg.in/yaml.v3"

	"github.com/joshuapare/corekit/rpc/compress"
)

// MaxShards bounds Config.Shards.
const MaxShards = 1024

// Config describes a worker pool. It is usually loaded from YAML:
//
//	shards: 8
//	pin_cpus: true
//	codec: LZ4_FRAGMENTED
//	queue_depth: 64
type Config struct {
	Shards     int    `yaml:"shards"`      // number of workers
	PinCPUs    bool   `yaml:"pin_cpus"`    // pin worker i to CPU i % NumCPU (linux only)
	Codec      string `yaml:"codec"`       // compressor codec wire name
	QueueDepth int    `yaml:"queue_depth"` // buffered tasks per worker
}

// DefaultConfig returns one unpinned LZ4 worker per CPU.
func DefaultConfig() Config {
	return Config{
		Shards:     runtime.NumCPU(),
		Codec:      compress.LZ4Name,
		QueueDepth: 64,
	}
}

// Validate checks the config and resolves its codec.
func (c Config) Validate() error {
	if c.Shards < 1 || c.Shards > MaxShards {
		return fmt.Errorf("%w: shards must be in [1, %d], got %d", ErrInvalidConfig, MaxShards, c.Shards)
	}
	if c.QueueDepth < 0 {
		return fmt.Errorf("%w: negative queue_depth %d", ErrInvalidConfig, c.QueueDepth)
	}
	if _, err := compress.Lookup(c.Codec); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return nil
}

// LoadConfig reads a YAML config from path. Fields missing from the file keep
// their DefaultConfig values; unknown fields are rejected.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}
	return ParseConfig(data)
}

// ParseConfig decodes a YAML config over DefaultConfig and validates it.
func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
