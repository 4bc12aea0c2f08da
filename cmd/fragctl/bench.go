package main

import (
	"context"
	"fmt"
	"math/rand/v2"
	"os"
	"time"
	"unsafe"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"github.com/spf13/cobra"

	"github.com/joshuapare/corekit/rpc/compress"
	"github.com/joshuapare/corekit/shard"
)

var (
	benchConfig  string
	benchObjects int
	benchSize    int
	benchMessage int
	benchRounds  int
)

func init() {
	cmd := newBenchCmd()
	cmd.Flags().StringVar(&benchConfig, "config", "", "Pool config file (YAML)")
	cmd.Flags().IntVar(&benchObjects, "objects", 1_000_000, "Objects allocated per shard per round")
	cmd.Flags().IntVar(&benchSize, "size", 16, "Object size in bytes")
	cmd.Flags().IntVar(&benchMessage, "message", 1<<20, "Compressor message size in bytes")
	cmd.Flags().IntVar(&benchRounds, "rounds", 3, "Rounds per shard")
	rootCmd.AddCommand(cmd)
}

func newBenchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "bench",
		Short: "Run allocator and compressor churn on a shard pool",
		Long: `The bench command starts a shard pool and, on every shard, allocates
objects, frees them in random order and round-trips a message through the
compressor. It prints timings and the pool metrics.

Example:
  fragctl bench
  fragctl bench --config pool.yaml --objects 100000 --size 64`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBench(cmd.Context())
		},
	}
}

func runBench(ctx context.Context) error {
	if benchObjects < 0 || benchSize < 0 || benchMessage < 0 {
		return fmt.Errorf("--objects, --size and --message must not be negative")
	}

	cfg := shard.DefaultConfig()
	if benchConfig != "" {
		var err error
		if cfg, err = shard.LoadConfig(benchConfig); err != nil {
			return err
		}
	}
	pool, err := shard.NewPool(cfg)
	if err != nil {
		return err
	}

	printVerbose("Pool: %d shards, codec %s, pinned %v\n", cfg.Shards, cfg.Codec, cfg.PinCPUs)

	start := time.Now()
	benchErr := pool.ForEach(ctx, func(s *shard.Shard) error {
		return churn(s, uint64(s.ID))
	})
	elapsed := time.Since(start)
	if err := pool.Close(); err != nil {
		return err
	}
	if benchErr != nil {
		return benchErr
	}

	ops := int64(cfg.Shards) * int64(benchRounds) * int64(benchObjects)
	printInfo("\n%s allocations on %d shards in %v", numbers.Sprintf("%d", ops), cfg.Shards, elapsed.Round(time.Millisecond))
	if elapsed > 0 {
		printInfo(" (%s allocs/s)", numbers.Sprintf("%.0f", float64(ops)/elapsed.Seconds()))
	}
	printInfo("\n\n")

	reg := prometheus.NewRegistry()
	if err := reg.Register(shard.NewCollector(pool)); err != nil {
		return err
	}
	families, err := reg.Gather()
	if err != nil {
		return err
	}
	if quiet {
		return nil
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(os.Stdout, mf); err != nil {
			return err
		}
	}
	return nil
}

// churn runs the benchmark rounds on one shard.
func churn(s *shard.Shard, seed uint64) error {
	rng := rand.New(rand.NewPCG(seed, 0x9E3779B97F4A7C15))
	ptrs := make([]unsafe.Pointer, benchObjects)
	msg := make([]byte, benchMessage)
	for i := range msg {
		msg[i] = byte(rng.IntN(16))
	}

	for range benchRounds {
		for i := range ptrs {
			p := s.Alloc.Alloc(uintptr(benchSize))
			if benchSize > 0 {
				*(*byte)(p) = byte(i)
			}
			ptrs[i] = p
		}
		rng.Shuffle(len(ptrs), func(i, j int) { ptrs[i], ptrs[j] = ptrs[j], ptrs[i] })
		for _, p := range ptrs {
			s.Alloc.Free(p)
		}

		enc, err := s.Codec.Compress(0, compress.Split(msg, 64<<10))
		if err != nil {
			return err
		}
		dec, err := s.Codec.Decompress(enc)
		if err != nil {
			return err
		}
		if dec.Len() != len(msg) {
			return fmt.Errorf("shard %d: round trip returned %d of %d bytes", s.ID, dec.Len(), len(msg))
		}
	}
	return nil
}
