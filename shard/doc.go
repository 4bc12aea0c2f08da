// Package shard runs one worker per core, each owning an arena allocator and a
// compressor context. Both are single-owner structures, so every operation on
// them is sent to the worker's goroutine, which stays locked to one OS thread
// (and optionally one CPU) for its lifetime.
//
//	pool, err := shard.NewPool(shard.DefaultConfig())
//	...
//	err = pool.Submit(ctx, 0, func(s *shard.Shard) error {
//		b := arena.AllocBytes(s.Alloc, 512)
//		defer arena.FreeBytes(s.Alloc, b)
//		_, err := s.Codec.Compress(0, compress.Single(b))
//		return err
//	})
package shard
