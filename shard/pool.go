package shard

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/joshuapare/corekit/arena"
	"github.com/joshuapare/corekit/internal/logger"
	"github.com/joshuapare/corekit/rpc/compress"
)

// Pool is a fixed set of shard workers.
type Pool struct {
	cfg     Config
	workers []*worker
	group   errgroup.Group

	quit      chan struct{}
	closeOnce sync.Once
}

// NewPool validates cfg and starts one worker per shard.
func NewPool(cfg Config) (*Pool, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	codec, err := compress.Lookup(cfg.Codec)
	if err != nil {
		return nil, err
	}

	p := &Pool{cfg: cfg, workers: make([]*worker, cfg.Shards), quit: make(chan struct{})}
	for i := range p.workers {
		w := newWorker(i, codec, cfg, p.quit)
		p.workers[i] = w
		p.group.Go(w.run)
	}
	logger.Info("shard: pool started", "shards", cfg.Shards, "codec", cfg.Codec, "pin_cpus", cfg.PinCPUs)
	return p, nil
}

// Size returns the number of shards.
func (p *Pool) Size() int { return len(p.workers) }

// Config returns the config the pool was built with.
func (p *Pool) Config() Config { return p.cfg }

// Submit runs fn on shard id and waits for its result. If ctx ends first,
// Submit returns ctx.Err(); a task that already started still runs to
// completion on its worker. Submit may be called from inside a Task, including
// while Close is in progress, in which case it returns ErrClosed.
func (p *Pool) Submit(ctx context.Context, id int, fn Task) error {
	if id < 0 || id >= len(p.workers) {
		return fmt.Errorf("%w: %d of %d", ErrNoShard, id, len(p.workers))
	}
	select {
	case <-p.quit:
		return ErrClosed
	default:
	}

	w := p.workers[id]
	req := request{fn: fn, done: make(chan error, 1)}
	select {
	case w.tasks <- req:
	case <-p.quit:
		return ErrClosed
	case <-ctx.Done():
		return ctx.Err()
	}

	select {
	case err := <-req.done:
		return err
	case <-w.stopped:
		// The request may have been queued after the worker's final drain.
		select {
		case err := <-req.done:
			return err
		default:
			return ErrClosed
		}
	case <-ctx.Done():
		return ctx.Err()
	}
}

// ForEach runs fn on every shard concurrently and returns the first error.
func (p *Pool) ForEach(ctx context.Context, fn Task) error {
	g, ctx := errgroup.WithContext(ctx)
	for i := range p.workers {
		g.Go(func() error { return p.Submit(ctx, i, fn) })
	}
	return g.Wait()
}

// ArenaStats returns the allocator counters of shard id. Safe to call from
// any goroutine.
func (p *Pool) ArenaStats(id int) arena.Stats {
	return p.workers[id].shard.Alloc.Stats()
}

// CompressStats returns the compressor counters of shard id. Safe to call
// from any goroutine.
func (p *Pool) CompressStats(id int) compress.Stats {
	return p.workers[id].shard.Codec.Stats()
}

// Close stops accepting tasks, drains the queues and waits for every worker
// to exit. It is safe to call more than once.
func (p *Pool) Close() error {
	stopping := false
	p.closeOnce.Do(func() {
		stopping = true
		close(p.quit)
	})

	err := p.group.Wait()
	if stopping {
		logger.Info("shard: pool stopped", "shards", len(p.workers))
	}
	return err
}
