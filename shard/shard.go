package shard

import (
	"runtime"

	"github.com/joshuapare/corekit/arena"
	"github.com/joshuapare/corekit/internal/logger"
	"github.com/joshuapare/corekit/rpc/compress"
)

// Shard is the state owned by one worker. It must only be touched from a Task
// running on that worker.
type Shard struct {
	ID    int
	Alloc *arena.Allocator
	Codec *compress.Context
}

// Task runs on a worker with exclusive access to its shard.
type Task func(s *Shard) error

type request struct {
	fn   Task
	done chan error
}

type worker struct {
	shard   Shard
	tasks   chan request
	quit    <-chan struct{}
	stopped chan struct{} // closed once run has served its last request
	pin     bool
}

func newWorker(id int, codec compress.Codec, cfg Config, quit <-chan struct{}) *worker {
	return &worker{
		shard: Shard{
			ID:    id,
			Alloc: &arena.Allocator{},
			Codec: compress.NewContext(compress.WithCodec(codec)),
		},
		tasks:   make(chan request, cfg.QueueDepth),
		quit:    quit,
		stopped: make(chan struct{}),
		pin:     cfg.PinCPUs,
	}
}

// run serves tasks until quit is closed, drains what is already queued, then
// releases the allocator's open block. The goroutine keeps its OS thread for
// its whole life.
func (w *worker) run() error {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	if w.pin {
		cpu := w.shard.ID % runtime.NumCPU()
		if err := pinToCPU(cpu); err != nil {
			logger.Warn("shard: cpu pinning failed", "shard", w.shard.ID, "cpu", cpu, "error", err)
		} else {
			logger.Debug("shard: pinned", "shard", w.shard.ID, "cpu", cpu)
		}
	}

	w.serve()
	close(w.stopped)

	w.shard.Alloc.Close()
	if st := w.shard.Alloc.Stats(); st.LiveBlocks() != 0 || st.LiveLarge() != 0 {
		logger.Warn("shard: allocations outlived the pool",
			"shard", w.shard.ID, "blocks", st.LiveBlocks(), "large", st.LiveLarge())
	}
	return nil
}

func (w *worker) serve() {
	for {
		select {
		case req := <-w.tasks:
			req.done <- req.fn(&w.shard)
		case <-w.quit:
			for {
				select {
				case req := <-w.tasks:
					req.done <- req.fn(&w.shard)
				default:
					return
				}
			}
		}
	}
}
