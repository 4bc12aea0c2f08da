package arena

import (
	"fmt"
	"os"
	"unsafe"

	"github.com/joshuapare/corekit/internal/align"
	"github.com/joshuapare/corekit/internal/logger"
	"github.com/joshuapare/corekit/internal/mmap"
)

// Runtime debug flag for block logging - controlled by COREKIT_LOG_ALLOC env var.
var logAlloc = os.Getenv("COREKIT_LOG_ALLOC") != ""

// noCopy makes go vet's copylocks check flag copies of an Allocator.
type noCopy struct{}

func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}

// Allocator is a monotonic block allocator for short-lived objects.
// The zero value is ready to use. An Allocator must not be copied and must
// only be used by the goroutine that owns it.
type Allocator struct {
	_ noCopy

	current *blockHeader // open block, nil before the first allocation
	off     uintptr      // next free offset inside current
	limit   uintptr      // BlockSize while a block is open, 0 otherwise
	pending int32        // allocations made from current since it was opened

	stats counters
}

// Alloc returns a pointer to size bytes aligned to Alignment. Memory comes
// zeroed from the system and is never handed out twice. A zero size is served
// as one byte so the result is still unique and freeable.
//
// Alloc panics with an error wrapping ErrOutOfMemory if the system cannot
// provide a new block.
func (a *Allocator) Alloc(size uintptr) unsafe.Pointer {
	if size > MaxObjectSize {
		return a.allocLarge(size)
	}
	if size == 0 {
		size = 1
	}
	off := a.off
	next := off + size
	if next > a.limit {
		return a.allocNewBlock(size)
	}
	a.off = align.Up(next, Alignment)
	a.pending++
	return unsafe.Add(unsafe.Pointer(a.current), off)
}

// Free releases an object returned by Alloc. The owning block is unmapped
// when its last object is freed. Freeing nil, a foreign pointer, or the same
// pointer twice is undefined.
func (a *Allocator) Free(p unsafe.Pointer) {
	hdr := headerOf(p)
	hdr.useCount--
	if hdr.useCount == 0 {
		a.release(hdr)
	}
}

// FreeSized is Free for callers that track object sizes. The size is not needed.
func (a *Allocator) FreeSized(p unsafe.Pointer, _ uintptr) {
	a.Free(p)
}

// Close closes the open block. If every object in it was already freed the
// block is unmapped now; otherwise it is unmapped by the last Free. The
// allocator stays usable: the next Alloc opens a fresh block.
func (a *Allocator) Close() {
	a.closeCurrent()
}

// Stats returns a snapshot of the allocator counters. Safe to call from any goroutine.
func (a *Allocator) Stats() Stats {
	return a.stats.snapshot()
}

// closeCurrent folds the pending allocation count into the open block header.
func (a *Allocator) closeCurrent() {
	hdr := a.current
	if hdr == nil {
		return
	}
	hdr.useCount += a.pending
	a.current = nil
	a.off = 0
	a.limit = 0
	a.pending = 0
	if hdr.useCount == 0 {
		a.release(hdr)
	}
}

//go:noinline
func (a *Allocator) allocNewBlock(size uintptr) unsafe.Pointer {
	base, err := mmap.MapAligned(BlockSize, BlockSize)
	if err != nil {
		a.fatal("block", BlockSize, err)
	}
	a.closeCurrent()

	hdr := (*blockHeader)(base)
	*hdr = blockHeader{kind: kindBlock, size: BlockSize}
	a.current = hdr
	a.off = align.Up(HeaderSize+size, Alignment)
	a.limit = BlockSize
	a.pending = 1

	a.stats.blocksOpened.Add(1)
	a.stats.bytesMapped.Add(int64(mmap.MappedLen(BlockSize)))
	if logAlloc {
		logger.Debug("arena: block opened", "base", fmt.Sprintf("%#x", uintptr(base)))
	}
	return hdr.payload()
}

//go:noinline
func (a *Allocator) allocLarge(size uintptr) unsafe.Pointer {
	total := HeaderSize + size
	if total < size {
		a.fatal("large object", size, fmt.Errorf("size %d overflows", size))
	}
	base, err := mmap.MapAligned(total, BlockSize)
	if err != nil {
		a.fatal("large object", total, err)
	}

	hdr := (*blockHeader)(base)
	*hdr = blockHeader{useCount: 1, kind: kindLarge, size: total}

	a.stats.largeAllocs.Add(1)
	a.stats.bytesMapped.Add(int64(mmap.MappedLen(total)))
	if logAlloc {
		logger.Debug("arena: large object", "size", size, "base", fmt.Sprintf("%#x", uintptr(base)))
	}
	return hdr.payload()
}

// release unmaps a block or large object whose use count reached zero.
func (a *Allocator) release(hdr *blockHeader) {
	kind, size := hdr.kind, hdr.size
	if err := mmap.Unmap(unsafe.Pointer(hdr), size); err != nil {
		logger.Error("arena: unmap failed", "size", size, "error", err)
		panic(fmt.Errorf("arena: release %#x: %w", uintptr(unsafe.Pointer(hdr)), err))
	}

	a.stats.bytesMapped.Add(-int64(mmap.MappedLen(size)))
	switch kind {
	case kindLarge:
		a.stats.largeFrees.Add(1)
	default:
		a.stats.blocksFreed.Add(1)
	}
	if logAlloc {
		logger.Debug("arena: released", "kind", kind, "size", size)
	}
}

// fatal reports a mapping failure. Allocation failure is not recoverable.
func (a *Allocator) fatal(what string, size uintptr, err error) {
	logger.Error("arena: allocation failed", "what", what, "size", size, "error", err)
	panic(fmt.Errorf("%w: %s of %d bytes: %w", ErrOutOfMemory, what, size, err))
}
