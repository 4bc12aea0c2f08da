// Package arena implements a temporary memory allocator for short-lived
// objects owned by a single worker.
//
// # Overview
//
// Small objects (<= MaxObjectSize, 32 KiB) are carved out of the current
// 128 KiB block by bumping a cursor. Once the current block is exhausted a new
// one is mapped and the old one is closed. Blocks are never reused: a block is
// returned to the system as soon as the last object inside it is freed.
//
// Every block starts with a header holding a signed use count. Its meaning
// depends on the block state:
//
//   - Open (the block currently allocated from): the count is not positive and
//     only counts deallocations. The number of allocations is kept in the
//     allocator itself, so the allocation fast path never touches the header.
//   - Closed: when a new block is opened the pending allocation count is added
//     to the header. A zero result means every object already died and the
//     block is unmapped right away; otherwise the header now holds the true
//     live count and the free that brings it to zero unmaps the block.
//
// All blocks are aligned to their size, so Free finds the header by rounding
// the pointer down to a BlockSize boundary.
//
// Large objects (> MaxObjectSize) get a dedicated mapping aligned to BlockSize
// with the same header and a use count of one, so the same Free path handles
// them. The allocator is not optimised for them.
//
// # Usage
//
//	var a arena.Allocator
//	defer a.Close()
//
//	p := a.Alloc(64)
//	...
//	a.Free(p)
//
//	req := arena.New[request](&a)
//	arena.Delete(&a, req)
//
// # Memory
//
// Blocks live outside the Go heap (anonymous mmap on linux and darwin). The
// garbage collector does not scan them, so types placed in the arena must not
// contain Go pointers, and the arena must not be the only holder of a
// reference to heap memory.
//
// # Thread Safety
//
// An Allocator belongs to exactly one goroutine, normally one locked to its OS
// thread (see the shard package). Use counts are plain integers; freeing a
// pointer from a goroutine other than the owner is undefined behaviour. Only
// Stats may be read concurrently.
package arena
