package arena

import "sync/atomic"

// Stats is a point-in-time copy of allocator counters.
type Stats struct {
	BlocksOpened int64 // small-object blocks mapped
	BlocksFreed  int64 // small-object blocks unmapped
	LargeAllocs  int64 // large objects mapped
	LargeFrees   int64 // large objects unmapped
	BytesMapped  int64 // bytes currently mapped (blocks and large objects)
}

// LiveBlocks returns the number of small-object blocks still mapped,
// including the open one.
func (s Stats) LiveBlocks() int64 { return s.BlocksOpened - s.BlocksFreed }

// LiveLarge returns the number of large objects not yet freed.
func (s Stats) LiveLarge() int64 { return s.LargeAllocs - s.LargeFrees }

// counters are only written on the cold paths (map/unmap), so atomics cost
// nothing on the hot path and let collectors read them from other goroutines.
type counters struct {
	blocksOpened atomic.Int64
	blocksFreed  atomic.Int64
	largeAllocs  atomic.Int64
	largeFrees   atomic.Int64
	bytesMapped  atomic.Int64
}

func (c *counters) snapshot() Stats {
	return Stats{
		BlocksOpened: c.blocksOpened.Load(),
		BlocksFreed:  c.blocksFreed.Load(),
		LargeAllocs:  c.largeAllocs.Load(),
		LargeFrees:   c.largeFrees.Load(),
		BytesMapped:  c.bytesMapped.Load(),
	}
}
