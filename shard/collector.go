package shard

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

// Collector exports the per-shard allocator and compressor counters of a
// pool. Register it with a prometheus.Registerer; it reads the counters on
// every scrape without involving the workers.
type Collector struct {
	pool *Pool

	blocksOpened *prometheus.Desc
	blocksFreed  *prometheus.Desc
	liveBlocks   *prometheus.Desc
	largeAllocs  *prometheus.Desc
	largeFrees   *prometheus.Desc
	mappedBytes  *prometheus.Desc

	messages       *prometheus.Desc
	fastPath       *prometheus.Desc
	bytesIn        *prometheus.Desc
	bytesOut       *prometheus.Desc
	errors         *prometheus.Desc
	scratchGrowths *prometheus.Desc
}

var _ prometheus.Collector = (*Collector)(nil)

// NewCollector returns a collector for p.
func NewCollector(p *Pool) *Collector {
	shard := []string{"shard"}
	dir := []string{"shard", "direction"}
	desc := func(name, help string, labels []string) *prometheus.Desc {
		return prometheus.NewDesc(name, help, labels, nil)
	}
	return &Collector{
		pool: p,

		blocksOpened: desc("corekit_arena_blocks_opened_total", "Allocator blocks mapped.", shard),
		blocksFreed:  desc("corekit_arena_blocks_freed_total", "Allocator blocks unmapped.", shard),
		liveBlocks:   desc("corekit_arena_live_blocks", "Allocator blocks currently mapped.", shard),
		largeAllocs:  desc("corekit_arena_large_allocs_total", "Large objects mapped.", shard),
		largeFrees:   desc("corekit_arena_large_frees_total", "Large objects unmapped.", shard),
		mappedBytes:  desc("corekit_arena_mapped_bytes", "Bytes currently mapped by the allocator.", shard),

		messages:       desc("corekit_compress_messages_total", "Messages processed.", dir),
		fastPath:       desc("corekit_compress_fast_path_total", "Messages handled by the single-buffer fast path.", dir),
		bytesIn:        desc("corekit_compress_bytes_in_total", "Bytes consumed.", dir),
		bytesOut:       desc("corekit_compress_bytes_out_total", "Bytes produced.", dir),
		errors:         desc("corekit_compress_decompress_errors_total", "Messages rejected by the decompressor.", shard),
		scratchGrowths: desc("corekit_compress_scratch_growths_total", "Decompression scratch buffer growths.", shard),
	}
}

// Describe implements prometheus.Collector.
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	for _, d := range []*prometheus.Desc{
		c.blocksOpened, c.blocksFreed, c.liveBlocks, c.largeAllocs, c.largeFrees, c.mappedBytes,
		c.messages, c.fastPath, c.bytesIn, c.bytesOut, c.errors, c.scratchGrowths,
	} {
		ch <- d
	}
}

// Collect implements prometheus.Collector.
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	counter := func(d *prometheus.Desc, v int64, labels ...string) {
		ch <- prometheus.MustNewConstMetric(d, prometheus.CounterValue, float64(v), labels...)
	}
	gauge := func(d *prometheus.Desc, v int64, labels ...string) {
		ch <- prometheus.MustNewConstMetric(d, prometheus.GaugeValue, float64(v), labels...)
	}

	for id := range c.pool.Size() {
		s := strconv.Itoa(id)

		a := c.pool.ArenaStats(id)
		counter(c.blocksOpened, a.BlocksOpened, s)
		counter(c.blocksFreed, a.BlocksFreed, s)
		gauge(c.liveBlocks, a.LiveBlocks(), s)
		counter(c.largeAllocs, a.LargeAllocs, s)
		counter(c.largeFrees, a.LargeFrees, s)
		gauge(c.mappedBytes, a.BytesMapped, s)

		z := c.pool.CompressStats(id)
		counter(c.messages, z.Compressed, s, "compress")
		counter(c.messages, z.Decompressed, s, "decompress")
		counter(c.fastPath, z.CompressFastPath, s, "compress")
		counter(c.fastPath, z.DecompressFast, s, "decompress")
		counter(c.bytesIn, z.CompressIn, s, "compress")
		counter(c.bytesIn, z.DecompressIn, s, "decompress")
		counter(c.bytesOut, z.CompressOut, s, "compress")
		counter(c.bytesOut, z.DecompressOut, s, "decompress")
		counter(c.errors, z.DecompressErrors, s)
		counter(c.scratchGrowths, z.ScratchGrowths, s)
	}
}
