package arena

import (
	"math"
	"unsafe"

	"github.com/joshuapare/corekit/internal/align"
)

const (
	// Alignment is the alignment of every pointer returned by Alloc.
	Alignment = 16

	// BlockSize is the size of a small-object block. Blocks are aligned to it.
	BlockSize = 128 << 10

	// MaxObjectSize is the largest request served from a block. Anything
	// larger takes the large-object path.
	MaxObjectSize = 32 << 10

	// HeaderSize is the space reserved at the start of every block and large
	// object for the block header.
	HeaderSize = Alignment
)

// blockKind tells release which counter to update.
type blockKind uint32

const (
	kindBlock blockKind = iota + 1
	kindLarge
)

// blockHeader sits at the base of every mapping. useCount is a plain int32:
// blocks are only touched by the owning goroutine.
type blockHeader struct {
	useCount int32
	kind     blockKind
	size     uintptr // bytes requested from mmap.MapAligned
}

// Compile-time layout checks.
var (
	_ [HeaderSize - unsafe.Sizeof(blockHeader{})]struct{}
	_ [BlockSize - HeaderSize - MaxObjectSize]struct{}
	_ [math.MaxInt32 - BlockSize]struct{}
)

// headerOf recovers the block header for any pointer returned by Alloc.
func headerOf(p unsafe.Pointer) *blockHeader {
	return (*blockHeader)(unsafe.Pointer(align.Down(uintptr(p), BlockSize)))
}

// payload returns the first usable byte after the header.
func (h *blockHeader) payload() unsafe.Pointer {
	return unsafe.Add(unsafe.Pointer(h), HeaderSize)
}
