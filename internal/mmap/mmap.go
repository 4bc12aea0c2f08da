// Package mmap provides the raw memory sources used by corekit: anonymous
// mappings aligned to their own size for allocator blocks, and read-only file
// mappings for the command line tools.
package mmap

import (
	"errors"
	"os"

	"github.com/joshuapare/corekit/internal/align"
)

var (
	// ErrBadAlign indicates an alignment that is not a power-of-two multiple of the page size.
	ErrBadAlign = errors.New("mmap: alignment must be a power of two and a multiple of the page size")

	// ErrBadSize indicates a zero-length mapping request.
	ErrBadSize = errors.New("mmap: size must be positive")
)

var pageSize = uintptr(os.Getpagesize())

// PageSize returns the system page size.
func PageSize() uintptr { return pageSize }

// MappedLen returns the number of bytes MapAligned reserves for a request of
// size bytes. Unmap must be given the same value.
func MappedLen(size uintptr) uintptr {
	return align.Up(size, pageSize)
}

func checkAligned(size, alignment uintptr) error {
	if size == 0 {
		return ErrBadSize
	}
	if !align.IsPow2(alignment) || alignment < pageSize {
		return ErrBadAlign
	}
	return nil
}
