//go:build linux || darwin

package mmap

import (
	"fmt"
	"unsafe"

	"golang.org/x/sys/unix"

	"github.com/joshuapare/corekit/internal/align"
)

// MapAligned reserves MappedLen(size) bytes of zeroed, read-write anonymous
// memory whose base address is a multiple of alignment.
//
// The mapping is over-reserved by alignment bytes and the misaligned head and
// unused tail are returned to the kernel immediately, so only the aligned
// window stays mapped. The memory lives outside the Go heap.
func MapAligned(size, alignment uintptr) (unsafe.Pointer, error) {
	if err := checkAligned(size, alignment); err != nil {
		return nil, err
	}
	length := MappedLen(size)
	reserve := length + alignment

	raw, err := unix.MmapPtr(-1, 0, nil, reserve,
		unix.PROT_READ|unix.PROT_WRITE, unix.MAP_PRIVATE|unix.MAP_ANON)
	if err != nil {
		return nil, fmt.Errorf("mmap: reserve %d bytes: %w", reserve, err)
	}

	head := align.Up(uintptr(raw), alignment) - uintptr(raw)
	tail := reserve - head - length
	if head > 0 {
		if err := unix.MunmapPtr(raw, head); err != nil {
			_ = unix.MunmapPtr(raw, reserve)
			return nil, fmt.Errorf("mmap: trim head: %w", err)
		}
	}
	base := unsafe.Add(raw, head)
	if !align.IsAligned(uintptr(base), alignment) {
		_ = unix.MunmapPtr(raw, reserve)
		return nil, fmt.Errorf("mmap: %#x is not %#x aligned", uintptr(base), alignment)
	}
	if tail > 0 {
		if err := unix.MunmapPtr(unsafe.Add(base, length), tail); err != nil {
			_ = unix.MunmapPtr(base, length+tail)
			return nil, fmt.Errorf("mmap: trim tail: %w", err)
		}
	}
	return base, nil
}

// Unmap releases a region obtained from MapAligned. size must be the value
// passed to MapAligned.
func Unmap(p unsafe.Pointer, size uintptr) error {
	if err := unix.MunmapPtr(p, MappedLen(size)); err != nil {
		return fmt.Errorf("mmap: unmap %d bytes: %w", size, err)
	}
	return nil
}
