//go:build !linux && !darwin

package mmap

import (
	"errors"
	"sync"
	"unsafe"

	"github.com/joshuapare/corekit/internal/align"
)

// ErrNotMapped indicates Unmap was called with an address MapAligned never returned.
var ErrNotMapped = errors.New("mmap: address not mapped")

// Without anonymous mmap the regions come from the Go heap. The heap does not
// move objects, so an over-allocated slice has a stable aligned window; the
// registry keeps each backing slice reachable until Unmap.
var (
	registryMu sync.Mutex
	registry   = make(map[uintptr][]byte)
)

// MapAligned returns MappedLen(size) zeroed bytes whose base address is a
// multiple of alignment.
func MapAligned(size, alignment uintptr) (unsafe.Pointer, error) {
	if err := checkAligned(size, alignment); err != nil {
		return nil, err
	}
	backing := make([]byte, MappedLen(size)+alignment)
	raw := unsafe.Pointer(unsafe.SliceData(backing))
	base := unsafe.Add(raw, align.Up(uintptr(raw), alignment)-uintptr(raw))

	registryMu.Lock()
	registry[uintptr(base)] = backing
	registryMu.Unlock()
	return base, nil
}

// Unmap drops the registry entry for p so the backing slice can be collected.
func Unmap(p unsafe.Pointer, _ uintptr) error {
	registryMu.Lock()
	defer registryMu.Unlock()
	if _, ok := registry[uintptr(p)]; !ok {
		return ErrNotMapped
	}
	delete(registry, uintptr(p))
	return nil
}
