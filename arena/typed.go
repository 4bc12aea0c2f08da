package arena

import (
	"math"
	"unsafe"
)

// New returns a zeroed *T placed in the allocator. T must not contain Go
// pointers: arena memory is not scanned by the garbage collector.
func New[T any](a *Allocator) *T {
	var zero T
	t := (*T)(a.Alloc(unsafe.Sizeof(zero)))
	*t = zero
	return t
}

// Delete frees a value returned by New.
func Delete[T any](a *Allocator, t *T) {
	a.Free(unsafe.Pointer(t))
}

// MakeSlice returns a zeroed slice of n elements of T placed in the allocator.
// Returns nil if n <= 0. The same pointer-free rule as New applies.
func MakeSlice[T any](a *Allocator, n int) []T {
	if n <= 0 {
		return nil
	}
	var zero T
	elem := unsafe.Sizeof(zero)
	if elem != 0 && uintptr(n) > math.MaxUint32/elem {
		panic("arena: slice size overflows")
	}
	s := unsafe.Slice((*T)(a.Alloc(elem*uintptr(n))), n)
	clear(s)
	return s
}

// FreeSlice frees a slice returned by MakeSlice. s must still start at the
// first element; shrinking its length is fine.
func FreeSlice[T any](a *Allocator, s []T) {
	if cap(s) == 0 {
		return
	}
	a.Free(unsafe.Pointer(unsafe.SliceData(s)))
}

// AllocBytes returns an n-byte slice placed in the allocator. Returns nil if n <= 0.
func AllocBytes(a *Allocator, n int) []byte {
	return MakeSlice[byte](a, n)
}

// FreeBytes frees a slice returned by AllocBytes.
func FreeBytes(a *Allocator, b []byte) {
	FreeSlice(a, b)
}
