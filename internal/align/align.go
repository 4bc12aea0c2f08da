// Package align provides power-of-two alignment arithmetic for block and
// object placement.
package align

// Up returns n rounded up to the next multiple of a. a must be a power of two.
//
// Example:
//
//	Up(1, 16)  = 16
//	Up(16, 16) = 16
//	Up(17, 16) = 32
func Up(n, a uintptr) uintptr {
	return (n + a - 1) &^ (a - 1)
}

// Down returns n rounded down to a multiple of a. a must be a power of two.
//
// Example:
//
//	Down(0x2001f, 0x20000) = 0x20000
func Down(n, a uintptr) uintptr {
	return n &^ (a - 1)
}

// IsAligned reports whether n is a multiple of a. a must be a power of two.
func IsAligned(n, a uintptr) bool {
	return n&(a-1) == 0
}

// IsPow2 reports whether n is a positive power of two.
func IsPow2(n uintptr) bool {
	return n != 0 && n&(n-1) == 0
}
