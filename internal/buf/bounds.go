package buf

import "math"

// AddOverflowSafe adds a and b, returning ok = false when the result would overflow int.
func AddOverflowSafe(a, b int) (int, bool) {
	switch {
	case b > 0 && a > math.MaxInt-b:
		return 0, false
	case b < 0 && a < math.MinInt-b:
		return 0, false
	default:
		return a + b, true
	}
}

// SumOverflowSafe adds every term, returning ok = false on overflow or when a
// term is negative. Used for size accounting where every operand is a length.
func SumOverflowSafe(terms ...int) (int, bool) {
	total := 0
	for _, t := range terms {
		if t < 0 {
			return 0, false
		}
		var ok bool
		if total, ok = AddOverflowSafe(total, t); !ok {
			return 0, false
		}
	}
	return total, true
}
