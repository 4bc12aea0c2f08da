package align

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestUpDown(t *testing.T) {
	tests := []struct {
		n, a     uintptr
		up, down uintptr
	}{
		{0, 16, 0, 0},
		{1, 16, 16, 0},
		{16, 16, 16, 16},
		{17, 16, 32, 16},
		{0x2001f, 0x20000, 0x40000, 0x20000},
	}
	for _, tt := range tests {
		require.Equal(t, tt.up, Up(tt.n, tt.a), "Up(%#x, %#x)", tt.n, tt.a)
		require.Equal(t, tt.down, Down(tt.n, tt.a), "Down(%#x, %#x)", tt.n, tt.a)
	}
}

func TestPredicates(t *testing.T) {
	require.True(t, IsAligned(0x40000, 0x20000))
	require.False(t, IsAligned(0x40010, 0x20000))
	require.True(t, IsPow2(1<<17))
	require.False(t, IsPow2(0))
	require.False(t, IsPow2(48))
}
