package buf

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEndianHelpers(t *testing.T) {
	data := []byte{0x01, 0x23, 0x45, 0x67, 0x89}
	require.Equal(t, uint32(0x67452301), U32LE(data))
	require.Zero(t, U32LE(data[:3]), "short reads should return 0")

	out := make([]byte, 4)
	require.True(t, PutU32LE(out, 0x80000004))
	require.Equal(t, []byte{0x04, 0x00, 0x00, 0x80}, out)
	require.Equal(t, uint32(0x80000004), U32LE(out))

	require.False(t, PutU32LE(out[:2], 1))
}
