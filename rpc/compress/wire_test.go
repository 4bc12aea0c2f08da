package compress

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHeaderEncoding(t *testing.T) {
	tests := []struct {
		last bool
		n    uint32
		want uint32
	}{
		{false, 0, 0},
		{false, 1234, 1234},
		{true, 0, 0x80000000},
		{true, 37856, 0x80000000 | 37856},
		{true, ChunkSize, 0x80000000 | ChunkSize},
		{false, 0x7FFFFFFF, 0x7FFFFFFF},
	}
	for _, tt := range tests {
		v := EncodeHeader(tt.last, tt.n)
		require.Equal(t, tt.want, v)
		last, n := DecodeHeader(v)
		require.Equal(t, tt.last, last)
		require.Equal(t, tt.n, n)
	}
}

func TestHeaderIsLittleEndian(t *testing.T) {
	b := make([]byte, ChunkHeaderSize)
	putHeader(b, true, 0x010203)
	require.Equal(t, []byte{0x03, 0x02, 0x01, 0x80}, b)
}

func message(chunks ...[]byte) []byte {
	var out []byte
	for _, c := range chunks {
		out = append(out, c...)
	}
	return out
}

func chunk(last bool, n uint32, payload []byte) []byte {
	b := binary.LittleEndian.AppendUint32(nil, EncodeHeader(last, n))
	return append(b, payload...)
}

func TestInspect(t *testing.T) {
	msg := message(
		chunk(false, 3, []byte{1, 2, 3}),
		chunk(false, 0, nil),
		chunk(true, 500, []byte{9, 9}),
	)
	for _, in := range []Payload{Single(msg), Split(msg, 5)} {
		chunks, err := Inspect(in)
		require.NoError(t, err)
		require.Equal(t, []ChunkInfo{
			{Offset: 0, Compressed: 3, Decompressed: ChunkSize},
			{Offset: 7, Compressed: 0, Decompressed: ChunkSize},
			{Offset: 11, Last: true, Compressed: 2, Decompressed: 500},
		}, chunks)
	}
}

func TestInspectErrors(t *testing.T) {
	chunks, err := Inspect(Single([]byte{1, 2}))
	require.NoError(t, err)
	require.Nil(t, chunks)

	_, err = Inspect(Single(chunk(false, 10, []byte{1, 2, 3})))
	require.ErrorIs(t, err, ErrTruncated)

	_, err = Inspect(Single(message(chunk(false, 1, []byte{1}), []byte{0, 0})))
	require.ErrorIs(t, err, ErrTruncated, "missing last chunk")
}
