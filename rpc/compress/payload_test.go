package compress

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPayloadZeroValue(t *testing.T) {
	var p Payload
	require.Zero(t, p.Len())
	require.False(t, p.IsMulti())
	require.Nil(t, p.Fragments())
	require.Empty(t, p.Bytes())
}

func TestPayloadSingle(t *testing.T) {
	b := []byte("hello")
	p := Single(b)
	require.Equal(t, 5, p.Len())
	got, ok := p.Contiguous()
	require.True(t, ok)
	require.Same(t, &b[0], &got[0])
	require.Same(t, &b[0], &p.Bytes()[0], "single buffer is not copied")
}

func TestPayloadMulti(t *testing.T) {
	p := Multi([][]byte{[]byte("ab"), nil, []byte("cde"), {}})
	require.True(t, p.IsMulti())
	require.Equal(t, 5, p.Len())
	require.Len(t, p.Fragments(), 4)
	_, ok := p.Contiguous()
	require.False(t, ok)
	require.Equal(t, []byte("abcde"), p.Bytes())
}

func TestSplit(t *testing.T) {
	b := []byte("0123456789")
	p := Split(b, 4)
	require.Equal(t, [][]byte{[]byte("0123"), []byte("4567"), []byte("89")}, p.Fragments())
	require.Equal(t, b, p.Bytes())

	// Fragments are capped so appends cannot clobber the next one.
	f := p.Fragments()[0]
	require.Equal(t, 4, cap(f))

	require.Len(t, Split(b, 10).Fragments(), 1)
	require.Len(t, Split(b, 0).Fragments(), 1)
	require.True(t, Split(nil, 4).IsMulti())
}

func TestFragReader(t *testing.T) {
	p := Multi([][]byte{[]byte("ab"), nil, []byte("cdef"), {}, []byte("g")})
	r := newFragReader(p)
	require.Equal(t, 7, r.left)

	v, ok := r.view(2)
	require.True(t, ok)
	require.Equal(t, []byte("ab"), v)

	v, ok = r.view(3)
	require.True(t, ok, "view skips the empty fragment")
	require.Equal(t, []byte("cde"), v)

	_, ok = r.view(2)
	require.False(t, ok, "f and g are in different fragments")
	require.Equal(t, 2, r.left, "failed view consumes nothing")

	dst := make([]byte, 2)
	r.read(dst)
	require.Equal(t, []byte("fg"), dst)
	require.Zero(t, r.left)

	v, ok = r.view(0)
	require.True(t, ok)
	require.Empty(t, v)
}

func TestFragReaderSkip(t *testing.T) {
	r := newFragReader(Split([]byte("0123456789"), 3))
	r.skip(5)
	require.Equal(t, 5, r.left)
	dst := make([]byte, 5)
	r.read(dst)
	require.Equal(t, []byte("56789"), dst)
}
