package compress

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

// randomBytes returns incompressible data.
func randomBytes(rng *rand.Rand, n int) []byte {
	b := make([]byte, n)
	rng.Read(b)
	return b
}

// textBytes returns compressible data with long repeats.
func textBytes(rng *rand.Rand, n int) []byte {
	words := []string{"shard ", "chunk ", "block ", "arena ", "stream ", "frame ", "\n"}
	b := make([]byte, 0, n+16)
	for len(b) < n {
		b = append(b, words[rng.Intn(len(words))]...)
	}
	return b[:n]
}

// stripHead drops the first n bytes of a payload, keeping the fragment layout.
func stripHead(t testing.TB, p Payload, n int) Payload {
	t.Helper()
	frags := p.Fragments()
	var out [][]byte
	for _, f := range frags {
		if n >= len(f) {
			n -= len(f)
			continue
		}
		out = append(out, f[n:])
		n = 0
	}
	require.Zero(t, n, "payload shorter than head space")
	if len(out) == 1 {
		return Single(out[0])
	}
	return Multi(out)
}

func roundTrip(t testing.TB, c *Context, headSpace int, in Payload) []byte {
	t.Helper()
	enc, err := c.Compress(headSpace, in)
	require.NoError(t, err)
	dec, err := c.Decompress(stripHead(t, enc, headSpace))
	require.NoError(t, err)
	return dec.Bytes()
}
