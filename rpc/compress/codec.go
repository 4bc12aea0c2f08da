package compress

import (
	"fmt"
	"slices"
)

// Codec supplies the block compression primitive. One encoder and one decoder
// are created per Context and reused for every message.
type Codec interface {
	// Name is the identifier peers negotiate on.
	Name() string
	NewEncoder() Encoder
	NewDecoder() Decoder
}

// Encoder compresses one bounded block at a time, continuing the stream state
// of the current message.
type Encoder interface {
	// Reset starts a new message.
	Reset()
	// Bound is the worst-case compressed size of n input bytes. Encode never
	// writes more than Bound(len(src)) bytes.
	Bound(n int) int
	// Encode compresses src into dst, which holds at least Bound(len(src))
	// bytes, and returns the compressed length.
	Encode(dst, src []byte) (int, error)
}

// Decoder decompresses one block at a time, continuing the stream state of
// the current message.
type Decoder interface {
	// Reset starts a new message.
	Reset() error
	// Decode decompresses src into dst, which is sized to the expected
	// decompressed length, and returns the number of bytes written.
	Decode(dst, src []byte) (int, error)
}

var codecs = map[string]Codec{}

func register(c Codec) {
	codecs[c.Name()] = c
}

func init() {
	register(LZ4())
	register(S2())
}

// Lookup returns the codec registered under name.
func Lookup(name string) (Codec, error) {
	c, ok := codecs[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCodec, name)
	}
	return c, nil
}

// Names lists the registered codec names in sorted order.
func Names() []string {
	names := make([]string, 0, len(codecs))
	for name := range codecs {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Negotiate picks the first of the local preferences the remote also supports.
func Negotiate(local, remote []string) (Codec, error) {
	for _, name := range local {
		if !slices.Contains(remote, name) {
			continue
		}
		if c, err := Lookup(name); err == nil {
			return c, nil
		}
	}
	return nil, fmt.Errorf("%w: no common codec in %v and %v", ErrUnknownCodec, local, remote)
}
