package compress

import (
	"fmt"

	"github.com/klauspost/compress/s2"
)

// S2Name is the negotiated name of the S2 fragmented codec.
const S2Name = "S2_FRAGMENTED"

type s2Codec struct{}

// S2 returns a codec using S2 blocks. Every chunk after the first is encoded
// against a dictionary built from the last 64 KiB of the message so far, so
// both sides carry the stream history the same way.
func S2() Codec { return s2Codec{} }

func (s2Codec) Name() string        { return S2Name }
func (s2Codec) NewEncoder() Encoder { return &s2Encoder{} }
func (s2Codec) NewDecoder() Decoder { return &s2Decoder{} }

// s2Dict returns the dictionary for the next chunk, or nil while the history
// is too short to build one.
func s2Dict(h *history) *s2.Dict {
	if len(h.bytes()) < s2.MinDictSize {
		return nil
	}
	return s2.MakeDict(h.bytes(), nil)
}

type s2Encoder struct {
	hist history
}

func (e *s2Encoder) Reset() { e.hist.reset() }

func (e *s2Encoder) Bound(n int) int { return s2.MaxEncodedLen(n) }

func (e *s2Encoder) Encode(dst, src []byte) (int, error) {
	var out []byte
	if d := s2Dict(&e.hist); d != nil {
		out = d.Encode(dst, src)
	} else {
		out = s2.Encode(dst, src)
	}
	// out aliases dst whenever dst has Bound capacity.
	if n := copy(dst, out); n < len(out) {
		return 0, fmt.Errorf("s2: %d byte block does not fit %d byte buffer", len(out), len(dst))
	}
	e.hist.add(src)
	return len(out), nil
}

type s2Decoder struct {
	hist history
}

func (d *s2Decoder) Reset() error {
	d.hist.reset()
	return nil
}

func (d *s2Decoder) Decode(dst, src []byte) (int, error) {
	n, err := s2.DecodedLen(src)
	if err != nil {
		return 0, err
	}
	if n > len(dst) {
		return 0, fmt.Errorf("s2: block decodes to %d bytes, want %d", n, len(dst))
	}
	var out []byte
	if dict := s2Dict(&d.hist); dict != nil {
		out, err = dict.Decode(dst[:n], src)
	} else {
		out, err = s2.Decode(dst[:n], src)
	}
	if err != nil {
		return 0, err
	}
	d.hist.add(out)
	return len(out), nil
}
