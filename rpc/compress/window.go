package compress

// historySize is the back-reference distance limit of both codecs, and so the
// stream history a dictionary-continuing encoder or decoder keeps between
// chunks.
const historySize = 64 << 10

// history holds the last historySize bytes seen on one side of a stream.
type history struct {
	buf []byte
}

func (h *history) reset() { h.buf = h.buf[:0] }

func (h *history) bytes() []byte { return h.buf }

// add appends b, dropping the oldest bytes beyond historySize.
func (h *history) add(b []byte) {
	if cap(h.buf) < historySize {
		// Spare capacity lets s2.MakeDict use the buffer without copying it.
		h.buf = make([]byte, 0, historySize+16)
	}
	if len(b) >= historySize {
		h.buf = append(h.buf[:0], b[len(b)-historySize:]...)
		return
	}
	keep := min(historySize-len(b), len(h.buf))
	copy(h.buf, h.buf[len(h.buf)-keep:])
	h.buf = append(h.buf[:keep], b...)
}
