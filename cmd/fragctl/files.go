package main

import (
	"fmt"
	"os"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/joshuapare/corekit/internal/mmap"
	"github.com/joshuapare/corekit/rpc/compress"
)

// numbers formats counts with digit grouping.
var numbers = message.NewPrinter(language.English)

// openInput maps path read-only. The returned payload is cut into fragments
// of fragSize bytes when fragSize is positive.
func openInput(path string, fragSize int) (compress.Payload, func() error, error) {
	data, unmap, err := mmap.MapFile(path)
	if err != nil {
		return compress.Payload{}, nil, fmt.Errorf("open %s: %w", path, err)
	}
	if fragSize > 0 {
		return compress.Split(data, fragSize), unmap, nil
	}
	return compress.Single(data), unmap, nil
}

// writeOutput writes every fragment of p to path.
func writeOutput(path string, p compress.Payload) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	for _, frag := range p.Fragments() {
		if _, err := f.Write(frag); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
	}
	return nil
}

// skipHead drops the first n bytes of p.
func skipHead(p compress.Payload, n int) (compress.Payload, error) {
	if n == 0 {
		return p, nil
	}
	if n < 0 || n > p.Len() {
		return compress.Payload{}, fmt.Errorf("cannot skip %d bytes of a %d byte input", n, p.Len())
	}
	var out [][]byte
	for _, frag := range p.Fragments() {
		if n >= len(frag) {
			n -= len(frag)
			continue
		}
		out = append(out, frag[n:])
		n = 0
	}
	if !p.IsMulti() && len(out) == 1 {
		return compress.Single(out[0]), nil
	}
	return compress.Multi(out), nil
}

func newContext(codecName string) (*compress.Context, error) {
	codec, err := compress.Lookup(codecName)
	if err != nil {
		return nil, err
	}
	return compress.NewContext(compress.WithCodec(codec)), nil
}
