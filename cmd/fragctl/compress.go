package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/joshuapare/corekit/rpc/compress"
)

var (
	compressHeadSpace int
	compressCodec     string
	compressFrag      int
)

func init() {
	cmd := newCompressCmd()
	cmd.Flags().IntVar(&compressHeadSpace, "head-space", 0, "Reserve N zero bytes before the first chunk")
	cmd.Flags().StringVar(&compressCodec, "codec", compress.LZ4Name, "Codec wire name")
	cmd.Flags().IntVar(&compressFrag, "frag", 0, "Feed the input as fragments of N bytes")
	rootCmd.AddCommand(cmd)
}

func newCompressCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "compress <in> <out>",
		Short: "Encode a file in the chunked wire format",
		Long: `The compress command encodes a file as one fragmented stream message.

Example:
  fragctl compress payload.bin payload.frag
  fragctl compress payload.bin payload.frag --head-space 16 --codec S2_FRAGMENTED`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCompress(args)
		},
	}
}

func runCompress(args []string) error {
	in, unmap, err := openInput(args[0], compressFrag)
	if err != nil {
		return err
	}
	defer unmap()

	ctx, err := newContext(compressCodec)
	if err != nil {
		return err
	}
	printVerbose("Compressing %s (%s bytes, %d fragments) with %s\n",
		args[0], numbers.Sprintf("%d", in.Len()), len(in.Fragments()), compressCodec)

	out, err := ctx.Compress(compressHeadSpace, in)
	if err != nil {
		return fmt.Errorf("compress %s: %w", args[0], err)
	}
	if err := writeOutput(args[1], out); err != nil {
		return err
	}

	st := ctx.Stats()
	if jsonOut {
		return printJSON(map[string]any{
			"input":      in.Len(),
			"output":     out.Len(),
			"head_space": compressHeadSpace,
			"codec":      compressCodec,
			"fast_path":  st.CompressFastPath == 1,
			"buffers":    len(out.Fragments()),
		})
	}
	printInfo("%s -> %s: %s -> %s bytes (%d buffers)\n", args[0], args[1],
		numbers.Sprintf("%d", in.Len()), numbers.Sprintf("%d", out.Len()), len(out.Fragments()))
	return nil
}
