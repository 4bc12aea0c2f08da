package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/joshuapare/corekit/rpc/compress"
)

var (
	decompressCodec string
	decompressSkip  int
	decompressFrag  int
)

func init() {
	cmd := newDecompressCmd()
	cmd.Flags().StringVar(&decompressCodec, "codec", compress.LZ4Name, "Codec wire name")
	cmd.Flags().IntVar(&decompressSkip, "skip", 0, "Skip N head-space bytes before the first chunk")
	cmd.Flags().IntVar(&decompressFrag, "frag", 0, "Feed the input as fragments of N bytes")
	rootCmd.AddCommand(cmd)
}

func newDecompressCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "decompress <in> <out>",
		Short: "Decode a chunked wire format message",
		Long: `The decompress command decodes a message written by compress.

Example:
  fragctl decompress payload.frag payload.bin
  fragctl decompress payload.frag payload.bin --skip 16`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDecompress(args)
		},
	}
}

func runDecompress(args []string) error {
	raw, unmap, err := openInput(args[0], decompressFrag)
	if err != nil {
		return err
	}
	defer unmap()

	in, err := skipHead(raw, decompressSkip)
	if err != nil {
		return err
	}
	ctx, err := newContext(decompressCodec)
	if err != nil {
		return err
	}

	out, err := ctx.Decompress(in)
	if err != nil {
		return fmt.Errorf("decompress %s: %w", args[0], err)
	}
	if err := writeOutput(args[1], out); err != nil {
		return err
	}

	if jsonOut {
		return printJSON(map[string]any{
			"input":  in.Len(),
			"output": out.Len(),
			"codec":  decompressCodec,
		})
	}
	printInfo("%s -> %s: %s -> %s bytes\n", args[0], args[1],
		numbers.Sprintf("%d", in.Len()), numbers.Sprintf("%d", out.Len()))
	return nil
}
