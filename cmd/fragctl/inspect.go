package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/joshuapare/corekit/rpc/compress"
)

var inspectSkip int

func init() {
	cmd := newInspectCmd()
	cmd.Flags().IntVar(&inspectSkip, "skip", 0, "Skip N head-space bytes before the first chunk")
	rootCmd.AddCommand(cmd)
}

func newInspectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <in>",
		Short: "Print the chunk layout of an encoded message",
		Long: `The inspect command walks the chunk headers of a message without
decompressing it and prints one line per chunk.

Example:
  fragctl inspect payload.frag
  fragctl inspect payload.frag --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInspect(args)
		},
	}
}

type inspectReport struct {
	File         string               `json:"file"`
	Size         int                  `json:"size"`
	Chunks       []compress.ChunkInfo `json:"chunks"`
	Compressed   int                  `json:"compressed"`
	Decompressed int                  `json:"decompressed"`
}

func runInspect(args []string) error {
	raw, unmap, err := openInput(args[0], 0)
	if err != nil {
		return err
	}
	defer unmap()

	in, err := skipHead(raw, inspectSkip)
	if err != nil {
		return err
	}
	chunks, err := compress.Inspect(in)
	if err != nil {
		return fmt.Errorf("inspect %s: %w", args[0], err)
	}

	report := inspectReport{File: args[0], Size: in.Len(), Chunks: chunks}
	for _, c := range chunks {
		report.Compressed += c.Compressed
		report.Decompressed += c.Decompressed
	}
	if jsonOut {
		return printJSON(report)
	}

	printInfo("\nMessage: %s (%s bytes)\n\n", args[0], numbers.Sprintf("%d", report.Size))
	if len(chunks) == 0 {
		printInfo("  empty message\n")
		return nil
	}
	printInfo("  %5s  %10s  %6s  %12s  %12s\n", "CHUNK", "OFFSET", "LAST", "COMPRESSED", "DECOMPRESSED")
	for i, c := range chunks {
		last := ""
		if c.Last {
			last = "yes"
		}
		printInfo("  %5d  %10d  %6s  %12d  %12d\n", i, c.Offset, last, c.Compressed, c.Decompressed)
	}
	printInfo("\n  Chunks:       %d\n", len(chunks))
	printInfo("  Compressed:   %s bytes\n", numbers.Sprintf("%d", report.Compressed))
	printInfo("  Decompressed: %s bytes\n", numbers.Sprintf("%d", report.Decompressed))
	if report.Decompressed > 0 {
		printInfo("  Ratio:        %.2f\n", float64(report.Compressed)/float64(report.Decompressed))
	}
	return nil
}
