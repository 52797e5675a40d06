package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/joshuapare/memkit/codec"
)

var (
	compressCodec string
	compressLevel int
)

func init() {
	cmd := newCompressCmd()
	cmd.Flags().StringVarP(&compressCodec, "codec", "c", "zstd", "Codec (lz4, lz4hc, zstd, zlib, deflate, gzip)")
	cmd.Flags().IntVarP(&compressLevel, "level", "l", 5, "Compression level (0 stores, 1-9)")
	rootCmd.AddCommand(cmd)
	rootCmd.AddCommand(newDecompressCmd())
}

func newCompressCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compress <input> <output>",
		Short: "Compress a file into a codec frame",
		Long: `The compress command compresses a file with the chosen codec and writes
a frame that decompress can read back without naming the codec.

Example:
  memctl compress data.bin data.bin.mk --codec lz4
  memctl compress data.bin data.bin.mk --codec zstd --level 9`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCompress(args)
		},
	}
	return cmd
}

func newDecompressCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "decompress <input> <output>",
		Short: "Decompress a codec frame",
		Long: `The decompress command reads a frame written by compress and writes
the original bytes.

Example:
  memctl decompress data.bin.mk data.bin`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDecompress(args)
		},
	}
	return cmd
}

// CodecResult reports one compress or decompress run.
type CodecResult struct {
	Codec  string  `json:"codec"`
	Input  string  `json:"input"`
	Output string  `json:"output"`
	InLen  int     `json:"in_bytes"`
	OutLen int     `json:"out_bytes"`
	Ratio  float64 `json:"ratio"`
}

func runCompress(args []string) error {
	c, err := codec.Lookup(compressCodec)
	if err != nil {
		return err
	}

	src, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}
	printVerbose("Compressing %s with %s level %d\n", args[0], c, compressLevel)

	frame, err := codec.Compress(c, compressLevel, src)
	if err != nil {
		return err
	}
	if err := os.WriteFile(args[1], frame, 0o644); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return printCodecResult("Compressed", CodecResult{
		Codec: c.String(), Input: args[0], Output: args[1],
		InLen: len(src), OutLen: len(frame),
	})
}

func runDecompress(args []string) error {
	frame, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}
	c, _, err := codec.Info(frame)
	if err != nil {
		return fmt.Errorf("%s: %w", args[0], err)
	}
	printVerbose("Decompressing %s (%s)\n", args[0], c)

	raw, err := codec.Decompress(frame)
	if err != nil {
		return err
	}
	if err := os.WriteFile(args[1], raw, 0o644); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return printCodecResult("Decompressed", CodecResult{
		Codec: c.String(), Input: args[0], Output: args[1],
		InLen: len(frame), OutLen: len(raw),
	})
}

func printCodecResult(verb string, res CodecResult) error {
	if res.InLen > 0 {
		res.Ratio = float64(res.OutLen) / float64(res.InLen)
	}
	if jsonOut {
		return printJSON(res)
	}
	printInfo("%s %s -> %s with %s: %s -> %s (%.2f)\n",
		render(okStyle, verb), res.Input, res.Output, res.Codec,
		formatBytes(int64(res.InLen)), formatBytes(int64(res.OutLen)), res.Ratio)
	return nil
}
