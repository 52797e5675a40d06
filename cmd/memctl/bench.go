package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/joshuapare/memkit/alloc"
)

var (
	benchIterations int
	benchSizes      []uint
	benchAligns     []uint
)

func init() {
	cmd := newBenchCmd()
	cmd.Flags().IntVarP(&benchIterations, "iterations", "n", 100000, "Alloc/free pairs per layout")
	cmd.Flags().UintSliceVar(&benchSizes, "size", []uint{16, 64, 256, 4096}, "Block sizes")
	cmd.Flags().UintSliceVar(&benchAligns, "align", []uint{8, 64}, "Alignments (powers of two)")
	rootCmd.AddCommand(cmd)
}

func newBenchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Time alloc/free pairs through the router",
		Long: `The bench command times allocate/free pairs for every combination of
--size and --align and reports which router path each layout takes.

Example:
  memctl bench
  memctl bench -n 1000000 --size 32,128 --align 16,4096
  memctl bench --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBench()
		},
	}
	return cmd
}

// BenchResult is the timing for one layout.
type BenchResult struct {
	Layout     string  `json:"layout"`
	Path       string  `json:"path"`
	Iterations int     `json:"iterations"`
	Failures   int     `json:"failures"`
	NsPerOp    float64 `json:"ns_per_op"`
}

func runBench() error {
	if benchIterations <= 0 {
		return fmt.Errorf("iterations must be positive: %d", benchIterations)
	}

	s, err := newSurface()
	if err != nil {
		return err
	}
	defer s.Close()
	r := s.Router()

	var results []BenchResult
	for _, align := range benchAligns {
		for _, size := range benchSizes {
			l, err := alloc.NewLayout(uintptr(size), uintptr(align))
			if err != nil {
				return err
			}
			printVerbose("Running %s\n", l)
			results = append(results, benchLayout(r, l))
		}
	}

	if jsonOut {
		return printJSON(results)
	}

	printHeader(fmt.Sprintf("Router Benchmark (%s iterations):", formatNumber(int64(benchIterations))))
	for _, res := range results {
		line := fmt.Sprintf("  %-12s %-8s %10.1f ns/op", res.Layout, res.Path, res.NsPerOp)
		if res.Failures > 0 {
			line += render(warnStyle, fmt.Sprintf("  (%d failed)", res.Failures))
		}
		printInfo("%s\n", line)
	}
	return nil
}

func benchLayout(r *alloc.Router, l alloc.Layout) BenchResult {
	res := BenchResult{
		Layout:     l.String(),
		Path:       routePath(r.Policy(), l),
		Iterations: benchIterations,
	}
	start := time.Now()
	for i := 0; i < benchIterations; i++ {
		p := r.Alloc(l)
		if p == nil {
			res.Failures++
			continue
		}
		r.Dealloc(p, l)
	}
	res.NsPerOp = float64(time.Since(start).Nanoseconds()) / float64(benchIterations)
	return res
}
