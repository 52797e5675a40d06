package main

import (
	"fmt"
	"strings"
	"unsafe"

	"github.com/spf13/cobra"

	"github.com/joshuapare/memkit/alloc"
	"github.com/joshuapare/memkit/engine"
	"github.com/joshuapare/memkit/internal/platform"
)

var (
	statsCount int
	statsSize  uint64
	statsAlign uint64
)

func init() {
	cmd := newStatsCmd()
	cmd.Flags().IntVar(&statsCount, "count", 1000, "Number of blocks to allocate")
	cmd.Flags().Uint64Var(&statsSize, "size", 64, "Block size in bytes")
	cmd.Flags().Uint64Var(&statsAlign, "align", 8, "Block alignment (power of two)")
	rootCmd.AddCommand(cmd)
}

func newStatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Run an allocation workload and show engine statistics",
		Long: `The stats command allocates --count blocks of the given layout through
the router, grows every fourth block, frees half of them, and prints the
engine's counters and its own statistics report.

Example:
  memctl stats
  memctl stats --count 10000 --size 100 --align 64
  memctl stats --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStats()
		},
	}
	return cmd
}

// StatsReport is the stats output.
type StatsReport struct {
	Layout   string        `json:"layout"`
	Path     string        `json:"path"`
	Blocks   int           `json:"blocks"`
	Resized  int           `json:"resized"`
	Failures int           `json:"failures"`
	Stats    *engine.Stats `json:"stats,omitempty"`
	Report   []string      `json:"report"`
}

func runStats() error {
	if statsCount < 0 {
		return fmt.Errorf("count must not be negative: %d", statsCount)
	}
	l, err := alloc.NewLayout(uintptr(statsSize), uintptr(statsAlign))
	if err != nil {
		return err
	}

	s, err := newSurface()
	if err != nil {
		return err
	}
	defer s.Close()

	r := s.Router()
	report := StatsReport{
		Layout: l.String(),
		Path:   routePath(r.Policy(), l),
	}
	printVerbose("Allocating %d blocks of %s (%s path)\n", statsCount, l, report.Path)

	type live struct {
		p unsafe.Pointer
		l alloc.Layout
	}
	blocks := make([]live, 0, statsCount)
	for i := 0; i < statsCount; i++ {
		p := r.AllocZeroed(l)
		if p == nil {
			report.Failures++
			continue
		}
		b := live{p: p, l: l}
		if i%4 == 3 {
			if q := r.Realloc(p, l, l.Size*2); q != nil {
				b = live{p: q, l: l.WithSize(l.Size * 2)}
				report.Resized++
			} else {
				report.Failures++
			}
		}
		blocks = append(blocks, b)
	}
	report.Blocks = len(blocks)

	half := len(blocks) / 2
	for _, b := range blocks[:half] {
		r.Dealloc(b.p, b.l)
	}
	s.Collect(false)

	if st, ok := s.Stats(); ok {
		report.Stats = &st
	}
	s.StatsPrintOut(func(msg string) {
		report.Report = append(report.Report, strings.TrimRight(msg, "\n"))
	})

	for _, b := range blocks[half:] {
		r.Dealloc(b.p, b.l)
	}

	if jsonOut {
		return printJSON(report)
	}

	printHeader("Workload:")
	printField("Layout", "%s (%s path)", report.Layout, report.Path)
	printField("Blocks", "%s", formatNumber(int64(report.Blocks)))
	printField("Resized", "%s", formatNumber(int64(report.Resized)))
	if report.Failures > 0 {
		printField("Failures", "%s", render(warnStyle, formatNumber(int64(report.Failures))))
	} else {
		printField("Failures", "%s", render(okStyle, "0"))
	}

	if st := report.Stats; st != nil {
		printHeader("Engine Counters:")
		printField("Allocations", "%s", formatNumber(int64(st.Allocs)))
		printField("Frees", "%s", formatNumber(int64(st.Frees)))
		printField("Reallocations", "%s", formatNumber(int64(st.Reallocs)))
		printField("Live blocks", "%s", formatNumber(st.LiveBlocks))
		printField("Live", "%s", formatBytes(st.LiveBytes))
		printField("Peak", "%s", formatBytes(st.PeakBytes))
		printField("Heaps", "%d", st.Heaps)
	}

	if len(report.Report) > 0 {
		printHeader("Engine Report:")
		for _, line := range report.Report {
			printInfo("  %s\n", line)
		}
	}
	return nil
}

// routePath names the router path a layout takes under policy.
func routePath(p platform.Policy, l alloc.Layout) string {
	switch {
	case p.FastPath(l.Size, l.Align):
		return "fast"
	case p.Exceeds(l.Align):
		return "rejected"
	default:
		return "aligned"
	}
}

func formatBytes(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(bytes)/float64(div), "KMGTPE"[exp])
}

func formatNumber(n int64) string {
	str := fmt.Sprintf("%d", n)
	if len(str) <= 3 {
		return str
	}

	var result strings.Builder
	for i, c := range str {
		if i > 0 && (len(str)-i)%3 == 0 {
			result.WriteRune(',')
		}
		result.WriteRune(c)
	}
	return result.String()
}
