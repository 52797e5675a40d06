package main

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/joshuapare/memkit/internal/platform"
	"github.com/joshuapare/memkit/pkg/memkit"
)

func init() {
	rootCmd.AddCommand(newInfoCmd())
}

func newInfoCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "info",
		Short: "Show the alignment policy and engine for this target",
		Long: `The info command reports the pointer-width class of the target, the
minimum alignment the fast path relies on, the alignment ceiling, the engine
in use and the current CPU.

Example:
  memctl info
  memctl info --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInfo()
		},
	}
	return cmd
}

// TargetInfo is the info report.
type TargetInfo struct {
	GOOS          string  `json:"goos"`
	GOARCH        string  `json:"goarch"`
	Class         string  `json:"class"`
	MinAlign      uintptr `json:"min_align"`
	MaxAlign      uintptr `json:"max_align"`
	Engine        string  `json:"engine"`
	EngineVersion int     `json:"engine_version"`
	CPU           int     `json:"cpu"`
	NumCPU        int     `json:"num_cpu"`
}

func runInfo() error {
	s, err := newSurface()
	if err != nil {
		return err
	}
	defer s.Close()

	policy := s.Policy()
	info := TargetInfo{
		GOOS:          runtime.GOOS,
		GOARCH:        runtime.GOARCH,
		Class:         platform.TargetClass.String(),
		MinAlign:      policy.MinAlign,
		MaxAlign:      policy.MaxAlign,
		Engine:        memkit.EngineName,
		EngineVersion: s.Version(),
		CPU:           platform.CurrentCPU(),
		NumCPU:        runtime.NumCPU(),
	}

	if jsonOut {
		return printJSON(info)
	}

	printHeader("Target:")
	printField("Platform", "%s/%s", info.GOOS, info.GOARCH)
	printField("Class", "%s", info.Class)
	printField("Min align", "%d", info.MinAlign)
	printField("Max align", "%s", formatCeiling(info.MaxAlign))

	printHeader("Engine:")
	printField("Name", "%s", info.Engine)
	printField("Version", "%s", formatVersion(info.EngineVersion))

	printHeader("CPU:")
	if info.CPU < 0 {
		printField("Current", "%s", render(warnStyle, "unsupported"))
	} else {
		printField("Current", "%d", info.CPU)
	}
	printField("Logical", "%d", info.NumCPU)
	return nil
}

func formatCeiling(maxAlign uintptr) string {
	if maxAlign == 0 {
		return "none"
	}
	return fmt.Sprintf("%d (%s)", maxAlign, formatBytes(int64(maxAlign)))
}

// formatVersion renders the engine's 100*major+10*minor+patch encoding.
func formatVersion(v int) string {
	return fmt.Sprintf("%d.%d.%d", v/100, v/10%10, v%10)
}
