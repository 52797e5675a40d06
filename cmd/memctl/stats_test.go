package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/memkit/alloc"
	"github.com/joshuapare/memkit/internal/platform"
	"github.com/joshuapare/memkit/pkg/memkit"
)

func TestStatsCommand(t *testing.T) {
	tests := []struct {
		name     string
		count    int
		size     uint64
		align    uint64
		wantPath string
		wantErr  bool
	}{
		{name: "fast path", count: 100, size: 64, align: 8, wantPath: "fast"},
		{name: "aligned path", count: 40, size: 100, align: 256, wantPath: "aligned"},
		{name: "empty workload", count: 0, size: 64, align: 8, wantPath: "fast"},
		{name: "bad alignment", count: 10, size: 64, align: 12, wantErr: true},
		{name: "negative count", count: -1, size: 64, align: 8, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resetFlags()
			jsonOut = true
			statsCount = tt.count
			statsSize = tt.size
			statsAlign = tt.align

			out, err := captureOutput(t, runStats)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)

			var report StatsReport
			decodeJSON(t, out, &report)
			assert.Equal(t, tt.wantPath, report.Path)
			assert.Equal(t, tt.count, report.Blocks)
			assert.Equal(t, tt.count/4, report.Resized)
			assert.Zero(t, report.Failures)
			assert.NotEmpty(t, report.Report)

			if memkit.EngineName == "goheap" {
				require.NotNil(t, report.Stats)
				assert.GreaterOrEqual(t, report.Stats.Allocs, uint64(tt.count))
				assert.Equal(t, int64(tt.count-tt.count/2), report.Stats.LiveBlocks)
			}
		})
	}
}

func TestStatsCommand_Text(t *testing.T) {
	resetFlags()
	statsCount = 16

	out, err := captureOutput(t, runStats)
	require.NoError(t, err)
	assertContains(t, out, []string{"Workload:", "64@8", "Blocks: 16", "Engine Report:"})
}

func TestRoutePath(t *testing.T) {
	p := platform.Policy{MinAlign: 16, MaxAlign: 4096}
	assert.Equal(t, "fast", routePath(p, alloc.Layout{Size: 64, Align: 8}))
	assert.Equal(t, "aligned", routePath(p, alloc.Layout{Size: 4, Align: 16}))
	assert.Equal(t, "aligned", routePath(p, alloc.Layout{Size: 64, Align: 64}))
	assert.Equal(t, "rejected", routePath(p, alloc.Layout{Size: 64, Align: 8192}))
}

func TestFormatNumber(t *testing.T) {
	assert.Equal(t, "999", formatNumber(999))
	assert.Equal(t, "1,000", formatNumber(1000))
	assert.Equal(t, "1,234,567", formatNumber(1234567))
}
