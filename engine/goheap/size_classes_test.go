package goheap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSizeClassTable_Ascending(t *testing.T) {
	for _, cfg := range []SizeClassConfig{ConfigFine, ConfigCoarse} {
		t.Run(cfg.Name, func(t *testing.T) {
			require.NoError(t, cfg.validate())
			table := newSizeClassTable(cfg)
			require.Positive(t, table.NumClasses())
			assert.Equal(t, cfg.Name, table.String())

			for i := 1; i < len(table.capacities); i++ {
				assert.Greater(t, table.capacities[i], table.capacities[i-1])
			}
			assert.Equal(t, cfg.MediumMax, table.capacities[len(table.capacities)-1])
		})
	}
}

func TestSizeClassTable_GoodSize(t *testing.T) {
	table := newSizeClassTable(ConfigFine)

	tests := []struct {
		size uintptr
		want uintptr
	}{
		{0, 16},
		{1, 16},
		{16, 16},
		{17, 32},
		{255, 256},
		{257, 288},
		{4 << 20, 4 << 20},
		{4<<20 + 1, 4<<20 + 4096},
	}
	for _, tt := range tests {
		got, ok := table.goodSize(tt.size)
		require.True(t, ok)
		assert.Equal(t, tt.want, got, "size %d", tt.size)
	}

	_, ok := table.goodSize(^uintptr(0))
	assert.False(t, ok)
}

func TestSizeClassTable_ClassOf(t *testing.T) {
	table := newSizeClassTable(ConfigCoarse)

	for i, c := range table.capacities {
		assert.Equal(t, i, table.classOf(c))
		if i > 0 {
			assert.Equal(t, i, table.classOf(table.capacities[i-1]+1))
		}
	}
	assert.Equal(t, len(table.capacities), table.classOf(ConfigCoarse.MediumMax+1))
}

func TestSizeClassConfig_Validate(t *testing.T) {
	bad := []SizeClassConfig{
		{Name: "zero"},
		{Name: "increment", SmallMin: 16, SmallMax: 256, SmallIncrement: 24, MediumMax: 1 << 20, GrowthFactor: 2, LargeRound: 4096},
		{Name: "medium", SmallMin: 16, SmallMax: 256, SmallIncrement: 16, MediumMax: 128, GrowthFactor: 2, LargeRound: 4096},
		{Name: "growth", SmallMin: 16, SmallMax: 256, SmallIncrement: 16, MediumMax: 1 << 20, GrowthFactor: 1, LargeRound: 4096},
		{Name: "round", SmallMin: 16, SmallMax: 256, SmallIncrement: 16, MediumMax: 1 << 20, GrowthFactor: 2, LargeRound: 1000},
	}
	for _, cfg := range bad {
		assert.ErrorIs(t, cfg.validate(), ErrBadConfig, cfg.Name)
	}
}
