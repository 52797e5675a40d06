package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBenchCommand(t *testing.T) {
	resetFlags()
	jsonOut = true
	benchIterations = 50
	benchSizes = []uint{16, 100}
	benchAligns = []uint{8, 128}

	out, err := captureOutput(t, runBench)
	require.NoError(t, err)

	var results []BenchResult
	decodeJSON(t, out, &results)
	require.Len(t, results, 4)

	byLayout := map[string]BenchResult{}
	for _, r := range results {
		byLayout[r.Layout] = r
		assert.Equal(t, 50, r.Iterations)
		assert.Zero(t, r.Failures)
		assert.Positive(t, r.NsPerOp)
	}
	assert.Equal(t, "fast", byLayout["16@8"].Path)
	assert.Equal(t, "aligned", byLayout["100@128"].Path)
}

func TestBenchCommand_Errors(t *testing.T) {
	resetFlags()
	benchIterations = 0
	_, err := captureOutput(t, runBench)
	require.Error(t, err)

	resetFlags()
	benchIterations = 1
	benchAligns = []uint{3}
	_, err = captureOutput(t, runBench)
	require.Error(t, err)
}
