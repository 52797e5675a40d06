package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/memkit/engine"
)

func TestOptionsCommand_ListsTable(t *testing.T) {
	resetFlags()
	jsonOut = true

	out, err := captureOutput(t, func() error { return runOptions(nil) })
	require.NoError(t, err)

	var rows []OptionValue
	decodeJSON(t, out, &rows)
	require.Len(t, rows, engine.OptionCount)
	assert.Equal(t, "show_errors", rows[0].Name)
	assert.Equal(t, "max_errors", rows[len(rows)-1].Name)
}

func TestOptionsCommand_Set(t *testing.T) {
	resetFlags()
	jsonOut = true
	optionsSet = []string{"max_errors=7", "verbose=off"}

	out, err := captureOutput(t, func() error { return runOptions([]string{"max_errors", "verbose"}) })
	require.NoError(t, err)

	var rows []OptionValue
	decodeJSON(t, out, &rows)
	require.Len(t, rows, 2)
	assert.Equal(t, int64(7), rows[0].Value)
	assert.True(t, rows[0].Enabled)
	assert.False(t, rows[1].Enabled)
}

func TestOptionsCommand_Text(t *testing.T) {
	resetFlags()

	out, err := captureOutput(t, func() error { return runOptions([]string{"show_stats"}) })
	require.NoError(t, err)
	assertContains(t, out, []string{"Options:", "show_stats"})
}

func TestOptionsCommand_Errors(t *testing.T) {
	resetFlags()
	_, err := captureOutput(t, func() error { return runOptions([]string{"no_such_option"}) })
	require.Error(t, err)

	resetFlags()
	optionsSet = []string{"verbose"}
	_, err = captureOutput(t, func() error { return runOptions(nil) })
	require.Error(t, err)
}

func TestParseOptionAssignment(t *testing.T) {
	tests := []struct {
		in      string
		want    engine.Option
		value   int64
		wantErr bool
	}{
		{in: "show_stats=1", want: engine.OptionShowStats, value: 1},
		{in: "show_stats=true", want: engine.OptionShowStats, value: 1},
		{in: " verbose = off ", want: engine.OptionVerbose, value: 0},
		{in: "reset_delay=250", want: engine.OptionResetDelay, value: 250},
		{in: "max_errors=-1", want: engine.OptionMaxErrors, value: -1},
		{in: "max_errors", wantErr: true},
		{in: "bogus=1", wantErr: true},
		{in: "verbose=maybe", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			o, v, err := parseOptionAssignment(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, o)
			assert.Equal(t, tt.value, v)
		})
	}
}
