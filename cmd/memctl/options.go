package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/joshuapare/memkit/engine"
)

var optionsSet []string

func init() {
	cmd := newOptionsCmd()
	cmd.Flags().StringArrayVar(&optionsSet, "set", nil, "Set an option before listing (name=value, repeatable)")
	rootCmd.AddCommand(cmd)
}

func newOptionsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "options [name...]",
		Short: "List engine options",
		Long: `The options command prints the engine option table, or only the named
options. Values set with --set apply to this process only; use the
MEMKIT_<NAME> environment variables to seed options for other programs.

Example:
  memctl options
  memctl options show_stats verbose
  memctl options --set max_errors=32 max_errors
  memctl options --json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOptions(args)
		},
	}
	return cmd
}

// OptionValue is one row of the option table.
type OptionValue struct {
	Name    string `json:"name"`
	Enabled bool   `json:"enabled"`
	Value   int64  `json:"value"`
}

func runOptions(args []string) error {
	selected, err := parseOptionNames(args)
	if err != nil {
		return err
	}

	s, err := newSurface()
	if err != nil {
		return err
	}
	defer s.Close()

	for _, kv := range optionsSet {
		o, v, err := parseOptionAssignment(kv)
		if err != nil {
			return err
		}
		printVerbose("Setting %s = %d\n", o, v)
		s.OptionSet(o, v)
	}

	rows := make([]OptionValue, 0, len(selected))
	for _, o := range selected {
		rows = append(rows, OptionValue{
			Name:    o.String(),
			Enabled: s.OptionIsEnabled(o),
			Value:   s.OptionGet(o),
		})
	}

	if jsonOut {
		return printJSON(rows)
	}

	printHeader("Options:")
	for _, row := range rows {
		state := render(labelStyle, "off")
		if row.Enabled {
			state = render(okStyle, "on")
		}
		printInfo("  %-24s %-4s %d\n", row.Name, state, row.Value)
	}
	return nil
}

// parseOptionNames resolves option names; no names selects the whole table.
func parseOptionNames(names []string) ([]engine.Option, error) {
	if len(names) == 0 {
		all := make([]engine.Option, engine.OptionCount)
		for i := range all {
			all[i] = engine.Option(i)
		}
		return all, nil
	}
	out := make([]engine.Option, 0, len(names))
	for _, name := range names {
		o, ok := engine.ParseOption(name)
		if !ok {
			return nil, fmt.Errorf("unknown option %q", name)
		}
		out = append(out, o)
	}
	return out, nil
}

// parseOptionAssignment parses name=value. true/false and on/off are
// accepted as 1/0.
func parseOptionAssignment(kv string) (engine.Option, int64, error) {
	name, raw, ok := strings.Cut(kv, "=")
	if !ok {
		return 0, 0, fmt.Errorf("expected name=value, got %q", kv)
	}
	o, ok := engine.ParseOption(strings.TrimSpace(name))
	if !ok {
		return 0, 0, fmt.Errorf("unknown option %q", name)
	}
	raw = strings.ToLower(strings.TrimSpace(raw))
	switch raw {
	case "true", "on", "yes":
		return o, 1, nil
	case "false", "off", "no":
		return o, 0, nil
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid value for %s: %w", o, err)
	}
	return o, v, nil
}
