package main

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

var (
	primaryColor = lipgloss.Color("#7D56F4")
	successColor = lipgloss.Color("#04B575")
	warningColor = lipgloss.Color("#FFA500")
	errorColor   = lipgloss.Color("#FF4B4B")
	mutedColor   = lipgloss.Color("#666666")

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(primaryColor)

	labelStyle = lipgloss.NewStyle().
			Foreground(mutedColor)

	okStyle = lipgloss.NewStyle().
		Foreground(successColor)

	warnStyle = lipgloss.NewStyle().
			Foreground(warningColor)

	errorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(errorColor)
)

// colorEnabled reports whether stdout is a terminal and --no-color is off.
func colorEnabled() bool {
	return !noColor && term.IsTerminal(int(os.Stdout.Fd()))
}

// render applies style when color output is enabled.
func render(style lipgloss.Style, s string) string {
	if !colorEnabled() {
		return s
	}
	return style.Render(s)
}

// printHeader prints a section title.
func printHeader(title string) {
	printInfo("\n%s\n", render(headerStyle, title))
}

// printField prints one indented "label: value" line.
func printField(label string, format string, args ...interface{}) {
	printInfo("  %s "+format+"\n", append([]interface{}{render(labelStyle, label+":")}, args...)...)
}
