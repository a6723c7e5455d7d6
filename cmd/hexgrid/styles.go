package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const (
	colorPrimary = lipgloss.Color("#7C3AED")
	colorMuted   = lipgloss.Color("#6B7280")
	colorWarning = lipgloss.Color("#F59E0B")
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(colorPrimary)
	labelStyle   = lipgloss.NewStyle().Foreground(colorMuted)
	warningStyle = lipgloss.NewStyle().Foreground(colorWarning)
)

// field is one labelled line of a detail block.
type field struct {
	label string
	value string
}

// printFields writes a title followed by aligned label/value lines.
func printFields(w io.Writer, title string, fields []field) {
	width := 0
	for _, f := range fields {
		width = max(width, len(f.label))
	}
	fmt.Fprintln(w, titleStyle.Render(title))
	for _, f := range fields {
		label := f.label + ":" + strings.Repeat(" ", width-len(f.label))
		fmt.Fprintf(w, "  %s %s\n", labelStyle.Render(label), f.value)
	}
}

func printWarnings(w io.Writer, warnings []string) {
	for _, msg := range warnings {
		fmt.Fprintln(w, warningStyle.Render("⚠ "+msg))
	}
}
