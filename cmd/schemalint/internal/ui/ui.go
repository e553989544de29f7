// Package ui renders schemalint's terminal output: run headers, diagnostic
// summaries and markdown-rendered rule explanations. The validator package
// itself never imports this — it stays a pure function per spec.md §5.
package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/fatih/color"
	"github.com/pterm/pterm"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12")).Padding(0, 1)
	okStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
	failStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))
)

// Header prints the run banner, e.g. "schemalint · schema.prisma".
func Header(schemaPath string) {
	fmt.Println(headerStyle.Render(fmt.Sprintf("schemalint · %s", schemaPath)))
}

// Success prints the all-clear summary.
func Success() {
	fmt.Println(okStyle.Render("✓ schema is valid"))
}

// Failure prints a one-line error count summary.
func Failure(errorCount, warningCount int) {
	fmt.Println(failStyle.Render(fmt.Sprintf("✗ %d error(s), %d warning(s)", errorCount, warningCount)))
}

// Spinner wraps a pterm spinner for long-running steps (doctor pings),
// stopped by the returned function.
func Spinner(message string) func(success bool) {
	spinner, _ := pterm.DefaultSpinner.Start(message)
	return func(success bool) {
		if success {
			spinner.Success()
		} else {
			spinner.Fail()
		}
	}
}

// DisableColor turns off fatih/color output for non-tty or --no-color runs.
func DisableColor() {
	color.NoColor = true
}

// RenderMarkdown renders a rule's explanation document for the `explain`
// command through glamour, falling back to the raw text if rendering fails
// (e.g. no terminal width could be detected).
func RenderMarkdown(doc string) string {
	out, err := glamour.Render(doc, "dark")
	if err != nil {
		return doc
	}
	return strings.TrimRight(out, "\n")
}
