package diagnostics

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/fatih/color"
)

// Bag is an append-only collection of diagnostics accumulated during a
// validation run. Errors and warnings are tracked separately so a caller
// can decide whether warnings should fail a build.
//
// Ordering is insertion order: rules that run earlier, and iterate the
// schema in AST declaration order, produce diagnostics that appear earlier
// in the bag. Determinism of this order is part of the validator's
// contract (spec.md §8).
type Bag struct {
	errors   []Diagnostic
	warnings []Diagnostic
}

// NewBag returns an empty diagnostic bag.
func NewBag() *Bag {
	return &Bag{}
}

// Push appends a single error diagnostic.
func (b *Bag) Push(d Diagnostic) {
	b.errors = append(b.errors, d)
}

// PushWarning appends a single warning diagnostic.
func (b *Bag) PushWarning(d Diagnostic) {
	b.warnings = append(b.warnings, d)
}

// Append drains other into b, preserving relative order, then empties other.
func (b *Bag) Append(other *Bag) {
	if other == nil {
		return
	}
	b.errors = append(b.errors, other.errors...)
	b.warnings = append(b.warnings, other.warnings...)
	other.errors = nil
	other.warnings = nil
}

// Errors returns the accumulated error diagnostics in insertion order.
func (b *Bag) Errors() []Diagnostic {
	return b.errors
}

// Warnings returns the accumulated warning diagnostics in insertion order.
func (b *Bag) Warnings() []Diagnostic {
	return b.warnings
}

// HasErrors reports whether at least one error diagnostic has been pushed.
// Warnings never count.
func (b *Bag) HasErrors() bool {
	return len(b.errors) > 0
}

// IsEmpty reports whether the bag has neither errors nor warnings.
func (b *Bag) IsEmpty() bool {
	return len(b.errors) == 0 && len(b.warnings) == 0
}

// ToResult converts the bag into the canonical validator outcome: nil when
// there are no errors, otherwise the bag itself (warnings travel alongside).
func (b *Bag) ToResult() error {
	if b.HasErrors() {
		return b
	}
	return nil
}

// Error renders a short, non-pretty summary so Bag satisfies the error
// interface (used by ToResult).
func (b *Bag) Error() string {
	if len(b.errors) == 1 {
		return b.errors[0].Message
	}
	return fmt.Sprintf("schema validation failed with %d errors", len(b.errors))
}

// PrettyPrint renders every error in the bag against the given source text,
// in the style of a compiler diagnostic: a red title, an arrow to the file
// location, and the offending span underlined.
func (b *Bag) PrettyPrint(fileName, source string) string {
	var buf bytes.Buffer
	for _, d := range b.errors {
		writeDiagnostic(&buf, fileName, source, d, true)
	}
	return buf.String()
}

// PrettyPrintWarnings renders every warning the same way as PrettyPrint.
func (b *Bag) PrettyPrintWarnings(fileName, source string) string {
	var buf bytes.Buffer
	for _, d := range b.warnings {
		writeDiagnostic(&buf, fileName, source, d, false)
	}
	return buf.String()
}

func writeDiagnostic(buf *bytes.Buffer, fileName, source string, d Diagnostic, isError bool) {
	lines := strings.Split(strings.TrimSuffix(source, "\n"), "\n")
	lineStart := func(lineNum int) int {
		pos := 0
		for i := 0; i < lineNum; i++ {
			if idx := strings.Index(source[pos:], "\n"); idx >= 0 {
				pos += idx + 1
			} else {
				break
			}
		}
		return pos
	}
	lineOf := func(pos int) int { return strings.Count(source[:min(pos, len(source))], "\n") }

	startLine := lineOf(d.Span.Start)
	if startLine >= len(lines) {
		startLine = len(lines) - 1
	}
	if startLine < 0 {
		startLine = 0
	}

	title, titleColor, underline := "error", color.New(color.FgRed, color.Bold), color.New(color.FgRed, color.Bold)
	if !isError {
		title, titleColor, underline = "warning", color.New(color.FgYellow, color.Bold), color.New(color.FgYellow, color.Bold)
	}
	lineNumColor := color.New(color.FgCyan, color.Bold)

	titleColor.Fprint(buf, title)
	fmt.Fprint(buf, ": ")
	color.New(color.Bold).Fprintf(buf, "%s\n", d.Message)
	color.New(color.FgCyan, color.Bold).Fprint(buf, "  --> ")
	color.New(color.Underline).Fprintf(buf, "%s:%d\n", fileName, startLine+1)
	lineNumColor.Fprint(buf, "   |\n")

	if startLine < len(lines) {
		line := lines[startLine]
		bytesBefore := lineStart(startLine)
		startInLine := clamp(d.Span.Start-bytesBefore, 0, len(line))
		endInLine := clamp(startInLine+(d.Span.End-d.Span.Start), startInLine, len(line))

		lineNumColor.Fprintf(buf, "%2d | ", startLine+1)
		fmt.Fprint(buf, line[:startInLine])
		underline.Fprint(buf, line[startInLine:endInLine])
		fmt.Fprintf(buf, "%s\n", line[endInLine:])

		lineNumColor.Fprint(buf, "   | ")
		fmt.Fprint(buf, strings.Repeat(" ", startInLine))
		width := endInLine - startInLine
		if width == 0 {
			width = 1
		}
		underline.Fprintf(buf, "%s\n", strings.Repeat("^", width))
	}
	lineNumColor.Fprint(buf, "   |\n")
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
