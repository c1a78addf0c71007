// Package clifmt provides consistent CLI output formatting for movieidx
// commands: status lines, ranked-result tables, and progress updates.
package clifmt

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
)

// Writer formats CLI output, optionally colorizing when the destination is
// a real terminal.
type Writer struct {
	out      io.Writer
	useColor bool
}

// New creates a Writer over out, auto-detecting color support via isatty
// when out is an *os.File.
func New(out io.Writer) *Writer {
	useColor := false
	if f, ok := out.(*os.File); ok {
		useColor = isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
	}
	return &Writer{out: out, useColor: useColor}
}

const (
	colorReset = "\033[0m"
	colorGreen = "\033[32m"
	colorRed   = "\033[31m"
	colorDim   = "\033[2m"
)

func (w *Writer) paint(code, s string) string {
	if !w.useColor {
		return s
	}
	return code + s + colorReset
}

// Status prints an icon-prefixed status line.
func (w *Writer) Status(icon, msg string) {
	if icon != "" {
		_, _ = fmt.Fprintf(w.out, "%s %s\n", icon, msg)
		return
	}
	_, _ = fmt.Fprintf(w.out, "   %s\n", msg)
}

// Success prints a success line.
func (w *Writer) Success(msg string) { w.Status("✔", w.paint(colorGreen, msg)) }

// Warning prints a warning line.
func (w *Writer) Warning(msg string) { w.Status("!", msg) }

// Error prints an error line.
func (w *Writer) Error(msg string) { w.Status("✘", w.paint(colorRed, msg)) }

// Errorf prints a formatted error line.
func (w *Writer) Errorf(format string, args ...any) { w.Error(fmt.Sprintf(format, args...)) }

// Result is a single ranked row printed by ResultTable.
type Result struct {
	DocID       uint64
	Title       string
	Score       float64
	Description string
}

// ResultTable prints a ranked list of results with rank, score, and title.
func (w *Writer) ResultTable(results []Result) {
	for i, r := range results {
		desc := r.Description
		if len(desc) > 100 {
			desc = desc[:97] + "..."
		}
		_, _ = fmt.Fprintf(w.out, "%3d. [%d] %-40s %s\n", i+1, r.DocID, r.Title, w.paint(colorDim, fmt.Sprintf("score=%.4f", r.Score)))
		if desc != "" {
			_, _ = fmt.Fprintf(w.out, "     %s\n", desc)
		}
	}
}

// FieldTable prints an aligned list of label/value pairs, e.g. build
// metadata or a single document's fields.
func (w *Writer) FieldTable(pairs [][2]string) {
	width := 0
	for _, p := range pairs {
		if len(p[0])+1 > width {
			width = len(p[0]) + 1
		}
	}
	for _, p := range pairs {
		label := fmt.Sprintf("%-*s", width, p[0]+":")
		_, _ = fmt.Fprintf(w.out, "%s %s\n", w.paint(colorDim, label), p[1])
	}
}

// Progress prints an in-place progress bar.
func (w *Writer) Progress(current, total int, msg string) {
	if total <= 0 {
		return
	}
	pct := float64(current) / float64(total) * 100
	width := 30
	filled := int(pct / 100 * float64(width))
	if filled > width {
		filled = width
	}
	bar := strings.Repeat("#", filled) + strings.Repeat("-", width-filled)
	_, _ = fmt.Fprintf(w.out, "\r[%s] %.0f%% %s", bar, pct, msg)
	if current >= total {
		_, _ = fmt.Fprintln(w.out)
	}
}
