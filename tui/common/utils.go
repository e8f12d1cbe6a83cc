package common

import (
	"strings"

	"github.com/muesli/reflow/truncate"
	"github.com/muesli/reflow/wordwrap"
)

// PreviewLines word-wraps text to width and keeps at most n lines, marking
// the cut with an ellipsis.
func PreviewLines(text string, width, n int) []string {
	if width < 4 || n < 1 {
		return nil
	}
	text = strings.Join(strings.Fields(text), " ")
	if text == "" {
		return nil
	}
	lines := strings.Split(wordwrap.String(text, width), "\n")
	for i, ln := range lines {
		lines[i] = truncate.String(ln, uint(width))
	}
	if len(lines) <= n {
		return lines
	}
	lines = lines[:n]
	last := lines[n-1]
	lines[n-1] = truncate.StringWithTail(last+" …", uint(width), "…")
	return lines
}

// Truncate clips text to width display cells with a trailing ellipsis.
func Truncate(text string, width int) string {
	if width <= 0 {
		return ""
	}
	return truncate.StringWithTail(text, uint(width), "…")
}
