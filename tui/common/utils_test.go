package common

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
)

func TestPreviewLines(t *testing.T) {
	got := PreviewLines("the quick brown fox jumps over the lazy dog", 10, 2)
	if len(got) != 2 {
		t.Fatalf("expected 2 lines, got %q", got)
	}
	if got[0] != "the quick" {
		t.Fatalf("unexpected first line: %q", got[0])
	}
	if !strings.HasSuffix(got[1], "…") {
		t.Fatalf("cut preview must end with ellipsis: %q", got[1])
	}
	for _, ln := range got {
		if ansi.StringWidth(ln) > 10 {
			t.Fatalf("line exceeds width: %q", ln)
		}
	}
}

func TestPreviewLines_ShortAndEmpty(t *testing.T) {
	if got := PreviewLines("  hi \n there ", 20, 2); len(got) != 1 || got[0] != "hi there" {
		t.Fatalf("unexpected short preview: %q", got)
	}
	if got := PreviewLines("   ", 20, 2); got != nil {
		t.Fatalf("empty text should yield no lines: %q", got)
	}
}

func TestTruncate(t *testing.T) {
	if got := Truncate("hello world", 6); ansi.StringWidth(got) > 6 || !strings.HasSuffix(got, "…") {
		t.Fatalf("unexpected truncate: %q", got)
	}
	if got := Truncate("hi", 6); got != "hi" {
		t.Fatalf("short text must be unchanged: %q", got)
	}
}
