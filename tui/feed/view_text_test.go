package feed

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"

	"github.com/CrestNiraj12/orgfeed/domain"
)

func TestClipLines(t *testing.T) {
	in := "a\nb\nc\nd"
	got := clipLines(in, 2)
	if strings.Count(got, "\n") != 1 || !strings.HasPrefix(got, "a\nb") {
		t.Fatalf("unexpected clipped output: %q", got)
	}
	if clipLines(in, 0) != "" {
		t.Fatalf("zero lines should clip everything")
	}
}

func TestClampLinesToWidth(t *testing.T) {
	got := clampLinesToWidth("short\n"+strings.Repeat("x", 20), 8)
	for _, ln := range strings.Split(got, "\n") {
		if ansi.StringWidth(ln) > 8 {
			t.Fatalf("line wider than 8: %q", ln)
		}
	}
}

func TestPadLines(t *testing.T) {
	if got := padLines([]string{"a"}, 3); len(got) != 3 || got[0] != "a" || got[2] != "" {
		t.Fatalf("unexpected padding: %#v", got)
	}
	if got := padLines([]string{"a", "b", "c"}, 2); len(got) != 2 {
		t.Fatalf("padLines should also cut, got %#v", got)
	}
}

func TestAuthorLabel(t *testing.T) {
	tests := []struct {
		name string
		in   domain.Author
		want string
	}{
		{name: "nick", in: domain.Author{Nick: "bob", FeedURL: bobFeed}, want: "@bob"},
		{name: "host", in: domain.Author{FeedURL: bobFeed}, want: "bob.example"},
		{name: "raw", in: domain.Author{FeedURL: "feed.org"}, want: "feed.org"},
		{name: "unknown", in: domain.Author{}, want: "unknown"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := authorLabel(tc.in); got != tc.want {
				t.Fatalf("authorLabel(%+v) = %q want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestReplyLabel(t *testing.T) {
	c := fixtureCorpus()
	if got := replyLabel(c, bobFeed+"#1"); got != "bob#1" {
		t.Fatalf("followed feed should show nick, got %q", got)
	}
	if got := replyLabel(c, carolFeed+"#7"); got != carolFeed+"#7" {
		t.Fatalf("unknown feed should show full id, got %q", got)
	}
	if got := replyLabel(c, "42"); got != "42" {
		t.Fatalf("bare id should be kept, got %q", got)
	}
}

func TestRenderCompactTags(t *testing.T) {
	out := ansi.Strip(renderCompactTags([]string{"go", "tui", "org", "feeds", "extra"}, 3))
	if !strings.Contains(out, "#go") || !strings.Contains(out, "+2 more") {
		t.Fatalf("unexpected tags output: %q", out)
	}
	if renderCompactTags(nil, 3) != "" {
		t.Fatalf("no tags should render nothing")
	}
}
