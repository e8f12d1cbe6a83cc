package feed

import (
	"fmt"
	"hash/fnv"
	"net/url"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/CrestNiraj12/orgfeed/domain"
)

func renderCompactTags(tags []string, max int) string {
	if len(tags) == 0 {
		return ""
	}
	if max < 1 {
		max = 1
	}
	show := tags
	if len(show) > max {
		show = show[:max]
	}
	capStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#A9A9A9")).
		Background(lipgloss.Color("#2F2F2F")).
		Padding(0, 1).
		Faint(true)
	parts := make([]string, 0, len(show)+1)
	for _, t := range show {
		parts = append(parts, capStyle.Render("#"+t))
	}
	if len(tags) > max {
		parts = append(parts, lipgloss.NewStyle().Foreground(lipgloss.Color("#777777")).Faint(true).Render(fmt.Sprintf("+%d more", len(tags)-max)))
	}
	return strings.Join(parts, " ")
}

func authorStyleFor(name string, isOwn bool) lipgloss.Style {
	if isOwn {
		return lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#A6DA95"))
	}
	palette := []string{
		"#7DC4E4", "#8BD5CA", "#F5A97F", "#C6A0F6", "#EBA0AC",
		"#A6DA95", "#F9E2AF", "#89B4FA", "#F38BA8", "#94E2D5",
	}
	h := fnv.New32a()
	_, _ = h.Write([]byte(strings.ToLower(strings.TrimSpace(name))))
	idx := int(h.Sum32() % uint32(len(palette)))
	return lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(palette[idx]))
}

// authorLabel names an author by nick, falling back to the feed host.
func authorLabel(a domain.Author) string {
	if a.Nick != "" {
		return "@" + a.Nick
	}
	if u, err := url.Parse(a.FeedURL); err == nil && u.Host != "" {
		return u.Host
	}
	if a.FeedURL != "" {
		return a.FeedURL
	}
	return "unknown"
}

func renderAuthor(a domain.Author, isOwn bool) string {
	out := authorStyleFor(authorLabel(a), isOwn).Render(authorLabel(a))
	if isOwn {
		out += lipgloss.NewStyle().Foreground(lipgloss.Color("#A6DA95")).Faint(true).Render(" (you)")
	}
	return out
}

// replyLabel shows a parent reference as nick#id when the feed is known.
func replyLabel(c domain.Corpus, parentID string) string {
	feed, id := domain.SplitPostID(parentID)
	if nick, ok := c.NickFor(feed); ok {
		return nick + "#" + id
	}
	if feed == "" {
		return id
	}
	return parentID
}

func clipLines(text string, maxLines int) string {
	if maxLines < 1 {
		return ""
	}
	lines := strings.Split(text, "\n")
	if len(lines) <= maxLines {
		return text
	}
	return strings.Join(lines[:maxLines], "\n")
}

func clampLinesToWidth(text string, width int) string {
	if width <= 0 {
		return text
	}
	lines := strings.Split(text, "\n")
	for i, ln := range lines {
		if ansi.StringWidth(ln) <= width {
			continue
		}
		lines[i] = ansi.Cut(ln, 0, width)
	}
	return strings.Join(lines, "\n")
}

// padLines returns exactly n lines, filling with blanks.
func padLines(lines []string, n int) []string {
	if len(lines) >= n {
		return lines[:n]
	}
	out := make([]string, n)
	copy(out, lines)
	return out
}
