// Package content lays out a post's token stream as wrapped, position-tracked
// lines and registers every link and mention it places.
//
// Render does layout only; Paint turns the result into styled strings. The
// renderer never inspects text for links, mentions or emphasis: those arrive
// as tokens from the feed loader.
package content

import (
	"net/url"
	"strings"
	"unicode"

	"github.com/charmbracelet/x/ansi"

	"github.com/CrestNiraj12/orgfeed/domain"
	"github.com/CrestNiraj12/orgfeed/tui/activatable"
)

const (
	minWidth    = 10
	quotePrefix = "│ "
	listIndent  = "  "
)

// Style is the set of inline attributes active on a segment.
type Style uint8

// Has reports whether attribute a is active.
func (s Style) Has(a domain.StyleAttr) bool {
	return s&(1<<uint(a)) != 0
}

// With returns s with attribute a active.
func (s Style) With(a domain.StyleAttr) Style {
	return s | 1<<uint(a)
}

// Segment is a run of text with one style on one line.
type Segment struct {
	Text    string
	Style   Style
	Element int // registry index, -1 for plain text
}

// Line is one display row of rendered content.
type Line struct {
	Prefix   string // quote bar or list continuation indent
	Segments []Segment
	Block    domain.BlockKind
	Lang     string
}

// Text returns the line's plain text, prefix included.
func (l Line) Text() string {
	var b strings.Builder
	b.WriteString(l.Prefix)
	for _, s := range l.Segments {
		b.WriteString(s.Text)
	}
	return b.String()
}

// Width returns the display width of the line.
func (l Line) Width() int {
	return ansi.StringWidth(l.Text())
}

// Resolver maps a nick or feed URL to a canonical feed URL.
type Resolver interface {
	ResolveFeed(identity string) (string, bool)
}

// Renderer lays out posts at a fixed width.
type Renderer struct {
	Width    int
	Resolver Resolver
}

// Render lays out post and appends its links and mentions to reg in render
// order. The caller owns reg's lifecycle (Reset before, Restore after).
func (r Renderer) Render(post domain.Post, reg *activatable.Registry) []Line {
	width := r.Width
	if width < minWidth {
		width = minWidth
	}
	l := &layout{width: width, reg: reg}
	l.newLine(domain.BlockParagraph, "", false)

	var counts [domain.StyleAttrCount]int
	blocks := post.Blocks
	bi := 0
	for i, tok := range post.Tokens {
		for bi < len(blocks) && blocks[bi].End <= i {
			bi++
		}
		kind, lang := domain.BlockParagraph, ""
		if bi < len(blocks) && blocks[bi].Start <= i {
			kind, lang = blocks[bi].Kind, blocks[bi].Lang
		}
		if tok.Kind == domain.TokenText || tok.Kind == domain.TokenLink || tok.Kind == domain.TokenMention {
			l.enterBlock(kind, lang)
		}

		switch tok.Kind {
		case domain.TokenText:
			l.write(tok.Text, currentStyle(counts), -1)

		case domain.TokenStyle:
			if tok.Style < 0 || tok.Style >= domain.StyleAttrCount {
				continue
			}
			if tok.Open {
				counts[tok.Style]++
			} else if counts[tok.Style] > 0 {
				counts[tok.Style]--
			}

		case domain.TokenLink:
			label := tok.DisplayText()
			if !activatableURL(tok.URL) {
				l.write(label, currentStyle(counts), -1)
				continue
			}
			l.place(activatable.KindLink, tok.URL, label, currentStyle(counts))

		case domain.TokenMention:
			label := tok.DisplayText()
			if label == "" {
				continue
			}
			l.place(activatable.KindMention, r.mentionTarget(tok), label, currentStyle(counts))

		case domain.TokenBlockBoundary:
			l.newLine(kind, lang, false)
		}
	}
	return l.finish()
}

func (r Renderer) mentionTarget(tok domain.Token) string {
	if u := domain.NormalizeFeedURL(tok.URL); u != "" {
		return u
	}
	if r.Resolver == nil {
		return ""
	}
	if u, ok := r.Resolver.ResolveFeed(tok.Nick); ok {
		return u
	}
	return ""
}

func currentStyle(counts [domain.StyleAttrCount]int) Style {
	var s Style
	for a, n := range counts {
		if n > 0 {
			s = s.With(domain.StyleAttr(a))
		}
	}
	return s
}

// activatableURL accepts absolute http(s) URLs only.
func activatableURL(raw string) bool {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return false
	}
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return false
	}
	switch strings.ToLower(u.Scheme) {
	case "http", "https":
		return true
	}
	return false
}

type layout struct {
	width int
	reg   *activatable.Registry
	lines []Line
	col   int  // display column of the next cell on the current line
	soft  bool // current line was opened by wrapping
}

func (l *layout) cur() *Line {
	return &l.lines[len(l.lines)-1]
}

func (l *layout) lineEmpty() bool {
	return len(l.cur().Segments) == 0
}

func (l *layout) newLine(kind domain.BlockKind, lang string, continuation bool) {
	line := Line{Block: kind, Lang: lang}
	switch {
	case kind == domain.BlockQuote:
		line.Prefix = quotePrefix
	case kind == domain.BlockList && continuation:
		line.Prefix = listIndent
	}
	l.lines = append(l.lines, line)
	l.col = ansi.StringWidth(line.Prefix)
	l.soft = continuation
}

// enterBlock starts a new line when content of a different block kind
// arrives, or retags the current line if it is still empty.
func (l *layout) enterBlock(kind domain.BlockKind, lang string) {
	c := l.cur()
	if c.Block == kind && c.Lang == lang {
		return
	}
	if len(c.Segments) > 0 {
		l.newLine(kind, lang, false)
		return
	}
	c.Block, c.Lang = kind, lang
	c.Prefix = ""
	if kind == domain.BlockQuote {
		c.Prefix = quotePrefix
	}
	l.col = ansi.StringWidth(c.Prefix)
}

func (l *layout) append(text string, style Style, element int) {
	if text == "" {
		return
	}
	c := l.cur()
	if n := len(c.Segments); n > 0 {
		last := &c.Segments[n-1]
		if last.Style == style && last.Element == element {
			last.Text += text
			l.col += ansi.StringWidth(text)
			return
		}
	}
	c.Segments = append(c.Segments, Segment{Text: text, Style: style, Element: element})
	l.col += ansi.StringWidth(text)
}

func (l *layout) wrap() {
	c := l.cur()
	l.newLine(c.Block, c.Lang, true)
}

// breakLine ends the current line at a newline inside a text run. List items
// keep their indent.
func (l *layout) breakLine() {
	c := l.cur()
	l.newLine(c.Block, c.Lang, c.Block == domain.BlockList)
}

// write lays out text with word wrapping and returns where its first visible
// cell landed along with the column after its last cell on that row. A
// newline in text starts a new line.
func (l *layout) write(text string, style Style, element int) (row, colStart, colEnd int) {
	row, colStart = -1, -1
	mark := func() {
		if row < 0 {
			row, colStart = len(l.lines)-1, l.col
		}
		if len(l.lines)-1 == row {
			colEnd = l.col
		}
	}

	for i, run := range strings.Split(text, "\n") {
		if i > 0 {
			l.breakLine()
		}
		l.writeRun(strings.TrimSuffix(run, "\r"), style, element, mark)
	}
	if row < 0 {
		row, colStart, colEnd = len(l.lines)-1, l.col, l.col
	}
	return row, colStart, colEnd
}

// writeRun lays out a single line of text. mark records placement and is
// called around every append.
func (l *layout) writeRun(text string, style Style, element int, mark func()) {
	if l.cur().Block == domain.BlockCode {
		mark()
		l.append(text, style, element)
		mark()
		return
	}

	for _, piece := range splitWords(text) {
		w := ansi.StringWidth(piece)
		atStart := l.col == ansi.StringWidth(l.cur().Prefix)
		if isSpace(piece) {
			if l.soft && l.lineEmpty() {
				continue
			}
			if l.col+w > l.width {
				l.wrap()
				continue
			}
			l.append(piece, style, element)
			continue
		}
		if l.col+w > l.width && !atStart {
			l.wrap()
		}
		for ansi.StringWidth(piece) > l.width-l.col {
			room := l.width - l.col
			if room <= 0 {
				l.wrap()
				continue
			}
			head := ansi.Truncate(piece, room, "")
			if head == "" {
				break
			}
			mark()
			l.append(head, style, element)
			mark()
			piece = piece[len(head):]
			l.wrap()
		}
		mark()
		l.append(piece, style, element)
		mark()
	}
}

// place writes an activatable span and registers it.
func (l *layout) place(kind activatable.Kind, target, label string, style Style) {
	idx := l.reg.Len()
	row, start, end := l.write(label, style, idx)
	l.reg.Register(activatable.Element{
		Kind:     kind,
		Target:   target,
		Label:    label,
		Row:      row,
		ColStart: start,
		ColEnd:   end,
	})
}

func (l *layout) finish() []Line {
	lines := l.lines
	for len(lines) > 0 && len(lines[len(lines)-1].Segments) == 0 {
		lines = lines[:len(lines)-1]
	}
	for i := range lines {
		trimTrailingSpace(&lines[i])
	}
	return lines
}

func trimTrailingSpace(line *Line) {
	if line.Block == domain.BlockCode {
		return
	}
	for n := len(line.Segments); n > 0; n = len(line.Segments) {
		last := &line.Segments[n-1]
		if last.Element >= 0 {
			return
		}
		last.Text = strings.TrimRightFunc(last.Text, unicode.IsSpace)
		if last.Text != "" {
			return
		}
		line.Segments = line.Segments[:n-1]
	}
}

// splitWords splits s into alternating runs of spaces and non-spaces.
func splitWords(s string) []string {
	var out []string
	start := 0
	var inSpace bool
	for i, r := range s {
		sp := unicode.IsSpace(r)
		if i == 0 {
			inSpace = sp
			continue
		}
		if sp != inSpace {
			out = append(out, s[start:i])
			start, inSpace = i, sp
		}
	}
	if start < len(s) {
		out = append(out, s[start:])
	}
	return out
}

func isSpace(s string) bool {
	return strings.TrimFunc(s, unicode.IsSpace) == ""
}
