package content

import (
	"io"
	"strings"

	"github.com/alecthomas/chroma/v2/quick"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/termenv"

	"github.com/CrestNiraj12/orgfeed/domain"
	"github.com/CrestNiraj12/orgfeed/tui/activatable"
)

const sgrReset = "\x1b[0m"

// Theme holds the painter's colors.
type Theme struct {
	Text           lipgloss.Color
	Link           lipgloss.Color
	Mention        lipgloss.Color
	Unresolved     lipgloss.Color
	FocusedLink    lipgloss.Color
	FocusedMention lipgloss.Color
	FocusBg        lipgloss.Color
	Code           lipgloss.Color
	CodeBg         lipgloss.Color
	Quote          lipgloss.Color
}

// DefaultTheme matches the application palette.
func DefaultTheme() Theme {
	return Theme{
		Text:           lipgloss.Color("#CAD3F5"),
		Link:           lipgloss.Color("#8AADF4"),
		Mention:        lipgloss.Color("#F5A97F"),
		Unresolved:     lipgloss.Color("#6E738D"),
		FocusedLink:    lipgloss.Color("#24273A"),
		FocusedMention: lipgloss.Color("#24273A"),
		FocusBg:        lipgloss.Color("#FF6600"),
		Code:           lipgloss.Color("#A6DA95"),
		CodeBg:         lipgloss.Color("#1E2030"),
		Quote:          lipgloss.Color("#939AB7"),
	}
}

// Painter turns laid-out lines into styled terminal strings.
type Painter struct {
	theme     Theme
	renderer  *lipgloss.Renderer
	formatter string // chroma formatter name, empty disables highlighting
}

// NewPainter creates a painter that emits escape codes for profile.
func NewPainter(out io.Writer, profile termenv.Profile, theme Theme) *Painter {
	r := lipgloss.NewRenderer(out, termenv.WithProfile(profile))
	r.SetColorProfile(profile)
	return &Painter{theme: theme, renderer: r, formatter: chromaFormatter(profile)}
}

func chromaFormatter(profile termenv.Profile) string {
	switch profile {
	case termenv.TrueColor:
		return "terminal16m"
	case termenv.ANSI256:
		return "terminal256"
	case termenv.ANSI:
		return "terminal16"
	default:
		return ""
	}
}

// Paint styles lines and clamps each one to width. Focus highlighting comes
// from reg, so Paint must run against the registry filled by the same pass.
func (p *Painter) Paint(lines []Line, reg *activatable.Registry, width int) []string {
	out := make([]string, 0, len(lines))
	for i := 0; i < len(lines); {
		if lines[i].Block == domain.BlockCode {
			j := i
			for j < len(lines) && lines[j].Block == domain.BlockCode && lines[j].Lang == lines[i].Lang {
				j++
			}
			out = append(out, p.paintCode(lines[i:j], reg, width)...)
			i = j
			continue
		}
		out = append(out, clamp(p.paintLine(lines[i], reg), width))
		i++
	}
	return out
}

func (p *Painter) paintLine(line Line, reg *activatable.Registry) string {
	var b strings.Builder
	if line.Prefix != "" {
		st := p.renderer.NewStyle()
		if line.Block == domain.BlockQuote {
			st = st.Foreground(p.theme.Quote)
		}
		b.WriteString(st.Render(line.Prefix))
	}
	for _, seg := range line.Segments {
		b.WriteString(p.segmentStyle(line, seg, reg).Render(seg.Text))
	}
	return b.String()
}

func (p *Painter) segmentStyle(line Line, seg Segment, reg *activatable.Registry) lipgloss.Style {
	st := p.renderer.NewStyle().Foreground(p.theme.Text)
	if line.Block == domain.BlockQuote {
		st = st.Foreground(p.theme.Quote).Italic(true)
	}
	if seg.Style.Has(domain.StyleBold) {
		st = st.Bold(true)
	}
	if seg.Style.Has(domain.StyleItalic) {
		st = st.Italic(true)
	}
	if seg.Style.Has(domain.StyleUnderline) {
		st = st.Underline(true)
	}
	if seg.Style.Has(domain.StyleStrikethrough) {
		st = st.Strikethrough(true)
	}
	if seg.Style.Has(domain.StyleCode) {
		st = st.Foreground(p.theme.Code).Background(p.theme.CodeBg)
	}

	if seg.Element < 0 || seg.Element >= reg.Len() {
		return st
	}
	el := reg.Elements()[seg.Element]
	switch {
	case reg.IsMentionFocused(seg.Element):
		st = st.Foreground(p.theme.FocusedMention).Background(p.theme.Mention).Bold(true)
	case reg.IsFocused(seg.Element):
		st = st.Foreground(p.theme.FocusedLink).Background(p.theme.FocusBg).Bold(true)
	case el.Kind == activatable.KindMention && !el.Available():
		st = st.Foreground(p.theme.Unresolved).Bold(true)
	case el.Kind == activatable.KindMention:
		st = st.Foreground(p.theme.Mention).Bold(true)
	default:
		st = st.Foreground(p.theme.Link).Underline(true)
	}
	return st
}

// paintCode highlights a run of code lines with chroma when the language is
// known, falling back to flat code styling.
func (p *Painter) paintCode(lines []Line, reg *activatable.Registry, width int) []string {
	lang := lines[0].Lang
	plain := p.formatter == "" || lang == ""
	for _, l := range lines {
		for _, s := range l.Segments {
			if s.Element >= 0 {
				plain = true
			}
		}
	}

	if !plain {
		texts := make([]string, len(lines))
		for i, l := range lines {
			texts[i] = l.Text()
		}
		var buf strings.Builder
		if err := quick.Highlight(&buf, strings.Join(texts, "\n"), lang, p.formatter, "monokai"); err == nil {
			hl := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
			if len(hl) == len(lines) {
				out := make([]string, len(hl))
				for i, h := range hl {
					out[i] = clamp(h, width) + sgrReset
				}
				return out
			}
		}
	}

	st := p.renderer.NewStyle().Foreground(p.theme.Code)
	out := make([]string, len(lines))
	for i, l := range lines {
		if len(l.Segments) == 0 {
			out[i] = ""
			continue
		}
		if plain && hasElements(l) {
			out[i] = clamp(p.paintLine(l, reg), width)
			continue
		}
		out[i] = clamp(st.Render(l.Text()), width)
	}
	return out
}

func hasElements(l Line) bool {
	for _, s := range l.Segments {
		if s.Element >= 0 {
			return true
		}
	}
	return false
}

func clamp(s string, width int) string {
	if width <= 0 || ansi.StringWidth(s) <= width {
		return s
	}
	return ansi.Truncate(s, width, "")
}
