package feed

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/CrestNiraj12/orgfeed/domain"
	"github.com/CrestNiraj12/orgfeed/tui/arrange"
	"github.com/CrestNiraj12/orgfeed/tui/common"
	"github.com/CrestNiraj12/orgfeed/tui/content"
)

const timeLayout = "2006-01-02 15:04"

// View returns the frame rendered by the last Update.
func (m Model) View() string {
	return m.frame
}

// render rebuilds the cached frame for the active mode and current size.
func (m *Model) render() {
	w, h := m.size()
	m.frame, _ = m.RenderFrame(m.ctrl.Mode(), w, h)
}

// RenderFrame draws mode at the given size and returns the frame with the
// number of activatable elements it registered. The registry is rebuilt from
// scratch; a focus carried over from the previous pass is clamped to the new
// element count.
func (m *Model) RenderFrame(mode ViewMode, width, height int) (string, int) {
	lay := layoutFor(width, height)
	prev, _ := m.reg.FocusIndex()
	m.reg.Reset()
	m.contentLines, m.contentHeight = 0, 0

	body := m.renderBody(mode, lay)
	m.reg.Restore(prev)

	if m.showAllHints {
		body = clipLines(m.renderKeyDialog(), lay.bodyHeight)
	}

	frame := strings.Join([]string{
		m.renderHeader(mode, width),
		"",
		body,
		m.renderStatus(mode, width),
		m.helpView(mode, width),
	}, "\n")
	return clipLines(clampLinesToWidth(frame, width), height), m.reg.Len()
}

func (m *Model) renderBody(mode ViewMode, lay frameLayout) string {
	units := m.units(mode)
	switch {
	case m.loading && len(m.corpus.Posts) == 0:
		return lipgloss.NewStyle().Height(lay.bodyHeight).Render(fmt.Sprintf("  %s Loading feed...", m.spinner.View()))
	case m.err != nil && len(m.corpus.Posts) == 0:
		msg := common.ErrorStyle.Render(fmt.Sprintf("  Error: %v", m.err)) + "\n\n  Press r to retry."
		return lipgloss.NewStyle().Height(lay.bodyHeight).Render(msg)
	case len(units) == 0:
		return lipgloss.NewStyle().Height(lay.bodyHeight).Render("  " + emptyText(mode))
	}

	cur := m.ctrl.Cursor(mode)
	list := m.renderList(mode, units, cur, lay)

	var detail []string
	if u, ok := m.selectedUnit(mode); ok {
		detail = m.renderDetail(m.corpus.Posts[u.Index], u, cur, lay)
	}

	listBlock := lipgloss.NewStyle().Width(lay.listWidth).Render(strings.Join(padLines(list, lay.bodyHeight), "\n"))
	divider := common.DividerStyle.Render(strings.TrimSuffix(strings.Repeat(" │ \n", lay.bodyHeight), "\n"))
	detailBlock := strings.Join(padLines(detail, lay.bodyHeight), "\n")
	return lipgloss.JoinHorizontal(lipgloss.Top, listBlock, divider, detailBlock)
}

func emptyText(mode ViewMode) string {
	if mode == ModeNotifications {
		return "No mentions or replies yet."
	}
	return "No posts in this feed."
}

// renderList draws the visible window of units, two lines each.
func (m *Model) renderList(mode ViewMode, units []arrange.Unit, cur Cursor, lay frameLayout) []string {
	end := min(cur.Offset+lay.listRows, len(units))
	lines := make([]string, 0, (end-cur.Offset)*linesPerUnit)
	for row := cur.Offset; row < end; row++ {
		u := units[row]
		p := m.corpus.Posts[u.Index]
		selected := row == cur.Selected

		indent := ""
		if mode == ModeThreaded {
			indent = strings.Repeat("  ", min(u.Depth, maxIndentDeep))
		}
		marker := "  "
		if selected {
			marker = common.SelectedRowStyle.Render("▸ ")
		}

		head := marker + indent + renderAuthor(p.Author, m.corpus.IsLocal(p.Author)) +
			" " + common.TimestampStyle.Render(p.Time.Local().Format("01-02 15:04"))
		if badge := u.Reason.Badge(); badge != "" {
			head += " " + common.NotificationBadgeStyle.Render(badge)
		} else if mode != ModeThreaded && p.IsReply() {
			head += common.MetaStyle.Render(" ↩")
		}

		avail := lay.listWidth - 2 - ansi.StringWidth(indent)
		preview := "(empty)"
		if pl := common.PreviewLines(p.PlainText(), max(avail, 4), 1); len(pl) > 0 {
			preview = pl[0]
		}
		previewStyle := common.ContentStyle
		if selected {
			previewStyle = previewStyle.Bold(true)
		}

		lines = append(lines,
			clampLinesToWidth(head, lay.listWidth),
			clampLinesToWidth("  "+indent+previewStyle.Render(preview), lay.listWidth),
		)
	}
	return lines
}

// renderDetail draws the selected post: header, then its content scrolled
// by cur.Scroll. Content rendering fills the registry.
func (m *Model) renderDetail(p domain.Post, u arrange.Unit, cur Cursor, lay frameLayout) []string {
	w := lay.detailWidth
	header := []string{
		renderAuthor(p.Author, m.corpus.IsLocal(p.Author)) + "  " + common.TimestampStyle.Render(p.Time.Local().Format(timeLayout)),
		common.MetaStyle.Render(common.Truncate(p.ID, w)),
	}
	if u.Reason != 0 {
		header[0] += "  " + common.NotificationBadgeStyle.Render(u.Reason.String())
	}
	if p.IsReply() {
		header = append(header, common.MetaStyle.Render("↳ reply to "+replyLabel(m.corpus, p.ParentID)))
	}
	var meta []string
	if tags := renderCompactTags(p.Tags, 4); tags != "" {
		meta = append(meta, tags)
	}
	if p.Lang != "" {
		meta = append(meta, common.MetaStyle.Render("lang:"+p.Lang))
	}
	if p.Mood != "" {
		meta = append(meta, common.MetaStyle.Render("mood:"+p.Mood))
	}
	if p.PollOption != "" {
		meta = append(meta, common.MetaStyle.Render("poll option:"+p.PollOption))
	}
	if len(meta) > 0 {
		header = append(header, strings.Join(meta, " "))
	}
	header = append(header, "")

	lines := content.Renderer{Width: w, Resolver: m.corpus}.Render(p, &m.reg)
	painted := m.painter.Paint(lines, &m.reg, w)

	height := max(lay.bodyHeight-len(header), 1)
	m.contentLines, m.contentHeight = len(painted), height

	scroll := clamp(cur.Scroll, 0, max(len(painted)-height, 0))
	visible := painted[min(scroll, len(painted)):min(scroll+height, len(painted))]

	out := make([]string, 0, len(header)+len(visible))
	for _, h := range header {
		out = append(out, clampLinesToWidth(h, w))
	}
	return append(out, visible...)
}
