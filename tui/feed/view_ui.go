package feed

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/CrestNiraj12/orgfeed/tui/activatable"
	"github.com/CrestNiraj12/orgfeed/tui/common"
)

func (m Model) renderHeader(mode ViewMode, width int) string {
	title := common.AppTitleStyle.Render("orgfeed")
	tabs := m.renderTabs(mode)
	left := title + " " + tabs

	who := ""
	if m.corpus.Local.Nick != "" {
		who = common.OwnBadgeStyle.Render("@" + m.corpus.Local.Nick)
	}
	gap := width - ansi.StringWidth(left) - ansi.StringWidth(who)
	if who == "" || gap < 1 {
		return left
	}
	return left + strings.Repeat(" ", gap) + who
}

func (m Model) renderTabs(active ViewMode) string {
	parts := make([]string, 0, modeCount)
	for mode := ViewMode(0); mode < modeCount; mode++ {
		label := mode.Title()
		if mode == ModeNotifications && len(m.snap.Notifications) > 0 {
			label = fmt.Sprintf("%s (%d)", label, len(m.snap.Notifications))
		}
		if mode == active {
			parts = append(parts, common.TabActiveStyle.Render(label))
		} else {
			parts = append(parts, common.TabInactiveStyle.Render(label))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

// renderStatus shows position, focus and the transient status message.
func (m Model) renderStatus(mode ViewMode, width int) string {
	units := m.units(mode)
	cur := m.ctrl.Cursor(mode)

	pos := []string{mode.Title()}
	if len(units) > 0 {
		pos = append(pos, fmt.Sprintf("%d/%d", cur.Selected+1, len(units)))
	}
	if el, ok := m.reg.Focused(); ok {
		pos = append(pos, fmt.Sprintf("%s %d/%d", el.Kind, el.Seq+1, m.reg.Len()))
	} else if n := m.reg.Len(); n > 0 {
		pos = append(pos, fmt.Sprintf("%d %s", n, plural(n, "link")))
	}
	if m.contentLines > m.contentHeight && m.contentHeight > 0 {
		top := clamp(cur.Scroll, 0, m.contentLines-m.contentHeight)
		pos = append(pos, fmt.Sprintf("lines %d-%d/%d", top+1, top+m.contentHeight, m.contentLines))
	}
	left := common.StatusBarStyle.Render(" " + strings.Join(pos, " • "))

	if m.status == "" {
		return left
	}
	msgStyle := common.SuccessStyle
	if m.statusIsErr {
		msgStyle = common.ErrorStyle
	}
	right := msgStyle.Render(m.status)
	gap := width - ansi.StringWidth(left) - ansi.StringWidth(right) - 1
	if gap < 1 {
		return left + "  " + right
	}
	return left + strings.Repeat(" ", gap) + right
}

func plural(n int, word string) string {
	if n == 1 {
		return word
	}
	return word + "s"
}

func (m Model) helpView(mode ViewMode, width int) string {
	var items []string
	switch {
	case m.showAllHints:
		items = []string{"?/esc: close"}
	case len(m.units(mode)) == 0:
		items = []string{"t: next view", "r: reload", "q: quit", "?: all keys"}
	default:
		items = []string{"j/k: move", "t: next view", "l/L: focus link"}
		if el, ok := m.reg.Focused(); ok {
			if el.Kind == activatable.KindMention {
				items = append(items, "enter: open feed")
			} else {
				items = append(items, "enter: open link")
			}
		}
		items = append(items, "d/u: scroll", "q: quit", "?: all keys")
	}
	return common.StatusBarStyle.
		MaxWidth(max(width, 16)).
		Render(" " + strings.Join(items, " • "))
}

func (m Model) renderKeyDialog() string {
	core := []string{
		"g / G           first / last post",
		"d / u           scroll post content",
		"t               next view (posts, threads, notifications)",
		"l / tab         focus next link or mention",
		"L / shift+tab   focus previous link or mention",
		"enter           open focused link or mention feed",
		"esc             clear focus",
		"r               reload feed file",
		"q               quit",
	}
	lines := buildKeyDialogLines(core, true)

	body := "Keyboard Shortcuts\n\n" + strings.Join(lines, "\n") + "\n\nPress ?, esc, q, or enter to close."
	return common.DialogStyle.Render(body)
}

func buildKeyDialogLines(core []string, includeMove bool) []string {
	out := make([]string, 0, len(core)+3)
	if includeMove {
		out = append(out, "j/k or up/down  move selection")
	}
	out = append(out, core...)
	out = append(out, "ctrl+c          force quit", "? / h           toggle this dialog")
	return out
}
