package feed

const (
	headerLines   = 2
	footerLines   = 2
	linesPerUnit  = 2
	minListWidth  = 24
	dividerWidth  = 3
	maxIndentDeep = 10
)

// frameLayout is the pane geometry for one terminal size.
type frameLayout struct {
	width       int
	height      int
	bodyHeight  int
	listWidth   int
	detailWidth int
	listRows    int // units that fit in the list pane
}

func layoutFor(width, height int) frameLayout {
	l := frameLayout{width: width, height: height}
	l.bodyHeight = max(height-headerLines-footerLines, linesPerUnit)
	l.listWidth = max(width*2/5, minListWidth)
	if l.listWidth > width-minListWidth/2 {
		l.listWidth = max(width/2, 1)
	}
	l.detailWidth = max(width-l.listWidth-dividerWidth, 1)
	l.listRows = max(l.bodyHeight/linesPerUnit, 1)
	return l
}

func (m Model) layout() frameLayout {
	return layoutFor(m.size())
}

func clamp(v, lo, hi int) int {
	if hi < lo {
		return lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// moveSelection moves the active selection by delta rows.
func (m *Model) moveSelection(delta int) Effect {
	return m.selectRow(m.ctrl.Active().Selected + delta)
}

// selectRow selects row in the active arrangement, clamped. Changing the
// selection resets the content scroll and drops link focus.
func (m *Model) selectRow(row int) Effect {
	n := len(m.units(m.ctrl.Mode()))
	if n == 0 {
		return none
	}
	cur := m.ctrl.Active()
	row = clamp(row, 0, n-1)
	if row == cur.Selected {
		return none
	}
	cur.Selected = row
	cur.Scroll = 0
	m.reg.ClearFocus()
	m.ensureCursorVisible()
	return redraw
}

// scrollContent scrolls the selected post's content by delta lines.
func (m *Model) scrollContent(delta int) Effect {
	cur := m.ctrl.Active()
	maxScroll := max(m.contentLines-m.contentHeight, 0)
	next := clamp(cur.Scroll+delta, 0, maxScroll)
	if next == cur.Scroll {
		return none
	}
	cur.Scroll = next
	return redraw
}

// followFocus scrolls the content so the focused element's row is visible.
func (m *Model) followFocus() {
	el, ok := m.reg.Focused()
	if !ok || m.contentHeight <= 0 {
		return
	}
	cur := m.ctrl.Active()
	if el.Row < cur.Scroll {
		cur.Scroll = el.Row
	} else if el.Row >= cur.Scroll+m.contentHeight {
		cur.Scroll = el.Row - m.contentHeight + 1
	}
}

// ensureCursorVisible clamps every mode's selection and keeps it inside the
// list window.
func (m *Model) ensureCursorVisible() {
	rows := m.layout().listRows
	for mode := ViewMode(0); mode < modeCount; mode++ {
		cur := m.ctrl.cursorPtr(mode)
		n := len(m.units(mode))
		if n == 0 {
			*cur = Cursor{}
			continue
		}
		cur.Selected = clamp(cur.Selected, 0, n-1)
		if cur.Selected < cur.Offset {
			cur.Offset = cur.Selected
		}
		if cur.Selected >= cur.Offset+rows {
			cur.Offset = cur.Selected - rows + 1
		}
		cur.Offset = clamp(cur.Offset, 0, max(n-rows, 0))
	}
}
