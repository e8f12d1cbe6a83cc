package feed

import "strings"

// ViewMode is one of the three arrangements the feed can show.
type ViewMode int

const (
	ModeList ViewMode = iota
	ModeThreaded
	ModeNotifications
	modeCount
)

// Next returns the mode after m, wrapping from the last back to the first.
func (m ViewMode) Next() ViewMode {
	return (m + 1) % modeCount
}

// Valid reports whether m is a known mode.
func (m ViewMode) Valid() bool {
	return m >= 0 && m < modeCount
}

func (m ViewMode) String() string {
	switch m {
	case ModeList:
		return "list"
	case ModeThreaded:
		return "threaded"
	case ModeNotifications:
		return "notifications"
	default:
		return "unknown"
	}
}

// Title is the label shown in the tab bar.
func (m ViewMode) Title() string {
	switch m {
	case ModeList:
		return "Posts"
	case ModeThreaded:
		return "Threads"
	case ModeNotifications:
		return "Notifications"
	default:
		return "?"
	}
}

// ParseViewMode maps a persisted mode name back to a ViewMode.
func ParseViewMode(s string) (ViewMode, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "list":
		return ModeList, true
	case "threaded":
		return ModeThreaded, true
	case "notifications":
		return ModeNotifications, true
	default:
		return ModeList, false
	}
}

// Cursor is the per-mode navigation state.
type Cursor struct {
	Selected int // row in the mode's arrangement
	Offset   int // first row shown in the list pane
	Scroll   int // first content line shown in the detail pane
}

// Controller owns the active mode and one cursor per mode. Cursors of
// inactive modes are never touched, so returning to a mode restores it.
type Controller struct {
	mode    ViewMode
	cursors [modeCount]Cursor
}

// Mode returns the active mode.
func (c *Controller) Mode() ViewMode {
	return c.mode
}

// Cycle advances to the next mode and returns it.
func (c *Controller) Cycle() ViewMode {
	c.mode = c.mode.Next()
	return c.mode
}

// SetMode activates mode; unknown modes are ignored.
func (c *Controller) SetMode(mode ViewMode) {
	if mode.Valid() {
		c.mode = mode
	}
}

// Cursor returns the cursor state of mode.
func (c *Controller) Cursor(mode ViewMode) Cursor {
	if !mode.Valid() {
		return Cursor{}
	}
	return c.cursors[mode]
}

// Active returns a pointer to the active mode's cursor.
func (c *Controller) Active() *Cursor {
	return &c.cursors[c.mode]
}

func (c *Controller) cursorPtr(mode ViewMode) *Cursor {
	return &c.cursors[mode]
}
