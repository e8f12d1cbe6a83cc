package common

import "github.com/charmbracelet/lipgloss"

var (
	// AppTitleStyle styles the application title. Rendered at call site with content.
	AppTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF6600")).
			Padding(0, 1)

	// TabActiveStyle styles the tab of the active view mode.
	TabActiveStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#111111")).
			Background(lipgloss.Color("#FFB454")).
			Bold(true).
			Padding(0, 1)

	// TabInactiveStyle styles the other view mode tabs.
	TabInactiveStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#8E8E8E")).
				Padding(0, 1)

	// AuthorStyle styles the post author name.
	AuthorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#7DC4E4"))

	// TimestampStyle styles timestamps.
	TimestampStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6E738D"))

	// ContentStyle styles preview text.
	ContentStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#CAD3F5"))

	// MetaStyle styles secondary detail lines (ids, tags, reply targets).
	MetaStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#8E8E8E")).
			Faint(true)

	// SelectedRowStyle marks the selected row in the list pane.
	SelectedRowStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#FF6600")).
				Bold(true)

	// DividerStyle draws the bar between list and detail panes.
	DividerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#45475A"))

	// OwnBadgeStyle highlights posts that belong to the user.
	OwnBadgeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#A6DA95")).
			Bold(true)

	// NotificationBadgeStyle styles the [M]/[R] markers.
	NotificationBadgeStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#F5A97F")).
				Bold(true)

	// StatusBarStyle styles the bottom status bar.
	StatusBarStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6E738D"))

	// ErrorStyle styles error messages.
	ErrorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#ED8796")).
			Bold(true)

	// SuccessStyle styles success messages.
	SuccessStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#A6DA95")).
			Bold(true)

	// DialogStyle frames the key help dialog.
	DialogStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#FF8700")).
			Padding(1, 2).
			Margin(1, 2)
)
