package feed

import (
	"os"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/rs/zerolog"

	"github.com/CrestNiraj12/orgfeed/app"
	"github.com/CrestNiraj12/orgfeed/domain"
	"github.com/CrestNiraj12/orgfeed/infra/logging"
	"github.com/CrestNiraj12/orgfeed/tui/activatable"
	"github.com/CrestNiraj12/orgfeed/tui/arrange"
	"github.com/CrestNiraj12/orgfeed/tui/common"
	"github.com/CrestNiraj12/orgfeed/tui/content"
)

const (
	defaultWidth  = 80
	defaultHeight = 24
)

// --- Messages ---

// CorpusLoadedMsg carries a freshly loaded corpus together with every
// arrangement built from it, so Update can swap both in one step.
type CorpusLoadedMsg struct {
	Corpus   domain.Corpus
	Snapshot arrange.Snapshot
}

// CorpusErrorMsg is sent when loading the feed fails.
type CorpusErrorMsg struct {
	Err error
}

// ActivatedMsg reports the outcome of opening a link or mention target.
type ActivatedMsg struct {
	Target string
	Status string
	Err    error
}

// ModeChangedMsg is emitted whenever the active view mode changes.
type ModeChangedMsg struct {
	Mode ViewMode
}

// --- Model ---

// Options configures a feed model.
type Options struct {
	Arrange     arrange.Options
	InitialMode ViewMode
	Painter     *content.Painter // defaults to a painter for the terminal's color profile
}

// Model holds the state for the feed view.
type Model struct {
	corpusSvc app.CorpusService
	opener    app.Opener
	opts      arrange.Options
	log       zerolog.Logger

	corpus domain.Corpus
	snap   arrange.Snapshot
	ctrl   Controller
	reg    activatable.Registry

	painter *content.Painter
	keys    common.KeyMap
	spinner spinner.Model

	loading      bool
	err          error
	status       string
	statusIsErr  bool
	showAllHints bool

	width  int
	height int

	frame         string
	contentLines  int // rendered content lines of the selected post in the last frame
	contentHeight int // detail rows available for content in the last frame
}

// New creates a feed model with injected dependencies.
func New(corpus app.CorpusService, opener app.Opener, opts Options) Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6600"))

	painter := opts.Painter
	if painter == nil {
		painter = content.NewPainter(os.Stdout, termenv.EnvColorProfile(), content.DefaultTheme())
	}

	m := Model{
		corpusSvc: corpus,
		opener:    opener,
		opts:      opts.Arrange,
		log:       logging.Component("feed"),
		painter:   painter,
		keys:      common.DefaultKeyMap(),
		spinner:   s,
		loading:   true,
	}
	m.ctrl.SetMode(opts.InitialMode)
	m.render()
	return m
}

// Init starts the initial corpus load.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.loadCorpus(),
		m.spinner.Tick,
	)
}

// Mode returns the active view mode.
func (m Model) Mode() ViewMode {
	return m.ctrl.Mode()
}

// Cursor returns the cursor state of mode.
func (m Model) Cursor(mode ViewMode) Cursor {
	return m.ctrl.Cursor(mode)
}

// Corpus returns the loaded corpus.
func (m Model) Corpus() domain.Corpus {
	return m.corpus
}

// Snapshot returns the arrangements of the loaded corpus.
func (m Model) Snapshot() arrange.Snapshot {
	return m.snap
}

// Loading reports whether a corpus load is in flight.
func (m Model) Loading() bool {
	return m.loading
}

// Err returns the last load error, if any.
func (m Model) Err() error {
	return m.err
}

// Status returns the transient status line text.
func (m Model) Status() string {
	return m.status
}

// ShowingHelp reports whether the key dialog is open.
func (m Model) ShowingHelp() bool {
	return m.showAllHints
}

// Registry exposes the activatables of the last rendered frame.
func (m *Model) Registry() *activatable.Registry {
	return &m.reg
}

// units returns the arrangement shown by mode.
func (m Model) units(mode ViewMode) []arrange.Unit {
	switch mode {
	case ModeThreaded:
		return m.snap.Threaded
	case ModeNotifications:
		return m.snap.Notifications
	default:
		return m.snap.List
	}
}

// selectedUnit returns the unit under mode's cursor.
func (m Model) selectedUnit(mode ViewMode) (arrange.Unit, bool) {
	units := m.units(mode)
	cur := m.ctrl.Cursor(mode)
	if cur.Selected < 0 || cur.Selected >= len(units) {
		return arrange.Unit{}, false
	}
	u := units[cur.Selected]
	if u.Index < 0 || u.Index >= len(m.corpus.Posts) {
		return arrange.Unit{}, false
	}
	return u, true
}

// SelectedPost returns the post under the active cursor, if any.
func (m Model) SelectedPost() (domain.Post, bool) {
	u, ok := m.selectedUnit(m.ctrl.Mode())
	if !ok {
		return domain.Post{}, false
	}
	return m.corpus.Posts[u.Index], true
}

func (m *Model) setStatus(text string, isErr bool) {
	m.status = text
	m.statusIsErr = isErr
}

func (m Model) size() (int, int) {
	w, h := m.width, m.height
	if w <= 0 {
		w = defaultWidth
	}
	if h <= 0 {
		h = defaultHeight
	}
	return w, h
}
