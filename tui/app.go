package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/CrestNiraj12/orgfeed/app"
	"github.com/CrestNiraj12/orgfeed/infra/config"
	"github.com/CrestNiraj12/orgfeed/infra/logging"
	"github.com/CrestNiraj12/orgfeed/tui/arrange"
	"github.com/CrestNiraj12/orgfeed/tui/common"
	"github.com/CrestNiraj12/orgfeed/tui/content"
	"github.com/CrestNiraj12/orgfeed/tui/feed"
)

// Deps holds all dependencies the TUI needs. Plain struct, not a DI container.
type Deps struct {
	Corpus      app.CorpusService
	Opener      app.Opener
	StatePath   string // UI state file; empty disables persistence
	InitialMode feed.ViewMode
	Arrange     arrange.Options
	Painter     *content.Painter
}

// App is the root Bubble Tea model. It owns global keys and persistence and
// delegates everything else to the feed.
type App struct {
	deps Deps
	feed feed.Model
	keys common.KeyMap
	log  zerolog.Logger
}

type uiStateSavedMsg struct {
	Err error
}

// NewApp creates the root model with all dependencies wired.
func NewApp(deps Deps) App {
	return App{
		deps: deps,
		feed: feed.New(deps.Corpus, deps.Opener, feed.Options{
			Arrange:     deps.Arrange,
			InitialMode: deps.InitialMode,
			Painter:     deps.Painter,
		}),
		keys: common.DefaultKeyMap(),
		log:  logging.Component("app"),
	}
}

// Init delegates to the feed.
func (a App) Init() tea.Cmd {
	return a.feed.Init()
}

// Update handles global messages and routes the rest to the feed.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if key.Matches(msg, a.keys.ForceQuit) {
			return a, tea.Quit
		}
		// q closes the key dialog before it quits.
		if key.Matches(msg, a.keys.Quit) && !a.feed.ShowingHelp() {
			return a, tea.Quit
		}

	case feed.ModeChangedMsg:
		return a, a.saveUIState(msg.Mode)

	case uiStateSavedMsg:
		if msg.Err != nil {
			a.log.Warn().Err(msg.Err).Str("path", a.deps.StatePath).Msg("ui state not saved")
		}
		return a, nil
	}

	updated, cmd := a.feed.Update(msg)
	a.feed = updated
	return a, cmd
}

func (a App) saveUIState(mode feed.ViewMode) tea.Cmd {
	path := a.deps.StatePath
	if path == "" {
		return nil
	}
	return func() tea.Msg {
		return uiStateSavedMsg{Err: config.SaveUIState(path, config.UIState{ViewMode: mode.String()})}
	}
}

// Feed returns the feed model.
func (a App) Feed() feed.Model {
	return a.feed
}

// View renders the feed.
func (a App) View() string {
	return a.feed.View()
}
