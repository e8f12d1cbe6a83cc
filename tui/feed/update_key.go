package feed

import (
	"errors"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/CrestNiraj12/orgfeed/domain"
)

// EffectKind is what a key press asks of the surrounding loop.
type EffectKind int

const (
	EffectNone EffectKind = iota
	EffectRedraw
	EffectActivate
	EffectReload
)

// Effect is the result of HandleKey. Target is set for EffectActivate.
type Effect struct {
	Kind   EffectKind
	Target string
}

var (
	none   = Effect{Kind: EffectNone}
	redraw = Effect{Kind: EffectRedraw}
)

// HandleKey applies a key press to the controller, cursors and registry
// focus. It never blocks; activation and reload are returned as effects for
// Update to turn into commands.
func (m *Model) HandleKey(msg tea.KeyMsg) Effect {
	if m.showAllHints {
		if key.Matches(msg, m.keys.Help) || key.Matches(msg, m.keys.Cancel) ||
			key.Matches(msg, m.keys.Quit) || key.Matches(msg, m.keys.Activate) {
			m.showAllHints = false
			return redraw
		}
		return none
	}

	switch {
	case key.Matches(msg, m.keys.Help):
		m.showAllHints = true
		return redraw

	case key.Matches(msg, m.keys.Up):
		return m.moveSelection(-1)

	case key.Matches(msg, m.keys.Down):
		return m.moveSelection(1)

	case key.Matches(msg, m.keys.Top):
		return m.selectRow(0)

	case key.Matches(msg, m.keys.Bottom):
		return m.selectRow(len(m.units(m.ctrl.Mode())) - 1)

	case key.Matches(msg, m.keys.ScrollDown):
		return m.scrollContent(max(m.contentHeight/2, 1))

	case key.Matches(msg, m.keys.ScrollUp):
		return m.scrollContent(-max(m.contentHeight/2, 1))

	case key.Matches(msg, m.keys.CycleView):
		mode := m.ctrl.Cycle()
		m.reg.ClearFocus()
		m.ensureCursorVisible()
		m.setStatus(mode.Title(), false)
		return redraw

	case key.Matches(msg, m.keys.FocusNext):
		if m.reg.Len() == 0 {
			return none
		}
		m.reg.FocusNext()
		m.followFocus()
		return redraw

	case key.Matches(msg, m.keys.FocusPrev):
		if m.reg.Len() == 0 {
			return none
		}
		m.reg.FocusPrevious()
		m.followFocus()
		return redraw

	case key.Matches(msg, m.keys.Activate):
		return m.activateFocused()

	case key.Matches(msg, m.keys.Cancel):
		if _, ok := m.reg.FocusIndex(); ok {
			m.reg.ClearFocus()
			return redraw
		}
		if m.status != "" {
			m.setStatus("", false)
			return redraw
		}
		return none

	case key.Matches(msg, m.keys.Reload):
		if m.loading {
			return none
		}
		m.loading = true
		m.setStatus("Reloading…", false)
		return Effect{Kind: EffectReload}
	}
	return none
}

func (m *Model) activateFocused() Effect {
	target, err := m.reg.ActivateFocused()
	switch {
	case err == nil:
		m.setStatus("Opening "+target+"…", false)
		return Effect{Kind: EffectActivate, Target: target}
	case errors.Is(err, domain.ErrEmptyRegistry):
		m.setStatus("Nothing focused (l/tab to focus a link)", false)
	case errors.Is(err, domain.ErrTargetUnavailable):
		m.setStatus("Mention target unavailable", true)
	default:
		m.log.Error().Err(err).Msg("activation failed")
		m.setStatus(err.Error(), true)
	}
	return redraw
}
