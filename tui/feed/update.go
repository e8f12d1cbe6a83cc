package feed

import (
	"fmt"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/CrestNiraj12/orgfeed/domain"
	"github.com/CrestNiraj12/orgfeed/tui/arrange"
)

// Update handles messages for the feed view. Every handled message ends with
// a fresh frame, so View never renders.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ensureCursorVisible()

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		m.spinner, cmd = m.spinner.Update(msg)

	case CorpusLoadedMsg:
		m.applyCorpus(msg.Corpus, msg.Snapshot)

	case CorpusErrorMsg:
		m.loading = false
		m.err = msg.Err
		m.log.Error().Err(msg.Err).Msg("feed load failed")
		m.setStatus("Load failed: "+msg.Err.Error(), true)

	case ActivatedMsg:
		if msg.Err != nil {
			m.log.Warn().Str("target", msg.Target).Err(msg.Err).Msg("activation failed")
			m.setStatus(msg.Err.Error(), true)
		} else {
			m.setStatus(msg.Status, false)
		}

	case tea.KeyMsg:
		before := m.ctrl.Mode()
		eff := m.HandleKey(msg)
		var cmds []tea.Cmd
		switch eff.Kind {
		case EffectActivate:
			cmds = append(cmds, m.openTarget(eff.Target))
		case EffectReload:
			cmds = append(cmds, m.loadCorpus(), m.spinner.Tick)
		}
		if m.ctrl.Mode() != before {
			cmds = append(cmds, emitModeChanged(m.ctrl.Mode()))
		}
		cmd = tea.Batch(cmds...)

	default:
		return m, nil
	}

	m.render()
	return m, cmd
}

// applyCorpus swaps in a new corpus and its arrangements, keeping each mode
// on the post it had selected when that post still exists.
func (m *Model) applyCorpus(c domain.Corpus, snap arrange.Snapshot) {
	var keep [modeCount]string
	for mode := ViewMode(0); mode < modeCount; mode++ {
		if u, ok := m.selectedUnit(mode); ok {
			keep[mode] = m.corpus.Posts[u.Index].ID
		}
	}

	m.corpus, m.snap = c, snap
	m.loading = false
	m.err = nil

	byID := make(map[string]int, len(c.Posts))
	for i, p := range c.Posts {
		if _, dup := byID[p.ID]; !dup {
			byID[p.ID] = i
		}
	}
	for mode := ViewMode(0); mode < modeCount; mode++ {
		cur := m.ctrl.cursorPtr(mode)
		units := m.units(mode)
		row := -1
		if idx, ok := byID[keep[mode]]; ok && keep[mode] != "" {
			row = arrange.Find(units, idx)
		}
		if row < 0 {
			row = clamp(cur.Selected, 0, len(units)-1)
			cur.Scroll = 0
		}
		cur.Selected = row
	}
	m.reg.ClearFocus()
	m.ensureCursorVisible()

	if len(snap.Demoted) > 0 {
		m.log.Warn().Int("count", len(snap.Demoted)).Strs("ids", snap.Demoted).Msg("posts shown at top level")
	}
	m.log.Info().
		Int("posts", len(c.Posts)).
		Int("notifications", len(snap.Notifications)).
		Msg("corpus applied")
	m.setStatus(fmt.Sprintf("Loaded %d posts, %d notifications", len(c.Posts), len(snap.Notifications)), false)
}
