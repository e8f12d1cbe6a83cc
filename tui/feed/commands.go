package feed

import (
	"context"
	"errors"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/CrestNiraj12/orgfeed/domain"
	"github.com/CrestNiraj12/orgfeed/tui/arrange"
)

const loadTimeout = 30 * time.Second

// loadCorpus reads the corpus and builds every arrangement off the update
// loop; the result is applied in a single assignment by Update.
func (m Model) loadCorpus() tea.Cmd {
	svc := m.corpusSvc
	opts := m.opts
	return func() tea.Msg {
		if svc == nil {
			return CorpusErrorMsg{Err: errors.New("no feed source configured")}
		}
		ctx, cancel := context.WithTimeout(context.Background(), loadTimeout)
		defer cancel()
		c, err := svc.Load(ctx)
		if err != nil {
			return CorpusErrorMsg{Err: err}
		}
		return CorpusLoadedMsg{Corpus: c, Snapshot: arrange.Build(c, opts)}
	}
}

// openTarget hands an activated target to the opener.
func (m Model) openTarget(target string) tea.Cmd {
	opener := m.opener
	return func() tea.Msg {
		if opener == nil {
			return ActivatedMsg{Target: target, Err: fmt.Errorf("open %s: %w", target, domain.ErrTargetUnavailable)}
		}
		status, err := opener.Open(target)
		return ActivatedMsg{Target: target, Status: status, Err: err}
	}
}

func emitModeChanged(mode ViewMode) tea.Cmd {
	return func() tea.Msg {
		return ModeChangedMsg{Mode: mode}
	}
}
