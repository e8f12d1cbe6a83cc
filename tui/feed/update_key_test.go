package feed

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/CrestNiraj12/orgfeed/domain"
)

func TestHandleKey_MoveSelectionClamps(t *testing.T) {
	m := loadedModel(t, fixtureCorpus())

	if eff := m.HandleKey(keyRune('k')); eff.Kind != EffectNone {
		t.Fatalf("moving up from the first row should be a no-op, got %v", eff.Kind)
	}
	m = press(m, keyRune('j'), keyRune('j'), keyRune('j'), keyRune('j'), keyRune('j'))
	if got := m.Cursor(ModeList).Selected; got != 3 {
		t.Fatalf("selection should clamp at last row, got %d", got)
	}
	m = press(m, keyRune('g'))
	if got := m.Cursor(ModeList).Selected; got != 0 {
		t.Fatalf("g should select first row, got %d", got)
	}
	m = press(m, keyRune('G'))
	if got := m.Cursor(ModeList).Selected; got != 3 {
		t.Fatalf("G should select last row, got %d", got)
	}
}

func TestHandleKey_CycleViewIsClosedAndKeepsCursors(t *testing.T) {
	m := loadedModel(t, fixtureCorpus())
	m = press(m, keyRune('j'), keyRune('j'))
	listID := selectedID(t, m)

	m = press(m, keyRune('t'))
	if m.Mode() != ModeThreaded {
		t.Fatalf("expected threaded mode, got %s", m.Mode())
	}
	m = press(m, keyRune('j'))
	threadedID := selectedID(t, m)

	m = press(m, keyRune('t'), keyRune('t'))
	if m.Mode() != ModeList {
		t.Fatalf("three cycles should return to list, got %s", m.Mode())
	}
	if got := selectedID(t, m); got != listID {
		t.Fatalf("list selection changed across cycle: got %s want %s", got, listID)
	}
	m = press(m, keyRune('t'))
	if got := selectedID(t, m); got != threadedID {
		t.Fatalf("threaded selection changed across cycle: got %s want %s", got, threadedID)
	}
}

func TestUpdate_CycleEmitsModeChanged(t *testing.T) {
	m := loadedModel(t, fixtureCorpus())
	_, cmd := m.Update(keyRune('t'))

	var found bool
	for _, msg := range collectMsgs(cmd) {
		if mc, ok := msg.(ModeChangedMsg); ok {
			found = true
			if mc.Mode != ModeThreaded {
				t.Fatalf("expected ModeChangedMsg for threaded, got %s", mc.Mode)
			}
		}
	}
	if !found {
		t.Fatalf("expected ModeChangedMsg after cycling")
	}

	_, cmd = m.Update(keyRune('j'))
	for _, msg := range collectMsgs(cmd) {
		if _, ok := msg.(ModeChangedMsg); ok {
			t.Fatalf("moving the selection must not emit ModeChangedMsg")
		}
	}
}

func TestHandleKey_FocusOnEmptyRegistryIsNoop(t *testing.T) {
	m := loadedModel(t, fixtureCorpus())
	// newest post is carol#1, which has no links or mentions
	if m.Registry().Len() != 0 {
		t.Fatalf("expected empty registry, got %d", m.Registry().Len())
	}
	if eff := m.HandleKey(tea.KeyMsg{Type: tea.KeyTab}); eff.Kind != EffectNone {
		t.Fatalf("focus next on empty registry should be a no-op, got %v", eff.Kind)
	}
	if eff := m.HandleKey(tea.KeyMsg{Type: tea.KeyShiftTab}); eff.Kind != EffectNone {
		t.Fatalf("focus previous on empty registry should be a no-op, got %v", eff.Kind)
	}
	if _, ok := m.Registry().FocusIndex(); ok {
		t.Fatalf("no focus expected on empty registry")
	}

	eff := m.HandleKey(tea.KeyMsg{Type: tea.KeyEnter})
	if eff.Kind == EffectActivate {
		t.Fatalf("activation with nothing focused must not produce a target")
	}
	if !strings.Contains(m.Status(), "Nothing focused") {
		t.Fatalf("expected nothing-focused status, got %q", m.Status())
	}
}

func TestHandleKey_FocusWrapsAndActivates(t *testing.T) {
	m := loadedModel(t, fixtureCorpus())
	m = press(m, keyRune('j')) // bob#2: two links
	if n := m.Registry().Len(); n != 2 {
		t.Fatalf("expected 2 activatables, got %d", n)
	}

	m = press(m, keyRune('l'))
	if idx, ok := m.Registry().FocusIndex(); !ok || idx != 0 {
		t.Fatalf("first focus should land on 0, got %d,%v", idx, ok)
	}
	m = press(m, keyRune('l'), keyRune('l'))
	if idx, _ := m.Registry().FocusIndex(); idx != 0 {
		t.Fatalf("focus should wrap to 0, got %d", idx)
	}
	m = press(m, keyRune('L'))
	if idx, _ := m.Registry().FocusIndex(); idx != 1 {
		t.Fatalf("focus previous should wrap to last, got %d", idx)
	}

	eff := m.HandleKey(tea.KeyMsg{Type: tea.KeyEnter})
	if eff.Kind != EffectActivate || eff.Target != "https://example.com/b" {
		t.Fatalf("unexpected effect: %+v", eff)
	}
}

func TestUpdate_ActivateOpensTarget(t *testing.T) {
	op := &stubOpener{}
	c := fixtureCorpus()
	m := New(&stubCorpus{corpus: c}, op, Options{Painter: testPainter()})
	m, _ = m.Update(tea.WindowSizeMsg{Width: 120, Height: 30})
	m, _ = m.Update(collectMsgs(m.loadCorpus())[0])
	m = press(m, keyRune('j'), keyRune('l'))

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	msgs := collectMsgs(cmd)
	if len(msgs) != 1 {
		t.Fatalf("expected one activation message, got %d", len(msgs))
	}
	act, ok := msgs[0].(ActivatedMsg)
	if !ok {
		t.Fatalf("expected ActivatedMsg, got %T", msgs[0])
	}
	if len(op.opened) != 1 || op.opened[0] != "https://example.com/a" {
		t.Fatalf("opener got %v", op.opened)
	}
	m, _ = m.Update(act)
	if m.Status() != "Opened https://example.com/a" {
		t.Fatalf("unexpected status %q", m.Status())
	}
}

func TestHandleKey_UnresolvedMentionReportsUnavailable(t *testing.T) {
	c := domain.Corpus{
		Local: domain.Author{Nick: "alice", FeedURL: aliceFeed},
		Posts: []domain.Post{
			makePost(bobFeed, "bob", "1", 0, domain.Text("ask "), domain.Mention("dave", "")),
		},
	}
	m := loadedModel(t, c)
	if n := m.Registry().Len(); n != 1 {
		t.Fatalf("unresolved mention should still register, got %d", n)
	}
	m = press(m, keyRune('l'))

	eff := m.HandleKey(tea.KeyMsg{Type: tea.KeyEnter})
	if eff.Kind == EffectActivate {
		t.Fatalf("unresolved mention must not activate, got %+v", eff)
	}
	if !strings.Contains(m.Status(), "unavailable") {
		t.Fatalf("expected unavailable status, got %q", m.Status())
	}
}

func TestHandleKey_SelectionChangeClearsFocus(t *testing.T) {
	m := loadedModel(t, fixtureCorpus())
	m = press(m, keyRune('j'), keyRune('l'))
	if _, ok := m.Registry().FocusIndex(); !ok {
		t.Fatalf("expected focus after l")
	}
	m = press(m, keyRune('j'))
	if _, ok := m.Registry().FocusIndex(); ok {
		t.Fatalf("moving the selection should clear focus")
	}

	m = press(m, keyRune('k'), keyRune('l'), keyRune('t'))
	if _, ok := m.Registry().FocusIndex(); ok {
		t.Fatalf("cycling the view should clear focus")
	}
}

func TestHandleKey_EscClearsFocusThenStatus(t *testing.T) {
	m := loadedModel(t, fixtureCorpus())
	m = press(m, keyRune('j'), keyRune('l'))

	m = press(m, tea.KeyMsg{Type: tea.KeyEsc})
	if _, ok := m.Registry().FocusIndex(); ok {
		t.Fatalf("esc should clear focus first")
	}
	if m.Status() == "" {
		t.Fatalf("first esc should keep the status line")
	}
	m = press(m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.Status() != "" {
		t.Fatalf("second esc should clear status, got %q", m.Status())
	}
	if eff := m.HandleKey(tea.KeyMsg{Type: tea.KeyEsc}); eff.Kind != EffectNone {
		t.Fatalf("esc with nothing to clear should be a no-op, got %v", eff.Kind)
	}
}

func TestHandleKey_HelpDialogSwallowsKeys(t *testing.T) {
	m := loadedModel(t, fixtureCorpus())
	m = press(m, keyRune('?'))
	if !m.ShowingHelp() {
		t.Fatalf("expected help dialog to open")
	}
	m = press(m, keyRune('j'), keyRune('t'))
	if m.Cursor(ModeList).Selected != 0 || m.Mode() != ModeList {
		t.Fatalf("keys behind the help dialog must be ignored")
	}
	m = press(m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.ShowingHelp() {
		t.Fatalf("esc should close the help dialog")
	}
}

func TestHandleKey_ReloadOnlyWhenIdle(t *testing.T) {
	m := loadedModel(t, fixtureCorpus())
	if eff := m.HandleKey(keyRune('r')); eff.Kind != EffectReload {
		t.Fatalf("expected reload effect, got %v", eff.Kind)
	}
	if !m.Loading() {
		t.Fatalf("reload should mark the model as loading")
	}
	if eff := m.HandleKey(keyRune('r')); eff.Kind != EffectNone {
		t.Fatalf("reload while loading should be ignored, got %v", eff.Kind)
	}
}

func TestHandleKey_ScrollContentClamps(t *testing.T) {
	words := strings.Repeat("lorem ipsum dolor sit amet ", 200)
	c := domain.Corpus{
		Local: domain.Author{Nick: "alice", FeedURL: aliceFeed},
		Posts: []domain.Post{makePost(bobFeed, "bob", "1", 0, domain.Text(words))},
	}
	m := loadedModel(t, c)
	if m.contentLines <= m.contentHeight {
		t.Fatalf("fixture should overflow the detail pane: %d lines in %d rows", m.contentLines, m.contentHeight)
	}

	m = press(m, keyRune('d'))
	if m.Cursor(ModeList).Scroll == 0 {
		t.Fatalf("d should scroll content")
	}
	for range 100 {
		m = press(m, keyRune('d'))
	}
	if got, want := m.Cursor(ModeList).Scroll, m.contentLines-m.contentHeight; got != want {
		t.Fatalf("scroll should clamp at %d, got %d", want, got)
	}
	for range 100 {
		m = press(m, keyRune('u'))
	}
	if got := m.Cursor(ModeList).Scroll; got != 0 {
		t.Fatalf("scroll should clamp at 0, got %d", got)
	}
}
