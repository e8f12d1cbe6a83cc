package feed

import (
	"context"
	"io"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/muesli/termenv"

	"github.com/CrestNiraj12/orgfeed/domain"
	"github.com/CrestNiraj12/orgfeed/tui/arrange"
	"github.com/CrestNiraj12/orgfeed/tui/content"
)

const (
	aliceFeed = "https://alice.example/social.org"
	bobFeed   = "https://bob.example/social.org"
	carolFeed = "https://carol.example/social.org"
)

var baseTime = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

type stubCorpus struct {
	corpus domain.Corpus
	err    error
	calls  int
}

func (s *stubCorpus) Load(context.Context) (domain.Corpus, error) {
	s.calls++
	return s.corpus, s.err
}

type stubOpener struct {
	opened []string
	err    error
}

func (s *stubOpener) Open(target string) (string, error) {
	s.opened = append(s.opened, target)
	if s.err != nil {
		return "", s.err
	}
	return "Opened " + target, nil
}

func testPainter() *content.Painter {
	return content.NewPainter(io.Discard, termenv.Ascii, content.DefaultTheme())
}

func newTestModel(svc *stubCorpus, op *stubOpener) Model {
	return New(svc, op, Options{Painter: testPainter()})
}

func makePost(feedURL, nick, localID string, minutes int, tokens ...domain.Token) domain.Post {
	if len(tokens) == 0 {
		tokens = []domain.Token{domain.Text("post " + localID)}
	}
	var mentions []string
	for _, t := range tokens {
		if t.Kind == domain.TokenMention {
			mentions = append(mentions, t.Nick)
		}
	}
	return domain.Post{
		ID:       feedURL + "#" + localID,
		Author:   domain.Author{Nick: nick, FeedURL: feedURL},
		Time:     baseTime.Add(time.Duration(minutes) * time.Minute),
		Tokens:   tokens,
		Mentions: mentions,
	}
}

func replyTo(p domain.Post, parentID string) domain.Post {
	p.ParentID = parentID
	return p
}

// fixtureCorpus is alice's view of a small conversation:
//
//	bob#1      mentions alice, carries a link       (notification: mention)
//	alice#1    own post
//	bob#2      reply to alice#1                     (notification: reply)
//	carol#1    reply to bob#1, no activatables
func fixtureCorpus() domain.Corpus {
	return domain.Corpus{
		Local:   domain.Author{Nick: "alice", FeedURL: aliceFeed},
		Follows: []domain.Author{{Nick: "bob", FeedURL: bobFeed}},
		Posts: []domain.Post{
			makePost(bobFeed, "bob", "1", 0,
				domain.Text("hi "),
				domain.Mention("alice", aliceFeed),
				domain.Text(" see "),
				domain.Link("https://go.dev", "go.dev"),
			),
			makePost(aliceFeed, "alice", "1", 1),
			replyTo(makePost(bobFeed, "bob", "2", 2,
				domain.Text("agreed, "),
				domain.Link("https://example.com/a", "a"),
				domain.Text(" and "),
				domain.Link("https://example.com/b", "b"),
			), aliceFeed+"#1"),
			replyTo(makePost(carolFeed, "carol", "1", 3), bobFeed+"#1"),
		},
	}
}

// loadedModel returns a sized model with c applied as if a load had finished.
func loadedModel(t *testing.T, c domain.Corpus) Model {
	t.Helper()
	m := newTestModel(&stubCorpus{corpus: c}, &stubOpener{})
	m, _ = m.Update(tea.WindowSizeMsg{Width: 120, Height: 30})
	m, _ = m.Update(CorpusLoadedMsg{Corpus: c, Snapshot: arrange.Build(c, arrange.Options{})})
	if m.Loading() {
		t.Fatalf("expected loading=false after CorpusLoadedMsg")
	}
	return m
}

func keyRune(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func press(m Model, msgs ...tea.KeyMsg) Model {
	for _, msg := range msgs {
		m, _ = m.Update(msg)
	}
	return m
}

func selectedID(t *testing.T, m Model) string {
	t.Helper()
	p, ok := m.SelectedPost()
	if !ok {
		t.Fatalf("expected a selected post in mode %s", m.Mode())
	}
	return p.ID
}

// collectMsgs runs cmd and every command batched inside it.
func collectMsgs(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, collectMsgs(c)...)
		}
		return out
	}
	return []tea.Msg{msg}
}
