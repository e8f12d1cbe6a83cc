package domain

import (
	"strings"
	"time"
)

// Author identifies a network participant by nick and canonical feed URL.
type Author struct {
	Nick    string
	FeedURL string
}

// Matches reports whether identity names this author, either by nick or by feed URL.
func (a Author) Matches(identity string) bool {
	identity = strings.TrimSpace(identity)
	if identity == "" {
		return false
	}
	if a.FeedURL != "" && NormalizeFeedURL(identity) == NormalizeFeedURL(a.FeedURL) {
		return true
	}
	return a.Nick != "" && strings.EqualFold(strings.TrimPrefix(identity, "@"), a.Nick)
}

// Post is a single authored, timestamped entry from a feed. Its body arrives
// already tokenized; nothing downstream re-parses the raw text.
type Post struct {
	ID         string // feedURL#localID
	Author     Author
	Time       time.Time
	ParentID   string // empty for top-level posts
	Tokens     []Token
	Blocks     []Block
	Mentions   []string // nicks or feed URLs referenced by mention tokens
	Tags       []string
	Lang       string
	Mood       string
	PollOption string // the option a poll vote picks; shown, never tallied
}

// IsReply reports whether the post carries a parent reference.
func (p Post) IsReply() bool {
	return strings.TrimSpace(p.ParentID) != ""
}

// LocalID returns the part of the ID after the feed URL.
func (p Post) LocalID() string {
	if i := strings.LastIndex(p.ID, "#"); i >= 0 {
		return p.ID[i+1:]
	}
	return p.ID
}

// PlainText joins the text carried by the post's tokens. Used for one-line previews.
func (p Post) PlainText() string {
	var b strings.Builder
	for _, t := range p.Tokens {
		switch t.Kind {
		case TokenText:
			b.WriteString(t.Text)
		case TokenLink:
			b.WriteString(t.DisplayText())
		case TokenMention:
			b.WriteString(t.DisplayText())
		case TokenBlockBoundary:
			b.WriteString(" ")
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// NormalizeFeedURL trims whitespace and trailing slashes so feed URLs compare equal.
func NormalizeFeedURL(u string) string {
	return strings.TrimRight(strings.TrimSpace(u), "/")
}

// SplitPostID splits a full post ID into feed URL and local ID.
func SplitPostID(id string) (feedURL, localID string) {
	i := strings.LastIndex(id, "#")
	if i < 0 {
		return "", id
	}
	return id[:i], id[i+1:]
}
