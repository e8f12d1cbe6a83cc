package domain

import "strings"

// Corpus is the full set of posts visible to the local user, as handed over by
// the feed loader.
type Corpus struct {
	Posts   []Post
	Local   Author
	Profile Profile
	Follows []Author
}

// Profile is the descriptive part of the local feed's header.
type Profile struct {
	Title       string
	Description string
	Avatar      string
	Links       []string
	Contacts    []string
}

// ResolveFeed maps a participant identity (nick or feed URL) to its canonical
// feed URL. It looks at the follow list, the local user and every post author.
func (c Corpus) ResolveFeed(identity string) (string, bool) {
	identity = strings.TrimSpace(identity)
	if identity == "" {
		return "", false
	}
	if strings.Contains(identity, "://") {
		return NormalizeFeedURL(identity), true
	}
	nick := strings.TrimPrefix(identity, "@")
	for _, f := range c.Follows {
		if f.FeedURL != "" && strings.EqualFold(f.Nick, nick) {
			return NormalizeFeedURL(f.FeedURL), true
		}
	}
	if c.Local.FeedURL != "" && strings.EqualFold(c.Local.Nick, nick) {
		return NormalizeFeedURL(c.Local.FeedURL), true
	}
	for _, p := range c.Posts {
		if p.Author.FeedURL != "" && strings.EqualFold(p.Author.Nick, nick) {
			return NormalizeFeedURL(p.Author.FeedURL), true
		}
	}
	return "", false
}

// NickFor returns the nick known for a feed URL, if any.
func (c Corpus) NickFor(feedURL string) (string, bool) {
	feedURL = NormalizeFeedURL(feedURL)
	if feedURL == "" {
		return "", false
	}
	if NormalizeFeedURL(c.Local.FeedURL) == feedURL && c.Local.Nick != "" {
		return c.Local.Nick, true
	}
	for _, f := range c.Follows {
		if NormalizeFeedURL(f.FeedURL) == feedURL && f.Nick != "" {
			return f.Nick, true
		}
	}
	return "", false
}

// IsLocal reports whether a is the local user. Feed URLs decide when both are
// known; otherwise nicks are compared.
func (c Corpus) IsLocal(a Author) bool {
	if c.Local.FeedURL != "" && a.FeedURL != "" {
		return NormalizeFeedURL(c.Local.FeedURL) == NormalizeFeedURL(a.FeedURL)
	}
	return c.Local.Nick != "" && strings.EqualFold(c.Local.Nick, a.Nick)
}
