// Package corpus loads the local feed file into a domain.Corpus.
//
// The feed file is a YAML document whose fields follow org-social (nick, url,
// follow list, profile, posts with reply_to and poll votes). It is not an
// org-mode social.org file. Post bodies are markdown and are tokenized here,
// so the TUI only ever sees structured tokens.
//
// TODO: read org-mode social.org feeds directly (#+NICK headers, ** Posts
// with :PROPERTIES: drawers) next to the YAML format.
package corpus

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/CrestNiraj12/orgfeed/domain"
	"github.com/CrestNiraj12/orgfeed/infra/logging"
)

// ErrNoIdentity is returned when neither the feed file nor the overrides name
// the local user.
var ErrNoIdentity = errors.New("feed has no local identity (set nick and url)")

type feedFile struct {
	Nick        string       `yaml:"nick"`
	URL         string       `yaml:"url"`
	Title       string       `yaml:"title"`
	Description string       `yaml:"description"`
	Avatar      string       `yaml:"avatar"`
	Link        []string     `yaml:"link"`
	Contact     []string     `yaml:"contact"`
	Follow      []followItem `yaml:"follow"`
	Posts       []postItem   `yaml:"posts"`
}

type followItem struct {
	Nick string `yaml:"nick"`
	URL  string `yaml:"url"`
}

type postItem struct {
	ID         string   `yaml:"id"`
	Author     string   `yaml:"author"`
	Feed       string   `yaml:"feed"`
	Time       string   `yaml:"time"`
	ReplyTo    string   `yaml:"reply_to"`
	Lang       string   `yaml:"lang"`
	Tags       []string `yaml:"tags"`
	Mood       string   `yaml:"mood"`
	PollOption string   `yaml:"poll_option"`
	Body       string   `yaml:"body"`
}

// Filter narrows the loaded posts.
type Filter struct {
	Source    string // keep only posts from this feed URL
	Days      int    // keep only posts newer than this many days; 0 keeps all
	LocalOnly bool   // keep only the local user's posts
}

// FileService implements app.CorpusService over a YAML feed file.
type FileService struct {
	Path    string
	Nick    string // overrides the file's nick when set
	FeedURL string // overrides the file's url when set
	Filter  Filter
	Now     func() time.Time
}

// NewFileService creates a FileService reading path.
func NewFileService(path string) *FileService {
	return &FileService{Path: path, Now: time.Now}
}

// Load reads, tokenizes and filters the feed file.
func (s *FileService) Load(ctx context.Context) (domain.Corpus, error) {
	log := logging.Component("corpus")
	if err := ctx.Err(); err != nil {
		return domain.Corpus{}, err
	}
	data, err := os.ReadFile(s.Path)
	if err != nil {
		return domain.Corpus{}, fmt.Errorf("read feed %s: %w", s.Path, err)
	}
	var ff feedFile
	if err := yaml.Unmarshal(data, &ff); err != nil {
		return domain.Corpus{}, fmt.Errorf("parse feed %s: %w", s.Path, err)
	}

	c, err := s.build(ff)
	if err != nil {
		return domain.Corpus{}, err
	}
	log.Info().Str("path", s.Path).Int("posts", len(c.Posts)).Int("follows", len(c.Follows)).Msg("feed loaded")
	return c, nil
}

func (s *FileService) build(ff feedFile) (domain.Corpus, error) {
	log := logging.Component("corpus")
	local := domain.Author{Nick: strings.TrimSpace(ff.Nick), FeedURL: domain.NormalizeFeedURL(ff.URL)}
	if s.Nick != "" {
		local.Nick = s.Nick
	}
	if s.FeedURL != "" {
		local.FeedURL = domain.NormalizeFeedURL(s.FeedURL)
	}
	if local.Nick == "" && local.FeedURL == "" {
		return domain.Corpus{}, ErrNoIdentity
	}

	c := domain.Corpus{Local: local, Profile: domain.Profile{
		Title:       strings.TrimSpace(ff.Title),
		Description: strings.TrimSpace(ff.Description),
		Avatar:      strings.TrimSpace(ff.Avatar),
		Links:       nonEmpty(ff.Link),
		Contacts:    nonEmpty(ff.Contact),
	}}
	for _, f := range ff.Follow {
		u := domain.NormalizeFeedURL(f.URL)
		if u == "" {
			continue
		}
		c.Follows = append(c.Follows, domain.Author{Nick: strings.TrimSpace(f.Nick), FeedURL: u})
	}

	now := time.Now
	if s.Now != nil {
		now = s.Now
	}
	var cutoff time.Time
	if s.Filter.Days > 0 {
		cutoff = now().AddDate(0, 0, -s.Filter.Days)
	}
	source := domain.NormalizeFeedURL(s.Filter.Source)

	seen := make(map[string]struct{}, len(ff.Posts))
	for i, item := range ff.Posts {
		p, err := s.post(c, item)
		if err != nil {
			log.Warn().Err(err).Int("index", i).Msg("skipping post")
			continue
		}
		if _, dup := seen[p.ID]; dup {
			log.Warn().Str("id", p.ID).Msg("skipping duplicate post id")
			continue
		}
		seen[p.ID] = struct{}{}
		if source != "" && domain.NormalizeFeedURL(p.Author.FeedURL) != source {
			continue
		}
		if s.Filter.LocalOnly && !c.IsLocal(p.Author) {
			continue
		}
		if !cutoff.IsZero() && p.Time.Before(cutoff) {
			continue
		}
		c.Posts = append(c.Posts, p)
	}
	return c, nil
}

func (s *FileService) post(c domain.Corpus, item postItem) (domain.Post, error) {
	localID := strings.TrimSpace(item.ID)
	if localID == "" {
		return domain.Post{}, errors.New("post without id")
	}

	author := c.Local
	feed := domain.NormalizeFeedURL(item.Feed)
	nick := strings.TrimSpace(item.Author)
	switch {
	case feed != "":
		author = domain.Author{Nick: nick, FeedURL: feed}
		if author.Nick == "" {
			author.Nick, _ = c.NickFor(feed)
		}
	case nick != "" && !c.Local.Matches(nick):
		u, ok := c.ResolveFeed(nick)
		if !ok {
			return domain.Post{}, fmt.Errorf("post %s: unknown author %q", localID, nick)
		}
		author = domain.Author{Nick: nick, FeedURL: u}
	}

	ts, err := parseTime(item.Time, localID)
	if err != nil {
		return domain.Post{}, fmt.Errorf("post %s: %w", localID, err)
	}

	body := Tokenize(item.Body)
	return domain.Post{
		ID:         author.FeedURL + "#" + localID,
		Author:     author,
		Time:       ts,
		ParentID:   parentID(item.ReplyTo, c.Local.FeedURL),
		Tokens:     body.Tokens,
		Blocks:     body.Blocks,
		Mentions:   body.Mentions,
		Tags:       sortedTags(item.Tags),
		Lang:       strings.TrimSpace(item.Lang),
		Mood:       strings.TrimSpace(item.Mood),
		PollOption: strings.TrimSpace(item.PollOption),
	}, nil
}

// parentID canonicalizes a reply_to reference. A bare local ID refers to a
// post in the local feed.
func parentID(ref, localFeed string) string {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return ""
	}
	feed, id := domain.SplitPostID(ref)
	if feed == "" {
		feed = localFeed
	}
	return domain.NormalizeFeedURL(feed) + "#" + id
}

var timeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05-0700",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// parseTime reads the explicit time, falling back to the post ID, which is a
// timestamp in org-social feeds.
func parseTime(value, id string) (time.Time, error) {
	for _, candidate := range []string{value, id} {
		candidate = strings.TrimSpace(candidate)
		if candidate == "" {
			continue
		}
		for _, layout := range timeLayouts {
			if t, err := time.Parse(layout, candidate); err == nil {
				return t, nil
			}
		}
	}
	return time.Time{}, fmt.Errorf("no parseable time in %q or id %q", value, id)
}

func sortedTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		t = strings.TrimPrefix(strings.TrimSpace(t), "#")
		if t != "" {
			out = append(out, t)
		}
	}
	sort.Strings(out)
	if len(out) == 0 {
		return nil
	}
	return out
}

func nonEmpty(in []string) []string {
	var out []string
	for _, v := range in {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
