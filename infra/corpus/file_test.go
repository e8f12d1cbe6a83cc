package corpus

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

const sampleFeed = `
nick: alice
url: https://alice.example/social.org
follow:
  - nick: bob
    url: https://bob.example/social.org/
posts:
  - id: "2025-01-01T10:00:00+00:00"
    body: "hello **world**"
    tags: ["#go", "tui"]
  - id: "2025-01-02T10:00:00+00:00"
    author: bob
    reply_to: "2025-01-01T10:00:00+00:00"
    body: "hi [@alice](org-social:https://alice.example/social.org)"
  - id: "x1"
    feed: https://carol.example/social.org
    time: "2025-01-03T10:00:00Z"
    mood: happy
    body: "from carol"
  - id: "no-time"
    body: "broken"
  - id: "2025-01-01T10:00:00+00:00"
    body: "duplicate"
`

func writeFeed(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "social.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestFileServiceLoad(t *testing.T) {
	svc := NewFileService(writeFeed(t, sampleFeed))
	c, err := svc.Load(context.Background())
	require.NoError(t, err)

	require.Equal(t, "alice", c.Local.Nick)
	require.Equal(t, "https://alice.example/social.org", c.Local.FeedURL)
	require.Len(t, c.Follows, 1)
	require.Equal(t, "https://bob.example/social.org", c.Follows[0].FeedURL)

	require.Len(t, c.Posts, 3, "post without time and duplicate id are skipped")

	first := c.Posts[0]
	require.Equal(t, "https://alice.example/social.org#2025-01-01T10:00:00+00:00", first.ID)
	require.Equal(t, []string{"go", "tui"}, first.Tags)
	require.Equal(t, 2025, first.Time.Year())

	reply := c.Posts[1]
	require.Equal(t, "https://bob.example/social.org", reply.Author.FeedURL)
	require.Equal(t, first.ID, reply.ParentID)
	require.Equal(t, []string{"https://alice.example/social.org"}, reply.Mentions)

	carol := c.Posts[2]
	require.Equal(t, "https://carol.example/social.org#x1", carol.ID)
	require.Equal(t, "happy", carol.Mood)
	require.Equal(t, "", carol.Author.Nick)
}

func TestFileServiceFilters(t *testing.T) {
	svc := NewFileService(writeFeed(t, sampleFeed))
	svc.Filter = Filter{Source: "https://bob.example/social.org"}
	c, err := svc.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, c.Posts, 1)
	require.Equal(t, "https://bob.example/social.org", c.Posts[0].Author.FeedURL)

	svc = NewFileService(svc.Path)
	svc.Filter = Filter{LocalOnly: true}
	c, err = svc.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, c.Posts, 1)
	require.Equal(t, "https://alice.example/social.org", c.Posts[0].Author.FeedURL)

	svc = NewFileService(svc.Path)
	svc.Now = func() time.Time { return time.Date(2025, 1, 4, 0, 0, 0, 0, time.UTC) }
	svc.Filter = Filter{Days: 2}
	c, err = svc.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, c.Posts, 2)
}

func TestFileServiceOverridesIdentity(t *testing.T) {
	svc := NewFileService(writeFeed(t, "posts: []\n"))
	_, err := svc.Load(context.Background())
	require.ErrorIs(t, err, ErrNoIdentity)

	svc.Nick = "me"
	svc.FeedURL = "https://me.example/social.org/"
	c, err := svc.Load(context.Background())
	require.NoError(t, err)
	require.Equal(t, "https://me.example/social.org", c.Local.FeedURL)
}

func TestFileServiceErrors(t *testing.T) {
	_, err := NewFileService(filepath.Join(t.TempDir(), "missing.yaml")).Load(context.Background())
	require.ErrorIs(t, err, os.ErrNotExist)

	_, err = NewFileService(writeFeed(t, "posts: [")).Load(context.Background())
	require.Error(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = NewFileService(writeFeed(t, sampleFeed)).Load(ctx)
	require.ErrorIs(t, err, context.Canceled)
}

func TestFileServiceProfileAndPollVote(t *testing.T) {
	feed := `
nick: alice
url: https://alice.example/social.org
title: Alice's notes
description: "  terminal things  "
avatar: https://alice.example/me.png
link: ["https://alice.example", " "]
contact: ["mailto:alice@example.com"]
posts:
  - id: "2025-03-01T09:00:00+00:00"
    reply_to: "https://bob.example/social.org#poll1"
    poll_option: " vim "
    body: "voted"
`
	c, err := NewFileService(writeFeed(t, feed)).Load(context.Background())
	require.NoError(t, err)

	require.Equal(t, "Alice's notes", c.Profile.Title)
	require.Equal(t, "terminal things", c.Profile.Description)
	require.Equal(t, "https://alice.example/me.png", c.Profile.Avatar)
	require.Equal(t, []string{"https://alice.example"}, c.Profile.Links)
	require.Equal(t, []string{"mailto:alice@example.com"}, c.Profile.Contacts)

	require.Len(t, c.Posts, 1)
	require.Equal(t, "vim", c.Posts[0].PollOption)
	require.Equal(t, "https://bob.example/social.org#poll1", c.Posts[0].ParentID)
}
