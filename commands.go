package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"

	"github.com/CrestNiraj12/orgfeed/domain"
	"github.com/CrestNiraj12/orgfeed/infra/config"
	"github.com/CrestNiraj12/orgfeed/infra/logging"
	"github.com/CrestNiraj12/orgfeed/tui/activatable"
	"github.com/CrestNiraj12/orgfeed/tui/arrange"
	"github.com/CrestNiraj12/orgfeed/tui/content"
)

// printWidth is the body width of posts printed outside the TUI.
const printWidth = 80

const printTimeLayout = "2006-01-02 15:04"

func newFeedCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "feed",
		Short: "Print the newest posts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withCorpus(cmd, func(p printer, cfg config.Config, c domain.Corpus) {
				p.feed(c, cfg.FeedCount)
			})
		},
	}
	cmd.Flags().IntP("count", "n", 0, "number of posts to print (default from config, 10)")
	return cmd
}

func newProfileCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "profile",
		Short: "Print the local profile",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withCorpus(cmd, func(p printer, _ config.Config, c domain.Corpus) {
				p.profile(c)
			})
		},
	}
}

func newFollowingCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "following",
		Short: "List followed feeds",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withCorpus(cmd, func(p printer, _ config.Config, c domain.Corpus) {
				p.following(c)
			})
		},
	}
}

func newStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Print feed statistics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withCorpus(cmd, func(p printer, _ config.Config, c domain.Corpus) {
				p.stats(c)
			})
		},
	}
}

// withCorpus loads config and the feed file, then hands both to show.
func withCorpus(cmd *cobra.Command, show func(printer, config.Config, domain.Corpus)) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	closer, err := initLogging(cfg)
	if err != nil {
		return err
	}
	defer closer.Close()

	c, err := newFileService(cfg).Load(cmd.Context())
	if err != nil {
		log := logging.Component("cli")
		log.Error().Err(err).Str("command", cmd.Name()).Msg("load failed")
		return err
	}
	show(newPrinter(cmd.OutOrStdout(), colorProfile(cfg.Color)), cfg, c)
	return nil
}

// printer writes the non-interactive command output.
type printer struct {
	w       io.Writer
	painter *content.Painter

	heading lipgloss.Style
	label   lipgloss.Style
	nick    lipgloss.Style
	link    lipgloss.Style
	meta    lipgloss.Style
	count   lipgloss.Style
	note    lipgloss.Style
}

func newPrinter(w io.Writer, profile termenv.Profile) printer {
	r := lipgloss.NewRenderer(w, termenv.WithProfile(profile))
	r.SetColorProfile(profile)
	return printer{
		w:       w,
		painter: content.NewPainter(w, profile, content.DefaultTheme()),
		heading: r.NewStyle().Bold(true).Foreground(lipgloss.Color("#8BD5CA")),
		label:   r.NewStyle().Bold(true).Foreground(lipgloss.Color("#A6DA95")),
		nick:    r.NewStyle().Bold(true).Foreground(lipgloss.Color("#7DC4E4")),
		link:    r.NewStyle().Underline(true).Foreground(lipgloss.Color("#8AADF4")),
		meta:    r.NewStyle().Foreground(lipgloss.Color("#6E738D")),
		count:   r.NewStyle().Bold(true).Foreground(lipgloss.Color("#EED49F")),
		note:    r.NewStyle().Foreground(lipgloss.Color("#EED49F")),
	}
}

func (p printer) line(parts ...string) {
	fmt.Fprintln(p.w, strings.Join(parts, " "))
}

func (p printer) feed(c domain.Corpus, count int) {
	units := arrange.BuildList(c.Posts)
	if count > 0 && len(units) > count {
		units = units[:count]
	}
	p.line(p.heading.Render("=== Feed ==="))
	p.line(p.meta.Render(fmt.Sprintf("Showing %d posts", len(units))))
	for i, u := range units {
		if i > 0 {
			p.line()
		}
		p.post(c, c.Posts[u.Index])
	}
}

func (p printer) post(c domain.Corpus, post domain.Post) {
	header := []string{p.meta.Render("---"), p.authorName(c, post.Author)}
	if post.Lang != "" {
		header = append(header, p.link.UnsetUnderline().Render("#"+post.Lang))
	}
	for _, tag := range post.Tags {
		header = append(header, p.link.UnsetUnderline().Render("#"+tag))
	}
	header = append(header, p.meta.Render("• "+post.Time.Local().Format(printTimeLayout)+" ---"))
	p.line(header...)

	if post.IsReply() {
		p.line(p.meta.Render("Reply to:"), replyTarget(c, post.ParentID))
	}
	if post.Mood != "" {
		p.line(p.meta.Render("Mood:"), post.Mood)
	}
	if post.PollOption != "" {
		p.line(p.meta.Render("Poll option:"), post.PollOption)
	}

	var reg activatable.Registry
	lines := content.Renderer{Width: printWidth, Resolver: c}.Render(post, &reg)
	for _, l := range p.painter.Paint(lines, &reg, printWidth) {
		fmt.Fprintln(p.w, l)
	}
}

func (p printer) authorName(c domain.Corpus, a domain.Author) string {
	name := a.Nick
	if name == "" {
		name, _ = c.NickFor(a.FeedURL)
	}
	if name == "" {
		name = a.FeedURL
	}
	return p.nick.Render(name)
}

// replyTarget shows a parent reference as nick#id when the feed is known.
func replyTarget(c domain.Corpus, parentID string) string {
	feed, id := domain.SplitPostID(parentID)
	if nick, ok := c.NickFor(feed); ok {
		return nick + "#" + id
	}
	return parentID
}

func (p printer) profile(c domain.Corpus) {
	pr := c.Profile
	p.line(p.heading.Render("=== Profile ==="))
	if pr.Title != "" {
		p.line(p.label.Render("Title:"), pr.Title)
	}
	p.line(p.label.Render("Nick:"), c.Local.Nick)
	if c.Local.FeedURL != "" {
		p.line(p.label.Render("Feed:"), p.link.Render(c.Local.FeedURL))
	}
	if pr.Description != "" {
		p.line(p.label.Render("Description:"), pr.Description)
	}
	if pr.Avatar != "" {
		p.line(p.label.Render("Avatar:"), p.link.Render(pr.Avatar))
	}
	p.list("Link:", "Links:", pr.Links, p.link)
	if n := len(c.Follows); n > 0 {
		p.line(p.label.Render("Following:"), p.count.Render(fmt.Sprint(n)), p.meta.Render(plural(n, "user", "users")))
		p.follows(c.Follows, "  ")
	}
	p.list("Contact:", "Contact:", pr.Contacts, p.note)
}

// list prints one value inline and several as a numbered block.
func (p printer) list(one, many string, values []string, style lipgloss.Style) {
	switch len(values) {
	case 0:
	case 1:
		p.line(p.label.Render(one), style.Render(values[0]))
	default:
		p.line(p.label.Render(many))
		for i, v := range values {
			p.line(" ", p.meta.Render(fmt.Sprintf("%d.", i+1)), style.Render(v))
		}
	}
}

func (p printer) follows(follows []domain.Author, indent string) {
	for i, f := range follows {
		fmt.Fprintf(p.w, "%s%s %s - %s\n", indent,
			p.meta.Render(fmt.Sprintf("%d.", i+1)), p.nick.Render(f.Nick), p.link.Render(f.FeedURL))
	}
}

func (p printer) following(c domain.Corpus) {
	p.line(p.heading.Render("=== Following ==="))
	if len(c.Follows) == 0 {
		p.line(p.note.Render("Not following anyone yet."))
		return
	}
	p.follows(c.Follows, "")
}

func (p printer) stats(c domain.Corpus) {
	own := 0
	for _, post := range c.Posts {
		if c.IsLocal(post.Author) {
			own++
		}
	}
	snap := arrange.Build(c, arrange.Options{})
	p.line(p.heading.Render("=== Statistics ==="))
	p.line(p.label.Render("User posts:"), p.count.Render(fmt.Sprint(own)))
	p.line(p.label.Render("Total posts:"), p.count.Render(fmt.Sprint(len(c.Posts))))
	p.line(p.label.Render("Following:"), p.count.Render(fmt.Sprintf("%d %s", len(c.Follows), plural(len(c.Follows), "user", "users"))))
	p.line(p.label.Render("Threads:"), p.count.Render(fmt.Sprint(countRoots(snap.Threaded))))
	p.line(p.label.Render("Notifications:"), p.count.Render(fmt.Sprint(len(snap.Notifications))))
}

func countRoots(units []arrange.Unit) int {
	n := 0
	for _, u := range units {
		if u.Depth == 0 {
			n++
		}
	}
	return n
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}

func initLogging(cfg config.Config) (io.Closer, error) {
	closer, err := logging.Init(logging.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		File:   cfg.Log.File,
	})
	if err != nil {
		return closer, fmt.Errorf("logging: %w", err)
	}
	return closer, nil
}
