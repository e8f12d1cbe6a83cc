package main

import (
	"fmt"
	"io"
	"os"
	"runtime/debug"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"

	"github.com/CrestNiraj12/orgfeed/infra/config"
	"github.com/CrestNiraj12/orgfeed/infra/corpus"
	"github.com/CrestNiraj12/orgfeed/infra/logging"
	"github.com/CrestNiraj12/orgfeed/infra/opener"
	"github.com/CrestNiraj12/orgfeed/tui"
	"github.com/CrestNiraj12/orgfeed/tui/arrange"
	"github.com/CrestNiraj12/orgfeed/tui/content"
	"github.com/CrestNiraj12/orgfeed/tui/feed"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// flagKeys maps CLI flags to the config keys they override. Flags a command
// does not define are skipped when binding.
var flagKeys = map[string]string{
	"feed":         "feed",
	"nick":         "nick",
	"feed-url":     "feed_url",
	"source":       "filter.source",
	"days":         "filter.days",
	"user-only":    "filter.local_only",
	"log-level":    "log.level",
	"thread-order": "thread.child_order",
	"color":        "color",
	"count":        "feed_count",
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "orgfeed",
		Short: "Read a social feed in the terminal",
		Long: `orgfeed shows the posts of a local feed file (YAML with markdown bodies,
following org-social's fields) in three views: a chronological list, reply
threads, and the notifications addressed to you. Links and mentions inside a
post can be focused and opened from the keyboard.

The feed, profile, following and stats subcommands print to stdout instead.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			return run(cfg)
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringP("config", "c", "", "config file (default ~/.config/orgfeed/config.yaml)")
	flags.StringP("feed", "f", "", "feed file to read")
	flags.String("nick", "", "your nick, overrides the feed file")
	flags.String("feed-url", "", "your canonical feed URL, overrides the feed file")
	flags.String("source", "", "only show posts from this feed URL")
	flags.Int("days", 0, "only show posts from the last N days")
	flags.Bool("user-only", false, "only show your own posts")
	flags.String("log-level", "", "log level (trace, debug, info, warn, error)")
	flags.String("thread-order", "", "reply order in threads (chronological, arrival)")
	flags.String("color", "", "color output (auto, always, never)")

	cmd.AddCommand(
		newFeedCmd(),
		newProfileCmd(),
		newFollowingCmd(),
		newStatsCmd(),
		newVersionCmd(),
	)
	return cmd
}

// loadConfig resolves the configuration for cmd, letting the flags it was
// invoked with override file and env values.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	loader := config.NewLoader()
	if path, _ := cmd.Flags().GetString("config"); path != "" {
		loader.SetConfigFile(path)
	}
	for name, key := range flagKeys {
		if err := loader.BindFlag(key, cmd.Flags().Lookup(name)); err != nil {
			return config.Config{}, fmt.Errorf("bind --%s: %w", name, err)
		}
	}
	return loader.Load()
}

// newFileService builds the corpus service the config describes.
func newFileService(cfg config.Config) *corpus.FileService {
	svc := corpus.NewFileService(cfg.FeedPath)
	svc.Nick = cfg.Nick
	svc.FeedURL = cfg.FeedURL
	svc.Filter = corpus.Filter{
		Source:    cfg.Filter.Source,
		Days:      cfg.Filter.Days,
		LocalOnly: cfg.Filter.LocalOnly,
	}
	return svc
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			writeVersion(cmd.OutOrStdout())
		},
	}
}

func writeVersion(w io.Writer) {
	v, c, d := resolvedRuntimeVersionInfo(version, commit, date)
	fmt.Fprintf(w, "orgfeed %s\ncommit: %s\nbuilt: %s\n", v, c, d)
}

func run(cfg config.Config) error {
	closer, err := initLogging(cfg)
	if err != nil {
		return err
	}
	defer closer.Close()
	log := logging.Component("main")

	svc := newFileService(cfg)

	st, err := config.LoadUIState(cfg.UIStatePath)
	if err != nil {
		log.Warn().Err(err).Str("path", cfg.UIStatePath).Msg("ignoring ui state")
	}
	mode, _ := feed.ParseViewMode(st.ViewMode)

	log.Info().
		Str("feed", cfg.FeedPath).
		Str("mode", mode.String()).
		Str("child_order", cfg.Thread.ChildOrder).
		Msg("starting")

	root := tui.NewApp(tui.Deps{
		Corpus:      svc,
		Opener:      opener.NewBrowser(),
		StatePath:   cfg.UIStatePath,
		InitialMode: mode,
		Arrange:     arrange.Options{ChildOrder: arrange.ParseChildOrder(cfg.Thread.ChildOrder)},
		Painter:     content.NewPainter(os.Stdout, colorProfile(cfg.Color), content.DefaultTheme()),
	})

	p := tea.NewProgram(root, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("orgfeed: %w", err)
	}
	return nil
}

// colorProfile maps the color setting to a termenv profile.
func colorProfile(setting string) termenv.Profile {
	switch strings.ToLower(strings.TrimSpace(setting)) {
	case "never":
		return termenv.Ascii
	case "always":
		return termenv.TrueColor
	default:
		return termenv.EnvColorProfile()
	}
}

func resolveVersionInfo(v, c, d, moduleVersion string, settings map[string]string) (string, string, string) {
	if v == "dev" {
		mv := strings.TrimSpace(moduleVersion)
		if mv != "" && mv != "(devel)" {
			v = mv
		}
	}
	if c == "none" {
		rev := strings.TrimSpace(settings["vcs.revision"])
		if rev != "" {
			if len(rev) > 12 {
				rev = rev[:12]
			}
			c = rev
		}
	}
	if d == "unknown" {
		t := strings.TrimSpace(settings["vcs.time"])
		if t != "" {
			d = t
		}
	}
	return v, c, d
}

func buildSettingsMap(in []debug.BuildSetting) map[string]string {
	out := make(map[string]string, len(in))
	for _, s := range in {
		out[s.Key] = s.Value
	}
	return out
}

func resolvedRuntimeVersionInfo(v, c, d string) (string, string, string) {
	info, ok := debug.ReadBuildInfo()
	if !ok || info == nil {
		return v, c, d
	}
	return resolveVersionInfo(v, c, d, info.Main.Version, buildSettingsMap(info.Settings))
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
