// Package config loads orgfeed settings with viper.
//
// Precedence: defaults < config file < ORGFEED_* env vars < bound CLI flags.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Child ordering inside a thread.
const (
	ChildOrderChronological = "chronological"
	ChildOrderArrival       = "arrival"
)

// Config holds application-level configuration.
type Config struct {
	FeedPath    string // local feed file (YAML)
	Nick        string // local user's nick; falls back to the feed file
	FeedURL     string // local user's canonical feed URL; falls back to the feed file
	UIStatePath string
	Color       string // auto, always, never
	FeedCount   int    // posts printed by the feed command

	Log    LogConfig
	Thread ThreadConfig
	Filter FilterConfig
}

// LogConfig configures the log file.
type LogConfig struct {
	File   string
	Level  string
	Format string
}

// ThreadConfig configures the threaded view.
type ThreadConfig struct {
	ChildOrder string
}

// FilterConfig limits which posts are loaded.
type FilterConfig struct {
	Source    string // only posts from this feed URL
	Days      int    // only posts newer than N days; 0 disables
	LocalOnly bool   // only the local user's own posts
}

// DefaultConfig returns defaults rooted at the user's config dir.
func DefaultConfig() Config {
	dir := defaultDir()
	return Config{
		FeedPath:    filepath.Join(dir, "social.yaml"),
		UIStatePath: filepath.Join(dir, "ui_state.json"),
		Color:       "auto",
		FeedCount:   10,
		Log: LogConfig{
			File:   filepath.Join(dir, "orgfeed.log"),
			Level:  "info",
			Format: "console",
		},
		Thread: ThreadConfig{ChildOrder: ChildOrderChronological},
	}
}

func defaultDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "orgfeed")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".orgfeed"
	}
	return filepath.Join(home, ".config", "orgfeed")
}

// Validate rejects settings the TUI cannot run with.
func (c Config) Validate() error {
	var errs []error
	if strings.TrimSpace(c.FeedPath) == "" {
		errs = append(errs, errors.New("feed path is required"))
	}
	switch c.Thread.ChildOrder {
	case ChildOrderChronological, ChildOrderArrival:
	default:
		errs = append(errs, fmt.Errorf("thread.child_order must be %q or %q, got %q",
			ChildOrderChronological, ChildOrderArrival, c.Thread.ChildOrder))
	}
	if c.Filter.Days < 0 {
		errs = append(errs, fmt.Errorf("filter.days must be >= 0, got %d", c.Filter.Days))
	}
	if c.FeedCount < 1 {
		errs = append(errs, fmt.Errorf("feed_count must be >= 1, got %d", c.FeedCount))
	}
	switch c.Color {
	case "auto", "always", "never":
	default:
		errs = append(errs, fmt.Errorf("color must be auto, always or never, got %q", c.Color))
	}
	return errors.Join(errs...)
}

// Loader handles configuration loading with viper.
type Loader struct {
	v          *viper.Viper
	configFile string
}

// NewLoader creates a new configuration loader.
func NewLoader() *Loader {
	return &Loader{v: viper.New()}
}

// SetConfigFile sets an explicit config file path.
func (l *Loader) SetConfigFile(path string) {
	l.configFile = path
}

// BindFlag binds a CLI flag to a config key so it wins over file and env.
func (l *Loader) BindFlag(key string, flag *pflag.Flag) error {
	if flag == nil {
		return nil
	}
	return l.v.BindPFlag(key, flag)
}

// ConfigFileUsed returns the config file that was loaded, if any.
func (l *Loader) ConfigFileUsed() string {
	return l.v.ConfigFileUsed()
}

// Load resolves the configuration.
func (l *Loader) Load() (Config, error) {
	def := DefaultConfig()
	l.setupViper(def)

	if err := l.loadConfigFile(); err != nil {
		return Config{}, fmt.Errorf("failed to load config file: %w", err)
	}

	v := l.v
	cfg := Config{
		FeedPath:    expandTilde(v.GetString("feed")),
		Nick:        strings.TrimSpace(v.GetString("nick")),
		FeedURL:     strings.TrimSpace(v.GetString("feed_url")),
		UIStatePath: expandTilde(v.GetString("ui_state")),
		Color:       strings.ToLower(v.GetString("color")),
		FeedCount:   v.GetInt("feed_count"),
		Log: LogConfig{
			File:   expandTilde(v.GetString("log.file")),
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
		},
		Thread: ThreadConfig{ChildOrder: strings.ToLower(v.GetString("thread.child_order"))},
		Filter: FilterConfig{
			Source:    strings.TrimSpace(v.GetString("filter.source")),
			Days:      v.GetInt("filter.days"),
			LocalOnly: v.GetBool("filter.local_only"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

func (l *Loader) setupViper(def Config) {
	v := l.v
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(defaultDir())
	v.AddConfigPath(".")

	v.SetEnvPrefix("ORGFEED")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("feed", def.FeedPath)
	v.SetDefault("nick", "")
	v.SetDefault("feed_url", "")
	v.SetDefault("ui_state", def.UIStatePath)
	v.SetDefault("color", def.Color)
	v.SetDefault("feed_count", def.FeedCount)
	v.SetDefault("log.file", def.Log.File)
	v.SetDefault("log.level", def.Log.Level)
	v.SetDefault("log.format", def.Log.Format)
	v.SetDefault("thread.child_order", def.Thread.ChildOrder)
	v.SetDefault("filter.source", "")
	v.SetDefault("filter.days", 0)
	v.SetDefault("filter.local_only", false)

	v.AutomaticEnv()
}

// loadConfigFile reads the config file. A missing file is only an error when
// it was set explicitly.
func (l *Loader) loadConfigFile() error {
	if l.configFile != "" {
		l.v.SetConfigFile(expandTilde(l.configFile))
	}
	if err := l.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) && l.configFile == "" {
			return nil
		}
		return err
	}
	return nil
}

// expandTilde expands ~ to the user's home directory.
func expandTilde(path string) string {
	if path == "" {
		return path
	}
	if path == "~" {
		home, _ := os.UserHomeDir()
		return home
	}
	if strings.HasPrefix(path, "~/") {
		home, _ := os.UserHomeDir()
		return filepath.Join(home, path[2:])
	}
	return path
}
