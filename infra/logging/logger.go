// Package logging provides structured logging for orgfeed using zerolog.
//
// The terminal belongs to the TUI, so logs go to a file. With no file
// configured the logger discards everything.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Logger is the global logger instance.
var Logger = zerolog.Nop()

// Config holds logging configuration.
type Config struct {
	// Level is the minimum log level (trace, debug, info, warn, error).
	Level string

	// Format is the output format (json, console).
	Format string

	// File is the log file path. Empty disables logging.
	File string

	// Output overrides File when set. Used by tests.
	Output io.Writer
}

// DefaultConfig returns the default logging configuration.
func DefaultConfig() Config {
	return Config{
		Level:  "info",
		Format: "console",
	}
}

// Init initializes the global logger. The returned closer releases the log
// file and is never nil.
func Init(cfg Config) (io.Closer, error) {
	zerolog.TimeFieldFormat = time.RFC3339

	output := cfg.Output
	var closer io.Closer = nopCloser{}
	if output == nil {
		if strings.TrimSpace(cfg.File) == "" {
			Logger = zerolog.Nop()
			return closer, nil
		}
		if err := os.MkdirAll(filepath.Dir(cfg.File), 0o700); err != nil {
			return closer, fmt.Errorf("create log dir: %w", err)
		}
		f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return closer, fmt.Errorf("open log file: %w", err)
		}
		output, closer = f, f
	}

	if cfg.Format == "console" {
		output = zerolog.ConsoleWriter{
			Out:        output,
			TimeFormat: "15:04:05",
			NoColor:    true,
		}
	}

	Logger = zerolog.New(output).Level(ParseLevel(cfg.Level)).With().Timestamp().Logger()
	return closer, nil
}

// ParseLevel converts a string level to zerolog.Level, defaulting to info.
func ParseLevel(level string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

// Component creates a logger with a component field.
func Component(name string) zerolog.Logger {
	return Logger.With().Str("component", name).Logger()
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
