// Package opener hands activated link and mention targets to the desktop.
package opener

import (
	"fmt"
	"net/url"
	"os/exec"
	"runtime"
	"strings"

	"github.com/atotto/clipboard"

	"github.com/CrestNiraj12/orgfeed/domain"
	"github.com/CrestNiraj12/orgfeed/infra/logging"
)

const mentionScheme = "org-social:"

// Browser opens targets with the platform's URL handler and falls back to
// copying the target to the clipboard when no handler can be started.
type Browser struct {
	launch func(target string) error
	copy   func(text string) error
}

// NewBrowser creates a Browser for the current platform.
func NewBrowser() *Browser {
	return &Browser{
		launch: launchCommand(runtime.GOOS),
		copy:   clipboard.WriteAll,
	}
}

// Open validates target and opens it, returning a short status message.
func (b *Browser) Open(target string) (string, error) {
	log := logging.Component("opener")
	clean, err := Sanitize(target)
	if err != nil {
		log.Warn().Str("target", target).Err(err).Msg("refused target")
		return "", err
	}
	launchErr := b.launch(clean)
	if launchErr == nil {
		log.Debug().Str("target", clean).Msg("opened")
		return "Opened " + clean, nil
	}
	log.Warn().Str("target", clean).Err(launchErr).Msg("launch failed, copying")
	if err := b.copy(clean); err != nil {
		return "", fmt.Errorf("open %s: no browser and clipboard failed: %w", clean, err)
	}
	return "Copied " + clean, nil
}

// Sanitize strips the mention scheme and accepts only absolute http(s) URLs.
func Sanitize(target string) (string, error) {
	raw := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(target), mentionScheme))
	parsed, err := url.Parse(raw)
	if err != nil || parsed.Host == "" {
		return "", fmt.Errorf("%w: %q", domain.ErrUnsafeTarget, target)
	}
	switch strings.ToLower(parsed.Scheme) {
	case "http", "https":
		return parsed.String(), nil
	default:
		return "", fmt.Errorf("%w: scheme %q", domain.ErrUnsafeTarget, parsed.Scheme)
	}
}

func launchCommand(goos string) func(string) error {
	return func(target string) error {
		var cmd *exec.Cmd
		switch goos {
		case "darwin":
			cmd = exec.Command("open", target)
		case "windows":
			cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", target)
		default:
			cmd = exec.Command("xdg-open", target)
		}
		return cmd.Start()
	}
}
