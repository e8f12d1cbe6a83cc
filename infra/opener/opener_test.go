package opener

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/CrestNiraj12/orgfeed/domain"
)

func TestSanitize(t *testing.T) {
	tests := []struct {
		in   string
		want string
		ok   bool
	}{
		{"https://example.org/a", "https://example.org/a", true},
		{"  http://example.org ", "http://example.org", true},
		{"org-social:https://bob.example/social.org", "https://bob.example/social.org", true},
		{"javascript:alert(1)", "", false},
		{"file:///etc/passwd", "", false},
		{"example.org", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := Sanitize(tt.in)
			if !tt.ok {
				require.ErrorIs(t, err, domain.ErrUnsafeTarget)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestBrowserOpenLaunches(t *testing.T) {
	var launched, copied string
	b := &Browser{
		launch: func(s string) error { launched = s; return nil },
		copy:   func(s string) error { copied = s; return nil },
	}
	status, err := b.Open("https://example.org")
	require.NoError(t, err)
	require.Equal(t, "Opened https://example.org", status)
	require.Equal(t, "https://example.org", launched)
	require.Empty(t, copied)
}

func TestBrowserOpenFallsBackToClipboard(t *testing.T) {
	var copied string
	b := &Browser{
		launch: func(string) error { return errors.New("no xdg-open") },
		copy:   func(s string) error { copied = s; return nil },
	}
	status, err := b.Open("https://example.org")
	require.NoError(t, err)
	require.Equal(t, "Copied https://example.org", status)
	require.Equal(t, "https://example.org", copied)

	b.copy = func(string) error { return errors.New("no clipboard") }
	_, err = b.Open("https://example.org")
	require.Error(t, err)
}

func TestBrowserOpenRefusesUnsafe(t *testing.T) {
	b := &Browser{
		launch: func(string) error { t.Fatal("must not launch"); return nil },
		copy:   func(string) error { t.Fatal("must not copy"); return nil },
	}
	_, err := b.Open("ftp://example.org")
	require.ErrorIs(t, err, domain.ErrUnsafeTarget)
}
