package activatable

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/CrestNiraj12/orgfeed/domain"
)

func filled(n int) *Registry {
	r := &Registry{}
	for i := 0; i < n; i++ {
		r.Register(Element{Kind: KindLink, Target: "https://example.org/" + string(rune('a'+i)), Label: "l"})
	}
	return r
}

func TestRegisterAssignsRenderOrder(t *testing.T) {
	r := &Registry{}
	require.Equal(t, 0, r.Register(Element{Kind: KindMention, Target: "https://u2.example"}))
	require.Equal(t, 1, r.Register(Element{Kind: KindLink, Target: "http://x"}))
	require.Equal(t, 2, r.Len())
	for i, e := range r.Elements() {
		require.Equal(t, i, e.Seq)
	}
	_, ok := r.Focused()
	require.False(t, ok)
}

func TestFocusNextWrapsAndVisitsAll(t *testing.T) {
	for n := 1; n <= 5; n++ {
		r := filled(n)
		seen := map[int]bool{}
		for i := 0; i < n; i++ {
			r.FocusNext()
			idx, ok := r.FocusIndex()
			require.True(t, ok)
			seen[idx] = true
		}
		require.Len(t, seen, n)
		r.FocusNext()
		idx, _ := r.FocusIndex()
		require.Equal(t, 0, idx, "n focus_next calls after the last element return to the first")
	}
}

func TestFocusPreviousWraps(t *testing.T) {
	r := filled(3)
	r.FocusPrevious()
	idx, _ := r.FocusIndex()
	require.Equal(t, 2, idx)
	r.FocusPrevious()
	r.FocusPrevious()
	r.FocusPrevious()
	idx, _ = r.FocusIndex()
	require.Equal(t, 2, idx)
}

func TestFocusOnEmptyRegistryIsNoop(t *testing.T) {
	r := &Registry{}
	r.FocusNext()
	r.FocusPrevious()
	_, ok := r.FocusIndex()
	require.False(t, ok)

	_, err := r.ActivateFocused()
	require.ErrorIs(t, err, domain.ErrEmptyRegistry)
	_, err = r.Activate(0)
	require.ErrorIs(t, err, domain.ErrEmptyRegistry)
}

func TestResetClearsFocusAndRestoreClamps(t *testing.T) {
	r := filled(4)
	r.FocusPrevious()
	prev, _ := r.FocusIndex()
	require.Equal(t, 3, prev)

	r.Reset()
	require.Zero(t, r.Len())
	_, ok := r.FocusIndex()
	require.False(t, ok)

	r.Register(Element{Target: "a"})
	r.Register(Element{Target: "b"})
	r.Restore(prev)
	idx, ok := r.FocusIndex()
	require.True(t, ok)
	require.Equal(t, 1, idx)

	r.Restore(-1)
	_, ok = r.FocusIndex()
	require.False(t, ok)

	r.Reset()
	r.Restore(3)
	_, ok = r.FocusIndex()
	require.False(t, ok)
}

func TestActivate(t *testing.T) {
	r := &Registry{}
	r.Register(Element{Kind: KindMention, Target: "https://u2.example/social.org", Label: "@u2"})
	r.Register(Element{Kind: KindLink, Target: "http://x", Label: "http://x"})
	r.Register(Element{Kind: KindMention, Label: "@ghost"})

	got, err := r.Activate(0)
	require.NoError(t, err)
	require.Equal(t, "https://u2.example/social.org", got)

	got, err = r.Activate(1)
	require.NoError(t, err)
	require.Equal(t, "http://x", got)

	_, err = r.Activate(2)
	require.ErrorIs(t, err, domain.ErrTargetUnavailable)

	_, err = r.Activate(3)
	require.ErrorIs(t, err, domain.ErrIndexOutOfRange)
	_, err = r.Activate(-1)
	require.ErrorIs(t, err, domain.ErrIndexOutOfRange)
}

func TestIsMentionFocused(t *testing.T) {
	r := &Registry{}
	r.Register(Element{Kind: KindMention, Target: "m"})
	r.Register(Element{Kind: KindLink, Target: "l"})

	require.False(t, r.IsMentionFocused(0))
	r.FocusNext()
	require.True(t, r.IsMentionFocused(0))
	require.True(t, r.IsFocused(0))
	require.False(t, r.IsFocused(1))

	r.FocusNext()
	require.False(t, r.IsMentionFocused(1))
	require.True(t, r.IsFocused(1))

	target, err := r.ActivateFocused()
	require.NoError(t, err)
	require.Equal(t, "l", target)

	r.ClearFocus()
	require.False(t, r.IsFocused(1))
}
