package match

import (
	"testing"

	"github.com/mj1618/winswitch/internal/model"
	"github.com/stretchr/testify/require"
)

func sticky(title string) model.Window {
	return model.Window{Title: title, Desktop: model.StickyDesktop}
}

func TestHaystack(t *testing.T) {
	require.Equal(t, "Editor", Haystack(sticky("Editor")))
	require.Equal(t, "Editor 3", Haystack(model.Window{Title: "Editor", Desktop: 2}))
}

func TestWindow_InitialsScenario(t *testing.T) {
	w := model.Window{Title: "Visual Studio Code", Desktop: 0}
	s, ok := Window("vsc", w, 1)
	require.True(t, ok)
	require.Equal(t, TierInitials, s.Tier)
	require.GreaterOrEqual(t, s.Value, ScoreInitials)
	require.Equal(t, ScoreInitials, s.Value)
}

func TestWindow_WordBoundary(t *testing.T) {
	tests := []struct {
		name   string
		needle string
		title  string
		want   int
	}{
		{"mid_title", "code", "Visual Studio Code", ScoreWordBoundary},
		{"title_start", "vis", "Visual Studio Code", ScoreWordBoundary + startOfTitleBonus},
		{"case_insensitive", "STUDIO", "Visual Studio Code", ScoreWordBoundary},
		{"after_dash", "doc", "App-doc", ScoreWordBoundary},
		{"after_paren", "draft", "Mail (draft)", ScoreWordBoundary},
		{"initial_run", "ab", "ab b", ScoreWordBoundary + wordRunBonus + startOfTitleBonus},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, ok := Window(tt.needle, sticky(tt.title), 0)
			require.True(t, ok)
			require.Equal(t, TierWordBoundary, s.Tier)
			require.Equal(t, tt.want, s.Value)
		})
	}
}

func TestWindow_InitialsSkippedWordsBonus(t *testing.T) {
	// v(isual) s(tudio) [the] c(ode): four words consumed for three letters.
	s, ok := Window("vsc", sticky("Visual Studio the Code"), 0)
	require.True(t, ok)
	require.Equal(t, TierInitials, s.Tier)
	require.Equal(t, ScoreInitials+extraWordBonus, s.Value)
}

func TestWindow_Subsequence(t *testing.T) {
	s, ok := Window("vsd", sticky("Visual Studio Code"), 0)
	require.True(t, ok)
	require.Equal(t, TierSubsequence, s.Tier)
	require.Equal(t, ScoreTitleSubsequence, s.Value)

	w := model.Window{Title: "Mozilla", ClassName: "Firefox", Instance: "Navigator", Desktop: model.StickyDesktop}
	s, ok = Window("frx", w, 0)
	require.True(t, ok)
	require.Equal(t, TierSubsequence, s.Tier)
	require.Equal(t, ScoreClassSubsequence, s.Value)

	s, ok = Window("ngt", w, 0)
	require.True(t, ok)
	require.Equal(t, ScoreClassSubsequence, s.Value)
}

func TestWindow_NoMatch(t *testing.T) {
	_, ok := Window("zzz", sticky("Visual Studio Code"), 0)
	require.False(t, ok)
}

func TestWindow_WorkspaceNumberIsSearchable(t *testing.T) {
	w := model.Window{Title: "Terminal", Desktop: 3}
	s, ok := Window("4", w, 0)
	require.True(t, ok)
	require.Equal(t, TierWordBoundary, s.Tier)

	_, ok = Window("4", sticky("Terminal"), 0)
	require.False(t, ok)
}

func TestWindow_CurrentDesktopBonus(t *testing.T) {
	w := model.Window{Title: "Visual Studio Code", Desktop: 1}
	other, ok := Window("vsd", w, 0)
	require.True(t, ok)
	current, ok := Window("vsd", w, 1)
	require.True(t, ok)
	require.Equal(t, other.Value+CurrentDesktopBonus, current.Value)
	require.Equal(t, other.Tier, current.Tier)

	// Sticky windows never receive the bonus, even when the current desktop
	// is reported as -1.
	s, ok := Window("vsd", sticky("Visual Studio Code"), model.StickyDesktop)
	require.True(t, ok)
	require.Equal(t, ScoreTitleSubsequence, s.Value)
}

func TestWindow_EmptyNeedle(t *testing.T) {
	a, ok := Window("", sticky("a"), 0)
	require.True(t, ok)
	b, ok := Window("", model.Window{Title: "b", Desktop: 0}, 0)
	require.True(t, ok)
	require.Equal(t, a, b)
	require.Equal(t, TierAll, a.Tier)
	require.Equal(t, ScoreAll, a.Value)
}

func TestWindow_TierDominance(t *testing.T) {
	// "code" also matches as a subsequence and through the fuzzy scorer, but
	// the word-boundary tier is evaluated first.
	s, ok := Window("code", sticky("Code - Visual Studio Code"), 0)
	require.True(t, ok)
	require.Equal(t, TierWordBoundary, s.Tier)

	// "vsc" as initials beats the subsequence it also is.
	s, ok = Window("vsc", sticky("Visual Studio Code"), 0)
	require.True(t, ok)
	require.Equal(t, TierInitials, s.Tier)
	require.Greater(t, s.Value, ScoreTitleSubsequence)
}

func TestFuzzyFallback(t *testing.T) {
	c := newCandidate("", "Firefox", "")
	v, ok := fuzzyFallback{}.score(nil, "ff", c)
	require.True(t, ok)
	require.GreaterOrEqual(t, v, ScoreFuzzy)
	require.Less(t, v, ScoreClassSubsequence)

	_, ok = fuzzyFallback{}.score(nil, "zz", c)
	require.False(t, ok)
}

func TestText(t *testing.T) {
	s, ok := Text("web", "Workspace 2 web")
	require.True(t, ok)
	require.Equal(t, TierWordBoundary, s.Tier)

	_, ok = Text("qq", "Workspace 1")
	require.False(t, ok)

	s, ok = Text("", "anything")
	require.True(t, ok)
	require.Equal(t, TierAll, s.Tier)
}

func TestTier_String(t *testing.T) {
	require.Equal(t, "initials", TierInitials.String())
	require.Equal(t, "none", TierNone.String())
}
