package match

import (
	"fmt"
	"math"
	"strings"

	"github.com/mj1618/winswitch/internal/model"
	"github.com/sahilm/fuzzy"
)

// Tier identifies which strategy of the cascade produced a score.
type Tier int

const (
	TierNone Tier = iota
	TierFuzzy
	TierSubsequence
	TierInitials
	TierWordBoundary
	// TierAll is reported for the empty query, which matches everything.
	TierAll
)

func (t Tier) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (t Tier) String() string {
	switch t {
	case TierFuzzy:
		return "fuzzy"
	case TierSubsequence:
		return "subsequence"
	case TierInitials:
		return "initials"
	case TierWordBoundary:
		return "word-boundary"
	case TierAll:
		return "all"
	default:
		return "none"
	}
}

// Base scores and bonuses of the cascade.
const (
	ScoreWordBoundary     = 2000
	ScoreInitials         = 1900
	ScoreTitleSubsequence = 1500
	ScoreClassSubsequence = 1400
	ScoreFuzzy            = 1000
	ScoreAll              = math.MaxInt32

	wordRunBonus        = 300
	startOfTitleBonus   = 100
	extraWordBonus      = 50
	fuzzyDetailWeight   = 5
	fuzzyDetailMax      = ScoreClassSubsequence - ScoreFuzzy - 1
	CurrentDesktopBonus = 500
)

// Score is the result of matching a query against a window.
type Score struct {
	Value int  `yaml:"value" json:"value"`
	Tier  Tier `yaml:"tier"  json:"tier"`
}

// candidate holds the lower-cased fields a strategy scores against.
type candidate struct {
	title     []rune
	className []rune
	instance  []rune

	// raw title keeps the original case for the fuzzy scorer's camel-case bonus.
	rawTitle    string
	rawClass    string
	rawInstance string
}

func newCandidate(title, className, instance string) candidate {
	return candidate{
		title:       []rune(strings.ToLower(title)),
		className:   []rune(strings.ToLower(className)),
		instance:    []rune(strings.ToLower(instance)),
		rawTitle:    title,
		rawClass:    className,
		rawInstance: instance,
	}
}

// strategy is one step of the scoring cascade.
type strategy interface {
	tier() Tier
	score(needle []rune, rawNeedle string, c candidate) (int, bool)
}

// cascade is evaluated in order; the first strategy that matches wins even
// when a later one would score differently.
var cascade = []strategy{
	wordBoundary{},
	initials{},
	subsequence{},
	fuzzyFallback{},
}

// Haystack returns the text a window's title is scored as. Windows on a
// specific workspace get the 1-based workspace number appended so users can
// filter by it.
func Haystack(w model.Window) string {
	if w.Sticky() {
		return w.Title
	}
	return fmt.Sprintf("%s %d", w.Title, w.Desktop+1)
}

// Window scores needle against w. The boolean is false when the window does
// not match and must be excluded from results. An empty needle matches every
// window with the same maximal score.
func Window(needle string, w model.Window, currentDesktop int) (Score, bool) {
	if needle == "" {
		return Score{Value: ScoreAll, Tier: TierAll}, true
	}
	s, ok := run(needle, newCandidate(Haystack(w), w.ClassName, w.Instance))
	if !ok {
		return Score{}, false
	}
	if !w.Sticky() && w.Desktop == currentDesktop {
		s.Value += CurrentDesktopBonus
	}
	return s, true
}

// Text scores needle against a bare string, without class or workspace
// information.
func Text(needle, text string) (Score, bool) {
	if needle == "" {
		return Score{Value: ScoreAll, Tier: TierAll}, true
	}
	return run(needle, newCandidate(text, "", ""))
}

func run(rawNeedle string, c candidate) (Score, bool) {
	needle := []rune(strings.ToLower(rawNeedle))
	for _, st := range cascade {
		if v, ok := st.score(needle, rawNeedle, c); ok {
			return Score{Value: v, Tier: st.tier()}, true
		}
	}
	return Score{Tier: TierNone}, false
}

func isBoundary(r rune) bool {
	switch r {
	case ' ', '-', '_', '.', '(', '|':
		return true
	}
	return false
}

// initialsOf returns the first character of every word in s.
func initialsOf(s []rune) []rune {
	var out []rune
	for i, r := range s {
		if isBoundary(r) {
			continue
		}
		if i == 0 || isBoundary(s[i-1]) {
			out = append(out, r)
		}
	}
	return out
}

func hasPrefixAt(s, prefix []rune, at int) bool {
	if at+len(prefix) > len(s) {
		return false
	}
	for i, r := range prefix {
		if s[at+i] != r {
			return false
		}
	}
	return true
}

func isSubsequence(needle, s []rune) bool {
	if len(needle) == 0 {
		return true
	}
	j := 0
	for _, r := range s {
		if r == needle[j] {
			j++
			if j == len(needle) {
				return true
			}
		}
	}
	return false
}

// wordBoundary matches the needle as a contiguous run starting at a word
// boundary of the title.
type wordBoundary struct{}

func (wordBoundary) tier() Tier { return TierWordBoundary }

func (wordBoundary) score(needle []rune, _ string, c candidate) (int, bool) {
	pos := -1
	for i := range c.title {
		if (i == 0 || isBoundary(c.title[i-1])) && hasPrefixAt(c.title, needle, i) {
			pos = i
			break
		}
	}
	if pos < 0 {
		return 0, false
	}
	v := ScoreWordBoundary
	if run := longestInitialRun(initialsOf(c.title), needle); run > 1 {
		v += wordRunBonus * (run - 1)
	}
	if pos == 0 {
		v += startOfTitleBonus
	}
	return v, true
}

// longestInitialRun returns the longest run of consecutive word initials that
// spell a prefix of needle, anywhere in the title.
func longestInitialRun(initials, needle []rune) int {
	best := 0
	for i := range initials {
		n := 0
		for n < len(needle) && i+n < len(initials) && initials[i+n] == needle[n] {
			n++
		}
		if n > best {
			best = n
		}
	}
	return best
}

// initials matches each needle character against the first character of
// successive words, in order.
type initials struct{}

func (initials) tier() Tier { return TierInitials }

func (initials) score(needle []rune, _ string, c candidate) (int, bool) {
	j, consumed := 0, 0
	for i, r := range initialsOf(c.title) {
		if j == len(needle) {
			break
		}
		if r == needle[j] {
			j++
			consumed = i + 1
		}
	}
	if j < len(needle) {
		return 0, false
	}
	return ScoreInitials + extraWordBonus*(consumed-len(needle)), true
}

// subsequence matches when all needle characters appear in order.
type subsequence struct{}

func (subsequence) tier() Tier { return TierSubsequence }

func (subsequence) score(needle []rune, _ string, c candidate) (int, bool) {
	if isSubsequence(needle, c.title) {
		return ScoreTitleSubsequence, true
	}
	if isSubsequence(needle, c.className) || isSubsequence(needle, c.instance) {
		return ScoreClassSubsequence, true
	}
	return 0, false
}

// fuzzyFallback delegates detail scoring to sahilm/fuzzy.
type fuzzyFallback struct{}

func (fuzzyFallback) tier() Tier { return TierFuzzy }

func (fuzzyFallback) score(_ []rune, rawNeedle string, c candidate) (int, bool) {
	if d, ok := fuzzyDetail(rawNeedle, c.rawTitle); ok {
		return ScoreFuzzy + d, true
	}
	best, found := 0, false
	for _, field := range []string{c.rawClass, c.rawInstance} {
		if d, ok := fuzzyDetail(rawNeedle, field); ok && (!found || d > best) {
			best, found = d, true
		}
	}
	return ScoreFuzzy + best, found
}

func fuzzyDetail(needle, text string) (int, bool) {
	if text == "" {
		return 0, false
	}
	matches := fuzzy.Find(needle, []string{text})
	if len(matches) == 0 {
		return 0, false
	}
	d := matches[0].Score * fuzzyDetailWeight
	if d < 0 {
		d = 0
	}
	if d > fuzzyDetailMax {
		d = fuzzyDetailMax
	}
	return d, true
}
