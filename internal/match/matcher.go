package match

import (
	"strings"

	"github.com/mj1618/winswitch/internal/model"
)

// sameOwner reports whether two windows belong to the same application
// window kind: identical class, instance and type.
func sameOwner(a, b model.Window) bool {
	return a.ClassName == b.ClassName && a.Instance == b.Instance && a.Type == b.Type
}

// ExactMatch reports whether two windows have the same class, instance, type
// and title.
func ExactMatch(a, b model.Window) bool {
	return sameOwner(a, b) && a.Title == b.Title
}

// FuzzyTitleMatch reports whether b plausibly is the same window as a after
// a title change: same class, instance and type, and titles that are
// identical, share an equal " - " delimited prefix, or contain one another.
func FuzzyTitleMatch(a, b model.Window) bool {
	return sameOwner(a, b) && titlesRelated(a.Title, b.Title)
}

func titlesRelated(a, b string) bool {
	if a == b {
		return true
	}
	ia := strings.Index(a, " - ")
	ib := strings.Index(b, " - ")
	if ia >= 0 && ia == ib && a[:ia] == b[:ib] {
		return true
	}
	// An empty title is a substring of everything.
	if a == "" || b == "" {
		return false
	}
	return strings.Contains(a, b) || strings.Contains(b, a)
}

// WildcardMatch matches text against a glob-style pattern where '*' matches
// any run of characters (including none) and '.' matches exactly one
// character. All other characters match literally and both pattern and text
// must be consumed entirely.
func WildcardMatch(pattern, text string) bool {
	p := []rune(pattern)
	s := []rune(text)

	pi, si := 0, 0
	star, mark := -1, 0
	for si < len(s) {
		switch {
		case pi < len(p) && p[pi] == '*':
			star, mark = pi, si
			pi++
		case pi < len(p) && (p[pi] == '.' || p[pi] == s[si]):
			pi++
			si++
		case star >= 0:
			// Let the last star swallow one more character and retry.
			pi = star + 1
			mark++
			si = mark
		default:
			return false
		}
	}
	for pi < len(p) && p[pi] == '*' {
		pi++
	}
	return pi == len(p)
}

// TitlePattern converts a live window title into a stored wildcard pattern.
// A literal '*' in the title would otherwise act as a wildcard, so it is
// stored as '.' which still matches it as a single character.
func TitlePattern(title string) string {
	return strings.ReplaceAll(title, "*", ".")
}
