package match

import (
	"testing"

	"github.com/mj1618/winswitch/internal/model"
)

func win(title, class, instance string) model.Window {
	return model.Window{Title: title, ClassName: class, Instance: instance, Type: model.Normal}
}

func TestExactMatch(t *testing.T) {
	a := win("Bar", "Foo", "foo")
	if !ExactMatch(a, win("Bar", "Foo", "foo")) {
		t.Error("identical windows should match")
	}
	if ExactMatch(a, win("bar", "Foo", "foo")) {
		t.Error("title comparison is case-sensitive")
	}
	if ExactMatch(a, win("Bar", "Foo", "other")) {
		t.Error("instance must match")
	}
	special := a
	special.Type = model.Special
	if ExactMatch(a, special) {
		t.Error("type must match")
	}
}

func TestFuzzyTitleMatch(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		want bool
	}{
		{"identical", "Doc", "Doc", true},
		{"same_prefix", "App - Doc1", "App - Doc2", true},
		{"different_prefix", "App - Doc1", "Ppa - Doc1", false},
		{"prefix_length_differs", "App - Doc", "Apps - Doc", false},
		{"substring", "Inbox", "Inbox (3)", true},
		{"superstring", "Inbox (3)", "Inbox", true},
		{"unrelated", "Inbox", "Calendar", false},
		{"empty_vs_title", "", "Calendar", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FuzzyTitleMatch(win(tt.a, "C", "c"), win(tt.b, "C", "c"))
			if got != tt.want {
				t.Errorf("FuzzyTitleMatch(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
	if FuzzyTitleMatch(win("Doc", "C", "c"), win("Doc", "D", "c")) {
		t.Error("class must match")
	}
}

func TestWildcardMatch(t *testing.T) {
	tests := []struct {
		pattern, text string
		want          bool
	}{
		{"Foo*", "Foo Bar Baz", true},
		{"F.o", "Foo", true},
		{"F.o", "Fo", false},
		{"*", "", true},
		{"", "", true},
		{"", "a", false},
		{"a*b*c", "aXXbYYc", true},
		{"a*b*c", "aXXbYY", false},
		{"*Doc", "App - Doc", true},
		{"*-*", "App - Doc", true},
		{"App", "App - Doc", false},
		{"..", "ab", true},
		{"..", "abc", false},
		{"Ünï*", "Ünïcode", true},
		{"**a", "bba", true},
	}
	for _, tt := range tests {
		if got := WildcardMatch(tt.pattern, tt.text); got != tt.want {
			t.Errorf("WildcardMatch(%q, %q) = %v, want %v", tt.pattern, tt.text, got, tt.want)
		}
	}
}

func TestTitlePattern(t *testing.T) {
	if got := TitlePattern("*scratch* - Emacs"); got != ".scratch. - Emacs" {
		t.Errorf("got %q", got)
	}
	if !WildcardMatch(TitlePattern("*scratch*"), "*scratch*") {
		t.Error("pattern should still match its source title")
	}
}
