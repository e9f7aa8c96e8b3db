package list

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"shuttle/internal/domain"
)

// Matcher decides whether an item matches the current filter text
type Matcher interface {
	Match(filter string, item domain.Item) bool
}

// MatcherFunc adapts a plain function to Matcher
type MatcherFunc func(filter string, item domain.Item) bool

// Match calls f
func (f MatcherFunc) Match(filter string, item domain.Item) bool {
	return f(filter, item)
}

// ContainsMatcher is the default matcher: a case-sensitive substring test against the item's display text
type ContainsMatcher struct {
	Text func(domain.Item) string
}

// Match implements Matcher
func (c ContainsMatcher) Match(filter string, item domain.Item) bool {
	return strings.Contains(displayText(item, c.Text), filter)
}

// FoldMatcher ignores case and diacritics, so "cafe" matches "Café"
type FoldMatcher struct {
	Text func(domain.Item) string
}

// Match implements Matcher
func (f FoldMatcher) Match(filter string, item domain.Item) bool {
	return strings.Contains(fold(displayText(item, f.Text)), fold(filter))
}

func fold(s string) string {
	// Transformers keep state, so build a fresh chain per call
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	stripped, _, err := transform.String(t, s)
	if err != nil {
		stripped = s
	}
	return cases.Fold().String(stripped)
}

func displayText(item domain.Item, text func(domain.Item) string) string {
	if text != nil {
		return text(item)
	}
	return item.DisplayText()
}

// MatchFilter reports whether item passes filter. A filter that is empty or only
// whitespace matches everything without consulting the matcher, so typing a space
// into the search box never hides rows. A nil matcher falls back to ContainsMatcher.
func MatchFilter(filter string, item domain.Item, matcher Matcher, text func(domain.Item) string) bool {
	if strings.TrimSpace(filter) == "" {
		return true
	}
	if matcher != nil {
		return matcher.Match(filter, item)
	}
	return ContainsMatcher{Text: text}.Match(filter, item)
}
