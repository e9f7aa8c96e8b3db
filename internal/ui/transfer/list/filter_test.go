package list

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"shuttle/internal/domain"
)

func TestMatchFilterBlankMatchesEverything(t *testing.T) {
	calls := 0
	matcher := MatcherFunc(func(string, domain.Item) bool {
		calls++
		return false
	})

	for _, filter := range []string{"", "   ", "\t"} {
		assert.True(t, MatchFilter(filter, domain.Item{Key: "a"}, matcher, nil))
	}
	assert.Zero(t, calls, "matcher must not be consulted for blank filters")
}

func TestMatchFilterDefaultIsCaseSensitiveContains(t *testing.T) {
	item := domain.Item{Key: "k1", Title: "Alpha Beta"}

	assert.True(t, MatchFilter("Beta", item, nil, nil))
	assert.True(t, MatchFilter("ha B", item, nil, nil))
	assert.False(t, MatchFilter("beta", item, nil, nil))
	assert.False(t, MatchFilter("k1", item, nil, nil), "title is the display text when set")
}

func TestMatchFilterUsesRenderText(t *testing.T) {
	render := func(i domain.Item) string { return i.Meta["label"] }
	item := domain.Item{Key: "a", Title: "Alpha", Meta: map[string]string{"label": "custom"}}

	assert.True(t, MatchFilter("cust", item, nil, render))
	assert.False(t, MatchFilter("Alpha", item, nil, render))
}

func TestMatchFilterDelegatesToMatcher(t *testing.T) {
	var gotFilter string
	var gotItem domain.Item
	matcher := MatcherFunc(func(filter string, item domain.Item) bool {
		gotFilter, gotItem = filter, item
		return strings.HasPrefix(item.Description, filter)
	})
	item := domain.Item{Key: "a", Title: "zzz", Description: "desc"}

	assert.True(t, MatchFilter("de", item, matcher, nil))
	assert.Equal(t, "de", gotFilter)
	assert.Equal(t, item, gotItem)
	assert.False(t, MatchFilter("zzz", item, matcher, nil), "matcher decides alone")
}

func TestMatchFilterIsIdempotent(t *testing.T) {
	item := domain.Item{Key: "b"}
	for i := 0; i < 3; i++ {
		assert.True(t, MatchFilter("b", item, nil, nil))
		assert.False(t, MatchFilter("x", item, nil, nil))
	}
}

func TestFoldMatcher(t *testing.T) {
	m := FoldMatcher{}

	assert.True(t, m.Match("cafe", domain.Item{Key: "Café Noir"}))
	assert.True(t, m.Match("ÉCOLE", domain.Item{Key: "ecole"}))
	assert.False(t, m.Match("tea", domain.Item{Key: "Café"}))
}
