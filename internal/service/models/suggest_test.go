package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRankSuggestions(t *testing.T) {
	ids := []string{"gpt-4o-mini", "o1", "GPT-4O", "text-embedding-3", "chatgpt-4o-latest", "gpt-4o-mini"}

	got := RankSuggestions(ids, "gpt-4o", 0)

	assert.Equal(t, []Suggestion{
		{ID: "GPT-4O", Score: 3},
		{ID: "gpt-4o-mini", Score: 2},
		{ID: "chatgpt-4o-latest", Score: 1},
		{ID: "o1", Score: 0},
		{ID: "text-embedding-3", Score: 0},
	}, got)
}

func TestRankSuggestionsEmptyQuerySortsByID(t *testing.T) {
	got := RankSuggestions([]string{"b", "a", "c"}, "  ", 2)
	assert.Equal(t, []Suggestion{{ID: "a"}, {ID: "b"}}, got)
}

func TestRankSuggestionsTrimsQueryAndLimits(t *testing.T) {
	ids := []string{"claude-sonnet-4", "claude-opus-4", "gpt-4o", "Claude-Haiku", ""}

	got := RankSuggestions(ids, "  CLAUDE ", 2)

	assert.Equal(t, []Suggestion{
		{ID: "Claude-Haiku", Score: 2},
		{ID: "claude-opus-4", Score: 2},
	}, got)
}
