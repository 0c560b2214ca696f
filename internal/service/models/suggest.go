package models

import (
	"sort"
	"strings"
)

// Suggestion 單一候選模型與其分數
type Suggestion struct {
	ID    string `json:"id"`
	Score int    `json:"score"`
}

// 完全相同 > 前綴 > 包含（不分大小寫）
func suggestionScore(id, query string) int {
	lowerID := strings.ToLower(id)
	switch {
	case lowerID == query:
		return 3
	case strings.HasPrefix(lowerID, query):
		return 2
	case strings.Contains(lowerID, query):
		return 1
	default:
		return 0
	}
}

// RankSuggestions 依 query 排序模型 id；未命中的項目分數為 0 排在最後。
// limit <= 0 代表不限。
func RankSuggestions(ids []string, query string, limit int) []Suggestion {
	query = strings.ToLower(strings.TrimSpace(query))

	out := make([]Suggestion, 0, len(ids))
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if _, dup := seen[id]; dup || id == "" {
			continue
		}
		seen[id] = struct{}{}

		score := 0
		if query != "" {
			score = suggestionScore(id, query)
		}
		out = append(out, Suggestion{ID: id, Score: score})
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		return out[i].ID < out[j].ID
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}
