package models

import (
	"strings"

	"modelfetch/internal/core"
)

// BuildCandidateURLs 依 base URL 推出要依序嘗試的 models 端點。
// 已經以 /models 結尾時只回傳它本身；否則先試 /v1/models（base 已含 /v1 時略過）再試 /models。
func BuildCandidateURLs(baseURL string) []string {
	base := strings.TrimSuffix(strings.TrimSpace(baseURL), "/")
	if base == "" {
		return []string{}
	}

	modelsPath := string(core.OpenAIModelsEndpoint)
	if strings.HasSuffix(base, modelsPath) {
		return []string{base}
	}

	candidates := make([]string, 0, 2)
	push := func(url string) {
		for _, existing := range candidates {
			if existing == url {
				return
			}
		}
		candidates = append(candidates, url)
	}

	if !strings.HasSuffix(base, string(core.OpenAIVersionPrefix)) {
		push(base + string(core.OpenAIVersionPrefix) + modelsPath)
	}
	push(base + modelsPath)
	return candidates
}
