package models

import (
	"net/http"
	"time"

	"modelfetch/internal/core"
)

// ModelDescriptor 解析後的單一模型
type ModelDescriptor struct {
	ID      string  `json:"id"`
	OwnedBy *string `json:"ownedBy,omitempty"`
	Created *int64  `json:"created,omitempty"` // unix seconds
}

// FetchResult 一次成功抓取的結果
type FetchResult struct {
	Models      []ModelDescriptor `json:"models"`
	ResolvedURL string            `json:"resolvedUrl"`
	ElapsedMs   uint64            `json:"elapsedMs"`
	Warnings    []string          `json:"warnings,omitempty"`
}

// IDs 依序回傳模型 id
func (r *FetchResult) IDs() []string {
	if r == nil {
		return nil
	}
	ids := make([]string, len(r.Models))
	for i, m := range r.Models {
		ids[i] = m.ID
	}
	return ids
}

// HTTPDoer 由 *http.Client 實作
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// ResolveTimeout 未指定時 15 秒，其餘夾在 [5, 120] 秒
func ResolveTimeout(timeoutSecs *int) time.Duration {
	secs := core.FetchTimeoutDefaultSecs
	if timeoutSecs != nil {
		secs = *timeoutSecs
	}
	if secs < core.FetchTimeoutMinSecs {
		secs = core.FetchTimeoutMinSecs
	}
	if secs > core.FetchTimeoutMaxSecs {
		secs = core.FetchTimeoutMaxSecs
	}
	return time.Duration(secs) * time.Second
}
